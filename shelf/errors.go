package shelf

import (
	"errors"

	"github.com/arthur-debert/nanoshelf/shelf/storage"
)

// Sentinel errors returned by the Store's public API. Nothing escapes the
// store as a panic; every failure is one of these (possibly wrapped with
// context) or a storage error.
var (
	// ErrNotFound is returned when an operation targets an id that does not
	// exist, e.g. a stale UI reference after a delete. It is a no-op failure,
	// never fatal.
	ErrNotFound = storage.ErrNotFound

	// ErrNotInitialized is returned by every mutation when Initialize failed
	// or was never called; the store stays in a safe no-op state.
	ErrNotInitialized = errors.New("store is not initialized")

	// ErrCycle is returned when a move would make an item its own ancestor.
	ErrCycle = errors.New("cannot move an item into its own subtree")

	// ErrNotebookNested is returned when an operation would place a notebook
	// inside another container. Notebooks live at the root, always.
	ErrNotebookNested = errors.New("notebooks cannot be nested")

	// ErrNotContainer is returned when a child-level operation targets a
	// plain document.
	ErrNotContainer = errors.New("item is not a container")

	// ErrNotNotebook is returned when a notebook-only operation targets a
	// folder or document.
	ErrNotNotebook = errors.New("item is not a notebook")

	// ErrNotQueryFolder is returned when query synchronization is requested
	// for an item that is not marked query-backed.
	ErrNotQueryFolder = errors.New("item is not a query-backed folder")

	// ErrQueryFailed wraps host failures during query-block synchronization.
	// The refresh cycle is skipped and existing children are left untouched.
	ErrQueryFailed = errors.New("host query failed")

	// ErrNoBlock is returned when navigation is requested for an item that
	// does not reference a host block.
	ErrNoBlock = errors.New("item does not reference a block")
)
