// Package host defines the boundary to the note-taking application the tree
// overlay runs inside. The core never touches the host through ambient
// globals; everything it consumes (block lookup, query execution,
// navigation, key/value persistence, user notification) goes through the
// Gateway interface injected at construction.
package host

import (
	"context"

	"github.com/arthur-debert/nanoshelf/types"
)

// NotifyLevel classifies a user-facing notification.
type NotifyLevel int

const (
	NotifyInfo NotifyLevel = iota
	NotifyWarn
	NotifyError
)

// String returns the lowercase level name.
func (l NotifyLevel) String() string {
	switch l {
	case NotifyInfo:
		return "info"
	case NotifyWarn:
		return "warn"
	case NotifyError:
		return "error"
	}
	return "unknown"
}

// Gateway is the complete surface the core consumes from the host
// application. Implementations must be safe for sequential use from a single
// logical actor; the core serializes its own calls.
type Gateway interface {
	// GetBlock fetches a content block by id. A missing block is (nil, nil),
	// not an error.
	GetBlock(ctx context.Context, id string) (*types.Block, error)

	// RunQuery executes a structured query and returns matching block ids in
	// result order.
	RunQuery(ctx context.Context, q types.QueryDescription) ([]string, error)

	// NavigateToBlock asks the host to jump to and focus the given block.
	NavigateToBlock(ctx context.Context, id string) error

	// KVGet reads an opaque string value from the host's key/value store.
	// The boolean result distinguishes an absent key from an empty value.
	KVGet(ctx context.Context, namespace, key string) (string, bool, error)

	// KVSet writes an opaque string value. The host contract is atomic:
	// a value is either fully written or not written at all.
	KVSet(ctx context.Context, namespace, key, value string) error

	// Notify surfaces a user-facing message through the host's UI.
	Notify(level NotifyLevel, message string)
}
