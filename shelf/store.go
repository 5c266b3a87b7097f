// Package shelf implements the tree store: the authoritative in-memory item
// tree and the public query/mutation API a presentation layer builds on.
// The store wraps the persistence adapter with invariant checks (acyclicity,
// notebook root-confinement, order density), derives parent/child views from
// parent links on demand, and fans out change notifications after every
// successful mutation.
//
// Every write runs load→mutate→save in the adapter and then reloads the full
// snapshot from storage before listeners fire. The extra read round-trip is
// deliberate: the resident view can never silently diverge from the
// persisted blob.
package shelf

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arthur-debert/nanoshelf/host"
	"github.com/arthur-debert/nanoshelf/search"
	"github.com/arthur-debert/nanoshelf/shelf/storage"
	"github.com/arthur-debert/nanoshelf/types"
)

// ListenerHandle identifies a registered change listener.
type ListenerHandle int

// Store owns the resident tree snapshot and the public API. Construct with
// New, then call Initialize once before use; a store whose initialization
// failed answers queries with empty results and refuses mutations with
// ErrNotInitialized instead of crashing the host.
type Store struct {
	gw      host.Gateway
	adapter *storage.Adapter
	locks   *storage.LockManager
	logger  *slog.Logger
	clock   func() time.Time

	data        *types.TreeData
	initialized bool

	listeners  map[ListenerHandle]func(*types.TreeData)
	nextHandle ListenerHandle
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for store diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock overrides the time source, for deterministic timestamps in tests.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.clock = fn }
}

// New creates a store bound to the given host gateway.
func New(gw host.Gateway, opts ...Option) *Store {
	s := &Store{
		gw:        gw,
		logger:    slog.Default(),
		clock:     time.Now,
		locks:     storage.NewLockManager(),
		data:      types.NewTreeData(),
		listeners: make(map[ListenerHandle]func(*types.TreeData)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.adapter = storage.New(gw, storage.WithLogger(s.logger), storage.WithClock(s.clock))
	return s
}

// Adapter exposes the underlying persistence adapter, mainly for tests that
// need to seed storage below the store API.
func (s *Store) Adapter() *storage.Adapter {
	return s.adapter
}

// Initialize loads the tree once and arms the store. A failure is reported
// to the user and returned; the store then stays in a safe no-op state.
func (s *Store) Initialize(ctx context.Context) error {
	return s.locks.Execute(storage.WriteOperation, func() error {
		data, err := s.adapter.Load(ctx)
		if err != nil {
			s.logger.Error("store initialization failed", "error", err)
			s.gw.Notify(host.NotifyError, "failed to load tree data")
			s.initialized = false
			return fmt.Errorf("initialize: %w", err)
		}
		s.data = data
		s.initialized = true
		return nil
	})
}

// reloadLocked resynchronizes the resident snapshot from storage. Caller
// must hold the write lock.
func (s *Store) reloadLocked(ctx context.Context) error {
	data, err := s.adapter.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload snapshot: %w", err)
	}
	s.data = data
	return nil
}

// runWrite executes a mutation under the write lock: initialization check,
// the operation itself, snapshot reload, then listener fan-out outside the
// lock so listeners may call back into query methods.
func (s *Store) runWrite(ctx context.Context, fn func() error) error {
	var snap *types.TreeData
	err := s.locks.Execute(storage.WriteOperation, func() error {
		if !s.initialized {
			return ErrNotInitialized
		}
		if err := fn(); err != nil {
			return err
		}
		if err := s.reloadLocked(ctx); err != nil {
			return err
		}
		snap = s.data.Clone()
		return nil
	})
	if err != nil {
		return err
	}
	s.fanOut(snap)
	return nil
}

// AddChangeListener subscribes fn to post-mutation snapshot notifications.
// fn receives a deep copy of the fresh tree after every successful mutation.
// Fan-out is synchronous with no ordering guarantee across listeners.
func (s *Store) AddChangeListener(fn func(*types.TreeData)) ListenerHandle {
	var handle ListenerHandle
	_ = s.locks.Execute(storage.WriteOperation, func() error {
		s.nextHandle++
		handle = s.nextHandle
		s.listeners[handle] = fn
		return nil
	})
	return handle
}

// RemoveChangeListener unsubscribes a previously registered listener.
func (s *Store) RemoveChangeListener(handle ListenerHandle) {
	_ = s.locks.Execute(storage.WriteOperation, func() error {
		delete(s.listeners, handle)
		return nil
	})
}

func (s *Store) fanOut(snap *types.TreeData) {
	var fns []func(*types.TreeData)
	_ = s.locks.Execute(storage.ReadOperation, func() error {
		fns = make([]func(*types.TreeData), 0, len(s.listeners))
		for _, fn := range s.listeners {
			fns = append(fns, fn)
		}
		return nil
	})
	for _, fn := range fns {
		fn(snap)
	}
}

// ItemByID returns a copy of the item with the given id, or nil.
func (s *Store) ItemByID(id string) *types.Item {
	var out *types.Item
	_ = s.locks.Execute(storage.ReadOperation, func() error {
		if item := s.data.Find(id); item != nil {
			clone := item.Clone()
			out = &clone
		}
		return nil
	})
	return out
}

// ItemChildren returns copies of parentID's direct children sorted by order.
// The child set is recomputed from parent links on every call; the cached
// children arrays are never consulted, so a stale cache cannot produce ghost
// or missing rows.
func (s *Store) ItemChildren(parentID string) []types.Item {
	var out []types.Item
	_ = s.locks.Execute(storage.ReadOperation, func() error {
		for _, child := range s.data.ChildrenOf(parentID) {
			out = append(out, child.Clone())
		}
		return nil
	})
	return out
}

// RootItems returns the root-level items in order, excluding closed
// notebooks.
func (s *Store) RootItems() []types.Item {
	var out []types.Item
	_ = s.locks.Execute(storage.ReadOperation, func() error {
		for _, item := range s.data.ChildrenOf("") {
			if s.data.Settings.IsClosed(item.ID) {
				continue
			}
			out = append(out, item.Clone())
		}
		return nil
	})
	return out
}

// SearchItems returns items whose name contains the keyword,
// case-insensitively, best matches first.
func (s *Store) SearchItems(keyword string) []types.Item {
	var out []types.Item
	_ = s.locks.Execute(storage.ReadOperation, func() error {
		engine := search.NewEngine(snapshotProvider{data: s.data})
		results, err := engine.Search(search.Options{Query: keyword})
		if err != nil {
			s.logger.Warn("search failed", "error", err)
			return nil
		}
		for _, r := range results {
			out = append(out, r.Item)
		}
		return nil
	})
	return out
}

// Settings returns a copy of the persisted UI settings.
func (s *Store) Settings() types.Settings {
	var out types.Settings
	_ = s.locks.Execute(storage.ReadOperation, func() error {
		out = s.data.Settings.Clone()
		return nil
	})
	return out
}

// Snapshot returns a deep copy of the full resident tree.
func (s *Store) Snapshot() *types.TreeData {
	var out *types.TreeData
	_ = s.locks.Execute(storage.ReadOperation, func() error {
		out = s.data.Clone()
		return nil
	})
	return out
}

// NavigateToItem asks the host to jump to the block the item references.
func (s *Store) NavigateToItem(ctx context.Context, id string) error {
	var blockID string
	err := s.locks.Execute(storage.ReadOperation, func() error {
		item := s.data.Find(id)
		if item == nil {
			return ErrNotFound
		}
		if item.BlockID == "" {
			return ErrNoBlock
		}
		blockID = item.BlockID
		return nil
	})
	if err != nil {
		return err
	}
	return s.gw.NavigateToBlock(ctx, blockID)
}

// snapshotProvider adapts the resident item list to the search engine's
// provider interface. It is constructed under the read lock and used only
// within it.
type snapshotProvider struct {
	data *types.TreeData
}

func (p snapshotProvider) Items() ([]types.Item, error) {
	out := make([]types.Item, 0, len(p.data.Items))
	for i := range p.data.Items {
		out = append(out, p.data.Items[i].Clone())
	}
	return out, nil
}
