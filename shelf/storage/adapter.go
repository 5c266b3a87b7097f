// Package storage is the persistence adapter for the item tree. It is the
// only component that touches the host key/value store: it owns blob
// (de)serialization, one-shot migration from the legacy schema, and the
// structural primitives (create, delete-subtree, rename, move, reorder) that
// every higher-level mutation is built from. Each primitive runs one
// load→mutate→save cycle against the full blob; partial writes cannot occur
// because the host's KVSet is atomic by contract.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arthur-debert/nanoshelf/host"
	"github.com/arthur-debert/nanoshelf/ids"
	"github.com/arthur-debert/nanoshelf/types"
)

const (
	// Namespace is the fixed key/value namespace the overlay persists under.
	Namespace = "nanoshelf"

	// DataKey is the single key holding the serialized tree blob.
	DataKey = "tree"
)

// ErrNotFound is returned when a primitive targets an id that does not exist
// in the persisted tree.
var ErrNotFound = errors.New("item not found")

// Adapter serializes the item tree into the host key/value store and
// implements the low-level structural primitives on top of whole-blob
// load/save.
type Adapter struct {
	gw     host.Gateway
	logger *slog.Logger
	clock  func() time.Time
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for storage diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) { a.logger = l }
}

// WithClock overrides the time source, for deterministic timestamps in tests.
func WithClock(fn func() time.Time) Option {
	return func(a *Adapter) { a.clock = fn }
}

// New creates an adapter bound to the given host gateway.
func New(gw host.Gateway, opts ...Option) *Adapter {
	a := &Adapter{
		gw:     gw,
		logger: slog.Default(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load reads the whole tree from the host store. A missing key yields the
// empty default tree. A blob in the legacy schema shape is migrated once and
// the result persisted back. A malformed blob is never fatal: the failure is
// logged and surfaced as a warning, and the empty default is returned so the
// caller starts from a safe state instead of crashing the host.
func (a *Adapter) Load(ctx context.Context) (*types.TreeData, error) {
	raw, ok, err := a.gw.KVGet(ctx, Namespace, DataKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree blob: %w", err)
	}
	if !ok || raw == "" {
		return types.NewTreeData(), nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		a.logger.Warn("tree blob is not valid JSON, starting from empty tree", "error", err)
		a.gw.Notify(host.NotifyWarn, "stored tree data could not be read; starting with an empty tree")
		return types.NewTreeData(), nil
	}

	if _, hasItems := probe["items"]; !hasItems && isLegacyShape(probe) {
		data, err := a.migrateLegacy(raw)
		if err != nil {
			a.logger.Warn("legacy tree blob could not be migrated, starting from empty tree", "error", err)
			a.gw.Notify(host.NotifyWarn, "stored tree data could not be migrated; starting with an empty tree")
			return types.NewTreeData(), nil
		}
		a.logger.Info("migrated legacy tree data", "items", len(data.Items))
		if err := a.Save(ctx, data); err != nil {
			return nil, fmt.Errorf("failed to persist migrated tree: %w", err)
		}
		return data, nil
	}

	var data types.TreeData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		a.logger.Warn("tree blob has unexpected structure, starting from empty tree", "error", err)
		a.gw.Notify(host.NotifyWarn, "stored tree data could not be read; starting with an empty tree")
		return types.NewTreeData(), nil
	}
	data.Normalize()
	return &data, nil
}

// Save stamps every item's Modified timestamp, serializes the tree and
// writes it to the host store. Write failures are surfaced to the user and
// returned; nothing is partially written.
func (a *Adapter) Save(ctx context.Context, data *types.TreeData) error {
	now := a.clock()
	for i := range data.Items {
		data.Items[i].Modified = now
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal tree: %w", err)
	}
	if err := a.gw.KVSet(ctx, Namespace, DataKey, string(raw)); err != nil {
		a.gw.Notify(host.NotifyError, "failed to save tree data")
		return fmt.Errorf("failed to write tree blob: %w", err)
	}
	return nil
}

// Mutate runs fn against a freshly loaded tree and persists the result as
// one atomic write. It is the building block for compound mutations that
// must not be observable half-applied, like query reconciliation.
func (a *Adapter) Mutate(ctx context.Context, fn func(*types.TreeData) error) (*types.TreeData, error) {
	data, err := a.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(data); err != nil {
		return nil, err
	}
	if err := a.Save(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

// CreateOptions carries the optional fields of a new item.
type CreateOptions struct {
	BlockID  string
	ParentID string
	Icon     string
	Color    string
}

// CreateItem allocates a fresh id, computes the next sibling order and
// appends the item to the flat list and its parent's child index.
func (a *Adapter) CreateItem(ctx context.Context, name string, typ types.ItemType, opts CreateOptions) (*types.Item, error) {
	now := a.clock()
	item := types.Item{
		ID:       ids.New(typ, now),
		Name:     name,
		Type:     typ,
		BlockID:  opts.BlockID,
		ParentID: opts.ParentID,
		Icon:     opts.Icon,
		Color:    opts.Color,
		Created:  now,
		Modified: now,
	}
	if typ.IsContainer() {
		item.Children = []string{}
	}

	_, err := a.Mutate(ctx, func(data *types.TreeData) error {
		item.Order = nextOrder(data, opts.ParentID)
		data.Items = append(data.Items, item)
		if opts.ParentID != "" {
			if parent := data.Find(opts.ParentID); parent != nil && parent.IsContainer() {
				parent.Children = append(parent.Children, item.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes the item and its entire subtree, then re-packs the
// former parent's sibling orders. Settings entries referencing the deleted
// ids are scrubbed in the same write so the blob never accumulates stale ids.
func (a *Adapter) DeleteItem(ctx context.Context, id string) error {
	_, err := a.Mutate(ctx, func(data *types.TreeData) error {
		item := data.Find(id)
		if item == nil {
			return ErrNotFound
		}
		parentID := item.ParentID
		doomed := data.Subtree(id)
		data.Remove(doomed...)
		data.Renumber(parentID)
		scrubSettings(&data.Settings, doomed)
		return nil
	})
	return err
}

func scrubSettings(set *types.Settings, ids []string) {
	gone := make(map[string]bool, len(ids))
	for _, id := range ids {
		gone[id] = true
	}
	set.ExpandedItems = dropIDs(set.ExpandedItems, gone)
	set.SelectedItems = dropIDs(set.SelectedItems, gone)
	set.ClosedNotebooks = dropIDs(set.ClosedNotebooks, gone)
}

func dropIDs(list []string, gone map[string]bool) []string {
	kept := list[:0]
	for _, id := range list {
		if !gone[id] {
			kept = append(kept, id)
		}
	}
	return kept
}

// RenameItem updates the display name; no structural change beyond the
// Modified stamp applied by Save.
func (a *Adapter) RenameItem(ctx context.Context, id, newName string) error {
	_, err := a.Mutate(ctx, func(data *types.TreeData) error {
		item := data.Find(id)
		if item == nil {
			return ErrNotFound
		}
		item.Name = newName
		return nil
	})
	return err
}

// MoveItem re-parents the item and inserts it among its new siblings at
// insertIndex, clamped to the valid range; a negative index appends. Both
// the old and the new parent's orders are re-packed dense.
func (a *Adapter) MoveItem(ctx context.Context, id, newParentID string, insertIndex int) error {
	_, err := a.Mutate(ctx, func(data *types.TreeData) error {
		item := data.Find(id)
		if item == nil {
			return ErrNotFound
		}
		oldParentID := item.ParentID

		// Target sibling order with the moved item spliced out, then back in
		// at the requested position.
		siblings := data.ChildIDs(newParentID)
		filtered := siblings[:0]
		for _, sid := range siblings {
			if sid != id {
				filtered = append(filtered, sid)
			}
		}
		idx := insertIndex
		if idx < 0 || idx > len(filtered) {
			idx = len(filtered)
		}
		ordered := make([]string, 0, len(filtered)+1)
		ordered = append(ordered, filtered[:idx]...)
		ordered = append(ordered, id)
		ordered = append(ordered, filtered[idx:]...)

		item.ParentID = newParentID
		for pos, sid := range ordered {
			if sibling := data.Find(sid); sibling != nil {
				sibling.Order = pos
			}
		}
		data.Renumber(newParentID)
		if oldParentID != newParentID {
			data.Renumber(oldParentID)
		}
		return nil
	})
	return err
}

// ReorderItems replaces the sibling order under parentID with the given
// permutation and renumbers every affected item to its list position. An
// empty parentID reorders the root level. The permutation must cover exactly
// the current child set.
func (a *Adapter) ReorderItems(ctx context.Context, parentID string, orderedIDs []string) error {
	_, err := a.Mutate(ctx, func(data *types.TreeData) error {
		return reorder(data, parentID, orderedIDs)
	})
	return err
}

// UpdateSettings applies fn to the persisted settings as one atomic write.
func (a *Adapter) UpdateSettings(ctx context.Context, fn func(*types.Settings)) error {
	_, err := a.Mutate(ctx, func(data *types.TreeData) error {
		fn(&data.Settings)
		return nil
	})
	return err
}

// reorder validates that orderedIDs is a permutation of parentID's actual
// child set and applies it.
func reorder(data *types.TreeData, parentID string, orderedIDs []string) error {
	current := data.ChildIDs(parentID)
	if len(current) != len(orderedIDs) {
		return fmt.Errorf("reorder of %q: got %d ids, have %d children", parentID, len(orderedIDs), len(current))
	}
	currentSet := make(map[string]bool, len(current))
	for _, id := range current {
		currentSet[id] = true
	}
	for _, id := range orderedIDs {
		if !currentSet[id] {
			return fmt.Errorf("reorder of %q: %s is not a child", parentID, id)
		}
		delete(currentSet, id)
	}

	for pos, id := range orderedIDs {
		if item := data.Find(id); item != nil {
			item.Order = pos
		}
	}
	data.Renumber(parentID)
	return nil
}

// Reorder applies a validated permutation to an already loaded tree. It is
// exported for compound mutations that batch several structural steps into
// one Mutate call.
func Reorder(data *types.TreeData, parentID string, orderedIDs []string) error {
	return reorder(data, parentID, orderedIDs)
}

func nextOrder(data *types.TreeData, parentID string) int {
	max := -1
	for i := range data.Items {
		if data.Items[i].ParentID == parentID && data.Items[i].Order > max {
			max = data.Items[i].Order
		}
	}
	return max + 1
}

func isLegacyShape(probe map[string]json.RawMessage) bool {
	_, hasNotebooks := probe["notebooks"]
	_, hasDocuments := probe["documents"]
	return hasNotebooks || hasDocuments
}
