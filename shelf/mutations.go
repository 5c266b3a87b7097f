package shelf

import (
	"context"
	"fmt"

	"github.com/arthur-debert/nanoshelf/shelf/storage"
	"github.com/arthur-debert/nanoshelf/types"
)

// Every mutation validates invariants against the resident snapshot before
// any adapter call, so a refused operation is a pure no-op: nothing was
// written, nothing needs rolling back. After the adapter persists, the full
// snapshot is reloaded and listeners are notified (see runWrite).

// CreateItem creates a new item and returns a copy of it. Notebooks are only
// created at the root; a non-empty parent must exist and be a container.
func (s *Store) CreateItem(ctx context.Context, name string, typ types.ItemType, opts storage.CreateOptions) (*types.Item, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("unknown item type %q", typ)
	}
	var created *types.Item
	err := s.runWrite(ctx, func() error {
		if typ == types.ItemNotebook {
			if opts.ParentID != "" {
				return ErrNotebookNested
			}
			// Notebooks never reference a block.
			opts.BlockID = ""
		}
		if opts.ParentID != "" {
			parent := s.data.Find(opts.ParentID)
			if parent == nil {
				return ErrNotFound
			}
			if !parent.IsContainer() {
				return ErrNotContainer
			}
		}
		item, err := s.adapter.CreateItem(ctx, name, typ, opts)
		if err != nil {
			return err
		}
		created = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteItem removes the item and its entire subtree.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	return s.runWrite(ctx, func() error {
		if s.data.Find(id) == nil {
			return ErrNotFound
		}
		return s.adapter.DeleteItem(ctx, id)
	})
}

// RenameItem updates the display name of an item.
func (s *Store) RenameItem(ctx context.Context, id, newName string) error {
	return s.runWrite(ctx, func() error {
		if s.data.Find(id) == nil {
			return ErrNotFound
		}
		return s.adapter.RenameItem(ctx, id, newName)
	})
}

// MoveItem re-parents an item, inserting it among its new siblings at
// insertIndex (clamped; negative appends). The move is refused when it would
// create a cycle or nest a notebook.
func (s *Store) MoveItem(ctx context.Context, id, newParentID string, insertIndex int) error {
	return s.runWrite(ctx, func() error {
		item := s.data.Find(id)
		if item == nil {
			return ErrNotFound
		}
		if item.Type == types.ItemNotebook && newParentID != "" {
			return ErrNotebookNested
		}
		if newParentID != "" {
			if s.data.IsAncestorOf(id, newParentID) {
				// Covers newParentID == id as well: an item is its own
				// zero-length ancestor chain.
				return ErrCycle
			}
			parent := s.data.Find(newParentID)
			if parent == nil {
				return ErrNotFound
			}
			if !parent.IsContainer() {
				return ErrNotContainer
			}
		}
		return s.adapter.MoveItem(ctx, id, newParentID, insertIndex)
	})
}

// ReorderItems replaces the sibling order under parentID with the given
// permutation. An empty parentID reorders the root level. Reordering never
// changes parentage, so no cycle check applies.
func (s *Store) ReorderItems(ctx context.Context, parentID string, orderedIDs []string) error {
	return s.runWrite(ctx, func() error {
		if parentID != "" {
			parent := s.data.Find(parentID)
			if parent == nil {
				return ErrNotFound
			}
			if !parent.IsContainer() {
				return ErrNotContainer
			}
		}
		return s.adapter.ReorderItems(ctx, parentID, orderedIDs)
	})
}

// EnsureFolder idempotently promotes a plain document into a folder capable
// of holding children. Containers pass through untouched. Used when the UI
// drops an item onto a leaf document to nest something under it.
func (s *Store) EnsureFolder(ctx context.Context, id string) error {
	var alreadyContainer bool
	err := s.locks.Execute(storage.ReadOperation, func() error {
		item := s.data.Find(id)
		if item == nil {
			return ErrNotFound
		}
		alreadyContainer = item.IsContainer()
		return nil
	})
	if err != nil {
		return err
	}
	if alreadyContainer {
		return nil
	}
	return s.runWrite(ctx, func() error {
		_, err := s.adapter.Mutate(ctx, func(data *types.TreeData) error {
			item := data.Find(id)
			if item == nil {
				return ErrNotFound
			}
			if !item.IsContainer() {
				item.Type = types.ItemFolder
				item.Children = []string{}
			}
			return nil
		})
		return err
	})
}

// SetQueryBlock marks a folder as query-backed, promoting a document first
// when needed. An empty queryBlockID clears the marking.
func (s *Store) SetQueryBlock(ctx context.Context, id, queryBlockID string) error {
	return s.runWrite(ctx, func() error {
		_, err := s.adapter.Mutate(ctx, func(data *types.TreeData) error {
			item := data.Find(id)
			if item == nil {
				return ErrNotFound
			}
			if item.Type == types.ItemNotebook {
				return ErrNotNotebook
			}
			if !item.IsContainer() {
				item.Type = types.ItemFolder
				item.Children = []string{}
			}
			item.IsQueryBlock = queryBlockID != ""
			item.QueryBlockID = queryBlockID
			return nil
		})
		return err
	})
}

// CloseNotebook hides a notebook's whole subtree from RootItems without
// touching the persisted structure. A soft visibility flag, not a deletion.
func (s *Store) CloseNotebook(ctx context.Context, id string) error {
	return s.runWrite(ctx, func() error {
		item := s.data.Find(id)
		if item == nil {
			return ErrNotFound
		}
		if item.Type != types.ItemNotebook {
			return ErrNotNotebook
		}
		return s.adapter.UpdateSettings(ctx, func(set *types.Settings) {
			if !containsID(set.ClosedNotebooks, id) {
				set.ClosedNotebooks = append(set.ClosedNotebooks, id)
			}
		})
	})
}

// RestoreNotebook makes a closed notebook visible again. Restoring a
// notebook that is not closed is a no-op success.
func (s *Store) RestoreNotebook(ctx context.Context, id string) error {
	return s.runWrite(ctx, func() error {
		item := s.data.Find(id)
		if item == nil {
			return ErrNotFound
		}
		if item.Type != types.ItemNotebook {
			return ErrNotNotebook
		}
		return s.adapter.UpdateSettings(ctx, func(set *types.Settings) {
			set.ClosedNotebooks = removeID(set.ClosedNotebooks, id)
		})
	})
}

// SetExpanded records whether the item's subtree is expanded in the UI.
func (s *Store) SetExpanded(ctx context.Context, id string, expanded bool) error {
	return s.runWrite(ctx, func() error {
		if expanded && s.data.Find(id) == nil {
			return ErrNotFound
		}
		return s.adapter.UpdateSettings(ctx, func(set *types.Settings) {
			if expanded {
				if !containsID(set.ExpandedItems, id) {
					set.ExpandedItems = append(set.ExpandedItems, id)
				}
			} else {
				set.ExpandedItems = removeID(set.ExpandedItems, id)
			}
		})
	})
}

// SetSelected replaces the current selection.
func (s *Store) SetSelected(ctx context.Context, ids ...string) error {
	return s.runWrite(ctx, func() error {
		return s.adapter.UpdateSettings(ctx, func(set *types.Settings) {
			set.SelectedItems = append([]string{}, ids...)
		})
	})
}

func containsID(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(list []string, id string) []string {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
