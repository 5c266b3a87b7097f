package shelf

import (
	"context"
	"fmt"
	"time"

	"github.com/arthur-debert/nanoshelf/host"
	"github.com/arthur-debert/nanoshelf/ids"
	"github.com/arthur-debert/nanoshelf/shelf/storage"
	"github.com/arthur-debert/nanoshelf/types"
)

// SyncQueryChildren reconciles a query-backed folder against a fresh run of
// its host query. Called on every expand.
//
// The reconciliation is a set-diff plus reorder, not delete-and-recreate:
// existing children keep their own id (and with it their expanded/selected
// state) across refreshes, matched by BlockID within the folder. Children
// whose block dropped out of the result set are deleted, result blocks with
// no child yet are created as documents named and decorated from the block's
// metadata, and finally the folder's children are reordered to the query's
// result order with any unsynchronized children kept behind them.
//
// Host failures skip the refresh cycle: a warning is surfaced, existing
// children are left untouched, and the rest of the tree is never corrupted.
func (s *Store) SyncQueryChildren(ctx context.Context, folderID string) error {
	var queryBlockID string
	err := s.locks.Execute(storage.ReadOperation, func() error {
		if !s.initialized {
			return ErrNotInitialized
		}
		folder := s.data.Find(folderID)
		if folder == nil {
			return ErrNotFound
		}
		if !folder.IsQueryBlock || folder.QueryBlockID == "" {
			return ErrNotQueryFolder
		}
		queryBlockID = folder.QueryBlockID
		return nil
	})
	if err != nil {
		return err
	}

	resultIDs, err := s.runHostQuery(ctx, queryBlockID)
	if err != nil {
		s.logger.Warn("query sync skipped", "folder", folderID, "error", err)
		s.gw.Notify(host.NotifyWarn, "query could not be refreshed; keeping current contents")
		return fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	// Block metadata for potential new children is fetched before the
	// storage mutation so no host I/O happens inside the load→save cycle.
	blocks := make(map[string]*types.Block, len(resultIDs))
	for _, blockID := range resultIDs {
		block, err := s.gw.GetBlock(ctx, blockID)
		if err == nil && block != nil {
			blocks[blockID] = block
		}
	}

	return s.runWrite(ctx, func() error {
		_, err := s.adapter.Mutate(ctx, func(data *types.TreeData) error {
			return reconcile(data, folderID, resultIDs, blocks, s.clock().UTC())
		})
		return err
	})
}

// runHostQuery fetches the query definition from the referenced block and
// executes it against the host.
func (s *Store) runHostQuery(ctx context.Context, queryBlockID string) ([]string, error) {
	block, err := s.gw.GetBlock(ctx, queryBlockID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch query block: %w", err)
	}
	if block == nil {
		return nil, fmt.Errorf("query block %s not found", queryBlockID)
	}
	prop, ok := block.Property(types.PropQuery)
	if !ok {
		return nil, fmt.Errorf("query block %s has no query property", queryBlockID)
	}
	q, err := types.ParseQueryDescription(prop.Value)
	if err != nil {
		return nil, fmt.Errorf("malformed query definition: %w", err)
	}
	resultIDs, err := s.gw.RunQuery(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	return resultIDs, nil
}

// reconcile applies the set-diff and reorder for one refresh as a single
// structural mutation.
func reconcile(data *types.TreeData, folderID string, resultIDs []string, blocks map[string]*types.Block, now time.Time) error {
	folder := data.Find(folderID)
	if folder == nil {
		return ErrNotFound
	}
	if !folder.IsQueryBlock {
		return ErrNotQueryFolder
	}

	resultSet := make(map[string]bool, len(resultIDs))
	for _, blockID := range resultIDs {
		resultSet[blockID] = true
	}

	// BlockID is the de-duplication key within one synchronized container:
	// the first child per block is the match candidate, later duplicates are
	// treated as stale.
	itemFor := make(map[string]string, len(resultIDs))
	var doomed []string
	for _, child := range data.ChildrenOf(folderID) {
		if child.BlockID == "" {
			continue
		}
		if _, claimed := itemFor[child.BlockID]; !claimed && resultSet[child.BlockID] {
			itemFor[child.BlockID] = child.ID
			continue
		}
		doomed = append(doomed, data.Subtree(child.ID)...)
	}
	data.Remove(doomed...)

	for _, blockID := range resultIDs {
		if _, ok := itemFor[blockID]; ok {
			continue
		}
		name, icon, color := blockID, "", ""
		if block := blocks[blockID]; block != nil {
			if n := block.DisplayName(); n != "" {
				name = n
			}
			if p, ok := block.Property(types.PropIcon); ok {
				icon = p.Value
			}
			if p, ok := block.Property(types.PropColor); ok {
				color = p.Value
			}
		}
		item := types.Item{
			ID:       ids.New(types.ItemDocument, now),
			Name:     name,
			Type:     types.ItemDocument,
			BlockID:  blockID,
			ParentID: folderID,
			Order:    len(data.ChildrenOf(folderID)),
			Icon:     icon,
			Color:    color,
			Created:  now,
			Modified: now,
		}
		data.Items = append(data.Items, item)
		itemFor[blockID] = item.ID
	}

	// Result order first, then any unsynchronized children in their
	// existing relative order.
	ordered := make([]string, 0, len(resultIDs))
	placed := make(map[string]bool, len(resultIDs))
	for _, blockID := range resultIDs {
		id := itemFor[blockID]
		if !placed[id] {
			ordered = append(ordered, id)
			placed[id] = true
		}
	}
	for _, child := range data.ChildrenOf(folderID) {
		if !placed[child.ID] {
			ordered = append(ordered, child.ID)
			placed[child.ID] = true
		}
	}
	return storage.Reorder(data, folderID, ordered)
}
