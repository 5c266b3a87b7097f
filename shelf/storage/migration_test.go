package storage

import (
	"context"
	"testing"

	"github.com/arthur-debert/nanoshelf/host"
	"github.com/arthur-debert/nanoshelf/types"
)

const legacyFixture = `{
  "notebooks": [
    {"id": "nb-work", "name": "Work", "documents": ["doc-b", "doc-a"], "created": "2023-06-01T09:00:00Z"},
    {"id": "nb-home", "name": "Home", "documents": []}
  ],
  "documents": [
    {"id": "doc-a", "name": "Roadmap", "type": "document", "blockId": "blk-road"},
    {"id": "doc-b", "name": "Projects", "children": ["doc-c"]},
    {"id": "doc-c", "name": "Notes", "type": "document", "parentId": "doc-b", "order": 0},
    {"id": "doc-d", "name": "Stray", "type": "notebook", "parentId": "nb-work", "order": 5}
  ],
  "expandedNotebooks": ["nb-work"],
  "expandedFolders": ["doc-b", "nb-work"],
  "selectedItems": ["doc-a"],
  "closedNotebooks": ["nb-home"]
}`

func TestMigrateLegacyBlob(t *testing.T) {
	a, gw := newTestAdapter(t)
	gw.SeedKV(Namespace, DataKey, legacyFixture)
	ctx := context.Background()

	data, err := a.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("notebooks become root items", func(t *testing.T) {
		nb := data.Find("nb-work")
		if nb == nil || nb.Type != types.ItemNotebook || nb.ParentID != "" {
			t.Fatalf("unexpected notebook item: %+v", nb)
		}
		if nb.Created.Year() != 2023 {
			t.Errorf("expected created timestamp carried over, got %v", nb.Created)
		}
	})

	t.Run("document list position becomes sibling order", func(t *testing.T) {
		docB, docA := data.Find("doc-b"), data.Find("doc-a")
		if docB.ParentID != "nb-work" || docA.ParentID != "nb-work" {
			t.Fatalf("expected both docs owned by nb-work, got %q and %q", docB.ParentID, docA.ParentID)
		}
		if docB.Order >= docA.Order {
			t.Errorf("expected doc-b before doc-a, got orders %d and %d", docB.Order, docA.Order)
		}
	})

	t.Run("untyped entry with children becomes a folder", func(t *testing.T) {
		if got := data.Find("doc-b").Type; got != types.ItemFolder {
			t.Errorf("expected folder, got %s", got)
		}
		if got := data.Find("doc-c").ParentID; got != "doc-b" {
			t.Errorf("expected doc-c nested under the folder, got parent %q", got)
		}
	})

	t.Run("nested notebook type degrades to folder", func(t *testing.T) {
		if got := data.Find("doc-d").Type; got != types.ItemFolder {
			t.Errorf("expected folder, got %s", got)
		}
	})

	t.Run("expansion fields union without duplicates", func(t *testing.T) {
		exp := data.Settings.ExpandedItems
		if len(exp) != 2 {
			t.Fatalf("expected 2 expanded items, got %v", exp)
		}
		if !data.Settings.IsExpanded("nb-work") || !data.Settings.IsExpanded("doc-b") {
			t.Errorf("expected nb-work and doc-b expanded, got %v", exp)
		}
	})

	t.Run("selection and closed notebooks carry over", func(t *testing.T) {
		if len(data.Settings.SelectedItems) != 1 || data.Settings.SelectedItems[0] != "doc-a" {
			t.Errorf("unexpected selection: %v", data.Settings.SelectedItems)
		}
		if !data.Settings.IsClosed("nb-home") {
			t.Error("expected nb-home to stay closed")
		}
	})

	t.Run("migration persists the new schema", func(t *testing.T) {
		blob, ok := gw.KVValue(Namespace, DataKey)
		if !ok {
			t.Fatal("expected blob written back")
		}
		if blob == legacyFixture {
			t.Error("expected migrated blob, store still holds the legacy shape")
		}
		// A second load reads the new schema directly; no migration path runs.
		again, err := a.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(again.Items) != len(data.Items) {
			t.Errorf("second load changed the item count: %d vs %d", len(again.Items), len(data.Items))
		}
	})
}

func TestMigrateUnparseableLegacyFallsBack(t *testing.T) {
	a, gw := newTestAdapter(t)
	gw.SeedKV(Namespace, DataKey, `{"notebooks": "bad"}`)

	data, err := a.Load(context.Background())
	if err != nil {
		t.Fatalf("migration failure must not be fatal, got %v", err)
	}
	if len(data.Items) != 0 {
		t.Errorf("expected empty fallback tree, got %d items", len(data.Items))
	}
	if n, ok := gw.LastNotification(); !ok || n.Level != host.NotifyWarn {
		t.Errorf("expected warning notification, got %+v ok=%v", n, ok)
	}
}
