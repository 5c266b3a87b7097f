package testutil

import (
	"testing"

	"github.com/arthur-debert/nanoshelf/shelf"
	"github.com/arthur-debert/nanoshelf/types"
)

// AssertItemCount checks that the slice contains the expected number of items.
func AssertItemCount(t *testing.T, items []types.Item, expected int, context ...string) {
	t.Helper()
	if len(items) != expected {
		ctx := ""
		if len(context) > 0 {
			ctx = " " + context[0]
		}
		t.Errorf("expected %d items%s, got %d", expected, ctx, len(items))
	}
}

// AssertChildNames verifies parentID's children match the expected names in
// order.
func AssertChildNames(t *testing.T, store *shelf.Store, parentID string, expected ...string) {
	t.Helper()
	children := store.ItemChildren(parentID)
	if len(children) != len(expected) {
		t.Fatalf("expected %d children, got %d", len(expected), len(children))
	}
	for i, name := range expected {
		if children[i].Name != name {
			t.Errorf("child %d: expected %q, got %q", i, name, children[i].Name)
		}
	}
}

// AssertOrderDense verifies that the order values among parentID's children
// form the dense sequence 0..n-1 with no gaps or duplicates.
func AssertOrderDense(t *testing.T, store *shelf.Store, parentID string) {
	t.Helper()
	children := store.ItemChildren(parentID)
	seen := make(map[int]bool, len(children))
	for _, c := range children {
		if c.Order < 0 || c.Order >= len(children) {
			t.Errorf("order %d of %q outside dense range 0..%d", c.Order, c.Name, len(children)-1)
		}
		if seen[c.Order] {
			t.Errorf("duplicate order %d among children of %q", c.Order, parentID)
		}
		seen[c.Order] = true
	}
}

// AssertItemExists verifies that an item with the given id exists.
func AssertItemExists(t *testing.T, store *shelf.Store, id string) {
	t.Helper()
	if store.ItemByID(id) == nil {
		t.Errorf("item %s not found", id)
	}
}

// AssertItemGone verifies that no item with the given id exists.
func AssertItemGone(t *testing.T, store *shelf.Store, id string) {
	t.Helper()
	if store.ItemByID(id) != nil {
		t.Errorf("item %s should have been deleted", id)
	}
}

// AssertAcyclic walks every item's parent chain to the root and fails when a
// chain revisits an item.
func AssertAcyclic(t *testing.T, store *shelf.Store) {
	t.Helper()
	snap := store.Snapshot()
	for _, item := range snap.Items {
		visited := map[string]bool{}
		for current := item.ID; current != ""; {
			if visited[current] {
				t.Fatalf("cycle detected in parent chain of %s", item.ID)
			}
			visited[current] = true
			parent := snap.Find(current)
			if parent == nil {
				break
			}
			current = parent.ParentID
		}
	}
}

// AssertNotebooksAtRoot fails when any notebook has a parent.
func AssertNotebooksAtRoot(t *testing.T, store *shelf.Store) {
	t.Helper()
	snap := store.Snapshot()
	for _, item := range snap.Items {
		if item.Type == types.ItemNotebook && item.ParentID != "" {
			t.Errorf("notebook %q has parent %q, notebooks must stay at root", item.Name, item.ParentID)
		}
	}
}
