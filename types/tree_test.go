package types

import (
	"testing"
	"time"
)

func itemFixture() *TreeData {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &TreeData{
		Items: []Item{
			{ID: "nb1", Name: "Work", Type: ItemNotebook, Order: 0, Children: []string{"f1"}, Created: created},
			{ID: "f1", Name: "Projects", Type: ItemFolder, ParentID: "nb1", Order: 0, Children: []string{"d1", "d2"}, Created: created},
			{ID: "d1", Name: "Roadmap", Type: ItemDocument, ParentID: "f1", Order: 0, Created: created},
			{ID: "d2", Name: "Notes", Type: ItemDocument, ParentID: "f1", Order: 1, Created: created},
			{ID: "d3", Name: "Scratch", Type: ItemDocument, Order: 1, Created: created},
		},
		Settings: Settings{
			ExpandedItems:   []string{"nb1"},
			SelectedItems:   []string{},
			ClosedNotebooks: []string{},
		},
	}
}

func TestChildrenOfRecomputesFromParentLinks(t *testing.T) {
	data := itemFixture()

	// Corrupt the cached index; the derived view must not care.
	data.Find("f1").Children = []string{"ghost", "d1"}

	children := data.ChildrenOf("f1")
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	if children[0].ID != "d1" || children[1].ID != "d2" {
		t.Errorf("expected [d1 d2], got [%s %s]", children[0].ID, children[1].ID)
	}
}

func TestChildrenOfOrdersByOrderField(t *testing.T) {
	data := itemFixture()
	data.Find("d1").Order = 5
	children := data.ChildrenOf("f1")
	if children[0].ID != "d2" || children[1].ID != "d1" {
		t.Errorf("expected [d2 d1], got [%s %s]", children[0].ID, children[1].ID)
	}
}

func TestSubtree(t *testing.T) {
	data := itemFixture()

	got := data.Subtree("nb1")
	want := []string{"nb1", "f1", "d1", "d2"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	if data.Subtree("missing") != nil {
		t.Error("expected nil subtree for unknown id")
	}

	leaf := data.Subtree("d1")
	if len(leaf) != 1 || leaf[0] != "d1" {
		t.Errorf("expected leaf subtree [d1], got %v", leaf)
	}
}

func TestIsAncestorOf(t *testing.T) {
	data := itemFixture()

	tests := []struct {
		name     string
		ancestor string
		id       string
		want     bool
	}{
		{"self", "d1", "d1", true},
		{"direct parent", "f1", "d1", true},
		{"grandparent", "nb1", "d1", true},
		{"sibling", "d2", "d1", false},
		{"descendant is not ancestor", "d1", "f1", false},
		{"unrelated root", "d3", "d1", false},
		{"missing id", "nb1", "missing", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := data.IsAncestorOf(tt.ancestor, tt.id); got != tt.want {
				t.Errorf("IsAncestorOf(%s, %s) = %v, want %v", tt.ancestor, tt.id, got, tt.want)
			}
		})
	}
}

func TestIsAncestorOfBoundsCorruptedChains(t *testing.T) {
	data := itemFixture()
	// Manufacture a parent cycle that could never come from the public API.
	data.Find("f1").ParentID = "d1"

	if data.IsAncestorOf("nb1", "d1") {
		t.Error("walk over a cyclic chain must terminate and report false")
	}
}

func TestRemoveAndRenumber(t *testing.T) {
	data := itemFixture()
	data.Remove("d1")
	data.Renumber("f1")

	if data.Find("d1") != nil {
		t.Fatal("d1 should be gone")
	}
	d2 := data.Find("d2")
	if d2.Order != 0 {
		t.Errorf("expected d2 repacked to order 0, got %d", d2.Order)
	}
	f1 := data.Find("f1")
	if len(f1.Children) != 1 || f1.Children[0] != "d2" {
		t.Errorf("expected children [d2], got %v", f1.Children)
	}
}

func TestNormalize(t *testing.T) {
	t.Run("reattaches orphans at root", func(t *testing.T) {
		data := itemFixture()
		data.Find("d2").ParentID = "missing-parent"
		data.Normalize()
		if got := data.Find("d2").ParentID; got != "" {
			t.Errorf("expected orphan reattached at root, got parent %q", got)
		}
	})

	t.Run("confines notebooks to root", func(t *testing.T) {
		data := itemFixture()
		data.Items = append(data.Items, Item{ID: "nb2", Name: "Nested", Type: ItemNotebook, ParentID: "f1"})
		data.Normalize()
		if got := data.Find("nb2").ParentID; got != "" {
			t.Errorf("expected notebook forced to root, got parent %q", got)
		}
	})

	t.Run("degrades unknown types to document", func(t *testing.T) {
		data := itemFixture()
		data.Items = append(data.Items, Item{ID: "x1", Name: "Odd", Type: "widget"})
		data.Normalize()
		if got := data.Find("x1").Type; got != ItemDocument {
			t.Errorf("expected document, got %s", got)
		}
	})

	t.Run("items parented to non-containers move to root", func(t *testing.T) {
		data := itemFixture()
		data.Items = append(data.Items, Item{ID: "x2", Name: "Child of doc", Type: ItemDocument, ParentID: "d1"})
		data.Normalize()
		if got := data.Find("x2").ParentID; got != "" {
			t.Errorf("expected reattachment at root, got parent %q", got)
		}
	})

	t.Run("repacks orders dense", func(t *testing.T) {
		data := itemFixture()
		data.Find("d1").Order = 7
		data.Find("d2").Order = 12
		data.Normalize()
		orders := map[int]bool{}
		for _, c := range data.ChildrenOf("f1") {
			orders[c.Order] = true
		}
		if !orders[0] || !orders[1] || len(orders) != 2 {
			t.Errorf("expected dense orders {0,1}, got %v", orders)
		}
	})
}

func TestCloneIsDeep(t *testing.T) {
	data := itemFixture()
	clone := data.Clone()

	clone.Find("f1").Children[0] = "mutated"
	clone.Settings.ExpandedItems[0] = "mutated"
	clone.Find("d1").Name = "mutated"

	if data.Find("f1").Children[0] != "d1" {
		t.Error("clone shares the children slice with the original")
	}
	if data.Settings.ExpandedItems[0] != "nb1" {
		t.Error("clone shares settings slices with the original")
	}
	if data.Find("d1").Name != "Roadmap" {
		t.Error("clone shares item storage with the original")
	}
}
