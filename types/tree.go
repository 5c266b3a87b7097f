package types

import "sort"

// Settings holds the UI-facing state persisted alongside the item tree:
// which subtrees are expanded, what is selected, and which notebooks are
// hidden from the root view without being deleted.
type Settings struct {
	ExpandedItems   []string `json:"expandedItems"`
	SelectedItems   []string `json:"selectedItems"`
	ClosedNotebooks []string `json:"closedNotebooks"`
}

// IsExpanded reports whether the given item id is marked expanded.
func (s *Settings) IsExpanded(id string) bool {
	return containsString(s.ExpandedItems, id)
}

// IsClosed reports whether the given notebook id is hidden from the root view.
func (s *Settings) IsClosed(id string) bool {
	return containsString(s.ClosedNotebooks, id)
}

// Clone returns a deep copy of the settings.
func (s *Settings) Clone() Settings {
	return Settings{
		ExpandedItems:   append([]string(nil), s.ExpandedItems...),
		SelectedItems:   append([]string(nil), s.SelectedItems...),
		ClosedNotebooks: append([]string(nil), s.ClosedNotebooks...),
	}
}

// TreeData is the complete persisted state: the flat item list plus settings.
// It is serialized as a single JSON blob into the host key/value store.
type TreeData struct {
	Items    []Item   `json:"items"`
	Settings Settings `json:"settings"`
}

// NewTreeData returns an empty tree with initialized settings slices.
func NewTreeData() *TreeData {
	return &TreeData{
		Items: []Item{},
		Settings: Settings{
			ExpandedItems:   []string{},
			SelectedItems:   []string{},
			ClosedNotebooks: []string{},
		},
	}
}

// Find returns a pointer to the item with the given id, or nil.
// The pointer aliases the Items slice and stays valid only until the next
// structural mutation.
func (d *TreeData) Find(id string) *Item {
	for i := range d.Items {
		if d.Items[i].ID == id {
			return &d.Items[i]
		}
	}
	return nil
}

// IndexOf returns the position of the item with the given id in Items,
// or -1 when absent.
func (d *TreeData) IndexOf(id string) int {
	for i := range d.Items {
		if d.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// ChildrenOf returns pointers to the direct children of parentID, sorted by
// Order. The child set is always recomputed from ParentID links; the cached
// Children arrays are deliberately not consulted, so a stale cache can never
// produce a ghost or missing row.
func (d *TreeData) ChildrenOf(parentID string) []*Item {
	var out []*Item
	for i := range d.Items {
		if d.Items[i].ParentID == parentID {
			out = append(out, &d.Items[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Created.Before(out[j].Created)
	})
	return out
}

// ChildIDs returns the ordered ids of the direct children of parentID.
func (d *TreeData) ChildIDs(parentID string) []string {
	children := d.ChildrenOf(parentID)
	ids := make([]string, len(children))
	for i, c := range children {
		ids[i] = c.ID
	}
	return ids
}

// Subtree returns the given id plus every id transitively reachable from it
// through parent links, in breadth-first order. Returns nil when id is absent.
func (d *TreeData) Subtree(id string) []string {
	if d.Find(id) == nil {
		return nil
	}
	collected := []string{id}
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range d.ChildrenOf(current) {
			collected = append(collected, child.ID)
			queue = append(queue, child.ID)
		}
	}
	return collected
}

// IsAncestorOf reports whether ancestorID is id itself or a transitive
// ancestor of id. The walk follows ParentID upward with a visited set so a
// corrupted cyclic chain cannot loop forever.
func (d *TreeData) IsAncestorOf(ancestorID, id string) bool {
	visited := make(map[string]bool)
	for current := id; current != ""; {
		if current == ancestorID {
			return true
		}
		if visited[current] {
			return false
		}
		visited[current] = true
		item := d.Find(current)
		if item == nil {
			return false
		}
		current = item.ParentID
	}
	return false
}

// Remove deletes the items with the given ids from the flat list.
func (d *TreeData) Remove(ids ...string) {
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}
	kept := d.Items[:0]
	for _, it := range d.Items {
		if !doomed[it.ID] {
			kept = append(kept, it)
		}
	}
	d.Items = kept
}

// Renumber re-packs the Order values of parentID's children into a dense
// 0..n-1 sequence matching their current sorted positions, and refreshes the
// parent's cached Children index.
func (d *TreeData) Renumber(parentID string) {
	children := d.ChildrenOf(parentID)
	ids := make([]string, len(children))
	for i, c := range children {
		c.Order = i
		ids[i] = c.ID
	}
	if parentID != "" {
		if parent := d.Find(parentID); parent != nil && parent.IsContainer() {
			parent.Children = ids
		}
	}
}

// RebuildChildren reconstructs every container's cached Children index from
// ParentID links and clears the index on non-containers. Containers with no
// children keep an empty, non-nil index.
func (d *TreeData) RebuildChildren() {
	for i := range d.Items {
		it := &d.Items[i]
		if it.IsContainer() {
			ids := d.ChildIDs(it.ID)
			if ids == nil {
				ids = []string{}
			}
			it.Children = ids
		} else {
			it.Children = nil
		}
	}
}

// Normalize repairs the structural invariants a freshly loaded blob may
// violate: unknown types degrade to document, items whose parent is missing
// or not a container are reattached at the root, every parent's orders are
// re-packed dense, and the cached child indexes are rebuilt.
func (d *TreeData) Normalize() {
	if d.Items == nil {
		d.Items = []Item{}
	}
	if d.Settings.ExpandedItems == nil {
		d.Settings.ExpandedItems = []string{}
	}
	if d.Settings.SelectedItems == nil {
		d.Settings.SelectedItems = []string{}
	}
	if d.Settings.ClosedNotebooks == nil {
		d.Settings.ClosedNotebooks = []string{}
	}

	for i := range d.Items {
		it := &d.Items[i]
		it.Type = NormalizeType(string(it.Type))
		if it.Type == ItemNotebook {
			// Notebooks are root-confined.
			it.ParentID = ""
			it.BlockID = ""
		}
		if it.ParentID != "" {
			parent := d.Find(it.ParentID)
			if parent == nil || !parent.IsContainer() || parent.ID == it.ID {
				it.ParentID = ""
			}
		}
	}

	seen := map[string]bool{"": true}
	d.Renumber("")
	for i := range d.Items {
		pid := d.Items[i].ParentID
		if !seen[pid] {
			seen[pid] = true
			d.Renumber(pid)
		}
	}
	d.RebuildChildren()
}

// Clone returns a deep copy of the tree, safe to hand to listeners.
func (d *TreeData) Clone() *TreeData {
	out := &TreeData{
		Items:    make([]Item, len(d.Items)),
		Settings: d.Settings.Clone(),
	}
	for i := range d.Items {
		out.Items[i] = d.Items[i].Clone()
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
