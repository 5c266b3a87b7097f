// Package types defines the core data structures shared by the persistence
// adapter, the tree store, and any presentation layer built on top of them.
// Everything here is plain data with pure structural helpers; no I/O happens
// in this package.
package types

import "time"

// ItemType discriminates the three node kinds held in the tree.
// It is the only mechanism for type dispatch; id string shape is never
// inspected for this purpose.
type ItemType string

const (
	// ItemNotebook is a root-level container. Notebooks are confined to the
	// root of the tree and can never be nested inside another container.
	ItemNotebook ItemType = "notebook"

	// ItemFolder is a nestable container for documents and other folders.
	ItemFolder ItemType = "folder"

	// ItemDocument is a leaf referencing a host block. A document can be
	// promoted to a folder when something is dropped onto it.
	ItemDocument ItemType = "document"
)

// IsContainer reports whether items of this type may hold children.
func (t ItemType) IsContainer() bool {
	return t == ItemNotebook || t == ItemFolder
}

// Valid reports whether t is one of the three known item types.
func (t ItemType) Valid() bool {
	return t == ItemNotebook || t == ItemFolder || t == ItemDocument
}

// NormalizeType maps arbitrary persisted type strings onto a valid ItemType.
// Unknown values degrade to document, the least structured kind.
func NormalizeType(s string) ItemType {
	t := ItemType(s)
	if t.Valid() {
		return t
	}
	return ItemDocument
}

// Item is the single polymorphic node type for notebooks, folders and
// documents. Items are persisted as a flat list; the tree shape is carried by
// ParentID. Children is a denormalized index maintained as an optimization
// for splicing; ParentID is the canonical source of truth and consumers
// must recompute child sets from it rather than trusting Children.
type Item struct {
	// ID is the stable identity of the item. It encodes the creation type,
	// a timestamp and a random suffix for human-debuggable uniqueness.
	ID string `json:"id"`

	// Name is the user-editable display label.
	Name string `json:"name"`

	// Type discriminates notebook, folder and document.
	Type ItemType `json:"type"`

	// BlockID optionally references a host content block. Documents and
	// folders may carry one; notebooks never do. Uniqueness across the tree
	// is by convention only; the store does not forbid two items referencing
	// the same block.
	BlockID string `json:"blockId,omitempty"`

	// ParentID is the owning container, empty for root-level items.
	ParentID string `json:"parentId,omitempty"`

	// Order is the sibling sort key, dense 0..n-1 per parent.
	Order int `json:"order"`

	// Children caches the ordered ids of direct children. Present only for
	// container types; nil for plain documents.
	Children []string `json:"children,omitempty"`

	// Icon and Color are presentation hints sourced from the referenced
	// block's metadata.
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`

	// IsQueryBlock marks a folder whose children are derived from re-running
	// a host query rather than authored directly. QueryBlockID references the
	// host block holding the query definition.
	IsQueryBlock bool   `json:"isQueryBlock,omitempty"`
	QueryBlockID string `json:"queryBlockId,omitempty"`

	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

// IsRoot reports whether the item sits at the root level of the tree.
func (it *Item) IsRoot() bool {
	return it.ParentID == ""
}

// IsContainer reports whether the item may hold children.
func (it *Item) IsContainer() bool {
	return it.Type.IsContainer()
}

// Clone returns a deep copy of the item.
func (it *Item) Clone() Item {
	out := *it
	if it.Children != nil {
		out.Children = append([]string(nil), it.Children...)
	}
	return out
}
