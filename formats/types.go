// Package formats renders the item tree as a text outline for export. Each
// format lives in a registry keyed by name; rendering works from a nested
// view built out of the flat item list.
package formats

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/nanoshelf/types"
)

// Node is one item with its resolved children, the nested view renderers
// consume.
type Node struct {
	Item     types.Item
	Children []*Node
}

// BuildOutline converts the flat persisted list into the nested view, roots
// first, siblings in order. Closed notebooks are included; export covers the
// whole tree regardless of UI visibility.
func BuildOutline(data *types.TreeData) []*Node {
	var build func(parentID string) []*Node
	build = func(parentID string) []*Node {
		var nodes []*Node
		for _, child := range data.ChildrenOf(parentID) {
			nodes = append(nodes, &Node{
				Item:     child.Clone(),
				Children: build(child.ID),
			})
		}
		return nodes
	}
	return build("")
}

// OutlineFormat defines how a tree outline is serialized.
type OutlineFormat struct {
	// Name is the format identifier (lowercase alphanumeric, dashes,
	// underscores).
	Name string

	// Extension is the file extension including the dot (e.g. ".md").
	Extension string

	// Render serializes the nested outline.
	Render func(roots []*Node) (string, error)
}

// registry holds all available outline formats.
var registry = make(map[string]*OutlineFormat)

// Register adds an outline format to the registry.
func Register(format *OutlineFormat) error {
	if !isValidFormatName(format.Name) {
		return fmt.Errorf("invalid format name %q: must be lowercase alphanumeric with dashes and underscores only", format.Name)
	}
	if !strings.HasPrefix(format.Extension, ".") {
		format.Extension = "." + format.Extension
	}
	if _, exists := registry[format.Name]; exists {
		return fmt.Errorf("format %q already registered", format.Name)
	}
	registry[format.Name] = format
	return nil
}

// Get returns an outline format by name.
func Get(name string) (*OutlineFormat, error) {
	format, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("unknown format %q", name)
	}
	return format, nil
}

// List returns all registered format names.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

func isValidFormatName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}
