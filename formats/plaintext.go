package formats

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/nanoshelf/types"
)

// PlainText renders the tree as an indented outline, one item per line,
// containers suffixed with a slash.
var PlainText = &OutlineFormat{
	Name:      "plaintext",
	Extension: ".txt",
	Render: func(roots []*Node) (string, error) {
		var sb strings.Builder
		renderPlainText(&sb, roots, 0)
		return sb.String(), nil
	},
}

func renderPlainText(sb *strings.Builder, nodes []*Node, depth int) {
	indent := strings.Repeat("    ", depth)
	for _, node := range nodes {
		label := node.Item.Name
		if node.Item.Type != types.ItemDocument {
			label += "/"
		}
		sb.WriteString(indent + label + "\n")
		renderPlainText(sb, node.Children, depth+1)
	}
}

func init() {
	if err := Register(PlainText); err != nil {
		panic(fmt.Sprintf("failed to register PlainText format: %v", err))
	}
}
