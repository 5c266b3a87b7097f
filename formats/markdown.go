package formats

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/nanoshelf/types"
)

// Markdown renders notebooks as headings and their contents as nested
// bullet lists.
var Markdown = &OutlineFormat{
	Name:      "markdown",
	Extension: ".md",
	Render: func(roots []*Node) (string, error) {
		var sb strings.Builder
		for i, root := range roots {
			if i > 0 {
				sb.WriteString("\n")
			}
			if root.Item.Type == types.ItemNotebook {
				sb.WriteString("# " + root.Item.Name + "\n")
				renderMarkdownList(&sb, root.Children, 0)
				continue
			}
			renderMarkdownList(&sb, []*Node{root}, 0)
		}
		return sb.String(), nil
	},
}

func renderMarkdownList(sb *strings.Builder, nodes []*Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, node := range nodes {
		label := node.Item.Name
		if node.Item.BlockID != "" {
			label = fmt.Sprintf("[%s](block:%s)", label, node.Item.BlockID)
		}
		sb.WriteString(indent + "- " + label + "\n")
		renderMarkdownList(sb, node.Children, depth+1)
	}
}

func init() {
	if err := Register(Markdown); err != nil {
		panic(fmt.Sprintf("failed to register Markdown format: %v", err))
	}
}
