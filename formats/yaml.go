package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlNode is the exported YAML shape, keeping only the fields meaningful
// outside the store.
type yamlNode struct {
	Name     string      `yaml:"name"`
	Type     string      `yaml:"type"`
	BlockID  string      `yaml:"blockId,omitempty"`
	Icon     string      `yaml:"icon,omitempty"`
	Color    string      `yaml:"color,omitempty"`
	Children []*yamlNode `yaml:"children,omitempty"`
}

// YAML renders the tree as a YAML document, suitable for re-importing into
// another tool.
var YAML = &OutlineFormat{
	Name:      "yaml",
	Extension: ".yaml",
	Render: func(roots []*Node) (string, error) {
		doc := struct {
			Items []*yamlNode `yaml:"items"`
		}{Items: toYAMLNodes(roots)}
		out, err := yaml.Marshal(doc)
		if err != nil {
			return "", fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return string(out), nil
	},
}

func toYAMLNodes(nodes []*Node) []*yamlNode {
	var out []*yamlNode
	for _, node := range nodes {
		out = append(out, &yamlNode{
			Name:     node.Item.Name,
			Type:     string(node.Item.Type),
			BlockID:  node.Item.BlockID,
			Icon:     node.Item.Icon,
			Color:    node.Item.Color,
			Children: toYAMLNodes(node.Children),
		})
	}
	return out
}

func init() {
	if err := Register(YAML); err != nil {
		panic(fmt.Sprintf("failed to register YAML format: %v", err))
	}
}
