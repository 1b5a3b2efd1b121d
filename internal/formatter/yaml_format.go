package formatter

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/vcrx/internal/document"
)

// formatYAML renders any node as block-style YAML. Scalars that were quoted
// in the source stay quoted; multi-line strings are emitted as literal
// blocks ("|") so recorded bodies keep their line structure.
func formatYAML(node *document.Node) (string, error) {
	yn := node.ToYAML()
	applyLiteralStyle(yn)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yn); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func applyLiteralStyle(n *yaml.Node) {
	if n == nil {
		return
	}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" && strings.Contains(n.Value, "\n") {
		n.Style = yaml.LiteralStyle
	}
	for _, c := range n.Content {
		applyLiteralStyle(c)
	}
}
