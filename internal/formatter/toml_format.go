package formatter

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/oakwood-commons/vcrx/internal/document"
)

// formatTOML renders mapping-rooted nodes as TOML. TOML documents are tables
// at the top level, so any other root is a type mismatch.
func formatTOML(node *document.Node) (string, error) {
	if node == nil || node.Kind != document.KindMapping {
		return "", fmt.Errorf("%w: toml formatter needs a mapping root, got %s", ErrTypeMismatch, kindName(node))
	}
	data, err := toml.Marshal(toGo(node))
	if err != nil {
		// go-toml cannot encode some shapes (e.g. null values); that is a
		// data/config mismatch, not an internal failure.
		return "", fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return string(data), nil
}

// toGo lowers a node tree into plain Go values for toml encoding. TOML
// re-sorts table keys itself, so the order loss here is invisible.
func toGo(node *document.Node) any {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case document.KindScalar:
		return node.GoValue()
	case document.KindSequence:
		out := make([]any, 0, len(node.Items))
		for _, item := range node.Items {
			out = append(out, toGo(item))
		}
		return out
	case document.KindMapping:
		out := make(map[string]any, len(node.Pairs))
		for _, p := range node.Pairs {
			out[p.Key] = toGo(p.Value)
		}
		return out
	default:
		return nil
	}
}
