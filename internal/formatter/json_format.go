package formatter

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/oakwood-commons/vcrx/internal/document"
)

// formatJSON renders any node as 2-space indented JSON with mapping keys in
// their original document order. A string scalar that itself holds a JSON
// document is re-indented textually, which keeps the embedded document's own
// key order too.
func formatJSON(node *document.Node) (string, error) {
	if node != nil && node.IsString() {
		payload := []byte(node.Value)
		if json.Valid(payload) {
			var buf bytes.Buffer
			if err := json.Indent(&buf, payload, "", "  "); err == nil {
				return buf.String(), nil
			}
		}
		// Not JSON: pass the string through untouched.
		return node.Value, nil
	}

	var b strings.Builder
	writeJSONNode(&b, node, 0)
	return b.String(), nil
}

func writeJSONNode(b *strings.Builder, node *document.Node, depth int) {
	if node == nil {
		b.WriteString("null")
		return
	}
	switch node.Kind {
	case document.KindScalar:
		b.WriteString(jsonScalar(node))
	case document.KindSequence:
		if len(node.Items) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, item := range node.Items {
			writeIndent(b, depth+1)
			writeJSONNode(b, item, depth+1)
			if i < len(node.Items)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, depth)
		b.WriteByte(']')
	case document.KindMapping:
		if len(node.Pairs) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		for i, p := range node.Pairs {
			writeIndent(b, depth+1)
			b.WriteString(jsonString(p.Key))
			b.WriteString(": ")
			writeJSONNode(b, p.Value, depth+1)
			if i < len(node.Pairs)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, depth)
		b.WriteByte('}')
	}
}

func jsonScalar(node *document.Node) string {
	switch node.Tag {
	case "!!null":
		return "null"
	case "!!bool", "!!int", "!!float":
		if data, err := json.Marshal(node.GoValue()); err == nil {
			return string(data)
		}
		// Unparseable numeric text falls back to a string literal.
		return jsonString(node.Value)
	default:
		return jsonString(node.Value)
	}
}

// jsonString quotes s as a JSON string without HTML-escaping <, > and &.
func jsonString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}
