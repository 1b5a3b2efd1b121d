// Package formatter renders resolved document values as display text. Each
// formatter is a pure function from a document node to a string; selection is
// driven by the formatter id carried on the matched extraction rule.
package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oakwood-commons/vcrx/internal/document"
)

// Format errors. A TypeMismatch means a rule pointed a scalar-only formatter
// at a container (or vice versa); it is surfaced per result so one bad rule
// does not abort a whole-file preview.
var (
	ErrTypeMismatch     = errors.New("formatter type mismatch")
	ErrUnknownFormatter = errors.New("unknown formatter")
)

// Names lists the registered formatter ids in display order.
func Names() []string {
	return []string{"text", "json", "yaml", "toml", "html"}
}

// Format renders node with the named formatter.
func Format(node *document.Node, formatterID string) (string, error) {
	switch formatterID {
	case "text":
		return formatText(node)
	case "json":
		return formatJSON(node)
	case "yaml":
		return formatYAML(node)
	case "toml":
		return formatTOML(node)
	case "html":
		return formatHTML(node)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormatter, formatterID)
	}
}

// formatText renders scalars only. String scalars get their backslash escape
// sequences decoded so recorded bodies with embedded "\n" read as real lines;
// other scalars render their canonical text.
func formatText(node *document.Node) (string, error) {
	if node == nil || node.Kind != document.KindScalar {
		return "", fmt.Errorf("%w: text formatter needs a scalar, got %s", ErrTypeMismatch, kindName(node))
	}
	if node.IsString() {
		return decodeEscapes(node.Value), nil
	}
	return node.ScalarText(), nil
}

// kindName tolerates nil nodes in error messages.
func kindName(node *document.Node) string {
	if node == nil {
		return "nothing"
	}
	return node.Kind.String()
}

// decodeEscapes converts literal \n, \t, \r, \" and \\ sequences into their
// characters. Unrecognized escapes pass through untouched.
func decodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case 't':
				b.WriteByte('\t')
				i++
				continue
			case 'r':
				b.WriteByte('\r')
				i++
				continue
			case '"':
				b.WriteByte('"')
				i++
				continue
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
