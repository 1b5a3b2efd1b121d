package formatter

import (
	"fmt"
	"html"
	"io"
	"strings"

	xhtml "golang.org/x/net/html"

	"github.com/oakwood-commons/vcrx/internal/document"
)

// formatHTML renders string scalars holding markup: standard entities are
// decoded and, when the payload actually looks like markup, the tags are
// re-indented one element per line for readability. Non-string input is a
// type mismatch.
func formatHTML(node *document.Node) (string, error) {
	if node == nil || !node.IsString() {
		return "", fmt.Errorf("%w: html formatter needs a string scalar, got %s", ErrTypeMismatch, kindName(node))
	}
	s := html.UnescapeString(node.Value)
	if trimmed := strings.TrimSpace(s); !strings.HasPrefix(trimmed, "<") {
		return s, nil
	}
	return reindentHTML(s), nil
}

// voidElements never take end tags, so they must not change the indent depth.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// reindentHTML lays the markup out one token per line, indented by element
// depth. Tokenization is lossy about inter-tag whitespace only; attribute
// text and content are carried through verbatim. Malformed markup falls back
// to the input unchanged.
func reindentHTML(s string) string {
	tz := xhtml.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	depth := 0

	writeLine := func(depth int, text string) {
		for i := 0; i < depth; i++ {
			b.WriteString("  ")
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}

	for {
		tt := tz.Next()
		if tt == xhtml.ErrorToken {
			if tz.Err() == io.EOF {
				break
			}
			return s
		}
		raw := string(tz.Raw())
		switch tt {
		case xhtml.StartTagToken:
			name, _ := tz.TagName()
			writeLine(depth, raw)
			if !voidElements[string(name)] {
				depth++
			}
		case xhtml.EndTagToken:
			if depth > 0 {
				depth--
			}
			writeLine(depth, raw)
		case xhtml.SelfClosingTagToken, xhtml.CommentToken, xhtml.DoctypeToken:
			writeLine(depth, raw)
		case xhtml.TextToken:
			if text := strings.TrimSpace(raw); text != "" {
				writeLine(depth, text)
			}
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
