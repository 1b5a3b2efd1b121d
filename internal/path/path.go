// Package path implements the path expression mini-language used to address
// values inside a loaded cassette document.
// Path example: interactions[0].response.body.string
// A bare "[]" segment applies the rest of the path to every element.
package path

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Segment is one parsed component of a path. The concrete types are Field,
// Index, and Wildcard; all are comparable value types.
type Segment interface {
	segment()
}

// Field addresses a mapping key by name.
type Field struct {
	Name string
}

// Index addresses a sequence element by position.
type Index struct {
	N int
}

// Wildcard addresses every element of the sequence or mapping at its position.
type Wildcard struct{}

func (Field) segment()    {}
func (Index) segment()    {}
func (Wildcard) segment() {}

// Path is an ordered sequence of segments. The empty path addresses the
// document root.
type Path []Segment

// Parse errors. Callers branch with errors.Is.
var (
	ErrEmptySegment        = errors.New("empty path segment")
	ErrInvalidIndex        = errors.New("invalid array index")
	ErrUnterminatedBracket = errors.New("unterminated bracket")
)

// Parse turns a textual path expression into a Path.
// Grammar: identifier segments separated by '.', each optionally followed by
// bracket suffixes "[n]" (index) or "[]" (wildcard). The empty string is the
// root path. Bracket suffixes with no leading identifier are accepted only at
// the start of the expression, so paths enumerated from a root-level sequence
// ("[0].name") round-trip.
func Parse(text string) (Path, error) {
	if text == "" {
		return nil, nil
	}

	var p Path
	i := 0
	for {
		// Segment start: an identifier, or (only at offset zero) a bracket.
		if i >= len(text) {
			return nil, fmt.Errorf("path %q: %w", text, ErrEmptySegment)
		}
		if text[i] == '[' {
			if i != 0 {
				return nil, fmt.Errorf("path %q: %w", text, ErrEmptySegment)
			}
		} else {
			start := i
			if !isIdentStart(text[i]) {
				return nil, fmt.Errorf("path %q: %w", text, ErrEmptySegment)
			}
			i++
			for i < len(text) && isIdentChar(text[i]) {
				i++
			}
			p = append(p, Field{Name: text[start:i]})
		}

		// Zero or more bracket suffixes.
		for i < len(text) && text[i] == '[' {
			end := strings.IndexByte(text[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("path %q: %w", text, ErrUnterminatedBracket)
			}
			inner := text[i+1 : i+end]
			if inner == "" {
				p = append(p, Wildcard{})
			} else {
				n, err := parseIndex(inner)
				if err != nil {
					return nil, fmt.Errorf("path %q: index %q: %w", text, inner, ErrInvalidIndex)
				}
				p = append(p, Index{N: n})
			}
			i += end + 1
		}

		if i == len(text) {
			return p, nil
		}
		if text[i] != '.' {
			// Trailing junk after a bracket suffix, e.g. "a[0]b".
			return nil, fmt.Errorf("path %q: unexpected %q after bracket: %w", text, text[i], ErrInvalidIndex)
		}
		i++ // consume separator, next iteration expects a segment
	}
}

// parseIndex accepts only plain decimal digits: no sign, no whitespace.
func parseIndex(s string) (int, error) {
	for j := 0; j < len(s); j++ {
		if s[j] < '0' || s[j] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '-'
}

// String renders the canonical textual form. Parse(p.String()) == p for every
// constructible path.
func (p Path) String() string {
	var b strings.Builder
	for idx, seg := range p {
		switch s := seg.(type) {
		case Field:
			if idx > 0 {
				b.WriteByte('.')
			}
			b.WriteString(s.Name)
		case Index:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.N))
			b.WriteByte(']')
		case Wildcard:
			b.WriteString("[]")
		}
	}
	return b.String()
}

// Equal reports segment-wise equality.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// HasWildcard reports whether any segment is a wildcard.
func (p Path) HasWildcard() bool {
	for _, seg := range p {
		if _, ok := seg.(Wildcard); ok {
			return true
		}
	}
	return false
}

// Matches reports whether the pattern p applies to a concrete path. Lengths
// must be equal; a Wildcard segment matches any concrete Field or Index, all
// other segments must match exactly. A prefix match never counts.
func (p Path) Matches(concrete Path) bool {
	if len(p) != len(concrete) {
		return false
	}
	for i, seg := range p {
		if _, ok := seg.(Wildcard); ok {
			switch concrete[i].(type) {
			case Field, Index:
				continue
			default:
				return false
			}
		}
		if seg != concrete[i] {
			return false
		}
	}
	return true
}

// Append returns a new path with seg added, leaving p untouched. Used while
// fanning out wildcard navigation so sibling branches never share backing
// arrays.
func (p Path) Append(seg Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}
