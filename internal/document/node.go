// Package document models a loaded cassette as an immutable tree of tagged
// nodes. Mapping keys keep their source order, scalars keep their source
// text and quoting style, so renderers can mirror the original file.
package document

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind discriminates the node variants.
type Kind int

const (
	KindScalar Kind = iota
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Pair is one mapping entry. Keys are unique within a mapping and appear in
// document order.
type Pair struct {
	Key   string
	Value *Node
}

// Node is a single value in a document tree. Exactly one of the variant
// field groups is populated, per Kind. Trees are built once by the loader
// and treated as immutable afterwards.
type Node struct {
	Kind Kind

	// Scalar fields.
	Value  string // source text, e.g. "42", "true", "hello"
	Tag    string // resolved yaml tag: !!str, !!int, !!bool, !!float, !!null
	Quoted bool   // the source required quoting for this scalar

	Items []*Node // sequence children, index order
	Pairs []Pair  // mapping children, document order
}

// Decode parses raw cassette bytes into a document tree. YAML is a superset
// of JSON, so a single decoder covers both formats while preserving mapping
// key order and scalar style.
func Decode(data []byte) (*Node, error) {
	var yn yaml.Node
	if err := yaml.Unmarshal(data, &yn); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return FromYAML(&yn)
}

// FromYAML converts a parsed yaml.Node into a document tree. Document
// wrappers are unwrapped and aliases are resolved in place; source documents
// are acyclic by construction (yaml.v3 rejects self-referencing anchors).
func FromYAML(yn *yaml.Node) (*Node, error) {
	if yn == nil || yn.Kind == 0 {
		return &Node{Kind: KindScalar, Tag: "!!null", Value: "null"}, nil
	}
	switch yn.Kind {
	case yaml.DocumentNode:
		if len(yn.Content) == 0 {
			return &Node{Kind: KindScalar, Tag: "!!null", Value: "null"}, nil
		}
		return FromYAML(yn.Content[0])
	case yaml.AliasNode:
		return FromYAML(yn.Alias)
	case yaml.ScalarNode:
		n := &Node{
			Kind:   KindScalar,
			Value:  yn.Value,
			Tag:    yn.Tag,
			Quoted: yn.Style == yaml.SingleQuotedStyle || yn.Style == yaml.DoubleQuotedStyle,
		}
		if n.Tag == "!!null" {
			n.Value = "null"
		}
		return n, nil
	case yaml.SequenceNode:
		n := &Node{Kind: KindSequence, Items: make([]*Node, 0, len(yn.Content))}
		for _, c := range yn.Content {
			child, err := FromYAML(c)
			if err != nil {
				return nil, err
			}
			n.Items = append(n.Items, child)
		}
		return n, nil
	case yaml.MappingNode:
		n := &Node{Kind: KindMapping, Pairs: make([]Pair, 0, len(yn.Content)/2)}
		for i := 0; i+1 < len(yn.Content); i += 2 {
			child, err := FromYAML(yn.Content[i+1])
			if err != nil {
				return nil, err
			}
			n.Pairs = append(n.Pairs, Pair{Key: yn.Content[i].Value, Value: child})
		}
		return n, nil
	default:
		return nil, fmt.Errorf("decode document: unsupported yaml node kind %d", yn.Kind)
	}
}

// Lookup finds a mapping child by key. Returns false for non-mappings and
// absent keys.
func (n *Node) Lookup(key string) (*Node, bool) {
	if n == nil || n.Kind != KindMapping {
		return nil, false
	}
	for _, p := range n.Pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// IsString reports whether the node is a string scalar.
func (n *Node) IsString() bool {
	return n != nil && n.Kind == KindScalar && n.Tag == "!!str"
}

// ScalarText returns the canonical textual form of a scalar. Non-scalars
// return the empty string.
func (n *Node) ScalarText() string {
	if n == nil || n.Kind != KindScalar {
		return ""
	}
	return n.Value
}

// GoValue converts a scalar to its typed Go value (string, int64, float64,
// bool, or nil). Unparseable numeric text falls back to the raw string, which
// matches how speculative probes treat malformed data: keep going, do not
// fail.
func (n *Node) GoValue() any {
	if n == nil || n.Kind != KindScalar {
		return nil
	}
	switch n.Tag {
	case "!!null":
		return nil
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(n.Value))
		if err != nil {
			return n.Value
		}
		return b
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return n.Value
		}
		return i
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return n.Value
		}
		return f
	default:
		return n.Value
	}
}

// ToYAML rebuilds a yaml.Node for rendering. Containers use block style;
// scalars that were quoted in the source stay quoted.
func (n *Node) ToYAML() *yaml.Node {
	if n == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	switch n.Kind {
	case KindScalar:
		yn := &yaml.Node{Kind: yaml.ScalarNode, Tag: n.Tag, Value: n.Value}
		if n.Quoted {
			yn.Style = yaml.DoubleQuotedStyle
		}
		return yn
	case KindSequence:
		yn := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range n.Items {
			yn.Content = append(yn.Content, item.ToYAML())
		}
		return yn
	case KindMapping:
		yn := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, p := range n.Pairs {
			yn.Content = append(yn.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Key},
				p.Value.ToYAML())
		}
		return yn
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
