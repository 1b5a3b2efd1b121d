// Package navigator evaluates path expressions against document trees and
// enumerates every addressable path inside a document.
package navigator

import (
	"github.com/oakwood-commons/vcrx/internal/document"
	"github.com/oakwood-commons/vcrx/internal/path"
)

// Resolved pairs a concrete (wildcard-free) path with the node found there.
type Resolved struct {
	Path path.Path
	Node *document.Node
}

// frame is one pending branch of a wildcard fan-out.
type frame struct {
	remaining path.Path
	concrete  path.Path
	node      *document.Node
}

// Resolve evaluates p against root and returns every value it addresses, in
// document order. Absent keys, out-of-bounds indices, and type mismatches are
// soft misses: the branch yields nothing and no error is reported, because
// path expressions are speculative probes against heterogeneous documents.
// Only a wildcard-bearing path can produce more than one result.
func Resolve(root *document.Node, p path.Path) []Resolved {
	if root == nil {
		return nil
	}

	var out []Resolved
	// Explicit worklist instead of recursion; processed LIFO with children
	// pushed in reverse so results come out depth-first, left-to-right.
	stack := []frame{{remaining: p, concrete: nil, node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(f.remaining) == 0 {
			out = append(out, Resolved{Path: f.concrete, Node: f.node})
			continue
		}

		seg, rest := f.remaining[0], f.remaining[1:]
		switch s := seg.(type) {
		case path.Field:
			child, ok := f.node.Lookup(s.Name)
			if !ok {
				continue
			}
			stack = append(stack, frame{rest, f.concrete.Append(s), child})
		case path.Index:
			if f.node.Kind != document.KindSequence || s.N < 0 || s.N >= len(f.node.Items) {
				continue
			}
			stack = append(stack, frame{rest, f.concrete.Append(s), f.node.Items[s.N]})
		case path.Wildcard:
			switch f.node.Kind {
			case document.KindSequence:
				for i := len(f.node.Items) - 1; i >= 0; i-- {
					stack = append(stack, frame{rest, f.concrete.Append(path.Index{N: i}), f.node.Items[i]})
				}
			case document.KindMapping:
				for i := len(f.node.Pairs) - 1; i >= 0; i-- {
					pair := f.node.Pairs[i]
					stack = append(stack, frame{rest, f.concrete.Append(path.Field{Name: pair.Key}), pair.Value})
				}
			default:
				// Wildcard over a scalar yields nothing.
			}
		}
	}
	return out
}

// First returns the first value p resolves to in document order, or false
// when the path addresses nothing.
func First(root *document.Node, p path.Path) (Resolved, bool) {
	results := Resolve(root, p)
	if len(results) == 0 {
		return Resolved{}, false
	}
	return results[0], true
}
