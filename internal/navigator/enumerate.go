package navigator

import (
	"github.com/oakwood-commons/vcrx/internal/document"
	"github.com/oakwood-commons/vcrx/internal/path"
)

// Enumerate walks the whole document and returns every concrete path
// reachable from the root, pre-order: a container's own path is emitted
// before its children, mapping children in document key order, sequence
// children in index order. The root itself is the first entry (the empty
// path), so the result length equals the document's total node count.
//
// The walk uses an explicit stack so pathological nesting depth is bounded
// by heap, not by the goroutine call stack.
func Enumerate(root *document.Node) []path.Path {
	if root == nil {
		return nil
	}

	type entry struct {
		p    path.Path
		node *document.Node
	}

	var out []path.Path
	stack := []entry{{p: nil, node: root}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		out = append(out, e.p)

		// Children pushed in reverse so the leftmost pops first.
		switch e.node.Kind {
		case document.KindSequence:
			for i := len(e.node.Items) - 1; i >= 0; i-- {
				stack = append(stack, entry{p: e.p.Append(path.Index{N: i}), node: e.node.Items[i]})
			}
		case document.KindMapping:
			for i := len(e.node.Pairs) - 1; i >= 0; i-- {
				pair := e.node.Pairs[i]
				stack = append(stack, entry{p: e.p.Append(path.Field{Name: pair.Key}), node: pair.Value})
			}
		case document.KindScalar:
			// Leaf, nothing to descend into.
		}
	}
	return out
}
