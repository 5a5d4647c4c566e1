// Package blocktree implements the block-node model and document spine
// spec.md §3–§4.5 describe: contiguous-line nodes linked into a
// doubly-linked spine, composed bottom-up by from_blocks, and ordered
// by a priority queue the indent-tree driver pops from.
package blocktree

import (
	"github.com/blocksuspect/blocksuspect/internal/lexpair"
	"github.com/blocksuspect/blocksuspect/internal/linelex"
)

// Node is a BlockNode (spec.md §3): a contiguous line range with
// aggregated lexical balance, neighbour links, and the parents it was
// composed from. Lines, StartIndex, EndIndex, Indent, LexDiff, and
// Parents are write-once ("immutable-ish" per spec.md §9); only Above,
// Below, Deleted, and the two lazily memoized fields below ever change
// after construction.
type Node struct {
	seq uint64 // insertion order, tie-break of last resort (DESIGN.md)

	Lines      []linelex.CodeLine
	StartIndex uint32
	EndIndex   uint32
	Indent     uint32
	LexDiff    lexpair.Diff
	Parents    []*Node

	// hasContent is true iff some line in Lines is non-empty, i.e.
	// Indent was actually derived from a real line rather than left at
	// the zero blank/hidden lines report (spec.md §3: "Blank/hidden
	// lines report indent 0 but are excluded from block-indent
	// computation"). Composition uses it to keep all-blank parents from
	// dragging a composite's Indent down to 0.
	hasContent bool

	Above, Below *Node
	Deleted      bool

	nextIndent      uint32
	nextIndentKnown bool

	valid      bool
	validKnown bool
}

// Leaning reports the node's aggregate lexical imbalance direction.
func (n *Node) Leaning() lexpair.Leaning {
	return n.LexDiff.Leaning()
}

// IsLeaf reports whether n was never composed from other nodes.
func (n *Node) IsLeaf() bool {
	return len(n.Parents) == 0
}

// Range returns n's line range as a Range key for interval-tree use.
func (n *Node) Range() Range {
	return Range{Start: n.StartIndex, End: n.EndIndex}
}

// Valid memoizes a call to check (typically the reference parser's
// Valid method on the node's joined text) per spec.md §9: "compute on
// first read, store result, safe because inputs are frozen."
func (n *Node) Valid(check func(*Node) bool) bool {
	if !n.validKnown {
		n.valid = check(n)
		n.validKnown = true
	}
	return n.valid
}

// NextIndent is the indent tier at which n would capture both
// neighbours if expanded (spec.md §4.4), memoized on first read.
func (n *Node) NextIndent(withIndent uint32) uint32 {
	if n.nextIndentKnown {
		return n.nextIndent
	}
	result := n.computeNextIndent(withIndent)
	n.nextIndent = result
	n.nextIndentKnown = true
	return result
}

func (n *Node) computeNextIndent(withIndent uint32) uint32 {
	if n.ExpandAbove(withIndent) || n.ExpandBelow(withIndent) {
		return n.Indent
	}
	a, b := n.Above, n.Below
	switch {
	case a != nil && b != nil:
		return clampToIndent(n.Indent, min(a.Indent, b.Indent))
	case a != nil:
		return clampToIndent(n.Indent, a.Indent)
	case b != nil:
		return clampToIndent(n.Indent, b.Indent)
	default:
		return n.Indent
	}
}

func clampToIndent(nodeIndent, candidate uint32) uint32 {
	if candidate > nodeIndent {
		return nodeIndent
	}
	return candidate
}

// ExpandAbove implements the expand_above? predicate (spec.md §4.4).
func (n *Node) ExpandAbove(withIndent uint32) bool {
	a := n.Above
	if a == nil {
		return false
	}
	if a.IsLeaf() && a.Leaning() == lexpair.Right {
		return false
	}
	if n.IsLeaf() {
		switch n.Leaning() {
		case lexpair.Left:
			return false
		case lexpair.Both:
			if a.Leaning() == lexpair.Left {
				return true
			}
		}
	}
	switch a.Leaning() {
	case lexpair.Left, lexpair.Both:
		return a.Indent >= withIndent
	default:
		return true
	}
}

// ExpandBelow implements the expand_below? predicate, the mirror image
// of ExpandAbove (spec.md §4.4: swap left<->right, above<->below).
func (n *Node) ExpandBelow(withIndent uint32) bool {
	b := n.Below
	if b == nil {
		return false
	}
	if b.IsLeaf() && b.Leaning() == lexpair.Left {
		return false
	}
	if n.IsLeaf() {
		switch n.Leaning() {
		case lexpair.Right:
			return false
		case lexpair.Both:
			if b.Leaning() == lexpair.Right {
				return true
			}
		}
	}
	switch b.Leaning() {
	case lexpair.Right, lexpair.Both:
		return b.Indent >= withIndent
	default:
		return true
	}
}

// Text joins the node's lines back into source text, in source order.
func (n *Node) Text() string {
	var out []byte
	for _, l := range n.Lines {
		out = append(out, l.Original...)
	}
	return string(out)
}
