// Package indenttree implements the IndentTree driver (spec.md §4.7):
// repeatedly pop the highest-priority candidate from the document's
// queue, grow it toward whichever neighbour its leaning favors, and
// when a node can grow no further, attach it to the root sentinel and
// report it to the caller as a matured candidate.
package indenttree

import (
	"github.com/blocksuspect/blocksuspect/internal/blocktree"
	"github.com/blocksuspect/blocksuspect/internal/lexpair"
)

// Driver runs the expand/attach loop over a blocktree.Document.
type Driver struct {
	doc *blocktree.Document
}

// New returns a Driver over doc.
func New(doc *blocktree.Document) *Driver {
	return &Driver{doc: doc}
}

// Run pops candidates until the queue is empty or onMatured reports
// stop=true. Each popped node that can still expand toward a neighbour
// is grown by exactly one capture per pop — preferring the side its
// Leaning favors (left -> above, right -> below, both/equal -> above
// first, the other side retried on the composite's next pop, per
// spec.md §4.7) — and the resulting composite is re-filed into the
// queue by Document.Capture. A node that cannot grow in either
// direction is attached to the root sentinel (spec.md §4.7's
// "root.parents << n") and handed to onMatured.
func (d *Driver) Run(onMatured func(n *blocktree.Node) (stop bool)) {
	for {
		n := d.doc.Queue.PopMax()
		if n == nil {
			return
		}

		withIndent := n.NextIndent(n.Indent)
		canAbove := n.ExpandAbove(withIndent)
		canBelow := n.ExpandBelow(withIndent)

		if !canAbove && !canBelow {
			d.doc.AttachToRoot(n)
			if onMatured(n) {
				return
			}
			continue
		}

		preferAbove := n.Leaning() != lexpair.Right
		switch {
		case preferAbove && canAbove:
			d.doc.Capture([]*blocktree.Node{n.Above, n})
		case canBelow:
			d.doc.Capture([]*blocktree.Node{n, n.Below})
		default:
			d.doc.Capture([]*blocktree.Node{n.Above, n})
		}
	}
}
