package blocktree

import "container/heap" // stdlib; see DESIGN.md "New, domain-specific" for why no pack library fits

// Queue is the document's expansion-candidate priority queue (spec.md
// §4.5/§4.6): nodes ordered by (next_indent, indent, end_index)
// ascending, popped at the maximum, with tie-breaking by insertion
// order and lazy skipping of deleted entries on pop.
type Queue struct {
	h nodeHeap
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	q := &Queue{}
	heap.Init(&q.h)
	return q
}

// Push enqueues n.
func (q *Queue) Push(n *Node) {
	heap.Push(&q.h, n)
}

// PopMax removes and returns the highest-priority non-deleted node, or
// nil if the queue is (effectively) empty. Deleted entries are dropped
// lazily as encountered, per spec.md §9 "a binary heap with a deleted
// check on pop is sufficient."
func (q *Queue) PopMax() *Node {
	for q.h.Len() > 0 {
		n := heap.Pop(&q.h).(*Node)
		if !n.Deleted {
			return n
		}
	}
	return nil
}

// Empty reports whether the queue holds no more live candidates. It
// drains deleted tails to answer precisely, matching IndentTree's
// "until queue.empty?" loop condition.
func (q *Queue) Empty() bool {
	for q.h.Len() > 0 {
		if !q.h[0].Deleted {
			return false
		}
		heap.Pop(&q.h)
	}
	return true
}

// nodeHeap implements container/heap.Interface as a max-heap over the
// (next_indent, indent, end_index, seq) priority tuple.
type nodeHeap []*Node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	// container/heap.Pop removes h[0], the Less-minimum; inverting the
	// comparison here makes Pop return the priority-maximum instead.
	return nodeLess(h[j], h[i])
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) {
	*h = append(*h, x.(*Node))
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// nodeLess reports whether a sorts strictly before b in the queue's
// ascending priority order.
func nodeLess(a, b *Node) bool {
	an, bn := a.NextIndent(a.Indent), b.NextIndent(b.Indent)
	if an != bn {
		return an < bn
	}
	if a.Indent != b.Indent {
		return a.Indent < b.Indent
	}
	if a.EndIndex != b.EndIndex {
		return a.EndIndex < b.EndIndex
	}
	return a.seq < b.seq
}
