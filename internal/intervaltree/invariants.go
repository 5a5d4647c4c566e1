package intervaltree

import (
	"fmt"

	"github.com/blocksuspect/blocksuspect/internal/blocktree"
)

// checkInvariants recomputes (T1) BST ordering and (T2) annotation from
// scratch, returning the subtree's (min key, max annotate) for the
// caller's own comparison, or an error describing the first violation.
// Each node is compared against the largest key of its left subtree and
// the smallest key of its right subtree, which the recursion has already
// checked to be ordered.
func checkInvariants[V any](n *node[V]) (blocktree.Range, uint32, error) {
	if n == nil {
		return blocktree.Range{}, 0, nil
	}
	maxEnd := n.key.End

	if n.left != nil {
		_, leftMax, err := checkInvariants(n.left)
		if err != nil {
			return blocktree.Range{}, 0, err
		}
		maxLeft := n.left
		for maxLeft.right != nil {
			maxLeft = maxLeft.right
		}
		if blocktree.CompareRange(maxLeft.key, n.key) >= 0 {
			return blocktree.Range{}, 0, fmt.Errorf("BST order violated: left subtree key %v >= parent %v", maxLeft.key, n.key)
		}
		if leftMax > maxEnd {
			maxEnd = leftMax
		}
	}
	if n.right != nil {
		_, rightMax, err := checkInvariants(n.right)
		if err != nil {
			return blocktree.Range{}, 0, err
		}
		if minRight := leftmost(n.right); blocktree.CompareRange(minRight.key, n.key) <= 0 {
			return blocktree.Range{}, 0, fmt.Errorf("BST order violated: right subtree key %v <= parent %v", minRight.key, n.key)
		}
		if rightMax > maxEnd {
			maxEnd = rightMax
		}
	}
	if n.annotate != maxEnd {
		return blocktree.Range{}, 0, fmt.Errorf("annotate(%v) = %d, want %d", n.key, n.annotate, maxEnd)
	}
	return leftmost(n).key, maxEnd, nil
}
