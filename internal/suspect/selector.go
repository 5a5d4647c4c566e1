package suspect

import (
	"context"

	"github.com/blocksuspect/blocksuspect/internal/blocktree"
	"github.com/blocksuspect/blocksuspect/internal/frontier"
)

// maxSubsetSize caps the exhaustive subset search DetectInvalidBlocks
// runs (spec.md §9: "Production implementations should cap the search
// at a small subset size (e.g., 6) and fall back to returning the full
// invalid set").
const maxSubsetSize = 6

// DetectInvalidBlocks is InvalidBlockSelector (spec.md §4.8
// detect_invalid_blocks, §4.9): enumerate non-empty subsets of the
// frontier's invalid blocks in non-decreasing size, and return the
// first whose removal validates the document. Returns nil if the
// frontier has no invalid blocks at all. If no subset up to
// maxSubsetSize validates, falls back to the full invalid set
// (best-effort NoSolution answer per spec.md §7) rather than search
// the remaining, exponentially larger tail.
func DetectInvalidBlocks(ctx context.Context, fr *frontier.Frontier) ([]*blocktree.Node, error) {
	invalid := fr.Invalid()
	if len(invalid) == 0 {
		return nil, nil
	}

	limit := min(len(invalid), maxSubsetSize)
	found, err := searchSubsets(ctx, fr, invalid, limit)
	if err != nil {
		return nil, err
	}
	if found != nil {
		return found, nil
	}
	return invalid, nil
}

// searchSubsets enumerates non-empty subsets of invalid of size 1..limit,
// in non-decreasing size order, returning the first whose removal
// validates the document.
func searchSubsets(ctx context.Context, fr *frontier.Frontier, invalid []*blocktree.Node, limit int) ([]*blocktree.Node, error) {
	for size := 1; size <= limit; size++ {
		found, err := searchSubsetsOfSize(ctx, fr, invalid, size)
		if err != nil {
			return nil, err
		}
		if found != nil {
			return found, nil
		}
	}
	return nil, nil
}

func searchSubsetsOfSize(ctx context.Context, fr *frontier.Frontier, invalid []*blocktree.Node, size int) ([]*blocktree.Node, error) {
	combo := make([]int, size)
	for i := range combo {
		combo[i] = i
	}

	for {
		subset := make([]*blocktree.Node, size)
		for i, idx := range combo {
			subset[i] = invalid[idx]
		}

		ok, err := validatesWithout(ctx, fr, subset)
		if err != nil {
			return nil, err
		}
		if ok {
			return subset, nil
		}

		if !nextCombination(combo, len(invalid)) {
			return nil, nil
		}
	}
}

// nextCombination advances combo (indices into a slice of length n, in
// strictly ascending order) to the next combination in lexicographic
// order. Returns false once combo was the last one.
func nextCombination(combo []int, n int) bool {
	k := len(combo)
	i := k - 1
	for i >= 0 && combo[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	combo[i]++
	for j := i + 1; j < k; j++ {
		combo[j] = combo[j-1] + 1
	}
	return true
}

func validatesWithout(ctx context.Context, fr *frontier.Frontier, subset []*blocktree.Node) (bool, error) {
	var without []int
	for _, n := range subset {
		for i := n.StartIndex; i <= n.EndIndex; i++ {
			without = append(without, int(i))
		}
	}
	return fr.Parser().ValidWithout(ctx, without, fr.Lines())
}
