// Package suspect implements the top-level search (spec.md §4.9): grow
// the indent tree, feed every matured top-level block into the
// CodeFrontier, stop as soon as the frontier holds all syntax errors,
// and report the minimal invalid subset via InvalidBlockSelector.
package suspect

import (
	"context"
	"sort"

	"github.com/blocksuspect/blocksuspect/internal/blocktree"
	"github.com/blocksuspect/blocksuspect/internal/frontier"
	"github.com/blocksuspect/blocksuspect/internal/indenttree"
	"github.com/blocksuspect/blocksuspect/internal/linelex"
	"github.com/blocksuspect/blocksuspect/internal/refparser"
)

// BlockRange is the consumer-facing result (spec.md §6): a disjoint,
// source-ordered, 1-based inclusive line range.
type BlockRange struct {
	StartLine int
	EndLine   int
}

// Search runs the engine end to end over source and returns the
// suspect block ranges the reference parser needs removed to make the
// remainder parse cleanly. Empty, all-blank, or already-valid input
// returns (nil, nil); this is never an error (spec.md §7).
func Search(ctx context.Context, parser refparser.ReferenceParser, source string) ([]BlockRange, error) {
	lines := linelex.BuildCodeLines(source, linelex.DefaultCleaner())
	if allBlank(lines) {
		return nil, nil
	}

	if ok, err := parser.Valid(ctx, source); err != nil {
		return nil, err
	} else if ok {
		return nil, nil
	}

	doc := blocktree.NewDocument(lines)
	fr := frontier.New(lines, parser)

	var searchErr error
	indenttree.New(doc).Run(func(n *blocktree.Node) (stop bool) {
		fr.Push(n)
		holds, err := fr.HoldsAllSyntaxErrors(ctx)
		if err != nil {
			searchErr = err
			return true
		}
		return holds
	})
	if searchErr != nil {
		return nil, searchErr
	}

	selected, err := DetectInvalidBlocks(ctx, fr)
	if err != nil {
		return nil, err
	}
	return toRanges(selected), nil
}

func allBlank(lines []linelex.CodeLine) bool {
	for _, l := range lines {
		if !l.Empty {
			return false
		}
	}
	return true
}

// toRanges converts frontier nodes to 1-based inclusive BlockRanges,
// sorted ascending by start (spec.md §6).
func toRanges(nodes []*blocktree.Node) []BlockRange {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]BlockRange, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, BlockRange{StartLine: int(n.StartIndex) + 1, EndLine: int(n.EndIndex) + 1})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartLine < out[j].StartLine })
	return out
}
