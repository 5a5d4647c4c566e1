// Package frontier implements CodeFrontier (spec.md §4.8): the set of
// candidate suspect blocks under active investigation, backed by an
// insertion-sorted vector and an interval tree that evicts blocks
// engulfed by newer, larger ones.
package frontier

import (
	"context"
	"sort"

	"github.com/blocksuspect/blocksuspect/internal/blocktree"
	"github.com/blocksuspect/blocksuspect/internal/intervaltree"
	"github.com/blocksuspect/blocksuspect/internal/linelex"
	"github.com/blocksuspect/blocksuspect/internal/refparser"
)

// Frontier is CodeFrontier: the engine's working set of suspect blocks.
type Frontier struct {
	lines    []linelex.CodeLine
	parser   refparser.ReferenceParser
	validate func(*blocktree.Node) bool // isolated-block validity check, memoized on the node

	tree   *intervaltree.Tree[*blocktree.Node]
	sorted []*blocktree.Node // insertion-sorted by (indent, start), deleted tails popped lazily

	unvisited map[uint32]bool

	checkNext bool // set once an invalid block has been pushed since the last check
}

// New returns an empty Frontier over the document's lines, using parser
// both for per-block isolated validity (Node.Valid) and for
// holds_all_syntax_errors?/detect_invalid_blocks's whole-document
// checks.
func New(lines []linelex.CodeLine, parser refparser.ReferenceParser) *Frontier {
	unvisited := make(map[uint32]bool, len(lines))
	for _, l := range lines {
		if !l.Empty {
			unvisited[l.Index] = true
		}
	}
	f := &Frontier{
		lines:     lines,
		parser:    parser,
		tree:      intervaltree.New[*blocktree.Node](),
		unvisited: unvisited,
	}
	f.validate = func(n *blocktree.Node) bool {
		ok, err := parser.Valid(context.Background(), n.Text())
		return err == nil && ok
	}
	return f
}

// Push is CodeFrontier#push (spec.md §4.8).
func (f *Frontier) Push(block *blocktree.Node) {
	f.registerIndentBlock(block)

	key := block.Range()
	f.tree.Push(key, block)

	for _, e := range f.tree.SearchContainsKey(key) {
		if e.Value == block {
			continue
		}
		e.Value.Deleted = true
		f.tree.Delete(e.Key)
	}

	f.popDeletedTail()

	if !block.Valid(f.validate) {
		f.checkNext = true
	}

	f.sorted = append(f.sorted, block)
	sort.SliceStable(f.sorted, func(i, j int) bool {
		a, b := f.sorted[i], f.sorted[j]
		if a.Indent != b.Indent {
			return a.Indent < b.Indent
		}
		return a.StartIndex < b.StartIndex
	})
}

func (f *Frontier) registerIndentBlock(block *blocktree.Node) {
	for i := block.StartIndex; i <= block.EndIndex; i++ {
		delete(f.unvisited, i)
	}
}

func (f *Frontier) popDeletedTail() {
	n := len(f.sorted)
	for n > 0 && f.sorted[n-1].Deleted {
		n--
	}
	f.sorted = f.sorted[:n]
}

// Live returns every currently non-deleted block in the frontier, in
// sorted (indent, start) order.
func (f *Frontier) Live() []*blocktree.Node {
	var out []*blocktree.Node
	for _, n := range f.sorted {
		if !n.Deleted {
			out = append(out, n)
		}
	}
	return out
}

// HoldsAllSyntaxErrors is CodeFrontier#holds_all_syntax_errors?
// (spec.md §4.8): redact every alive frontier block's lines and ask the
// external parser whether the remainder is valid. can_skip_check
// short-circuits to false unless at least one invalid block has been
// pushed since the last call.
func (f *Frontier) HoldsAllSyntaxErrors(ctx context.Context) (bool, error) {
	if !f.checkNext {
		return false, nil
	}
	f.checkNext = false

	var without []int
	for _, n := range f.Live() {
		for i := n.StartIndex; i <= n.EndIndex; i++ {
			without = append(without, int(i))
		}
	}
	return f.parser.ValidWithout(ctx, without, f.lines)
}

// Invalid returns the currently live blocks whose own isolated text
// does not parse, in Live order. internal/suspect's InvalidBlockSelector
// consumes this to run detect_invalid_blocks (spec.md §4.8/§9).
func (f *Frontier) Invalid() []*blocktree.Node {
	var out []*blocktree.Node
	for _, n := range f.Live() {
		if !n.Valid(f.validate) {
			out = append(out, n)
		}
	}
	return out
}

// Lines returns the frontier's backing CodeLine sequence, needed by
// ValidWithout callers that only hold a Frontier.
func (f *Frontier) Lines() []linelex.CodeLine {
	return f.lines
}

// Parser returns the ReferenceParser the frontier was constructed with.
func (f *Frontier) Parser() refparser.ReferenceParser {
	return f.parser
}
