package blocktree

import (
	"github.com/blocksuspect/blocksuspect/internal/lexpair"
	"github.com/blocksuspect/blocksuspect/internal/linelex"
)

// Document is the BlockDocument spine (spec.md §4.5): leaf nodes linked
// by Above/Below, a root sentinel whose Parents accumulate top-level
// blocks as the indent-tree driver finishes with them, and the
// expansion-candidate priority Queue. All BlockNodes live in Document's
// arena; neighbour links are ordinary pointers into that arena rather
// than indices or generational handles (spec.md §9 suggests either —
// Go's GC plus the Deleted tombstone make the indirection unnecessary,
// see DESIGN.md).
type Document struct {
	arena   []*Node
	Root    *Node
	Queue   *Queue
	nextSeq uint64
}

// NewDocument builds one leaf Node per CodeLine, links them into a
// spine via Above/Below, enqueues every leaf, and returns the Document.
func NewDocument(lines []linelex.CodeLine) *Document {
	d := &Document{Queue: NewQueue()}
	d.Root = d.newNode(nil, 0, 0, 0, lexpair.New(), nil)

	leaves := make([]*Node, len(lines))
	for i, l := range lines {
		leaves[i] = d.newNode([]linelex.CodeLine{l}, l.Index, l.Index, l.Indent, l.LexDiff, nil)
	}
	for i, n := range leaves {
		if i > 0 {
			n.Above = leaves[i-1]
		}
		if i+1 < len(leaves) {
			n.Below = leaves[i+1]
		}
		d.Queue.Push(n)
	}
	return d
}

func (d *Document) newNode(lines []linelex.CodeLine, start, end, indent uint32, diff lexpair.Diff, parents []*Node) *Node {
	n := &Node{
		seq:        d.nextSeq,
		Lines:      lines,
		StartIndex: start,
		EndIndex:   end,
		Indent:     indent,
		LexDiff:    diff,
		Parents:    parents,
		hasContent: anyNonEmpty(lines),
	}
	d.nextSeq++
	d.arena = append(d.arena, n)
	return n
}

// anyNonEmpty reports whether any of lines is non-empty, i.e. whether
// an Indent derived from lines reflects a real line rather than the
// blank/hidden-line zero sentinel (spec.md §3).
func anyNonEmpty(lines []linelex.CodeLine) bool {
	for _, l := range lines {
		if !l.Empty {
			return true
		}
	}
	return false
}

// Capture composes parents into a new node via from_blocks, rewires the
// spine's reciprocal neighbour links, files the composite into the
// queue, and returns it (spec.md §4.5 capture(parents) -> BlockNode).
func (d *Document) Capture(parents []*Node) *Node {
	composite := fromBlocks(parents)
	composite.seq = d.nextSeq
	d.nextSeq++
	d.arena = append(d.arena, composite)

	if composite.Above != nil {
		composite.Above.Below = composite
	}
	if composite.Below != nil {
		composite.Below.Above = composite
	}

	d.Queue.Push(composite)
	return composite
}

// AttachToRoot appends n directly as a parent of the root sentinel, the
// IndentTree driver's action for a node that grew no further (spec.md
// §4.7: "attach it as a parent of the root sentinel").
func (d *Document) AttachToRoot(n *Node) {
	d.Root.Parents = append(d.Root.Parents, n)
}

// ToA returns a snapshot of every currently undeleted, non-sentinel
// node in the arena, in arena (insertion) order.
func (d *Document) ToA() []*Node {
	var out []*Node
	for _, n := range d.arena {
		if n != d.Root && !n.Deleted {
			out = append(out, n)
		}
	}
	return out
}

// fromBlocks implements the from_blocks(parents) contract (spec.md
// §4.4): composes a new Node from parents, marking every parent
// deleted. A singleton parent that is itself composite is unwrapped
// rather than wrapped in a redundant single-child layer; if the result
// still has exactly one logical parent after unwrapping, it is stored
// as leaf-equivalent (empty Parents).
func fromBlocks(parents []*Node) *Node {
	if len(parents) == 1 {
		return unwrapSingle(parents[0])
	}

	first, last := parents[0], parents[len(parents)-1]
	// indent is the minimum Indent among parents that actually have a
	// non-empty line (spec.md §3: "the minimum indent among non-empty
	// member lines"); an all-blank parent's Indent (always 0) must not
	// drag the composite down. If no parent has content, fall back to
	// the first parent's Indent (still 0), matching its own fallback.
	var indent uint32
	indentFromContent := false
	var lines []linelex.CodeLine
	var diff lexpair.Diff
	for i, p := range parents {
		if p.hasContent && (!indentFromContent || p.Indent < indent) {
			indent = p.Indent
			indentFromContent = true
		}
		lines = append(lines, p.Lines...)
		if i == 0 {
			diff = p.LexDiff
		} else {
			diff.Concat(p.LexDiff)
		}
	}
	if !indentFromContent {
		indent = first.Indent
	}
	composite := &Node{
		Lines:      lines,
		StartIndex: first.StartIndex,
		EndIndex:   last.EndIndex,
		Indent:     indent,
		LexDiff:    diff,
		Parents:    append([]*Node(nil), parents...),
		Above:      first.Above,
		Below:      last.Below,
		hasContent: indentFromContent,
	}
	for _, p := range parents {
		p.Deleted = true
	}
	return composite
}

func unwrapSingle(sole *Node) *Node {
	var effectiveParents []*Node
	if !sole.IsLeaf() {
		effectiveParents = sole.Parents
	}
	composite := &Node{
		Lines:      sole.Lines,
		StartIndex: sole.StartIndex,
		EndIndex:   sole.EndIndex,
		Indent:     sole.Indent,
		LexDiff:    sole.LexDiff,
		Parents:    effectiveParents,
		Above:      sole.Above,
		Below:      sole.Below,
		hasContent: sole.hasContent,
	}
	sole.Deleted = true
	return composite
}
