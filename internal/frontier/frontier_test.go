package frontier

import (
	"context"
	"testing"

	"github.com/blocksuspect/blocksuspect/internal/blocktree"
	"github.com/blocksuspect/blocksuspect/internal/linelex"
	"github.com/blocksuspect/blocksuspect/internal/refparser"
)

func leaf(start, end uint32) *blocktree.Node {
	lines := make([]linelex.CodeLine, 0, end-start+1)
	for i := start; i <= end; i++ {
		lines = append(lines, linelex.CodeLine{Index: i, Original: "x\n"})
	}
	return &blocktree.Node{Lines: lines, StartIndex: start, EndIndex: end}
}

func docLines(n int) []linelex.CodeLine {
	lines := make([]linelex.CodeLine, n)
	for i := range lines {
		lines[i] = linelex.CodeLine{Index: uint32(i), Original: "x\n"}
	}
	return lines
}

// TestPushEngulfsSmallerBlocks exercises spec.md §4.8 Scenario F: push
// blocks at [1..1], [5..5], [11..11] (0-based [0..0],[4..4],[10..10]
// here), then a covering [0..20]; the first three must be evicted and
// the frontier's live set reduced to the covering block (I6/P5).
func TestPushEngulfsSmallerBlocks(t *testing.T) {
	t.Parallel()
	lines := docLines(21)
	f := New(lines, refparser.Native())

	a, b, c := leaf(0, 0), leaf(4, 4), leaf(10, 10)
	f.Push(a)
	f.Push(b)
	f.Push(c)
	if len(f.Live()) != 3 {
		t.Fatalf("expected 3 live blocks before the covering push, got %d", len(f.Live()))
	}

	covering := leaf(0, 20)
	f.Push(covering)

	live := f.Live()
	if len(live) != 1 || live[0] != covering {
		t.Fatalf("expected only the covering block to survive, got %+v", live)
	}
	for _, n := range []*blocktree.Node{a, b, c} {
		if !n.Deleted {
			t.Fatalf("expected engulfed block %+v to be marked deleted", n)
		}
	}
}

// TestPushNoInvariantViolationAmongSurvivors checks I6/P5: after any
// sequence of pushes, no two live frontier blocks have one strictly
// containing the other.
func TestPushNoInvariantViolationAmongSurvivors(t *testing.T) {
	t.Parallel()
	lines := docLines(30)
	f := New(lines, refparser.Native())

	f.Push(leaf(0, 2))
	f.Push(leaf(5, 5))
	f.Push(leaf(3, 10))
	f.Push(leaf(20, 25))

	live := f.Live()
	for i := range live {
		for j := range live {
			if i == j {
				continue
			}
			a, b := live[i].Range(), live[j].Range()
			if a.Start >= b.Start && a.End <= b.End && (a.Start != b.Start || a.End != b.End) {
				t.Fatalf("invariant I6 violated: %+v strictly contained by %+v", a, b)
			}
		}
	}
}

func TestHoldsAllSyntaxErrorsSkipsCheckWithoutNewInvalidBlock(t *testing.T) {
	t.Parallel()
	lines := docLines(3)
	f := New(lines, refparser.Native())

	ok, err := f.HoldsAllSyntaxErrors(context.Background())
	if err != nil {
		t.Fatalf("HoldsAllSyntaxErrors: %v", err)
	}
	if ok {
		t.Fatalf("expected can_skip_check to short-circuit to false with no pushes yet")
	}
}

func TestHoldsAllSyntaxErrorsChecksOnceAnInvalidBlockIsPushed(t *testing.T) {
	t.Parallel()
	src := "def foo\n  1\n"
	lines := linelex.BuildCodeLines(src, linelex.DefaultCleaner())
	f := New(lines, refparser.Native())

	whole := &blocktree.Node{Lines: lines, StartIndex: 0, EndIndex: uint32(len(lines) - 1)}
	f.Push(whole)

	ok, err := f.HoldsAllSyntaxErrors(context.Background())
	if err != nil {
		t.Fatalf("HoldsAllSyntaxErrors: %v", err)
	}
	if !ok {
		t.Fatalf("expected redacting the whole document to validate")
	}
}

func TestInvalidReturnsOnlyBlocksFailingIsolatedValidity(t *testing.T) {
	t.Parallel()
	lines := docLines(2)
	f := New(lines, refparser.Native())

	good := leaf(0, 0)
	good.Lines[0].Original = "x = 1\n"
	bad := leaf(1, 1)
	bad.Lines[0].Original = "end\n"

	f.Push(good)
	f.Push(bad)

	invalid := f.Invalid()
	if len(invalid) != 1 || invalid[0] != bad {
		t.Fatalf("expected only the stray `end` block to be invalid, got %+v", invalid)
	}
}
