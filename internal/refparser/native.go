package refparser

import (
	"context"

	"github.com/blocksuspect/blocksuspect/internal/lexpair"
	"github.com/blocksuspect/blocksuspect/internal/linelex"
)

// nativeParser is the default ReferenceParser: a single forward scan
// that folds every line's lexpair.Diff together (the same ordered
// Concat rule BlockNode composition uses) and reports validity as
// "the whole document balances." This is the scan-state-as-you-go
// idiom jcorbin-soc's scandown.BlockStack uses to drive a
// bufio.Scanner.Split function — one pass, one running stack of open
// structure, closed out at EOF — adapted here to lexical pair balance
// instead of Markdown block nesting.
type nativeParser struct{}

// Native returns the default ReferenceParser backend: no external
// process, no compiled grammar, just the same lexpair/linelex machinery
// the rest of the search engine already uses to decide balance.
func Native() ReferenceParser {
	return nativeParser{}
}

func (nativeParser) Valid(_ context.Context, text string) (bool, error) {
	lines := linelex.BuildCodeLines(text, linelex.DefaultCleaner())
	return foldBalanced(lines), nil
}

func (nativeParser) ValidWithout(ctx context.Context, withoutLines []int, lines []linelex.CodeLine) (bool, error) {
	text := joinWithout(withoutLines, lines)
	return nativeParser{}.Valid(ctx, text)
}

func foldBalanced(lines []linelex.CodeLine) bool {
	var total lexpair.Diff
	for _, l := range lines {
		if l.Empty {
			continue
		}
		total.Concat(l.LexDiff)
	}
	return total.Balanced()
}
