// Package refparser defines the reference-parser external collaborator
// contract (spec.md §6: "is this string syntactically valid?") and its
// backends.
package refparser

import (
	"context"
	"errors"
	"strings"

	"github.com/blocksuspect/blocksuspect/internal/linelex"
)

// ErrParserUnavailable wraps a backend failure to produce a parser at
// all (spec.md §7 ParserUnavailable: "propagate").
var ErrParserUnavailable = errors.New("refparser: backend unavailable")

// ReferenceParser answers whether source text is syntactically valid,
// optionally with a subset of lines omitted (spec.md §6).
type ReferenceParser interface {
	Valid(ctx context.Context, text string) (bool, error)
	ValidWithout(ctx context.Context, withoutLines []int, lines []linelex.CodeLine) (bool, error)
}

// joinWithout reconstructs source text from lines, skipping every index
// present in withoutLines. Used by every ReferenceParser implementation
// to satisfy the ValidWithout convenience contract (spec.md §6:
// "reconstructs the source with the given lines omitted").
func joinWithout(withoutLines []int, lines []linelex.CodeLine) string {
	skip := make(map[int]bool, len(withoutLines))
	for _, i := range withoutLines {
		skip[i] = true
	}
	var b strings.Builder
	for _, l := range lines {
		if skip[int(l.Index)] {
			continue
		}
		b.WriteString(l.Original)
	}
	return b.String()
}
