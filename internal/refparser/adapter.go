package refparser

import (
	"context"
	"fmt"

	"github.com/blocksuspect/blocksuspect/internal/linelex"
	"github.com/blocksuspect/blocksuspect/internal/refparser/backend"
)

// Adapter wraps any backend.Factory as a ReferenceParser, joining
// source through backend.Parser.ParseValid once per call (mirroring the
// teacher's syntax.Parse/currentParserFactory wiring at
// internal/syntax/backend_factory.go).
type Adapter struct {
	factory backend.Factory
}

// NewAdapter returns a ReferenceParser backed by factory.
func NewAdapter(factory backend.Factory) *Adapter {
	return &Adapter{factory: factory}
}

func (a *Adapter) Valid(ctx context.Context, text string) (bool, error) {
	p, err := a.factory.NewParser()
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrParserUnavailable, a.factory.Name(), err)
	}
	defer p.Close()
	return p.ParseValid(ctx, []byte(text))
}

func (a *Adapter) ValidWithout(ctx context.Context, withoutLines []int, lines []linelex.CodeLine) (bool, error) {
	return a.Valid(ctx, joinWithout(withoutLines, lines))
}
