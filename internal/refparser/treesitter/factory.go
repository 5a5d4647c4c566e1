// Package treesitter contains the tree-sitter parser backend wiring
// surface. No compiled grammar for the source language this module
// targets ships in this repository or anywhere in its dependency
// graph, so this backend mirrors the teacher's own
// internal/syntax/backend/wasm placeholder: constructor wiring only,
// not yet usable.
package treesitter

import (
	"context"
	"errors"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/blocksuspect/blocksuspect/internal/refparser/backend"
)

// ErrGrammarNotConfigured is returned until a compiled tree-sitter
// grammar is wired into Config.
var ErrGrammarNotConfigured = errors.New("treesitter parser backend: no grammar configured")

const factoryName = "tree-sitter"

// Config holds the compiled grammar this backend parses against.
// Language is nil until a real grammar artifact is available.
type Config struct {
	Language *tree_sitter.Language
}

// Factory is the tree-sitter parser backend factory.
//
// M1 intentionally provides constructor wiring only.
type Factory struct {
	config Config
}

var _ backend.Factory = (*Factory)(nil)

// NewFactory constructs a tree-sitter backend factory.
func NewFactory(config Config) *Factory {
	return &Factory{config: config}
}

// Name returns the stable backend identifier.
func (f *Factory) Name() string {
	return factoryName
}

// NewParser creates a parser instance.
//
// M1 intentionally returns ErrGrammarNotConfigured until a compiled
// grammar is wired into Config.Language.
func (f *Factory) NewParser() (backend.Parser, error) {
	if f.config.Language == nil {
		return nil, ErrGrammarNotConfigured
	}
	p := tree_sitter.NewParser()
	if err := p.SetLanguage(f.config.Language); err != nil {
		p.Close()
		return nil, err
	}
	return &parser{inner: p}, nil
}

type parser struct {
	inner *tree_sitter.Parser
}

// ParseValid parses src and reports whether the resulting tree is free
// of ERROR and missing nodes.
func (p *parser) ParseValid(_ context.Context, src []byte) (bool, error) {
	tree := p.inner.Parse(src, nil)
	if tree == nil {
		return false, errors.New("treesitter: parse returned no tree")
	}
	defer tree.Close()
	return !tree.RootNode().HasError(), nil
}

func (p *parser) Close() {
	if p.inner != nil {
		p.inner.Close()
		p.inner = nil
	}
}
