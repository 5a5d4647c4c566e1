// Package backend defines the pluggable parser-backend abstraction
// refparser.Adapter wraps, mirroring the teacher's internal/syntax
// backend.Factory/backend.Parser split.
package backend

import "context"

// Parser is a low-level syntax-validity backend contract.
type Parser interface {
	// ParseValid reports whether src parses without syntax errors.
	ParseValid(ctx context.Context, src []byte) (bool, error)
	Close()
}

// Factory creates Parser instances for a specific backend
// implementation.
type Factory interface {
	Name() string
	NewParser() (Parser, error)
}
