// Package format renders miniJava tokens and trees for people and tools:
// an indented tree, JSON, a token listing and canonical source text.
package format

import (
	"encoding"

	"github.com/dhamidi/mjc/minijava/ast"
)

// Encoder writes a whole package in one format.
type Encoder interface {
	encoding.TextMarshaler
	Encode(pkg *ast.Package) error
}

var (
	_ Encoder = (*TreeEncoder)(nil)
	_ Encoder = (*JSONEncoder)(nil)
	_ Encoder = (*SourceEncoder)(nil)
)
