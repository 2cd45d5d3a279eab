package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/mjc/minijava/ast"
	"github.com/dhamidi/mjc/minijava/resolve"
)

// TreeEncoder writes the AST one node per line, indented by depth.
type TreeEncoder struct {
	w         io.Writer
	pkg       *ast.Package
	result    *resolve.Result
	positions bool
}

type TreeOption func(*TreeEncoder)

// WithBindings annotates every identifier and this reference with the
// declaration it is bound to in result.
func WithBindings(result *resolve.Result) TreeOption {
	return func(e *TreeEncoder) {
		e.result = result
	}
}

func WithPositions() TreeOption {
	return func(e *TreeEncoder) {
		e.positions = true
	}
}

func NewTreeEncoder(w io.Writer, opts ...TreeOption) *TreeEncoder {
	e := &TreeEncoder{w: w}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *TreeEncoder) Encode(pkg *ast.Package) error {
	e.pkg = pkg
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	var opts []ast.DumpOption
	if e.positions {
		opts = append(opts, ast.WithPositions())
	}
	if e.result != nil {
		opts = append(opts, ast.WithAnnotations(e.annotate))
	}
	var sb strings.Builder
	if err := ast.Fprint(&sb, e.pkg, opts...); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func (e *TreeEncoder) annotate(n ast.Node) string {
	switch n.(type) {
	case *ast.Identifier, *ast.ThisRef:
	default:
		return ""
	}
	b, ok := e.result.Bindings.Of(n)
	if !ok {
		return ""
	}
	if !b.Resolved() {
		return "-> unresolved"
	}
	kind, _ := ast.Label(b.Decl)
	return fmt.Sprintf("-> %s %s @%s", kind, b.Decl.DeclName(), b.Decl.Pos())
}
