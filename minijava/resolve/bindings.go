package resolve

import (
	"github.com/dhamidi/mjc/minijava/ast"
	"github.com/dhamidi/mjc/minijava/diag"
	"github.com/dhamidi/mjc/minijava/source"
)

// Binding links a use site to the declaration it names. The zero Binding is
// an explicit "did not resolve".
type Binding struct {
	Decl ast.Decl
}

func (b Binding) Resolved() bool {
	return b.Decl != nil
}

// Bindings is the side table the resolver fills in. Keys are node pointers
// of the tree that was resolved.
type Bindings struct {
	m     map[ast.Node]Binding
	order []ast.Node
}

func newBindings() *Bindings {
	return &Bindings{m: make(map[ast.Node]Binding)}
}

// Of returns the binding recorded for n. The second result is false when n
// was never visited as a use site.
func (b *Bindings) Of(n ast.Node) (Binding, bool) {
	binding, ok := b.m[n]
	return binding, ok
}

// DeclOf is Of reduced to the bound declaration, nil when unbound or
// unresolved.
func (b *Bindings) DeclOf(n ast.Node) ast.Decl {
	return b.m[n].Decl
}

func (b *Bindings) Len() int {
	return len(b.order)
}

// Each calls f for every binding in the order they were recorded.
func (b *Bindings) Each(f func(ast.Node, Binding)) {
	for _, n := range b.order {
		f(n, b.m[n])
	}
}

// bind records decl for n unless n already has a binding. It reports whether
// the binding was recorded.
func (b *Bindings) bind(n ast.Node, decl ast.Decl) bool {
	if _, exists := b.m[n]; exists {
		return false
	}
	b.m[n] = Binding{Decl: decl}
	b.order = append(b.order, n)
	return true
}

// Result is a resolved package: the unchanged tree plus its bindings.
type Result struct {
	Package  *ast.Package
	Bindings *Bindings
	Reporter *diag.Reporter
}

func (r *Result) Diagnostics() []*diag.Diagnostic {
	return r.Reporter.Diagnostics()
}

// TypeOf returns t with every class type that did not resolve replaced by
// the unsupported base type.
func (r *Result) TypeOf(t ast.Type) ast.Type {
	switch t := t.(type) {
	case *ast.ClassType:
		if r.Bindings.DeclOf(t) == nil {
			return &ast.BaseType{Loc: ast.At(t.Pos()), Kind: ast.TypeUnsupported}
		}
	case *ast.ArrayType:
		if elem := r.TypeOf(t.ElementType); elem != t.ElementType {
			return &ast.ArrayType{Loc: t.Loc, ElementType: elem}
		}
	}
	return t
}

// DeclAt returns the node under line/column together with the declaration
// it denotes. Use sites (identifiers and this) yield their binding; a
// declaration's own name yields the declaration itself.
func (r *Result) DeclAt(line, column int) (ast.Node, ast.Decl) {
	var (
		found ast.Node
		decl  ast.Decl
	)
	ast.Inspect(r.Package, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		switch n := n.(type) {
		case *ast.Identifier:
			if span(n.Pos(), len(n.Spelling)).Contains(line, column) {
				found, decl = n, r.Bindings.DeclOf(n)
			}
		case *ast.ThisRef:
			if span(n.Pos(), len("this")).Contains(line, column) {
				found, decl = n, r.Bindings.DeclOf(n)
			}
		case ast.Decl:
			if span(n.Pos(), len(n.DeclName())).Contains(line, column) {
				found, decl = n, n
			}
		}
		return true
	})
	return found, decl
}

// ReferencesTo returns every identifier and this reference bound to decl, in
// the order they were resolved.
func (r *Result) ReferencesTo(decl ast.Decl) []ast.Node {
	var refs []ast.Node
	r.Bindings.Each(func(n ast.Node, b Binding) {
		if b.Decl != decl {
			return
		}
		switch n.(type) {
		case *ast.Identifier, *ast.ThisRef:
			refs = append(refs, n)
		}
	})
	return refs
}

func span(start source.Position, width int) source.Span {
	end := start
	end.Column += width
	end.Offset += width
	return source.Span{Start: start, End: end}
}
