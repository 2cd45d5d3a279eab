package ast

import (
	"fmt"
	"io"
	"strings"
)

// Label returns the node kind and a short description of n's own
// attributes, not including its children.
func Label(n Node) (kind, detail string) {
	switch n := n.(type) {
	case *Package:
		return "Package", ""
	case *ClassDecl:
		return "ClassDecl", n.Name
	case *FieldDecl:
		return "FieldDecl", memberDetail(&n.Member)
	case *MethodDecl:
		return "MethodDecl", memberDetail(&n.Member)
	case *ParameterDecl:
		return "ParameterDecl", n.Name
	case *VarDecl:
		return "VarDecl", n.Name
	case *BaseType:
		return "BaseType", n.Kind.String()
	case *ClassType:
		return "ClassType", ""
	case *ArrayType:
		return "ArrayType", ""
	case *BlockStmt:
		return "BlockStmt", ""
	case *VarDeclStmt:
		return "VarDeclStmt", ""
	case *AssignStmt:
		return "AssignStmt", ""
	case *IndexedAssignStmt:
		return "IndexedAssignStmt", ""
	case *CallStmt:
		return "CallStmt", ""
	case *ReturnStmt:
		return "ReturnStmt", ""
	case *IfStmt:
		return "IfStmt", ""
	case *WhileStmt:
		return "WhileStmt", ""
	case *UnaryExpr:
		return "UnaryExpr", ""
	case *BinaryExpr:
		return "BinaryExpr", ""
	case *RefExpr:
		return "RefExpr", ""
	case *CallExpr:
		return "CallExpr", ""
	case *LiteralExpr:
		return "LiteralExpr", ""
	case *NewArrayExpr:
		return "NewArrayExpr", ""
	case *NewObjectExpr:
		return "NewObjectExpr", ""
	case *IdRef:
		return "IdRef", ""
	case *QualifiedRef:
		return "QualifiedRef", ""
	case *IndexedRef:
		return "IndexedRef", ""
	case *ThisRef:
		return "ThisRef", ""
	case *Identifier:
		return "Identifier", quote(n.Spelling)
	case *Operator:
		return "Operator", quote(n.Spelling)
	case *IntLiteral:
		return "IntLiteral", quote(n.Spelling)
	case *BooleanLiteral:
		return "BooleanLiteral", quote(n.Spelling)
	}
	panic(fmt.Sprintf("ast: unexpected node %T", n))
}

func memberDetail(m *Member) string {
	var parts []string
	if m.IsPrivate {
		parts = append(parts, "private")
	} else {
		parts = append(parts, "public")
	}
	if m.IsStatic {
		parts = append(parts, "static")
	}
	parts = append(parts, m.Name)
	return strings.Join(parts, " ")
}

func quote(s string) string {
	return "\"" + s + "\""
}

type DumpOption func(*dumper)

func WithPositions() DumpOption {
	return func(d *dumper) {
		d.positions = true
	}
}

// WithAnnotations appends the non-empty result of f to each node's line.
func WithAnnotations(f func(Node) string) DumpOption {
	return func(d *dumper) {
		d.annotate = f
	}
}

type dumper struct {
	w         io.Writer
	positions bool
	annotate  func(Node) string
	err       error
}

// Fprint writes the tree rooted at n one node per line, indenting two spaces
// per level of depth.
func Fprint(w io.Writer, n Node, opts ...DumpOption) error {
	d := &dumper{w: w}
	for _, opt := range opts {
		opt(d)
	}
	d.dump(n, 0)
	return d.err
}

// Sprint is Fprint into a string.
func Sprint(n Node, opts ...DumpOption) string {
	var sb strings.Builder
	Fprint(&sb, n, opts...)
	return sb.String()
}

func (d *dumper) dump(n Node, indent int) {
	if d.err != nil {
		return
	}
	kind, detail := Label(n)
	line := strings.Repeat("  ", indent) + kind
	if detail != "" {
		line += " " + detail
	}
	if d.positions && n.Pos().IsValid() {
		line += " @" + n.Pos().String()
	}
	if d.annotate != nil {
		if note := d.annotate(n); note != "" {
			line += " " + note
		}
	}
	if _, err := io.WriteString(d.w, line+"\n"); err != nil {
		d.err = err
		return
	}
	for _, c := range Children(n) {
		d.dump(c, indent+1)
	}
}

// Equal reports whether a and b are structurally identical, ignoring source
// positions.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Sprint(a) == Sprint(b)
}

// TypeString renders t as it is written in source, e.g. "int[]".
func TypeString(t Type) string {
	switch t := t.(type) {
	case *BaseType:
		return t.Kind.String()
	case *ClassType:
		return t.ClassName.Spelling
	case *ArrayType:
		return TypeString(t.ElementType) + "[]"
	}
	return ""
}
