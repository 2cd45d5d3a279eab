package format

import (
	"io"
	"strings"

	"github.com/dhamidi/mjc/minijava/ast"
)

// SourceEncoder prints a package as canonical miniJava source: four-space
// indentation, one member or statement per line, fields before methods and
// parentheses only where precedence requires them. Parsing the output yields
// a tree equal to the input.
type SourceEncoder struct {
	w         io.Writer
	pkg       *ast.Package
	indentStr string
}

func NewSourceEncoder(w io.Writer) *SourceEncoder {
	return &SourceEncoder{w: w, indentStr: "    "}
}

func (e *SourceEncoder) Encode(pkg *ast.Package) error {
	e.pkg = pkg
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *SourceEncoder) MarshalText() ([]byte, error) {
	p := &sourcePrinter{indentStr: e.indentStr}
	for i, class := range e.pkg.Classes {
		if i > 0 {
			p.newline()
		}
		p.class(class)
	}
	return []byte(p.sb.String()), nil
}

type sourcePrinter struct {
	sb        strings.Builder
	indent    int
	indentStr string
}

func (p *sourcePrinter) write(s string) {
	p.sb.WriteString(s)
}

func (p *sourcePrinter) newline() {
	p.sb.WriteByte('\n')
}

func (p *sourcePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.sb.WriteString(p.indentStr)
	}
}

func (p *sourcePrinter) class(c *ast.ClassDecl) {
	p.write("class " + c.Name + " {")
	p.newline()
	p.indent++
	for _, f := range c.Fields {
		p.writeIndent()
		p.modifiers(&f.Member)
		p.typ(f.Type)
		p.write(" " + f.Name + ";")
		p.newline()
	}
	for i, m := range c.Methods {
		if i > 0 || len(c.Fields) > 0 {
			p.newline()
		}
		p.method(m)
	}
	p.indent--
	p.write("}")
	p.newline()
}

func (p *sourcePrinter) modifiers(m *ast.Member) {
	if m.IsPrivate {
		p.write("private ")
	} else {
		p.write("public ")
	}
	if m.IsStatic {
		p.write("static ")
	}
}

func (p *sourcePrinter) method(m *ast.MethodDecl) {
	p.writeIndent()
	p.modifiers(&m.Member)
	p.typ(m.Type)
	p.write(" " + m.Name + "(")
	for i, param := range m.Parameters {
		if i > 0 {
			p.write(", ")
		}
		p.typ(param.Type)
		p.write(" " + param.Name)
	}
	p.write(") ")
	p.block(m.Body)
	p.newline()
}

func (p *sourcePrinter) typ(t ast.Type) {
	p.write(ast.TypeString(t))
}

// block writes a braced statement list starting at the current column. The
// closing brace is not followed by a newline.
func (p *sourcePrinter) block(stmts []ast.Statement) {
	if len(stmts) == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.newline()
	p.indent++
	for _, s := range stmts {
		p.writeIndent()
		p.stmt(s)
		p.newline()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

// stmt writes s starting at the current column, without a trailing newline.
func (p *sourcePrinter) stmt(s ast.Statement) {
	switch s := s.(type) {
	case *ast.BlockStmt:
		p.block(s.Statements)
	case *ast.VarDeclStmt:
		p.typ(s.Decl.Type)
		p.write(" " + s.Decl.Name + " = ")
		p.expr(s.Init)
		p.write(";")
	case *ast.AssignStmt:
		p.ref(s.Target)
		p.write(" = ")
		p.expr(s.Value)
		p.write(";")
	case *ast.IndexedAssignStmt:
		p.ref(s.Target)
		p.write(" = ")
		p.expr(s.Value)
		p.write(";")
	case *ast.CallStmt:
		p.ref(s.MethodRef)
		p.args(s.Args)
		p.write(";")
	case *ast.ReturnStmt:
		p.write("return")
		if s.Expr != nil {
			p.write(" ")
			p.expr(s.Expr)
		}
		p.write(";")
	case *ast.IfStmt:
		p.write("if (")
		p.expr(s.Cond)
		p.write(")")
		p.body(s.Then)
		if s.Else == nil {
			return
		}
		if _, ok := s.Then.(*ast.BlockStmt); ok {
			p.write(" ")
		} else {
			p.newline()
			p.writeIndent()
		}
		p.write("else")
		if _, ok := s.Else.(*ast.IfStmt); ok {
			p.write(" ")
			p.stmt(s.Else)
			return
		}
		p.body(s.Else)
	case *ast.WhileStmt:
		p.write("while (")
		p.expr(s.Cond)
		p.write(")")
		p.body(s.Body)
	}
}

// body writes the statement controlled by if, else or while. Blocks stay on
// the same line; anything else goes on its own line, one level deeper.
func (p *sourcePrinter) body(s ast.Statement) {
	if _, ok := s.(*ast.BlockStmt); ok {
		p.write(" ")
		p.stmt(s)
		return
	}
	p.newline()
	p.indent++
	p.writeIndent()
	p.stmt(s)
	p.indent--
}

func (p *sourcePrinter) ref(r ast.Reference) {
	switch r := r.(type) {
	case *ast.IdRef:
		p.write(r.ID.Spelling)
	case *ast.ThisRef:
		p.write("this")
	case *ast.QualifiedRef:
		p.ref(r.Base)
		p.write("." + r.Member.Spelling)
	case *ast.IndexedRef:
		p.ref(r.Base)
		p.write("[")
		p.expr(r.Index)
		p.write("]")
	}
}

func (p *sourcePrinter) args(args []ast.Expression) {
	p.write("(")
	for i, a := range args {
		if i > 0 {
			p.write(", ")
		}
		p.expr(a)
	}
	p.write(")")
}

var binaryPrecedence = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3, "!=": 3,
	"<": 4, "<=": 4, ">": 4, ">=": 4,
	"+": 5, "-": 5,
	"*": 6, "/": 6,
}

const (
	unaryPrecedence   = 7
	primaryPrecedence = 8
)

func precedence(e ast.Expression) int {
	switch e := e.(type) {
	case *ast.BinaryExpr:
		return binaryPrecedence[e.Op.Spelling]
	case *ast.UnaryExpr:
		return unaryPrecedence
	}
	return primaryPrecedence
}

func (p *sourcePrinter) expr(e ast.Expression) {
	switch e := e.(type) {
	case *ast.BinaryExpr:
		prec := binaryPrecedence[e.Op.Spelling]
		p.operand(e.Left, prec, false)
		p.write(" " + e.Op.Spelling + " ")
		p.operand(e.Right, prec, true)
	case *ast.UnaryExpr:
		p.write(e.Op.Spelling)
		// "- -x" must not print as the invalid token "--"
		if inner, ok := e.Operand.(*ast.UnaryExpr); ok && e.Op.Spelling == "-" && inner.Op.Spelling == "-" {
			p.write(" ")
		}
		p.operand(e.Operand, unaryPrecedence, false)
	case *ast.RefExpr:
		p.ref(e.Ref)
	case *ast.CallExpr:
		p.ref(e.FuncRef)
		p.args(e.Args)
	case *ast.LiteralExpr:
		p.write(e.Lit.Text())
	case *ast.NewArrayExpr:
		p.write("new ")
		p.typ(e.ElementType)
		p.write("[")
		p.expr(e.Size)
		p.write("]")
	case *ast.NewObjectExpr:
		p.write("new " + e.ClassType.ClassName.Spelling + "()")
	}
}

// operand parenthesizes e when it binds looser than its parent operator, or
// equally loose on the right of a left-associative one.
func (p *sourcePrinter) operand(e ast.Expression, parent int, right bool) {
	prec := precedence(e)
	if prec < parent || (right && prec == parent) {
		p.write("(")
		p.expr(e)
		p.write(")")
		return
	}
	p.expr(e)
}
