package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dhamidi/mjc/minijava/ast"
	"github.com/dhamidi/mjc/minijava/diag"
	"github.com/tliron/commonlog"
)

// recordingLogger keeps every debug line. Other methods are not used by the
// parser.
type recordingLogger struct {
	commonlog.Logger
	lines []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// sexpr renders an expression in prefix form, e.g. (+ 1 (* 2 3)).
func sexpr(e ast.Node) string {
	switch e := e.(type) {
	case *ast.BinaryExpr:
		return "(" + e.Op.Spelling + " " + sexpr(e.Left) + " " + sexpr(e.Right) + ")"
	case *ast.UnaryExpr:
		return "(" + e.Op.Spelling + " " + sexpr(e.Operand) + ")"
	case *ast.LiteralExpr:
		return e.Lit.Text()
	case *ast.RefExpr:
		return sexpr(e.Ref)
	case *ast.CallExpr:
		parts := []string{"call", sexpr(e.FuncRef)}
		for _, a := range e.Args {
			parts = append(parts, sexpr(a))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case *ast.NewObjectExpr:
		return "(new " + e.ClassType.ClassName.Spelling + ")"
	case *ast.NewArrayExpr:
		return "(new " + ast.TypeString(e.ElementType) + "[] " + sexpr(e.Size) + ")"
	case *ast.IdRef:
		return e.ID.Spelling
	case *ast.ThisRef:
		return "this"
	case *ast.QualifiedRef:
		return "(. " + sexpr(e.Base) + " " + e.Member.Spelling + ")"
	case *ast.IndexedRef:
		return "([] " + sexpr(e.Base) + " " + sexpr(e.Index) + ")"
	}
	return "?"
}

func mustParse(t *testing.T, input string) *ast.Package {
	t.Helper()
	r := diag.NewReporter()
	pkg, err := Parse(strings.NewReader(input), WithFile("test.java"), WithReporter(r))
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", input, err)
	}
	if r.HasErrors() {
		t.Fatalf("Parse(%q) diagnostics: %v", input, r.Diagnostics())
	}
	return pkg
}

// body parses stmts as the body of a method and returns its statements.
func body(t *testing.T, stmts string) []ast.Statement {
	t.Helper()
	pkg := mustParse(t, "class A { void m() { "+stmts+" } }")
	return pkg.Classes[0].Methods[0].Body
}

func TestParseClassWithFieldAndMethod(t *testing.T) {
	pkg := mustParse(t, "class A { int x; void m(){ return; } }")

	if len(pkg.Classes) != 1 {
		t.Fatalf("len(Classes) = %d, want 1", len(pkg.Classes))
	}
	class := pkg.Classes[0]
	if class.Name != "A" {
		t.Errorf("Name = %q, want %q", class.Name, "A")
	}
	if len(class.Fields) != 1 {
		t.Fatalf("len(Fields) = %d, want 1", len(class.Fields))
	}
	field := class.Fields[0]
	if field.Name != "x" || ast.TypeString(field.Type) != "int" {
		t.Errorf("field = %s %s, want int x", ast.TypeString(field.Type), field.Name)
	}
	if field.IsPrivate || field.IsStatic {
		t.Errorf("field modifiers = private:%v static:%v, want none", field.IsPrivate, field.IsStatic)
	}

	if len(class.Methods) != 1 {
		t.Fatalf("len(Methods) = %d, want 1", len(class.Methods))
	}
	method := class.Methods[0]
	if method.Name != "m" || ast.TypeString(method.Type) != "void" {
		t.Errorf("method = %s %s, want void m", ast.TypeString(method.Type), method.Name)
	}
	if len(method.Parameters) != 0 {
		t.Errorf("len(Parameters) = %d, want 0", len(method.Parameters))
	}
	if len(method.Body) != 1 {
		t.Fatalf("len(Body) = %d, want 1", len(method.Body))
	}
	ret, ok := method.Body[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("Body[0] = %T, want *ast.ReturnStmt", method.Body[0])
	}
	if ret.Expr != nil {
		t.Errorf("return expression = %v, want nil", ret.Expr)
	}
}

func TestParseEmptyProgram(t *testing.T) {
	for _, input := range []string{"", "  // nothing\n", "/* */"} {
		pkg := mustParse(t, input)
		if len(pkg.Classes) != 0 {
			t.Errorf("Parse(%q): len(Classes) = %d, want 0", input, len(pkg.Classes))
		}
	}
}

func TestParseMembers(t *testing.T) {
	tests := []struct {
		input   string
		private bool
		static  bool
		typ     string
		name    string
		method  bool
		params  []string
	}{
		{"int x;", false, false, "int", "x", false, nil},
		{"private int x;", true, false, "int", "x", false, nil},
		{"public static boolean b;", false, true, "boolean", "b", false, nil},
		{"static int[] xs;", false, true, "int[]", "xs", false, nil},
		{"B other;", false, false, "B", "other", false, nil},
		{"B[] others;", false, false, "B[]", "others", false, nil},
		{"void m() {}", false, false, "void", "m", true, nil},
		{"private static void main(int[] args) {}", true, true, "void", "main", true, []string{"int[] args"}},
		{"int f(int a, boolean b, B c, B[] d) { return a; }", false, false, "int", "f", true,
			[]string{"int a", "boolean b", "B c", "B[] d"}},
		{"public B self() { return this; }", false, false, "B", "self", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			class := mustParse(t, "class A { "+tt.input+" }").Classes[0]

			var m ast.MemberDecl
			if tt.method {
				if len(class.Methods) != 1 || len(class.Fields) != 0 {
					t.Fatalf("got %d fields, %d methods, want one method", len(class.Fields), len(class.Methods))
				}
				m = class.Methods[0]
				var params []string
				for _, p := range class.Methods[0].Parameters {
					params = append(params, ast.TypeString(p.Type)+" "+p.Name)
				}
				if strings.Join(params, ", ") != strings.Join(tt.params, ", ") {
					t.Errorf("params = %v, want %v", params, tt.params)
				}
			} else {
				if len(class.Fields) != 1 || len(class.Methods) != 0 {
					t.Fatalf("got %d fields, %d methods, want one field", len(class.Fields), len(class.Methods))
				}
				m = class.Fields[0]
			}

			if m.Private() != tt.private {
				t.Errorf("Private() = %v, want %v", m.Private(), tt.private)
			}
			if m.Static() != tt.static {
				t.Errorf("Static() = %v, want %v", m.Static(), tt.static)
			}
			if got := ast.TypeString(m.DeclType()); got != tt.typ {
				t.Errorf("type = %q, want %q", got, tt.typ)
			}
			if m.DeclName() != tt.name {
				t.Errorf("name = %q, want %q", m.DeclName(), tt.name)
			}
		})
	}
}

func TestParseMembersKeepOrder(t *testing.T) {
	class := mustParse(t, "class A { int a; void m() {} int b; void n() {} }").Classes[0]

	if len(class.Fields) != 2 || class.Fields[0].Name != "a" || class.Fields[1].Name != "b" {
		t.Errorf("fields = %v, want [a b]", class.Fields)
	}
	if len(class.Methods) != 2 || class.Methods[0].Name != "m" || class.Methods[1].Name != "n" {
		t.Errorf("methods = %v, want [m n]", class.Methods)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"8 / 4 / 2", "(/ (/ 8 4) 2)"},
		{"(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"1 - (2 - 3)", "(- 1 (- 2 3))"},
		{"a || b && c", "(|| a (&& b c))"},
		{"a && b || c", "(|| (&& a b) c)"},
		{"a == b != c", "(!= (== a b) c)"},
		{"a < b == c > d", "(== (< a b) (> c d))"},
		{"a <= b + 1", "(<= a (+ b 1))"},
		{"1 + 2 >= 3 && !x", "(&& (>= (+ 1 2) 3) (! x))"},
		{"-x * y", "(* (- x) y)"},
		{"- - x", "(- (- x))"},
		{"!!b", "(! (! b))"},
		{"-(1 + 2)", "(- (+ 1 2))"},
		{"x - -1", "(- x (- 1))"},
		{"true || false", "(|| true false)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := ParseExpression(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseExpression(%q) error: %v", tt.input, err)
			}
			if got := sexpr(expr); got != tt.want {
				t.Errorf("ParseExpression(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePrimaryExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"x", "x"},
		{"this", "this"},
		{"a[i + 1]", "([] a (+ i 1))"},
		{"a.b.c", "(. (. a b) c)"},
		{"this.x", "(. this x)"},
		{"f()", "(call f)"},
		{"this.f(1, x)", "(call (. this f) 1 x)"},
		{"a.b.f(g(1))", "(call (. (. a b) f) (call g 1))"},
		{"new A()", "(new A)"},
		{"new int[10]", "(new int[] 10)"},
		{"new A[n * 2]", "(new A[] (* n 2))"},
		{"((x))", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := ParseExpression(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseExpression(%q) error: %v", tt.input, err)
			}
			if got := sexpr(expr); got != tt.want {
				t.Errorf("ParseExpression(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"{ }", "BlockStmt"},
		{"int x = 1;", "VarDeclStmt"},
		{"int[] xs = new int[3];", "VarDeclStmt"},
		{"boolean b = true;", "VarDeclStmt"},
		{"B b = new B();", "VarDeclStmt"},
		{"B[] bs = new B[2];", "VarDeclStmt"},
		{"x = 1;", "AssignStmt"},
		{"a.b = 1;", "AssignStmt"},
		{"this.x = 1;", "AssignStmt"},
		{"a[0] = 1;", "IndexedAssignStmt"},
		{"a[i + 1] = a[i];", "IndexedAssignStmt"},
		{"f();", "CallStmt"},
		{"a.b.f(1, 2);", "CallStmt"},
		{"this.f(x);", "CallStmt"},
		{"return;", "ReturnStmt"},
		{"return x + 1;", "ReturnStmt"},
		{"if (b) x = 1;", "IfStmt"},
		{"if (b) { } else { }", "IfStmt"},
		{"while (i < 10) i = i + 1;", "WhileStmt"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmts := body(t, tt.input)
			if len(stmts) != 1 {
				t.Fatalf("len(stmts) = %d, want 1", len(stmts))
			}
			if kind, _ := ast.Label(stmts[0]); kind != tt.want {
				t.Errorf("kind = %s, want %s", kind, tt.want)
			}
		})
	}
}

func TestParseIdentifierStatementForms(t *testing.T) {
	t.Run("class-typed local", func(t *testing.T) {
		decl, ok := body(t, "B b = new B();")[0].(*ast.VarDeclStmt)
		if !ok {
			t.Fatal("want *ast.VarDeclStmt")
		}
		if decl.Decl.Name != "b" || ast.TypeString(decl.Decl.Type) != "B" {
			t.Errorf("decl = %s %s, want B b", ast.TypeString(decl.Decl.Type), decl.Decl.Name)
		}
	})

	t.Run("array-typed local", func(t *testing.T) {
		decl, ok := body(t, "B[] bs = x;")[0].(*ast.VarDeclStmt)
		if !ok {
			t.Fatal("want *ast.VarDeclStmt")
		}
		if ast.TypeString(decl.Decl.Type) != "B[]" {
			t.Errorf("type = %s, want B[]", ast.TypeString(decl.Decl.Type))
		}
	})

	t.Run("indexed assignment", func(t *testing.T) {
		assign, ok := body(t, "bs[2] = x;")[0].(*ast.IndexedAssignStmt)
		if !ok {
			t.Fatal("want *ast.IndexedAssignStmt")
		}
		if got := sexpr(assign.Target); got != "([] bs 2)" {
			t.Errorf("target = %s, want ([] bs 2)", got)
		}
	})

	t.Run("qualified assignment", func(t *testing.T) {
		assign, ok := body(t, "a.b.c = 3;")[0].(*ast.AssignStmt)
		if !ok {
			t.Fatal("want *ast.AssignStmt")
		}
		if got := sexpr(assign.Target); got != "(. (. a b) c)" {
			t.Errorf("target = %s, want (. (. a b) c)", got)
		}
	})
}

func TestParseDanglingElse(t *testing.T) {
	stmts := body(t, "if (a) if (b) x = 1; else x = 2;")
	outer := stmts[0].(*ast.IfStmt)
	if outer.Else != nil {
		t.Errorf("outer if has an else branch, want the inner if to take it")
	}
	inner, ok := outer.Then.(*ast.IfStmt)
	if !ok {
		t.Fatalf("Then = %T, want *ast.IfStmt", outer.Then)
	}
	if inner.Else == nil {
		t.Errorf("inner if has no else branch")
	}
}

func TestParseDeclarationPositions(t *testing.T) {
	pkg := mustParse(t, "class A {\n  int x;\n  void m(int p) { int y = p; }\n}")
	class := pkg.Classes[0]

	tests := []struct {
		name   string
		node   ast.Node
		line   int
		column int
	}{
		{"class", class, 1, 7},
		{"field", class.Fields[0], 2, 7},
		{"method", class.Methods[0], 3, 8},
		{"parameter", class.Methods[0].Parameters[0], 3, 14},
		{"local", class.Methods[0].Body[0].(*ast.VarDeclStmt).Decl, 3, 23},
	}
	for _, tt := range tests {
		pos := tt.node.Pos()
		if pos.Line != tt.line || pos.Column != tt.column {
			t.Errorf("%s at %d:%d, want %d:%d", tt.name, pos.Line, pos.Column, tt.line, tt.column)
		}
		if pos.File != "test.java" {
			t.Errorf("%s File = %q, want %q", tt.name, pos.File, "test.java")
		}
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column int
		msg    string
	}{
		{"missing closing brace", "class A { int x;", 1, 17, "expected '}' but found end of input"},
		{"missing class name", "class { }", 1, 7, "expected identifier but found '{'"},
		{"stray token after classes", "class A { } x", 1, 13, "expected end of input but found identifier \"x\""},
		{"missing semicolon", "class A { int x }", 1, 17, "expected ';' or '(' after member x but found '}'"},
		{"void field", "class A { void x; }", 1, 17, "expected '(' but found ';'"},
		{"local without initializer", "class A { void m() { int x; } }", 1, 27, "expected '=' but found ';'"},
		{"boolean array", "class A { boolean[] b; }", 1, 18, "expected identifier but found '['"},
		{"unary plus", "class A { void m() { x = +1; } }", 1, 26, "expected an expression but found '+'"},
		{"bare expression statement", "class A { void m() { 1; } }", 1, 22, "expected '}' but found number 1"},
		{"reference without action", "class A { void m() { a.b; } }", 1, 25, "expected '=' or '(' but found ';'"},
		{"bad index statement", "class A { void m() { a[ = 1; } }", 1, 25, "expected ']' or an index expression but found '='"},
		{"new without parens", "class A { void m() { x = new A; } }", 1, 31, "expected '(' or '[' after new A but found ';'"},
		{"new boolean", "class A { void m() { x = new boolean[1]; } }", 1, 30, "expected a class name or 'int' after new but found 'boolean'"},
		{"indexing a call", "class A { void m() { x = f()[0]; } }", 1, 29, "expected ';' but found '['"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := diag.NewReporter()
			pkg, err := Parse(strings.NewReader(tt.input), WithReporter(r))
			if pkg != nil {
				t.Errorf("Parse returned a package, want nil")
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("err = %v, want *SyntaxError", err)
			}
			if se.Pos.Line != tt.line || se.Pos.Column != tt.column {
				t.Errorf("error at %d:%d, want %d:%d", se.Pos.Line, se.Pos.Column, tt.line, tt.column)
			}
			if se.Msg != tt.msg {
				t.Errorf("Msg = %q, want %q", se.Msg, tt.msg)
			}
			if r.Count() != 1 || r.CountKind(diag.SyntaxError) != 1 {
				t.Errorf("diagnostics = %v, want exactly one SyntaxError", r.Diagnostics())
			}
		})
	}
}

func TestParseScanErrorIsReportedOnce(t *testing.T) {
	tests := []string{
		"class A { /* never closed",
		"class A { void m() { x = a & b; } }",
		"class A { void m() { x--; } }",
		"class A # { }",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			r := diag.NewReporter()
			pkg, err := Parse(strings.NewReader(input), WithReporter(r))
			if pkg != nil {
				t.Errorf("Parse returned a package, want nil")
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("err = %v, want *SyntaxError", err)
			}
			if se.Got.Kind != TokenError {
				t.Errorf("Got.Kind = %v, want %v", se.Got.Kind, TokenError)
			}
			if r.Count() != 1 || r.CountKind(diag.ScanError) != 1 {
				t.Errorf("diagnostics = %v, want exactly one ScanError", r.Diagnostics())
			}
		})
	}
}

func TestParseExpressionTrailingInput(t *testing.T) {
	_, err := ParseExpression(strings.NewReader("1 + 2 3"))
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SyntaxError", err)
	}
	if len(se.Expected) != 1 || se.Expected[0] != TokenEOT {
		t.Errorf("Expected = %v, want [%v]", se.Expected, TokenEOT)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	input := `class Fib {
		private int[] memo;
		public static void main(int[] args) {
			Fib f = new Fib();
			f.fib(29);
		}
		void init() {
			memo = new int[30];
			int i = 0;
			while (i < 30) { memo[i] = 0 - 1; i = i + 1; }
		}
		int fib(int n) {
			if (n < 2) return n;
			if (memo[n] != -1) return memo[n]; else { }
			memo[n] = this.fib(n - 1) + fib(n - 2);
			return memo[n];
		}
	}`

	first := mustParse(t, input)
	second := mustParse(t, input)
	if !ast.Equal(first, second) {
		t.Errorf("parsing the same input twice gave different trees:\n%s\n%s", ast.Sprint(first), ast.Sprint(second))
	}
}

func TestParseTrace(t *testing.T) {
	log := &recordingLogger{}
	_, err := Parse(strings.NewReader("class A { }"), WithTrace(log))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := []string{
		`Program > ClassDeclaration: accepting class "class"`,
		`Program > ClassDeclaration: accepting Identifier "A"`,
		`Program > ClassDeclaration: accepting { "{"`,
		`Program > ClassDeclaration: accepting } "}"`,
		`Program: accepting EOT ""`,
	}
	if strings.Join(log.lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("trace =\n%s\nwant\n%s", strings.Join(log.lines, "\n"), strings.Join(want, "\n"))
	}
}
