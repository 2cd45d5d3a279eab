package format

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/mjc/minijava/ast"
	"github.com/dhamidi/mjc/minijava/parser"
	"github.com/dhamidi/mjc/minijava/resolve"
)

func parse(t *testing.T, src string) *ast.Package {
	t.Helper()
	pkg, err := parser.Parse(strings.NewReader(src), parser.WithFile("test.java"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return pkg
}

func TestTreeEncoder(t *testing.T) {
	pkg := parse(t, "class A { int x; void m() { x = y; } }")
	res := resolve.Resolve(pkg)

	var sb strings.Builder
	if err := NewTreeEncoder(&sb, WithBindings(res)).Encode(pkg); err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	want := `Package
  ClassDecl A
    FieldDecl public x
      BaseType int
    MethodDecl public m
      BaseType void
      AssignStmt
        IdRef
          Identifier "x" -> FieldDecl x @test.java:1:15
        RefExpr
          IdRef
            Identifier "y" -> unresolved
`
	if got := sb.String(); got != want {
		t.Errorf("tree =\n%s\nwant\n%s", got, want)
	}
}

func TestTreeEncoderPositions(t *testing.T) {
	pkg := parse(t, "class A {\n  int x;\n}")

	e := NewTreeEncoder(nil, WithPositions())
	e.pkg = pkg
	text, err := e.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText error: %v", err)
	}
	want := "Package @test.java:1:1\n" +
		"  ClassDecl A @test.java:1:7\n" +
		"    FieldDecl public x @test.java:2:7\n" +
		"      BaseType int @test.java:2:3\n"
	if string(text) != want {
		t.Errorf("tree =\n%s\nwant\n%s", text, want)
	}
}

func TestJSONEncoder(t *testing.T) {
	pkg := parse(t, "class A { boolean b; }")

	var sb strings.Builder
	if err := NewJSONEncoder(&sb).Encode(pkg); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	out := sb.String()
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("output does not end with a newline: %q", out)
	}
	if !strings.Contains(out, "\n  \"kind\": \"Package\"") {
		t.Errorf("output is not indented:\n%s", out)
	}

	var root struct {
		Kind     string
		Children []struct {
			Kind     string
			Detail   string
			Children []struct{ Kind, Detail string }
		}
	}
	if err := json.Unmarshal([]byte(out), &root); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	class := root.Children[0]
	if class.Kind != "ClassDecl" || class.Detail != "A" {
		t.Errorf("class = %s %s, want ClassDecl A", class.Kind, class.Detail)
	}
	if len(class.Children) != 1 || class.Children[0].Detail != "public b" {
		t.Errorf("class children = %+v, want FieldDecl public b", class.Children)
	}
}

func TestTokenEncoder(t *testing.T) {
	tokens := parser.Tokenize([]byte("int x = 1;\nx--"), "test.java")

	var sb strings.Builder
	if err := NewTokenEncoder(&sb).Encode(tokens); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	want := "1:1\tint\t\"int\"\n" +
		"1:5\tIdentifier\t\"x\"\n" +
		"1:7\t=\t\"=\"\n" +
		"1:9\tNum\t\"1\"\n" +
		"1:10\t;\t\";\"\n" +
		"2:1\tIdentifier\t\"x\"\n" +
		"2:2\tError\t\"--\"\n" +
		"2:4\tEOT\t\"\"\n"
	if got := sb.String(); got != want {
		t.Errorf("tokens =\n%s\nwant\n%s", got, want)
	}
}

func TestSourceEncoder(t *testing.T) {
	src := `class   A{private static int[] xs; B b;
	void m(int a,B[] bs){if(a<1)return;else if(a==2){a=a-(1-2);}else a=-(-a);
	while(!(a<=0)&&true)a=a/2*3;
	xs[0]=bs.length;this.m(1,(2+3)*4);int[] y=new int[a];B c=new B();{}}}
	class B {}`
	pkg := parse(t, src)

	var sb strings.Builder
	if err := NewSourceEncoder(&sb).Encode(pkg); err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	want := `class A {
    private static int[] xs;
    public B b;

    public void m(int a, B[] bs) {
        if (a < 1)
            return;
        else if (a == 2) {
            a = a - (1 - 2);
        } else
            a = - -a;
        while (!(a <= 0) && true)
            a = a / 2 * 3;
        xs[0] = bs.length;
        this.m(1, (2 + 3) * 4);
        int[] y = new int[a];
        B c = new B();
        {}
    }
}

class B {
}
`
	if got := sb.String(); got != want {
		t.Errorf("source =\n%s\nwant\n%s", got, want)
	}
}

func TestSourceEncoderRoundTrip(t *testing.T) {
	tests := []string{
		"class A { }",
		"class A { int x; void m() { } int y; }",
		"class A { int f(int n) { return n * (n - 1) / (2 - n); } }",
		"class A { boolean f(boolean a, boolean b) { return !(a || b) && (a || !b) == (a != b); } }",
		"class A { void m() { x = 1 - (2 - 3) - 4; y = -(1 + 2); z = - -1; w = !!true; } }",
		"class A { void m() { if (a) if (b) x = 1; else x = 2; while (c) { } } }",
		"class A { void m() { if (a) { } else if (b) { x = 1; } else { x = 2; } } }",
		"class A { A[] as; void m() { as = new A[3]; as[0] = new A(); this.as = as; } }",
		"class A { void m() { int[] xs = new int[n]; xs[xs[0]] = xs[1]; B b = c.d.e(f, g(h)); } }",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			before := parse(t, src)
			e := NewSourceEncoder(nil)
			e.pkg = before
			text, err := e.MarshalText()
			if err != nil {
				t.Fatalf("MarshalText error: %v", err)
			}
			after, err := parser.Parse(strings.NewReader(string(text)))
			if err != nil {
				t.Fatalf("reparsing\n%s\nfailed: %v", text, err)
			}
			if !ast.Equal(before, after) {
				t.Errorf("round trip changed the tree:\n%s\nbecame\n%s", ast.Sprint(before), ast.Sprint(after))
			}
		})
	}
}
