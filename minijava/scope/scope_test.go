package scope

import (
	"errors"
	"testing"

	"github.com/dhamidi/mjc/minijava/ast"
	"github.com/dhamidi/mjc/minijava/source"
	"github.com/nalgeon/be"
)

func varDecl(name string, line int) *ast.VarDecl {
	return &ast.VarDecl{
		Loc:  ast.At(source.Position{Line: line, Column: 1}),
		Type: &ast.BaseType{Kind: ast.TypeInt},
		Name: name,
	}
}

func names(decls []ast.Decl) []string {
	out := make([]string, len(decls))
	for i, d := range decls {
		out[i] = d.DeclName()
	}
	return out
}

func TestOpenClose(t *testing.T) {
	table := New()
	be.Equal(t, table.Depth(), 0)
	be.True(t, table.Current() == nil)

	pkg := table.Open(LevelPackage)
	class := table.Open(LevelClass)
	be.Equal(t, table.Depth(), 2)
	be.Equal(t, pkg.Depth(), 1)
	be.Equal(t, class.Depth(), 2)
	be.Equal(t, class.Kind(), LevelClass)
	be.True(t, table.Current() == class)
	be.Equal(t, class.String(), "class@2")

	be.Err(t, table.Close(class), nil)
	be.True(t, table.Current() == pkg)
	be.Err(t, table.Close(pkg), nil)
	be.Equal(t, table.Depth(), 0)
}

func TestCloseOutOfOrder(t *testing.T) {
	table := New()
	outer := table.Open(LevelClass)
	inner := table.Open(LevelBlock)

	err := table.Close(outer)
	be.Err(t, err, ErrScopeMismatch)
	be.Equal(t, table.Depth(), 2)

	be.Err(t, table.Close(inner), nil)
	be.Err(t, table.Close(outer), nil)
	be.Err(t, table.Close(outer), ErrScopeMismatch)
}

func TestEnterWithoutLevel(t *testing.T) {
	table := New()
	be.Err(t, table.Enter("x", varDecl("x", 1)), ErrNoScope)
}

func TestEnterDuplicate(t *testing.T) {
	table := New()
	table.Open(LevelBlock)
	first := varDecl("x", 1)

	be.Err(t, table.Enter("x", first), nil)
	err := table.Enter("x", varDecl("x", 2))

	var dup *DuplicateError
	be.True(t, errors.As(err, &dup))
	be.Equal(t, dup.Name, "x")
	be.True(t, dup.Previous == ast.Decl(first))
	be.Equal(t, err.Error(), "duplicate declaration of x (previous declaration at 1:1)")

	decl, err := table.Lookup("x")
	be.Err(t, err, nil)
	be.True(t, decl == ast.Decl(first))
}

func TestShadowing(t *testing.T) {
	table := New()
	table.Open(LevelClass)
	field := varDecl("x", 1)
	be.Err(t, table.Enter("x", field), nil)

	block := table.Open(LevelBlock)
	local := varDecl("x", 2)
	be.Err(t, table.Enter("x", local), nil)

	decl, err := table.Lookup("x")
	be.Err(t, err, nil)
	be.True(t, decl == ast.Decl(local))

	be.Err(t, table.Close(block), nil)
	decl, err = table.Lookup("x")
	be.Err(t, err, nil)
	be.True(t, decl == ast.Decl(field))
}

func TestEnterOnlyTouchesInnermostLevel(t *testing.T) {
	table := New()
	table.Open(LevelPackage)
	table.Open(LevelClass)
	table.Open(LevelParameters)
	block := table.Open(LevelBlock)

	be.Err(t, table.Enter("y", varDecl("y", 1)), nil)
	be.Err(t, table.Close(block), nil)

	_, err := table.Lookup("y")
	var undeclared *UndeclaredError
	be.True(t, errors.As(err, &undeclared))
	be.Equal(t, undeclared.Name, "y")
	be.Equal(t, err.Error(), "undeclared identifier y")
}

func TestSiblingLevelsAreIndependent(t *testing.T) {
	table := New()
	table.Open(LevelClass)

	first := table.Open(LevelBlock)
	be.Err(t, table.Enter("i", varDecl("i", 1)), nil)
	be.Err(t, table.Close(first), nil)

	second := table.Open(LevelBlock)
	be.Err(t, table.Enter("i", varDecl("i", 2)), nil)
	be.Err(t, table.Close(second), nil)
}

func TestLookupFunc(t *testing.T) {
	table := New()
	table.Open(LevelPackage)
	class := &ast.ClassDecl{Name: "A"}
	be.Err(t, table.Enter("A", class), nil)

	table.Open(LevelClass)
	field := varDecl("A", 2)
	be.Err(t, table.Enter("A", field), nil)

	decl, err := table.Lookup("A")
	be.Err(t, err, nil)
	be.True(t, decl == ast.Decl(field))

	decl, err = table.LookupFunc("A", IsClass)
	be.Err(t, err, nil)
	be.True(t, decl == ast.Decl(class))

	_, err = table.LookupFunc("B", IsClass)
	be.Err(t, err, "undeclared identifier B")
}

func TestEntriesKeepInsertionOrder(t *testing.T) {
	table := New()
	level := table.Open(LevelBlock)
	for i, name := range []string{"z", "a", "m", "b"} {
		be.Err(t, table.Enter(name, varDecl(name, i+1)), nil)
	}

	be.Equal(t, names(level.Entries()), []string{"z", "a", "m", "b"})

	decl, ok := level.Lookup("m")
	be.True(t, ok)
	be.Equal(t, decl.DeclName(), "m")
	_, ok = level.Lookup("q")
	be.Equal(t, ok, false)
}

func TestVisible(t *testing.T) {
	table := New()
	table.Open(LevelClass)
	be.Err(t, table.Enter("a", varDecl("a", 1)), nil)
	be.Err(t, table.Enter("b", varDecl("b", 2)), nil)

	table.Open(LevelBlock)
	be.Err(t, table.Enter("c", varDecl("c", 3)), nil)
	inner := varDecl("a", 4)
	be.Err(t, table.Enter("a", inner), nil)

	visible := table.Visible()
	be.Equal(t, names(visible), []string{"c", "a", "b"})
	be.True(t, visible[1] == ast.Decl(inner))
}

func TestLevelKindString(t *testing.T) {
	tests := []struct {
		kind LevelKind
		want string
	}{
		{LevelPackage, "package"},
		{LevelClass, "class"},
		{LevelParameters, "parameters"},
		{LevelBlock, "block"},
		{LevelKind(99), "Unknown"},
	}
	for _, tt := range tests {
		be.Equal(t, tt.kind.String(), tt.want)
	}
}
