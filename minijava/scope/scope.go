// Package scope implements the nested name table used during identification.
//
// A [Table] is a stack of [Level]s. The resolver opens one level for the
// package, one per class, one for each method's parameters and one per
// block. Names are entered into the innermost level only and looked up from
// the innermost level outwards, so an inner declaration shadows an outer one
// with the same name while two declarations in one level collide.
package scope

import (
	"errors"
	"fmt"

	"github.com/dhamidi/mjc/minijava/ast"
)

type LevelKind int

const (
	LevelPackage LevelKind = iota
	LevelClass
	LevelParameters
	LevelBlock
)

var levelKindNames = map[LevelKind]string{
	LevelPackage:    "package",
	LevelClass:      "class",
	LevelParameters: "parameters",
	LevelBlock:      "block",
}

func (k LevelKind) String() string {
	if name, ok := levelKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ErrScopeMismatch is returned by Close when the level is not the innermost one.
var ErrScopeMismatch = errors.New("scope: closing a level that is not innermost")

// ErrNoScope is returned by Enter when no level is open.
var ErrNoScope = errors.New("scope: no open level")

// DuplicateError reports a name entered twice into the same level.
type DuplicateError struct {
	Name     string
	Previous ast.Decl
}

func (e *DuplicateError) Error() string {
	if e.Previous != nil && e.Previous.Pos().IsValid() {
		return fmt.Sprintf("duplicate declaration of %s (previous declaration at %s)", e.Name, e.Previous.Pos())
	}
	return fmt.Sprintf("duplicate declaration of %s", e.Name)
}

// UndeclaredError reports a lookup that matched no visible declaration.
type UndeclaredError struct {
	Name string
}

func (e *UndeclaredError) Error() string {
	return fmt.Sprintf("undeclared identifier %s", e.Name)
}

type entry struct {
	name string
	decl ast.Decl
}

// Level is one frame of the scope stack.
type Level struct {
	kind    LevelKind
	depth   int
	entries []entry
	index   map[string]int
}

func (l *Level) Kind() LevelKind { return l.kind }

// Depth is 1 for the outermost level.
func (l *Level) Depth() int { return l.depth }

func (l *Level) Lookup(name string) (ast.Decl, bool) {
	i, ok := l.index[name]
	if !ok {
		return nil, false
	}
	return l.entries[i].decl, true
}

// Entries returns the declarations of this level in the order they were entered.
func (l *Level) Entries() []ast.Decl {
	out := make([]ast.Decl, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.decl
	}
	return out
}

func (l *Level) String() string {
	return fmt.Sprintf("%s@%d", l.kind, l.depth)
}

type Table struct {
	levels []*Level
}

func New() *Table {
	return &Table{}
}

// Open pushes a new innermost level and returns its handle.
func (t *Table) Open(kind LevelKind) *Level {
	l := &Level{
		kind:  kind,
		depth: len(t.levels) + 1,
		index: make(map[string]int),
	}
	t.levels = append(t.levels, l)
	return l
}

// Close pops l, which must be the innermost level.
func (t *Table) Close(l *Level) error {
	if len(t.levels) == 0 || t.levels[len(t.levels)-1] != l {
		return fmt.Errorf("close %s: %w", l, ErrScopeMismatch)
	}
	t.levels = t.levels[:len(t.levels)-1]
	return nil
}

// Depth is the number of open levels.
func (t *Table) Depth() int {
	return len(t.levels)
}

// Current returns the innermost level, or nil when none is open.
func (t *Table) Current() *Level {
	if len(t.levels) == 0 {
		return nil
	}
	return t.levels[len(t.levels)-1]
}

// Enter declares name in the innermost level. Outer levels are not consulted,
// so shadowing is always permitted.
func (t *Table) Enter(name string, decl ast.Decl) error {
	l := t.Current()
	if l == nil {
		return ErrNoScope
	}
	if prev, ok := l.Lookup(name); ok {
		return &DuplicateError{Name: name, Previous: prev}
	}
	l.index[name] = len(l.entries)
	l.entries = append(l.entries, entry{name: name, decl: decl})
	return nil
}

// Lookup finds the innermost visible declaration of name.
func (t *Table) Lookup(name string) (ast.Decl, error) {
	return t.LookupFunc(name, nil)
}

// LookupFunc is Lookup restricted to declarations accepted by match. A nil
// match accepts every declaration. A rejected declaration does not hide an
// accepted one further out.
func (t *Table) LookupFunc(name string, match func(ast.Decl) bool) (ast.Decl, error) {
	for i := len(t.levels) - 1; i >= 0; i-- {
		decl, ok := t.levels[i].Lookup(name)
		if ok && (match == nil || match(decl)) {
			return decl, nil
		}
	}
	return nil, &UndeclaredError{Name: name}
}

// IsClass matches class declarations.
func IsClass(d ast.Decl) bool {
	_, ok := d.(*ast.ClassDecl)
	return ok
}

// Visible returns every visible declaration, innermost first. Shadowed
// declarations are left out.
func (t *Table) Visible() []ast.Decl {
	seen := make(map[string]bool)
	var out []ast.Decl
	for i := len(t.levels) - 1; i >= 0; i-- {
		for _, e := range t.levels[i].entries {
			if seen[e.name] {
				continue
			}
			seen[e.name] = true
			out = append(out, e.decl)
		}
	}
	return out
}
