// Package codebase keeps every miniJava file under a root directory compiled
// and answers position queries against the results. It backs the language
// server and the watch command.
package codebase

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/mjc/minijava/ast"
	"github.com/dhamidi/mjc/minijava/compiler"
	"github.com/dhamidi/mjc/minijava/diag"
	"github.com/dhamidi/mjc/minijava/source"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("mjc.codebase")

// Extensions lists the file extensions treated as miniJava source.
var Extensions = []string{".java", ".mjava"}

func IsSource(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
}

type FileInfo struct {
	Path    string
	Content []byte
	Unit    *compiler.Unit
	// result of compiling Unit, nil when the file is valid
	Err error
}

func New(rootDir string) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// ScanAll compiles every source file under the root, skipping hidden
// directories.
func (c *Codebase) ScanAll() error {
	return filepath.Walk(c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != c.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSource(path) {
			if _, err := c.ScanFile(path); err != nil {
				log.Warningf("scan %s: %s", path, err)
			}
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) (*FileInfo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return c.UpdateFile(path, content), nil
}

// UpdateFile recompiles path from content and replaces what was known about it.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	unit := compiler.NewUnit(path, string(content))
	err := unit.Compile()

	f := &FileInfo{
		Path:    path,
		Content: content,
		Unit:    unit,
		Err:     err,
	}
	log.Debugf("compiled %s: %d diagnostics", path, unit.Reporter.Count())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = f
	return f
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths returns the known files in lexical order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for p := range c.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (c *Codebase) Diagnostics(path string) []*diag.Diagnostic {
	f := c.GetFile(path)
	if f == nil {
		return nil
	}
	return f.Unit.Diagnostics()
}

// declAt finds the declaration denoted by the name under line/column. Only
// files that got through identification, with or without errors, can answer.
func (c *Codebase) declAt(path string, line, column int) (ast.Node, ast.Decl) {
	f := c.GetFile(path)
	if f == nil || f.Unit.Result == nil {
		return nil, nil
	}
	return f.Unit.Result.DeclAt(line, column)
}

// DefinitionAt returns where the name under line/column is declared.
func (c *Codebase) DefinitionAt(path string, line, column int) (source.Position, ast.Decl, bool) {
	_, decl := c.declAt(path, line, column)
	if decl == nil {
		return source.Position{}, nil, false
	}
	return decl.Pos(), decl, true
}

// HoverAt describes the declaration of the name under line/column.
func (c *Codebase) HoverAt(path string, line, column int) (string, bool) {
	_, decl := c.declAt(path, line, column)
	if decl == nil {
		return "", false
	}
	return Describe(decl), true
}

// ReferencesAt returns the positions of every use of the declaration denoted
// by the name under line/column.
func (c *Codebase) ReferencesAt(path string, line, column int) []source.Position {
	_, decl := c.declAt(path, line, column)
	if decl == nil {
		return nil
	}
	f := c.GetFile(path)
	var out []source.Position
	for _, n := range f.Unit.Result.ReferencesTo(decl) {
		out = append(out, n.Pos())
	}
	return out
}

// Describe renders a declaration the way it reads in source.
func Describe(decl ast.Decl) string {
	switch d := decl.(type) {
	case *ast.ClassDecl:
		return "class " + d.Name
	case *ast.FieldDecl:
		return memberPrefix(&d.Member) + ast.TypeString(d.Type) + " " + d.Name
	case *ast.MethodDecl:
		params := make([]string, len(d.Parameters))
		for i, p := range d.Parameters {
			params[i] = ast.TypeString(p.Type) + " " + p.Name
		}
		return memberPrefix(&d.Member) + ast.TypeString(d.Type) + " " + d.Name + "(" + strings.Join(params, ", ") + ")"
	case *ast.ParameterDecl:
		return "parameter " + ast.TypeString(d.Type) + " " + d.Name
	case *ast.VarDecl:
		return "local " + ast.TypeString(d.Type) + " " + d.Name
	}
	return decl.DeclName()
}

func memberPrefix(m *ast.Member) string {
	s := "public "
	if m.IsPrivate {
		s = "private "
	}
	if m.IsStatic {
		s += "static "
	}
	return s
}
