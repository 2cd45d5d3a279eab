// Package compiler drives a miniJava source file through the front end:
// syntactic analysis followed by identification.
package compiler

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dhamidi/mjc/minijava/ast"
	"github.com/dhamidi/mjc/minijava/diag"
	"github.com/dhamidi/mjc/minijava/resolve"
)

type Stage int

const (
	StageNone Stage = iota
	StageFailed
	StageParsed
	StageResolved
)

var stageNames = map[Stage]string{
	StageNone:     "none",
	StageFailed:   "failed",
	StageParsed:   "parsed",
	StageResolved: "resolved",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "Unknown"
}

// ErrInput marks failures to obtain the source text.
var ErrInput = errors.New("cannot read input")

type Unit struct {
	// file path as supplied by the user, "" for stdin
	Filepath string
	// absolute path to the file, "" when not read from disk
	AbsolutePath string
	Content      string
	// furthest stage this unit has reached
	Stage Stage
	// set once the unit is parsed
	AST *ast.Package
	// set once the unit is resolved
	Result *resolve.Result
	// every diagnostic of every phase, in report order
	Reporter *diag.Reporter

	err error
}

func LoadUnit(path string) (*Unit, error) {
	absolutePath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInput, err)
	}

	file, err := os.Open(absolutePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInput, err)
	}
	defer file.Close()

	u, err := ReadUnit(path, file)
	if err != nil {
		return nil, err
	}
	u.AbsolutePath = absolutePath
	return u, nil
}

// ReadUnit reads the whole of r as the content of a unit named name.
func ReadUnit(name string, r io.Reader) (*Unit, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInput, name, err)
	}
	return NewUnit(name, string(content)), nil
}

func NewUnit(name, content string) *Unit {
	return &Unit{
		Filepath: name,
		Content:  content,
		Stage:    StageNone,
		Reporter: diag.NewReporter(),
	}
}

func (u *Unit) HasErrors() bool {
	return u.Reporter.HasErrors()
}

func (u *Unit) Diagnostics() []*diag.Diagnostic {
	return u.Reporter.Diagnostics()
}

// DisplayErrors writes every diagnostic with its source line to w.
func (u *Unit) DisplayErrors(w io.Writer) {
	diag.Display(w, u.Content, u.Reporter.Diagnostics())
}
