package compiler

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dhamidi/mjc/minijava/ast"
	"github.com/dhamidi/mjc/minijava/diag"
	"github.com/dhamidi/mjc/minijava/parser"
	"github.com/dhamidi/mjc/minijava/resolve"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("mjc.compiler")

const (
	ExitOK           = 0
	ExitInputError   = 1
	ExitCompileError = 4
)

// PhaseError is returned by Compile when a phase reported diagnostics.
type PhaseError struct {
	Phase diag.Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s analysis failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// ExitCode maps the result of loading and compiling a unit to a process exit
// status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var phaseErr *PhaseError
	if errors.As(err, &phaseErr) {
		return ExitCompileError
	}
	return ExitInputError
}

type Option func(*options)

type options struct {
	progress io.Writer
	dump     io.Writer
	trace    commonlog.Logger
}

// WithProgress writes one line per phase transition to w.
func WithProgress(w io.Writer) Option {
	return func(o *options) {
		o.progress = w
	}
}

// WithDump writes the AST display to w after a successful parse.
func WithDump(w io.Writer) Option {
	return func(o *options) {
		o.dump = w
	}
}

// WithTrace enables the parser trace on log.
func WithTrace(log commonlog.Logger) Option {
	return func(o *options) {
		o.trace = log
	}
}

func (o *options) printf(format string, args ...any) {
	if o.progress != nil {
		fmt.Fprintf(o.progress, format, args...)
	}
}

// Compile runs every phase the unit has not reached yet. A phase with errors
// stops the pipeline and is returned as a *PhaseError.
func (u *Unit) Compile(opts ...Option) error {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if u.Stage == StageFailed {
		return u.err
	}
	if err := u.parse(o); err != nil {
		return u.fail(err)
	}
	if err := u.resolve(o); err != nil {
		return u.fail(err)
	}
	return nil
}

func (u *Unit) fail(err error) error {
	u.Stage = StageFailed
	u.err = err
	return err
}

func (u *Unit) parse(o *options) error {
	if u.Stage != StageNone {
		return nil
	}

	o.printf("Syntactic analysis ...\n")
	start := time.Now()

	popts := []parser.Option{
		parser.WithFile(u.Filepath),
		parser.WithReporter(u.Reporter),
	}
	if o.trace != nil {
		popts = append(popts, parser.WithTrace(o.trace))
	}
	pkg, err := parser.Parse(strings.NewReader(u.Content), popts...)
	log.Infof("parsed %s in %s", u.name(), time.Since(start))

	if err != nil || u.Reporter.HasErrors() {
		o.printf("Syntactic analysis complete: invalid program\n")
		cause := u.Reporter.Err()
		if cause == nil {
			cause = err
		}
		return &PhaseError{Phase: diag.PhaseSyntax, Err: cause}
	}

	o.printf("Syntactic analysis complete\n")
	u.AST = pkg
	u.Stage = StageParsed

	if o.dump != nil {
		if err := ast.Fprint(o.dump, pkg); err != nil {
			return fmt.Errorf("dump ast: %w", err)
		}
	}
	return nil
}

func (u *Unit) resolve(o *options) error {
	if u.Stage != StageParsed {
		return nil
	}

	o.printf("Contextual analysis ...\n")
	start := time.Now()
	u.Result = resolve.Resolve(u.AST, resolve.WithReporter(u.Reporter))
	log.Infof("resolved %s in %s", u.name(), time.Since(start))

	if u.Reporter.HasErrors() {
		o.printf("Contextual analysis complete: invalid program\n")
		return &PhaseError{Phase: diag.PhaseIdentification, Err: u.Reporter.Err()}
	}

	o.printf("Contextual analysis complete\n")
	u.Stage = StageResolved
	return nil
}

func (u *Unit) name() string {
	if u.Filepath == "" {
		return "<stdin>"
	}
	return u.Filepath
}
