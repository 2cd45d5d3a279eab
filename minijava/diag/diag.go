// Package diag defines the compiler's error taxonomy and the Reporter every
// phase funnels its diagnostics into.
package diag

import (
	"errors"
	"fmt"

	"github.com/dhamidi/mjc/minijava/source"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("mjc.diag")

type Kind int

const (
	ScanError Kind = iota
	SyntaxError
	DuplicateDeclaration
	UndeclaredIdentifier
	UnsupportedType
)

var kindNames = map[Kind]string{
	ScanError:            "ScanError",
	SyntaxError:          "SyntaxError",
	DuplicateDeclaration: "DuplicateDeclaration",
	UndeclaredIdentifier: "UndeclaredIdentifier",
	UnsupportedType:      "UnsupportedType",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Phase is the compiler phase a diagnostic kind belongs to.
type Phase int

const (
	PhaseSyntax Phase = iota
	PhaseIdentification
)

func (p Phase) String() string {
	switch p {
	case PhaseSyntax:
		return "syntax"
	case PhaseIdentification:
		return "identification"
	default:
		return "unknown"
	}
}

func (k Kind) Phase() Phase {
	switch k {
	case ScanError, SyntaxError:
		return PhaseSyntax
	default:
		return PhaseIdentification
	}
}

// Diagnostic is a single reported problem. It implements error.
type Diagnostic struct {
	Kind Kind
	Pos  source.Position
	Msg  string
}

func (d *Diagnostic) Error() string {
	if !d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", d.Kind, d.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Kind, d.Msg)
}

// Reporter collects diagnostics in the order they were reported.
// A Reporter is not safe for concurrent use.
type Reporter struct {
	diags []*Diagnostic
}

func NewReporter() *Reporter {
	return &Reporter{}
}

func (r *Reporter) Report(kind Kind, pos source.Position, format string, args ...any) *Diagnostic {
	d := &Diagnostic{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
	r.diags = append(r.diags, d)
	log.Debugf("reported %s", d)
	return d
}

func (r *Reporter) Diagnostics() []*Diagnostic {
	return r.diags
}

func (r *Reporter) HasErrors() bool {
	return len(r.diags) > 0
}

func (r *Reporter) Count() int {
	return len(r.diags)
}

func (r *Reporter) CountKind(kind Kind) int {
	n := 0
	for _, d := range r.diags {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

func (r *Reporter) CountPhase(phase Phase) int {
	n := 0
	for _, d := range r.diags {
		if d.Kind.Phase() == phase {
			n++
		}
	}
	return n
}

// Err joins every diagnostic into one error, or returns nil if none were
// reported.
func (r *Reporter) Err() error {
	if len(r.diags) == 0 {
		return nil
	}
	errs := make([]error, len(r.diags))
	for i, d := range r.diags {
		errs[i] = d
	}
	return errors.Join(errs...)
}
