// Package source holds the position types shared by tokens, AST nodes and
// diagnostics.
package source

import "strconv"

// Position is a location in a source file. Line and Column are 1-based;
// Column counts bytes, not runes. The zero Position is invalid.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	s := strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
	if p.File != "" {
		s = p.File + ":" + s
	}
	return s
}

// Before reports whether p is strictly before q in the same file.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

type Span struct {
	Start Position
	End   Position
}

// Contains reports whether line/column falls inside the span. End is exclusive.
func (s Span) Contains(line, column int) bool {
	at := Position{Line: line, Column: column}
	return !at.Before(s.Start) && at.Before(s.End)
}

func (s Span) String() string {
	return s.Start.String() + "-" + strconv.Itoa(s.End.Line) + ":" + strconv.Itoa(s.End.Column)
}
