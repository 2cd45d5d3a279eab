package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/mjc/minijava/parser"
)

// TokenEncoder lists tokens one per line as line:column, kind and the
// quoted spelling, separated by tabs.
type TokenEncoder struct {
	w      io.Writer
	tokens []parser.Token
}

func NewTokenEncoder(w io.Writer) *TokenEncoder {
	return &TokenEncoder{w: w}
}

func (e *TokenEncoder) Encode(tokens []parser.Token) error {
	e.tokens = tokens
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TokenEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, tok := range e.tokens {
		pos := tok.Pos()
		fmt.Fprintf(&sb, "%d:%d\t%s\t%q\n", pos.Line, pos.Column, tok.Kind, tok.Spelling)
	}
	return []byte(sb.String()), nil
}
