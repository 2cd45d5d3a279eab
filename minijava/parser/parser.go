package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/mjc/minijava/ast"
	"github.com/dhamidi/mjc/minijava/diag"
	"github.com/dhamidi/mjc/minijava/source"
	"github.com/tliron/commonlog"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithReporter makes the lexer and the parser report into r.
func WithReporter(r *diag.Reporter) Option {
	return func(p *Parser) {
		p.reporter = r
	}
}

// WithTrace logs every accepted token, together with the stack of active
// productions, at debug level.
func WithTrace(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.trace = log
	}
}

// SyntaxError is the first token mismatch of a parse. Parsing stops there.
type SyntaxError struct {
	Pos      source.Position
	Msg      string
	Got      Token
	Expected []TokenKind
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %s", e.Pos, e.Msg)
}

type Parser struct {
	file        string
	reporter    *diag.Reporter
	trace       commonlog.Logger
	lexer       *Lexer
	buf         []Token
	productions []string
}

func newParser(input []byte, opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.reporter == nil {
		p.reporter = diag.NewReporter()
	}
	p.lexer = NewLexer(input, p.file, WithLexerReporter(p.reporter))
	return p
}

// Parse reads a whole miniJava program from r. On the first syntax error it
// reports one diagnostic and returns a nil package together with the error.
func Parse(r io.Reader, opts ...Option) (*ast.Package, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	p := newParser(input, opts...)
	pkg, err := p.parseProgram()
	if err != nil {
		return nil, p.fail(err)
	}
	return pkg, nil
}

// ParseExpression parses a single expression that must span all of r.
func ParseExpression(r io.Reader, opts ...Option) (ast.Expression, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	p := newParser(input, opts...)
	expr, err := p.parseExpression()
	if err == nil {
		_, err = p.expect(TokenEOT)
	}
	if err != nil {
		return nil, p.fail(err)
	}
	return expr, nil
}

// fail records err with the reporter. A token the lexer already rejected has
// its scan error on record, so no second diagnostic is added for it.
func (p *Parser) fail(err error) error {
	se, ok := err.(*SyntaxError)
	if !ok {
		return err
	}
	if se.Got.Kind != TokenError {
		p.reporter.Report(diag.SyntaxError, se.Pos, "%s", se.Msg)
	}
	return se
}

func (p *Parser) fill(n int) {
	for len(p.buf) <= n {
		p.buf = append(p.buf, p.lexer.NextToken())
	}
}

func (p *Parser) peek() Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) Token {
	p.fill(n)
	return p.buf[n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if tok.Kind != TokenEOT {
		p.buf = p.buf[1:]
	}
	if p.trace != nil {
		p.trace.Debugf("%s: accepting %s %q", strings.Join(p.productions, " > "), tok.Kind, tok.Spelling)
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return Token{}, p.errorf([]TokenKind{kind}, "expected %s but found %s", quoteKind(kind), describe(p.peek()))
}

func (p *Parser) errorf(expected []TokenKind, format string, args ...any) error {
	tok := p.peek()
	return &SyntaxError{
		Pos:      tok.Pos(),
		Msg:      fmt.Sprintf(format, args...),
		Got:      tok,
		Expected: expected,
	}
}

// enter pushes a production name for tracing; call the result to pop it.
func (p *Parser) enter(production string) func() {
	if p.trace == nil {
		return func() {}
	}
	p.productions = append(p.productions, production)
	return func() {
		p.productions = p.productions[:len(p.productions)-1]
	}
}

func quoteKind(kind TokenKind) string {
	switch kind {
	case TokenEOT:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenNum:
		return "number"
	}
	return "'" + kind.String() + "'"
}

func describe(tok Token) string {
	switch tok.Kind {
	case TokenEOT:
		return "end of input"
	case TokenIdent:
		return fmt.Sprintf("identifier %q", tok.Spelling)
	case TokenNum:
		return fmt.Sprintf("number %s", tok.Spelling)
	case TokenError:
		return fmt.Sprintf("invalid token %q", tok.Spelling)
	}
	return "'" + tok.Spelling + "'"
}

func identifier(tok Token) *ast.Identifier {
	return &ast.Identifier{Loc: ast.At(tok.Pos()), Spelling: tok.Spelling}
}

func operator(tok Token) *ast.Operator {
	return &ast.Operator{Loc: ast.At(tok.Pos()), Spelling: tok.Spelling}
}
