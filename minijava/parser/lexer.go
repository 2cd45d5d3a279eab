package parser

import (
	"unicode/utf8"

	"github.com/dhamidi/mjc/minijava/diag"
	"github.com/dhamidi/mjc/minijava/source"
)

type LexerOption func(*Lexer)

// WithCommentTokens makes the lexer return comments as TokenComment and
// TokenLineComment instead of skipping them.
func WithCommentTokens() LexerOption {
	return func(l *Lexer) {
		l.emitComments = true
	}
}

// WithLexerReporter routes scan errors to r.
func WithLexerReporter(r *diag.Reporter) LexerOption {
	return func(l *Lexer) {
		l.reporter = r
	}
}

// Lexer is a pull-based scanner over a byte slice. Each call to NextToken
// scans exactly one token.
type Lexer struct {
	input        []byte
	file         string
	pos          int
	line         int
	column       int
	emitComments bool
	reporter     *diag.Reporter
	// set after an unterminated block comment; every later token is EOT
	exhausted bool
}

func NewLexer(input []byte, file string, opts ...LexerOption) *Lexer {
	l := &Lexer{
		input:  input,
		file:   file,
		line:   1,
		column: 1,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.reporter == nil {
		l.reporter = diag.NewReporter()
	}
	return l
}

// Tokenize scans input to completion. The result always ends with TokenEOT.
func Tokenize(input []byte, file string, opts ...LexerOption) []Token {
	l := NewLexer(input, file, opts...)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOT {
			return tokens
		}
	}
}

func (l *Lexer) Reporter() *diag.Reporter {
	return l.reporter
}

func (l *Lexer) Position() source.Position {
	return source.Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

// advance consumes one byte. Both \r and \n end a line; the \r of a \r\n
// pair does not count separately.
func (l *Lexer) advance() byte {
	if l.eof() {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	switch {
	case ch == '\n':
		l.line++
		l.column = 1
	case ch == '\r' && l.peek() != '\n':
		l.line++
		l.column = 1
	default:
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func (l *Lexer) skipWhitespace() {
	for !l.eof() && isWhitespace(l.peek()) {
		l.advance()
	}
}

func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()
		start := l.Position()

		if l.exhausted || l.eof() {
			return Token{Kind: TokenEOT, Span: source.Span{Start: start, End: start}}
		}

		ch := l.peek()

		if ch == '/' && l.peekN(1) == '/' {
			tok := l.scanLineComment(start)
			if l.emitComments {
				return tok
			}
			continue
		}
		if ch == '/' && l.peekN(1) == '*' {
			tok := l.scanBlockComment(start)
			if l.emitComments || tok.Kind == TokenError {
				return tok
			}
			continue
		}

		if isLetter(ch) {
			return l.scanIdentOrKeyword(start)
		}
		if isDigit(ch) {
			return l.scanNumber(start)
		}
		return l.scanOperator(start)
	}
}

func (l *Lexer) scanLineComment(start source.Position) Token {
	l.advanceN(2)
	for !l.eof() && l.peek() != '\n' && l.peek() != '\r' {
		l.advance()
	}
	return l.token(TokenLineComment, start)
}

func (l *Lexer) scanBlockComment(start source.Position) Token {
	l.advanceN(2)
	for !l.eof() {
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			return l.token(TokenComment, start)
		}
		l.advance()
	}
	l.exhausted = true
	l.errorf(start, "unterminated block comment")
	return l.token(TokenError, start)
}

func (l *Lexer) scanIdentOrKeyword(start source.Position) Token {
	for isLetterOrDigit(l.peek()) {
		l.advance()
	}
	tok := l.token(TokenIdent, start)
	tok.Kind = LookupKeyword(tok.Spelling)
	return tok
}

func (l *Lexer) scanNumber(start source.Position) Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	return l.token(TokenNum, start)
}

func (l *Lexer) scanOperator(start source.Position) Token {
	ch := l.peek()

	switch ch {
	case '(':
		l.advance()
		return l.token(TokenLParen, start)
	case ')':
		l.advance()
		return l.token(TokenRParen, start)
	case '{':
		l.advance()
		return l.token(TokenLBrace, start)
	case '}':
		l.advance()
		return l.token(TokenRBrace, start)
	case '[':
		l.advance()
		return l.token(TokenLBracket, start)
	case ']':
		l.advance()
		return l.token(TokenRBracket, start)
	case ';':
		l.advance()
		return l.token(TokenSemicolon, start)
	case ',':
		l.advance()
		return l.token(TokenComma, start)
	case '.':
		l.advance()
		return l.token(TokenDot, start)
	case '+':
		l.advance()
		return l.token(TokenPlus, start)
	case '*':
		l.advance()
		return l.token(TokenStar, start)
	case '/':
		l.advance()
		return l.token(TokenSlash, start)

	case '-':
		if l.peekN(1) == '-' {
			l.advanceN(2)
			l.errorf(start, "'--' is not an operator")
			return l.token(TokenError, start)
		}
		l.advance()
		return l.token(TokenMinus, start)

	case '=':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenEQ, start)
		}
		l.advance()
		return l.token(TokenAssign, start)

	case '!':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenNE, start)
		}
		l.advance()
		return l.token(TokenNot, start)

	case '<':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenLE, start)
		}
		l.advance()
		return l.token(TokenLT, start)

	case '>':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenGE, start)
		}
		l.advance()
		return l.token(TokenGT, start)

	case '&':
		if l.peekN(1) == '&' {
			l.advanceN(2)
			return l.token(TokenAnd, start)
		}
		l.advance()
		l.errorf(start, "expected '&&' but got '&'")
		return l.token(TokenError, start)

	case '|':
		if l.peekN(1) == '|' {
			l.advanceN(2)
			return l.token(TokenOr, start)
		}
		l.advance()
		l.errorf(start, "expected '||' but got '|'")
		return l.token(TokenError, start)
	}

	// a multi-byte character is one error; invalid UTF-8 is consumed a byte at a time
	_, size := utf8.DecodeRune(l.input[l.pos:])
	l.advanceN(size)
	tok := l.token(TokenError, start)
	l.errorf(start, "unrecognized character %q in input", tok.Spelling)
	return tok
}

func (l *Lexer) token(kind TokenKind, start source.Position) Token {
	end := l.Position()
	return Token{
		Kind:     kind,
		Span:     source.Span{Start: start, End: end},
		Spelling: string(l.input[start.Offset:end.Offset]),
	}
}

func (l *Lexer) errorf(pos source.Position, format string, args ...any) {
	l.reporter.Report(diag.ScanError, pos, format, args...)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isLetterOrDigit(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}
