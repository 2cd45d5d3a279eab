package parser

import "github.com/dhamidi/mjc/minijava/source"

type TokenKind int

const (
	TokenEOT TokenKind = iota
	TokenError
	TokenComment
	TokenLineComment

	TokenIdent
	TokenNum

	// Keywords
	TokenBoolean
	TokenClass
	TokenElse
	TokenFalse
	TokenIf
	TokenInt
	TokenNew
	TokenPrivate
	TokenPublic
	TokenReturn
	TokenStatic
	TokenThis
	TokenTrue
	TokenVoid
	TokenWhile

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenAssign

	// Operators
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenLT
	TokenGT
	TokenLE
	TokenGE
	TokenEQ
	TokenNE
	TokenAnd
	TokenOr
	TokenNot
)

var tokenKindNames = map[TokenKind]string{
	TokenEOT:         "EOT",
	TokenError:       "Error",
	TokenComment:     "Comment",
	TokenLineComment: "LineComment",
	TokenIdent:       "Identifier",
	TokenNum:         "Num",
	TokenBoolean:     "boolean",
	TokenClass:       "class",
	TokenElse:        "else",
	TokenFalse:       "false",
	TokenIf:          "if",
	TokenInt:         "int",
	TokenNew:         "new",
	TokenPrivate:     "private",
	TokenPublic:      "public",
	TokenReturn:      "return",
	TokenStatic:      "static",
	TokenThis:        "this",
	TokenTrue:        "true",
	TokenVoid:        "void",
	TokenWhile:       "while",
	TokenLParen:      "(",
	TokenRParen:      ")",
	TokenLBrace:      "{",
	TokenRBrace:      "}",
	TokenLBracket:    "[",
	TokenRBracket:    "]",
	TokenSemicolon:   ";",
	TokenComma:       ",",
	TokenDot:         ".",
	TokenAssign:      "=",
	TokenPlus:        "+",
	TokenMinus:       "-",
	TokenStar:        "*",
	TokenSlash:       "/",
	TokenLT:          "<",
	TokenGT:          ">",
	TokenLE:          "<=",
	TokenGE:          ">=",
	TokenEQ:          "==",
	TokenNE:          "!=",
	TokenAnd:         "&&",
	TokenOr:          "||",
	TokenNot:         "!",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// OperatorClass says how an operator token may be used by the parser.
type OperatorClass int

const (
	OpNone OperatorClass = iota
	OpUnary
	OpBinary
	// OpDual operators are unary or binary depending on context.
	OpDual
)

func (c OperatorClass) String() string {
	switch c {
	case OpUnary:
		return "unary"
	case OpBinary:
		return "binary"
	case OpDual:
		return "dual"
	default:
		return "none"
	}
}

func (k TokenKind) OperatorClass() OperatorClass {
	switch k {
	case TokenNot:
		return OpUnary
	case TokenPlus, TokenMinus:
		return OpDual
	case TokenStar, TokenSlash, TokenLT, TokenGT, TokenLE, TokenGE,
		TokenEQ, TokenNE, TokenAnd, TokenOr:
		return OpBinary
	}
	return OpNone
}

func (k TokenKind) IsKeyword() bool {
	return k >= TokenBoolean && k <= TokenWhile
}

type Token struct {
	Kind     TokenKind
	Spelling string
	Span     source.Span
}

func (t Token) Pos() source.Position {
	return t.Span.Start
}

var keywords = map[string]TokenKind{
	"boolean": TokenBoolean,
	"class":   TokenClass,
	"else":    TokenElse,
	"false":   TokenFalse,
	"if":      TokenIf,
	"int":     TokenInt,
	"new":     TokenNew,
	"private": TokenPrivate,
	"public":  TokenPublic,
	"return":  TokenReturn,
	"static":  TokenStatic,
	"this":    TokenThis,
	"true":    TokenTrue,
	"void":    TokenVoid,
	"while":   TokenWhile,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
