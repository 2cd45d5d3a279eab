// Package parser turns miniJava source text into an [ast.Package].
//
// # Lexer
//
// [Lexer] is a pull scanner: each call to NextToken skips whitespace and
// comments and returns one [Token] carrying its kind, spelling and span.
// Input that forms no token (a lone '&' or '|', the sequence "--", any
// unknown character, an unterminated block comment) yields a TokenError and
// a ScanError diagnostic, after which scanning continues. Once input is
// exhausted, NextToken returns TokenEOT forever.
//
// # Parser
//
// The parser is recursive descent with one token of lookahead, except after
// ID '[' inside a statement, where the next token decides between an array
// declaration and an indexed assignment. Expressions are parsed by one
// procedure per precedence level:
//
//	Expression ::= Or
//	Or         ::= And ('||' And)*
//	And        ::= Eq ('&&' Eq)*
//	Eq         ::= Rel (('==' | '!=') Rel)*
//	Rel        ::= Add (('<' | '<=' | '>' | '>=') Add)*
//	Add        ::= Mul (('+' | '-') Mul)*
//	Mul        ::= Unary (('*' | '/') Unary)*
//	Unary      ::= ('-' | '!') Unary | Primary
//
// Parsing stops at the first syntax error. [Parse] then reports exactly one
// SyntaxError diagnostic, unless the offending token was already rejected
// by the lexer, and returns a nil package.
//
// # Usage
//
//	reporter := diag.NewReporter()
//	pkg, err := parser.Parse(r, parser.WithFile("Main.java"), parser.WithReporter(reporter))
//	if err != nil {
//	    diag.Display(os.Stderr, src, reporter.Diagnostics())
//	}
package parser
