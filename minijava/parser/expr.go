package parser

import "github.com/dhamidi/mjc/minijava/ast"

// Expression precedence, loosest first:
//
//	||
//	&&
//	== !=
//	< <= > >=
//	+ -
//	* /
//	unary - !
//
// All binary operators associate to the left.

func (p *Parser) isExpressionStart() bool {
	return p.match(TokenIdent, TokenThis, TokenNum, TokenTrue, TokenFalse,
		TokenNew, TokenLParen, TokenMinus, TokenNot)
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	defer p.enter("Expression")()
	return p.parseOrExpr()
}

type operandFunc func(*Parser) (ast.Expression, error)

// parseBinaryLevel parses operand (op operand)* for the operators in ops and
// folds the result to the left.
func (p *Parser) parseBinaryLevel(operand operandFunc, ops ...TokenKind) (ast.Expression, error) {
	left, err := operand(p)
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.advance()
		right, err := operand(p)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			Loc:   ast.At(left.Pos()),
			Op:    operator(op),
			Left:  left,
			Right: right,
		}
	}
	return left, nil
}

func (p *Parser) parseOrExpr() (ast.Expression, error) {
	return p.parseBinaryLevel((*Parser).parseAndExpr, TokenOr)
}

func (p *Parser) parseAndExpr() (ast.Expression, error) {
	return p.parseBinaryLevel((*Parser).parseEqualityExpr, TokenAnd)
}

func (p *Parser) parseEqualityExpr() (ast.Expression, error) {
	return p.parseBinaryLevel((*Parser).parseRelationalExpr, TokenEQ, TokenNE)
}

func (p *Parser) parseRelationalExpr() (ast.Expression, error) {
	return p.parseBinaryLevel((*Parser).parseAdditiveExpr, TokenLT, TokenLE, TokenGT, TokenGE)
}

func (p *Parser) parseAdditiveExpr() (ast.Expression, error) {
	return p.parseBinaryLevel((*Parser).parseMultiplicativeExpr, TokenPlus, TokenMinus)
}

func (p *Parser) parseMultiplicativeExpr() (ast.Expression, error) {
	return p.parseBinaryLevel((*Parser).parseUnaryExpr, TokenStar, TokenSlash)
}

// Unary operators bind tighter than any binary operator and nest to the
// right, so !!b is !(!b).
func (p *Parser) parseUnaryExpr() (ast.Expression, error) {
	if !p.match(TokenMinus, TokenNot) {
		return p.parsePrimaryExpr()
	}
	op := p.advance()
	operand, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Loc: ast.At(op.Pos()), Op: operator(op), Operand: operand}, nil
}

func (p *Parser) parsePrimaryExpr() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokenLParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return expr, nil

	case TokenNum:
		p.advance()
		lit := &ast.IntLiteral{Loc: ast.At(tok.Pos()), Spelling: tok.Spelling}
		return &ast.LiteralExpr{Loc: ast.At(tok.Pos()), Lit: lit}, nil

	case TokenTrue, TokenFalse:
		p.advance()
		lit := &ast.BooleanLiteral{Loc: ast.At(tok.Pos()), Spelling: tok.Spelling}
		return &ast.LiteralExpr{Loc: ast.At(tok.Pos()), Lit: lit}, nil

	case TokenIdent:
		p.advance()
		ref := ast.Reference(&ast.IdRef{Loc: ast.At(tok.Pos()), ID: identifier(tok)})
		if p.check(TokenLBracket) {
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokenRBracket); err != nil {
				return nil, err
			}
			ref = &ast.IndexedRef{Loc: ast.At(tok.Pos()), Base: ref, Index: index}
			return &ast.RefExpr{Loc: ast.At(tok.Pos()), Ref: ref}, nil
		}
		return p.parseReferenceRest(ref)

	case TokenThis:
		p.advance()
		return p.parseReferenceRest(&ast.ThisRef{Loc: ast.At(tok.Pos())})

	case TokenNew:
		return p.parseNewExpr()
	}
	return nil, p.errorf(nil, "expected an expression but found %s", describe(tok))
}

// parseReferenceRest parses ('.' ID)* followed by an optional argument list
// and returns a reference or a call expression.
func (p *Parser) parseReferenceRest(base ast.Reference) (ast.Expression, error) {
	ref, err := p.parseQualifiedRest(base)
	if err != nil {
		return nil, err
	}
	if p.check(TokenLParen) {
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		return &ast.CallExpr{Loc: ast.At(ref.Pos()), FuncRef: ref, Args: args}, nil
	}
	return &ast.RefExpr{Loc: ast.At(ref.Pos()), Ref: ref}, nil
}

// parseQualifiedRest parses ('.' ID)* and nests each member to the left, so
// a.b.c is (a.b).c.
func (p *Parser) parseQualifiedRest(base ast.Reference) (ast.Reference, error) {
	for p.check(TokenDot) {
		p.advance()
		name, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		base = &ast.QualifiedRef{Loc: ast.At(base.Pos()), Base: base, Member: identifier(name)}
	}
	return base, nil
}

// ArgumentList ::= Expression (',' Expression)*
func (p *Parser) parseArguments() ([]ast.Expression, error) {
	defer p.enter("ArgumentList")()

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	var args []ast.Expression
	if !p.check(TokenRParen) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.check(TokenComma) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return args, nil
}

// 'new' ( ID '(' ')' | 'int' '[' Expression ']' | ID '[' Expression ']' )
func (p *Parser) parseNewExpr() (ast.Expression, error) {
	newTok := p.advance()
	tok := p.peek()

	var elem ast.Type
	switch tok.Kind {
	case TokenIdent:
		p.advance()
		class := &ast.ClassType{Loc: ast.At(tok.Pos()), ClassName: identifier(tok)}
		if p.check(TokenLParen) {
			p.advance()
			if _, err := p.expect(TokenRParen); err != nil {
				return nil, err
			}
			return &ast.NewObjectExpr{Loc: ast.At(newTok.Pos()), ClassType: class}, nil
		}
		if !p.check(TokenLBracket) {
			return nil, p.errorf([]TokenKind{TokenLParen, TokenLBracket},
				"expected '(' or '[' after new %s but found %s", tok.Spelling, describe(p.peek()))
		}
		elem = class
	case TokenInt:
		p.advance()
		elem = &ast.BaseType{Loc: ast.At(tok.Pos()), Kind: ast.TypeInt}
	default:
		return nil, p.errorf([]TokenKind{TokenIdent, TokenInt},
			"expected a class name or 'int' after new but found %s", describe(tok))
	}

	if _, err := p.expect(TokenLBracket); err != nil {
		return nil, err
	}
	size, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRBracket); err != nil {
		return nil, err
	}
	return &ast.NewArrayExpr{Loc: ast.At(newTok.Pos()), ElementType: elem, Size: size}, nil
}
