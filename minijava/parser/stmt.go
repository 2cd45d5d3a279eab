package parser

import "github.com/dhamidi/mjc/minijava/ast"

// parseBlockBody parses '{' Statement* '}' and returns the statements.
func (p *Parser) parseBlockBody() ([]ast.Statement, error) {
	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for p.isStatementStart() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) isStatementStart() bool {
	return p.match(TokenLBrace, TokenInt, TokenBoolean, TokenIdent, TokenThis, TokenReturn, TokenIf, TokenWhile)
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	defer p.enter("Statement")()

	tok := p.peek()
	switch tok.Kind {
	case TokenLBrace:
		stmts, err := p.parseBlockBody()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStmt{Loc: ast.At(tok.Pos()), Statements: stmts}, nil
	case TokenInt, TokenBoolean:
		return p.parseLocalDecl()
	case TokenIdent:
		return p.parseIdentStatement()
	case TokenThis:
		p.advance()
		ref, err := p.parseQualifiedRest(&ast.ThisRef{Loc: ast.At(tok.Pos())})
		if err != nil {
			return nil, err
		}
		return p.parseReferenceStatementRest(ref)
	case TokenReturn:
		return p.parseReturn()
	case TokenIf:
		return p.parseIf()
	case TokenWhile:
		return p.parseWhile()
	}
	return nil, p.errorf(nil, "expected a statement but found %s", describe(tok))
}

// ('boolean' | 'int' ('[' ']')?) ID '=' Expression ';'
func (p *Parser) parseLocalDecl() (ast.Statement, error) {
	tok := p.advance()
	var typ ast.Type
	if tok.Kind == TokenBoolean {
		typ = &ast.BaseType{Loc: ast.At(tok.Pos()), Kind: ast.TypeBoolean}
	} else {
		elem := &ast.BaseType{Loc: ast.At(tok.Pos()), Kind: ast.TypeInt}
		var err error
		if typ, err = p.parseArraySuffix(elem); err != nil {
			return nil, err
		}
	}
	return p.parseVarDeclRest(tok, typ)
}

// parseVarDeclRest parses ID '=' Expression ';' after the type of a local
// declaration that began at start.
func (p *Parser) parseVarDeclRest(start Token, typ ast.Type) (ast.Statement, error) {
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenAssign); err != nil {
		return nil, err
	}
	init, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.VarDeclStmt{
		Loc:  ast.At(start.Pos()),
		Decl: &ast.VarDecl{Loc: ast.At(name.Pos()), Type: typ, Name: name.Spelling},
		Init: init,
	}, nil
}

// A statement starting with an identifier is one of
//
//	ID ID '=' Expression ';'
//	ID '[' ']' ID '=' Expression ';'
//	ID '[' Expression ']' '=' Expression ';'
//	ID ('.' ID)* ('=' Expression | '(' ArgumentList? ')') ';'
//
// The two bracket forms are told apart by the token after '['.
func (p *Parser) parseIdentStatement() (ast.Statement, error) {
	first := p.advance()
	id := identifier(first)

	switch p.peek().Kind {
	case TokenIdent:
		typ := &ast.ClassType{Loc: ast.At(first.Pos()), ClassName: id}
		return p.parseVarDeclRest(first, typ)

	case TokenLBracket:
		if p.peekN(1).Kind == TokenRBracket {
			typ, err := p.parseArraySuffix(&ast.ClassType{Loc: ast.At(first.Pos()), ClassName: id})
			if err != nil {
				return nil, err
			}
			return p.parseVarDeclRest(first, typ)
		}
		p.advance()
		if !p.isExpressionStart() {
			return nil, p.errorf([]TokenKind{TokenRBracket},
				"expected ']' or an index expression but found %s", describe(p.peek()))
		}
		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRBracket); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenAssign); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		target := &ast.IndexedRef{
			Loc:   ast.At(first.Pos()),
			Base:  &ast.IdRef{Loc: ast.At(first.Pos()), ID: id},
			Index: index,
		}
		return &ast.IndexedAssignStmt{Loc: ast.At(first.Pos()), Target: target, Value: value}, nil
	}

	ref, err := p.parseQualifiedRest(&ast.IdRef{Loc: ast.At(first.Pos()), ID: id})
	if err != nil {
		return nil, err
	}
	return p.parseReferenceStatementRest(ref)
}

// parseReferenceStatementRest parses ('=' Expression | '(' ArgumentList? ')') ';'.
func (p *Parser) parseReferenceStatementRest(ref ast.Reference) (ast.Statement, error) {
	switch p.peek().Kind {
	case TokenAssign:
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Loc: ast.At(ref.Pos()), Target: ref, Value: value}, nil
	case TokenLParen:
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		return &ast.CallStmt{Loc: ast.At(ref.Pos()), MethodRef: ref, Args: args}, nil
	}
	return nil, p.errorf([]TokenKind{TokenAssign, TokenLParen},
		"expected '=' or '(' but found %s", describe(p.peek()))
}

// 'return' Expression? ';'
func (p *Parser) parseReturn() (ast.Statement, error) {
	tok := p.advance()
	stmt := &ast.ReturnStmt{Loc: ast.At(tok.Pos())}
	if p.isExpressionStart() {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Expr = expr
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return stmt, nil
}

// 'if' '(' Expression ')' Statement ('else' Statement)?
func (p *Parser) parseIf() (ast.Statement, error) {
	tok := p.advance()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Loc: ast.At(tok.Pos()), Cond: cond, Then: then}
	if p.check(TokenElse) {
		p.advance()
		if stmt.Else, err = p.parseStatement(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// 'while' '(' Expression ')' Statement
func (p *Parser) parseWhile() (ast.Statement, error) {
	tok := p.advance()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Loc: ast.At(tok.Pos()), Cond: cond, Body: body}, nil
}

func (p *Parser) parseCondition() (ast.Expression, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return cond, nil
}
