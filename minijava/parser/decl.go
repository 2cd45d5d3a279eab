package parser

import "github.com/dhamidi/mjc/minijava/ast"

// Program ::= ClassDeclaration* EOT
func (p *Parser) parseProgram() (*ast.Package, error) {
	defer p.enter("Program")()

	pkg := &ast.Package{Loc: ast.At(p.peek().Pos())}
	for p.check(TokenClass) {
		class, err := p.parseClassDecl()
		if err != nil {
			return nil, err
		}
		pkg.Classes = append(pkg.Classes, class)
	}
	if _, err := p.expect(TokenEOT); err != nil {
		return nil, err
	}
	return pkg, nil
}

// ClassDeclaration ::= 'class' ID '{' MemberDecl* '}'
func (p *Parser) parseClassDecl() (*ast.ClassDecl, error) {
	defer p.enter("ClassDeclaration")()

	if _, err := p.expect(TokenClass); err != nil {
		return nil, err
	}
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	class := &ast.ClassDecl{Loc: ast.At(name.Pos()), Name: name.Spelling}

	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	for p.isMemberStart() {
		member, err := p.parseMemberDecl()
		if err != nil {
			return nil, err
		}
		switch m := member.(type) {
		case *ast.FieldDecl:
			class.Fields = append(class.Fields, m)
		case *ast.MethodDecl:
			class.Methods = append(class.Methods, m)
		}
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	return class, nil
}

func (p *Parser) isMemberStart() bool {
	return p.match(TokenPublic, TokenPrivate, TokenStatic, TokenVoid, TokenInt, TokenBoolean, TokenIdent)
}

// MemberDecl ::= Declarators ID ';'
//
//	| Declarators ID '(' ParameterList? ')' '{' Statement* '}'
//	| Visibility Access 'void' ID '(' ParameterList? ')' '{' Statement* '}'
func (p *Parser) parseMemberDecl() (ast.MemberDecl, error) {
	defer p.enter("MemberDecl")()

	var m ast.Member
	if p.match(TokenPublic, TokenPrivate) {
		m.IsPrivate = p.advance().Kind == TokenPrivate
	}
	if p.check(TokenStatic) {
		p.advance()
		m.IsStatic = true
	}

	if p.check(TokenVoid) {
		void := p.advance()
		m.Type = &ast.BaseType{Loc: ast.At(void.Pos()), Kind: ast.TypeVoid}
		name, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		m.Name = name.Spelling
		return p.parseMethodRest(name, m)
	}

	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	m.Type = typ
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	m.Name = name.Spelling

	switch p.peek().Kind {
	case TokenSemicolon:
		p.advance()
		return &ast.FieldDecl{Loc: ast.At(name.Pos()), Member: m}, nil
	case TokenLParen:
		return p.parseMethodRest(name, m)
	}
	return nil, p.errorf([]TokenKind{TokenSemicolon, TokenLParen},
		"expected ';' or '(' after member %s but found %s", name.Spelling, describe(p.peek()))
}

// parseMethodRest parses '(' ParameterList? ')' '{' Statement* '}'.
func (p *Parser) parseMethodRest(name Token, m ast.Member) (*ast.MethodDecl, error) {
	method := &ast.MethodDecl{Loc: ast.At(name.Pos()), Member: m}

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	if p.isTypeStart() {
		params, err := p.parseParameterList()
		if err != nil {
			return nil, err
		}
		method.Parameters = params
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	method.Body = body
	return method, nil
}

// ParameterList ::= Type ID (',' Type ID)*
func (p *Parser) parseParameterList() ([]*ast.ParameterDecl, error) {
	defer p.enter("ParameterList")()

	var params []*ast.ParameterDecl
	for {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		name, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		params = append(params, &ast.ParameterDecl{Loc: ast.At(name.Pos()), Type: typ, Name: name.Spelling})

		if !p.check(TokenComma) {
			return params, nil
		}
		p.advance()
	}
}

func (p *Parser) isTypeStart() bool {
	return p.match(TokenInt, TokenBoolean, TokenIdent)
}

// Type ::= 'int' | 'boolean' | ID | ('int' | ID) '[' ']'
func (p *Parser) parseType() (ast.Type, error) {
	defer p.enter("Type")()

	tok := p.peek()
	var typ ast.Type
	switch tok.Kind {
	case TokenBoolean:
		p.advance()
		return &ast.BaseType{Loc: ast.At(tok.Pos()), Kind: ast.TypeBoolean}, nil
	case TokenInt:
		p.advance()
		typ = &ast.BaseType{Loc: ast.At(tok.Pos()), Kind: ast.TypeInt}
	case TokenIdent:
		p.advance()
		typ = &ast.ClassType{Loc: ast.At(tok.Pos()), ClassName: identifier(tok)}
	default:
		return nil, p.errorf([]TokenKind{TokenInt, TokenBoolean, TokenIdent},
			"expected a type but found %s", describe(tok))
	}
	return p.parseArraySuffix(typ)
}

// parseArraySuffix wraps elem in an ArrayType when '[' ']' follows.
func (p *Parser) parseArraySuffix(elem ast.Type) (ast.Type, error) {
	if !p.check(TokenLBracket) {
		return elem, nil
	}
	p.advance()
	if _, err := p.expect(TokenRBracket); err != nil {
		return nil, err
	}
	return &ast.ArrayType{Loc: ast.At(elem.Pos()), ElementType: elem}, nil
}
