package parser

import (
	"evalkit/pkg/ast"
	"evalkit/pkg/errors"
	"evalkit/pkg/lexer"
)

func (p *Parser) parseStatement() ast.Node {
	switch p.curToken.Type {
	case lexer.LET, lexer.CONST, lexer.VAR:
		return p.parseVariableDeclaration()
	case lexer.FUNCTION:
		if p.peekIs(lexer.IDENT) {
			return p.parseFunctionDeclaration()
		}
		return p.parseExpressionStatement()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement("")
	case lexer.DO:
		return p.parseDoWhileStatement("")
	case lexer.FOR:
		return p.parseForStatement("")
	case lexer.BREAK:
		return p.parseBreakStatement()
	case lexer.CONTINUE:
		return p.parseContinueStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.THROW:
		return p.parseThrowStatement()
	case lexer.TRY:
		return p.parseTryStatement()
	case lexer.LBRACE:
		return p.parseBlockStatement()
	case lexer.SEMICOLON:
		return nil
	case lexer.IDENT:
		if p.peekIs(lexer.COLON) {
			return p.parseLabeledStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLabeledStatement() ast.Node {
	pos := p.pos()
	label := p.curToken.Literal
	p.nextToken() // consume identifier, cur is now ':'
	p.nextToken() // consume ':', cur is now the labeled statement's first token

	var body ast.Node
	switch p.curToken.Type {
	case lexer.WHILE:
		body = p.parseWhileStatement(label)
	case lexer.DO:
		body = p.parseDoWhileStatement(label)
	case lexer.FOR:
		body = p.parseForStatement(label)
	default:
		body = p.parseStatement()
	}

	stmt := &ast.LabeledStatement{Label: label, Body: body}
	stmt.Position = pos
	return stmt
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	pos := p.pos()
	blk := &ast.BlockStatement{}
	blk.Position = pos
	p.nextToken() // consume '{'
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			blk.Body = append(blk.Body, stmt)
		}
		p.nextToken()
	}
	// cur is now '}'
	return blk
}

func (p *Parser) parseExpressionStatement() ast.Node {
	pos := p.pos()
	expr := p.parseExpression(LOWEST)
	p.skipSemicolon()
	stmt := &ast.ExpressionStatement{Expression: expr}
	stmt.Position = pos
	return stmt
}

func (p *Parser) parseVariableDeclaration() ast.Node {
	pos := p.pos()
	keyword := p.curToken.Literal
	decl := &ast.VariableDeclaration{Keyword: keyword}
	decl.Position = pos

	for {
		if !p.expect(lexer.IDENT) {
			return decl
		}
		namePos := p.pos()
		name := &ast.Identifier{Name: p.curToken.Literal}
		name.Position = namePos

		var init ast.Node
		if p.peekIs(lexer.ASSIGN) {
			p.nextToken() // consume '='
			p.nextToken() // move to init expression
			init = p.parseExpression(LOWEST)
		}
		declarator := &ast.VariableDeclarator{Name: name, Init: init}
		declarator.Position = namePos
		decl.Declarations = append(decl.Declarations, declarator)

		if p.peekIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	p.skipSemicolon()
	return decl
}

func (p *Parser) parseFunctionDeclaration() ast.Node {
	pos := p.pos()
	return p.parseFunctionRest(pos, ast.FunctionDeclarationKind, true)
}

func (p *Parser) parseIfStatement() ast.Node {
	pos := p.pos()
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	p.nextToken() // move to test expression
	test := p.parseExpression(LOWEST)
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	p.nextToken() // move to consequent
	consequent := p.parseStatement()

	var alternate ast.Node
	if p.peekIs(lexer.ELSE) {
		p.nextToken() // consume to 'else'
		p.nextToken() // move past 'else'
		alternate = p.parseStatement()
	}
	stmt := &ast.IfStatement{Test: test, Consequent: consequent, Alternate: alternate}
	stmt.Position = pos
	return stmt
}

func (p *Parser) parseWhileStatement(label string) ast.Node {
	pos := p.pos()
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	test := p.parseExpression(LOWEST)
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	p.nextToken()
	body := p.parseStatement()
	stmt := &ast.WhileStatement{Test: test, Body: body, Label: label}
	stmt.Position = pos
	return stmt
}

func (p *Parser) parseDoWhileStatement(label string) ast.Node {
	pos := p.pos()
	p.nextToken() // move past 'do'
	body := p.parseStatement()
	if !p.expect(lexer.WHILE) {
		return nil
	}
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	test := p.parseExpression(LOWEST)
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	p.skipSemicolon()
	stmt := &ast.DoWhileStatement{Test: test, Body: body, Label: label}
	stmt.Position = pos
	return stmt
}

// parseForStatement dispatches between the classic C-style for(;;) form and
// the for-of/for-in forms. All three share the `let`/`const`/`var` binding
// keyword followed by a single identifier; which form it is only becomes
// clear once the token after that identifier turns out to be `of`, `in`,
// or something else (`=` or `;`), so the identifier is parsed once up
// front and handed to whichever continuation matches.
func (p *Parser) parseForStatement(label string) ast.Node {
	pos := p.pos()
	if !p.expect(lexer.LPAREN) {
		return nil
	}

	if p.peekIs(lexer.LET) || p.peekIs(lexer.CONST) || p.peekIs(lexer.VAR) {
		p.nextToken() // consume keyword, cur is now the binding keyword
		if p.expect(lexer.IDENT) {
			bindingPos := p.pos()
			binding := &ast.Identifier{Name: p.curToken.Literal}
			binding.Position = bindingPos
			if p.peekIs(lexer.OF) {
				p.nextToken() // consume 'of'
				p.nextToken() // move to iterable expr
				right := p.parseExpression(LOWEST)
				if !p.expect(lexer.RPAREN) {
					return nil
				}
				p.nextToken()
				body := p.parseStatement()
				stmt := &ast.ForOfStatement{Binding: binding, Right: right, Body: body, Label: label}
				stmt.Position = pos
				return stmt
			}
			if p.peekIs(lexer.IN) {
				p.nextToken() // consume 'in'
				p.nextToken() // move to object expr
				right := p.parseExpression(LOWEST)
				if !p.expect(lexer.RPAREN) {
					return nil
				}
				p.nextToken()
				body := p.parseStatement()
				stmt := &ast.ForInStatement{Binding: binding, Right: right, Body: body, Label: label}
				stmt.Position = pos
				return stmt
			}
			// Classic for(let i = ...; ...; ...): finish the declaration
			// starting from the identifier already consumed above.
			return p.parseClassicForFromBinding(pos, label, binding)
		}
		return nil
	}

	return p.parseClassicFor(pos, label)
}

// parseClassicForFromBinding resumes classic-for parsing after having
// already consumed `let`/`const`/`var` and the first binding identifier
// while speculatively checking for of/in.
func (p *Parser) parseClassicForFromBinding(pos errors.Position, label string, first *ast.Identifier) ast.Node {
	decl := &ast.VariableDeclaration{Keyword: "let"}
	decl.Position = first.Position

	var init ast.Node
	if p.peekIs(lexer.ASSIGN) {
		p.nextToken()
		p.nextToken()
		init = p.parseExpression(LOWEST)
	}
	declarator := &ast.VariableDeclarator{Name: first, Init: init}
	declarator.Position = first.Position
	decl.Declarations = append(decl.Declarations, declarator)

	for p.peekIs(lexer.COMMA) {
		p.nextToken() // consume ','
		if !p.expect(lexer.IDENT) {
			return nil
		}
		namePos := p.pos()
		name := &ast.Identifier{Name: p.curToken.Literal}
		name.Position = namePos
		var nInit ast.Node
		if p.peekIs(lexer.ASSIGN) {
			p.nextToken()
			p.nextToken()
			nInit = p.parseExpression(LOWEST)
		}
		d := &ast.VariableDeclarator{Name: name, Init: nInit}
		d.Position = namePos
		decl.Declarations = append(decl.Declarations, d)
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	return p.finishClassicFor(pos, label, decl)
}

func (p *Parser) parseClassicFor(pos errors.Position, label string) ast.Node {
	var init ast.Node
	if !p.peekIs(lexer.SEMICOLON) {
		p.nextToken()
		init = p.parseExpression(LOWEST)
	}
	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	return p.finishClassicFor(pos, label, init)
}

func (p *Parser) finishClassicFor(pos errors.Position, label string, init ast.Node) ast.Node {
	var test ast.Node
	if !p.peekIs(lexer.SEMICOLON) {
		p.nextToken()
		test = p.parseExpression(LOWEST)
	}
	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	var update ast.Node
	if !p.peekIs(lexer.RPAREN) {
		p.nextToken()
		update = p.parseExpression(LOWEST)
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	p.nextToken()
	body := p.parseStatement()
	stmt := &ast.ForStatement{Init: init, Test: test, Update: update, Body: body, Label: label}
	stmt.Position = pos
	return stmt
}

func (p *Parser) parseBreakStatement() ast.Node {
	pos := p.pos()
	label := ""
	if p.peekIs(lexer.IDENT) {
		p.nextToken()
		label = p.curToken.Literal
	}
	p.skipSemicolon()
	stmt := &ast.BreakStatement{Label: label}
	stmt.Position = pos
	return stmt
}

func (p *Parser) parseContinueStatement() ast.Node {
	pos := p.pos()
	label := ""
	if p.peekIs(lexer.IDENT) {
		p.nextToken()
		label = p.curToken.Literal
	}
	p.skipSemicolon()
	stmt := &ast.ContinueStatement{Label: label}
	stmt.Position = pos
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Node {
	pos := p.pos()
	var arg ast.Node
	if !p.peekIs(lexer.SEMICOLON) && !p.peekIs(lexer.RBRACE) && !p.peekIs(lexer.EOF) {
		p.nextToken()
		arg = p.parseExpression(LOWEST)
	}
	p.skipSemicolon()
	stmt := &ast.ReturnStatement{Argument: arg}
	stmt.Position = pos
	return stmt
}

func (p *Parser) parseThrowStatement() ast.Node {
	pos := p.pos()
	p.nextToken() // move to argument expression
	arg := p.parseExpression(LOWEST)
	p.skipSemicolon()
	stmt := &ast.ThrowStatement{Argument: arg}
	stmt.Position = pos
	return stmt
}

func (p *Parser) parseTryStatement() ast.Node {
	pos := p.pos()
	if !p.expect(lexer.LBRACE) {
		return nil
	}
	block := p.parseBlockStatement()

	var handler *ast.CatchClause
	var finalizer *ast.BlockStatement

	if p.peekIs(lexer.CATCH) {
		p.nextToken() // consume to 'catch'
		catchPos := p.pos()
		var param *ast.Identifier
		if p.peekIs(lexer.LPAREN) {
			p.nextToken() // consume '('
			if !p.expect(lexer.IDENT) {
				return nil
			}
			paramPos := p.pos()
			param = &ast.Identifier{Name: p.curToken.Literal}
			param.Position = paramPos
			if !p.expect(lexer.RPAREN) {
				return nil
			}
		}
		if !p.expect(lexer.LBRACE) {
			return nil
		}
		catchBody := p.parseBlockStatement()
		handler = &ast.CatchClause{Param: param, Body: catchBody}
		handler.Position = catchPos
	}

	if p.peekIs(lexer.FINALLY) {
		p.nextToken() // consume to 'finally'
		if !p.expect(lexer.LBRACE) {
			return nil
		}
		finalizer = p.parseBlockStatement()
	}

	stmt := &ast.TryStatement{Block: block, Handler: handler, Finalizer: finalizer}
	stmt.Position = pos
	return stmt
}
