package parser

import (
	"strconv"

	"evalkit/pkg/ast"
	"evalkit/pkg/errors"
	"evalkit/pkg/lexer"
)

func (p *Parser) parseExpression(precedence int) ast.Node {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.errors = append(p.errors, &errors.SyntaxError{
			Position: p.pos(),
			Msg:      "no prefix parse function for " + string(p.curToken.Type),
		})
		return nil
	}
	left := prefix()

	for !p.peekIs(lexer.SEMICOLON) && precedence < p.peekPrecedence() {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Node {
	pos := p.pos()
	name := p.curToken.Literal
	if p.peekIs(lexer.ARROW) {
		return p.parseArrowFromSingleParam(pos, name)
	}
	id := &ast.Identifier{Name: name}
	id.Position = pos
	return id
}

func (p *Parser) parseArrowFromSingleParam(pos errors.Position, paramName string) ast.Node {
	param := &ast.Identifier{Name: paramName}
	param.Position = pos
	p.nextToken() // consume identifier, cur is now '=>'
	return p.parseArrowBody(pos, []ast.Node{param})
}

func (p *Parser) parseNumberLiteral() ast.Node {
	pos := p.pos()
	n, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errorf("invalid number literal %q", p.curToken.Literal)
	}
	lit := &ast.Literal{LitKind: ast.LiteralNumber, Number: n}
	lit.Position = pos
	return lit
}

func (p *Parser) parseStringLiteral() ast.Node {
	pos := p.pos()
	lit := &ast.Literal{LitKind: ast.LiteralString, String: p.curToken.Literal}
	lit.Position = pos
	return lit
}

func (p *Parser) parseBooleanLiteral() ast.Node {
	pos := p.pos()
	lit := &ast.Literal{LitKind: ast.LiteralBool, Bool: p.curIs(lexer.TRUE)}
	lit.Position = pos
	return lit
}

func (p *Parser) parseNullLiteral() ast.Node {
	pos := p.pos()
	lit := &ast.Literal{LitKind: ast.LiteralNull}
	lit.Position = pos
	return lit
}

func (p *Parser) parseUndefinedLiteral() ast.Node {
	pos := p.pos()
	lit := &ast.Literal{LitKind: ast.LiteralUndefined}
	lit.Position = pos
	return lit
}

func (p *Parser) parseThisExpression() ast.Node {
	pos := p.pos()
	expr := &ast.ThisExpression{}
	expr.Position = pos
	return expr
}

func (p *Parser) parsePrefixExpression() ast.Node {
	pos := p.pos()
	op := p.curToken.Literal
	p.nextToken()
	arg := p.parseExpression(PREFIX)
	expr := &ast.UnaryExpression{Operator: op, Argument: arg}
	expr.Position = pos
	return expr
}

func (p *Parser) parsePrefixUpdateExpression() ast.Node {
	pos := p.pos()
	op := p.curToken.Literal
	p.nextToken()
	arg := p.parseExpression(PREFIX)
	expr := &ast.UpdateExpression{Operator: op, Prefix: true, Argument: arg}
	expr.Position = pos
	return expr
}

func (p *Parser) parsePostfixUpdateExpression(left ast.Node) ast.Node {
	pos := left.Loc()
	op := p.curToken.Literal
	expr := &ast.UpdateExpression{Operator: op, Prefix: false, Argument: left}
	expr.Position = pos
	return expr
}

func (p *Parser) parseBinaryExpression(left ast.Node) ast.Node {
	pos := left.Loc()
	op := p.curToken.Literal
	precedence := p.curPrecedence()
	p.nextToken()
	// ** is right-associative: parse the right operand at one precedence
	// level lower than its own, so a chain like 2 ** 3 ** 2 groups as
	// 2 ** (3 ** 2).
	rightPrec := precedence
	if op == "**" {
		rightPrec--
	}
	right := p.parseExpression(rightPrec)
	expr := &ast.BinaryExpression{Operator: op, Left: left, Right: right}
	expr.Position = pos
	return expr
}

func (p *Parser) parseLogicalExpression(left ast.Node) ast.Node {
	pos := left.Loc()
	op := p.curToken.Literal
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	expr := &ast.LogicalExpression{Operator: op, Left: left, Right: right}
	expr.Position = pos
	return expr
}

func (p *Parser) parseAssignmentExpression(left ast.Node) ast.Node {
	pos := left.Loc()
	op := p.curToken.Literal
	p.nextToken()
	value := p.parseExpression(LOWEST) // right-associative
	expr := &ast.AssignmentExpression{Operator: op, Target: left, Value: value}
	expr.Position = pos
	return expr
}

func (p *Parser) parseConditionalExpression(test ast.Node) ast.Node {
	pos := test.Loc()
	p.nextToken() // move to consequent
	consequent := p.parseExpression(LOWEST)
	if !p.expect(lexer.COLON) {
		return nil
	}
	p.nextToken() // move to alternate
	alternate := p.parseExpression(LOWEST)
	expr := &ast.ConditionalExpression{Test: test, Consequent: consequent, Alternate: alternate}
	expr.Position = pos
	return expr
}

func (p *Parser) parseMemberExpression(obj ast.Node) ast.Node {
	pos := obj.Loc()
	if !p.expect(lexer.IDENT) {
		return nil
	}
	propPos := p.pos()
	prop := &ast.Identifier{Name: p.curToken.Literal}
	prop.Position = propPos
	expr := &ast.MemberExpression{Object: obj, Property: prop, Computed: false}
	expr.Position = pos
	return expr
}

func (p *Parser) parseComputedMemberExpression(obj ast.Node) ast.Node {
	pos := obj.Loc()
	p.nextToken() // move to index expression
	index := p.parseExpression(LOWEST)
	if !p.expect(lexer.RBRACKET) {
		return nil
	}
	expr := &ast.MemberExpression{Object: obj, Property: index, Computed: true}
	expr.Position = pos
	return expr
}

func (p *Parser) parseCallExpression(callee ast.Node) ast.Node {
	pos := callee.Loc()
	args := p.parseArgumentList(lexer.RPAREN)
	expr := &ast.CallExpression{Callee: callee, Arguments: args}
	expr.Position = pos
	return expr
}

func (p *Parser) parseArgumentList(end lexer.TokenType) []ast.Node {
	var args []ast.Node
	if p.peekIs(end) {
		p.nextToken()
		return args
	}
	p.nextToken()
	args = append(args, p.parseExpression(LOWEST))
	for p.peekIs(lexer.COMMA) {
		p.nextToken() // consume ','
		p.nextToken()
		args = append(args, p.parseExpression(LOWEST))
	}
	p.expect(end)
	return args
}

func (p *Parser) parseNewExpression() ast.Node {
	pos := p.pos()
	p.nextToken() // move past 'new'
	// Parse the callee at CALL precedence: high enough that a trailing
	// '(' is left for this function to consume as the constructor's own
	// argument list, but low enough that member/index chains like
	// `new a.b[0]` still fold into the callee.
	callee := p.parseExpression(CALL)

	var args []ast.Node
	if p.peekIs(lexer.LPAREN) {
		p.nextToken() // consume '('
		args = p.parseArgumentList(lexer.RPAREN)
	}
	expr := &ast.NewExpression{Callee: callee, Arguments: args}
	expr.Position = pos
	return expr
}

func (p *Parser) parseArrayLiteral() ast.Node {
	pos := p.pos()
	elements := p.parseArgumentList(lexer.RBRACKET)
	expr := &ast.ArrayExpression{Elements: elements}
	expr.Position = pos
	return expr
}

func (p *Parser) parseObjectLiteral() ast.Node {
	pos := p.pos()
	obj := &ast.ObjectExpression{}
	obj.Position = pos

	if p.peekIs(lexer.RBRACE) {
		p.nextToken()
		return obj
	}

	for {
		p.nextToken() // move to key
		prop := p.parseObjectProperty()
		obj.Properties = append(obj.Properties, prop)
		if p.peekIs(lexer.COMMA) {
			p.nextToken()
			if p.peekIs(lexer.RBRACE) {
				p.nextToken()
				break
			}
			continue
		}
		if !p.expect(lexer.RBRACE) {
			break
		}
		break
	}
	return obj
}

func (p *Parser) parseObjectProperty() ast.ObjectProperty {
	var key ast.Node
	computed := false

	if p.curIs(lexer.LBRACKET) {
		computed = true
		p.nextToken()
		key = p.parseExpression(LOWEST)
		p.expect(lexer.RBRACKET)
	} else if p.curIs(lexer.STRING) {
		pos := p.pos()
		lit := &ast.Literal{LitKind: ast.LiteralString, String: p.curToken.Literal}
		lit.Position = pos
		key = lit
	} else {
		pos := p.pos()
		id := &ast.Identifier{Name: p.curToken.Literal}
		id.Position = pos
		key = id
	}

	if p.peekIs(lexer.COLON) {
		p.nextToken() // consume ':'
		p.nextToken() // move to value expr
		value := p.parseExpression(LOWEST)
		return ast.ObjectProperty{Key: key, Value: value, Computed: computed}
	}

	// Shorthand `{ x }` — key doubles as a reference to the enclosing
	// binding named x.
	if id, ok := key.(*ast.Identifier); ok {
		shorthand := &ast.Identifier{Name: id.Name}
		shorthand.Position = id.Position
		return ast.ObjectProperty{Key: key, Value: shorthand, Computed: false}
	}
	p.errorf("invalid shorthand property")
	return ast.ObjectProperty{Key: key, Value: key, Computed: computed}
}

func (p *Parser) parseFunctionExpression() ast.Node {
	pos := p.pos()
	return p.parseFunctionRest(pos, ast.FunctionExpressionKind, false)
}

// parseFunctionRest parses the part of a function declaration/expression
// after the `function` keyword: an optional name, parameter list, and
// block body. requireName is set for FunctionDeclaration, where a bound
// name is mandatory.
func (p *Parser) parseFunctionRest(pos errors.Position, kind ast.FunctionNodeKind, requireName bool) ast.Node {
	name := ""
	if p.peekIs(lexer.IDENT) {
		p.nextToken()
		name = p.curToken.Literal
	} else if requireName {
		p.errorf("expected function name")
	}

	if !p.expect(lexer.LPAREN) {
		return nil
	}
	params := p.parseParamList()

	if !p.expect(lexer.LBRACE) {
		return nil
	}
	body := p.parseBlockStatement()

	fn := &ast.FunctionNode{NodeKind: kind, Name: name, Params: params, Body: body}
	fn.Position = pos
	return fn
}

func (p *Parser) parseParamList() []ast.Node {
	var params []ast.Node
	if p.peekIs(lexer.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, p.parseParam())
	for p.peekIs(lexer.COMMA) {
		p.nextToken() // consume ','
		p.nextToken()
		params = append(params, p.parseParam())
	}
	p.expect(lexer.RPAREN)
	return params
}

func (p *Parser) parseParam() ast.Node {
	if p.curIs(lexer.SPREAD) {
		pos := p.pos()
		p.nextToken() // move to the rest parameter's identifier
		idPos := p.pos()
		id := &ast.Identifier{Name: p.curToken.Literal}
		id.Position = idPos
		rest := &ast.RestElement{Argument: id}
		rest.Position = pos
		return rest
	}
	pos := p.pos()
	id := &ast.Identifier{Name: p.curToken.Literal}
	id.Position = pos
	return id
}

// parseGroupedOrArrow disambiguates `(expr)` from `(params) => body`:
// looksLikeArrowParams scans ahead with a throwaway lexer to see whether
// '=>' follows the ')' matching the opening '(' this function is called on,
// and the tokens are then parsed once, either as an arrow function's
// parameter list or as a single grouped expression.
func (p *Parser) parseGroupedOrArrow() ast.Node {
	pos := p.pos()

	// Empty parameter list: `() => ...` is only valid as an arrow function.
	if p.peekIs(lexer.RPAREN) {
		p.nextToken() // consume ')'
		if p.peekIs(lexer.ARROW) {
			p.nextToken() // consume '=>'
			return p.parseArrowBody(pos, nil)
		}
		p.errorf("unexpected empty parentheses")
		return nil
	}

	if p.looksLikeArrowParams() {
		params := p.parseParamList()
		if !p.expect(lexer.ARROW) {
			return nil
		}
		return p.parseArrowBody(pos, params)
	}

	p.nextToken() // move into the grouped expression
	expr := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	return expr
}

// looksLikeArrowParams scans from the current '(' to its matching ')'
// without consuming any tokens (by cloning the lexer's remaining input via
// a fresh lexer positioned at the same offset), then checks whether '=>'
// immediately follows.
func (p *Parser) looksLikeArrowParams() bool {
	scan := lexer.NewLexer(p.l.RemainingFrom(p.curToken.StartPos))
	depth := 0
	for {
		t := scan.NextToken()
		switch t.Type {
		case lexer.EOF:
			return false
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			depth--
			if depth == 0 {
				next := scan.NextToken()
				return next.Type == lexer.ARROW
			}
		}
	}
}

func (p *Parser) parseArrowBody(pos errors.Position, params []ast.Node) ast.Node {
	p.nextToken() // move to body's first token
	var body *ast.BlockStatement
	if p.curIs(lexer.LBRACE) {
		body = p.parseBlockStatement()
	} else {
		// Concise body `x => expr`: wrapped in an implicit return so
		// pkg/eval only ever evaluates one function-body shape.
		exprPos := p.pos()
		expr := p.parseExpression(LOWEST)
		ret := &ast.ReturnStatement{Argument: expr}
		ret.Position = exprPos
		body = &ast.BlockStatement{Body: []ast.Node{ret}}
		body.Position = exprPos
	}
	fn := &ast.FunctionNode{NodeKind: ast.ArrowFunctionExpressionKind, Params: params, Body: body}
	fn.Position = pos
	return fn
}
