// Package parser implements a Pratt (operator-precedence) parser that
// turns pkg/lexer tokens into pkg/ast.Node trees. The prefix/infix
// parse-function-table shape and the precedence ladder follow the
// teacher's pkg/parser/parser.go, narrowed to exactly the grammar
// spec.md's node-kind list describes: no TypeScript types, classes,
// generics, template literals, or async/await.
package parser

import (
	"fmt"

	"evalkit/pkg/ast"
	"evalkit/pkg/errors"
	"evalkit/pkg/lexer"
	"evalkit/pkg/source"
)

type (
	prefixParseFn func() ast.Node
	infixParseFn  func(ast.Node) ast.Node
)

// Precedence levels, narrowed from the teacher's ladder to the operator
// set spec.md's grammar actually has (no `as`/`satisfies`, no generic
// comparison ambiguity).
const (
	_ int = iota
	LOWEST
	ASSIGNMENT  // = += -= *= /= %= &= |= ^= <<= >>= >>>=
	TERNARY     // ?:
	COALESCE    // ??
	LOGICAL_OR  // ||
	LOGICAL_AND // &&
	BITWISE_OR  // |
	BITWISE_XOR // ^
	BITWISE_AND // &
	EQUALS      // == != === !==
	LESSGREATER // < > <= >=
	SHIFT       // << >> >>>
	SUM         // + -
	PRODUCT     // * / %
	POWER       // ** (right-associative)
	PREFIX      // -x !x ~x ++x --x
	POSTFIX     // x++ x--
	CALL        // f(x)
	INDEX       // a[i]
	MEMBER      // a.b
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:          ASSIGNMENT,
	lexer.PLUS_ASSIGN:     ASSIGNMENT,
	lexer.MINUS_ASSIGN:    ASSIGNMENT,
	lexer.ASTERISK_ASSIGN: ASSIGNMENT,
	lexer.SLASH_ASSIGN:    ASSIGNMENT,
	lexer.PERCENT_ASSIGN:  ASSIGNMENT,
	lexer.SHL_ASSIGN:      ASSIGNMENT,
	lexer.SHR_ASSIGN:      ASSIGNMENT,
	lexer.USHR_ASSIGN:     ASSIGNMENT,
	lexer.AMP_ASSIGN:      ASSIGNMENT,
	lexer.PIPE_ASSIGN:     ASSIGNMENT,
	lexer.CARET_ASSIGN:    ASSIGNMENT,
	lexer.QUESTION:        TERNARY,
	lexer.COALESCE:        COALESCE,
	lexer.LOGICAL_OR:      LOGICAL_OR,
	lexer.LOGICAL_AND:     LOGICAL_AND,
	lexer.PIPE:            BITWISE_OR,
	lexer.CARET:           BITWISE_XOR,
	lexer.AMP:             BITWISE_AND,
	lexer.EQ:              EQUALS,
	lexer.NOT_EQ:          EQUALS,
	lexer.STRICT_EQ:       EQUALS,
	lexer.STRICT_NOT_EQ:   EQUALS,
	lexer.LT:              LESSGREATER,
	lexer.GT:              LESSGREATER,
	lexer.LE:              LESSGREATER,
	lexer.GE:              LESSGREATER,
	lexer.SHL:             SHIFT,
	lexer.SHR:             SHIFT,
	lexer.USHR:            SHIFT,
	lexer.PLUS:            SUM,
	lexer.MINUS:           SUM,
	lexer.ASTERISK:        PRODUCT,
	lexer.SLASH:           PRODUCT,
	lexer.PERCENT:         PRODUCT,
	lexer.EXPONENT:        POWER,
	lexer.INC:             POSTFIX,
	lexer.DEC:             POSTFIX,
	lexer.LPAREN:          CALL,
	lexer.LBRACKET:        INDEX,
	lexer.DOT:             MEMBER,
}

var assignmentOps = map[lexer.TokenType]bool{
	lexer.ASSIGN: true, lexer.PLUS_ASSIGN: true, lexer.MINUS_ASSIGN: true,
	lexer.ASTERISK_ASSIGN: true, lexer.SLASH_ASSIGN: true, lexer.PERCENT_ASSIGN: true,
	lexer.SHL_ASSIGN: true, lexer.SHR_ASSIGN: true, lexer.USHR_ASSIGN: true,
	lexer.AMP_ASSIGN: true, lexer.PIPE_ASSIGN: true, lexer.CARET_ASSIGN: true,
}

// Parser holds the single-pass parsing state: a two-token lookahead window
// (cur/peek), the accumulated errors, and the prefix/infix dispatch tables.
type Parser struct {
	l      *lexer.Lexer
	file   *source.SourceFile
	errors []errors.EvalKitError

	curToken  lexer.Token
	peekToken lexer.Token

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// New builds a Parser over l, attributing all reported positions to file.
func New(l *lexer.Lexer, file *source.SourceFile) *Parser {
	p := &Parser{l: l, file: file}

	p.prefixParseFns = make(map[lexer.TokenType]prefixParseFn)
	p.infixParseFns = make(map[lexer.TokenType]infixParseFn)

	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(lexer.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(lexer.NULL, p.parseNullLiteral)
	p.registerPrefix(lexer.UNDEFINED, p.parseUndefinedLiteral)
	p.registerPrefix(lexer.THIS, p.parseThisExpression)
	p.registerPrefix(lexer.NEW, p.parseNewExpression)
	p.registerPrefix(lexer.OF, p.parseIdentifier)
	p.registerPrefix(lexer.FUNCTION, p.parseFunctionExpression)
	p.registerPrefix(lexer.BANG, p.parsePrefixExpression)
	p.registerPrefix(lexer.MINUS, p.parsePrefixExpression)
	p.registerPrefix(lexer.PLUS, p.parsePrefixExpression)
	p.registerPrefix(lexer.TILDE, p.parsePrefixExpression)
	p.registerPrefix(lexer.INC, p.parsePrefixUpdateExpression)
	p.registerPrefix(lexer.DEC, p.parsePrefixUpdateExpression)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedOrArrow)
	p.registerPrefix(lexer.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(lexer.LBRACE, p.parseObjectLiteral)

	p.registerInfix(lexer.PLUS, p.parseBinaryExpression)
	p.registerInfix(lexer.MINUS, p.parseBinaryExpression)
	p.registerInfix(lexer.ASTERISK, p.parseBinaryExpression)
	p.registerInfix(lexer.SLASH, p.parseBinaryExpression)
	p.registerInfix(lexer.PERCENT, p.parseBinaryExpression)
	p.registerInfix(lexer.EXPONENT, p.parseBinaryExpression)
	p.registerInfix(lexer.EQ, p.parseBinaryExpression)
	p.registerInfix(lexer.NOT_EQ, p.parseBinaryExpression)
	p.registerInfix(lexer.STRICT_EQ, p.parseBinaryExpression)
	p.registerInfix(lexer.STRICT_NOT_EQ, p.parseBinaryExpression)
	p.registerInfix(lexer.LT, p.parseBinaryExpression)
	p.registerInfix(lexer.GT, p.parseBinaryExpression)
	p.registerInfix(lexer.LE, p.parseBinaryExpression)
	p.registerInfix(lexer.GE, p.parseBinaryExpression)
	p.registerInfix(lexer.AMP, p.parseBinaryExpression)
	p.registerInfix(lexer.PIPE, p.parseBinaryExpression)
	p.registerInfix(lexer.CARET, p.parseBinaryExpression)
	p.registerInfix(lexer.SHL, p.parseBinaryExpression)
	p.registerInfix(lexer.SHR, p.parseBinaryExpression)
	p.registerInfix(lexer.USHR, p.parseBinaryExpression)
	p.registerInfix(lexer.LOGICAL_AND, p.parseLogicalExpression)
	p.registerInfix(lexer.LOGICAL_OR, p.parseLogicalExpression)
	p.registerInfix(lexer.COALESCE, p.parseLogicalExpression)
	p.registerInfix(lexer.QUESTION, p.parseConditionalExpression)
	p.registerInfix(lexer.INC, p.parsePostfixUpdateExpression)
	p.registerInfix(lexer.DEC, p.parsePostfixUpdateExpression)
	p.registerInfix(lexer.LPAREN, p.parseCallExpression)
	p.registerInfix(lexer.LBRACKET, p.parseComputedMemberExpression)
	p.registerInfix(lexer.DOT, p.parseMemberExpression)
	for tok := range assignmentOps {
		p.registerInfix(tok, p.parseAssignmentExpression)
	}

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(t lexer.TokenType, fn prefixParseFn) { p.prefixParseFns[t] = fn }
func (p *Parser) registerInfix(t lexer.TokenType, fn infixParseFn)   { p.infixParseFns[t] = fn }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expect(t lexer.TokenType) bool {
	if p.peekIs(t) {
		p.nextToken()
		return true
	}
	p.errorf("expected next token to be %s, got %s", t, p.peekToken.Type)
	return false
}

func (p *Parser) pos() errors.Position {
	return errors.Position{
		Line: p.curToken.Line, Column: p.curToken.Column,
		StartPos: p.curToken.StartPos, EndPos: p.curToken.EndPos,
		Source: p.file,
	}
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, &errors.SyntaxError{
		Position: errors.Position{
			Line: p.peekToken.Line, Column: p.peekToken.Column,
			StartPos: p.peekToken.StartPos, EndPos: p.peekToken.EndPos,
			Source: p.file,
		},
		Msg: fmt.Sprintf(format, args...),
	})
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// Errors returns the accumulated syntax errors after ParseProgram.
func (p *Parser) Errors() []errors.EvalKitError { return p.errors }

// ParseProgram parses the whole token stream into a Program node.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
		p.nextToken()
	}
	return prog
}

func (p *Parser) skipSemicolon() {
	if p.peekIs(lexer.SEMICOLON) {
		p.nextToken()
	}
}
