package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `let five = 5;
const ten = 10.5;

let add = function(x, y) {
  return x + y;
};

let result = add(five, ten);
!-/*5;
5 < 10 > 5;`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{LET, "let"},
		{IDENT, "five"},
		{ASSIGN, "="},
		{NUMBER, "5"},
		{SEMICOLON, ";"},
		{CONST, "const"},
		{IDENT, "ten"},
		{ASSIGN, "="},
		{NUMBER, "10.5"},
		{SEMICOLON, ";"},
		{LET, "let"},
		{IDENT, "add"},
		{ASSIGN, "="},
		{FUNCTION, "function"},
		{LPAREN, "("},
		{IDENT, "x"},
		{COMMA, ","},
		{IDENT, "y"},
		{RPAREN, ")"},
		{LBRACE, "{"},
		{RETURN, "return"},
		{IDENT, "x"},
		{PLUS, "+"},
		{IDENT, "y"},
		{SEMICOLON, ";"},
		{RBRACE, "}"},
		{SEMICOLON, ";"},
		{LET, "let"},
		{IDENT, "result"},
		{ASSIGN, "="},
		{IDENT, "add"},
		{LPAREN, "("},
		{IDENT, "five"},
		{COMMA, ","},
		{IDENT, "ten"},
		{RPAREN, ")"},
		{SEMICOLON, ";"},
		{BANG, "!"},
		{MINUS, "-"},
		{SLASH, "/"},
		{ASTERISK, "*"},
		{NUMBER, "5"},
		{SEMICOLON, ";"},
	}

	l := NewLexer(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("token[%d] - type wrong. expected=%q, got=%q (literal %q)", i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("token[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextTokenCompoundOperators(t *testing.T) {
	input := `=== !== ?? && || += >>> >>>= **`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{STRICT_EQ, "==="},
		{STRICT_NOT_EQ, "!=="},
		{COALESCE, "??"},
		{LOGICAL_AND, "&&"},
		{LOGICAL_OR, "||"},
		{PLUS_ASSIGN, "+="},
		{USHR, ">>>"},
		{USHR_ASSIGN, ">>>="},
		{EXPONENT, "**"},
	}

	l := NewLexer(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("token[%d] - type wrong. expected=%q, got=%q (literal %q)", i, tt.expectedType, tok.Type, tok.Literal)
		}
	}
}

func TestNextTokenLineAndColumn(t *testing.T) {
	input := "let x = 1;\nlet y = 2;"
	l := NewLexer(input)

	tok := l.NextToken() // "let"
	if tok.Line != 1 {
		t.Fatalf("expected line 1, got %d", tok.Line)
	}

	for tok.Type != SEMICOLON {
		tok = l.NextToken()
	}
	tok = l.NextToken() // "let" on line 2
	if tok.Line != 2 {
		t.Fatalf("expected line 2, got %d", tok.Line)
	}
}

func TestNextTokenEOF(t *testing.T) {
	l := NewLexer("")
	tok := l.NextToken()
	if tok.Type != EOF {
		t.Fatalf("expected EOF, got %q", tok.Type)
	}
}

func TestNextTokenIllegal(t *testing.T) {
	l := NewLexer("@")
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %q", tok.Type)
	}
}
