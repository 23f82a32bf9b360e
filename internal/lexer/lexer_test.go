package lexer

import (
	"strings"
	"testing"

	"github.com/andrewesterhuizen/js-engine/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `var five = 5;
var ten = 10.5;
var hex = 0xff;

function add(x, y) {
	return x + y;
}

// a comment that is skipped entirely
var result = add(five, ten);
!5;
5 < 10 > 5;
5 <= 10 >= 5;
5 == 5;
5 === 5;
5 != 4;
5 !== 4;
true && false;
true || false;
1 & 2;
1 | 2;
x++;
x--;
x += 1;
x -= 1;
x *= 2;
x /= 2;
2 ** 8;
5 % 2;
var s = "foobar";
var s2 = 'single';
var f = (a) => a;
a.b;
a[0];
c ? 1 : 2;
var2;
typeof x;`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.KEYWORD, "var"},
		{token.IDENT, "five"},
		{token.ASSIGN, "="},
		{token.NUMBER, "5"},
		{token.SEMICOLON, ";"},
		{token.KEYWORD, "var"},
		{token.IDENT, "ten"},
		{token.ASSIGN, "="},
		{token.NUMBER, "10.5"},
		{token.SEMICOLON, ";"},
		{token.KEYWORD, "var"},
		{token.IDENT, "hex"},
		{token.ASSIGN, "="},
		{token.NUMBER, "0xff"},
		{token.SEMICOLON, ";"},
		{token.KEYWORD, "function"},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.COMMA, ","},
		{token.IDENT, "y"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.KEYWORD, "return"},
		{token.IDENT, "x"},
		{token.PLUS, "+"},
		{token.IDENT, "y"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.KEYWORD, "var"},
		{token.IDENT, "result"},
		{token.ASSIGN, "="},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.IDENT, "five"},
		{token.COMMA, ","},
		{token.IDENT, "ten"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.BANG, "!"},
		{token.NUMBER, "5"},
		{token.SEMICOLON, ";"},
		{token.NUMBER, "5"},
		{token.LT, "<"},
		{token.NUMBER, "10"},
		{token.GT, ">"},
		{token.NUMBER, "5"},
		{token.SEMICOLON, ";"},
		{token.NUMBER, "5"},
		{token.LT_EQ, "<="},
		{token.NUMBER, "10"},
		{token.GT_EQ, ">="},
		{token.NUMBER, "5"},
		{token.SEMICOLON, ";"},
		{token.NUMBER, "5"},
		{token.EQ, "=="},
		{token.NUMBER, "5"},
		{token.SEMICOLON, ";"},
		{token.NUMBER, "5"},
		{token.EQ_STRICT, "==="},
		{token.NUMBER, "5"},
		{token.SEMICOLON, ";"},
		{token.NUMBER, "5"},
		{token.NOT_EQ, "!="},
		{token.NUMBER, "4"},
		{token.SEMICOLON, ";"},
		{token.NUMBER, "5"},
		{token.NOT_EQ_STRICT, "!=="},
		{token.NUMBER, "4"},
		{token.SEMICOLON, ";"},
		{token.KEYWORD, "true"},
		{token.LOGICAL_AND, "&&"},
		{token.KEYWORD, "false"},
		{token.SEMICOLON, ";"},
		{token.KEYWORD, "true"},
		{token.LOGICAL_OR, "||"},
		{token.KEYWORD, "false"},
		{token.SEMICOLON, ";"},
		{token.NUMBER, "1"},
		{token.BITWISE_AND, "&"},
		{token.NUMBER, "2"},
		{token.SEMICOLON, ";"},
		{token.NUMBER, "1"},
		{token.BITWISE_OR, "|"},
		{token.NUMBER, "2"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "x"},
		{token.INCREMENT, "++"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "x"},
		{token.DECREMENT, "--"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "x"},
		{token.PLUS_ASSIGN, "+="},
		{token.NUMBER, "1"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "x"},
		{token.MINUS_ASSIGN, "-="},
		{token.NUMBER, "1"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "x"},
		{token.ASTERISK_ASSIGN, "*="},
		{token.NUMBER, "2"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "x"},
		{token.SLASH_ASSIGN, "/="},
		{token.NUMBER, "2"},
		{token.SEMICOLON, ";"},
		{token.NUMBER, "2"},
		{token.EXPONENT, "**"},
		{token.NUMBER, "8"},
		{token.SEMICOLON, ";"},
		{token.NUMBER, "5"},
		{token.PERCENT, "%"},
		{token.NUMBER, "2"},
		{token.SEMICOLON, ";"},
		{token.KEYWORD, "var"},
		{token.IDENT, "s"},
		{token.ASSIGN, "="},
		{token.STRING, "foobar"},
		{token.SEMICOLON, ";"},
		{token.KEYWORD, "var"},
		{token.IDENT, "s2"},
		{token.ASSIGN, "="},
		{token.STRING, "single"},
		{token.SEMICOLON, ";"},
		{token.KEYWORD, "var"},
		{token.IDENT, "f"},
		{token.ASSIGN, "="},
		{token.LPAREN, "("},
		{token.IDENT, "a"},
		{token.RPAREN, ")"},
		{token.ARROW, "=>"},
		{token.IDENT, "a"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "a"},
		{token.PERIOD, "."},
		{token.IDENT, "b"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "a"},
		{token.LBRACKET, "["},
		{token.NUMBER, "0"},
		{token.RBRACKET, "]"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "c"},
		{token.QUESTION, "?"},
		{token.NUMBER, "1"},
		{token.COLON, ":"},
		{token.NUMBER, "2"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "var2"},
		{token.SEMICOLON, ";"},
		{token.KEYWORD, "typeof"},
		{token.IDENT, "x"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	}

	tokens, err := New(input).Tokens()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}

	if len(tokens) != len(tests) {
		t.Fatalf("wrong token count. expected=%d, got=%d", len(tests), len(tokens))
	}

	for i, tt := range tests {
		tok := tokens[i]

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal %q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

// Every token's recorded position points at its first character in the
// source.
func TestTokenPositions(t *testing.T) {
	input := "var x = 1;\n  x = x + 2;\nconsole.log(x);"

	tokens, err := New(input).Tokens()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}

	lines := strings.Split(input, "\n")

	for _, tok := range tokens {
		if tok.Line < 1 {
			t.Errorf("token %q has line %d, want >= 1", tok.Literal, tok.Line)
		}
		if tok.Column < 0 {
			t.Errorf("token %q has column %d, want >= 0", tok.Literal, tok.Column)
		}

		if tok.Type == token.EOF {
			continue
		}

		line := lines[tok.Line-1]
		if !strings.HasPrefix(line[tok.Column:], tok.Literal) {
			t.Errorf("token %q not found at %d:%d (line content %q)",
				tok.Literal, tok.Line, tok.Column, line)
		}
	}
}

func TestStringPositionPointsAtQuote(t *testing.T) {
	tokens, err := New(`var s = "hi";`).Tokens()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}

	var str token.Token
	for _, tok := range tokens {
		if tok.Type == token.STRING {
			str = tok
		}
	}

	if str.Literal != "hi" {
		t.Fatalf("string literal wrong. expected=%q, got=%q", "hi", str.Literal)
	}
	if str.Column != 8 {
		t.Errorf("string column wrong. expected=8, got=%d", str.Column)
	}
}

func TestKeywordPrefixIsIdentifier(t *testing.T) {
	tests := []struct {
		input        string
		expectedType token.TokenType
	}{
		{"var2", token.IDENT},
		{"iffy", token.IDENT},
		{"returning", token.IDENT},
		{"newish", token.IDENT},
		{"var", token.KEYWORD},
		{"if", token.KEYWORD},
	}

	for _, tt := range tests {
		tokens, err := New(tt.input).Tokens()
		if err != nil {
			t.Fatalf("unexpected lex error for %q: %v", tt.input, err)
		}
		if tokens[0].Type != tt.expectedType {
			t.Errorf("%q lexed as %s, want %s", tt.input, tokens[0].Type, tt.expectedType)
		}
		if tokens[0].Literal != tt.input {
			t.Errorf("%q literal wrong, got %q", tt.input, tokens[0].Literal)
		}
	}
}

func TestLexError(t *testing.T) {
	_, err := New("var a = 1;\nvar b = @;").Tokens()
	if err == nil {
		t.Fatal("expected a lex error, got none")
	}

	lexErr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("expected *LexError, got %T", err)
	}

	if lexErr.Line != 2 {
		t.Errorf("lex error line wrong. expected=2, got=%d", lexErr.Line)
	}
	if lexErr.Column != 8 {
		t.Errorf("lex error column wrong. expected=8, got=%d", lexErr.Column)
	}
	if !strings.Contains(err.Error(), "unexpected token") {
		t.Errorf("error message wrong: %q", err.Error())
	}
}

func TestUnterminatedStringIsLexError(t *testing.T) {
	_, err := New(`var s = "oops;`).Tokens()
	if err == nil {
		t.Fatal("expected a lex error for an unterminated string")
	}
}

func TestCommentAtEOF(t *testing.T) {
	tokens, err := New("var a = 1; // trailing comment").Tokens()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	if tokens[len(tokens)-1].Type != token.EOF {
		t.Fatalf("expected EOF sentinel, got %s", tokens[len(tokens)-1].Type)
	}
}
