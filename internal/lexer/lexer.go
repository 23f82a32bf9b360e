package lexer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/andrewesterhuizen/js-engine/internal/token"
)

// LexError reports the position of the first input the pattern list could not
// match. Lexeme holds the offending rest-of-line prefix.
type LexError struct {
	Line   int
	Column int
	Lexeme string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected token %q at %d:%d", e.Lexeme, e.Line, e.Column)
}

type pattern struct {
	re        *regexp.Regexp
	tokenType token.TokenType
	// noWordAfter rejects the match when the next character is a word
	// character, so `var2` lexes as an identifier and not `var` + `2`.
	noWordAfter bool
}

const keywordAlternation = "break|case|catch|class|const|continue|debugger|" +
	"default|delete|do|else|export|extends|false|finally|for|function|if|" +
	"import|instanceof|in|let|new|null|return|super|switch|this|throw|true|" +
	"try|typeof|var|void|while|with|yield"

// patterns is scanned in order and the first match at the cursor wins. The
// ordering encodes longest-match-first: `=>` and `===` before `==` before
// `=`, `++` and `+=` before `+`, `&&` before `&`, and so on.
var patterns = []pattern{
	{re: regexp.MustCompile(`^(` + keywordAlternation + `)`), tokenType: token.KEYWORD, noWordAfter: true},
	{re: regexp.MustCompile(`^[_$A-Za-z][_$A-Za-z0-9]*`), tokenType: token.IDENT},
	{re: regexp.MustCompile(`^"[^"]*"`), tokenType: token.STRING},
	{re: regexp.MustCompile(`^'[^']*'`), tokenType: token.STRING},
	{re: regexp.MustCompile(`^0[xX][0-9a-fA-F]+`), tokenType: token.NUMBER},
	{re: regexp.MustCompile(`^\d[.\d]*`), tokenType: token.NUMBER},
	{re: regexp.MustCompile(`^=>`), tokenType: token.ARROW},
	{re: regexp.MustCompile(`^===`), tokenType: token.EQ_STRICT},
	{re: regexp.MustCompile(`^==`), tokenType: token.EQ},
	{re: regexp.MustCompile(`^=`), tokenType: token.ASSIGN},
	{re: regexp.MustCompile(`^>=`), tokenType: token.GT_EQ},
	{re: regexp.MustCompile(`^>`), tokenType: token.GT},
	{re: regexp.MustCompile(`^<=`), tokenType: token.LT_EQ},
	{re: regexp.MustCompile(`^<`), tokenType: token.LT},
	{re: regexp.MustCompile(`^&&`), tokenType: token.LOGICAL_AND},
	{re: regexp.MustCompile(`^&`), tokenType: token.BITWISE_AND},
	{re: regexp.MustCompile(`^\|\|`), tokenType: token.LOGICAL_OR},
	{re: regexp.MustCompile(`^\|`), tokenType: token.BITWISE_OR},
	{re: regexp.MustCompile(`^!==`), tokenType: token.NOT_EQ_STRICT},
	{re: regexp.MustCompile(`^!=`), tokenType: token.NOT_EQ},
	{re: regexp.MustCompile(`^!`), tokenType: token.BANG},
	{re: regexp.MustCompile(`^\+=`), tokenType: token.PLUS_ASSIGN},
	{re: regexp.MustCompile(`^\+\+`), tokenType: token.INCREMENT},
	{re: regexp.MustCompile(`^\+`), tokenType: token.PLUS},
	{re: regexp.MustCompile(`^-=`), tokenType: token.MINUS_ASSIGN},
	{re: regexp.MustCompile(`^--`), tokenType: token.DECREMENT},
	{re: regexp.MustCompile(`^-`), tokenType: token.MINUS},
	{re: regexp.MustCompile(`^;`), tokenType: token.SEMICOLON},
	{re: regexp.MustCompile(`^:`), tokenType: token.COLON},
	{re: regexp.MustCompile(`^,`), tokenType: token.COMMA},
	{re: regexp.MustCompile(`^\*=`), tokenType: token.ASTERISK_ASSIGN},
	{re: regexp.MustCompile(`^\*\*`), tokenType: token.EXPONENT},
	{re: regexp.MustCompile(`^\*`), tokenType: token.ASTERISK},
	{re: regexp.MustCompile(`^/=`), tokenType: token.SLASH_ASSIGN},
	{re: regexp.MustCompile(`^/`), tokenType: token.SLASH},
	{re: regexp.MustCompile(`^%`), tokenType: token.PERCENT},
	{re: regexp.MustCompile(`^\(`), tokenType: token.LPAREN},
	{re: regexp.MustCompile(`^\)`), tokenType: token.RPAREN},
	{re: regexp.MustCompile(`^\{`), tokenType: token.LBRACE},
	{re: regexp.MustCompile(`^\}`), tokenType: token.RBRACE},
	{re: regexp.MustCompile(`^\[`), tokenType: token.LBRACKET},
	{re: regexp.MustCompile(`^\]`), tokenType: token.RBRACKET},
	{re: regexp.MustCompile(`^\.`), tokenType: token.PERIOD},
	{re: regexp.MustCompile(`^\?`), tokenType: token.QUESTION},
}

type Lexer struct {
	source string
	index  int
	line   int
	column int
	tokens []token.Token
}

func New(source string) *Lexer {
	return &Lexer{source: source, line: 1, column: 0}
}

// Tokens scans the whole input and returns the token sequence terminated by
// an EOF sentinel, or a LexError when no pattern matches at the cursor.
func (l *Lexer) Tokens() ([]token.Token, error) {
	for l.index < len(l.source) {
		if err := l.next(); err != nil {
			return nil, err
		}
	}

	l.emit(token.EOF, "")
	return l.tokens, nil
}

func (l *Lexer) next() error {
	l.skipWhitespace()
	if l.index >= len(l.source) {
		return nil
	}

	rest := l.restOfLine()

	if strings.HasPrefix(rest, "//") {
		l.index += len(rest)
		l.column += len(rest)
		return nil
	}

	for _, p := range patterns {
		match := p.re.FindString(rest)
		if match == "" {
			continue
		}
		if p.noWordAfter && l.wordCharAt(l.index+len(match)) {
			continue
		}

		literal := match
		if p.tokenType == token.STRING {
			literal = match[1 : len(match)-1]
		}

		l.emit(p.tokenType, literal)
		l.index += len(match)
		l.column += len(match)
		return nil
	}

	return &LexError{Line: l.line, Column: l.column, Lexeme: rest}
}

func (l *Lexer) skipWhitespace() {
	for l.index < len(l.source) {
		switch l.source[l.index] {
		case ' ', '\t', '\r':
			l.column++
		case '\n':
			l.line++
			l.column = 0
		default:
			return
		}
		l.index++
	}
}

func (l *Lexer) restOfLine() string {
	end := strings.IndexByte(l.source[l.index:], '\n')
	if end == -1 {
		return l.source[l.index:]
	}
	return l.source[l.index : l.index+end]
}

func (l *Lexer) wordCharAt(i int) bool {
	if i >= len(l.source) {
		return false
	}
	c := l.source[i]
	return c == '_' || c == '$' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}

func (l *Lexer) emit(tokenType token.TokenType, literal string) {
	l.tokens = append(l.tokens, token.Token{
		Type:    tokenType,
		Literal: literal,
		Line:    l.line,
		Column:  l.column,
	})
}
