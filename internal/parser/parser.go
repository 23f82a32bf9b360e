package parser

import (
	"fmt"
	"strconv"

	"github.com/andrewesterhuizen/js-engine/internal/ast"
	"github.com/andrewesterhuizen/js-engine/internal/lexer"
	"github.com/andrewesterhuizen/js-engine/internal/token"
)

type Parser struct {
	tokens []token.Token
	pos    int
	errors []string

	curToken  token.Token
	peekToken token.Token
}

func New(tokens []token.Token) *Parser {
	p := &Parser{
		tokens: tokens,
		errors: []string{},
	}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

// Parse lexes and parses source in one step.
func Parse(source string) (*ast.Program, []string) {
	tokens, err := lexer.New(source).Tokens()
	if err != nil {
		return nil, []string{err.Error()}
	}

	p := New(tokens)
	program := p.ParseProgram()
	return program, p.Errors()
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else if len(p.tokens) > 0 {
		p.peekToken = p.tokens[len(p.tokens)-1]
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) curKeywordIs(keyword string) bool {
	return p.curToken.Type == token.KEYWORD && p.curToken.Literal == keyword
}

func (p *Parser) peekKeywordIs(keyword string) bool {
	return p.peekToken.Type == token.KEYWORD && p.peekToken.Literal == keyword
}

func (p *Parser) addError(message string, args ...interface{}) {
	m := fmt.Sprintf(message, args...)
	p.errors = append(p.errors, fmt.Sprintf("[%3d:%2d] %s", p.curToken.Line, p.curToken.Column, m))
}

func (p *Parser) peekError(t token.TokenType) {
	p.addError("expected next token to be %s, got %s instead", t, p.peekToken.Type)
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	program.Statements = []ast.Statement{}

	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}

// Every parse function leaves curToken on the last token of its production;
// callers advance past it.
func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.curKeywordIs("var"), p.curKeywordIs("let"), p.curKeywordIs("const"):
		return p.parseVariableDeclarationStatement()
	case p.curKeywordIs("if"):
		return p.parseIfStatement()
	case p.curKeywordIs("while"):
		return p.parseWhileStatement()
	case p.curKeywordIs("for"):
		return p.parseForStatement()
	case p.curKeywordIs("function"):
		return p.parseFunctionDeclarationStatement()
	case p.curKeywordIs("return"):
		return p.parseReturnStatement()
	case p.curKeywordIs("throw"):
		return p.parseThrowStatement()
	case p.curKeywordIs("try"):
		return p.parseTryCatchStatement()
	case p.curTokenIs(token.LBRACE):
		return p.parseBlockStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVariableDeclarationStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseVariableDeclaration()
	if stmt.Expression == nil {
		return nil
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parseVariableDeclaration() ast.Expression {
	decl := &ast.VariableDeclaration{Token: p.curToken, Kind: p.curToken.Literal}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Names = append(decl.Names, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		decl.Names = append(decl.Names, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})
	}

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		decl.Value = p.parseExpression()
	}

	return decl
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Test = p.parseExpression()

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Consequent = p.parseStatement()

	if p.peekKeywordIs("else") {
		p.nextToken()
		p.nextToken()
		stmt.Alternative = p.parseStatement()
	}

	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Test = p.parseExpression()

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Body = p.parseStatement()

	return stmt
}

func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Init = p.parseExpression()

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}

	p.nextToken()
	stmt.Test = p.parseExpression()

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}

	p.nextToken()
	stmt.Update = p.parseExpression()

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Body = p.parseStatement()

	return stmt
}

func (p *Parser) parseFunctionDeclarationStatement() ast.Statement {
	stmt := &ast.FunctionDeclarationStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	stmt.Parameters = p.parseFunctionParameters()

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()

	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		return stmt
	}

	p.nextToken()
	stmt.ReturnValue = p.parseExpression()

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parseThrowStatement() ast.Statement {
	stmt := &ast.ThrowStatement{Token: p.curToken}

	p.nextToken()
	stmt.Value = p.parseExpression()

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parseTryCatchStatement() ast.Statement {
	stmt := &ast.TryCatchStatement{Token: p.curToken}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.TryBlock = p.parseBlockStatement()

	if !p.peekKeywordIs("catch") {
		p.addError("expected 'catch' after try block, got %s instead", p.peekToken.Type)
		return nil
	}
	p.nextToken()

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.CatchParam = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.CatchBlock = p.parseBlockStatement()

	return stmt
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	block.Statements = []ast.Statement{}

	p.nextToken()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	return block
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}

	stmt.Expression = p.parseExpression()
	if stmt.Expression == nil {
		return nil
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

// parseExpression parses a primary expression and folds suffixes onto it.
// Binary operators deliberately consume the entire remaining expression, so
// chains parse right-associatively with equal precedence; grouping is forced
// with parentheses.
func (p *Parser) parseExpression() ast.Expression {
	left := p.parsePrimaryExpression()
	if left == nil {
		return nil
	}

	for {
		switch {
		case p.peekTokenIs(token.PERIOD):
			p.nextToken()
			operator := p.curToken
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			left = &ast.MemberExpression{
				Token:    operator,
				Object:   left,
				Property: &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal},
			}

		case p.peekTokenIs(token.LBRACKET):
			p.nextToken()
			operator := p.curToken
			p.nextToken()
			index := p.parseExpression()
			if !p.expectPeek(token.RBRACKET) {
				return nil
			}
			left = &ast.MemberExpression{
				Token:    operator,
				Object:   left,
				Property: index,
				Computed: true,
			}

		case p.peekTokenIs(token.LPAREN):
			p.nextToken()
			call := &ast.CallExpression{Token: p.curToken, Callee: left}
			call.Arguments = p.parseExpressionList(token.RPAREN)
			left = call

		case p.peekTokenIs(token.INCREMENT), p.peekTokenIs(token.DECREMENT):
			p.nextToken()
			op, _ := ast.TokenTypeToOperator(p.curToken.Type)
			left = &ast.UpdateExpression{
				Token:    p.curToken,
				Operator: op,
				Operand:  left,
			}

		case p.peekTokenIs(token.QUESTION):
			p.nextToken()
			ternary := &ast.TernaryExpression{Token: p.curToken, Test: left}
			p.nextToken()
			ternary.Consequent = p.parseExpression()
			if !p.expectPeek(token.COLON) {
				return nil
			}
			p.nextToken()
			ternary.Alternative = p.parseExpression()
			left = ternary

		case ast.TokenTypeIsAssignmentOperator(p.peekToken.Type):
			p.nextToken()
			op, _ := ast.TokenTypeToOperator(p.curToken.Type)
			assign := &ast.AssignmentExpression{
				Token:    p.curToken,
				Operator: op,
				Target:   left,
			}
			p.nextToken()
			assign.Value = p.parseExpression()
			left = assign

		case ast.TokenTypeIsBinaryOperator(p.peekToken.Type):
			p.nextToken()
			op, _ := ast.TokenTypeToOperator(p.curToken.Type)
			binary := &ast.BinaryExpression{
				Token:    p.curToken,
				Left:     left,
				Operator: op,
			}
			p.nextToken()
			binary.Right = p.parseExpression()
			left = binary

		default:
			return left
		}
	}
}

// parseUnaryOperand parses a primary expression plus member, index, and call
// suffixes, but no binary operators. Unary operators bind tighter than
// binary ones, so `typeof x === "string"` tests the type of x.
func (p *Parser) parseUnaryOperand() ast.Expression {
	operand := p.parsePrimaryExpression()
	if operand == nil {
		return nil
	}

	for {
		switch {
		case p.peekTokenIs(token.PERIOD):
			p.nextToken()
			operator := p.curToken
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			operand = &ast.MemberExpression{
				Token:    operator,
				Object:   operand,
				Property: &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal},
			}

		case p.peekTokenIs(token.LBRACKET):
			p.nextToken()
			operator := p.curToken
			p.nextToken()
			index := p.parseExpression()
			if !p.expectPeek(token.RBRACKET) {
				return nil
			}
			operand = &ast.MemberExpression{
				Token:    operator,
				Object:   operand,
				Property: index,
				Computed: true,
			}

		case p.peekTokenIs(token.LPAREN):
			p.nextToken()
			call := &ast.CallExpression{Token: p.curToken, Callee: operand}
			call.Arguments = p.parseExpressionList(token.RPAREN)
			operand = call

		default:
			return operand
		}
	}
}

func (p *Parser) parsePrimaryExpression() ast.Expression {
	switch p.curToken.Type {
	case token.NUMBER:
		return p.parseNumberLiteral()
	case token.STRING:
		return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
	case token.IDENT:
		if p.peekTokenIs(token.ARROW) {
			return p.parseSingleParamArrowFunction()
		}
		return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	case token.LPAREN:
		if p.arrowFunctionAhead() {
			return p.parseArrowFunction()
		}
		return p.parseGroupedExpression()
	case token.LBRACKET:
		array := &ast.ArrayLiteral{Token: p.curToken}
		array.Elements = p.parseExpressionList(token.RBRACKET)
		return array
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.BANG:
		expr := &ast.UnaryExpression{Token: p.curToken, Operator: ast.OperatorNot}
		p.nextToken()
		expr.Operand = p.parseUnaryOperand()
		return expr
	case token.MINUS:
		expr := &ast.UnaryExpression{Token: p.curToken, Operator: ast.OperatorSubtract}
		p.nextToken()
		expr.Operand = p.parseUnaryOperand()
		return expr
	case token.INCREMENT, token.DECREMENT:
		op, _ := ast.TokenTypeToOperator(p.curToken.Type)
		expr := &ast.UpdateExpression{Token: p.curToken, Operator: op, Prefix: true}
		p.nextToken()
		expr.Operand = p.parseUnaryOperand()
		return expr
	case token.KEYWORD:
		return p.parseKeywordExpression()
	}

	p.addError("unexpected token %q", p.curToken.Literal)
	return nil
}

func (p *Parser) parseKeywordExpression() ast.Expression {
	switch p.curToken.Literal {
	case "true", "false":
		return &ast.BooleanLiteral{Token: p.curToken, Value: p.curToken.Literal == "true"}
	case "null":
		return &ast.NullLiteral{Token: p.curToken}
	case "this":
		return &ast.ThisExpression{Token: p.curToken}
	case "function":
		return p.parseFunctionLiteral()
	case "new":
		return p.parseNewExpression()
	case "typeof":
		expr := &ast.UnaryExpression{Token: p.curToken, Operator: ast.OperatorTypeof}
		p.nextToken()
		expr.Operand = p.parseUnaryOperand()
		return expr
	case "var", "let", "const":
		return p.parseVariableDeclaration()
	}

	p.addError("unexpected keyword %q", p.curToken.Literal)
	return nil
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	lit := &ast.NumberLiteral{Token: p.curToken}

	text := p.curToken.Literal
	if len(text) > 1 && (text[1] == 'x' || text[1] == 'X') {
		value, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			p.addError("could not parse %q as number", text)
			return nil
		}
		lit.Value = float64(value)
		return lit
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.addError("could not parse %q as number", text)
		return nil
	}

	lit.Value = value
	return lit
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()

	exp := p.parseExpression()

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return exp
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	object := &ast.ObjectLiteral{Token: p.curToken}

	for !p.peekTokenIs(token.RBRACE) {
		p.nextToken()

		var key string
		switch p.curToken.Type {
		case token.IDENT, token.STRING, token.NUMBER, token.KEYWORD:
			key = p.curToken.Literal
		default:
			p.addError("unexpected token %q as object key", p.curToken.Literal)
			return nil
		}

		if !p.expectPeek(token.COLON) {
			return nil
		}

		p.nextToken()
		value := p.parseExpression()

		object.Properties = append(object.Properties, ast.ObjectProperty{Key: key, Value: value})

		if !p.peekTokenIs(token.RBRACE) && !p.expectPeek(token.COMMA) {
			return nil
		}
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}

	return object
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	lit := &ast.FunctionLiteral{Token: p.curToken}

	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		lit.Name = p.curToken.Literal
	}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	lit.Parameters = p.parseFunctionParameters()

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	lit.Body = p.parseBlockStatement()

	return lit
}

func (p *Parser) parseNewExpression() ast.Expression {
	expr := &ast.NewExpression{Token: p.curToken}

	p.nextToken()
	callee := p.parsePrimaryExpression()

	// fold member access so `new a.b.C(...)` resolves the constructor
	for p.peekTokenIs(token.PERIOD) {
		p.nextToken()
		operator := p.curToken
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		callee = &ast.MemberExpression{
			Token:    operator,
			Object:   callee,
			Property: &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal},
		}
	}
	expr.Callee = callee

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	expr.Arguments = p.parseExpressionList(token.RPAREN)

	return expr
}

// arrowFunctionAhead scans from the current '(' to its matching ')' without
// consuming, and reports whether the token after it is '=>'.
func (p *Parser) arrowFunctionAhead() bool {
	// pos is the index after peekToken; curToken is '(' so the scan starts
	// at peekToken.
	depth := 1
	i := p.pos - 1
	for i < len(p.tokens) {
		switch p.tokens[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				return i+1 < len(p.tokens) && p.tokens[i+1].Type == token.ARROW
			}
		case token.EOF:
			return false
		}
		i++
	}
	return false
}

func (p *Parser) parseArrowFunction() ast.Expression {
	// curToken is '('
	params := p.parseFunctionParameters()

	if !p.expectPeek(token.ARROW) {
		return nil
	}
	arrow := &ast.ArrowFunctionLiteral{Token: p.curToken, Parameters: params}

	p.nextToken()
	if p.curTokenIs(token.LBRACE) {
		arrow.Body = p.parseBlockStatement()
	} else {
		arrow.Body = p.parseExpression()
	}

	return arrow
}

func (p *Parser) parseSingleParamArrowFunction() ast.Expression {
	param := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	p.nextToken()
	arrow := &ast.ArrowFunctionLiteral{Token: p.curToken, Parameters: []*ast.Identifier{param}}

	p.nextToken()
	if p.curTokenIs(token.LBRACE) {
		arrow.Body = p.parseBlockStatement()
	} else {
		arrow.Body = p.parseExpression()
	}

	return arrow
}

func (p *Parser) parseFunctionParameters() []*ast.Identifier {
	parameters := []*ast.Identifier{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return parameters
	}

	p.nextToken()
	parameters = append(parameters, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		parameters = append(parameters, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return parameters
}

func (p *Parser) parseExpressionList(end token.TokenType) []ast.Expression {
	list := []ast.Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	list = append(list, p.parseExpression())

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression())
	}

	if !p.expectPeek(end) {
		return nil
	}

	return list
}
