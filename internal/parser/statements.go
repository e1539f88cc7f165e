package parser

import (
	"github.com/scriptlang/transpiler/internal/ast"
	"github.com/scriptlang/transpiler/internal/token"
)

// parseStatement dispatches on the current token, per spec.md §4.2
// "Statement dispatch. Statement selection is driven by the first token and
// layout". PRE: p.cur is the first token of the statement.
// POST: p.cur is positioned at the token that follows the statement
// (NEWLINE, DEDENT, or EOF for block-closing statements; any of those for
// single-line ones too).
func (p *Parser) parseStatement() ast.Statement {
	if !p.enterDepth() {
		p.leaveDepth()
		return nil
	}
	defer p.leaveDepth()

	switch p.cur.Kind {
	case token.VAR:
		return p.parseVariableDeclaration(ast.BindingVar, false)
	case token.VARIP:
		return p.parseVariableDeclaration(ast.BindingVarip, false)
	case token.CONST:
		return p.parseVariableDeclaration(ast.BindingConst, false)
	case token.EXPORT:
		return p.parseExportStatement()
	case token.TYPE:
		return p.parseTypeDefinition(false)
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.SWITCH:
		return p.parseSwitchStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		tok := p.cur
		p.nextToken()
		return &ast.BreakStatement{Token: tok}
	case token.CONTINUE:
		tok := p.cur
		p.nextToken()
		return &ast.ContinueStatement{Token: tok}
	case token.IMPORT:
		return p.parseImportStatement()
	case token.LBRACK:
		return p.parseBracketLedStatement()
	case token.IDENT:
		return p.parseIdentifierLedStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExportStatement() ast.Statement {
	p.nextToken() // cur = token after `export`
	switch p.cur.Kind {
	case token.VAR:
		return p.parseVariableDeclaration(ast.BindingVar, true)
	case token.VARIP:
		return p.parseVariableDeclaration(ast.BindingVarip, true)
	case token.CONST:
		return p.parseVariableDeclaration(ast.BindingConst, true)
	case token.TYPE:
		return p.parseTypeDefinition(true)
	case token.IDENT:
		if p.peekIs(token.LPAREN) && p.looksLikeFunctionHeader() {
			return p.parseFunctionDeclaration(true)
		}
		return p.parseVariableDeclaration(ast.BindingDefault, true)
	default:
		p.addError(p.cur.Pos, "expected declaration after export", ErrUnexpectedToken)
		return p.parseExpressionStatement()
	}
}

// parseVariableDeclaration parses `name (: type)? (= | :=) expr`, optionally
// prefixed by var/varip/const (already consumed by the caller when kind is
// not BindingDefault).
func (p *Parser) parseVariableDeclaration(kind ast.BindingKind, export bool) *ast.VariableDeclaration {
	tok := p.cur
	if kind != ast.BindingDefault {
		p.nextToken() // cur = identifier after the keyword
	}

	decl := &ast.VariableDeclaration{Token: tok, Kind: kind, Export: export}

	if !p.curIs(token.IDENT) {
		p.addError(p.cur.Pos, "expected identifier in variable declaration", ErrExpectedIdent)
		return decl
	}
	decl.Left = &ast.Identifier{Token: p.cur, Name: p.cur.Literal}

	if p.peekIs(token.COLON) {
		p.nextToken() // cur = :
		p.nextToken() // cur = type name
		if ta, ok := p.parseTypeAnnotation(); ok {
			decl.Type = ta
		}
	}

	if p.peekIs(token.ASSIGN) || p.peekIs(token.DECLARE) {
		p.nextToken() // cur = operator
		p.nextToken() // cur = first token of init expr
		decl.Init = p.parseAssignment()
	}
	p.nextToken() // move past the declaration
	return decl
}

// parseBracketLedStatement handles a statement beginning with `[`: either a
// tuple-destructuring declaration `[a, b] = expr` or an array-literal
// expression statement.
func (p *Parser) parseBracketLedStatement() ast.Statement {
	startTok := p.cur
	expr := p.parseExpression() // parses the bracketed literal via parsePrimary

	if p.peekIs(token.ASSIGN) || p.peekIs(token.DECLARE) {
		tuple := AsTuple(expr)
		if tuple == nil {
			p.addError(startTok.Pos, "invalid tuple destructuring target", ErrUnexpectedToken)
			p.nextToken()
			return &ast.ExpressionStatement{Token: startTok, Expression: expr}
		}
		p.nextToken() // cur = operator
		p.nextToken() // cur = first token of init expr
		init := p.parseAssignment()
		p.nextToken()
		return &ast.VariableDeclaration{Token: startTok, Kind: ast.BindingDefault, Left: tuple, Init: init}
	}

	p.nextToken()
	return &ast.ExpressionStatement{Token: startTok, Expression: expr}
}

// parseIdentifierLedStatement distinguishes a function declaration
// (`name(params) => body`) from an assignment/declaration or a plain
// expression statement.
func (p *Parser) parseIdentifierLedStatement() ast.Statement {
	if p.peekIs(token.LPAREN) && p.looksLikeFunctionHeader() {
		return p.parseFunctionDeclaration(false)
	}

	startTok := p.cur

	// `name: type = expr` — typed bare declaration.
	if p.peekIs(token.COLON) {
		return p.parseVariableDeclaration(ast.BindingDefault, false)
	}

	// `name = expr` / `name := expr` — bare declaration.
	if p.peekIs(token.ASSIGN) || p.peekIs(token.DECLARE) {
		return p.parseVariableDeclaration(ast.BindingDefault, false)
	}

	// Compound assignment (`+=`, `-=`, `*=`, `/=`, `%=`) reassigns an
	// existing binding rather than declaring one; parsed as a plain
	// expression statement so it comes out as an AssignmentExpression.
	expr := p.parseExpression()
	p.nextToken()
	return &ast.ExpressionStatement{Token: startTok, Expression: expr}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.cur
	expr := p.parseExpression()
	p.nextToken()
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

// looksLikeFunctionHeader reports whether, starting at the current IDENT
// whose peek is `(`, the matching `)` is followed by `=>` — the marker of a
// function declaration rather than a call expression. It only reads ahead
// (via the lexer's buffered Peek) and never mutates parser state.
func (p *Parser) looksLikeFunctionHeader() bool {
	depth := 0
	for i := 1; i < 4096; i++ {
		tok := p.peekAt(i)
		switch tok.Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				return p.peekAt(i + 1).Kind == token.ARROW
			}
		case token.EOF:
			return false
		}
	}
	return false
}

// peekAt returns the token n positions ahead of p.cur (peekAt(0) == p.cur,
// peekAt(1) == p.peek, peekAt(n>=2) reaches further into the lexer's
// buffered lookahead).
func (p *Parser) peekAt(n int) token.Token {
	if n <= 0 {
		return p.cur
	}
	if n == 1 {
		return p.peek
	}
	return p.l.Peek(n - 2)
}

func (p *Parser) parseFunctionDeclaration(export bool) *ast.FunctionDeclaration {
	tok := p.cur
	name := p.cur.Literal

	var generics []string
	if p.peekIs(token.LT) {
		p.nextToken() // cur = <
		for {
			if !p.expectPeek(token.IDENT, ErrExpectedIdent) {
				break
			}
			generics = append(generics, p.cur.Literal)
			if p.peekIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
		p.expectPeek(token.GT, ErrUnexpectedToken)
	}

	if !p.expectPeek(token.LPAREN, ErrUnexpectedToken) {
		return &ast.FunctionDeclaration{Token: tok, Name: name, Export: export}
	}
	params := p.parseParamList()

	if !p.expectPeek(token.ARROW, ErrMissingArrow) {
		return &ast.FunctionDeclaration{Token: tok, Name: name, Params: params, Generics: generics, Export: export}
	}
	p.nextToken() // cur = first token after =>

	var body ast.Statement
	if p.curIs(token.NEWLINE) {
		p.nextToken() // cur = INDENT (expected)
		if p.curIs(token.INDENT) {
			body = p.parseBlock()
		} else {
			p.addError(p.cur.Pos, "expected indented function body", ErrBadIndent)
			body = &ast.BlockStatement{Token: p.cur}
		}
	} else {
		exprTok := p.cur
		expr := p.parseExpression()
		body = &ast.ExpressionStatement{Token: exprTok, Expression: expr}
		p.nextToken()
	}

	return &ast.FunctionDeclaration{Token: tok, Name: name, Generics: generics, Params: params, Body: body, Export: export}
}

// parseParamList parses `(name (: type)? (= default)?, ...)`.
// PRE: p.cur == LPAREN. POST: p.cur == RPAREN.
func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	if p.peekIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	for {
		if !p.expectPeek(token.IDENT, ErrExpectedIdent) {
			break
		}
		param := &ast.Param{Name: p.cur.Literal}
		if p.peekIs(token.COLON) {
			p.nextToken() // cur = :
			p.nextToken() // cur = type name
			if ta, ok := p.parseTypeAnnotation(); ok {
				param.Type = ta
			}
		}
		if p.peekIs(token.ASSIGN) {
			p.nextToken() // cur = =
			p.nextToken() // cur = first token of default expr
			param.Default = p.parseAssignment()
		}
		params = append(params, param)
		if p.peekIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	p.expectPeek(token.RPAREN, ErrMissingRParen)
	return params
}

func (p *Parser) parseTypeDefinition(export bool) *ast.TypeDefinition {
	tok := p.cur
	def := &ast.TypeDefinition{Token: tok, Export: export}
	if !p.expectPeek(token.IDENT, ErrExpectedIdent) {
		p.nextToken()
		return def
	}
	def.Name = p.cur.Literal

	if !p.expectPeek(token.NEWLINE, ErrUnexpectedToken) {
		p.nextToken()
		return def
	}
	p.nextToken() // cur = INDENT (expected)
	if !p.curIs(token.INDENT) {
		p.addError(p.cur.Pos, "expected indented type body", ErrBadIndent)
		return def
	}
	p.nextToken() // cur = first field token
	p.skipNewlines()
	for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
		if !p.curIs(token.IDENT) {
			p.addError(p.cur.Pos, "expected field name", ErrExpectedIdent)
			p.nextToken()
			p.skipNewlines()
			continue
		}
		field := &ast.Field{Name: p.cur.Literal}
		if p.peekIs(token.COLON) {
			p.nextToken() // cur = :
			p.nextToken() // cur = type name
			if ta, ok := p.parseTypeAnnotation(); ok {
				field.Type = ta
			}
		}
		if p.peekIs(token.ASSIGN) {
			p.nextToken() // cur = =
			p.nextToken() // cur = first token of default expr
			field.Default = p.parseAssignment()
		}
		def.Fields = append(def.Fields, field)
		p.nextToken()
		p.skipNewlines()
	}
	if p.curIs(token.DEDENT) {
		p.nextToken()
	}
	return def
}

// parseBlock parses a sequence of statements between an INDENT and its
// matching DEDENT. PRE: p.cur == INDENT. POST: p.cur is the token that
// follows the DEDENT.
func (p *Parser) parseBlock() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.cur}
	p.nextToken() // move past INDENT
	p.skipNewlines()
	for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.skipNewlines()
	}
	if p.curIs(token.DEDENT) {
		p.nextToken()
	}
	return block
}

// parseBlockOrSingleBody parses either an indented block or a single
// same-line statement, per spec.md §4.2's "single-line if/for/while bodies
// are admitted". PRE: p.cur is positioned right after the statement header
// (NEWLINE for a block form, or the first token of an inline statement).
func (p *Parser) parseBlockOrSingleBody() ast.Statement {
	if p.curIs(token.NEWLINE) {
		p.nextToken() // cur = INDENT (expected)
		if p.curIs(token.INDENT) {
			return p.parseBlock()
		}
		p.addError(p.cur.Pos, "expected indented block", ErrBadIndent)
		return &ast.BlockStatement{Token: p.cur}
	}
	return p.parseStatement()
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	tok := p.cur
	p.nextToken() // cur = first token of condition
	cond := p.parseExpression()
	p.nextToken() // move past condition

	stmt := &ast.IfStatement{Token: tok, Condition: cond}
	stmt.Then = p.parseBlockOrSingleBody()

	if p.curIs(token.ELSE) {
		p.nextToken() // move past else
		if p.curIs(token.IF) {
			stmt.Else = p.parseIfStatement()
		} else {
			stmt.Else = p.parseBlockOrSingleBody()
		}
	}
	return stmt
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	tok := p.cur
	p.nextToken() // cur = first token of condition
	cond := p.parseExpression()
	p.nextToken()
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: p.parseBlockOrSingleBody()}
}

// parseForStatement handles both `for x = start to end` and
// `for x in expr` / `for [i, x] in expr`.
func (p *Parser) parseForStatement() *ast.ForStatement {
	tok := p.cur
	stmt := &ast.ForStatement{Token: tok}

	if p.peekIs(token.LBRACK) {
		p.nextToken() // cur = [
		tupleExpr := p.parseArrayOrTupleLiteral()
		tuple := AsTuple(tupleExpr)
		if tuple == nil || len(tuple.Elements) != 2 {
			p.addError(tok.Pos, "for-in tuple destructuring requires exactly [index, value]", ErrUnexpectedToken)
		} else if names, ok := identifierNames(tuple.Elements); ok {
			stmt.IndexVar = names[0]
			stmt.ValueVar = names[1]
		}
		if !p.expectPeek(token.IN, ErrUnexpectedToken) {
			return stmt
		}
		p.nextToken() // cur = first token of iterable
		stmt.Iterable = p.parseExpression()
		p.nextToken()
		stmt.Body = p.parseBlockOrSingleBody()
		return stmt
	}

	if !p.expectPeek(token.IDENT, ErrExpectedIdent) {
		return stmt
	}
	name := p.cur.Literal

	if p.peekIs(token.IN) {
		p.nextToken() // cur = in
		p.nextToken() // cur = first token of iterable
		stmt.ValueVar = name
		stmt.Iterable = p.parseExpression()
		p.nextToken()
		stmt.Body = p.parseBlockOrSingleBody()
		return stmt
	}

	stmt.IsToForm = true
	stmt.Var = name
	if !p.expectPeek(token.ASSIGN, ErrUnexpectedToken) {
		return stmt
	}
	p.nextToken() // cur = first token of start expr
	stmt.Start = p.parseExpression()
	if !p.expectPeek(token.TO, ErrUnexpectedToken) {
		return stmt
	}
	p.nextToken() // cur = first token of end expr
	stmt.End = p.parseExpression()
	p.nextToken()
	stmt.Body = p.parseBlockOrSingleBody()
	return stmt
}

// parseSwitchStatement handles both the discriminant and discriminant-less
// forms (spec.md §4.2). Each case is `test => expr-or-block`; the final
// bare `=>` (no test) is the default arm.
func (p *Parser) parseSwitchStatement() *ast.SwitchStatement {
	tok := p.cur
	stmt := &ast.SwitchStatement{Token: tok}

	p.nextToken() // cur = token after `switch`
	if !p.curIs(token.NEWLINE) {
		stmt.Discriminant = p.parseExpression()
		p.nextToken()
	}

	if !p.curIs(token.NEWLINE) {
		p.addError(p.cur.Pos, "expected newline before switch body", ErrUnexpectedToken)
		return stmt
	}
	p.nextToken() // cur = INDENT (expected)
	if !p.curIs(token.INDENT) {
		p.addError(p.cur.Pos, "expected indented switch body", ErrBadIndent)
		return stmt
	}
	p.nextToken() // cur = first token of first case
	p.skipNewlines()

	for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
		c := &ast.SwitchCase{}
		if !p.curIs(token.ARROW) {
			c.Test = p.parseExpression()
			p.nextToken() // cur = =>
		}
		if !p.curIs(token.ARROW) {
			p.addError(p.cur.Pos, "expected => in switch case", ErrMissingArrow)
			p.nextToken()
			p.skipNewlines()
			continue
		}
		p.nextToken() // cur = first token after =>
		c.Consequent = p.parseBlockOrSingleBody()
		stmt.Cases = append(stmt.Cases, c)
		p.skipNewlines()
	}
	if p.curIs(token.DEDENT) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	tok := p.cur
	if p.peekIs(token.NEWLINE) || p.peekIs(token.DEDENT) || p.peekIs(token.EOF) {
		p.nextToken()
		return &ast.ReturnStatement{Token: tok}
	}
	p.nextToken() // cur = first token of return value
	value := p.parseExpression()
	p.nextToken()
	return &ast.ReturnStatement{Token: tok, Value: value}
}

func (p *Parser) parseImportStatement() *ast.ImportStatement {
	tok := p.cur
	stmt := &ast.ImportStatement{Token: tok}
	if !p.expectPeek(token.STRING, ErrUnexpectedToken) {
		p.nextToken()
		return stmt
	}
	stmt.Path = p.cur.Literal
	if p.peekIs(token.AS) {
		p.nextToken() // cur = as
		if p.expectPeek(token.IDENT, ErrExpectedIdent) {
			stmt.Alias = p.cur.Literal
		}
	}
	p.nextToken()
	return stmt
}
