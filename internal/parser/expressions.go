package parser

import (
	"strconv"

	"github.com/scriptlang/transpiler/internal/ast"
	"github.com/scriptlang/transpiler/internal/token"
)

// assignOps is the set of token kinds that can introduce an
// AssignmentExpression at the lowest expression precedence.
var assignOps = map[token.Kind]bool{
	token.ASSIGN:     true,
	token.DECLARE:    true,
	token.PLUS_EQ:    true,
	token.MINUS_EQ:   true,
	token.STAR_EQ:    true,
	token.SLASH_EQ:   true,
	token.PERCENT_EQ: true,
}

// parseExpression is the entry point of the precedence chain described in
// spec.md §4.2 (low to high): assignment, ternary, logical-or, logical-and,
// equality, comparison, additive, multiplicative, unary, call-or-member.
// PRE: p.cur is the first token of the expression.
// POST: p.cur is the last token of the expression.
func (p *Parser) parseExpression() ast.Expression {
	if !p.enterDepth() {
		p.leaveDepth()
		return &ast.Identifier{Token: p.cur, Name: p.cur.Literal}
	}
	defer p.leaveDepth()
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expression {
	left := p.parseTernary()
	if assignOps[p.peek.Kind] {
		opTok := p.peek
		p.nextToken() // cur = operator
		p.nextToken() // cur = first token of RHS
		right := p.parseAssignment()
		return &ast.AssignmentExpression{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseTernary() ast.Expression {
	cond := p.parseLogicalOr()
	if p.peekIs(token.QUESTION) {
		qTok := p.peek
		p.nextToken() // cur = ?
		p.nextToken() // cur = first token of then-branch
		thenExpr := p.parseTernary()
		if !p.expectPeek(token.COLON, ErrMissingColon) {
			return &ast.ConditionalExpression{Token: qTok, Cond: cond, Then: thenExpr}
		}
		p.nextToken() // cur = first token of else-branch
		elseExpr := p.parseTernary()
		return &ast.ConditionalExpression{Token: qTok, Cond: cond, Then: thenExpr, Else: elseExpr}
	}
	return cond
}

func (p *Parser) parseLogicalOr() ast.Expression {
	left := p.parseLogicalAnd()
	for p.peekIs(token.OR) {
		opTok := p.peek
		p.nextToken()
		p.nextToken()
		right := p.parseLogicalAnd()
		left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	left := p.parseEquality()
	for p.peekIs(token.AND) {
		opTok := p.peek
		p.nextToken()
		p.nextToken()
		right := p.parseEquality()
		left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseComparison()
	for p.peekIs(token.EQ) || p.peekIs(token.NEQ) {
		opTok := p.peek
		p.nextToken()
		p.nextToken()
		right := p.parseComparison()
		left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAdditive()
	for p.peekIs(token.LT) || p.peekIs(token.GT) || p.peekIs(token.LE) || p.peekIs(token.GE) {
		opTok := p.peek
		p.nextToken()
		p.nextToken()
		right := p.parseAdditive()
		left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.peekIs(token.PLUS) || p.peekIs(token.MINUS) {
		opTok := p.peek
		p.nextToken()
		p.nextToken()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.peekIs(token.STAR) || p.peekIs(token.SLASH) || p.peekIs(token.PERCENT) {
		opTok := p.peek
		p.nextToken()
		p.nextToken()
		right := p.parseUnary()
		left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	switch p.cur.Kind {
	case token.NOT, token.MINUS, token.PLUS:
		opTok := p.cur
		p.nextToken() // cur = first token of operand
		operand := p.parseUnary()
		return &ast.UnaryExpression{Token: opTok, Operator: opTok.Literal, Operand: operand}
	default:
		return p.parsePostfix()
	}
}

// parsePostfix implements the left-associative postfix chain: call,
// member access, computed (historical) access, and generic call-site
// disambiguation (spec.md §4.2).
func (p *Parser) parsePostfix() ast.Expression {
	left := p.parsePrimary()
	for {
		switch {
		case p.peekIs(token.LPAREN):
			p.nextToken() // cur = (
			left = p.parseCallArguments(left, nil)
		case p.peekIs(token.DOT):
			dotTok := p.peek
			p.nextToken() // cur = .
			if !p.expectPeek(token.IDENT, ErrExpectedIdent) {
				return left
			}
			prop := &ast.Identifier{Token: p.cur, Name: p.cur.Literal}
			left = &ast.MemberExpression{Token: dotTok, Object: left, Property: prop, Computed: false}
		case p.peekIs(token.LBRACK):
			brTok := p.peek
			p.nextToken() // cur = [
			p.nextToken() // cur = first token of index expr
			idx := p.parseExpression()
			if !p.expectPeek(token.RBRACK, ErrMissingRBracket) {
				return left
			}
			left = &ast.MemberExpression{Token: brTok, Object: left, Property: idx, Computed: true}
		case p.peekIs(token.LT):
			if typeArgs, ok := p.tryParseGenericCallTypeArgs(); ok {
				p.nextToken() // cur = (
				left = p.parseCallArguments(left, typeArgs)
			} else {
				return left
			}
		default:
			return left
		}
	}
}

// parseCallArguments parses `(args)`. PRE: p.cur == LPAREN. POST: p.cur == RPAREN.
func (p *Parser) parseCallArguments(callee ast.Expression, typeArgs []*ast.TypeAnnotation) ast.Expression {
	callTok := p.cur
	var args []ast.Expression

	if p.peekIs(token.RPAREN) {
		p.nextToken()
		return &ast.CallExpression{Token: callTok, Callee: callee, Args: args, TypeArgs: typeArgs}
	}

	for {
		p.nextToken() // cur = first token of argument
		args = append(args, p.parseCallArgument())
		if p.peekIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	p.expectPeek(token.RPAREN, ErrMissingRParen)
	return &ast.CallExpression{Token: callTok, Callee: callee, Args: args, TypeArgs: typeArgs}
}

// parseCallArgument parses one call argument: either a named argument
// (`identifier = expression`, represented as an AssignmentExpression per
// spec.md §4.2) or a plain positional expression.
func (p *Parser) parseCallArgument() ast.Expression {
	if p.curIs(token.IDENT) && p.peekIs(token.ASSIGN) {
		nameTok := p.cur
		name := &ast.Identifier{Token: nameTok, Name: nameTok.Literal}
		opTok := p.peek
		p.nextToken() // cur = =
		p.nextToken() // cur = first token of value
		value := p.parseAssignment()
		return &ast.AssignmentExpression{Token: opTok, Left: name, Operator: "=", Right: value}
	}
	return p.parseAssignment()
}

// tryParseGenericCallTypeArgs attempts to parse `<T, ...>` at a call site.
// PRE: p.peek == LT. It consumes tokens only on success; on failure the
// parser and lexer are restored exactly, per spec.md §4.2's "look-ahead
// must not consume tokens" requirement, so `<` remains available as the
// comparison operator.
func (p *Parser) tryParseGenericCallTypeArgs() ([]*ast.TypeAnnotation, bool) {
	savedCur, savedPeek := p.cur, p.peek
	savedLexer := p.l.SaveState()

	p.nextToken() // cur = <
	if !p.peekIs(token.IDENT) {
		p.cur, p.peek = savedCur, savedPeek
		p.l.RestoreState(savedLexer)
		return nil, false
	}

	var args []*ast.TypeAnnotation
	ok := true
	for {
		p.nextToken() // cur = type name
		ta, good := p.parseTypeAnnotation()
		if !good {
			ok = false
			break
		}
		args = append(args, ta)
		if p.peekIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if ok && p.peekIs(token.GT) {
		p.nextToken() // cur = >
		if p.peekIs(token.LPAREN) {
			return args, true
		}
	}

	p.cur, p.peek = savedCur, savedPeek
	p.l.RestoreState(savedLexer)
	return nil, false
}

// parseTypeAnnotation parses a simple name or generic form `name<args>`.
// PRE: p.cur is the name token. POST: p.cur is the last token consumed
// (the name itself, or the closing `>`).
func (p *Parser) parseTypeAnnotation() (*ast.TypeAnnotation, bool) {
	if p.cur.Kind != token.IDENT {
		return nil, false
	}
	nameTok := p.cur
	ta := &ast.TypeAnnotation{Token: nameTok, Name: nameTok.Literal}

	if p.peekIs(token.LT) {
		p.nextToken() // cur = <
		for {
			p.nextToken() // cur = first token of inner type
			inner, ok := p.parseTypeAnnotation()
			if !ok {
				return nil, false
			}
			ta.Args = append(ta.Args, inner)
			if p.peekIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
		if !p.peekIs(token.GT) {
			return nil, false
		}
		p.nextToken() // cur = >
	}
	return ta, true
}

// parsePrimary parses literals, identifiers, parenthesized expressions, and
// array/tuple literals.
func (p *Parser) parsePrimary() ast.Expression {
	switch p.cur.Kind {
	case token.NUMBER:
		return p.parseNumberLiteral()
	case token.STRING:
		return &ast.Literal{Token: p.cur, Kind: ast.LiteralString, Value: p.cur.Literal}
	case token.BOOLEAN:
		return &ast.Literal{Token: p.cur, Kind: ast.LiteralBoolean, Value: p.cur.Literal == "true"}
	case token.COLOR:
		return &ast.Literal{Token: p.cur, Kind: ast.LiteralColor, Value: p.cur.Literal}
	case token.NA:
		return &ast.Literal{Token: p.cur, Kind: ast.LiteralNA, Value: nil}
	case token.IDENT:
		return &ast.Identifier{Token: p.cur, Name: p.cur.Literal}
	case token.LPAREN:
		return p.parseGroupedExpression()
	case token.LBRACK:
		return p.parseArrayOrTupleLiteral()
	default:
		p.addError(p.cur.Pos, "unexpected token in expression: "+p.cur.Kind.String(), ErrNoPrefixParse)
		return &ast.Literal{Token: p.cur, Kind: ast.LiteralNA}
	}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	lit := p.cur.Literal
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		p.addError(p.cur.Pos, "invalid number literal: "+lit, ErrUnexpectedToken)
		v = 0
	}
	return &ast.Literal{Token: p.cur, Kind: ast.LiteralNumber, Value: v}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken() // cur = first token inside parens
	expr := p.parseExpression()
	if !p.expectPeek(token.RPAREN, ErrMissingRParen) {
		return expr
	}
	return expr
}

// parseArrayOrTupleLiteral parses `[a, b, c]`. The parser always produces an
// ArrayExpression here; statement-level code reinterprets it as a
// TupleExpression destructuring target when followed by an assignment
// operator (see statements.go).
func (p *Parser) parseArrayOrTupleLiteral() ast.Expression {
	tok := p.cur
	var elems []ast.Expression
	if p.peekIs(token.RBRACK) {
		p.nextToken()
		return &ast.ArrayExpression{Token: tok, Elements: elems}
	}
	for {
		p.nextToken() // cur = first token of element
		elems = append(elems, p.parseAssignment())
		if p.peekIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	p.expectPeek(token.RBRACK, ErrMissingRBracket)
	return &ast.ArrayExpression{Token: tok, Elements: elems}
}

// AsTuple converts an ArrayExpression into the equivalent TupleExpression,
// used when a bracketed literal turns out to be a destructuring target.
func AsTuple(e ast.Expression) *ast.TupleExpression {
	if arr, ok := e.(*ast.ArrayExpression); ok {
		return &ast.TupleExpression{Token: arr.Token, Elements: arr.Elements}
	}
	return nil
}

// identifierNames extracts plain identifier names from a tuple's elements;
// used to validate for-in and assignment destructuring targets.
func identifierNames(elems []ast.Expression) ([]string, bool) {
	names := make([]string, 0, len(elems))
	for _, e := range elems {
		id, ok := e.(*ast.Identifier)
		if !ok {
			return nil, false
		}
		names = append(names, id.Name)
	}
	return names, true
}
