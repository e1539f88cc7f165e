// Package parser implements a recursive-descent, precedence-climbing parser
// for ScriptLang. It consumes a token.Token stream from internal/lexer and
// produces an *ast.Program, or fails with one error carrying the offending
// token's position.
package parser

import (
	"github.com/scriptlang/transpiler/internal/ast"
	"github.com/scriptlang/transpiler/internal/lexer"
	"github.com/scriptlang/transpiler/internal/token"
)

// defaultMaxDepth bounds expression recursion so a pathological input fails
// cleanly instead of exhausting the Go call stack.
const defaultMaxDepth = 1000

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithMaxDepth overrides the recursion-depth guard.
func WithMaxDepth(n int) Option {
	return func(p *Parser) { p.maxDepth = n }
}

// Parser turns a token stream into an AST.
type Parser struct {
	l *lexer.Lexer

	cur  token.Token
	peek token.Token

	errs  []*ParseError
	depth int

	maxDepth int
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{l: l, maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns accumulated parse errors (more than one only when using
// ParseBestEffort).
func (p *Parser) Errors() []*ParseError { return p.errs }

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) addError(pos token.Position, message, code string) {
	p.errs = append(p.errs, NewParseError(pos, message, code))
}

func (p *Parser) curIs(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek.Kind == k }

// expectPeek advances past peek if it matches k, else records an error and
// leaves the cursor unmoved.
func (p *Parser) expectPeek(k token.Kind, code string) bool {
	if p.peekIs(k) {
		p.nextToken()
		return true
	}
	p.addError(p.peek.Pos, "expected "+k.String()+", got "+p.peek.Kind.String(), code)
	return false
}

// enterDepth increments the recursion guard, returning false (and recording
// an error) if the configured maximum would be exceeded.
func (p *Parser) enterDepth() bool {
	p.depth++
	if p.depth > p.maxDepth {
		p.addError(p.cur.Pos, "maximum expression recursion depth exceeded", ErrRecursionExceeded)
		return false
	}
	return true
}

func (p *Parser) leaveDepth() { p.depth-- }

// skipNewlines consumes any run of NEWLINE tokens at the current position.
func (p *Parser) skipNewlines() {
	for p.curIs(token.NEWLINE) {
		p.nextToken()
	}
}

// Parse parses a complete program, stopping at the first error.
func Parse(l *lexer.Lexer) (*ast.Program, *ParseError) {
	p := New(l)
	prog := p.parseProgram()
	if len(p.errs) > 0 {
		return prog, p.errs[0]
	}
	return prog, nil
}

// ParseBestEffort parses as much of the program as possible, collecting
// every error instead of stopping at the first one. Used by the validation
// entry point (spec.md §6).
func ParseBestEffort(l *lexer.Lexer) (*ast.Program, []*ParseError) {
	p := New(l)
	prog := p.parseProgram()
	return prog, p.errs
}

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	lastPos := -1
	p.skipNewlines()
	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.skipNewlines()
		for p.curIs(token.DEDENT) {
			p.nextToken()
			p.skipNewlines()
		}
		// A malformed statement can leave the cursor exactly where it
		// started; force forward progress so best-effort parsing always
		// terminates instead of looping on a wedged token.
		if p.cur.Pos.Offset == lastPos {
			p.nextToken()
			p.skipNewlines()
		}
		lastPos = p.cur.Pos.Offset
	}
	return prog
}
