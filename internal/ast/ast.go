// Package ast defines the Abstract Syntax Tree node types for ScriptLang.
// Nodes form a closed set of tagged variants; ownership is tree-shaped (a
// parent owns its children) and no cycles occur.
package ast

import (
	"strings"

	"github.com/scriptlang/transpiler/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	Pos() token.Position
	String() string
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of the AST: an ordered list of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{}
}

func (p *Program) String() string {
	var b strings.Builder
	for _, s := range p.Statements {
		b.WriteString(s.String())
		b.WriteString("\n")
	}
	return b.String()
}

// LiteralKind classifies a Literal expression's payload.
type LiteralKind int

const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralBoolean
	LiteralColor
	LiteralNA
)

// Literal is a constant value: number, string, boolean, color, or `na`.
type Literal struct {
	Token token.Token
	Kind  LiteralKind
	// Value holds the parsed payload: float64 for LiteralNumber, string for
	// LiteralString and LiteralColor, bool for LiteralBoolean, nil for LiteralNA.
	Value any
}

func (*Literal) expressionNode() {}
func (l *Literal) Pos() token.Position { return l.Token.Pos }
func (l *Literal) String() string      { return l.Token.Literal }

// Identifier is a bare name reference.
type Identifier struct {
	Token token.Token
	Name  string
}

func (*Identifier) expressionNode() {}
func (i *Identifier) Pos() token.Position { return i.Token.Pos }
func (i *Identifier) String() string      { return i.Name }

// MemberExpression is `Object.Property` or, when Computed is true, the
// historical-access/index form `Object[Property]`.
type MemberExpression struct {
	Token    token.Token
	Object   Expression
	Property Expression
	Computed bool
}

func (*MemberExpression) expressionNode() {}
func (m *MemberExpression) Pos() token.Position { return m.Token.Pos }
func (m *MemberExpression) String() string {
	if m.Computed {
		return m.Object.String() + "[" + m.Property.String() + "]"
	}
	return m.Object.String() + "." + m.Property.String()
}

// CallExpression is `Callee(Args...)`, optionally with explicit type
// arguments from the `<T, ...>` generic call-site disambiguation.
type CallExpression struct {
	Token     token.Token
	Callee    Expression
	Args      []Expression
	TypeArgs  []*TypeAnnotation
}

func (*CallExpression) expressionNode() {}
func (c *CallExpression) Pos() token.Position { return c.Token.Pos }
func (c *CallExpression) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// NamedArg extracts the argument in args matching `name = expr` shape — used
// by the metadata visitor to pull keyword arguments out of a call's
// positional argument list. Returns nil if not present.
func NamedArg(args []Expression, name string) Expression {
	for _, a := range args {
		if assign, ok := a.(*AssignmentExpression); ok && assign.Operator == "=" {
			if id, ok := assign.Left.(*Identifier); ok && id.Name == name {
				return assign.Right
			}
		}
	}
	return nil
}

// PositionalArg returns the i-th positional argument: any argument in args
// that is not itself a named-argument AssignmentExpression, counted in
// encounter order. Returns nil if there aren't enough.
func PositionalArg(args []Expression, i int) Expression {
	count := 0
	for _, a := range args {
		if assign, ok := a.(*AssignmentExpression); ok && assign.Operator == "=" {
			if _, ok := assign.Left.(*Identifier); ok {
				continue
			}
		}
		if count == i {
			return a
		}
		count++
	}
	return nil
}

// BinaryExpression is `Left Operator Right`.
type BinaryExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (*BinaryExpression) expressionNode() {}
func (b *BinaryExpression) Pos() token.Position { return b.Token.Pos }
func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// UnaryExpression is a prefix operator applied to an operand.
type UnaryExpression struct {
	Token    token.Token
	Operator string
	Operand  Expression
}

func (*UnaryExpression) expressionNode() {}
func (u *UnaryExpression) Pos() token.Position { return u.Token.Pos }
func (u *UnaryExpression) String() string {
	return "(" + u.Operator + u.Operand.String() + ")"
}

// ConditionalExpression is the ternary `Cond ? Then : Else`.
type ConditionalExpression struct {
	Token token.Token
	Cond  Expression
	Then  Expression
	Else  Expression
}

func (*ConditionalExpression) expressionNode() {}
func (c *ConditionalExpression) Pos() token.Position { return c.Token.Pos }
func (c *ConditionalExpression) String() string {
	return "(" + c.Cond.String() + " ? " + c.Then.String() + " : " + c.Else.String() + ")"
}

// AssignmentExpression covers `=`, `:=`, and compound assignment operators.
// It is also how a named call-argument (`name = expr`) is represented inside
// a CallExpression's Args list — there it never denotes a runtime rebind.
type AssignmentExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (*AssignmentExpression) expressionNode() {}
func (a *AssignmentExpression) Pos() token.Position { return a.Token.Pos }
func (a *AssignmentExpression) String() string {
	return a.Left.String() + " " + a.Operator + " " + a.Right.String()
}

// ArrayExpression is an `[a, b, c]` literal.
type ArrayExpression struct {
	Token    token.Token
	Elements []Expression
}

func (*ArrayExpression) expressionNode() {}
func (a *ArrayExpression) Pos() token.Position { return a.Token.Pos }
func (a *ArrayExpression) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// TupleExpression is a `[a, b]` destructuring target or multi-value literal.
type TupleExpression struct {
	Token    token.Token
	Elements []Expression
}

func (*TupleExpression) expressionNode() {}
func (t *TupleExpression) Pos() token.Position { return t.Token.Pos }
func (t *TupleExpression) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// TypeAnnotation is a simple name or a generic container form `name<args>`.
type TypeAnnotation struct {
	Token token.Token
	Name  string
	Args  []*TypeAnnotation
}

func (t *TypeAnnotation) Pos() token.Position { return t.Token.Pos }
func (t *TypeAnnotation) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Name + "<" + strings.Join(parts, ", ") + ">"
}
