package ast

import (
	"strings"

	"github.com/scriptlang/transpiler/internal/token"
)

// BindingKind classifies how a VariableDeclaration was introduced.
type BindingKind int

const (
	BindingDefault BindingKind = iota // bare `name = expr`
	BindingVar
	BindingVarip
	BindingConst
)

// Param is one entry of a FunctionDeclaration's parameter list.
type Param struct {
	Name    string
	Type    *TypeAnnotation // nil if untyped
	Default Expression      // nil if no default
}

// Field is one entry of a TypeDefinition's field list.
type Field struct {
	Name    string
	Type    *TypeAnnotation
	Default Expression // nil if no default
}

// VariableDeclaration binds one name, or a tuple of names, to an initializer.
type VariableDeclaration struct {
	Token   token.Token
	Kind    BindingKind
	Left    Expression // *Identifier or *TupleExpression
	Type    *TypeAnnotation
	Init    Expression // nil if uninitialized
	Export  bool
}

func (*VariableDeclaration) statementNode() {}
func (v *VariableDeclaration) Pos() token.Position { return v.Token.Pos }
func (v *VariableDeclaration) String() string {
	var b strings.Builder
	if v.Export {
		b.WriteString("export ")
	}
	switch v.Kind {
	case BindingVar:
		b.WriteString("var ")
	case BindingVarip:
		b.WriteString("varip ")
	case BindingConst:
		b.WriteString("const ")
	}
	b.WriteString(v.Left.String())
	if v.Init != nil {
		b.WriteString(" = ")
		b.WriteString(v.Init.String())
	}
	return b.String()
}

// FunctionDeclaration is a named function with an expression or block body.
type FunctionDeclaration struct {
	Token      token.Token
	Name       string
	Generics   []string
	Params     []*Param
	Body       Statement // *BlockStatement, or any single Statement for expression-bodied functions
	Export     bool
}

func (*FunctionDeclaration) statementNode() {}
func (f *FunctionDeclaration) Pos() token.Position { return f.Token.Pos }
func (f *FunctionDeclaration) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.Name
	}
	return f.Name + "(" + strings.Join(parts, ", ") + ") => " + f.Body.String()
}

// TypeDefinition is a `type Name` record declaration.
type TypeDefinition struct {
	Token  token.Token
	Name   string
	Fields []*Field
	Export bool
}

func (*TypeDefinition) statementNode() {}
func (t *TypeDefinition) Pos() token.Position { return t.Token.Pos }
func (t *TypeDefinition) String() string      { return "type " + t.Name }

// ExpressionStatement wraps an expression evaluated for its side effect.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (*ExpressionStatement) statementNode() {}
func (e *ExpressionStatement) Pos() token.Position { return e.Token.Pos }
func (e *ExpressionStatement) String() string      { return e.Expression.String() }

// BlockStatement is an ordered sequence of statements introduced by an
// INDENT and closed by the matching DEDENT.
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (*BlockStatement) statementNode() {}
func (b *BlockStatement) Pos() token.Position { return b.Token.Pos }
func (b *BlockStatement) String() string {
	var sb strings.Builder
	for _, s := range b.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// IfStatement. Else may be nil, a *BlockStatement, or another *IfStatement
// (an `else if` chain).
type IfStatement struct {
	Token     token.Token
	Condition Expression
	Then      Statement
	Else      Statement
}

func (*IfStatement) statementNode() {}
func (i *IfStatement) Pos() token.Position { return i.Token.Pos }
func (i *IfStatement) String() string      { return "if " + i.Condition.String() + " " + i.Then.String() }

// WhileStatement.
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      Statement
}

func (*WhileStatement) statementNode() {}
func (w *WhileStatement) Pos() token.Position { return w.Token.Pos }
func (w *WhileStatement) String() string      { return "while " + w.Condition.String() + " " + w.Body.String() }

// ForStatement covers both `for x = start to end` and `for x in expr`
// (optionally tuple-destructured as `for [i, x] in expr`).
type ForStatement struct {
	Token token.Token

	// For-to form.
	IsToForm bool
	Var      string
	Start    Expression
	End      Expression

	// For-in form.
	IndexVar  string // set when tuple-destructured: `for [i, x] in arr`
	ValueVar  string
	Iterable  Expression

	Body Statement
}

func (*ForStatement) statementNode() {}
func (f *ForStatement) Pos() token.Position { return f.Token.Pos }
func (f *ForStatement) String() string {
	if f.IsToForm {
		return "for " + f.Var + " = " + f.Start.String() + " to " + f.End.String() + " " + f.Body.String()
	}
	return "for " + f.ValueVar + " in " + f.Iterable.String() + " " + f.Body.String()
}

// SwitchCase is one arm of a SwitchStatement. Test is nil for the default arm.
type SwitchCase struct {
	Test       Expression
	Consequent Statement
}

// SwitchStatement. Discriminant is nil for the discriminant-less form, where
// each case's Test is itself a boolean condition.
type SwitchStatement struct {
	Token       token.Token
	Discriminant Expression
	Cases       []*SwitchCase
}

func (*SwitchStatement) statementNode() {}
func (s *SwitchStatement) Pos() token.Position { return s.Token.Pos }
func (s *SwitchStatement) String() string      { return "switch" }

// ReturnStatement. Value is nil for a bare `return`.
type ReturnStatement struct {
	Token token.Token
	Value Expression
}

func (*ReturnStatement) statementNode() {}
func (r *ReturnStatement) Pos() token.Position { return r.Token.Pos }
func (r *ReturnStatement) String() string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.String()
}

// BreakStatement.
type BreakStatement struct {
	Token token.Token
}

func (*BreakStatement) statementNode() {}
func (b *BreakStatement) Pos() token.Position { return b.Token.Pos }
func (b *BreakStatement) String() string      { return "break" }

// ContinueStatement.
type ContinueStatement struct {
	Token token.Token
}

func (*ContinueStatement) statementNode() {}
func (c *ContinueStatement) Pos() token.Position { return c.Token.Pos }
func (c *ContinueStatement) String() string      { return "continue" }

// ImportStatement. Alias is empty when no `as` clause is present.
type ImportStatement struct {
	Token token.Token
	Path  string
	Alias string
}

func (*ImportStatement) statementNode() {}
func (i *ImportStatement) Pos() token.Position { return i.Token.Pos }
func (i *ImportStatement) String() string {
	if i.Alias != "" {
		return "import " + i.Path + " as " + i.Alias
	}
	return "import " + i.Path
}
