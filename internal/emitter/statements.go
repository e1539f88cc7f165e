package emitter

import (
	"strconv"
	"strings"

	"github.com/scriptlang/transpiler/internal/ast"
)

func indent(n int) string { return strings.Repeat("  ", n) }

// emitStatement renders stmt at the given indentation level, appending
// directly to b. Unrecognized or nil statements are skipped silently
// (spec.md §7: the emitter never fails on malformed input).
func (e *Emitter) emitStatement(b *strings.Builder, stmt ast.Statement, depth int) {
	if stmt == nil {
		return
	}
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		e.emitVariableDeclaration(b, s, depth)
	case *ast.FunctionDeclaration:
		e.emitFunctionDeclaration(b, s, depth)
	case *ast.TypeDefinition:
		e.emitTypeDefinition(b, s, depth)
	case *ast.ExpressionStatement:
		b.WriteString(indent(depth))
		b.WriteString(e.emitExpr(s.Expression))
		b.WriteString(";\n")
	case *ast.BlockStatement:
		for _, st := range s.Statements {
			e.emitStatement(b, st, depth)
		}
	case *ast.IfStatement:
		e.emitIf(b, s, depth)
	case *ast.WhileStatement:
		e.emitWhile(b, s, depth)
	case *ast.ForStatement:
		e.emitFor(b, s, depth)
	case *ast.SwitchStatement:
		e.emitSwitch(b, s, depth)
	case *ast.ReturnStatement:
		b.WriteString(indent(depth))
		if s.Value == nil {
			b.WriteString("return;\n")
		} else {
			b.WriteString("return " + e.emitExpr(s.Value) + ";\n")
		}
	case *ast.BreakStatement:
		b.WriteString(indent(depth) + "break;\n")
	case *ast.ContinueStatement:
		b.WriteString(indent(depth) + "continue;\n")
	case *ast.ImportStatement:
		// Module imports have no host-runtime surface: the emitted body is
		// a single self-contained function, so imports are recorded only
		// as a comment for traceability.
		b.WriteString(indent(depth) + "// import " + s.Path + "\n")
	}
}

func (e *Emitter) emitVariableDeclaration(b *strings.Builder, decl *ast.VariableDeclaration, depth int) {
	b.WriteString(indent(depth))
	if decl.Export {
		b.WriteString("export ")
	}
	b.WriteString("let " + e.emitDeclTarget(decl.Left))
	if decl.Init != nil {
		b.WriteString(" = " + e.emitExpr(decl.Init))
	}
	b.WriteString(";\n")
}

// emitDeclTarget renders a declaration's left-hand side: a plain
// identifier, or a tuple destructuring pattern.
func (e *Emitter) emitDeclTarget(left ast.Expression) string {
	switch l := left.(type) {
	case *ast.Identifier:
		return sanitizeIdent(l.Name)
	case *ast.TupleExpression:
		parts := make([]string, len(l.Elements))
		for i, el := range l.Elements {
			parts[i] = e.emitDeclTarget(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return left.String()
	}
}

func (e *Emitter) emitFunctionDeclaration(b *strings.Builder, fn *ast.FunctionDeclaration, depth int) {
	b.WriteString(indent(depth))
	if fn.Export {
		b.WriteString("export ")
	}
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		param := sanitizeIdent(p.Name)
		if p.Default != nil {
			param += " = " + e.emitExpr(p.Default)
		}
		params[i] = param
	}
	b.WriteString("function " + sanitizeIdent(fn.Name) + "(" + strings.Join(params, ", ") + ") {\n")

	if block, ok := fn.Body.(*ast.BlockStatement); ok {
		for _, st := range block.Statements {
			e.emitStatement(b, st, depth+1)
		}
	} else if exprStmt, ok := fn.Body.(*ast.ExpressionStatement); ok {
		b.WriteString(indent(depth+1) + "return " + e.emitExpr(exprStmt.Expression) + ";\n")
	} else {
		e.emitStatement(b, fn.Body, depth+1)
	}

	b.WriteString(indent(depth) + "}\n")
}

func (e *Emitter) emitTypeDefinition(b *strings.Builder, def *ast.TypeDefinition, depth int) {
	b.WriteString(indent(depth))
	if def.Export {
		b.WriteString("export ")
	}
	b.WriteString("class " + def.Name + " {\n")
	params := make([]string, len(def.Fields))
	for i, f := range def.Fields {
		params[i] = sanitizeIdent(f.Name)
	}
	b.WriteString(indent(depth+1) + "constructor(" + strings.Join(params, ", ") + ") {\n")
	for _, f := range def.Fields {
		name := sanitizeIdent(f.Name)
		b.WriteString(indent(depth+2) + "this." + name + " = " + name)
		if f.Default != nil {
			b.WriteString(" !== undefined ? " + name + " : " + e.emitExpr(f.Default))
		}
		b.WriteString(";\n")
	}
	b.WriteString(indent(depth+1) + "}\n")
	b.WriteString(indent(depth) + "}\n")
}

func (e *Emitter) emitIf(b *strings.Builder, s *ast.IfStatement, depth int) {
	b.WriteString(indent(depth) + "if (" + e.emitExpr(s.Condition) + ") {\n")
	e.emitStatement(b, s.Then, depth+1)
	b.WriteString(indent(depth) + "}")
	switch els := s.Else.(type) {
	case nil:
		b.WriteString("\n")
	case *ast.IfStatement:
		b.WriteString(" else ")
		// Render the chained if without its own leading indent.
		var tail strings.Builder
		e.emitIf(&tail, els, depth)
		b.WriteString(strings.TrimPrefix(tail.String(), indent(depth)))
	default:
		b.WriteString(" else {\n")
		e.emitStatement(b, s.Else, depth+1)
		b.WriteString(indent(depth) + "}\n")
	}
}

func (e *Emitter) emitWhile(b *strings.Builder, s *ast.WhileStatement, depth int) {
	counter := e.nextLoopCounter()
	b.WriteString(indent(depth) + "let " + counter + " = 0;\n")
	b.WriteString(indent(depth) + "while (" + e.emitExpr(s.Condition) + ") {\n")
	e.emitLoopGuard(b, counter, depth+1)
	e.emitStatement(b, s.Body, depth+1)
	b.WriteString(indent(depth) + "}\n")
}

func (e *Emitter) emitFor(b *strings.Builder, s *ast.ForStatement, depth int) {
	if s.IsToForm {
		counter := e.nextLoopCounter()
		v := sanitizeIdent(s.Var)
		b.WriteString(indent(depth) + "let " + counter + " = 0;\n")
		b.WriteString(indent(depth) + "for (let " + v + " = " + e.emitExpr(s.Start) +
			"; " + v + " <= " + e.emitExpr(s.End) + "; " + v + "++) {\n")
		e.emitLoopGuard(b, counter, depth+1)
		e.emitStatement(b, s.Body, depth+1)
		b.WriteString(indent(depth) + "}\n")
		return
	}

	if s.IndexVar != "" {
		b.WriteString(indent(depth) + "for (const [" + sanitizeIdent(s.IndexVar) + ", " +
			sanitizeIdent(s.ValueVar) + "] of " + e.emitExpr(s.Iterable) + ".entries()) {\n")
	} else {
		b.WriteString(indent(depth) + "for (const " + sanitizeIdent(s.ValueVar) + " of " +
			e.emitExpr(s.Iterable) + ") {\n")
	}
	e.emitStatement(b, s.Body, depth+1)
	b.WriteString(indent(depth) + "}\n")
}

// nextLoopCounter allocates the next monotone `_loop_<k>` counter name
// (spec.md §4.4, §8 scenario 4).
func (e *Emitter) nextLoopCounter() string {
	name := "_loop_" + strconv.Itoa(e.loopCount)
	e.loopCount++
	return name
}

func (e *Emitter) emitLoopGuard(b *strings.Builder, counter string, depth int) {
	b.WriteString(indent(depth) + counter + "++;\n")
	b.WriteString(indent(depth) + "if (" + counter + " > " + strconv.Itoa(e.maxLoopIterations) +
		") { throw new Error(\"iteration-limit-exceeded\"); }\n")
}

// emitSwitch lowers both switch shapes (with and without a discriminant) to
// a cascading if/else chain, since case patterns may be arbitrary
// expressions rather than compile-time constants.
func (e *Emitter) emitSwitch(b *strings.Builder, s *ast.SwitchStatement, depth int) {
	discriminant := ""
	if s.Discriminant != nil {
		discriminant = e.emitExpr(s.Discriminant)
	}

	first := true
	for _, c := range s.Cases {
		if c.Test == nil {
			b.WriteString(indent(depth) + "else {\n")
			e.emitStatement(b, c.Consequent, depth+1)
			b.WriteString(indent(depth) + "}\n")
			continue
		}

		cond := e.emitExpr(c.Test)
		if discriminant != "" {
			cond = "(" + discriminant + " === " + cond + ")"
		}

		if first {
			b.WriteString(indent(depth) + "if (" + cond + ") {\n")
			first = false
		} else {
			b.WriteString(indent(depth) + "else if (" + cond + ") {\n")
		}
		e.emitStatement(b, c.Consequent, depth+1)
		b.WriteString(indent(depth) + "}\n")
	}
}
