package emitter

import (
	"strings"

	"github.com/scriptlang/transpiler/internal/ast"
	"github.com/scriptlang/transpiler/internal/nameresolve"
)

// dangerousIdents are ScriptLang identifiers that would shadow or pollute a
// JavaScript host environment if emitted verbatim (spec.md §4.4).
var dangerousIdents = map[string]bool{
	"__proto__":  true,
	"prototype":  true,
	"constructor": true,
	"eval":       true,
	"Function":   true,
	"arguments":  true,
	"globalThis": true,
	"global":     true,
	"process":    true,
	"require":    true,
	"module":     true,
	"exports":    true,
	"window":     true,
	"self":       true,
	"Reflect":    true,
	"Proxy":      true,
}

// sanitizeIdent rewrites a dangerous name to `_pine_<original>`, verbatim
// otherwise. The rewritten form is never itself a dangerous name, so the
// rewrite is idempotent.
func sanitizeIdent(name string) string {
	if dangerousIdents[name] {
		return "_pine_" + name
	}
	return name
}

// calleeName resolves an expression to its dotted name (e.g. "ta.sma",
// "color.red") when it is an identifier or a chain of plain member
// accesses. Callers look this name up in the name-resolution tables; the
// technical-analysis and math tables are keyed without their "ta."/"math."
// prefix.
func calleeName(expr ast.Expression) (string, bool) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Name, true
	case *ast.MemberExpression:
		if e.Computed {
			return "", false
		}
		base, ok := calleeName(e.Object)
		if !ok {
			return "", false
		}
		prop, ok := e.Property.(*ast.Identifier)
		if !ok {
			return "", false
		}
		return base + "." + prop.Name, true
	default:
		return "", false
	}
}

// lowerOperator rewrites a word/comparison operator to its host form.
// Unrecognized operators pass through unchanged (spec.md §4.4).
func lowerOperator(op string) string {
	switch op {
	case "and":
		return "&&"
	case "or":
		return "||"
	case "not":
		return "!"
	case "==":
		return "==="
	case "!=":
		return "!=="
	default:
		return op
	}
}

// resolveColorArg renders a color argument: color.<name> resolves through
// the constant table to a hex literal, an unresolved color.<name> passes
// through as a quoted placeholder, anything else is emitted normally.
func resolveColorArg(e *Emitter, expr ast.Expression) (string, bool) {
	name, ok := calleeName(expr)
	if !ok || !strings.HasPrefix(name, "color.") {
		return "", false
	}
	constName := strings.TrimPrefix(name, "color.")
	if hex, ok := nameresolve.ColorConstants[constName]; ok {
		return quoteString(hex), true
	}
	return quoteString(name), true
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
