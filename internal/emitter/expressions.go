package emitter

import (
	"strconv"
	"strings"

	"github.com/scriptlang/transpiler/internal/ast"
	"github.com/scriptlang/transpiler/internal/nameresolve"
)

// emitExpr renders expr as a single JavaScript expression fragment. It
// never returns an error: an unrecognized node renders as the literal text
// "undefined" so emission can proceed (spec.md §7).
func (e *Emitter) emitExpr(expr ast.Expression) string {
	switch ex := expr.(type) {
	case *ast.Literal:
		return e.emitLiteral(ex)
	case *ast.Identifier:
		return e.emitIdentifierRef(ex)
	case *ast.MemberExpression:
		return e.emitMember(ex)
	case *ast.CallExpression:
		return e.emitCall(ex)
	case *ast.BinaryExpression:
		return "(" + e.emitExpr(ex.Left) + " " + lowerOperator(ex.Operator) + " " + e.emitExpr(ex.Right) + ")"
	case *ast.UnaryExpression:
		op := lowerOperator(ex.Operator)
		sep := ""
		if op == "!" {
			sep = " "
		}
		return "(" + op + sep + e.emitExpr(ex.Operand) + ")"
	case *ast.ConditionalExpression:
		return "(" + e.emitExpr(ex.Cond) + " ? " + e.emitExpr(ex.Then) + " : " + e.emitExpr(ex.Else) + ")"
	case *ast.AssignmentExpression:
		return sanitizeIdent(targetName(ex.Left)) + " " + lowerAssignOp(ex.Operator) + " " + e.emitExpr(ex.Right)
	case *ast.ArrayExpression:
		return e.emitElementList(ex.Elements)
	case *ast.TupleExpression:
		return e.emitElementList(ex.Elements)
	default:
		return "undefined"
	}
}

func (e *Emitter) emitElementList(elems []ast.Expression) string {
	parts := make([]string, len(elems))
	for i, el := range elems {
		parts[i] = e.emitExpr(el)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// lowerAssignOp passes `:=` through as `=`; everything else (including
// compound operators) is emitted unchanged (spec.md §4.4).
func lowerAssignOp(op string) string {
	if op == ":=" {
		return "="
	}
	return op
}

func targetName(expr ast.Expression) string {
	if id, ok := expr.(*ast.Identifier); ok {
		return id.Name
	}
	return expr.String()
}

func (e *Emitter) emitLiteral(lit *ast.Literal) string {
	switch lit.Kind {
	case ast.LiteralNumber:
		if f, ok := lit.Value.(float64); ok {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
		return "0"
	case ast.LiteralString:
		s, _ := lit.Value.(string)
		return quoteString(s)
	case ast.LiteralBoolean:
		if b, _ := lit.Value.(bool); b {
			return "true"
		}
		return "false"
	case ast.LiteralColor:
		s, _ := lit.Value.(string)
		return quoteString(s)
	case ast.LiteralNA:
		return "NOT_AVAILABLE"
	default:
		return "undefined"
	}
}

func (e *Emitter) emitIdentifierRef(id *ast.Identifier) string {
	if e.subst != nil {
		if replacement, ok := e.subst[id.Name]; ok {
			return replacement
		}
	}
	return sanitizeIdent(id.Name)
}

// emitMember handles both the historical-access operator (Computed) and
// plain dotted references, including namespace names the name-resolution
// tables recognize even outside a call (e.g. `barstate.isconfirmed`).
func (e *Emitter) emitMember(m *ast.MemberExpression) string {
	if m.Computed {
		base, ok := m.Object.(*ast.Identifier)
		if !ok {
			// Non-identifier historical bases (e.g. an expression result)
			// have no stable getter name; fall back to direct indexing.
			return e.emitExpr(m.Object) + "[" + e.emitExpr(m.Property) + "]"
		}
		if nameresolve.PriceSources[base.Name] {
			e.historicalSources[base.Name] = true
		} else {
			e.historicalOther[base.Name] = true
		}
		return "_getHistorical_" + sanitizeIdent(base.Name) + "(" + e.emitExpr(m.Property) + ")"
	}

	if name, ok := calleeName(m); ok {
		if resolved, ok := resolveDottedName(name); ok {
			return resolved
		}
	}
	return e.emitExpr(m.Object) + "." + propertyName(m.Property)
}

func propertyName(expr ast.Expression) string {
	if id, ok := expr.(*ast.Identifier); ok {
		return id.Name
	}
	return expr.String()
}

// resolveDottedName looks up a bare (non-call) dotted reference against the
// time/utility/color/math-constant tables, in that order. Only the dotted
// `math.pi`/`math.e` form resolves to a host constant; a bare `pi`/`e`
// identifier is an ordinary user variable.
func resolveDottedName(name string) (string, bool) {
	if emitted, ok := nameresolve.Time[name]; ok {
		return emitted, true
	}
	if emitted, ok := nameresolve.Utility[name]; ok {
		return emitted, true
	}
	if strings.HasPrefix(name, "color.") {
		constName := strings.TrimPrefix(name, "color.")
		if hex, ok := nameresolve.ColorConstants[constName]; ok {
			return quoteString(hex), true
		}
	}
	if strings.HasPrefix(name, "math.") {
		constName := strings.TrimPrefix(name, "math.")
		if emitted, ok := nameresolve.MathConstants[constName]; ok {
			return emitted, true
		}
	}
	return "", false
}

// emitCall classifies a call by its callee's dotted name and rewrites it
// per the name-resolution tables (spec.md §4.4); unknown callees pass
// through unchanged.
func (e *Emitter) emitCall(call *ast.CallExpression) string {
	name, ok := calleeName(call.Callee)
	if !ok {
		return e.emitExpr(call.Callee) + "(" + e.emitArgs(call.Args, false) + ")"
	}

	if mapping, ok := nameresolve.TechnicalAnalysis[strings.TrimPrefix(name, "ta.")]; ok {
		return mapping.EmittedName + "(" + e.emitArgs(call.Args, mapping.NeedsContext) + ")"
	}
	if emitted, ok := nameresolve.Math[strings.TrimPrefix(name, "math.")]; ok {
		return emitted + "(" + e.emitArgs(call.Args, false) + ")"
	}
	if emitted, ok := nameresolve.Time[name]; ok {
		return emitted + "(" + e.emitArgs(call.Args, false) + ")"
	}
	if emitted, ok := nameresolve.Utility[name]; ok {
		return emitted + "(" + e.emitArgs(call.Args, false) + ")"
	}
	if strings.HasPrefix(name, "color.") {
		if s, ok := resolveColorArg(e, call.Callee); ok {
			return s
		}
	}

	return e.emitExpr(call.Callee) + "(" + e.emitArgs(call.Args, false) + ")"
}

// emitArgs renders a call's argument list, unwrapping named-argument
// AssignmentExpression shapes to their value, and appending the runtime
// context as a trailing argument when needsContext is set and no argument
// already supplies it.
func (e *Emitter) emitArgs(args []ast.Expression, needsContext bool) string {
	parts := make([]string, 0, len(args)+1)
	hasContext := false
	for _, a := range args {
		if assign, ok := a.(*ast.AssignmentExpression); ok && assign.Operator == "=" {
			if id, ok := assign.Left.(*ast.Identifier); ok {
				if id.Name == "context" {
					hasContext = true
				}
				parts = append(parts, e.emitExpr(assign.Right))
				continue
			}
		}
		if id, ok := a.(*ast.Identifier); ok && id.Name == "context" {
			hasContext = true
		}
		parts = append(parts, e.emitExpr(a))
	}
	if needsContext && !hasContext {
		parts = append(parts, "context")
	}
	return strings.Join(parts, ", ")
}
