package metadata

import (
	"strconv"
	"strings"

	"github.com/scriptlang/transpiler/internal/ast"
	"github.com/scriptlang/transpiler/internal/nameresolve"
)

// calleeName resolves a call's callee to its dotted name (e.g. "input.int",
// "color.red") when the callee is an identifier or a chain of plain member
// accesses, which is the only shape the metadata pass needs to recognize.
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

// identName returns expr's name if it is a bare identifier, else "".
func identName(expr ast.Expression) string {
	if id, ok := expr.(*ast.Identifier); ok {
		return id.Name
	}
	return ""
}

func stringArg(expr ast.Expression) string {
	if expr == nil {
		return ""
	}
	if lit, ok := expr.(*ast.Literal); ok {
		if s, ok := lit.Value.(string); ok {
			return s
		}
	}
	return ""
}

func boolArg(expr ast.Expression, fallback bool) bool {
	if expr == nil {
		return fallback
	}
	if lit, ok := expr.(*ast.Literal); ok {
		if b, ok := lit.Value.(bool); ok {
			return b
		}
	}
	return fallback
}

func floatArg(expr ast.Expression, fallback float64) float64 {
	if f, ok := literalFloat(expr); ok {
		return f
	}
	return fallback
}

func intArg(expr ast.Expression, fallback int) int {
	f, ok := literalFloat(expr)
	if !ok {
		return fallback
	}
	return int(f)
}

func literalFloat(expr ast.Expression) (float64, bool) {
	if expr == nil {
		return 0, false
	}
	lit, ok := expr.(*ast.Literal)
	if !ok {
		return 0, false
	}
	switch v := lit.Value.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}

// resolveColor renders a color argument: a color.<name> member access
// resolves through nameresolve.ColorConstants, a string/color literal passes
// through, and anything else (a dynamic expression) renders as its source
// text so the caller still has something to show.
func resolveColor(expr ast.Expression) string {
	if expr == nil {
		return ""
	}
	if name, ok := calleeOrMemberName(expr); ok && strings.HasPrefix(name, "color.") {
		constName := strings.TrimPrefix(name, "color.")
		if hex, ok := nameresolve.ColorConstants[constName]; ok {
			return hex
		}
		return name
	}
	if lit, ok := expr.(*ast.Literal); ok {
		if s, ok := lit.Value.(string); ok {
			return s
		}
	}
	return expr.String()
}

// calleeOrMemberName is calleeName without requiring a CallExpression
// wrapper, for bare `color.red` member-access arguments.
func calleeOrMemberName(expr ast.Expression) (string, bool) {
	return calleeName(expr)
}

func resolveTimezone(expr ast.Expression) string {
	if expr == nil {
		return nameresolve.Timezones["exchange"]
	}
	if name, ok := calleeOrMemberName(expr); ok {
		if tz, ok := nameresolve.Timezones[name]; ok {
			return tz
		}
	}
	if s := stringArg(expr); s != "" {
		return s
	}
	return nameresolve.Timezones["exchange"]
}
