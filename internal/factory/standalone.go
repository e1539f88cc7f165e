package factory

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/scriptlang/transpiler/internal/emitter"
	"github.com/scriptlang/transpiler/internal/metadata"
)

// compileTrapPrelude backs the per-instance "log once" requirement of the
// compilation-trap rule (spec.md §4.4, §7).
const compileTrapPrelude = `let _compileFailureLogged = false;
function _logCompileFailureOnce(err) {
  if (!_compileFailureLogged) {
    console.error("indicator compile/execution error:", err);
    _compileFailureLogged = true;
  }
}
`

// StandaloneSource is the rendered output of BuildStandalone: full JS
// source text plus the pieces a caller might want to inspect separately.
type StandaloneSource struct {
	Name     string
	Metainfo string
	Source   string
}

// BuildStandalone renders text conforming to the host's native indicator
// ABI (spec.md §4.5, §6). em is the same Emitter used to render body, so
// plot/bgcolor re-emission shares its historical-access bookkeeping.
func BuildStandalone(id, name string, rec *metadata.Record, body, preamble string, em *emitter.Emitter) (*StandaloneSource, error) {
	hasBgColors := len(rec.BgColors) > 0

	metaJSON, err := buildMetainfoJSON(id, name, rec, hasBgColors)
	if err != nil {
		return nil, fmt.Errorf("factory: building metainfo: %w", err)
	}

	var b strings.Builder
	b.WriteString("// build " + uuid.NewString() + "\n")
	b.WriteString(preamble)
	b.WriteString(compileTrapPrelude)
	b.WriteString(computedVarPrelude(rec, em))
	b.WriteString("const _factory = {\n")
	b.WriteString("  name: " + quoteJS(FactoryName(id)) + ",\n")
	b.WriteString("  metainfo: " + metaJSON + ",\n")
	b.WriteString("  constructor: function() {\n")
	b.WriteString("    this.main = function(context, inputCallback) {\n")
	b.WriteString("      try {\n")
	b.WriteString(indentLines(body, 8))
	if hasBgColors {
		b.WriteString(bgColorMainTail(rec, em, 8))
	} else {
		b.WriteString(generalMainTail(rec, em, 8))
	}
	b.WriteString("      } catch (err) {\n")
	b.WriteString("        " + compileTrapBody(rec, hasBgColors))
	b.WriteString("      }\n")
	b.WriteString("    };\n")
	b.WriteString("  }\n")
	b.WriteString("};\n")

	return &StandaloneSource{Name: FactoryName(id), Metainfo: metaJSON, Source: b.String()}, nil
}

// computedVarPrelude renders each computed variable, in the topological
// order the metadata pass already established, substituting any reference
// to an input variable with a direct input-callback read (spec.md §4.5).
func computedVarPrelude(rec *metadata.Record, em *emitter.Emitter) string {
	if len(rec.ComputedVars) == 0 {
		return ""
	}
	subst := map[string]string{}
	for name, idx := range rec.InputVars {
		subst[name] = fmt.Sprintf("inputCallback(%d)", idx)
	}

	var b strings.Builder
	for _, cv := range rec.ComputedVars {
		value := "undefined"
		if cv.Expr != nil {
			value = em.EmitValueSubstituted(cv.Expr, subst)
		}
		b.WriteString("let " + cv.Name + " = " + value + ";\n")
	}
	return b.String()
}

// bgColorMainTail computes a color index by testing conditions in reverse
// declaration order so a later bgcolor call wins ties (spec.md §4.5, §8
// scenario 6). Slot 0 is transparent.
func bgColorMainTail(rec *metadata.Record, em *emitter.Emitter, depth int) string {
	pad := strings.Repeat(" ", depth)
	var b strings.Builder
	b.WriteString(pad + "let _bgColorIndex = 0;\n")
	for i := len(rec.BgColors) - 1; i >= 0; i-- {
		bg := rec.BgColors[i]
		cond := "true"
		if bg.ConditionExpr != nil {
			cond = em.EmitValue(bg.ConditionExpr)
		}
		b.WriteString(fmt.Sprintf("%sif (_bgColorIndex === 0 && (%s)) { _bgColorIndex = %d; }\n", pad, cond, i+1))
	}
	b.WriteString(pad + "return _bgColorIndex;\n")
	return b.String()
}

// generalMainTail returns a vector of plot values in declaration order.
func generalMainTail(rec *metadata.Record, em *emitter.Emitter, depth int) string {
	pad := strings.Repeat(" ", depth)
	var b strings.Builder
	b.WriteString(pad + "return [\n")
	for _, p := range rec.Plots {
		value := "NOT_AVAILABLE"
		switch {
		case p.Style == metadata.PlotHLine && p.Price != nil:
			value = fmt.Sprintf("%v", *p.Price)
		case p.Value != nil:
			value = em.EmitValue(p.Value)
		}
		b.WriteString(pad + "  " + value + ",\n")
	}
	b.WriteString(pad + "];\n")
	return b.String()
}

// compileTrapBody implements the compilation-trap rule: log once, return
// not-available sentinels sized to the plot arity (spec.md §4.4, §7).
func compileTrapBody(rec *metadata.Record, hasBgColors bool) string {
	if hasBgColors {
		return "_logCompileFailureOnce(err); return 0;"
	}
	return fmt.Sprintf("_logCompileFailureOnce(err); return new Array(%d).fill(NOT_AVAILABLE);", len(rec.Plots))
}

func quoteJS(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
