// Package emitter lowers a ScriptLang AST to the host charting runtime's
// JavaScript indicator surface: block-scoped bindings, short-circuit
// operator forms, name-resolved technical-analysis/math/utility calls,
// series-backed historical access, and guarded loops (spec.md §4.4).
//
// Emit never fails: a malformed node is skipped and emission continues,
// since the parser is the only component responsible for surfacing syntax
// failures (spec.md §7).
package emitter

import (
	"strings"

	"github.com/scriptlang/transpiler/internal/ast"
)

// defaultMaxLoopIterations bounds every emitted while/for-to loop so a
// runaway ScriptLang program fails cleanly at the host runtime instead of
// hanging a bar evaluation.
const defaultMaxLoopIterations = 10000

// Option configures an Emitter at construction time.
type Option func(*Emitter)

// WithMaxLoopIterations overrides the emitted loop-guard ceiling.
func WithMaxLoopIterations(n int) Option {
	return func(e *Emitter) { e.maxLoopIterations = n }
}

// Emitter walks one Program and renders its emitted body plus the set of
// historical-access names the preamble needs to wrap. It is not reusable
// across programs: construct a fresh Emitter per compilation (spec.md §9's
// "fresh compiler instance yields fresh counters" rule applies here too).
type Emitter struct {
	maxLoopIterations int
	loopCount         int

	// historicalSources and historicalOther partition the names the
	// emitter lowered through the `ident[n]` operator: price sources get a
	// context-backed series wrapper, everything else gets a fallback
	// getter returning the not-available sentinel.
	historicalSources map[string]bool
	historicalOther   map[string]bool

	// subst, when non-nil, replaces an identifier reference's emitted text
	// with a caller-supplied substitute — used by the standalone factory
	// builder to rewrite computed-variable dependencies on input variables
	// into direct input-callback reads (spec.md §4.5).
	subst map[string]string
}

// New constructs an Emitter.
func New(opts ...Option) *Emitter {
	e := &Emitter{
		maxLoopIterations: defaultMaxLoopIterations,
		historicalSources: map[string]bool{},
		historicalOther:   map[string]bool{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit renders prog's emitted body and prepends the preamble it needs.
func (e *Emitter) Emit(prog *ast.Program) string {
	var body strings.Builder
	for _, s := range prog.Statements {
		e.emitStatement(&body, s, 0)
	}
	bodyText := body.String()
	return e.buildPreamble(bodyText) + bodyText
}

// EmitBody is Emit without the preamble, for callers that compose their own
// (the standalone native factory builder injects computed-variable
// identifier substitution around this text; see internal/factory).
func (e *Emitter) EmitBody(prog *ast.Program) string {
	var body strings.Builder
	for _, s := range prog.Statements {
		e.emitStatement(&body, s, 0)
	}
	return body.String()
}

// Preamble returns the preamble buildPreamble would compute for a
// previously emitted body. Useful when a caller emitted via EmitBody and
// needs the matching preamble separately.
func (e *Emitter) Preamble(body string) string {
	return e.buildPreamble(body)
}

// EmitValue renders a single expression (a plot's value, a bgcolor
// condition) using this Emitter's historical-access tracking, so the
// factory builder's plot/bgcolor text stays consistent with the main body's
// preamble needs.
func (e *Emitter) EmitValue(expr ast.Expression) string {
	return e.emitExpr(expr)
}

// EmitValueSubstituted is EmitValue with a temporary identifier
// substitution table applied — every bare Identifier reference named in
// subst renders as its replacement text instead of the sanitized name.
func (e *Emitter) EmitValueSubstituted(expr ast.Expression, subst map[string]string) string {
	e.subst = subst
	defer func() { e.subst = nil }()
	return e.emitExpr(expr)
}
