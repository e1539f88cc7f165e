// Package metadata implements the metadata-extraction pass over a
// ScriptLang AST: the declarative surface used by the indicator factory
// builder (header, inputs, plots, bgcolors, used price sources, historical
// access, computed-variable dependency graph, session variables, and
// deduplicated warnings) per spec.md §3 and §4.3.
package metadata

import "github.com/scriptlang/transpiler/internal/ast"

// InputType classifies an extracted input's value domain.
type InputType int

const (
	InputInteger InputType = iota
	InputFloat
	InputBool
	InputString
	InputSource
	InputTime
	InputColor
	InputSession
)

// Input is one `input.*`/`input()` call's declarative surface.
type Input struct {
	ID          string
	DisplayName string
	Type        InputType
	Default     any
	Min         *float64
	Max         *float64
	Options     []string
}

// PlotStyle classifies an extracted plot's rendering kind.
type PlotStyle int

const (
	PlotLine PlotStyle = iota
	PlotHistogram
	PlotArea
	PlotCircles
	PlotColumns
	PlotCross
	PlotStepline
	PlotShape
	PlotHLine
)

// Plot is one `plot`/`plotshape`/`plotchar`/`hline` call's declarative
// surface.
type Plot struct {
	ID        string
	Style     PlotStyle
	Title     string
	Color     string
	LineWidth int
	Value     ast.Expression // nil for hline
	Price     *float64       // set only for hline
}

// BgColor is one `bgcolor` call's declarative surface.
type BgColor struct {
	Color         string
	Transparency  float64
	Condition     string // textual rendering of ConditionExpr
	ConditionExpr ast.Expression
}

// ComputedVar is a variable declaration whose initializer references
// another computed variable or calls a technical-analysis function. A
// reference to a declared name that is not itself a computed variable does
// not make a declaration computed.
type ComputedVar struct {
	Name      string
	Expr      ast.Expression
	DependsOn []string
}

// SessionVar is a variable whose initializer is a session-membership
// predicate call.
type SessionVar struct {
	Name       string
	InputIndex int
	Timezone   string
}

// Warning is a semantic (non-fatal) diagnostic about an unsupported,
// partially-supported, or deprecated function use.
type Warning struct {
	Kind         string // "unsupported" | "partial" | "deprecated"
	FunctionName string
	Message      string
}

// Record is the complete metadata surface produced by Walk.
type Record struct {
	Name      string
	ShortName string
	Overlay   bool

	Inputs   []*Input
	Plots    []*Plot
	BgColors []*BgColor

	UsedSources      map[string]bool
	HistoricalAccess map[string]bool

	ComputedVars []*ComputedVar

	SessionVars        map[string]*SessionVar
	DerivedSessionVars map[string]string
	BooleanInputs      map[string]int
	InputVars          map[string]int

	Warnings []*Warning
}

func newRecord() *Record {
	return &Record{
		UsedSources:        map[string]bool{},
		HistoricalAccess:   map[string]bool{},
		SessionVars:        map[string]*SessionVar{},
		DerivedSessionVars: map[string]string{},
		BooleanInputs:      map[string]int{},
		InputVars:          map[string]int{},
	}
}
