package metadata

import (
	"strconv"
	"strings"

	"github.com/scriptlang/transpiler/internal/ast"
	"github.com/scriptlang/transpiler/internal/nameresolve"
)

// visitor accumulates a Record over one traversal of a Program. It is
// scoped to a single compilation: a fresh visitor yields fresh ID counters
// and a fresh warning-dedupe set, per spec.md §9 ("two pieces of state that
// look process-global ... are in fact per-compiler-run").
type visitor struct {
	rec *Record

	headerSeen  bool
	warningsSeen map[string]bool

	inputCount int
	plotCount  int

	declared map[string]ast.Expression // computed-variable name -> initializer, for dependency detection
	declOrder []string
	deps      map[string][]string
}

// Walk performs the metadata pass over prog and returns the extracted
// Record.
func Walk(prog *ast.Program) *Record {
	v := &visitor{
		rec:          newRecord(),
		warningsSeen: map[string]bool{},
		declared:     map[string]ast.Expression{},
		deps:         map[string][]string{},
	}
	for _, stmt := range prog.Statements {
		v.visitStatement(stmt)
	}
	v.rec.ComputedVars = v.topoSortComputedVars()
	return v.rec
}

func (v *visitor) visitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		v.visitExpr(s.Expression)
	case *ast.VariableDeclaration:
		v.visitVariableDeclaration(s)
	case *ast.FunctionDeclaration:
		if s.Body != nil {
			v.visitStatement(s.Body)
		}
		for _, p := range s.Params {
			if p.Default != nil {
				v.visitExpr(p.Default)
			}
		}
	case *ast.BlockStatement:
		for _, st := range s.Statements {
			v.visitStatement(st)
		}
	case *ast.IfStatement:
		v.visitExpr(s.Condition)
		v.visitStatement(s.Then)
		if s.Else != nil {
			v.visitStatement(s.Else)
		}
	case *ast.WhileStatement:
		v.visitExpr(s.Condition)
		v.visitStatement(s.Body)
	case *ast.ForStatement:
		if s.Start != nil {
			v.visitExpr(s.Start)
		}
		if s.End != nil {
			v.visitExpr(s.End)
		}
		if s.Iterable != nil {
			v.visitExpr(s.Iterable)
		}
		v.visitStatement(s.Body)
	case *ast.SwitchStatement:
		if s.Discriminant != nil {
			v.visitExpr(s.Discriminant)
		}
		for _, c := range s.Cases {
			if c.Test != nil {
				v.visitExpr(c.Test)
			}
			v.visitStatement(c.Consequent)
		}
	case *ast.ReturnStatement:
		if s.Value != nil {
			v.visitExpr(s.Value)
		}
	}
}

// visitTopLevelCall handles every call expression the walk reaches, at any
// nesting depth and regardless of assignment: header calls, plot calls,
// bgcolor, and the warning classification of the callee name.
func (v *visitor) visitTopLevelCall(expr ast.Expression) {
	call, ok := expr.(*ast.CallExpression)
	if !ok {
		return
	}
	name, ok := calleeName(call.Callee)
	if !ok {
		return
	}

	switch name {
	case "indicator", "study", "strategy":
		v.recordHeader(name, call)
	case "plot", "plotshape", "plotchar", "hline":
		v.recordPlot(name, call)
	case "bgcolor":
		v.recordBgColor(call)
	}

	v.recordWarning(name)
}

func (v *visitor) recordHeader(callee string, call *ast.CallExpression) {
	if callee == "study" || callee == "strategy" {
		// study() is always deprecated per spec.md §9, even when it
		// successfully supplies the header.
		if callee == "study" {
			v.recordWarning("study")
		}
	}
	if v.headerSeen {
		return
	}
	v.headerSeen = true

	name := stringArg(ast.PositionalArg(call.Args, 0))
	if name == "" {
		name = stringArg(ast.NamedArg(call.Args, "title"))
	}
	v.rec.Name = name

	shortName := stringArg(ast.NamedArg(call.Args, "shorttitle"))
	if shortName == "" {
		shortName = name
	}
	v.rec.ShortName = shortName

	v.rec.Overlay = boolArg(ast.NamedArg(call.Args, "overlay"), false)
}

func (v *visitor) recordPlot(callee string, call *ast.CallExpression) {
	v.plotCount++
	p := &Plot{ID: "plot_" + strconv.Itoa(v.plotCount-1)}

	switch callee {
	case "plotshape", "plotchar":
		p.Style = PlotShape
	case "hline":
		p.Style = PlotHLine
		if priceExpr := ast.PositionalArg(call.Args, 0); priceExpr != nil {
			if lit, ok := priceExpr.(*ast.Literal); ok {
				if f, ok := lit.Value.(float64); ok {
					p.Price = &f
				}
			}
		}
	default:
		p.Style = plotStyleFromName(stringArg(ast.NamedArg(call.Args, "style")))
	}

	p.Title = stringArg(ast.NamedArg(call.Args, "title"))
	p.Color = resolveColor(ast.NamedArg(call.Args, "color"))
	if p.Color == "" {
		p.Color = nameresolve.DefaultPlotColor
	}
	p.LineWidth = intArg(ast.NamedArg(call.Args, "linewidth"), 1)

	if p.Style != PlotHLine {
		p.Value = ast.PositionalArg(call.Args, 0)
	}

	v.rec.Plots = append(v.rec.Plots, p)
}

func plotStyleFromName(name string) PlotStyle {
	switch name {
	case "histogram":
		return PlotHistogram
	case "area":
		return PlotArea
	case "circles":
		return PlotCircles
	case "columns":
		return PlotColumns
	case "cross":
		return PlotCross
	case "stepline":
		return PlotStepline
	default:
		return PlotLine
	}
}

func (v *visitor) recordBgColor(call *ast.CallExpression) {
	colorExpr := ast.PositionalArg(call.Args, 0)
	if colorExpr == nil {
		colorExpr = ast.NamedArg(call.Args, "color")
	}
	bg := &BgColor{
		Color:         resolveColor(colorExpr),
		Transparency:  floatArg(ast.NamedArg(call.Args, "transparency"), 0),
		ConditionExpr: ast.NamedArg(call.Args, "condition"),
	}
	if bg.ConditionExpr != nil {
		bg.Condition = bg.ConditionExpr.String()
	}
	v.rec.BgColors = append(v.rec.BgColors, bg)
}

func (v *visitor) recordWarning(name string) {
	kind, msg, ok := classifyWarning(name)
	if !ok {
		return
	}
	if v.warningsSeen[name] {
		return
	}
	v.warningsSeen[name] = true
	v.rec.Warnings = append(v.rec.Warnings, &Warning{Kind: kind, FunctionName: name, Message: msg})
}

func classifyWarning(name string) (kind, msg string, ok bool) {
	if m, found := nameresolve.Unsupported[name]; found {
		return "unsupported", m, true
	}
	if m, found := nameresolve.Partial[name]; found {
		return "partial", m, true
	}
	if m, found := nameresolve.Deprecated[name]; found {
		return "deprecated", m, true
	}
	return "", "", false
}

func (v *visitor) visitVariableDeclaration(decl *ast.VariableDeclaration) {
	if decl.Init != nil {
		v.visitExpr(decl.Init)
	}

	id, ok := decl.Left.(*ast.Identifier)
	if !ok {
		return // tuple destructuring targets carry no declarative surface
	}

	if decl.Init == nil {
		return
	}

	if call, ok := decl.Init.(*ast.CallExpression); ok {
		if name, ok := calleeName(call.Callee); ok {
			if name == "input" || isInputKind(name) {
				v.recordInput(id.Name, name, call)
				return
			}
			if name == nameresolve.SessionPredicate {
				v.recordSessionVar(id.Name, call)
				return
			}
		}
	}

	if v.isDerivedSessionExpr(decl.Init) {
		v.rec.DerivedSessionVars[id.Name] = v.substituteSessionVars(decl.Init)
	}

	if deps := v.dependencySet(decl.Init); len(deps) > 0 || referencesTAFunction(decl.Init) {
		v.declared[id.Name] = decl.Init
		v.declOrder = append(v.declOrder, id.Name)
		v.deps[id.Name] = deps
	}
}

func isInputKind(name string) bool {
	switch name {
	case "input.int", "input.float", "input.bool", "input.string",
		"input.symbol", "input.source", "input.time", "input.color":
		return true
	}
	return false
}

func (v *visitor) recordInput(varName, callee string, call *ast.CallExpression) {
	v.inputCount++
	in := &Input{ID: "in_" + strconv.Itoa(v.inputCount-1)}

	in.DisplayName = stringArg(ast.NamedArg(call.Args, "title"))
	if in.DisplayName == "" {
		in.DisplayName = "Input " + strconv.Itoa(v.inputCount)
	}

	def := ast.PositionalArg(call.Args, 0)
	switch callee {
	case "input.int":
		in.Type = InputInteger
		in.Default = floatArg(def, 0)
	case "input.bool":
		in.Type = InputBool
		in.Default = boolArg(def, false)
	case "input.string", "input.symbol":
		in.Type = InputString
		in.Default = stringArg(def)
	case "input.source":
		in.Type = InputSource
		name := identName(def)
		if name == "" {
			name = "close"
		}
		in.Default = name
	case "input.time":
		in.Type = InputTime
		in.Default = 0.0
	case "input.color":
		in.Type = InputColor
		in.Default = resolveColor(def)
	default: // generic input(): infer from the default-value literal kind
		in.Type, in.Default = inferGenericInput(def)
	}

	if min := ast.NamedArg(call.Args, "minval"); min != nil {
		if f, ok := literalFloat(min); ok {
			in.Min = &f
		}
	}
	if max := ast.NamedArg(call.Args, "maxval"); max != nil {
		if f, ok := literalFloat(max); ok {
			in.Max = &f
		}
	}
	if opts := ast.NamedArg(call.Args, "options"); opts != nil {
		if arr, ok := opts.(*ast.ArrayExpression); ok {
			for _, el := range arr.Elements {
				in.Options = append(in.Options, stringArg(el))
			}
		}
	}

	v.rec.Inputs = append(v.rec.Inputs, in)
	v.rec.InputVars[varName] = v.inputCount - 1
	if in.Type == InputBool {
		v.rec.BooleanInputs[varName] = v.inputCount - 1
	}
}

func inferGenericInput(def ast.Expression) (InputType, any) {
	lit, ok := def.(*ast.Literal)
	if !ok {
		return InputFloat, 0.0
	}
	switch lit.Kind {
	case ast.LiteralBoolean:
		return InputBool, lit.Value
	case ast.LiteralString:
		return InputString, lit.Value
	case ast.LiteralColor:
		return InputColor, lit.Value
	default:
		return InputFloat, floatArg(def, 0)
	}
}

func (v *visitor) recordSessionVar(varName string, call *ast.CallExpression) {
	inputRef := ast.PositionalArg(call.Args, 0)
	tzArg := ast.PositionalArg(call.Args, 1)

	idx := -1
	if name := identName(inputRef); name != "" {
		if i, ok := v.rec.InputVars[name]; ok {
			idx = i
		}
	}
	tz := resolveTimezone(tzArg)

	v.rec.SessionVars[varName] = &SessionVar{Name: varName, InputIndex: idx, Timezone: tz}
}

// isDerivedSessionExpr reports whether expr combines two already-recorded
// session variables (e.g. `sessA and sessB`).
func (v *visitor) isDerivedSessionExpr(expr ast.Expression) bool {
	bin, ok := expr.(*ast.BinaryExpression)
	if !ok {
		return false
	}
	return v.mentionsSessionVar(bin.Left) && v.mentionsSessionVar(bin.Right)
}

func (v *visitor) mentionsSessionVar(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.Identifier:
		_, ok := v.rec.SessionVars[e.Name]
		return ok
	case *ast.BinaryExpression:
		return v.mentionsSessionVar(e.Left) || v.mentionsSessionVar(e.Right)
	case *ast.UnaryExpression:
		return v.mentionsSessionVar(e.Operand)
	default:
		return false
	}
}

// substituteSessionVars renders expr as text with every session-variable
// identifier replaced by its input-index lookup expression.
func (v *visitor) substituteSessionVars(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.Identifier:
		if sv, ok := v.rec.SessionVars[e.Name]; ok {
			return "_session(" + strconv.Itoa(sv.InputIndex) + ", \"" + sv.Timezone + "\")"
		}
		return e.Name
	case *ast.BinaryExpression:
		return "(" + v.substituteSessionVars(e.Left) + " " + e.Operator + " " + v.substituteSessionVars(e.Right) + ")"
	case *ast.UnaryExpression:
		return "(" + e.Operator + v.substituteSessionVars(e.Operand) + ")"
	default:
		return e.String()
	}
}

// visitExpr walks an expression tree recording price-source use and
// historical-access (spec.md §4.3). It never fails.
func (v *visitor) visitExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier:
		if nameresolve.PriceSources[e.Name] {
			v.rec.UsedSources[e.Name] = true
		}
	case *ast.MemberExpression:
		if e.Computed {
			if base, ok := e.Object.(*ast.Identifier); ok {
				v.rec.HistoricalAccess[base.Name] = true
				if nameresolve.PriceSources[base.Name] {
					v.rec.UsedSources[base.Name] = true
				}
			}
			v.visitExpr(e.Property)
		} else {
			v.visitExpr(e.Object)
		}
	case *ast.CallExpression:
		v.visitTopLevelCall(e)
		v.visitExpr(e.Callee)
		for _, a := range e.Args {
			v.visitExpr(a)
		}
	case *ast.BinaryExpression:
		v.visitExpr(e.Left)
		v.visitExpr(e.Right)
	case *ast.UnaryExpression:
		v.visitExpr(e.Operand)
	case *ast.ConditionalExpression:
		v.visitExpr(e.Cond)
		v.visitExpr(e.Then)
		if e.Else != nil {
			v.visitExpr(e.Else)
		}
	case *ast.AssignmentExpression:
		v.visitExpr(e.Left)
		v.visitExpr(e.Right)
	case *ast.ArrayExpression:
		for _, el := range e.Elements {
			v.visitExpr(el)
		}
	case *ast.TupleExpression:
		for _, el := range e.Elements {
			v.visitExpr(el)
		}
	}
}

// dependencySet returns the identifiers in expr that name an
// already-recorded computed variable, in first-appearance order. Other
// declared names (plain constants, inputs, session variables) are not
// included.
func (v *visitor) dependencySet(expr ast.Expression) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(ast.Expression)
	walk = func(e ast.Expression) {
		switch n := e.(type) {
		case *ast.Identifier:
			if _, ok := v.declared[n.Name]; ok && !seen[n.Name] {
				seen[n.Name] = true
				out = append(out, n.Name)
			}
		case *ast.MemberExpression:
			walk(n.Object)
			if n.Computed {
				walk(n.Property)
			}
		case *ast.CallExpression:
			walk(n.Callee)
			for _, a := range n.Args {
				walk(a)
			}
		case *ast.BinaryExpression:
			walk(n.Left)
			walk(n.Right)
		case *ast.UnaryExpression:
			walk(n.Operand)
		case *ast.ConditionalExpression:
			walk(n.Cond)
			walk(n.Then)
			if n.Else != nil {
				walk(n.Else)
			}
		case *ast.ArrayExpression:
			for _, el := range n.Elements {
				walk(el)
			}
		}
	}
	walk(expr)
	return out
}

func referencesTAFunction(expr ast.Expression) bool {
	found := false
	var walk func(ast.Expression)
	walk = func(e ast.Expression) {
		if found {
			return
		}
		if call, ok := e.(*ast.CallExpression); ok {
			if name, ok := calleeName(call.Callee); ok {
				if _, isTA := nameresolve.TechnicalAnalysis[strings.TrimPrefix(name, "ta.")]; isTA {
					found = true
					return
				}
			}
			walk(call.Callee)
			for _, a := range call.Args {
				walk(a)
			}
			return
		}
		switch n := e.(type) {
		case *ast.BinaryExpression:
			walk(n.Left)
			walk(n.Right)
		case *ast.UnaryExpression:
			walk(n.Operand)
		case *ast.MemberExpression:
			walk(n.Object)
		case *ast.ConditionalExpression:
			walk(n.Cond)
			walk(n.Then)
			if n.Else != nil {
				walk(n.Else)
			}
		}
	}
	walk(expr)
	return found
}

// topoSortComputedVars orders v.declOrder's entries by a DFS-based
// topological sort over v.deps, breaking cycles deterministically by
// dropping back-edges and visiting the cycle's source in declaration order
// (spec.md invariant I3).
func (v *visitor) topoSortComputedVars() []*ComputedVar {
	const (
		white = iota
		gray
		black
	)
	color := map[string]int{}
	var order []string

	var visit func(name string)
	visit = func(name string) {
		if color[name] == black || color[name] == gray {
			return
		}
		color[name] = gray
		for _, dep := range v.deps[name] {
			if color[dep] == gray {
				continue // back edge: drop it, breaking the cycle
			}
			visit(dep)
		}
		color[name] = black
		order = append(order, name)
	}

	for _, name := range v.declOrder {
		visit(name)
	}

	out := make([]*ComputedVar, 0, len(order))
	for _, name := range order {
		out = append(out, &ComputedVar{Name: name, Expr: v.declared[name], DependsOn: v.deps[name]})
	}
	return out
}
