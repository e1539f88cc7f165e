package metadata

import "github.com/goccy/go-yaml"

// yamlView is the serialization shape for Record: the used-source and
// historical-access sets and the session variables become sorted lists so
// their order is the same across runs (DerivedSessionVars is passed through
// as a map), and
// expression-carrying fields are rendered as their textual form since
// ast.Expression itself carries no YAML tags.
type yamlView struct {
	Name      string `yaml:"name"`
	ShortName string `yaml:"short_name"`
	Overlay   bool   `yaml:"overlay"`

	Inputs   []yamlInput   `yaml:"inputs"`
	Plots    []yamlPlot    `yaml:"plots"`
	BgColors []yamlBgColor `yaml:"bg_colors,omitempty"`

	UsedSources      []string `yaml:"used_sources,omitempty"`
	HistoricalAccess []string `yaml:"historical_access,omitempty"`

	ComputedVars []yamlComputedVar `yaml:"computed_vars,omitempty"`

	SessionVars        []yamlSessionVar  `yaml:"session_vars,omitempty"`
	DerivedSessionVars map[string]string `yaml:"derived_session_vars,omitempty"`

	Warnings []yamlWarning `yaml:"warnings,omitempty"`
}

type yamlInput struct {
	ID          string   `yaml:"id"`
	DisplayName string   `yaml:"display_name"`
	Type        string   `yaml:"type"`
	Default     any      `yaml:"default"`
	Min         *float64 `yaml:"min,omitempty"`
	Max         *float64 `yaml:"max,omitempty"`
	Options     []string `yaml:"options,omitempty"`
}

type yamlPlot struct {
	ID        string   `yaml:"id"`
	Style     string   `yaml:"style"`
	Title     string   `yaml:"title,omitempty"`
	Color     string   `yaml:"color"`
	LineWidth int      `yaml:"line_width"`
	Value     string   `yaml:"value,omitempty"`
	Price     *float64 `yaml:"price,omitempty"`
}

type yamlBgColor struct {
	Color        string  `yaml:"color"`
	Transparency float64 `yaml:"transparency"`
	Condition    string  `yaml:"condition,omitempty"`
}

type yamlComputedVar struct {
	Name      string   `yaml:"name"`
	Expr      string   `yaml:"expr"`
	DependsOn []string `yaml:"depends_on,omitempty"`
}

type yamlSessionVar struct {
	Name       string `yaml:"name"`
	InputIndex int    `yaml:"input_index"`
	Timezone   string `yaml:"timezone"`
}

type yamlWarning struct {
	Kind         string `yaml:"kind"`
	FunctionName string `yaml:"function_name"`
	Message      string `yaml:"message"`
}

var inputTypeNames = map[InputType]string{
	InputInteger: "integer",
	InputFloat:   "float",
	InputBool:    "bool",
	InputString:  "string",
	InputSource:  "source",
	InputTime:    "time",
	InputColor:   "color",
	InputSession: "session",
}

var plotStyleNames = map[PlotStyle]string{
	PlotLine:      "line",
	PlotHistogram: "histogram",
	PlotArea:      "area",
	PlotCircles:   "circles",
	PlotColumns:   "columns",
	PlotCross:     "cross",
	PlotStepline:  "stepline",
	PlotShape:     "shape",
	PlotHLine:     "hline",
}

// DumpYAML renders r in the stable shape the CLI's mapping-stats --dump mode
// and this package's tests consume.
func (r *Record) DumpYAML() ([]byte, error) {
	view := yamlView{
		Name:               r.Name,
		ShortName:          r.ShortName,
		Overlay:            r.Overlay,
		UsedSources:        sortedKeys(r.UsedSources),
		HistoricalAccess:   sortedKeys(r.HistoricalAccess),
		DerivedSessionVars: r.DerivedSessionVars,
	}

	for _, in := range r.Inputs {
		view.Inputs = append(view.Inputs, yamlInput{
			ID: in.ID, DisplayName: in.DisplayName, Type: inputTypeNames[in.Type],
			Default: in.Default, Min: in.Min, Max: in.Max, Options: in.Options,
		})
	}
	for _, p := range r.Plots {
		yp := yamlPlot{
			ID: p.ID, Style: plotStyleNames[p.Style], Title: p.Title,
			Color: p.Color, LineWidth: p.LineWidth, Price: p.Price,
		}
		if p.Value != nil {
			yp.Value = p.Value.String()
		}
		view.Plots = append(view.Plots, yp)
	}
	for _, bg := range r.BgColors {
		view.BgColors = append(view.BgColors, yamlBgColor{
			Color: bg.Color, Transparency: bg.Transparency, Condition: bg.Condition,
		})
	}
	for _, cv := range r.ComputedVars {
		expr := ""
		if cv.Expr != nil {
			expr = cv.Expr.String()
		}
		view.ComputedVars = append(view.ComputedVars, yamlComputedVar{
			Name: cv.Name, Expr: expr, DependsOn: cv.DependsOn,
		})
	}
	for _, name := range sortedSessionVarNames(r.SessionVars) {
		sv := r.SessionVars[name]
		view.SessionVars = append(view.SessionVars, yamlSessionVar{
			Name: name, InputIndex: sv.InputIndex, Timezone: sv.Timezone,
		})
	}
	for _, w := range r.Warnings {
		view.Warnings = append(view.Warnings, yamlWarning{
			Kind: w.Kind, FunctionName: w.FunctionName, Message: w.Message,
		})
	}

	return yaml.Marshal(view)
}

func sortedSessionVarNames(m map[string]*SessionVar) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	// insertion sort is fine here: these sets are small (a handful of price
	// sources at most) and this keeps the package free of a sort import
	// used nowhere else.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
