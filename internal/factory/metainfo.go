package factory

import (
	"strconv"

	"github.com/tidwall/sjson"

	"github.com/scriptlang/transpiler/internal/metadata"
)

var plotTypeNames = map[metadata.PlotStyle]string{
	metadata.PlotLine:      "line",
	metadata.PlotHistogram: "histogram",
	metadata.PlotArea:      "area",
	metadata.PlotCircles:   "circles",
	metadata.PlotColumns:   "columns",
	metadata.PlotCross:     "cross",
	metadata.PlotStepline:  "stepline",
	metadata.PlotShape:     "shape_plot",
	metadata.PlotHLine:     "hline",
}

var inputTypeNames = map[metadata.InputType]string{
	metadata.InputInteger: "integer",
	metadata.InputFloat:   "float",
	metadata.InputBool:    "bool",
	metadata.InputString:  "text",
	metadata.InputSource:  "source",
	metadata.InputTime:    "time",
	metadata.InputColor:   "color",
	metadata.InputSession: "session",
}

// buildMetainfoJSON composes the metainfo document shared by both output
// shapes (spec.md §6, "Native factory textual ABI"). includePalette is set
// only for the standalone bgcolor factory.
func buildMetainfoJSON(id, name string, rec *metadata.Record, includePalette bool) (string, error) {
	doc := "{}"
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, value)
	}

	set("_metainfoVersion", 51)
	set("id", MetainfoID(id))
	set("description", name)
	set("shortDescription", rec.ShortName)
	set("is_hidden_study", false)
	set("is_price_study", rec.Overlay)
	set("isCustomIndicator", true)
	set("format.type", "inherit")

	for i, p := range rec.Plots {
		idx := strconv.Itoa(i)
		set("plots."+idx+".id", p.ID)
		set("plots."+idx+".type", plotTypeNames[p.Style])
		set("styles."+p.ID+".title", p.Title)
		set("styles."+p.ID+".color", p.Color)
		set("styles."+p.ID+".linewidth", p.LineWidth)
		if p.Style == metadata.PlotHLine && p.Price != nil {
			set("defaults.styles."+p.ID+".value", *p.Price)
		}
	}

	for i, in := range rec.Inputs {
		idx := strconv.Itoa(i)
		set("inputs."+idx+".id", in.ID)
		set("inputs."+idx+".name", in.DisplayName)
		set("inputs."+idx+".type", inputTypeNames[in.Type])
		set("defaults.inputs."+in.ID, in.Default)
		if in.Min != nil {
			set("inputs."+idx+".min", *in.Min)
		}
		if in.Max != nil {
			set("inputs."+idx+".max", *in.Max)
		}
		if len(in.Options) > 0 {
			set("inputs."+idx+".options", in.Options)
		}
	}

	if includePalette {
		set("palettes.colors.0.name", "transparent")
		set("defaults.palettes.colors.0.color", "#00000000")
		for i, bg := range rec.BgColors {
			slot := strconv.Itoa(i + 1)
			set("palettes.colors."+slot+".name", "bgcolor_"+slot)
			set("defaults.palettes.colors."+slot+".color", bg.Color)
			set("defaults.palettes.colors."+slot+".width", 1)
			set("defaults.palettes.colors."+slot+".style", 0)
			set("defaults.palettes.colors."+slot+".transparency", bg.Transparency)
		}
	}

	if err != nil {
		return "", err
	}
	return doc, nil
}
