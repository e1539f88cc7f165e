package factory

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func TestBuildMetainfoJSONBasicFields(t *testing.T) {
	rec, _, _, _ := buildRecordAndBody(t, `indicator("Meta Test", overlay=true)
plot(close, title="Close")
`)
	doc, err := buildMetainfoJSON("meta-id", "Meta Test", rec, false)
	if err != nil {
		t.Fatalf("buildMetainfoJSON failed: %v", err)
	}
	if !strings.Contains(doc, "Meta Test") {
		t.Errorf("expected description in metainfo, got:\n%s", doc)
	}
	if got := gjson.Get(doc, "id").String(); got != "User_meta_id@tv-basicstudies-1" {
		t.Errorf("id = %q, want User_meta_id@tv-basicstudies-1", got)
	}
	if got := gjson.Get(doc, "is_price_study").Bool(); !got {
		t.Error("expected is_price_study = true for an overlay indicator")
	}
	if got := gjson.Get(doc, "plots.0.id").String(); got != "plot_0" {
		t.Errorf("plots.0.id = %q, want plot_0", got)
	}
}

func TestBuildMetainfoJSONPaletteOnlyWhenRequested(t *testing.T) {
	rec, _, _, _ := buildRecordAndBody(t, `indicator("Palette Test")
bgcolor(color.red, condition=close > open)
`)
	withPalette, err := buildMetainfoJSON("p-id", "Palette Test", rec, true)
	if err != nil {
		t.Fatalf("buildMetainfoJSON failed: %v", err)
	}
	if !gjson.Get(withPalette, "palettes.colors.0").Exists() {
		t.Errorf("expected a transparent slot 0, got:\n%s", withPalette)
	}
	if !gjson.Get(withPalette, "palettes.colors.1").Exists() {
		t.Errorf("expected a slot 1 for the single bgcolor, got:\n%s", withPalette)
	}

	withoutPalette, err := buildMetainfoJSON("p-id", "Palette Test", rec, false)
	if err != nil {
		t.Fatalf("buildMetainfoJSON failed: %v", err)
	}
	if gjson.Get(withoutPalette, "palettes").Exists() {
		t.Errorf("did not expect a palette when includePalette is false, got:\n%s", withoutPalette)
	}
}

func TestBuildMetainfoJSONInputTypeMinMax(t *testing.T) {
	rec, _, _, _ := buildRecordAndBody(t, `length = input.int(14, title="Length", minval=1, maxval=50)
indicator("Input Test")
plot(close)
`)
	doc, err := buildMetainfoJSON("i-id", "Input Test", rec, false)
	if err != nil {
		t.Fatalf("buildMetainfoJSON failed: %v", err)
	}
	if got := gjson.Get(doc, "inputs.0.type").String(); got != "integer" {
		t.Errorf("inputs.0.type = %q, want integer", got)
	}
	if got := gjson.Get(doc, "inputs.0.min").Float(); got != 1 {
		t.Errorf("inputs.0.min = %v, want 1", got)
	}
	if got := gjson.Get(doc, "inputs.0.max").Float(); got != 50 {
		t.Errorf("inputs.0.max = %v, want 50", got)
	}
}
