package nameresolve

import "testing"

func TestTechnicalAnalysisKnownMappings(t *testing.T) {
	tests := []struct {
		name         string
		emittedName  string
		needsContext bool
		multiOutput  bool
		stateful     bool
	}{
		{"sma", "_ta.sma", true, false, false},
		{"ema", "_ta.ema", true, false, true},
		{"macd", "_ta.macd", true, true, true},
		{"bb", "_ta.bb", true, true, false},
		{"crossover", "_ta.crossover", true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := TechnicalAnalysis[tt.name]
			if !ok {
				t.Fatalf("no mapping for %q", tt.name)
			}
			if m.EmittedName != tt.emittedName {
				t.Errorf("EmittedName = %q, want %q", m.EmittedName, tt.emittedName)
			}
			if m.NeedsContext != tt.needsContext {
				t.Errorf("NeedsContext = %v, want %v", m.NeedsContext, tt.needsContext)
			}
			if m.MultiOutput != tt.multiOutput {
				t.Errorf("MultiOutput = %v, want %v", m.MultiOutput, tt.multiOutput)
			}
			if m.Stateful != tt.stateful {
				t.Errorf("Stateful = %v, want %v", m.Stateful, tt.stateful)
			}
		})
	}
}

func TestMathMappings(t *testing.T) {
	tests := map[string]string{
		"abs":  "Math.abs",
		"sqrt": "Math.sqrt",
		"avg":  "_avg",
		"sum":  "_sum",
	}
	for name, want := range tests {
		if got := Math[name]; got != want {
			t.Errorf("Math[%q] = %q, want %q", name, got, want)
		}
	}
}

func TestMathConstants(t *testing.T) {
	if MathConstants["pi"] != "Math.PI" {
		t.Errorf("MathConstants[pi] = %q, want Math.PI", MathConstants["pi"])
	}
	if MathConstants["e"] != "Math.E" {
		t.Errorf("MathConstants[e] = %q, want Math.E", MathConstants["e"])
	}
}

func TestColorConstantsKnownColors(t *testing.T) {
	if ColorConstants["red"] != "#FF0000" {
		t.Errorf("ColorConstants[red] = %q, want #FF0000", ColorConstants["red"])
	}
	if ColorConstants["lime"] != ColorConstants["green"] {
		t.Errorf("lime and green should both map to the same hex value")
	}
}

func TestPriceSourcesRecognizesOHLCVDerived(t *testing.T) {
	want := []string{"open", "high", "low", "close", "volume", "hl2", "hlc3", "ohlc4"}
	for _, name := range want {
		if !PriceSources[name] {
			t.Errorf("expected PriceSources[%q] to be true", name)
		}
	}
	if PriceSources["notaprice"] {
		t.Error("did not expect an unrecognized name to be a price source")
	}
}

func TestTimezonesMapsCanonicalIdentifiers(t *testing.T) {
	if Timezones["utc"] != "UTC" {
		t.Errorf("Timezones[utc] = %q, want UTC", Timezones["utc"])
	}
	if Timezones["america_newyork"] != "America/New_York" {
		t.Errorf("Timezones[america_newyork] = %q, want America/New_York", Timezones["america_newyork"])
	}
}

func TestDaysOfWeekCoversAllSevenDays(t *testing.T) {
	days := []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
	if len(DaysOfWeek) != len(days) {
		t.Errorf("DaysOfWeek has %d entries, want %d", len(DaysOfWeek), len(days))
	}
	for _, d := range days {
		if DaysOfWeek[d] == "" {
			t.Errorf("missing DaysOfWeek entry for %q", d)
		}
	}
}

func TestUnsupportedPartialDeprecatedClassification(t *testing.T) {
	if _, ok := Unsupported["alert"]; !ok {
		t.Error("expected alert to be classified as unsupported")
	}
	if _, ok := Partial["bgcolor"]; !ok {
		t.Error("expected bgcolor to be classified as partial")
	}
	if _, ok := Deprecated["study"]; !ok {
		t.Error("expected study to be classified as deprecated")
	}
}

func TestSessionPredicateConstant(t *testing.T) {
	if SessionPredicate != "session.in" {
		t.Errorf("SessionPredicate = %q, want session.in", SessionPredicate)
	}
}

func TestDefaultPlotColorIsSet(t *testing.T) {
	if DefaultPlotColor == "" {
		t.Error("expected a non-empty default plot color")
	}
}
