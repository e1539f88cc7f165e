package nameresolve

import (
	"strings"
	"testing"
)

// snapshotTables saves and returns a restore func, so tests that call
// LoadOverrides (which mutates the package-level tables in place) don't leak
// state into other tests.
func snapshotTables(t *testing.T) func() {
	t.Helper()
	savedTA := make(map[string]TAMapping, len(TechnicalAnalysis))
	for k, v := range TechnicalAnalysis {
		savedTA[k] = v
	}
	savedMath := make(map[string]string, len(Math))
	for k, v := range Math {
		savedMath[k] = v
	}
	savedColors := make(map[string]string, len(ColorConstants))
	for k, v := range ColorConstants {
		savedColors[k] = v
	}
	return func() {
		TechnicalAnalysis = savedTA
		Math = savedMath
		ColorConstants = savedColors
	}
}

func TestLoadOverridesAddsNewTAMapping(t *testing.T) {
	defer snapshotTables(t)()

	doc := `
[technical_analysis.supertrend]
emitted_name = "_ta.supertrend"
needs_context = true
multi_output = true
`
	if err := LoadOverrides(strings.NewReader(doc)); err != nil {
		t.Fatalf("LoadOverrides failed: %v", err)
	}
	m, ok := TechnicalAnalysis["supertrend"]
	if !ok {
		t.Fatal("expected supertrend to be added")
	}
	if m.EmittedName != "_ta.supertrend" || !m.NeedsContext || !m.MultiOutput || m.Stateful {
		t.Errorf("unexpected mapping: %+v", m)
	}
}

func TestLoadOverridesReplacesBuiltinMapping(t *testing.T) {
	defer snapshotTables(t)()

	doc := `
[technical_analysis.sma]
emitted_name = "_custom.sma"
needs_context = false
`
	if err := LoadOverrides(strings.NewReader(doc)); err != nil {
		t.Fatalf("LoadOverrides failed: %v", err)
	}
	m := TechnicalAnalysis["sma"]
	if m.EmittedName != "_custom.sma" {
		t.Errorf("EmittedName = %q, want override to win", m.EmittedName)
	}
	if m.NeedsContext {
		t.Error("expected the override's NeedsContext=false to win over the built-in true")
	}
}

func TestLoadOverridesMathAndColors(t *testing.T) {
	defer snapshotTables(t)()

	doc := `
[math]
cbrt = "Math.cbrt"

[colors]
magenta = "#FF00FF"
`
	if err := LoadOverrides(strings.NewReader(doc)); err != nil {
		t.Fatalf("LoadOverrides failed: %v", err)
	}
	if Math["cbrt"] != "Math.cbrt" {
		t.Errorf("Math[cbrt] = %q, want Math.cbrt", Math["cbrt"])
	}
	if ColorConstants["magenta"] != "#FF00FF" {
		t.Errorf("ColorConstants[magenta] = %q, want #FF00FF", ColorConstants["magenta"])
	}
}

func TestLoadOverridesInvalidTOMLReturnsError(t *testing.T) {
	defer snapshotTables(t)()

	if err := LoadOverrides(strings.NewReader("not = [valid toml")); err == nil {
		t.Error("expected an error for malformed TOML")
	}
}

func TestLoadOverridesEmptyDocumentIsNoop(t *testing.T) {
	defer snapshotTables(t)()

	before := len(TechnicalAnalysis)
	if err := LoadOverrides(strings.NewReader("")); err != nil {
		t.Fatalf("LoadOverrides failed: %v", err)
	}
	if len(TechnicalAnalysis) != before {
		t.Errorf("expected no change from an empty document, got %d entries, want %d", len(TechnicalAnalysis), before)
	}
}
