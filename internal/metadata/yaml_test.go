package metadata

import (
	"strings"
	"testing"
)

func TestDumpYAMLBasicShape(t *testing.T) {
	rec := mustWalk(t, `indicator("YAML Test", overlay=true)
plot(close, title="Close")
`)
	out, err := rec.DumpYAML()
	if err != nil {
		t.Fatalf("DumpYAML failed: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "name: YAML Test") {
		t.Errorf("expected the indicator name in output, got:\n%s", s)
	}
	if !strings.Contains(s, "overlay: true") {
		t.Errorf("expected overlay: true, got:\n%s", s)
	}
	if !strings.Contains(s, "style: line") {
		t.Errorf("expected the default plot style rendered as a name, got:\n%s", s)
	}
}

func TestDumpYAMLUsedSourcesSortedDeterministically(t *testing.T) {
	rec := mustWalk(t, `indicator("Sources")
plot(volume + close + high + low + open)
`)
	out, err := rec.DumpYAML()
	if err != nil {
		t.Fatalf("DumpYAML failed: %v", err)
	}
	s := string(out)
	// The plot's value expression also names the sources; look only at the
	// used_sources section.
	start := strings.Index(s, "used_sources:")
	if start == -1 {
		t.Fatalf("expected a used_sources section, got:\n%s", s)
	}
	s = s[start:]
	idxClose := strings.Index(s, "close")
	idxHigh := strings.Index(s, "high")
	idxLow := strings.Index(s, "low")
	idxOpen := strings.Index(s, "open")
	idxVolume := strings.Index(s, "volume")
	if idxClose == -1 || idxHigh == -1 || idxLow == -1 || idxOpen == -1 || idxVolume == -1 {
		t.Fatalf("expected all five price sources listed, got:\n%s", s)
	}
	if !(idxClose < idxHigh && idxHigh < idxLow && idxLow < idxOpen && idxOpen < idxVolume) {
		t.Errorf("expected alphabetically sorted used_sources, got:\n%s", s)
	}
}

func TestDumpYAMLIsDeterministicAcrossRuns(t *testing.T) {
	src := `length = input.int(14, title="Length")
avg = sma(close, length)
indicator("Determinism")
plot(avg)
`
	rec1 := mustWalk(t, src)
	rec2 := mustWalk(t, src)

	out1, err := rec1.DumpYAML()
	if err != nil {
		t.Fatalf("DumpYAML failed: %v", err)
	}
	out2, err := rec2.DumpYAML()
	if err != nil {
		t.Fatalf("DumpYAML failed: %v", err)
	}
	if string(out1) != string(out2) {
		t.Errorf("expected identical output across independent walks of the same source:\n%s\n---\n%s", out1, out2)
	}
}

func TestDumpYAMLComputedVarsIncludeDependsOn(t *testing.T) {
	rec := mustWalk(t, `a = sma(close, 14)
b = a + 1
indicator("Deps")
plot(b)
`)
	out, err := rec.DumpYAML()
	if err != nil {
		t.Fatalf("DumpYAML failed: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "name: a") || !strings.Contains(s, "name: b") {
		t.Errorf("expected both computed vars listed, got:\n%s", s)
	}
	if !strings.Contains(s, "depends_on:") {
		t.Errorf("expected a depends_on entry for b, got:\n%s", s)
	}
}

func TestDumpYAMLOmitsEmptyOptionalSections(t *testing.T) {
	rec := mustWalk(t, `indicator("Minimal")
plot(close)
`)
	out, err := rec.DumpYAML()
	if err != nil {
		t.Fatalf("DumpYAML failed: %v", err)
	}
	s := string(out)
	if strings.Contains(s, "bg_colors:") {
		t.Errorf("did not expect a bg_colors section with no bgcolor calls, got:\n%s", s)
	}
	if strings.Contains(s, "warnings:") {
		t.Errorf("did not expect a warnings section with no warnings, got:\n%s", s)
	}
}

func TestDumpYAMLWarningsIncludeKindAndFunction(t *testing.T) {
	rec := mustWalk(t, `study("Deprecated Header")
plot(close)
`)
	out, err := rec.DumpYAML()
	if err != nil {
		t.Fatalf("DumpYAML failed: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "function_name: study") {
		t.Errorf("expected the deprecated header call recorded, got:\n%s", s)
	}
}
