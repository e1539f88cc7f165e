package factory

import (
	"strings"
	"testing"

	"github.com/scriptlang/transpiler/internal/emitter"
	"github.com/scriptlang/transpiler/internal/lexer"
	"github.com/scriptlang/transpiler/internal/metadata"
	"github.com/scriptlang/transpiler/internal/parser"
)

func buildRecordAndBody(t *testing.T, src string) (*metadata.Record, string, string, *emitter.Emitter) {
	t.Helper()
	l := lexer.New(src)
	prog, err := parser.Parse(l)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	rec := metadata.Walk(prog)
	em := emitter.New()
	body := em.EmitBody(prog)
	preamble := em.Preamble(body)
	return rec, body, preamble, em
}

func TestBuildStandaloneGeneralIndicator(t *testing.T) {
	rec, body, preamble, em := buildRecordAndBody(t, `indicator("Test", overlay=true)
plot(close)
`)
	out, err := BuildStandalone("my-id", "Test", rec, body, preamble, em)
	if err != nil {
		t.Fatalf("BuildStandalone failed: %v", err)
	}
	if out.Name != "User_my_id" {
		t.Errorf("Name = %q, want User_my_id", out.Name)
	}
	if !strings.Contains(out.Source, "const _factory = {") {
		t.Errorf("expected factory object literal in source:\n%s", out.Source)
	}
	if !strings.Contains(out.Source, "NOT_AVAILABLE") {
		t.Errorf("expected a compile-trap fallback, got:\n%s", out.Source)
	}
	if strings.Contains(out.Source, "_bgColorIndex") {
		t.Errorf("did not expect bgcolor machinery for a plot-only indicator:\n%s", out.Source)
	}
}

func TestBuildStandaloneBgColorPrecedence(t *testing.T) {
	src := `indicator("BG Test")
bgcolor(color.red, condition=close > open)
bgcolor(color.blue, condition=close < open)
`
	rec, body, preamble, em := buildRecordAndBody(t, src)
	out, err := BuildStandalone("bg-id", "BG Test", rec, body, preamble, em)
	if err != nil {
		t.Fatalf("BuildStandalone failed: %v", err)
	}
	// The last-declared bgcolor (index 1, slot 2) must be tested first so it
	// wins ties, per the reverse-order scan.
	idxSlot2 := strings.Index(out.Source, "_bgColorIndex = 2")
	idxSlot1 := strings.Index(out.Source, "_bgColorIndex = 1")
	if idxSlot2 == -1 || idxSlot1 == -1 {
		t.Fatalf("expected both bgcolor slots in source:\n%s", out.Source)
	}
	if idxSlot2 > idxSlot1 {
		t.Errorf("expected slot 2 (last declared) to be tested before slot 1, got source:\n%s", out.Source)
	}
}

func TestBuildStandaloneComputedVarPreludeUsesInputCallback(t *testing.T) {
	src := `length = input.int(14, title="Length")
smoothed = sma(close, length)
indicator("Computed")
plot(smoothed)
`
	rec, body, preamble, em := buildRecordAndBody(t, src)
	out, err := BuildStandalone("computed-id", "Computed", rec, body, preamble, em)
	if err != nil {
		t.Fatalf("BuildStandalone failed: %v", err)
	}
	if !strings.Contains(out.Source, "inputCallback(0)") {
		t.Errorf("expected the computed-variable prelude to substitute the input reference, got:\n%s", out.Source)
	}
}
