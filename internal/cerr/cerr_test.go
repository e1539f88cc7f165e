package cerr

import (
	"strings"
	"testing"

	"github.com/scriptlang/transpiler/internal/token"
)

func TestCompilerErrorFormatWithoutFile(t *testing.T) {
	e := New(token.Position{Line: 2, Column: 5}, "unexpected token", "x = 1\ny = +\n", "")
	out := e.Format(false)
	if !strings.Contains(out, "Error at line 2:5") {
		t.Errorf("expected header without a file name, got:\n%s", out)
	}
	if !strings.Contains(out, "y = +") {
		t.Errorf("expected the offending source line, got:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("expected a caret, got:\n%s", out)
	}
	if !strings.Contains(out, "unexpected token") {
		t.Errorf("expected the message, got:\n%s", out)
	}
}

func TestCompilerErrorFormatWithFile(t *testing.T) {
	e := New(token.Position{Line: 1, Column: 1}, "bad start", "???\n", "script.pine")
	out := e.Format(false)
	if !strings.Contains(out, "Error in script.pine:1:1") {
		t.Errorf("expected file-qualified header, got:\n%s", out)
	}
}

func TestCompilerErrorFormatCaretColumn(t *testing.T) {
	e := New(token.Position{Line: 1, Column: 5}, "bad op", "x = +1\n", "")
	out := e.Format(false)
	lines := strings.Split(out, "\n")
	var caretLine, sourceLine string
	for i, l := range lines {
		if strings.Contains(l, "x = +1") {
			sourceLine = l
			caretLine = lines[i+1]
			break
		}
	}
	if sourceLine == "" {
		t.Fatalf("source line not found in:\n%s", out)
	}
	caretIdx := strings.Index(caretLine, "^")
	sourceIdx := strings.Index(sourceLine, "+")
	if caretIdx != sourceIdx {
		t.Errorf("caret at column %d, want it aligned under column %d", caretIdx, sourceIdx)
	}
}

func TestCompilerErrorFormatColorAddsEscapes(t *testing.T) {
	e := New(token.Position{Line: 1, Column: 1}, "msg", "x\n", "")
	plain := e.Format(false)
	colored := e.Format(true)
	if strings.Contains(plain, "\033[") {
		t.Errorf("did not expect ANSI escapes without color, got:\n%s", plain)
	}
	if !strings.Contains(colored, "\033[") {
		t.Errorf("expected ANSI escapes with color, got:\n%s", colored)
	}
}

func TestCompilerErrorFormatMissingSourceLineOmitsCaret(t *testing.T) {
	e := New(token.Position{Line: 99, Column: 1}, "out of range", "x = 1\n", "")
	out := e.Format(false)
	if strings.Contains(out, "^") {
		t.Errorf("did not expect a caret when the source line is unavailable, got:\n%s", out)
	}
	if !strings.Contains(out, "out of range") {
		t.Errorf("expected the message regardless, got:\n%s", out)
	}
}

func TestCompilerErrorErrorMatchesUncoloredFormat(t *testing.T) {
	e := New(token.Position{Line: 1, Column: 1}, "boom", "x\n", "")
	if e.Error() != e.Format(false) {
		t.Errorf("Error() should match Format(false)")
	}
}

func TestFormatWithContextIncludesSurroundingLines(t *testing.T) {
	src := "a = 1\nb = 2\nc = +\nd = 4\ne = 5\n"
	e := New(token.Position{Line: 3, Column: 5}, "bad operand", src, "")
	out := e.FormatWithContext(1, false)
	if !strings.Contains(out, "b = 2") || !strings.Contains(out, "c = +") || !strings.Contains(out, "d = 4") {
		t.Errorf("expected one line of context on each side, got:\n%s", out)
	}
	if strings.Contains(out, "a = 1") || strings.Contains(out, "e = 5") {
		t.Errorf("did not expect lines beyond the requested context, got:\n%s", out)
	}
}

func TestFormatWithContextClampsAtSourceBoundaries(t *testing.T) {
	src := "a = 1\nb = 2\n"
	e := New(token.Position{Line: 1, Column: 1}, "bad start", src, "")
	out := e.FormatWithContext(5, false)
	if !strings.Contains(out, "a = 1") || !strings.Contains(out, "b = 2") {
		t.Errorf("expected both available lines, got:\n%s", out)
	}
}

func TestFormatWithContextFallsBackWhenSourceMissing(t *testing.T) {
	e := New(token.Position{Line: 1, Column: 1}, "no source", "", "")
	out := e.FormatWithContext(2, false)
	if out != e.Format(false) {
		t.Errorf("expected FormatWithContext to fall back to Format when source is empty")
	}
}

func TestFormatErrorsSingle(t *testing.T) {
	e := New(token.Position{Line: 1, Column: 1}, "only error", "x\n", "")
	out := FormatErrors([]*CompilerError{e}, false)
	if out != e.Format(false) {
		t.Errorf("a single error should format identically to Format()")
	}
}

func TestFormatErrorsMultipleAreNumbered(t *testing.T) {
	e1 := New(token.Position{Line: 1, Column: 1}, "first", "x\ny\n", "")
	e2 := New(token.Position{Line: 2, Column: 1}, "second", "x\ny\n", "")
	out := FormatErrors([]*CompilerError{e1, e2}, false)
	if !strings.Contains(out, "2 error(s)") {
		t.Errorf("expected an error count header, got:\n%s", out)
	}
	if !strings.Contains(out, "[Error 1 of 2]") || !strings.Contains(out, "[Error 2 of 2]") {
		t.Errorf("expected numbered sections, got:\n%s", out)
	}
}

func TestFormatErrorsEmpty(t *testing.T) {
	if out := FormatErrors(nil, false); out != "" {
		t.Errorf("expected empty string for no errors, got %q", out)
	}
}

func TestFromStringsParsesTrailingPosition(t *testing.T) {
	errs := FromStrings([]string{"unexpected token at 3:7"}, "a\nb\nc\n", "f.pine")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Message != "unexpected token" {
		t.Errorf("Message = %q, want %q", errs[0].Message, "unexpected token")
	}
	if errs[0].Pos.Line != 3 || errs[0].Pos.Column != 7 {
		t.Errorf("Pos = %+v, want {Line:3 Column:7}", errs[0].Pos)
	}
	if errs[0].File != "f.pine" {
		t.Errorf("File = %q, want f.pine", errs[0].File)
	}
}

func TestFromStringsWithoutPositionSuffix(t *testing.T) {
	errs := FromStrings([]string{"generic failure"}, "", "")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Message != "generic failure" {
		t.Errorf("Message = %q, want %q", errs[0].Message, "generic failure")
	}
	if errs[0].Pos != (token.Position{}) {
		t.Errorf("Pos = %+v, want zero value", errs[0].Pos)
	}
}
