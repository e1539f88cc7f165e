package transpile

import (
	"strings"
	"testing"
)

func TestTranspileSimpleBody(t *testing.T) {
	out, err := Transpile("x = close + 1\n")
	if err != nil {
		t.Fatalf("Transpile failed: %v", err)
	}
	if !strings.Contains(out, "let x =") {
		t.Errorf("expected emitted body to declare x, got:\n%s", out)
	}
}

func TestTranspileParseErrorReportsPosition(t *testing.T) {
	_, err := Transpile("x = \n")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	failure, ok := err.(*Failure)
	if !ok {
		t.Fatalf("expected *Failure, got %T: %v", err, err)
	}
	if failure.Pos.Line == 0 {
		t.Errorf("expected a non-zero line in the reported position, got %+v", failure.Pos)
	}
	if !strings.Contains(failure.Error(), "^") {
		t.Errorf("expected Error() to render a caret-annotated excerpt, got:\n%s", failure.Error())
	}
}

func TestTranspileToFactoryWithoutHost(t *testing.T) {
	src := `indicator("Test", overlay=true)
plot(close)
`
	result, err := TranspileToFactory(nil, src, "my-test", "")
	if err != nil {
		t.Fatalf("TranspileToFactory failed: %v", err)
	}
	if result.Factory != nil {
		t.Error("expected Factory to be nil when host is nil")
	}
	if result.Standalone == nil {
		t.Fatal("expected a standalone source")
	}
	if result.Metadata.Name != "Test" {
		t.Errorf("Metadata.Name = %q, want %q", result.Metadata.Name, "Test")
	}
	if !strings.Contains(result.Standalone.Source, "User_my_test") {
		t.Errorf("expected emitted factory name in standalone source:\n%s", result.Standalone.Source)
	}
}

func TestTranspileToFactoryDefaultsNameFromHeader(t *testing.T) {
	src := `indicator("Header Name")
plot(close)
`
	result, err := TranspileToFactory(nil, src, "id1", "")
	if err != nil {
		t.Fatalf("TranspileToFactory failed: %v", err)
	}
	if !strings.Contains(result.Standalone.Metainfo, "Header Name") {
		t.Errorf("expected metainfo to carry the header name, got:\n%s", result.Standalone.Metainfo)
	}
}

func TestValidateReportsAllErrors(t *testing.T) {
	result := Validate("x = \ny = \n")
	if result.Valid {
		t.Error("expected Valid = false")
	}
	if len(result.Errors) < 2 {
		t.Errorf("expected an error for each of the two statements, got %d", len(result.Errors))
	}
}

func TestValidateValidSource(t *testing.T) {
	result := Validate("x = close + 1\n")
	if !result.Valid {
		t.Errorf("expected Valid = true, got errors: %v", result.Errors)
	}
}

func TestStatsReturnsNonZeroCounts(t *testing.T) {
	s := Stats()
	if s.TechnicalAnalysis == 0 {
		t.Error("expected a non-zero TechnicalAnalysis count")
	}
	if s.Total != s.TechnicalAnalysis+s.Math+s.Time {
		t.Errorf("Total = %d, want sum of parts", s.Total)
	}
}
