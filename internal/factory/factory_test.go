package factory

import "testing"

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"my-indicator", "my_indicator"},
		{"My Indicator 2.0", "My_Indicator_2_0"},
		{"already_fine_123", "already_fine_123"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeID(tt.in); got != tt.want {
			t.Errorf("SanitizeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFactoryName(t *testing.T) {
	if got, want := FactoryName("my-indicator"), "User_my_indicator"; got != want {
		t.Errorf("FactoryName() = %q, want %q", got, want)
	}
}

func TestMetainfoID(t *testing.T) {
	if got, want := MetainfoID("my-indicator"), "User_my_indicator@tv-basicstudies-1"; got != want {
		t.Errorf("MetainfoID() = %q, want %q", got, want)
	}
}

func TestIndentLines(t *testing.T) {
	in := "a\nb\n\nc"
	out := indentLines(in, 2)
	want := "  a\n  b\n\n  c\n"
	if out != want {
		t.Errorf("indentLines() = %q, want %q", out, want)
	}
}
