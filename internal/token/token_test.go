package token

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{IDENT, "IDENT"},
		{NUMBER, "NUMBER"},
		{DECLARE, "DECLARE"},
		{EOF, "EOF"},
		{Kind(9999), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindIsLiteralAndKeyword(t *testing.T) {
	if !NUMBER.IsLiteral() {
		t.Error("NUMBER should be a literal kind")
	}
	if IF.IsLiteral() {
		t.Error("IF should not be a literal kind")
	}
	if !IF.IsKeyword() {
		t.Error("IF should be a keyword kind")
	}
	if NUMBER.IsKeyword() {
		t.Error("NUMBER should not be a keyword kind")
	}
}

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		literal string
		want    Kind
	}{
		{"if", IF},
		{"while", WHILE},
		{"true", BOOLEAN},
		{"false", BOOLEAN},
		{"na", NA},
		{"close", IDENT},
		{"Close", IDENT}, // keywords are case-sensitive
		{"myVar", IDENT},
	}
	for _, tt := range tests {
		if got := LookupIdent(tt.literal); got != tt.want {
			t.Errorf("LookupIdent(%q) = %v, want %v", tt.literal, got, tt.want)
		}
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Line: 3, Column: 7, Offset: 42}
	if got, want := p.String(), "3:7"; got != want {
		t.Errorf("Position.String() = %q, want %q", got, want)
	}
}

func TestOperatorsSortedByLengthDescending(t *testing.T) {
	for i := 1; i < len(Operators); i++ {
		if len(Operators[i].lexeme) > len(Operators[i-1].lexeme) {
			t.Fatalf("Operators table not sorted by descending lexeme length at index %d: %q before %q",
				i, Operators[i-1].lexeme, Operators[i].lexeme)
		}
	}
}

func TestNewToken(t *testing.T) {
	pos := Position{Line: 1, Column: 1}
	tok := New(IDENT, "close", pos)
	if tok.Kind != IDENT || tok.Literal != "close" || tok.Pos != pos {
		t.Errorf("New() = %+v, unexpected shape", tok)
	}
}
