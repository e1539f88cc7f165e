package emitter

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/scriptlang/transpiler/internal/lexer"
	"github.com/scriptlang/transpiler/internal/parser"
)

// TestEmitGoldenSnapshots locks down the emitted JS surface for a handful of
// representative scripts, so a change to lowering rules shows up as an
// explicit diff rather than a silent drift.
func TestEmitGoldenSnapshots(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "simple_moving_average",
			src: `indicator("SMA Test", overlay=true)
length = input.int(14, title="Length")
avg = sma(close, length)
plot(avg, title="SMA")
`,
		},
		{
			name: "historical_access_and_loop",
			src: `count = 0
while count < 10
    count := count + 1
x = close[1] + open[2]
`,
		},
		{
			name: "switch_cascading_if",
			src: `switch dayofweek
    1 => label = "Mon"
    2 => label = "Tue"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := lexer.New(tt.src)
			prog, err := parser.Parse(l)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			out := New().Emit(prog)
			snaps.MatchSnapshot(t, out)
		})
	}
}
