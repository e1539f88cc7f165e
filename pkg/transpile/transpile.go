// Package transpile exposes the compiler's language-neutral entry points
// (spec.md §6): transpile, transpile-to-factory, validate, and
// mapping-stats. The entry points keep no state between calls and write no
// process-wide state; they read the nameresolve tables, which
// nameresolve.LoadOverrides changes for the whole process.
package transpile

import (
	"fmt"

	"github.com/scriptlang/transpiler/internal/ast"
	"github.com/scriptlang/transpiler/internal/cerr"
	"github.com/scriptlang/transpiler/internal/emitter"
	"github.com/scriptlang/transpiler/internal/factory"
	"github.com/scriptlang/transpiler/internal/lexer"
	"github.com/scriptlang/transpiler/internal/metadata"
	"github.com/scriptlang/transpiler/internal/nameresolve"
	"github.com/scriptlang/transpiler/internal/parser"
	"github.com/scriptlang/transpiler/internal/token"
)

// Failure is a lex or parse failure carrying the offending position and the
// source it occurred in, so it can be rendered with a caret-annotated
// excerpt rather than a bare position.
type Failure struct {
	Message string
	Pos     token.Position
	Source  string
}

// Error renders the failure through cerr, the same caret-annotated format
// the CLI uses once it also knows the originating file name.
func (f *Failure) Error() string {
	return cerr.New(f.Pos, f.Message, f.Source, "").Format(false)
}

// Transpile lexes, parses, and emits the body with its preamble. It does not
// run the metadata pass and does not construct a factory.
func Transpile(source string) (string, error) {
	prog, _, err := parse(source)
	if err != nil {
		return "", err
	}
	em := emitter.New()
	return em.Emit(prog), nil
}

// FactoryResult is the success case of TranspileToFactory.
type FactoryResult struct {
	Metadata   *metadata.Record
	Factory    *factory.Factory          // nil unless a HostRuntime was supplied
	Standalone *factory.StandaloneSource
}

// TranspileToFactory lexes, parses, extracts metadata, emits the body, and
// composes both factory output shapes (spec.md §4.5, §6). host may be nil:
// when absent, Factory is omitted and only the standalone source (which
// needs no dynamic-evaluation facility) is produced.
func TranspileToFactory(host factory.HostRuntime, source, id, name string) (*FactoryResult, error) {
	prog, _, err := parse(source)
	if err != nil {
		return nil, err
	}

	rec := metadata.Walk(prog)
	if name == "" {
		name = rec.Name
	}

	em := emitter.New()
	body := em.EmitBody(prog)
	preamble := em.Preamble(body)

	standalone, err := factory.BuildStandalone(id, name, rec, body, preamble, em)
	if err != nil {
		return nil, fmt.Errorf("transpile: %w", err)
	}

	result := &FactoryResult{Metadata: rec, Standalone: standalone}

	if host != nil {
		f, err := factory.BuildEmbeddable(host, id, name, rec, preamble+body)
		if err != nil {
			return nil, fmt.Errorf("transpile: %w", err)
		}
		result.Factory = f
	}

	return result, nil
}

// ValidationResult is the outcome of Validate.
type ValidationResult struct {
	Valid  bool
	Errors []*Failure
}

// Validate attempts a lex + parse with collected errors rather than
// stopping at the first one (spec.md §6).
func Validate(source string) ValidationResult {
	l := lexer.New(source)
	_, perrs := parser.ParseBestEffort(l)

	var out []*Failure
	for _, e := range l.Errors() {
		out = append(out, &Failure{Message: e.Message, Pos: e.Pos, Source: source})
	}
	for _, e := range perrs {
		out = append(out, &Failure{Message: e.Message, Pos: e.Pos, Source: source})
	}

	return ValidationResult{Valid: len(out) == 0, Errors: out}
}

// MappingStats is the fixed-shape count report of spec.md §6.
type MappingStats struct {
	TechnicalAnalysis int
	Math              int
	Time              int
	MultiOutput       int
	Total             int
}

// Stats returns the compiled-in name-resolution table sizes, used by
// informational tooling.
func Stats() MappingStats {
	multiOutput := 0
	for _, m := range nameresolve.TechnicalAnalysis {
		if m.MultiOutput {
			multiOutput++
		}
	}
	s := MappingStats{
		TechnicalAnalysis: len(nameresolve.TechnicalAnalysis),
		Math:              len(nameresolve.Math) + len(nameresolve.MathConstants),
		Time:              len(nameresolve.Time) + len(nameresolve.Utility),
		MultiOutput:       multiOutput,
	}
	s.Total = s.TechnicalAnalysis + s.Math + s.Time
	return s
}

// parse runs the lex + fail-fast parse stage shared by Transpile and
// TranspileToFactory.
func parse(source string) (*ast.Program, *lexer.Lexer, error) {
	l := lexer.New(source)
	prog, perr := parser.Parse(l)
	if len(l.Errors()) > 0 {
		first := l.Errors()[0]
		return nil, l, &Failure{Message: first.Message, Pos: first.Pos, Source: source}
	}
	if perr != nil {
		return nil, l, &Failure{Message: perr.Message, Pos: perr.Pos, Source: source}
	}
	return prog, l, nil
}
