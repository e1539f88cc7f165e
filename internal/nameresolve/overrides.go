package nameresolve

import (
	"io"

	"github.com/BurntSushi/toml"
)

// Overrides is the shape of a host-supplied TOML file layering additional
// ta.*/math.* name mappings on top of the compiled-in tables, without
// requiring a recompile.
type Overrides struct {
	TechnicalAnalysis map[string]OverrideTAMapping `toml:"technical_analysis"`
	Math              map[string]string            `toml:"math"`
	Colors            map[string]string            `toml:"colors"`
}

// OverrideTAMapping mirrors TAMapping in a TOML-friendly shape.
type OverrideTAMapping struct {
	EmittedName  string `toml:"emitted_name"`
	NeedsContext bool   `toml:"needs_context"`
	MultiOutput  bool   `toml:"multi_output"`
	Stateful     bool   `toml:"stateful"`
}

// LoadOverrides reads a TOML document from r and merges its entries into
// the package's compiled-in tables. Entries with the same key replace the
// built-in mapping; this is intentionally process-wide (the tables are
// read-only after program startup) rather than scoped to one compiler run,
// since it represents host deployment configuration, not per-compilation
// state.
func LoadOverrides(r io.Reader) error {
	var ov Overrides
	if _, err := toml.NewDecoder(r).Decode(&ov); err != nil {
		return err
	}

	for name, m := range ov.TechnicalAnalysis {
		TechnicalAnalysis[name] = TAMapping{
			EmittedName:  m.EmittedName,
			NeedsContext: m.NeedsContext,
			MultiOutput:  m.MultiOutput,
			Stateful:     m.Stateful,
		}
	}
	for name, emitted := range ov.Math {
		Math[name] = emitted
	}
	for name, hex := range ov.Colors {
		ColorConstants[name] = hex
	}
	return nil
}
