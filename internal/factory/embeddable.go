package factory

import (
	"fmt"
	"log"
	"sync"

	"github.com/scriptlang/transpiler/internal/metadata"
)

// notAvailable is the sentinel plot value substituted for every slot on a
// trapped compile or execution failure (spec.md §4.4).
const notAvailable = float64(-1) // the host's NOT_AVAILABLE constant, by convention

// MainFunc is one compiled indicator instance's per-bar evaluation step.
// ctx and inputCallback are opaque to the compiler core — the host supplies
// whatever shape its runtime context and input accessor take.
type MainFunc func(ctx any, inputCallback func(int) any) ([]float64, error)

// HostRuntime is the embedding host's dynamic-function facility (spec.md §9,
// "Dynamic evaluation"): given the emitted body text and its parameter
// names, it returns a callable. A host without dynamic evaluation can
// satisfy this by pre-binding the body at build time instead.
type HostRuntime interface {
	CompileFunction(params []string, body string) (MainFunc, error)
}

// Factory is the embeddable factory object (spec.md §4.5, §6).
type Factory struct {
	Name        string
	Metainfo    string
	PlotCount   int
	NewInstance func() (*Instance, error)
}

// Instance is one per-symbol/per-chart construction of a Factory.
type Instance struct {
	Main MainFunc
}

// BuildEmbeddable is the higher-order procedure of spec.md §4.5(1): given
// the host runtime, it returns a Factory whose NewInstance compiles body
// once per construction. A compile failure is returned as NewInstance's
// error; execution failures of the compiled main step are trapped by
// trapMain.
func BuildEmbeddable(host HostRuntime, id, name string, rec *metadata.Record, body string) (*Factory, error) {
	metaJSON, err := buildMetainfoJSON(id, name, rec, false)
	if err != nil {
		return nil, fmt.Errorf("factory: building metainfo: %w", err)
	}

	plotCount := len(rec.Plots)
	f := &Factory{
		Name:      FactoryName(id),
		Metainfo:  metaJSON,
		PlotCount: plotCount,
	}
	f.NewInstance = func() (*Instance, error) {
		compiled, err := host.CompileFunction([]string{"context", "inputCallback"}, body)
		if err != nil {
			return nil, fmt.Errorf("factory: compiling emitted body for %s: %w", f.Name, err)
		}
		return &Instance{Main: trapMain(f.Name, plotCount, compiled)}, nil
	}
	return f, nil
}

// trapMain wraps a compiled MainFunc so a per-bar execution failure logs
// once and yields not-available sentinels instead of propagating, per the
// compilation-trap rule.
func trapMain(name string, plotCount int, fn MainFunc) MainFunc {
	var once sync.Once
	return func(ctx any, inputCallback func(int) any) (result []float64, err error) {
		defer func() {
			if r := recover(); r != nil {
				once.Do(func() { log.Printf("scriptlang: %s: runtime panic: %v", name, r) })
				result, err = notAvailableVector(plotCount), nil
			}
		}()

		out, execErr := fn(ctx, inputCallback)
		if execErr != nil {
			once.Do(func() { log.Printf("scriptlang: %s: execution error: %v", name, execErr) })
			return notAvailableVector(plotCount), nil
		}
		return out, nil
	}
}

func notAvailableVector(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = notAvailable
	}
	return out
}
