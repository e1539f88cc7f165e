package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scriptlang/transpiler/internal/cerr"
	"github.com/scriptlang/transpiler/internal/lexer"
	"github.com/scriptlang/transpiler/internal/metadata"
	"github.com/scriptlang/transpiler/internal/parser"
	"github.com/scriptlang/transpiler/pkg/transpile"
)

var (
	mappingStatsDump     bool
	mappingStatsDumpExpr string
)

var mappingStatsCmd = &cobra.Command{
	Use:   "mapping-stats [file]",
	Short: "Print the compiled-in name-resolution table sizes",
	Long: `Print counts of the built-in technical-analysis, math, and time
name mappings the compiler recognizes. Useful for checking coverage when
adding new mapping-table entries.

With --dump (and a file argument or -e), instead prints the extracted
metadata record for that script as YAML, for inspecting what the metadata
visitor collected without depending on Go struct layout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMappingStats,
}

func init() {
	rootCmd.AddCommand(mappingStatsCmd)

	mappingStatsCmd.Flags().BoolVar(&mappingStatsDump, "dump", false, "dump the metadata record for a script as YAML instead of printing table counts")
	mappingStatsCmd.Flags().StringVarP(&mappingStatsDumpExpr, "eval", "e", "", "dump inline code instead of reading from a file")
}

func runMappingStats(cmd *cobra.Command, args []string) error {
	if !mappingStatsDump {
		s := transpile.Stats()
		fmt.Printf("Technical analysis: %d (%d multi-output)\n", s.TechnicalAnalysis, s.MultiOutput)
		fmt.Printf("Math:                %d\n", s.Math)
		fmt.Printf("Time/utility:        %d\n", s.Time)
		fmt.Printf("Total:               %d\n", s.Total)
		return nil
	}

	source, label, err := readSource(mappingStatsDumpExpr, args)
	if err != nil {
		return err
	}
	l := lexer.New(source)
	prog, perr := parser.Parse(l)
	if perr != nil {
		fmt.Fprint(os.Stderr, cerr.New(perr.Pos, perr.Message, source, label).Format(true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("parsing failed")
	}
	out, err := metadata.Walk(prog).DumpYAML()
	if err != nil {
		return fmt.Errorf("dumping metadata: %w", err)
	}
	fmt.Print(string(out))
	return nil
}
