package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scriptlang/transpiler/internal/cerr"
	"github.com/scriptlang/transpiler/pkg/transpile"
)

var validateEvalExpr string

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a ScriptLang script without emitting output",
	Long: `Validate lexes and parses a ScriptLang script, collecting every error
instead of stopping at the first one, and reports whether the script is
valid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateEvalExpr, "eval", "e", "", "validate inline code instead of reading from a file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	source, label, err := readSource(validateEvalExpr, args)
	if err != nil {
		return err
	}

	result := transpile.Validate(source)
	for _, e := range result.Errors {
		fmt.Fprint(os.Stderr, cerr.New(e.Pos, e.Message, source, label).Format(true))
		fmt.Fprintln(os.Stderr)
	}

	if result.Valid {
		fmt.Printf("%s: valid\n", label)
		return nil
	}
	return fmt.Errorf("%s: %d error(s)", label, len(result.Errors))
}
