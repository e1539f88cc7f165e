package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/scriptlang/transpiler/internal/cerr"
	"github.com/scriptlang/transpiler/pkg/transpile"
)

// Version information (set by build flags)
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "scriptlangc",
	Short: "ScriptLang compiler",
	Long: `scriptlangc translates ScriptLang indicator scripts into the host
charting runtime's JavaScript indicator surface.

ScriptLang is a Python-indentation-sensitive language for financial
charting indicators, with series/historical operators and a large
math/technical-analysis standard library.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

// readSource resolves the lex/parse/transpile commands' shared input
// convention: an inline `-e` expression, a file argument, or stdin.
func readSource(evalExpr string, args []string) (source, label string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		data, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("reading %s: %w", args[0], readErr)
		}
		return string(data), args[0], nil
	}
	data, readErr := io.ReadAll(os.Stdin)
	if readErr != nil {
		return "", "", fmt.Errorf("reading stdin: %w", readErr)
	}
	return string(data), "<stdin>", nil
}

// reportFailure prints a *transpile.Failure as a caret-annotated,
// file-qualified excerpt (the way the teacher's compile.go renders
// *errors.CompilerError) and returns a short summary error for RunE. Any
// other error is passed through unchanged.
func reportFailure(err error, label string) error {
	var f *transpile.Failure
	if !errors.As(err, &f) {
		return err
	}
	fmt.Fprint(os.Stderr, cerr.New(f.Pos, f.Message, f.Source, label).Format(true))
	fmt.Fprintln(os.Stderr)
	return fmt.Errorf("%s: compilation failed", label)
}
