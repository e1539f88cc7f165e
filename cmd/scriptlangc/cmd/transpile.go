package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scriptlang/transpiler/pkg/transpile"
)

var (
	transpileEvalExpr string
	transpileOutput   string
	transpileID       string
	transpileName     string
	transpileFactory  bool
)

var transpileCmd = &cobra.Command{
	Use:   "transpile [file]",
	Short: "Transpile a ScriptLang indicator to the host runtime surface",
	Long: `Transpile a ScriptLang indicator script.

By default, prints the emitted body with its preamble. With --factory, also
builds the standalone indicator factory source (metainfo, computed-variable
prelude, compiled main body) instead of the bare body.

Examples:
  scriptlangc transpile indicator.sl
  scriptlangc transpile indicator.sl --factory --id my-indicator -o out.js
  scriptlangc transpile -e "plot(close)"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTranspile,
}

func init() {
	rootCmd.AddCommand(transpileCmd)

	transpileCmd.Flags().StringVarP(&transpileEvalExpr, "eval", "e", "", "transpile inline code instead of reading from a file")
	transpileCmd.Flags().StringVarP(&transpileOutput, "output", "o", "", "output file (default: stdout)")
	transpileCmd.Flags().StringVar(&transpileID, "id", "", "indicator id, used to derive the factory name and metainfo id")
	transpileCmd.Flags().StringVar(&transpileName, "name", "", "indicator display name (default: the script's header name)")
	transpileCmd.Flags().BoolVar(&transpileFactory, "factory", false, "build the standalone indicator factory instead of the bare body")
}

func runTranspile(cmd *cobra.Command, args []string) error {
	source, label, err := readSource(transpileEvalExpr, args)
	if err != nil {
		return err
	}

	var out string
	if transpileFactory {
		id := transpileID
		if id == "" {
			id = strings.TrimSuffix(filepath.Base(label), filepath.Ext(label))
		}
		result, err := transpile.TranspileToFactory(nil, source, id, transpileName)
		if err != nil {
			return reportFailure(err, label)
		}
		out = result.Standalone.Source
	} else {
		out, err = transpile.Transpile(source)
		if err != nil {
			return reportFailure(err, label)
		}
	}

	if transpileOutput == "" {
		fmt.Println(out)
		return nil
	}
	if err := os.WriteFile(transpileOutput, []byte(out), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", transpileOutput, err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", transpileOutput, len(out))
	return nil
}
