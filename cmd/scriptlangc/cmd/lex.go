package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scriptlang/transpiler/internal/cerr"
	"github.com/scriptlang/transpiler/internal/lexer"
	"github.com/scriptlang/transpiler/internal/token"
)

var (
	lexEvalExpr string
	showPos     bool
	showType    bool
	onlyErrors  bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a ScriptLang file or expression",
	Long: `Tokenize (lex) a ScriptLang program and print the resulting tokens.

Examples:
  scriptlangc lex indicator.sl
  scriptlangc lex -e "x = close[1] + 1"
  scriptlangc lex --show-type --show-pos indicator.sl
  scriptlangc lex --only-errors indicator.sl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from a file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token kind names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only lex errors")
}

func runLex(cmd *cobra.Command, args []string) error {
	source, label, err := readSource(lexEvalExpr, args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", label)
		fmt.Printf("Input length: %d bytes\n", len(source))
		fmt.Println("---")
	}

	l := lexer.New(source)
	tokenCount := 0
	for {
		tok := l.NextToken()
		if !onlyErrors {
			printToken(tok)
		}
		tokenCount++
		if tok.Kind == token.EOF {
			break
		}
	}

	for _, e := range l.Errors() {
		fmt.Fprint(os.Stderr, cerr.New(e.Pos, e.Message, source, label).Format(true))
		fmt.Fprintln(os.Stderr)
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", tokenCount)
	}

	if len(l.Errors()) > 0 {
		return fmt.Errorf("found %d lex error(s)", len(l.Errors()))
	}
	return nil
}

func printToken(tok token.Token) {
	var output string
	if showType {
		output = fmt.Sprintf("[%-10s]", tok.Kind.String())
	}
	if tok.Literal == "" {
		output += " " + tok.Kind.String()
	} else {
		output += fmt.Sprintf(" %q", tok.Literal)
	}
	if showPos {
		output += " @" + tok.Pos.String()
	}
	fmt.Println(output)
}
