package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scriptlang/transpiler/internal/ast"
	"github.com/scriptlang/transpiler/internal/cerr"
	"github.com/scriptlang/transpiler/internal/lexer"
	"github.com/scriptlang/transpiler/internal/parser"
)

var (
	parseEvalExpr   string
	parseDumpAST    bool
	parseBestEffort bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse ScriptLang source and display the AST",
	Long: `Parse ScriptLang source code and display the Abstract Syntax Tree.

If no file is provided, reads from stdin. Use -e to parse an inline
expression. Use --dump-ast for a structural dump instead of source-like
rendering.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from a file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST structure")
	parseCmd.Flags().BoolVar(&parseBestEffort, "best-effort", false, "collect every parse error instead of stopping at the first")
}

func runParse(cmd *cobra.Command, args []string) error {
	source, label, err := readSource(parseEvalExpr, args)
	if err != nil {
		return err
	}

	l := lexer.New(source)

	var prog *ast.Program
	if parseBestEffort {
		var errs []*parser.ParseError
		prog, errs = parser.ParseBestEffort(l)
		for _, e := range errs {
			fmt.Fprint(os.Stderr, cerr.New(e.Pos, e.Message, source, label).Format(true))
			fmt.Fprintln(os.Stderr)
		}
		if len(errs) > 0 {
			return fmt.Errorf("parsing failed with %d error(s)", len(errs))
		}
	} else {
		var perr *parser.ParseError
		prog, perr = parser.Parse(l)
		if perr != nil {
			fmt.Fprint(os.Stderr, cerr.New(perr.Pos, perr.Message, source, label).Format(true))
			fmt.Fprintln(os.Stderr)
			return fmt.Errorf("parsing failed")
		}
	}

	if parseDumpAST {
		fmt.Println("Abstract Syntax Tree:")
		fmt.Println("=====================")
		dumpASTNode(prog, 0)
	} else {
		fmt.Println(prog.String())
	}
	return nil
}

func dumpASTNode(node ast.Node, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}

	switch n := node.(type) {
	case *ast.Program:
		fmt.Printf("%sProgram (%d statements)\n", pad, len(n.Statements))
		for _, stmt := range n.Statements {
			dumpASTNode(stmt, indent+1)
		}
	case *ast.BlockStatement:
		fmt.Printf("%sBlockStatement (%d statements)\n", pad, len(n.Statements))
		for _, stmt := range n.Statements {
			dumpASTNode(stmt, indent+1)
		}
	case *ast.ExpressionStatement:
		fmt.Printf("%sExpressionStatement\n", pad)
		dumpASTNode(n.Expression, indent+1)
	case *ast.VariableDeclaration:
		fmt.Printf("%sVariableDeclaration: %s\n", pad, n.Left.String())
		if n.Init != nil {
			dumpASTNode(n.Init, indent+1)
		}
	case *ast.FunctionDeclaration:
		fmt.Printf("%sFunctionDeclaration: %s (%d params)\n", pad, n.Name, len(n.Params))
		dumpASTNode(n.Body, indent+1)
	case *ast.IfStatement:
		fmt.Printf("%sIfStatement\n", pad)
		dumpASTNode(n.Condition, indent+1)
		dumpASTNode(n.Then, indent+1)
		if n.Else != nil {
			dumpASTNode(n.Else, indent+1)
		}
	case *ast.BinaryExpression:
		fmt.Printf("%sBinaryExpression (%s)\n", pad, n.Operator)
		dumpASTNode(n.Left, indent+1)
		dumpASTNode(n.Right, indent+1)
	case *ast.UnaryExpression:
		fmt.Printf("%sUnaryExpression (%s)\n", pad, n.Operator)
		dumpASTNode(n.Operand, indent+1)
	case *ast.CallExpression:
		fmt.Printf("%sCallExpression: %s (%d args)\n", pad, n.Callee.String(), len(n.Args))
		for _, a := range n.Args {
			dumpASTNode(a, indent+1)
		}
	case *ast.Literal:
		fmt.Printf("%sLiteral: %v\n", pad, n.Value)
	case *ast.Identifier:
		fmt.Printf("%sIdentifier: %s\n", pad, n.Name)
	default:
		fmt.Printf("%s%T: %s\n", pad, node, node.String())
	}
}
