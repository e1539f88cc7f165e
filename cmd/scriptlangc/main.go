// Command scriptlangc is the ScriptLang compiler CLI: lex, parse, transpile,
// and validate ScriptLang indicator scripts from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/scriptlang/transpiler/cmd/scriptlangc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
