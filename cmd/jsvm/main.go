// Command jsvm is the CLI driver for the interpreter: lex, parse, and run
// subcommands over the core evaluator, object model, and garbage-collected
// heap implemented under internal/.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-jsvm/cmd/jsvm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
