package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cwbudde/go-jsvm/internal/builtins"
	"github.com/cwbudde/go-jsvm/internal/evaluator"
	"github.com/cwbudde/go-jsvm/internal/object"
	"github.com/cwbudde/go-jsvm/internal/parser"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	Long: `Start an interactive session: each line is parsed and evaluated
against a single persistent global scope, so variables and functions
declared on one line are visible on the next.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	ver := langVersion(cmd)
	ev := evaluator.New(ver, "<repl>", 0)
	builtins.Install(ev)

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	prompt := ""
	if interactive {
		prompt = fmt.Sprintf("jsvm(%s)> ", ver)
		fmt.Printf("jsvm %s REPL (%s dialect). Ctrl-D to exit.\n", Version, ver)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if prompt != "" {
			fmt.Print(prompt)
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		p := parser.New(line, "<repl>", ver)
		program := p.ParseProgram()
		if errs := p.Errors(); len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprint(os.Stderr, e.Format())
			}
			continue
		}

		result, thrown := ev.Run(program)
		if thrown != nil {
			fmt.Fprintln(os.Stderr, thrown.Error())
			continue
		}
		if result.IsUndefined() {
			continue
		}
		if s, err := object.ToString(result); err == nil {
			fmt.Println(s)
		}
	}
	return scanner.Err()
}
