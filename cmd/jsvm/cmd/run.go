package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-jsvm/internal/builtins"
	"github.com/cwbudde/go-jsvm/internal/evaluator"
	"github.com/cwbudde/go-jsvm/internal/jsvmlog"
	"github.com/cwbudde/go-jsvm/internal/object"
	"github.com/cwbudde/go-jsvm/internal/parser"
)

var (
	evalExpr      string
	dumpAST       bool
	arenaCapacity int
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a script file or expression",
	Long: `Execute a script from a file, an inline expression, or stdin.

Examples:
  # Run a script file
  jsvm run script.js

  # Evaluate an inline expression
  jsvm run -e "console.log('Hello, World!')"

  # Run against the v1 dialect instead of the default v5
  jsvm run --lang v1 legacy.js`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before running (for debugging)")
	runCmd.Flags().IntVar(&arenaCapacity, "arena", 0, "initial heap arena capacity (0 selects the package default)")
}

func runScript(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}
	ver := langVersion(cmd)
	jsvmlog.Debugf("running %s as %s", filename, ver)

	p := parser.New(input, filename, ver)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "Parser errors:")
		for _, e := range errs {
			fmt.Fprint(os.Stderr, e.Format())
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if dumpAST {
		fmt.Println("Program:")
		dumpASTNode(program, 0)
		fmt.Println()
	}

	ev := evaluator.New(ver, filename, arenaCapacity)
	builtins.Install(ev)

	result, thrown := ev.Run(program)
	if thrown != nil {
		fmt.Fprintln(os.Stderr, thrown.Error())
		return fmt.Errorf("uncaught %s", thrown.Header())
	}

	if cfg.Verbose {
		if s, serr := object.ToString(result); serr == nil {
			fmt.Println(s)
		}
	}
	return nil
}
