package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-jsvm/internal/ast"
	"github.com/cwbudde/go-jsvm/internal/parser"
)

var parseDumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a script and display its AST",
	Long: `Parse script source code and display the Abstract Syntax Tree (AST).

If no file is provided, reads from stdin. Use -e to parse a single
expression from the command line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", true, "dump the AST structure")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	p := parser.New(input, filename, langVersion(cmd))
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "Parser errors:")
		for _, e := range errs {
			fmt.Fprint(os.Stderr, e.Format())
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if parseDumpAST {
		fmt.Println("Program:")
		dumpASTNode(program, 0)
	} else {
		fmt.Printf("parsed OK: %d top-level statement(s)\n", len(program.Body))
	}
	return nil
}

func dumpASTNode(node any, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}

	switch n := node.(type) {
	case *ast.Program:
		fmt.Printf("%sProgram (%d statements)\n", pad, len(n.Body))
		for _, s := range n.Body {
			dumpASTNode(s, indent+1)
		}
	case *ast.BlockStatement:
		fmt.Printf("%sBlockStatement (%d statements)\n", pad, len(n.Body))
		for _, s := range n.Body {
			dumpASTNode(s, indent+1)
		}
	case *ast.ExpressionStatement:
		fmt.Printf("%sExpressionStatement\n", pad)
		dumpASTNode(n.Expr, indent+1)
	case *ast.VarStatement:
		fmt.Printf("%sVarStatement\n", pad)
		for _, d := range n.Decls {
			fmt.Printf("%s  %s\n", pad, d.Name)
			if d.Init != nil {
				dumpASTNode(d.Init, indent+2)
			}
		}
	case *ast.FunctionDeclaration:
		fmt.Printf("%sFunctionDeclaration %s(%v)\n", pad, n.Name, n.Params)
		dumpASTNode(n.Body, indent+1)
	case *ast.IfStatement:
		fmt.Printf("%sIfStatement\n", pad)
		dumpASTNode(n.Test, indent+1)
		dumpASTNode(n.Cons, indent+1)
		if n.Alt != nil {
			dumpASTNode(n.Alt, indent+1)
		}
	case *ast.ForStatement:
		fmt.Printf("%sForStatement\n", pad)
		dumpASTNode(n.Body, indent+1)
	case *ast.WhileStatement:
		fmt.Printf("%sWhileStatement\n", pad)
		dumpASTNode(n.Test, indent+1)
		dumpASTNode(n.Body, indent+1)
	case *ast.ReturnStatement:
		fmt.Printf("%sReturnStatement\n", pad)
		if n.Value != nil {
			dumpASTNode(n.Value, indent+1)
		}
	case *ast.BinaryExpression:
		fmt.Printf("%sBinaryExpression (%s)\n", pad, n.Operator)
		dumpASTNode(n.Left, indent+1)
		dumpASTNode(n.Right, indent+1)
	case *ast.LogicalExpression:
		fmt.Printf("%sLogicalExpression (%s)\n", pad, n.Operator)
		dumpASTNode(n.Left, indent+1)
		dumpASTNode(n.Right, indent+1)
	case *ast.UnaryExpression:
		fmt.Printf("%sUnaryExpression (%s)\n", pad, n.Operator)
		dumpASTNode(n.Operand, indent+1)
	case *ast.AssignmentExpression:
		fmt.Printf("%sAssignmentExpression (%s=)\n", pad, n.Operator)
		dumpASTNode(n.Target, indent+1)
		dumpASTNode(n.Value, indent+1)
	case *ast.CallExpression:
		fmt.Printf("%sCallExpression\n", pad)
		dumpASTNode(n.Callee, indent+1)
		for _, a := range n.Args {
			dumpASTNode(a, indent+1)
		}
	case *ast.MemberExpression:
		fmt.Printf("%sMemberExpression (computed=%v)\n", pad, n.Computed)
		dumpASTNode(n.Object, indent+1)
		dumpASTNode(n.Property, indent+1)
	case *ast.NumberLiteral:
		fmt.Printf("%sNumberLiteral: %g\n", pad, n.Value)
	case *ast.StringLiteral:
		fmt.Printf("%sStringLiteral: %q\n", pad, n.Value)
	case *ast.BooleanLiteral:
		fmt.Printf("%sBooleanLiteral: %v\n", pad, n.Value)
	case *ast.Identifier:
		fmt.Printf("%sIdentifier: %s\n", pad, n.Name)
	case *ast.NullLiteral:
		fmt.Printf("%sNullLiteral\n", pad)
	case *ast.UndefinedLiteral:
		fmt.Printf("%sUndefinedLiteral\n", pad)
	default:
		fmt.Printf("%s%T\n", pad, node)
	}
}
