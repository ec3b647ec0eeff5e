package evaluator

import (
	"github.com/cwbudde/go-jsvm/internal/ast"
	"github.com/cwbudde/go-jsvm/internal/object"
)

// hoistDeclarations implements spec.md §4.3 function-call step 4:
// function declarations are bound first (as callable objects closing
// over scope, so forward references and mutual recursion among sibling
// declarations work), then every `var` name not already bound on the
// activation gets `undefined`. Function declarations win over a `var` of
// the same name because they run first and the Props.Has check below
// then skips the var.
func (e *Evaluator) hoistDeclarations(scope *Scope, activation *object.Object, body []ast.Statement) {
	for _, stmt := range body {
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok {
			closure := e.makeFunction(scope, fn.Name, fn.Params, fn.Body, fn.Strict)
			object.Put(activation, fn.Name, object.FromObject(closure), object.PutOptions{})
		}
	}
	names := map[string]bool{}
	collectVarNames(body, names)
	for name := range names {
		if !activation.Props.Has(name) {
			object.Put(activation, name, object.Undefined, object.PutOptions{})
		}
	}
}

// collectVarNames walks every statement reachable without crossing a
// nested function boundary, gathering `var` declarator names: `var` is
// function-scoped, not block-scoped, so a `var` buried in a nested `if`
// or loop body still hoists to the enclosing activation.
func collectVarNames(body []ast.Statement, out map[string]bool) {
	for _, stmt := range body {
		collectVarNamesStmt(stmt, out)
	}
}

func collectVarNamesStmt(stmt ast.Statement, out map[string]bool) {
	switch s := stmt.(type) {
	case *ast.VarStatement:
		for _, d := range s.Decls {
			out[d.Name] = true
		}
	case *ast.BlockStatement:
		collectVarNames(s.Body, out)
	case *ast.IfStatement:
		collectVarNamesStmt(s.Cons, out)
		if s.Alt != nil {
			collectVarNamesStmt(s.Alt, out)
		}
	case *ast.ForStatement:
		if s.Init != nil {
			collectVarNamesStmt(s.Init, out)
		}
		collectVarNamesStmt(s.Body, out)
	case *ast.ForInStatement:
		if s.IsVarDecl {
			out[s.VarName] = true
		}
		collectVarNamesStmt(s.Body, out)
	case *ast.WhileStatement:
		collectVarNamesStmt(s.Body, out)
	case *ast.DoWhileStatement:
		collectVarNamesStmt(s.Body, out)
	case *ast.WithStatement:
		collectVarNamesStmt(s.Body, out)
	case *ast.TryStatement:
		collectVarNames(s.Block.Body, out)
		if s.Catch != nil {
			collectVarNames(s.Catch.Body.Body, out)
		}
		if s.Finally != nil {
			collectVarNames(s.Finally.Body, out)
		}
	case *ast.SwitchStatement:
		for _, c := range s.Cases {
			collectVarNames(c.Body, out)
		}
	case *ast.LabeledStatement:
		collectVarNamesStmt(s.Body, out)
	}
}
