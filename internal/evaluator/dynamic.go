package evaluator

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-jsvm/internal/ast"
	"github.com/cwbudde/go-jsvm/internal/errors"
	"github.com/cwbudde/go-jsvm/internal/object"
	"github.com/cwbudde/go-jsvm/internal/parser"
)

// EvalSource implements the global `eval` function: parses source under
// the evaluator's own version/file settings and runs it against scope,
// hoisting its declarations into scope's head object. The built-in
// global `eval` (internal/builtins) always passes a fresh global-only
// scope, so eval'd code does not see the calling function's locals and
// its declarations land on the global object.
func (e *Evaluator) EvalSource(scope *Scope, this object.Value, source string) (object.Value, Completion) {
	p := parser.New(source, e.File, e.Version)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, pe := range errs {
			msgs[i] = pe.Message
		}
		return object.Undefined, e.throwError(ast.Range{}, errors.SyntaxError, "%s", strings.Join(msgs, "; "))
	}
	e.hoistDeclarations(scope, scope.Head(), prog.Body)
	result := empty()
	for _, stmt := range prog.Body {
		c := e.evalStatement(scope, this, stmt)
		if c.Kind != CompletionNormal {
			return object.Undefined, c
		}
		if c.HasValue {
			result = c
		}
	}
	return result.Value, Completion{}
}

// CompileFunction implements the dynamic `Function(arg1, ..., body)`
// constructor: synthesizes `function anonymous(arg1, ...) { body }`
// source text, parses it as a single expression, and closes it over the
// global scope (dynamically-created functions are never lexically
// nested in the code that created them).
func (e *Evaluator) CompileFunction(params []string, body string) (*object.Object, *errors.ScriptThrow) {
	src := fmt.Sprintf("(function anonymous(%s) {\n%s\n})", strings.Join(params, ", "), body)
	p := parser.New(src, e.File, e.Version)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, pe := range errs {
			msgs[i] = pe.Message
		}
		return nil, errors.New(errors.SyntaxError, "%s", strings.Join(msgs, "; "))
	}
	if len(prog.Body) != 1 {
		return nil, errors.New(errors.SyntaxError, "invalid function body")
	}
	exprStmt, ok := prog.Body[0].(*ast.ExpressionStatement)
	if !ok {
		return nil, errors.New(errors.SyntaxError, "invalid function body")
	}
	fnExpr, ok := exprStmt.Expr.(*ast.FunctionExpression)
	if !ok {
		return nil, errors.New(errors.SyntaxError, "invalid function body")
	}
	scope := NewScope(e.Global)
	return e.makeFunction(scope, fnExpr.Name, fnExpr.Params, fnExpr.Body, fnExpr.Strict), nil
}
