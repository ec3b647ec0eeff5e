package evaluator

import (
	"github.com/cwbudde/go-jsvm/internal/ast"
	"github.com/cwbudde/go-jsvm/internal/errors"
	"github.com/cwbudde/go-jsvm/internal/object"
)

// evalCall implements spec.md §4.3's call-this-binding rule: a callee
// reached through a MemberExpression binds `this` to the evaluated base
// object; any other callee shape (a bare identifier, a parenthesized
// expression, a call result, ...) binds `this` to undefined.
func (e *Evaluator) evalCall(scope *Scope, this object.Value, n *ast.CallExpression) (object.Value, Completion) {
	var calleeVal, callThis object.Value
	if member, ok := n.Callee.(*ast.MemberExpression); ok {
		baseVal, c := e.evalExpressionValue(scope, this, member.Object)
		if c.Kind == CompletionThrow {
			return object.Undefined, c
		}
		key, c2 := e.memberKey(scope, this, member)
		if c2.Kind == CompletionThrow {
			return object.Undefined, c2
		}
		baseObj, errC := e.toObject(member.Range, baseVal)
		if baseObj == nil {
			return object.Undefined, errC
		}
		v, thr := object.Get(baseObj, key, e.Version.StringIndexingReadsChars())
		if thr != nil {
			return object.Undefined, e.completionFromThrow(member.Range, thr)
		}
		calleeVal, callThis = v, baseVal
	} else {
		v, c := e.evalExpressionValue(scope, this, n.Callee)
		if c.Kind == CompletionThrow {
			return object.Undefined, c
		}
		calleeVal, callThis = v, object.Undefined
	}

	args, c := e.evalArgs(scope, this, n.Args)
	if c.Kind == CompletionThrow {
		return object.Undefined, c
	}

	if !calleeVal.IsCallable() {
		s, _ := object.ToString(calleeVal)
		return object.Undefined, e.throwError(n.Range, errors.TypeError, "%s is not a function", s)
	}

	result, thr := calleeVal.O.Callable.Call(callThis, args)
	if thr != nil {
		return object.Undefined, e.completionFromThrow(n.Range, thr)
	}
	return result, Completion{}
}

func (e *Evaluator) evalArgs(scope *Scope, this object.Value, list []ast.Expression) ([]object.Value, Completion) {
	args := make([]object.Value, len(list))
	for i, a := range list {
		v, c := e.evalExpressionValue(scope, this, a)
		if c.Kind == CompletionThrow {
			return nil, c
		}
		args[i] = v
	}
	return args, Completion{}
}

func (e *Evaluator) evalNew(scope *Scope, this object.Value, n *ast.NewExpression) (object.Value, Completion) {
	calleeVal, c := e.evalExpressionValue(scope, this, n.Callee)
	if c.Kind == CompletionThrow {
		return object.Undefined, c
	}
	args, c2 := e.evalArgs(scope, this, n.Args)
	if c2.Kind == CompletionThrow {
		return object.Undefined, c2
	}
	if !calleeVal.IsCallable() || !calleeVal.O.Callable.IsConstructor() {
		s, _ := object.ToString(calleeVal)
		return object.Undefined, e.throwError(n.Range, errors.TypeError, "%s is not a constructor", s)
	}
	result, thr := calleeVal.O.Callable.Construct(args)
	if thr != nil {
		return object.Undefined, e.completionFromThrow(n.Range, thr)
	}
	return result, Completion{}
}
