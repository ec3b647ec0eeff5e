package evaluator

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-jsvm/internal/ast"
	"github.com/cwbudde/go-jsvm/internal/errors"
	"github.com/cwbudde/go-jsvm/internal/object"
)

// evalExpressionValue evaluates expr for its value, per spec.md §4.3's
// GetValue-on-every-reference rule: every identifier and member access
// ultimately runs through GetValue rather than returning a bare Reference.
func (e *Evaluator) evalExpressionValue(scope *Scope, this object.Value, expr ast.Expression) (object.Value, Completion) {
	switch n := expr.(type) {
	case *ast.Identifier:
		ref := scope.Resolve(n.Name)
		v, thr := e.GetValue(ref)
		if thr != nil {
			return object.Undefined, e.completionFromThrow(n.Range, thr)
		}
		return v, Completion{}

	case *ast.NumberLiteral:
		return object.Num(n.Value), Completion{}
	case *ast.StringLiteral:
		return object.Str(n.Value), Completion{}
	case *ast.BooleanLiteral:
		return object.Bool(n.Value), Completion{}
	case *ast.NullLiteral:
		return object.Null, Completion{}
	case *ast.UndefinedLiteral:
		return object.Undefined, Completion{}
	case *ast.ThisExpression:
		return this, Completion{}
	case *ast.RegexLiteral:
		return object.FromObject(e.makeRegExpObject(n.Pattern, n.Flags)), Completion{}

	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(scope, this, n)
	case *ast.ObjectLiteral:
		return e.evalObjectLiteral(scope, this, n)
	case *ast.FunctionExpression:
		return object.FromObject(e.makeFunction(scope, n.Name, n.Params, n.Body, n.Strict)), Completion{}

	case *ast.MemberExpression:
		ref, c := e.evalReference(scope, this, n)
		if c.Kind == CompletionThrow {
			return object.Undefined, c
		}
		v, thr := e.GetValue(ref)
		if thr != nil {
			return object.Undefined, e.completionFromThrow(n.Range, thr)
		}
		return v, Completion{}

	case *ast.CallExpression:
		return e.evalCall(scope, this, n)
	case *ast.NewExpression:
		return e.evalNew(scope, this, n)
	case *ast.UnaryExpression:
		return e.evalUnary(scope, this, n)
	case *ast.UpdateExpression:
		return e.evalUpdate(scope, this, n)

	case *ast.BinaryExpression:
		lv, c := e.evalExpressionValue(scope, this, n.Left)
		if c.Kind == CompletionThrow {
			return object.Undefined, c
		}
		rv, c2 := e.evalExpressionValue(scope, this, n.Right)
		if c2.Kind == CompletionThrow {
			return object.Undefined, c2
		}
		res, thr := e.applyBinary(n.Operator, lv, rv)
		if thr != nil {
			return object.Undefined, e.completionFromThrow(n.Range, thr)
		}
		return res, Completion{}

	case *ast.LogicalExpression:
		lv, c := e.evalExpressionValue(scope, this, n.Left)
		if c.Kind == CompletionThrow {
			return object.Undefined, c
		}
		if n.Operator == "&&" {
			if !object.ToBoolean(lv) {
				return lv, Completion{}
			}
		} else {
			if object.ToBoolean(lv) {
				return lv, Completion{}
			}
		}
		return e.evalExpressionValue(scope, this, n.Right)

	case *ast.ConditionalExpression:
		tv, c := e.evalExpressionValue(scope, this, n.Test)
		if c.Kind == CompletionThrow {
			return object.Undefined, c
		}
		if object.ToBoolean(tv) {
			return e.evalExpressionValue(scope, this, n.Cons)
		}
		return e.evalExpressionValue(scope, this, n.Alt)

	case *ast.AssignmentExpression:
		return e.evalAssignment(scope, this, n)

	case *ast.SequenceExpression:
		var v object.Value
		for _, x := range n.Expressions {
			var c Completion
			v, c = e.evalExpressionValue(scope, this, x)
			if c.Kind == CompletionThrow {
				return object.Undefined, c
			}
		}
		return v, Completion{}
	}
	return object.Undefined, Completion{}
}

// evalReference resolves expr as an assignable Reference, used by
// assignment, update (++/--), delete, and for-in target binding.
func (e *Evaluator) evalReference(scope *Scope, this object.Value, expr ast.Expression) (*Reference, Completion) {
	switch n := expr.(type) {
	case *ast.Identifier:
		return scope.Resolve(n.Name), Completion{}
	case *ast.MemberExpression:
		objVal, c := e.evalExpressionValue(scope, this, n.Object)
		if c.Kind == CompletionThrow {
			return nil, c
		}
		key, c2 := e.memberKey(scope, this, n)
		if c2.Kind == CompletionThrow {
			return nil, c2
		}
		baseObj, errC := e.toObject(n.Range, objVal)
		if baseObj == nil {
			return nil, errC
		}
		return &Reference{Base: baseObj, Name: key, Strict: scope.Strict}, Completion{}
	default:
		return nil, e.throwError(expr.Pos(), errors.ReferenceError, "Invalid left-hand side in assignment")
	}
}

func (e *Evaluator) memberKey(scope *Scope, this object.Value, n *ast.MemberExpression) (string, Completion) {
	if !n.Computed {
		return n.Property.(*ast.Identifier).Name, Completion{}
	}
	kv, c := e.evalExpressionValue(scope, this, n.Property)
	if c.Kind == CompletionThrow {
		return "", c
	}
	s, thr := object.ToString(kv)
	if thr != nil {
		return "", e.completionFromThrow(n.Range, thr)
	}
	return s, Completion{}
}

func (e *Evaluator) evalUnary(scope *Scope, this object.Value, n *ast.UnaryExpression) (object.Value, Completion) {
	switch n.Operator {
	case "typeof":
		if id, ok := n.Operand.(*ast.Identifier); ok {
			ref := scope.Resolve(id.Name)
			if ref.Unresolvable {
				return object.Str("undefined"), Completion{}
			}
			v, thr := e.GetValue(ref)
			if thr != nil {
				return object.Undefined, e.completionFromThrow(n.Range, thr)
			}
			return object.Str(v.TypeOf()), Completion{}
		}
		v, c := e.evalExpressionValue(scope, this, n.Operand)
		if c.Kind == CompletionThrow {
			return object.Undefined, c
		}
		return object.Str(v.TypeOf()), Completion{}

	case "void":
		_, c := e.evalExpressionValue(scope, this, n.Operand)
		if c.Kind == CompletionThrow {
			return object.Undefined, c
		}
		return object.Undefined, Completion{}

	case "delete":
		return e.evalDelete(scope, this, n)
	}

	v, c := e.evalExpressionValue(scope, this, n.Operand)
	if c.Kind == CompletionThrow {
		return object.Undefined, c
	}
	res, thr := e.applyUnaryArith(n.Operator, v)
	if thr != nil {
		return object.Undefined, e.completionFromThrow(n.Range, thr)
	}
	return res, Completion{}
}

func (e *Evaluator) evalDelete(scope *Scope, this object.Value, n *ast.UnaryExpression) (object.Value, Completion) {
	switch target := n.Operand.(type) {
	case *ast.Identifier:
		ref := scope.Resolve(target.Name)
		if ref.Unresolvable {
			return object.Bool(true), Completion{}
		}
		ok, thr := object.Delete(ref.Base, ref.Name, scope.Strict)
		if thr != nil {
			return object.Undefined, e.completionFromThrow(n.Range, thr)
		}
		return object.Bool(ok), Completion{}

	case *ast.MemberExpression:
		objVal, c := e.evalExpressionValue(scope, this, target.Object)
		if c.Kind == CompletionThrow {
			return object.Undefined, c
		}
		key, c2 := e.memberKey(scope, this, target)
		if c2.Kind == CompletionThrow {
			return object.Undefined, c2
		}
		baseObj, errC := e.toObject(target.Range, objVal)
		if baseObj == nil {
			return object.Undefined, errC
		}
		ok, thr := object.Delete(baseObj, key, scope.Strict)
		if thr != nil {
			return object.Undefined, e.completionFromThrow(n.Range, thr)
		}
		return object.Bool(ok), Completion{}

	default:
		_, c := e.evalExpressionValue(scope, this, n.Operand)
		if c.Kind == CompletionThrow {
			return object.Undefined, c
		}
		return object.Bool(true), Completion{}
	}
}

func (e *Evaluator) evalUpdate(scope *Scope, this object.Value, n *ast.UpdateExpression) (object.Value, Completion) {
	ref, c := e.evalReference(scope, this, n.Operand)
	if c.Kind == CompletionThrow {
		return object.Undefined, c
	}
	old, thr := e.GetValue(ref)
	if thr != nil {
		return object.Undefined, e.completionFromThrow(n.Range, thr)
	}
	oldNum, thr2 := object.ToNumber(old)
	if thr2 != nil {
		return object.Undefined, e.completionFromThrow(n.Range, thr2)
	}
	delta := 1.0
	if n.Operator == "--" {
		delta = -1
	}
	newNum := oldNum + delta
	if thr := e.PutValue(ref, object.Num(newNum)); thr != nil {
		return object.Undefined, e.completionFromThrow(n.Range, thr)
	}
	if n.Prefix {
		return object.Num(newNum), Completion{}
	}
	return object.Num(oldNum), Completion{}
}

// evalAssignment follows ES5.1 §11.13.2's evaluation order precisely:
// resolve the reference, fetch its current value (compound ops only),
// *then* evaluate the right-hand side — so a valueOf/toString side
// effect on the right observes the left's pre-assignment state.
func (e *Evaluator) evalAssignment(scope *Scope, this object.Value, n *ast.AssignmentExpression) (object.Value, Completion) {
	ref, c := e.evalReference(scope, this, n.Target)
	if c.Kind == CompletionThrow {
		return object.Undefined, c
	}
	var lv object.Value
	if n.Operator != "" {
		v, thr := e.GetValue(ref)
		if thr != nil {
			return object.Undefined, e.completionFromThrow(n.Range, thr)
		}
		lv = v
	}
	rv, c2 := e.evalExpressionValue(scope, this, n.Value)
	if c2.Kind == CompletionThrow {
		return object.Undefined, c2
	}
	result := rv
	if n.Operator != "" {
		res, thr := e.applyBinary(n.Operator, lv, rv)
		if thr != nil {
			return object.Undefined, e.completionFromThrow(n.Range, thr)
		}
		result = res
	}
	if thr := e.PutValue(ref, result); thr != nil {
		return object.Undefined, e.completionFromThrow(n.Range, thr)
	}
	return result, Completion{}
}

func (e *Evaluator) evalArrayLiteral(scope *Scope, this object.Value, n *ast.ArrayLiteral) (object.Value, Completion) {
	arr := object.NewObject(e.Heap, object.ClassArray, e.ArrayProto)
	for i, elemExpr := range n.Elements {
		if elemExpr == nil {
			continue // elision leaves the slot absent, not undefined-valued
		}
		v, c := e.evalExpressionValue(scope, this, elemExpr)
		if c.Kind == CompletionThrow {
			return object.Undefined, c
		}
		object.Put(arr, strconv.Itoa(i), v, object.PutOptions{})
	}
	if n := uint32(len(n.Elements)); n > arr.ArrayLength {
		arr.ArrayLength = n
	}
	return object.FromObject(arr), Completion{}
}

// evalObjectLiteral builds a fresh object, routing get/set literal
// entries through object.Define so a `get x(){}`/`set x(v){}` pair
// declared as two separate properties merges into one accessor (Define's
// own merge-onto-current logic handles the pairing regardless of which
// half comes first).
func (e *Evaluator) evalObjectLiteral(scope *Scope, this object.Value, n *ast.ObjectLiteral) (object.Value, Completion) {
	obj := object.NewObject(e.Heap, object.ClassObject, e.ObjectProto)
	for _, prop := range n.Properties {
		switch prop.Kind {
		case ast.PropInit:
			v, c := e.evalExpressionValue(scope, this, prop.Value)
			if c.Kind == CompletionThrow {
				return object.Undefined, c
			}
			object.Put(obj, prop.Key, v, object.PutOptions{})
		case ast.PropGet, ast.PropSet:
			fnVal, c := e.evalExpressionValue(scope, this, prop.Value)
			if c.Kind == CompletionThrow {
				return object.Undefined, c
			}
			desc := object.Descriptor{HasEnumerable: true, Enumerable: true, HasConfigurable: true, Configurable: true}
			if prop.Kind == ast.PropGet {
				desc.HasGet, desc.Get = true, fnVal.O
			} else {
				desc.HasSet, desc.Set = true, fnVal.O
			}
			if _, thr := object.Define(obj, prop.Key, desc); thr != nil {
				return object.Undefined, e.completionFromThrow(n.Range, thr)
			}
		}
	}
	return object.FromObject(obj), Completion{}
}

func (e *Evaluator) makeRegExpObject(pattern, flags string) *object.Object {
	o := object.NewObject(e.Heap, object.ClassRegExp, e.RegExpProto)
	object.Put(o, "source", object.Str(pattern), object.PutOptions{})
	object.Put(o, "global", object.Bool(strings.Contains(flags, "g")), object.PutOptions{})
	object.Put(o, "ignoreCase", object.Bool(strings.Contains(flags, "i")), object.PutOptions{})
	object.Put(o, "multiline", object.Bool(strings.Contains(flags, "m")), object.PutOptions{})
	return o
}
