package evaluator

import (
	"strconv"

	"github.com/cwbudde/go-jsvm/internal/ast"
	"github.com/cwbudde/go-jsvm/internal/object"
)

// scriptFunction is the Callable behind every function expression and
// declaration: a closure over the defining scope chain plus the AST of
// its body, invoked per spec.md §4.3's "Function call" steps.
type scriptFunction struct {
	ev     *Evaluator
	self   *object.Object // the Function-class object this Callable backs
	name   string
	params []string
	body   *ast.BlockStatement
	scope  *Scope
	strict bool
}

func (f *scriptFunction) Length() int        { return len(f.params) }
func (f *scriptFunction) IsConstructor() bool { return true }

// Call implements spec.md §4.3's six call-frame steps: activation,
// parameter binding, arguments object + aliasing, hoisting, scope
// composition, then body evaluation.
func (f *scriptFunction) Call(this object.Value, args []object.Value) (object.Value, *object.Throw) {
	ev := f.ev
	activation := object.NewObject(ev.Heap, object.ClassObject, ev.ObjectProto)

	for i, p := range f.params {
		v := object.Undefined
		if i < len(args) {
			v = args[i]
		}
		object.Put(activation, p, v, object.PutOptions{})
	}

	argObj := ev.makeArgumentsObject(activation, f.params, args, f.strict, f.self)
	object.Put(activation, "arguments", object.FromObject(argObj), object.PutOptions{})

	callScope := f.scope.Push(activation)
	callScope.Strict = f.strict || f.scope.Strict
	ev.hoistDeclarations(callScope, activation, f.body.Body)

	effectiveThis := this
	if !f.strict {
		switch {
		case this.IsNullOrUndefined():
			effectiveThis = object.FromObject(ev.Global)
		case this.Kind != object.KindObject:
			if boxed, errC := ev.toObject(f.body.Range, this); boxed != nil {
				effectiveThis = object.FromObject(boxed)
			} else if errC.Kind == CompletionThrow {
				return object.Undefined, &object.Throw{Value: errC.Value, Err: errC.Err}
			}
		}
	}

	c := ev.evalStatements(callScope, effectiveThis, f.body.Body)
	switch c.Kind {
	case CompletionReturn:
		return c.Value, nil
	case CompletionThrow:
		return object.Undefined, &object.Throw{Value: c.Value, Err: c.Err}
	default:
		return object.Undefined, nil
	}
}

// Construct implements spec.md §4.3's `new F(args)` steps 2-4 (step 1,
// the constructable check, is done by the caller before it ever reaches
// here — every scriptFunction is constructable).
func (f *scriptFunction) Construct(args []object.Value) (object.Value, *object.Throw) {
	protoVal, _ := object.Get(f.self, "prototype", false)
	proto := f.ev.ObjectProto
	if protoVal.IsObject() {
		proto = protoVal.O
	}
	newObj := object.NewObject(f.ev.Heap, object.ClassObject, proto)
	result, thr := f.Call(object.FromObject(newObj), args)
	if thr != nil {
		return object.Undefined, thr
	}
	if result.IsObject() {
		return result, nil
	}
	return object.FromObject(newObj), nil
}

// makeFunction allocates a Function-class object backed by a
// scriptFunction closing over scope, with its own `prototype` object
// whose `constructor` points back (spec.md §3 invariant: "A function's
// `prototype` property and its prototype's `constructor` property are
// mutually linked on creation").
func (e *Evaluator) makeFunction(scope *Scope, name string, params []string, body *ast.BlockStatement, strict bool) *object.Object {
	fnObj := object.NewObject(e.Heap, object.ClassFunction, e.FunctionProto)
	sf := &scriptFunction{ev: e, self: fnObj, name: name, params: params, body: body, scope: scope, strict: strict}
	fnObj.Callable = sf

	protoObj := object.NewObject(e.Heap, object.ClassObject, e.ObjectProto)
	object.Define(protoObj, "constructor", object.Descriptor{
		HasValue: true, Value: object.FromObject(fnObj),
		HasWritable: true, Writable: true,
		HasConfigurable: true, Configurable: true,
	})
	object.Define(fnObj, "prototype", object.Descriptor{
		HasValue: true, Value: object.FromObject(protoObj),
		HasWritable: true, Writable: true,
	})
	object.Define(fnObj, "length", object.Descriptor{HasValue: true, Value: object.Num(float64(len(params)))})
	if name != "" {
		object.Define(fnObj, "name", object.Descriptor{HasValue: true, Value: object.Str(name)})
	}
	return fnObj
}

// makeArgumentsObject builds the per-call `arguments` object (spec.md
// §3): indexed entries 0..argc-1 snapshot the arguments actually passed
// (so `arguments.length` always reflects argc, never paramCount), plus
// `callee`. Non-strict callers additionally alias indices below
// min(argc,paramCount) to the activation's same-position parameter slot.
func (e *Evaluator) makeArgumentsObject(activation *object.Object, params []string, args []object.Value, strict bool, callee *object.Object) *object.Object {
	argObj := object.NewObject(e.Heap, object.ClassArguments, e.ObjectProto)
	for i, v := range args {
		object.Put(argObj, strconv.Itoa(i), v, object.PutOptions{})
	}
	object.Put(argObj, "length", object.Num(float64(len(args))), object.PutOptions{})
	object.Put(argObj, "callee", object.FromObject(callee), object.PutOptions{})

	if !strict {
		aliasCount := len(params)
		if len(args) < aliasCount {
			aliasCount = len(args)
		}
		names := make([]string, aliasCount)
		copy(names, params[:aliasCount])
		argObj.AliasTarget = activation
		argObj.AliasNames = names
	}
	return argObj
}
