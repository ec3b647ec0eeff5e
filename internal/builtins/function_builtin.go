package builtins

import (
	"strconv"

	"github.com/cwbudde/go-jsvm/internal/evaluator"
	"github.com/cwbudde/go-jsvm/internal/object"
)

func installFunction(ev *evaluator.Evaluator) {
	proto := ev.FunctionProto

	constructor(ev, "Function", 1, proto,
		func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			return functionConstruct(ev, args)
		},
		func(args []object.Value) (object.Value, *object.Throw) {
			return functionConstruct(ev, args)
		})

	method(ev, proto, "toString", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		if !this.IsCallable() {
			return object.Undefined, throwTypeError("Function.prototype.toString is not generic")
		}
		name, _ := object.Get(this.O, "name", false)
		n, _ := object.ToString(name)
		return object.Str("function " + n + "() { [native code] }"), nil
	})
	method(ev, proto, "call", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		if !this.IsCallable() {
			return object.Undefined, throwTypeError("Function.prototype.call called on non-function")
		}
		callThis := argOr(args, 0)
		var rest []object.Value
		if len(args) > 1 {
			rest = args[1:]
		}
		return this.O.Callable.Call(callThis, rest)
	})
	method(ev, proto, "apply", 2, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		if !this.IsCallable() {
			return object.Undefined, throwTypeError("Function.prototype.apply called on non-function")
		}
		callThis := argOr(args, 0)
		argArray := argOr(args, 1)
		var rest []object.Value
		if argArray.IsObject() {
			n := argArray.O.ArrayLength
			rest = make([]object.Value, n)
			for i := uint32(0); i < n; i++ {
				v, thr := object.Get(argArray.O, strconv.FormatUint(uint64(i), 10), false)
				if thr != nil {
					return object.Undefined, thr
				}
				rest[i] = v
			}
		}
		return this.O.Callable.Call(callThis, rest)
	})
}

func functionConstruct(ev *evaluator.Evaluator, args []object.Value) (object.Value, *object.Throw) {
	var params []string
	var body string
	if len(args) > 0 {
		for _, a := range args[:len(args)-1] {
			s, thr := object.ToString(a)
			if thr != nil {
				return object.Undefined, thr
			}
			params = append(params, s)
		}
		s, thr := object.ToString(args[len(args)-1])
		if thr != nil {
			return object.Undefined, thr
		}
		body = s
	}
	fnObj, scriptErr := ev.CompileFunction(params, body)
	if scriptErr != nil {
		return object.Undefined, object.NewThrow(object.Str("SyntaxError: " + scriptErr.Message))
	}
	return object.FromObject(fnObj), nil
}
