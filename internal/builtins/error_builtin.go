package builtins

import (
	"github.com/cwbudde/go-jsvm/internal/evaluator"
	"github.com/cwbudde/go-jsvm/internal/object"
)

var errorSubtypes = []string{"EvalError", "RangeError", "ReferenceError", "SyntaxError", "TypeError", "URIError"}

func installErrors(ev *evaluator.Evaluator) {
	proto := ev.ErrorProto
	object.Define(proto, "name", object.Descriptor{HasValue: true, Value: object.Str("Error"), HasWritable: true, Writable: true, HasConfigurable: true, Configurable: true})
	object.Define(proto, "message", object.Descriptor{HasValue: true, Value: object.Str(""), HasWritable: true, Writable: true, HasConfigurable: true, Configurable: true})

	method(ev, proto, "toString", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		if !this.IsObject() {
			return object.Undefined, throwTypeError("Error.prototype.toString called on non-object")
		}
		name := "Error"
		if nv, thr := object.Get(this.O, "name", false); thr == nil && !nv.IsUndefined() {
			if s, thr := object.ToString(nv); thr == nil {
				name = s
			}
		}
		msg := ""
		if mv, thr := object.Get(this.O, "message", false); thr == nil && !mv.IsUndefined() {
			if s, thr := object.ToString(mv); thr == nil {
				msg = s
			}
		}
		if msg == "" {
			return object.Str(name), nil
		}
		return object.Str(name + ": " + msg), nil
	})

	installOneErrorConstructor(ev, "Error", proto)

	for _, name := range errorSubtypes {
		subProto := object.NewObject(ev.Heap, object.ClassError, proto)
		object.Define(subProto, "name", object.Descriptor{HasValue: true, Value: object.Str(name), HasWritable: true, Writable: true, HasConfigurable: true, Configurable: true})
		installOneErrorConstructor(ev, name, subProto)
	}
}

func installOneErrorConstructor(ev *evaluator.Evaluator, name string, proto *object.Object) *object.Object {
	return constructor(ev, name, 1, proto,
		func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			return makeErrorInstance(ev, proto, args)
		},
		func(args []object.Value) (object.Value, *object.Throw) {
			return makeErrorInstance(ev, proto, args)
		})
}

func makeErrorInstance(ev *evaluator.Evaluator, proto *object.Object, args []object.Value) (object.Value, *object.Throw) {
	o := object.NewObject(ev.Heap, object.ClassError, proto)
	if msg := argOr(args, 0); !msg.IsUndefined() {
		s, thr := object.ToString(msg)
		if thr != nil {
			return object.Undefined, thr
		}
		object.Put(o, "message", object.Str(s), object.PutOptions{})
	}
	return object.FromObject(o), nil
}
