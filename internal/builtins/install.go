package builtins

import (
	"math"

	"github.com/cwbudde/go-jsvm/internal/evaluator"
	"github.com/cwbudde/go-jsvm/internal/object"
)

// Install populates ev's global object with the full built-in graph
// (spec.md §4.4): every prototype object, every constructor, Math,
// console, and the global functions. Call once per Evaluator before
// running any program.
func Install(ev *evaluator.Evaluator) {
	// ObjectProto has no prototype of its own; FunctionProto is the
	// prototype of every function object and is itself callable (it
	// returns undefined for any arguments), matching ES5.1 §15.3.4.
	ev.ObjectProto = object.NewObject(ev.Heap, object.ClassObject, nil)
	ev.FunctionProto = object.NewObject(ev.Heap, object.ClassFunction, ev.ObjectProto)
	ev.FunctionProto.Callable = &nativeFunction{name: "Function.prototype", call: func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		return object.Undefined, nil
	}}

	ev.ArrayProto = object.NewObject(ev.Heap, object.ClassArray, ev.ObjectProto)
	ev.StringProto = object.NewObject(ev.Heap, object.ClassString, ev.ObjectProto)
	ev.NumberProto = object.NewObject(ev.Heap, object.ClassNumber, ev.ObjectProto)
	ev.BooleanProto = object.NewObject(ev.Heap, object.ClassBoolean, ev.ObjectProto)
	ev.DateProto = object.NewObject(ev.Heap, object.ClassDate, ev.ObjectProto)
	ev.RegExpProto = object.NewObject(ev.Heap, object.ClassRegExp, ev.ObjectProto)
	ev.ErrorProto = object.NewObject(ev.Heap, object.ClassError, ev.ObjectProto)

	installObject(ev)
	installFunction(ev)
	installArray(ev)
	installString(ev)
	installNumber(ev)
	installBoolean(ev)
	installDate(ev)
	installRegExp(ev)
	installErrors(ev)
	installMath(ev)
	installConsole(ev)
	installGlobals(ev)

	if ev.Version.ReadOnlyGlobalPrimitives() {
		lockGlobal(ev, "undefined", object.Undefined)
		lockGlobal(ev, "NaN", object.Num(math.NaN()))
		lockGlobal(ev, "Infinity", object.Num(math.Inf(1)))
	} else {
		object.Put(ev.Global, "undefined", object.Undefined, object.PutOptions{})
		object.Put(ev.Global, "NaN", object.Num(math.NaN()), object.PutOptions{})
		object.Put(ev.Global, "Infinity", object.Num(math.Inf(1)), object.PutOptions{})
	}
}

func lockGlobal(ev *evaluator.Evaluator, name string, v object.Value) {
	object.Define(ev.Global, name, object.Descriptor{
		HasValue: true, Value: v,
		HasWritable: true, Writable: false,
		HasEnumerable: true, Enumerable: false,
		HasConfigurable: true, Configurable: false,
	})
}
