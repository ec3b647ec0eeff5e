// Package builtins installs the host-native object graph (spec.md §4.4):
// Object/Function/Boolean/Number/String/Array/Date/RegExp/Error family,
// Math, console, and the global functions, onto a freshly constructed
// internal/evaluator.Evaluator. Each file here mirrors the teacher's
// one-file-per-builtin-object split.
package builtins

import (
	"fmt"

	"github.com/cwbudde/go-jsvm/internal/evaluator"
	"github.com/cwbudde/go-jsvm/internal/object"
)

// nativeFunc is a Go-implemented function body; thisArg has already been
// resolved (undefined for a bare call, the member base for a method
// call) exactly as internal/evaluator's own evalCall computes it.
type nativeFunc func(this object.Value, args []object.Value) (object.Value, *object.Throw)

// nativeConstruct backs `new F(...)`. A nil nativeConstruct makes the
// function non-constructable, per spec.md §4.3 step 1's TypeError.
type nativeConstruct func(args []object.Value) (object.Value, *object.Throw)

// nativeFunction is the object.Callable behind every built-in method and
// constructor — the native-code counterpart to internal/evaluator's
// scriptFunction.
type nativeFunction struct {
	name      string
	length    int
	call      nativeFunc
	construct nativeConstruct
}

func (f *nativeFunction) Call(this object.Value, args []object.Value) (object.Value, *object.Throw) {
	return f.call(this, args)
}

func (f *nativeFunction) Construct(args []object.Value) (object.Value, *object.Throw) {
	if f.construct == nil {
		return object.Undefined, object.NewThrow(object.Str("TypeError: " + f.name + " is not a constructor"))
	}
	return f.construct(args)
}

func (f *nativeFunction) IsConstructor() bool { return f.construct != nil }
func (f *nativeFunction) Length() int         { return f.length }

// newNativeFunction allocates a Function-class object wrapping fn, with
// its own non-enumerable `name`/`length` own properties (ES5.1 §15's
// built-in-function attribute shape).
func newNativeFunction(ev *evaluator.Evaluator, name string, length int, call nativeFunc, construct nativeConstruct) *object.Object {
	fnObj := object.NewObject(ev.Heap, object.ClassFunction, ev.FunctionProto)
	fnObj.Callable = &nativeFunction{name: name, length: length, call: call, construct: construct}
	object.Define(fnObj, "name", object.Descriptor{HasValue: true, Value: object.Str(name)})
	object.Define(fnObj, "length", object.Descriptor{HasValue: true, Value: object.Num(float64(length))})
	return fnObj
}

// method installs a non-enumerable native method onto proto/target —
// the ES5.1 default attribute shape for every built-in prototype method.
func method(ev *evaluator.Evaluator, target *object.Object, name string, length int, call nativeFunc) {
	fn := newNativeFunction(ev, name, length, call, nil)
	object.Define(target, name, object.Descriptor{
		HasValue: true, Value: object.FromObject(fn),
		HasWritable: true, Writable: true,
		HasConfigurable: true, Configurable: true,
	})
}

// constructor installs a constructable native function onto the global
// object, wiring the usual mutual `prototype`/`constructor` link.
func constructor(ev *evaluator.Evaluator, name string, length int, proto *object.Object, call nativeFunc, construct nativeConstruct) *object.Object {
	fn := newNativeFunction(ev, name, length, call, construct)
	object.Define(fn, "prototype", object.Descriptor{HasValue: true, Value: object.FromObject(proto)})
	object.Define(proto, "constructor", object.Descriptor{
		HasValue: true, Value: object.FromObject(fn),
		HasWritable: true, Writable: true,
		HasConfigurable: true, Configurable: true,
	})
	object.Put(ev.Global, name, object.FromObject(fn), object.PutOptions{})
	return fn
}

// HostFunc is the exported shape of a Go-implemented global function, for
// embedders registering host functions via pkg/script.
type HostFunc func(this object.Value, args []object.Value) (object.Value, *object.Throw)

// DefineGlobalFunction installs fn as a writable, configurable global
// function, the same attribute shape spec.md's built-in globals (parseInt,
// isNaN, ...) use, so host-registered functions are indistinguishable
// from built-in ones to script code.
func DefineGlobalFunction(ev *evaluator.Evaluator, name string, length int, fn HostFunc) {
	fnObj := newNativeFunction(ev, name, length, nativeFunc(fn), nil)
	object.Put(ev.Global, name, object.FromObject(fnObj), object.PutOptions{})
}

func argOr(args []object.Value, i int) object.Value {
	if i < len(args) {
		return args[i]
	}
	return object.Undefined
}

func throwTypeError(format string, args ...any) *object.Throw {
	return object.NewThrow(object.Str("TypeError: " + fmt.Sprintf(format, args...)))
}

func throwRangeError(format string, args ...any) *object.Throw {
	return object.NewThrow(object.Str("RangeError: " + fmt.Sprintf(format, args...)))
}

// valuesStrictEqual mirrors internal/evaluator's === semantics for the
// built-in methods (Array.prototype.indexOf) that specify
// strict-equality comparisons without going through the evaluator.
func valuesStrictEqual(a, b object.Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case object.KindUndefined, object.KindNull:
		return true
	case object.KindBoolean:
		return a.B == b.B
	case object.KindNumber:
		return a.N == b.N
	case object.KindString:
		return a.S == b.S
	case object.KindObject:
		return a.O == b.O
	}
	return false
}
