package object

import "github.com/cwbudde/go-jsvm/internal/heap"

// Throw carries a script-level thrown value up through Go's error
// return path. internal/object and internal/builtins only ever populate
// Value (as a "<Name>: <message>" string internal/evaluator knows how to
// split). Err is an opaque `any` (an *errors.ScriptThrow, in practice)
// that internal/evaluator's own Callable implementation stashes here so
// a throw's full, already-accumulated frame stack survives the trip
// through the Callable interface instead of being rebuilt from scratch
// at every call boundary.
type Throw struct {
	Value Value
	Err   any
}

func (t *Throw) Error() string { return t.Value.S }

// NewThrow is a convenience constructor used throughout this package and
// internal/builtins to raise a value as a script exception.
func NewThrow(v Value) *Throw { return &Throw{Value: v} }

// Callable is implemented by every function object's behavior: a script
// closure (internal/evaluator) or a native built-in (internal/builtins).
// Keeping this as an interface rather than a concrete struct is what
// lets internal/object stay free of an import cycle with the package
// that actually walks function bodies.
type Callable interface {
	Call(this Value, args []Value) (Value, *Throw)
	Construct(args []Value) (Value, *Throw)
	IsConstructor() bool
	// Length reports the function's declared arity, used for the
	// non-enumerable `length` property every Function object exposes.
	Length() int
}

// Object is the runtime representation of spec.md §3's Object: a class
// tag, a prototype link, an extensible flag (meaningful under V5 only),
// an ordered property table, and class-specific internal slots.
type Object struct {
	Class      Class
	Proto      *Object
	Extensible bool
	Props      *PropertyTable

	// Callable is non-nil for Function-class objects.
	Callable Callable

	// PrimitiveValue backs Boolean/Number/String/Date wrapper objects
	// (the internal [[PrimitiveValue]] slot of spec.md §3).
	PrimitiveValue Value

	// Array-class bookkeeping: ArrayLength is the array's `length`
	// (Get/Put answer `length` from it directly; there is no `length`
	// entry in the property table), so index writes can maintain the
	// invariant in O(1) without rescanning the property table.
	ArrayLength uint32

	// Arguments-class aliasing (spec.md §3 "Arguments object"). When
	// AliasTarget is non-nil, Get/Put for a numeric index below
	// len(AliasNames) redirect to AliasTarget's same-named property
	// instead of this object's own table. V5-strict callers leave
	// AliasTarget nil so indices behave as plain data properties.
	AliasTarget *Object
	AliasNames  []string
}

// NewObject allocates a plain object of the given class with proto as
// its prototype link (nil for none) and registers it with h.
func NewObject(h *heap.Heap, class Class, proto *Object) *Object {
	o := &Object{Class: class, Proto: proto, Extensible: true, Props: newPropertyTable()}
	h.Allocate(o)
	return o
}

// Trace implements heap.Traceable: an object's outbound references are
// its prototype, every property's value/getter/setter, its alias
// target, and (for wrapper objects) a primitive object value.
func (o *Object) Trace(visit func(heap.Traceable)) {
	if o.Proto != nil {
		visit(o.Proto)
	}
	if o.AliasTarget != nil {
		visit(o.AliasTarget)
	}
	for _, k := range o.Props.Keys() {
		p, _ := o.Props.Get(k)
		if p.IsAccessor {
			if p.Get != nil {
				visit(p.Get)
			}
			if p.Set != nil {
				visit(p.Set)
			}
			continue
		}
		if p.Value.Kind == KindObject && p.Value.O != nil {
			visit(p.Value.O)
		}
	}
	if o.PrimitiveValue.Kind == KindObject && o.PrimitiveValue.O != nil {
		visit(o.PrimitiveValue.O)
	}
}
