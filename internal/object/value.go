// Package object implements spec.md §3/§4.2's runtime value and object
// model: the tagged Value union, the Object representation (class tag,
// prototype link, extensible flag, ordered property table, per-class
// callable hook), and the property-access protocol (get/put/has/delete/
// define/enumerate/default_value) the evaluator drives every script
// operation through.
package object

import "github.com/cwbudde/go-jsvm/internal/heap"

// Class is an object's internal class tag (spec.md §3).
type Class int

const (
	ClassObject Class = iota
	ClassFunction
	ClassArray
	ClassString
	ClassBoolean
	ClassNumber
	ClassDate
	ClassRegExp
	ClassError
	ClassArguments
	ClassGlobal
	ClassMath
)

func (c Class) String() string {
	switch c {
	case ClassObject:
		return "Object"
	case ClassFunction:
		return "Function"
	case ClassArray:
		return "Array"
	case ClassString:
		return "String"
	case ClassBoolean:
		return "Boolean"
	case ClassNumber:
		return "Number"
	case ClassDate:
		return "Date"
	case ClassRegExp:
		return "RegExp"
	case ClassError:
		return "Error"
	case ClassArguments:
		return "Arguments"
	case ClassGlobal:
		return "global"
	case ClassMath:
		return "Math"
	default:
		return "Object"
	}
}

// Kind discriminates the Value union (spec.md §3 "Value").
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindObject
)

// Value is the tagged union every expression evaluates to. Only the
// field matching Kind is meaningful.
type Value struct {
	Kind Kind
	B    bool
	N    float64
	S    string
	O    *Object
}

var (
	Undefined = Value{Kind: KindUndefined}
	Null      = Value{Kind: KindNull}
	True      = Value{Kind: KindBoolean, B: true}
	False     = Value{Kind: KindBoolean, B: false}
)

func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

func Num(n float64) Value        { return Value{Kind: KindNumber, N: n} }
func Str(s string) Value         { return Value{Kind: KindString, S: s} }
func FromObject(o *Object) Value { return Value{Kind: KindObject, O: o} }

func (v Value) IsUndefined() bool { return v.Kind == KindUndefined }
func (v Value) IsNull() bool      { return v.Kind == KindNull }
func (v Value) IsNullOrUndefined() bool {
	return v.Kind == KindUndefined || v.Kind == KindNull
}
func (v Value) IsObject() bool { return v.Kind == KindObject }
func (v Value) IsCallable() bool {
	return v.Kind == KindObject && v.O != nil && v.O.Callable != nil
}

// TypeOf implements the `typeof` operator (spec.md §8: the six-member
// result set).
func (v Value) TypeOf() string {
	switch v.Kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "object"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		if v.O != nil && v.O.Callable != nil {
			return "function"
		}
		return "object"
	}
	return "undefined"
}

// Trace lets a Value participate in tracing when embedded in a
// Traceable's outbound-reference walk (only KindObject carries a
// reference; strings are held as native Go strings, not heap.String
// cells).
func (v Value) Trace(visit func(heap.Traceable)) {
	if v.Kind == KindObject && v.O != nil {
		visit(v.O)
	}
}
