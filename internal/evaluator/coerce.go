package evaluator

import (
	"github.com/cwbudde/go-jsvm/internal/ast"
	"github.com/cwbudde/go-jsvm/internal/errors"
	"github.com/cwbudde/go-jsvm/internal/object"
)

// ToObject is the native-code-callable counterpart to toObject: built-in
// methods (internal/builtins) have no AST position to attach to a
// thrown TypeError, so this returns a plain *object.Throw instead of a
// Completion.
func (e *Evaluator) ToObject(v object.Value) (*object.Object, *object.Throw) {
	o, c := e.toObject(ast.Range{}, v)
	if o == nil {
		return nil, &object.Throw{Value: c.Value, Err: c.Err}
	}
	return o, nil
}

// toObject implements the ToObject abstract operation: wraps a primitive
// in its corresponding wrapper object (used for non-strict `this`
// boxing and `with(e) S`'s coercion of e). On failure (null/undefined)
// it returns a nil object and a CompletionThrow the caller should
// propagate as-is.
func (e *Evaluator) toObject(pos ast.Range, v object.Value) (*object.Object, Completion) {
	switch v.Kind {
	case object.KindNull, object.KindUndefined:
		return nil, e.throwError(pos, errors.TypeError, "Cannot convert undefined or null to object")
	case object.KindObject:
		return v.O, Completion{}
	case object.KindBoolean:
		o := object.NewObject(e.Heap, object.ClassBoolean, e.BooleanProto)
		o.PrimitiveValue = v
		return o, Completion{}
	case object.KindNumber:
		o := object.NewObject(e.Heap, object.ClassNumber, e.NumberProto)
		o.PrimitiveValue = v
		return o, Completion{}
	case object.KindString:
		o := object.NewObject(e.Heap, object.ClassString, e.StringProto)
		o.PrimitiveValue = v
		return o, Completion{}
	}
	return nil, Completion{}
}
