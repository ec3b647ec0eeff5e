package builtins

import (
	"github.com/cwbudde/go-jsvm/internal/evaluator"
	"github.com/cwbudde/go-jsvm/internal/object"
)

func installBoolean(ev *evaluator.Evaluator) {
	proto := ev.BooleanProto
	proto.PrimitiveValue = object.Bool(false)

	constructor(ev, "Boolean", 1, proto,
		func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			return object.Bool(object.ToBoolean(argOr(args, 0))), nil
		},
		func(args []object.Value) (object.Value, *object.Throw) {
			o := object.NewObject(ev.Heap, object.ClassBoolean, proto)
			o.PrimitiveValue = object.Bool(object.ToBoolean(argOr(args, 0)))
			return object.FromObject(o), nil
		})

	method(ev, proto, "valueOf", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		return thisBooleanValue(this)
	})
	method(ev, proto, "toString", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		v, thr := thisBooleanValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		if v.B {
			return object.Str("true"), nil
		}
		return object.Str("false"), nil
	})
}

func thisBooleanValue(this object.Value) (object.Value, *object.Throw) {
	if this.IsObject() && this.O.Class == object.ClassBoolean {
		return this.O.PrimitiveValue, nil
	}
	if this.Kind == object.KindBoolean {
		return this, nil
	}
	return object.Undefined, throwTypeError("Boolean.prototype method called on incompatible receiver")
}
