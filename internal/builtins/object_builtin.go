package builtins

import (
	"github.com/cwbudde/go-jsvm/internal/evaluator"
	"github.com/cwbudde/go-jsvm/internal/object"
)

func installObject(ev *evaluator.Evaluator) {
	proto := ev.ObjectProto

	ctor := constructor(ev, "Object", 1, proto,
		func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			return objectConstruct(ev, args)
		},
		func(args []object.Value) (object.Value, *object.Throw) {
			return objectConstruct(ev, args)
		})

	method(ev, proto, "toString", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		if this.IsNullOrUndefined() {
			return object.Str("[object Undefined]"), nil
		}
		class := "Object"
		if this.IsObject() {
			class = this.O.Class.String()
		}
		return object.Str("[object " + class + "]"), nil
	})
	method(ev, proto, "toLocaleString", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		fn, _ := object.Get(this.O, "toString", false)
		if fn.IsCallable() {
			return fn.O.Callable.Call(this, nil)
		}
		return object.Str("[object Object]"), nil
	})
	method(ev, proto, "valueOf", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		return this, nil
	})
	method(ev, proto, "hasOwnProperty", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		o, thr := toThisObject(ev, this)
		if thr != nil {
			return object.Undefined, thr
		}
		key, thr := object.ToString(argOr(args, 0))
		if thr != nil {
			return object.Undefined, thr
		}
		_, ok := o.Props.Get(key)
		if !ok && o.Class == object.ClassArray {
			if idx, isIdx := canonicalArrayIndex(key); isIdx {
				ok = idx < o.ArrayLength
			}
		}
		return object.Bool(ok), nil
	})
	method(ev, proto, "propertyIsEnumerable", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		o, thr := toThisObject(ev, this)
		if thr != nil {
			return object.Undefined, thr
		}
		key, thr := object.ToString(argOr(args, 0))
		if thr != nil {
			return object.Undefined, thr
		}
		p, ok := o.Props.Get(key)
		return object.Bool(ok && p.Attrs.Enumerable), nil
	})
	method(ev, proto, "isPrototypeOf", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		arg := argOr(args, 0)
		if !arg.IsObject() || !this.IsObject() {
			return object.Bool(false), nil
		}
		for cur := arg.O.Proto; cur != nil; cur = cur.Proto {
			if cur == this.O {
				return object.Bool(true), nil
			}
		}
		return object.Bool(false), nil
	})

	if ev.Version.HasAccessors() {
		method(ev, ctor, "keys", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			arg := argOr(args, 0)
			if !arg.IsObject() {
				return object.Undefined, throwTypeError("Object.keys called on non-object")
			}
			var keys []string
			for _, k := range arg.O.Props.Keys() {
				p, _ := arg.O.Props.Get(k)
				if p.Attrs.Enumerable {
					keys = append(keys, k)
				}
			}
			return object.FromObject(makeStringArray(ev, keys)), nil
		})
		method(ev, ctor, "getPrototypeOf", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			arg := argOr(args, 0)
			if !arg.IsObject() {
				return object.Undefined, throwTypeError("Object.getPrototypeOf called on non-object")
			}
			if arg.O.Proto == nil {
				return object.Null, nil
			}
			return object.FromObject(arg.O.Proto), nil
		})
		method(ev, ctor, "create", 2, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			arg := argOr(args, 0)
			var parent *object.Object
			switch {
			case arg.IsNull():
				parent = nil
			case arg.IsObject():
				parent = arg.O
			default:
				return object.Undefined, throwTypeError("Object prototype may only be an Object or null")
			}
			return object.FromObject(object.NewObject(ev.Heap, object.ClassObject, parent)), nil
		})
		method(ev, ctor, "defineProperty", 3, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			target := argOr(args, 0)
			if !target.IsObject() {
				return object.Undefined, throwTypeError("Object.defineProperty called on non-object")
			}
			key, thr := object.ToString(argOr(args, 1))
			if thr != nil {
				return object.Undefined, thr
			}
			descVal := argOr(args, 2)
			if !descVal.IsObject() {
				return object.Undefined, throwTypeError("Property description must be an object")
			}
			desc, thr := descriptorFromObject(descVal.O)
			if thr != nil {
				return object.Undefined, thr
			}
			if _, thr := object.Define(target.O, key, desc); thr != nil {
				return object.Undefined, thr
			}
			return target, nil
		})
	}

	object.Define(ctor, "prototype", object.Descriptor{
		HasValue: true, Value: object.FromObject(proto),
		HasWritable: false, Writable: false,
	})
}

func descriptorFromObject(o *object.Object) (object.Descriptor, *object.Throw) {
	var d object.Descriptor
	if object.Has(o, "value") {
		v, thr := object.Get(o, "value", false)
		if thr != nil {
			return d, thr
		}
		d.HasValue, d.Value = true, v
	}
	if object.Has(o, "writable") {
		v, _ := object.Get(o, "writable", false)
		d.HasWritable, d.Writable = true, object.ToBoolean(v)
	}
	if object.Has(o, "enumerable") {
		v, _ := object.Get(o, "enumerable", false)
		d.HasEnumerable, d.Enumerable = true, object.ToBoolean(v)
	}
	if object.Has(o, "configurable") {
		v, _ := object.Get(o, "configurable", false)
		d.HasConfigurable, d.Configurable = true, object.ToBoolean(v)
	}
	if object.Has(o, "get") {
		v, _ := object.Get(o, "get", false)
		if v.IsCallable() {
			d.HasGet, d.Get = true, v.O
		}
	}
	if object.Has(o, "set") {
		v, _ := object.Get(o, "set", false)
		if v.IsCallable() {
			d.HasSet, d.Set = true, v.O
		}
	}
	return d, nil
}

func objectConstruct(ev *evaluator.Evaluator, args []object.Value) (object.Value, *object.Throw) {
	arg := argOr(args, 0)
	if arg.IsNullOrUndefined() {
		return object.FromObject(object.NewObject(ev.Heap, object.ClassObject, ev.ObjectProto)), nil
	}
	if arg.IsObject() {
		return arg, nil
	}
	o, thr := ev.ToObject(arg)
	if thr != nil {
		return object.Undefined, thr
	}
	return object.FromObject(o), nil
}

// toThisObject boxes a primitive `this` (so `"x".hasOwnProperty` etc.
// work the way ES5.1's built-in methods are specified to) or rejects
// null/undefined.
func toThisObject(ev *evaluator.Evaluator, this object.Value) (*object.Object, *object.Throw) {
	if this.IsObject() {
		return this.O, nil
	}
	return ev.ToObject(this)
}

func canonicalArrayIndex(key string) (uint32, bool) {
	n := uint32(0)
	if key == "" {
		return 0, false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return 0, false
		}
		n = n*10 + uint32(key[i]-'0')
	}
	return n, true
}
