package builtins

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-jsvm/internal/evaluator"
	"github.com/cwbudde/go-jsvm/internal/object"
)

func installArray(ev *evaluator.Evaluator) {
	proto := ev.ArrayProto

	ctor := constructor(ev, "Array", 1, proto,
		func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			return arrayConstruct(ev, args)
		},
		func(args []object.Value) (object.Value, *object.Throw) {
			return arrayConstruct(ev, args)
		})

	method(ev, proto, "toString", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		return arrayJoin(this, []object.Value{object.Str(",")})
	})
	method(ev, proto, "join", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		return arrayJoin(this, args)
	})
	method(ev, proto, "push", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		if !this.IsObject() {
			return object.Undefined, throwTypeError("Array.prototype.push called on non-object")
		}
		a := this.O
		n := a.ArrayLength
		for _, v := range args {
			if thr := object.Put(a, strconv.FormatUint(uint64(n), 10), v, object.PutOptions{}); thr != nil {
				return object.Undefined, thr
			}
			n++
		}
		return object.Num(float64(a.ArrayLength)), nil
	})
	method(ev, proto, "pop", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		if !this.IsObject() || this.O.ArrayLength == 0 {
			return object.Undefined, nil
		}
		a := this.O
		idx := a.ArrayLength - 1
		key := strconv.FormatUint(uint64(idx), 10)
		v, thr := object.Get(a, key, false)
		if thr != nil {
			return object.Undefined, thr
		}
		object.Delete(a, key, false)
		a.ArrayLength = idx
		return v, nil
	})
	method(ev, proto, "shift", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		if !this.IsObject() || this.O.ArrayLength == 0 {
			return object.Undefined, nil
		}
		a := this.O
		first, _ := object.Get(a, "0", false)
		for i := uint32(1); i < a.ArrayLength; i++ {
			v, _ := object.Get(a, strconv.FormatUint(uint64(i), 10), false)
			object.Put(a, strconv.FormatUint(uint64(i-1), 10), v, object.PutOptions{})
		}
		object.Delete(a, strconv.FormatUint(uint64(a.ArrayLength-1), 10), false)
		a.ArrayLength--
		return first, nil
	})
	method(ev, proto, "unshift", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		if !this.IsObject() {
			return object.Undefined, throwTypeError("Array.prototype.unshift called on non-object")
		}
		a := this.O
		shift := uint32(len(args))
		for i := a.ArrayLength; i > 0; i-- {
			v, _ := object.Get(a, strconv.FormatUint(uint64(i-1), 10), false)
			object.Put(a, strconv.FormatUint(uint64(i-1+shift), 10), v, object.PutOptions{})
		}
		for i, v := range args {
			object.Put(a, strconv.Itoa(i), v, object.PutOptions{})
		}
		return object.Num(float64(a.ArrayLength)), nil
	})
	method(ev, proto, "slice", 2, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		a, thr := ev.ToObject(this)
		if thr != nil {
			return object.Undefined, thr
		}
		length := int(a.ArrayLength)
		start, thr := sliceIndex(argOr(args, 0), length, 0)
		if thr != nil {
			return object.Undefined, thr
		}
		end, thr := sliceIndex(argOr(args, 1), length, length)
		if thr != nil {
			return object.Undefined, thr
		}
		out := object.NewObject(ev.Heap, object.ClassArray, ev.ArrayProto)
		n := 0
		for i := start; i < end; i++ {
			v, _ := object.Get(a, strconv.Itoa(i), false)
			object.Put(out, strconv.Itoa(n), v, object.PutOptions{})
			n++
		}
		return object.FromObject(out), nil
	})
	method(ev, proto, "concat", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		out := object.NewObject(ev.Heap, object.ClassArray, ev.ArrayProto)
		n := 0
		appendOne := func(v object.Value) {
			if v.IsObject() && v.O.Class == object.ClassArray {
				for i := uint32(0); i < v.O.ArrayLength; i++ {
					elem, _ := object.Get(v.O, strconv.FormatUint(uint64(i), 10), false)
					object.Put(out, strconv.Itoa(n), elem, object.PutOptions{})
					n++
				}
				return
			}
			object.Put(out, strconv.Itoa(n), v, object.PutOptions{})
			n++
		}
		appendOne(this)
		for _, v := range args {
			appendOne(v)
		}
		return object.FromObject(out), nil
	})
	method(ev, proto, "indexOf", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		a, thr := ev.ToObject(this)
		if thr != nil {
			return object.Undefined, thr
		}
		target := argOr(args, 0)
		for i := uint32(0); i < a.ArrayLength; i++ {
			v, _ := object.Get(a, strconv.FormatUint(uint64(i), 10), false)
			if valuesStrictEqual(v, target) {
				return object.Num(float64(i)), nil
			}
		}
		return object.Num(-1), nil
	})
	method(ev, proto, "forEach", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		a, thr := ev.ToObject(this)
		if thr != nil {
			return object.Undefined, thr
		}
		cb := argOr(args, 0)
		if !cb.IsCallable() {
			return object.Undefined, throwTypeError("Array.prototype.forEach callback is not a function")
		}
		for i := uint32(0); i < a.ArrayLength; i++ {
			v, _ := object.Get(a, strconv.FormatUint(uint64(i), 10), false)
			if _, thr := cb.O.Callable.Call(argOr(args, 1), []object.Value{v, object.Num(float64(i)), this}); thr != nil {
				return object.Undefined, thr
			}
		}
		return object.Undefined, nil
	})
	method(ev, proto, "map", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		a, thr := ev.ToObject(this)
		if thr != nil {
			return object.Undefined, thr
		}
		cb := argOr(args, 0)
		if !cb.IsCallable() {
			return object.Undefined, throwTypeError("Array.prototype.map callback is not a function")
		}
		out := object.NewObject(ev.Heap, object.ClassArray, ev.ArrayProto)
		for i := uint32(0); i < a.ArrayLength; i++ {
			v, _ := object.Get(a, strconv.FormatUint(uint64(i), 10), false)
			r, thr := cb.O.Callable.Call(argOr(args, 1), []object.Value{v, object.Num(float64(i)), this})
			if thr != nil {
				return object.Undefined, thr
			}
			object.Put(out, strconv.FormatUint(uint64(i), 10), r, object.PutOptions{})
		}
		return object.FromObject(out), nil
	})
	method(ev, proto, "filter", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		a, thr := ev.ToObject(this)
		if thr != nil {
			return object.Undefined, thr
		}
		cb := argOr(args, 0)
		if !cb.IsCallable() {
			return object.Undefined, throwTypeError("Array.prototype.filter callback is not a function")
		}
		out := object.NewObject(ev.Heap, object.ClassArray, ev.ArrayProto)
		n := 0
		for i := uint32(0); i < a.ArrayLength; i++ {
			v, _ := object.Get(a, strconv.FormatUint(uint64(i), 10), false)
			r, thr := cb.O.Callable.Call(argOr(args, 1), []object.Value{v, object.Num(float64(i)), this})
			if thr != nil {
				return object.Undefined, thr
			}
			if object.ToBoolean(r) {
				object.Put(out, strconv.Itoa(n), v, object.PutOptions{})
				n++
			}
		}
		return object.FromObject(out), nil
	})
	method(ev, proto, "reduce", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		a, thr := ev.ToObject(this)
		if thr != nil {
			return object.Undefined, thr
		}
		cb := argOr(args, 0)
		if !cb.IsCallable() {
			return object.Undefined, throwTypeError("Array.prototype.reduce callback is not a function")
		}
		i := uint32(0)
		var acc object.Value
		if len(args) > 1 {
			acc = args[1]
		} else {
			if a.ArrayLength == 0 {
				return object.Undefined, throwTypeError("Reduce of empty array with no initial value")
			}
			acc, _ = object.Get(a, "0", false)
			i = 1
		}
		for ; i < a.ArrayLength; i++ {
			v, _ := object.Get(a, strconv.FormatUint(uint64(i), 10), false)
			r, thr := cb.O.Callable.Call(object.Undefined, []object.Value{acc, v, object.Num(float64(i)), this})
			if thr != nil {
				return object.Undefined, thr
			}
			acc = r
		}
		return acc, nil
	})

	method(ev, ctor, "isArray", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		arg := argOr(args, 0)
		return object.Bool(arg.IsObject() && arg.O.Class == object.ClassArray), nil
	})
}

func sliceIndex(v object.Value, length, fallback int) (int, *object.Throw) {
	if v.IsUndefined() {
		return fallback, nil
	}
	n, thr := object.ToNumber(v)
	if thr != nil {
		return 0, thr
	}
	i := int(n)
	if i < 0 {
		i += length
	}
	if i < 0 {
		i = 0
	}
	if i > length {
		i = length
	}
	return i, nil
}

func arrayJoin(this object.Value, args []object.Value) (object.Value, *object.Throw) {
	if !this.IsObject() {
		return object.Str(""), nil
	}
	a := this.O
	sep := ","
	if s := argOr(args, 0); !s.IsUndefined() {
		sv, thr := object.ToString(s)
		if thr != nil {
			return object.Undefined, thr
		}
		sep = sv
	}
	parts := make([]string, a.ArrayLength)
	for i := uint32(0); i < a.ArrayLength; i++ {
		v, thr := object.Get(a, strconv.FormatUint(uint64(i), 10), false)
		if thr != nil {
			return object.Undefined, thr
		}
		if v.IsNullOrUndefined() {
			parts[i] = ""
			continue
		}
		s, thr := object.ToString(v)
		if thr != nil {
			return object.Undefined, thr
		}
		parts[i] = s
	}
	return object.Str(strings.Join(parts, sep)), nil
}

func arrayConstruct(ev *evaluator.Evaluator, args []object.Value) (object.Value, *object.Throw) {
	a := object.NewObject(ev.Heap, object.ClassArray, ev.ArrayProto)
	if len(args) == 1 && args[0].Kind == object.KindNumber {
		n := args[0].N
		if n < 0 || n != float64(uint32(n)) {
			return object.Undefined, throwRangeError("Invalid array length")
		}
		a.ArrayLength = uint32(n)
		return object.FromObject(a), nil
	}
	for i, v := range args {
		object.Put(a, strconv.Itoa(i), v, object.PutOptions{})
	}
	return object.FromObject(a), nil
}

func makeStringArray(ev *evaluator.Evaluator, items []string) *object.Object {
	a := object.NewObject(ev.Heap, object.ClassArray, ev.ArrayProto)
	for i, s := range items {
		object.Put(a, strconv.Itoa(i), object.Str(s), object.PutOptions{})
	}
	return a
}
