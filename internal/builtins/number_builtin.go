package builtins

import (
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/go-jsvm/internal/evaluator"
	"github.com/cwbudde/go-jsvm/internal/object"
)

func installNumber(ev *evaluator.Evaluator) {
	proto := ev.NumberProto
	proto.PrimitiveValue = object.Num(0)

	ctor := constructor(ev, "Number", 1, proto,
		func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			if len(args) == 0 {
				return object.Num(0), nil
			}
			n, thr := object.ToNumber(args[0])
			if thr != nil {
				return object.Undefined, thr
			}
			return object.Num(n), nil
		},
		func(args []object.Value) (object.Value, *object.Throw) {
			n := 0.0
			if len(args) > 0 {
				var thr *object.Throw
				n, thr = object.ToNumber(args[0])
				if thr != nil {
					return object.Undefined, thr
				}
			}
			o := object.NewObject(ev.Heap, object.ClassNumber, proto)
			o.PrimitiveValue = object.Num(n)
			return object.FromObject(o), nil
		})

	lockGlobal2(ctor, "MAX_VALUE", object.Num(math.MaxFloat64))
	lockGlobal2(ctor, "MIN_VALUE", object.Num(5e-324))
	lockGlobal2(ctor, "NaN", object.Num(math.NaN()))
	lockGlobal2(ctor, "POSITIVE_INFINITY", object.Num(math.Inf(1)))
	lockGlobal2(ctor, "NEGATIVE_INFINITY", object.Num(math.Inf(-1)))

	method(ev, proto, "valueOf", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		return thisNumberValue(this)
	})
	method(ev, proto, "toString", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		nv, thr := thisNumberValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		radix := 10
		if r := argOr(args, 0); !r.IsUndefined() {
			rn, thr := object.ToNumber(r)
			if thr != nil {
				return object.Undefined, thr
			}
			radix = int(rn)
			if radix < 2 || radix > 36 {
				return object.Undefined, throwRangeError("toString() radix must be between 2 and 36")
			}
		}
		if radix == 10 {
			return object.Str(object.NumberToString(nv.N)), nil
		}
		return object.Str(numberToStringRadix(nv.N, radix)), nil
	})
	method(ev, proto, "toFixed", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		nv, thr := thisNumberValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		digits := 0
		if d := argOr(args, 0); !d.IsUndefined() {
			dn, thr := object.ToNumber(d)
			if thr != nil {
				return object.Undefined, thr
			}
			digits = int(dn)
		}
		if digits < 0 || digits > 20 {
			return object.Undefined, throwRangeError("toFixed() digits argument must be between 0 and 20")
		}
		return object.Str(strconv.FormatFloat(nv.N, 'f', digits, 64)), nil
	})
	method(ev, proto, "toPrecision", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		nv, thr := thisNumberValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		if argOr(args, 0).IsUndefined() {
			return object.Str(object.NumberToString(nv.N)), nil
		}
		pn, thr := object.ToNumber(args[0])
		if thr != nil {
			return object.Undefined, thr
		}
		prec := int(pn)
		if prec < 1 || prec > 21 {
			return object.Undefined, throwRangeError("toPrecision() argument must be between 1 and 21")
		}
		return object.Str(strconv.FormatFloat(nv.N, 'g', prec, 64)), nil
	})
	method(ev, proto, "toExponential", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		nv, thr := thisNumberValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		digits := -1
		if d := argOr(args, 0); !d.IsUndefined() {
			dn, thr := object.ToNumber(d)
			if thr != nil {
				return object.Undefined, thr
			}
			digits = int(dn)
		}
		return object.Str(strconv.FormatFloat(nv.N, 'e', digits, 64)), nil
	})
}

func lockGlobal2(target *object.Object, name string, v object.Value) {
	object.Define(target, name, object.Descriptor{
		HasValue: true, Value: v,
		HasWritable: true, Writable: false,
		HasEnumerable: true, Enumerable: false,
		HasConfigurable: true, Configurable: false,
	})
}

func thisNumberValue(this object.Value) (object.Value, *object.Throw) {
	if this.IsObject() && this.O.Class == object.ClassNumber {
		return this.O.PrimitiveValue, nil
	}
	if this.Kind == object.KindNumber {
		return this, nil
	}
	return object.Undefined, throwTypeError("Number.prototype method called on incompatible receiver")
}

const digitAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func numberToStringRadix(n float64, radix int) string {
	if math.IsNaN(n) {
		return "NaN"
	}
	if math.IsInf(n, 1) {
		return "Infinity"
	}
	if math.IsInf(n, -1) {
		return "-Infinity"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	intPart := math.Trunc(n)
	frac := n - intPart
	var b strings.Builder
	if intPart == 0 {
		b.WriteByte('0')
	} else {
		var digits []byte
		ip := intPart
		for ip > 0 {
			d := math.Mod(ip, float64(radix))
			digits = append(digits, digitAlphabet[int(d)])
			ip = math.Trunc(ip / float64(radix))
		}
		for i := len(digits) - 1; i >= 0; i-- {
			b.WriteByte(digits[i])
		}
	}
	if frac > 0 {
		b.WriteByte('.')
		for i := 0; i < 20 && frac > 0; i++ {
			frac *= float64(radix)
			d := math.Trunc(frac)
			b.WriteByte(digitAlphabet[int(d)])
			frac -= d
		}
	}
	s := b.String()
	if neg {
		s = "-" + s
	}
	return s
}
