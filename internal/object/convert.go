package object

import (
	"math"
	"strconv"
	"strings"
)

// Hint selects the preferred primitive kind for ToPrimitive/DefaultValue.
type Hint int

const (
	HintDefault Hint = iota
	HintNumber
	HintString
)

// DefaultValue implements spec.md §4.2 `default_value(o, hint)`: tries
// `valueOf` then `toString`, or the reverse for hint "string" and for
// hint "default" on a Date object (spec.md §4.2's "string or Date
// default" rule), per the open question (a) resolution — this follows
// the ES5.1 algorithm exactly, including honoring a user-overridden
// valueOf/toString rather than special-casing built-in prototypes.
func DefaultValue(o *Object, hint Hint) (Value, *Throw) {
	order := []string{"valueOf", "toString"}
	if hint == HintString || (hint == HintDefault && o.Class == ClassDate) {
		order = []string{"toString", "valueOf"}
	}
	for _, name := range order {
		fnVal, _ := Get(o, name, false)
		if !fnVal.IsCallable() {
			continue
		}
		res, thr := fnVal.O.Callable.Call(FromObject(o), nil)
		if thr != nil {
			return Undefined, thr
		}
		if res.Kind != KindObject {
			return res, nil
		}
	}
	return Undefined, NewThrow(Str("TypeError: cannot convert object to primitive value"))
}

// ToPrimitive coerces v to a primitive, passing objects through
// DefaultValue with the given hint (spec.md §4.3's ToPrimitive use in
// `+` and the relational/equality tables).
func ToPrimitive(v Value, hint Hint) (Value, *Throw) {
	if v.Kind != KindObject {
		return v, nil
	}
	return DefaultValue(v.O, hint)
}

// ToNumber implements the standard ToNumber abstract operation.
func ToNumber(v Value) (float64, *Throw) {
	switch v.Kind {
	case KindUndefined:
		return math.NaN(), nil
	case KindNull:
		return 0, nil
	case KindBoolean:
		if v.B {
			return 1, nil
		}
		return 0, nil
	case KindNumber:
		return v.N, nil
	case KindString:
		return stringToNumber(v.S), nil
	case KindObject:
		p, thr := ToPrimitive(v, HintNumber)
		if thr != nil {
			return math.NaN(), thr
		}
		return ToNumber(p)
	}
	return math.NaN(), nil
}

func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

// ToString implements the standard ToString abstract operation.
func ToString(v Value) (string, *Throw) {
	switch v.Kind {
	case KindUndefined:
		return "undefined", nil
	case KindNull:
		return "null", nil
	case KindBoolean:
		if v.B {
			return "true", nil
		}
		return "false", nil
	case KindNumber:
		return NumberToString(v.N), nil
	case KindString:
		return v.S, nil
	case KindObject:
		p, thr := ToPrimitive(v, HintString)
		if thr != nil {
			return "", thr
		}
		return ToString(p)
	}
	return "", nil
}

// NumberToString renders a float64 per the language's numeric-literal
// round-trip law (spec.md §8): integral values print without a decimal
// point; NaN/±Infinity print their literal names.
func NumberToString(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	if n == math.Trunc(n) && math.Abs(n) < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// ToBoolean implements the standard ToBoolean abstract operation.
func ToBoolean(v Value) bool {
	switch v.Kind {
	case KindUndefined, KindNull:
		return false
	case KindBoolean:
		return v.B
	case KindNumber:
		return v.N != 0 && !math.IsNaN(v.N)
	case KindString:
		return v.S != ""
	case KindObject:
		return true
	}
	return false
}

// ToInt32/ToUint32 implement the standard bitwise-conversion abstract
// operations used by the bitwise and shift operators.
func ToInt32(v Value) (int32, *Throw) {
	n, thr := ToNumber(v)
	if thr != nil {
		return 0, thr
	}
	return int32(uint32(int64(truncForBitwise(n)))), nil
}

func ToUint32(v Value) (uint32, *Throw) {
	n, thr := ToNumber(v)
	if thr != nil {
		return 0, thr
	}
	return uint32(int64(truncForBitwise(n))), nil
}

func truncForBitwise(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) || n == 0 {
		return 0
	}
	return math.Trunc(n)
}
