package evaluator

import (
	"math"
	"strings"

	"github.com/cwbudde/go-jsvm/internal/object"
)

// applyBinary implements spec.md §4.3's operator table: `+` dispatches
// on the ToPrimitive'd operands (string concatenation wins if either
// side primitivizes to a string), the rest of arithmetic always goes
// through ToNumber, and relational/equality defer to their own helpers.
func (e *Evaluator) applyBinary(op string, l, r object.Value) (object.Value, *object.Throw) {
	switch op {
	case "+":
		lp, thr := object.ToPrimitive(l, object.HintDefault)
		if thr != nil {
			return object.Undefined, thr
		}
		rp, thr := object.ToPrimitive(r, object.HintDefault)
		if thr != nil {
			return object.Undefined, thr
		}
		if lp.Kind == object.KindString || rp.Kind == object.KindString {
			ls, thr := object.ToString(lp)
			if thr != nil {
				return object.Undefined, thr
			}
			rs, thr := object.ToString(rp)
			if thr != nil {
				return object.Undefined, thr
			}
			return object.Str(ls + rs), nil
		}
		ln, thr := object.ToNumber(lp)
		if thr != nil {
			return object.Undefined, thr
		}
		rn, thr := object.ToNumber(rp)
		if thr != nil {
			return object.Undefined, thr
		}
		return object.Num(ln + rn), nil

	case "-", "*", "/", "%":
		ln, thr := object.ToNumber(l)
		if thr != nil {
			return object.Undefined, thr
		}
		rn, thr := object.ToNumber(r)
		if thr != nil {
			return object.Undefined, thr
		}
		switch op {
		case "-":
			return object.Num(ln - rn), nil
		case "*":
			return object.Num(ln * rn), nil
		case "/":
			return object.Num(ln / rn), nil
		default:
			return object.Num(math.Mod(ln, rn)), nil
		}

	case "&", "|", "^", "<<", ">>", ">>>":
		return e.applyBitwise(op, l, r)

	case "<", ">", "<=", ">=":
		return applyRelational(op, l, r)

	case "==":
		v, thr := abstractEquals(l, r)
		return object.Bool(v), thr
	case "!=":
		v, thr := abstractEquals(l, r)
		return object.Bool(!v), thr
	case "===":
		return object.Bool(strictEquals(l, r)), nil
	case "!==":
		return object.Bool(!strictEquals(l, r)), nil

	case "instanceof":
		return applyInstanceOf(l, r)
	case "in":
		if !r.IsObject() {
			return object.Undefined, object.NewThrow(object.Str("TypeError: Cannot use 'in' operator to search in a non-object"))
		}
		key, thr := object.ToString(l)
		if thr != nil {
			return object.Undefined, thr
		}
		return object.Bool(object.Has(r.O, key)), nil
	}
	return object.Undefined, nil
}

func (e *Evaluator) applyBitwise(op string, l, r object.Value) (object.Value, *object.Throw) {
	if op == "<<" || op == ">>" || op == ">>>" {
		ln, thr := object.ToInt32(l)
		if thr != nil {
			return object.Undefined, thr
		}
		shift, thr := object.ToUint32(r)
		if thr != nil {
			return object.Undefined, thr
		}
		shift &= 31
		switch op {
		case "<<":
			return object.Num(float64(ln << shift)), nil
		case ">>":
			return object.Num(float64(ln >> shift)), nil
		default:
			un := uint32(ln)
			return object.Num(float64(un >> shift)), nil
		}
	}
	ln, thr := object.ToInt32(l)
	if thr != nil {
		return object.Undefined, thr
	}
	rn, thr := object.ToInt32(r)
	if thr != nil {
		return object.Undefined, thr
	}
	switch op {
	case "&":
		return object.Num(float64(ln & rn)), nil
	case "|":
		return object.Num(float64(ln | rn)), nil
	default:
		return object.Num(float64(ln ^ rn)), nil
	}
}

func (e *Evaluator) applyUnaryArith(op string, v object.Value) (object.Value, *object.Throw) {
	switch op {
	case "-":
		n, thr := object.ToNumber(v)
		if thr != nil {
			return object.Undefined, thr
		}
		return object.Num(-n), nil
	case "+":
		n, thr := object.ToNumber(v)
		if thr != nil {
			return object.Undefined, thr
		}
		return object.Num(n), nil
	case "~":
		n, thr := object.ToInt32(v)
		if thr != nil {
			return object.Undefined, thr
		}
		return object.Num(float64(^n)), nil
	case "!":
		return object.Bool(!object.ToBoolean(v)), nil
	}
	return object.Undefined, nil
}

// applyRelational implements the abstract relational-comparison
// algorithm: string-vs-string compares lexicographically by code unit,
// everything else coerces through ToNumber — and per spec.md's boundary
// rule, any comparison involving NaN is false, never true, regardless
// of operator.
func applyRelational(op string, l, r object.Value) (object.Value, *object.Throw) {
	lp, thr := object.ToPrimitive(l, object.HintNumber)
	if thr != nil {
		return object.Undefined, thr
	}
	rp, thr := object.ToPrimitive(r, object.HintNumber)
	if thr != nil {
		return object.Undefined, thr
	}
	if lp.Kind == object.KindString && rp.Kind == object.KindString {
		cmp := strings.Compare(lp.S, rp.S)
		switch op {
		case "<":
			return object.Bool(cmp < 0), nil
		case ">":
			return object.Bool(cmp > 0), nil
		case "<=":
			return object.Bool(cmp <= 0), nil
		default:
			return object.Bool(cmp >= 0), nil
		}
	}
	ln, thr := object.ToNumber(lp)
	if thr != nil {
		return object.Undefined, thr
	}
	rn, thr := object.ToNumber(rp)
	if thr != nil {
		return object.Undefined, thr
	}
	if math.IsNaN(ln) || math.IsNaN(rn) {
		return object.Bool(false), nil
	}
	switch op {
	case "<":
		return object.Bool(ln < rn), nil
	case ">":
		return object.Bool(ln > rn), nil
	case "<=":
		return object.Bool(ln <= rn), nil
	default:
		return object.Bool(ln >= rn), nil
	}
}

// strictEquals implements `===`: no coercion, and (via Go's own
// float64 comparison) NaN !== NaN falls out for free.
func strictEquals(l, r object.Value) bool {
	if l.Kind != r.Kind {
		return false
	}
	switch l.Kind {
	case object.KindUndefined, object.KindNull:
		return true
	case object.KindBoolean:
		return l.B == r.B
	case object.KindNumber:
		return l.N == r.N
	case object.KindString:
		return l.S == r.S
	case object.KindObject:
		return l.O == r.O
	}
	return false
}

// abstractEquals implements `==`'s ES5.1 §11.9.3 coercion ladder.
func abstractEquals(l, r object.Value) (bool, *object.Throw) {
	if l.Kind == r.Kind {
		return strictEquals(l, r), nil
	}
	if l.IsNullOrUndefined() && r.IsNullOrUndefined() {
		return true, nil
	}
	if l.IsNullOrUndefined() || r.IsNullOrUndefined() {
		return false, nil
	}
	if l.Kind == object.KindNumber && r.Kind == object.KindString {
		rn, thr := object.ToNumber(r)
		if thr != nil {
			return false, thr
		}
		return l.N == rn, nil
	}
	if l.Kind == object.KindString && r.Kind == object.KindNumber {
		ln, thr := object.ToNumber(l)
		if thr != nil {
			return false, thr
		}
		return ln == r.N, nil
	}
	if l.Kind == object.KindBoolean {
		ln, thr := object.ToNumber(l)
		if thr != nil {
			return false, thr
		}
		return abstractEquals(object.Num(ln), r)
	}
	if r.Kind == object.KindBoolean {
		rn, thr := object.ToNumber(r)
		if thr != nil {
			return false, thr
		}
		return abstractEquals(l, object.Num(rn))
	}
	if (l.Kind == object.KindNumber || l.Kind == object.KindString) && r.Kind == object.KindObject {
		rp, thr := object.ToPrimitive(r, object.HintDefault)
		if thr != nil {
			return false, thr
		}
		return abstractEquals(l, rp)
	}
	if l.Kind == object.KindObject && (r.Kind == object.KindNumber || r.Kind == object.KindString) {
		lp, thr := object.ToPrimitive(l, object.HintDefault)
		if thr != nil {
			return false, thr
		}
		return abstractEquals(lp, r)
	}
	return false, nil
}

func applyInstanceOf(l, r object.Value) (object.Value, *object.Throw) {
	if !r.IsCallable() {
		return object.Undefined, object.NewThrow(object.Str("TypeError: Right-hand side of 'instanceof' is not callable"))
	}
	if !l.IsObject() {
		return object.Bool(false), nil
	}
	protoVal, _ := object.Get(r.O, "prototype", false)
	if !protoVal.IsObject() {
		return object.Undefined, object.NewThrow(object.Str("TypeError: Function has non-object prototype in instanceof check"))
	}
	proto := protoVal.O
	for o := l.O.Proto; o != nil; o = o.Proto {
		if o == proto {
			return object.Bool(true), nil
		}
	}
	return object.Bool(false), nil
}
