package builtins

import (
	"math"
	"math/rand"

	"github.com/cwbudde/go-jsvm/internal/evaluator"
	"github.com/cwbudde/go-jsvm/internal/object"
)

func installMath(ev *evaluator.Evaluator) {
	m := object.NewObject(ev.Heap, object.ClassMath, ev.ObjectProto)

	constants := map[string]float64{
		"E":       math.E,
		"LN10":    math.Ln10,
		"LN2":     math.Ln2,
		"LOG2E":   math.Log2E,
		"LOG10E":  math.Log10E,
		"PI":      math.Pi,
		"SQRT1_2": math.Sqrt(0.5),
		"SQRT2":   math.Sqrt2,
	}
	for name, v := range constants {
		lockGlobal2(m, name, object.Num(v))
	}

	unary := map[string]func(float64) float64{
		"abs":   math.Abs,
		"floor": math.Floor,
		"ceil":  math.Ceil,
		"sqrt":  math.Sqrt,
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"asin":  math.Asin,
		"acos":  math.Acos,
		"atan":  math.Atan,
		"exp":   math.Exp,
		"log":   math.Log,
	}
	for name, fn := range unary {
		fn := fn
		method(ev, m, name, 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			n, thr := object.ToNumber(argOr(args, 0))
			if thr != nil {
				return object.Undefined, thr
			}
			return object.Num(fn(n)), nil
		})
	}

	method(ev, m, "round", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		n, thr := object.ToNumber(argOr(args, 0))
		if thr != nil {
			return object.Undefined, thr
		}
		return object.Num(math.Floor(n + 0.5)), nil
	})
	method(ev, m, "pow", 2, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		base, thr := object.ToNumber(argOr(args, 0))
		if thr != nil {
			return object.Undefined, thr
		}
		exp, thr := object.ToNumber(argOr(args, 1))
		if thr != nil {
			return object.Undefined, thr
		}
		return object.Num(math.Pow(base, exp)), nil
	})
	method(ev, m, "max", 2, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		if len(args) == 0 {
			return object.Num(math.Inf(-1)), nil
		}
		best := math.Inf(-1)
		for _, a := range args {
			n, thr := object.ToNumber(a)
			if thr != nil {
				return object.Undefined, thr
			}
			if math.IsNaN(n) {
				return object.Num(math.NaN()), nil
			}
			if n > best {
				best = n
			}
		}
		return object.Num(best), nil
	})
	method(ev, m, "min", 2, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		if len(args) == 0 {
			return object.Num(math.Inf(1)), nil
		}
		best := math.Inf(1)
		for _, a := range args {
			n, thr := object.ToNumber(a)
			if thr != nil {
				return object.Undefined, thr
			}
			if math.IsNaN(n) {
				return object.Num(math.NaN()), nil
			}
			if n < best {
				best = n
			}
		}
		return object.Num(best), nil
	})
	method(ev, m, "random", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		return object.Num(rand.Float64()), nil
	})

	object.Put(ev.Global, "Math", object.FromObject(m), object.PutOptions{})
}
