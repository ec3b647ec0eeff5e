package builtins

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/cwbudde/go-jsvm/internal/evaluator"
	"github.com/cwbudde/go-jsvm/internal/object"
)

func installConsole(ev *evaluator.Evaluator) {
	console := object.NewObject(ev.Heap, object.ClassObject, ev.ObjectProto)
	logFn := func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		parts := make([]string, len(args))
		for i, a := range args {
			s, thr := object.ToString(a)
			if thr != nil {
				return object.Undefined, thr
			}
			parts[i] = s
		}
		fmt.Println(strings.Join(parts, " "))
		return object.Undefined, nil
	}
	method(ev, console, "log", 0, logFn)
	method(ev, console, "info", 0, logFn)
	method(ev, console, "warn", 0, logFn)
	method(ev, console, "error", 0, logFn)
	object.Put(ev.Global, "console", object.FromObject(console), object.PutOptions{})
}

func installGlobals(ev *evaluator.Evaluator) {
	global := newNativeFunction(ev, "parseInt", 2, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		return parseIntImpl(ev, args)
	}, nil)
	object.Put(ev.Global, "parseInt", object.FromObject(global), object.PutOptions{})

	object.Put(ev.Global, "parseFloat", object.FromObject(newNativeFunction(ev, "parseFloat", 1,
		func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			s, thr := object.ToString(argOr(args, 0))
			if thr != nil {
				return object.Undefined, thr
			}
			return object.Num(parseFloatPrefix(s)), nil
		}, nil)), object.PutOptions{})

	object.Put(ev.Global, "isNaN", object.FromObject(newNativeFunction(ev, "isNaN", 1,
		func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			n, thr := object.ToNumber(argOr(args, 0))
			if thr != nil {
				return object.Undefined, thr
			}
			return object.Bool(math.IsNaN(n)), nil
		}, nil)), object.PutOptions{})

	object.Put(ev.Global, "isFinite", object.FromObject(newNativeFunction(ev, "isFinite", 1,
		func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			n, thr := object.ToNumber(argOr(args, 0))
			if thr != nil {
				return object.Undefined, thr
			}
			return object.Bool(!math.IsNaN(n) && !math.IsInf(n, 0)), nil
		}, nil)), object.PutOptions{})

	object.Put(ev.Global, "escape", object.FromObject(newNativeFunction(ev, "escape", 1,
		func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			s, thr := object.ToString(argOr(args, 0))
			if thr != nil {
				return object.Undefined, thr
			}
			return object.Str(url.QueryEscape(s)), nil
		}, nil)), object.PutOptions{})
	object.Put(ev.Global, "unescape", object.FromObject(newNativeFunction(ev, "unescape", 1,
		func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			s, thr := object.ToString(argOr(args, 0))
			if thr != nil {
				return object.Undefined, thr
			}
			out, err := url.QueryUnescape(s)
			if err != nil {
				return object.Str(s), nil
			}
			return object.Str(out), nil
		}, nil)), object.PutOptions{})

	if ev.Version.HasStrictEquality() {
		object.Put(ev.Global, "encodeURIComponent", object.FromObject(newNativeFunction(ev, "encodeURIComponent", 1,
			func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
				s, thr := object.ToString(argOr(args, 0))
				if thr != nil {
					return object.Undefined, thr
				}
				return object.Str(url.QueryEscape(s)), nil
			}, nil)), object.PutOptions{})
		object.Put(ev.Global, "decodeURIComponent", object.FromObject(newNativeFunction(ev, "decodeURIComponent", 1,
			func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
				s, thr := object.ToString(argOr(args, 0))
				if thr != nil {
					return object.Undefined, thr
				}
				out, err := url.QueryUnescape(s)
				if err != nil {
					return object.Undefined, throwErrorNamed("URIError", "URI malformed")
				}
				return object.Str(out), nil
			}, nil)), object.PutOptions{})
		object.Put(ev.Global, "encodeURI", object.FromObject(newNativeFunction(ev, "encodeURI", 1,
			func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
				s, thr := object.ToString(argOr(args, 0))
				if thr != nil {
					return object.Undefined, thr
				}
				u := &url.URL{Path: s}
				return object.Str(u.EscapedPath()), nil
			}, nil)), object.PutOptions{})
		object.Put(ev.Global, "decodeURI", object.FromObject(newNativeFunction(ev, "decodeURI", 1,
			func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
				s, thr := object.ToString(argOr(args, 0))
				if thr != nil {
					return object.Undefined, thr
				}
				out, err := url.PathUnescape(s)
				if err != nil {
					return object.Undefined, throwErrorNamed("URIError", "URI malformed")
				}
				return object.Str(out), nil
			}, nil)), object.PutOptions{})
	}

	object.Put(ev.Global, "eval", object.FromObject(newNativeFunction(ev, "eval", 1,
		func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			arg := argOr(args, 0)
			if arg.Kind != object.KindString {
				return arg, nil
			}
			v, c := ev.EvalSource(evaluator.NewScope(ev.Global), object.FromObject(ev.Global), arg.S)
			if c.Kind == evaluator.CompletionThrow {
				return object.Undefined, &object.Throw{Value: c.Value, Err: c.Err}
			}
			return v, nil
		}, nil)), object.PutOptions{})
}

func parseIntImpl(ev *evaluator.Evaluator, args []object.Value) (object.Value, *object.Throw) {
	s, thr := object.ToString(argOr(args, 0))
	if thr != nil {
		return object.Undefined, thr
	}
	radix := 0
	if r := argOr(args, 1); !r.IsUndefined() {
		rn, thr := object.ToNumber(r)
		if thr != nil {
			return object.Undefined, thr
		}
		radix = int(rn)
	}
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if radix == 0 {
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			radix = 16
			s = s[2:]
		} else if ev.Version.AllowsOctalLiterals() && strings.HasPrefix(s, "0") && len(s) > 1 {
			radix = 8
			s = s[1:]
		} else {
			radix = 10
		}
	} else if radix == 16 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		s = s[2:]
	}
	end := 0
	for end < len(s) && isDigitForRadix(s[end], radix) {
		end++
	}
	if end == 0 {
		return object.Num(math.NaN()), nil
	}
	n, err := strconv.ParseInt(s[:end], radix, 64)
	if err != nil {
		return object.Num(math.NaN()), nil
	}
	result := float64(n)
	if neg {
		result = -result
	}
	return object.Num(result), nil
}

func isDigitForRadix(c byte, radix int) bool {
	var d int
	switch {
	case c >= '0' && c <= '9':
		d = int(c - '0')
	case c >= 'a' && c <= 'z':
		d = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		d = int(c-'A') + 10
	default:
		return false
	}
	return d < radix
}

func parseFloatPrefix(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	sawDigit := false
	sawDot := false
	sawExp := false
	for end < len(s) {
		c := s[end]
		switch {
		case c >= '0' && c <= '9':
			sawDigit = true
		case c == '.' && !sawDot && !sawExp:
			sawDot = true
		case (c == 'e' || c == 'E') && sawDigit && !sawExp:
			sawExp = true
		case (c == '+' || c == '-') && (end == 0 || s[end-1] == 'e' || s[end-1] == 'E'):
		default:
			goto done
		}
		end++
	}
done:
	if !sawDigit {
		if strings.HasPrefix(s, "Infinity") || strings.HasPrefix(s, "+Infinity") {
			return math.Inf(1)
		}
		if strings.HasPrefix(s, "-Infinity") {
			return math.Inf(-1)
		}
		return math.NaN()
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return math.NaN()
	}
	return n
}
