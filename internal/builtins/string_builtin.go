package builtins

import (
	"math"
	"strings"

	"github.com/cwbudde/go-jsvm/internal/evaluator"
	"github.com/cwbudde/go-jsvm/internal/object"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func installString(ev *evaluator.Evaluator) {
	proto := ev.StringProto
	proto.PrimitiveValue = object.Str("")

	constructor(ev, "String", 1, proto,
		func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			if len(args) == 0 {
				return object.Str(""), nil
			}
			s, thr := object.ToString(args[0])
			if thr != nil {
				return object.Undefined, thr
			}
			return object.Str(s), nil
		},
		func(args []object.Value) (object.Value, *object.Throw) {
			s := ""
			if len(args) > 0 {
				var thr *object.Throw
				s, thr = object.ToString(args[0])
				if thr != nil {
					return object.Undefined, thr
				}
			}
			o := object.NewObject(ev.Heap, object.ClassString, proto)
			o.PrimitiveValue = object.Str(s)
			return object.FromObject(o), nil
		})

	method(ev, proto, "toString", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		s, thr := thisStringValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		return object.Str(s), nil
	})
	method(ev, proto, "valueOf", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		s, thr := thisStringValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		return object.Str(s), nil
	})
	method(ev, proto, "charAt", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		s, thr := thisStringValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		i, thr := object.ToNumber(argOr(args, 0))
		if thr != nil {
			return object.Undefined, thr
		}
		r := []rune(s)
		idx := int(i)
		if idx < 0 || idx >= len(r) {
			return object.Str(""), nil
		}
		return object.Str(string(r[idx])), nil
	})
	method(ev, proto, "charCodeAt", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		s, thr := thisStringValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		i, thr := object.ToNumber(argOr(args, 0))
		if thr != nil {
			return object.Undefined, thr
		}
		r := []rune(s)
		idx := int(i)
		if idx < 0 || idx >= len(r) {
			return object.Num(math.NaN()), nil
		}
		return object.Num(float64(r[idx])), nil
	})
	method(ev, proto, "indexOf", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		s, thr := thisStringValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		search, thr := object.ToString(argOr(args, 0))
		if thr != nil {
			return object.Undefined, thr
		}
		start := 0
		if len(args) > 1 {
			n, thr := object.ToNumber(args[1])
			if thr != nil {
				return object.Undefined, thr
			}
			start = int(n)
			if start < 0 {
				start = 0
			}
			if start > len(s) {
				start = len(s)
			}
		}
		idx := strings.Index(s[start:], search)
		if idx < 0 {
			return object.Num(-1), nil
		}
		return object.Num(float64(idx + start)), nil
	})
	method(ev, proto, "lastIndexOf", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		s, thr := thisStringValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		search, thr := object.ToString(argOr(args, 0))
		if thr != nil {
			return object.Undefined, thr
		}
		return object.Num(float64(strings.LastIndex(s, search))), nil
	})
	method(ev, proto, "slice", 2, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		s, thr := thisStringValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		r := []rune(s)
		start, thr := sliceIndex(argOr(args, 0), len(r), 0)
		if thr != nil {
			return object.Undefined, thr
		}
		end, thr := sliceIndex(argOr(args, 1), len(r), len(r))
		if thr != nil {
			return object.Undefined, thr
		}
		if end < start {
			end = start
		}
		return object.Str(string(r[start:end])), nil
	})
	method(ev, proto, "substring", 2, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		s, thr := thisStringValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		r := []rune(s)
		start := clampIndex(argOr(args, 0), len(r), 0)
		end := clampIndex(argOr(args, 1), len(r), len(r))
		if start > end {
			start, end = end, start
		}
		return object.Str(string(r[start:end])), nil
	})
	method(ev, proto, "concat", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		s, thr := thisStringValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		var b strings.Builder
		b.WriteString(s)
		for _, a := range args {
			as, thr := object.ToString(a)
			if thr != nil {
				return object.Undefined, thr
			}
			b.WriteString(as)
		}
		return object.Str(b.String()), nil
	})
	method(ev, proto, "split", 2, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		s, thr := thisStringValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		sepArg := argOr(args, 0)
		var parts []string
		if sepArg.IsUndefined() {
			parts = []string{s}
		} else {
			sep, thr := object.ToString(sepArg)
			if thr != nil {
				return object.Undefined, thr
			}
			if sep == "" {
				for _, r := range s {
					parts = append(parts, string(r))
				}
			} else {
				parts = strings.Split(s, sep)
			}
		}
		return object.FromObject(makeStringArray(ev, parts)), nil
	})
	method(ev, proto, "replace", 2, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		s, thr := thisStringValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		search, thr := object.ToString(argOr(args, 0))
		if thr != nil {
			return object.Undefined, thr
		}
		repl, thr := object.ToString(argOr(args, 1))
		if thr != nil {
			return object.Undefined, thr
		}
		return object.Str(strings.Replace(s, search, repl, 1)), nil
	})
	method(ev, proto, "toUpperCase", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		s, thr := thisStringValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		return object.Str(cases.Upper(language.Und).String(s)), nil
	})
	method(ev, proto, "toLowerCase", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		s, thr := thisStringValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		return object.Str(cases.Lower(language.Und).String(s)), nil
	})
	method(ev, proto, "trim", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		s, thr := thisStringValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		return object.Str(strings.TrimSpace(s)), nil
	})

}

func thisStringValue(this object.Value) (string, *object.Throw) {
	if this.IsObject() && this.O.Class == object.ClassString {
		return this.O.PrimitiveValue.S, nil
	}
	return object.ToString(this)
}

func clampIndex(v object.Value, length int, fallback int) int {
	if v.IsUndefined() {
		return fallback
	}
	n, thr := object.ToNumber(v)
	if thr != nil {
		return fallback
	}
	i := int(n)
	if i < 0 {
		i = 0
	}
	if i > length {
		i = length
	}
	return i
}
