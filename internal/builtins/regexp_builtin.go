package builtins

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cwbudde/go-jsvm/internal/evaluator"
	"github.com/cwbudde/go-jsvm/internal/object"
)

// installRegExp wires RegExp.prototype.test/exec atop Go's RE2 engine.
// RE2 lacks backreferences and lookaround that ECMA patterns allow; this
// is a best-effort mapping good enough for the common literal/character-
// class/quantifier subset, not a full ECMA-262 regex engine.
func installRegExp(ev *evaluator.Evaluator) {
	proto := ev.RegExpProto

	constructor(ev, "RegExp", 2, proto,
		func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			return regExpConstruct(ev, args)
		},
		func(args []object.Value) (object.Value, *object.Throw) {
			return regExpConstruct(ev, args)
		})

	method(ev, proto, "test", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		re, thr := compiledRegExp(this)
		if thr != nil {
			return object.Undefined, thr
		}
		s, thr := object.ToString(argOr(args, 0))
		if thr != nil {
			return object.Undefined, thr
		}
		return object.Bool(re.MatchString(s)), nil
	})
	method(ev, proto, "exec", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		re, thr := compiledRegExp(this)
		if thr != nil {
			return object.Undefined, thr
		}
		s, thr := object.ToString(argOr(args, 0))
		if thr != nil {
			return object.Undefined, thr
		}
		loc := re.FindStringSubmatchIndex(s)
		if loc == nil {
			return object.Null, nil
		}
		groups := re.FindStringSubmatch(s)
		out := object.NewObject(ev.Heap, object.ClassArray, ev.ArrayProto)
		for i, g := range groups {
			object.Put(out, strconv.Itoa(i), object.Str(g), object.PutOptions{})
		}
		object.Put(out, "index", object.Num(float64(loc[0])), object.PutOptions{})
		object.Put(out, "input", object.Str(s), object.PutOptions{})
		return object.FromObject(out), nil
	})
	method(ev, proto, "toString", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		if !this.IsObject() {
			return object.Undefined, throwTypeError("RegExp.prototype.toString called on non-object")
		}
		src, _ := object.Get(this.O, "source", false)
		srcStr, _ := object.ToString(src)
		flagsStr := regExpFlagsString(this.O)
		return object.Str("/" + srcStr + "/" + flagsStr), nil
	})
}

func regExpConstruct(ev *evaluator.Evaluator, args []object.Value) (object.Value, *object.Throw) {
	arg := argOr(args, 0)
	pattern, flags := "", ""
	if arg.IsObject() && arg.O.Class == object.ClassRegExp {
		src, _ := object.Get(arg.O, "source", false)
		pattern, _ = object.ToString(src)
		flags = regExpFlagsString(arg.O)
	} else if !arg.IsUndefined() {
		s, thr := object.ToString(arg)
		if thr != nil {
			return object.Undefined, thr
		}
		pattern = s
	}
	if f := argOr(args, 1); !f.IsUndefined() {
		s, thr := object.ToString(f)
		if thr != nil {
			return object.Undefined, thr
		}
		flags = s
	}
	o := object.NewObject(ev.Heap, object.ClassRegExp, ev.RegExpProto)
	object.Put(o, "source", object.Str(pattern), object.PutOptions{})
	object.Put(o, "global", object.Bool(strings.Contains(flags, "g")), object.PutOptions{})
	object.Put(o, "ignoreCase", object.Bool(strings.Contains(flags, "i")), object.PutOptions{})
	object.Put(o, "multiline", object.Bool(strings.Contains(flags, "m")), object.PutOptions{})
	object.Put(o, "lastIndex", object.Num(0), object.PutOptions{})
	if _, err := compileECMAPattern(pattern, flags); err != nil {
		return object.Undefined, throwErrorNamed("SyntaxError", "Invalid regular expression: "+err.Error())
	}
	return object.FromObject(o), nil
}

func regExpFlagsString(o *object.Object) string {
	var b strings.Builder
	if g, _ := object.Get(o, "global", false); object.ToBoolean(g) {
		b.WriteByte('g')
	}
	if i, _ := object.Get(o, "ignoreCase", false); object.ToBoolean(i) {
		b.WriteByte('i')
	}
	if m, _ := object.Get(o, "multiline", false); object.ToBoolean(m) {
		b.WriteByte('m')
	}
	return b.String()
}

func compiledRegExp(this object.Value) (*regexp.Regexp, *object.Throw) {
	if !this.IsObject() || this.O.Class != object.ClassRegExp {
		return nil, throwTypeError("RegExp.prototype method called on incompatible receiver")
	}
	src, _ := object.Get(this.O, "source", false)
	pattern, _ := object.ToString(src)
	flags := regExpFlagsString(this.O)
	re, err := compileECMAPattern(pattern, flags)
	if err != nil {
		return nil, throwErrorNamed("SyntaxError", "Invalid regular expression: "+err.Error())
	}
	return re, nil
}

func compileECMAPattern(pattern, flags string) (*regexp.Regexp, error) {
	goPattern := pattern
	if strings.Contains(flags, "i") {
		goPattern = "(?i)" + goPattern
	}
	if strings.Contains(flags, "m") {
		goPattern = "(?m)" + goPattern
	}
	return regexp.Compile(goPattern)
}

func throwErrorNamed(name, msg string) *object.Throw {
	return object.NewThrow(object.Str(name + ": " + msg))
}
