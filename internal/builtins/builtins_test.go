package builtins_test

import (
	"testing"

	"github.com/cwbudde/go-jsvm/internal/builtins"
	"github.com/cwbudde/go-jsvm/internal/errors"
	"github.com/cwbudde/go-jsvm/internal/evaluator"
	"github.com/cwbudde/go-jsvm/internal/object"
	"github.com/cwbudde/go-jsvm/internal/parser"
	"github.com/cwbudde/go-jsvm/internal/version"
)

func eval(t *testing.T, ver version.Version, src string) (object.Value, *errors.ScriptThrow) {
	t.Helper()
	p := parser.New(src, "<test>", ver)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	ev := evaluator.New(ver, "<test>", 0)
	builtins.Install(ev)
	return ev.Run(prog)
}

func TestArrayPushPopJoin(t *testing.T) {
	v, thrown := eval(t, version.V5, `var a=[1,2]; a.push(3); a.join('-');`)
	if thrown != nil {
		t.Fatalf("unexpected throw: %v", thrown)
	}
	if v.Kind != object.KindString || v.S != "1-2-3" {
		t.Fatalf("result = %v, want \"1-2-3\"", v)
	}
}

func TestArraySliceDoesNotMutateOriginal(t *testing.T) {
	v, thrown := eval(t, version.V5, `var a=[1,2,3,4]; var b=a.slice(1,3); a.length+','+b.join(',');`)
	if thrown != nil {
		t.Fatalf("unexpected throw: %v", thrown)
	}
	if v.S != "4,2,3" {
		t.Fatalf("result = %q, want \"4,2,3\"", v.S)
	}
}

func TestStringMethods(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`'Hello'.toUpperCase()`, "HELLO"},
		{`'Hello'.toLowerCase()`, "hello"},
		{`'  hi  '.trim()`, "hi"},
		{`'abc'.charAt(1)`, "b"},
		{`'a,b,c'.split(',').join('-')`, "a-b-c"},
		{`'hello'.indexOf('l')+''`, "2"},
		{`'hello'.substring(1,3)`, "el"},
	}
	for _, tt := range tests {
		v, thrown := eval(t, version.V5, tt.src)
		if thrown != nil {
			t.Fatalf("%s: unexpected throw: %v", tt.src, thrown)
		}
		if v.S != tt.want {
			t.Errorf("%s = %q, want %q", tt.src, v.S, tt.want)
		}
	}
}

func TestMathMethods(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{`Math.max(1,5,3)`, 5},
		{`Math.min(1,5,3)`, 1},
		{`Math.abs(-7)`, 7},
		{`Math.floor(3.7)`, 3},
		{`Math.ceil(3.2)`, 4},
		{`Math.round(3.5)`, 4},
		{`Math.pow(2,10)`, 1024},
	}
	for _, tt := range tests {
		v, thrown := eval(t, version.V5, tt.src)
		if thrown != nil {
			t.Fatalf("%s: unexpected throw: %v", tt.src, thrown)
		}
		if v.Kind != object.KindNumber || v.N != tt.want {
			t.Errorf("%s = %v, want %v", tt.src, v, tt.want)
		}
	}
}

func TestObjectKeysAndHasOwnProperty(t *testing.T) {
	v, thrown := eval(t, version.V5, `var o={a:1,b:2}; Object.keys(o).join(',')+','+o.hasOwnProperty('a')+','+o.hasOwnProperty('z');`)
	if thrown != nil {
		t.Fatalf("unexpected throw: %v", thrown)
	}
	if v.S != "a,b,true,false" {
		t.Fatalf("result = %q, want \"a,b,true,false\"", v.S)
	}
}

func TestDateGetFullYear(t *testing.T) {
	v, thrown := eval(t, version.V5, `var d=new Date(2020,0,1); d.getFullYear();`)
	if thrown != nil {
		t.Fatalf("unexpected throw: %v", thrown)
	}
	if v.Kind != object.KindNumber || v.N != 2020 {
		t.Fatalf("getFullYear() = %v, want 2020", v)
	}
}

func TestRegExpTest(t *testing.T) {
	v, thrown := eval(t, version.V5, `/^\d+$/.test('12345');`)
	if thrown != nil {
		t.Fatalf("unexpected throw: %v", thrown)
	}
	if v.Kind != object.KindBoolean || !v.B {
		t.Fatalf("result = %v, want true", v)
	}
}

func TestFunctionCallAndApply(t *testing.T) {
	v, thrown := eval(t, version.V5, `function sum(a,b){return a+b;} sum.call(null,2,3)+','+sum.apply(null,[4,5]);`)
	if thrown != nil {
		t.Fatalf("unexpected throw: %v", thrown)
	}
	if v.S != "5,9" {
		t.Fatalf("result = %q, want \"5,9\"", v.S)
	}
}

func TestGlobalParseIntAndParseFloat(t *testing.T) {
	v, thrown := eval(t, version.V5, `parseInt('42px')+','+parseFloat('3.14 meters');`)
	if thrown != nil {
		t.Fatalf("unexpected throw: %v", thrown)
	}
	if v.S != "42,3.14" {
		t.Fatalf("result = %q, want \"42,3.14\"", v.S)
	}
}

func TestCompoundAssignmentOperatorsEvaluate(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{`var x=10; x+=5; x;`, 15},
		{`var x=10; x-=5; x;`, 5},
		{`var x=10; x*=5; x;`, 50},
		{`var x=10; x/=5; x;`, 2},
		{`var x=10; x%=3; x;`, 1},
		{`var x=6; x&=3; x;`, 2},
		{`var x=6; x|=1; x;`, 7},
		{`var x=6; x^=3; x;`, 5},
		{`var x=1; x<<=3; x;`, 8},
		{`var x=-8; x>>=1; x;`, -4},
		{`var x=-1; x>>>=28; x;`, 15},
	}
	for _, tt := range tests {
		v, thrown := eval(t, version.V5, tt.src)
		if thrown != nil {
			t.Fatalf("%s: unexpected throw: %v", tt.src, thrown)
		}
		if v.Kind != object.KindNumber || v.N != tt.want {
			t.Errorf("%s = %v, want %v", tt.src, v, tt.want)
		}
	}
}

func TestGroundTruthCompoundAssignmentsToUndeclaredVarsThrowReferenceError(t *testing.T) {
	// Grounded in original_source/test/test_interpreter.cpp's `b ^= 'x'`
	// and `e >>>= 42` fixtures: these must *parse* successfully and fail
	// only at evaluation time, with a ReferenceError for the undeclared
	// left-hand-side identifier.
	tests := []string{
		`b ^= 'x';`,
		`e >>>= 42;`,
	}
	for _, src := range tests {
		_, thrown := eval(t, version.V5, src)
		if thrown == nil {
			t.Fatalf("%s: expected a ReferenceError, got none", src)
		}
		if thrown.Name != errors.ReferenceError {
			t.Fatalf("%s: thrown.Name = %s, want ReferenceError", src, thrown.Name)
		}
	}
}

func TestDateDefaultHintPrefersToString(t *testing.T) {
	v, thrown := eval(t, version.V5, `var d = new Date(2020,0,1); d + '';`)
	if thrown != nil {
		t.Fatalf("unexpected throw: %v", thrown)
	}
	if v.Kind != object.KindString {
		t.Fatalf("result kind = %v, want string", v.Kind)
	}
	if v.S == "" {
		t.Fatalf("result = %q, want Date.prototype.toString() output, not empty", v.S)
	}
	for _, digit := range "0123456789" {
		if len(v.S) > 0 && v.S[0] == byte(digit) {
			t.Fatalf("result = %q looks like an epoch-millisecond numeric string, want Date.prototype.toString() output", v.S)
		}
	}
}

func TestOctalLiteralsOnlyBeforeV5(t *testing.T) {
	for _, ver := range []version.Version{version.V1, version.V3} {
		v, thrown := eval(t, ver, `010`)
		if thrown != nil {
			t.Fatalf("[%s] unexpected throw: %v", ver, thrown)
		}
		if v.N != 8 {
			t.Errorf("[%s] 010 = %v, want 8 (legacy octal)", ver, v.N)
		}
	}
}
