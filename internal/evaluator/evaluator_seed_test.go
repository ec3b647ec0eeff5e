package evaluator_test

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-jsvm/internal/builtins"
	"github.com/cwbudde/go-jsvm/internal/errors"
	"github.com/cwbudde/go-jsvm/internal/evaluator"
	"github.com/cwbudde/go-jsvm/internal/object"
	"github.com/cwbudde/go-jsvm/internal/parser"
	"github.com/cwbudde/go-jsvm/internal/version"
)

// run parses and evaluates source under ver, failing the test on a parse
// error, and returns the script result plus any uncaught throw.
func run(t *testing.T, ver version.Version, source string) (object.Value, *errors.ScriptThrow) {
	t.Helper()
	p := parser.New(source, "<test>", ver)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	ev := evaluator.New(ver, "<test>", 0)
	builtins.Install(ev)
	v, thrown := ev.Run(prog)
	return v, thrown
}

func TestSeedUncaughtTypeErrorFourFrameStack(t *testing.T) {
	src := `x = 42; function a() { x(); } function b() { a(); } function c() { b(); } c();`
	_, thrown := run(t, version.V5, src)
	if thrown == nil {
		t.Fatal("expected uncaught throw, got none")
	}
	if thrown.Header() != "TypeError: 42 is not a function" {
		t.Fatalf("header = %q, want %q", thrown.Header(), "TypeError: 42 is not a function")
	}
	if len(thrown.Stack) != 4 {
		t.Fatalf("stack depth = %d, want 4 (got %v)", len(thrown.Stack), thrown.Stack)
	}
}

func TestSeedTryReturnNotInterceptedByCatch(t *testing.T) {
	src := `function f(){ try { return 42; } catch (e) { return 60; } } f();`
	v, thrown := run(t, version.V5, src)
	if thrown != nil {
		t.Fatalf("unexpected throw: %v", thrown)
	}
	if v.Kind != object.KindNumber || v.N != 42 {
		t.Fatalf("result = %v, want 42", v)
	}
}

func TestSeedArgumentsAliasing(t *testing.T) {
	src := `function evil(x,y){ arguments[0]=56; y=78; return ''+x+','+arguments[1]; } evil(12,34);`
	for _, ver := range []version.Version{version.V1, version.V3, version.V5} {
		v, thrown := run(t, ver, src)
		if thrown != nil {
			t.Fatalf("[%s] unexpected throw: %v", ver, thrown)
		}
		if v.Kind != object.KindString || v.S != "56,78" {
			t.Fatalf("[%s] result = %v, want \"56,78\"", ver, v)
		}
	}
}

func TestSeedLabeledContinue(t *testing.T) {
	src := `s=''; a: for(i=0;i<3;++i){ b:for(j=0;j<4;++j){s+=i+'-'+j; continue a;} } s`
	v, thrown := run(t, version.V5, src)
	if thrown != nil {
		t.Fatalf("unexpected throw: %v", thrown)
	}
	if v.Kind != object.KindString || v.S != "0-01-02-0" {
		t.Fatalf("result = %q, want %q", v.S, "0-01-02-0")
	}
}

func TestSeedAccessorProperty(t *testing.T) {
	src := `o={get q(){return this.n;}, set q(v){this.n=v+1;}, n:1}; o.q=42; o.q;`
	v, thrown := run(t, version.V5, src)
	if thrown != nil {
		t.Fatalf("unexpected throw: %v", thrown)
	}
	if v.Kind != object.KindNumber || v.N != 43 {
		t.Fatalf("result = %v, want 43", v)
	}
}

func TestSeedArrayLengthMagic(t *testing.T) {
	src := `var a=new Array(); a[5]=42; a[3]=2; a.length;`
	v, thrown := run(t, version.V5, src)
	if thrown != nil {
		t.Fatalf("unexpected throw: %v", thrown)
	}
	if v.Kind != object.KindNumber || v.N != 6 {
		t.Fatalf("a.length = %v, want 6", v)
	}

	src2 := `var a=new Array(); a[5]=42; a[3]=2; a.length=2; a[3];`
	v2, thrown2 := run(t, version.V5, src2)
	if thrown2 != nil {
		t.Fatalf("unexpected throw: %v", thrown2)
	}
	if !v2.IsUndefined() {
		t.Fatalf("a[3] after truncation = %v, want undefined", v2)
	}
}

func TestSeedStrictEqualityComparesTypesFirst(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{`1 === 1`, true},
		{`1 === '1'`, false},
		{`null === undefined`, false},
		{`NaN === NaN`, false},
		{`NaN != NaN`, true},
	}
	for _, tt := range tests {
		v, thrown := run(t, version.V5, tt.src)
		if thrown != nil {
			t.Fatalf("%s: unexpected throw: %v", tt.src, thrown)
		}
		if v.Kind != object.KindBoolean || v.B != tt.want {
			t.Errorf("%s = %v, want %v", tt.src, v, tt.want)
		}
	}
}

func TestSeedDivisionByZero(t *testing.T) {
	tests := []struct {
		src  string
		want string // "inf", "-inf", "nan"
	}{
		{`1/0`, "inf"},
		{`-1/0`, "-inf"},
		{`0/0`, "nan"},
	}
	for _, tt := range tests {
		v, thrown := run(t, version.V5, tt.src)
		if thrown != nil {
			t.Fatalf("%s: unexpected throw: %v", tt.src, thrown)
		}
		s, _ := object.ToString(v)
		switch tt.want {
		case "inf":
			if !strings.Contains(strings.ToLower(s), "infinity") {
				t.Errorf("%s = %q, want Infinity", tt.src, s)
			}
		case "-inf":
			if !strings.Contains(s, "-Infinity") {
				t.Errorf("%s = %q, want -Infinity", tt.src, s)
			}
		case "nan":
			if s != "NaN" {
				t.Errorf("%s = %q, want NaN", tt.src, s)
			}
		}
	}
}
