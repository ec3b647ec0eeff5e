package script_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/go-jsvm/internal/object"
	"github.com/cwbudde/go-jsvm/internal/version"
	"github.com/cwbudde/go-jsvm/pkg/script"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func TestRuntimeRunSnapshots(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"arithmetic", `(2 + 3) * 4`},
		{"string_concat", `'foo' + 'bar' + (1+1)`},
		{"array_literal_length", `var a = [1,2,3]; a.length`},
		{"object_property", `var o = {x: 10, y: 20}; o.x + o.y`},
	}

	rt := script.New(version.V5)
	for _, c := range cases {
		v, err := rt.Run(c.src, "<snapshot>")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		snaps.MatchSnapshot(t, c.name, fmt.Sprintf("%+v", v))
	}
}

func TestRuntimeCompileReportsParseErrors(t *testing.T) {
	rt := script.New(version.V5)
	_, err := rt.Compile(`var = ;`, "<bad>")
	if err == nil {
		t.Fatal("expected a parse error, got none")
	}
}

func TestRegisterHostFunctionIsCallableFromScript(t *testing.T) {
	rt := script.New(version.V5)
	rt.RegisterHostFunction("double", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		if len(args) == 0 {
			return object.Num(0), nil
		}
		return object.Num(args[0].N * 2), nil
	})

	v, err := rt.Run(`double(21)`, "<host>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != object.KindNumber || v.N != 42 {
		t.Fatalf("result = %v, want 42", v)
	}
}

func TestRuntimeThrowIsReportedAsError(t *testing.T) {
	rt := script.New(version.V5)
	_, err := rt.Run(`throw new Error('boom');`, "<throw>")
	if err == nil {
		t.Fatal("expected an error from the uncaught throw")
	}
}
