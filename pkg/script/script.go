// Package script is the embedding API: compile and run scripts against a
// chosen language dialect without touching the internal/ packages
// directly, mirroring the teacher's pkg/dwscript embedding surface.
package script

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-jsvm/internal/ast"
	"github.com/cwbudde/go-jsvm/internal/builtins"
	"github.com/cwbudde/go-jsvm/internal/errors"
	"github.com/cwbudde/go-jsvm/internal/evaluator"
	"github.com/cwbudde/go-jsvm/internal/object"
	"github.com/cwbudde/go-jsvm/internal/parser"
	"github.com/cwbudde/go-jsvm/internal/version"
)

// hostFunc pairs a host-registered name/arity with its implementation,
// applied to every Evaluator this Runtime builds.
type hostFunc struct {
	name   string
	length int
	fn     builtins.HostFunc
}

// Runtime hosts one dialect's global scope and heap. Each Runtime is
// single-threaded: callers that need concurrent execution should build
// one Runtime per goroutine.
type Runtime struct {
	ver           version.Version
	arenaCapacity int
	hostFuncs     []hostFunc
}

// RegisterHostFunction exposes a Go function to scripts run by this
// Runtime as a global function named name, callable with length
// arguments per its "length" own property (spec.md §4.4's built-in
// function attribute shape). It must be called before Compile/Run.
func (rt *Runtime) RegisterHostFunction(name string, length int, fn builtins.HostFunc) {
	rt.hostFuncs = append(rt.hostFuncs, hostFunc{name: name, length: length, fn: fn})
}

// Option configures a Runtime at construction time.
type Option func(*Runtime)

// WithArenaCapacity sets the heap's initial bump-arena capacity. Zero (the
// default) selects the package default in internal/heap.
func WithArenaCapacity(n int) Option {
	return func(rt *Runtime) { rt.arenaCapacity = n }
}

// New creates a Runtime targeting the given dialect.
func New(ver version.Version, opts ...Option) *Runtime {
	rt := &Runtime{ver: ver}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Program is source parsed once against a Runtime's dialect, ready to run
// (possibly repeatedly, each run against a fresh evaluator and heap).
type Program struct {
	rt   *Runtime
	ast  *ast.Program
	file string
}

// Compile parses source and reports any parse errors. The returned
// Program can be Run multiple times; each run starts a fresh heap and
// global scope.
func (rt *Runtime) Compile(source, filename string) (*Program, error) {
	p := parser.New(source, filename, rt.ver)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, parseErrors(errs)
	}
	return &Program{rt: rt, ast: prog, file: filename}, nil
}

// Run evaluates the compiled program and returns its completion value, or
// a *errors.ScriptThrow wrapped as error if the script throws uncaught.
func (pr *Program) Run() (object.Value, error) {
	ev := evaluator.New(pr.rt.ver, pr.file, pr.rt.arenaCapacity)
	builtins.Install(ev)
	for _, hf := range pr.rt.hostFuncs {
		builtins.DefineGlobalFunction(ev, hf.name, hf.length, hf.fn)
	}
	v, thrown := ev.Run(pr.ast)
	if thrown != nil {
		return v, thrown
	}
	return v, nil
}

// Run is a one-shot convenience wrapper equivalent to Compile followed by
// Run, for callers that don't need to reuse the parsed AST.
func (rt *Runtime) Run(source, filename string) (object.Value, error) {
	prog, err := rt.Compile(source, filename)
	if err != nil {
		return object.Value{}, err
	}
	return prog.Run()
}

func parseErrors(errs []*errors.ParseError) error {
	if len(errs) == 1 {
		return errs[0]
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Format()
	}
	return fmt.Errorf("%d parse errors:\n%s", len(errs), strings.Join(msgs, ""))
}
