// Package evaluator implements spec.md §4.3's recursive AST walk: scope
// resolution, statement completion composition, function call/construct
// mechanics, and operator semantics, all driven through internal/object's
// property-access protocol over internal/heap-resident values.
package evaluator

import (
	"github.com/cwbudde/go-jsvm/internal/ast"
	"github.com/cwbudde/go-jsvm/internal/errors"
	"github.com/cwbudde/go-jsvm/internal/heap"
	"github.com/cwbudde/go-jsvm/internal/object"
	"github.com/cwbudde/go-jsvm/internal/version"
)

// Evaluator owns the heap, the global object, and the handful of
// built-in prototypes every value-construction site needs. Fresh, it has
// a bare global object with no built-ins installed; callers run
// internal/builtins.Install(ev) before executing any program.
type Evaluator struct {
	Heap    *heap.Heap
	Global  *object.Object
	Version version.Version

	// File labels every captured stack frame (spec.md §6).
	File string

	ObjectProto   *object.Object
	FunctionProto *object.Object
	ArrayProto    *object.Object
	StringProto   *object.Object
	NumberProto   *object.Object
	BooleanProto  *object.Object
	DateProto     *object.Object
	RegExpProto   *object.Object
	ErrorProto    *object.Object
}

// New creates an Evaluator with a bare global object registered on a
// fresh heap of the given arena capacity (0 selects the heap package's
// default).
func New(ver version.Version, file string, arenaCapacity int) *Evaluator {
	h := heap.New(arenaCapacity)
	global := object.NewObject(h, object.ClassGlobal, nil)
	h.SetGlobal(global)
	return &Evaluator{Heap: h, Global: global, Version: ver, File: file}
}

// Run evaluates every top-level statement of prog against the global
// scope, in source order, returning the completion value of the last
// expression statement reached (the REPL-style "script result") or the
// uncaught throw.
func (e *Evaluator) Run(prog *ast.Program) (object.Value, *errors.ScriptThrow) {
	scope := NewScope(e.Global)
	this := object.FromObject(e.Global)
	e.hoistDeclarations(scope, e.Global, prog.Body)
	last := object.Undefined
	for _, stmt := range prog.Body {
		c := e.evalStatement(scope, this, stmt)
		switch c.Kind {
		case CompletionThrow:
			return object.Undefined, c.Err
		case CompletionReturn, CompletionBreak, CompletionContinue:
			// return/break/continue at top level: spec.md only forbids
			// `return` outside a function at parse time; the parser does
			// not check that a break/continue sits inside a loop or
			// switch, so an unconsumed one ends the script here.
			return c.Value, nil
		default:
			if c.HasValue {
				last = c.Value
			}
		}
	}
	return last, nil
}

// throwError builds a CompletionThrow for an error raised directly by
// the evaluator (as opposed to one propagated up from internal/object),
// constructing a matching script-visible Error object and seeding its
// ScriptThrow with the raise site as the innermost frame.
func (e *Evaluator) throwError(pos ast.Range, name errors.Name, format string, args ...any) Completion {
	st := errors.New(name, format, args...).WithFrame(e.File, pos)
	errObj := e.newErrorObject(name, st.Message)
	return Completion{Kind: CompletionThrow, Value: object.FromObject(errObj), Err: st}
}

// completionFromThrow converts an *object.Throw received back from
// either a direct internal/object call (get/put/delete/define) or a
// Callable.Call/Construct invocation into a Completion, with pos
// recorded as the next (outward) frame. If t already carries a
// *errors.ScriptThrow (stashed by this package's own Callable
// implementation as a throw crossed back out of a nested function call),
// that frame chain is preserved and extended rather than rebuilt —
// that's how spec.md §6's multi-frame stack accumulates one level per
// unwound call. Otherwise t originated directly from internal/object's
// "<Name>: <message>"-string convention and a fresh ScriptThrow is built.
func (e *Evaluator) completionFromThrow(pos ast.Range, t *object.Throw) Completion {
	if st, ok := t.Err.(*errors.ScriptThrow); ok && st != nil {
		return Completion{Kind: CompletionThrow, Value: t.Value, Err: st.WithFrame(e.File, pos)}
	}
	name, msg := splitThrowString(t.Value.S)
	st := errors.New(name, "%s", msg).WithFrame(e.File, pos)
	errObj := e.newErrorObject(name, msg)
	return Completion{Kind: CompletionThrow, Value: object.FromObject(errObj), Err: st}
}

// throwValue wraps an arbitrary script-thrown value (from a `throw`
// statement) into a Completion, deriving the ScriptThrow's Name/Message
// from the value's own `name`/`message` properties when it is an Error
// instance, falling back to a best-effort string conversion otherwise.
func (e *Evaluator) throwValue(pos ast.Range, v object.Value) Completion {
	name, msg := errors.Error, ""
	if v.IsObject() {
		if nv, _ := object.Get(v.O, "name", false); !nv.IsUndefined() {
			if s, thr := object.ToString(nv); thr == nil {
				name = errors.Name(s)
			}
		}
		if mv, _ := object.Get(v.O, "message", false); !mv.IsUndefined() {
			if s, thr := object.ToString(mv); thr == nil {
				msg = s
			}
		}
	} else if s, thr := object.ToString(v); thr == nil {
		msg = s
	}
	st := errors.New(name, "%s", msg).WithFrame(e.File, pos)
	return Completion{Kind: CompletionThrow, Value: v, Err: st}
}

func (e *Evaluator) newErrorObject(name errors.Name, message string) *object.Object {
	proto := e.ErrorProto
	o := object.NewObject(e.Heap, object.ClassError, proto)
	object.Put(o, "name", object.Str(string(name)), object.PutOptions{})
	object.Put(o, "message", object.Str(message), object.PutOptions{})
	return o
}

var errorNames = []errors.Name{
	errors.TypeError, errors.RangeError, errors.ReferenceError,
	errors.SyntaxError, errors.URIError, errors.EvalError,
}

// splitThrowString recovers the (Name, message) pair from internal/object's
// "<Name>: <message>" convention, falling back to the generic Error name
// for any string that doesn't match a known constructor prefix.
func splitThrowString(s string) (errors.Name, string) {
	for _, n := range errorNames {
		prefix := string(n) + ": "
		if len(s) > len(prefix) && s[:len(prefix)] == prefix {
			return n, s[len(prefix):]
		}
	}
	return errors.Error, s
}
