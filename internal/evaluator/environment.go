package evaluator

import "github.com/cwbudde/go-jsvm/internal/object"

// Scope is the ordered, non-empty sequence of objects spec.md §3's
// "Scope chain" describes: lookup walks head to tail, and the tail is
// always the global object. `with` and V3+ `catch` push a transient
// object at the head for the lexical extent of their body.
type Scope struct {
	objects []*object.Object // index 0 is the head (innermost)
	// Strict marks that code running in this scope chain is V5
	// strict-mode (spec.md §4.6): lexically inherited from an enclosing
	// strict function down through every nested function, since ES5
	// strict mode cannot be "turned off" by a nested non-strict body.
	Strict bool
}

// NewScope creates a scope chain whose sole (and therefore tail) member
// is global.
func NewScope(global *object.Object) *Scope {
	return &Scope{objects: []*object.Object{global}}
}

// Push returns a new chain with o prepended; the existing members are
// copied into a fresh slice and the receiver is left unchanged (scopes
// are created far more often than mutated in place, matching the
// teacher's copy-on-push Environment style). The Strict flag carries
// over unchanged; callers invoking a strict function adjust it
// afterward via the returned scope.
func (s *Scope) Push(o *object.Object) *Scope {
	objs := make([]*object.Object, 0, len(s.objects)+1)
	objs = append(objs, o)
	objs = append(objs, s.objects...)
	return &Scope{objects: objs, Strict: s.Strict}
}

// Global returns the tail of the chain.
func (s *Scope) Global() *object.Object { return s.objects[len(s.objects)-1] }

// Resolve implements spec.md §4.5 `resolve_identifier(name, scope)`:
// walks head to tail, returning the first object in the chain that
// `has` the property.
func (s *Scope) Resolve(name string) *Reference {
	for _, o := range s.objects {
		if object.Has(o, name) {
			return &Reference{Base: o, Name: name, Strict: s.Strict}
		}
	}
	return &Reference{Unresolvable: true, Name: name, Strict: s.Strict}
}

// Head returns the innermost scope object, used to bind `var`/function
// declarations into the activation (or the with/catch object, if a
// declaration statement somehow runs inside one — not reachable via this
// evaluator's own statement forms, but kept honest for library callers).
func (s *Scope) Head() *object.Object { return s.objects[0] }
