package evaluator

import "github.com/cwbudde/go-jsvm/internal/object"

// Reference is the transient (base, name) pair of spec.md §3: the
// pre-resolution of an l-value. References are never stored on the
// heap; they exist only as intermediate results inside the evaluator.
type Reference struct {
	Base         *object.Object
	Name         string
	Unresolvable bool
	// Strict marks a reference produced while evaluating strict-mode
	// code, so GetValue/PutValue can apply V5-strict failure semantics
	// (ReferenceError on an unresolvable write, TypeError on a rejected
	// put) instead of the silent/global-create fallback.
	Strict bool
}

// GetValue implements spec.md §4.3 `GetValue(x)`.
func (e *Evaluator) GetValue(r *Reference) (object.Value, *object.Throw) {
	if r.Unresolvable {
		return object.Undefined, object.NewThrow(object.Str("ReferenceError: " + r.Name + " is not defined"))
	}
	return object.Get(r.Base, r.Name, e.Version.StringIndexingReadsChars())
}

// PutValue implements spec.md §4.3 `PutValue(x, v)`.
func (e *Evaluator) PutValue(r *Reference, v object.Value) *object.Throw {
	if r.Unresolvable {
		if r.Strict {
			return object.NewThrow(object.Str("ReferenceError: " + r.Name + " is not defined"))
		}
		// V1/V3 (and V5 non-strict): an unqualified assignment to an
		// unresolved name creates a property on the global object
		// (spec.md §4.5).
		return object.Put(e.Global, r.Name, v, object.PutOptions{Strict: false})
	}
	return object.Put(r.Base, r.Name, v, object.PutOptions{Strict: r.Strict})
}
