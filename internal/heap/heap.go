// Package heap implements the garbage-collected arena described in
// spec.md §4.1: a mark-and-sweep collector over a capacity-bounded
// registry of heap-resident values, a root stack for the evaluator's live
// frames, and RAII-style scoped local root handles for host code.
//
// Go's own runtime already reclaims memory no one references; what this
// package adds on top is the bookkeeping spec.md asks for — deterministic
// collection points, use_ratio() for leak detection, and a registry that
// only the tracing walk (not ordinary Go reachability) keeps alive, so
// cyclic script graphs (closures capturing activations capturing
// closures) are collected on the collector's schedule, not the runtime's.
package heap

// Traceable is implemented by every heap-resident value (objects,
// strings). Trace must invoke visit once per outbound reference so the
// collector can mark transitively.
type Traceable interface {
	Trace(visit func(Traceable))
}

// Heap is the arena: a capacity-bounded registry of live Traceable
// values plus the root set consulted by Collect.
type Heap struct {
	cells    []Traceable
	capacity int
	global   Traceable
	roots    []Traceable // operand stack, call frames, pending exception
	scopes   []*Scope
}

// New creates a Heap with the given initial arena capacity. The arena
// grows (rather than aborting the host) when a collection fails to bring
// usage back under capacity — true allocation failure is left to the Go
// runtime, per spec.md §4.1's "an out-of-memory condition aborts the
// host" being an implementation choice, not a language-level feature
// scripts can observe either way.
func New(capacity int) *Heap {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Heap{capacity: capacity}
}

// SetGlobal registers the permanently-rooted global object (spec.md §3
// "Lifecycle": "The global object is permanently rooted.").
func (h *Heap) SetGlobal(g Traceable) { h.global = g }

// Allocate registers v in the arena and returns it. Callers construct the
// Go value themselves (object.NewObject, MakeString); Allocate is the
// point at which it becomes a heap.Traceable subject to collection.
func (h *Heap) Allocate(v Traceable) Traceable {
	h.cells = append(h.cells, v)
	if len(h.cells) > h.capacity {
		h.Collect()
		if len(h.cells) > h.capacity {
			h.capacity = len(h.cells) * 2
		}
	}
	return v
}

// PushRoot adds an explicit evaluator root (an operand mid-evaluation, a
// call frame's activation, a pending exception value) for the duration of
// its liveness. Pair with PopRoot in a defer at the push site.
func (h *Heap) PushRoot(v Traceable) {
	if v != nil {
		h.roots = append(h.roots, v)
	}
}

// PopRoot removes the most recently pushed explicit root.
func (h *Heap) PopRoot() {
	if len(h.roots) > 0 {
		h.roots = h.roots[:len(h.roots)-1]
	}
}

// Collect runs a full mark-and-sweep pass: mark from the global object,
// the explicit root stack, and every open Scope's handles; sweep drops
// everything unreached from the registry (Go's GC reclaims the rest once
// nothing else in the process still points to it).
func (h *Heap) Collect() {
	marked := make(map[Traceable]bool, len(h.cells))
	var mark func(Traceable)
	mark = func(v Traceable) {
		if v == nil || marked[v] {
			return
		}
		marked[v] = true
		v.Trace(mark)
	}
	if h.global != nil {
		mark(h.global)
	}
	for _, r := range h.roots {
		mark(r)
	}
	for _, sc := range h.scopes {
		for _, r := range sc.handles {
			mark(r)
		}
	}
	live := h.cells[:0]
	for _, c := range h.cells {
		if marked[c] {
			live = append(live, c)
		}
	}
	h.cells = live
}

// UseRatio reports the fraction of the arena's capacity currently
// occupied by live registry entries. Tests call this after a program
// completes and an explicit Collect() to detect leaked activations.
func (h *Heap) UseRatio() float64 {
	if h.capacity == 0 {
		return 0
	}
	return float64(len(h.cells)) / float64(h.capacity)
}

// Len reports the number of live entries currently registered.
func (h *Heap) Len() int { return len(h.cells) }

// Scope is an RAII-style LIFO local root set. Host code (and the
// evaluator, for values that must survive a safepoint without yet being
// reachable from any object) opens a Scope, roots values through it, and
// closes it when the enclosing call frame exits.
type Scope struct {
	h       *Heap
	handles []Traceable
}

// NewScope opens a scope rooted at the heap and pushes it onto the
// heap's scope stack.
func (h *Heap) NewScope() *Scope {
	sc := &Scope{h: h}
	h.scopes = append(h.scopes, sc)
	return sc
}

// Root registers v as reachable for the lifetime of the scope, returning
// v unchanged so callers can wrap an expression: `x := sc.Root(alloc())`.
func (sc *Scope) Root(v Traceable) Traceable {
	if v != nil {
		sc.handles = append(sc.handles, v)
	}
	return v
}

// Close pops the scope from the heap's scope stack. Scopes must be
// closed in LIFO order; Close is a no-op if sc is not the top scope
// (defensive against a missing defer elsewhere, not a condition this
// package expects in practice).
func (sc *Scope) Close() {
	scopes := sc.h.scopes
	if n := len(scopes); n > 0 && scopes[n-1] == sc {
		sc.h.scopes = scopes[:n-1]
	}
}
