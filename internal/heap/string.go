package heap

// String is a heap-resident, immutable string value (spec.md §3:
// "heap-allocated but conceptually value-typed"). It carries no outbound
// references, so Trace is a no-op; it still occupies an arena slot so
// use_ratio() reflects string churn the same way it reflects object
// churn.
type String struct {
	Units []uint16
}

// MakeString allocates a String in h and returns it. Interning is not
// required (spec.md §4.1): equality is structural, handled by comparing
// Units, not identity.
func MakeString(h *Heap, units []uint16) *String {
	s := &String{Units: units}
	h.Allocate(s)
	return s
}

func (s *String) Trace(func(Traceable)) {}

// Value renders the code units back to a Go string, for callers that
// need one (internal/object holds script strings as native Go strings,
// not as heap.String cells).
func (s *String) Value() string {
	r := make([]rune, len(s.Units))
	for i, u := range s.Units {
		r[i] = rune(u)
	}
	return string(r)
}
