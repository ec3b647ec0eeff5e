package heap

import "testing"

type stubObj struct {
	refs []Traceable
}

func (s *stubObj) Trace(visit func(Traceable)) {
	for _, r := range s.refs {
		visit(r)
	}
}

func TestCollectDropsUnreachable(t *testing.T) {
	h := New(16)
	root := &stubObj{}
	h.Allocate(root)
	h.SetGlobal(root)

	garbage := &stubObj{}
	h.Allocate(garbage)

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
	h.Collect()
	if h.Len() != 1 {
		t.Fatalf("after Collect Len() = %d, want 1 (garbage should be swept)", h.Len())
	}
}

func TestCollectKeepsCycle(t *testing.T) {
	h := New(16)
	a := &stubObj{}
	b := &stubObj{}
	a.refs = []Traceable{b}
	b.refs = []Traceable{a}
	h.Allocate(a)
	h.Allocate(b)
	h.SetGlobal(a)

	h.Collect()
	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (cyclic pair reachable from global)", h.Len())
	}
}

func TestScopeRootsSurviveUntilClose(t *testing.T) {
	h := New(16)
	h.SetGlobal(&stubObj{})
	h.Allocate(h.global)

	sc := h.NewScope()
	held := sc.Root(&stubObj{})
	h.Allocate(held)

	h.Collect()
	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 while scope open", h.Len())
	}

	sc.Close()
	h.Collect()
	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after scope closed", h.Len())
	}
}

func TestUseRatio(t *testing.T) {
	h := New(4)
	if got := h.UseRatio(); got != 0 {
		t.Fatalf("UseRatio() on empty heap = %v, want 0", got)
	}
	root := &stubObj{}
	h.SetGlobal(root)
	h.Allocate(root)
	h.Allocate(&stubObj{})
	h.Collect()
	if got := h.UseRatio(); got != 0.25 {
		t.Fatalf("UseRatio() = %v, want 0.25", got)
	}
}

func TestMakeStringValue(t *testing.T) {
	h := New(8)
	s := MakeString(h, []uint16{'h', 'i'})
	if s.Value() != "hi" {
		t.Fatalf("Value() = %q, want %q", s.Value(), "hi")
	}
}
