package object

import "testing"

func TestDefineCreatesOwnProperty(t *testing.T) {
	o := NewObject(newTestHeap(), ClassObject, nil)
	ok, thr := Define(o, "x", Descriptor{HasValue: true, Value: Num(1), HasWritable: true, Writable: true})
	if !ok || thr != nil {
		t.Fatalf("Define = %v, %v", ok, thr)
	}
	p, _ := o.Props.Get("x")
	if p.Value.N != 1 || p.Attrs.Enumerable || p.Attrs.Configurable {
		t.Fatalf("unexpected descriptor defaults: %+v", p)
	}
}

func TestDefineRejectsMakingConfigurableTrueAgain(t *testing.T) {
	o := NewObject(newTestHeap(), ClassObject, nil)
	Define(o, "x", Descriptor{HasValue: true, Value: Num(1), HasConfigurable: true, Configurable: false})
	_, thr := Define(o, "x", Descriptor{HasConfigurable: true, Configurable: true})
	if thr == nil {
		t.Fatal("expected TypeError redefining configurable:false -> true")
	}
}

func TestDefineRejectsWritableValueChangeWhenNonWritableNonConfigurable(t *testing.T) {
	o := NewObject(newTestHeap(), ClassObject, nil)
	Define(o, "x", Descriptor{HasValue: true, Value: Num(1), HasWritable: true, Writable: false})
	_, thr := Define(o, "x", Descriptor{HasValue: true, Value: Num(2)})
	if thr == nil {
		t.Fatal("expected TypeError changing value of non-writable non-configurable property")
	}
	// Same value is allowed.
	ok, thr2 := Define(o, "x", Descriptor{HasValue: true, Value: Num(1)})
	if !ok || thr2 != nil {
		t.Fatalf("redefining with the same value should succeed: %v, %v", ok, thr2)
	}
}

func TestDefineAllowsWritableValueChangeWhenConfigurable(t *testing.T) {
	o := NewObject(newTestHeap(), ClassObject, nil)
	Define(o, "x", Descriptor{HasValue: true, Value: Num(1), HasWritable: true, Writable: false, HasConfigurable: true, Configurable: true})
	ok, thr := Define(o, "x", Descriptor{HasValue: true, Value: Num(2)})
	if !ok || thr != nil {
		t.Fatalf("Define = %v, %v; want success (configurable property)", ok, thr)
	}
	p, _ := o.Props.Get("x")
	if p.Value.N != 2 {
		t.Fatalf("value = %v, want 2", p.Value)
	}
}

func TestDefineRejectsDataAccessorSwitchWhenNonConfigurable(t *testing.T) {
	h := newTestHeap()
	o := NewObject(h, ClassObject, nil)
	Define(o, "x", Descriptor{HasValue: true, Value: Num(1)})
	getter := NewObject(h, ClassFunction, nil)
	_, thr := Define(o, "x", Descriptor{HasGet: true, Get: getter})
	if thr == nil {
		t.Fatal("expected TypeError switching data<->accessor on non-configurable property")
	}
}

func TestDefineAccessorRoundTrip(t *testing.T) {
	h := newTestHeap()
	o := NewObject(h, ClassObject, nil)
	getter := NewObject(h, ClassFunction, nil)
	setter := NewObject(h, ClassFunction, nil)
	ok, thr := Define(o, "q", Descriptor{HasGet: true, Get: getter, HasSet: true, Set: setter, HasEnumerable: true, Enumerable: true, HasConfigurable: true, Configurable: true})
	if !ok || thr != nil {
		t.Fatalf("Define = %v, %v", ok, thr)
	}
	p, _ := o.Props.Get("q")
	if !p.IsAccessor || p.Get != getter || p.Set != setter {
		t.Fatalf("unexpected accessor property: %+v", p)
	}
}
