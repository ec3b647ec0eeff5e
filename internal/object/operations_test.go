package object

import (
	"testing"

	"github.com/cwbudde/go-jsvm/internal/heap"
)

func newTestHeap() *heap.Heap { return heap.New(64) }

func TestArrayLengthInvariants(t *testing.T) {
	h := newTestHeap()
	arr := NewObject(h, ClassArray, nil)

	if err := Put(arr, "5", Num(42), PutOptions{}); err != nil {
		t.Fatalf("Put(5) = %v", err)
	}
	if arr.ArrayLength != 6 {
		t.Fatalf("ArrayLength = %d, want 6 (writing index k sets length to k+1)", arr.ArrayLength)
	}
	if err := Put(arr, "3", Num(2), PutOptions{}); err != nil {
		t.Fatalf("Put(3) = %v", err)
	}
	if arr.ArrayLength != 6 {
		t.Fatalf("ArrayLength = %d, want 6 (writing a lower index must not shrink length)", arr.ArrayLength)
	}

	if err := Put(arr, "length", Num(2), PutOptions{}); err != nil {
		t.Fatalf("Put(length) = %v", err)
	}
	if arr.ArrayLength != 2 {
		t.Fatalf("ArrayLength = %d, want 2", arr.ArrayLength)
	}
	v, _ := Get(arr, "3", false)
	if !v.IsUndefined() {
		t.Fatalf("Get(3) after length shrink = %v, want undefined (index >= n deleted)", v)
	}
}

func TestMaxIndexIsStringKeyed(t *testing.T) {
	arr := NewObject(newTestHeap(), ClassArray, nil)
	if err := Put(arr, "4294967296", Num(1), PutOptions{}); err != nil {
		t.Fatalf("Put = %v", err)
	}
	if arr.ArrayLength != 0 {
		t.Fatalf("ArrayLength = %d, want 0 (4294967296 is a string-keyed property, not an index)", arr.ArrayLength)
	}
	if !arr.Props.Has("4294967296") {
		t.Fatal("expected the string-keyed property to exist")
	}
}

func TestEnumerateOwnBeforePrototypeNoShadowRevisit(t *testing.T) {
	h := newTestHeap()
	proto := NewObject(h, ClassObject, nil)
	proto.Props.Set("a", Property{Value: Num(1), Attrs: DefaultAttrs})
	proto.Props.Set("hidden", Property{Value: Num(2), Attrs: DefaultAttrs})

	child := NewObject(h, ClassObject, proto)
	child.Props.Set("b", Property{Value: Num(3), Attrs: DefaultAttrs})
	// own non-enumerable property shadowing and suppressing the
	// prototype's enumerable "hidden" key.
	child.Props.Set("hidden", Property{Value: Num(4), Attrs: Attrs{Writable: true}})

	keys := Enumerate(child)
	want := []string{"b", "a"}
	if len(keys) != len(want) {
		t.Fatalf("Enumerate = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Enumerate = %v, want %v", keys, want)
		}
	}
}

func TestPutCreatesOnReceiverNotPrototype(t *testing.T) {
	h := newTestHeap()
	proto := NewObject(h, ClassObject, nil)
	proto.Props.Set("x", Property{Value: Num(1), Attrs: DefaultAttrs})
	child := NewObject(h, ClassObject, proto)

	if err := Put(child, "x", Num(99), PutOptions{}); err != nil {
		t.Fatalf("Put = %v", err)
	}
	if !child.Props.Has("x") {
		t.Fatal("expected own property x on child")
	}
	protoVal, _ := proto.Props.Get("x")
	if protoVal.Value.N != 1 {
		t.Fatalf("prototype's x mutated: %v", protoVal.Value)
	}
}

func TestDeleteNonConfigurable(t *testing.T) {
	h := newTestHeap()
	o := NewObject(h, ClassObject, nil)
	o.Props.Set("x", Property{Value: Num(1), Attrs: Attrs{Writable: true, Enumerable: true}})

	ok, thr := Delete(o, "x", false)
	if ok || thr != nil {
		t.Fatalf("Delete non-strict = %v, %v; want false, nil", ok, thr)
	}
	if _, thr := Delete(o, "x", true); thr == nil {
		t.Fatal("Delete strict on non-configurable property should throw")
	}
}

func TestToStringRoundTrip(t *testing.T) {
	for _, n := range []float64{0, 1, -1, 42, 1.5, -0.25} {
		s := NumberToString(n)
		got := stringToNumber(s)
		if got != n {
			t.Fatalf("NumberToString(%v)=%q, stringToNumber back = %v", n, s, got)
		}
	}
}
