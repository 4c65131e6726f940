package obj

import (
	"errors"
	"strings"
	"testing"
)

func TestArraySetAndRelease(t *testing.T) {
	rt, _ := newTestRuntime(t)
	a := rt.NewArray(10)
	i := rt.NewInt(1)

	if err := ArraySet(a, 0, i); err != nil {
		t.Fatalf("ArraySet: %v", err)
	}
	if i.Refs() != 2 {
		t.Errorf("Refs() = %d, want 2", i.Refs())
	}
	want := "[1 NULL NULL NULL NULL NULL NULL NULL NULL NULL]"
	if got := a.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	a.Release()
	if i.Refs() != 1 {
		t.Errorf("Refs() after releasing array = %d, want 1", i.Refs())
	}
}

func TestArrayGetSet(t *testing.T) {
	rt, rec := newTestRuntime(t)
	a := rt.NewArray(3)
	if ArrayLen(a) != 3 || a.Len() != 3 {
		t.Errorf("length = %d / %d, want 3", ArrayLen(a), a.Len())
	}

	if v, err := ArrayGet(a, 2); v != nil || err != nil {
		t.Errorf("empty slot = %v, %v; want nil, nil", v, err)
	}

	x := rt.NewString("x")
	y := rt.NewString("y")
	ArraySet(a, 1, x)
	ArraySet(a, 1, y)
	if x.Refs() != 1 || y.Refs() != 2 {
		t.Errorf("Refs: x %d y %d, want 1 and 2", x.Refs(), y.Refs())
	}
	if v, _ := ArrayGet(a, 1); v != y {
		t.Errorf("ArrayGet(1) = %v, want %v", v, y)
	}

	// Storing the occupant again keeps it alive.
	y.Release()
	if err := ArraySet(a, 1, y); err != nil || !y.Alive() {
		t.Fatalf("re-storing occupant: %v, alive %v", err, y.Alive())
	}

	if err := a.SetIndex(1, nil); err != nil {
		t.Fatalf("SetIndex(nil): %v", err)
	}
	if y.Alive() {
		t.Error("clearing the only owner should destroy the occupant")
	}

	rec.Reset()
	if _, err := ArrayGet(a, 3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("ArrayGet(3) = %v, want ErrOutOfRange", err)
	}
	if err := ArraySet(a, -1, x); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("ArraySet(-1) = %v, want ErrOutOfRange", err)
	}
	if _, err := a.Append(x); !errors.Is(err, ErrNotSupported) {
		t.Errorf("Append = %v, want ErrNotSupported", err)
	}
	if err := a.RemoveIndex(0); !errors.Is(err, ErrNotSupported) {
		t.Errorf("RemoveIndex = %v, want ErrNotSupported", err)
	}
	if len(rec.Errors) != 4 {
		t.Errorf("reported %d errors, want 4", len(rec.Errors))
	}
}

func TestArrayConstruction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxArrayLen = 4
	rt, _ := newTestRuntimeWith(t, cfg)

	if a, err := rt.New(ArrayClass, -1); a != nil || !errors.Is(err, ErrConstruct) {
		t.Errorf("New(Array, -1) = %v, %v", a, err)
	}

	a, err := rt.New(ArrayClass, 5)
	if a != nil || !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("New(Array, 5) = %v, %v; want ErrOutOfMemory", a, err)
	}
	if !strings.Contains(err.Error(), "could not allocate an Array of size 5") {
		t.Errorf("error = %q", err)
	}

	if a := rt.NewArray(0); a == nil || a.String() != "[]" {
		t.Errorf("NewArray(0) = %v", a)
	}
	if a, err := rt.New(ArrayClass); err != nil || ArrayLen(a) != 0 {
		t.Errorf("New(Array) without length = %v, %v; want an empty Array", a, err)
	}
	if a, err := rt.New(ArrayClass, uint64(1)<<63); a != nil || !errors.Is(err, ErrConstruct) ||
		!strings.Contains(err.Error(), "overflows int") {
		t.Errorf("New(Array, 1<<63) = %v, %v; want an overflow error", a, err)
	}
}

func TestArraySetValueOwnedByOccupant(t *testing.T) {
	rt, _ := newTestRuntime(t)
	a := rt.NewArray(1)
	holder := rt.NewObject()
	v := rt.NewString("v")
	holder.SetField("v", v)
	v.Release()
	ArraySet(a, 0, holder)
	holder.Release()

	// v is kept alive only through the occupant being replaced.
	if err := ArraySet(a, 0, holder.GetField("v")); err != nil {
		t.Fatalf("ArraySet: %v", err)
	}
	if holder.Alive() {
		t.Error("replaced occupant should be destroyed")
	}
	got, _ := ArrayGet(a, 0)
	if got != v || !v.Alive() || v.Refs() != 1 {
		t.Errorf("slot 0 = %v (alive %v, refs %d), want %v owned by the array", got, v.Alive(), v.Refs(), v)
	}
	if s := a.String(); s != `["v"]` {
		t.Errorf("String() = %q, want %q", s, `["v"]`)
	}
}

func TestArrayEquality(t *testing.T) {
	rt, _ := newTestRuntime(t)
	build := func(v int) *Object {
		a := rt.NewArray(3)
		ArraySet(a, 1, rt.NewInt(v))
		return a
	}
	x, y, z := build(1), build(1), build(2)
	if !x.Equals(y) || x.Hash() != y.Hash() {
		t.Error("arrays with equal slots should be equal with equal hashes")
	}
	if x.Equals(z) {
		t.Error("arrays with different slots should not be equal")
	}
	if x.Equals(rt.NewArray(3)) {
		t.Error("an occupied slot should not equal an empty one")
	}
}

func TestArrayToList(t *testing.T) {
	rt, _ := newTestRuntime(t)
	a := rt.NewArray(3)
	ArraySet(a, 0, rt.NewInt(1))
	ArraySet(a, 2, rt.NewInt(3))

	l, err := a.To(ListClass)
	if err != nil {
		t.Fatalf("To(List): %v", err)
	}
	if got := l.String(); got != "[1 3]" {
		t.Errorf("String() = %q, want [1 3]", got)
	}
}

func TestArrayIteratorYieldsEmptySlots(t *testing.T) {
	rt, _ := newTestRuntime(t)
	a := rt.NewArray(2)
	ArraySet(a, 1, rt.NewInt(1))

	it, _ := a.Iterator()
	defer it.Release()
	first, ok := IteratorNext(it)
	if !ok || first != nil {
		t.Errorf("first = %v, %v; want nil, true", first, ok)
	}
	second, ok := IteratorNext(it)
	if !ok || second == nil {
		t.Errorf("second = %v, %v", second, ok)
	}
	if _, ok := IteratorNext(it); ok {
		t.Error("iterator should be exhausted")
	}
}
