package obj

import (
	"errors"
	"fmt"
	"slices"
	"testing"
)

func TestSetFieldReplaceReleases(t *testing.T) {
	rt, _ := newTestRuntime(t)
	o := rt.NewObject()
	x := rt.NewString("x")
	y := rt.NewString("y")

	o.SetField("a", x)
	x.Release()
	if !x.Alive() || x.Refs() != 1 {
		t.Fatalf("x should be owned by o alone, Refs() = %d", x.Refs())
	}

	o.SetField("a", y)
	if x.Alive() {
		t.Error("replaced value should be destroyed")
	}
	if o.GetField("a") != y {
		t.Error("GetField should return the new value")
	}
	if y.Refs() != 2 {
		t.Errorf("y Refs() = %d, want 2", y.Refs())
	}
	if o.FieldCount() != 1 {
		t.Errorf("FieldCount() = %d, want 1", o.FieldCount())
	}
}

func TestSetFieldNilRemoves(t *testing.T) {
	rt, _ := newTestRuntime(t)
	o := rt.NewObject()
	v := rt.NewInt(1)
	o.SetField("a", v)

	if err := o.SetField("a", nil); err != nil {
		t.Fatalf("SetField(nil): %v", err)
	}
	if o.GetField("a") != nil {
		t.Error("binding should be removed")
	}
	if v.Refs() != 1 {
		t.Errorf("Refs() = %d, want 1", v.Refs())
	}

	// Removing an unbound name is not an error.
	if err := o.SetField("missing", nil); err != nil {
		t.Errorf("SetField(missing, nil): %v", err)
	}
}

func TestGenericNamedAccess(t *testing.T) {
	rt, _ := newTestRuntime(t)
	o := rt.NewInt(3)
	v := rt.NewString("tag")

	if err := o.Set("label", v); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := o.Get("label")
	if err != nil || got != v {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if err := o.Remove("label"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got, _ := o.Get("label"); got != nil {
		t.Errorf("Get after Remove = %v, want nil", got)
	}
}

func TestManyFields(t *testing.T) {
	rt, _ := newTestRuntime(t)
	o := rt.NewObject()
	var names []string
	for i := range 100 {
		name := fmt.Sprintf("f%03d", i)
		names = append(names, name)
		v := rt.NewInt(i)
		o.SetField(name, v)
		v.Release()
	}
	if o.FieldCount() != 100 {
		t.Fatalf("FieldCount() = %d, want 100", o.FieldCount())
	}
	if !slices.Equal(o.FieldNames(), names) {
		t.Error("FieldNames() should be sorted")
	}
	if v, _ := IntValue(o.GetField("f042")); v != 42 {
		t.Errorf("f042 = %d, want 42", v)
	}

	live := rt.Live()
	o.Release()
	if rt.Live() != live-101 {
		t.Errorf("Live() = %d, want %d", rt.Live(), live-101)
	}
}

// ---------------------------------------------------------------------------
// Path tests
// ---------------------------------------------------------------------------

func TestGetPath(t *testing.T) {
	rt, rec := newTestRuntime(t)
	root := rt.NewObject()
	transform := rt.NewObject()
	pos := rt.NewVector(Vec4{1, 2, 3, 1})
	root.SetField("transform", transform)
	transform.SetField("position", pos)

	got, err := root.GetPath("transform/position")
	if err != nil || got != pos {
		t.Fatalf("GetPath = %v, %v; want %v", got, err, pos)
	}
	if pos.Refs() != 2 {
		t.Errorf("GetPath should borrow, Refs() = %d", pos.Refs())
	}

	for _, tt := range []struct {
		path string
		want error
	}{
		{"", ErrMalformedPath},
		{"transform//position", ErrMalformedPath},
		{"transform/", ErrMalformedPath},
		{"/transform", ErrMalformedPath},
		{"transform/missing", ErrNotFound},
		{"missing/position", ErrNotFound},
	} {
		rec.Reset()
		v, err := root.GetPath(tt.path)
		if v != nil || !errors.Is(err, tt.want) {
			t.Errorf("GetPath(%q) = %v, %v; want %v", tt.path, v, err, tt.want)
		}
		if !errors.Is(rec.Last(), tt.want) {
			t.Errorf("GetPath(%q) reported %v", tt.path, rec.Last())
		}
	}
}

func TestSetPath(t *testing.T) {
	rt, _ := newTestRuntime(t)
	root := rt.NewObject()
	child := rt.NewObject()
	root.SetField("child", child)

	if err := root.SetPath("child/x", rt.NewFloat(2.5)); err != nil {
		t.Fatalf("SetPath: %v", err)
	}
	got, err := root.GetPath("child/x")
	if err != nil {
		t.Fatalf("GetPath: %v", err)
	}
	if v, _ := FloatValue(got); v != 2.5 {
		t.Errorf("child/x = %v, want 2.5", v)
	}

	if err := root.SetPath("top", rt.NewInt(1)); err != nil {
		t.Fatalf("SetPath(top): %v", err)
	}
	if root.GetField("top") == nil {
		t.Error("single-segment SetPath should bind on the receiver")
	}

	if err := root.SetPath("child/", rt.NewInt(1)); !errors.Is(err, ErrMalformedPath) {
		t.Errorf("SetPath(child/) error = %v, want ErrMalformedPath", err)
	}
	if err := root.SetPath("nobody/x", rt.NewInt(1)); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetPath(nobody/x) error = %v, want ErrNotFound", err)
	}
}
