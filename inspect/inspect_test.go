package inspect

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chazu/substrate/obj"
)

func newRuntime(t *testing.T) *obj.Runtime {
	t.Helper()
	rt, err := obj.NewRuntime(nil)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	rt.SetErrorSink(&obj.Recorder{})
	return rt
}

func TestTake(t *testing.T) {
	rt := newRuntime(t)
	root := rt.NewObject()
	pos := rt.NewVector(obj.Vec4{X: 1, Y: 2, Z: 3, W: 1})
	root.SetField("position", pos)
	root.SetField("tags", rt.NewList(rt.NewString("a"), rt.NewString("b")))

	s := Take(root, 0)
	if s.Header.Runtime != rt.ID.String() {
		t.Errorf("Header.Runtime = %q, want %q", s.Header.Runtime, rt.ID)
	}
	if s.Header.Root != root.ID() || s.Header.Depth != DefaultMaxDepth {
		t.Errorf("Header = %+v", s.Header)
	}

	r := s.Root
	if r.Class != "Object" || r.Value != "object:"+root.Name() {
		t.Errorf("root node = %+v", r)
	}
	p := r.Fields["position"]
	if p == nil || p.Class != "Vector" || p.Value != pos.String() || p.Refs != 2 {
		t.Errorf("position node = %+v", p)
	}
	tags := r.Fields["tags"]
	if tags == nil || tags.Size != 2 || len(tags.Items) != 2 || tags.Value != "" {
		t.Fatalf("tags node = %+v", tags)
	}
	if tags.Items[1].Value != `"b"` {
		t.Errorf("tags[1] = %+v", tags.Items[1])
	}
	if s.Find(pos.ID()) != p {
		t.Error("Find should locate the position node")
	}
}

func TestTakeCycle(t *testing.T) {
	rt := newRuntime(t)
	a := rt.NewHashTable()
	b := rt.NewHashTable()
	obj.TableSet(a, "next", b)
	obj.TableSet(b, "next", a)

	s := Take(a, 10)
	back := s.Root.Fields["next"].Fields["next"]
	if back == nil || !back.Ref || back.ID != a.ID() {
		t.Errorf("cycle should end in a back-reference, got %+v", back)
	}
	if s.Root.Size != 1 || len(s.Root.Items) != 0 {
		t.Errorf("hash table entries belong in Fields: %+v", s.Root)
	}
}

func TestTakeTruncates(t *testing.T) {
	rt := newRuntime(t)
	a := rt.NewArray(MaxElementPreview + 5)
	obj.ArraySet(a, 0, rt.NewInt(1))

	s := Take(a, 1)
	if len(s.Root.Items) != MaxElementPreview || !s.Root.Truncated {
		t.Errorf("items = %d truncated = %v", len(s.Root.Items), s.Root.Truncated)
	}
	if s.Root.Items[0] == nil || s.Root.Items[0].Value != "1" {
		t.Errorf("items[0] = %+v", s.Root.Items[0])
	}
	if s.Root.Items[1] != nil {
		t.Errorf("empty slot = %+v, want nil", s.Root.Items[1])
	}

	l := rt.NewList(rt.NewList(rt.NewInt(1)))
	deep := Take(l, 1)
	inner := deep.Root.Items[0]
	if !inner.Truncated || inner.Items != nil {
		t.Errorf("inner list past depth = %+v", inner)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	rt := newRuntime(t)
	root := rt.NewObject()
	root.SetField("n", rt.NewInt(7))
	root.SetField("s", rt.NewString("x"))

	s := Take(root, 2)
	data, err := Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	again, err := Marshal(Take(root, 2))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Error("canonical encoding should be deterministic")
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Header != s.Header {
		t.Errorf("Header = %+v, want %+v", got.Header, s.Header)
	}
	if n := got.Root.Fields["n"]; n == nil || n.Value != "7" || n.Class != "Int" {
		t.Errorf("n = %+v", n)
	}
}

func TestUnmarshalRejectsBadRuntimeID(t *testing.T) {
	s := &Snapshot{
		Header: Header{Runtime: "not-a-uuid", Root: 1},
		Root:   &Node{ID: 1, Class: "Object", Name: "Object1"},
	}
	data, err := Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if _, err := Unmarshal(data); err == nil || !strings.Contains(err.Error(), "bad runtime id") {
		t.Errorf("Unmarshal error = %v", err)
	}
	if _, err := Unmarshal([]byte{0xff}); err == nil {
		t.Error("garbage should not decode")
	}
}
