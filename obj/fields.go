package obj

import (
	"fmt"
	"strings"

	"github.com/chazu/substrate/fieldtable"
)

// ---------------------------------------------------------------------------
// Attributes
// ---------------------------------------------------------------------------

// SetField binds the attribute name to v, retaining v and releasing the
// value previously bound. A nil v removes the binding and releases its
// value. The attribute table is created on first write.
func (o *Object) SetField(name string, v *Object) error {
	if err := o.check("SetField"); err != nil {
		return err
	}
	if v == nil {
		if o.fields != nil {
			old, _ := o.fields.Remove(name)
			old.Release()
		}
		return nil
	}
	if v.class == nil {
		return reportf(o, "SetField", ErrReleased, "argument %s", v.name)
	}

	v.Retain()
	if o.fields == nil {
		o.fields = fieldtable.New[*Object](o.rt.cfg.InitialBuckets, o.rt.cfg.LoadFactor)
	}
	if old, replaced := o.fields.Insert(name, v); replaced {
		old.Release()
	}
	return nil
}

// GetField returns the borrowed value bound to name, or nil.
func (o *Object) GetField(name string) *Object {
	if o.check("GetField") != nil || o.fields == nil {
		return nil
	}
	v, _ := o.fields.Get(name)
	return v
}

// FieldCount returns the number of bound attributes.
func (o *Object) FieldCount() int {
	if o == nil || o.fields == nil {
		return 0
	}
	return o.fields.Len()
}

// FieldNames returns the bound attribute names in ascending order.
func (o *Object) FieldNames() []string {
	if o == nil || o.fields == nil {
		return nil
	}
	return o.fields.Keys()
}

// releaseFields drops every attribute binding.
func (o *Object) releaseFields() {
	if o.fields == nil {
		return
	}
	for _, v := range o.fields.Reset() {
		v.Release()
	}
	o.fields = nil
}

// ---------------------------------------------------------------------------
// Paths
// ---------------------------------------------------------------------------

// GetPath resolves a slash-separated sequence of attribute names, e.g.
// "transform/position/x", and returns the final value borrowed.
func (o *Object) GetPath(path string) (*Object, error) {
	if err := o.check("GetPath"); err != nil {
		return nil, err
	}
	return o.walkPath("GetPath", path, strings.Split(path, "/"))
}

// SetPath binds the last segment of path on the object the preceding
// segments resolve to. See SetField.
func (o *Object) SetPath(path string, v *Object) error {
	if err := o.check("SetPath"); err != nil {
		return err
	}
	segs := strings.Split(path, "/")
	last := segs[len(segs)-1]
	if last == "" {
		return reportf(o, "SetPath", ErrMalformedPath, "%q", path)
	}
	owner, err := o.walkPath("SetPath", path, segs[:len(segs)-1])
	if err != nil {
		return err
	}
	return owner.SetField(last, v)
}

func (o *Object) walkPath(op, path string, segs []string) (*Object, error) {
	cur := o
	for _, seg := range segs {
		if seg == "" {
			return nil, reportf(o, op, ErrMalformedPath, "%q", path)
		}
		next := cur.GetField(seg)
		if next == nil {
			return nil, report(o, op, fmt.Errorf("%w: %q in %q", ErrNotFound, seg, path))
		}
		cur = next
	}
	return cur, nil
}
