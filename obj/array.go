package obj

import (
	"errors"
	"fmt"
	"io"
)

// ---------------------------------------------------------------------------
// Array
// ---------------------------------------------------------------------------

// arrayState holds a fixed number of slots; a nil slot is empty.
type arrayState struct {
	slots []*Object
}

type arrayBehavior struct{}

func (arrayBehavior) Alloc() any { return &arrayState{} }

// Construct takes the length as its only argument; without one the Array
// is empty.
func (arrayBehavior) Construct(o *Object, args Args) error {
	if args.Len() == 0 {
		o.state.(*arrayState).slots = []*Object{}
		return nil
	}
	n, err := args.Int(0)
	if err != nil {
		return err
	}
	if n < 0 {
		return errors.New("negative Array length")
	}
	if limit := o.rt.cfg.MaxArrayLen; limit > 0 && n > limit {
		return fmt.Errorf("%w: could not allocate an Array of size %d", ErrOutOfMemory, n)
	}
	o.state.(*arrayState).slots = make([]*Object, n)
	return nil
}

func (arrayBehavior) Destroy(o *Object) bool {
	s := o.state.(*arrayState)
	for i := len(s.slots) - 1; i >= 0; i-- {
		s.slots[i].Release()
		s.slots[i] = nil
	}
	s.slots = nil
	return true
}

func (arrayBehavior) Clone(src, dst *Object) error {
	from := src.state.(*arrayState).slots
	slots := make([]*Object, len(from))
	for i, v := range from {
		if v != nil {
			slots[i] = v.Retain()
		}
	}
	dst.state.(*arrayState).slots = slots
	return nil
}

func (arrayBehavior) Len(o *Object) int {
	return len(o.state.(*arrayState).slots)
}

func (arrayBehavior) GetIndex(o *Object, i int) (*Object, error) {
	slots := o.state.(*arrayState).slots
	if i < 0 || i >= len(slots) {
		return nil, outOfRange(i, len(slots))
	}
	return slots[i], nil
}

// SetIndex retains v, then releases the previous occupant, so v may be
// owned only through that occupant. A nil v empties the slot.
func (arrayBehavior) SetIndex(o *Object, i int, v *Object) error {
	slots := o.state.(*arrayState).slots
	if i < 0 || i >= len(slots) {
		return outOfRange(i, len(slots))
	}
	old := slots[i]
	if v != nil {
		v.Retain()
	}
	slots[i] = v
	old.Release()
	return nil
}

func (arrayBehavior) Cursor(o *Object) Cursor {
	return &arrayCursor{slots: o.state.(*arrayState).slots}
}

func (arrayBehavior) Equal(a, b *Object) bool {
	x, y := a.state.(*arrayState).slots, b.state.(*arrayState).slots
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !x[i].Equals(y[i]) {
			return false
		}
	}
	return true
}

// Hash treats empty slots as hashing to zero.
func (arrayBehavior) Hash(o *Object) uint32 {
	h := int64(1)
	for _, v := range o.state.(*arrayState).slots {
		var e uint32
		if v != nil {
			e = v.Hash()
		}
		h = (h*31 + int64(e)) % hashRange
	}
	return foldHash(h)
}

func (arrayBehavior) Print(w io.Writer, o *Object) error {
	return printSeq(w, o)
}

// Convert produces a List of the occupied slots, in order.
func (arrayBehavior) Convert(o *Object, target *Class) *Object {
	if target != ListClass {
		return nil
	}
	l := o.rt.NewList()
	if l == nil {
		return nil
	}
	s := l.state.(*listState)
	for _, v := range o.state.(*arrayState).slots {
		if v != nil {
			s.push(v.Retain())
		}
	}
	return l
}

// arrayCursor yields every slot, empty ones as nil.
type arrayCursor struct {
	slots []*Object
	i     int
}

func (c *arrayCursor) Next() (*Object, bool) {
	if c.i >= len(c.slots) {
		return nil, false
	}
	v := c.slots[c.i]
	c.i++
	return v, true
}

// NewArray creates an Array of n empty slots, owned.
func (rt *Runtime) NewArray(n int) *Object {
	o, _ := rt.New(ArrayClass, n)
	return o
}

// ArrayLen returns the number of slots of a, or -1 if a is not an Array.
func ArrayLen(a *Object) int {
	if expect(a, "ArrayLen", ArrayClass) != nil {
		return -1
	}
	return len(a.state.(*arrayState).slots)
}

// ArrayGet returns a borrowed reference to slot i, nil if empty.
func ArrayGet(a *Object, i int) (*Object, error) {
	if err := expect(a, "ArrayGet", ArrayClass); err != nil {
		return nil, err
	}
	v, err := arrayBehavior{}.GetIndex(a, i)
	if err != nil {
		return nil, report(a, "ArrayGet", err)
	}
	return v, nil
}

// ArraySet stores v in slot i. See arrayBehavior.SetIndex.
func ArraySet(a *Object, i int, v *Object) error {
	if err := expect(a, "ArraySet", ArrayClass); err != nil {
		return err
	}
	if v != nil && v.class == nil {
		return reportf(a, "ArraySet", ErrReleased, "argument %s", v.name)
	}
	if err := (arrayBehavior{}).SetIndex(a, i, v); err != nil {
		return report(a, "ArraySet", err)
	}
	return nil
}
