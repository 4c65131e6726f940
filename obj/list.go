package obj

import (
	"fmt"
	"io"
)

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

type listNode struct {
	value *Object
	next  *listNode
}

// listState is a singly linked list with a tail pointer for O(1) appends
// and a read cursor so forward sequential access is O(1) amortised.
type listState struct {
	head, tail *listNode
	length     int

	cur    *listNode // last node reached by node(), nil when invalid
	curIdx int
}

// node returns the node at i, which must be in [0, length).
func (s *listState) node(i int) *listNode {
	n, at := s.head, 0
	if s.cur != nil && s.curIdx <= i {
		n, at = s.cur, s.curIdx
	}
	for ; at < i; at++ {
		if n == nil {
			break
		}
		n = n.next
	}
	if n == nil {
		panic("obj: list length mismatch")
	}
	s.cur, s.curIdx = n, i
	return n
}

// push links v (already retained) at the tail.
func (s *listState) push(v *Object) int {
	n := &listNode{value: v}
	if s.tail == nil {
		s.head = n
	} else {
		s.tail.next = n
	}
	s.tail = n
	s.length++
	return s.length
}

// insert links v (already retained) so that it ends up at index i.
func (s *listState) insert(i int, v *Object) {
	if i == s.length {
		s.push(v)
		return
	}
	n := &listNode{value: v}
	if i == 0 {
		n.next = s.head
		s.head = n
	} else {
		prev := s.node(i - 1)
		n.next = prev.next
		prev.next = n
	}
	s.length++
	s.cur = nil
}

// unlink detaches node i and returns its value, still referenced.
func (s *listState) unlink(i int) *Object {
	var rem *listNode
	if i == 0 {
		rem = s.head
		s.head = rem.next
		if s.tail == rem {
			s.tail = nil
		}
	} else {
		prev := s.node(i - 1)
		rem = prev.next
		if rem == nil {
			panic("obj: list length mismatch")
		}
		prev.next = rem.next
		if s.tail == rem {
			s.tail = prev
		}
	}
	s.length--
	s.cur = nil
	return rem.value
}

type listBehavior struct{}

func (listBehavior) Alloc() any { return &listState{} }

// Construct appends every argument, in order.
func (listBehavior) Construct(o *Object, args Args) error {
	elems := make([]*Object, len(args))
	for i := range args {
		v, err := args.Object(i)
		if err != nil {
			return err
		}
		if v.class == nil {
			return fmt.Errorf("%w: argument %s", ErrReleased, v.name)
		}
		elems[i] = v
	}
	s := o.state.(*listState)
	for _, v := range elems {
		s.push(v.Retain())
	}
	return nil
}

func (listBehavior) Destroy(o *Object) bool {
	s := o.state.(*listState)
	for n := s.head; n != nil; n = n.next {
		n.value.Release()
	}
	*s = listState{}
	return true
}

func (listBehavior) Clone(src, dst *Object) error {
	d := dst.state.(*listState)
	for n := src.state.(*listState).head; n != nil; n = n.next {
		d.push(n.value.Retain())
	}
	return nil
}

func (listBehavior) Len(o *Object) int {
	return o.state.(*listState).length
}

func (listBehavior) GetIndex(o *Object, i int) (*Object, error) {
	s := o.state.(*listState)
	if i < 0 || i >= s.length {
		return nil, outOfRange(i, s.length)
	}
	return s.node(i).value, nil
}

func (listBehavior) SetIndex(o *Object, i int, v *Object) error {
	s := o.state.(*listState)
	if v == nil {
		return ErrNilObject
	}
	if i < 0 || i >= s.length {
		return outOfRange(i, s.length)
	}
	n := s.node(i)
	old := n.value
	n.value = v.Retain()
	old.Release()
	return nil
}

func (listBehavior) Append(o *Object, v *Object) (int, error) {
	if v == nil {
		return -1, ErrNilObject
	}
	return o.state.(*listState).push(v.Retain()), nil
}

func (listBehavior) RemoveIndex(o *Object, i int) error {
	s := o.state.(*listState)
	if i < 0 || i >= s.length {
		return outOfRange(i, s.length)
	}
	s.unlink(i).Release()
	return nil
}

func (listBehavior) Cursor(o *Object) Cursor {
	return &listCursor{next: o.state.(*listState).head}
}

// Equal compares element by element, in order.
func (listBehavior) Equal(a, b *Object) bool {
	x, y := a.state.(*listState), b.state.(*listState)
	if x.length != y.length {
		return false
	}
	for n, m := x.head, y.head; n != nil && m != nil; n, m = n.next, m.next {
		if !n.value.Equals(m.value) {
			return false
		}
	}
	return true
}

func (listBehavior) Hash(o *Object) uint32 {
	h := int64(1)
	for n := o.state.(*listState).head; n != nil; n = n.next {
		h = (h*31 + int64(n.value.Hash())) % hashRange
	}
	return foldHash(h)
}

func (listBehavior) Print(w io.Writer, o *Object) error {
	return printSeq(w, o)
}

// Convert produces an Array holding the same elements.
func (listBehavior) Convert(o *Object, target *Class) *Object {
	if target != ArrayClass {
		return nil
	}
	s := o.state.(*listState)
	a := o.rt.NewArray(s.length)
	if a == nil {
		return nil
	}
	slots := a.state.(*arrayState).slots
	i := 0
	for n := s.head; n != nil; n = n.next {
		slots[i] = n.value.Retain()
		i++
	}
	return a
}

// listCursor walks the nodes directly. Removing elements while a cursor
// is live invalidates it.
type listCursor struct {
	next *listNode
}

func (c *listCursor) Next() (*Object, bool) {
	if c.next == nil {
		return nil, false
	}
	v := c.next.value
	c.next = c.next.next
	return v, true
}

// NewList creates a List holding elems, each retained, owned.
func (rt *Runtime) NewList(elems ...*Object) *Object {
	args := make([]any, len(elems))
	for i, e := range elems {
		args[i] = e
	}
	o, _ := rt.New(ListClass, args...)
	return o
}

// ListLen returns the number of elements of l, or -1 if l is not a List.
func ListLen(l *Object) int {
	if expect(l, "ListLen", ListClass) != nil {
		return -1
	}
	return l.state.(*listState).length
}

// ListGet returns a borrowed reference to element i.
func ListGet(l *Object, i int) (*Object, error) {
	if err := expect(l, "ListGet", ListClass); err != nil {
		return nil, err
	}
	v, err := listBehavior{}.GetIndex(l, i)
	if err != nil {
		return nil, report(l, "ListGet", err)
	}
	return v, nil
}

// ListSet replaces element i with v, retaining v and releasing the old
// element.
func ListSet(l *Object, i int, v *Object) error {
	if err := expect(l, "ListSet", ListClass); err != nil {
		return err
	}
	if err := l.checkArg("ListSet", v); err != nil {
		return err
	}
	if err := (listBehavior{}).SetIndex(l, i, v); err != nil {
		return report(l, "ListSet", err)
	}
	return nil
}

// ListAppend adds v at the tail, retaining it, and returns the new length.
func ListAppend(l *Object, v *Object) (int, error) {
	if err := expect(l, "ListAppend", ListClass); err != nil {
		return -1, err
	}
	if err := l.checkArg("ListAppend", v); err != nil {
		return -1, err
	}
	return l.state.(*listState).push(v.Retain()), nil
}

// ListInsert links v so that it becomes element i, shifting later
// elements. i may equal the length, which appends.
func ListInsert(l *Object, i int, v *Object) error {
	if err := expect(l, "ListInsert", ListClass); err != nil {
		return err
	}
	if err := l.checkArg("ListInsert", v); err != nil {
		return err
	}
	s := l.state.(*listState)
	if i < 0 || i > s.length {
		return report(l, "ListInsert", outOfRange(i, s.length+1))
	}
	s.insert(i, v.Retain())
	return nil
}

// ListRemove unlinks element i and releases it.
func ListRemove(l *Object, i int) error {
	if err := expect(l, "ListRemove", ListClass); err != nil {
		return err
	}
	if err := (listBehavior{}).RemoveIndex(l, i); err != nil {
		return report(l, "ListRemove", err)
	}
	return nil
}

// ListExtend appends every element of src when src is a List, or src
// itself otherwise, and returns the resulting length. A list may extend
// itself; the elements present before the call are appended once.
func ListExtend(l, src *Object) (int, error) {
	if err := expect(l, "ListExtend", ListClass); err != nil {
		return -1, err
	}
	if err := l.checkArg("ListExtend", src); err != nil {
		return -1, err
	}
	s := l.state.(*listState)
	if !src.InstanceOf(ListClass) {
		return s.push(src.Retain()), nil
	}
	from := src.state.(*listState)
	n := from.head
	for range from.length {
		s.push(n.value.Retain())
		n = n.next
	}
	return s.length, nil
}

// printSeq renders the elements of a sequence as "[a b c]".
func printSeq(w io.Writer, o *Object) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i, v := range o.All() {
		if i > 0 {
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}
		if err := v.Print(w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]")
	return err
}
