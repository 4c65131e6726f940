package obj

import "fmt"

// An Iterator walks the elements of an iterable object, keeping the source
// alive until the iterator is released.

type iteratorState struct {
	src *Object
	cur Cursor
}

type iteratorBehavior struct{}

func (iteratorBehavior) Alloc() any { return &iteratorState{} }

// Construct binds the iterator to argument 0. Without arguments the
// iterator is already exhausted.
func (iteratorBehavior) Construct(o *Object, args Args) error {
	if args.Len() == 0 {
		return nil
	}
	src, err := args.Object(0)
	if err != nil {
		return err
	}
	if src.class == nil {
		return fmt.Errorf("%w: argument %s", ErrReleased, src.name)
	}
	it, _, ok := resolve[Iterable](src.class)
	if !ok {
		return fmt.Errorf("%w: %s is not iterable", ErrNotSupported, src.name)
	}
	s := o.state.(*iteratorState)
	s.src = src.Retain()
	s.cur = it.Cursor(src)
	return nil
}

func (iteratorBehavior) Destroy(o *Object) bool {
	s := o.state.(*iteratorState)
	s.src.Release()
	s.src, s.cur = nil, nil
	return true
}

func (iteratorBehavior) Clone(src, dst *Object) error {
	return ErrNotSupported
}

// IteratorNext returns the next borrowed element and true, or nil and
// false once the source is exhausted. Array iterators yield empty slots
// as nil with true.
func IteratorNext(it *Object) (*Object, bool) {
	if expect(it, "IteratorNext", IteratorClass) != nil {
		return nil, false
	}
	s := it.state.(*iteratorState)
	if s.cur == nil {
		return nil, false
	}
	return s.cur.Next()
}
