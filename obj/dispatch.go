package obj

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Generic protocol. Each operation resolves the nearest capability along
// the receiver's class chain. A missing capability is reported as
// ErrNotSupported and the operation returns its sentinel value.

// Equals reports whether o and b are equal. Identical references are always
// equal; objects of different concrete classes never are.
func (o *Object) Equals(b *Object) bool {
	if o == b {
		return true
	}
	if o == nil || b == nil {
		return false
	}
	if err := o.check("Equals"); err != nil {
		return false
	}
	if b.class == nil {
		reportf(o, "Equals", ErrReleased, "argument %s", b.name)
		return false
	}
	if o.class != b.class {
		return false
	}
	eq, _, ok := resolve[Equaler](o.class)
	if !ok {
		report(o, "Equals", ErrNotSupported)
		return false
	}
	return eq.Equal(o, b)
}

// Hash returns the hash of o, or 0 if no class in the chain supplies a
// Hasher. Every class descending from Object hashes at least by identity.
func (o *Object) Hash() uint32 {
	if err := o.check("Hash"); err != nil {
		return 0
	}
	h, _, ok := resolve[Hasher](o.class)
	if !ok {
		report(o, "Hash", ErrNotSupported)
		return 0
	}
	return h.Hash(o)
}

// Print writes the rendering of o to w. A nil object renders as NULL and a
// class chain without a Printer as UNPRINTABLE_<name>.
func (o *Object) Print(w io.Writer) error {
	if o == nil {
		_, err := io.WriteString(w, "NULL")
		return err
	}
	if err := o.check("Print"); err != nil {
		return err
	}
	if p, _, ok := resolve[Printer](o.class); ok {
		return p.Print(w, o)
	}
	_, err := io.WriteString(w, "UNPRINTABLE_"+o.name)
	return err
}

// String returns the Print rendering of o.
func (o *Object) String() string {
	var sb strings.Builder
	o.Print(&sb)
	return sb.String()
}

// InstanceOf reports whether c appears anywhere in o's class chain. It never
// fails; nil and destroyed objects are instances of nothing.
func (o *Object) InstanceOf(c *Class) bool {
	if o == nil || o.class == nil || c == nil {
		return false
	}
	return o.class.IsSubclassOf(c)
}

// To converts o to class target and returns the owned result. Every
// Converter in the chain is tried, concrete class first; the first non-nil
// result wins.
func (o *Object) To(target *Class) (*Object, error) {
	if err := o.check("To"); err != nil {
		return nil, err
	}
	if target == nil {
		return nil, reportf(o, "To", ErrNotConvertible, "nil target class")
	}
	for _, k := range o.class.chain {
		conv, ok := k.behavior.(Converter)
		if !ok {
			continue
		}
		if r := conv.Convert(o, target); r != nil {
			return r, nil
		}
	}
	return nil, reportf(o, "To", ErrNotConvertible, "to %s", target.name)
}

// Len returns the element count, or -1 if o has no length.
func (o *Object) Len() int {
	if err := o.check("Len"); err != nil {
		return -1
	}
	l, _, ok := resolve[Lengther](o.class)
	if !ok {
		report(o, "Len", ErrNotSupported)
		return -1
	}
	return l.Len(o)
}

// Get returns the borrowed value bound to name, or nil.
func (o *Object) Get(name string) (*Object, error) {
	if err := o.check("Get"); err != nil {
		return nil, err
	}
	g, _, ok := resolve[NamedGetter](o.class)
	if !ok {
		return nil, report(o, "Get", ErrNotSupported)
	}
	v, err := g.GetNamed(o, name)
	if err != nil {
		return nil, report(o, "Get", err)
	}
	return v, nil
}

// Set binds name to v. A nil v removes the binding.
func (o *Object) Set(name string, v *Object) error {
	if err := o.check("Set"); err != nil {
		return err
	}
	s, _, ok := resolve[NamedSetter](o.class)
	if !ok {
		return report(o, "Set", ErrNotSupported)
	}
	if v != nil && v.class == nil {
		return reportf(o, "Set", ErrReleased, "argument %s", v.name)
	}
	if err := s.SetNamed(o, name, v); err != nil {
		return report(o, "Set", err)
	}
	return nil
}

// Remove unbinds name.
func (o *Object) Remove(name string) error {
	if err := o.check("Remove"); err != nil {
		return err
	}
	r, _, ok := resolve[NamedRemover](o.class)
	if !ok {
		return report(o, "Remove", ErrNotSupported)
	}
	if err := r.RemoveNamed(o, name); err != nil {
		return report(o, "Remove", err)
	}
	return nil
}

// GetIndex returns a borrowed reference to element i.
func (o *Object) GetIndex(i int) (*Object, error) {
	if err := o.check("GetIndex"); err != nil {
		return nil, err
	}
	g, _, ok := resolve[IndexGetter](o.class)
	if !ok {
		return nil, report(o, "GetIndex", ErrNotSupported)
	}
	v, err := g.GetIndex(o, i)
	if err != nil {
		return nil, report(o, "GetIndex", err)
	}
	return v, nil
}

// SetIndex replaces element i with v.
func (o *Object) SetIndex(i int, v *Object) error {
	if err := o.check("SetIndex"); err != nil {
		return err
	}
	s, _, ok := resolve[IndexSetter](o.class)
	if !ok {
		return report(o, "SetIndex", ErrNotSupported)
	}
	if v != nil && v.class == nil {
		return reportf(o, "SetIndex", ErrReleased, "argument %s", v.name)
	}
	if err := s.SetIndex(o, i, v); err != nil {
		return report(o, "SetIndex", err)
	}
	return nil
}

// Append adds v at the end and returns the new length, or -1 on failure.
func (o *Object) Append(v *Object) (int, error) {
	if err := o.check("Append"); err != nil {
		return -1, err
	}
	a, _, ok := resolve[Appender](o.class)
	if !ok {
		return -1, report(o, "Append", ErrNotSupported)
	}
	if err := o.checkArg("Append", v); err != nil {
		return -1, err
	}
	n, err := a.Append(o, v)
	if err != nil {
		return -1, report(o, "Append", err)
	}
	return n, nil
}

// RemoveIndex removes element i.
func (o *Object) RemoveIndex(i int) error {
	if err := o.check("RemoveIndex"); err != nil {
		return err
	}
	r, _, ok := resolve[IndexRemover](o.class)
	if !ok {
		return report(o, "RemoveIndex", ErrNotSupported)
	}
	if err := r.RemoveIndex(o, i); err != nil {
		return report(o, "RemoveIndex", err)
	}
	return nil
}

// Iterator returns an owned Iterator object over the elements of o. The
// iterator keeps o alive until it is released.
func (o *Object) Iterator() (*Object, error) {
	if err := o.check("Iterator"); err != nil {
		return nil, err
	}
	if !Supports[Iterable](o.class) {
		return nil, report(o, "Iterator", ErrNotSupported)
	}
	return o.rt.New(IteratorClass, o)
}

// All ranges over the elements of o with their positions. Elements are
// borrowed. Nothing is yielded if o is not iterable.
func (o *Object) All() iter.Seq2[int, *Object] {
	return func(yield func(int, *Object) bool) {
		if err := o.check("All"); err != nil {
			return
		}
		it, _, ok := resolve[Iterable](o.class)
		if !ok {
			report(o, "All", ErrNotSupported)
			return
		}
		cur := it.Cursor(o)
		for i := 0; ; i++ {
			v, ok := cur.Next()
			if !ok || !yield(i, v) {
				return
			}
		}
	}
}

// outOfRange builds the error for an index outside [0, n).
func outOfRange(i, n int) error {
	return fmt.Errorf("%w: index %d not in [0,%d[", ErrOutOfRange, i, n)
}
