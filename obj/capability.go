package obj

import "io"

// Capability interfaces. A class behavior implements only the ones it
// supports; every generic operation resolves the nearest implementation
// along the receiver's class chain.

// Allocator creates the per-instance state of a class. Subclasses without
// their own Allocator share their parent's layout.
type Allocator interface {
	Alloc() any
}

// Constructor initialises a freshly allocated object. Only the constructor
// nearest the concrete class receives the caller's arguments; ancestor
// constructors receive empty Args.
type Constructor interface {
	Construct(o *Object, args Args) error
}

// Destructor releases what its level owns. Returning false stops the walk
// toward the root.
type Destructor interface {
	Destroy(o *Object) bool
}

// Cloner copies its level's state from src into dst. Every Cloner in the
// chain runs, leaf first.
type Cloner interface {
	Clone(src, dst *Object) error
}

// Equaler compares two live objects of the same concrete class.
type Equaler interface {
	Equal(a, b *Object) bool
}

// Hasher hashes an object consistently with its Equaler.
type Hasher interface {
	Hash(o *Object) uint32
}

// Printer renders an object to w.
type Printer interface {
	Print(w io.Writer, o *Object) error
}

// Converter returns an owned object of class target, or nil if this level
// cannot produce one.
type Converter interface {
	Convert(o *Object, target *Class) *Object
}

// NamedGetter returns a borrowed reference, or nil if name is unbound.
type NamedGetter interface {
	GetNamed(o *Object, name string) (*Object, error)
}

// NamedSetter binds name to v, retaining it. A nil v unbinds name.
type NamedSetter interface {
	SetNamed(o *Object, name string, v *Object) error
}

// NamedRemover unbinds name, releasing the value it held.
type NamedRemover interface {
	RemoveNamed(o *Object, name string) error
}

// IndexGetter returns a borrowed reference to element i.
type IndexGetter interface {
	GetIndex(o *Object, i int) (*Object, error)
}

// IndexSetter replaces element i, retaining v and releasing the previous
// element.
type IndexSetter interface {
	SetIndex(o *Object, i int, v *Object) error
}

// IndexRemover removes element i, releasing it.
type IndexRemover interface {
	RemoveIndex(o *Object, i int) error
}

// Appender adds v at the end, retaining it, and returns the new length.
type Appender interface {
	Append(o *Object, v *Object) (int, error)
}

// Lengther returns the element count.
type Lengther interface {
	Len(o *Object) int
}

// Iterable produces a cursor over the elements of o.
type Iterable interface {
	Cursor(o *Object) Cursor
}

// Cursor yields borrowed elements until exhausted.
type Cursor interface {
	Next() (*Object, bool)
}
