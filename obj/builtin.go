package obj

import (
	"io"
)

// Built-in classes. They are created once at package initialisation and
// never change.
var (
	ObjectClass     *Class
	StringClass     *Class
	IntClass        *Class
	FloatClass      *Class
	HashTableClass  *Class
	ListClass       *Class
	ArrayClass      *Class
	IteratorClass   *Class
	VectorClass     *Class
	MatrixClass     *Class
	QuaternionClass *Class
)

func init() {
	ObjectClass = NewClass("Object", nil, objectBehavior{})
	StringClass = NewClass("String", ObjectClass, stringBehavior{})
	IntClass = NewClass("Int", ObjectClass, intBehavior{})
	FloatClass = NewClass("Float", ObjectClass, floatBehavior{})
	HashTableClass = NewClass("HashTable", ObjectClass, hashTableBehavior{})
	ListClass = NewClass("List", ObjectClass, listBehavior{})
	ArrayClass = NewClass("Array", ObjectClass, arrayBehavior{})
	IteratorClass = NewClass("Iterator", ObjectClass, iteratorBehavior{})
	VectorClass = NewClass("Vector", ObjectClass, vectorBehavior{})
	MatrixClass = NewClass("Matrix", ObjectClass, matrixBehavior{})
	QuaternionClass = NewClass("Quaternion", ObjectClass, quaternionBehavior{})
}

// hashRange bounds the hashes of value types to [0, 2^30).
const hashRange = 1 << 30

// foldHash reduces h into [0, hashRange).
func foldHash(h int64) uint32 {
	h %= hashRange
	if h < 0 {
		h += hashRange
	}
	return uint32(h)
}

// ---------------------------------------------------------------------------
// Object: the root class
// ---------------------------------------------------------------------------

// objectBehavior supplies the capabilities every object inherits: the
// attribute protocol, identity equality and hashing, a default rendering,
// conversion to String and to its own class, and attribute cloning.
type objectBehavior struct{}

func (objectBehavior) Destroy(o *Object) bool {
	o.releaseFields()
	return true
}

func (objectBehavior) Equal(a, b *Object) bool {
	return a == b
}

func (objectBehavior) Hash(o *Object) uint32 {
	return o.id
}

func (objectBehavior) Print(w io.Writer, o *Object) error {
	_, err := io.WriteString(w, "object:"+o.name)
	return err
}

func (objectBehavior) Convert(o *Object, target *Class) *Object {
	switch target {
	case o.class:
		return o.Retain()
	case StringClass:
		return o.rt.NewString(o.String())
	}
	return nil
}

func (objectBehavior) GetNamed(o *Object, name string) (*Object, error) {
	return o.GetField(name), nil
}

func (objectBehavior) SetNamed(o *Object, name string, v *Object) error {
	return o.SetField(name, v)
}

func (objectBehavior) RemoveNamed(o *Object, name string) error {
	return o.SetField(name, nil)
}

func (objectBehavior) Clone(src, dst *Object) error {
	if src.fields == nil {
		return nil
	}
	for name, v := range src.fields.All() {
		if err := dst.SetField(name, v); err != nil {
			return err
		}
	}
	return nil
}

// NewObject creates a plain Object, owned.
func (rt *Runtime) NewObject() *Object {
	o, _ := rt.New(ObjectClass)
	return o
}
