package obj

import (
	"fmt"

	"github.com/chazu/substrate/fieldtable"
)

// Object is the header shared by every value in the runtime.
//
// The class pointer is non-nil for as long as the object lives. It is
// cleared as the last step of destruction; any later operation on the
// object reports ErrReleased.
type Object struct {
	class  *Class
	rt     *Runtime
	id     uint32
	name   string
	refs   int
	flags  uint32
	fields *fieldtable.Table[*Object] // attributes, created on first write
	state  any                        // per-class layout from the nearest Allocator
}

// Class returns the concrete class, or nil once the object is destroyed.
func (o *Object) Class() *Class {
	return o.class
}

// Runtime returns the runtime that created o.
func (o *Object) Runtime() *Runtime {
	return o.rt
}

// ID returns the runtime-unique identity assigned at creation.
func (o *Object) ID() uint32 {
	return o.id
}

// Name returns the display name: class name followed by identity.
func (o *Object) Name() string {
	return o.name
}

// Refs returns the current reference count.
func (o *Object) Refs() int {
	return o.refs
}

// Flags returns the flags word. The runtime itself never reads it.
func (o *Object) Flags() uint32 {
	return o.flags
}

// SetFlags replaces the flags word.
func (o *Object) SetFlags(flags uint32) {
	o.flags = flags
}

// State returns the per-instance state created by the class Allocator.
// Behaviors of user-defined classes use it to reach their own layout.
func (o *Object) State() any {
	return o.state
}

// Alive reports whether o is non-nil and not yet destroyed.
func (o *Object) Alive() bool {
	return o != nil && o.class != nil
}

// check reports why o cannot receive op, if it cannot.
func (o *Object) check(op string) error {
	if o == nil {
		return report(nil, op, ErrNilObject)
	}
	if o.class == nil {
		return report(o, op, ErrReleased)
	}
	return nil
}

// checkArg validates an object passed as an argument to op on o.
func (o *Object) checkArg(op string, v *Object) error {
	if v == nil {
		return report(o, op, ErrNilObject)
	}
	if v.class == nil {
		return reportf(o, op, ErrReleased, "argument %s", v.name)
	}
	return nil
}

// displayName builds "<class><id>" truncated to fit a buffer of size n,
// terminator included.
func displayName(c *Class, id uint32, n int) string {
	name := fmt.Sprintf("%s%d", c.name, id)
	if len(name) > n-1 {
		name = name[:n-1]
	}
	return name
}
