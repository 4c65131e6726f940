package obj

import "slices"

// ---------------------------------------------------------------------------
// Class: immutable type descriptor
// ---------------------------------------------------------------------------

// Class describes one object type: its name, its parent and the behavior
// implementing whichever capabilities this level supplies. A capability
// missing at one level is inherited from the nearest ancestor supplying it.
//
// Classes are immutable once created and may be shared by any number of
// runtimes. Objects never own their class.
type Class struct {
	name     string
	parent   *Class
	behavior any
	chain    []*Class // this class first, root last
}

// NewClass creates a class. A nil parent makes it a root class. behavior may
// be nil or any value implementing some of the capability interfaces.
func NewClass(name string, parent *Class, behavior any) *Class {
	c := &Class{
		name:     name,
		parent:   parent,
		behavior: behavior,
	}
	c.chain = []*Class{c}
	if parent != nil {
		c.chain = append(c.chain, parent.chain...)
	}
	return c
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// Parent returns the parent class, or nil for a root class.
func (c *Class) Parent() *Class {
	return c.parent
}

// Behavior returns the capability set supplied at this level only.
func (c *Class) Behavior() any {
	return c.behavior
}

// Chain returns c followed by each ancestor up to the root.
func (c *Class) Chain() []*Class {
	return slices.Clone(c.chain)
}

// IsSubclassOf returns true if c is other or descends from it.
func (c *Class) IsSubclassOf(other *Class) bool {
	return slices.Contains(c.chain, other)
}

// Depth returns the inheritance depth (0 for a root class).
func (c *Class) Depth() int {
	return len(c.chain) - 1
}

// String implements the Stringer interface.
func (c *Class) String() string {
	return c.name
}

// Supports reports whether some level of the chain supplies capability T.
func Supports[T any](c *Class) bool {
	_, _, ok := resolve[T](c)
	return ok
}

// resolve finds the nearest level of c's chain whose behavior implements
// capability T.
func resolve[T any](c *Class) (T, *Class, bool) {
	for _, k := range c.chain {
		if b, ok := k.behavior.(T); ok {
			return b, k, true
		}
	}
	var zero T
	return zero, nil, false
}
