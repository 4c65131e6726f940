package obj

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

// New creates an object of class c and returns it owned, with a reference
// count of 1.
//
// Constructors run from the concrete class toward the root. The first
// constructor found receives args; every ancestor constructor receives
// empty Args and initialises its level with defaults. When a constructor
// fails, the full destructor walk runs on the partly built object, so
// whatever earlier constructors acquired is released; the error is
// reported and nil is returned. Destructors must therefore accept state
// whose constructor never ran.
func (rt *Runtime) New(c *Class, args ...any) (*Object, error) {
	o, err := rt.allocate("New", c)
	if err != nil {
		return nil, err
	}

	leaf := true
	for _, k := range c.chain {
		ctor, ok := k.behavior.(Constructor)
		if !ok {
			continue
		}
		var a Args
		if leaf {
			a = Args(args)
			leaf = false
		}
		if err := ctor.Construct(o, a); err != nil {
			o.destroy()
			return nil, report(o, "New", fmt.Errorf("%w: %s: %w", ErrConstruct, k.name, err))
		}
	}

	rt.register(o)
	return o, nil
}

// allocate builds the header and state of a new object without running
// constructors or registering it.
func (rt *Runtime) allocate(op string, c *Class) (*Object, error) {
	if c == nil {
		return nil, rt.report("NULL", op, fmt.Errorf("%w: nil class", ErrConstruct))
	}
	if rt.cfg.MaxLive > 0 && len(rt.live) >= rt.cfg.MaxLive {
		return nil, rt.report(c.name, op, fmt.Errorf("%w: live object budget %d exhausted",
			ErrOutOfMemory, rt.cfg.MaxLive))
	}

	id := rt.nextID
	rt.nextID++

	o := &Object{
		class: c,
		rt:    rt,
		id:    id,
		name:  displayName(c, id, rt.cfg.NameLength),
		refs:  1,
	}
	if alloc, _, ok := resolve[Allocator](c); ok {
		o.state = alloc.Alloc()
	}
	return o, nil
}

func (rt *Runtime) register(o *Object) {
	rt.live[o.id] = o
	rt.trace("created", o)
}

// ---------------------------------------------------------------------------
// Reference counting
// ---------------------------------------------------------------------------

// Retain adds a strong reference and returns o. Retaining nil is reported
// and returns nil. Retaining a destroyed object panics.
func (o *Object) Retain() *Object {
	if o == nil {
		report(nil, "Retain", ErrNilObject)
		return nil
	}
	if o.class == nil {
		panic("obj: retain of released object " + o.name)
	}
	o.refs++
	return o
}

// Release drops a strong reference. When the count reaches zero the object
// is destroyed and nil is returned; otherwise o is returned. Releasing nil
// does nothing.
func (o *Object) Release() *Object {
	if o == nil {
		return nil
	}
	if o.class == nil {
		panic("obj: release of released object " + o.name)
	}
	o.refs--
	if o.refs > 0 {
		return o
	}
	o.destroy()
	return nil
}

// destroy walks the destructors leaf to root, then clears the class.
func (o *Object) destroy() {
	for _, k := range o.class.chain {
		d, ok := k.behavior.(Destructor)
		if !ok {
			continue
		}
		if !d.Destroy(o) {
			break
		}
	}

	rt := o.rt
	delete(rt.live, o.id)
	rt.trace("destroyed", o)
	o.state = nil
	o.class = nil
}

// Move hands the caller's only reference to o over to sink. sink is
// expected to take its own reference (as every setter and Append does);
// the caller's reference is released afterwards, leaving sink as the sole
// owner. Objects with more than one reference are refused with ErrShared
// and left untouched.
//
//	err := obj.Move(rt.NewInt(1), func(v *obj.Object) error {
//		return list.SetIndex(0, v)
//	})
func Move(o *Object, sink func(*Object) error) error {
	if err := o.check("Move"); err != nil {
		return err
	}
	if o.refs != 1 {
		return reportf(o, "Move", ErrShared, "%d references", o.refs)
	}
	err := sink(o)
	o.Release()
	return err
}

// ---------------------------------------------------------------------------
// Cloning
// ---------------------------------------------------------------------------

// Clone returns an owned copy of o with a fresh identity. Every Cloner in
// the chain copies its own level, leaf first; constructors do not run.
func (o *Object) Clone() (*Object, error) {
	if err := o.check("Clone"); err != nil {
		return nil, err
	}
	if !Supports[Cloner](o.class) {
		return nil, report(o, "Clone", ErrNotSupported)
	}

	dst, err := o.rt.allocate("Clone", o.class)
	if err != nil {
		return nil, err
	}
	o.rt.register(dst)

	for _, k := range o.class.chain {
		c, ok := k.behavior.(Cloner)
		if !ok {
			continue
		}
		if err := c.Clone(o, dst); err != nil {
			dst.Release()
			if errors.Is(err, ErrNotSupported) {
				return nil, report(o, "Clone", err)
			}
			return nil, report(o, "Clone", fmt.Errorf("%s: %w", k.name, err))
		}
	}
	return dst, nil
}
