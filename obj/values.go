package obj

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/chazu/substrate/fieldtable"
)

// FloatEpsilon is the tolerance under which two Floats are equal.
const FloatEpsilon = 1e-5

// ---------------------------------------------------------------------------
// String
// ---------------------------------------------------------------------------

type stringState struct {
	text string
}

type stringBehavior struct{}

func (stringBehavior) Alloc() any { return &stringState{} }

// Construct copies argument 0; without arguments the String is empty.
func (stringBehavior) Construct(o *Object, args Args) error {
	if args.Len() == 0 {
		return nil
	}
	text, err := args.String(0)
	if err != nil {
		return err
	}
	o.state.(*stringState).text = strings.Clone(text)
	return nil
}

func (stringBehavior) Destroy(o *Object) bool {
	o.state.(*stringState).text = ""
	return true
}

func (stringBehavior) Clone(src, dst *Object) error {
	dst.state.(*stringState).text = src.state.(*stringState).text
	return nil
}

func (stringBehavior) Equal(a, b *Object) bool {
	x, y := a.state.(*stringState).text, b.state.(*stringState).text
	return len(x) == len(y) && x == y
}

func (stringBehavior) Hash(o *Object) uint32 {
	return fieldtable.Hash(o.state.(*stringState).text)
}

func (stringBehavior) Print(w io.Writer, o *Object) error {
	_, err := io.WriteString(w, `"`+o.state.(*stringState).text+`"`)
	return err
}

func (stringBehavior) Convert(o *Object, target *Class) *Object {
	text := strings.TrimSpace(o.state.(*stringState).text)
	switch target {
	case IntClass:
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil
		}
		return o.rt.NewInt(n)
	case FloatClass:
		f, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return nil
		}
		return o.rt.NewFloat(float32(f))
	}
	return nil
}

// NewString creates a String holding a copy of text, owned.
func (rt *Runtime) NewString(text string) *Object {
	o, _ := rt.New(StringClass, text)
	return o
}

// StringValue returns the text of a String.
func StringValue(o *Object) (string, error) {
	if err := expect(o, "StringValue", StringClass); err != nil {
		return "", err
	}
	return o.state.(*stringState).text, nil
}

// ---------------------------------------------------------------------------
// Int
// ---------------------------------------------------------------------------

type intState struct {
	value int
}

type intBehavior struct{}

func (intBehavior) Alloc() any { return &intState{} }

func (intBehavior) Construct(o *Object, args Args) error {
	if args.Len() == 0 {
		return nil
	}
	v, err := args.Int(0)
	if err != nil {
		return err
	}
	o.state.(*intState).value = v
	return nil
}

func (intBehavior) Clone(src, dst *Object) error {
	dst.state.(*intState).value = src.state.(*intState).value
	return nil
}

func (intBehavior) Equal(a, b *Object) bool {
	return a.state.(*intState).value == b.state.(*intState).value
}

func (intBehavior) Hash(o *Object) uint32 {
	return foldHash(int64(o.state.(*intState).value))
}

func (intBehavior) Print(w io.Writer, o *Object) error {
	_, err := fmt.Fprintf(w, "%d", o.state.(*intState).value)
	return err
}

func (intBehavior) Convert(o *Object, target *Class) *Object {
	if target == FloatClass {
		return o.rt.NewFloat(float32(o.state.(*intState).value))
	}
	return nil
}

// NewInt creates an Int, owned.
func (rt *Runtime) NewInt(v int) *Object {
	o, _ := rt.New(IntClass, v)
	return o
}

// IntValue returns the value of an Int.
func IntValue(o *Object) (int, error) {
	if err := expect(o, "IntValue", IntClass); err != nil {
		return 0, err
	}
	return o.state.(*intState).value, nil
}

// ---------------------------------------------------------------------------
// Float
// ---------------------------------------------------------------------------

type floatState struct {
	value float32
}

type floatBehavior struct{}

func (floatBehavior) Alloc() any { return &floatState{} }

func (floatBehavior) Construct(o *Object, args Args) error {
	if args.Len() == 0 {
		return nil
	}
	v, err := args.Float(0)
	if err != nil {
		return err
	}
	o.state.(*floatState).value = float32(v)
	return nil
}

func (floatBehavior) Clone(src, dst *Object) error {
	dst.state.(*floatState).value = src.state.(*floatState).value
	return nil
}

func (floatBehavior) Equal(a, b *Object) bool {
	d := float64(a.state.(*floatState).value) - float64(b.state.(*floatState).value)
	return math.Abs(d) < FloatEpsilon
}

func (floatBehavior) Hash(o *Object) uint32 {
	return foldHash(int64(o.state.(*floatState).value * 1000))
}

func (floatBehavior) Print(w io.Writer, o *Object) error {
	_, err := fmt.Fprintf(w, "%f", o.state.(*floatState).value)
	return err
}

func (floatBehavior) Convert(o *Object, target *Class) *Object {
	if target == IntClass {
		return o.rt.NewInt(int(o.state.(*floatState).value))
	}
	return nil
}

// NewFloat creates a Float, owned.
func (rt *Runtime) NewFloat(v float32) *Object {
	o, _ := rt.New(FloatClass, v)
	return o
}

// FloatValue returns the value of a Float.
func FloatValue(o *Object) (float32, error) {
	if err := expect(o, "FloatValue", FloatClass); err != nil {
		return 0, err
	}
	return o.state.(*floatState).value, nil
}

// expect checks that o is a live instance of c.
func expect(o *Object, op string, c *Class) error {
	if err := o.check(op); err != nil {
		return err
	}
	if !o.InstanceOf(c) {
		return reportf(o, op, ErrWrongReceiver, "%s is not a %s", o.name, c.name)
	}
	return nil
}
