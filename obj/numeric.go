package obj

import (
	"fmt"
	"io"
	"strings"
)

// Epsilon is the per-component tolerance of Vector, Matrix and Quaternion
// equality.
const Epsilon = 1e-6

// Vec4 is a four-component vector.
type Vec4 struct {
	X, Y, Z, W float32
}

// Equal reports whether every component of v and u differs by less than
// Epsilon.
func (v Vec4) Equal(u Vec4) bool {
	return near(v.X, u.X) && near(v.Y, u.Y) && near(v.Z, u.Z) && near(v.W, u.W)
}

// Mat4 is a 4×4 matrix stored row-major.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at row r, column c.
func (m *Mat4) At(r, c int) float32 {
	return m[r*4+c]
}

// Equal reports whether every element of m and n differs by less than
// Epsilon.
func (m *Mat4) Equal(n *Mat4) bool {
	for i := range m {
		if !near(m[i], n[i]) {
			return false
		}
	}
	return true
}

// Quat is a quaternion a + bi + cj + dk.
type Quat struct {
	A, B, C, D float32
}

// Equal reports whether every component of q and p differs by less than
// Epsilon.
func (q Quat) Equal(p Quat) bool {
	return near(q.A, p.A) && near(q.B, p.B) && near(q.C, p.C) && near(q.D, p.D)
}

func near(a, b float32) bool {
	d := float64(a) - float64(b)
	return d < Epsilon && d > -Epsilon
}

// milli scales a component to the integer grid the hashes work on.
func milli(f float32) int64 {
	return int64(f * 1000)
}

// ---------------------------------------------------------------------------
// Vector
// ---------------------------------------------------------------------------

type vectorBehavior struct{}

func (vectorBehavior) Alloc() any { return new(Vec4) }

// Construct accepts a Vec4, a *Vec4, four numbers, or nothing (zero).
func (vectorBehavior) Construct(o *Object, args Args) error {
	v := o.state.(*Vec4)
	switch a := args.Value(0).(type) {
	case Vec4:
		*v = a
		return nil
	case *Vec4:
		if a == nil {
			return args.missing(0)
		}
		*v = *a
		return nil
	case nil:
		return nil
	}
	var c [4]float32
	for i := range c {
		f, err := args.Float(i)
		if err != nil {
			return err
		}
		c[i] = float32(f)
	}
	*v = Vec4{c[0], c[1], c[2], c[3]}
	return nil
}

func (vectorBehavior) Clone(src, dst *Object) error {
	*dst.state.(*Vec4) = *src.state.(*Vec4)
	return nil
}

func (vectorBehavior) Equal(a, b *Object) bool {
	return a.state.(*Vec4).Equal(*b.state.(*Vec4))
}

func (vectorBehavior) Hash(o *Object) uint32 {
	v := o.state.(*Vec4)
	return foldHash(2*milli(v.X) - 3*milli(v.Y) + 5*milli(v.Z) - 7*milli(v.W))
}

func (vectorBehavior) Print(w io.Writer, o *Object) error {
	v := o.state.(*Vec4)
	_, err := fmt.Fprintf(w, "<%f %f %f %f>", v.X, v.Y, v.Z, v.W)
	return err
}

// Convert produces a List of four Floats.
func (vectorBehavior) Convert(o *Object, target *Class) *Object {
	if target != ListClass {
		return nil
	}
	v := o.state.(*Vec4)
	l := o.rt.NewList()
	if l == nil {
		return nil
	}
	for _, c := range [...]float32{v.X, v.Y, v.Z, v.W} {
		f := o.rt.NewFloat(c)
		if f == nil {
			l.Release()
			return nil
		}
		ListAppend(l, f)
		f.Release()
	}
	return l
}

// NewVector creates a Vector, owned.
func (rt *Runtime) NewVector(v Vec4) *Object {
	o, _ := rt.New(VectorClass, v)
	return o
}

// VectorValue returns the payload of a Vector.
func VectorValue(o *Object) (Vec4, error) {
	if err := expect(o, "VectorValue", VectorClass); err != nil {
		return Vec4{}, err
	}
	return *o.state.(*Vec4), nil
}

// ---------------------------------------------------------------------------
// Matrix
// ---------------------------------------------------------------------------

// matrixPrimes weight the elements of a Matrix hash.
var matrixPrimes = [16]int64{1, -2, 3, -5, 7, -11, 13, -17, 19, -23, 29, -31, 37, -41, 43, -47}

type matrixBehavior struct{}

func (matrixBehavior) Alloc() any { return new(Mat4) }

// Construct accepts a Mat4 or a *Mat4; with no argument the matrix is the
// identity.
func (matrixBehavior) Construct(o *Object, args Args) error {
	m := o.state.(*Mat4)
	switch a := args.Value(0).(type) {
	case Mat4:
		*m = a
	case *Mat4:
		if a == nil {
			return args.missing(0)
		}
		*m = *a
	case nil:
		*m = Identity()
	default:
		return fmt.Errorf("argument 0: want Mat4, got %T", a)
	}
	return nil
}

func (matrixBehavior) Clone(src, dst *Object) error {
	*dst.state.(*Mat4) = *src.state.(*Mat4)
	return nil
}

func (matrixBehavior) Equal(a, b *Object) bool {
	return a.state.(*Mat4).Equal(b.state.(*Mat4))
}

func (matrixBehavior) Hash(o *Object) uint32 {
	m := o.state.(*Mat4)
	h := int64(1)
	for i := len(m) - 1; i >= 0; i-- {
		e := milli(m[i])
		h = (h + matrixPrimes[i]*e + h*e) % hashRange
	}
	return foldHash(h)
}

func (matrixBehavior) Print(w io.Writer, o *Object) error {
	m := o.state.(*Mat4)
	var sb strings.Builder
	sb.WriteByte('<')
	for r := 0; r < 4; r++ {
		if r > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "<%f %f %f %f>", m.At(r, 0), m.At(r, 1), m.At(r, 2), m.At(r, 3))
	}
	sb.WriteByte('>')
	_, err := io.WriteString(w, sb.String())
	return err
}

// NewMatrix creates a Matrix, owned.
func (rt *Runtime) NewMatrix(m Mat4) *Object {
	o, _ := rt.New(MatrixClass, m)
	return o
}

// MatrixValue returns the payload of a Matrix.
func MatrixValue(o *Object) (Mat4, error) {
	if err := expect(o, "MatrixValue", MatrixClass); err != nil {
		return Mat4{}, err
	}
	return *o.state.(*Mat4), nil
}

// ---------------------------------------------------------------------------
// Quaternion
// ---------------------------------------------------------------------------

type quaternionBehavior struct{}

func (quaternionBehavior) Alloc() any { return new(Quat) }

// Construct accepts a Quat or four numbers; with no argument the
// quaternion is the identity rotation 1+0i+0j+0k.
func (quaternionBehavior) Construct(o *Object, args Args) error {
	q := o.state.(*Quat)
	switch a := args.Value(0).(type) {
	case Quat:
		*q = a
		return nil
	case nil:
		*q = Quat{A: 1}
		return nil
	}
	var c [4]float32
	for i := range c {
		f, err := args.Float(i)
		if err != nil {
			return err
		}
		c[i] = float32(f)
	}
	*q = Quat{c[0], c[1], c[2], c[3]}
	return nil
}

func (quaternionBehavior) Clone(src, dst *Object) error {
	*dst.state.(*Quat) = *src.state.(*Quat)
	return nil
}

func (quaternionBehavior) Equal(a, b *Object) bool {
	return a.state.(*Quat).Equal(*b.state.(*Quat))
}

func (quaternionBehavior) Hash(o *Object) uint32 {
	q := o.state.(*Quat)
	return foldHash(11*milli(q.A) - 13*milli(q.B) + 17*milli(q.C) - 19*milli(q.D))
}

func (quaternionBehavior) Print(w io.Writer, o *Object) error {
	q := o.state.(*Quat)
	_, err := fmt.Fprintf(w, "(%f %fi %fj %fk)", q.A, q.B, q.C, q.D)
	return err
}

// NewQuaternion creates a Quaternion, owned.
func (rt *Runtime) NewQuaternion(q Quat) *Object {
	o, _ := rt.New(QuaternionClass, q)
	return o
}

// QuaternionValue returns the payload of a Quaternion.
func QuaternionValue(o *Object) (Quat, error) {
	if err := expect(o, "QuaternionValue", QuaternionClass); err != nil {
		return Quat{}, err
	}
	return *o.state.(*Quat), nil
}
