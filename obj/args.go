package obj

import (
	"fmt"
	"math"
)

// Args is the argument list handed to the constructor nearest the concrete
// class. The accessors convert between Go numeric kinds so callers may pass
// untyped constants.
type Args []any

// Len returns the number of arguments.
func (a Args) Len() int {
	return len(a)
}

// Value returns argument i, or nil if absent.
func (a Args) Value(i int) any {
	if i < 0 || i >= len(a) {
		return nil
	}
	return a[i]
}

// Int returns argument i as an int.
func (a Args) Int(i int) (int, error) {
	switch v := a.Value(i).(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		if v > math.MaxInt || v < math.MinInt {
			return 0, fmt.Errorf("argument %d: %d overflows int", i, v)
		}
		return int(v), nil
	case uint:
		if uint64(v) > math.MaxInt {
			return 0, a.overflow(i, uint64(v))
		}
		return int(v), nil
	case uint64:
		if v > math.MaxInt {
			return 0, a.overflow(i, v)
		}
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		if uint64(v) > math.MaxInt {
			return 0, a.overflow(i, uint64(v))
		}
		return int(v), nil
	case nil:
		return 0, a.missing(i)
	default:
		return 0, fmt.Errorf("argument %d: want int, got %T", i, v)
	}
}

// Float returns argument i as a float64. Integers are accepted.
func (a Args) Float(i int) (float64, error) {
	switch v := a.Value(i).(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case nil:
		return 0, a.missing(i)
	default:
		n, err := a.Int(i)
		if err != nil {
			return 0, fmt.Errorf("argument %d: want float, got %T", i, v)
		}
		return float64(n), nil
	}
}

// String returns argument i as a string.
func (a Args) String(i int) (string, error) {
	switch v := a.Value(i).(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", a.missing(i)
	default:
		return "", fmt.Errorf("argument %d: want string, got %T", i, v)
	}
}

// Object returns argument i as an object reference (borrowed).
func (a Args) Object(i int) (*Object, error) {
	switch v := a.Value(i).(type) {
	case *Object:
		if v == nil {
			return nil, a.missing(i)
		}
		return v, nil
	case nil:
		return nil, a.missing(i)
	default:
		return nil, fmt.Errorf("argument %d: want *Object, got %T", i, v)
	}
}

func (a Args) overflow(i int, v uint64) error {
	return fmt.Errorf("argument %d: %d overflows int", i, v)
}

func (a Args) missing(i int) error {
	return fmt.Errorf("argument %d missing (have %d)", i, len(a))
}
