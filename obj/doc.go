// Package obj implements a small dynamic-object runtime.
//
// This package contains:
//   - Class descriptors forming a single-inheritance chain
//   - Capability interfaces resolved along that chain (dispatch)
//   - Reference-counted object lifecycle: construction, retain/release,
//     leaf-to-root destruction
//   - Per-object attribute tables and slash-separated path lookup
//   - Built-in classes: Object, String, Int, Float, HashTable, List, Array,
//     Iterator, Vector, Matrix, Quaternion
//
// Ownership conventions are part of every signature's documentation:
// "owned" results hand the caller one strong reference that must be
// released exactly once; "borrowed" results must not be released.
//
// A Runtime and the objects it creates are not safe for concurrent use.
package obj
