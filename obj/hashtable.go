package obj

import (
	"io"

	"github.com/chazu/substrate/fieldtable"
)

// A HashTable is an Object used purely for its attribute table: every
// binding is an entry and the length is the number of bindings. Get, Set
// and Remove are inherited from the root class.

type hashTableBehavior struct{}

func (hashTableBehavior) Len(o *Object) int {
	return o.FieldCount()
}

// Equal compares key sets and then the values under each key.
func (hashTableBehavior) Equal(a, b *Object) bool {
	if a.FieldCount() != b.FieldCount() {
		return false
	}
	for _, k := range a.FieldNames() {
		w := b.GetField(k)
		if w == nil || !a.GetField(k).Equals(w) {
			return false
		}
	}
	return true
}

// Hash combines each entry independently of table order.
func (hashTableBehavior) Hash(o *Object) uint32 {
	var h int64
	if o.fields != nil {
		for k, v := range o.fields.All() {
			h += int64(fieldtable.Hash(k) ^ v.Hash())
		}
	}
	return foldHash(h)
}

func (hashTableBehavior) Print(w io.Writer, o *Object) error {
	if _, err := io.WriteString(w, "{"); err != nil {
		return err
	}
	for i, k := range o.FieldNames() {
		sep := k + ":"
		if i > 0 {
			sep = " " + sep
		}
		if _, err := io.WriteString(w, sep); err != nil {
			return err
		}
		if err := o.GetField(k).Print(w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}")
	return err
}

func (hashTableBehavior) Cursor(o *Object) Cursor {
	return &tableCursor{table: o, keys: o.FieldNames()}
}

// tableCursor yields values in ascending key order. Keys removed after the
// cursor was created are skipped.
type tableCursor struct {
	table *Object
	keys  []string
}

func (c *tableCursor) Next() (*Object, bool) {
	for len(c.keys) > 0 {
		k := c.keys[0]
		c.keys = c.keys[1:]
		if v := c.table.GetField(k); v != nil {
			return v, true
		}
	}
	return nil, false
}

// NewHashTable creates an empty HashTable, owned.
func (rt *Runtime) NewHashTable() *Object {
	o, _ := rt.New(HashTableClass)
	return o
}

// TableSet binds key to v in table t, retaining v. A nil v removes key.
func TableSet(t *Object, key string, v *Object) error {
	if err := expect(t, "TableSet", HashTableClass); err != nil {
		return err
	}
	return t.SetField(key, v)
}

// TableGet returns the borrowed value bound to key, or nil if unbound.
func TableGet(t *Object, key string) (*Object, error) {
	if err := expect(t, "TableGet", HashTableClass); err != nil {
		return nil, err
	}
	return t.GetField(key), nil
}

// TableRemove unbinds key and releases its value. Removing an unbound key
// reports ErrNotFound.
func TableRemove(t *Object, key string) error {
	if err := expect(t, "TableRemove", HashTableClass); err != nil {
		return err
	}
	if t.GetField(key) == nil {
		return reportf(t, "TableRemove", ErrNotFound, "key %q", key)
	}
	return t.SetField(key, nil)
}

// TableKeys returns the keys of t in ascending order.
func TableKeys(t *Object) ([]string, error) {
	if err := expect(t, "TableKeys", HashTableClass); err != nil {
		return nil, err
	}
	return t.FieldNames(), nil
}
