// Package fieldtable implements the string-keyed chained hash table that
// backs object attributes and the HashTable class.
//
// Unlike a plain Go map, a Table exposes the bucket layout and the key hash
// so callers can reason about placement, and Insert reports the value it
// displaced so reference-counted callers can release it.
package fieldtable

import (
	"iter"
	"slices"
)

const (
	// DefaultBuckets is the bucket count of a freshly created table.
	DefaultBuckets = 8

	// DefaultLoadFactor is the average chain length that triggers growth.
	DefaultLoadFactor = 4
)

// entry is one (key, hash, value) triple chained within a bucket.
type entry[V any] struct {
	key   string
	hash  uint32
	value V
	next  *entry[V]
}

// Table maps string keys to values of type V.
//
// The bucket array doubles whenever the entry count would exceed
// buckets*loadFactor. A Table is not safe for concurrent use.
type Table[V any] struct {
	buckets    []*entry[V]
	count      int
	loadFactor int
}

// New creates an empty table. Non-positive arguments select the defaults.
func New[V any](buckets, loadFactor int) *Table[V] {
	if buckets < 1 {
		buckets = DefaultBuckets
	}
	if loadFactor < 1 {
		loadFactor = DefaultLoadFactor
	}
	return &Table[V]{
		buckets:    make([]*entry[V], buckets),
		loadFactor: loadFactor,
	}
}

// Hash is the 32-bit running hash used for bucket placement: seed 5381,
// h = h*33 + b, consuming the key from its last byte to its first.
func Hash(key string) uint32 {
	h := uint32(5381)
	for i := len(key) - 1; i >= 0; i-- {
		h = (h << 5) + h + uint32(key[i])
	}
	return h
}

// Len returns the number of entries.
func (t *Table[V]) Len() int {
	return t.count
}

// Buckets returns the current bucket count.
func (t *Table[V]) Buckets() int {
	return len(t.buckets)
}

// Insert binds key to v. If key was already bound, the previous value is
// returned with replaced set and the entry count is unchanged.
func (t *Table[V]) Insert(key string, v V) (old V, replaced bool) {
	h := Hash(key)
	if e := t.lookup(key, h); e != nil {
		old, e.value = e.value, v
		return old, true
	}

	if t.count+1 > len(t.buckets)*t.loadFactor {
		t.grow()
	}

	e := &entry[V]{key: key, hash: h, value: v}
	t.link(e)
	t.count++
	return old, false
}

// Get returns the value bound to key.
func (t *Table[V]) Get(key string) (V, bool) {
	if e := t.lookup(key, Hash(key)); e != nil {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Has reports whether key is bound.
func (t *Table[V]) Has(key string) bool {
	return t.lookup(key, Hash(key)) != nil
}

// Remove unbinds key and returns the value it held.
func (t *Table[V]) Remove(key string) (V, bool) {
	h := Hash(key)
	idx := h % uint32(len(t.buckets))

	var prev *entry[V]
	for e := t.buckets[idx]; e != nil; e = e.next {
		if e.hash == h && e.key == key {
			if prev == nil {
				t.buckets[idx] = e.next
			} else {
				prev.next = e.next
			}
			t.count--
			return e.value, true
		}
		prev = e
	}
	var zero V
	return zero, false
}

// Reset drops every entry and returns the values that were stored, in
// bucket order. The bucket count is kept.
func (t *Table[V]) Reset() []V {
	values := make([]V, 0, t.count)
	for i, e := range t.buckets {
		for ; e != nil; e = e.next {
			values = append(values, e.value)
		}
		t.buckets[i] = nil
	}
	t.count = 0
	return values
}

// All iterates over the entries in bucket order.
func (t *Table[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, e := range t.buckets {
			for ; e != nil; e = e.next {
				if !yield(e.key, e.value) {
					return
				}
			}
		}
	}
}

// Keys returns the keys in ascending order.
func (t *Table[V]) Keys() []string {
	keys := make([]string, 0, t.count)
	for k := range t.All() {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (t *Table[V]) lookup(key string, h uint32) *entry[V] {
	for e := t.buckets[h%uint32(len(t.buckets))]; e != nil; e = e.next {
		if e.hash == h && e.key == key {
			return e
		}
	}
	return nil
}

// link appends e at the tail of its bucket chain.
func (t *Table[V]) link(e *entry[V]) {
	e.next = nil
	slot := &t.buckets[e.hash%uint32(len(t.buckets))]
	for *slot != nil {
		slot = &(*slot).next
	}
	*slot = e
}

// grow doubles the bucket array and relinks every entry, keeping the
// relative order of entries that land in the same bucket.
func (t *Table[V]) grow() {
	old := t.buckets
	t.buckets = make([]*entry[V], 2*len(old))
	for _, e := range old {
		for e != nil {
			next := e.next
			t.link(e)
			e = next
		}
	}
}
