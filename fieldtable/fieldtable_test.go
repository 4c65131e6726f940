package fieldtable

import (
	"fmt"
	"slices"
	"testing"
)

func TestHash(t *testing.T) {
	tests := []struct {
		key  string
		want uint32
	}{
		{"", 5381},
		{"a", 5381*33 + 'a'},
		// consumed last byte first
		{"ab", (5381*33+'b')*33 + 'a'},
	}
	for _, tt := range tests {
		if got := Hash(tt.key); got != tt.want {
			t.Errorf("Hash(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
	if Hash("ab") == Hash("ba") {
		t.Error("Hash should depend on byte order")
	}
}

func TestInsertGet(t *testing.T) {
	tab := New[int](0, 0)
	if tab.Buckets() != DefaultBuckets {
		t.Fatalf("Buckets() = %d, want %d", tab.Buckets(), DefaultBuckets)
	}

	if _, replaced := tab.Insert("x", 1); replaced {
		t.Error("first insert should not replace")
	}
	got, ok := tab.Get("x")
	if !ok || got != 1 {
		t.Errorf("Get(x) = %d, %v; want 1, true", got, ok)
	}
	if _, ok := tab.Get("y"); ok {
		t.Error("Get(y) should miss")
	}
	if !tab.Has("x") || tab.Has("y") {
		t.Error("Has disagrees with Get")
	}
}

func TestInsertReplaceReturnsPrevious(t *testing.T) {
	tab := New[string](2, 4)
	tab.Insert("k", "first")

	old, replaced := tab.Insert("k", "second")
	if !replaced || old != "first" {
		t.Errorf("Insert replace = %q, %v; want first, true", old, replaced)
	}
	if tab.Len() != 1 {
		t.Errorf("Len() = %d after replace, want 1", tab.Len())
	}
	if v, _ := tab.Get("k"); v != "second" {
		t.Errorf("Get(k) = %q, want second", v)
	}
}

func TestRemove(t *testing.T) {
	tab := New[int](1, 8) // single bucket forces chaining
	for i, k := range []string{"a", "b", "c"} {
		tab.Insert(k, i)
	}

	for _, k := range []string{"b", "a", "c"} {
		want, _ := tab.Get(k)
		got, ok := tab.Remove(k)
		if !ok || got != want {
			t.Errorf("Remove(%s) = %d, %v; want %d, true", k, got, ok, want)
		}
		if _, ok := tab.Get(k); ok {
			t.Errorf("Get(%s) after remove should miss", k)
		}
	}
	if tab.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tab.Len())
	}
	if _, ok := tab.Remove("missing"); ok {
		t.Error("Remove of a missing key should report false")
	}
}

func TestGrowthKeepsEntries(t *testing.T) {
	tab := New[int](2, 2)
	const n = 100
	for i := 0; i < n; i++ {
		tab.Insert(fmt.Sprintf("key%d", i), i)
	}
	if tab.Len() != n {
		t.Fatalf("Len() = %d, want %d", tab.Len(), n)
	}
	if tab.Buckets() < n/2 {
		t.Errorf("Buckets() = %d, table did not grow", tab.Buckets())
	}
	if tab.Len() > tab.Buckets()*2 {
		t.Errorf("load %d/%d exceeds load factor", tab.Len(), tab.Buckets())
	}
	for i := 0; i < n; i++ {
		if v, ok := tab.Get(fmt.Sprintf("key%d", i)); !ok || v != i {
			t.Errorf("Get(key%d) = %d, %v", i, v, ok)
		}
	}
}

func TestKeysAndAll(t *testing.T) {
	tab := New[int](4, 1)
	for i, k := range []string{"delta", "alpha", "charlie", "bravo"} {
		tab.Insert(k, i)
	}

	want := []string{"alpha", "bravo", "charlie", "delta"}
	if got := tab.Keys(); !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	seen := map[string]int{}
	for k, v := range tab.All() {
		seen[k] = v
	}
	if len(seen) != 4 || seen["charlie"] != 2 {
		t.Errorf("All() yielded %v", seen)
	}

	// early stop
	count := 0
	for range tab.All() {
		count++
		break
	}
	if count != 1 {
		t.Errorf("All() ignored break, yielded %d", count)
	}
}

func TestReset(t *testing.T) {
	tab := New[int](2, 4)
	tab.Insert("a", 1)
	tab.Insert("b", 2)

	values := tab.Reset()
	slices.Sort(values)
	if !slices.Equal(values, []int{1, 2}) {
		t.Errorf("Reset() = %v, want [1 2]", values)
	}
	if tab.Len() != 0 || tab.Has("a") {
		t.Error("table should be empty after Reset")
	}
}
