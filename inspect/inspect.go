// Package inspect takes read-only structural snapshots of object graphs
// and encodes them as canonical CBOR for diagnostics.
package inspect

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/chazu/substrate/obj"
)

// MaxElementPreview is the maximum number of container elements recorded
// per node.
const MaxElementPreview = 10

// DefaultMaxDepth is the default recursion depth for snapshots.
const DefaultMaxDepth = 3

// Snapshot is a captured object graph.
type Snapshot struct {
	Header Header `cbor:"1,keyasint"`
	Root   *Node  `cbor:"2,keyasint"`
}

// Header identifies where and when a snapshot was taken.
type Header struct {
	Runtime string `cbor:"1,keyasint"` // runtime uuid
	Root    uint32 `cbor:"2,keyasint"`
	Depth   int    `cbor:"3,keyasint"`
	Live    int    `cbor:"4,keyasint"` // live objects in the runtime
}

// Node describes one object. An object reached a second time is recorded
// as a back-reference carrying only its identity, class and name.
type Node struct {
	ID        uint32           `cbor:"1,keyasint"`
	Class     string           `cbor:"2,keyasint"`
	Name      string           `cbor:"3,keyasint"`
	Refs      int              `cbor:"4,keyasint,omitempty"`
	Value     string           `cbor:"5,keyasint,omitempty"` // Print rendering of non-containers
	Size      int              `cbor:"6,keyasint,omitempty"`
	Fields    map[string]*Node `cbor:"7,keyasint,omitempty"`
	Items     []*Node          `cbor:"8,keyasint,omitempty"` // nil for empty Array slots
	Ref       bool             `cbor:"9,keyasint,omitempty"`
	Truncated bool             `cbor:"10,keyasint,omitempty"`
}

// Take snapshots the graph reachable from o through attributes and
// elements, down to depth levels (DefaultMaxDepth if depth <= 0). Reference
// counts are only read; the graph is not modified.
func Take(o *obj.Object, depth int) *Snapshot {
	if depth <= 0 {
		depth = DefaultMaxDepth
	}
	s := &Snapshot{Header: Header{Depth: depth}}
	if o == nil {
		return s
	}
	rt := o.Runtime()
	s.Header.Runtime = rt.ID.String()
	s.Header.Root = o.ID()
	s.Header.Live = rt.Live()

	t := &taker{seen: make(map[uint32]bool)}
	s.Root = t.node(o, depth)
	return s
}

type taker struct {
	seen map[uint32]bool
}

func (t *taker) node(o *obj.Object, depth int) *Node {
	if o == nil {
		return nil
	}
	if !o.Alive() {
		return &Node{ID: o.ID(), Name: o.Name()}
	}
	c := o.Class()
	if t.seen[o.ID()] {
		return &Node{ID: o.ID(), Class: c.Name(), Name: o.Name(), Ref: true}
	}
	t.seen[o.ID()] = true

	n := &Node{
		ID:    o.ID(),
		Class: c.Name(),
		Name:  o.Name(),
		Refs:  o.Refs(),
	}
	iterable := obj.Supports[obj.Iterable](c)
	if obj.Supports[obj.Lengther](c) {
		n.Size = o.Len()
	}
	if !iterable {
		n.Value = o.String()
	}

	names := o.FieldNames()
	elems := iterable && !o.InstanceOf(obj.HashTableClass)
	if depth == 0 {
		n.Truncated = len(names) > 0 || (elems && n.Size > 0)
		return n
	}

	if len(names) > 0 {
		n.Fields = make(map[string]*Node, len(names))
		for _, name := range names {
			n.Fields[name] = t.node(o.GetField(name), depth-1)
		}
	}
	if elems {
		for i, v := range o.All() {
			if i >= MaxElementPreview {
				n.Truncated = true
				break
			}
			n.Items = append(n.Items, t.node(v, depth-1))
		}
	}
	return n
}

// Find returns the first full node (not a back-reference) with the given
// identity, or nil.
func (s *Snapshot) Find(id uint32) *Node {
	return s.Root.find(id)
}

func (n *Node) find(id uint32) *Node {
	if n == nil {
		return nil
	}
	if n.ID == id && !n.Ref {
		return n
	}
	for _, c := range n.Fields {
		if f := c.find(id); f != nil {
			return f
		}
	}
	for _, c := range n.Items {
		if f := c.find(id); f != nil {
			return f
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Wire encoding
// ---------------------------------------------------------------------------

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("inspect: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Marshal serializes a Snapshot to canonical CBOR bytes. Equal snapshots
// encode to identical bytes.
func Marshal(s *Snapshot) ([]byte, error) {
	return cborEncMode.Marshal(s)
}

// Unmarshal deserializes a Snapshot and checks its runtime identifier.
func Unmarshal(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("inspect: unmarshal snapshot: %w", err)
	}
	if s.Root != nil {
		if _, err := uuid.Parse(s.Header.Runtime); err != nil {
			return nil, fmt.Errorf("inspect: bad runtime id %q: %w", s.Header.Runtime, err)
		}
	}
	return &s, nil
}
