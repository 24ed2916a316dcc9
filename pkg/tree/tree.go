// Package tree implements a parent-indexed tree of integer ids together with
// the structural queries used for brain-region ontologies and traced
// skeletons: traversal, leaf and branch detection, ancestry and the
// decomposition of a tree into maximal linear segments.
//
// The Tree owns every Node in a single map keyed by id. Nodes refer to their
// parent and children by id only.
//
// A Tree is not safe for concurrent use. Mutating a Tree while a sequence
// returned by Traverse is being consumed is undefined behavior; Generation
// can be used by callers to detect such mutation.
package tree

import "sort"

// RootID is the id of the sentinel root seeded by New. Real top-level
// records attach to it.
const RootID = 0

// Tree is the node registry and owner of all nodes
type Tree struct {
	nodes      map[int]*Node
	generation uint64
}

// New creates a tree containing only the sentinel root
func New() *Tree {
	t := &Tree{nodes: make(map[int]*Node)}
	t.nodes[RootID] = &Node{id: RootID}
	return t
}

// AddNode registers a node under id as a child of parent.
//
// The parent must already be present, otherwise a *MissingParentError is
// returned and nothing is changed. Adding an id that already exists replaces
// the old node: its children are dropped and the old parent keeps its stale
// child entry. replaced reports when that happened.
func (t *Tree) AddNode(id, parent int, payload any) (replaced bool, err error) {
	if id == RootID {
		return false, ErrRootReserved
	}

	p, ok := t.nodes[parent]
	if !ok {
		return false, &MissingParentError{ID: id, Parent: parent}
	}

	_, replaced = t.nodes[id]
	t.nodes[id] = &Node{
		id:        id,
		parent:    parent,
		hasParent: true,
		payload:   payload,
	}
	p.AddChild(id)
	t.generation++

	return replaced, nil
}

// Node returns the node registered under id
func (t *Tree) Node(id int) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Has reports whether id is registered
func (t *Tree) Has(id int) bool {
	_, ok := t.nodes[id]
	return ok
}

// Len returns the number of registered nodes, sentinel root included
func (t *Tree) Len() int {
	return len(t.nodes)
}

// IDs returns every registered id in ascending order
func (t *Tree) IDs() []int {
	ids := make([]int, 0, len(t.nodes))
	for id := range t.nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Generation is incremented by every structural change
func (t *Tree) Generation() uint64 {
	return t.generation
}

// Payload returns the payload of id, or nil if id is unknown
func (t *Tree) Payload(id int) any {
	if n, ok := t.nodes[id]; ok {
		return n.payload
	}
	return nil
}

// IsLeaf reports whether id has no children. Unknown ids are not leaves.
func (t *Tree) IsLeaf(id int) bool {
	n, ok := t.nodes[id]
	return ok && n.IsLeaf()
}

// IsBranch reports whether id has more than one child
func (t *Tree) IsBranch(id int) bool {
	n, ok := t.nodes[id]
	return ok && n.IsBranch()
}

// PathToRoot returns the ids from id up to and including the sentinel root.
// It returns nil if id is unknown.
func (t *Tree) PathToRoot(id int) []int {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}

	var path []int
	// a replaced id can close a loop in the parent chain; no real path
	// is longer than the registry
	for len(path) <= len(t.nodes) {
		path = append(path, n.id)
		parent, hasParent := n.Parent()
		if !hasParent {
			return path
		}
		if n, ok = t.nodes[parent]; !ok {
			return path
		}
	}
	return path
}

// Depth returns the number of edges between id and the sentinel root, or -1
// if id is unknown.
func (t *Tree) Depth(id int) int {
	return len(t.PathToRoot(id)) - 1
}
