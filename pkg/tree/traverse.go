package tree

import "iter"

// Mode selects the traversal order
type Mode int

const (
	// Depth visits a node's subtree before its later siblings (pre-order)
	Depth Mode = iota
	// Width visits the tree level by level
	Width
)

func (m Mode) String() string {
	if m == Width {
		return "width"
	}
	return "depth"
}

// Traverse returns a lazy sequence of ids reachable from start, start
// included. Each call to the returned sequence starts a fresh walk; the only
// state is the list of pending ids. Unknown start ids yield nothing.
func (t *Tree) Traverse(start int, mode Mode) iter.Seq[int] {
	return func(yield func(int) bool) {
		if _, ok := t.nodes[start]; !ok {
			return
		}

		// Width pops from the front, Depth from the back
		pending := []int{start}
		head := 0
		for head < len(pending) {
			var id int
			if mode == Width {
				id = pending[head]
				head++
			} else {
				id = pending[len(pending)-1]
				pending = pending[:len(pending)-1]
			}

			if !yield(id) {
				return
			}

			n, ok := t.nodes[id]
			if !ok || len(n.children) == 0 {
				continue
			}

			if mode == Width {
				pending = append(pending, n.children...)
				continue
			}
			// reversed so the first child is popped next
			for i := len(n.children) - 1; i >= 0; i-- {
				pending = append(pending, n.children[i])
			}
		}
	}
}

// Collect materializes a traversal into a slice
func (t *Tree) Collect(start int, mode Mode) []int {
	var out []int
	for id := range t.Traverse(start, mode) {
		out = append(out, id)
	}
	return out
}

// FindLeaves returns the leaves reachable from id, in depth traversal order
func (t *Tree) FindLeaves(from int) []int {
	var leaves []int
	for id := range t.Traverse(from, Depth) {
		if t.IsLeaf(id) {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// FindBranches returns the branch nodes reachable from id, in depth
// traversal order
func (t *Tree) FindBranches(from int) []int {
	var branches []int
	for id := range t.Traverse(from, Depth) {
		if t.IsBranch(id) {
			branches = append(branches, id)
		}
	}
	return branches
}
