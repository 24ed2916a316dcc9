package tree

// FindSegments decomposes the subtree at start into maximal linear chains.
//
// A chain runs from start through every node that has exactly one child and
// stops at the first leaf or branch, which closes it. Each child of a branch
// then starts its own chain. Chains are returned in pre-order, matching a
// Depth traversal.
//
// With link set, every chain except one starting at the sentinel root is
// prefixed with its start node's parent, so consecutive polylines share an
// endpoint when drawn separately.
func (t *Tree) FindSegments(link bool, start int) [][]int {
	return t.AppendSegments(nil, link, start)
}

// AppendSegments appends the chains of FindSegments to dst and returns the
// extended slice.
func (t *Tree) AppendSegments(dst [][]int, link bool, start int) [][]int {
	if _, ok := t.nodes[start]; !ok {
		return dst
	}

	// pending chain starts, popped from the end
	stack := []int{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var chain []int
		if n, ok := t.nodes[id]; ok && link && id != RootID {
			if parent, ok := n.Parent(); ok {
				chain = append(chain, parent)
			}
		}

		next := []int{id}
		for len(next) == 1 {
			chain = append(chain, next[0])
			n, ok := t.nodes[next[0]]
			if !ok {
				next = nil
				break
			}
			next = n.children
		}
		dst = append(dst, chain)

		for i := len(next) - 1; i >= 0; i-- {
			stack = append(stack, next[i])
		}
	}

	return dst
}
