package tree

// Node is a single entry of a Tree. Parent and children are stored as ids
// and resolved through the owning Tree; a Node never points at another Node.
type Node struct {
	id        int
	parent    int
	hasParent bool
	children  []int
	payload   any
}

// ID returns the node identifier
func (n *Node) ID() int {
	return n.id
}

// Parent returns the parent id. The second value is false only for the
// sentinel root.
func (n *Node) Parent() (int, bool) {
	return n.parent, n.hasParent
}

// Children returns a copy of the child ids in insertion order
func (n *Node) Children() []int {
	out := make([]int, len(n.children))
	copy(out, n.children)
	return out
}

// NumChildren returns the number of child entries, duplicates included
func (n *Node) NumChildren() int {
	return len(n.children)
}

// AddChild appends id to the child list. Duplicates are not rejected; a
// child listed twice is visited twice by traversal.
func (n *Node) AddChild(id int) {
	n.children = append(n.children, id)
}

// IsLeaf reports whether the node has no children
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// IsBranch reports whether the node has more than one child. A node with
// exactly one child is a chain node and is neither a leaf nor a branch.
func (n *Node) IsBranch() bool {
	return len(n.children) > 1
}

// Payload returns the opaque data attached to the node
func (n *Node) Payload() any {
	return n.payload
}

// SetPayload replaces the node's payload
func (n *Node) SetPayload(p any) {
	n.payload = p
}
