package models

// Summary describes the shape of an imported tree
type Summary struct {
	// Source is the file the tree was imported from
	Source string

	// Nodes counts imported nodes, excluding the sentinel root
	Nodes int

	// Leaves and Branches count the corresponding node kinds
	Leaves   int
	Branches int

	// ChainNodes counts nodes with exactly one child
	ChainNodes int

	// MaxDepth is the depth of the deepest node below the sentinel root
	MaxDepth int

	// Segments is the number of chains produced by segment decomposition
	Segments int
}
