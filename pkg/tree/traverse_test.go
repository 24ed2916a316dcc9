package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraverse(t *testing.T) {
	tr := buildSample(t)

	tests := []struct {
		name  string
		start int
		mode  Mode
		want  []int
	}{
		{"depth from root", RootID, Depth, []int{0, 1, 2, 4, 5, 3}},
		{"width from root", RootID, Width, []int{0, 1, 2, 3, 4, 5}},
		{"depth subtree", 2, Depth, []int{2, 4, 5}},
		{"leaf", 3, Width, []int{3}},
		{"unknown", 99, Depth, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Collect(tt.start, tt.mode))
		})
	}
}

func TestTraverseIsRestartable(t *testing.T) {
	tr := buildSample(t)
	seq := tr.Traverse(RootID, Depth)

	var first, second []int
	for id := range seq {
		first = append(first, id)
	}
	for id := range seq {
		second = append(second, id)
	}
	assert.Equal(t, first, second)
}

func TestTraverseStopsEarly(t *testing.T) {
	tr := buildSample(t)

	var seen []int
	for id := range tr.Traverse(RootID, Depth) {
		seen = append(seen, id)
		if id == 2 {
			break
		}
	}
	assert.Equal(t, []int{0, 1, 2}, seen)
}

func TestTraverseCoverage(t *testing.T) {
	tr := New()
	const n = 200
	for id := 1; id <= n; id++ {
		// parent is an earlier id, giving a mixed-shape tree
		_, err := tr.AddNode(id, id/3, nil)
		require.NoError(t, err)
	}

	for _, mode := range []Mode{Depth, Width} {
		ids := tr.Collect(RootID, mode)
		assert.Len(t, ids, n+1, mode.String())

		seen := make(map[int]bool)
		for _, id := range ids {
			assert.False(t, seen[id], "id %d visited twice", id)
			seen[id] = true
		}
	}
}

func TestTraverseDuplicateChild(t *testing.T) {
	tr := New()
	_, err := tr.AddNode(1, 0, nil)
	require.NoError(t, err)
	n, _ := tr.Node(RootID)
	n.AddChild(1)

	assert.Equal(t, []int{0, 1, 1}, tr.Collect(RootID, Depth))
	assert.True(t, tr.IsBranch(RootID))
}

func TestFindLeavesAndBranches(t *testing.T) {
	tr := buildSample(t)

	assert.Equal(t, []int{4, 5, 3}, tr.FindLeaves(RootID))
	assert.Equal(t, []int{1, 2}, tr.FindBranches(RootID))
	assert.Equal(t, []int{4, 5}, tr.FindLeaves(2))
	assert.Equal(t, []int{3}, tr.FindLeaves(3))
	assert.Nil(t, tr.FindBranches(3))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "depth", Depth.String())
	assert.Equal(t, "width", Width.String())
}
