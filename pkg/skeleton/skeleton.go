// Package skeleton turns a traced structure, such as a neurite trace stored
// as a tree of 3D points, into polylines ready for rendering.
package skeleton

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"neurotree/pkg/importer"
	"neurotree/pkg/tree"
	"neurotree/pkg/typeinfer"
)

// ErrNoCoordinates is returned when a node's payload has no usable x, y, z
var ErrNoCoordinates = errors.New("node has no coordinates")

// Trace is a tree whose non-root nodes carry 3D coordinates, either as
// importer.Fields with x, y and z columns or as importer.Values whose first
// three entries are the coordinates.
type Trace struct {
	tree *tree.Tree
}

// New wraps an imported tree
func New(t *tree.Tree) *Trace {
	return &Trace{tree: t}
}

// Load imports a trace from r
func Load(r io.Reader, opts importer.Options) (*Trace, error) {
	t, err := importer.Import(r, opts)
	if err != nil {
		return nil, fmt.Errorf("error loading trace: %w", err)
	}
	return New(t), nil
}

// Tree returns the underlying tree
func (tr *Trace) Tree() *tree.Tree {
	return tr.tree
}

// Point returns the coordinates of a node
func (tr *Trace) Point(id int) (r3.Vec, error) {
	var raw [3]any
	switch p := tr.tree.Payload(id).(type) {
	case importer.Fields:
		raw = [3]any{p["x"], p["y"], p["z"]}
	case importer.Values:
		if len(p) < 3 {
			return r3.Vec{}, fmt.Errorf("node %d: %w", id, ErrNoCoordinates)
		}
		raw = [3]any{p[0], p[1], p[2]}
	default:
		return r3.Vec{}, fmt.Errorf("node %d: %w", id, ErrNoCoordinates)
	}

	var c [3]float64
	for i, v := range raw {
		f, ok := typeinfer.Number(v)
		if !ok {
			return r3.Vec{}, fmt.Errorf("node %d: %w", id, ErrNoCoordinates)
		}
		c[i] = f
	}
	return r3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
}

// Polyline is one segment of the trace
type Polyline struct {
	IDs    []int
	Points []r3.Vec
}

// Length returns the summed length of the polyline's edges
func (p Polyline) Length() float64 {
	var total float64
	for i := 1; i < len(p.Points); i++ {
		total += r3.Norm(r3.Sub(p.Points[i], p.Points[i-1]))
	}
	return total
}

// Polylines decomposes the trace into one polyline per segment. The
// sentinel root has no coordinates and is left out; a segment consisting
// only of the root is skipped.
func (tr *Trace) Polylines(link bool) ([]Polyline, error) {
	segments := tr.tree.FindSegments(link, tree.RootID)

	lines := make([]Polyline, 0, len(segments))
	for _, seg := range segments {
		var pl Polyline
		for _, id := range seg {
			if id == tree.RootID {
				continue
			}
			pt, err := tr.Point(id)
			if err != nil {
				return nil, err
			}
			pl.IDs = append(pl.IDs, id)
			pl.Points = append(pl.Points, pt)
		}
		if len(pl.IDs) > 0 {
			lines = append(lines, pl)
		}
	}
	return lines, nil
}

// Bounds returns the component-wise minimum and maximum of all points
func (tr *Trace) Bounds() (min, max r3.Vec, err error) {
	min = r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max = r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}

	count := 0
	for id := range tr.tree.Traverse(tree.RootID, tree.Depth) {
		if id == tree.RootID {
			continue
		}
		p, err := tr.Point(id)
		if err != nil {
			return r3.Vec{}, r3.Vec{}, err
		}
		min = r3.Vec{X: math.Min(min.X, p.X), Y: math.Min(min.Y, p.Y), Z: math.Min(min.Z, p.Z)}
		max = r3.Vec{X: math.Max(max.X, p.X), Y: math.Max(max.Y, p.Y), Z: math.Max(max.Z, p.Z)}
		count++
	}
	if count == 0 {
		return r3.Vec{}, r3.Vec{}, nil
	}
	return min, max, nil
}

// Stats summarizes a trace's segment structure
type Stats struct {
	Segments     int
	Points       int
	Leaves       int
	Branches     int
	TotalLength  float64
	MeanLength   float64
	StdDevLength float64
}

// ComputeStats decomposes the trace and measures its segments
func (tr *Trace) ComputeStats(link bool) (Stats, error) {
	lines, err := tr.Polylines(link)
	if err != nil {
		return Stats{}, err
	}

	lengths := make([]float64, len(lines))
	for i, l := range lines {
		lengths[i] = l.Length()
	}

	s := Stats{
		Segments: len(lines),
		Points:   tr.tree.Len() - 1,
		Branches: len(tr.tree.FindBranches(tree.RootID)),
	}
	for _, id := range tr.tree.FindLeaves(tree.RootID) {
		// an empty trace leaves only the sentinel root
		if id != tree.RootID {
			s.Leaves++
		}
	}
	if len(lengths) > 0 {
		s.TotalLength = floats.Sum(lengths)
		s.MeanLength = stat.Mean(lengths, nil)
	}
	if len(lengths) > 1 {
		s.StdDevLength = stat.StdDev(lengths, nil)
	}
	return s, nil
}
