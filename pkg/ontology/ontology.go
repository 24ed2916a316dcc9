// Package ontology provides name lookup over a brain-region hierarchy
// imported as a tree. Each region row carries a "name" column and
// optionally an "acronym" column.
package ontology

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"neurotree/pkg/importer"
	"neurotree/pkg/tree"
)

// Column names read from region payloads
const (
	NameField    = "name"
	AcronymField = "acronym"
)

// ErrRegionNotFound is returned when a region id or name is unknown
var ErrRegionNotFound = errors.New("region not found")

// Atlas answers region lookups on an imported ontology tree
type Atlas struct {
	tree *tree.Tree
}

// New wraps an existing tree
func New(t *tree.Tree) *Atlas {
	return &Atlas{tree: t}
}

// Load imports an ontology from r. A header is required so regions can be
// looked up by name; if opts carries neither HasHeader nor Header, the first
// line is used as the header.
func Load(r io.Reader, opts importer.Options) (*Atlas, error) {
	if opts.Header == nil {
		opts.HasHeader = true
	}
	t, err := importer.Import(r, opts)
	if err != nil {
		return nil, fmt.Errorf("error loading ontology: %w", err)
	}
	return New(t), nil
}

// Tree returns the underlying tree
func (a *Atlas) Tree() *tree.Tree {
	return a.tree
}

func (a *Atlas) fields(id int) (importer.Fields, bool) {
	if id == tree.RootID {
		return nil, false
	}
	f, ok := a.tree.Payload(id).(importer.Fields)
	return f, ok
}

// Name returns the display name of a region
func (a *Atlas) Name(id int) (string, bool) {
	f, ok := a.fields(id)
	if !ok {
		return "", false
	}
	return f.String(NameField)
}

// Acronym returns the acronym of a region
func (a *Atlas) Acronym(id int) (string, bool) {
	f, ok := a.fields(id)
	if !ok {
		return "", false
	}
	return f.String(AcronymField)
}

// SetName updates the display name of a region in place
func (a *Atlas) SetName(id int, name string) error {
	n, ok := a.tree.Node(id)
	if !ok || id == tree.RootID {
		return fmt.Errorf("region %d: %w", id, ErrRegionNotFound)
	}
	f, ok := n.Payload().(importer.Fields)
	if !ok {
		f = importer.Fields{}
		n.SetPayload(f)
	}
	f[NameField] = name
	return nil
}

// Lineage returns region names from id up to its top-level region. The
// sentinel root is not included. Regions without a name appear as their id.
func (a *Atlas) Lineage(id int) []string {
	path := a.tree.PathToRoot(id)
	if len(path) == 0 {
		return nil
	}
	names := make([]string, 0, len(path)-1)
	for _, p := range path {
		if p == tree.RootID {
			break
		}
		name, ok := a.Name(p)
		if !ok {
			name = fmt.Sprint(p)
		}
		names = append(names, name)
	}
	return names
}

// FindByName returns the first region, in depth traversal order, whose name
// matches case-insensitively.
func (a *Atlas) FindByName(name string) (int, error) {
	return a.find(NameField, name)
}

// FindByAcronym is FindByName for the acronym column
func (a *Atlas) FindByAcronym(acronym string) (int, error) {
	return a.find(AcronymField, acronym)
}

func (a *Atlas) find(field, want string) (int, error) {
	for id := range a.tree.Traverse(tree.RootID, tree.Depth) {
		f, ok := a.fields(id)
		if !ok {
			continue
		}
		if got, ok := f.String(field); ok && strings.EqualFold(got, want) {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%s %q: %w", field, want, ErrRegionNotFound)
}

// Descendants returns every region below id in depth traversal order
func (a *Atlas) Descendants(id int) []int {
	var out []int
	for d := range a.tree.Traverse(id, tree.Depth) {
		if d != id {
			out = append(out, d)
		}
	}
	return out
}

// Regions returns the top-level regions attached to the sentinel root
func (a *Atlas) Regions() []int {
	root, _ := a.tree.Node(tree.RootID)
	return root.Children()
}

// Finest returns the regions with no subdivisions below id
func (a *Atlas) Finest(id int) []int {
	return a.tree.FindLeaves(id)
}
