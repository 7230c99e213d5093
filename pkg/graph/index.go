package graph

import (
	"fmt"

	"github.com/matzehuels/forcegraph/pkg/errors"
)

// Index maps node ids to their position in a node slice.
//
// An Index is only valid for the slice it was built from. Rebuild it with
// [NewIndex] whenever nodes are added, removed, or reordered.
type Index struct {
	pos map[ID]int
}

// NewIndex builds the lookup index for nodes.
// Returns an INVALID_GRAPH error for empty or duplicate ids.
func NewIndex(nodes []Node) (Index, error) {
	pos := make(map[ID]int, len(nodes))
	for i := range nodes {
		id := nodes[i].ID
		if err := errors.ValidateNodeID(string(id)); err != nil {
			return Index{}, fmt.Errorf("node %d: %w", i, err)
		}
		if _, dup := pos[id]; dup {
			return Index{}, errors.New(errors.ErrCodeInvalidGraph, "duplicate node id %q", id)
		}
		pos[id] = i
	}
	return Index{pos: pos}, nil
}

// Lookup returns the position of id.
func (x Index) Lookup(id ID) (int, bool) {
	i, ok := x.pos[id]
	return i, ok
}

// Len returns the number of indexed nodes.
func (x Index) Len() int { return len(x.pos) }

// Resolve returns a pointer to the node with the given id, or nil if the id
// is unknown or the index does not match nodes.
func (x Index) Resolve(nodes []Node, id ID) *Node {
	i, ok := x.pos[id]
	if !ok || i < 0 || i >= len(nodes) || nodes[i].ID != id {
		return nil
	}
	return &nodes[i]
}

// Consistent reports whether the index still describes nodes: same
// cardinality and every position points at the node carrying that id.
func (x Index) Consistent(nodes []Node) bool {
	if len(x.pos) != len(nodes) {
		return false
	}
	for id, i := range x.pos {
		if i < 0 || i >= len(nodes) || nodes[i].ID != id {
			return false
		}
	}
	return true
}
