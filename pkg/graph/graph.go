package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/forcegraph/pkg/errors"
)

// =============================================================================
// Serialization API
// =============================================================================

// Marshal converts graph data to indented JSON bytes.
func Marshal(d Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes graph data to a JSON file.
func WriteFile(d Data, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}

// WriteJSON writes graph data as indented JSON.
func WriteJSON(d Data, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadFile reads a JSON graph file.
func ReadFile(path string) (Data, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Data{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s", path)
	}
	if err != nil {
		return Data{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ReadJSON decodes a JSON graph. Node ids are validated and must be unique;
// links are kept even when an endpoint is unknown, since the layout and
// render stages degrade gracefully for them. Degrees missing from the input
// are computed.
func ReadJSON(r io.Reader) (Data, error) {
	var d Data
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Data{}, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode graph")
	}
	if _, err := NewIndex(d.Nodes); err != nil {
		return Data{}, err
	}
	ComputeDegrees(&d)
	return d, nil
}

// =============================================================================
// Derived Data
// =============================================================================

// ComputeDegrees sets the degree of every node whose degree is unknown to
// the number of links incident to it. Self-links count once.
func ComputeDegrees(d *Data) {
	counts := make(map[ID]int, len(d.Nodes))
	for i := range d.Links {
		l := &d.Links[i]
		counts[l.Source]++
		if l.Target != l.Source {
			counts[l.Target]++
		}
	}
	for i := range d.Nodes {
		if d.Nodes[i].Degree < 0 {
			d.Nodes[i].Degree = counts[d.Nodes[i].ID]
		}
	}
}

// MaxDegree returns the highest node degree, or 0 for an empty graph.
func MaxDegree(nodes []Node) int {
	m := 0
	for i := range nodes {
		m = max(m, nodes[i].Degree)
	}
	return m
}

// Unresolved returns the links that reference a node missing from idx.
func Unresolved(links []Link, idx Index) []Link {
	var out []Link
	for _, l := range links {
		_, okS := idx.Lookup(l.Source)
		_, okT := idx.Lookup(l.Target)
		if !okS || !okT {
			out = append(out, l)
		}
	}
	return out
}
