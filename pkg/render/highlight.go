package render

import "github.com/matzehuels/forcegraph/pkg/graph"

// Highlight is the current focus: a node, a link, or nothing.
type Highlight struct {
	NodeID graph.ID
	Link   *graph.LinkRef

	// spread holds nodes highlighted through Expand.
	spread map[graph.ID]bool
}

// FocusNode highlights a node.
func FocusNode(id graph.ID) Highlight { return Highlight{NodeID: id} }

// FocusLink highlights a link.
func FocusLink(source, target graph.ID) Highlight {
	return Highlight{Link: &graph.LinkRef{Source: source, Target: target}}
}

// Expand marks the focused node and its surroundings as highlighted.
// Degree 0 marks only the node, 1 adds its neighbors, 2 adds the
// neighbors' neighbors. A link focus is returned unchanged.
func (h Highlight) Expand(w graph.Weights, degree int) Highlight {
	if h.NodeID == "" {
		return h
	}
	spread := map[graph.ID]bool{h.NodeID: true}
	frontier := []graph.ID{h.NodeID}
	for range min(max(degree, 0), 2) {
		var next []graph.ID
		for _, id := range frontier {
			for nb := range w.Neighbors(id) {
				if !spread[nb] {
					spread[nb] = true
					next = append(next, nb)
				}
			}
		}
		frontier = next
	}
	h.spread = spread
	return h
}

// linkSource returns the highlighted link's source, or "".
func (h Highlight) linkSource() graph.ID {
	if h.Link == nil {
		return ""
	}
	return h.Link.Source
}

// Active reports whether a node or a link source is focused. Link
// opacity fades on this condition.
func (h Highlight) Active() bool {
	return h.NodeID != "" || h.linkSource() != ""
}

// nodeFocused reports whether a node, or a complete link, is focused.
// Node opacity fades on this condition.
func (h Highlight) nodeFocused() bool {
	return h.NodeID != "" || (h.Link != nil && h.Link.Complete())
}

// Covers reports whether n is highlighted: flagged on the node, reached
// by Expand, or an endpoint of the focused link.
func (h Highlight) Covers(n *graph.Node) bool {
	if n == nil {
		return false
	}
	if h.flagged(n) {
		return true
	}
	return h.Link != nil && (n.ID == h.Link.Source || n.ID == h.Link.Target)
}

// flagged reports whether n is highlighted as a node, ignoring the link
// focus.
func (h Highlight) flagged(n *graph.Node) bool {
	return n != nil && (n.Highlighted || h.spread[n.ID])
}

// isLink reports whether the focused link is exactly source→target.
func (h Highlight) isLink(source, target graph.ID) bool {
	return h.Link != nil && source == h.Link.Source && target == h.Link.Target
}
