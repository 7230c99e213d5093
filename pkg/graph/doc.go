// Package graph provides the node-link data model consumed by the layout
// and render stages.
//
// # Core Types
//
//   - [Data]: the input graph, a list of [Node] values and a list of [Link] values
//   - [Index]: maps a node [ID] to its position in Data.Nodes (the node lookup index)
//   - [Weights]: symmetric link value lookup used for semantic stroke widths
//   - [LinkRef]: a (source, target) pair identifying a link, used for highlight state
//
// # Serialization
//
// Graphs use the node-link JSON format:
//
//	{
//	  "nodes": [{"id": "Mary"}, {"id": "Roy", "color": "red"}],
//	  "links": [{"source": "Mary", "target": "Roy", "value": 2}]
//	}
//
// Node and link ids may be strings or integers; they are compared by value,
// so 1 and "1" name the same node. Fields the package does not know about
// are preserved in Extra and survive a round trip, which lets label
// properties (config.node.label_property) name arbitrary fields.
//
//	data, _ := graph.ReadFile("graph.json")
//	idx, _ := graph.NewIndex(data.Nodes)
//	graph.ComputeDegrees(&data)
//
// # Ownership
//
// Node positions (X, Y) are owned by the simulation and layout stages. The
// render stage only reads them. An Index must be rebuilt with [NewIndex]
// whenever Data.Nodes changes.
package graph
