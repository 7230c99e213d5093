package render_test

import (
	"fmt"

	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/render"
)

func ExampleMarkerResolver() {
	m := render.NewMarkerResolver()
	fmt.Println(m.Resolve(0.5, "red", 20))
	fmt.Println(m.Resolve(2, "gray", 8))
	fmt.Println(m.Resolve(4, "gray", 8))
	// Output:
	// marker-small-red
	// marker-medium-gray
	// marker-large-gray
}

func ExampleBuilder_BuildFrame() {
	data := &graph.Data{
		Nodes: []graph.Node{graph.NewNode("a"), graph.NewNode("b")},
		Links: []graph.Link{{Source: "a", Target: "b"}},
	}
	data.Nodes[0].X, data.Nodes[0].Y = 100, 100
	data.Nodes[1].X, data.Nodes[1].Y = 200, 150
	idx, _ := graph.NewIndex(data.Nodes)

	cfg := config.Default()
	cfg.Directed = true
	b := render.NewBuilder(&cfg)
	f := b.BuildFrame(&render.Scene{Data: data, Index: idx, Transform: 1})

	fmt.Println(f.Links[0].D)
	fmt.Println(f.Links[0].MarkerID)
	fmt.Println(f.Nodes[1].Label, f.Nodes[1].CX, f.Nodes[1].CY)
	// Output:
	// M100,100A0,0 0 0,1 200,150
	// marker-small-#d3d3d3
	// b 200 150
}
