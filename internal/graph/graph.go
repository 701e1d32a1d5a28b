package graph

// Node represents one architecture component: either a single resource
// instance or a summary node standing in for a whole category.
type Node struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Label    string `json:"label"`
}

// Edge represents a directed data-flow relation between two components.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is the synthesized architecture: layered components and the
// inferred connections between them.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// HasNode reports whether a node with the given id is present.
func (g *Graph) HasNode(id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}
