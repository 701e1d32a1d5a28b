// Package topology synthesizes a layered architecture graph from categorized
// resources. Edges follow a fixed ordered rule list approximating
// conventional data flow between layers, not actual resource references.
package topology

import (
	"fmt"

	"terraform-archviz/internal/classify"
	"terraform-archviz/internal/graph"
)

// DefaultMaxPerCategory is the default per-category display cap. Categories
// with more instances collapse into a single summary node.
const DefaultMaxPerCategory = 4

// PlaceholderID is the node emitted when no resources were found. The graph
// is never empty.
const PlaceholderID = "other/placeholder"

// edgeRules is the versioned ordered list of layer connections. Order is
// part of the output contract; do not rely on map iteration anywhere here.
var edgeRules = []struct {
	from, to classify.Category
}{
	{classify.Network, classify.Security},
	{classify.Security, classify.Compute},
	{classify.Network, classify.Compute},
	{classify.Compute, classify.Database},
	{classify.Compute, classify.Storage},
	{classify.Integration, classify.Compute},
	{classify.Monitoring, classify.Compute},
}

// Synthesizer builds architecture graphs.
type Synthesizer struct {
	maxPerCategory int
}

// NewSynthesizer returns a synthesizer with the given per-category display
// cap. Values below one fall back to the default.
func NewSynthesizer(maxPerCategory int) *Synthesizer {
	if maxPerCategory < 1 {
		maxPerCategory = DefaultMaxPerCategory
	}
	return &Synthesizer{maxPerCategory: maxPerCategory}
}

// Synthesize materializes nodes for every populated category and connects
// them with the fixed rule list. Total: any input, including an all-empty
// set, yields a valid graph with at least one node and no dangling edges.
func (s *Synthesizer) Synthesize(set classify.Set) *graph.Graph {
	g := &graph.Graph{
		Nodes: make([]graph.Node, 0),
		Edges: make([]graph.Edge, 0),
	}

	// First node of each category anchors that layer's edges.
	first := make(map[classify.Category]string)

	for _, cat := range classify.Categories {
		refs := set[cat]
		if len(refs) == 0 {
			continue
		}

		if len(refs) > s.maxPerCategory {
			node := summaryNode(cat, len(refs))
			g.Nodes = append(g.Nodes, node)
			first[cat] = node.ID
			continue
		}

		for i, ref := range refs {
			node := detailNode(cat, ref)
			g.Nodes = append(g.Nodes, node)
			if i == 0 {
				first[cat] = node.ID
			}
		}
	}

	if len(g.Nodes) == 0 {
		g.Nodes = append(g.Nodes, graph.Node{
			ID:       PlaceholderID,
			Category: string(classify.Other),
			Label:    "No Resources Found",
		})
		return g
	}

	for _, rule := range edgeRules {
		from, okFrom := first[rule.from]
		to, okTo := first[rule.to]
		if okFrom && okTo {
			g.Edges = append(g.Edges, graph.Edge{From: from, To: to})
		}
	}

	return g
}

func detailNode(cat classify.Category, ref classify.Ref) graph.Node {
	return graph.Node{
		ID:       fmt.Sprintf("%s/%s.%s", cat, ref.Type, ref.Name),
		Category: string(cat),
		Label:    fmt.Sprintf("%s\n%s", ref.Type, ref.Name),
	}
}

func summaryNode(cat classify.Category, count int) graph.Node {
	return graph.Node{
		ID:       fmt.Sprintf("%s/all", cat),
		Category: string(cat),
		Label:    fmt.Sprintf("%d %s resources", count, cat),
	}
}
