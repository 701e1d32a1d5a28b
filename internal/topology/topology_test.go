package topology

import (
	"strings"
	"testing"

	"terraform-archviz/internal/classify"
	"terraform-archviz/internal/graph"
)

func TestSynthesizeSingleCategory(t *testing.T) {
	s := NewSynthesizer(DefaultMaxPerCategory)

	set := classify.Set{
		classify.Compute: {{Type: "aws_instance", Name: "web"}},
	}

	g := s.Synthesize(set)

	if len(g.Nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(g.Nodes))
	}
	if g.Nodes[0].Category != "compute" {
		t.Errorf("Expected compute node, got %s", g.Nodes[0].Category)
	}
	// No other category is populated: every edge rule is skipped.
	if len(g.Edges) != 0 {
		t.Errorf("Expected 0 edges, got %d", len(g.Edges))
	}
}

func TestSynthesizeLayeredEdges(t *testing.T) {
	s := NewSynthesizer(DefaultMaxPerCategory)

	set := classify.Set{
		classify.Network:  {{Type: "aws_lb", Name: "x"}},
		classify.Compute:  {{Type: "aws_instance", Name: "y"}},
		classify.Database: {{Type: "aws_db_instance", Name: "z"}},
	}

	g := s.Synthesize(set)

	if len(g.Nodes) != 3 {
		t.Fatalf("Expected 3 nodes, got %d", len(g.Nodes))
	}
	if len(g.Edges) != 2 {
		t.Fatalf("Expected 2 edges (network->compute, compute->database), got %d: %+v", len(g.Edges), g.Edges)
	}

	// Security is empty, so network->security and security->compute are
	// skipped and network connects to compute directly.
	assertEdge(t, g, "network/aws_lb.x", "compute/aws_instance.y")
	assertEdge(t, g, "compute/aws_instance.y", "database/aws_db_instance.z")
}

func TestSynthesizeFullStack(t *testing.T) {
	s := NewSynthesizer(DefaultMaxPerCategory)

	set := classify.Set{
		classify.Network:     {{Type: "aws_lb", Name: "lb"}},
		classify.Security:    {{Type: "aws_security_group", Name: "sg"}},
		classify.Compute:     {{Type: "aws_instance", Name: "app"}},
		classify.Database:    {{Type: "aws_db_instance", Name: "db"}},
		classify.Storage:     {{Type: "aws_s3_bucket", Name: "logs"}},
		classify.Integration: {{Type: "aws_sqs_queue", Name: "jobs"}},
		classify.Monitoring:  {{Type: "aws_cloudwatch_metric_alarm", Name: "cpu"}},
	}

	g := s.Synthesize(set)

	if len(g.Edges) != 7 {
		t.Errorf("Expected all 7 edge rules applied, got %d", len(g.Edges))
	}
	assertEdge(t, g, "network/aws_lb.lb", "security/aws_security_group.sg")
	assertEdge(t, g, "security/aws_security_group.sg", "compute/aws_instance.app")
}

func TestSynthesizeEmptySetYieldsPlaceholder(t *testing.T) {
	s := NewSynthesizer(DefaultMaxPerCategory)

	g := s.Synthesize(classify.Set{})

	if len(g.Nodes) != 1 {
		t.Fatalf("Expected exactly one placeholder node, got %d", len(g.Nodes))
	}
	if g.Nodes[0].ID != PlaceholderID {
		t.Errorf("Expected placeholder node id %s, got %s", PlaceholderID, g.Nodes[0].ID)
	}
	if len(g.Edges) != 0 {
		t.Errorf("Expected 0 edges, got %d", len(g.Edges))
	}
}

func TestSynthesizeDisplayCap(t *testing.T) {
	s := NewSynthesizer(2)

	set := classify.Set{
		classify.Compute: {
			{Type: "aws_instance", Name: "a"},
			{Type: "aws_instance", Name: "b"},
			{Type: "aws_instance", Name: "c"},
		},
		classify.Database: {{Type: "aws_db_instance", Name: "db"}},
	}

	g := s.Synthesize(set)

	// Three compute resources exceed the cap of 2: one summary node.
	var summary *graph.Node
	for i := range g.Nodes {
		if g.Nodes[i].ID == "compute/all" {
			summary = &g.Nodes[i]
		}
	}
	if summary == nil {
		t.Fatalf("Expected a compute summary node, nodes: %+v", g.Nodes)
	}
	if !strings.Contains(summary.Label, "3") {
		t.Errorf("Expected summary label with count, got %q", summary.Label)
	}
	if len(g.Nodes) != 2 {
		t.Errorf("Expected summary + database nodes, got %d", len(g.Nodes))
	}

	// Edges anchor on the summary node.
	assertEdge(t, g, "compute/all", "database/aws_db_instance.db")
}

func TestSynthesizeAtCapKeepsDetailNodes(t *testing.T) {
	s := NewSynthesizer(2)

	set := classify.Set{
		classify.Compute: {
			{Type: "aws_instance", Name: "a"},
			{Type: "aws_instance", Name: "b"},
		},
	}

	g := s.Synthesize(set)
	if len(g.Nodes) != 2 {
		t.Errorf("Expected per-instance nodes at the cap, got %d", len(g.Nodes))
	}
}

func TestSynthesizeNoDanglingEdges(t *testing.T) {
	s := NewSynthesizer(1)

	sets := []classify.Set{
		{},
		{classify.Monitoring: {{Type: "aws_cloudwatch_metric_alarm", Name: "x"}}},
		{
			classify.Network: {{Type: "aws_vpc", Name: "v"}, {Type: "aws_subnet", Name: "s"}},
			classify.Storage: {{Type: "aws_s3_bucket", Name: "b"}},
			classify.Other:   {{Type: "mystery", Name: "m"}},
		},
	}

	for _, set := range sets {
		g := s.Synthesize(set)
		for _, e := range g.Edges {
			if !g.HasNode(e.From) || !g.HasNode(e.To) {
				t.Errorf("Dangling edge %s -> %s in graph %+v", e.From, e.To, g)
			}
		}
	}
}

func TestSynthesizeOtherNeverConnected(t *testing.T) {
	s := NewSynthesizer(DefaultMaxPerCategory)

	set := classify.Set{
		classify.Compute: {{Type: "aws_instance", Name: "web"}},
		classify.Other:   {{Type: "variable", Name: "region"}},
	}

	g := s.Synthesize(set)
	if len(g.Edges) != 0 {
		t.Errorf("Expected no edges for compute+other, got %+v", g.Edges)
	}
}

func assertEdge(t *testing.T, g *graph.Graph, from, to string) {
	t.Helper()
	for _, e := range g.Edges {
		if e.From == from && e.To == to {
			return
		}
	}
	t.Errorf("Expected edge %s -> %s, edges: %+v", from, to, g.Edges)
}
