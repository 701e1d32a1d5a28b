package runner

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"terraform-archviz/internal/config"
	"terraform-archviz/internal/graph"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func TestRunJSONOutput(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "main.tf", `
resource "aws_lb" "x" {}
resource "aws_instance" "y" {}
resource "aws_db_instance" "z" {}
`)

	cfg := config.DefaultConfig()
	cfg.Root = root
	cfg.Format = "json"

	if err := Run(cfg); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "architecture.json"))
	if err != nil {
		t.Fatalf("Expected architecture.json to be written: %v", err)
	}

	var g graph.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(g.Nodes) != 3 {
		t.Errorf("Expected 3 nodes, got %d", len(g.Nodes))
	}
	if len(g.Edges) != 2 {
		t.Errorf("Expected 2 edges (network->compute, compute->database), got %d", len(g.Edges))
	}
}

func TestRunDOTOutputPerDirectory(t *testing.T) {
	root := t.TempDir()
	prod := filepath.Join(root, "prod")
	staging := filepath.Join(root, "staging")
	for _, dir := range []string{prod, staging} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	writeConfig(t, prod, "main.tf", `resource "aws_instance" "web" {}`)
	writeConfig(t, staging, "main.tf", `resource "aws_s3_bucket" "logs" {}`)

	cfg := config.DefaultConfig()
	cfg.Root = root
	cfg.Format = "dot"

	if err := Run(cfg); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, dir := range []string{prod, staging} {
		data, err := os.ReadFile(filepath.Join(dir, "architecture.dot"))
		if err != nil {
			t.Fatalf("Expected architecture.dot in %s: %v", dir, err)
		}
		if !strings.Contains(string(data), "digraph") {
			t.Errorf("Expected DOT output in %s, got: %s", dir, data)
		}
	}
}

func TestRunCustomOutputPath(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "main.tf", `resource "aws_instance" "web" {}`)

	out := filepath.Join(t.TempDir(), "graph.json")
	cfg := config.DefaultConfig()
	cfg.Root = root
	cfg.Format = "json"
	cfg.Output = out

	if err := Run(cfg); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("Expected output at %s: %v", out, err)
	}
}

func TestRunMalformedFileDegradesToLexical(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "main.tf", `
resource "aws_instance" "web" {
  tags = { unterminated
}
`)

	cfg := config.DefaultConfig()
	cfg.Root = root
	cfg.Format = "json"

	if err := Run(cfg); err != nil {
		t.Fatalf("Run must not fail on malformed input: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "architecture.json"))
	if err != nil {
		t.Fatalf("Expected architecture.json: %v", err)
	}
	var g graph.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(g.Nodes) != 1 || g.Nodes[0].Category != "compute" {
		t.Errorf("Expected lexically recovered compute node, got %+v", g.Nodes)
	}
}

func TestRunEmptyConfigurationFiles(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "main.tf", "")

	cfg := config.DefaultConfig()
	cfg.Root = root
	cfg.Format = "json"

	if err := Run(cfg); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "architecture.json"))
	if err != nil {
		t.Fatalf("Expected architecture.json: %v", err)
	}
	var g graph.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	// An empty inventory still yields a placeholder graph, never an empty one.
	if len(g.Nodes) != 1 || len(g.Edges) != 0 {
		t.Errorf("Expected single placeholder node, got %+v", g)
	}
}

func TestRunNoConfigurationFiles(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Root = t.TempDir()

	if err := Run(cfg); err != nil {
		t.Errorf("Run must not fail on a tree without configuration files: %v", err)
	}
}

func TestRunUnknownFormat(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "main.tf", `resource "aws_instance" "web" {}`)

	cfg := config.DefaultConfig()
	cfg.Root = root
	cfg.Format = "svg"

	if err := Run(cfg); err == nil {
		t.Error("Expected error for unknown format, got nil")
	}
}
