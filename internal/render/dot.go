package render

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/awalterschulze/gographviz"

	"terraform-archviz/internal/graph"
)

const graphName = "architecture"

// dot executable used for raster output. The pipeline never depends on it
// being installed; PNG rendering is best-effort.
const dotCmd = "dot"

// ToDOT converts an architecture graph to DOT text, top-to-bottom layout.
func ToDOT(g *graph.Graph, title string) (string, error) {
	gv := gographviz.NewGraph()
	if err := gv.SetName(graphName); err != nil {
		return "", fmt.Errorf("failed to name graph: %w", err)
	}
	if err := gv.SetDir(true); err != nil {
		return "", fmt.Errorf("failed to set graph direction: %w", err)
	}
	if err := gv.AddAttr(graphName, "rankdir", "TB"); err != nil {
		return "", fmt.Errorf("failed to set rankdir: %w", err)
	}
	if title != "" {
		if err := gv.AddAttr(graphName, "label", strconv.Quote(title)); err != nil {
			return "", fmt.Errorf("failed to set title: %w", err)
		}
	}

	for _, node := range g.Nodes {
		attrs := map[string]string{
			"label": strconv.Quote(node.Label),
			"shape": "box",
		}
		if err := gv.AddNode(graphName, strconv.Quote(node.ID), attrs); err != nil {
			return "", fmt.Errorf("failed to add node %s: %w", node.ID, err)
		}
	}

	for _, edge := range g.Edges {
		if err := gv.AddEdge(strconv.Quote(edge.From), strconv.Quote(edge.To), true, nil); err != nil {
			return "", fmt.Errorf("failed to add edge %s -> %s: %w", edge.From, edge.To, err)
		}
	}

	return gv.String(), nil
}

// WritePNG renders DOT text to a PNG file using the Graphviz dot binary.
func WritePNG(dot string, path string) error {
	cmd := exec.Command(dotCmd, "-Tpng", "-o", path)
	cmd.Stdin = strings.NewReader(dot)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("dot command failed: %w - %s", err, string(output))
	}
	return nil
}

// CheckRenderer verifies that the Graphviz dot binary is available.
func CheckRenderer() error {
	if _, err := exec.LookPath(dotCmd); err != nil {
		return fmt.Errorf("graphviz '%s' not found in PATH: %w", dotCmd, err)
	}
	return nil
}
