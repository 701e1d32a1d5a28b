package render

import (
	"encoding/json"

	"terraform-archviz/internal/graph"
)

// ToJSON converts an architecture graph to its JSON string representation.
func ToJSON(g *graph.Graph) (string, error) {
	jsonData, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}
