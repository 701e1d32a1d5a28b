package runner

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"terraform-archviz/internal/classify"
	"terraform-archviz/internal/config"
	"terraform-archviz/internal/extract"
	"terraform-archviz/internal/graph"
	"terraform-archviz/internal/neo4j"
	"terraform-archviz/internal/render"
	"terraform-archviz/internal/scan"
	"terraform-archviz/internal/topology"
)

// Run executes the draw workflow: discover configuration directories under
// cfg.Root and write one architecture diagram per directory.
func Run(cfg *config.Config) error {
	units, err := scan.Discover(cfg.Root)
	if err != nil {
		return fmt.Errorf("failed to discover configuration files: %w", err)
	}
	if len(units) == 0 {
		log.Printf("No Terraform configuration files found in %s", cfg.Root)
		return nil
	}
	log.Printf("Found %d configuration directories under %s", len(units), cfg.Root)

	classifier := classify.NewClassifier()
	synth := topology.NewSynthesizer(cfg.Topology.MaxPerCategory)

	for _, unit := range units {
		g, inv := synthesizeUnit(unit, classifier, synth)
		logSummary(unit.Dir, inv)

		if err := writeOutput(g, unit, cfg, len(units) == 1); err != nil {
			return err
		}
	}

	return nil
}

// RunExport synthesizes one graph for the whole root and pushes it to Neo4j.
func RunExport(cfg *config.Config) error {
	if err := validateNeo4jConfig(&cfg.Neo4j); err != nil {
		return err
	}

	units, err := scan.Discover(cfg.Root)
	if err != nil {
		return fmt.Errorf("failed to discover configuration files: %w", err)
	}

	classifier := classify.NewClassifier()
	synth := topology.NewSynthesizer(cfg.Topology.MaxPerCategory)

	// One deployment: every directory's inventory accumulates additively.
	merged := make(extract.Inventory)
	for _, unit := range units {
		merged.Merge(extract.ParseFiles(readSources(unit)))
	}
	logSummary(cfg.Root, merged)

	g := synth.Synthesize(classifier.Categorize(merged))

	log.Printf("Connecting to Neo4j at %s...", cfg.Neo4j.URI)
	ctx := context.Background()

	client, err := neo4j.NewClient(cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password)
	if err != nil {
		return fmt.Errorf("failed to create neo4j client: %w", err)
	}
	defer client.Close(ctx)

	if err := client.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("failed to connect to neo4j: %w", err)
	}

	log.Println("Updating Neo4j database...")
	if err := client.UpdateGraph(ctx, g); err != nil {
		return fmt.Errorf("failed to update neo4j graph: %w", err)
	}

	log.Println("Successfully updated Neo4j database.")
	return nil
}

// synthesizeUnit runs the core pipeline for one configuration directory.
func synthesizeUnit(unit scan.Unit, classifier *classify.Classifier, synth *topology.Synthesizer) (*graph.Graph, extract.Inventory) {
	inv := extract.ParseFiles(readSources(unit))
	return synth.Synthesize(classifier.Categorize(inv)), inv
}

// readSources reads a unit's files. A file that cannot be read is reported
// and skipped; one bad file never aborts the batch.
func readSources(unit scan.Unit) []extract.Source {
	sources := make([]extract.Source, 0, len(unit.Files))
	for _, path := range unit.Files {
		content, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Warning: failed to read %s: %v", path, err)
			continue
		}
		sources = append(sources, extract.Source{Path: path, Content: content})
	}
	return sources
}

func logSummary(dir string, inv extract.Inventory) {
	types := inv.Types()
	log.Printf("%s: %d resources across %d types", dir, inv.Len(), len(types))
	for _, t := range types {
		log.Printf("  - %d %s", len(inv[t]), t)
	}
}

// writeOutput renders the graph in the configured format. PNG rendering is
// best-effort: when the dot binary fails the DOT text is kept so the run
// still produces a usable artifact.
func writeOutput(g *graph.Graph, unit scan.Unit, cfg *config.Config, single bool) error {
	title := cfg.Title
	if !single {
		title = fmt.Sprintf("%s - %s", cfg.Title, unit.Dir)
	}

	switch cfg.Format {
	case "json":
		out, err := render.ToJSON(g)
		if err != nil {
			return fmt.Errorf("failed to render JSON: %w", err)
		}
		return writeFile(outputPath(unit, cfg, single, "architecture.json"), out)

	case "dot":
		out, err := render.ToDOT(g, title)
		if err != nil {
			return fmt.Errorf("failed to render DOT: %w", err)
		}
		return writeFile(outputPath(unit, cfg, single, "architecture.dot"), out)

	case "png":
		dot, err := render.ToDOT(g, title)
		if err != nil {
			return fmt.Errorf("failed to render DOT: %w", err)
		}
		pngPath := outputPath(unit, cfg, single, "architecture.png")
		if err := render.WritePNG(dot, pngPath); err != nil {
			log.Printf("Warning: PNG rendering failed (%v), writing DOT instead", err)
			return writeFile(outputPath(unit, cfg, single, "architecture.dot"), dot)
		}
		log.Printf("Wrote %s", pngPath)
		return nil

	default:
		return fmt.Errorf("unknown output format %q (want dot, json, or png)", cfg.Format)
	}
}

func outputPath(unit scan.Unit, cfg *config.Config, single bool, name string) string {
	if single && cfg.Output != "" {
		return cfg.Output
	}
	return filepath.Join(unit.Dir, name)
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Printf("Wrote %s", path)
	return nil
}

func validateNeo4jConfig(cfg *config.Neo4jConfig) error {
	if cfg.URI == "" || cfg.User == "" || cfg.Password == "" {
		return fmt.Errorf("neo4j-uri, neo4j-user, and neo4j-pass are required when exporting. Please configure them in .terraform-archviz.yaml or pass them as flags")
	}
	return nil
}
