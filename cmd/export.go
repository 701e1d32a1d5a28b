package cmd

import (
	"terraform-archviz/internal/config"
	"terraform-archviz/internal/runner"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [directory]",
	Short: "Export the architecture graph to a Neo4j database",
	Long: `terraform-archviz export synthesizes one architecture graph for the whole
directory tree and pushes it to a Neo4j database.

The graph is stored as components (categorized resources) and FEEDS
relationships (inferred layer-to-layer data flow), allowing you to query the
architecture alongside other infrastructure data.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadAndMerge(cmd, args)
	if err != nil {
		return err
	}

	return runner.RunExport(cfg)
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().Int("max-per-category", 4, "Resources shown individually per category before collapsing into a summary node")
	exportCmd.Flags().String("neo4j-uri", "bolt://localhost:7687", "URI for the Neo4j database")
	exportCmd.Flags().String("neo4j-user", "neo4j", "Username for the Neo4j database")
	exportCmd.Flags().String("neo4j-pass", "", "Password for the Neo4j database")
}
