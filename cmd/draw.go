package cmd

import (
	"terraform-archviz/internal/config"
	"terraform-archviz/internal/runner"

	"github.com/spf13/cobra"
)

var drawCmd = &cobra.Command{
	Use:   "draw [directory]",
	Short: "Generate architecture diagrams from Terraform configuration files",
	Long: `terraform-archviz draw scans a directory tree for Terraform configuration
files, extracts the declared resources (falling back to lexical recovery when a
file does not parse), classifies them into functional categories, and writes one
layered architecture diagram per configuration directory.

Examples:
  # Diagram the current directory as DOT
  terraform-archviz draw

  # Diagram a repository checkout as PNG (requires Graphviz)
  terraform-archviz draw ~/src/infra --format=png

  # Emit the graph model as JSON to a chosen file
  terraform-archviz draw ./deploy --format=json --output=graph.json`,
	RunE: runDraw,
}

func runDraw(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadAndMerge(cmd, args)
	if err != nil {
		return err
	}

	return runner.Run(cfg)
}

func init() {
	rootCmd.AddCommand(drawCmd)
	registerDrawFlags(drawCmd)
}

func registerDrawFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "dot", "Output format for the diagram (dot, json, png)")
	cmd.Flags().String("output", "", "Output file path (single-directory runs only)")
	cmd.Flags().String("title", "Terraform Architecture", "Diagram title")
	cmd.Flags().Int("max-per-category", 4, "Resources shown individually per category before collapsing into a summary node")
}
