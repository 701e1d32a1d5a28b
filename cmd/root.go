package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "terraform-archviz [command]",
	Short: "Generate architecture diagrams from Terraform configuration",
	Long: `terraform-archviz is a CLI tool that parses Terraform configuration files,
classifies the declared resources into functional categories, and synthesizes
a layered architecture diagram exported as DOT, PNG, JSON, or into Neo4j.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
