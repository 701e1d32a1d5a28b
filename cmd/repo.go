package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"terraform-archviz/internal/config"
	"terraform-archviz/internal/gitrepo"
	"terraform-archviz/internal/runner"

	"github.com/spf13/cobra"
)

var repoCmd = &cobra.Command{
	Use:   "repo <url>",
	Short: "Clone a Git repository and diagram its Terraform configuration",
	Long: `terraform-archviz repo clones (or updates) a Git repository and then runs
the draw workflow over the checkout, producing one architecture diagram per
configuration directory it contains.

Examples:
  terraform-archviz repo https://github.com/sidpalas/devops-directive-terraform-course.git

  # Choose the checkout location and PNG output
  terraform-archviz repo https://example.com/infra.git --dir=./infra --format=png`,
	Args: cobra.ExactArgs(1),
	RunE: runRepo,
}

func runRepo(cmd *cobra.Command, args []string) error {
	url := args[0]

	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = checkoutDir(url)
	}

	if err := gitrepo.CloneOrUpdate(url, dir); err != nil {
		return fmt.Errorf("failed to acquire repository: %w", err)
	}

	cfg, err := config.LoadAndMerge(cmd, nil)
	if err != nil {
		return err
	}
	cfg.Root = dir

	return runner.Run(cfg)
}

// checkoutDir derives a local directory name from the repository URL.
func checkoutDir(url string) string {
	base := filepath.Base(strings.TrimSuffix(url, "/"))
	return strings.TrimSuffix(base, ".git")
}

func init() {
	rootCmd.AddCommand(repoCmd)
	repoCmd.Flags().String("dir", "", "Directory to clone into (defaults to the repository name)")
	registerDrawFlags(repoCmd)
}
