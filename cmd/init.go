package cmd

import (
	"crypto/rand"
	"fmt"
	"os"

	"terraform-archviz/internal/config"
	"terraform-archviz/internal/docker"
	"terraform-archviz/internal/gitrepo"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize terraform-archviz configuration",
	Long: `Initialize terraform-archviz configuration and settings.

Creates a .terraform-archviz.yaml configuration file in the current directory
with default values and a randomly generated Neo4j password. Also creates the
neo4j-data directory for Docker volume mounting.

The configuration file will be created with the following default values:
  - format: dot
  - title: Terraform Architecture
  - topology.max_per_category: 4
  - neo4j.uri: bolt://localhost:7687
  - neo4j.user: neo4j
  - neo4j.password: (randomly generated)
  - neo4j.docker_image: neo4j:community

Example:
  terraform-archviz init`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := fmt.Sprintf("%s.%s", config.ConfigFileName, config.ConfigFileType)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	cfg := config.DefaultConfig()

	password, err := generateRandomPassword(16)
	if err != nil {
		return fmt.Errorf("failed to generate random password: %w", err)
	}
	cfg.Neo4j.Password = password

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	if err := os.MkdirAll(docker.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", docker.DataDir, err)
	}

	fmt.Printf("✓ Created configuration file: %s\n\n", configPath)
	fmt.Println("Default configuration:")
	fmt.Printf("  format: %s\n", cfg.Format)
	fmt.Printf("  title: %s\n", cfg.Title)
	fmt.Printf("  topology.max_per_category: %d\n", cfg.Topology.MaxPerCategory)
	fmt.Printf("  neo4j.uri: %s\n", cfg.Neo4j.URI)
	fmt.Printf("  neo4j.user: %s\n", cfg.Neo4j.User)
	fmt.Printf("  neo4j.password: %s\n", cfg.Neo4j.Password)
	fmt.Printf("  neo4j.docker_image: %s\n\n", cfg.Neo4j.DockerImage)
	fmt.Printf("✓ Created data directory: %s\n", docker.DataDir)

	// Attempt to update .gitignore
	entries := []string{configPath, docker.DataDir + "/"}
	if err := gitrepo.UpdateGitignore(entries); err != nil {
		// If gitignore update fails, print a warning but don't fail the command
		fmt.Fprintf(os.Stderr, "Warning: failed to update .gitignore: %v\n", err)
		fmt.Printf("Please manually add '%s' and '%s/' to your .gitignore file.\n", configPath, docker.DataDir)
	}

	return nil
}

// generateRandomPassword generates a random alphanumeric password of the specified length
func generateRandomPassword(length int) (string, error) {
	// Use only alphanumeric characters to avoid issues with special characters in Neo4j auth string
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	for i := range bytes {
		bytes[i] = charset[int(bytes[i])%len(charset)]
	}
	return string(bytes), nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
