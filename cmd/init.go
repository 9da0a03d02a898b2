package cmd

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"terraform-modviz/internal/config"
	"terraform-modviz/internal/docker"
	"terraform-modviz/internal/git"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize terraform-modviz configuration",
	Long: `Initialize terraform-modviz configuration and settings.

Creates a .terraform-modviz.yaml configuration file in the current
directory with default values and a randomly generated Neo4j password,
and creates the neo4j-data directory for Docker volume mounting.

The configuration file will be created with the following default values:
  - neo4j.uri: bolt://localhost:7687
  - neo4j.user: neo4j
  - neo4j.password: (randomly generated)
  - neo4j.docker_image: neo4j:community
  - filter.tags: edges
  - graph.dangling: warn

Example:
  terraform-modviz init`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := fmt.Sprintf("%s.%s", config.ConfigFileName, config.ConfigFileType)

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
	fmt.Printf("  neo4j.uri: %s\n", cfg.Neo4j.URI)
	fmt.Printf("  neo4j.user: %s\n", cfg.Neo4j.User)
	fmt.Printf("  neo4j.password: %s\n", cfg.Neo4j.Password)
	fmt.Printf("  neo4j.docker_image: %s\n", cfg.Neo4j.DockerImage)
	fmt.Printf("  filter.tags: %s\n", cfg.Filter.Tags)
	fmt.Printf("  graph.dangling: %s\n\n", cfg.Graph.Dangling)
	fmt.Printf("✓ Created data directory: %s\n", docker.DataDir)

	entries := []string{configPath, docker.DataDir + "/"}
	if err := git.UpdateGitignore(entries); err != nil {
		// Not fatal; the config was written.
		fmt.Fprintf(os.Stderr, "Warning: failed to update .gitignore: %v\n", err)
		fmt.Printf("Please manually add '%s' and '%s/' to your .gitignore file.\n", configPath, docker.DataDir)
	}
	return nil
}

// generateRandomPassword generates a random alphanumeric password.
// Alphanumeric only, to avoid special-character issues in the Neo4j
// auth string.
func generateRandomPassword(length int) (string, error) {
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
