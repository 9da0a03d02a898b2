package cmd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/awalterschulze/gographviz"
	"github.com/spf13/cobra"

	"terraform-modviz/internal/config"
	"terraform-modviz/internal/neo4j"
	"terraform-modviz/internal/runner"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate terraform-modviz output and connections",
	Long:  `Validate terraform-modviz rendering output and verify connections.`,
}

var checkOutputCmd = &cobra.Command{
	Use:   "output [graph_file...]",
	Short: "Verify that rendered output is valid DOT",
	Long: `Render the given graph dumps and re-parse the result with a DOT
parser. A parse failure means the emitter produced output the layout
engine would reject.

Example:
  terraform-modviz check output staging.gv`,
	RunE: runCheckOutput,
}

var checkDatabaseCmd = &cobra.Command{
	Use:   "database",
	Short: "Check Neo4j database connectivity",
	Long: `Verify that terraform-modviz can connect to the Neo4j database using
the credentials from the configuration file (.terraform-modviz.yaml).

Example:
  terraform-modviz check database`,
	RunE: runCheckDatabase,
}

func runCheckOutput(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadAndMerge(cmd, args)
	if err != nil {
		return err
	}
	cfg.Format = config.FormatDot

	var buf bytes.Buffer
	if err := runner.Render(cfg, logger, &buf); err != nil {
		return err
	}

	graphAst, err := gographviz.ParseString(buf.String())
	if err != nil {
		return fmt.Errorf("rendered output is not valid DOT: %w", err)
	}
	g := gographviz.NewGraph()
	if err := gographviz.Analyse(graphAst, g); err != nil {
		return fmt.Errorf("failed to analyse rendered output: %w", err)
	}

	fmt.Printf("✓ Rendered output is valid DOT (%d clusters)\n", len(g.SubGraphs.SubGraphs))
	return nil
}

func runCheckDatabase(cmd *cobra.Command, args []string) error {
	logger.Info("Loading configuration from .terraform-modviz.yaml...")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if !config.Exists() {
		fmt.Println("⚠ Warning: No configuration file found.")
		fmt.Println("  Run 'terraform-modviz init' to create one.")
		fmt.Println("  Using default values...")
		fmt.Println()
	}

	fmt.Println("Neo4j Connection Settings:")
	fmt.Printf("  URI:  %s\n", cfg.Neo4j.URI)
	fmt.Printf("  User: %s\n", cfg.Neo4j.User)
	fmt.Println()

	if cfg.Neo4j.Password == "" {
		return fmt.Errorf("neo4j password is not set in configuration file")
	}

	logger.Infof("Connecting to Neo4j at %s...", cfg.Neo4j.URI)
	ctx := context.Background()

	client, err := neo4j.NewClient(cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password)
	if err != nil {
		return fmt.Errorf("failed to create neo4j client: %w", err)
	}
	defer client.Close(ctx)

	logger.Info("Verifying connectivity...")
	if err := client.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("failed to connect to neo4j: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Successfully connected to Neo4j database!")
	fmt.Println("  The database is ready to use.")
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.AddCommand(checkOutputCmd)
	checkCmd.AddCommand(checkDatabaseCmd)

	checkOutputCmd.Flags().String("tag-filter", "", "Default-tags noise filter (edges, all)")
	checkOutputCmd.Flags().String("dangling", "", "Policy for edges referencing undeclared nodes (warn, ignore)")
}
