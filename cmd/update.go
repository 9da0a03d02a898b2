package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"terraform-modviz/internal/config"
	"terraform-modviz/internal/runner"
)

var updateCmd = &cobra.Command{
	Use:   "update [graph_file...]",
	Short: "Update a Neo4j database with the module-clustered graph",
	Long: `terraform-modviz update parses the given graph dumps (or the current
module via 'terraform graph') and pushes the result to a Neo4j database:
Module nodes for every scope, Resource nodes for every declared node,
CONTAINS relationships for the hierarchy and DEPENDS_ON for the edges.`,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadAndMerge(cmd, args)
	if err != nil {
		return err
	}
	return runner.Update(context.Background(), cfg, logger)
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().String("tag-filter", "", "Default-tags noise filter (edges, all)")
	updateCmd.Flags().String("neo4j-uri", "bolt://localhost:7687", "URI for the Neo4j database")
	updateCmd.Flags().String("neo4j-user", "neo4j", "Username for the Neo4j database")
	updateCmd.Flags().String("neo4j-pass", "", "Password for the Neo4j database")
}
