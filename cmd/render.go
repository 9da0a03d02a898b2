package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"terraform-modviz/internal/config"
	"terraform-modviz/internal/runner"
)

var renderCmd = &cobra.Command{
	Use:   "render [graph_file...]",
	Short: "Render terraform graph dumps as a module-clustered digraph",
	Long: `terraform-modviz render reads one or more 'terraform graph' dumps and
writes a single digraph to stdout in which each input becomes a cluster,
with module scopes nested inside it and resource labels color-coded by
category. With no files it invokes 'terraform graph' in the current
directory.

Examples:
  # Render two saved dumps into one picture
  terraform-modviz render staging.gv production.gv | dot -Tsvg > infra.svg

  # Render the current module directly
  terraform-modviz render | dot -Tpng > infra.png

  # Emit the parsed tree as JSON instead
  terraform-modviz render --format=json staging.gv`,
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadAndMerge(cmd, args)
	if err != nil {
		return err
	}
	return runner.Render(cfg, logger, os.Stdout)
}

func init() {
	rootCmd.AddCommand(renderCmd)
	registerRenderFlags(renderCmd)
}

func registerRenderFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", config.FormatDot, "Output format for the graph (dot, json)")
	cmd.Flags().String("dangling", "", "Policy for edges referencing undeclared nodes (warn, ignore)")
	cmd.Flags().String("tag-filter", "", "Default-tags noise filter (edges, all)")
}
