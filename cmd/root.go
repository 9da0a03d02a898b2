package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var verbose bool

// logger is shared by every command; --verbose drops it to debug level.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05.00",
	Level:           log.InfoLevel,
})

var rootCmd = &cobra.Command{
	Use:   "terraform-modviz [command]",
	Short: "Re-render terraform graph output with module clusters",
	Long: `terraform-modviz rewrites the DOT dump produced by 'terraform graph'
into a cleaned digraph in which resources are nested inside subgraph
clusters mirroring the module hierarchy, with labels color-coded by
resource category. The result can also be exported as JSON or pushed to
a Neo4j database.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
