// Package runner orchestrates the render and update workflows: reading
// graph dumps, building scope trees, applying the dangling-edge policy
// and handing the result to a formatter or the Neo4j client.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"

	"terraform-modviz/internal/config"
	"terraform-modviz/internal/formatter"
	"terraform-modviz/internal/graph"
	"terraform-modviz/internal/neo4j"
	"terraform-modviz/internal/parser"
)

// Render parses every configured graph dump and writes the result to w
// in the configured format.
func Render(cfg *config.Config, logger *log.Logger, w io.Writer) error {
	trees, err := Load(cfg, logger)
	if err != nil {
		return err
	}

	switch cfg.Format {
	case config.FormatJSON:
		out, err := formatter.ToJSON(trees)
		if err != nil {
			return fmt.Errorf("failed to render JSON: %w", err)
		}
		fmt.Fprintln(w, out)
	case config.FormatDot, "":
		f := formatter.NewDotFormatter(cfg.Graph.Colors)
		fmt.Fprint(w, f.ToDot(trees))
	default:
		return fmt.Errorf("unknown output format %q", cfg.Format)
	}
	return nil
}

// Update pushes parsed trees into the configured Neo4j database.
func Update(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	if err := validateNeo4jConfig(&cfg.Neo4j); err != nil {
		return err
	}

	trees, err := Load(cfg, logger)
	if err != nil {
		return err
	}

	logger.Infof("Connecting to Neo4j at %s...", cfg.Neo4j.URI)
	client, err := neo4j.NewClient(cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password)
	if err != nil {
		return fmt.Errorf("failed to create neo4j client: %w", err)
	}
	defer client.Close(ctx)

	if err := client.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("failed to connect to neo4j: %w", err)
	}

	logger.Info("Updating Neo4j database...")
	if err := client.Sync(ctx, trees); err != nil {
		return fmt.Errorf("failed to update neo4j graph: %w", err)
	}

	logger.Info("Successfully updated Neo4j database.")
	return nil
}

// Load builds one scope tree per input graph. With no files configured
// it invokes `terraform graph` in the working directory and treats the
// output as a single graph named after that directory.
func Load(cfg *config.Config, logger *log.Logger) ([]*graph.Tree, error) {
	opts := parser.Options{Filter: parser.NewFilter(cfg.Filter.Tags)}

	var trees []*graph.Tree
	if len(cfg.Files) == 0 {
		logger.Debug("no graph files given, invoking terraform graph")
		tree, err := parseCurrentModule(opts)
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	} else {
		for _, path := range cfg.Files {
			logger.Debugf("parsing %s", path)
			tree, err := parser.ParseFile(path, opts)
			if err != nil {
				return nil, err
			}
			trees = append(trees, tree)
		}
	}

	if cfg.Graph.Dangling != config.DanglingIgnore {
		for _, t := range trees {
			for _, name := range t.Dangling() {
				logger.Warnf("%s: edge references undeclared node %q", t.Root.Name, name)
			}
		}
	}
	return trees, nil
}

// parseCurrentModule runs `terraform graph` and parses its output.
func parseCurrentModule(opts parser.Options) (*graph.Tree, error) {
	out, err := exec.Command("terraform", "graph").CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("terraform graph command failed: %w - %s", err, string(out))
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}

	tree, err := parser.ParseDump(filepath.Base(wd), out, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse terraform graph output: %w", err)
	}
	return tree, nil
}

func validateNeo4jConfig(cfg *config.Neo4jConfig) error {
	if cfg.URI == "" || cfg.User == "" || cfg.Password == "" {
		return fmt.Errorf("neo4j-uri, neo4j-user, and neo4j-pass are required for the update command. Please configure them in .terraform-modviz.yaml or pass them as flags")
	}
	return nil
}
