package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/awalterschulze/gographviz"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terraform-modviz/internal/config"
	"terraform-modviz/internal/runner"
)

// TestRenderPipeline runs the full render path over a recorded
// terraform graph dump and re-parses the emitted DOT.
func TestRenderPipeline(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Files = []string{"internal/parser/testdata/web.gv"}
	cfg.Graph.Dangling = config.DanglingIgnore
	logger := log.New(io.Discard)

	var buf bytes.Buffer
	require.NoError(t, runner.Render(cfg, logger, &buf))
	out := buf.String()

	// The emitted digraph must survive a round-trip through a DOT
	// parser, or the layout engine would reject it too.
	graphAst, err := gographviz.ParseString(out)
	require.NoError(t, err, "rendered output is not valid DOT:\n%s", out)

	g := gographviz.NewGraph()
	require.NoError(t, gographviz.Analyse(graphAst, g))

	// Quoted names keep their quotes in the gographviz AST; match on
	// content instead of exact keys.
	var clusters []string
	for name := range g.SubGraphs.SubGraphs {
		clusters = append(clusters, name)
	}
	assert.Condition(t, func() bool {
		return containsMatch(clusters, "cluster_web") && containsMatch(clusters, "cluster_web:net")
	}, "expected cluster_web and cluster_web:net in %v", clusters)

	// Bookkeeping noise must not survive the filter.
	assert.NotContains(t, out, "(close)")
	assert.NotContains(t, out, "meta.count-boundary")
	assert.NotContains(t, out, "default_tags")

	// Module resources render under their module scope, colored by
	// category; the data source carries its muted marker.
	assert.Contains(t, out, `"[web:net] module.net.aws_vpc.main"`)
	assert.Contains(t, out, `<font color="dodgerblue4" point-size="9">vpc</font>`)
	assert.Contains(t, out, `<font color="gray40" point-size="9">data.</font>`)
}

func containsMatch(names []string, substr string) bool {
	for _, name := range names {
		if strings.Contains(name, substr) {
			return true
		}
	}
	return false
}

// TestRenderPipelineJSON covers the alternate output format.
func TestRenderPipelineJSON(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Files = []string{"internal/parser/testdata/web.gv"}
	cfg.Graph.Dangling = config.DanglingIgnore
	cfg.Format = config.FormatJSON

	var buf bytes.Buffer
	require.NoError(t, runner.Render(cfg, log.New(io.Discard), &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "["))
	assert.Contains(t, out, `"name": "web"`)
	assert.Contains(t, out, `"label": "net"`)
	assert.Contains(t, out, `"resource_type": "vpc"`)
}
