package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terraform-modviz/internal/graph"
)

func TestParseScenario(t *testing.T) {
	lines := []string{
		`"[root] aws_s3_bucket.bucket" [label = "aws_s3_bucket.bucket", shape = "box"]`,
		`"[root] module.net.aws_vpc.main" [label = "module.net.aws_vpc.main", shape = "box"]`,
		`"[root] aws_s3_bucket.bucket" -> "[root] module.net.aws_vpc.main"`,
	}

	tree, err := Parse("web", lines, Options{})
	require.NoError(t, err)

	require.Len(t, tree.Root.Nodes, 1)
	bucket := tree.Root.Nodes[0]
	assert.Equal(t, "aws_s3_bucket.bucket", bucket.Name)
	assert.Equal(t, "s3_bucket", bucket.ResourceType)
	assert.Equal(t, "bucket", bucket.Key)

	require.Len(t, tree.Root.Children, 1)
	net := tree.Root.Children[0]
	assert.Equal(t, "web:net", net.Name)
	assert.Equal(t, "net", net.Label)
	require.Len(t, net.Nodes, 1)
	assert.Equal(t, "vpc", net.Nodes[0].ResourceType)
	assert.Equal(t, "main", net.Nodes[0].Key)

	require.Len(t, tree.Root.Edges, 1)
	assert.Equal(t, graph.Edge{
		From: "aws_s3_bucket.bucket",
		To:   "module.net.aws_vpc.main",
	}, tree.Root.Edges[0])
	assert.Empty(t, net.Edges)
}

func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		name  string
		ident string
		label string
		want  graph.Kind
	}{
		{"variable wins over resource shape", "var.region", `"var.region"`, graph.KindVariable},
		{"provider", "provider.aws", `"provider.aws"`, graph.KindProvider},
		{"output", "output.bucket_arn", `"output.bucket_arn"`, graph.KindOutput},
		{"resource", "aws_s3_bucket.assets", `"aws_s3_bucket.assets"`, graph.KindResource},
		{"data source is a resource", "data.aws_ami.ubuntu", `"data.aws_ami.ubuntu"`, graph.KindResource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := classify(tt.ident, tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestClassifyRejectsUnknownKind(t *testing.T) {
	_, err := classify("something", `"nodotshere"`)
	assert.Error(t, err)
}

func TestResourceLabelParsing(t *testing.T) {
	n, err := buildNode("aws_s3_bucket.my_bucket", `"aws_s3_bucket.my_bucket"`, nil)
	require.NoError(t, err)
	assert.Equal(t, "s3_bucket", n.ResourceType)
	assert.Equal(t, "my_bucket", n.Key)
	assert.False(t, n.IsData)
	assert.Empty(t, n.ModuleName)
}

func TestDataResourceDetection(t *testing.T) {
	n, err := buildNode("data.aws_vpc.main", `"data.aws_vpc.main"`, nil)
	require.NoError(t, err)
	assert.Equal(t, "vpc", n.ResourceType)
	assert.Equal(t, "main", n.Key)
	assert.True(t, n.IsData)
}

func TestResourceModuleNameFromLabel(t *testing.T) {
	// A four-component label records the module name; placement is still
	// driven by the identifier, which has no prefix here.
	n, err := buildNode("aws_vpc.main", `"module.net.aws_vpc.main"`, nil)
	require.NoError(t, err)
	assert.Equal(t, "net", n.ModuleName)
	assert.Equal(t, "vpc", n.ResourceType)
	assert.Equal(t, "main", n.Key)
	assert.False(t, n.IsData)
}

func TestParseAttrsKeepsOrderAndPromotesLabel(t *testing.T) {
	label, attrs, err := parseAttrs(`label = "aws_s3_bucket.b", shape = "box", style = "rounded"`)
	require.NoError(t, err)
	assert.Equal(t, `"aws_s3_bucket.b"`, label)
	assert.Equal(t, []graph.Attr{
		{Key: "shape", Value: `"box"`},
		{Key: "style", Value: `"rounded"`},
	}, attrs)
}

func TestParseMalformedAttributesIsFatal(t *testing.T) {
	lines := []string{
		`"[root] aws_s3_bucket.b" [label = "aws_s3_bucket.b", shape]`,
	}
	_, err := Parse("web", lines, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shape")
}

func TestParseMissingLabelIsFatal(t *testing.T) {
	lines := []string{
		`"[root] aws_s3_bucket.b" [shape = "box"]`,
	}
	_, err := Parse("web", lines, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "label")
}

func TestParseUnclassifiableNodeIsFatal(t *testing.T) {
	lines := []string{
		`"[root] something" [label = "nodotshere", shape = "box"]`,
	}
	_, err := Parse("web", lines, Options{})
	require.Error(t, err)
}

func TestParseIgnoresInertLines(t *testing.T) {
	lines := []string{
		`rankdir = "LR"`,
		``,
		`"[root] aws_s3_bucket.b" [label = "aws_s3_bucket.b", shape = "box"]`,
	}
	tree, err := Parse("web", lines, Options{})
	require.NoError(t, err)
	assert.Len(t, tree.Root.Nodes, 1)
}

func TestParseFile(t *testing.T) {
	tree, err := ParseFile("testdata/web.gv", Options{})
	require.NoError(t, err)

	// Root scope is named after the file, extension stripped.
	assert.Equal(t, "web", tree.Root.Name)

	// Preamble, postamble and the filtered bookkeeping lines are gone:
	// the close sentinel, the count-boundary fixup, the provider and
	// default_tags edges and the synthetic root edge.
	var names []string
	for _, n := range tree.Root.Nodes {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{
		"aws_s3_bucket.assets",
		"aws_instance.app",
		"data.aws_ami.ubuntu",
		"var.region",
		"provider.aws",
	}, names)

	require.Len(t, tree.Root.Children, 1)
	assert.Len(t, tree.Root.Children[0].Nodes, 2)
	assert.Len(t, tree.Root.Edges, 4)

	// Every surviving edge endpoint has a declared node.
	assert.Empty(t, tree.Dangling())
}
