package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModulePath(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		want       []string
	}{
		{"no prefix", "aws_s3_bucket.assets", nil},
		{"single level", "module.net.aws_vpc.main", []string{"net"}},
		{"two levels", "module.network.module.subnet.aws_subnet.a", []string{"network", "subnet"}},
		{"empty segment dropped", "module..module.net.aws_vpc.main", []string{"net"}},
		{"variable", "var.region", nil},
		{"module reference without trailing path", "module.net", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ModulePath(tt.identifier))
		})
	}
}

func TestResolveCreatesScopesOnce(t *testing.T) {
	tree := NewTree("web")

	first := tree.Resolve([]string{"network", "subnet"})
	require.Equal(t, 3, tree.Len(), "two new scopes plus the root")
	assert.Equal(t, "web:network:subnet", first.Name)
	assert.Equal(t, "subnet", first.Label)

	// Re-walking the same path must land in the identical scope.
	second := tree.Resolve([]string{"network", "subnet"})
	assert.Same(t, first, second)
	assert.Equal(t, 3, tree.Len())
}

func TestResolveEmptyPathIsRoot(t *testing.T) {
	tree := NewTree("web")
	assert.Same(t, tree.Root, tree.Resolve(nil))
	assert.Equal(t, 1, tree.Len())
}

func TestAddNodePreservesRootOrder(t *testing.T) {
	tree := NewTree("web")
	a := &Node{Name: "aws_s3_bucket.a", Kind: KindResource}
	b := &Node{Name: "aws_s3_bucket.b", Kind: KindResource}
	c := &Node{Name: "module.net.aws_vpc.main", Kind: KindResource}

	tree.AddNode(a)
	tree.AddNode(b)
	tree.AddNode(c)

	require.Len(t, tree.Root.Nodes, 2)
	assert.Same(t, a, tree.Root.Nodes[0])
	assert.Same(t, b, tree.Root.Nodes[1])

	require.Len(t, tree.Root.Children, 1)
	net := tree.Root.Children[0]
	assert.Equal(t, "web:net", net.Name)
	require.Len(t, net.Nodes, 1)
	assert.Same(t, c, net.Nodes[0])
}

func TestDangling(t *testing.T) {
	tree := NewTree("web")
	tree.AddNode(&Node{Name: "aws_instance.app", Kind: KindResource})
	tree.AddEdge("aws_instance.app", "aws_s3_bucket.assets")
	tree.AddEdge("aws_instance.app", "aws_s3_bucket.assets")

	assert.Equal(t, []string{"aws_s3_bucket.assets"}, tree.Dangling())
}

func TestWalkVisitsDepthFirstInCreationOrder(t *testing.T) {
	tree := NewTree("web")
	tree.Resolve([]string{"a", "inner"})
	tree.Resolve([]string{"b"})

	var visited []string
	tree.Walk(func(s *Scope) { visited = append(visited, s.Name) })
	assert.Equal(t, []string{"web", "web:a", "web:a:inner", "web:b"}, visited)
}
