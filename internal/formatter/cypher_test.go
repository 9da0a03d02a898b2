package formatter

import (
	"strings"
	"testing"

	"terraform-modviz/internal/graph"
)

func TestToCypherTransaction(t *testing.T) {
	tree := graph.NewTree("web")
	tree.AddNode(&graph.Node{Name: "aws_s3_bucket.assets", Kind: graph.KindResource, ResourceType: "s3_bucket", Key: "assets"})
	tree.AddNode(&graph.Node{Name: "module.net.aws_vpc.main", Kind: graph.KindResource, ResourceType: "vpc", Key: "main"})
	tree.AddEdge("aws_s3_bucket.assets", "module.net.aws_vpc.main")

	query, params := ToCypherTransaction([]*graph.Tree{tree})

	for _, want := range []string{
		"UNWIND $modules AS module_data",
		"MERGE (m:Module {id: module_data.id})",
		"UNWIND $nodes AS node_data",
		"MERGE (n:Resource {id: node_data.id})",
		"MERGE (owner)-[:CONTAINS]->(n)",
		"UNWIND $contains AS contain_data",
		"MERGE (parent)-[:CONTAINS]->(child)",
		"UNWIND $edges AS edge_data",
		"MERGE (from)-[:DEPENDS_ON]->(to)",
	} {
		if !strings.Contains(query, want) {
			t.Errorf("Cypher query missing %q", want)
		}
	}

	modules, _ := params["modules"].([]map[string]interface{})
	if len(modules) != 2 {
		t.Errorf("Expected 2 modules in params, got %d", len(modules))
	}

	nodes, _ := params["nodes"].([]map[string]interface{})
	if len(nodes) != 2 {
		t.Errorf("Expected 2 nodes in params, got %d", len(nodes))
	}
	for _, n := range nodes {
		if n["id"] == "module.net.aws_vpc.main" && n["scope"] != "web:net" {
			t.Errorf("Expected nested node scope 'web:net', got %v", n["scope"])
		}
	}

	contains, _ := params["contains"].([]map[string]string)
	if len(contains) != 1 {
		t.Fatalf("Expected 1 contains entry, got %d", len(contains))
	}
	if contains[0]["parent"] != "web" || contains[0]["child"] != "web:net" {
		t.Errorf("Unexpected contains entry: %v", contains[0])
	}

	edges, _ := params["edges"].([]map[string]string)
	if len(edges) != 1 {
		t.Fatalf("Expected 1 edge in params, got %d", len(edges))
	}
	if edges[0]["from"] != "aws_s3_bucket.assets" {
		t.Errorf("Expected edge from 'aws_s3_bucket.assets', got %q", edges[0]["from"])
	}
}

func TestToCypherTransactionEmptyTree(t *testing.T) {
	query, params := ToCypherTransaction([]*graph.Tree{graph.NewTree("empty")})

	if strings.Contains(query, "$edges") {
		t.Error("Empty tree should not emit the edge batch")
	}
	if _, ok := params["edges"]; ok {
		t.Error("Parameters should not contain 'edges' for an empty tree")
	}
	modules, _ := params["modules"].([]map[string]interface{})
	if len(modules) != 1 {
		t.Errorf("Expected the root module entry, got %d", len(modules))
	}
}
