package formatter

import (
	"bytes"

	"terraform-modviz/internal/graph"
)

// ToCypherTransaction converts trees into a single parameterized query
// that upserts Module nodes for every scope, Resource nodes for every
// declared node, CONTAINS relationships for the hierarchy and
// DEPENDS_ON relationships for the edges. Parameterized UNWIND batches
// keep the query plan cacheable and make injection a non-issue.
func ToCypherTransaction(trees []*graph.Tree) (string, map[string]interface{}) {
	var query bytes.Buffer
	params := make(map[string]interface{})

	var modules []map[string]interface{}
	var nodes []map[string]interface{}
	var contains []map[string]string
	var deps []map[string]string

	for _, t := range trees {
		t.Walk(func(s *graph.Scope) {
			modules = append(modules, map[string]interface{}{
				"id":    s.Name,
				"label": s.Label,
			})
			for _, child := range s.Children {
				contains = append(contains, map[string]string{
					"parent": s.Name,
					"child":  child.Name,
				})
			}
			for _, n := range s.Nodes {
				nodes = append(nodes, map[string]interface{}{
					"id":    n.Name,
					"kind":  n.Kind.String(),
					"type":  n.ResourceType,
					"key":   n.Key,
					"data":  n.IsData,
					"scope": s.Name,
				})
			}
			for _, e := range s.Edges {
				deps = append(deps, map[string]string{
					"from": e.From,
					"to":   e.To,
				})
			}
		})
	}

	params["modules"] = modules
	query.WriteString("UNWIND $modules AS module_data\n")
	query.WriteString("MERGE (m:Module {id: module_data.id})\n")
	query.WriteString("SET m.label = module_data.label\n")

	if len(nodes) > 0 {
		params["nodes"] = nodes
		query.WriteString("WITH *\n")
		query.WriteString("UNWIND $nodes AS node_data\n")
		query.WriteString("MERGE (n:Resource {id: node_data.id})\n")
		query.WriteString("SET n.kind = node_data.kind, n.type = node_data.type, n.key = node_data.key, n.data = node_data.data\n")
		query.WriteString("WITH *\n")
		query.WriteString("MATCH (owner:Module {id: node_data.scope})\n")
		query.WriteString("MERGE (owner)-[:CONTAINS]->(n)\n")
	}

	if len(contains) > 0 {
		params["contains"] = contains
		query.WriteString("WITH *\n")
		query.WriteString("UNWIND $contains AS contain_data\n")
		query.WriteString("MATCH (parent:Module {id: contain_data.parent})\n")
		query.WriteString("MATCH (child:Module {id: contain_data.child})\n")
		query.WriteString("MERGE (parent)-[:CONTAINS]->(child)\n")
	}

	if len(deps) > 0 {
		params["edges"] = deps
		query.WriteString("WITH *\n")
		query.WriteString("UNWIND $edges AS edge_data\n")
		query.WriteString("MATCH (from:Resource {id: edge_data.from})\n")
		query.WriteString("MATCH (to:Resource {id: edge_data.to})\n")
		query.WriteString("MERGE (from)-[:DEPENDS_ON]->(to)\n")
	}

	return query.String(), params
}
