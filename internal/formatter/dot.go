// Package formatter renders parsed scope trees into output formats:
// annotated DOT for the graphviz layout engine, JSON, and Cypher for
// the Neo4j export.
package formatter

import (
	"fmt"
	"strings"

	"terraform-modviz/internal/graph"
)

// digraphHeader carries the global style attributes of the emitted
// digraph. The layout direction and fonts match what the clusters are
// tuned for.
const digraphHeader = `digraph root {
	compound = "true";
	splines = "true";
	graph[style = solid, fontname = "helvetica", fontsize = 12, rankdir = "LR"]
	edge[arrowsize = 0.6];
	node[fontname = "helvetica", fontsize = 10]

`

// DotFormatter renders scope trees as nested cluster blocks.
type DotFormatter struct {
	colors map[string]string // per-resource-type palette overrides
}

// NewDotFormatter creates a formatter. overrides maps resource types to
// final color names and takes precedence over the built-in palette; nil
// means no overrides.
func NewDotFormatter(overrides map[string]string) *DotFormatter {
	return &DotFormatter{colors: overrides}
}

// ToDot renders every tree as one cluster inside the digraph wrapper.
func (f *DotFormatter) ToDot(trees []*graph.Tree) string {
	var sb strings.Builder
	sb.WriteString(digraphHeader)
	for _, t := range trees {
		sb.WriteString(f.Cluster(t))
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

// Cluster renders one tree's root scope as a nested cluster block:
// label line first, then child clusters, nodes and edges in that fixed
// order, blank lines between the sections.
func (f *DotFormatter) Cluster(t *graph.Tree) string {
	var sb strings.Builder
	f.writeScope(&sb, t.Root, 0)
	return sb.String()
}

func (f *DotFormatter) writeScope(sb *strings.Builder, s *graph.Scope, depth int) {
	indent := strings.Repeat("\t", depth)
	label := s.Label
	if label == "" {
		label = s.Name
	}

	fmt.Fprintf(sb, "%ssubgraph \"cluster_%s\" {\n", indent, s.Name)
	fmt.Fprintf(sb, "%s\tlabel = \"%s\";\n", indent, label)

	for _, child := range s.Children {
		sb.WriteString("\n")
		f.writeScope(sb, child, depth+1)
	}

	if len(s.Nodes) > 0 {
		sb.WriteString("\n")
		for _, n := range s.Nodes {
			fmt.Fprintf(sb, "%s\t%s\n", indent, f.node(s, n))
		}
	}

	if len(s.Edges) > 0 {
		sb.WriteString("\n")
		for _, e := range s.Edges {
			// Both endpoints carry the declaring scope's name, not the
			// scope of the node they reference: cross-scope edges must
			// stay in the common ancestor's coordinate space.
			fmt.Fprintf(sb, "%s\t\"[%s] %s\":e -> \"[%s] %s\":w\n",
				indent, s.Name, e.From, s.Name, e.To)
		}
	}

	fmt.Fprintf(sb, "%s}\n", indent)
}

// node renders a single node statement: scope-qualified identifier,
// then the rendered label followed by the remaining attributes in their
// input order.
func (f *DotFormatter) node(s *graph.Scope, n *graph.Node) string {
	parts := make([]string, 0, len(n.Attrs)+1)
	parts = append(parts, "label="+f.label(n))
	for _, a := range n.Attrs {
		parts = append(parts, a.Key+"="+a.Value)
	}
	return fmt.Sprintf("\"[%s] %s\" [%s]", s.Name, n.Name, strings.Join(parts, ","))
}

// label picks the rendered label. Resources get a two-row table: type
// on top, colored by category and prefixed with a muted marker for data
// sources; key below, unstyled. Every other variant keeps its raw
// label.
func (f *DotFormatter) label(n *graph.Node) string {
	if n.Kind != graph.KindResource {
		return n.Label
	}

	marker := ""
	if n.IsData {
		marker = `<font color="gray40" point-size="9">data.</font>`
	}
	return fmt.Sprintf(`<<table border="0">`+
		`<tr><td>%s<font color=%q point-size="9">%s</font></td></tr>`+
		`<tr><td>%s</td></tr>`+
		`</table>>`,
		marker, f.color(n.ResourceType), n.ResourceType, n.Key)
}

// color resolves the label color for a resource type: overrides first,
// then the built-in palette, then the neutral default.
func (f *DotFormatter) color(resourceType string) string {
	if c, ok := f.colors[resourceType]; ok {
		return c
	}
	if c, ok := palette[resourceType]; ok {
		return c.String()
	}
	return defaultColor
}
