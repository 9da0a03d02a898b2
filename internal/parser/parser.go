// Package parser turns the line-oriented dump produced by `terraform
// graph` into a scope tree. Each body line is filtered, classified as
// an edge or a typed node, and placed into the scope its module path
// selects; everything else is inert.
package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"terraform-modviz/internal/graph"
)

// Options configure a parse pass.
type Options struct {
	// Filter rejects noise lines before classification. Nil selects
	// NewFilter(TagFilterEdges).
	Filter *Filter
}

// A graph dump wraps its body in a fixed preamble and postamble, both
// discarded verbatim.
const (
	preambleLines  = 4
	postambleLines = 2
)

// ParseFile reads a graph dump and builds its scope tree. The root
// scope is named after the file, extension stripped.
func ParseFile(path string, opts Options) (*graph.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	tree, err := ParseDump(name, data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// ParseDump strips the preamble and postamble from a complete graph
// dump and parses the body.
func ParseDump(name string, data []byte, opts Options) (*graph.Tree, error) {
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) < preambleLines+postambleLines {
		return nil, fmt.Errorf("not a terraform graph dump (%d lines)", len(lines))
	}
	return Parse(name, lines[preambleLines:len(lines)-postambleLines], opts)
}

// Parse runs the single construction pass over the body lines of one
// graph. A malformed attribute list or an unclassifiable node-shaped
// line aborts the pass with an error naming the offending line; there
// is no partial-success mode.
func Parse(name string, lines []string, opts Options) (*graph.Tree, error) {
	filter := opts.Filter
	if filter == nil {
		filter = NewFilter(TagFilterEdges)
	}

	tree := graph.NewTree(name)
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || !filter.Wanted(line) {
			continue
		}

		if from, to, ok := parseEdge(line); ok {
			tree.AddEdge(from, to)
			continue
		}

		m := nodeLine.FindStringSubmatch(line)
		if m == nil {
			continue // inert line
		}

		label, attrs, err := parseAttrs(m[2])
		if err != nil {
			return nil, fmt.Errorf("line %d %q: %w", i+1, line, err)
		}
		node, err := buildNode(m[1], label, attrs)
		if err != nil {
			return nil, fmt.Errorf("line %d %q: %w", i+1, line, err)
		}
		tree.AddNode(node)
	}
	return tree, nil
}
