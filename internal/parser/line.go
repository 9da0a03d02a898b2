package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"terraform-modviz/internal/graph"
)

// Line shapes of a terraform graph body. Node identifiers sit inside a
// quoted "[root] ..." wrapper; attributes are a bracketed comma list.
var (
	nodeLine = regexp.MustCompile(`^"\[root\] ([^"]*)" \[([^\]]*)\]$`)
	edgeLine = regexp.MustCompile(`^"\[root\] ([^"]*)" -> "\[root\] ([^"]*)"$`)
	attrSep  = regexp.MustCompile(` *, *`)
	kvSep    = regexp.MustCompile(` *= *`)
)

const (
	labelKey   = "label"
	dataMarker = "data"
	awsPrefix  = "aws_"
)

// parseEdge extracts the endpoint identifiers of an edge line.
func parseEdge(line string) (from, to string, ok bool) {
	m := edgeLine.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// parseAttrs splits a bracketed attribute list into ordered key=value
// pairs. The mandatory label attribute is promoted out of the list and
// returned separately, quotes included.
func parseAttrs(list string) (label string, attrs []graph.Attr, err error) {
	for _, pair := range attrSep.Split(list, -1) {
		kv := kvSep.Split(pair, 2)
		if len(kv) != 2 {
			return "", nil, fmt.Errorf("attribute %q is not a key=value pair", pair)
		}
		if kv[0] == labelKey {
			label = kv[1]
			continue
		}
		attrs = append(attrs, graph.Attr{Key: kv[0], Value: kv[1]})
	}
	if label == "" {
		return "", nil, errors.New("missing mandatory label attribute")
	}
	return label, attrs, nil
}

// classify commits a name/label pair to a node variant. Matchers run
// narrowest first: a variable line also matches the broad resource
// shape, so the prefix rules must win before the dotted-path catch-all.
// A node-shaped line no matcher accepts is an error, never a silent
// drop.
func classify(name, label string) (graph.Kind, error) {
	bare := strings.Trim(label, `"`)
	switch {
	case strings.HasPrefix(name, "var."):
		return graph.KindVariable, nil
	case strings.HasPrefix(bare, "provider."):
		return graph.KindProvider, nil
	case strings.HasPrefix(bare, "output."):
		return graph.KindOutput, nil
	case strings.Contains(bare, "."):
		return graph.KindResource, nil
	}
	return graph.KindGeneric, fmt.Errorf("unsupported node kind for label %s", label)
}

// buildNode constructs the typed node for a classified node line.
func buildNode(name, label string, attrs []graph.Attr) (*graph.Node, error) {
	kind, err := classify(name, label)
	if err != nil {
		return nil, err
	}
	n := &graph.Node{Name: name, Kind: kind, Label: label, Attrs: attrs}
	if kind == graph.KindResource {
		if err := parseResource(n); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// parseResource fills the resource-only fields from the dotted label
// path. The last two components are the type and key, which tolerates
// module paths embedded in the label itself. A three-component path
// starting with the data marker flags a data source; a four-component
// path records the enclosing module name, informational only.
func parseResource(n *graph.Node) error {
	parts := strings.Split(strings.Trim(n.Label, `"`), ".")
	if len(parts) < 2 {
		return fmt.Errorf("resource label %s has no type.key path", n.Label)
	}
	n.ResourceType = strings.TrimPrefix(parts[len(parts)-2], awsPrefix)
	n.Key = parts[len(parts)-1]
	n.IsData = len(parts) == 3 && parts[0] == dataMarker
	if len(parts) == 4 {
		n.ModuleName = parts[1]
	}
	return nil
}
