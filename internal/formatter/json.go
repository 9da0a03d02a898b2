package formatter

import (
	"encoding/json"

	"terraform-modviz/internal/graph"
)

// ToJSON converts parsed trees to their JSON representation, one nested
// scope object per input graph.
func ToJSON(trees []*graph.Tree) (string, error) {
	roots := make([]*graph.Scope, len(trees))
	for i, t := range trees {
		roots[i] = t.Root
	}
	data, err := json.MarshalIndent(roots, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
