// Package graph holds the scope tree a parsed terraform graph dump is
// rebuilt into: one root scope per input graph, with nested scopes for
// every module level found in node identifiers.
package graph

import "encoding/json"

// Kind identifies the variant of a parsed node.
type Kind int

const (
	KindGeneric Kind = iota
	KindResource
	KindVariable
	KindProvider
	KindOutput
)

var kindNames = map[Kind]string{
	KindGeneric:  "generic",
	KindResource: "resource",
	KindVariable: "variable",
	KindProvider: "provider",
	KindOutput:   "output",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "generic"
}

// MarshalJSON renders the kind as its name rather than a bare number.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Attr is a single presentation attribute. Attributes are kept as an
// ordered slice because serialization must reproduce their input order.
type Attr struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Node is one declared node. The label attribute is promoted out of the
// attribute list; the resource fields are only set for KindResource.
type Node struct {
	Name  string `json:"name"`
	Kind  Kind   `json:"kind"`
	Label string `json:"label"` // raw label value, quotes included
	Attrs []Attr `json:"attributes,omitempty"`

	ResourceType string `json:"resource_type,omitempty"`
	Key          string `json:"key,omitempty"`
	IsData       bool   `json:"is_data,omitempty"`
	ModuleName   string `json:"module_name,omitempty"`
}

// Edge references its endpoints by raw identifier. Endpoints are never
// resolved against declared nodes; the input may reference nodes the
// filter has dropped.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Scope is one cluster in the tree: the root graph or a module below it.
// Nodes, edges and children all keep first-seen order.
type Scope struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Nodes    []*Node  `json:"nodes,omitempty"`
	Edges    []Edge   `json:"edges,omitempty"`
	Children []*Scope `json:"modules,omitempty"`
}

// Tree owns the root scope of one input graph plus an arena of every
// scope keyed by full scope name, so resolving a module path is a
// get-or-create per path segment. The tree is mutated only while the
// construction pass runs; serialization treats it as read-only.
type Tree struct {
	Root   *Scope
	scopes map[string]*Scope
}

// ScopeSep joins a parent scope name with a local module name.
const ScopeSep = ":"

// NewTree creates a tree whose root scope carries the graph name, which
// doubles as the root label.
func NewTree(name string) *Tree {
	root := &Scope{Name: name, Label: name}
	return &Tree{
		Root:   root,
		scopes: map[string]*Scope{name: root},
	}
}

// child returns the sub-scope of parent with the given local module
// name, creating it on first use. Re-walking the same path lands in the
// identical scope, never a duplicate.
func (t *Tree) child(parent *Scope, name string) *Scope {
	full := parent.Name + ScopeSep + name
	if s, ok := t.scopes[full]; ok {
		return s
	}
	s := &Scope{Name: full, Label: name}
	t.scopes[full] = s
	parent.Children = append(parent.Children, s)
	return s
}

// Resolve walks a module path from the root, creating missing scopes on
// demand, and returns the final scope reached. An empty path resolves
// to the root.
func (t *Tree) Resolve(path []string) *Scope {
	s := t.Root
	for _, name := range path {
		s = t.child(s, name)
	}
	return s
}

// AddNode appends n to the scope selected by its identifier's module
// path and returns that scope.
func (t *Tree) AddNode(n *Node) *Scope {
	s := t.Resolve(ModulePath(n.Name))
	s.Nodes = append(s.Nodes, n)
	return s
}

// AddEdge records an edge under the root scope, where the input format
// declares every edge.
func (t *Tree) AddEdge(from, to string) {
	t.Root.Edges = append(t.Root.Edges, Edge{From: from, To: to})
}

// Len reports how many scopes exist, the root included.
func (t *Tree) Len() int {
	return len(t.scopes)
}

// Walk visits every scope depth-first in creation order, root first.
func (t *Tree) Walk(visit func(*Scope)) {
	var walk func(*Scope)
	walk = func(s *Scope) {
		visit(s)
		for _, child := range s.Children {
			walk(child)
		}
	}
	walk(t.Root)
}

// Dangling returns, in declaration order, edge endpoints that no node in
// the tree declares. Whether these are worth a warning is the caller's
// policy; the filter routinely removes nodes that edges still name.
func (t *Tree) Dangling() []string {
	declared := make(map[string]bool)
	t.Walk(func(s *Scope) {
		for _, n := range s.Nodes {
			declared[n.Name] = true
		}
	})

	seen := make(map[string]bool)
	var missing []string
	t.Walk(func(s *Scope) {
		for _, e := range s.Edges {
			for _, name := range []string{e.From, e.To} {
				if !declared[name] && !seen[name] {
					seen[name] = true
					missing = append(missing, name)
				}
			}
		}
	})
	return missing
}
