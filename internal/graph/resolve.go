package graph

import (
	"regexp"
	"strings"
)

// modulePrefix matches the repeated "module.<name>." prefix a node
// identifier carries when it lives below the root module.
var modulePrefix = regexp.MustCompile(`^((?:module\.[^.]*\.)+)`)

// ModulePath extracts the ordered submodule names from a node
// identifier: "module.network.module.subnet.aws_subnet.a" yields
// ["network", "subnet"]. Identifiers without a module prefix yield nil.
// Empty segments produced by malformed dotted prefixes are dropped so
// they never create a scope with an empty name.
func ModulePath(identifier string) []string {
	prefix := modulePrefix.FindString(identifier)
	if prefix == "" {
		return nil
	}

	// Segments alternate between the literal "module" and a name.
	segments := strings.Split(strings.TrimSuffix(prefix, "."), ".")
	var path []string
	for i := 1; i < len(segments); i += 2 {
		if segments[i] != "" {
			path = append(path, segments[i])
		}
	}
	return path
}
