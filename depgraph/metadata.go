package depgraph

import (
	"github.com/solgather/solgather/imports"
)

// SourceMeta annotates one locator for rendering.
type SourceMeta struct {
	// Provider tags where the source came from ("fs", "http", ...).
	Provider string
	// Reference is the import literal the source was first reached by.
	Reference string
	// InCycle marks members of an import cycle.
	InCycle bool
}

// AnnotatedGraph pairs a dependency graph with per-locator metadata.
type AnnotatedGraph struct {
	Graph DependencyGraph
	Meta  map[string]SourceMeta
}

// Annotate builds the dependency graph and its rendering metadata from
// gathered tree nodes.
func Annotate(nodes []*imports.TreeNode) (AnnotatedGraph, error) {
	g := NewFromTree(nodes)

	meta := make(map[string]SourceMeta, len(nodes))
	for _, node := range nodes {
		meta[node.Locator] = SourceMeta{
			Provider:  node.Provider,
			Reference: node.Reference,
		}
	}

	cycles, err := Cycles(g)
	if err != nil {
		return AnnotatedGraph{}, err
	}
	for _, cycle := range cycles {
		for _, locator := range cycle {
			md := meta[locator]
			md.InCycle = true
			meta[locator] = md
		}
	}

	return AnnotatedGraph{Graph: g, Meta: meta}, nil
}
