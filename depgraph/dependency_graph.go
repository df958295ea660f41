// Package depgraph analyzes the structure of a gathered import graph:
// compile order, import cycles, and the chains that connect two sources.
package depgraph

import (
	"sort"

	"github.com/solgather/solgather/imports"
)

// DependencyGraph maps each source locator to the locators it imports,
// in source order.
type DependencyGraph map[string][]string

// NewFromTree flattens gathered tree nodes into a dependency graph.
// Edge order follows each file's source order; repeated imports of the
// same locator collapse into one edge.
func NewFromTree(nodes []*imports.TreeNode) DependencyGraph {
	g := make(DependencyGraph, len(nodes))
	for _, node := range nodes {
		deps := make([]string, 0, len(node.Imports))
		seen := make(map[string]bool, len(node.Imports))
		for _, edge := range node.Imports {
			if seen[edge.Locator] {
				continue
			}
			seen[edge.Locator] = true
			deps = append(deps, edge.Locator)
		}
		g[node.Locator] = deps
	}
	return g
}

// ContainsNode reports whether locator is a node of the graph.
func ContainsNode(g DependencyGraph, locator string) bool {
	_, ok := g[locator]
	return ok
}

// DependenciesOf returns the locators imported by locator. ok is false
// when the locator is not a node of the graph.
func DependenciesOf(g DependencyGraph, locator string) (deps []string, ok bool) {
	deps, ok = g[locator]
	return deps, ok
}

// Locators returns the graph's nodes sorted lexically.
func Locators(g DependencyGraph) []string {
	locators := make([]string, 0, len(g))
	for locator := range g {
		locators = append(locators, locator)
	}
	sort.Strings(locators)
	return locators
}
