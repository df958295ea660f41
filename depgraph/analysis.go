package depgraph

import (
	"errors"
	"fmt"
	"sort"

	graphlib "github.com/dominikbraun/graph"
)

// toGraph mirrors g into a directed graph. Imported locators become
// vertices even when they were never gathered as nodes themselves.
func toGraph(g DependencyGraph) (graphlib.Graph[string, string], error) {
	dg := graphlib.New(graphlib.StringHash, graphlib.Directed())

	for _, locator := range Locators(g) {
		if err := dg.AddVertex(locator); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return nil, err
		}
	}

	for _, locator := range Locators(g) {
		for _, dep := range g[locator] {
			if err := dg.AddVertex(dep); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
				return nil, err
			}
			if err := dg.AddEdge(locator, dep, graphlib.EdgeWeight(1)); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return nil, err
			}
		}
	}

	return dg, nil
}

// CompileOrder returns the locators ordered so every file appears after
// the files it imports. Ties break lexically. Fails when the graph has
// an import cycle.
func CompileOrder(g DependencyGraph) ([]string, error) {
	dg, err := toGraph(g)
	if err != nil {
		return nil, err
	}

	order, err := graphlib.StableTopologicalSort(dg, func(a, b string) bool { return a < b })
	if err != nil {
		return nil, fmt.Errorf("ordering sources: %w", err)
	}

	// Topological order lists importers first; compilation wants
	// dependencies first.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}

// Cycles returns the groups of locators that import each other, one
// slice per strongly connected component with more than one member.
// A file importing itself counts as a cycle of one. Members are sorted
// and groups are ordered by first member.
func Cycles(g DependencyGraph) ([][]string, error) {
	dg, err := toGraph(g)
	if err != nil {
		return nil, err
	}

	sccs, err := graphlib.StronglyConnectedComponents(dg)
	if err != nil {
		return nil, err
	}

	var cycles [][]string
	for _, scc := range sccs {
		if len(scc) == 1 {
			if _, err := dg.Edge(scc[0], scc[0]); err != nil {
				continue
			}
		}
		sort.Strings(scc)
		cycles = append(cycles, scc)
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles, nil
}

// ImportChain returns the shortest chain of imports leading from one
// locator to another, both ends included. ok is false when no chain
// exists or an endpoint is missing from the graph.
func ImportChain(g DependencyGraph, from, to string) (chain []string, ok bool, err error) {
	dg, err := toGraph(g)
	if err != nil {
		return nil, false, err
	}

	path, err := graphlib.ShortestPath(dg, from, to)
	switch {
	case errors.Is(err, graphlib.ErrTargetNotReachable), errors.Is(err, graphlib.ErrVertexNotFound):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	return path, true, nil
}
