package depgraph

import (
	"sort"
	"testing"
)

func TestFindPathNodes_Linear(t *testing.T) {
	// a → b → c
	// paths(a, c) should return {a, b, c}
	graph := DependencyGraph{
		"a.sol": {"b.sol"},
		"b.sol": {"c.sol"},
		"c.sol": {},
	}

	result := FindPathNodes(graph, []string{"a.sol", "c.sol"})

	assertGraphContainsNodes(t, result, []string{"a.sol", "b.sol", "c.sol"})
}

func TestFindPathNodes_Diamond(t *testing.T) {
	// a → b, a → c, b → d, c → d
	// paths(a, d) should return all four files
	graph := DependencyGraph{
		"a.sol": {"b.sol", "c.sol"},
		"b.sol": {"d.sol"},
		"c.sol": {"d.sol"},
		"d.sol": {},
	}

	result := FindPathNodes(graph, []string{"a.sol", "d.sol"})

	assertGraphContainsNodes(t, result, []string{"a.sol", "b.sol", "c.sol", "d.sol"})
}

func TestFindPathNodes_Disconnected(t *testing.T) {
	// a → b, c → d with no connection between the groups
	// paths(a, c) should return just {a, c}
	graph := DependencyGraph{
		"a.sol": {"b.sol"},
		"b.sol": {},
		"c.sol": {"d.sol"},
		"d.sol": {},
	}

	result := FindPathNodes(graph, []string{"a.sol", "c.sol"})

	assertGraphContainsNodes(t, result, []string{"a.sol", "c.sol"})
}

func TestFindPathNodes_MultiTarget(t *testing.T) {
	// a → b → c → d
	// paths(a, c, d) should return all four files
	graph := DependencyGraph{
		"a.sol": {"b.sol"},
		"b.sol": {"c.sol"},
		"c.sol": {"d.sol"},
		"d.sol": {},
	}

	result := FindPathNodes(graph, []string{"a.sol", "c.sol", "d.sol"})

	assertGraphContainsNodes(t, result, []string{"a.sol", "b.sol", "c.sol", "d.sol"})
}

func TestFindPathNodes_AllChains(t *testing.T) {
	// a → b → c (short chain) and a → d → e → c (long chain)
	// paths(a, c) should return every file on either chain
	graph := DependencyGraph{
		"a.sol": {"b.sol", "d.sol"},
		"b.sol": {"c.sol"},
		"c.sol": {},
		"d.sol": {"e.sol"},
		"e.sol": {"c.sol"},
	}

	result := FindPathNodes(graph, []string{"a.sol", "c.sol"})

	assertGraphContainsNodes(t, result, []string{"a.sol", "b.sol", "c.sol", "d.sol", "e.sol"})
}

func TestFindPathNodes_Bidirectional(t *testing.T) {
	// a → b; paths(b, a) still finds the connection
	graph := DependencyGraph{
		"a.sol": {"b.sol"},
		"b.sol": {},
	}

	result := FindPathNodes(graph, []string{"b.sol", "a.sol"})

	assertGraphContainsNodes(t, result, []string{"a.sol", "b.sol"})
}

func TestFindPathNodes_SingleTarget(t *testing.T) {
	graph := DependencyGraph{
		"a.sol": {"b.sol"},
		"b.sol": {},
	}

	result := FindPathNodes(graph, []string{"a.sol"})

	assertGraphContainsNodes(t, result, []string{"a.sol"})
}

func TestFindPathNodes_MissingTargetsAreDropped(t *testing.T) {
	graph := DependencyGraph{
		"a.sol": {"b.sol"},
		"b.sol": {},
	}

	result := FindPathNodes(graph, []string{"a.sol", "missing.sol"})

	assertGraphContainsNodes(t, result, []string{"a.sol"})
}

func TestFindPathNodes_FiltersEdgesToDroppedNodes(t *testing.T) {
	// b → x is dropped because x is not on any a-to-c chain
	graph := DependencyGraph{
		"a.sol": {"b.sol"},
		"b.sol": {"c.sol", "x.sol"},
		"c.sol": {},
		"x.sol": {},
	}

	result := FindPathNodes(graph, []string{"a.sol", "c.sol"})

	assertGraphContainsNodes(t, result, []string{"a.sol", "b.sol", "c.sol"})
	if deps := result["b.sol"]; len(deps) != 1 || deps[0] != "c.sol" {
		t.Errorf("expected b.sol to keep only the c.sol edge, got %v", deps)
	}
}

// Helper functions

func assertGraphContainsNodes(t *testing.T, graph DependencyGraph, expectedNodes []string) {
	t.Helper()

	for _, node := range expectedNodes {
		if _, ok := graph[node]; !ok {
			t.Errorf("Expected node %s not found in graph", node)
		}
	}

	// Also check we don't have extra nodes
	var actualNodes []string
	for node := range graph {
		actualNodes = append(actualNodes, node)
	}

	sort.Strings(actualNodes)
	sort.Strings(expectedNodes)

	if len(actualNodes) != len(expectedNodes) {
		t.Errorf("Expected %d nodes %v, got %d nodes %v", len(expectedNodes), expectedNodes, len(actualNodes), actualNodes)
	}
}
