package depgraph

// FindPathNodes returns the subgraph of every locator lying on an
// import chain between any pair of targets, in either direction.
// Targets missing from the graph are dropped; with fewer than two
// present targets the result holds just those targets.
func FindPathNodes(g DependencyGraph, targets []string) DependencyGraph {
	var present []string
	for _, target := range targets {
		if ContainsNode(g, target) {
			present = append(present, target)
		}
	}

	keep := make(map[string]bool, len(present))
	for _, target := range present {
		keep[target] = true
	}

	if len(present) >= 2 {
		forward, reverse := adjacency(g)
		for i := 0; i < len(present); i++ {
			for j := i + 1; j < len(present); j++ {
				markChainNodes(forward, reverse, present[i], present[j], keep)
				markChainNodes(forward, reverse, present[j], present[i], keep)
			}
		}
	}

	return subgraph(g, keep)
}

// markChainNodes marks every locator that is reachable from source and
// can itself reach target. Those are exactly the locators on some
// directed chain from source to target.
func markChainNodes(forward, reverse map[string][]string, source, target string, keep map[string]bool) {
	fromSource := reachable(forward, source)
	toTarget := reachable(reverse, target)
	for locator := range fromSource {
		if toTarget[locator] {
			keep[locator] = true
		}
	}
}

// adjacency builds forward and reverse edge lists for BFS in both
// directions.
func adjacency(g DependencyGraph) (forward, reverse map[string][]string) {
	forward = make(map[string][]string, len(g))
	reverse = make(map[string][]string, len(g))
	for locator, deps := range g {
		forward[locator] = append(forward[locator], deps...)
		for _, dep := range deps {
			reverse[dep] = append(reverse[dep], locator)
		}
	}
	return forward, reverse
}

// reachable returns every locator reachable from source, source
// included.
func reachable(adjacency map[string][]string, source string) map[string]bool {
	seen := map[string]bool{source: true}
	queue := []string{source}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[current] {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

// subgraph keeps only the marked locators and the edges between them.
func subgraph(g DependencyGraph, keep map[string]bool) DependencyGraph {
	result := make(DependencyGraph, len(keep))
	for locator := range keep {
		deps := []string{}
		for _, dep := range g[locator] {
			if keep[dep] {
				deps = append(deps, dep)
			}
		}
		result[locator] = deps
	}
	return result
}
