package formatters

import (
	"sort"
	"strings"

	"github.com/solgather/solgather/depgraph"
)

// BuildNodeNames returns stable, distinct display names for locators.
// Locators that share the same base name are disambiguated by increasing
// suffix depth.
func BuildNodeNames(locators []string) map[string]string {
	names := make(map[string]string, len(locators))
	groupedByBase := make(map[string][]string, len(locators))
	for _, locator := range locators {
		base := locatorBase(locator)
		groupedByBase[base] = append(groupedByBase[base], locator)
	}

	for base, group := range groupedByBase {
		if len(group) == 1 {
			names[group[0]] = base
			continue
		}

		maxDepth := 0
		for _, locator := range group {
			if n := len(locatorSegments(locator)); n > maxDepth {
				maxDepth = n
			}
		}

		for depth := 2; ; depth++ {
			if depth > maxDepth {
				// Distinct locators can still share every segment
				// ("a//b.sol" vs "a/b.sol"), so show them in full.
				for _, locator := range group {
					names[locator] = locator
				}
				break
			}

			suffixCounts := make(map[string]int, len(group))
			for _, locator := range group {
				suffixCounts[locatorSuffix(locator, depth)]++
			}

			allDistinct := true
			for _, locator := range group {
				if suffixCounts[locatorSuffix(locator, depth)] > 1 {
					allDistinct = false
					break
				}
			}
			if !allDistinct {
				continue
			}

			for _, locator := range group {
				names[locator] = locatorSuffix(locator, depth)
			}
			break
		}
	}

	return names
}

// allLocators returns every locator that appears in the graph, whether
// as a node or only as a dependency, sorted lexically.
func allLocators(g depgraph.DependencyGraph) []string {
	seen := make(map[string]bool, len(g))
	for source, deps := range g {
		seen[source] = true
		for _, dep := range deps {
			seen[dep] = true
		}
	}
	locators := make([]string, 0, len(seen))
	for locator := range seen {
		locators = append(locators, locator)
	}
	sort.Strings(locators)
	return locators
}

// locatorSegments splits a locator on slashes, dropping the empty
// segments a scheme separator introduces.
func locatorSegments(locator string) []string {
	parts := strings.Split(locator, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}

func locatorSuffix(locator string, depth int) string {
	segments := locatorSegments(locator)
	if len(segments) == 0 {
		return locator
	}
	if depth > len(segments) {
		depth = len(segments)
	}
	return strings.Join(segments[len(segments)-depth:], "/")
}

func locatorBase(locator string) string {
	segments := locatorSegments(locator)
	if len(segments) == 0 {
		return locator
	}
	return segments[len(segments)-1]
}
