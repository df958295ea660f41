package formatters

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/solgather/solgather/depgraph"
)

// DOTFormatter formats dependency graphs as Graphviz DOT.
type DOTFormatter struct{}

// Format converts the dependency graph to Graphviz DOT format.
// Nodes are colored by the provider that served them: sources on the
// majority provider stay white, and cycle members get a red border.
func (f *DOTFormatter) Format(g depgraph.DependencyGraph, opts FormatOptions) (string, error) {
	var sb strings.Builder
	sb.WriteString("digraph dependencies {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")

	// Add label if provided
	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("  label=%q;\n", opts.Label))
		sb.WriteString("  labelloc=t;\n")
		sb.WriteString("  labeljust=l;\n")
		sb.WriteString("  fontsize=10;\n")
		sb.WriteString("  fontname=Courier;\n")
	}
	sb.WriteString("\n")

	locators := allLocators(g)
	names := BuildNodeNames(locators)

	providerColors := GetProviderColors(opts.Meta)
	majority := majorityProvider(opts.Meta)
	hasMultipleProviders := len(providerColors) > 1

	for _, locator := range locators {
		color := "white"
		inCycle := false
		if meta, ok := opts.Meta[locator]; ok {
			inCycle = meta.InCycle
			if hasMultipleProviders && meta.Provider != majority {
				if assigned, ok := providerColors[meta.Provider]; ok {
					color = assigned
				}
			}
		}

		attrs := fmt.Sprintf("label=%q, style=filled, fillcolor=%s", names[locator], color)
		if inCycle {
			attrs += ", color=red, penwidth=2"
		}
		sb.WriteString(fmt.Sprintf("  %q [%s];\n", names[locator], attrs))
	}
	if len(locators) > 0 {
		sb.WriteString("\n")
	}

	for _, source := range depgraph.Locators(g) {
		for _, dep := range g[source] {
			sb.WriteString(fmt.Sprintf("  %q -> %q;\n", names[source], names[dep]))
		}
	}

	sb.WriteString("}")
	return sb.String(), nil
}

// majorityProvider returns the provider serving the most sources.
// Ties resolve to the lexically smallest name.
func majorityProvider(meta map[string]depgraph.SourceMeta) string {
	counts := make(map[string]int)
	for _, sourceMeta := range meta {
		counts[sourceMeta.Provider]++
	}

	majority := ""
	majorityCount := 0
	for provider, count := range counts {
		if count > majorityCount || (count == majorityCount && provider < majority) {
			majority = provider
			majorityCount = count
		}
	}
	return majority
}

// GenerateURL creates a GraphvizOnline URL with the DOT graph embedded.
func (f *DOTFormatter) GenerateURL(output string) (string, bool) {
	encoded := url.PathEscape(output)
	return fmt.Sprintf("https://dreampuf.github.io/GraphvizOnline/?engine=dot#%s", encoded), true
}
