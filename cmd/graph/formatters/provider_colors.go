package formatters

import (
	"sort"

	"github.com/solgather/solgather/depgraph"
)

// GetProviderColors assigns a fill color to every provider present in
// the metadata. Providers are sorted before colors are handed out, so
// the assignment is stable between runs.
func GetProviderColors(meta map[string]depgraph.SourceMeta) map[string]string {
	availableColors := []string{
		"lightblue", "lightyellow", "mistyrose", "lightsalmon",
		"lightpink", "lavender", "peachpuff", "plum", "powderblue", "khaki",
		"palegoldenrod", "thistle",
	}

	uniqueProviders := make(map[string]bool)
	for _, sourceMeta := range meta {
		if sourceMeta.Provider != "" {
			uniqueProviders[sourceMeta.Provider] = true
		}
	}

	sortedProviders := make([]string, 0, len(uniqueProviders))
	for provider := range uniqueProviders {
		sortedProviders = append(sortedProviders, provider)
	}
	sort.Strings(sortedProviders)

	providerColors := make(map[string]string)
	for i, provider := range sortedProviders {
		providerColors[provider] = availableColors[i%len(availableColors)]
	}

	return providerColors
}
