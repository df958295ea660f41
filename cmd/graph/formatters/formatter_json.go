package formatters

import (
	"encoding/json"

	"github.com/solgather/solgather/depgraph"
)

// JSONFormatter formats dependency graphs as JSON.
type JSONFormatter struct{}

// Format converts the dependency graph to JSON format.
// The opts parameter is accepted for interface compatibility but not used.
func (f *JSONFormatter) Format(g depgraph.DependencyGraph, opts FormatOptions) (string, error) {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GenerateURL returns false as JSON format does not support URL generation.
func (f *JSONFormatter) GenerateURL(output string) (string, bool) {
	return "", false
}
