package formatters

import (
	"fmt"

	"github.com/solgather/solgather/depgraph"
)

// FormatOptions contains optional parameters for formatting dependency graphs.
type FormatOptions struct {
	// Label is an optional title for the graph
	Label string
	// Meta carries per-locator annotations (provider, cycle membership)
	// used to style nodes
	Meta map[string]depgraph.SourceMeta
}

// Formatter is the interface that all graph formatters must implement.
type Formatter interface {
	// Format converts a dependency graph to a formatted string representation.
	Format(g depgraph.DependencyGraph, opts FormatOptions) (string, error)
	// GenerateURL returns a shareable viewer URL for output previously
	// produced by Format. ok is false when the format has no online viewer.
	GenerateURL(output string) (string, bool)
}

// NewFormatter creates a Formatter for the specified format type.
// Supported formats: "dot", "json", "mermaid"
func NewFormatter(format string) (Formatter, error) {
	switch OutputFormat(format) {
	case OutputFormatDOT:
		return &DOTFormatter{}, nil
	case OutputFormatJSON:
		return &JSONFormatter{}, nil
	case OutputFormatMermaid:
		return &MermaidFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (valid options: %s)", format, SupportedFormats())
	}
}
