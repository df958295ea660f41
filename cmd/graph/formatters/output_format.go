package formatters

import "strings"

// OutputFormat represents an output format type
type OutputFormat string

const (
	OutputFormatDOT     OutputFormat = "dot"
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatMermaid OutputFormat = "mermaid"
)

// String returns the string representation of the format
func (f OutputFormat) String() string {
	return string(f)
}

// SupportedFormats returns the valid format names as a comma-separated list.
func SupportedFormats() string {
	formats := []string{
		OutputFormatDOT.String(),
		OutputFormatJSON.String(),
		OutputFormatMermaid.String(),
	}
	return strings.Join(formats, ", ")
}
