package formatters

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/solgather/solgather/depgraph"
)

// MermaidFormatter formats dependency graphs as Mermaid.js flowcharts.
type MermaidFormatter struct{}

// Format converts the dependency graph to Mermaid.js flowchart format.
// Remote sources and cycle members are marked with style classes.
func (f *MermaidFormatter) Format(g depgraph.DependencyGraph, opts FormatOptions) (string, error) {
	var sb strings.Builder

	// Add title if label provided
	if opts.Label != "" {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", opts.Label))
		sb.WriteString("---\n")
	}

	sb.WriteString("flowchart LR\n")

	locators := allLocators(g)
	names := BuildNodeNames(locators)

	// Mermaid node IDs can't contain dots or slashes, so locators get
	// sequential IDs and keep their display name as the label.
	nodeIDs := make(map[string]string, len(locators))
	for i, locator := range locators {
		nodeIDs[locator] = fmt.Sprintf("n%d", i)
	}

	for _, locator := range locators {
		// Escape quotes in labels
		label := strings.ReplaceAll(names[locator], `"`, "#quot;")
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", nodeIDs[locator], label))
	}

	sb.WriteString("\n")

	for _, source := range depgraph.Locators(g) {
		for _, dep := range g[source] {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", nodeIDs[source], nodeIDs[dep]))
		}
	}

	sb.WriteString("\n")

	cycleNodes := []string{}
	remoteNodes := []string{}
	for _, locator := range locators {
		if opts.Meta[locator].InCycle {
			cycleNodes = append(cycleNodes, nodeIDs[locator])
		} else if strings.Contains(locator, "://") {
			remoteNodes = append(remoteNodes, nodeIDs[locator])
		}
	}

	// Mermaid uses classDef for styling and class for applying styles
	sb.WriteString("    classDef remoteSource fill:#87CEEB,stroke:#4682B4\n")
	sb.WriteString("    classDef cycleMember fill:#FFB6C1,stroke:#CC0000,color:#000000\n")

	if len(remoteNodes) > 0 {
		sb.WriteString(fmt.Sprintf("    class %s remoteSource\n", strings.Join(remoteNodes, ",")))
	}
	if len(cycleNodes) > 0 {
		sb.WriteString(fmt.Sprintf("    class %s cycleMember\n", strings.Join(cycleNodes, ",")))
	}
	return sb.String(), nil
}

// GenerateURL creates a mermaid.live URL with the diagram embedded.
func (f *MermaidFormatter) GenerateURL(output string) (string, bool) {
	payload := map[string]interface{}{
		"code": output,
		"mermaid": map[string]interface{}{
			"theme": "default",
		},
		"autoSync":      true,
		"updateDiagram": true,
	}

	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		// Fallback: just return the code URL-encoded
		return fmt.Sprintf("https://mermaid.live/edit#%s", url.PathEscape(output)), true
	}

	encoded := base64.URLEncoding.EncodeToString(jsonBytes)
	return fmt.Sprintf("https://mermaid.live/edit#base64:%s", encoded), true
}
