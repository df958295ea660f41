package formatters_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/solgather/solgather/cmd/graph/formatters"
	"github.com/solgather/solgather/depgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependencyGraph_ToMermaid(t *testing.T) {
	graph := depgraph.DependencyGraph{
		"/project/main.sol":  {"/project/utils.sol"},
		"/project/utils.sol": {},
	}

	formatter := &formatters.MermaidFormatter{}
	output, err := formatter.Format(graph, formatters.FormatOptions{})
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestDependencyGraph_ToMermaid_HighlightsRemotesAndCycles(t *testing.T) {
	graph := depgraph.DependencyGraph{
		"/project/a.sol":                     {"/project/b.sol", "https://etherscan.example/safe.sol"},
		"/project/b.sol":                     {"/project/a.sol"},
		"https://etherscan.example/safe.sol": {},
	}
	meta := map[string]depgraph.SourceMeta{
		"/project/a.sol":                     {Provider: "fs", InCycle: true},
		"/project/b.sol":                     {Provider: "fs", InCycle: true},
		"https://etherscan.example/safe.sol": {Provider: "http"},
	}

	formatter := &formatters.MermaidFormatter{}
	output, err := formatter.Format(graph, formatters.FormatOptions{Label: "solgather watch", Meta: meta})
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestMermaidFormatter_GenerateURL(t *testing.T) {
	formatter := &formatters.MermaidFormatter{}

	urlStr, ok := formatter.GenerateURL("flowchart LR\n")
	require.True(t, ok)
	require.True(t, strings.HasPrefix(urlStr, "https://mermaid.live/edit#base64:"))

	encoded := strings.TrimPrefix(urlStr, "https://mermaid.live/edit#base64:")
	decoded, err := base64.URLEncoding.DecodeString(encoded)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(decoded, &payload))
	assert.Equal(t, "flowchart LR\n", payload["code"])
}
