package depgraph_test

import (
	"context"
	"testing"

	"github.com/solgather/solgather/depgraph"
	"github.com/solgather/solgather/imports"
	"github.com/solgather/solgather/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotate(t *testing.T) {
	mem := resolver.NewMemoryResolver(map[string]string{
		"a.sol":   `import "./b.sol"; import "./lib.sol";`,
		"b.sol":   `import "./a.sol";`,
		"lib.sol": "library Lib {}",
	})

	nodes, err := imports.GatherTree(context.Background(), []string{"./a.sol"}, "", mem)
	require.NoError(t, err)

	annotated, err := depgraph.Annotate(nodes)
	require.NoError(t, err)

	assert.Len(t, annotated.Graph, 3)

	a := annotated.Meta["a.sol"]
	assert.Equal(t, "memory", a.Provider)
	assert.Equal(t, "./a.sol", a.Reference)
	assert.True(t, a.InCycle)

	b := annotated.Meta["b.sol"]
	assert.Equal(t, "./b.sol", b.Reference)
	assert.True(t, b.InCycle)

	lib := annotated.Meta["lib.sol"]
	assert.False(t, lib.InCycle)
}
