package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingResolver counts canonicalize calls on the way to another resolver.
type countingResolver struct {
	next  Resolver
	canon int
}

func (c *countingResolver) Canonicalize(reference, searchDir string) (string, error) {
	c.canon++
	return c.next.Canonicalize(reference, searchDir)
}

func (c *countingResolver) Fetch(ctx context.Context, reference, searchDir string) (*SourceFile, error) {
	return c.next.Fetch(ctx, reference, searchDir)
}

func TestNewCachingResolver_RequiresNext(t *testing.T) {
	_, err := NewCachingResolver(nil, 0)

	assert.Error(t, err)
}

func TestCachingResolver_FetchesEachLocatorOnce(t *testing.T) {
	next := NewMemoryResolver(map[string]string{
		"contracts/token.sol": "contract Token {}",
	})
	c, err := NewCachingResolver(next, 0)
	require.NoError(t, err)

	first, err := c.Fetch(context.Background(), "./token.sol", "contracts")
	require.NoError(t, err)
	second, err := c.Fetch(context.Background(), "./token.sol", "contracts")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.FetchCount("contracts/token.sol"))
}

func TestCachingResolver_HitsAcrossReferenceSpellings(t *testing.T) {
	next := NewMemoryResolver(map[string]string{
		"contracts/token.sol": "contract Token {}",
	})
	c, err := NewCachingResolver(next, 0)
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), "./token.sol", "contracts")
	require.NoError(t, err)
	file, err := c.Fetch(context.Background(), "contracts/token.sol", "")
	require.NoError(t, err)

	assert.Equal(t, "contracts/token.sol", file.Locator)
	assert.Equal(t, 1, next.FetchCount("contracts/token.sol"))
}

func TestCachingResolver_ReturnsIndependentCopies(t *testing.T) {
	next := NewMemoryResolver(map[string]string{
		"contracts/token.sol": "contract Token {}",
	})
	c, err := NewCachingResolver(next, 0)
	require.NoError(t, err)

	first, err := c.Fetch(context.Background(), "./token.sol", "contracts")
	require.NoError(t, err)
	first.Source = "mutated"

	second, err := c.Fetch(context.Background(), "./token.sol", "contracts")
	require.NoError(t, err)
	assert.Equal(t, "contract Token {}", second.Source)
}

func TestCachingResolver_MemoizesCanonicalization(t *testing.T) {
	counting := &countingResolver{next: NewMemoryResolver(nil)}
	c, err := NewCachingResolver(counting, 0)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		url, err := c.Canonicalize("./token.sol", "contracts")
		require.NoError(t, err)
		assert.Equal(t, "contracts/token.sol", url)
	}

	assert.Equal(t, 1, counting.canon)
}

func TestCachingResolver_ErrorsAreNotCached(t *testing.T) {
	files := map[string]string{}
	next := NewMemoryResolver(files)
	c, err := NewCachingResolver(next, 0)
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), "token.sol", "")
	require.ErrorIs(t, err, ErrNotFound)

	// The file appearing later must be visible on the next fetch.
	files["token.sol"] = "contract Token {}"

	file, err := c.Fetch(context.Background(), "token.sol", "")
	require.NoError(t, err)
	assert.Equal(t, "contract Token {}", file.Source)
}
