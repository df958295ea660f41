package resolver

import (
	"context"
	"path"
	"strings"
	"sync"
)

// Memory resolves references against an in-memory file map keyed by
// canonical locator. It backs tests and examples and records how often each
// locator was fetched.
type Memory struct {
	files map[string]string

	mu      sync.Mutex
	fetches map[string]int
}

// NewMemoryResolver returns a Memory serving the given locator-to-source map.
func NewMemoryResolver(files map[string]string) *Memory {
	return &Memory{
		files:   files,
		fetches: make(map[string]int),
	}
}

// Canonicalize joins dot-relative references onto searchDir; any other
// reference is already its own locator. Remote-looking locators keep their
// scheme separator, which path cleaning would collapse.
func (m *Memory) Canonicalize(reference, searchDir string) (string, error) {
	if strings.HasPrefix(reference, ".") {
		if scheme, rest, ok := strings.Cut(searchDir, "://"); ok {
			return scheme + "://" + path.Join(rest, reference), nil
		}
		return path.Join(searchDir, reference), nil
	}
	if isRemote(reference) {
		return reference, nil
	}
	return path.Clean(reference), nil
}

// Fetch returns the stored source for the reference's canonical locator.
func (m *Memory) Fetch(ctx context.Context, reference, searchDir string) (*SourceFile, error) {
	url, err := m.Canonicalize(reference, searchDir)
	if err != nil {
		return nil, err
	}

	source, ok := m.files[url]
	if !ok {
		return nil, notFound(reference)
	}

	m.mu.Lock()
	m.fetches[url]++
	m.mu.Unlock()

	return &SourceFile{Locator: url, Source: source, Provider: "memory"}, nil
}

// FetchCount reports how many times the locator has been fetched.
func (m *Memory) FetchCount(locator string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetches[locator]
}
