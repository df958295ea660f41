package imports

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/solgather/solgather/resolver"
)

// parentDir returns the directory portion of a locator. Remote locators
// keep their scheme's double slash, which path.Dir's cleaning would
// collapse, so they are trimmed at the last slash instead.
func parentDir(locator string) string {
	if strings.Contains(locator, "://") {
		if i := strings.LastIndex(locator, "/"); i > 0 {
			return locator[:i]
		}
		return locator
	}
	return path.Dir(locator)
}

// gatherState is the bookkeeping shared by every subtree of one GatherTree
// call.
type gatherState struct {
	resolver resolver.Resolver

	mu      sync.Mutex
	visited map[string]bool
	nodes   []*TreeNode
}

// visit records url as seen and reports whether this call was the first to
// do so. Check and insert are one critical section so concurrent subtrees
// cannot both claim a locator.
func (s *gatherState) visit(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.visited[url] {
		return false
	}
	s.visited[url] = true
	return true
}

func (s *gatherState) add(node *TreeNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = append(s.nodes, node)
}

// GatherTree resolves the roots and everything they transitively import into
// TreeNodes. Roots are traversed concurrently; within a subtree children are
// resolved one after another so each node's edge list keeps source order.
// Every distinct canonical locator is fetched and expanded at most once,
// which also terminates import cycles. Node order in the result is
// completion order, not root order. On any resolution failure the first
// error is returned once outstanding subtrees have settled, with no partial
// result.
func GatherTree(ctx context.Context, roots []string, baseDir string, r resolver.Resolver) ([]*TreeNode, error) {
	if r == nil {
		return nil, fmt.Errorf("resolver is required")
	}

	state := &gatherState{
		resolver: r,
		visited:  make(map[string]bool),
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, root := range roots {
		root := root
		g.Go(func() error {
			_, err := state.gather(ctx, root, baseDir)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return state.nodes, nil
}

// gather resolves one reference from searchDir, expands its imports depth
// first, and returns the canonical locator the parent's edge points at.
func (s *gatherState) gather(ctx context.Context, reference, searchDir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	url, err := s.resolver.Canonicalize(reference, searchDir)
	if err != nil {
		return "", err
	}

	if !s.visit(url) {
		return url, nil
	}

	file, err := s.resolver.Fetch(ctx, reference, searchDir)
	if err != nil {
		return "", err
	}

	matches := ScanImports(file.Source)
	edges := make([]ImportEdge, 0, len(matches))
	childDir := parentDir(url)
	for _, m := range matches {
		locator, err := s.gather(ctx, m.Path, childDir)
		if err != nil {
			return "", err
		}
		edges = append(edges, ImportEdge{
			Reference: m.Path,
			Locator:   locator,
			Start:     m.Start,
			End:       m.End,
		})
	}

	s.add(&TreeNode{
		SourceFile: resolver.SourceFile{
			Locator:  url,
			Source:   file.Source,
			Provider: file.Provider,
		},
		Reference: reference,
		Imports:   edges,
	})

	return url, nil
}
