package imports

import (
	"context"
	"strings"

	"github.com/solgather/solgather/resolver"
)

// CanonizeImports rewrites every node's import literals to the canonical
// locators on its edges and strips the tree bookkeeping, leaving plain
// files. The rewrite splices locators into the byte spans recorded at
// extraction, so a literal that is a substring of another literal cannot be
// clobbered. Input nodes are not modified; a second pass over the same tree
// produces byte-identical output.
func CanonizeImports(tree []*TreeNode) []resolver.SourceFile {
	files := make([]resolver.SourceFile, 0, len(tree))
	for _, node := range tree {
		files = append(files, resolver.SourceFile{
			Locator:  node.Locator,
			Source:   spliceLocators(node.Source, node.Imports),
			Provider: node.Provider,
		})
	}
	return files
}

// spliceLocators rebuilds source with each edge's locator in place of the
// edge's span. Spans coming from ScanImports are ascending and disjoint;
// spans that do not fit the text are skipped.
func spliceLocators(source string, edges []ImportEdge) string {
	if len(edges) == 0 {
		return source
	}

	var b strings.Builder
	b.Grow(len(source) + len(edges)*16)
	last := 0
	for _, e := range edges {
		if e.Start < last || e.End < e.Start || e.End > len(source) {
			continue
		}
		b.WriteString(source[last:e.Start])
		b.WriteString(e.Locator)
		last = e.End
	}
	b.WriteString(source[last:])
	return b.String()
}

// GatherCanonical gathers the dependency tree of the roots and returns every
// reached file with its import literals rewritten to canonical locators.
func GatherCanonical(ctx context.Context, roots []string, baseDir string, r resolver.Resolver) ([]resolver.SourceFile, error) {
	tree, err := GatherTree(ctx, roots, baseDir, r)
	if err != nil {
		return nil, err
	}
	return CanonizeImports(tree), nil
}
