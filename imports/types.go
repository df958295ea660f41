// Package imports gathers the transitive import graph of source files:
// scanning text for import statements, resolving every reference through a
// resolver.Resolver, and optionally rewriting the literals to the canonical
// locators they resolved to.
package imports

import "github.com/solgather/solgather/resolver"

// ImportEdge records one import discovered in a file: the as-written
// literal, the canonical locator it resolved to, and the literal's byte span
// in the importing file's text.
type ImportEdge struct {
	Reference string `json:"reference"`
	Locator   string `json:"url"`
	Start     int    `json:"-"`
	End       int    `json:"-"`
}

// TreeNode is one gathered file together with the reference that reached it
// and its resolved imports in source order. A traversal creates at most one
// TreeNode per canonical locator.
type TreeNode struct {
	resolver.SourceFile
	Reference string       `json:"reference"`
	Imports   []ImportEdge `json:"imports"`
}
