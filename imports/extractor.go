package imports

import (
	"regexp"

	"github.com/solgather/solgather/resolver"
)

// ImportMatch is one import path literal found by ScanImports. Start and End
// are the byte span of the literal itself, quotes excluded.
type ImportMatch struct {
	Path  string
	Start int
	End   int
}

// importStatement matches the import shapes this scanner understands:
//
//	import "<path>";
//	import "<path>" as <name>;
//	import <bindings> from "<path>";
//
// in both quote styles. A statement ends at a semicolon; anything that does
// not match is skipped without diagnostics.
var importStatement = regexp.MustCompile(
	`\bimport\s+(?:"([^"';]*)"|'([^"';]*)')\s*(?:as\s+[^;'"]*)?;` +
		`|\bimport\s+[^;'"]+?from\s+(?:"([^"';]*)"|'([^"';]*)')\s*;`)

// ScanImports scans source text for import statements and returns every
// import path literal with its byte span, in source order. Duplicate
// literals are all returned; deduplication belongs to the traversal. This is
// a lexical scan, not a parse: imports inside comments or multi-line strings
// can slip through, and statements assembled by interpolation are not seen.
func ScanImports(source string) []ImportMatch {
	var matches []ImportMatch
	for _, m := range importStatement.FindAllStringSubmatchIndex(source, -1) {
		// Exactly one of the four capture groups holds the literal.
		for g := 1; g <= 4; g++ {
			start, end := m[2*g], m[2*g+1]
			if start >= 0 {
				matches = append(matches, ImportMatch{
					Path:  source[start:end],
					Start: start,
					End:   end,
				})
				break
			}
		}
	}
	return matches
}

// FindImports returns the import path literals of file, in source order.
func FindImports(file *resolver.SourceFile) []string {
	matches := ScanImports(file.Source)
	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, m.Path)
	}
	return paths
}
