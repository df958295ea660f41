package imports

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/solgather/solgather/resolver"
)

// queueEntry is one pending fetch in the flat gather. cwd is the directory
// the fetch resolves from, file the as-written reference, relativeTo the
// directory the emitted locator joins onto.
type queueEntry struct {
	cwd        string
	file       string
	relativeTo string
}

// joinLocator joins name onto dir with slash arithmetic. Remote dirs keep
// their scheme's double slash, which path.Join's cleaning would collapse.
func joinLocator(dir, name string) string {
	if scheme, rest, ok := strings.Cut(dir, "://"); ok {
		return scheme + "://" + path.Join(rest, name)
	}
	return path.Join(dir, name)
}

// GatherSources returns every file reachable from the roots as a flat list
// in breadth-first discovery order. Locators for dot-relative references are
// computed with slash-path arithmetic local to this traversal rather than by
// the resolver, and source text is never modified. Visiting is keyed by the
// locally computed name, so the list holds at most one entry per name.
func GatherSources(ctx context.Context, roots []string, baseDir string, r resolver.Resolver) ([]resolver.SourceFile, error) {
	if r == nil {
		return nil, fmt.Errorf("resolver is required")
	}

	visited := make(map[string]bool)
	queue := make([]queueEntry, 0, len(roots))
	for _, root := range roots {
		// Relative roots become absolute against baseDir; roots that
		// already name an absolute path or a remote URL stay as written.
		seed := root
		if !path.IsAbs(root) && !strings.Contains(root, "://") {
			seed = joinLocator(baseDir, root)
		}
		visited[seed] = true
		queue = append(queue, queueEntry{cwd: baseDir, file: seed, relativeTo: baseDir})
	}

	var result []resolver.SourceFile
	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]

		file, err := r.Fetch(ctx, entry.file, entry.cwd)
		if err != nil {
			return nil, err
		}

		// A dot-relative reference keeps its position relative to the file
		// that imported it; anything else is emitted under the exact name it
		// was imported with.
		emitted := entry.file
		if strings.HasPrefix(entry.file, ".") {
			emitted = joinLocator(entry.relativeTo, entry.file)
		}
		result = append(result, resolver.SourceFile{
			Locator:  emitted,
			Source:   file.Source,
			Provider: file.Provider,
		})

		emittedDir := parentDir(emitted)
		fetchedDir := parentDir(file.Locator)
		for _, literal := range FindImports(file) {
			name := literal
			if strings.HasPrefix(literal, ".") {
				name = joinLocator(emittedDir, literal)
			}
			if visited[name] {
				continue
			}
			visited[name] = true
			queue = append(queue, queueEntry{cwd: fetchedDir, file: literal, relativeTo: emittedDir})
		}
	}

	return result, nil
}
