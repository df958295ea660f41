// Package resolver turns import references into canonical locators and file
// content. Backends cover the filesystem, package directories, git revisions,
// HTTP, GitHub, and S3-compatible object stores; Chain composes them and
// Caching memoizes any of them.
package resolver

import (
	"context"
	"fmt"
	"strings"
)

// SourceFile is one fetched file at a stable point in time. Locator is the
// canonical identifier the file resolved to; Provider tags where the content
// came from ("fs", "http", "github", ...).
type SourceFile struct {
	Locator  string `json:"url"`
	Source   string `json:"source"`
	Provider string `json:"provider"`
}

// ErrNotFound reports that a reference could not be located. Backends also
// return it for reference shapes they do not handle, which is how a chain
// knows to move on to the next backend.
var ErrNotFound = fmt.Errorf("import not found")

// FetchError reports that a located file could not be read.
type FetchError struct {
	Reference string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %q: %v", e.Reference, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Resolver locates and loads source files.
//
// Canonicalize computes the locator a reference would resolve to from
// searchDir without fetching content. It must not fail just because the
// target file does not exist; it fails with ErrNotFound only for reference
// shapes the backend does not handle.
//
// Fetch resolves the reference and loads it. It returns ErrNotFound when the
// reference cannot be located and a FetchError when located content cannot
// be read.
type Resolver interface {
	Canonicalize(reference, searchDir string) (string, error)
	Fetch(ctx context.Context, reference, searchDir string) (*SourceFile, error)
}

// notFound wraps ErrNotFound with the reference that missed.
func notFound(reference string) error {
	return fmt.Errorf("%q: %w", reference, ErrNotFound)
}

// isRemote reports whether s addresses a remote scheme rather than a
// filesystem path.
func isRemote(s string) bool {
	return strings.Contains(s, "://")
}
