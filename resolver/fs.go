package resolver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/rs/zerolog"
)

// FS resolves references against the local filesystem. Absolute references
// stand alone; dot-relative references join onto the search directory.
// Package-style references with no leading dot or slash are left to other
// backends.
type FS struct {
	log zerolog.Logger
}

// NewFSResolver returns a filesystem backend.
func NewFSResolver(opts ...Option) *FS {
	o := newOptions(opts)
	return &FS{log: o.logger}
}

// Canonicalize cleans the path the reference would occupy on disk.
func (f *FS) Canonicalize(reference, searchDir string) (string, error) {
	switch {
	case path.IsAbs(reference):
		return path.Clean(reference), nil
	case strings.HasPrefix(reference, "."):
		if isRemote(searchDir) {
			return "", notFound(reference)
		}
		return path.Join(searchDir, reference), nil
	default:
		return "", notFound(reference)
	}
}

// Fetch reads the referenced file from disk.
func (f *FS) Fetch(ctx context.Context, reference, searchDir string) (*SourceFile, error) {
	url, err := f.Canonicalize(reference, searchDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(url)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(reference)
	}
	if err != nil {
		return nil, &FetchError{Reference: reference, Err: err}
	}

	f.log.Debug().Str("reference", reference).Str("locator", url).Msg("resolved on filesystem")

	return &SourceFile{Locator: url, Source: string(data), Provider: "fs"}, nil
}
