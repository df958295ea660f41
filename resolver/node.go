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

// Node resolves package-style references such as pkg/token.sol by walking
// up from the search directory through package directories, the way
// node-style tooling locates installed dependencies.
type Node struct {
	packageDir string
	log        zerolog.Logger
}

// NewNodeResolver returns a package-directory backend. The directory name
// defaults to node_modules and can be changed with WithPackageDir.
func NewNodeResolver(opts ...Option) *Node {
	o := newOptions(opts)
	return &Node{packageDir: o.packageDir, log: o.logger}
}

// Canonicalize walks up from searchDir and returns the reference's path
// under the nearest package directory holding the reference's package.
func (n *Node) Canonicalize(reference, searchDir string) (string, error) {
	if strings.HasPrefix(reference, ".") || path.IsAbs(reference) || isRemote(reference) || isRemote(searchDir) {
		return "", notFound(reference)
	}

	pkg, _, ok := strings.Cut(reference, "/")
	if !ok || pkg == "" {
		return "", notFound(reference)
	}

	dir := searchDir
	for {
		if info, err := os.Stat(path.Join(dir, n.packageDir, pkg)); err == nil && info.IsDir() {
			return path.Join(dir, n.packageDir, reference), nil
		}
		parent := path.Dir(dir)
		if parent == dir {
			return "", notFound(reference)
		}
		dir = parent
	}
}

// Fetch reads the referenced file from the package directory it
// canonicalizes into.
func (n *Node) Fetch(ctx context.Context, reference, searchDir string) (*SourceFile, error) {
	url, err := n.Canonicalize(reference, searchDir)
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

	n.log.Debug().Str("reference", reference).Str("locator", url).Msg("resolved in package directory")

	return &SourceFile{Locator: url, Source: string(data), Provider: "node"}, nil
}
