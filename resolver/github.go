package resolver

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// GitHub maps github.com file references to raw content URLs. A reference
// looks like github.com/owner/repo/path/file.sol with an optional #ref
// suffix selecting a branch, tag, or commit; browser URLs with a /blob/
// segment are accepted too.
type GitHub struct {
	http  *HTTP
	token string
	ref   string
	log   zerolog.Logger
}

// NewGitHubResolver returns a GitHub backend. WithToken authenticates
// fetches and WithGitHubRef changes the revision used when a reference
// names none.
func NewGitHubResolver(opts ...Option) *GitHub {
	o := newOptions(opts)
	return &GitHub{
		http:  &HTTP{client: o.client, log: o.logger},
		token: o.token,
		ref:   o.githubRef,
		log:   o.logger,
	}
}

// Canonicalize maps the reference to its raw.githubusercontent.com URL.
// The mapping is pure, so it works offline.
func (g *GitHub) Canonicalize(reference, searchDir string) (string, error) {
	owner, repo, file, ref, ok := splitGitHubReference(reference)
	if !ok {
		return "", notFound(reference)
	}
	if ref == "" {
		ref = g.ref
	}
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", owner, repo, ref, file), nil
}

// Fetch downloads the referenced file's raw content.
func (g *GitHub) Fetch(ctx context.Context, reference, searchDir string) (*SourceFile, error) {
	target, err := g.Canonicalize(reference, searchDir)
	if err != nil {
		return nil, err
	}

	var header http.Header
	if g.token != "" {
		header = http.Header{"Authorization": []string{"token " + g.token}}
	}

	return g.http.get(ctx, reference, target, header, "github")
}

// splitGitHubReference splits github.com/owner/repo/path#ref into its
// parts. ok is false when the reference is not a github.com file path.
func splitGitHubReference(reference string) (owner, repo, file, ref string, ok bool) {
	rest, found := strings.CutPrefix(reference, "github.com/")
	if !found {
		rest, found = strings.CutPrefix(reference, "https://github.com/")
	}
	if !found {
		return "", "", "", "", false
	}

	if i := strings.LastIndex(rest, "#"); i >= 0 {
		rest, ref = rest[:i], rest[i+1:]
	}

	parts := strings.SplitN(rest, "/", 3)
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", "", false
	}
	owner, repo, file = parts[0], parts[1], parts[2]

	// Browser URLs carry the revision in a blob segment.
	if blobRest, isBlob := strings.CutPrefix(file, "blob/"); isBlob {
		blobRef, blobFile, hasFile := strings.Cut(blobRest, "/")
		if !hasFile || blobFile == "" {
			return "", "", "", "", false
		}
		if ref == "" {
			ref = blobRef
		}
		file = blobFile
	}

	return owner, repo, file, ref, true
}
