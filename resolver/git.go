package resolver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const gitCommandTimeout = 10 * time.Second

// Git resolves references against one revision of a local git repository
// through the git CLI, so sources can be gathered exactly as they stood at
// a commit. Locators take the form <revision>:<path-in-repo>.
type Git struct {
	repoPath string
	revision string
	log      zerolog.Logger
}

// NewGitRevisionResolver returns a backend serving files from revision of
// the repository at repoPath.
func NewGitRevisionResolver(repoPath, revision string, opts ...Option) (*Git, error) {
	if err := validateRevision(revision); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	return &Git{repoPath: repoPath, revision: revision, log: o.logger}, nil
}

// Canonicalize joins dot-relative references onto the repo-relative search
// directory and prefixes the revision. References already shaped
// <revision>:<path> pass through cleaned, and absolute paths under the
// repository root are translated to repo-relative form so worktree-derived
// paths resolve at the revision too.
func (g *Git) Canonicalize(reference, searchDir string) (string, error) {
	if rest, ok := strings.CutPrefix(reference, g.revision+":"); ok {
		return g.revision + ":" + path.Clean(rest), nil
	}

	if path.IsAbs(reference) {
		rel, ok := g.repoRel(reference)
		if !ok {
			return "", notFound(reference)
		}
		return g.revision + ":" + path.Clean(rel), nil
	}

	if !strings.HasPrefix(reference, ".") {
		return "", notFound(reference)
	}

	dir := strings.TrimPrefix(searchDir, g.revision+":")
	if isRemote(dir) {
		return "", notFound(reference)
	}
	rel, ok := g.repoRel(dir)
	if !ok {
		return "", notFound(reference)
	}
	return g.revision + ":" + path.Join(rel, reference), nil
}

// repoRel maps an absolute path under the repository root to its
// repo-relative form. Relative paths are returned unchanged.
func (g *Git) repoRel(p string) (string, bool) {
	if !path.IsAbs(p) {
		return p, true
	}
	rel, err := filepath.Rel(g.repoPath, filepath.FromSlash(p))
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	if rel == "." {
		return "", true
	}
	return rel, true
}

// Fetch reads the referenced file's content at the configured revision.
func (g *Git) Fetch(ctx context.Context, reference, searchDir string) (*SourceFile, error) {
	url, err := g.Canonicalize(reference, searchDir)
	if err != nil {
		return nil, err
	}

	relPath := strings.TrimPrefix(url, g.revision+":")
	if err := validateRepoRelPath(relPath); err != nil {
		return nil, &FetchError{Reference: reference, Err: err}
	}

	data, stderr, err := g.show(ctx, relPath)
	if err != nil {
		if strings.Contains(stderr, "does not exist") || strings.Contains(stderr, "but not in") {
			return nil, notFound(reference)
		}
		if stderr != "" {
			return nil, &FetchError{Reference: reference, Err: fmt.Errorf("git command failed: %s", stderr)}
		}
		return nil, &FetchError{Reference: reference, Err: err}
	}

	g.log.Debug().Str("revision", g.revision).Str("path", relPath).Msg("read from git")

	return &SourceFile{Locator: url, Source: string(data), Provider: "git"}, nil
}

// show runs git show <revision>:<relPath> in the repository and returns
// stdout, trimmed stderr, and the run error.
func (g *Git) show(ctx context.Context, relPath string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, gitCommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "show", g.revision+":"+relPath)
	cmd.Dir = g.repoPath

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrText := strings.TrimSpace(stderr.String())
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, stderrText, fmt.Errorf("git command timed out after %s", gitCommandTimeout)
		}
		return nil, stderrText, err
	}

	return stdout.Bytes(), strings.TrimSpace(stderr.String()), nil
}

func validateRevision(revision string) error {
	if revision == "" {
		return fmt.Errorf("git revision cannot be empty")
	}
	if strings.HasPrefix(revision, "-") {
		return fmt.Errorf("git revision cannot start with '-': %q", revision)
	}
	if strings.ContainsAny(revision, "\x00\n\r\t ") {
		return fmt.Errorf("git revision contains whitespace or NUL: %q", revision)
	}
	return nil
}

func validateRepoRelPath(relPath string) error {
	if relPath == "" {
		return fmt.Errorf("git path cannot be empty")
	}
	if path.IsAbs(relPath) {
		return fmt.Errorf("git path must be relative: %q", relPath)
	}
	if strings.Contains(relPath, "\x00") {
		return fmt.Errorf("git path contains NUL: %q", relPath)
	}
	if relPath == ".." || strings.HasPrefix(relPath, "../") {
		return fmt.Errorf("git path escapes the repository: %q", relPath)
	}
	return nil
}
