package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/dghubble/trie"
	"github.com/rs/zerolog"
)

// Remapping rewrites reference prefixes before delegating to the next
// resolver, the way solc remappings redirect symbolic package prefixes to
// vendored paths. The longest matching prefix wins; matching is aligned on
// slash segments.
type Remapping struct {
	next     Resolver
	prefixes *trie.PathTrie
	log      zerolog.Logger
}

// NewRemappingResolver parses remappings of the form prefix=target and
// wraps next with them.
func NewRemappingResolver(next Resolver, remappings []string, opts ...Option) (*Remapping, error) {
	if next == nil {
		return nil, fmt.Errorf("remapping resolver needs a next resolver")
	}
	o := newOptions(opts)

	prefixes := trie.NewPathTrie()
	for _, remapping := range remappings {
		prefix, target, ok := strings.Cut(remapping, "=")
		if !ok || prefix == "" {
			return nil, fmt.Errorf("malformed remapping %q, want prefix=target", remapping)
		}
		prefixes.Put(strings.TrimSuffix(prefix, "/"), target)
	}

	return &Remapping{next: next, prefixes: prefixes, log: o.logger}, nil
}

// Canonicalize delegates with the remapped reference.
func (r *Remapping) Canonicalize(reference, searchDir string) (string, error) {
	return r.next.Canonicalize(r.rewrite(reference), searchDir)
}

// Fetch delegates with the remapped reference.
func (r *Remapping) Fetch(ctx context.Context, reference, searchDir string) (*SourceFile, error) {
	rewritten := r.rewrite(reference)
	if rewritten != reference {
		r.log.Debug().Str("reference", reference).Str("rewritten", rewritten).Msg("applied remapping")
	}
	return r.next.Fetch(ctx, rewritten, searchDir)
}

// rewrite applies the longest matching prefix remapping to reference.
func (r *Remapping) rewrite(reference string) string {
	var matched, target string
	_ = r.prefixes.WalkPath(reference, func(key string, value interface{}) error {
		matched = key
		target = value.(string)
		return nil
	})
	if matched == "" {
		return reference
	}

	rest := strings.TrimPrefix(reference, matched)
	return strings.TrimSuffix(target, "/") + rest
}
