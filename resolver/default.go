package resolver

// DefaultConfig assembles the standard resolver chain.
type DefaultConfig struct {
	// Remappings of the form prefix=target, applied before resolution.
	Remappings []string
	// CacheSize bounds the in-process caches; zero selects
	// DefaultCacheSize.
	CacheSize int
	// GitRevision, when set, serves local references from that revision of
	// the repository at RepoPath instead of the working tree.
	GitRevision string
	RepoPath    string
	// ObjectStore enables the s3:// backend when non-nil.
	ObjectStore *ObjectStoreConfig
}

// NewDefaultResolver builds the chain the CLI uses: remappings in front of
// the filesystem (or one git revision of it), package directories, GitHub,
// plain HTTP, and optionally an object store, all wrapped in an in-process
// LRU cache.
func NewDefaultResolver(cfg DefaultConfig, opts ...Option) (Resolver, error) {
	var backends []Resolver

	if cfg.GitRevision != "" {
		git, err := NewGitRevisionResolver(cfg.RepoPath, cfg.GitRevision, opts...)
		if err != nil {
			return nil, err
		}
		backends = append(backends, git)
	} else {
		backends = append(backends, NewFSResolver(opts...))
	}

	backends = append(backends,
		NewNodeResolver(opts...),
		NewGitHubResolver(opts...),
		NewHTTPResolver(opts...),
	)

	if cfg.ObjectStore != nil {
		store, err := NewObjectStoreResolver(*cfg.ObjectStore, opts...)
		if err != nil {
			return nil, err
		}
		backends = append(backends, store)
	}

	var chain Resolver = NewChainResolver(backends...)
	if len(cfg.Remappings) > 0 {
		remap, err := NewRemappingResolver(chain, cfg.Remappings, opts...)
		if err != nil {
			return nil, err
		}
		chain = remap
	}

	return NewCachingResolver(chain, cfg.CacheSize, opts...)
}
