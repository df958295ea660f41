package gather

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/solgather/solgather/internal/config"
	"github.com/solgather/solgather/resolver"
)

// SetupParams carries the flag values shared by the gathering commands.
type SetupParams struct {
	// Base overrides the configured base directory.
	Base string
	// Revision, when set, gathers local sources from that git revision
	// instead of the working tree.
	Revision string
	// Remappings given on the command line, applied after the configured
	// ones.
	Remappings []string
	// Patterns are the source arguments; empty falls back to the
	// configured sources.
	Patterns []string
}

// Setup is everything a gathering command needs to run.
type Setup struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Resolver resolver.Resolver
	BaseDir  string
	Roots    []string
}

// NewSetup loads configuration, assembles the resolver chain, and
// expands the source patterns into gatherable roots.
func NewSetup(cmd *cobra.Command, params SetupParams) (*Setup, error) {
	configPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := NewLogger(cmd)

	baseDir, err := resolveBaseDir(params.Base, cfg)
	if err != nil {
		return nil, err
	}

	patterns := params.Patterns
	if len(patterns) == 0 {
		patterns = cfg.Sources
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no sources given (pass source patterns or set sources in .solgather.yaml)")
	}

	roots, err := ExpandRoots(baseDir, patterns)
	if err != nil {
		return nil, err
	}

	r, err := newResolver(cfg, baseDir, params.Revision, params.Remappings, logger)
	if err != nil {
		return nil, err
	}

	return &Setup{
		Config:   cfg,
		Logger:   logger,
		Resolver: r,
		BaseDir:  baseDir,
		Roots:    roots,
	}, nil
}

// NewLogger builds the CLI logger. The root --verbose flag enables
// debug-level console output on stderr; otherwise only warnings and
// errors are shown.
func NewLogger(cmd *cobra.Command) zerolog.Logger {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// ExpandRoots resolves source patterns to gatherable root references.
// Patterns with glob metacharacters are expanded against baseDir, and
// filesystem matches come back dot-prefixed so the resolver reads them
// relative to baseDir. Literal references pass through untouched,
// except that paths which exist under baseDir are dot-prefixed too.
func ExpandRoots(baseDir string, patterns []string) ([]string, error) {
	if strings.Contains(baseDir, "://") {
		return patterns, nil
	}

	roots := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			roots = append(roots, normalizeLiteral(baseDir, pattern))
			continue
		}

		cleaned := strings.TrimPrefix(pattern, "./")
		matches, err := doublestar.Glob(os.DirFS(baseDir), cleaned)
		if err != nil {
			return nil, fmt.Errorf("bad source pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no sources match %q under %s", pattern, baseDir)
		}

		sort.Strings(matches)
		for _, match := range matches {
			roots = append(roots, "./"+match)
		}
	}
	return roots, nil
}

// normalizeLiteral dot-prefixes plain relative paths that exist under
// baseDir; everything else (absolute paths, URLs, package references)
// is left for the resolver chain to route.
func normalizeLiteral(baseDir, reference string) string {
	if strings.HasPrefix(reference, ".") || path.IsAbs(reference) || strings.Contains(reference, "://") {
		return reference
	}
	if _, err := os.Stat(filepath.Join(baseDir, filepath.FromSlash(reference))); err == nil {
		return "./" + reference
	}
	return reference
}

// resolveBaseDir picks the gather base: the --base flag when set, else
// the configured base, else the current directory. Local bases are made
// absolute; remote ones pass through.
func resolveBaseDir(flagBase string, cfg *config.Config) (string, error) {
	base := flagBase
	if base == "" {
		base = cfg.Base
	}
	if base == "" {
		base = "."
	}
	if strings.Contains(base, "://") {
		return base, nil
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("resolving base directory %q: %w", base, err)
	}
	return abs, nil
}

// newResolver assembles the default chain for cfg plus any extra
// remappings given on the command line.
func newResolver(cfg *config.Config, baseDir, revision string, extraRemappings []string, logger zerolog.Logger) (resolver.Resolver, error) {
	remappings := make([]string, 0, len(cfg.Remappings)+len(extraRemappings))
	remappings = append(remappings, cfg.Remappings...)
	remappings = append(remappings, extraRemappings...)

	defaultCfg := resolver.DefaultConfig{
		Remappings: remappings,
		CacheSize:  cfg.Cache.Size,
	}
	if revision != "" {
		defaultCfg.GitRevision = revision
		defaultCfg.RepoPath = baseDir
	}
	if cfg.ObjectStore.Endpoint != "" {
		defaultCfg.ObjectStore = &resolver.ObjectStoreConfig{
			Endpoint:  cfg.ObjectStore.Endpoint,
			AccessKey: cfg.ObjectStore.AccessKey,
			SecretKey: cfg.ObjectStore.SecretKey,
			UseSSL:    cfg.ObjectStore.UseSSL,
		}
	}

	opts := []resolver.Option{resolver.WithLogger(logger)}
	if cfg.GitHub.Token != "" {
		opts = append(opts, resolver.WithToken(cfg.GitHub.Token))
	}
	if cfg.GitHub.Ref != "" {
		opts = append(opts, resolver.WithGitHubRef(cfg.GitHub.Ref))
	}

	return resolver.NewDefaultResolver(defaultCfg, opts...)
}
