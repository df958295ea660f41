package resolver

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Option configures optional backend behavior.
type Option func(*options)

type options struct {
	logger     zerolog.Logger
	client     *http.Client
	token      string
	githubRef  string
	packageDir string
}

func newOptions(opts []Option) options {
	o := options{
		logger:     zerolog.Nop(),
		client:     http.DefaultClient,
		githubRef:  "master",
		packageDir: "node_modules",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger routes backend diagnostics to logger. The default discards them.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHTTPClient replaces the HTTP client used by network backends.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithToken authenticates GitHub fetches, which raises the rate limit and
// reaches private repositories.
func WithToken(token string) Option {
	return func(o *options) {
		o.token = token
	}
}

// WithGitHubRef sets the revision used for GitHub references that carry no
// explicit #ref suffix. The default is master.
func WithGitHubRef(ref string) Option {
	return func(o *options) {
		o.githubRef = ref
	}
}

// WithPackageDir sets the directory name searched for package-style
// references. The default is node_modules.
func WithPackageDir(name string) Option {
	return func(o *options) {
		o.packageDir = name
	}
}
