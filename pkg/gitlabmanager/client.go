package gitlabmanager

import (
	"time"

	gogitlab "github.com/xanzy/go-gitlab"

	"github.com/TsafasN/gitlab-manager/pkg/cache"
	"github.com/TsafasN/gitlab-manager/pkg/errors"
)

// CredentialKind identifies how a credential authenticates against GitLab.
type CredentialKind string

const (
	// CredentialPrivateToken is a personal or project access token.
	CredentialPrivateToken CredentialKind = "private-token"

	// CredentialOAuthToken is an OAuth2 bearer token.
	CredentialOAuthToken CredentialKind = "oauth-token"

	// CredentialJobToken is a CI job token (CI_JOB_TOKEN).
	CredentialJobToken CredentialKind = "job-token"
)

// Credential is a tagged credential variant. The zero value is invalid;
// construct one with PrivateToken, OAuthToken, or JobToken.
type Credential struct {
	kind  CredentialKind
	value string
}

// PrivateToken returns a personal access token credential.
func PrivateToken(token string) Credential {
	return Credential{kind: CredentialPrivateToken, value: token}
}

// OAuthToken returns an OAuth2 token credential.
func OAuthToken(token string) Credential {
	return Credential{kind: CredentialOAuthToken, value: token}
}

// JobToken returns a CI job token credential.
func JobToken(token string) Credential {
	return Credential{kind: CredentialJobToken, value: token}
}

// Kind reports the credential variant. Empty for the zero value.
func (c Credential) Kind() CredentialKind {
	return c.kind
}

// Config holds the immutable settings captured at construction.
type Config struct {
	// BaseURL is the GitLab instance URL, e.g. "https://gitlab.com".
	BaseURL string

	// Credential authenticates all API calls. Exactly one kind must be set.
	Credential Credential
}

// Client is the entry point to the facade. It holds no mutable state beyond
// the configuration captured at construction; concurrency safety of the
// grouped services is inherited from the underlying GitLab client.
type Client struct {
	cfg Config

	Packages     *PackagesService
	Releases     *ReleasesService
	Pipelines    *PipelinesService
	Repositories *RepositoriesService
	Projects     *ProjectsService
}

// Option customizes optional Client behavior.
type Option func(*Client)

// WithProjectCache caches project discovery results (Projects.List, Search,
// Get) in the given backend for ttl. A ttl of zero means entries never
// expire. Forwarding operations are never cached.
func WithProjectCache(c cache.Cache, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.Projects.cache = c
		cl.Projects.keyer = cache.NewDefaultKeyer()
		cl.Projects.ttl = ttl
	}
}

// WithProjectKeyer overrides the cache key derivation, e.g. with a
// cache.ScopedKeyer when the backend is shared with other applications or
// tenants. Applied after WithProjectCache it replaces the default keyer.
func WithProjectKeyer(k cache.Keyer) Option {
	return func(cl *Client) {
		if k != nil {
			cl.Projects.keyer = k
		}
	}
}

// New constructs a Client for the instance at cfg.BaseURL. It fails with a
// CONFIGURATION_ERROR when the URL is missing or malformed, or when the
// credential is absent or empty. The connection itself is not exercised;
// authentication failures surface on the first API call.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := errors.ValidateURL(cfg.BaseURL); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "invalid GitLab URL")
	}
	if cfg.Credential.kind == "" {
		return nil, errors.New(errors.ErrCodeConfiguration, "no credential supplied")
	}
	if cfg.Credential.value == "" {
		return nil, errors.New(errors.ErrCodeConfiguration, "empty %s credential", cfg.Credential.kind)
	}

	gl, err := newGitLabClient(cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "connecting to %s", cfg.BaseURL)
	}

	c := newClient(cfg, apiSet{
		projects:        gl.Projects,
		packages:        gl.Packages,
		genericPackages: gl.GenericPackages,
		releases:        gl.Releases,
		pipelines:       gl.Pipelines,
		branches:        gl.Branches,
		tags:            gl.Tags,
	})
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func newGitLabClient(cfg Config) (*gogitlab.Client, error) {
	base := gogitlab.WithBaseURL(cfg.BaseURL)
	switch cfg.Credential.kind {
	case CredentialPrivateToken:
		return gogitlab.NewClient(cfg.Credential.value, base)
	case CredentialOAuthToken:
		return gogitlab.NewOAuthClient(cfg.Credential.value, base)
	case CredentialJobToken:
		return gogitlab.NewJobClient(cfg.Credential.value, base)
	default:
		return nil, errors.New(errors.ErrCodeConfiguration, "unknown credential kind %q", cfg.Credential.kind)
	}
}

// newClient wires the grouped services over a set of API interfaces. Tests
// construct clients directly from fakes through this path.
func newClient(cfg Config, apis apiSet) *Client {
	c := &Client{cfg: cfg}
	c.Packages = &PackagesService{packages: apis.packages, generic: apis.genericPackages}
	c.Releases = &ReleasesService{releases: apis.releases}
	c.Pipelines = &PipelinesService{pipelines: apis.pipelines}
	c.Repositories = &RepositoriesService{branches: apis.branches, tags: apis.tags}
	c.Projects = &ProjectsService{projects: apis.projects, packages: c.Packages, instance: cfg.BaseURL}
	return c
}

// BaseURL reports the instance URL the client was constructed with.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}
