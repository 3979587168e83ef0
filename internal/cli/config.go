package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/TsafasN/gitlab-manager/pkg/errors"
	"github.com/TsafasN/gitlab-manager/pkg/gitlabmanager"
)

// connectionFlags holds the persistent connection flags shared by all
// API-facing commands.
type connectionFlags struct {
	url        string
	token      string
	oauthToken string
	jobToken   string
	configPath string
	noCache    bool
}

func (f *connectionFlags) register(root *cobra.Command) {
	fs := root.PersistentFlags()
	fs.StringVar(&f.url, "url", "", "GitLab instance URL (env GITLAB_URL)")
	fs.StringVar(&f.token, "token", "", "personal access token (env GITLAB_TOKEN)")
	fs.StringVar(&f.oauthToken, "oauth-token", "", "OAuth token (env GITLAB_OAUTH_TOKEN)")
	fs.StringVar(&f.jobToken, "job-token", "", "CI job token (env CI_JOB_TOKEN)")
	fs.StringVar(&f.configPath, "config", "", "config file (default ~/.config/gitlab-manager/config.toml)")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable project discovery caching")
}

// settings is the merged view of config file, environment, and flags.
type settings struct {
	URL        string `toml:"url"`
	Token      string `toml:"token"`
	OAuthToken string `toml:"oauth_token"`
	JobToken   string `toml:"job_token"`

	Cache cacheSettings `toml:"cache"`
}

type cacheSettings struct {
	// Backend selects the cache implementation: "file" (default), "redis",
	// "mongo", or "none".
	Backend string `toml:"backend"`

	// TTL is how long discovery results stay fresh, as a Go duration
	// string. Empty means one hour; "0" means entries never expire.
	TTL string `toml:"ttl"`

	Redis redisSettings `toml:"redis"`
	Mongo mongoSettings `toml:"mongo"`
}

type redisSettings struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type mongoSettings struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// loadSettings resolves connection settings with flags taking precedence
// over environment variables, which take precedence over the config file.
func loadSettings(conn *connectionFlags) (settings, error) {
	var s settings

	path := conn.configPath
	if path == "" {
		path = defaultConfigPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &s); err != nil {
				return s, errors.Wrap(errors.ErrCodeConfiguration, err, "parsing config file %s", path)
			}
		} else if conn.configPath != "" {
			return s, errors.New(errors.ErrCodeConfiguration, "config file not found: %s", path)
		}
	}

	applyTier(&s, os.Getenv("GITLAB_URL"),
		os.Getenv("GITLAB_TOKEN"), os.Getenv("GITLAB_OAUTH_TOKEN"), os.Getenv("CI_JOB_TOKEN"))
	applyTier(&s, conn.url, conn.token, conn.oauthToken, conn.jobToken)

	return s, nil
}

// applyTier overlays one precedence tier. The URL overrides when set. A tier
// that sets any credential replaces the credentials of the tiers below it
// wholesale, so a config-file token does not linger next to a flag token.
func applyTier(s *settings, url, token, oauthToken, jobToken string) {
	if url != "" {
		s.URL = url
	}
	if token != "" || oauthToken != "" || jobToken != "" {
		s.Token = token
		s.OAuthToken = oauthToken
		s.JobToken = jobToken
	}
}

// credential picks the configured credential. Exactly one must be set.
func (s settings) credential() (gitlabmanager.Credential, error) {
	var (
		cred  gitlabmanager.Credential
		count int
	)
	if s.Token != "" {
		cred = gitlabmanager.PrivateToken(s.Token)
		count++
	}
	if s.OAuthToken != "" {
		cred = gitlabmanager.OAuthToken(s.OAuthToken)
		count++
	}
	if s.JobToken != "" {
		cred = gitlabmanager.JobToken(s.JobToken)
		count++
	}
	switch count {
	case 0:
		return cred, errors.New(errors.ErrCodeConfiguration,
			"no credential configured: set --token, --oauth-token, or --job-token")
	case 1:
		return cred, nil
	default:
		return cred, errors.New(errors.ErrCodeConfiguration,
			"multiple credentials configured: supply exactly one of token, oauth token, or job token")
	}
}

// cacheTTL parses the configured discovery cache TTL, defaulting to an hour.
func (s settings) cacheTTL() (time.Duration, error) {
	if s.Cache.TTL == "" {
		return time.Hour, nil
	}
	ttl, err := time.ParseDuration(s.Cache.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeConfiguration, err, "invalid cache ttl %q", s.Cache.TTL)
	}
	if ttl < 0 {
		return 0, errors.New(errors.ErrCodeConfiguration, "cache ttl cannot be negative")
	}
	return ttl, nil
}

func defaultConfigPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// cacheDir returns the cache directory using the XDG convention.
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
