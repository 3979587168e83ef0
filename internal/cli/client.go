package cli

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/TsafasN/gitlab-manager/pkg/cache"
	"github.com/TsafasN/gitlab-manager/pkg/errors"
	"github.com/TsafasN/gitlab-manager/pkg/gitlabmanager"
)

// buildClient assembles the API client from the resolved settings.
func buildClient(ctx context.Context, conn *connectionFlags, logger *log.Logger) (*gitlabmanager.Client, error) {
	s, err := loadSettings(conn)
	if err != nil {
		return nil, err
	}
	if s.URL == "" {
		return nil, errors.New(errors.ErrCodeConfiguration,
			"no GitLab URL configured: set --url, GITLAB_URL, or the config file")
	}
	cred, err := s.credential()
	if err != nil {
		return nil, err
	}

	var opts []gitlabmanager.Option
	if !conn.noCache {
		backend, err := newCacheBackend(ctx, s, logger)
		if err != nil {
			return nil, err
		}
		ttl, err := s.cacheTTL()
		if err != nil {
			return nil, err
		}
		opts = append(opts,
			gitlabmanager.WithProjectCache(backend, ttl),
			// Redis and Mongo backends may be shared with other tools,
			// so all keys carry an application scope.
			gitlabmanager.WithProjectKeyer(cache.NewScopedKeyer(nil, appName+":")),
		)
	}

	return gitlabmanager.New(gitlabmanager.Config{
		BaseURL:    s.URL,
		Credential: cred,
	}, opts...)
}

// newCacheBackend builds the discovery cache selected in the config file.
func newCacheBackend(ctx context.Context, s settings, logger *log.Logger) (cache.Cache, error) {
	switch s.Cache.Backend {
	case "", "file":
		dir, err := cacheDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "resolving cache directory")
		}
		c, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "opening file cache at %s", dir)
		}
		return c, nil
	case "redis":
		logger.Debug("connecting to redis cache", "addr", s.Cache.Redis.Addr)
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     s.Cache.Redis.Addr,
			Password: s.Cache.Redis.Password,
			DB:       s.Cache.Redis.DB,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "connecting to redis cache")
		}
		return c, nil
	case "mongo":
		logger.Debug("connecting to mongo cache", "uri", s.Cache.Mongo.URI)
		c, err := cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:        s.Cache.Mongo.URI,
			Database:   s.Cache.Mongo.Database,
			Collection: s.Cache.Mongo.Collection,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "connecting to mongo cache")
		}
		return c, nil
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeConfiguration,
			"unknown cache backend %q: want file, redis, mongo, or none", s.Cache.Backend)
	}
}
