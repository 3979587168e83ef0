package gitlabmanager

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	gogitlab "github.com/xanzy/go-gitlab"

	"github.com/TsafasN/gitlab-manager/pkg/cache"
	"github.com/TsafasN/gitlab-manager/pkg/errors"
)

// ProjectsService discovers and looks up projects. Discovery results are
// read-only and may be cached when the client was built with
// WithProjectCache; every other service forwards uncached.
type ProjectsService struct {
	projects projectsAPI
	packages *PackagesService
	instance string

	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration
}

// ListProjectsOptions filters project discovery.
type ListProjectsOptions struct {
	// Owned restricts results to projects the current user owns.
	Owned bool

	// Membership restricts results to projects the current user is a
	// member of.
	Membership bool

	// Starred restricts results to starred projects.
	Starred bool

	// Search filters by a term matched against name and path.
	Search string

	// Visibility filters by "private", "internal", or "public".
	Visibility string

	// Topic restricts results to projects tagged with this topic.
	Topic string

	// OrderBy and Sort control result ordering, e.g. "last_activity_at"
	// descending.
	OrderBy string
	Sort    string

	// Limit caps the number of projects returned. Zero means all pages.
	Limit int

	// Refresh bypasses the cache and stores the fresh result.
	Refresh bool
}

// List returns projects visible to the authenticated user, across pages.
func (s *ProjectsService) List(ctx context.Context, opts ListProjectsOptions) ([]*Project, error) {
	key := ""
	if s.cache != nil {
		key = s.keyer.ProjectsKey(s.instance, cache.ProjectsKeyOpts{
			Owned:      opts.Owned,
			Membership: opts.Membership,
			Starred:    opts.Starred,
			Search:     opts.Search,
			Visibility: opts.Visibility,
			Topic:      opts.Topic,
			OrderBy:    opts.OrderBy,
			Sort:       opts.Sort,
			Limit:      opts.Limit,
		})
		if !opts.Refresh {
			var cached []*Project
			if s.lookup(ctx, key, &cached) {
				return cached, nil
			}
		}
	}

	projects, err := s.fetchAll(ctx, opts)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, projects)
	return projects, nil
}

// Search returns projects matching the given term.
func (s *ProjectsService) Search(ctx context.Context, term string) ([]*Project, error) {
	if term == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "search term cannot be empty")
	}
	return s.List(ctx, ListProjectsOptions{Search: term})
}

// ByNamespace returns the projects under a group or user namespace.
func (s *ProjectsService) ByNamespace(ctx context.Context, namespace string) ([]*Project, error) {
	if namespace == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "namespace cannot be empty")
	}

	projects, err := s.List(ctx, ListProjectsOptions{Search: namespace})
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimSuffix(namespace, "/") + "/"
	var result []*Project
	for _, p := range projects {
		if strings.HasPrefix(p.PathWithNamespace, prefix) {
			result = append(result, p)
		}
	}
	return result, nil
}

// ByTopic returns the projects tagged with the given topic.
func (s *ProjectsService) ByTopic(ctx context.Context, topic string) ([]*Project, error) {
	if topic == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "topic cannot be empty")
	}
	return s.List(ctx, ListProjectsOptions{Topic: topic})
}

// RecentActivity returns the most recently active projects, newest first.
// A non-positive limit defaults to 10.
func (s *ProjectsService) RecentActivity(ctx context.Context, limit int) ([]*Project, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.List(ctx, ListProjectsOptions{
		OrderBy: "last_activity_at",
		Sort:    "desc",
		Limit:   limit,
	})
}

// ProjectPackages pairs a project with its package listing.
type ProjectPackages struct {
	Project  *Project   `json:"project"`
	Packages []*Package `json:"packages"`
}

// ListWithPackages returns the projects holding at least minPackages
// registry packages, each with its packages attached. Projects whose
// package listing fails (no registry access, feature disabled) are skipped
// rather than failing the whole listing. A non-positive minPackages
// defaults to 1.
func (s *ProjectsService) ListWithPackages(ctx context.Context, minPackages int) ([]*ProjectPackages, error) {
	if minPackages <= 0 {
		minPackages = 1
	}

	projects, err := s.List(ctx, ListProjectsOptions{})
	if err != nil {
		return nil, err
	}

	var result []*ProjectPackages
	for _, p := range projects {
		pkgs, err := s.packages.List(ctx, ProjectID(p.ID), ListPackagesOptions{})
		if err != nil {
			continue
		}
		if len(pkgs) >= minPackages {
			result = append(result, &ProjectPackages{Project: p, Packages: pkgs})
		}
	}
	return result, nil
}

// Get returns a single project by reference. With refresh true the cache is
// bypassed and repopulated.
func (s *ProjectsService) Get(ctx context.Context, project ProjectRef, refresh bool) (*Project, error) {
	if err := project.validate(); err != nil {
		return nil, err
	}

	key := ""
	if s.cache != nil {
		key = s.keyer.ProjectKey(s.instance, project.String())
		if !refresh {
			var cached Project
			if s.lookup(ctx, key, &cached) {
				return &cached, nil
			}
		}
	}

	p, resp, err := s.projects.GetProject(project.pid(), &gogitlab.GetProjectOptions{}, gogitlab.WithContext(ctx))
	if err != nil {
		return nil, apiError(err, resp, "project %s", project)
	}
	result := newProject(p)
	s.store(ctx, key, result)
	return result, nil
}

func (s *ProjectsService) fetchAll(ctx context.Context, opts ListProjectsOptions) ([]*Project, error) {
	listOpts := &gogitlab.ListProjectsOptions{
		ListOptions: gogitlab.ListOptions{PerPage: 100},
	}
	if opts.Owned {
		listOpts.Owned = gogitlab.Ptr(true)
	}
	if opts.Membership {
		listOpts.Membership = gogitlab.Ptr(true)
	}
	if opts.Starred {
		listOpts.Starred = gogitlab.Ptr(true)
	}
	if opts.Search != "" {
		listOpts.Search = gogitlab.Ptr(opts.Search)
		listOpts.SearchNamespaces = gogitlab.Ptr(true)
	}
	if opts.Visibility != "" {
		listOpts.Visibility = gogitlab.Ptr(gogitlab.VisibilityValue(opts.Visibility))
	}
	if opts.Topic != "" {
		listOpts.Topic = gogitlab.Ptr(opts.Topic)
	}
	if opts.OrderBy != "" {
		listOpts.OrderBy = gogitlab.Ptr(opts.OrderBy)
	}
	if opts.Sort != "" {
		listOpts.Sort = gogitlab.Ptr(opts.Sort)
	}

	var result []*Project
	for {
		projects, resp, err := s.projects.ListProjects(listOpts, gogitlab.WithContext(ctx))
		if err != nil {
			return nil, apiError(err, resp, "listing projects")
		}
		for _, p := range projects {
			result = append(result, newProject(p))
		}
		if opts.Limit > 0 && len(result) >= opts.Limit {
			return result[:opts.Limit], nil
		}
		if resp.NextPage == 0 {
			break
		}
		listOpts.Page = resp.NextPage
	}
	return result, nil
}

// lookup reads and decodes a cache entry. Transient backend failures are
// retried with backoff; anything that still fails, and any decode failure,
// is treated as a miss.
func (s *ProjectsService) lookup(ctx context.Context, key string, dest any) bool {
	if s.cache == nil || key == "" {
		return false
	}
	var (
		data []byte
		hit  bool
	)
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, hit, err = s.cache.Get(ctx, key)
		return err
	})
	if err != nil || !hit {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// store writes a cache entry best effort, retrying transient backend
// failures. A write that still fails never fails the operation that
// produced the data.
func (s *ProjectsService) store(ctx context.Context, key string, value any) {
	if s.cache == nil || key == "" {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = cache.RetryWithBackoff(ctx, func() error {
		return s.cache.Set(ctx, key, data, s.ttl)
	})
}
