package gitlabmanager

import (
	"context"

	gogitlab "github.com/xanzy/go-gitlab"

	"github.com/TsafasN/gitlab-manager/pkg/errors"
)

// ReleasesService forwards release operations.
type ReleasesService struct {
	releases releasesAPI
}

// CreateReleaseOptions customizes release creation beyond tag and name.
type CreateReleaseOptions struct {
	// Description in Markdown.
	Description string

	// Ref to create the tag from when the tag does not exist yet.
	// Empty requires the tag to already exist.
	Ref string

	// Assets are external links attached to the release.
	Assets []AssetLink
}

// Create publishes a release for the given tag. The tag must already exist
// unless opts.Ref names a branch or commit to create it from. Creating a
// release for a tag that already has one fails with a CONFLICT error.
func (s *ReleasesService) Create(ctx context.Context, project ProjectRef, tag, name string, opts CreateReleaseOptions) (*Release, error) {
	if err := project.validate(); err != nil {
		return nil, err
	}
	if err := errors.ValidateRef(tag); err != nil {
		return nil, err
	}
	if name == "" {
		name = tag
	}

	createOpts := &gogitlab.CreateReleaseOptions{
		TagName: gogitlab.Ptr(tag),
		Name:    gogitlab.Ptr(name),
	}
	if opts.Description != "" {
		createOpts.Description = gogitlab.Ptr(opts.Description)
	}
	if opts.Ref != "" {
		createOpts.Ref = gogitlab.Ptr(opts.Ref)
	}
	if len(opts.Assets) > 0 {
		assets := &gogitlab.ReleaseAssetsOptions{}
		for _, a := range opts.Assets {
			assets.Links = append(assets.Links, &gogitlab.ReleaseAssetLinkOptions{
				Name: gogitlab.Ptr(a.Name),
				URL:  gogitlab.Ptr(a.URL),
			})
		}
		createOpts.Assets = assets
	}

	rel, resp, err := s.releases.CreateRelease(project.pid(), createOpts, gogitlab.WithContext(ctx))
	if err != nil {
		return nil, apiError(err, resp, "creating release %s in project %s", tag, project)
	}
	return newRelease(rel), nil
}

// List returns all releases of the project, newest first, across pages.
func (s *ReleasesService) List(ctx context.Context, project ProjectRef) ([]*Release, error) {
	if err := project.validate(); err != nil {
		return nil, err
	}

	listOpts := &gogitlab.ListReleasesOptions{
		ListOptions: gogitlab.ListOptions{PerPage: 100},
	}
	var result []*Release
	for {
		rels, resp, err := s.releases.ListReleases(project.pid(), listOpts, gogitlab.WithContext(ctx))
		if err != nil {
			return nil, apiError(err, resp, "listing releases in project %s", project)
		}
		for _, r := range rels {
			result = append(result, newRelease(r))
		}
		if resp.NextPage == 0 {
			break
		}
		listOpts.Page = resp.NextPage
	}
	return result, nil
}

// Get returns the release bound to the given tag.
func (s *ReleasesService) Get(ctx context.Context, project ProjectRef, tag string) (*Release, error) {
	if err := project.validate(); err != nil {
		return nil, err
	}
	if err := errors.ValidateRef(tag); err != nil {
		return nil, err
	}

	rel, resp, err := s.releases.GetRelease(project.pid(), tag, gogitlab.WithContext(ctx))
	if err != nil {
		return nil, apiError(err, resp, "release %s in project %s", tag, project)
	}
	return newRelease(rel), nil
}

// UpdateReleaseOptions carries the fields Update may change. Empty fields
// are left untouched.
type UpdateReleaseOptions struct {
	Name        string
	Description string
}

// Update modifies an existing release in place.
func (s *ReleasesService) Update(ctx context.Context, project ProjectRef, tag string, opts UpdateReleaseOptions) (*Release, error) {
	if err := project.validate(); err != nil {
		return nil, err
	}
	if err := errors.ValidateRef(tag); err != nil {
		return nil, err
	}
	if opts.Name == "" && opts.Description == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to update for release %s", tag)
	}

	updateOpts := &gogitlab.UpdateReleaseOptions{}
	if opts.Name != "" {
		updateOpts.Name = gogitlab.Ptr(opts.Name)
	}
	if opts.Description != "" {
		updateOpts.Description = gogitlab.Ptr(opts.Description)
	}

	rel, resp, err := s.releases.UpdateRelease(project.pid(), tag, updateOpts, gogitlab.WithContext(ctx))
	if err != nil {
		return nil, apiError(err, resp, "updating release %s in project %s", tag, project)
	}
	return newRelease(rel), nil
}
