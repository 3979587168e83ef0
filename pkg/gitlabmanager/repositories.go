package gitlabmanager

import (
	"context"

	gogitlab "github.com/xanzy/go-gitlab"

	"github.com/TsafasN/gitlab-manager/pkg/errors"
)

// RepositoriesService forwards branch and tag operations.
type RepositoriesService struct {
	branches branchesAPI
	tags     tagsAPI
}

// ListBranches returns all branches of the project, across pages. A
// non-empty search narrows results to branch names containing it.
func (s *RepositoriesService) ListBranches(ctx context.Context, project ProjectRef, search string) ([]*Branch, error) {
	if err := project.validate(); err != nil {
		return nil, err
	}

	listOpts := &gogitlab.ListBranchesOptions{
		ListOptions: gogitlab.ListOptions{PerPage: 100},
	}
	if search != "" {
		listOpts.Search = gogitlab.Ptr(search)
	}

	var result []*Branch
	for {
		branches, resp, err := s.branches.ListBranches(project.pid(), listOpts, gogitlab.WithContext(ctx))
		if err != nil {
			return nil, apiError(err, resp, "listing branches in project %s", project)
		}
		for _, b := range branches {
			result = append(result, newBranch(b))
		}
		if resp.NextPage == 0 {
			break
		}
		listOpts.Page = resp.NextPage
	}
	return result, nil
}

// CreateBranch creates a branch pointing at ref (a branch name, tag, or
// commit SHA). Creating a branch that already exists fails with a CONFLICT
// error from the underlying API.
func (s *RepositoriesService) CreateBranch(ctx context.Context, project ProjectRef, name, ref string) (*Branch, error) {
	if err := project.validate(); err != nil {
		return nil, err
	}
	if err := errors.ValidateRef(name); err != nil {
		return nil, err
	}
	if err := errors.ValidateRef(ref); err != nil {
		return nil, err
	}

	branch, resp, err := s.branches.CreateBranch(project.pid(), &gogitlab.CreateBranchOptions{
		Branch: gogitlab.Ptr(name),
		Ref:    gogitlab.Ptr(ref),
	}, gogitlab.WithContext(ctx))
	if err != nil {
		return nil, apiError(err, resp, "creating branch %s in project %s", name, project)
	}
	return newBranch(branch), nil
}

// DeleteBranch removes a branch.
func (s *RepositoriesService) DeleteBranch(ctx context.Context, project ProjectRef, name string) error {
	if err := project.validate(); err != nil {
		return err
	}
	if err := errors.ValidateRef(name); err != nil {
		return err
	}

	resp, err := s.branches.DeleteBranch(project.pid(), name, gogitlab.WithContext(ctx))
	if err != nil {
		return apiError(err, resp, "deleting branch %s in project %s", name, project)
	}
	return nil
}

// ListTags returns all tags of the project, across pages.
func (s *RepositoriesService) ListTags(ctx context.Context, project ProjectRef, search string) ([]*Tag, error) {
	if err := project.validate(); err != nil {
		return nil, err
	}

	listOpts := &gogitlab.ListTagsOptions{
		ListOptions: gogitlab.ListOptions{PerPage: 100},
	}
	if search != "" {
		listOpts.Search = gogitlab.Ptr(search)
	}

	var result []*Tag
	for {
		tags, resp, err := s.tags.ListTags(project.pid(), listOpts, gogitlab.WithContext(ctx))
		if err != nil {
			return nil, apiError(err, resp, "listing tags in project %s", project)
		}
		for _, t := range tags {
			result = append(result, newTag(t))
		}
		if resp.NextPage == 0 {
			break
		}
		listOpts.Page = resp.NextPage
	}
	return result, nil
}

// CreateTag creates a tag at ref with an optional annotation message.
func (s *RepositoriesService) CreateTag(ctx context.Context, project ProjectRef, name, ref, message string) (*Tag, error) {
	if err := project.validate(); err != nil {
		return nil, err
	}
	if err := errors.ValidateRef(name); err != nil {
		return nil, err
	}
	if err := errors.ValidateRef(ref); err != nil {
		return nil, err
	}

	createOpts := &gogitlab.CreateTagOptions{
		TagName: gogitlab.Ptr(name),
		Ref:     gogitlab.Ptr(ref),
	}
	if message != "" {
		createOpts.Message = gogitlab.Ptr(message)
	}

	tag, resp, err := s.tags.CreateTag(project.pid(), createOpts, gogitlab.WithContext(ctx))
	if err != nil {
		return nil, apiError(err, resp, "creating tag %s in project %s", name, project)
	}
	return newTag(tag), nil
}

// DeleteTag removes a tag.
func (s *RepositoriesService) DeleteTag(ctx context.Context, project ProjectRef, name string) error {
	if err := project.validate(); err != nil {
		return err
	}
	if err := errors.ValidateRef(name); err != nil {
		return err
	}

	resp, err := s.tags.DeleteTag(project.pid(), name, gogitlab.WithContext(ctx))
	if err != nil {
		return apiError(err, resp, "deleting tag %s in project %s", name, project)
	}
	return nil
}
