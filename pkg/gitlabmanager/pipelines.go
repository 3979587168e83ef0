package gitlabmanager

import (
	"context"

	gogitlab "github.com/xanzy/go-gitlab"

	"github.com/TsafasN/gitlab-manager/pkg/errors"
)

// PipelinesService forwards CI pipeline operations.
type PipelinesService struct {
	pipelines pipelinesAPI
}

// Trigger starts a new pipeline on the given branch or tag. The variables
// mapping is forwarded to the pipeline unmodified. Triggering on a ref that
// does not exist fails with a NOT_FOUND error.
func (s *PipelinesService) Trigger(ctx context.Context, project ProjectRef, ref string, variables map[string]string) (*Pipeline, error) {
	if err := project.validate(); err != nil {
		return nil, err
	}
	if err := errors.ValidateRef(ref); err != nil {
		return nil, err
	}
	for key := range variables {
		if key == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "pipeline variable key cannot be empty")
		}
	}

	createOpts := &gogitlab.CreatePipelineOptions{Ref: gogitlab.Ptr(ref)}
	if len(variables) > 0 {
		vars := make([]*gogitlab.PipelineVariableOptions, 0, len(variables))
		for key, value := range variables {
			vars = append(vars, &gogitlab.PipelineVariableOptions{
				Key:   gogitlab.Ptr(key),
				Value: gogitlab.Ptr(value),
			})
		}
		createOpts.Variables = &vars
	}

	pipeline, resp, err := s.pipelines.CreatePipeline(project.pid(), createOpts, gogitlab.WithContext(ctx))
	if err != nil {
		return nil, apiError(err, resp, "triggering pipeline on %s in project %s", ref, project)
	}
	return newPipeline(pipeline), nil
}

// Status returns the current state of a pipeline.
func (s *PipelinesService) Status(ctx context.Context, project ProjectRef, pipelineID int) (*Pipeline, error) {
	if err := project.validate(); err != nil {
		return nil, err
	}
	if pipelineID <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "pipeline id must be positive: %d", pipelineID)
	}

	pipeline, resp, err := s.pipelines.GetPipeline(project.pid(), pipelineID, gogitlab.WithContext(ctx))
	if err != nil {
		return nil, apiError(err, resp, "pipeline %d in project %s", pipelineID, project)
	}
	return newPipeline(pipeline), nil
}

// ListPipelinesOptions filters pipeline listings.
type ListPipelinesOptions struct {
	// Ref restricts results to pipelines on this branch or tag.
	Ref string

	// Status restricts results to one state, e.g. "success", "failed",
	// "running".
	Status string

	// Limit caps the number of pipelines returned. Zero means the most
	// recent page (up to 100).
	Limit int
}

// List returns recent pipelines, newest first.
func (s *PipelinesService) List(ctx context.Context, project ProjectRef, opts ListPipelinesOptions) ([]*Pipeline, error) {
	if err := project.validate(); err != nil {
		return nil, err
	}

	perPage := 100
	if opts.Limit > 0 && opts.Limit < perPage {
		perPage = opts.Limit
	}
	listOpts := &gogitlab.ListProjectPipelinesOptions{
		ListOptions: gogitlab.ListOptions{PerPage: perPage},
	}
	if opts.Ref != "" {
		listOpts.Ref = gogitlab.Ptr(opts.Ref)
	}
	if opts.Status != "" {
		listOpts.Status = gogitlab.Ptr(gogitlab.BuildStateValue(opts.Status))
	}

	var result []*Pipeline
	for {
		pipelines, resp, err := s.pipelines.ListProjectPipelines(project.pid(), listOpts, gogitlab.WithContext(ctx))
		if err != nil {
			return nil, apiError(err, resp, "listing pipelines in project %s", project)
		}
		for _, p := range pipelines {
			result = append(result, newPipelineInfo(p))
			if opts.Limit > 0 && len(result) == opts.Limit {
				return result, nil
			}
		}
		if resp.NextPage == 0 {
			break
		}
		listOpts.Page = resp.NextPage
	}
	return result, nil
}
