package gitlabmanager

import (
	"time"

	gogitlab "github.com/xanzy/go-gitlab"
)

// Response shapes returned by the facade. Each is a trimmed view of the
// corresponding go-gitlab type, carrying only the fields callers of this
// library act on. JSON tags match the GitLab API field names so the shapes
// serialize naturally.

// Package describes an entry in a project's package registry.
type Package struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Version     string     `json:"version"`
	PackageType string     `json:"package_type"`
	Status      string     `json:"status,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

func newPackage(p *gogitlab.Package) *Package {
	return &Package{
		ID:          p.ID,
		Name:        p.Name,
		Version:     p.Version,
		PackageType: p.PackageType,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
}

// AssetLink points a release at an external artifact.
type AssetLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Release describes a project release bound to a git tag.
type Release struct {
	TagName     string      `json:"tag_name"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	CreatedAt   *time.Time  `json:"created_at,omitempty"`
	ReleasedAt  *time.Time  `json:"released_at,omitempty"`
	Assets      []AssetLink `json:"assets,omitempty"`
}

func newRelease(r *gogitlab.Release) *Release {
	rel := &Release{
		TagName:     r.TagName,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		ReleasedAt:  r.ReleasedAt,
	}
	for _, link := range r.Assets.Links {
		rel.Assets = append(rel.Assets, AssetLink{Name: link.Name, URL: link.URL})
	}
	return rel
}

// Pipeline describes a CI pipeline run.
type Pipeline struct {
	ID        int        `json:"id"`
	ProjectID int        `json:"project_id"`
	Status    string     `json:"status"`
	Ref       string     `json:"ref"`
	SHA       string     `json:"sha"`
	WebURL    string     `json:"web_url"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func newPipeline(p *gogitlab.Pipeline) *Pipeline {
	return &Pipeline{
		ID:        p.ID,
		ProjectID: p.ProjectID,
		Status:    p.Status,
		Ref:       p.Ref,
		SHA:       p.SHA,
		WebURL:    p.WebURL,
		CreatedAt: p.CreatedAt,
	}
}

func newPipelineInfo(p *gogitlab.PipelineInfo) *Pipeline {
	return &Pipeline{
		ID:        p.ID,
		ProjectID: p.ProjectID,
		Status:    p.Status,
		Ref:       p.Ref,
		SHA:       p.SHA,
		WebURL:    p.WebURL,
		CreatedAt: p.CreatedAt,
	}
}

// Branch describes a repository branch.
type Branch struct {
	Name      string `json:"name"`
	Default   bool   `json:"default"`
	Protected bool   `json:"protected"`
	Merged    bool   `json:"merged"`
	CommitSHA string `json:"commit_sha,omitempty"`
	WebURL    string `json:"web_url,omitempty"`
}

func newBranch(b *gogitlab.Branch) *Branch {
	br := &Branch{
		Name:      b.Name,
		Default:   b.Default,
		Protected: b.Protected,
		Merged:    b.Merged,
		WebURL:    b.WebURL,
	}
	if b.Commit != nil {
		br.CommitSHA = b.Commit.ID
	}
	return br
}

// Tag describes a repository tag.
type Tag struct {
	Name      string `json:"name"`
	Message   string `json:"message,omitempty"`
	Protected bool   `json:"protected"`
	CommitSHA string `json:"commit_sha,omitempty"`
}

func newTag(t *gogitlab.Tag) *Tag {
	tag := &Tag{
		Name:      t.Name,
		Message:   t.Message,
		Protected: t.Protected,
	}
	if t.Commit != nil {
		tag.CommitSHA = t.Commit.ID
	}
	return tag
}

// Project describes a GitLab project.
type Project struct {
	ID                int        `json:"id"`
	Name              string     `json:"name"`
	PathWithNamespace string     `json:"path_with_namespace"`
	Description       string     `json:"description,omitempty"`
	DefaultBranch     string     `json:"default_branch,omitempty"`
	Visibility        string     `json:"visibility,omitempty"`
	WebURL            string     `json:"web_url,omitempty"`
	StarCount         int        `json:"star_count"`
	ForksCount        int        `json:"forks_count"`
	Archived          bool       `json:"archived"`
	LastActivityAt    *time.Time `json:"last_activity_at,omitempty"`
}

func newProject(p *gogitlab.Project) *Project {
	return &Project{
		ID:                p.ID,
		Name:              p.Name,
		PathWithNamespace: p.PathWithNamespace,
		Description:       p.Description,
		DefaultBranch:     p.DefaultBranch,
		Visibility:        string(p.Visibility),
		WebURL:            p.WebURL,
		StarCount:         p.StarCount,
		ForksCount:        p.ForksCount,
		Archived:          p.Archived,
		LastActivityAt:    p.LastActivityAt,
	}
}
