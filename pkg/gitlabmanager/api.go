package gitlabmanager

import (
	"io"

	gogitlab "github.com/xanzy/go-gitlab"
)

// Narrow subsets of the go-gitlab service surface. Each interface lists only
// the methods the facade forwards to, so tests can substitute fakes without a
// real network endpoint. The concrete go-gitlab services satisfy these
// directly.

type projectsAPI interface {
	GetProject(pid interface{}, opt *gogitlab.GetProjectOptions, options ...gogitlab.RequestOptionFunc) (*gogitlab.Project, *gogitlab.Response, error)
	ListProjects(opt *gogitlab.ListProjectsOptions, options ...gogitlab.RequestOptionFunc) ([]*gogitlab.Project, *gogitlab.Response, error)
}

type packagesAPI interface {
	ListProjectPackages(pid interface{}, opt *gogitlab.ListProjectPackagesOptions, options ...gogitlab.RequestOptionFunc) ([]*gogitlab.Package, *gogitlab.Response, error)
	ListPackageFiles(pid interface{}, pkg int, opt *gogitlab.ListPackageFilesOptions, options ...gogitlab.RequestOptionFunc) ([]*gogitlab.PackageFile, *gogitlab.Response, error)
	DeleteProjectPackage(pid interface{}, pkg int, options ...gogitlab.RequestOptionFunc) (*gogitlab.Response, error)
}

type genericPackagesAPI interface {
	PublishPackageFile(pid interface{}, packageName, packageVersion, fileName string, content io.Reader, opt *gogitlab.PublishPackageFileOptions, options ...gogitlab.RequestOptionFunc) (*gogitlab.GenericPackagesFile, *gogitlab.Response, error)
	DownloadPackageFile(pid interface{}, packageName, packageVersion, fileName string, options ...gogitlab.RequestOptionFunc) ([]byte, *gogitlab.Response, error)
}

type releasesAPI interface {
	CreateRelease(pid interface{}, opts *gogitlab.CreateReleaseOptions, options ...gogitlab.RequestOptionFunc) (*gogitlab.Release, *gogitlab.Response, error)
	ListReleases(pid interface{}, opt *gogitlab.ListReleasesOptions, options ...gogitlab.RequestOptionFunc) ([]*gogitlab.Release, *gogitlab.Response, error)
	GetRelease(pid interface{}, tagName string, options ...gogitlab.RequestOptionFunc) (*gogitlab.Release, *gogitlab.Response, error)
	UpdateRelease(pid interface{}, tagName string, opts *gogitlab.UpdateReleaseOptions, options ...gogitlab.RequestOptionFunc) (*gogitlab.Release, *gogitlab.Response, error)
}

type pipelinesAPI interface {
	CreatePipeline(pid interface{}, opt *gogitlab.CreatePipelineOptions, options ...gogitlab.RequestOptionFunc) (*gogitlab.Pipeline, *gogitlab.Response, error)
	GetPipeline(pid interface{}, pipeline int, options ...gogitlab.RequestOptionFunc) (*gogitlab.Pipeline, *gogitlab.Response, error)
	ListProjectPipelines(pid interface{}, opt *gogitlab.ListProjectPipelinesOptions, options ...gogitlab.RequestOptionFunc) ([]*gogitlab.PipelineInfo, *gogitlab.Response, error)
}

type branchesAPI interface {
	ListBranches(pid interface{}, opts *gogitlab.ListBranchesOptions, options ...gogitlab.RequestOptionFunc) ([]*gogitlab.Branch, *gogitlab.Response, error)
	CreateBranch(pid interface{}, opt *gogitlab.CreateBranchOptions, options ...gogitlab.RequestOptionFunc) (*gogitlab.Branch, *gogitlab.Response, error)
	DeleteBranch(pid interface{}, branch string, options ...gogitlab.RequestOptionFunc) (*gogitlab.Response, error)
}

type tagsAPI interface {
	ListTags(pid interface{}, opt *gogitlab.ListTagsOptions, options ...gogitlab.RequestOptionFunc) ([]*gogitlab.Tag, *gogitlab.Response, error)
	CreateTag(pid interface{}, opt *gogitlab.CreateTagOptions, options ...gogitlab.RequestOptionFunc) (*gogitlab.Tag, *gogitlab.Response, error)
	DeleteTag(pid interface{}, tag string, options ...gogitlab.RequestOptionFunc) (*gogitlab.Response, error)
}

// apiSet bundles the interfaces a Client is wired from.
type apiSet struct {
	projects        projectsAPI
	packages        packagesAPI
	genericPackages genericPackagesAPI
	releases        releasesAPI
	pipelines       pipelinesAPI
	branches        branchesAPI
	tags            tagsAPI
}
