package gitlabmanager

import (
	"io"
	"net/http"
	"net/url"

	gogitlab "github.com/xanzy/go-gitlab"
)

// Recording fakes for the narrow API interfaces. Each method delegates to an
// optional function field and counts invocations, so tests can assert both
// behavior and whether the network layer was reached at all.

func okResp() *gogitlab.Response {
	return &gogitlab.Response{Response: &http.Response{StatusCode: http.StatusOK}}
}

func statusErr(status int) error {
	// ErrorResponse.Error() formats the request line, so the fake response
	// needs a populated request.
	req := &http.Request{
		Method: http.MethodGet,
		URL:    &url.URL{Scheme: "https", Host: "gitlab.example.com", Path: "/api/v4"},
	}
	return &gogitlab.ErrorResponse{
		Response: &http.Response{StatusCode: status, Request: req},
		Message:  http.StatusText(status),
	}
}

func statusErrBody(status int, body string) error {
	err := statusErr(status).(*gogitlab.ErrorResponse)
	err.Body = []byte(body)
	return err
}

type fakeProjects struct {
	calls   int
	gotPids []interface{}

	getProject   func(pid interface{}) (*gogitlab.Project, *gogitlab.Response, error)
	listProjects func(opt *gogitlab.ListProjectsOptions) ([]*gogitlab.Project, *gogitlab.Response, error)
}

func (f *fakeProjects) GetProject(pid interface{}, opt *gogitlab.GetProjectOptions, options ...gogitlab.RequestOptionFunc) (*gogitlab.Project, *gogitlab.Response, error) {
	f.calls++
	f.gotPids = append(f.gotPids, pid)
	if f.getProject == nil {
		return nil, nil, statusErr(http.StatusNotFound)
	}
	return f.getProject(pid)
}

func (f *fakeProjects) ListProjects(opt *gogitlab.ListProjectsOptions, options ...gogitlab.RequestOptionFunc) ([]*gogitlab.Project, *gogitlab.Response, error) {
	f.calls++
	if f.listProjects == nil {
		return nil, okResp(), nil
	}
	return f.listProjects(opt)
}

type fakePackages struct {
	calls int

	listPackages func(pid interface{}, opt *gogitlab.ListProjectPackagesOptions) ([]*gogitlab.Package, *gogitlab.Response, error)
	listFiles    func(pid interface{}, pkg int) ([]*gogitlab.PackageFile, *gogitlab.Response, error)
	deleted      []int
}

func (f *fakePackages) ListProjectPackages(pid interface{}, opt *gogitlab.ListProjectPackagesOptions, options ...gogitlab.RequestOptionFunc) ([]*gogitlab.Package, *gogitlab.Response, error) {
	f.calls++
	if f.listPackages == nil {
		return nil, okResp(), nil
	}
	return f.listPackages(pid, opt)
}

func (f *fakePackages) ListPackageFiles(pid interface{}, pkg int, opt *gogitlab.ListPackageFilesOptions, options ...gogitlab.RequestOptionFunc) ([]*gogitlab.PackageFile, *gogitlab.Response, error) {
	f.calls++
	if f.listFiles == nil {
		return nil, okResp(), nil
	}
	return f.listFiles(pid, pkg)
}

func (f *fakePackages) DeleteProjectPackage(pid interface{}, pkg int, options ...gogitlab.RequestOptionFunc) (*gogitlab.Response, error) {
	f.calls++
	f.deleted = append(f.deleted, pkg)
	return okResp(), nil
}

type publishedFile struct {
	pid      interface{}
	name     string
	version  string
	fileName string
	content  []byte
}

type fakeGenericPackages struct {
	calls     int
	published []publishedFile
	publish   func() error
	download  func(name, version, fileName string) ([]byte, *gogitlab.Response, error)
}

func (f *fakeGenericPackages) PublishPackageFile(pid interface{}, packageName, packageVersion, fileName string, content io.Reader, opt *gogitlab.PublishPackageFileOptions, options ...gogitlab.RequestOptionFunc) (*gogitlab.GenericPackagesFile, *gogitlab.Response, error) {
	f.calls++
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, nil, err
	}
	if f.publish != nil {
		if err := f.publish(); err != nil {
			return nil, nil, err
		}
	}
	f.published = append(f.published, publishedFile{
		pid:      pid,
		name:     packageName,
		version:  packageVersion,
		fileName: fileName,
		content:  data,
	})
	return &gogitlab.GenericPackagesFile{}, okResp(), nil
}

func (f *fakeGenericPackages) DownloadPackageFile(pid interface{}, packageName, packageVersion, fileName string, options ...gogitlab.RequestOptionFunc) ([]byte, *gogitlab.Response, error) {
	f.calls++
	if f.download == nil {
		return nil, nil, statusErr(http.StatusNotFound)
	}
	return f.download(packageName, packageVersion, fileName)
}

// fakeReleases rejects creating a second release for the same tag, the way
// the real API answers 409.
type fakeReleases struct {
	calls    int
	releases map[string]*gogitlab.Release
	gotOpts  []*gogitlab.CreateReleaseOptions
}

func newFakeReleases() *fakeReleases {
	return &fakeReleases{releases: make(map[string]*gogitlab.Release)}
}

func (f *fakeReleases) CreateRelease(pid interface{}, opts *gogitlab.CreateReleaseOptions, options ...gogitlab.RequestOptionFunc) (*gogitlab.Release, *gogitlab.Response, error) {
	f.calls++
	f.gotOpts = append(f.gotOpts, opts)
	tag := *opts.TagName
	if _, exists := f.releases[tag]; exists {
		return nil, &gogitlab.Response{Response: &http.Response{StatusCode: http.StatusConflict}}, statusErr(http.StatusConflict)
	}
	rel := &gogitlab.Release{TagName: tag, Name: *opts.Name}
	if opts.Description != nil {
		rel.Description = *opts.Description
	}
	f.releases[tag] = rel
	return rel, okResp(), nil
}

func (f *fakeReleases) ListReleases(pid interface{}, opt *gogitlab.ListReleasesOptions, options ...gogitlab.RequestOptionFunc) ([]*gogitlab.Release, *gogitlab.Response, error) {
	f.calls++
	var result []*gogitlab.Release
	for _, rel := range f.releases {
		result = append(result, rel)
	}
	return result, okResp(), nil
}

func (f *fakeReleases) GetRelease(pid interface{}, tagName string, options ...gogitlab.RequestOptionFunc) (*gogitlab.Release, *gogitlab.Response, error) {
	f.calls++
	rel, ok := f.releases[tagName]
	if !ok {
		return nil, nil, statusErr(http.StatusNotFound)
	}
	return rel, okResp(), nil
}

func (f *fakeReleases) UpdateRelease(pid interface{}, tagName string, opts *gogitlab.UpdateReleaseOptions, options ...gogitlab.RequestOptionFunc) (*gogitlab.Release, *gogitlab.Response, error) {
	f.calls++
	rel, ok := f.releases[tagName]
	if !ok {
		return nil, nil, statusErr(http.StatusNotFound)
	}
	if opts.Name != nil {
		rel.Name = *opts.Name
	}
	if opts.Description != nil {
		rel.Description = *opts.Description
	}
	return rel, okResp(), nil
}

type fakePipelines struct {
	calls   int
	gotOpts []*gogitlab.CreatePipelineOptions
	refs    map[string]bool
	nextID  int

	getPipeline   func(pid interface{}, id int) (*gogitlab.Pipeline, *gogitlab.Response, error)
	listPipelines func(opt *gogitlab.ListProjectPipelinesOptions) ([]*gogitlab.PipelineInfo, *gogitlab.Response, error)
}

func (f *fakePipelines) CreatePipeline(pid interface{}, opt *gogitlab.CreatePipelineOptions, options ...gogitlab.RequestOptionFunc) (*gogitlab.Pipeline, *gogitlab.Response, error) {
	f.calls++
	f.gotOpts = append(f.gotOpts, opt)
	if f.refs != nil && !f.refs[*opt.Ref] {
		return nil, nil, statusErr(http.StatusNotFound)
	}
	f.nextID++
	return &gogitlab.Pipeline{ID: f.nextID, Status: "created", Ref: *opt.Ref}, okResp(), nil
}

func (f *fakePipelines) GetPipeline(pid interface{}, pipeline int, options ...gogitlab.RequestOptionFunc) (*gogitlab.Pipeline, *gogitlab.Response, error) {
	f.calls++
	if f.getPipeline == nil {
		return nil, nil, statusErr(http.StatusNotFound)
	}
	return f.getPipeline(pid, pipeline)
}

func (f *fakePipelines) ListProjectPipelines(pid interface{}, opt *gogitlab.ListProjectPipelinesOptions, options ...gogitlab.RequestOptionFunc) ([]*gogitlab.PipelineInfo, *gogitlab.Response, error) {
	f.calls++
	if f.listPipelines == nil {
		return nil, okResp(), nil
	}
	return f.listPipelines(opt)
}

type fakeBranches struct {
	calls    int
	branches map[string]*gogitlab.Branch
	deleted  []string
}

func newFakeBranches(names ...string) *fakeBranches {
	f := &fakeBranches{branches: make(map[string]*gogitlab.Branch)}
	for _, n := range names {
		f.branches[n] = &gogitlab.Branch{Name: n}
	}
	return f
}

func (f *fakeBranches) ListBranches(pid interface{}, opts *gogitlab.ListBranchesOptions, options ...gogitlab.RequestOptionFunc) ([]*gogitlab.Branch, *gogitlab.Response, error) {
	f.calls++
	var result []*gogitlab.Branch
	for _, b := range f.branches {
		result = append(result, b)
	}
	return result, okResp(), nil
}

func (f *fakeBranches) CreateBranch(pid interface{}, opt *gogitlab.CreateBranchOptions, options ...gogitlab.RequestOptionFunc) (*gogitlab.Branch, *gogitlab.Response, error) {
	f.calls++
	name := *opt.Branch
	if _, exists := f.branches[name]; exists {
		return nil, nil, statusErr(http.StatusConflict)
	}
	if _, exists := f.branches[*opt.Ref]; !exists {
		return nil, nil, statusErr(http.StatusNotFound)
	}
	b := &gogitlab.Branch{Name: name}
	f.branches[name] = b
	return b, okResp(), nil
}

func (f *fakeBranches) DeleteBranch(pid interface{}, branch string, options ...gogitlab.RequestOptionFunc) (*gogitlab.Response, error) {
	f.calls++
	if _, exists := f.branches[branch]; !exists {
		return nil, statusErr(http.StatusNotFound)
	}
	delete(f.branches, branch)
	f.deleted = append(f.deleted, branch)
	return okResp(), nil
}

type fakeTags struct {
	calls int
	tags  map[string]*gogitlab.Tag
}

func newFakeTags(names ...string) *fakeTags {
	f := &fakeTags{tags: make(map[string]*gogitlab.Tag)}
	for _, n := range names {
		f.tags[n] = &gogitlab.Tag{Name: n}
	}
	return f
}

func (f *fakeTags) ListTags(pid interface{}, opt *gogitlab.ListTagsOptions, options ...gogitlab.RequestOptionFunc) ([]*gogitlab.Tag, *gogitlab.Response, error) {
	f.calls++
	var result []*gogitlab.Tag
	for _, t := range f.tags {
		result = append(result, t)
	}
	return result, okResp(), nil
}

func (f *fakeTags) CreateTag(pid interface{}, opt *gogitlab.CreateTagOptions, options ...gogitlab.RequestOptionFunc) (*gogitlab.Tag, *gogitlab.Response, error) {
	f.calls++
	name := *opt.TagName
	if _, exists := f.tags[name]; exists {
		return nil, nil, statusErr(http.StatusConflict)
	}
	t := &gogitlab.Tag{Name: name}
	if opt.Message != nil {
		t.Message = *opt.Message
	}
	f.tags[name] = t
	return t, okResp(), nil
}

func (f *fakeTags) DeleteTag(pid interface{}, tag string, options ...gogitlab.RequestOptionFunc) (*gogitlab.Response, error) {
	f.calls++
	if _, exists := f.tags[tag]; !exists {
		return nil, statusErr(http.StatusNotFound)
	}
	delete(f.tags, tag)
	return okResp(), nil
}

// newTestClient wires a Client from fakes, filling in empty defaults for
// services a test does not touch.
func newTestClient(apis apiSet) *Client {
	if apis.projects == nil {
		apis.projects = &fakeProjects{}
	}
	if apis.packages == nil {
		apis.packages = &fakePackages{}
	}
	if apis.genericPackages == nil {
		apis.genericPackages = &fakeGenericPackages{}
	}
	if apis.releases == nil {
		apis.releases = newFakeReleases()
	}
	if apis.pipelines == nil {
		apis.pipelines = &fakePipelines{}
	}
	if apis.branches == nil {
		apis.branches = newFakeBranches()
	}
	if apis.tags == nil {
		apis.tags = newFakeTags()
	}
	return newClient(Config{BaseURL: "https://gitlab.example.com"}, apis)
}
