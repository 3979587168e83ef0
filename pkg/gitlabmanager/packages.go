package gitlabmanager

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	gogitlab "github.com/xanzy/go-gitlab"

	"github.com/TsafasN/gitlab-manager/pkg/errors"
)

// PackagesService forwards package registry operations. Upload and Download
// use the generic package registry, which accepts arbitrary file types.
type PackagesService struct {
	packages packagesAPI
	generic  genericPackagesAPI
}

// ListPackagesOptions filters package listings.
type ListPackagesOptions struct {
	// PackageType restricts results to one registry type,
	// e.g. "generic", "pypi", "npm".
	PackageType string

	// PackageName restricts results to packages matching this name.
	PackageName string
}

// List returns all packages in the project, across pages.
func (s *PackagesService) List(ctx context.Context, project ProjectRef, opts ListPackagesOptions) ([]*Package, error) {
	if err := project.validate(); err != nil {
		return nil, err
	}

	listOpts := &gogitlab.ListProjectPackagesOptions{
		ListOptions: gogitlab.ListOptions{PerPage: 100},
	}
	if opts.PackageType != "" {
		listOpts.PackageType = gogitlab.Ptr(opts.PackageType)
	}
	if opts.PackageName != "" {
		listOpts.PackageName = gogitlab.Ptr(opts.PackageName)
	}

	var result []*Package
	for {
		pkgs, resp, err := s.packages.ListProjectPackages(project.pid(), listOpts, gogitlab.WithContext(ctx))
		if err != nil {
			return nil, apiError(err, resp, "listing packages in project %s", project)
		}
		for _, p := range pkgs {
			result = append(result, newPackage(p))
		}
		if resp.NextPage == 0 {
			break
		}
		listOpts.Page = resp.NextPage
	}
	return result, nil
}

// Get returns detailed information for a single package. The package API
// exposes no single-package read for this surface, so the project listing
// is scanned for the matching id.
func (s *PackagesService) Get(ctx context.Context, project ProjectRef, packageID int) (*Package, error) {
	if err := project.validate(); err != nil {
		return nil, err
	}
	if packageID <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidPackage, "package id must be positive: %d", packageID)
	}

	pkgs, err := s.List(ctx, project, ListPackagesOptions{})
	if err != nil {
		return nil, err
	}
	for _, p := range pkgs {
		if p.ID == packageID {
			return p, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "package %d in project %s", packageID, project)
}

// Delete removes a package and all its files from the registry.
func (s *PackagesService) Delete(ctx context.Context, project ProjectRef, packageID int) error {
	if err := project.validate(); err != nil {
		return err
	}
	if packageID <= 0 {
		return errors.New(errors.ErrCodeInvalidPackage, "package id must be positive: %d", packageID)
	}

	resp, err := s.packages.DeleteProjectPackage(project.pid(), packageID, gogitlab.WithContext(ctx))
	if err != nil {
		return apiError(err, resp, "deleting package %d in project %s", packageID, project)
	}
	return nil
}

// UploadOptions customizes a package upload. Zero values derive sensible
// defaults from the uploaded file.
type UploadOptions struct {
	// Name of the package. Defaults to the file name up to its first dot,
	// so "myapp-1.0.tar.gz" becomes "myapp-1".
	Name string

	// Version of the package. Defaults to "1.0.0".
	Version string

	// FileName stored in the registry. Defaults to the local file's name.
	FileName string

	// Hidden uploads the package in hidden status instead of default.
	Hidden bool

	// Progress, when set, receives upload progress per chunk.
	Progress ProgressFunc
}

// UploadResult describes a completed upload.
type UploadResult struct {
	Name     string `json:"package_name"`
	Version  string `json:"package_version"`
	FileName string `json:"file_name"`
	Size     int64  `json:"file_size"`

	// PackageID of the created package. Zero when the post-upload lookup
	// could not identify it; the upload itself still succeeded.
	PackageID int `json:"package_id,omitempty"`
}

// Upload publishes a local file to the project's generic package registry.
// The file must exist locally; that is checked before any network call.
// Uploading a name/version/file combination that already exists fails with a
// CONFLICT error rather than overwriting the existing package.
func (s *PackagesService) Upload(ctx context.Context, project ProjectRef, filePath string, opts UploadOptions) (*UploadResult, error) {
	if err := project.validate(); err != nil {
		return nil, err
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidPath, "file not found: %s", filePath)
	}
	if info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "path is not a file: %s", filePath)
	}

	fileName := opts.FileName
	if fileName == "" {
		fileName = filepath.Base(filePath)
	}
	name := opts.Name
	if name == "" {
		// File name up to the first dot, so multi-suffix archives like
		// .tar.gz do not leak extensions into the package name.
		name, _, _ = strings.Cut(filepath.Base(filePath), ".")
	}
	version := opts.Version
	if version == "" {
		version = "1.0.0"
	}

	if err := errors.ValidatePackageName(name); err != nil {
		return nil, err
	}
	if err := errors.ValidatePackageVersion(version); err != nil {
		return nil, err
	}
	if err := errors.ValidateFileName(fileName); err != nil {
		return nil, err
	}

	if s.fileExists(ctx, project, name, version, fileName) {
		return nil, errors.New(errors.ErrCodeConflict,
			"package %q version %q already contains file %q", name, version, fileName)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "opening %s", filePath)
	}
	defer f.Close()

	publishOpts := &gogitlab.PublishPackageFileOptions{}
	if opts.Hidden {
		publishOpts.Status = gogitlab.Ptr(gogitlab.PackageHidden)
	}

	body := newProgressReader(f, info.Size(), opts.Progress)
	_, resp, err := s.generic.PublishPackageFile(project.pid(), name, version, fileName, body, publishOpts, gogitlab.WithContext(ctx))
	if err != nil {
		return nil, apiError(err, resp, "uploading %s to project %s", fileName, project)
	}

	return &UploadResult{
		Name:      name,
		Version:   version,
		FileName:  fileName,
		Size:      info.Size(),
		PackageID: s.findPackageID(ctx, project, name, version),
	}, nil
}

// Download fetches a file from the generic package registry and writes it to
// outputPath. An empty outputPath writes to the working directory under the
// registry file name; a directory path gets the file name appended. The
// absolute path of the written file is returned.
func (s *PackagesService) Download(ctx context.Context, project ProjectRef, name, version, fileName, outputPath string) (string, error) {
	if err := project.validate(); err != nil {
		return "", err
	}
	if err := errors.ValidatePackageName(name); err != nil {
		return "", err
	}
	if err := errors.ValidatePackageVersion(version); err != nil {
		return "", err
	}
	if err := errors.ValidateFileName(fileName); err != nil {
		return "", err
	}

	if outputPath == "" {
		outputPath = fileName
	} else if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
		outputPath = filepath.Join(outputPath, fileName)
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "creating %s", dir)
		}
	}

	data, resp, err := s.generic.DownloadPackageFile(project.pid(), name, version, fileName, gogitlab.WithContext(ctx))
	if err != nil {
		return "", apiError(err, resp, "package %q version %q file %q in project %s", name, version, fileName, project)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "writing %s", outputPath)
	}
	abs, err := filepath.Abs(outputPath)
	if err != nil {
		return outputPath, nil
	}
	return abs, nil
}

// fileExists reports whether the name/version/file combination is already
// published. Failures during the check are treated as "no duplicate" so a
// flaky listing cannot block an upload; the registry itself still rejects
// true collisions.
func (s *PackagesService) fileExists(ctx context.Context, project ProjectRef, name, version, fileName string) bool {
	pkgs, _, err := s.packages.ListProjectPackages(project.pid(), &gogitlab.ListProjectPackagesOptions{
		ListOptions: gogitlab.ListOptions{PerPage: 100},
		PackageName: gogitlab.Ptr(name),
	}, gogitlab.WithContext(ctx))
	if err != nil {
		return false
	}
	for _, pkg := range pkgs {
		if pkg.Name != name || pkg.Version != version {
			continue
		}
		files, _, err := s.packages.ListPackageFiles(project.pid(), pkg.ID, &gogitlab.ListPackageFilesOptions{PerPage: 100}, gogitlab.WithContext(ctx))
		if err != nil {
			// Same name and version but files unknown, treat as taken.
			return true
		}
		for _, f := range files {
			if f.FileName == fileName {
				return true
			}
		}
	}
	return false
}

// findPackageID resolves the id of a freshly uploaded package. Best effort
// only: a failed lookup returns zero.
func (s *PackagesService) findPackageID(ctx context.Context, project ProjectRef, name, version string) int {
	pkgs, _, err := s.packages.ListProjectPackages(project.pid(), &gogitlab.ListProjectPackagesOptions{
		ListOptions: gogitlab.ListOptions{PerPage: 100},
		PackageName: gogitlab.Ptr(name),
		OrderBy:     gogitlab.Ptr("created_at"),
		Sort:        gogitlab.Ptr("desc"),
	}, gogitlab.WithContext(ctx))
	if err != nil {
		return 0
	}
	for _, pkg := range pkgs {
		if pkg.Name == name && pkg.Version == version {
			return pkg.ID
		}
	}
	return 0
}
