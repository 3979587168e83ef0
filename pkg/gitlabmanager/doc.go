// Package gitlabmanager provides a high-level facade over the GitLab API.
//
// A Client is constructed from an instance URL and exactly one credential
// (personal access token, OAuth token, or CI job token) and exposes grouped
// services for common operations:
//
//   - Packages: generic package registry upload, download, listing
//   - Releases: release creation and management
//   - Pipelines: pipeline triggering and status
//   - Repositories: branch and tag operations
//   - Projects: project discovery and lookup
//
// Every operation is a single stateless request/response exchange. The facade
// validates inputs locally before any network round trip, forwards the call to
// the underlying GitLab client, and maps failures onto the structured codes in
// pkg/errors. Transport concerns (pagination mechanics, rate limiting, retry,
// authentication flows) belong to the underlying client.
//
// Basic usage:
//
//	client, err := gitlabmanager.New(gitlabmanager.Config{
//		BaseURL:    "https://gitlab.example.com",
//		Credential: gitlabmanager.PrivateToken(token),
//	})
//	if err != nil {
//		return err
//	}
//	project := gitlabmanager.ProjectPath("group/app")
//	result, err := client.Packages.Upload(ctx, project, "dist/app.tar.gz", gitlabmanager.UploadOptions{})
//
// Projects may be referenced by numeric id or by "namespace/name" path; both
// forms address the same underlying resource.
package gitlabmanager
