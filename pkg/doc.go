// Package pkg provides the core libraries for gitlab-manager.
//
// The directory is organized into four areas:
//
//  1. [gitlabmanager] - The API client facade: packages, releases,
//     pipelines, repositories, and project discovery services.
//  2. [cache] - Cache backends (file, Redis, MongoDB) and key derivation
//     used by project discovery.
//  3. [errors] - Coded errors shared across the facade, CLI, and server.
//  4. [buildinfo] - Build-time version metadata.
//
// The typical flow: a caller (CLI command or REST handler) builds a
// [gitlabmanager.Client] from a URL and exactly one credential, then calls
// the grouped services, which validate inputs locally and forward each
// operation to the GitLab REST API.
package pkg
