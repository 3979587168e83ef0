package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// projectPathRegex matches "namespace/project" paths, including nested
// subgroups ("group/subgroup/project"). GitLab path segments allow letters,
// digits, underscores, dots and hyphens.
var projectPathRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+(/[a-zA-Z0-9_.-]+)+$`)

// ValidateProjectPath validates a GitLab project path of the form
// "namespace/project" or "group/subgroup/project".
func ValidateProjectPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidProject, "project path cannot be empty")
	}

	if !projectPathRegex.MatchString(path) {
		return New(ErrCodeInvalidProject, "invalid project path: %q (expected \"namespace/project\")", path)
	}

	return nil
}

// ValidatePackageName validates a package name for safety and correctness.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidatePackageVersion validates a package version string.
// GitLab's generic package registry accepts dotted versions with optional
// pre-release suffixes; the rules here only reject clearly broken input.
func ValidatePackageVersion(version string) error {
	if strings.TrimSpace(version) == "" {
		return New(ErrCodeInvalidPackage, "package version cannot be empty")
	}

	if strings.ContainsAny(version, "/\\") {
		return New(ErrCodeInvalidPackage, "package version cannot contain path separators")
	}

	for _, r := range version {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidPackage, "package version contains invalid characters")
		}
	}

	return nil
}

// ValidateFileName validates a file name used inside a package.
// It ensures the name is a simple basename without path components.
func ValidateFileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "file name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "file name cannot contain path separators")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "file name contains invalid characters")
		}
	}

	return nil
}

// ValidateRef validates a git ref name (branch or tag).
// The rules follow git-check-ref-format in spirit without being exhaustive.
func ValidateRef(ref string) error {
	if ref == "" {
		return New(ErrCodeInvalidInput, "ref cannot be empty")
	}

	if strings.HasPrefix(ref, "-") || strings.HasSuffix(ref, ".lock") || strings.HasSuffix(ref, "/") {
		return New(ErrCodeInvalidInput, "invalid ref name: %q", ref)
	}

	if strings.Contains(ref, "..") || strings.ContainsAny(ref, " ~^:?*[\\") {
		return New(ErrCodeInvalidInput, "invalid ref name: %q", ref)
	}

	for _, r := range ref {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "ref contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
