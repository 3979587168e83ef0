package errors

import "testing"

func TestValidateProjectPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"simple path", "gitlab-org/gitlab", false},
		{"nested subgroup", "group/subgroup/project", false},
		{"dots and dashes", "my.group/my-project_1", false},
		{"empty", "", true},
		{"no namespace", "project", true},
		{"trailing slash", "group/project/", true},
		{"leading slash", "/group/project", true},
		{"empty segment", "group//project", true},
		{"spaces", "group/my project", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProjectPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidProject) {
				t.Errorf("ValidateProjectPath(%q) code = %v, want %v", tt.path, GetCode(err), ErrCodeInvalidProject)
			}
		})
	}
}

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		pkg     string
		wantErr bool
	}{
		{"valid name", "my-package", false},
		{"with version-ish suffix", "app_v2", false},
		{"empty", "", true},
		{"path traversal", "../etc/passwd", true},
		{"double slash", "a//b", true},
		{"backslash", "a\\b", true},
		{"control character", "pkg\x01name", true},
		{"too long", string(make([]byte, 300)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.pkg)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackageName(%q) error = %v, wantErr %v", tt.pkg, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePackageVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr bool
	}{
		{"semver", "1.2.3", false},
		{"prerelease", "2.0.0-rc.1", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"path separator", "1.0/2", true},
		{"embedded space", "1.0 beta", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageVersion(tt.version)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackageVersion(%q) error = %v, wantErr %v", tt.version, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFileName(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		wantErr  bool
	}{
		{"simple file", "app.tar.gz", false},
		{"empty", "", true},
		{"path separator", "dist/app.tar.gz", true},
		{"backslash", "dist\\app.zip", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileName(tt.fileName)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFileName(%q) error = %v, wantErr %v", tt.fileName, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRef(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		wantErr bool
	}{
		{"branch", "main", false},
		{"nested branch", "feature/login", false},
		{"tag", "v1.0.0", false},
		{"empty", "", true},
		{"leading dash", "-branch", true},
		{"double dot", "a..b", true},
		{"space", "my branch", true},
		{"tilde", "main~1", true},
		{"lock suffix", "main.lock", true},
		{"trailing slash", "feature/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRef(tt.ref)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRef(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://gitlab.com", false},
		{"http", "http://gitlab.example.com", false},
		{"empty", "", true},
		{"no scheme", "gitlab.com", true},
		{"file scheme", "file:///etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
