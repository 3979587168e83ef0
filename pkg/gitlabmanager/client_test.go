package gitlabmanager

import (
	"testing"

	"github.com/TsafasN/gitlab-manager/pkg/errors"
)

func TestNewRequiresCredential(t *testing.T) {
	_, err := New(Config{BaseURL: "https://gitlab.example.com"})
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("expected CONFIGURATION_ERROR, got %v", err)
	}
}

func TestNewRejectsEmptyCredentialValue(t *testing.T) {
	creds := map[string]Credential{
		"private": PrivateToken(""),
		"oauth":   OAuthToken(""),
		"job":     JobToken(""),
	}
	for name, cred := range creds {
		t.Run(name, func(t *testing.T) {
			_, err := New(Config{BaseURL: "https://gitlab.example.com", Credential: cred})
			if !errors.Is(err, errors.ErrCodeConfiguration) {
				t.Errorf("expected CONFIGURATION_ERROR, got %v", err)
			}
		})
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	urls := []string{"", "not-a-url", "ftp://gitlab.example.com"}
	for _, u := range urls {
		_, err := New(Config{BaseURL: u, Credential: PrivateToken("glpat-token")})
		if !errors.Is(err, errors.ErrCodeConfiguration) {
			t.Errorf("URL %q: expected CONFIGURATION_ERROR, got %v", u, err)
		}
	}
}

func TestNewAcceptsEachCredentialKind(t *testing.T) {
	creds := map[string]Credential{
		"private": PrivateToken("glpat-token"),
		"oauth":   OAuthToken("oauth-token"),
		"job":     JobToken("job-token"),
	}
	for name, cred := range creds {
		t.Run(name, func(t *testing.T) {
			c, err := New(Config{BaseURL: "https://gitlab.example.com", Credential: cred})
			if err != nil {
				t.Fatalf("New error: %v", err)
			}
			if c.Packages == nil || c.Releases == nil || c.Pipelines == nil ||
				c.Repositories == nil || c.Projects == nil {
				t.Error("all services should be wired")
			}
			if c.BaseURL() != "https://gitlab.example.com" {
				t.Errorf("BaseURL = %q", c.BaseURL())
			}
		})
	}
}

func TestCredentialKind(t *testing.T) {
	if got := PrivateToken("x").Kind(); got != CredentialPrivateToken {
		t.Errorf("Kind = %q", got)
	}
	if got := OAuthToken("x").Kind(); got != CredentialOAuthToken {
		t.Errorf("Kind = %q", got)
	}
	if got := JobToken("x").Kind(); got != CredentialJobToken {
		t.Errorf("Kind = %q", got)
	}
	var zero Credential
	if zero.Kind() != "" {
		t.Error("zero credential should have empty kind")
	}
}
