package cli

import (
	"reflect"
	"testing"

	"github.com/TsafasN/gitlab-manager/pkg/errors"
	"github.com/TsafasN/gitlab-manager/pkg/gitlabmanager"
)

func TestParseVariables(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    map[string]string
		wantErr bool
	}{
		{name: "empty", in: nil, want: nil},
		{name: "single", in: []string{"KEY=value"}, want: map[string]string{"KEY": "value"}},
		{
			name: "verbatim values",
			in:   []string{"EMPTY=", "SPACES=a b c", "EQUALS=a=b=c"},
			want: map[string]string{"EMPTY": "", "SPACES": "a b c", "EQUALS": "a=b=c"},
		},
		{name: "missing separator", in: []string{"KEY"}, wantErr: true},
		{name: "empty key", in: []string{"=value"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVariables(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Fatalf("err = %v, want INVALID_INPUT", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseVariables: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseAssetLinks(t *testing.T) {
	got, err := parseAssetLinks([]string{"binary=https://example.com/app.tar.gz"})
	if err != nil {
		t.Fatalf("parseAssetLinks: %v", err)
	}
	want := []gitlabmanager.AssetLink{{Name: "binary", URL: "https://example.com/app.tar.gz"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	for _, bad := range []string{"noseparator", "=url", "name="} {
		if _, err := parseAssetLinks([]string{bad}); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("parseAssetLinks(%q): err = %v, want INVALID_INPUT", bad, err)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestShortSHA(t *testing.T) {
	if got := shortSHA("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortSHA = %q", got)
	}
	if got := shortSHA(""); got != "-" {
		t.Errorf("shortSHA(empty) = %q", got)
	}
	if got := shortSHA("abc"); got != "abc" {
		t.Errorf("shortSHA(short) = %q", got)
	}
}
