package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TsafasN/gitlab-manager/pkg/gitlabmanager"
)

// newTestServer backs the REST surface with a stub GitLab API so requests
// exercise the full stack: handler, facade, underlying client, HTTP.
func newTestServer(t *testing.T, gitlabHandler http.Handler) *Server {
	t.Helper()
	stub := httptest.NewServer(gitlabHandler)
	t.Cleanup(stub.Close)

	client, err := gitlabmanager.New(gitlabmanager.Config{
		BaseURL:    stub.URL,
		Credential: gitlabmanager.PrivateToken("glpat-test"),
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return New(client, nil)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, http.NotFoundHandler())

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t, http.NotFoundHandler())

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("request id should be generated")
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "caller-id")
	srv.Router().ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "caller-id" {
		t.Errorf("supplied request id should be honored, got %q", got)
	}
}

func TestGetProject(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v4/projects/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": 42, "name": "app", "path_with_namespace": "group/app"}`)
	})
	srv := newTestServer(t, mux)

	// Path form, URL-encoded like the GitLab API itself.
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/projects/group%2Fapp/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var project gitlabmanager.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &project); err != nil {
		t.Fatal(err)
	}
	if project.ID != 42 || project.PathWithNamespace != "group/app" {
		t.Errorf("got %+v", project)
	}
}

func TestGetProjectInvalidReference(t *testing.T) {
	srv := newTestServer(t, http.NotFoundHandler())

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/projects/noslash/", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != "INVALID_PROJECT" {
		t.Errorf("code = %q", body.Code)
	}
}

func TestGetProjectNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "404 Project Not Found"}`)
	})
	srv := newTestServer(t, mux)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/projects/99/", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestTriggerPipeline(t *testing.T) {
	var gotBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v4/projects/42/pipeline", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 7, "status": "created", "ref": "main", "web_url": "https://gitlab.example.com/-/pipelines/7"}`)
	})
	srv := newTestServer(t, mux)

	payload := `{"ref": "main", "variables": {"DEPLOY_ENV": "staging"}}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/42/pipelines", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var pipeline gitlabmanager.Pipeline
	if err := json.Unmarshal(rec.Body.Bytes(), &pipeline); err != nil {
		t.Fatal(err)
	}
	if pipeline.ID != 7 || pipeline.Status != "created" {
		t.Errorf("got %+v", pipeline)
	}
	if gotBody["ref"] != "main" {
		t.Errorf("ref forwarded = %v", gotBody["ref"])
	}
}

func TestCreateReleaseConflict(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v4/projects/42/releases", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"message": "Release already exists"}`)
	})
	srv := newTestServer(t, mux)

	payload := `{"tag_name": "v1.0.0", "name": "Release 1.0.0"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/42/releases", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != "CONFLICT" {
		t.Errorf("code = %q", body.Code)
	}
}

func TestCreateReleaseMalformedBody(t *testing.T) {
	srv := newTestServer(t, http.NotFoundHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/42/releases", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestListBranches(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v4/projects/42/repository/branches", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"name": "main", "default": true}, {"name": "develop"}]`)
	})
	srv := newTestServer(t, mux)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/projects/42/branches", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var branches []*gitlabmanager.Branch
	if err := json.Unmarshal(rec.Body.Bytes(), &branches); err != nil {
		t.Fatal(err)
	}
	if len(branches) != 2 || !branches[0].Default {
		t.Errorf("got %+v", branches)
	}
}

func TestListPackagesEmptyIsArray(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v4/projects/42/packages", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	})
	srv := newTestServer(t, mux)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/projects/42/packages", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("empty list should serialize as [], got %s", got)
	}
}

func TestDeleteTag(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v4/projects/42/repository/tags/v1.0.0", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	srv := newTestServer(t, mux)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/projects/42/tags/v1.0.0", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204, body = %s", rec.Code, rec.Body.String())
	}
}

func TestUploadPackageMissingFilePart(t *testing.T) {
	srv := newTestServer(t, http.NotFoundHandler())

	body := &bytes.Buffer{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/42/packages", body)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
