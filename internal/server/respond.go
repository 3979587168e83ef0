package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/TsafasN/gitlab-manager/pkg/errors"
	"github.com/TsafasN/gitlab-manager/pkg/gitlabmanager"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the facade's error codes onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidProject,
		errors.ErrCodeInvalidPackage, errors.ErrCodeInvalidPath,
		errors.ErrCodeConfiguration:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeConflict:
		status = http.StatusConflict
	case errors.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	case errors.ErrCodeForbidden:
		status = http.StatusForbidden
	case errors.ErrCodeRateLimited:
		status = http.StatusTooManyRequests
	case errors.ErrCodeNetwork:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, errorBody{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}

// projectParam extracts the {project} route parameter. Paths are sent
// URL-encoded, "group%2Fapp", the way the GitLab API itself addresses
// projects.
func projectParam(r *http.Request) (gitlabmanager.ProjectRef, error) {
	raw := chi.URLParam(r, "project")
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return gitlabmanager.ProjectRef{}, errors.New(errors.ErrCodeInvalidProject, "malformed project reference: %s", raw)
	}
	return gitlabmanager.ParseProject(decoded)
}

func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, raw)
	}
	return id, nil
}

func decodeBody(r *http.Request, dest any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed request body")
	}
	return nil
}
