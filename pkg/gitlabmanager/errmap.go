package gitlabmanager

import (
	stderrors "errors"
	"net/http"
	"strings"

	gogitlab "github.com/xanzy/go-gitlab"

	"github.com/TsafasN/gitlab-manager/pkg/errors"
)

// apiError maps a failed underlying call onto the facade's error taxonomy.
// The original error is preserved as the cause, annotated with the resource
// that was being operated on. Errors are never swallowed or retried here.
func apiError(err error, resp *gogitlab.Response, format string, args ...any) error {
	code := errors.ErrCodeNetwork
	switch httpStatus(err, resp) {
	case http.StatusNotFound:
		code = errors.ErrCodeNotFound
	case http.StatusConflict:
		code = errors.ErrCodeConflict
	case http.StatusUnauthorized:
		code = errors.ErrCodeUnauthorized
	case http.StatusForbidden:
		code = errors.ErrCodeForbidden
	case http.StatusTooManyRequests:
		code = errors.ErrCodeRateLimited
	case http.StatusBadRequest:
		// The generic package registry reports a duplicate file as a
		// plain 400 with "has already been taken" in the body, not a 409.
		if isDuplicateResponse(err) {
			code = errors.ErrCodeConflict
		} else {
			code = errors.ErrCodeInternal
		}
	case 0:
		// No HTTP response reached us, leave it a network error.
	default:
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, err, format, args...)
}

const duplicateMarker = "already been taken"

func isDuplicateResponse(err error) bool {
	var glErr *gogitlab.ErrorResponse
	if !stderrors.As(err, &glErr) {
		return false
	}
	return strings.Contains(glErr.Message, duplicateMarker) ||
		strings.Contains(string(glErr.Body), duplicateMarker)
}

func httpStatus(err error, resp *gogitlab.Response) int {
	if resp != nil && resp.Response != nil {
		return resp.StatusCode
	}
	var apErr *gogitlab.ErrorResponse
	if stderrors.As(err, &apErr) && apErr.Response != nil {
		return apErr.Response.StatusCode
	}
	return 0
}
