package gitlabmanager

import (
	"strconv"

	"github.com/TsafasN/gitlab-manager/pkg/errors"
)

// ProjectRef identifies a GitLab project either by numeric id or by
// "namespace/name" path. Both forms address the identical underlying
// resource. The zero value is invalid.
type ProjectRef struct {
	id   int
	path string
}

// ProjectID references a project by its numeric id.
func ProjectID(id int) ProjectRef {
	return ProjectRef{id: id}
}

// ProjectPath references a project by its full namespace path,
// e.g. "group/subgroup/project".
func ProjectPath(path string) ProjectRef {
	return ProjectRef{path: path}
}

// ParseProject normalizes a user-supplied project reference. A string of
// digits becomes a numeric id reference; anything else must be a valid
// namespace path.
func ParseProject(s string) (ProjectRef, error) {
	if s == "" {
		return ProjectRef{}, errors.New(errors.ErrCodeInvalidProject, "project reference cannot be empty")
	}
	if id, err := strconv.Atoi(s); err == nil {
		if id <= 0 {
			return ProjectRef{}, errors.New(errors.ErrCodeInvalidProject, "project id must be positive: %d", id)
		}
		return ProjectID(id), nil
	}
	if err := errors.ValidateProjectPath(s); err != nil {
		return ProjectRef{}, err
	}
	return ProjectPath(s), nil
}

// validate rejects zero-value and malformed references before any network
// call is made.
func (r ProjectRef) validate() error {
	if r.id > 0 {
		return nil
	}
	if r.id < 0 {
		return errors.New(errors.ErrCodeInvalidProject, "project id must be positive: %d", r.id)
	}
	if r.path == "" {
		return errors.New(errors.ErrCodeInvalidProject, "project reference cannot be empty")
	}
	return errors.ValidateProjectPath(r.path)
}

// pid returns the identifier form the underlying client accepts: an int for
// numeric references, the path string otherwise.
func (r ProjectRef) pid() interface{} {
	if r.id > 0 {
		return r.id
	}
	return r.path
}

// String returns the reference in its original form.
func (r ProjectRef) String() string {
	if r.id > 0 {
		return strconv.Itoa(r.id)
	}
	return r.path
}
