package server

import (
	"net/http"

	"github.com/TsafasN/gitlab-manager/pkg/gitlabmanager"
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := gitlabmanager.ListProjectsOptions{
		Owned:      q.Get("owned") == "true",
		Membership: q.Get("membership") == "true",
		Starred:    q.Get("starred") == "true",
		Search:     q.Get("search"),
		Visibility: q.Get("visibility"),
		OrderBy:    q.Get("order_by"),
		Sort:       q.Get("sort"),
		Refresh:    q.Get("refresh") == "true",
	}

	projects, err := s.client.Projects.List(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if projects == nil {
		projects = []*gitlabmanager.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := projectParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := s.client.Projects.Get(r.Context(), project, r.URL.Query().Get("refresh") == "true")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
