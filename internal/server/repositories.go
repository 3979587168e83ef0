package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TsafasN/gitlab-manager/pkg/gitlabmanager"
)

type createBranchRequest struct {
	Name string `json:"name"`
	Ref  string `json:"ref"`
}

type createTagRequest struct {
	Name    string `json:"name"`
	Ref     string `json:"ref"`
	Message string `json:"message"`
}

func (s *Server) handleListBranches(w http.ResponseWriter, r *http.Request) {
	project, err := projectParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	branches, err := s.client.Repositories.ListBranches(r.Context(), project, r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, err)
		return
	}
	if branches == nil {
		branches = []*gitlabmanager.Branch{}
	}
	writeJSON(w, http.StatusOK, branches)
}

func (s *Server) handleCreateBranch(w http.ResponseWriter, r *http.Request) {
	project, err := projectParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req createBranchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	branch, err := s.client.Repositories.CreateBranch(r.Context(), project, req.Name, req.Ref)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, branch)
}

func (s *Server) handleDeleteBranch(w http.ResponseWriter, r *http.Request) {
	project, err := projectParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.client.Repositories.DeleteBranch(r.Context(), project, chi.URLParam(r, "branch")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	project, err := projectParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	tags, err := s.client.Repositories.ListTags(r.Context(), project, r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, err)
		return
	}
	if tags == nil {
		tags = []*gitlabmanager.Tag{}
	}
	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	project, err := projectParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req createTagRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	tag, err := s.client.Repositories.CreateTag(r.Context(), project, req.Name, req.Ref, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	project, err := projectParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.client.Repositories.DeleteTag(r.Context(), project, chi.URLParam(r, "tag")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
