package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TsafasN/gitlab-manager/pkg/gitlabmanager"
)

type createReleaseRequest struct {
	TagName     string                    `json:"tag_name"`
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Ref         string                    `json:"ref"`
	Assets      []gitlabmanager.AssetLink `json:"assets"`
}

type updateReleaseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleListReleases(w http.ResponseWriter, r *http.Request) {
	project, err := projectParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	releases, err := s.client.Releases.List(r.Context(), project)
	if err != nil {
		writeError(w, err)
		return
	}
	if releases == nil {
		releases = []*gitlabmanager.Release{}
	}
	writeJSON(w, http.StatusOK, releases)
}

func (s *Server) handleCreateRelease(w http.ResponseWriter, r *http.Request) {
	project, err := projectParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req createReleaseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	release, err := s.client.Releases.Create(r.Context(), project, req.TagName, req.Name, gitlabmanager.CreateReleaseOptions{
		Description: req.Description,
		Ref:         req.Ref,
		Assets:      req.Assets,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, release)
}

func (s *Server) handleGetRelease(w http.ResponseWriter, r *http.Request) {
	project, err := projectParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	release, err := s.client.Releases.Get(r.Context(), project, chi.URLParam(r, "tag"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, release)
}

func (s *Server) handleUpdateRelease(w http.ResponseWriter, r *http.Request) {
	project, err := projectParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req updateReleaseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	release, err := s.client.Releases.Update(r.Context(), project, chi.URLParam(r, "tag"), gitlabmanager.UpdateReleaseOptions{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, release)
}
