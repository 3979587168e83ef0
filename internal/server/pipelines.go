package server

import (
	"net/http"
	"strconv"

	"github.com/TsafasN/gitlab-manager/pkg/gitlabmanager"
)

type triggerPipelineRequest struct {
	Ref       string            `json:"ref"`
	Variables map[string]string `json:"variables"`
}

func (s *Server) handleListPipelines(w http.ResponseWriter, r *http.Request) {
	project, err := projectParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	pipelines, err := s.client.Pipelines.List(r.Context(), project, gitlabmanager.ListPipelinesOptions{
		Ref:    q.Get("ref"),
		Status: q.Get("status"),
		Limit:  limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if pipelines == nil {
		pipelines = []*gitlabmanager.Pipeline{}
	}
	writeJSON(w, http.StatusOK, pipelines)
}

func (s *Server) handleTriggerPipeline(w http.ResponseWriter, r *http.Request) {
	project, err := projectParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req triggerPipelineRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	pipeline, err := s.client.Pipelines.Trigger(r.Context(), project, req.Ref, req.Variables)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pipeline)
}

func (s *Server) handlePipelineStatus(w http.ResponseWriter, r *http.Request) {
	project, err := projectParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := intParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	pipeline, err := s.client.Pipelines.Status(r.Context(), project, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pipeline)
}
