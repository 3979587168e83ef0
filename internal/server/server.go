// Package server exposes the facade over a small JSON REST surface for the
// serve command. The server holds no state of its own; every request maps
// onto a single facade call.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/TsafasN/gitlab-manager/pkg/gitlabmanager"
)

// Server routes REST requests to a gitlabmanager client.
type Server struct {
	client *gitlabmanager.Client
	logger *log.Logger
}

// New creates a Server over the given client. A nil logger discards request
// logs.
func New(client *gitlabmanager.Client, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(nil)
		logger.SetLevel(log.FatalLevel)
	}
	return &Server{client: client, logger: logger}
}

// Router builds the HTTP handler with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/projects", s.handleListProjects)

		r.Route("/projects/{project}", func(r chi.Router) {
			r.Get("/", s.handleGetProject)

			r.Get("/packages", s.handleListPackages)
			r.Post("/packages", s.handleUploadPackage)
			r.Get("/packages/{id}", s.handleGetPackage)
			r.Delete("/packages/{id}", s.handleDeletePackage)

			r.Get("/releases", s.handleListReleases)
			r.Post("/releases", s.handleCreateRelease)
			r.Get("/releases/{tag}", s.handleGetRelease)
			r.Patch("/releases/{tag}", s.handleUpdateRelease)

			r.Get("/pipelines", s.handleListPipelines)
			r.Post("/pipelines", s.handleTriggerPipeline)
			r.Get("/pipelines/{id}", s.handlePipelineStatus)

			r.Get("/branches", s.handleListBranches)
			r.Post("/branches", s.handleCreateBranch)
			r.Delete("/branches/{branch}", s.handleDeleteBranch)

			r.Get("/tags", s.handleListTags)
			r.Post("/tags", s.handleCreateTag)
			r.Delete("/tags/{tag}", s.handleDeleteTag)
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
