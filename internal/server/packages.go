package server

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/TsafasN/gitlab-manager/pkg/errors"
	"github.com/TsafasN/gitlab-manager/pkg/gitlabmanager"
)

// maxUploadBytes bounds multipart uploads accepted by the server.
const maxUploadBytes = 5 << 30

func (s *Server) handleListPackages(w http.ResponseWriter, r *http.Request) {
	project, err := projectParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	pkgs, err := s.client.Packages.List(r.Context(), project, gitlabmanager.ListPackagesOptions{
		PackageType: r.URL.Query().Get("package_type"),
		PackageName: r.URL.Query().Get("package_name"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if pkgs == nil {
		pkgs = []*gitlabmanager.Package{}
	}
	writeJSON(w, http.StatusOK, pkgs)
}

func (s *Server) handleGetPackage(w http.ResponseWriter, r *http.Request) {
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

	pkg, err := s.client.Packages.Get(r.Context(), project, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pkg)
}

// handleUploadPackage accepts a multipart form with a "file" part and
// optional "name" and "version" fields. The upload is spooled to a temporary
// file so the facade's local-file validation applies unchanged.
func (s *Server) handleUploadPackage(w http.ResponseWriter, r *http.Request) {
	project, err := projectParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "missing file part"))
		return
	}
	defer file.Close()

	tmpDir, err := os.MkdirTemp("", "gitlab-manager-upload-")
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "creating temp dir"))
		return
	}
	defer os.RemoveAll(tmpDir)

	tmpPath := filepath.Join(tmpDir, filepath.Base(header.Filename))
	tmp, err := os.Create(tmpPath)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "spooling upload"))
		return
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "spooling upload"))
		return
	}
	tmp.Close()

	result, err := s.client.Packages.Upload(r.Context(), project, tmpPath, gitlabmanager.UploadOptions{
		Name:    r.FormValue("name"),
		Version: r.FormValue("version"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleDeletePackage(w http.ResponseWriter, r *http.Request) {
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

	if err := s.client.Packages.Delete(r.Context(), project, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
