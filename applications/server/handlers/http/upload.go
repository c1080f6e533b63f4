package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"

	"github.com/donmikel/storefront/applications/server"
	"github.com/donmikel/storefront/applications/server/domain"
)

type uploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

type successResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Slug    string `json:"slug,omitempty"`
	Deleted string `json:"deleted,omitempty"`
}

func UploadHandler(svc server.UploadService, maxUploadBytes int64, logger log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Ready(); err != nil {
			level.Error(logger).Log("msg", "upload storage is not configured", "err", err)
			writeErr(w, http.StatusInternalServerError, "Storage not configured", err, logger)
			return
		}

		switch r.Method {
		case http.MethodPost:
			handleUpload(svc, maxUploadBytes, logger, w, r)
		case http.MethodDelete:
			handleDeleteBlob(svc, logger, w, r)
		default:
			methodNotAllowed(w, logger)
		}
	}
}

func handleUpload(svc server.UploadService, maxUploadBytes int64, logger log.Logger, w http.ResponseWriter, r *http.Request) {
	reader := io.Reader(r.Body)
	if maxUploadBytes > 0 {
		reader = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeErr(w, http.StatusRequestEntityTooLarge, "File too large", err, logger)
			return
		}

		level.Error(logger).Log("msg", "can't read upload body", "err", err)
		writeErr(w, http.StatusBadRequest, "Can't read body", err, logger)
		return
	}

	res, err := svc.Upload(r.Context(), r.Header.Get("Content-Type"), body)
	switch {
	case errors.Is(err, domain.ErrInvalidContentType):
		writeErr(w, http.StatusBadRequest, "Invalid content type", nil, logger)
		return
	case errors.Is(err, domain.ErrMissingBoundary):
		writeErr(w, http.StatusBadRequest, "No boundary found", nil, logger)
		return
	case errors.Is(err, domain.ErrNoFileFound):
		writeErr(w, http.StatusBadRequest, "No file found", nil, logger)
		return
	case err != nil:
		level.Error(logger).Log("msg", "Upload error", "err", err)
		writeErr(w, http.StatusInternalServerError, "Upload failed", err, logger)
		return
	}

	level.Info(logger).Log("msg", "file uploaded",
		"filename", res.Filename,
		"body_size", humanize.Bytes(uint64(len(body))),
	)

	writeJSON(w, http.StatusOK, uploadResponse{
		Success:  true,
		URL:      res.URL,
		Filename: res.Filename,
	}, logger)
}

func handleDeleteBlob(svc server.UploadService, logger log.Logger, w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeErr(w, http.StatusBadRequest, "URL is required", nil, logger)
		return
	}

	err := svc.Delete(r.Context(), url)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeErr(w, http.StatusNotFound, "Blob not found", err, logger)
		return
	case err != nil:
		level.Error(logger).Log("msg", "Delete error", "err", err)
		writeErr(w, http.StatusInternalServerError, "Delete failed", err, logger)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true}, logger)
}

func GetBlobHandler(svc server.UploadService, logger log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		blob, err := svc.GetBlob(r.Context(), vars["storage"], vars["key"])
		if errors.Is(err, domain.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "Blob not found", nil, logger)
			return
		}
		if err != nil {
			level.Error(logger).Log("msg", "GetBlob error", "err", err)
			writeErr(w, http.StatusInternalServerError, "Internal server error", err, logger)
			return
		}

		w.Header().Set("Content-Type", blob.ContentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		// Uploads share the API origin; only images render inline.
		if !strings.HasPrefix(blob.ContentType, "image/") || blob.ContentType == "image/svg+xml" {
			w.Header().Set("Content-Disposition", "attachment")
		}

		if r.Method == http.MethodHead {
			return
		}

		if _, err = w.Write(blob.Data); err != nil {
			level.Error(logger).Log("msg", "error body write", "err", err)
		}
	}
}
