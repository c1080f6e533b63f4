package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"

	"github.com/donmikel/storefront/applications/server"
)

const (
	productMethods = "GET, POST, PUT, DELETE, OPTIONS"
	uploadMethods  = "POST, DELETE, OPTIONS"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func NewRouter(uploadService server.UploadService, catalogService server.CatalogService, maxUploadBytes int64, logger log.Logger) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/products", withCORS(productMethods, ProductsHandler(catalogService, logger)))
	r.HandleFunc("/api/upload", withCORS(uploadMethods, UploadHandler(uploadService, maxUploadBytes, logger)))
	r.HandleFunc("/blob/{storage}/{key}", GetBlobHandler(uploadService, logger)).Methods(http.MethodGet, http.MethodHead)
	return r
}

// withCORS allows any origin and answers preflight requests itself.
func withCORS(methods string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", methods)
		h.Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any, logger log.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		level.Error(logger).Log("msg", "can't write response", "err", err)
	}
}

func writeErr(w http.ResponseWriter, status int, msg string, err error, logger log.Logger) {
	resp := errorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}

	writeJSON(w, status, resp, logger)
}

func methodNotAllowed(w http.ResponseWriter, logger log.Logger) {
	writeErr(w, http.StatusMethodNotAllowed, "Method not allowed", nil, logger)
}
