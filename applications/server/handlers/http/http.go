package http

import (
	"net/http"

	"github.com/go-kit/log"

	"github.com/donmikel/storefront/applications/server"
	"github.com/donmikel/storefront/applications/server/config"
)

func NewHTTPServer(conf config.Api, uploadService server.UploadService, catalogService server.CatalogService, logger log.Logger) *http.Server {
	mux := NewRouter(uploadService, catalogService, int64(conf.MaxUploadBytes()), logger)
	return &http.Server{
		Addr:    conf.HTTPAddr,
		Handler: mux,
	}
}
