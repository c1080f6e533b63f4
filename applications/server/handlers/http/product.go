package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/donmikel/storefront/applications/server"
	"github.com/donmikel/storefront/applications/server/domain"
)

func ProductsHandler(svc server.CatalogService, logger log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handleGetProducts(svc, logger, w, r)
		case http.MethodPost:
			handleCreateProduct(svc, logger, w, r)
		case http.MethodPut:
			handleUpdateProduct(svc, logger, w, r)
		case http.MethodDelete:
			handleDeleteProduct(svc, logger, w, r)
		default:
			methodNotAllowed(w, logger)
		}
	}
}

func handleGetProducts(svc server.CatalogService, logger log.Logger, w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		product domain.Product
		err     error
	)

	switch {
	case query.Get("slug") != "":
		product, err = svc.GetProductBySlug(r.Context(), query.Get("slug"))
	case query.Get("id") != "":
		product, err = svc.GetProductByID(r.Context(), query.Get("id"))
	default:
		products, err := svc.ListProducts(r.Context(), domain.ProductFilter{Status: query.Get("status")})
		if err != nil {
			writeProductErr(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, products, logger)
		return
	}

	if err != nil {
		writeProductErr(w, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, product, logger)
}

func handleCreateProduct(svc server.CatalogService, logger log.Logger, w http.ResponseWriter, r *http.Request) {
	var in domain.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid JSON body", err, logger)
		return
	}

	product, err := svc.CreateProduct(r.Context(), in)
	if err != nil {
		writeProductErr(w, err, logger)
		return
	}

	level.Info(logger).Log("msg", "product created", "id", product.ID, "slug", product.Slug)

	writeJSON(w, http.StatusCreated, successResponse{
		Success: true,
		ID:      product.ID,
		Slug:    product.Slug,
	}, logger)
}

func handleUpdateProduct(svc server.CatalogService, logger log.Logger, w http.ResponseWriter, r *http.Request) {
	var in domain.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid JSON body", err, logger)
		return
	}

	product, err := svc.UpdateProduct(r.Context(), in)
	if err != nil {
		writeProductErr(w, err, logger)
		return
	}

	level.Info(logger).Log("msg", "product updated", "id", product.ID)

	writeJSON(w, http.StatusOK, successResponse{Success: true, ID: product.ID}, logger)
}

func handleDeleteProduct(svc server.CatalogService, logger log.Logger, w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	if err := svc.DeleteProduct(r.Context(), id); err != nil {
		writeProductErr(w, err, logger)
		return
	}

	level.Info(logger).Log("msg", "product deleted", "id", id)

	writeJSON(w, http.StatusOK, successResponse{Success: true, Deleted: id}, logger)
}

func writeProductErr(w http.ResponseWriter, err error, logger log.Logger) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeErr(w, http.StatusNotFound, "Product not found", nil, logger)
	case errors.Is(err, domain.ErrSlugExists):
		writeErr(w, http.StatusBadRequest, "Slug already exists", nil, logger)
	case errors.Is(err, domain.ErrInvalidProduct):
		writeErr(w, http.StatusBadRequest, "Invalid product", err, logger)
	default:
		level.Error(logger).Log("msg", "API error", "err", err)
		writeErr(w, http.StatusInternalServerError, "Internal server error", err, logger)
	}
}
