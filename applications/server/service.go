package server

import (
	"context"

	"github.com/donmikel/storefront/applications/server/domain"
)

type UploadService interface {
	// Ready reports domain.ErrStorageNotConfigured when no storage token is set.
	Ready() error
	// Upload stores the first file part of a multipart body.
	Upload(ctx context.Context, contentType string, body []byte) (domain.UploadResult, error)
	// Delete removes a blob previously returned by Upload.
	Delete(ctx context.Context, url string) error
	GetBlob(ctx context.Context, storageName, key string) (domain.Blob, error)
}

type CatalogService interface {
	CreateProduct(ctx context.Context, input domain.ProductInput) (domain.Product, error)
	UpdateProduct(ctx context.Context, input domain.ProductInput) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (domain.Product, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
}
