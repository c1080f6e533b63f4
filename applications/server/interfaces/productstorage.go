package interfaces

import (
	"context"

	"github.com/donmikel/storefront/applications/server/domain"
)

// ProductStorage persists catalog records. Lookups of missing records return
// domain.ErrNotFound.
type ProductStorage interface {
	CreateProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (domain.Product, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
}
