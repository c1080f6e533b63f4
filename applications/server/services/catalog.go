package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/donmikel/storefront/applications/server"
	"github.com/donmikel/storefront/applications/server/domain"
	"github.com/donmikel/storefront/applications/server/interfaces"
)

type catalogService struct {
	productStorage interfaces.ProductStorage
	now            func() time.Time
}

func NewCatalogService(productStorage interfaces.ProductStorage) server.CatalogService {
	return &catalogService{
		productStorage: productStorage,
		now:            time.Now,
	}
}

func (s *catalogService) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	if nonEmpty(in.Title) == nil || nonEmpty(in.Slug) == nil {
		return domain.Product{}, fmt.Errorf("%w: title and slug are required", domain.ErrInvalidProduct)
	}

	if err := s.checkSlugFree(ctx, *in.Slug, ""); err != nil {
		return domain.Product{}, err
	}

	now := s.now().UTC()
	p := domain.Product{
		ID:           newProductID(now),
		Slug:         *in.Slug,
		Status:       stringOr(in.Status, domain.StatusDraft),
		Title:        *in.Title,
		Installments: intOr(in.Installments, domain.DefaultInstallments),
		Sold:         intOr(in.Sold, 0),
		SellerName:   stringOr(in.SellerName, domain.DefaultSellerName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	applyOptional(&p, in)

	if err := s.productStorage.CreateProduct(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("can't create product: %w", err)
	}

	return p, nil
}

// UpdateProduct keeps slug, status, title, installments, sold and seller name
// when they are omitted; every other optional field is overwritten.
func (s *catalogService) UpdateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	if in.ID == "" {
		return domain.Product{}, fmt.Errorf("%w: product ID is required", domain.ErrInvalidProduct)
	}

	p, err := s.productStorage.GetProductByID(ctx, in.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("can't get product: %w", err)
	}

	if slug := nonEmpty(in.Slug); slug != nil {
		if err = s.checkSlugFree(ctx, *slug, in.ID); err != nil {
			return domain.Product{}, err
		}
		p.Slug = *slug
	}

	p.Status = stringOr(in.Status, p.Status)
	p.Title = stringOr(in.Title, p.Title)
	p.SellerName = stringOr(in.SellerName, p.SellerName)
	if in.Installments != nil {
		p.Installments = *in.Installments
	}
	if in.Sold != nil {
		p.Sold = *in.Sold
	}
	applyOptional(&p, in)
	p.UpdatedAt = s.now().UTC()

	if err = s.productStorage.UpdateProduct(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("can't update product: %w", err)
	}

	return p, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: product ID is required", domain.ErrInvalidProduct)
	}

	if err := s.productStorage.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("can't delete product: %w", err)
	}

	return nil
}

func (s *catalogService) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	return s.productStorage.GetProductByID(ctx, id)
}

func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (domain.Product, error) {
	return s.productStorage.GetProductBySlug(ctx, slug)
}

func (s *catalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.productStorage.ListProducts(ctx, filter)
}

func (s *catalogService) checkSlugFree(ctx context.Context, slug, id string) error {
	existing, err := s.productStorage.GetProductBySlug(ctx, slug)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("can't check slug: %w", err)
	case existing.ID == id:
		return nil
	default:
		return fmt.Errorf("product with slug = %s: %w", slug, domain.ErrSlugExists)
	}
}

// applyOptional copies the nullable fields. Empty strings and zero numbers
// are stored as null.
func applyOptional(p *domain.Product, in domain.ProductInput) {
	p.PriceOriginal = nonZero(in.PriceOriginal)
	p.PricePromo = nonZero(in.PricePromo)
	p.Discount = nonZero(in.Discount)
	p.CheckoutURL = nonEmpty(in.CheckoutURL)
	p.DescTitle = nonEmpty(in.DescTitle)
	p.Description = nonEmpty(in.Description)
	p.Specs = nonEmpty(in.Specs)
	p.IdealFor = nonEmpty(in.IdealFor)
	p.Usage = nonEmpty(in.Usage)
	p.Includes = nonEmpty(in.Includes)
	p.SellerLogo = nonEmpty(in.SellerLogo)
	p.SellerLocation = nonEmpty(in.SellerLocation)

	p.Images = in.Images
	if p.Images == nil {
		p.Images = []string{}
	}
	p.Reviews = in.Reviews
	if p.Reviews == nil {
		p.Reviews = []json.RawMessage{}
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func nonZero[T int | float64](v *T) *T {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

func stringOr(s *string, def string) string {
	if s := nonEmpty(s); s != nil {
		return *s
	}
	return def
}

func intOr(v *int, def int) int {
	if v := nonZero(v); v != nil {
		return *v
	}
	return def
}
