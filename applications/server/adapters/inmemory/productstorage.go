package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/donmikel/storefront/applications/server/domain"
	"github.com/donmikel/storefront/applications/server/interfaces"
)

type productRecord struct {
	product domain.Product
	seq     uint64
}

type inMemoryProductStorage struct {
	products map[string]productRecord
	seq      uint64
	mutex    sync.RWMutex
}

func NewProductStorage() interfaces.ProductStorage {
	return &inMemoryProductStorage{
		products: map[string]productRecord{},
	}
}

func (i *inMemoryProductStorage) CreateProduct(ctx context.Context, product domain.Product) error {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	if _, ok := i.products[product.ID]; ok {
		return fmt.Errorf("product with id = %s already exists", product.ID)
	}

	for _, r := range i.products {
		if r.product.Slug == product.Slug {
			return fmt.Errorf("product with slug = %s: %w", product.Slug, domain.ErrSlugExists)
		}
	}

	i.seq++
	i.products[product.ID] = productRecord{
		product: product,
		seq:     i.seq,
	}

	return nil
}

func (i *inMemoryProductStorage) UpdateProduct(ctx context.Context, product domain.Product) error {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	r, ok := i.products[product.ID]
	if !ok {
		return fmt.Errorf("product with id = %s: %w", product.ID, domain.ErrNotFound)
	}

	for id, other := range i.products {
		if id != product.ID && other.product.Slug == product.Slug {
			return fmt.Errorf("product with slug = %s: %w", product.Slug, domain.ErrSlugExists)
		}
	}

	r.product = product
	i.products[product.ID] = r

	return nil
}

func (i *inMemoryProductStorage) DeleteProduct(ctx context.Context, id string) error {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	if _, ok := i.products[id]; !ok {
		return fmt.Errorf("product with id = %s: %w", id, domain.ErrNotFound)
	}

	delete(i.products, id)

	return nil
}

func (i *inMemoryProductStorage) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	i.mutex.RLock()
	defer i.mutex.RUnlock()

	r, ok := i.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product with id = %s: %w", id, domain.ErrNotFound)
	}

	return r.product, nil
}

func (i *inMemoryProductStorage) GetProductBySlug(ctx context.Context, slug string) (domain.Product, error) {
	i.mutex.RLock()
	defer i.mutex.RUnlock()

	for _, r := range i.products {
		if r.product.Slug == slug {
			return r.product, nil
		}
	}

	return domain.Product{}, fmt.Errorf("product with slug = %s: %w", slug, domain.ErrNotFound)
}

// ListProducts returns matching products, newest first.
func (i *inMemoryProductStorage) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	i.mutex.RLock()
	defer i.mutex.RUnlock()

	records := make([]productRecord, 0, len(i.products))
	for _, r := range i.products {
		if filter.Status != "" && r.product.Status != filter.Status {
			continue
		}
		records = append(records, r)
	}

	sort.Slice(records, func(a, b int) bool {
		ta, tb := records[a].product.CreatedAt, records[b].product.CreatedAt
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return records[a].seq > records[b].seq
	})

	result := make([]domain.Product, 0, len(records))
	for _, r := range records {
		result = append(result, r.product)
	}

	return result, nil
}
