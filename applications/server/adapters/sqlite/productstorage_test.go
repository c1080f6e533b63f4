package sqlite

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donmikel/storefront/applications/server/domain"
)

func newStorage(t *testing.T) *ProductStorage {
	t.Helper()

	st, err := NewProductStorage(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return st
}

func ptr[T any](v T) *T {
	return &v
}

func TestProductStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newStorage(t)
	now := time.Now().UTC()

	want := domain.Product{
		ID:            "prod_1",
		Slug:          "fone-bluetooth",
		Status:        domain.StatusActive,
		Title:         "Fone Bluetooth",
		PriceOriginal: ptr(199.9),
		PricePromo:    ptr(89.9),
		Discount:      ptr(55),
		Installments:  3,
		Sold:          1200,
		SellerName:    domain.DefaultSellerName,
		Specs:         ptr("Bluetooth 5.3\nUSB-C"),
		Images:        []string{"https://cdn/a.png", "https://cdn/b.png"},
		Reviews:       []json.RawMessage{json.RawMessage(`{"author":"Ana","rating":5}`)},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, st.CreateProduct(ctx, want))

	got, err := st.GetProductBySlug(ctx, "fone-bluetooth")
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.PriceOriginal, got.PriceOriginal)
	assert.Equal(t, want.PricePromo, got.PricePromo)
	assert.Equal(t, want.Discount, got.Discount)
	assert.Equal(t, want.Specs, got.Specs)
	assert.Nil(t, got.CheckoutURL)
	assert.Equal(t, want.Images, got.Images)
	require.Len(t, got.Reviews, 1)
	assert.JSONEq(t, `{"author":"Ana","rating":5}`, string(got.Reviews[0]))
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))

	byID, err := st.GetProductByID(ctx, "prod_1")
	require.NoError(t, err)
	assert.Equal(t, got, byID)
}

func TestProductStorageEmptyLists(t *testing.T) {
	ctx := context.Background()
	st := newStorage(t)

	require.NoError(t, st.CreateProduct(ctx, domain.Product{ID: "p", Slug: "s", Title: "t", Status: domain.StatusDraft}))

	got, err := st.GetProductByID(ctx, "p")
	require.NoError(t, err)
	assert.NotNil(t, got.Images)
	assert.Empty(t, got.Images)
	assert.NotNil(t, got.Reviews)
	assert.Empty(t, got.Reviews)
}

func TestProductStorageSlugConflicts(t *testing.T) {
	ctx := context.Background()
	st := newStorage(t)

	require.NoError(t, st.CreateProduct(ctx, domain.Product{ID: "a", Slug: "one", Title: "A"}))
	require.NoError(t, st.CreateProduct(ctx, domain.Product{ID: "b", Slug: "two", Title: "B"}))

	assert.ErrorIs(t, st.CreateProduct(ctx, domain.Product{ID: "c", Slug: "one", Title: "C"}), domain.ErrSlugExists)
	assert.ErrorIs(t, st.UpdateProduct(ctx, domain.Product{ID: "b", Slug: "one", Title: "B"}), domain.ErrSlugExists)

	// keeping its own slug is not a conflict
	require.NoError(t, st.UpdateProduct(ctx, domain.Product{ID: "b", Slug: "two", Title: "B2"}))

	got, err := st.GetProductByID(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "B2", got.Title)
}

func TestProductStorageNotFound(t *testing.T) {
	ctx := context.Background()
	st := newStorage(t)

	_, err := st.GetProductByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = st.GetProductBySlug(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, st.UpdateProduct(ctx, domain.Product{ID: "missing", Slug: "x"}), domain.ErrNotFound)
	assert.ErrorIs(t, st.DeleteProduct(ctx, "missing"), domain.ErrNotFound)
}

func TestProductStorageListAndDelete(t *testing.T) {
	ctx := context.Background()
	st := newStorage(t)
	now := time.Now()

	require.NoError(t, st.CreateProduct(ctx, domain.Product{ID: "old", Slug: "old", Status: domain.StatusActive, CreatedAt: now.Add(-time.Hour)}))
	require.NoError(t, st.CreateProduct(ctx, domain.Product{ID: "new", Slug: "new", Status: domain.StatusDraft, CreatedAt: now}))
	require.NoError(t, st.CreateProduct(ctx, domain.Product{ID: "mid", Slug: "mid", Status: domain.StatusActive, CreatedAt: now.Add(-time.Minute)}))

	all, err := st.ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old"}, ids(all))

	active, err := st.ListProducts(ctx, domain.ProductFilter{Status: domain.StatusActive})
	require.NoError(t, err)
	assert.Equal(t, []string{"mid", "old"}, ids(active))

	require.NoError(t, st.DeleteProduct(ctx, "mid"))

	active, err = st.ListProducts(ctx, domain.ProductFilter{Status: domain.StatusActive})
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, ids(active))
}

func ids(products []domain.Product) []string {
	result := make([]string, 0, len(products))
	for _, p := range products {
		result = append(result, p.ID)
	}
	return result
}
