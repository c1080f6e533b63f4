// Package sqlite keeps the product catalog in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/donmikel/storefront/applications/server/domain"
	"github.com/donmikel/storefront/applications/server/interfaces"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id              TEXT PRIMARY KEY,
	slug            TEXT NOT NULL UNIQUE,
	status          TEXT NOT NULL DEFAULT 'draft',
	title           TEXT NOT NULL,
	price_original  REAL,
	price_promo     REAL,
	discount        INTEGER,
	installments    INTEGER NOT NULL DEFAULT 3,
	sold            INTEGER NOT NULL DEFAULT 0,
	checkout_url    TEXT,
	desc_title      TEXT,
	description     TEXT,
	specs           TEXT,
	ideal_for       TEXT,
	usage           TEXT,
	includes        TEXT,
	seller_logo     TEXT,
	seller_name     TEXT NOT NULL,
	seller_location TEXT,
	images          TEXT NOT NULL DEFAULT '[]',
	reviews         TEXT NOT NULL DEFAULT '[]',
	created_at      INTEGER NOT NULL,
	updated_at      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS products_status_idx ON products (status);
`

const productColumns = `id, slug, status, title, price_original, price_promo, discount,
	installments, sold, checkout_url, desc_title, description,
	specs, ideal_for, usage, includes, seller_logo, seller_name,
	seller_location, images, reviews, created_at, updated_at`

var _ interfaces.ProductStorage = (*ProductStorage)(nil)

type ProductStorage struct {
	db *sql.DB
}

// NewProductStorage opens the database at dsn and creates the schema.
func NewProductStorage(ctx context.Context, dsn string) (*ProductStorage, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err = db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("can't initialize schema: %w", err)
	}

	return &ProductStorage{db: db}, nil
}

func (s *ProductStorage) Close() error {
	return s.db.Close()
}

func (s *ProductStorage) CreateProduct(ctx context.Context, p domain.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err = checkSlug(ctx, tx, p.Slug, p.ID); err != nil {
		return err
	}

	images, reviews, err := marshalLists(p)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Slug, p.Status, p.Title, p.PriceOriginal, p.PricePromo, p.Discount,
		p.Installments, p.Sold, p.CheckoutURL, p.DescTitle, p.Description,
		p.Specs, p.IdealFor, p.Usage, p.Includes, p.SellerLogo, p.SellerName,
		p.SellerLocation, images, reviews, p.CreatedAt.UnixNano(), p.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("can't insert product %s: %w", p.ID, err)
	}

	return tx.Commit()
}

func (s *ProductStorage) UpdateProduct(ctx context.Context, p domain.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err = checkSlug(ctx, tx, p.Slug, p.ID); err != nil {
		return err
	}

	images, reviews, err := marshalLists(p)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `UPDATE products SET
		slug = ?, status = ?, title = ?, price_original = ?, price_promo = ?, discount = ?,
		installments = ?, sold = ?, checkout_url = ?, desc_title = ?, description = ?,
		specs = ?, ideal_for = ?, usage = ?, includes = ?, seller_logo = ?, seller_name = ?,
		seller_location = ?, images = ?, reviews = ?, updated_at = ?
		WHERE id = ?`,
		p.Slug, p.Status, p.Title, p.PriceOriginal, p.PricePromo, p.Discount,
		p.Installments, p.Sold, p.CheckoutURL, p.DescTitle, p.Description,
		p.Specs, p.IdealFor, p.Usage, p.Includes, p.SellerLogo, p.SellerName,
		p.SellerLocation, images, reviews, p.UpdatedAt.UnixNano(),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("can't update product %s: %w", p.ID, err)
	}

	if err = expectOneRow(res, p.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *ProductStorage) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("can't delete product %s: %w", id, err)
	}

	return expectOneRow(res, id)
}

func (s *ProductStorage) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ? LIMIT 1`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product with id = %s: %w", id, domain.ErrNotFound)
	}

	return p, err
}

func (s *ProductStorage) GetProductBySlug(ctx context.Context, slug string) (domain.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE slug = ? LIMIT 1`, slug)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product with slug = %s: %w", slug, domain.ErrNotFound)
	}

	return p, err
}

func (s *ProductStorage) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT ` + productColumns + ` FROM products`)

	var args []any
	if filter.Status != "" {
		query.WriteString(` WHERE status = ?`)
		args = append(args, filter.Status)
	}
	query.WriteString(` ORDER BY created_at DESC, rowid DESC`)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("can't list products: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate products: %w", err)
	}

	return result, nil
}

func checkSlug(ctx context.Context, tx *sql.Tx, slug, id string) error {
	var existing string
	err := tx.QueryRowContext(ctx, `SELECT id FROM products WHERE slug = ? AND id != ? LIMIT 1`, slug, id).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return fmt.Errorf("can't check slug %s: %w", slug, err)
	default:
		return fmt.Errorf("product with slug = %s: %w", slug, domain.ErrSlugExists)
	}
}

func expectOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't get affected rows: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("product with id = %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func marshalLists(p domain.Product) (string, string, error) {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	reviews := p.Reviews
	if reviews == nil {
		reviews = []json.RawMessage{}
	}

	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return "", "", fmt.Errorf("can't marshal images: %w", err)
	}

	reviewsJSON, err := json.Marshal(reviews)
	if err != nil {
		return "", "", fmt.Errorf("can't marshal reviews: %w", err)
	}

	return string(imagesJSON), string(reviewsJSON), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (domain.Product, error) {
	var (
		p                    domain.Product
		images, reviews      string
		createdAt, updatedAt int64
	)

	err := row.Scan(
		&p.ID, &p.Slug, &p.Status, &p.Title, &p.PriceOriginal, &p.PricePromo, &p.Discount,
		&p.Installments, &p.Sold, &p.CheckoutURL, &p.DescTitle, &p.Description,
		&p.Specs, &p.IdealFor, &p.Usage, &p.Includes, &p.SellerLogo, &p.SellerName,
		&p.SellerLocation, &images, &reviews, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, err
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("can't scan product: %w", err)
	}

	if err = json.Unmarshal([]byte(images), &p.Images); err != nil {
		return domain.Product{}, fmt.Errorf("can't unmarshal images of %s: %w", p.ID, err)
	}
	if err = json.Unmarshal([]byte(reviews), &p.Reviews); err != nil {
		return domain.Product{}, fmt.Errorf("can't unmarshal reviews of %s: %w", p.ID, err)
	}

	p.CreatedAt = time.Unix(0, createdAt).UTC()
	p.UpdatedAt = time.Unix(0, updatedAt).UTC()

	return p, nil
}
