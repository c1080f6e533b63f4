package domain

import (
	"encoding/json"
	"time"
)

const (
	StatusDraft  = "draft"
	StatusActive = "active"

	DefaultInstallments = 3
	DefaultSellerName   = "Shopee Brasil"
)

// Product is a catalog record backing a landing page.
type Product struct {
	ID             string            `json:"id"`
	Slug           string            `json:"slug"`
	Status         string            `json:"status"`
	Title          string            `json:"title"`
	PriceOriginal  *float64          `json:"priceOriginal"`
	PricePromo     *float64          `json:"pricePromo"`
	Discount       *int              `json:"discount"`
	Installments   int               `json:"installments"`
	Sold           int               `json:"sold"`
	CheckoutURL    *string           `json:"checkoutUrl"`
	DescTitle      *string           `json:"descTitle"`
	Description    *string           `json:"description"`
	Specs          *string           `json:"specs"`
	IdealFor       *string           `json:"idealFor"`
	Usage          *string           `json:"usage"`
	Includes       *string           `json:"includes"`
	SellerLogo     *string           `json:"sellerLogo"`
	SellerName     string            `json:"sellerName"`
	SellerLocation *string           `json:"sellerLocation"`
	Images         []string          `json:"images"`
	Reviews        []json.RawMessage `json:"reviews"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// ProductInput carries create and update requests. Nil fields were not sent.
type ProductInput struct {
	ID             string            `json:"id"`
	Slug           *string           `json:"slug"`
	Status         *string           `json:"status"`
	Title          *string           `json:"title"`
	PriceOriginal  *float64          `json:"priceOriginal"`
	PricePromo     *float64          `json:"pricePromo"`
	Discount       *int              `json:"discount"`
	Installments   *int              `json:"installments"`
	Sold           *int              `json:"sold"`
	CheckoutURL    *string           `json:"checkoutUrl"`
	DescTitle      *string           `json:"descTitle"`
	Description    *string           `json:"description"`
	Specs          *string           `json:"specs"`
	IdealFor       *string           `json:"idealFor"`
	Usage          *string           `json:"usage"`
	Includes       *string           `json:"includes"`
	SellerLogo     *string           `json:"sellerLogo"`
	SellerName     *string           `json:"sellerName"`
	SellerLocation *string           `json:"sellerLocation"`
	Images         []string          `json:"images"`
	Reviews        []json.RawMessage `json:"reviews"`
}

type ProductFilter struct {
	// Status is matched exactly; empty matches every product.
	Status string
}
