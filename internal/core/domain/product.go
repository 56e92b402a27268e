package domain

import "time"

// Product is a catalog item as returned by the /Products endpoints.
type Product struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Description          string     `json:"description,omitempty"`
	Price                float64    `json:"price"`
	FinalDiscountPercent *float64   `json:"finalDiscountPercent,omitempty"`
	FinalPrice           *float64   `json:"finalPrice,omitempty"`
	Currency             string     `json:"currency"`
	SKU                  string     `json:"sku"`
	CategoryID           string     `json:"categoryId"`
	CategoryName         string     `json:"categoryName"`
	BrandID              string     `json:"brandId"`
	BrandName            string     `json:"brandName"`
	VATRate              float64    `json:"vatRate"`
	Stock                int        `json:"stock"`
	IsActive             bool       `json:"isActive"`
	ImageID              string     `json:"imageId,omitempty"`
	ImageURL             string     `json:"imageUrl,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            *time.Time `json:"updatedAt,omitempty"`
}

// StockOperation selects the direction of a stock adjustment.
type StockOperation int

const (
	StockIncrease StockOperation = 1
	StockDecrease StockOperation = 2
)
