package api

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/storekit/backoffice/internal/core/domain"
	"github.com/storekit/backoffice/internal/transport"
)

// Products is the typed client for the /Products resource.
type Products struct {
	http *transport.Client
}

func NewProducts(c *transport.Client) *Products {
	return &Products{http: c}
}

// ProductListParams filters and paginates a product listing. Zero values are
// omitted from the query.
type ProductListParams struct {
	Page       int
	PageSize   int
	SearchTerm string
	CategoryID string
	BrandID    string
	MinPrice   *float64
	MaxPrice   *float64
	IsActive   *bool
}

func (p ProductListParams) query() url.Values {
	q := url.Values{}
	setInt(q, "page", p.Page)
	setInt(q, "pageSize", p.PageSize)
	setString(q, "searchTerm", p.SearchTerm)
	setString(q, "categoryId", p.CategoryID)
	setString(q, "brandId", p.BrandID)
	if p.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*p.MinPrice, 'f', -1, 64))
	}
	if p.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*p.MaxPrice, 'f', -1, 64))
	}
	if p.IsActive != nil {
		q.Set("isActive", strconv.FormatBool(*p.IsActive))
	}
	return q
}

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gt=0"`
	Currency    string  `json:"currency,omitempty"`
	SKU         string  `json:"sku" validate:"required"`
	CategoryID  string  `json:"categoryId" validate:"required"`
	BrandID     string  `json:"brandId" validate:"required"`
	VATRate     float64 `json:"vatRate" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

// UpdateProductRequest is the payload for replacing a product's fields.
// The SKU is immutable after creation.
type UpdateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gt=0"`
	Currency    string  `json:"currency,omitempty"`
	CategoryID  string  `json:"categoryId" validate:"required"`
	BrandID     string  `json:"brandId" validate:"required"`
	VATRate     float64 `json:"vatRate" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

func (p *Products) List(ctx context.Context, params ProductListParams) ([]domain.Product, *domain.PageInfo, error) {
	var items []domain.Product
	page, err := p.http.GetPaged(ctx, "/Products", params.query(), &items)
	if err != nil {
		return nil, nil, err
	}
	return items, page, nil
}

func (p *Products) Search(ctx context.Context, searchTerm string, page, pageSize int) ([]domain.Product, *domain.PageInfo, error) {
	q := url.Values{}
	q.Set("searchTerm", searchTerm)
	setInt(q, "page", page)
	setInt(q, "pageSize", pageSize)
	var items []domain.Product
	info, err := p.http.GetPaged(ctx, "/Products/search", q, &items)
	if err != nil {
		return nil, nil, err
	}
	return items, info, nil
}

func (p *Products) Get(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := p.http.Get(ctx, "/Products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *Products) Create(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var product domain.Product
	if err := p.http.Post(ctx, "/Products", req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *Products) Update(ctx context.Context, id string, req UpdateProductRequest) (*domain.Product, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var product domain.Product
	if err := p.http.Put(ctx, "/Products/"+url.PathEscape(id), req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *Products) Delete(ctx context.Context, id string) error {
	return p.http.Delete(ctx, "/Products/"+url.PathEscape(id), nil)
}

func (p *Products) UpdatePrice(ctx context.Context, id string, newPrice float64) error {
	body := map[string]float64{"newPrice": newPrice}
	return p.http.Patch(ctx, "/Products/"+url.PathEscape(id)+"/price", body, nil)
}

func (p *Products) UpdateStock(ctx context.Context, id string, quantity int, op domain.StockOperation) error {
	body := map[string]int{"quantity": quantity, "operation": int(op)}
	return p.http.Patch(ctx, "/Products/"+url.PathEscape(id)+"/stock", body, nil)
}

// UploadImage attaches an image to a product and returns the updated product.
func (p *Products) UploadImage(ctx context.Context, id, filename string, file io.Reader) (*domain.Product, error) {
	var product domain.Product
	if err := p.http.PostMultipart(ctx, "/Products/"+url.PathEscape(id)+"/image", "file", filename, file, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func setInt(q url.Values, key string, v int) {
	if v > 0 {
		q.Set(key, strconv.Itoa(v))
	}
}

func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}
