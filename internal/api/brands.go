package api

import (
	"context"
	"net/url"

	"github.com/storekit/backoffice/internal/core/domain"
	"github.com/storekit/backoffice/internal/transport"
)

// Brands is the typed client for the /brands resource.
type Brands struct {
	http *transport.Client
}

func NewBrands(c *transport.Client) *Brands {
	return &Brands{http: c}
}

type BrandListParams struct {
	Page       int
	PageSize   int
	SearchTerm string
}

func (p BrandListParams) query() url.Values {
	q := url.Values{}
	setInt(q, "page", p.Page)
	setInt(q, "pageSize", p.PageSize)
	setString(q, "searchTerm", p.SearchTerm)
	return q
}

type BrandRequest struct {
	Name string `json:"name" validate:"required"`
}

func (b *Brands) List(ctx context.Context, params BrandListParams) ([]domain.Brand, *domain.PageInfo, error) {
	var items []domain.Brand
	page, err := b.http.GetPaged(ctx, "/brands", params.query(), &items)
	if err != nil {
		return nil, nil, err
	}
	return items, page, nil
}

func (b *Brands) Get(ctx context.Context, id string) (*domain.Brand, error) {
	var brand domain.Brand
	if err := b.http.Get(ctx, "/brands/"+url.PathEscape(id), nil, &brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

func (b *Brands) Create(ctx context.Context, req BrandRequest) (*domain.Brand, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var brand domain.Brand
	if err := b.http.Post(ctx, "/brands", req, &brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

func (b *Brands) Update(ctx context.Context, id string, req BrandRequest) (*domain.Brand, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var brand domain.Brand
	if err := b.http.Put(ctx, "/brands/"+url.PathEscape(id), req, &brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

func (b *Brands) Delete(ctx context.Context, id string) error {
	return b.http.Delete(ctx, "/brands/"+url.PathEscape(id), nil)
}
