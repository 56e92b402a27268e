package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/storekit/backoffice/internal/core/domain"
	"github.com/storekit/backoffice/internal/transport"
)

// Categories is the typed client for the /categories resource.
type Categories struct {
	http *transport.Client
}

func NewCategories(c *transport.Client) *Categories {
	return &Categories{http: c}
}

type CategoryListParams struct {
	Page            int
	PageSize        int
	SearchTerm      string
	ParentID        string
	IncludeChildren bool
}

func (p CategoryListParams) query() url.Values {
	q := url.Values{}
	setInt(q, "page", p.Page)
	setInt(q, "pageSize", p.PageSize)
	setString(q, "searchTerm", p.SearchTerm)
	setString(q, "parentId", p.ParentID)
	if p.IncludeChildren {
		q.Set("includeChildren", strconv.FormatBool(p.IncludeChildren))
	}
	return q
}

type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required"`
	ParentID string `json:"parentId,omitempty"`
	Slug     string `json:"slug,omitempty"`
}

type UpdateCategoryRequest struct {
	Name     string `json:"name" validate:"required"`
	ParentID string `json:"parentId,omitempty"`
	Slug     string `json:"slug,omitempty"`
}

func (c *Categories) List(ctx context.Context, params CategoryListParams) ([]domain.Category, *domain.PageInfo, error) {
	var items []domain.Category
	page, err := c.http.GetPaged(ctx, "/categories", params.query(), &items)
	if err != nil {
		return nil, nil, err
	}
	return items, page, nil
}

func (c *Categories) Get(ctx context.Context, id string) (*domain.Category, error) {
	var category domain.Category
	if err := c.http.Get(ctx, "/categories/"+url.PathEscape(id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Categories) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var category domain.Category
	if err := c.http.Get(ctx, "/categories/slug/"+url.PathEscape(slug), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Categories) Create(ctx context.Context, req CreateCategoryRequest) (*domain.Category, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var category domain.Category
	if err := c.http.Post(ctx, "/categories", req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Categories) Update(ctx context.Context, id string, req UpdateCategoryRequest) (*domain.Category, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var category domain.Category
	if err := c.http.Put(ctx, "/categories/"+url.PathEscape(id), req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Categories) Delete(ctx context.Context, id string) error {
	return c.http.Delete(ctx, "/categories/"+url.PathEscape(id), nil)
}
