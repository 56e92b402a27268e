package api

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/storekit/backoffice/internal/core/domain"
	"github.com/storekit/backoffice/internal/transport"
)

// Discounts is the typed client for the /discounts resource.
type Discounts struct {
	http *transport.Client
}

func NewDiscounts(c *transport.Client) *Discounts {
	return &Discounts{http: c}
}

type DiscountListParams struct {
	Page       int
	PageSize   int
	Type       domain.DiscountType
	IsActive   *bool
	SearchTerm string
}

func (p DiscountListParams) query() url.Values {
	q := url.Values{}
	setInt(q, "page", p.Page)
	setInt(q, "pageSize", p.PageSize)
	setString(q, "type", string(p.Type))
	setString(q, "searchTerm", p.SearchTerm)
	if p.IsActive != nil {
		q.Set("isActive", strconv.FormatBool(*p.IsActive))
	}
	return q
}

// CreateDiscountRequest targets exactly one of product, brand or category,
// matching Type.
type CreateDiscountRequest struct {
	Type       domain.DiscountType `json:"type" validate:"required,oneof=Product Brand Category"`
	ProductID  string              `json:"productId,omitempty"`
	BrandID    string              `json:"brandId,omitempty"`
	CategoryID string              `json:"categoryId,omitempty"`
	Percent    float64             `json:"percent" validate:"gt=0,lte=100"`
	StartDate  time.Time           `json:"startDate" validate:"required"`
	EndDate    *time.Time          `json:"endDate,omitempty"`
}

type UpdateDiscountRequest struct {
	Percent   float64    `json:"percent" validate:"gt=0,lte=100"`
	StartDate time.Time  `json:"startDate" validate:"required"`
	EndDate   *time.Time `json:"endDate"`
	IsActive  bool       `json:"isActive"`
}

func (d *Discounts) List(ctx context.Context, params DiscountListParams) ([]domain.DiscountListItem, *domain.PageInfo, error) {
	var items []domain.DiscountListItem
	page, err := d.http.GetPaged(ctx, "/discounts", params.query(), &items)
	if err != nil {
		return nil, nil, err
	}
	return items, page, nil
}

func (d *Discounts) Get(ctx context.Context, id string) (*domain.Discount, error) {
	var discount domain.Discount
	if err := d.http.Get(ctx, "/discounts/"+url.PathEscape(id), nil, &discount); err != nil {
		return nil, err
	}
	return &discount, nil
}

func (d *Discounts) Create(ctx context.Context, req CreateDiscountRequest) (*domain.Discount, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var discount domain.Discount
	if err := d.http.Post(ctx, "/discounts", req, &discount); err != nil {
		return nil, err
	}
	return &discount, nil
}

func (d *Discounts) Update(ctx context.Context, id string, req UpdateDiscountRequest) (*domain.Discount, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var discount domain.Discount
	if err := d.http.Put(ctx, "/discounts/"+url.PathEscape(id), req, &discount); err != nil {
		return nil, err
	}
	return &discount, nil
}

func (d *Discounts) Delete(ctx context.Context, id string) error {
	return d.http.Delete(ctx, "/discounts/"+url.PathEscape(id), nil)
}
