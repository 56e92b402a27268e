package api

import (
	"context"
	"io"
	"net/url"

	"github.com/storekit/backoffice/internal/core/domain"
	"github.com/storekit/backoffice/internal/transport"
)

// Images is the typed client for the /images resource.
type Images struct {
	http *transport.Client
}

func NewImages(c *transport.Client) *Images {
	return &Images{http: c}
}

// Upload stores a standalone image and returns its ID.
func (i *Images) Upload(ctx context.Context, filename string, file io.Reader) (*domain.UploadImageResult, error) {
	var result domain.UploadImageResult
	if err := i.http.PostMultipart(ctx, "/images/upload", "file", filename, file, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (i *Images) Delete(ctx context.Context, id string) error {
	return i.http.Delete(ctx, "/images/"+url.PathEscape(id), nil)
}
