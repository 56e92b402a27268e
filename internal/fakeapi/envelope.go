package fakeapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storekit/backoffice/internal/core/domain"
)

// response is the server-side rendering of the API envelope.
type response struct {
	IsSuccess bool             `json:"isSuccess"`
	Value     any              `json:"value"`
	Error     *domain.APIError `json:"error"`
}

// pagedResponse extends the envelope with pagination metadata.
type pagedResponse struct {
	response
	domain.PageInfo
}

func ok(c echo.Context, status int, value any) error {
	return c.JSON(status, response{IsSuccess: true, Value: value})
}

func fail(c echo.Context, status int, kind domain.ErrorType, code, message string) error {
	return c.JSON(status, response{
		IsSuccess: false,
		Error:     &domain.APIError{Code: code, Message: message, Type: kind},
	})
}

// errorHandler renders every unhandled error as an envelope so clients never
// see a bare transport error from this server.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	message := "internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		message = fmt.Sprintf("%v", he.Message)
	}
	_ = fail(c, status, domain.ErrorTypeFailure, http.StatusText(status), message)
}

// page slices items for the requested page and fills the metadata.
func page[T any](items []T, pageNum, pageSize int) ([]T, domain.PageInfo) {
	if pageNum <= 0 {
		pageNum = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	start := (pageNum - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return items[start:end], domain.PageInfo{
		Page:            pageNum,
		PageSize:        pageSize,
		TotalCount:      total,
		TotalPages:      totalPages,
		HasPreviousPage: pageNum > 1,
		HasNextPage:     pageNum < totalPages,
	}
}
