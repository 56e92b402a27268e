// Package transport implements the HTTP pipeline every back-office API call
// goes through: a middleware chain over a request-execution abstraction
// (bearer injection, request IDs, logging, metrics, 401 refresh-and-retry)
// and a JSON client that unwraps the server's response envelope.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/storekit/backoffice/internal/core/domain"
)

const defaultTimeout = 30 * time.Second

// Config locates the API.
type Config struct {
	// BaseURL is scheme://host[:port], without the API prefix.
	BaseURL string
	// Prefix is prepended to every path. Defaults to "/api".
	Prefix string
	// Timeout bounds a full request round trip. Defaults to 30s.
	Timeout time.Duration
}

// Client issues JSON requests against the API and translates responses into
// domain values or *domain.APIError. Transport failures (network, timeout)
// pass through wrapped; they carry no envelope to unwrap.
type Client struct {
	base string
	doer Doer
	log  zerolog.Logger
}

// NewClient builds a Client whose requests flow through mws, outermost first.
func NewClient(cfg Config, log zerolog.Logger, mws ...Middleware) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "/api"
	}
	return &Client{
		base: strings.TrimRight(cfg.BaseURL, "/") + prefix,
		doer: Chain(&http.Client{Timeout: timeout}, mws...),
		log:  log,
	}
}

// envelope is the server's uniform response wrapper.
type envelope struct {
	IsSuccess bool             `json:"isSuccess"`
	Value     json.RawMessage  `json:"value"`
	Error     *domain.APIError `json:"error"`
}

// pagedEnvelope extends the envelope with pagination fields.
type pagedEnvelope struct {
	envelope
	domain.PageInfo
}

// Get requests path and decodes the envelope value into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

// GetPaged requests a paginated list endpoint, decoding the value array into
// out and returning the page metadata.
func (c *Client) GetPaged(ctx context.Context, path string, query url.Values, out any) (*domain.PageInfo, error) {
	status, data, err := c.roundTrip(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return nil, err
	}
	var env pagedEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, statusError(status, err)
	}
	if err := env.envelope.unwrap(status, out); err != nil {
		return nil, err
	}
	page := env.PageInfo
	return &page, nil
}

// GetRaw requests an endpoint served without the envelope (the dashboard)
// and decodes the body directly into out.
func (c *Client) GetRaw(ctx context.Context, path string, query url.Values, out any) error {
	status, data, err := c.roundTrip(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	if status >= http.StatusBadRequest {
		return envelopeOrStatusError(status, data)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("transport: decode response: %w", err)
	}
	return nil
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, out)
}

// PostMultipart uploads a single file as multipart/form-data under field,
// decoding the envelope value into out. The form is buffered up front so the
// request stays replayable by the refresh middleware.
func (c *Client) PostMultipart(ctx context.Context, path, field, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("transport: build multipart form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("transport: buffer upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("transport: finish multipart form: %w", err)
	}

	status, data, err := c.roundTrip(ctx, http.MethodPost, path, nil, buf.Bytes(), w.FormDataContentType())
	if err != nil {
		return err
	}
	return decodeEnvelope(status, data, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	contentType := ""
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("transport: encode request body: %w", err)
		}
		contentType = "application/json"
	}
	status, data, err := c.roundTrip(ctx, method, path, query, payload, contentType)
	if err != nil {
		return err
	}
	return decodeEnvelope(status, data, out)
}

// roundTrip sends one request through the pipeline and reads the full body.
// Requests are built from byte slices so net/http sets GetBody, keeping them
// replayable.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body []byte, contentType string) (int, []byte, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("transport: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: read response: %w", method, path, err)
	}
	return resp.StatusCode, data, nil
}

// decodeEnvelope unwraps {isSuccess, value, error} into out. A nil out means
// the caller expects no value (delete-style endpoints); otherwise an absent
// value is a failure even on HTTP 200.
func decodeEnvelope(status int, data []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return statusError(status, err)
	}
	return env.unwrap(status, out)
}

func (env *envelope) unwrap(status int, out any) error {
	if env.Error != nil {
		return env.Error
	}
	if !env.IsSuccess {
		if status >= http.StatusBadRequest {
			return failure(status, http.StatusText(status))
		}
		return &domain.APIError{Code: "Failure", Message: "server reported failure", Type: domain.ErrorTypeFailure}
	}
	if out == nil {
		return nil
	}
	if len(env.Value) == 0 || bytes.Equal(env.Value, []byte("null")) {
		return &domain.APIError{Code: "Failure", Message: "response value is missing", Type: domain.ErrorTypeFailure}
	}
	if err := json.Unmarshal(env.Value, out); err != nil {
		return fmt.Errorf("transport: decode response value: %w", err)
	}
	return nil
}

// envelopeOrStatusError surfaces the server's structured error when the body
// carries one, falling back to a synthesized APIError from the status line.
func envelopeOrStatusError(status int, data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Error != nil {
		return env.Error
	}
	return statusError(status, nil)
}

// statusError keeps the "callers only see APIError or success" contract when
// the body is not a parsable envelope: error statuses map to a synthesized
// Failure, anything else is a decode error.
func statusError(status int, cause error) error {
	if status >= http.StatusBadRequest {
		return failure(status, http.StatusText(status))
	}
	return fmt.Errorf("transport: decode response: %w", cause)
}

func failure(status int, message string) *domain.APIError {
	return &domain.APIError{
		Code:    strconv.Itoa(status),
		Message: message,
		Type:    domain.ErrorTypeFailure,
	}
}
