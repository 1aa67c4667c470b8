// Package orderapi talks to the storefront backend over HTTP: it requests presigned upload URLs,
// PUTs image bytes to them, and posts order drafts.
package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bloom/internal/core/domain/model/checkout"
	"bloom/internal/core/ports"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 512
)

// StatusError is returned for any non-2xx answer.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status=%d body=%s", e.Op, e.StatusCode, e.Body)
}

// Client implements ports.UploadPresigner, ports.ObjectUploader and ports.OrderGateway.
type Client struct {
	http       *http.Client
	presignURL string
	ordersURL  string
}

type Option func(*Client)

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

var (
	_ ports.UploadPresigner = (*Client)(nil)
	_ ports.ObjectUploader  = (*Client)(nil)
	_ ports.OrderGateway    = (*Client)(nil)
)

// NewClient requires both endpoint URLs and returns a *checkout.ConfigurationError naming the
// ones that are missing.
func NewClient(presignURL, ordersURL string, opts ...Option) (*Client, error) {
	presignURL = strings.TrimSpace(presignURL)
	ordersURL = strings.TrimSpace(ordersURL)

	var missing []string
	if presignURL == "" {
		missing = append(missing, "PRESIGN_URL")
	}
	if ordersURL == "" {
		missing = append(missing, "ORDERS_URL")
	}
	if len(missing) > 0 {
		return nil, checkout.NewConfigurationError(missing...)
	}

	c := &Client{
		http: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		presignURL: presignURL,
		ordersURL:  ordersURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type presignRequest struct {
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
}

type presignResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Presign asks the presign endpoint for a PUT URL bound to key and contentType.
func (c *Client) Presign(ctx context.Context, key, contentType string) (ports.PresignedUpload, error) {
	var out presignResponse
	if err := c.postJSON(ctx, "presign", c.presignURL, presignRequest{Key: key, ContentType: contentType}, &out); err != nil {
		return ports.PresignedUpload{}, err
	}
	if out.URL == "" {
		return ports.PresignedUpload{}, fmt.Errorf("presign: response has empty url")
	}
	return ports.PresignedUpload{URL: out.URL, ExpiresAt: out.ExpiresAt}, nil
}

// Put writes body to a presigned URL. The Content-Type must equal the one the URL was signed for.
func (c *Client) Put(ctx context.Context, url, contentType string, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return fmt.Errorf("put: create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if size >= 0 {
		req.ContentLength = size
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("put: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus("put", resp)
}

type createOrderResponse struct {
	OrderID     string `json:"orderId"`
	CheckoutURL string `json:"checkoutUrl"`
}

// CreateOrder posts the draft. An empty orderId in the answer is passed through; the caller
// falls back to the client id.
func (c *Client) CreateOrder(ctx context.Context, draft checkout.OrderDraft) (ports.CreatedOrder, error) {
	var out createOrderResponse
	if err := c.postJSON(ctx, "create order", c.ordersURL, fromDraft(draft), &out); err != nil {
		return ports.CreatedOrder{}, err
	}
	return ports.CreatedOrder{
		OrderID:     strings.TrimSpace(out.OrderID),
		CheckoutURL: strings.TrimSpace(out.CheckoutURL),
	}, nil
}

func (c *Client) postJSON(ctx context.Context, op, url string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if err = checkStatus(op, resp); err != nil {
		return err
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func checkStatus(op string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
