package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/thunderx/thunder/internal/domain"
)

const (
	defaultUserAgent = "Thunder/1.0"

	pathHealth        = "/api/"
	pathProducts      = "/api/products"
	pathTestimonials  = "/api/testimonials"
	pathTelegramClick = "/api/telegram-click"
)

// Client talks to the Thunder Services REST API. It implements
// domain.CatalogRepository, domain.EventRepository and domain.HealthChecker.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	policy     *bluemonday.Policy
	logger     *slog.Logger

	items        Resource[itemDTO]
	endorsements Resource[endorsementDTO]
}

// NewClient creates a new API client. A zero timeout leaves requests unbounded
// at the transport level.
func NewClient(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		policy: bluemonday.StrictPolicy(),
		logger: logger,
	}
	c.items = NewResource[itemDTO](c, pathProducts)
	c.endorsements = NewResource[endorsementDTO](c, pathTestimonials)
	return c
}

// doRequest performs an HTTP request against the API and returns the body of
// a 2xx response.
func (c *Client) doRequest(ctx context.Context, method, path string, body []byte, header http.Header) ([]byte, error) {
	reqURL := c.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	c.logger.Debug("api request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Error("api request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("api request error", "method", method, "path", path, "status", resp.StatusCode, "body", string(respBody))
		return nil, &domain.StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}

	return respBody, nil
}

// FetchItems returns the product collection
func (c *Client) FetchItems(ctx context.Context) ([]domain.Item, error) {
	dtos, err := c.items.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return mapItems(dtos, c.policy)
}

// FetchEndorsements returns the testimonial collection
func (c *Client) FetchEndorsements(ctx context.Context) ([]domain.Endorsement, error) {
	dtos, err := c.endorsements.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return mapEndorsements(dtos, c.policy)
}

// ReportClick posts a Telegram call-to-action click. The response body is ignored.
func (c *Client) ReportClick(ctx context.Context, click domain.Click) error {
	body, err := json.Marshal(clickDTO{
		UserAgent: click.UserAgent,
		Referrer:  click.Referrer,
	})
	if err != nil {
		return fmt.Errorf("failed to encode click: %w", err)
	}

	header := http.Header{}
	if click.Referrer != "" {
		header.Set("Referer", click.Referrer)
	}

	_, err = c.doRequest(ctx, http.MethodPost, pathTelegramClick, body, header)
	return err
}

// Health probes the API root and returns its status message
func (c *Client) Health(ctx context.Context) (string, error) {
	body, err := c.doRequest(ctx, http.MethodGet, pathHealth, nil, nil)
	if err != nil {
		return "", err
	}

	var health healthDTO
	if err := json.Unmarshal(body, &health); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}
	if health.Status != "healthy" {
		return health.Message, fmt.Errorf("api reports status %q", health.Status)
	}
	return health.Message, nil
}
