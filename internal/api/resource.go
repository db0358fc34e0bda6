package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/thunderx/thunder/internal/domain"
)

// Resource fetches one JSON array collection from a fixed API path.
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource binds a collection path to a client
func NewResource[T any](c *Client, path string) Resource[T] {
	return Resource[T]{client: c, path: path}
}

// Path returns the API path of the collection
func (r Resource[T]) Path() string {
	return r.path
}

// Fetch issues one GET and decodes the body as a JSON array of T
func (r Resource[T]) Fetch(ctx context.Context) ([]T, error) {
	body, err := r.client.doRequest(ctx, http.MethodGet, r.path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out []T
	if err := json.Unmarshal(body, &out); err != nil {
		r.client.logger.Error("JSON parse error", "path", r.path, "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%s: %w: %w", r.path, domain.ErrMalformedResponse, err)
	}
	if out == nil {
		return nil, fmt.Errorf("%s: %w: expected a JSON array", r.path, domain.ErrMalformedResponse)
	}
	return out, nil
}
