package domain

import "context"

// CatalogRepository fetches the two remote collections shown on the page
type CatalogRepository interface {
	// FetchItems returns the product collection in API order
	FetchItems(ctx context.Context) ([]Item, error)

	// FetchEndorsements returns the approved testimonials in API order
	FetchEndorsements(ctx context.Context) ([]Endorsement, error)
}

// EventRepository reports user interactions to the analytics endpoint
type EventRepository interface {
	// ReportClick records a call-to-action activation
	ReportClick(ctx context.Context, click Click) error
}

// HealthChecker probes the API root
type HealthChecker interface {
	Health(ctx context.Context) (string, error)
}
