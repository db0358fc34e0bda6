package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/thunderx/thunder/internal/domain"
)

// LoadResult is the joined outcome of the two catalog fetches. Either Err is
// nil and both collections hold data, or Err is set and both are empty.
type LoadResult struct {
	Items        []domain.Item
	Endorsements []domain.Endorsement
	Err          error
}

// CatalogLoader fetches products and testimonials concurrently and joins them
// into one all-or-nothing result. It never retries.
type CatalogLoader struct {
	repo   domain.CatalogRepository
	logger *slog.Logger
}

// NewCatalogLoader creates a new catalog loader
func NewCatalogLoader(repo domain.CatalogRepository, logger *slog.Logger) *CatalogLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogLoader{
		repo:   repo,
		logger: logger,
	}
}

// Load issues both fetches before waiting on either. If either fails the
// other is cancelled and the result carries a wrapped domain.ErrLoadFailed.
func (l *CatalogLoader) Load(ctx context.Context) LoadResult {
	var (
		items        []domain.Item
		endorsements []domain.Endorsement
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = l.repo.FetchItems(gctx)
		if err != nil {
			return fmt.Errorf("loading products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		endorsements, err = l.repo.FetchEndorsements(gctx)
		if err != nil {
			return fmt.Errorf("loading testimonials: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		l.logger.Error("catalog load failed", "error", err)
		return LoadResult{
			Items:        []domain.Item{},
			Endorsements: []domain.Endorsement{},
			Err:          fmt.Errorf("%w: %w", domain.ErrLoadFailed, err),
		}
	}

	if items == nil {
		items = []domain.Item{}
	}
	if endorsements == nil {
		endorsements = []domain.Endorsement{}
	}

	l.logger.Info("loaded catalog", "items", len(items), "endorsements", len(endorsements))
	return LoadResult{Items: items, Endorsements: endorsements}
}
