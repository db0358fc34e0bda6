package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thunderx/thunder/internal/domain"
	tlog "github.com/thunderx/thunder/internal/log"
	"github.com/thunderx/thunder/internal/service"
)

// fakeCatalog is a CatalogRepository with scripted results and latency
type fakeCatalog struct {
	items        []domain.Item
	endorsements []domain.Endorsement
	itemsErr     error
	endsErr      error
	itemsDelay   time.Duration
	endsDelay    time.Duration

	// started is signalled by each fetch as it begins
	started *sync.WaitGroup
	gate    chan struct{}
}

func (f *fakeCatalog) wait(ctx context.Context, d time.Duration) error {
	if f.started != nil {
		f.started.Done()
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if d == 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeCatalog) FetchItems(ctx context.Context) ([]domain.Item, error) {
	if err := f.wait(ctx, f.itemsDelay); err != nil {
		return nil, err
	}
	return f.items, f.itemsErr
}

func (f *fakeCatalog) FetchEndorsements(ctx context.Context) ([]domain.Endorsement, error) {
	if err := f.wait(ctx, f.endsDelay); err != nil {
		return nil, err
	}
	return f.endorsements, f.endsErr
}

var (
	sampleItems = []domain.Item{
		{ID: "1", Name: "Reloj Deportivo de Lujo", Category: "relojes"},
		{ID: "5", Name: "Jordan Retro High", Category: "zapatillas"},
	}
	sampleEndorsements = []domain.Endorsement{
		{ID: "1", AuthorName: "Carlos Mendoza", Rating: 5, Initials: "CM"},
	}
)

func TestCatalogLoader_BothSucceed(t *testing.T) {
	repo := &fakeCatalog{items: sampleItems, endorsements: sampleEndorsements, itemsDelay: 10 * time.Millisecond}

	res := service.NewCatalogLoader(repo, tlog.NullLogger()).Load(context.Background())

	require.NoError(t, res.Err)
	assert.Equal(t, sampleItems, res.Items)
	assert.Equal(t, sampleEndorsements, res.Endorsements)
}

func TestCatalogLoader_EmptyCollections(t *testing.T) {
	res := service.NewCatalogLoader(&fakeCatalog{}, tlog.NullLogger()).Load(context.Background())

	require.NoError(t, res.Err)
	assert.NotNil(t, res.Items)
	assert.NotNil(t, res.Endorsements)
}

// If either fetch fails, both collections come back empty.
func TestCatalogLoader_AllOrNothing(t *testing.T) {
	boom := errors.New("connection reset")
	tests := map[string]*fakeCatalog{
		"items fail":        {items: sampleItems, endorsements: sampleEndorsements, itemsErr: boom},
		"endorsements fail": {items: sampleItems, endorsements: sampleEndorsements, endsErr: boom},
		"both fail":         {itemsErr: boom, endsErr: boom},
		"slow failure":      {items: sampleItems, endorsements: sampleEndorsements, endsErr: boom, endsDelay: 20 * time.Millisecond},
	}

	for name, repo := range tests {
		t.Run(name, func(t *testing.T) {
			res := service.NewCatalogLoader(repo, tlog.NullLogger()).Load(context.Background())

			require.Error(t, res.Err)
			assert.ErrorIs(t, res.Err, domain.ErrLoadFailed)
			assert.ErrorIs(t, res.Err, boom)
			assert.Empty(t, res.Items)
			assert.Empty(t, res.Endorsements)
		})
	}
}

// Neither fetch can finish until both have started, so a sequential loader
// would hang here.
func TestCatalogLoader_IssuesBothBeforeAwaiting(t *testing.T) {
	var started sync.WaitGroup
	started.Add(2)
	gate := make(chan struct{})
	repo := &fakeCatalog{items: sampleItems, endorsements: sampleEndorsements, started: &started, gate: gate}

	go func() {
		started.Wait()
		close(gate)
	}()

	done := make(chan service.LoadResult, 1)
	go func() { done <- service.NewCatalogLoader(repo, tlog.NullLogger()).Load(context.Background()) }()

	select {
	case res := <-done:
		require.NoError(t, res.Err)
	case <-time.After(2 * time.Second):
		t.Fatal("fetches were not issued concurrently")
	}
}

func TestCatalogLoader_Cancelled(t *testing.T) {
	repo := &fakeCatalog{items: sampleItems, itemsDelay: time.Minute, endsDelay: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := service.NewCatalogLoader(repo, tlog.NullLogger()).Load(ctx)

	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Empty(t, res.Items)
}
