package page

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thunderx/thunder/internal/catalog"
	"github.com/thunderx/thunder/internal/domain"
	tlog "github.com/thunderx/thunder/internal/log"
	"github.com/thunderx/thunder/internal/reveal"
	"github.com/thunderx/thunder/internal/service"
)

type fakeCatalog struct {
	mu           sync.Mutex
	items        []domain.Item
	endorsements []domain.Endorsement
	err          error
	block        chan struct{}
	calls        int
}

func (f *fakeCatalog) FetchItems(ctx context.Context) ([]domain.Item, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeCatalog) FetchEndorsements(ctx context.Context) ([]domain.Endorsement, error) {
	return f.endorsements, nil
}

func sampleItems() []domain.Item {
	return []domain.Item{
		{ID: "1", Name: "Rolex Submariner", Category: "watches"},
		{ID: "2", Name: "Air Jordan 1", Category: "footwear"},
		{ID: "3", Name: "Omega Speedmaster", Category: "watches"},
		{ID: "4", Name: "Hoodie", Category: "apparel"},
	}
}

func newTestController(repo domain.CatalogRepository) *Controller {
	logger := tlog.NullLogger()
	loader := service.NewCatalogLoader(repo, logger)
	return NewController(loader, catalog.InCategories("watches"), reveal.DefaultThreshold, logger)
}

func TestSession_LoadAndApplySuccess(t *testing.T) {
	repo := &fakeCatalog{
		items:        sampleItems(),
		endorsements: []domain.Endorsement{{ID: "r1", AuthorName: "Ana", Rating: 5}},
	}
	s := newTestController(repo).Mount()

	assert.True(t, s.State().Pending())
	assert.Equal(t, 0, s.Partition().Len())

	require.True(t, s.Apply(s.Load()))

	state := s.State()
	assert.True(t, state.Succeeded())
	assert.Len(t, state.Endorsements(), 1)

	split := s.Partition()
	require.Len(t, split.Priority, 2)
	require.Len(t, split.Remainder, 2)
	assert.Equal(t, "1", split.Priority[0].ID)
	assert.Equal(t, "3", split.Priority[1].ID)
	assert.Equal(t, "2", split.Remainder[0].ID)
	assert.Equal(t, "4", split.Remainder[1].ID)
}

func TestSession_LoadFailure(t *testing.T) {
	repo := &fakeCatalog{err: errors.New("connection refused")}
	s := newTestController(repo).Mount()

	require.True(t, s.Apply(s.Load()))

	state := s.State()
	assert.True(t, state.Failed())
	assert.ErrorIs(t, state.Reason(), domain.ErrLoadFailed)
	assert.Empty(t, state.Items())
	assert.Empty(t, state.Endorsements())
	assert.Equal(t, 0, s.Partition().Len())
}

func TestSession_SecondResultIgnored(t *testing.T) {
	repo := &fakeCatalog{items: sampleItems()}
	s := newTestController(repo).Mount()

	require.True(t, s.Apply(s.Load()))
	assert.False(t, s.Apply(service.LoadResult{Err: errors.New("late")}))
	assert.True(t, s.State().Succeeded())
}

func TestSession_ResultAfterCloseDiscarded(t *testing.T) {
	repo := &fakeCatalog{items: sampleItems()}
	s := newTestController(repo).Mount()

	res := s.Load()
	s.Close()

	assert.False(t, s.Apply(res))
	assert.True(t, s.State().Pending())
	assert.True(t, s.Closed())
}

func TestSession_CloseCancelsLoad(t *testing.T) {
	repo := &fakeCatalog{items: sampleItems(), block: make(chan struct{})}
	s := newTestController(repo).Mount()

	done := make(chan service.LoadResult, 1)
	go func() { done <- s.Load() }()

	s.Close()
	res := <-done
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestSession_Matching(t *testing.T) {
	s := newTestController(&fakeCatalog{items: sampleItems()}).Mount()
	require.True(t, s.Apply(s.Load()))

	split := s.Matching("omega")
	require.Len(t, split.Priority, 1)
	assert.Equal(t, "3", split.Priority[0].ID)
	assert.Empty(t, split.Remainder)

	assert.Equal(t, 4, s.Matching("  ").Len())
}

func TestSession_RevealFromLayout(t *testing.T) {
	s := newTestController(&fakeCatalog{}).Mount()

	s.UpdateLayout(map[string]reveal.Bounds{
		RegionHero:     {Top: 0, Height: 10},
		RegionProducts: {Top: 10, Height: 40},
		RegionCTA:      {Top: 50, Height: 10},
	})
	assert.False(t, s.Reveals().Revealed(RegionHero), "no viewport height yet")

	s.Scroll(0, 12)
	flags := s.Reveals()
	assert.True(t, flags.Revealed(RegionHero))
	assert.False(t, flags.Revealed(RegionProducts), "2 of 40 rows is below threshold")
	assert.False(t, flags.Revealed(RegionCTA))

	s.Scroll(4, 12)
	assert.True(t, s.Reveals().Revealed(RegionProducts))

	s.Scroll(0, 12)
	flags = s.Reveals()
	assert.True(t, flags.Revealed(RegionProducts), "flags never reset")
	assert.False(t, flags.Revealed(RegionCTA))
	_, known := flags[RegionTestimonials]
	assert.False(t, known, "unrendered region is not registered")
}

func TestSession_NoRevealAfterClose(t *testing.T) {
	s := newTestController(&fakeCatalog{}).Mount()
	s.UpdateLayout(map[string]reveal.Bounds{RegionCTA: {Top: 30, Height: 10}})
	s.Close()

	s.Scroll(30, 10)
	assert.False(t, s.Reveals().Revealed(RegionCTA))
}
