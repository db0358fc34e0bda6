package service_test

import (
	"bytes"
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

const channelURL = "https://t.me/thunderxservices"

// recorder tracks the order of report and navigation events
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type fakeEvents struct {
	rec   *recorder
	err   error
	delay time.Duration
	panic bool
	got   []domain.Click
}

func (f *fakeEvents) ReportClick(ctx context.Context, click domain.Click) error {
	f.got = append(f.got, click)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.panic {
		panic("reporter exploded")
	}
	f.rec.add("report")
	return f.err
}

type fakeOpener struct {
	rec  *recorder
	err  error
	urls []string
}

func (f *fakeOpener) Open(url string) error {
	f.urls = append(f.urls, url)
	f.rec.add("open")
	return f.err
}

func newBeacon(events *fakeEvents, opener *fakeOpener) *service.Beacon {
	click := domain.Click{UserAgent: "Thunder/dev (linux)", Referrer: "terminal"}
	return service.NewBeacon(events, opener, channelURL, click, tlog.NullLogger())
}

func TestBeacon_ReportsThenNavigates(t *testing.T) {
	rec := &recorder{}
	events := &fakeEvents{rec: rec}
	opener := &fakeOpener{rec: rec}

	require.NoError(t, newBeacon(events, opener).Engage(context.Background()))

	assert.Equal(t, []string{"report", "open"}, rec.list())
	assert.Equal(t, []string{channelURL}, opener.urls)
	require.Len(t, events.got, 1)
	assert.Equal(t, "terminal", events.got[0].Referrer)
}

func TestBeacon_NavigatesWhenReportFails(t *testing.T) {
	tests := map[string]*fakeEvents{
		"network error": {err: domain.ErrServerOffline},
		"server error":  {err: &domain.StatusError{Method: "POST", Path: "/api/telegram-click", Code: 500}},
		"slow timeout":  {err: context.DeadlineExceeded, delay: 30 * time.Millisecond},
		"panic":         {panic: true},
	}

	for name, events := range tests {
		t.Run(name, func(t *testing.T) {
			rec := &recorder{}
			events.rec = rec
			opener := &fakeOpener{rec: rec}

			err := newBeacon(events, opener).Engage(context.Background())

			require.NoError(t, err)
			assert.Equal(t, []string{channelURL}, opener.urls, "navigation happens exactly once")
			assert.Equal(t, "open", rec.list()[len(rec.list())-1])
		})
	}
}

func TestBeacon_LogsReportFailure(t *testing.T) {
	var buf bytes.Buffer
	rec := &recorder{}
	opener := &fakeOpener{rec: rec}
	click := domain.Click{UserAgent: "Thunder/dev (linux)", Referrer: "terminal"}
	b := service.NewBeacon(&fakeEvents{rec: rec, err: domain.ErrServerOffline}, opener, channelURL, click, tlog.NewLogger(&buf, "debug"))

	require.NoError(t, b.Engage(context.Background()))

	assert.Contains(t, buf.String(), "telegram click report failed")
	assert.Contains(t, buf.String(), domain.ErrServerOffline.Error())
	assert.Equal(t, []string{channelURL}, opener.urls)
}

func TestBeacon_ExactlyOncePerActivation(t *testing.T) {
	rec := &recorder{}
	opener := &fakeOpener{rec: rec}
	b := newBeacon(&fakeEvents{rec: rec, err: errors.New("flaky")}, opener)

	for i := 0; i < 3; i++ {
		require.NoError(t, b.Engage(context.Background()))
	}
	assert.Len(t, opener.urls, 3)
	assert.Equal(t, []string{"report", "open", "report", "open", "report", "open"}, rec.list())
}

func TestBeacon_NavigationErrorReturned(t *testing.T) {
	rec := &recorder{}
	opener := &fakeOpener{rec: rec, err: errors.New("xdg-open not found")}

	err := newBeacon(&fakeEvents{rec: rec}, opener).Engage(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), channelURL)
}

func TestNavigate(t *testing.T) {
	rec := &recorder{}
	opener := &fakeOpener{rec: rec}

	require.NoError(t, service.Navigate(opener, "https://instagram.com/thunderxservices", nil))
	assert.Equal(t, []string{"open"}, rec.list())
}
