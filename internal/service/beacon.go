package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thunderx/thunder/internal/domain"
)

// opener abstracts external navigation (consumer-defined interface)
type opener interface {
	Open(url string) error
}

// Beacon reports a call-to-action click and then opens the channel URL.
//
// The report is awaited before navigating and has no deadline of its own, so
// navigation latency follows the report round-trip. A failed report is logged
// and never prevents navigation.
type Beacon struct {
	events domain.EventRepository
	opener opener
	target string
	click  domain.Click
	logger *slog.Logger
}

// NewBeacon creates a beacon that reports click and navigates to target
func NewBeacon(events domain.EventRepository, opener opener, target string, click domain.Click, logger *slog.Logger) *Beacon {
	if logger == nil {
		logger = slog.Default()
	}
	return &Beacon{
		events: events,
		opener: opener,
		target: target,
		click:  click,
		logger: logger,
	}
}

// Target returns the navigation URL
func (b *Beacon) Target() string {
	return b.target
}

// Engage handles one activation: report, then navigate exactly once. Only a
// navigation failure is returned.
func (b *Beacon) Engage(ctx context.Context) error {
	if err := b.report(ctx); err != nil {
		b.logger.Warn("telegram click report failed", "error", err)
	} else {
		b.logger.Debug("telegram click reported")
	}

	b.logger.Info("opening channel", "url", b.target)
	if err := b.opener.Open(b.target); err != nil {
		return fmt.Errorf("opening %s: %w", b.target, err)
	}
	return nil
}

// report shields navigation from a panicking reporter
func (b *Beacon) report(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("click reporter panicked: %v", r)
		}
	}()
	return b.events.ReportClick(ctx, b.click)
}

// Navigate opens url without reporting (secondary links such as Instagram)
func Navigate(o opener, url string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("opening link", "url", url)
	if err := o.Open(url); err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}
	return nil
}
