package page

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/thunderx/thunder/internal/catalog"
	"github.com/thunderx/thunder/internal/service"
)

// Controller mounts page sessions. At most one session is live; mounting a
// new one unmounts the previous.
type Controller struct {
	loader     *service.CatalogLoader
	isPriority catalog.Predicate
	threshold  float64
	logger     *slog.Logger

	mu      sync.Mutex
	current *Session
	closed  bool
}

// NewController creates a controller for the given loader and split predicate
func NewController(loader *service.CatalogLoader, isPriority catalog.Predicate, threshold float64, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		loader:     loader,
		isPriority: isPriority,
		threshold:  threshold,
		logger:     logger,
	}
}

// Mount unmounts the current session, if any, and returns a fresh one in the
// pending state. After Close, Mount returns sessions that are already closed.
func (c *Controller) Mount() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		c.current.Close()
	}

	s := newSession(context.Background(), uuid.NewString(), c.loader, c.isPriority, c.threshold, c.logger)
	if c.closed {
		s.Close()
	} else {
		c.logger.Info("page mounted", "session", s.ID())
	}
	c.current = s
	return s
}

// Current returns the live session, nil before the first Mount
func (c *Controller) Current() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Close unmounts the current session
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.current != nil {
		c.current.Close()
	}
}
