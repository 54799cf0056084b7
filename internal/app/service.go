// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	repository "github.com/okian/toplist/internal/adapters/repository"
	"github.com/okian/toplist/internal/domain/model"
	"github.com/okian/toplist/pkg/logger"
)

// Default limits for the top-voted query.
const (
	defaultTopVotedLimit = 10
	maxTopVotedLimit     = 100
)

// Service composes the item store into the command/query surface consumed by
// the HTTP API. It validates request-level policy (limits) and delegates all
// business rules to the store.
type Service struct {
	mu sync.RWMutex

	// Core components
	store repository.Store

	// Configuration
	topVotedDefault  int
	topVotedMax      int
	categoryLockWait time.Duration

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore injects a pre-built store, mainly for tests.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDefaultTopVotedLimit sets the limit used when top-voted callers give none.
func WithDefaultTopVotedLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.topVotedDefault = limit
		}
	}
}

// WithMaxTopVotedLimit caps the top-voted limit callers may request.
func WithMaxTopVotedLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.topVotedMax = limit
		}
	}
}

// WithCategoryLockWait bounds the per-category lock wait of the default store.
func WithCategoryLockWait(wait time.Duration) Option {
	return func(s *Service) {
		if wait > 0 {
			s.categoryLockWait = wait
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		topVotedDefault: defaultTopVotedLimit,
		topVotedMax:     maxTopVotedLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		var storeOpts []repository.Option
		if s.categoryLockWait > 0 {
			storeOpts = append(storeOpts, repository.WithCategoryLockWait(s.categoryLockWait))
		}
		s.store = repository.NewMemStore(storeOpts...)
	}

	s.started = true
	s.logger.Info(ctx, "toplist service started",
		logger.Int("defaultTopVotedLimit", s.topVotedDefault),
		logger.Int("maxTopVotedLimit", s.topVotedMax),
	)
	return nil
}

// Stop shuts the service down. The in-memory store needs no teardown.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "toplist service stopped")
}

// List returns all items across categories.
func (s *Service) List(ctx context.Context) ([]model.Item, error) {
	return s.store.List(ctx)
}

// Get returns an item by id.
func (s *Service) Get(ctx context.Context, id string) (model.Item, error) {
	return s.store.Get(ctx, id)
}

// Create adds an item at the end of its category's toplist.
func (s *Service) Create(ctx context.Context, title, category, description, imageURL string) (model.Item, error) {
	item, err := s.store.Create(ctx, title, category, description, imageURL)
	if err != nil {
		return model.Item{}, err
	}
	s.logger.Debug(ctx, "item created",
		logger.String("id", item.ID),
		logger.String("category", item.Category),
		logger.Int("rank", item.Rank),
	)
	return item, nil
}

// Update applies a partial update to an item.
func (s *Service) Update(ctx context.Context, id string, patch model.Patch) (model.Item, error) {
	item, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return model.Item{}, err
	}
	s.logger.Debug(ctx, "item updated",
		logger.String("id", item.ID),
		logger.String("category", item.Category),
	)
	return item, nil
}

// Delete removes an item, closing the rank gap it leaves behind.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Debug(ctx, "item deleted", logger.String("id", id))
	return nil
}

// Vote increments an item's vote counter.
func (s *Service) Vote(ctx context.Context, id string) (model.Item, error) {
	return s.store.Vote(ctx, id)
}

// Reorder atomically applies a caller-supplied full ordering to a category.
func (s *Service) Reorder(ctx context.Context, category string, orderedIDs []string) ([]model.Item, error) {
	items, err := s.store.Reorder(ctx, category, orderedIDs)
	if err != nil {
		return nil, err
	}
	s.logger.Debug(ctx, "category reordered",
		logger.String("category", category),
		logger.Int("items", len(items)),
	)
	return items, nil
}

// Categories returns the distinct categories across all items.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.store.Categories(ctx)
}

// ItemsByCategory returns a category's items in the requested order.
func (s *Service) ItemsByCategory(ctx context.Context, category string, order repository.Order) ([]model.Item, error) {
	return s.store.ItemsByCategory(ctx, category, order)
}

// TopVoted returns up to limit items across all categories, descending by
// vote count. A non-positive limit falls back to the configured default; a
// limit above the configured maximum is rejected.
func (s *Service) TopVoted(ctx context.Context, limit int) ([]model.Item, error) {
	if limit <= 0 {
		limit = s.topVotedDefault
	}
	if limit > s.topVotedMax {
		return nil, fmt.Errorf("%w: limit %d exceeds maximum %d", repository.ErrInvalidLimit, limit, s.topVotedMax)
	}
	return s.store.TopVoted(ctx, limit)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started": s.started,
	}

	if s.started {
		stats["items"] = s.store.Count(ctx)
		if categories, err := s.store.Categories(ctx); err == nil {
			stats["categories"] = len(categories)
		}
		if items, err := s.store.List(ctx); err == nil {
			var votes int64
			for _, item := range items {
				votes += item.VoteCount
			}
			stats["votes"] = votes
		}
	}
	return stats
}
