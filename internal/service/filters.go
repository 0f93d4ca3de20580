package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/DakshSitapara/wishlist/internal/domain"
	"github.com/DakshSitapara/wishlist/internal/repository"
)

// FilterService keeps the active filter criteria, restoring them from the
// repository across restarts. Storage failures are logged and never fail the
// operation: criteria that cannot be read fall back to empty, criteria that
// cannot be written stay applied in memory.
type FilterService struct {
	filters repository.FilterRepository
	logger  *slog.Logger

	mu      sync.Mutex
	loaded  bool
	current domain.Criteria
}

// NewFilterService creates a filter service backed by the given repository.
func NewFilterService(filters repository.FilterRepository, logger *slog.Logger) *FilterService {
	return &FilterService{filters: filters, logger: logger}
}

// Current returns the active criteria.
func (s *FilterService) Current(ctx context.Context) domain.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		c, err := s.filters.Load(ctx)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to load filter criteria, starting empty",
				slog.String("error", err.Error()),
			)
			c = domain.Criteria{}
		}
		s.current = c
		s.loaded = true
	}
	return s.current
}

// Update replaces the active criteria and writes them through.
func (s *FilterService) Update(ctx context.Context, c domain.Criteria) domain.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = c
	s.loaded = true

	if err := s.filters.Save(ctx, c); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist filter criteria",
			slog.String("error", err.Error()),
		)
	}
	return s.current
}

// Reset clears every facet.
func (s *FilterService) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = domain.Criteria{}
	s.loaded = true

	if err := s.filters.Reset(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to reset filter criteria",
			slog.String("error", err.Error()),
		)
	}
}
