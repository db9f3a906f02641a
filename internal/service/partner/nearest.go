package partner

import (
	"context"
	"errors"
	"time"

	"service-partner/internal/apperr"
	"service-partner/internal/domain"
	"service-partner/internal/geometry"
	"service-partner/internal/metrics"
)

// Resolver finds the partner closest to a point among those whose coverage
// area contains it.
type Resolver struct {
	finder           ContainmentFinder
	lookups          *metrics.NearestLookups
	operationTimeout time.Duration
}

// NewResolver creates a Resolver. lookups may be nil.
func NewResolver(f ContainmentFinder, lookups *metrics.NearestLookups, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Resolver{finder: f, lookups: lookups, operationTimeout: timeout}
}

// Nearest returns the closest covering partner, or nil when no coverage area
// contains pt.
func (r *Resolver) Nearest(ctx context.Context, pt domain.Position) (*domain.Partner, error) {
	if err := geometry.ValidatePosition(pt); err != nil {
		r.lookups.Observe(metrics.ResultInvalid, 0)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.operationTimeout)
	defer cancel()

	candidates, err := r.finder.FindContaining(ctx, pt)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidQuery) {
			r.lookups.Observe(metrics.ResultInvalid, 0)
		} else {
			r.lookups.Observe(metrics.ResultError, 0)
		}
		return nil, err
	}

	best := rankNearest(pt, candidates)
	if best == nil {
		r.lookups.Observe(metrics.ResultNoMatch, 0)
		return nil, nil
	}
	r.lookups.Observe(metrics.ResultMatch, len(candidates))
	return best, nil
}

// rankNearest picks the candidate with the smallest haversine distance to its
// address; equal distances fall back to the smaller id.
func rankNearest(pt domain.Position, candidates []domain.Partner) *domain.Partner {
	var (
		best     *domain.Partner
		bestDist float64
	)
	for i := range candidates {
		c := &candidates[i]
		d := geometry.Haversine(pt, c.Address.Coordinates)
		if best == nil || d < bestDist || (d == bestDist && c.ID < best.ID) {
			best, bestDist = c, d
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}
