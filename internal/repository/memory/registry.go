// Package memory is a process-local partner registry. It backs tests and the
// "memory" storage driver.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dhconnelly/rtreego"

	"service-partner/internal/apperr"
	"service-partner/internal/domain"
	"service-partner/internal/geometry"
)

// pointTolerance is the half-width of the query box used to probe the tree.
const pointTolerance = 1e-9

type entry struct {
	partner domain.Partner
	bounds  rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *entry) Bounds() rtreego.Rect { return e.bounds }

// Registry keeps partners in maps keyed by id and document and indexes their
// coverage bounding boxes in an R-tree.
type Registry struct {
	mu         sync.RWMutex
	byID       map[string]*entry
	byDocument map[string]string
	tree       *rtreego.Rtree
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:       make(map[string]*entry),
		byDocument: make(map[string]string),
		tree:       rtreego.NewTree(2, 25, 50),
	}
}

// Insert stores a copy of p. The id is checked before the document, and a
// rejected insert leaves the registry untouched.
func (r *Registry) Insert(ctx context.Context, p *domain.Partner) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	bounds, err := boundsOf(p.CoverageArea)
	if err != nil {
		return fmt.Errorf("index partner %s: %w", p.ID, err)
	}
	e := &entry{partner: p.Clone(), bounds: bounds}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; ok {
		return apperr.ErrDuplicateID
	}
	if _, ok := r.byDocument[p.Document]; ok {
		return apperr.ErrDuplicateDocument
	}

	r.byID[p.ID] = e
	r.byDocument[p.Document] = p.ID
	r.tree.Insert(e)
	return nil
}

// FindByID returns nil, nil when no partner has the id.
func (r *Registry) FindByID(ctx context.Context, id string) (*domain.Partner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	p := e.partner.Clone()
	return &p, nil
}

// FindByDocument returns nil, nil when no partner has the document.
func (r *Registry) FindByDocument(ctx context.Context, document string) (*domain.Partner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byDocument[document]
	if !ok {
		return nil, nil
	}
	p := r.byID[id].partner.Clone()
	return &p, nil
}

// FindContaining returns every partner whose coverage area contains pt,
// sorted by id.
func (r *Registry) FindContaining(ctx context.Context, pt domain.Position) ([]domain.Partner, error) {
	if err := geometry.ValidatePosition(pt); err != nil {
		return nil, &apperr.QueryError{Detail: err.Error()}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	probe := rtreego.Point{pt.Lon(), pt.Lat()}.ToRect(pointTolerance)

	r.mu.RLock()
	defer r.mu.RUnlock()

	hits := r.tree.SearchIntersect(probe)
	out := make([]domain.Partner, 0, len(hits))
	for _, h := range hits {
		e := h.(*entry)
		if geometry.Contains(e.partner.CoverageArea, pt) {
			out = append(out, e.partner.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Len reports the number of stored partners.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func boundsOf(m domain.MultiPolygon) (rtreego.Rect, error) {
	lo, hi := geometry.Bounds(m)
	return rtreego.NewRectFromPoints(
		rtreego.Point{lo.Lon(), lo.Lat()},
		rtreego.Point{hi.Lon(), hi.Lat()},
	)
}
