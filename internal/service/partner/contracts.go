package partner

import (
	"context"

	"service-partner/internal/domain"
)

//go:generate mockgen -source=contracts.go -destination=mock_registry_test.go -package=partner_test

// Registry is the durable partner store. Implementations own the id/document
// uniqueness check and perform it atomically with the insert.
type Registry interface {
	Insert(ctx context.Context, p *domain.Partner) error
	FindByID(ctx context.Context, id string) (*domain.Partner, error)
	FindByDocument(ctx context.Context, document string) (*domain.Partner, error)
	FindContaining(ctx context.Context, pt domain.Position) ([]domain.Partner, error)
}

// ContainmentFinder is the part of Registry the resolver needs.
type ContainmentFinder interface {
	FindContaining(ctx context.Context, pt domain.Position) ([]domain.Partner, error)
}
