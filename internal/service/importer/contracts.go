package importer

import (
	"context"

	"service-partner/internal/domain"
)

// Creator registers a single partner.
type Creator interface {
	Create(ctx context.Context, p *domain.Partner) error
}
