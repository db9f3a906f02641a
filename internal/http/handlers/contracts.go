package handlers

import (
	"context"

	"service-partner/internal/domain"
	"service-partner/internal/service/partner"
)

type partnerUsecase interface {
	Create(ctx context.Context, p *domain.Partner) error
	Get(ctx context.Context, id string) (*domain.Partner, error)
	GetByDocument(ctx context.Context, document string) (*domain.Partner, error)
}

// NewPartnerUsecase wires a partner Service into a partnerUsecase.
func NewPartnerUsecase(svc *partner.Service) partnerUsecase {
	return svc
}

type nearestResolver interface {
	Nearest(ctx context.Context, pt domain.Position) (*domain.Partner, error)
}

// NewNearestResolver wires a partner Resolver into a nearestResolver.
func NewNearestResolver(r *partner.Resolver) nearestResolver {
	return r
}
