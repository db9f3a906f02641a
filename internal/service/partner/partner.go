package partner

import (
	"context"
	"strings"
	"time"

	"service-partner/internal/apperr"
	"service-partner/internal/domain"
	"service-partner/internal/geometry"
	"service-partner/internal/logx"
)

const defaultTimeout = 3 * time.Second

// Service coordinates partner registration and lookups.
type Service struct {
	registry         Registry
	logger           logx.Logger
	operationTimeout time.Duration
}

// NewService creates and configures a partner Service.
func NewService(r Registry, logger logx.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Service{registry: r, logger: logx.OrNop(logger), operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// validateCreate normalises text fields and runs the geometry checks.
func validateCreate(p *domain.Partner) error {
	if p == nil {
		return apperr.ErrInvalid
	}
	p.ID = strings.TrimSpace(p.ID)
	p.Document = strings.TrimSpace(p.Document)
	if p.ID == "" {
		return &apperr.FieldError{Field: "id"}
	}
	if p.Document == "" {
		return &apperr.FieldError{Field: "document"}
	}
	if err := geometry.ValidateCoverageArea(p.CoverageArea); err != nil {
		return err
	}
	return geometry.ValidateAddress(p.Address)
}

// Create validates p and inserts it into the registry.
func (s *Service) Create(ctx context.Context, p *domain.Partner) error {
	if err := validateCreate(p); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.registry.Insert(ctx, p); err != nil {
		return err
	}
	s.logger.Info("partner created",
		logx.String("id", p.ID),
		logx.Int("polygons", len(p.CoverageArea.Coordinates)),
	)
	return nil
}

// Get returns the partner with the given id, or nil when there is none.
func (s *Service) Get(ctx context.Context, id string) (*domain.Partner, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.registry.FindByID(ctx, id)
}

// GetByDocument returns the partner registered under document, or nil.
func (s *Service) GetByDocument(ctx context.Context, document string) (*domain.Partner, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.registry.FindByDocument(ctx, document)
}
