// Package importer registers partners received from the import stream.
package importer

import (
	"context"
	"errors"

	"service-partner/internal/apperr"
	"service-partner/internal/domain"
	"service-partner/internal/logx"
	"service-partner/internal/metrics"
)

// Processor turns import messages into partner registrations.
//
// Handle returns nil for every outcome that must not be retried: created,
// already imported and rejected records. Only store failures are returned so
// that the message is delivered again.
type Processor struct {
	creator Creator
	logger  logx.Logger
	imports *metrics.PartnerImports
}

// NewProcessor creates a Processor. imports may be nil.
func NewProcessor(c Creator, logger logx.Logger, imports *metrics.PartnerImports) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Processor{creator: c, logger: logger, imports: imports}
}

// Handle imports one partner record.
func (p *Processor) Handle(ctx context.Context, partner domain.Partner) error {
	err := p.creator.Create(ctx, &partner)
	result := classify(err)
	p.imports.Inc(result)

	switch result {
	case metrics.ImportCreated:
		return nil
	case metrics.ImportDuplicate:
		p.logger.Info("partner already imported",
			logx.String("id", partner.ID),
			logx.Err(err),
		)
		return nil
	case metrics.ImportRejected:
		p.logger.Warn("partner import rejected",
			logx.String("id", partner.ID),
			logx.Err(err),
		)
		return nil
	default:
		p.logger.Error("partner import failed",
			logx.String("id", partner.ID),
			logx.Err(err),
		)
		return err
	}
}

// classify maps a Create result to an import outcome label.
func classify(err error) string {
	var gerr *apperr.GeometryError
	switch {
	case err == nil:
		return metrics.ImportCreated
	case errors.Is(err, apperr.ErrConflict):
		return metrics.ImportDuplicate
	case errors.As(err, &gerr), errors.Is(err, apperr.ErrInvalid):
		return metrics.ImportRejected
	default:
		return metrics.ImportFailed
	}
}
