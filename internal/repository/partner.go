package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-partner/internal/apperr"
	"service-partner/internal/domain"
	"service-partner/internal/geometry"
)

const partnerColumns = `id, trading_name, owner_name, document,
	ST_AsGeoJSON(coverage_area, 15), ST_AsGeoJSON(address, 15)`

// PartnerRepo stores partners in PostGIS.
type PartnerRepo struct{ db *pgxpool.Pool }

// NewPartnerRepo creates a new PartnerRepo.
func NewPartnerRepo(db *pgxpool.Pool) *PartnerRepo { return &PartnerRepo{db: db} }

// Insert - creates a new partner. Uniqueness is enforced by the table
// constraints; when both keys collide the id wins.
func (r *PartnerRepo) Insert(ctx context.Context, p *domain.Partner) error {
	area, err := encodeMultiPolygon(p.CoverageArea)
	if err != nil {
		return err
	}
	addr, err := encodePoint(p.Address)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO partners(id, trading_name, owner_name, document, coverage_area, address)
		VALUES($1, $2, $3, $4,
			ST_SetSRID(ST_GeomFromGeoJSON($5), 4326),
			ST_SetSRID(ST_GeomFromGeoJSON($6), 4326))`,
		p.ID, p.TradingName, p.OwnerName, p.Document, area, addr)
	if err == nil {
		return nil
	}

	switch {
	case IsDuplicate(err):
		return r.duplicateError(ctx, p.ID, err)
	case isGeometryRejected(err):
		return apperr.Geometry(geometry.FieldCoverageArea, apperr.ErrMalformedRing, "rejected by store: %v", err)
	}
	return fmt.Errorf("insert partner %s: %w", p.ID, err)
}

// duplicateError resolves which key collided. The id constraint may not be
// the one postgres reports when both collide, so the id is checked again.
func (r *PartnerRepo) duplicateError(ctx context.Context, id string, cause error) error {
	if ConstraintName(cause) == constraintPartnerID {
		return apperr.ErrDuplicateID
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM partners WHERE id=$1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check partner id %s: %w", id, err)
	}
	if exists {
		return apperr.ErrDuplicateID
	}
	if ConstraintName(cause) == constraintPartnerDocument {
		return apperr.ErrDuplicateDocument
	}
	return fmt.Errorf("%w: %v", apperr.ErrConflict, cause)
}

// FindByID - returns partner by its ID.
func (r *PartnerRepo) FindByID(ctx context.Context, id string) (*domain.Partner, error) {
	p, err := r.findOne(ctx, `SELECT `+partnerColumns+` FROM partners WHERE id=$1`, id)
	if err != nil {
		return nil, fmt.Errorf("get partner %s: %w", id, err)
	}
	return p, nil
}

// FindByDocument - returns partner by its document.
func (r *PartnerRepo) FindByDocument(ctx context.Context, document string) (*domain.Partner, error) {
	p, err := r.findOne(ctx, `SELECT `+partnerColumns+` FROM partners WHERE document=$1`, document)
	if err != nil {
		return nil, fmt.Errorf("get partner by document: %w", err)
	}
	return p, nil
}

// FindContaining returns partners whose coverage area intersects pt, ordered by id.
func (r *PartnerRepo) FindContaining(ctx context.Context, pt domain.Position) ([]domain.Partner, error) {
	if err := geometry.ValidatePosition(pt); err != nil {
		return nil, &apperr.QueryError{Detail: err.Error()}
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+partnerColumns+`
		FROM partners
		WHERE ST_Intersects(coverage_area, ST_SetSRID(ST_MakePoint($1, $2), 4326))
		ORDER BY id`, pt.Lon(), pt.Lat())
	if err != nil {
		return nil, fmt.Errorf("find containing: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Partner, 0)
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PartnerRepo) findOne(ctx context.Context, q string, arg any) (*domain.Partner, error) {
	p, err := scanPartner(r.db.QueryRow(ctx, q, arg))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func scanPartner(row pgx.Row) (*domain.Partner, error) {
	var (
		p          domain.Partner
		area, addr string
	)
	if err := row.Scan(&p.ID, &p.TradingName, &p.OwnerName, &p.Document, &area, &addr); err != nil {
		return nil, err
	}

	var err error
	if p.CoverageArea, err = decodeMultiPolygon(area); err != nil {
		return nil, err
	}
	if p.Address, err = decodePoint(addr); err != nil {
		return nil, err
	}
	return &p, nil
}
