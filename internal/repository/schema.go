package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Unique constraints on the partners table.
const (
	constraintPartnerID       = "partners_id_key"
	constraintPartnerDocument = "partners_document_key"
)

var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS postgis`,
	`CREATE TABLE IF NOT EXISTS partners (
		pk            BIGSERIAL PRIMARY KEY,
		id            TEXT NOT NULL,
		trading_name  TEXT NOT NULL,
		owner_name    TEXT NOT NULL,
		document      TEXT NOT NULL,
		coverage_area geometry(MultiPolygon, 4326) NOT NULL,
		address       geometry(Point, 4326) NOT NULL,
		created_at    TIMESTAMP WITHOUT TIME ZONE DEFAULT now() NOT NULL,
		CONSTRAINT ` + constraintPartnerID + ` UNIQUE (id),
		CONSTRAINT ` + constraintPartnerDocument + ` UNIQUE (document)
	)`,
	`CREATE INDEX IF NOT EXISTS partners_coverage_area_gix ON partners USING GIST (coverage_area)`,
}

// EnsureSchema creates the partners table and its indexes when missing.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
