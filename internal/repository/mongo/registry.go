// Package mongo stores partners in a MongoDB collection with a 2dsphere index
// over the coverage area.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"service-partner/internal/apperr"
	"service-partner/internal/domain"
	"service-partner/internal/geometry"
)

// Index names double as the discriminator for duplicate key errors.
const (
	indexPartnerID       = "partners_id_key"
	indexPartnerDocument = "partners_document_key"
	indexCoverageArea    = "partners_coverage_area_2dsphere"
)

// codeCantExtractGeoKeys is returned when the server rejects a geometry.
const codeCantExtractGeoKeys = 16755

type multiPolygonDoc struct {
	Type        string           `bson:"type"`
	Coordinates []domain.Polygon `bson:"coordinates"`
}

type pointDoc struct {
	Type        string          `bson:"type"`
	Coordinates domain.Position `bson:"coordinates"`
}

type partnerDoc struct {
	ID           string          `bson:"id"`
	TradingName  string          `bson:"tradingName"`
	OwnerName    string          `bson:"ownerName"`
	Document     string          `bson:"document"`
	CoverageArea multiPolygonDoc `bson:"coverageArea"`
	Address      pointDoc        `bson:"address"`
}

func toDoc(p *domain.Partner) partnerDoc {
	return partnerDoc{
		ID:           p.ID,
		TradingName:  p.TradingName,
		OwnerName:    p.OwnerName,
		Document:     p.Document,
		CoverageArea: multiPolygonDoc{Type: p.CoverageArea.Type, Coordinates: p.CoverageArea.Coordinates},
		Address:      pointDoc{Type: p.Address.Type, Coordinates: p.Address.Coordinates},
	}
}

func (d partnerDoc) toDomain() domain.Partner {
	return domain.Partner{
		ID:           d.ID,
		TradingName:  d.TradingName,
		OwnerName:    d.OwnerName,
		Document:     d.Document,
		CoverageArea: domain.MultiPolygon{Type: d.CoverageArea.Type, Coordinates: d.CoverageArea.Coordinates},
		Address:      domain.Point{Type: d.Address.Type, Coordinates: d.Address.Coordinates},
	}
}

// Connect opens a client and pings the primary.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// Registry is a partner registry backed by a MongoDB collection.
type Registry struct {
	coll *mongo.Collection
}

// NewRegistry wraps coll and makes sure its indexes exist.
func NewRegistry(ctx context.Context, coll *mongo.Collection) (*Registry, error) {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName(indexPartnerID)},
		{Keys: bson.D{{Key: "document", Value: 1}}, Options: options.Index().SetUnique(true).SetName(indexPartnerDocument)},
		{Keys: bson.D{{Key: "coverageArea", Value: "2dsphere"}}, Options: options.Index().SetName(indexCoverageArea)},
	})
	if err != nil {
		return nil, fmt.Errorf("create partner indexes: %w", err)
	}
	return &Registry{coll: coll}, nil
}

// Insert stores p. When both unique keys collide the id is reported.
func (r *Registry) Insert(ctx context.Context, p *domain.Partner) error {
	_, err := r.coll.InsertOne(ctx, toDoc(p))
	if err == nil {
		return nil
	}

	if mongo.IsDuplicateKeyError(err) {
		return r.duplicateError(ctx, p.ID, err)
	}
	var se mongo.ServerError
	if errors.As(err, &se) && se.HasErrorCode(codeCantExtractGeoKeys) {
		return apperr.Geometry(geometry.FieldCoverageArea, apperr.ErrMalformedRing, "rejected by store: %v", err)
	}
	return fmt.Errorf("insert partner %s: %w", p.ID, err)
}

func (r *Registry) duplicateError(ctx context.Context, id string, cause error) error {
	msg := cause.Error()
	if strings.Contains(msg, indexPartnerID) {
		return apperr.ErrDuplicateID
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("check partner id %s: %w", id, err)
	}
	if n > 0 {
		return apperr.ErrDuplicateID
	}
	if strings.Contains(msg, indexPartnerDocument) {
		return apperr.ErrDuplicateDocument
	}
	return fmt.Errorf("%w: %v", apperr.ErrConflict, cause)
}

// FindByID returns nil, nil when no partner has the id.
func (r *Registry) FindByID(ctx context.Context, id string) (*domain.Partner, error) {
	p, err := r.findOne(ctx, bson.M{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get partner %s: %w", id, err)
	}
	return p, nil
}

// FindByDocument returns nil, nil when no partner has the document.
func (r *Registry) FindByDocument(ctx context.Context, document string) (*domain.Partner, error) {
	p, err := r.findOne(ctx, bson.M{"document": document})
	if err != nil {
		return nil, fmt.Errorf("get partner by document: %w", err)
	}
	return p, nil
}

// FindContaining returns partners whose coverage area intersects pt, ordered by id.
func (r *Registry) FindContaining(ctx context.Context, pt domain.Position) ([]domain.Partner, error) {
	if err := geometry.ValidatePosition(pt); err != nil {
		return nil, &apperr.QueryError{Detail: err.Error()}
	}

	filter := bson.M{"coverageArea": bson.M{"$geoIntersects": bson.M{
		"$geometry": bson.M{"type": domain.TypePoint, "coordinates": bson.A{pt.Lon(), pt.Lat()}},
	}}}
	opts := options.Find().SetProjection(bson.M{"_id": 0}).SetSort(bson.D{{Key: "id", Value: 1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find containing: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]domain.Partner, 0)
	for cur.Next(ctx) {
		var d partnerDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode partner: %w", err)
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}

func (r *Registry) findOne(ctx context.Context, filter bson.M) (*domain.Partner, error) {
	var d partnerDoc
	err := r.coll.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 0})).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	p := d.toDomain()
	return &p, nil
}
