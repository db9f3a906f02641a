//go:build integration

package mongo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"service-partner/internal/apperr"
	"service-partner/internal/domain"
	partnermongo "service-partner/internal/repository/mongo"
	"service-partner/internal/testutil/fixture"
)

var tcClient *mongo.Client

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		log.Fatalf("failed to start mongo testcontainer: %v", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		if termErr := container.Terminate(ctx); termErr != nil {
			log.Printf("failed to terminate container after conn string error: %v", termErr)
		}
		log.Fatalf("failed to get connection string from container: %v", err)
	}

	client, err := partnermongo.Connect(ctx, uri)
	if err != nil {
		if termErr := container.Terminate(ctx); termErr != nil {
			log.Printf("failed to terminate container after connect error: %v", termErr)
		}
		log.Fatalf("failed to connect to mongo: %v", err)
	}
	tcClient = client

	code := m.Run()

	_ = client.Disconnect(ctx)
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate mongo container: %v", err)
	}

	os.Exit(code)
}

type MongoRegistrySuite struct {
	suite.Suite
	coll *mongo.Collection
	repo *partnermongo.Registry
}

func (s *MongoRegistrySuite) SetupSuite() {
	s.Require().NotNil(tcClient, "tcClient must be initialized in TestMain")
	s.coll = tcClient.Database("partners_test").Collection("partners")

	repo, err := partnermongo.NewRegistry(context.Background(), s.coll)
	s.Require().NoError(err)
	s.repo = repo
}

func (s *MongoRegistrySuite) SetupTest() {
	_, err := s.coll.DeleteMany(context.Background(), bson.M{})
	s.Require().NoError(err)
}

func (s *MongoRegistrySuite) seed() {
	for _, p := range fixture.Scenario() {
		p := p
		s.Require().NoError(s.repo.Insert(context.Background(), &p))
	}
}

func (s *MongoRegistrySuite) TestInsertAndFind() {
	ctx := context.Background()
	in := fixture.Donut()
	s.Require().NoError(s.repo.Insert(ctx, &in))

	got, err := s.repo.FindByID(ctx, in.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(in, *got)

	got, err = s.repo.FindByDocument(ctx, in.Document)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(in.ID, got.ID)

	got, err = s.repo.FindByID(ctx, "missing")
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *MongoRegistrySuite) TestDuplicates() {
	ctx := context.Background()
	s.seed()

	dupID := fixture.Rio()
	dupID.Document = "fresh"
	s.ErrorIs(s.repo.Insert(ctx, &dupID), apperr.ErrDuplicateID)

	dupDoc := fixture.Rio()
	dupDoc.ID = "fresh"
	s.ErrorIs(s.repo.Insert(ctx, &dupDoc), apperr.ErrDuplicateDocument)

	both := fixture.Rio()
	s.ErrorIs(s.repo.Insert(ctx, &both), apperr.ErrDuplicateID)

	n, err := s.coll.CountDocuments(ctx, bson.M{})
	s.Require().NoError(err)
	s.Equal(int64(len(fixture.Scenario())), n)
}

func (s *MongoRegistrySuite) TestFindContaining() {
	ctx := context.Background()
	s.seed()

	tests := []struct {
		name string
		pt   domain.Position
		want []string
	}{
		{name: "rio", pt: fixture.RioPoint, want: []string{"1"}},
		{name: "acre", pt: fixture.AcrePoint, want: []string{}},
		{name: "sao paulo", pt: fixture.SaoPauloPoint, want: []string{"28", "29", "30"}},
		{name: "inside hole", pt: fixture.DonutHolePoint, want: []string{}},
		{name: "between rings", pt: fixture.DonutRimPoint, want: []string{"77"}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := s.repo.FindContaining(ctx, tt.pt)
			s.Require().NoError(err)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			s.Equal(tt.want, ids)
		})
	}
}

func (s *MongoRegistrySuite) TestFindContaining_OutOfRange() {
	_, err := s.repo.FindContaining(context.Background(), fixture.OutOfRangePt)
	s.ErrorIs(err, apperr.ErrInvalidQuery)
}

func TestMongoRegistrySuite(t *testing.T) {
	suite.Run(t, new(MongoRegistrySuite))
}
