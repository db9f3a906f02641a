package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/dig"

	"service-partner/internal/config"
	"service-partner/internal/http/handlers"
	"service-partner/internal/logx"
	"service-partner/internal/repository"
	"service-partner/internal/repository/memory"
	partnermongo "service-partner/internal/repository/mongo"
	"service-partner/internal/service/partner"
)

// storeCloser releases the connections behind the selected registry.
type storeCloser func()

type storageOut struct {
	dig.Out

	Registry partner.Registry
	Ready    handlers.ReadinessCheck
	Closer   storeCloser
}

const schemaTimeout = 30 * time.Second

func registerStorage(container *dig.Container, dbConnect dbConnectFunc, mongoConnect mongoConnectFunc) error {
	provider := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (storageOut, error) {
		switch cfg.Storage {
		case config.StoragePostgres:
			return openPostgres(ctx, cfg, logger, dbConnect)
		case config.StorageMongo:
			return openMongo(ctx, cfg, logger, mongoConnect)
		case config.StorageMemory:
			logger.Warn("using in-memory partner registry; data is lost on restart")
			return storageOut{Registry: memory.NewRegistry(), Closer: func() {}}, nil
		default:
			return storageOut{}, fmt.Errorf("unknown storage driver %q", cfg.Storage)
		}
	}
	return provideAll(container, provider)
}

func openPostgres(ctx context.Context, cfg *config.Config, logger logx.Logger, connect dbConnectFunc) (storageOut, error) {
	pool, err := connect(ctx, logger, cfg.DB.DSN(), connectRetries, connectDelay)
	if err != nil {
		return storageOut{}, err
	}

	schemaCtx, cancel := context.WithTimeout(ctx, schemaTimeout)
	defer cancel()
	if err := repository.EnsureSchema(schemaCtx, pool); err != nil {
		pool.Close()
		return storageOut{}, fmt.Errorf("ensure schema: %w", err)
	}

	return storageOut{
		Registry: repository.NewPartnerRepo(pool),
		Ready:    pool.Ping,
		Closer:   pool.Close,
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, logger logx.Logger, connect mongoConnectFunc) (storageOut, error) {
	client, err := connect(ctx, logger, cfg.Mongo.URI, connectRetries, connectDelay)
	if err != nil {
		return storageOut{}, err
	}

	coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
	reg, err := partnermongo.NewRegistry(ctx, coll)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return storageOut{}, err
	}

	return storageOut{
		Registry: reg,
		Ready: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		Closer: func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Error("mongo disconnect error", logx.Err(err))
			}
		},
	}, nil
}
