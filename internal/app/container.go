package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/dig"

	"service-partner/internal/config"
	"service-partner/internal/http/handlers"
	mw "service-partner/internal/http/middleware"
	"service-partner/internal/http/middleware/ratelimit"
	"service-partner/internal/http/pprofserver"
	"service-partner/internal/http/router"
	"service-partner/internal/logx"
	"service-partner/internal/metrics"
	"service-partner/internal/service/importer"
	"service-partner/internal/service/partner"
	"service-partner/internal/transport/kafka"
)

type (
	dbConnectFunc    func(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error)
	mongoConnectFunc func(ctx context.Context, logger logx.Logger, uri string, retries int, delay time.Duration) (*mongo.Client, error)
)

const (
	connectRetries = 10
	connectDelay   = time.Second
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect    dbConnectFunc
	mongoConnect mongoConnectFunc
	logFatalf    func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect:    connectDbWithRetry,
		mongoConnect: connectMongoWithRetry,
		logFatalf:    log.Fatalf,
	}
}

// WithDBConnect sets the postgres connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithMongoConnect sets the MongoDB connection function
func (b *ContainerBuilder) WithMongoConnect(fn mongoConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.mongoConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build registers every provider. Nothing is constructed until Invoke.
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerStorage(container, b.dbConnect, b.mongoConnect); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds the container shared by the API and the worker.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		config.Load,
		NewLogger,
	)
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		func(reg partner.Registry, logger logx.Logger, cfg *config.Config) *partner.Service {
			return partner.NewService(reg, logger, cfg.OperationTimeout)
		},
		func(reg partner.Registry, lookups *metrics.NearestLookups, cfg *config.Config) *partner.Resolver {
			return partner.NewResolver(reg, lookups, cfg.OperationTimeout)
		},
		func(svc *partner.Service, logger logx.Logger, imports *metrics.PartnerImports) *importer.Processor {
			return importer.NewProcessor(svc, logger, imports)
		},
	)
}

type routerIn struct {
	dig.In

	Base        *handlers.Handlers
	Partners    *handlers.PartnerHandler
	Logger      logx.Logger
	HTTPMetrics *mw.HTTPMetrics
	RateLimit   *ratelimit.Middleware
	Gatherer    prometheus.Gatherer
	Config      *config.Config
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Deps{
		Base:        in.Base,
		Partners:    in.Partners,
		Logger:      in.Logger,
		HTTPMetrics: in.HTTPMetrics,
		RateLimit:   in.RateLimit,
		Gatherer:    in.Gatherer,
		Timeout:     in.Config.OperationTimeout + 2*time.Second,
	})
}

func newServer(cfg *config.Config, mux http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// newPprofServer returns nil when pprof is disabled.
func newPprofServer(cfg *config.Config) *http.Server {
	if !cfg.Pprof.Enabled {
		return nil
	}
	return pprofserver.NewServer(cfg.Pprof.Addr, pprofserver.Config{
		User: cfg.Pprof.User,
		Pass: cfg.Pprof.Pass,
	})
}

func registerHTTP(container *dig.Container) error {
	if err := provideAll(container,
		handlers.New,
		handlers.NewPartnerUsecase,
		handlers.NewNearestResolver,
		handlers.NewPartnerHandler,
		newRateLimitMiddleware,
		newRouter,
		newServer,
	); err != nil {
		return err
	}
	if err := container.Provide(newPprofServer, dig.Name("pprof_server")); err != nil {
		return fmt.Errorf("provide pprof server: %w", err)
	}
	return nil
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(
			cfg *config.Config,
			logger logx.Logger,
			p *importer.Processor,
			imports *metrics.PartnerImports,
		) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, p.Handle, imports)
		},
	)
}
