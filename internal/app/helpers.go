package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"

	"service-partner/internal/logx"
	"service-partner/internal/repository"
	partnermongo "service-partner/internal/repository/mongo"
)

var (
	newPool        = repository.NewPool
	newMongoClient = partnermongo.Connect
)

const attemptTimeout = 3 * time.Second

func connectDbWithRetry(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error) {
	return withRetry(ctx, logger, "db", retries, delay, func(ctx context.Context) (*pgxpool.Pool, error) {
		return newPool(ctx, dsn)
	})
}

func connectMongoWithRetry(ctx context.Context, logger logx.Logger, uri string, retries int, delay time.Duration) (*mongo.Client, error) {
	return withRetry(ctx, logger, "mongo", retries, delay, func(ctx context.Context) (*mongo.Client, error) {
		return newMongoClient(ctx, uri)
	})
}

func withRetry[T any](
	ctx context.Context,
	logger logx.Logger,
	what string,
	retries int,
	delay time.Duration,
	connect func(context.Context) (T, error),
) (T, error) {
	var (
		zero    T
		lastErr error
	)
	for i := 1; i <= retries; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		conn, err := connect(attemptCtx)
		cancel()
		if err == nil {
			logger.Info(what+" connected", logx.Int("attempt", i))
			return conn, nil
		}
		lastErr = err
		logger.Warn(what+" connect failed",
			logx.Int("attempt", i),
			logx.Int("retries", retries),
			logx.Err(err),
		)
		if i < retries {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return zero, fmt.Errorf("%s connect failed after %d attempts: %w", what, retries, lastErr)
}
