package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-partner/internal/config"
	"service-partner/internal/http/middleware/ratelimit"
	"service-partner/internal/logx"
)

type rateLimitIn struct {
	dig.In

	Config  *config.Config
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Clock   ratelimit.Clock    `optional:"true"`
}

// newRateLimitMiddleware wraps a token bucket limiter, or a no-op limiter
// when rate limiting is disabled.
func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	rl := in.Config.RateLimit
	if !rl.Enabled {
		return ratelimit.New(in.Logger, in.Counter, ratelimit.NopLimiter{})
	}

	clock := in.Clock
	if clock == nil {
		clock = ratelimit.RealClock{}
	}
	in.Logger.Info("rate limiter enabled",
		logx.Float64("rps", rl.Rate),
		logx.Int("burst", rl.Burst),
		logx.Duration("ttl", rl.TTL),
		logx.Int("max_buckets", rl.MaxBuckets),
	)
	limiter := ratelimit.NewTokenBucketLimiter(clock, ratelimit.Config{
		Rate:       rl.Rate,
		Burst:      rl.Burst,
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
	return ratelimit.New(in.Logger, in.Counter, limiter)
}
