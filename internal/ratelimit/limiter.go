package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-crm/internal/adapter"
	"github.com/feral-file/ff-crm/internal/config"
	"github.com/feral-file/ff-crm/internal/logger"
)

// Result is the outcome of a single Allow call
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// RetryAfter is how long to wait before the next request is allowed; zero when allowed
	RetryAfter time.Duration
	// ResetAfter is how long until the bucket is full again
	ResetAfter time.Duration
}

// Limiter limits requests per key over a one minute window
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	// Allow consumes one request from key's budget
	Allow(ctx context.Context, key string) (*Result, error)
}

type limiter struct {
	config      config.RateLimitConfig
	distributed adapter.RedisRateLimiter
	clock       adapter.Clock

	mu    sync.Mutex
	local map[string]*rate.Limiter
	// redisDownUntil is when the distributed limiter is tried again after an error
	redisDownUntil time.Time
}

// NewLimiter creates a limiter backed by Redis. distributed may be nil when
// Redis is not configured, in which case the in-process limiter is used.
func NewLimiter(cfg config.RateLimitConfig, distributed adapter.RedisRateLimiter, clock adapter.Clock) (Limiter, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if distributed == nil && !cfg.LocalFallback {
		return nil, errors.New("redis rate limiter required when local fallback is disabled")
	}

	logger.Info("Rate limiter initialized",
		zap.Int("requests_per_minute", cfg.RequestsPerMinute),
		zap.Int("burst", cfg.Burst),
		zap.Bool("distributed", distributed != nil),
		zap.Bool("local_fallback", cfg.LocalFallback),
	)

	return &limiter{
		config:      cfg,
		distributed: distributed,
		clock:       clock,
		local:       make(map[string]*rate.Limiter),
	}, nil
}

func (l *limiter) Allow(ctx context.Context, key string) (*Result, error) {
	if l.distributed != nil && l.redisUsable() {
		res, err := l.distributed.Allow(ctx, l.config.RedisKeyPrefix+key, redis_rate.Limit{
			Rate:   l.config.RequestsPerMinute,
			Burst:  l.config.Burst,
			Period: time.Minute,
		})
		if err == nil {
			return &Result{
				Allowed:    res.Allowed > 0,
				Limit:      l.config.RequestsPerMinute,
				Remaining:  res.Remaining,
				RetryAfter: max(res.RetryAfter, 0),
				ResetAfter: res.ResetAfter,
			}, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !l.config.LocalFallback {
			return nil, fmt.Errorf("redis rate limiter unavailable: %w", err)
		}

		l.markRedisDown()
		logger.WarnCtx(ctx, "Redis rate limiter error, falling back to local",
			zap.Duration("retry_after", l.config.RedisRetryAfter),
			zap.Error(err),
		)
	}

	return l.allowLocal(key), nil
}

// redisUsable reports whether the distributed limiter should be tried. The
// local buckets are dropped once Redis is back so they do not go stale.
func (l *limiter) redisUsable() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.redisDownUntil.IsZero() {
		return true
	}
	if l.clock.Now().Before(l.redisDownUntil) {
		return false
	}

	l.redisDownUntil = time.Time{}
	l.local = make(map[string]*rate.Limiter)
	logger.Info("Retrying Redis rate limiter")
	return true
}

func (l *limiter) markRedisDown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.redisDownUntil = l.clock.Now().Add(l.config.RedisRetryAfter)
}

func (l *limiter) allowLocal(key string) *Result {
	l.mu.Lock()
	lim, ok := l.local[key]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(float64(l.config.RequestsPerMinute)/60), l.config.Burst)
		l.local[key] = lim
	}
	l.mu.Unlock()

	now := l.clock.Now()
	result := &Result{Limit: l.config.RequestsPerMinute}

	reservation := lim.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		result.RetryAfter = delay
	} else {
		result.Allowed = true
	}

	tokens := lim.TokensAt(now)
	result.Remaining = max(int(tokens), 0)
	missing := float64(l.config.Burst) - tokens
	result.ResetAfter = time.Duration(missing / float64(lim.Limit()) * float64(time.Second))

	return result
}

// validateConfig validates and sets defaults for the configuration
func validateConfig(cfg *config.RateLimitConfig) error {
	if cfg.RequestsPerMinute <= 0 {
		return errors.New("requests_per_minute must be positive")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerMinute
	}
	if cfg.RedisKeyPrefix == "" {
		cfg.RedisKeyPrefix = "ff:crm:ratelimit:"
	}
	if cfg.RedisRetryAfter <= 0 {
		cfg.RedisRetryAfter = 30 * time.Second
	}
	return nil
}
