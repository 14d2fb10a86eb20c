package rbac

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/feral-file/ff-crm/internal/adapter"
	"github.com/feral-file/ff-crm/internal/logger"
)

const cacheKeyPrefix = "crm:rbac:permissions:"

const (
	// cacheBreakerFailures consecutive Redis errors open the breaker
	cacheBreakerFailures = 3
	// cacheBreakerTimeout is how long the breaker stays open
	cacheBreakerTimeout = 30 * time.Second
)

// ErrCacheUnavailable is returned while the cache breaker is open
var ErrCacheUnavailable = errors.New("permission cache unavailable")

// Cache stores computed permission sets
type Cache interface {
	// Get returns the cached set, or nil on a miss
	Get(ctx context.Context, userID uuid.UUID) (*PermissionSet, error)
	Set(ctx context.Context, set *PermissionSet, ttl time.Duration) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type redisCache struct {
	client  adapter.RedisClient
	json    adapter.JSON
	breaker *gobreaker.CircuitBreaker
}

// NewRedisCache creates a Cache backed by Redis. Redis calls go through a
// circuit breaker; while it is open reads are misses and writes are skipped.
func NewRedisCache(client adapter.RedisClient, json adapter.JSON) Cache {
	return &redisCache{
		client: client,
		json:   json,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "rbac-cache",
			MaxRequests: 1,
			Timeout:     cacheBreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cacheBreakerFailures
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, adapter.ErrCacheMiss)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("Circuit breaker changed state",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			},
		}),
	}
}

func cacheKey(userID uuid.UUID) string {
	return cacheKeyPrefix + userID.String()
}

// call runs fn through the breaker and maps a rejected call to ErrCacheUnavailable
func (c *redisCache) call(fn func() (any, error)) (any, error) {
	result, err := c.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrCacheUnavailable
	}
	return result, err
}

func (c *redisCache) Get(ctx context.Context, userID uuid.UUID) (*PermissionSet, error) {
	result, err := c.call(func() (any, error) {
		return c.client.Get(ctx, cacheKey(userID))
	})
	if err != nil {
		if errors.Is(err, adapter.ErrCacheMiss) || errors.Is(err, ErrCacheUnavailable) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read permission cache: %w", err)
	}

	data, _ := result.([]byte)
	var set PermissionSet
	if err := c.json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to decode cached permissions: %w", err)
	}
	return &set, nil
}

func (c *redisCache) Set(ctx context.Context, set *PermissionSet, ttl time.Duration) error {
	data, err := c.json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to encode permissions: %w", err)
	}

	_, err = c.call(func() (any, error) {
		return nil, c.client.Set(ctx, cacheKey(set.UserID), data, ttl)
	})
	if errors.Is(err, ErrCacheUnavailable) {
		return nil
	}
	return err
}

// Delete reports ErrCacheUnavailable while the breaker is open, since a
// skipped invalidation leaves a stale set until its TTL expires
func (c *redisCache) Delete(ctx context.Context, userID uuid.UUID) error {
	_, err := c.call(func() (any, error) {
		return nil, c.client.Del(ctx, cacheKey(userID))
	})
	return err
}

type noopCache struct{}

func (noopCache) Get(context.Context, uuid.UUID) (*PermissionSet, error) {
	return nil, nil
}

func (noopCache) Set(context.Context, *PermissionSet, time.Duration) error {
	return nil
}

func (noopCache) Delete(context.Context, uuid.UUID) error {
	return nil
}
