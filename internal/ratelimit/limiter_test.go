package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-crm/internal/config"
	"github.com/feral-file/ff-crm/internal/mocks"
	"github.com/feral-file/ff-crm/internal/ratelimit"
)

type testLimiterMocks struct {
	redisRateLimiter *mocks.MockRedisRateLimiter
	clock            *mocks.MockClock
	now              time.Time
}

func setupTestLimiter(t *testing.T) *testLimiterMocks {
	ctrl := gomock.NewController(t)
	tm := &testLimiterMocks{
		redisRateLimiter: mocks.NewMockRedisRateLimiter(ctrl),
		clock:            mocks.NewMockClock(ctrl),
		now:              time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	tm.clock.EXPECT().Now().DoAndReturn(func() time.Time { return tm.now }).AnyTimes()
	return tm
}

func TestNewLimiterValidation(t *testing.T) {
	tm := setupTestLimiter(t)

	_, err := ratelimit.NewLimiter(config.RateLimitConfig{}, tm.redisRateLimiter, tm.clock)
	assert.Error(t, err)

	_, err = ratelimit.NewLimiter(config.RateLimitConfig{RequestsPerMinute: 10}, nil, tm.clock)
	assert.Error(t, err, "no redis and no fallback leaves nothing to limit with")

	_, err = ratelimit.NewLimiter(config.RateLimitConfig{RequestsPerMinute: 10, LocalFallback: true}, nil, tm.clock)
	assert.NoError(t, err)
}

func TestAllowDistributed(t *testing.T) {
	tm := setupTestLimiter(t)
	limiter, err := ratelimit.NewLimiter(config.RateLimitConfig{RequestsPerMinute: 60, RedisKeyPrefix: "test:"}, tm.redisRateLimiter, tm.clock)
	require.NoError(t, err)

	limit := redis_rate.Limit{Rate: 60, Burst: 60, Period: time.Minute}
	gomock.InOrder(
		tm.redisRateLimiter.EXPECT().Allow(gomock.Any(), "test:user-1", limit).
			Return(&redis_rate.Result{Limit: limit, Allowed: 1, Remaining: 59, RetryAfter: -1, ResetAfter: time.Second}, nil),
		tm.redisRateLimiter.EXPECT().Allow(gomock.Any(), "test:user-1", limit).
			Return(&redis_rate.Result{Limit: limit, Allowed: 0, Remaining: 0, RetryAfter: 2 * time.Second, ResetAfter: time.Minute}, nil),
	)

	res, err := limiter.Allow(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 59, res.Remaining)
	assert.Zero(t, res.RetryAfter)

	res, err = limiter.Allow(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 2*time.Second, res.RetryAfter)
}

func TestAllowRedisErrorWithoutFallback(t *testing.T) {
	tm := setupTestLimiter(t)
	limiter, err := ratelimit.NewLimiter(config.RateLimitConfig{RequestsPerMinute: 60}, tm.redisRateLimiter, tm.clock)
	require.NoError(t, err)

	tm.redisRateLimiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err = limiter.Allow(context.Background(), "user-1")
	assert.ErrorContains(t, err, "connection refused")
}

func TestAllowFallsBackToLocal(t *testing.T) {
	tm := setupTestLimiter(t)
	limiter, err := ratelimit.NewLimiter(config.RateLimitConfig{
		RequestsPerMinute: 60,
		Burst:             2,
		LocalFallback:     true,
		RedisRetryAfter:   time.Minute,
	}, tm.redisRateLimiter, tm.clock)
	require.NoError(t, err)

	// One failure switches to the local limiter until RedisRetryAfter passes
	tm.redisRateLimiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused")).Times(1)

	res, err := limiter.Allow(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)

	res, err = limiter.Allow(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = limiter.Allow(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, time.Second, res.RetryAfter)

	// Buckets are per key
	res, err = limiter.Allow(context.Background(), "user-2")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	// Redis is tried again once the retry window has passed
	tm.now = tm.now.Add(2 * time.Minute)
	tm.redisRateLimiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&redis_rate.Result{Allowed: 1, Remaining: 10}, nil)

	res, err = limiter.Allow(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 10, res.Remaining)
}

func TestAllowLocalOnly(t *testing.T) {
	tm := setupTestLimiter(t)
	limiter, err := ratelimit.NewLimiter(config.RateLimitConfig{RequestsPerMinute: 120, Burst: 1, LocalFallback: true}, nil, tm.clock)
	require.NoError(t, err)

	res, err := limiter.Allow(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = limiter.Allow(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 500*time.Millisecond, res.RetryAfter)

	tm.now = tm.now.Add(500 * time.Millisecond)
	res, err = limiter.Allow(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}
