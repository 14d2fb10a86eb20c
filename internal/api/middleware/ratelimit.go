package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-crm/internal/api/shared/errors"
	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/logger"
	"github.com/feral-file/ff-crm/internal/ratelimit"
)

// RateLimit returns a gin middleware limiting each authenticated user. It
// must run after Auth. Limiter failures let the request through.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		key := c.ClientIP()
		if actor, ok := domain.ActorFromContext(ctx); ok {
			key = actor.UserID.String()
		}

		res, err := limiter.Allow(ctx, key)
		if err != nil {
			logger.WarnCtx(ctx, "Rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierrors.Response{
				Error: apierrors.NewTooManyRequestsError("Rate limit exceeded"),
			})
			return
		}

		c.Next()
	}
}
