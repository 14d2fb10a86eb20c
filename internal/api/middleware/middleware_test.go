package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-crm/internal/api/middleware"
	apierrors "github.com/feral-file/ff-crm/internal/api/shared/errors"
	"github.com/feral-file/ff-crm/internal/config"
	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/logger"
	"github.com/feral-file/ff-crm/internal/mocks"
	"github.com/feral-file/ff-crm/internal/ratelimit"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func init() {
	gin.SetMode(gin.TestMode)
}

func signHS(t *testing.T, claims middleware.Claims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func validClaims(userID uuid.UUID) middleware.Claims {
	return middleware.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    "https://auth.example.com",
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: "ana@example.com",
		Role:  "authenticated",
	}
}

// actorRouter echoes the actor the auth middleware put into the request context
func actorRouter(a *middleware.Authenticator) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/me", middleware.Auth(a), func(c *gin.Context) {
		actor, ok := domain.ActorFromContext(c.Request.Context())
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user_id":    actor.UserID,
			"email":      actor.Email,
			"mfa":        actor.MFA,
			"request_id": logger.RequestID(c.Request.Context()),
		})
	})
	return router
}

func get(router http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHS256(t *testing.T) {
	a, err := middleware.NewAuthenticator(config.AuthConfig{
		JWTSecret: testSecret,
		Issuer:    "https://auth.example.com",
		Audience:  "authenticated",
	})
	require.NoError(t, err)
	router := actorRouter(a)
	userID := uuid.New()

	t.Run("valid token", func(t *testing.T) {
		w := get(router, "/me", "Bearer "+signHS(t, validClaims(userID)))
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			UserID    uuid.UUID `json:"user_id"`
			Email     string    `json:"email"`
			MFA       bool      `json:"mfa"`
			RequestID string    `json:"request_id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, userID, body.UserID)
		assert.Equal(t, "ana@example.com", body.Email)
		assert.False(t, body.MFA)
		assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), body.RequestID)
	})

	t.Run("aal2 session is MFA", func(t *testing.T) {
		claims := validClaims(userID)
		claims.AAL = "aal2"
		w := get(router, "/me", "Bearer "+signHS(t, claims))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"mfa":true`)
	})

	tests := []struct {
		name   string
		header func() string
	}{
		{
			name:   "missing header",
			header: func() string { return "" },
		},
		{
			name:   "wrong scheme",
			header: func() string { return "Basic " + signHS(t, validClaims(userID)) },
		},
		{
			name: "expired",
			header: func() string {
				claims := validClaims(userID)
				claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
				return "Bearer " + signHS(t, claims)
			},
		},
		{
			name: "no expiry",
			header: func() string {
				claims := validClaims(userID)
				claims.ExpiresAt = nil
				return "Bearer " + signHS(t, claims)
			},
		},
		{
			name: "wrong audience",
			header: func() string {
				claims := validClaims(userID)
				claims.Audience = jwt.ClaimStrings{"anon"}
				return "Bearer " + signHS(t, claims)
			},
		},
		{
			name: "wrong issuer",
			header: func() string {
				claims := validClaims(userID)
				claims.Issuer = "https://evil.example.com"
				return "Bearer " + signHS(t, claims)
			},
		},
		{
			name: "subject is not a uuid",
			header: func() string {
				claims := validClaims(userID)
				claims.Subject = "service-role"
				return "Bearer " + signHS(t, claims)
			},
		},
		{
			name: "signed with another secret",
			header: func() string {
				token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims(userID)).SignedString([]byte("other"))
				return "Bearer " + token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(router, "/me", tt.header())
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			var body apierrors.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, apierrors.ErrCodeUnauthorized, body.Error.Code)
		})
	}
}

func TestAuthRS256(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	a, err := middleware.NewAuthenticator(config.AuthConfig{JWTPublicKey: publicPEM})
	require.NoError(t, err)
	router := actorRouter(a)
	userID := uuid.New()

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, validClaims(userID)).SignedString(key)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(router, "/me", "Bearer "+token).Code)

	// An HS token must not verify against the RSA key
	assert.Equal(t, http.StatusUnauthorized, get(router, "/me", "Bearer "+signHS(t, validClaims(userID))).Code)
}

func TestNewAuthenticatorRequiresKey(t *testing.T) {
	_, err := middleware.NewAuthenticator(config.AuthConfig{})
	assert.Error(t, err)

	_, err = middleware.NewAuthenticator(config.AuthConfig{JWTPublicKey: "not a pem"})
	assert.Error(t, err)
}

func TestClaimsMFA(t *testing.T) {
	claims := middleware.Claims{AMR: []middleware.AMR{{Method: "password"}}}
	assert.False(t, claims.MFA())

	claims.AMR = append(claims.AMR, middleware.AMR{Method: "totp"})
	assert.True(t, claims.MFA())
}

func TestRequestIDKeepsCallerID(t *testing.T) {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, logger.RequestID(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "upstream-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "upstream-42", w.Body.String())
	assert.Equal(t, "upstream-42", w.Header().Get(middleware.RequestIDHeader))

	w = get(router, "/", "")
	assert.Len(t, w.Body.String(), 26)
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.GET("/", func(c *gin.Context) { panic("boom") })

	w := get(router, "/", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestRateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mocks.NewMockRateLimiter(ctrl)
	userID := uuid.New()

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(domain.WithActor(c.Request.Context(), domain.Actor{UserID: userID}))
	}, middleware.RateLimit(limiter))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	t.Run("allowed", func(t *testing.T) {
		limiter.EXPECT().Allow(gomock.Any(), userID.String()).
			Return(&ratelimit.Result{Allowed: true, Limit: 60, Remaining: 59}, nil)

		w := get(router, "/", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "59", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("limited", func(t *testing.T) {
		limiter.EXPECT().Allow(gomock.Any(), userID.String()).
			Return(&ratelimit.Result{Limit: 60, RetryAfter: 1500 * time.Millisecond}, nil)

		w := get(router, "/", "")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "2", w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), string(apierrors.ErrCodeTooManyRequests))
	})

	t.Run("limiter failure lets the request through", func(t *testing.T) {
		limiter.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))

		w := get(router, "/", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
