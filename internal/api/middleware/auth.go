package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-crm/internal/api/shared/errors"
	"github.com/feral-file/ff-crm/internal/config"
	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/logger"
)

const (
	// aalMFA is the authenticator assurance level of a session with a second factor
	aalMFA = "aal2"
)

// Claims are the access token claims issued by the identity provider
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
	AAL   string `json:"aal"`
	AMR   []AMR  `json:"amr"`
}

// AMR is one authentication method used to establish the session
type AMR struct {
	Method    string `json:"method"`
	Timestamp int64  `json:"timestamp"`
}

// MFA reports whether the session was established with a second factor
func (c *Claims) MFA() bool {
	if c.AAL == aalMFA {
		return true
	}
	for _, m := range c.AMR {
		if m.Method == "totp" || m.Method == "mfa/totp" || m.Method == "mfa/phone" {
			return true
		}
	}
	return false
}

// Actor converts the claims into the actor requests run as
func (c *Claims) Actor() (domain.Actor, error) {
	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("invalid subject: %w", err)
	}
	if userID == uuid.Nil {
		return domain.Actor{}, errors.New("empty subject")
	}
	return domain.Actor{
		UserID: userID,
		Email:  c.Email,
		Role:   c.Role,
		MFA:    c.MFA(),
	}, nil
}

// Authenticator validates bearer tokens
type Authenticator struct {
	parser  *jwt.Parser
	keyFunc jwt.Keyfunc
}

// NewAuthenticator creates an authenticator. An RSA public key selects RS256
// verification; otherwise the shared secret is used with HS256.
func NewAuthenticator(cfg config.AuthConfig) (*Authenticator, error) {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	var key interface{}
	switch {
	case cfg.JWTPublicKey != "":
		publicKey, err := parseRSAPublicKey(cfg.JWTPublicKey)
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
		}
		key = publicKey
		opts = append(opts, jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}))
	case cfg.JWTSecret != "":
		key = []byte(cfg.JWTSecret)
		opts = append(opts, jwt.WithValidMethods([]string{"HS256"}))
	default:
		return nil, errors.New("JWT public key or secret not configured")
	}

	return &Authenticator{
		parser:  jwt.NewParser(opts...),
		keyFunc: func(*jwt.Token) (interface{}, error) { return key, nil },
	}, nil
}

// Authenticate validates the Authorization header and returns the token claims
func (a *Authenticator) Authenticate(authHeader string) (*Claims, error) {
	if authHeader == "" {
		return nil, errors.New("missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, errors.New("invalid Authorization header format")
	}

	claims := &Claims{}
	token, err := a.parser.ParseWithClaims(parts[1], claims, a.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// Auth returns a gin middleware that requires a valid bearer token and puts
// the caller's domain.Actor into the request context
func Auth(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		claims, err := a.Authenticate(c.GetHeader("Authorization"))
		if err == nil {
			var actor domain.Actor
			actor, err = claims.Actor()
			if err == nil {
				ctx = domain.WithActor(ctx, actor)
				ctx = logger.WithRequest(ctx, logger.RequestID(ctx), actor.UserID.String())
				c.Request = c.Request.WithContext(ctx)

				logger.DebugCtx(ctx, "JWT authentication successful",
					zap.String("path", c.Request.URL.Path),
					zap.Bool("mfa", actor.MFA),
				)
				c.Next()
				return
			}
		}

		logger.WarnCtx(ctx, "Authentication failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
		)
		c.AbortWithStatusJSON(http.StatusUnauthorized, apierrors.Response{
			Error: apierrors.NewUnauthorizedError("Authentication failed", err.Error()),
		})
	}
}

// parseRSAPublicKey parses an RSA public key from PEM format
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	// Try parsing as PKIX (most common format)
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		// Try parsing as PKCS1 format
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return rsaKey, nil
}
