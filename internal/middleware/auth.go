package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/store-rating/internal/auth"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/metrics"
	"github.com/BruksfildServices01/store-rating/internal/models"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// Failure reasons, also used as error codes and metric labels.
const (
	ReasonMissingToken  = "missing_token"
	ReasonInvalidHeader = "invalid_authorization_header"
	ReasonTokenExpired  = "token_expired"
	ReasonInvalidToken  = "invalid_token"
)

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthMiddleware authenticates the bearer token and stores the caller's
// identity in the context. It never checks roles; see RequireRole.
func AuthMiddleware(verifier TokenVerifier, log *zap.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		fail := func(reason, message string) {
			m.AuthFailed(reason)
			httperr.Unauthorized(c, reason, message)
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			fail(ReasonMissingToken, "Access denied. No token provided.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			fail(ReasonInvalidHeader, "Invalid token")
			return
		}

		claims, err := verifier.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				fail(ReasonTokenExpired, "Token has expired")
				return
			}
			fail(ReasonInvalidToken, "Invalid token")
			return
		}

		c.Set(ContextUserID, claims.ID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)

		log.Debug("authenticated",
			zap.Uint("user_id", claims.ID),
			zap.String("email", claims.Email),
			zap.String("role", claims.Role.String()),
		)

		c.Next()
	}
}

// CurrentUser returns the identity set by AuthMiddleware.
func CurrentUser(c *gin.Context) (auth.Identity, bool) {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return auth.Identity{}, false
	}
	uid, ok := id.(uint)
	if !ok {
		return auth.Identity{}, false
	}

	email := c.GetString(ContextUserEmail)
	role, _ := c.Get(ContextUserRole)
	r, _ := role.(models.Role)

	return auth.Identity{ID: uid, Email: email, Role: r}, true
}
