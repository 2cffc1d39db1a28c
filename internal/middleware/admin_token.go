package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zenvor/internal/pkg/response"
)

// AdminToken protects the triage endpoints with a static bearer token.
func AdminToken(token string, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("admin_auth")

	return func(c *gin.Context) {
		if token == "" {
			logAuthFailure(log, c, http.StatusInternalServerError, "token_not_configured")
			response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Admin token is not configured")
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logAuthFailure(log, c, http.StatusUnauthorized, "missing_auth")
			response.Abort(c, http.StatusUnauthorized, "AUTH_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logAuthFailure(log, c, http.StatusUnauthorized, "invalid_auth_format")
			response.Abort(c, http.StatusUnauthorized, "AUTH_INVALID", "Authorization header must be 'Bearer <token>'")
			return
		}

		if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(parts[1])), []byte(token)) != 1 {
			logAuthFailure(log, c, http.StatusForbidden, "invalid_token")
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Invalid admin token")
			return
		}

		c.Next()
	}
}

func logAuthFailure(log *zap.Logger, c *gin.Context, status int, reason string) {
	log.Warn("admin auth rejected",
		zap.Int("status", status),
		zap.String("reason", reason),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", requestID(c)),
	)
}
