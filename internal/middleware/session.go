package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tasktracker/internal/auth"
	"tasktracker/internal/observability"
)

// SessionGuard gates every protected route. It re-evaluates the session
// window on each request and never extends it: a request without a token
// and a request with a revoked or forged token are "authentication
// required", a request whose window has elapsed is "session expired".
// The distinct messages let clients send the user back to the login flow
// with the right notice.
func SessionGuard(secret string, revoker *auth.Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.TokenFromRequest(c)
		if token == "" {
			reject(c, "missing", "Authentication required")
			return
		}

		claims, err := auth.ValidateSession(token, secret)
		if err != nil {
			if errors.Is(err, auth.ErrSessionExpired) {
				logrus.Debug("Session guard rejected expired session")
				reject(c, "expired", "Session expired, please log in again")
				return
			}
			reject(c, "invalid", "Authentication required")
			return
		}

		if revoker.Revoked(claims.ID) {
			logrus.WithField("session_id", claims.ID).Debug("Session guard rejected revoked session")
			reject(c, "invalid", "Authentication required")
			return
		}

		c.Set(auth.UsernameKey, claims.Username)
		c.Next()
	}
}

func reject(c *gin.Context, reason, message string) {
	if observability.GlobalMetrics != nil {
		observability.GlobalMetrics.SessionsRejected.WithLabelValues(reason).Inc()
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	c.Abort()
}
