package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"task-manager-service/internal/adapter/session"
	"task-manager-service/pkg/logger"
)

const (
	userIDKey    = "auth.userID"
	sessionIDKey = "auth.sessionID"
)

// UserID returns the authenticated user's id for the current request,
// or "" when the request carries no valid session.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// SessionID returns the current session id, or "" when no valid session
// is attached to the request.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

// LoadSession resolves the session cookie, if any, against the session
// store and attaches the resulting identity to the request. Expired or
// unknown sessions are treated as anonymous. A valid session gets its
// expiry extended on every request.
func LoadSession(store session.Store, cookieName string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookieName)
		if err != nil || sessionID == "" {
			c.Next()
			return
		}

		sess, err := store.Get(c.Request.Context(), sessionID)
		if err != nil {
			log.Warn("session lookup failed", zap.Error(err))
			c.Next()
			return
		}
		if sess == nil || !sess.Authenticated {
			c.Next()
			return
		}

		c.Set(userIDKey, sess.UserID)
		c.Set(sessionIDKey, sess.ID)

		ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, sess.UserID)
		c.Request = c.Request.WithContext(ctx)

		if err := store.Touch(c.Request.Context(), sess.ID); err != nil {
			log.Warn("session renewal failed", zap.String("session_id", sess.ID), zap.Error(err))
		}

		c.Next()
	}
}

// RequireAuth aborts with 401 when the request has no authenticated
// session attached by LoadSession.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required. Please log in.",
				"code":    "NOT_AUTHENTICATED",
			})
			return
		}
		c.Next()
	}
}
