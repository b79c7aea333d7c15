package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"courtlistener.app/cl/common/logger"
	"courtlistener.app/cl/internal/model"
	"courtlistener.app/cl/internal/service"
)

const (
	SessionCookieName = "cl_session"
	userContextKey    = "cl.user"
	tokenContextKey   = "cl.session_token"
)

// OptionalAuth loads the session user when a valid cookie is present.
func OptionalAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		loadUser(c, auth)
		c.Next()
	}
}

// RequireAuth rejects requests without a valid session.
func RequireAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok && !loadUser(c, auth) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by OptionalAuth or RequireAuth.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}

// SessionToken returns the raw session token of an authenticated request.
func SessionToken(c *gin.Context) string {
	return c.GetString(tokenContextKey)
}

func loadUser(c *gin.Context, auth service.AuthService) bool {
	token, err := c.Cookie(SessionCookieName)
	if err != nil || token == "" {
		return false
	}

	ctx := c.Request.Context()
	user, err := auth.ValidateSession(ctx, token)
	if err != nil {
		if !errors.Is(err, service.ErrSessionExpired) && !errors.Is(err, service.ErrUserNotFound) {
			slog.ErrorContext(ctx, "failed to validate session", "error", err)
		}
		return false
	}

	c.Set(userContextKey, user)
	c.Set(tokenContextKey, token)
	c.Request = c.Request.WithContext(logger.WithLogFields(ctx, logger.LogFields{UserID: logger.Ptr(user.ID)}))
	return true
}
