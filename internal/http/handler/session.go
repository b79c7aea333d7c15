package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"courtlistener.app/cl/internal/http/middleware"
	"courtlistener.app/cl/internal/model"
)

const sessionMaxAge = int(model.SessionTTL / time.Second)

func setSessionCookie(c *gin.Context, session *model.Session, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.SessionCookieName,
		session.Token,
		sessionMaxAge,
		"/",
		"",
		secure,
		true,
	)
}

func clearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", secure, true)
}

// currentUser returns the authenticated user or aborts with 401. Routes that
// call it sit behind middleware.RequireAuth, so the abort is a fallback.
func currentUser(c *gin.Context) (*model.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
	}
	return user, ok
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
