package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"courtlistener.app/cl/internal/http/dto"
	"courtlistener.app/cl/internal/http/middleware"
	"courtlistener.app/cl/internal/service"
)

// AuthHandler serves the browsable-API login endpoints under /api-auth/.
type AuthHandler struct {
	auth         service.AuthService
	isProduction bool
}

func NewAuthHandler(auth service.AuthService, isProduction bool) *AuthHandler {
	return &AuthHandler{auth: auth, isProduction: isProduction}
}

func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, session, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		slog.ErrorContext(ctx, "failed to log in", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}

	setSessionCookie(c, session, h.isProduction)

	c.JSON(http.StatusOK, gin.H{
		"user":     dto.ToUserResponse(user),
		"redirect": service.SafeRedirect(c.Query("next")),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	token, err := c.Cookie(middleware.SessionCookieName)
	if err == nil && token != "" {
		if err := h.auth.Logout(ctx, token); err != nil {
			slog.WarnContext(ctx, "failed to delete session", "error", err)
		}
	}

	clearSessionCookie(c, h.isProduction)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
