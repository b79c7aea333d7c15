package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"courtlistener.app/cl/internal/http/dto"
	"courtlistener.app/cl/internal/http/middleware"
	"courtlistener.app/cl/internal/service"
)

const (
	settingsPath    = "/profile/settings/"
	deleteDonePath  = "/profile/delete/done/"
	registerSuccess = "/register/success/"
)

type AccountHandler struct {
	accounts     service.AccountService
	auth         service.AuthService
	isProduction bool
}

func NewAccountHandler(accounts service.AccountService, auth service.AuthService, isProduction bool) *AccountHandler {
	return &AccountHandler{
		accounts:     accounts,
		auth:         auth,
		isProduction: isProduction,
	}
}

func (h *AccountHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	// The trap is checked before anything else so bots always get the same answer.
	var trap dto.Honeypot
	if err := c.ShouldBindBodyWith(&trap, binding.JSON); err == nil && trap.Triggered() {
		slog.InfoContext(ctx, "registration honeypot triggered")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration"})
		return
	}

	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, settingsPath)
		return
	}

	var req dto.RegisterRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, session, err := h.accounts.Register(ctx, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "the two password fields didn't match"})
		case errors.Is(err, service.ErrPasswordTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": "password is too long"})
		case errors.Is(err, service.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "a user with that username already exists"})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "a user with that email already exists"})
		default:
			slog.ErrorContext(ctx, "failed to register user", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		}
		return
	}

	setSessionCookie(c, session, h.isProduction)

	redirect := registerSuccess + "?next=" + url.QueryEscape(service.SafeRedirect(c.Query("next")))
	c.JSON(http.StatusCreated, gin.H{
		"user":     dto.ToUserResponse(user),
		"redirect": redirect,
	})
}

func (h *AccountHandler) RegisterSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"redirect": service.SafeRedirect(c.Query("next"))})
}

func (h *AccountHandler) ConfirmEmail(c *gin.Context) {
	ctx := c.Request.Context()

	status, err := h.accounts.ConfirmEmail(ctx, c.Param("key"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to confirm email", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm email"})
		return
	}

	code := http.StatusOK
	switch status {
	case service.ConfirmInvalid:
		code = http.StatusNotFound
	case service.ConfirmExpired:
		code = http.StatusGone
	}
	c.JSON(code, gin.H{"status": status})
}

func (h *AccountHandler) RequestConfirmation(c *gin.Context) {
	ctx := c.Request.Context()
	user, ok := currentUser(c)
	if !ok {
		return
	}

	status, err := h.accounts.RequestEmailConfirmation(ctx, user)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to request email confirmation", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send confirmation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (h *AccountHandler) GetSettings(c *gin.Context) {
	ctx := c.Request.Context()
	user, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.accounts.GetSettings(ctx, user)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to get settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get settings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(user, profile))
}

func (h *AccountHandler) UpdateSettings(c *gin.Context) {
	ctx := c.Request.Context()
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, profile, err := h.accounts.UpdateSettings(ctx, user, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "a user with that email already exists"})
		case errors.Is(err, service.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		default:
			slog.ErrorContext(ctx, "failed to update settings", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
		}
		return
	}

	resp := dto.ToSettingsResponse(user, profile)
	resp.Outcome = string(outcome)
	resp.Message = dto.SettingsMessage(outcome)
	c.JSON(http.StatusOK, resp)
}

func (h *AccountHandler) ProfileRedirect(c *gin.Context) {
	c.Redirect(http.StatusMovedPermanently, settingsPath)
}

func (h *AccountHandler) DeleteProfile(c *gin.Context) {
	ctx := c.Request.Context()
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.accounts.DeleteProfile(ctx, user); err != nil {
		slog.ErrorContext(ctx, "failed to delete profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete profile"})
		return
	}

	clearSessionCookie(c, h.isProduction)
	c.JSON(http.StatusOK, gin.H{"redirect": deleteDonePath})
}

func (h *AccountHandler) DeleteDone(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Your account has been deleted."})
}

func (h *AccountHandler) ChangePassword(c *gin.Context) {
	ctx := c.Request.Context()
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.accounts.ChangePassword(ctx, user, req.OldPassword, req.NewPassword1, req.NewPassword2)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": "your old password was entered incorrectly"})
		case errors.Is(err, service.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "the two password fields didn't match"})
		case errors.Is(err, service.ErrPasswordTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": "password is too long"})
		default:
			slog.ErrorContext(ctx, "failed to change password", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to change password"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Your password was changed successfully."})
}
