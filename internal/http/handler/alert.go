package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"courtlistener.app/cl/common/logger"
	"courtlistener.app/cl/internal/http/dto"
	"courtlistener.app/cl/internal/service"
)

type AlertHandler struct {
	alerts service.AlertService
}

func NewAlertHandler(alerts service.AlertService) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

func (h *AlertHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	user, ok := currentUser(c)
	if !ok {
		return
	}

	alerts, err := h.alerts.List(ctx, user.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list alerts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list alerts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(alerts),
		"results": dto.ToAlertResponses(alerts),
	})
}

func (h *AlertHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.AlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alert, err := h.alerts.Create(ctx, user.ID, req.ToInput())
	if err != nil {
		h.writeError(c, err, "failed to create alert")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAlertResponse(alert))
}

func (h *AlertHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	user, ok := currentUser(c)
	if !ok {
		return
	}

	alertID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}

	alert, err := h.alerts.Get(ctx, user.ID, alertID)
	if err != nil {
		h.writeError(c, err, "failed to get alert")
		return
	}

	c.JSON(http.StatusOK, dto.ToAlertResponse(alert))
}

func (h *AlertHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	user, ok := currentUser(c)
	if !ok {
		return
	}

	alertID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{AlertID: logger.Ptr(alertID)})

	var req dto.AlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alert, err := h.alerts.Update(ctx, user.ID, alertID, req.ToInput())
	if err != nil {
		h.writeError(c, err, "failed to update alert")
		return
	}

	c.JSON(http.StatusOK, dto.ToAlertResponse(alert))
}

func (h *AlertHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	user, ok := currentUser(c)
	if !ok {
		return
	}

	alertID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}

	if err := h.alerts.Delete(ctx, user.ID, alertID); err != nil {
		h.writeError(c, err, "failed to delete alert")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AlertHandler) writeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrAlertNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
	case errors.Is(err, service.ErrInvalidFrequency), errors.Is(err, service.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.ErrorContext(c.Request.Context(), msg, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
