package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"courtlistener.app/cl/internal/http/dto"
	"courtlistener.app/cl/internal/service"
)

type FavoriteHandler struct {
	favorites service.FavoriteService
}

func NewFavoriteHandler(favorites service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

func (h *FavoriteHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	user, ok := currentUser(c)
	if !ok {
		return
	}

	favorites, err := h.favorites.List(ctx, user.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list favorites", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(favorites),
		"results": dto.ToFavoriteResponses(favorites),
	})
}

func (h *FavoriteHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	favorite, err := h.favorites.Create(ctx, user.ID, req.ToInput())
	if err != nil {
		h.writeError(c, err, "failed to create favorite")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFavoriteResponse(favorite))
}

func (h *FavoriteHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	user, ok := currentUser(c)
	if !ok {
		return
	}

	favoriteID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "favorite not found"})
		return
	}

	favorite, err := h.favorites.Get(ctx, user.ID, favoriteID)
	if err != nil {
		h.writeError(c, err, "failed to get favorite")
		return
	}

	c.JSON(http.StatusOK, dto.ToFavoriteResponse(favorite))
}

func (h *FavoriteHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	user, ok := currentUser(c)
	if !ok {
		return
	}

	favoriteID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "favorite not found"})
		return
	}

	var req dto.UpdateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	favorite, err := h.favorites.Update(ctx, user.ID, favoriteID, req.Name, req.Notes)
	if err != nil {
		h.writeError(c, err, "failed to update favorite")
		return
	}

	c.JSON(http.StatusOK, dto.ToFavoriteResponse(favorite))
}

func (h *FavoriteHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	user, ok := currentUser(c)
	if !ok {
		return
	}

	favoriteID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "favorite not found"})
		return
	}

	if err := h.favorites.Delete(ctx, user.ID, favoriteID); err != nil {
		h.writeError(c, err, "failed to delete favorite")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *FavoriteHandler) writeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrFavoriteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "favorite not found"})
	case errors.Is(err, service.ErrClusterNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "opinion cluster does not exist"})
	default:
		slog.ErrorContext(c.Request.Context(), msg, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
