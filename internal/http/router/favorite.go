package router

import (
	"github.com/gin-gonic/gin"

	"courtlistener.app/cl/internal/http/handler"
)

func FavoriteRouter(rg *gin.RouterGroup, h *handler.FavoriteHandler) {
	rg.GET("/", h.List)
	rg.POST("/", h.Create)
	rg.GET("/:id/", h.Get)
	rg.PUT("/:id/", h.Update)
	rg.DELETE("/:id/", h.Delete)
}
