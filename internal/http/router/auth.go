package router

import (
	"github.com/gin-gonic/gin"

	"courtlistener.app/cl/internal/http/handler"
)

func AuthRouter(rg *gin.RouterGroup, h *handler.AuthHandler, requireAuth gin.HandlerFunc) {
	rg.POST("/login/", h.Login)
	rg.POST("/logout/", h.Logout)
	rg.GET("/me/", requireAuth, h.Me)
}
