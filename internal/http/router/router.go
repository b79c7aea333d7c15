package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courtlistener.app/cl/common/metrics"
	"courtlistener.app/cl/internal/api"
	"courtlistener.app/cl/internal/http/handler"
	"courtlistener.app/cl/internal/http/middleware"
	"courtlistener.app/cl/internal/service"
)

type RouterConfig struct {
	IsProduction bool
	CORSOrigins  []string
}

func SetupRoutes(router *gin.Engine, services *service.Services, apiHandler *api.Handler, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	auth := services.Auth()
	site := router.Group("/", middleware.OptionalAuth(auth))
	requireAuth := middleware.RequireAuth(auth)

	accountHandler := handler.NewAccountHandler(services.Accounts(), auth, cfg.IsProduction)
	AccountRouter(site, accountHandler, requireAuth)

	profile := site.Group("/profile", requireAuth)
	{
		AlertRouter(profile.Group("/alerts"), handler.NewAlertHandler(services.Alerts()))
		FavoriteRouter(profile.Group("/favorites"), handler.NewFavoriteHandler(services.Favorites()))
	}

	site.GET("/bar-memberships/", handler.ListBarMemberships)

	authHandler := handler.NewAuthHandler(auth, cfg.IsProduction)
	AuthRouter(site.Group("/api-auth"), authHandler, requireAuth)

	APIRouter(site.Group("/api", corsMiddleware(cfg.CORSOrigins)), apiHandler)
}
