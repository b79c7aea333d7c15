package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"courtlistener.app/cl/internal/api"
)

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Accept", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// APIRouter mounts the public read-only API. Versions other than v1, v2 and
// v3 have no route and fall through to 404.
func APIRouter(rg *gin.RouterGroup, h *api.Handler) {
	rg.GET("/", h.Index)
	rg.GET("/jurisdictions/", h.Jurisdictions)
	rg.GET("/rest-info/", h.RestInfo)
	rg.GET("/rest-info/:version/", h.RestInfo)
	rg.GET("/bulk-info/", h.BulkInfo)
	rg.GET("/bulk/external_pagerank/", h.Pagerank)

	v3 := rg.Group("/rest/v3")
	{
		v3.GET("/", h.Root)
		v3.GET("/search/", h.Search)
		v3.GET("/coverage/:court/", h.Coverage)
		v3.GET("/:resource/", h.List)
		v3.GET("/:resource/:id/", h.Detail)
	}

	rg.Any("/rest/v1/*path", h.Deprecated)
	rg.Any("/rest/v2/*path", h.Deprecated)
}
