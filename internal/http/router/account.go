package router

import (
	"github.com/gin-gonic/gin"

	"courtlistener.app/cl/internal/http/handler"
)

func AccountRouter(rg *gin.RouterGroup, h *handler.AccountHandler, requireAuth gin.HandlerFunc) {
	rg.POST("/register/", h.Register)
	rg.GET("/register/success/", h.RegisterSuccess)
	rg.GET("/email/confirm/:key/", h.ConfirmEmail)
	rg.POST("/email-confirmation/request/", requireAuth, h.RequestConfirmation)

	rg.GET("/profile/", h.ProfileRedirect)
	rg.GET("/profile/settings/", requireAuth, h.GetSettings)
	rg.POST("/profile/settings/", requireAuth, h.UpdateSettings)
	rg.POST("/profile/delete/", requireAuth, h.DeleteProfile)
	rg.GET("/profile/delete/done/", h.DeleteDone)
	rg.POST("/profile/password/change/", requireAuth, h.ChangePassword)
}
