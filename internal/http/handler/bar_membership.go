package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courtlistener.app/cl/internal/model"
)

func ListBarMemberships(c *gin.Context) {
	memberships := model.ListBarMemberships()
	c.JSON(http.StatusOK, gin.H{
		"count":   len(memberships),
		"results": memberships,
	})
}
