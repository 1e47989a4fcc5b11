package tools

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup) {
	t := router.Group("/tools")
	{
		t.GET("", List)
		t.GET("/:slug", Show)
	}
}
