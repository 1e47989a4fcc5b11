package categories

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup) {
	cats := router.Group("/categories")
	{
		cats.GET("", List)
		cats.GET("/:slug", Show)
	}
}
