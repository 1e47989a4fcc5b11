package intelligence

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tools/:slug/intelligence", Show)
	router.PUT("/tools/:slug/intelligence", Upsert)
}
