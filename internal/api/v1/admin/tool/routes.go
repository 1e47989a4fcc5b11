package tool

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tools", ListTools)
	router.POST("/tools", CreateTool)
	router.PATCH("/tools/:id", UpdateTool)
	router.DELETE("/tools/:id", DeleteTool)
}
