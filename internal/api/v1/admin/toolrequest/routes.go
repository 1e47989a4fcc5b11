package toolrequest

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tool-requests", ListToolRequests)
}
