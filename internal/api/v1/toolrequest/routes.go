package toolrequest

import (
	"github.com/gin-gonic/gin"
	"github.com/rgriss/aimanifesto/internal/services"
)

func RegisterRoutes(router *gin.RouterGroup, validator *services.ValidationService) {
	h := NewHandler(validator)

	requests := router.Group("/tool-requests")
	{
		requests.POST("", h.Submit)
		requests.GET("", h.List)
		requests.GET("/:id", h.Show)
	}
}
