package upload

import (
	"github.com/gin-gonic/gin"
	"github.com/rgriss/aimanifesto/internal/services"
)

func RegisterRoutes(router *gin.RouterGroup, uploader services.LogoUploader) {
	h := NewHandler(uploader)

	router.POST("/tools/:id/logo", h.UploadLogo)
	router.GET("/upload/sts-token", h.GetSTSToken)
}
