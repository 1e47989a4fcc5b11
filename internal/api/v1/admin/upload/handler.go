package upload

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rgriss/aimanifesto/internal/services"
	"github.com/rgriss/aimanifesto/internal/utils"
)

// 2 MiB is plenty for a logo
const maxLogoSize = 2 << 20

var allowedLogoExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".svg":  true,
	".webp": true,
}

type Handler struct {
	uploader services.LogoUploader
}

func NewHandler(uploader services.LogoUploader) *Handler {
	return &Handler{uploader: uploader}
}

// UploadLogo godoc
// @Summary Upload a tool logo
// @Description Upload a logo image for a tool and set its logo URL. Admin only.
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security Bearer
// @Param id path int true "Tool ID"
// @Param logo formData file true "Logo image (png, jpg, svg or webp, max 2 MiB)"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/tools/{id}/logo [post]
func (h *Handler) UploadLogo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid tool ID"))
		return
	}

	tool, err := services.GetToolByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrToolNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Tool not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch tool"))
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Missing logo file"))
		return
	}
	if fileHeader.Size > maxLogoSize {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Logo file too large"))
		return
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedLogoExtensions[ext] {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Unsupported logo file type"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to read logo file"))
		return
	}
	defer file.Close()

	logoURL, err := h.uploader.UploadLogo(file, fileHeader.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to upload logo"))
		return
	}

	tool.LogoURL = &logoURL
	if err := services.UpdateTool(tool); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to save logo URL"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logo uploaded successfully", gin.H{
		"logo_url": logoURL,
	}))
}

// GetSTSToken godoc
// @Summary Get temporary OSS credentials
// @Description Issue short-lived STS credentials for direct browser uploads. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/upload/sts-token [get]
func (h *Handler) GetSTSToken(c *gin.Context) {
	creds, err := services.GetOSSTSToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to issue upload credentials"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Credentials issued successfully", creds))
}
