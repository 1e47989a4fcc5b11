package toolrequest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rgriss/aimanifesto/internal/models"
	"github.com/rgriss/aimanifesto/internal/services"
	"github.com/rgriss/aimanifesto/internal/utils"
)

// ListToolRequests godoc
// @Summary List all tool requests
// @Description List every user's tool requests with optional status filter. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param user_id query int false "Filter by submitting user"
// @Param status query string false "Filter by status" Enums(rejected, approved, completed, failed)
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /admin/tool-requests [get]
func ListToolRequests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	var userID uint
	if v := c.Query("user_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid user ID"))
			return
		}
		userID = uint(id)
	}

	var status *models.ToolRequestStatus
	if s := c.Query("status"); s != "" {
		st := models.ToolRequestStatus(s)
		switch st {
		case models.ToolRequestStatusRejected, models.ToolRequestStatusApproved,
			models.ToolRequestStatusCompleted, models.ToolRequestStatusFailed:
			status = &st
		default:
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid status filter"))
			return
		}
	}

	requests, total, err := services.GetToolRequests(page, pageSize, userID, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch tool requests"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Tool requests retrieved successfully", gin.H{
		"items":     requests,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	}))
}
