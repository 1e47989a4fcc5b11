package tools

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rgriss/aimanifesto/internal/services"
	"github.com/rgriss/aimanifesto/internal/utils"
	"github.com/rgriss/aimanifesto/pkg/logger"
	"go.uber.org/zap"
)

// List godoc
// @Summary List tools
// @Description List active tools with optional search, category and featured filters
// @Tags tools
// @Produce  json
// @Param   search      query  string  false "Search in name and description"
// @Param   category_id query  int     false "Filter by category ID"
// @Param   featured    query  bool    false "Only featured tools"
// @Param   page        query  int     false "Page number"
// @Param   limit       query  int     false "Page size"
// @Success 200 {object} utils.Response
// @Router /tools [get]
func List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := services.ToolFilter{
		Search:     c.Query("search"),
		ActiveOnly: true,
		Page:       page,
		Limit:      limit,
	}
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid category ID"))
			return
		}
		filter.CategoryID = uint(id)
	}
	if v := c.Query("featured"); v == "true" || v == "1" {
		filter.Featured = true
	}

	toolList, total, err := services.FindTools(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch tools"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Tools retrieved successfully", gin.H{
		"items": toolList,
		"total": total,
		"page":  page,
		"limit": limit,
	}))
}

// Show godoc
// @Summary Get a tool
// @Description Get a tool by slug, including its enrichment data
// @Tags tools
// @Produce  json
// @Param   slug   path   string  true  "Tool slug"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /tools/{slug} [get]
func Show(c *gin.Context) {
	tool, err := services.GetToolBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrToolNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Tool not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch tool"))
		return
	}

	// A lost view count is not worth failing the request over
	if err := services.IncrementToolViews(tool.ID); err != nil {
		logger.Log.Warn("Failed to increment tool views", zap.Uint("tool_id", tool.ID), zap.Error(err))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Tool retrieved successfully", tool))
}
