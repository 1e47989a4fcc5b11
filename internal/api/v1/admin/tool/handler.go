package tool

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rgriss/aimanifesto/internal/services"
	"github.com/rgriss/aimanifesto/internal/utils"
)

// ListTools godoc
// @Summary List tools (admin)
// @Description List all tools including the inactive ones. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param search query string false "Search in name and description"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/tools [get]
func ListTools(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	toolList, total, err := services.FindTools(services.ToolFilter{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	})
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

// CreateTool godoc
// @Summary Create a tool
// @Description Create a catalog entry by hand, bypassing the research pipeline. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body CreateToolInput true "Tool"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/tools [post]
func CreateTool(c *gin.Context) {
	var input CreateToolInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	tool := input.toModel()
	if err := services.CreateTool(&tool); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create tool"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Tool created successfully", tool))
}

// UpdateTool godoc
// @Summary Update a tool
// @Description Patch tool fields. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Tool ID"
// @Param body body UpdateToolInput true "Fields to update"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/tools/{id} [patch]
func UpdateTool(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid tool ID"))
		return
	}

	var input UpdateToolInput
	if !utils.BindAndValidate(c, &input) {
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

	input.apply(tool)
	if err := services.UpdateTool(tool); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update tool"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Tool updated successfully", tool))
}

// DeleteTool godoc
// @Summary Delete a tool
// @Description Remove a tool and its enrichment data. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path int true "Tool ID"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/tools/{id} [delete]
func DeleteTool(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid tool ID"))
		return
	}

	if err := services.DeleteTool(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to delete tool"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Tool deleted successfully", nil))
}
