package categories

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rgriss/aimanifesto/internal/services"
	"github.com/rgriss/aimanifesto/internal/utils"
	"gorm.io/gorm"
)

// List godoc
// @Summary List categories
// @Description List active categories ordered by sort order
// @Tags categories
// @Produce  json
// @Success 200 {object} utils.Response
// @Router /categories [get]
func List(c *gin.Context) {
	categoryList, err := services.FindCategories(true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch categories"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Categories retrieved successfully", categoryList))
}

// Show godoc
// @Summary Get a category
// @Description Get a category by slug, including its active tools
// @Tags categories
// @Produce  json
// @Param   slug   path   string  true  "Category slug"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /categories/{slug} [get]
func Show(c *gin.Context) {
	category, err := services.GetCategoryBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Category not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch category"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Category retrieved successfully", category))
}
