package category

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rgriss/aimanifesto/internal/models"
	"github.com/rgriss/aimanifesto/internal/services"
	"github.com/rgriss/aimanifesto/internal/utils"
	"gorm.io/gorm"
)

type CreateCategoryInput struct {
	Name        string `json:"name" binding:"required,min=2,max=80"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=80"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

// ListCategories godoc
// @Summary List categories (admin)
// @Description List all categories including the inactive ones. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response
// @Router /admin/categories [get]
func ListCategories(c *gin.Context) {
	categoryList, err := services.FindCategories(false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch categories"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Categories retrieved successfully", categoryList))
}

// CreateCategory godoc
// @Summary Create a category
// @Description Create a new category. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body CreateCategoryInput true "Category"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /admin/categories [post]
func CreateCategory(c *gin.Context) {
	var input CreateCategoryInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	category := models.Category{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Icon:        input.Icon,
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := services.CreateCategory(&category); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create category"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Category created successfully", category))
}

// UpdateCategory godoc
// @Summary Update a category
// @Description Patch category fields. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Category ID"
// @Param body body UpdateCategoryInput true "Fields to update"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/categories/{id} [patch]
func UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid category ID"))
		return
	}

	var input UpdateCategoryInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	category, err := services.GetCategoryByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Category not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch category"))
		return
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.Icon != nil {
		category.Icon = *input.Icon
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := services.UpdateCategory(category); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update category"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Category updated successfully", category))
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Delete a category. Categories that still hold tools cannot be deleted. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path int true "Category ID"
// @Success 200 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /admin/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid category ID"))
		return
	}

	if err := services.DeleteCategory(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, "Category still contains tools"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to delete category"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Category deleted successfully", nil))
}
