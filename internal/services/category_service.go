package services

import (
	"github.com/gosimple/slug"
	"github.com/rgriss/aimanifesto/internal/database"
	"github.com/rgriss/aimanifesto/internal/models"
	"gorm.io/gorm"
)

// FindCategories retrieves categories ordered by sort order then name
func FindCategories(activeOnly bool) ([]models.Category, error) {
	var categories []models.Category

	query := database.DB.Model(&models.Category{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Order("sort_order").Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategoryBySlug retrieves a category with its active tools
func GetCategoryBySlug(categorySlug string) (*models.Category, error) {
	var category models.Category
	if err := database.DB.Where("slug = ?", categorySlug).
		Preload("Tools", "is_active = ?", true).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// GetCategoryByID retrieves a category by primary key
func GetCategoryByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory creates a new category, deriving the slug from the name
// when not given
func CreateCategory(category *models.Category) error {
	if category.Slug == "" {
		category.Slug = slug.Make(category.Name)
	}
	return database.DB.Create(category).Error
}

// UpdateCategory updates an existing category
func UpdateCategory(category *models.Category) error {
	return database.DB.Save(category).Error
}

// DeleteCategory removes a category. Categories still holding tools are
// protected from deletion.
func DeleteCategory(id uint) error {
	var count int64
	if err := database.DB.Model(&models.Tool{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return gorm.ErrForeignKeyViolated
	}
	return database.DB.Delete(&models.Category{}, id).Error
}

// EnsureUncategorized creates the fallback category on boot so researched
// tools always have somewhere to land (see ResearchService).
func EnsureUncategorized() error {
	var category models.Category
	err := database.DB.Where("name = ?", models.UncategorizedName).First(&category).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	return database.DB.Create(&models.Category{
		Name:        models.UncategorizedName,
		Slug:        slug.Make(models.UncategorizedName),
		Description: "Tools that have not been assigned a category yet",
		SortOrder:   999,
		IsActive:    true,
	}).Error
}
