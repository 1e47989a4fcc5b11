package services

import (
	"errors"

	"github.com/gosimple/slug"
	"github.com/rgriss/aimanifesto/internal/database"
	"github.com/rgriss/aimanifesto/internal/models"
	"gorm.io/gorm"
)

var ErrToolNotFound = errors.New("tool not found")

type ToolFilter struct {
	Search     string
	CategoryID uint
	Featured   bool
	ActiveOnly bool
	Page       int
	Limit      int
}

// FindTools retrieves a paginated list of tools with filtering
func FindTools(filter ToolFilter) ([]models.Tool, int64, error) {
	var tools []models.Tool
	var total int64

	query := database.DB.Model(&models.Tool{})

	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Featured {
		query = query.Where("is_featured = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Preload("Category").Order("name").Limit(filter.Limit).Offset(offset).Find(&tools).Error; err != nil {
		return nil, 0, err
	}

	return tools, total, nil
}

// GetToolBySlug retrieves a tool by its slug, with category and
// intelligence preloaded
func GetToolBySlug(toolSlug string) (*models.Tool, error) {
	var tool models.Tool
	if err := database.DB.Where("slug = ?", toolSlug).
		Preload("Category").
		Preload("Intelligence").
		First(&tool).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrToolNotFound
		}
		return nil, err
	}
	return &tool, nil
}

// GetToolByID retrieves a tool by primary key
func GetToolByID(id uint) (*models.Tool, error) {
	var tool models.Tool
	if err := database.DB.First(&tool, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrToolNotFound
		}
		return nil, err
	}
	return &tool, nil
}

// IncrementToolViews bumps the view counter without touching updated_at
func IncrementToolViews(toolID uint) error {
	return database.DB.Model(&models.Tool{}).
		Where("id = ?", toolID).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
}

// CreateTool creates a new catalog entry. The slug is derived from the
// name when not given.
func CreateTool(tool *models.Tool) error {
	if tool.Slug == "" {
		tool.Slug = slug.Make(tool.Name)
	}
	return database.DB.Create(tool).Error
}

// UpdateTool updates an existing tool
func UpdateTool(tool *models.Tool) error {
	return database.DB.Save(tool).Error
}

// DeleteTool removes a tool and, by cascade, its intelligence record
func DeleteTool(id uint) error {
	var tool models.Tool
	if err := database.DB.First(&tool, id).Error; err != nil {
		return err
	}

	// SQLite used in tests does not always enforce the cascade, so the
	// intelligence row is removed explicitly
	if err := database.DB.Where("tool_id = ?", id).Delete(&models.ToolIntelligence{}).Error; err != nil {
		return err
	}
	return database.DB.Delete(&tool).Error
}
