package models

import "time"

// UncategorizedName is the fallback category for tools whose researched
// category does not match anything in the catalog.
const UncategorizedName = "Uncategorized"

type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	SortOrder   int       `gorm:"default:0;index" json:"sort_order"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	Tools       []Tool    `json:"tools,omitempty"`
}
