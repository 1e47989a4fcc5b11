package models

import "time"

// PricingModel is the normalized pricing classification of a tool
type PricingModel string

const (
	PricingFree       PricingModel = "free"
	PricingFreemium   PricingModel = "freemium"
	PricingPaid       PricingModel = "paid"
	PricingEnterprise PricingModel = "enterprise"
)

// PopularityTier buckets tools by how widely known they are
type PopularityTier string

const (
	PopularityMainstream PopularityTier = "mainstream"
	PopularityWellKnown  PopularityTier = "well_known"
	PopularityGrowing    PopularityTier = "growing"
	PopularityNiche      PopularityTier = "niche"
	PopularityEmerging   PopularityTier = "emerging"
)

// Tool represents one catalog entry in the directory
type Tool struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	CategoryID       uint            `gorm:"index;not null" json:"category_id"`
	Category         *Category       `json:"category,omitempty"`
	Name             string          `gorm:"index;not null" json:"name"`
	Slug             string          `gorm:"uniqueIndex;not null" json:"slug"`
	Description      string          `gorm:"not null" json:"description"`
	LongDescription  string          `json:"long_description"`
	WebsiteURL       string          `json:"website_url"`
	DocumentationURL *string         `json:"documentation_url"`
	LogoURL          *string         `json:"logo_url"`
	PricingModel     PricingModel    `gorm:"not null;default:'freemium'" json:"pricing_model"`
	PriceDescription *string         `json:"price_description"`
	CompanyName      *string         `json:"company_name"`
	PopularityTier   *PopularityTier `gorm:"index" json:"popularity_tier"`
	MomentumScore    *int            `json:"momentum_score"`
	Features         StringList      `gorm:"type:jsonb" json:"features"`
	UseCases         StringList      `gorm:"type:jsonb" json:"use_cases"`
	Integrations     StringList      `gorm:"type:jsonb" json:"integrations"`
	IsFeatured       bool            `gorm:"default:false;index" json:"is_featured"`
	IsActive         bool            `gorm:"default:true;index" json:"is_active"`
	ViewsCount       int             `gorm:"default:0" json:"views_count"`

	Intelligence *ToolIntelligence `gorm:"constraint:OnDelete:CASCADE" json:"intelligence,omitempty"`
}

// TableName overrides the table name
func (Tool) TableName() string {
	return "tools"
}
