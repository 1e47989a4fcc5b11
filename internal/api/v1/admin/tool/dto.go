package tool

import "github.com/rgriss/aimanifesto/internal/models"

type CreateToolInput struct {
	CategoryID       uint     `json:"category_id" binding:"required"`
	Name             string   `json:"name" binding:"required,min=2,max=120"`
	Slug             string   `json:"slug"`
	Description      string   `json:"description" binding:"required"`
	LongDescription  string   `json:"long_description"`
	WebsiteURL       string   `json:"website_url" binding:"required,url"`
	DocumentationURL *string  `json:"documentation_url" binding:"omitempty,url"`
	LogoURL          *string  `json:"logo_url" binding:"omitempty,url"`
	PricingModel     string   `json:"pricing_model" binding:"omitempty,oneof=free freemium paid enterprise"`
	PriceDescription *string  `json:"price_description"`
	CompanyName      *string  `json:"company_name"`
	PopularityTier   *string  `json:"popularity_tier" binding:"omitempty,oneof=mainstream well_known growing niche emerging"`
	MomentumScore    *int     `json:"momentum_score" binding:"omitempty,min=1,max=5"`
	Features         []string `json:"features"`
	UseCases         []string `json:"use_cases"`
	Integrations     []string `json:"integrations"`
	IsFeatured       *bool    `json:"is_featured"`
	IsActive         *bool    `json:"is_active"`
}

type UpdateToolInput struct {
	CategoryID       *uint    `json:"category_id"`
	Name             *string  `json:"name" binding:"omitempty,min=2,max=120"`
	Description      *string  `json:"description"`
	LongDescription  *string  `json:"long_description"`
	WebsiteURL       *string  `json:"website_url" binding:"omitempty,url"`
	DocumentationURL *string  `json:"documentation_url" binding:"omitempty,url"`
	LogoURL          *string  `json:"logo_url" binding:"omitempty,url"`
	PricingModel     *string  `json:"pricing_model" binding:"omitempty,oneof=free freemium paid enterprise"`
	PriceDescription *string  `json:"price_description"`
	CompanyName      *string  `json:"company_name"`
	PopularityTier   *string  `json:"popularity_tier" binding:"omitempty,oneof=mainstream well_known growing niche emerging"`
	MomentumScore    *int     `json:"momentum_score" binding:"omitempty,min=1,max=5"`
	Features         []string `json:"features"`
	UseCases         []string `json:"use_cases"`
	Integrations     []string `json:"integrations"`
	IsFeatured       *bool    `json:"is_featured"`
	IsActive         *bool    `json:"is_active"`
}

func (in CreateToolInput) toModel() models.Tool {
	tool := models.Tool{
		CategoryID:       in.CategoryID,
		Name:             in.Name,
		Slug:             in.Slug,
		Description:      in.Description,
		LongDescription:  in.LongDescription,
		WebsiteURL:       in.WebsiteURL,
		DocumentationURL: in.DocumentationURL,
		LogoURL:          in.LogoURL,
		PricingModel:     models.PricingFreemium,
		PriceDescription: in.PriceDescription,
		CompanyName:      in.CompanyName,
		MomentumScore:    in.MomentumScore,
		Features:         in.Features,
		UseCases:         in.UseCases,
		Integrations:     in.Integrations,
		IsActive:         true,
	}
	if in.PricingModel != "" {
		tool.PricingModel = models.PricingModel(in.PricingModel)
	}
	if in.PopularityTier != nil {
		tier := models.PopularityTier(*in.PopularityTier)
		tool.PopularityTier = &tier
	}
	if in.IsFeatured != nil {
		tool.IsFeatured = *in.IsFeatured
	}
	if in.IsActive != nil {
		tool.IsActive = *in.IsActive
	}
	return tool
}

func (in UpdateToolInput) apply(tool *models.Tool) {
	if in.CategoryID != nil {
		tool.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		tool.Name = *in.Name
	}
	if in.Description != nil {
		tool.Description = *in.Description
	}
	if in.LongDescription != nil {
		tool.LongDescription = *in.LongDescription
	}
	if in.WebsiteURL != nil {
		tool.WebsiteURL = *in.WebsiteURL
	}
	if in.DocumentationURL != nil {
		tool.DocumentationURL = in.DocumentationURL
	}
	if in.LogoURL != nil {
		tool.LogoURL = in.LogoURL
	}
	if in.PricingModel != nil {
		tool.PricingModel = models.PricingModel(*in.PricingModel)
	}
	if in.PriceDescription != nil {
		tool.PriceDescription = in.PriceDescription
	}
	if in.CompanyName != nil {
		tool.CompanyName = in.CompanyName
	}
	if in.PopularityTier != nil {
		tier := models.PopularityTier(*in.PopularityTier)
		tool.PopularityTier = &tier
	}
	if in.MomentumScore != nil {
		tool.MomentumScore = in.MomentumScore
	}
	if in.Features != nil {
		tool.Features = in.Features
	}
	if in.UseCases != nil {
		tool.UseCases = in.UseCases
	}
	if in.Integrations != nil {
		tool.Integrations = in.Integrations
	}
	if in.IsFeatured != nil {
		tool.IsFeatured = *in.IsFeatured
	}
	if in.IsActive != nil {
		tool.IsActive = *in.IsActive
	}
}
