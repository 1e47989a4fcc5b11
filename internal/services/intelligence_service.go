package services

import (
	"errors"

	"github.com/rgriss/aimanifesto/internal/database"
	"github.com/rgriss/aimanifesto/internal/models"
	"gorm.io/gorm"
)

// IntelligenceUpdate carries the fields an external client may set on a
// tool's intelligence record. Pointer fields distinguish "not sent" from
// "set to empty"; nil entries leave the stored value untouched.
type IntelligenceUpdate struct {
	FoundedYear            *int               `json:"founded_year" binding:"omitempty,min=1800"`
	ToolLaunchedYear       *int               `json:"tool_launched_year" binding:"omitempty,min=1990"`
	CompanyStatus          *string            `json:"company_status" binding:"omitempty,oneof=private public acquired subsidiary open_source"`
	StockTicker            *string            `json:"stock_ticker" binding:"omitempty,max=10"`
	ParentCompany          *string            `json:"parent_company"`
	AcquisitionDate        *string            `json:"acquisition_date"`
	Headquarters           *string            `json:"headquarters"`
	EmployeeCountRange     *string            `json:"employee_count_range" binding:"omitempty,oneof=1-10 11-50 51-200 201-500 501-1000 1000-5000 5000-10000 10000+"`
	EstimatedUsers         *string            `json:"estimated_users"`
	TargetMarket           *models.StringList `json:"target_market"`
	MarketPosition         *string            `json:"market_position" binding:"omitempty,oneof=market_leader major_player challenger niche_specialist emerging"`
	PrimaryCompetitors     *models.StringList `json:"primary_competitors"`
	MomentumNotes          *string            `json:"momentum_notes"`
	CustomerSentiment      *string            `json:"customer_sentiment" binding:"omitempty,oneof=very_positive positive mixed negative very_negative"`
	SentimentNotes         *string            `json:"sentiment_notes"`
	LastMajorUpdate        *string            `json:"last_major_update"`
	FundingStage           *string            `json:"funding_stage" binding:"omitempty,oneof=bootstrapped seed series_a series_b series_c+ public profitable acquired"`
	LatestFundingAmount    *string            `json:"latest_funding_amount"`
	LatestFundingDate      *string            `json:"latest_funding_date"`
	EstimatedAnnualRevenue *string            `json:"estimated_annual_revenue"`
	PricingIndividualCost  *int               `json:"pricing_individual_cost" binding:"omitempty,min=1,max=5"`
	PricingSMBCost         *int               `json:"pricing_smb_cost" binding:"omitempty,min=1,max=5"`
	PricingMidmarketCost   *int               `json:"pricing_midmarket_cost" binding:"omitempty,min=1,max=5"`
	PricingEnterpriseCost  *int               `json:"pricing_enterprise_cost" binding:"omitempty,min=1,max=5"`
	PricingCostNotes       *string            `json:"pricing_cost_notes"`
	PricingIndividualRange *string            `json:"pricing_individual_range"`
	PricingSMBRange        *string            `json:"pricing_smb_range"`
	PricingMidmarketRange  *string            `json:"pricing_midmarket_range"`
	PricingEnterpriseRange *string            `json:"pricing_enterprise_range"`
	KeyDifferentiators     *models.StringList `json:"key_differentiators"`
	Strengths              *models.StringList `json:"strengths"`
	Weaknesses             *models.StringList `json:"weaknesses"`
	MarketThreats          *string            `json:"market_threats"`
	GrowthOpportunities    *string            `json:"growth_opportunities"`
	StrategicNotes         *string            `json:"strategic_notes"`
	AnalystSummary         *string            `json:"analyst_summary"`
}

// GetIntelligenceByToolSlug returns the intelligence record for a tool,
// or (nil, nil) when the tool exists but has not been enriched yet.
func GetIntelligenceByToolSlug(toolSlug string) (*models.ToolIntelligence, error) {
	var tool models.Tool
	if err := database.DB.Where("slug = ?", toolSlug).Preload("Intelligence").First(&tool).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrToolNotFound
		}
		return nil, err
	}
	return tool.Intelligence, nil
}

// UpsertIntelligence applies an update to a tool's intelligence record,
// creating it when missing, and recomputes the completeness score in the
// same save. Scoring is an explicit step here, not a save hook, so it
// cannot retrigger itself.
func UpsertIntelligence(toolSlug string, update IntelligenceUpdate) (*models.ToolIntelligence, error) {
	var tool models.Tool
	if err := database.DB.Where("slug = ?", toolSlug).First(&tool).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrToolNotFound
		}
		return nil, err
	}

	var intelligence models.ToolIntelligence
	err := database.DB.Where("tool_id = ?", tool.ID).First(&intelligence).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		intelligence = models.ToolIntelligence{ToolID: tool.ID}
	}

	applyIntelligenceUpdate(&intelligence, update)
	intelligence.Rescore()

	if err := database.DB.Save(&intelligence).Error; err != nil {
		return nil, err
	}
	return &intelligence, nil
}

func applyIntelligenceUpdate(ti *models.ToolIntelligence, u IntelligenceUpdate) {
	if u.FoundedYear != nil {
		ti.FoundedYear = u.FoundedYear
	}
	if u.ToolLaunchedYear != nil {
		ti.ToolLaunchedYear = u.ToolLaunchedYear
	}
	if u.CompanyStatus != nil {
		ti.CompanyStatus = u.CompanyStatus
	}
	if u.StockTicker != nil {
		ti.StockTicker = u.StockTicker
	}
	if u.ParentCompany != nil {
		ti.ParentCompany = u.ParentCompany
	}
	if u.AcquisitionDate != nil {
		ti.AcquisitionDate = u.AcquisitionDate
	}
	if u.Headquarters != nil {
		ti.Headquarters = u.Headquarters
	}
	if u.EmployeeCountRange != nil {
		ti.EmployeeCountRange = u.EmployeeCountRange
	}
	if u.EstimatedUsers != nil {
		ti.EstimatedUsers = u.EstimatedUsers
	}
	if u.TargetMarket != nil {
		ti.TargetMarket = *u.TargetMarket
	}
	if u.MarketPosition != nil {
		ti.MarketPosition = u.MarketPosition
	}
	if u.PrimaryCompetitors != nil {
		ti.PrimaryCompetitors = *u.PrimaryCompetitors
	}
	if u.MomentumNotes != nil {
		ti.MomentumNotes = u.MomentumNotes
	}
	if u.CustomerSentiment != nil {
		ti.CustomerSentiment = u.CustomerSentiment
	}
	if u.SentimentNotes != nil {
		ti.SentimentNotes = u.SentimentNotes
	}
	if u.LastMajorUpdate != nil {
		ti.LastMajorUpdate = u.LastMajorUpdate
	}
	if u.FundingStage != nil {
		ti.FundingStage = u.FundingStage
	}
	if u.LatestFundingAmount != nil {
		ti.LatestFundingAmount = u.LatestFundingAmount
	}
	if u.LatestFundingDate != nil {
		ti.LatestFundingDate = u.LatestFundingDate
	}
	if u.EstimatedAnnualRevenue != nil {
		ti.EstimatedAnnualRevenue = u.EstimatedAnnualRevenue
	}
	if u.PricingIndividualCost != nil {
		ti.PricingIndividualCost = u.PricingIndividualCost
	}
	if u.PricingSMBCost != nil {
		ti.PricingSMBCost = u.PricingSMBCost
	}
	if u.PricingMidmarketCost != nil {
		ti.PricingMidmarketCost = u.PricingMidmarketCost
	}
	if u.PricingEnterpriseCost != nil {
		ti.PricingEnterpriseCost = u.PricingEnterpriseCost
	}
	if u.PricingCostNotes != nil {
		ti.PricingCostNotes = u.PricingCostNotes
	}
	if u.PricingIndividualRange != nil {
		ti.PricingIndividualRange = u.PricingIndividualRange
	}
	if u.PricingSMBRange != nil {
		ti.PricingSMBRange = u.PricingSMBRange
	}
	if u.PricingMidmarketRange != nil {
		ti.PricingMidmarketRange = u.PricingMidmarketRange
	}
	if u.PricingEnterpriseRange != nil {
		ti.PricingEnterpriseRange = u.PricingEnterpriseRange
	}
	if u.KeyDifferentiators != nil {
		ti.KeyDifferentiators = *u.KeyDifferentiators
	}
	if u.Strengths != nil {
		ti.Strengths = *u.Strengths
	}
	if u.Weaknesses != nil {
		ti.Weaknesses = *u.Weaknesses
	}
	if u.MarketThreats != nil {
		ti.MarketThreats = u.MarketThreats
	}
	if u.GrowthOpportunities != nil {
		ti.GrowthOpportunity = u.GrowthOpportunities
	}
	if u.StrategicNotes != nil {
		ti.StrategicNotes = u.StrategicNotes
	}
	if u.AnalystSummary != nil {
		ti.AnalystSummary = u.AnalystSummary
	}
}
