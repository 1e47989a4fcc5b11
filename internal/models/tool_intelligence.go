package models

import (
	"math"
	"time"
)

// ToolIntelligence holds the business/market enrichment for a tool,
// one-to-one with Tool. Every enrichment field is optional; enum-typed
// fields hold normalized values only (see services.NormalizeEnum) or null.
type ToolIntelligence struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ToolID    uint      `gorm:"uniqueIndex;not null" json:"tool_id"`

	// Company metadata
	FoundedYear        *int    `json:"founded_year"`
	ToolLaunchedYear   *int    `json:"tool_launched_year"`
	CompanyStatus      *string `json:"company_status"`
	StockTicker        *string `json:"stock_ticker"`
	ParentCompany      *string `json:"parent_company"`
	AcquisitionDate    *string `json:"acquisition_date"`
	Headquarters       *string `json:"headquarters"`
	EmployeeCountRange *string `json:"employee_count_range"`

	// Market position
	EstimatedUsers     *string    `json:"estimated_users"`
	TargetMarket       StringList `gorm:"type:jsonb" json:"target_market"`
	MarketPosition     *string    `json:"market_position"`
	PrimaryCompetitors StringList `gorm:"type:jsonb" json:"primary_competitors"`

	// Momentum & sentiment
	MomentumNotes     *string `json:"momentum_notes"`
	CustomerSentiment *string `json:"customer_sentiment"`
	SentimentNotes    *string `json:"sentiment_notes"`
	LastMajorUpdate   *string `json:"last_major_update"`

	// Financial
	FundingStage           *string `json:"funding_stage"`
	LatestFundingAmount    *string `json:"latest_funding_amount"`
	LatestFundingDate      *string `json:"latest_funding_date"`
	EstimatedAnnualRevenue *string `json:"estimated_annual_revenue"`

	// Pricing complexity (1-5 cost scores plus free-text ranges)
	PricingIndividualCost  *int    `json:"pricing_individual_cost"`
	PricingSMBCost         *int    `json:"pricing_smb_cost"`
	PricingMidmarketCost   *int    `json:"pricing_midmarket_cost"`
	PricingEnterpriseCost  *int    `json:"pricing_enterprise_cost"`
	PricingCostNotes       *string `json:"pricing_cost_notes"`
	PricingIndividualRange *string `json:"pricing_individual_range"`
	PricingSMBRange        *string `json:"pricing_smb_range"`
	PricingMidmarketRange  *string `json:"pricing_midmarket_range"`
	PricingEnterpriseRange *string `json:"pricing_enterprise_range"`

	// Competitive intelligence
	KeyDifferentiators StringList `gorm:"type:jsonb" json:"key_differentiators"`
	Strengths          StringList `gorm:"type:jsonb" json:"strengths"`
	Weaknesses         StringList `gorm:"type:jsonb" json:"weaknesses"`
	MarketThreats      *string    `json:"market_threats"`
	GrowthOpportunity  *string    `gorm:"column:growth_opportunities" json:"growth_opportunities"`

	// Analyst notes
	StrategicNotes *string `json:"strategic_notes"`
	AnalystSummary *string `json:"analyst_summary"`

	// Metadata
	DataCompletenessScore int        `gorm:"default:0" json:"data_completeness_score"`
	LastResearchedAt      *time.Time `json:"last_researched_at"`
}

// TableName overrides the table name
func (ToolIntelligence) TableName() string {
	return "tool_intelligence"
}

// scorableFields is the fixed list of fields counted by the completeness
// score. Identifiers, timestamps, last_researched_at and the score itself
// are excluded. Kept as an explicit list, not reflection, so the scored
// set stays stable across schema changes.
func (ti *ToolIntelligence) scorableFields() []interface{} {
	return []interface{}{
		ti.FoundedYear,
		ti.ToolLaunchedYear,
		ti.CompanyStatus,
		ti.StockTicker,
		ti.ParentCompany,
		ti.AcquisitionDate,
		ti.Headquarters,
		ti.EmployeeCountRange,
		ti.EstimatedUsers,
		ti.TargetMarket,
		ti.MarketPosition,
		ti.PrimaryCompetitors,
		ti.MomentumNotes,
		ti.CustomerSentiment,
		ti.SentimentNotes,
		ti.LastMajorUpdate,
		ti.FundingStage,
		ti.LatestFundingAmount,
		ti.LatestFundingDate,
		ti.EstimatedAnnualRevenue,
		ti.PricingIndividualCost,
		ti.PricingSMBCost,
		ti.PricingMidmarketCost,
		ti.PricingEnterpriseCost,
		ti.PricingCostNotes,
		ti.PricingIndividualRange,
		ti.PricingSMBRange,
		ti.PricingMidmarketRange,
		ti.PricingEnterpriseRange,
		ti.KeyDifferentiators,
		ti.Strengths,
		ti.Weaknesses,
		ti.MarketThreats,
		ti.GrowthOpportunity,
		ti.StrategicNotes,
		ti.AnalystSummary,
	}
}

// CompletenessScore returns the percentage of scorable fields carrying
// meaningful data, rounded to the nearest integer. A field counts as
// filled when it is non-null, a non-empty string or a non-empty list.
func (ti *ToolIntelligence) CompletenessScore() int {
	fields := ti.scorableFields()
	if len(fields) == 0 {
		return 0
	}

	filled := 0
	for _, v := range fields {
		if fieldFilled(v) {
			filled++
		}
	}

	return int(math.Round(float64(filled) / float64(len(fields)) * 100))
}

func fieldFilled(v interface{}) bool {
	switch val := v.(type) {
	case *int:
		return val != nil
	case *string:
		return val != nil && *val != ""
	case StringList:
		return len(val) > 0
	default:
		return false
	}
}

// Rescore recomputes the completeness score in place. Callers persist the
// record afterwards in a single save; there is no save hook involved, so
// rescoring can never retrigger itself.
func (ti *ToolIntelligence) Rescore() {
	ti.DataCompletenessScore = ti.CompletenessScore()
}
