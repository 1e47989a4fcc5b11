package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/rgriss/aimanifesto/config"
	"github.com/rgriss/aimanifesto/internal/database"
	"github.com/rgriss/aimanifesto/internal/llm"
	"github.com/rgriss/aimanifesto/internal/models"
	"github.com/rgriss/aimanifesto/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResearchService is the asynchronous enrichment stage. Process always
// terminates by moving its request to a terminal status; it never panics
// or returns an error to the worker loop. A failed request stays failed:
// re-running enrichment would create a duplicate tool, so there is no
// automatic retry.
type ResearchService struct {
	client  llm.Completer
	timeout time.Duration
}

func NewResearchService(client llm.Completer, cfg *config.Config) *ResearchService {
	return &ResearchService{
		client:  client,
		timeout: cfg.ResearchTimeout,
	}
}

const researchMaxTokens = 4096

// toolPayload and intelligencePayload are the decoded halves of the
// enrichment response. Decoding into typed structs makes malformed model
// output fail at this single boundary instead of null-propagating partial
// records downstream.
type researchPayload struct {
	Tool         toolPayload         `json:"tool"`
	Intelligence intelligencePayload `json:"intelligence"`
}

type toolPayload struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	LongDescription  string   `json:"long_description"`
	WebsiteURL       string   `json:"website_url"`
	DocumentationURL *string  `json:"documentation_url"`
	CategoryName     string   `json:"category_name"`
	PricingModel     string   `json:"pricing_model"`
	PriceDescription *string  `json:"price_description"`
	CompanyName      *string  `json:"company_name"`
	PopularityTier   *string  `json:"popularity_tier"`
	MomentumScore    *int     `json:"momentum_score"`
	Features         []string `json:"features"`
	UseCases         []string `json:"use_cases"`
	Integrations     []string `json:"integrations"`
}

type intelligencePayload struct {
	FoundedYear            *int     `json:"founded_year"`
	ToolLaunchedYear       *int     `json:"tool_launched_year"`
	CompanyStatus          *string  `json:"company_status"`
	StockTicker            *string  `json:"stock_ticker"`
	ParentCompany          *string  `json:"parent_company"`
	AcquisitionDate        *string  `json:"acquisition_date"`
	Headquarters           *string  `json:"headquarters"`
	EmployeeCountRange     *string  `json:"employee_count_range"`
	EstimatedUsers         *string  `json:"estimated_users"`
	TargetMarket           []string `json:"target_market"`
	MarketPosition         *string  `json:"market_position"`
	PrimaryCompetitors     []string `json:"primary_competitors"`
	MomentumNotes          *string  `json:"momentum_notes"`
	CustomerSentiment      *string  `json:"customer_sentiment"`
	SentimentNotes         *string  `json:"sentiment_notes"`
	LastMajorUpdate        *string  `json:"last_major_update"`
	FundingStage           *string  `json:"funding_stage"`
	LatestFundingAmount    *string  `json:"latest_funding_amount"`
	LatestFundingDate      *string  `json:"latest_funding_date"`
	EstimatedAnnualRevenue *string  `json:"estimated_annual_revenue"`
	PricingIndividualCost  *int     `json:"pricing_individual_cost"`
	PricingSMBCost         *int     `json:"pricing_smb_cost"`
	PricingMidmarketCost   *int     `json:"pricing_midmarket_cost"`
	PricingEnterpriseCost  *int     `json:"pricing_enterprise_cost"`
	PricingCostNotes       *string  `json:"pricing_cost_notes"`
	PricingIndividualRange *string  `json:"pricing_individual_range"`
	PricingSMBRange        *string  `json:"pricing_smb_range"`
	PricingMidmarketRange  *string  `json:"pricing_midmarket_range"`
	PricingEnterpriseRange *string  `json:"pricing_enterprise_range"`
	KeyDifferentiators     []string `json:"key_differentiators"`
	Strengths              []string `json:"strengths"`
	Weaknesses             []string `json:"weaknesses"`
	MarketThreats          *string  `json:"market_threats"`
	GrowthOpportunities    *string  `json:"growth_opportunities"`
	StrategicNotes         *string  `json:"strategic_notes"`
	AnalystSummary         *string  `json:"analyst_summary"`
}

// Process runs the enrichment stage for one approved request and moves it
// to completed or failed.
func (s *ResearchService) Process(request *models.ToolRequest) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("Tool research panicked",
				zap.Uint("request_id", request.ID),
				zap.Any("panic", r))
			s.markFailed(request, fmt.Errorf("%v", r))
		}
	}()

	tool, err := s.research(request)
	if err != nil {
		logger.Log.Error("Tool research failed",
			zap.Uint("request_id", request.ID),
			zap.Error(err))
		s.markFailed(request, err)
		return
	}

	request.Status = models.ToolRequestStatusCompleted
	request.ToolID = &tool.ID
	if err := database.DB.Save(request).Error; err != nil {
		logger.Log.Error("Failed to mark request completed",
			zap.Uint("request_id", request.ID),
			zap.Error(err))
		// The request must not stay approved with a tool already written;
		// failed is the honest terminal state when the status write breaks
		s.markFailed(request, fmt.Errorf("failed to persist completed status: %v", err))
		return
	}

	logger.Log.Info("Tool research completed",
		zap.Uint("request_id", request.ID),
		zap.String("tool", tool.Name),
		zap.String("slug", tool.Slug))
}

func (s *ResearchService) research(request *models.ToolRequest) (*models.Tool, error) {
	var verdict ValidationVerdict
	if err := json.Unmarshal(request.ValidationResult, &verdict); err != nil {
		return nil, fmt.Errorf("invalid validation result: %v", err)
	}
	if verdict.SoftwareName == nil || *verdict.SoftwareName == "" {
		return nil, errors.New("validation result carries no software name")
	}

	var categories []models.Category
	if err := database.DB.Order("sort_order, name").Find(&categories).Error; err != nil {
		return nil, err
	}

	categoryNames := make([]string, 0, len(categories))
	for _, c := range categories {
		categoryNames = append(categoryNames, c.Name)
	}

	prompt := buildResearchPrompt(*verdict.SoftwareName, strings.Join(categoryNames, ", "))

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	content, err := s.client.Complete(ctx, prompt, researchMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("research API call failed: %v", err)
	}

	block, err := llm.ExtractObject(content)
	if err != nil {
		return nil, errors.New("failed to parse research response")
	}

	var payload researchPayload
	if err := json.Unmarshal([]byte(block), &payload); err != nil {
		return nil, errors.New("failed to parse research response")
	}
	if payload.Tool.Name == "" {
		return nil, errors.New("failed to parse research response")
	}

	categoryID := resolveCategory(payload.Tool.CategoryName, categories)
	if categoryID == 0 {
		return nil, errors.New("no category available for tool")
	}

	tool := buildTool(payload.Tool, categoryID)
	intelligence := buildIntelligence(payload.Intelligence)

	// The two writes commit or fail together so a crash can never leave a
	// tool without its intelligence record
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tool).Error; err != nil {
			return err
		}
		intelligence.ToolID = tool.ID
		intelligence.Rescore()
		return tx.Create(intelligence).Error
	})
	if err != nil {
		return nil, err
	}

	return tool, nil
}

func (s *ResearchService) markFailed(request *models.ToolRequest, cause error) {
	reason := "Research failed: " + cause.Error()
	request.Status = models.ToolRequestStatusFailed
	request.RejectionReason = &reason
	if err := database.DB.Save(request).Error; err != nil {
		logger.Log.Error("Failed to mark request failed",
			zap.Uint("request_id", request.ID),
			zap.Error(err))
	}
}

// resolveCategory maps the researched category name to a catalog category
// by exact name match, falling back to Uncategorized and then to the first
// category. Returns 0 only when the catalog has no categories at all.
func resolveCategory(name string, categories []models.Category) uint {
	for _, c := range categories {
		if c.Name == name {
			return c.ID
		}
	}
	for _, c := range categories {
		if c.Name == models.UncategorizedName {
			return c.ID
		}
	}
	if len(categories) > 0 {
		return categories[0].ID
	}
	return 0
}

func buildTool(p toolPayload, categoryID uint) *models.Tool {
	tool := &models.Tool{
		CategoryID:       categoryID,
		Name:             p.Name,
		Slug:             slug.Make(p.Name),
		Description:      p.Description,
		LongDescription:  p.LongDescription,
		WebsiteURL:       p.WebsiteURL,
		DocumentationURL: p.DocumentationURL,
		PricingModel:     NormalizePricingModel(p.PricingModel),
		PriceDescription: p.PriceDescription,
		CompanyName:      p.CompanyName,
		MomentumScore:    p.MomentumScore,
		Features:         models.StringList(p.Features),
		UseCases:         models.StringList(p.UseCases),
		Integrations:     models.StringList(p.Integrations),
		IsActive:         true,
	}

	if normalized := NormalizeEnum(p.PopularityTier, PopularityTierValues); normalized != nil {
		tier := models.PopularityTier(*normalized)
		tool.PopularityTier = &tier
	}

	return tool
}

func buildIntelligence(p intelligencePayload) *models.ToolIntelligence {
	now := time.Now()
	return &models.ToolIntelligence{
		FoundedYear:            p.FoundedYear,
		ToolLaunchedYear:       p.ToolLaunchedYear,
		CompanyStatus:          NormalizeEnum(p.CompanyStatus, CompanyStatusValues),
		StockTicker:            p.StockTicker,
		ParentCompany:          p.ParentCompany,
		AcquisitionDate:        p.AcquisitionDate,
		Headquarters:           p.Headquarters,
		EmployeeCountRange:     NormalizeEnum(p.EmployeeCountRange, EmployeeCountRangeValues),
		EstimatedUsers:         NormalizeEnum(p.EstimatedUsers, EstimatedUsersValues),
		TargetMarket:           normalizeEnumList(p.TargetMarket, TargetMarketValues),
		MarketPosition:         NormalizeEnum(p.MarketPosition, MarketPositionValues),
		PrimaryCompetitors:     models.StringList(p.PrimaryCompetitors),
		MomentumNotes:          p.MomentumNotes,
		CustomerSentiment:      NormalizeEnum(p.CustomerSentiment, CustomerSentimentValues),
		SentimentNotes:         p.SentimentNotes,
		LastMajorUpdate:        p.LastMajorUpdate,
		FundingStage:           NormalizeEnum(p.FundingStage, FundingStageValues),
		LatestFundingAmount:    p.LatestFundingAmount,
		LatestFundingDate:      p.LatestFundingDate,
		EstimatedAnnualRevenue: NormalizeEnum(p.EstimatedAnnualRevenue, EstimatedAnnualRevenueValues),
		PricingIndividualCost:  p.PricingIndividualCost,
		PricingSMBCost:         p.PricingSMBCost,
		PricingMidmarketCost:   p.PricingMidmarketCost,
		PricingEnterpriseCost:  p.PricingEnterpriseCost,
		PricingCostNotes:       p.PricingCostNotes,
		PricingIndividualRange: p.PricingIndividualRange,
		PricingSMBRange:        p.PricingSMBRange,
		PricingMidmarketRange:  p.PricingMidmarketRange,
		PricingEnterpriseRange: p.PricingEnterpriseRange,
		KeyDifferentiators:     models.StringList(p.KeyDifferentiators),
		Strengths:              models.StringList(p.Strengths),
		Weaknesses:             models.StringList(p.Weaknesses),
		MarketThreats:          p.MarketThreats,
		GrowthOpportunity:      p.GrowthOpportunities,
		StrategicNotes:         p.StrategicNotes,
		AnalystSummary:         p.AnalystSummary,
		LastResearchedAt:       &now,
	}
}

func buildResearchPrompt(softwareName, categoriesList string) string {
	return fmt.Sprintf(`You are a comprehensive AI software researcher. Research "%s" thoroughly.

Categories: [%s]

Output JSON with "tool" and "intelligence" sections:
{
  "tool": {
    "name": "Canonical Name",
    "description": "1-2 sentence pitch",
    "long_description": "2-3 paragraph overview",
    "website_url": "https://...",
    "documentation_url": "https://... or null",
    "category_name": "Match from list or Uncategorized",
    "pricing_model": "free|freemium|paid|enterprise",
    "price_description": "e.g., 'Free, Pro from $20/mo'",
    "company_name": "Parent company",
    "popularity_tier": "mainstream|well_known|growing|niche|emerging",
    "momentum_score": 1-5,
    "features": ["Feature 1", "Feature 2"],
    "use_cases": ["Use 1", "Use 2"],
    "integrations": ["Slack", "API"]
  },
  "intelligence": {
    "founded_year": 2021,
    "tool_launched_year": 2022,
    "company_status": "private|public|acquired|subsidiary|open_source",
    "headquarters": "City, State",
    "employee_count_range": "1-10|11-50|51-200|201-500|501-1000|1000-5000|5000-10000|10000+",
    "estimated_users": "< 10K|10K-100K|100K-1M|1M-10M|10M-50M|50M-100M|100M+",
    "target_market": ["individual", "small_business", "mid_market", "enterprise"],
    "market_position": "market_leader|major_player|challenger|niche_specialist|emerging",
    "primary_competitors": ["Comp 1", "Comp 2"],
    "momentum_notes": "Trajectory explanation",
    "customer_sentiment": "very_positive|positive|mixed|negative|very_negative",
    "sentiment_notes": "Key drivers",
    "last_major_update": "Recent update",
    "funding_stage": "bootstrapped|seed|series_a|series_b|series_c+|public|profitable|acquired",
    "latest_funding_amount": "$50M",
    "latest_funding_date": "2023-11",
    "estimated_annual_revenue": "< $1M|$1M-$10M|$10M-$50M|$50M-$100M|$100M-$500M|$500M-$1B|$1B+",
    "pricing_individual_cost": 1-5,
    "pricing_smb_cost": 1-5,
    "pricing_midmarket_cost": 1-5,
    "pricing_enterprise_cost": 1-5,
    "pricing_cost_notes": "Value analysis",
    "pricing_individual_range": "$0-20/mo",
    "pricing_smb_range": "$600-2,250/mo",
    "pricing_midmarket_range": "$15K-40K/mo",
    "pricing_enterprise_range": "$270K+/yr",
    "key_differentiators": ["Diff 1", "Diff 2"],
    "strengths": ["Strength 1", "Strength 2"],
    "weaknesses": ["Weak 1", "Weak 2"],
    "market_threats": "Text description of threats",
    "growth_opportunities": "Text description of opportunities",
    "strategic_notes": "Strategic positioning",
    "analyst_summary": "Executive summary"
  }
}

Be thorough. Use null for unknown fields.`, softwareName, categoriesList)
}
