package services

import (
	"errors"
	"testing"

	"github.com/rgriss/aimanifesto/internal/database"
	"github.com/rgriss/aimanifesto/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func seedApprovedRequest(t *testing.T, softwareName string) *models.ToolRequest {
	request := &models.ToolRequest{
		UserID:           1,
		UserInput:        softwareName,
		Status:           models.ToolRequestStatusApproved,
		ValidationResult: datatypes.JSON(`{"valid": true, "reason": "ok", "software_name": "` + softwareName + `"}`),
	}
	if err := database.DB.Create(request).Error; err != nil {
		t.Fatalf("failed to seed request: %v", err)
	}
	return request
}

const cursorResearchResponse = `Research complete. Here are my findings:
{
  "tool": {
    "name": "Cursor",
    "description": "AI-first code editor.",
    "long_description": "Cursor is a fork of VS Code with AI built in.",
    "website_url": "https://cursor.com",
    "documentation_url": "https://docs.cursor.com",
    "category_name": "AI Code Editors",
    "pricing_model": "SaaS",
    "price_description": "Free, Pro from $20/mo",
    "company_name": "Anysphere",
    "popularity_tier": "Well Known",
    "momentum_score": 5,
    "features": ["Tab completion", "Chat"],
    "use_cases": ["Coding"],
    "integrations": ["GitHub"]
  },
  "intelligence": {
    "founded_year": 2022,
    "company_status": "Private",
    "headquarters": "San Francisco, CA",
    "market_position": "Challenger",
    "customer_sentiment": "Very Positive",
    "funding_stage": "Series B",
    "target_market": ["individual", "enterprise", "galaxies"],
    "primary_competitors": ["GitHub Copilot"],
    "strengths": ["Fast"],
    "estimated_users": "1M-10M"
  }
}`

func TestProcessCompletesRequest(t *testing.T) {
	setupTestDB(t)
	seedCategory(t, models.UncategorizedName)
	category := seedCategory(t, "AI Code Editors")
	request := seedApprovedRequest(t, "Cursor")

	mock := &mockCompleter{response: cursorResearchResponse}
	svc := NewResearchService(mock, testConfig())

	svc.Process(request)

	assert.Equal(t, models.ToolRequestStatusCompleted, request.Status)
	assert.NotNil(t, request.ToolID)

	var tool models.Tool
	assert.NoError(t, database.DB.Preload("Intelligence").First(&tool, *request.ToolID).Error)
	assert.Equal(t, "Cursor", tool.Name)
	assert.Equal(t, "cursor", tool.Slug)
	assert.Equal(t, category.ID, tool.CategoryID)
	assert.Equal(t, models.PricingPaid, tool.PricingModel, "SaaS folds into paid")
	assert.NotNil(t, tool.PopularityTier)
	assert.Equal(t, models.PopularityWellKnown, *tool.PopularityTier)
	assert.True(t, tool.IsActive)

	intelligence := tool.Intelligence
	assert.NotNil(t, intelligence)
	assert.Equal(t, "private", *intelligence.CompanyStatus)
	assert.Equal(t, "challenger", *intelligence.MarketPosition)
	assert.Equal(t, "very_positive", *intelligence.CustomerSentiment)
	assert.Equal(t, "series_b", *intelligence.FundingStage)
	assert.Equal(t, models.StringList{"individual", "enterprise"}, intelligence.TargetMarket,
		"unknown target market entries are dropped")
	assert.Nil(t, intelligence.EstimatedUsers, "range-style enum values never normalize")
	assert.Greater(t, intelligence.DataCompletenessScore, 0)
	assert.NotNil(t, intelligence.LastResearchedAt)
}

func TestProcessMalformedResponseFailsRequest(t *testing.T) {
	setupTestDB(t)
	seedCategory(t, models.UncategorizedName)
	request := seedApprovedRequest(t, "Cursor")

	mock := &mockCompleter{response: "I cannot research that, sorry."}
	svc := NewResearchService(mock, testConfig())

	svc.Process(request)

	assert.Equal(t, models.ToolRequestStatusFailed, request.Status)
	assert.Nil(t, request.ToolID)
	assert.NotNil(t, request.RejectionReason)
	assert.Equal(t, "Research failed: failed to parse research response", *request.RejectionReason)

	var count int64
	database.DB.Model(&models.Tool{}).Count(&count)
	assert.Equal(t, int64(0), count, "a failed request must not create a tool")
}

func TestProcessAPIErrorFailsRequest(t *testing.T) {
	setupTestDB(t)
	seedCategory(t, models.UncategorizedName)
	request := seedApprovedRequest(t, "Cursor")

	mock := &mockCompleter{err: errors.New("rate limited")}
	svc := NewResearchService(mock, testConfig())

	svc.Process(request)

	assert.Equal(t, models.ToolRequestStatusFailed, request.Status)
	assert.Contains(t, *request.RejectionReason, "Research failed: research API call failed")
}

func TestProcessUnknownCategoryFallsBack(t *testing.T) {
	setupTestDB(t)
	fallback := seedCategory(t, models.UncategorizedName)
	request := seedApprovedRequest(t, "Cursor")

	mock := &mockCompleter{response: `{
		"tool": {
			"name": "Cursor",
			"description": "AI editor",
			"website_url": "https://cursor.com",
			"category_name": "Quantum Basket Weaving",
			"pricing_model": "free"
		},
		"intelligence": {}
	}`}
	svc := NewResearchService(mock, testConfig())

	svc.Process(request)

	assert.Equal(t, models.ToolRequestStatusCompleted, request.Status)

	var tool models.Tool
	assert.NoError(t, database.DB.First(&tool, *request.ToolID).Error)
	assert.Equal(t, fallback.ID, tool.CategoryID)
}

func TestProcessStatusWriteFailureEndsFailed(t *testing.T) {
	setupTestDB(t)
	seedCategory(t, models.UncategorizedName)
	seedCategory(t, "AI Code Editors")
	request := seedApprovedRequest(t, "Cursor")

	// Research succeeds, but the status write has nowhere to land
	assert.NoError(t, database.DB.Migrator().DropTable(&models.ToolRequest{}))

	mock := &mockCompleter{response: cursorResearchResponse}
	svc := NewResearchService(mock, testConfig())

	svc.Process(request)

	// The request must not be left looking approved
	assert.Equal(t, models.ToolRequestStatusFailed, request.Status)
	assert.NotNil(t, request.RejectionReason)
	assert.Contains(t, *request.RejectionReason, "Research failed: failed to persist completed status")
}

func TestProcessWithoutSoftwareNameFails(t *testing.T) {
	setupTestDB(t)
	seedCategory(t, models.UncategorizedName)

	request := &models.ToolRequest{
		UserID:           1,
		UserInput:        "mystery",
		Status:           models.ToolRequestStatusApproved,
		ValidationResult: datatypes.JSON(`{"valid": true, "reason": "ok", "software_name": null}`),
	}
	assert.NoError(t, database.DB.Create(request).Error)

	mock := &mockCompleter{response: cursorResearchResponse}
	svc := NewResearchService(mock, testConfig())

	svc.Process(request)

	assert.Equal(t, models.ToolRequestStatusFailed, request.Status)
	assert.Equal(t, 0, mock.calls, "research must not call the model without a name")
}
