package services

import (
	"context"
	"testing"
	"time"

	"github.com/rgriss/aimanifesto/config"
	"github.com/rgriss/aimanifesto/internal/database"
	"github.com/rgriss/aimanifesto/internal/llm"
	"github.com/rgriss/aimanifesto/internal/models"
	"github.com/rgriss/aimanifesto/pkg/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// mockCompleter stands in for the Anthropic client in tests
type mockCompleter struct {
	response string
	err      error
	calls    int
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func setupTestDB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	// Shared-cache memory DB survives across tests, so reset the schema
	db.Migrator().DropTable(
		&models.User{},
		&models.Category{},
		&models.Tool{},
		&models.ToolIntelligence{},
		&models.ToolRequest{},
	)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tool{},
		&models.ToolIntelligence{},
		&models.ToolRequest{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	database.DB = db
	logger.Log = zap.NewNop()
}

func testConfig() *config.Config {
	return &config.Config{
		ValidationTimeout: time.Second,
		ResearchTimeout:   time.Second,
	}
}

func seedTool(t *testing.T, name string, categoryID uint) *models.Tool {
	tool := &models.Tool{
		CategoryID:  categoryID,
		Name:        name,
		Description: "seeded",
		WebsiteURL:  "https://example.com",
		IsActive:    true,
	}
	if err := CreateTool(tool); err != nil {
		t.Fatalf("failed to seed tool: %v", err)
	}
	return tool
}

func seedCategory(t *testing.T, name string) *models.Category {
	category := &models.Category{Name: name, IsActive: true}
	if err := CreateCategory(category); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return category
}

func TestValidateApproved(t *testing.T) {
	setupTestDB(t)

	mock := &mockCompleter{response: `Sure thing, here is my verdict:
{"valid": true, "reason": "Cursor is a real AI code editor.", "software_name": "Cursor"}`}
	svc := NewValidationService(mock, testConfig())

	verdict := svc.Validate("cursor ai editor")

	assert.True(t, verdict.Valid)
	assert.NotNil(t, verdict.SoftwareName)
	assert.Equal(t, "Cursor", *verdict.SoftwareName)
	assert.Equal(t, 1, mock.calls)
}

func TestValidateMissingAPIKeyFailsClosed(t *testing.T) {
	setupTestDB(t)

	mock := &mockCompleter{err: llm.ErrMissingAPIKey}
	svc := NewValidationService(mock, testConfig())

	verdict := svc.Validate("some tool")

	assert.False(t, verdict.Valid)
	assert.Equal(t, "Validation service unavailable (missing config).", verdict.Reason)
}

func TestValidateAPIErrorFailsClosed(t *testing.T) {
	setupTestDB(t)

	mock := &mockCompleter{err: context.DeadlineExceeded}
	svc := NewValidationService(mock, testConfig())

	verdict := svc.Validate("some tool")

	assert.False(t, verdict.Valid)
	assert.Equal(t, "Validation service error.", verdict.Reason)
}

func TestValidateNonJSONResponseFailsClosed(t *testing.T) {
	setupTestDB(t)

	mock := &mockCompleter{response: "I am not able to answer in JSON today."}
	svc := NewValidationService(mock, testConfig())

	verdict := svc.Validate("some tool")

	assert.False(t, verdict.Valid)
	assert.Equal(t, "Invalid response format from validator.", verdict.Reason)
}

func TestValidateMalformedJSONFailsClosed(t *testing.T) {
	setupTestDB(t)

	mock := &mockCompleter{response: `{"valid": "not a boolean at all", "reason": 42}`}
	svc := NewValidationService(mock, testConfig())

	verdict := svc.Validate("some tool")

	assert.False(t, verdict.Valid)
	assert.Equal(t, "Failed to parse validation response.", verdict.Reason)
}

func TestValidateLocalDuplicateSkipsModelCall(t *testing.T) {
	setupTestDB(t)
	category := seedCategory(t, "Editors")
	seedTool(t, "Adobe Photoshop", category.ID)

	mock := &mockCompleter{response: `{"valid": true, "reason": "ok", "software_name": "Photoshop"}`}
	svc := NewValidationService(mock, testConfig())

	verdict := svc.Validate("photoshop")

	assert.False(t, verdict.Valid)
	assert.Equal(t, "Adobe Photoshop is already in the catalog.", verdict.Reason)
	assert.Equal(t, 0, mock.calls, "duplicate check must short-circuit the model call")
}

func TestFindDuplicate(t *testing.T) {
	existing := []string{"Adobe Photoshop", "Notion"}

	assert.Equal(t, "Adobe Photoshop", findDuplicate("photoshop", existing))
	assert.Equal(t, "Adobe Photoshop", findDuplicate("Adobe Photoshop CC 2024", existing))
	assert.Equal(t, "Notion", findDuplicate("NOTION", existing))
	assert.Equal(t, "", findDuplicate("Figma", existing))
	assert.Equal(t, "", findDuplicate("   ", existing))
}
