package tool_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rgriss/aimanifesto/internal/api/v1/admin/tool"
	"github.com/rgriss/aimanifesto/internal/database"
	"github.com/rgriss/aimanifesto/internal/models"
	"github.com/rgriss/aimanifesto/pkg/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*gin.Engine, *models.Category) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.Migrator().DropTable(&models.Category{}, &models.Tool{}, &models.ToolIntelligence{})
	if err := db.AutoMigrate(&models.Category{}, &models.Tool{}, &models.ToolIntelligence{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	database.DB = db
	logger.Log = zap.NewNop()

	category := &models.Category{Name: "Editors", Slug: "editors", IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	router := gin.New()
	tool.RegisterRoutes(router.Group("/api/v1/admin"))
	return router, category
}

func postTool(router *gin.Engine, payload map[string]interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/tools", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateTool(t *testing.T) {
	router, category := setupTest(t)

	w := postTool(router, map[string]interface{}{
		"category_id":    category.ID,
		"name":           "Cursor",
		"description":    "AI code editor",
		"website_url":    "https://cursor.com",
		"momentum_score": 4,
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var stored models.Tool
	assert.NoError(t, database.DB.Where("slug = ?", "cursor").First(&stored).Error)
	assert.Equal(t, 4, *stored.MomentumScore)
	assert.True(t, stored.IsActive)
}

func TestCreateToolMomentumScoreBounds(t *testing.T) {
	router, category := setupTest(t)

	base := func(score int) map[string]interface{} {
		return map[string]interface{}{
			"category_id":    category.ID,
			"name":           "Cursor",
			"description":    "AI code editor",
			"website_url":    "https://cursor.com",
			"momentum_score": score,
		}
	}

	// Momentum is a 1-5 scale
	assert.Equal(t, http.StatusBadRequest, postTool(router, base(0)).Code)
	assert.Equal(t, http.StatusBadRequest, postTool(router, base(6)).Code)
	assert.Equal(t, http.StatusCreated, postTool(router, base(1)).Code)
}

func TestCreateToolRequiresWebsiteURL(t *testing.T) {
	router, category := setupTest(t)

	w := postTool(router, map[string]interface{}{
		"category_id": category.ID,
		"name":        "Cursor",
		"description": "AI code editor",
		"website_url": "not a url",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
