package toolrequest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rgriss/aimanifesto/config"
	"github.com/rgriss/aimanifesto/internal/api/v1/toolrequest"
	"github.com/rgriss/aimanifesto/internal/database"
	"github.com/rgriss/aimanifesto/internal/models"
	"github.com/rgriss/aimanifesto/internal/services"
	"github.com/rgriss/aimanifesto/pkg/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubCompleter struct {
	response string
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return s.response, nil
}

func setupTest(t *testing.T, modelResponse string) (*gin.Engine, *miniredis.Miniredis) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.Migrator().DropTable(&models.User{}, &models.Category{}, &models.Tool{}, &models.ToolIntelligence{}, &models.ToolRequest{})
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Tool{}, &models.ToolIntelligence{}, &models.ToolRequest{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	database.DB = db
	logger.Log = zap.NewNop()

	mr := miniredis.RunT(t)
	database.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	validator := services.NewValidationService(
		&stubCompleter{response: modelResponse},
		&config.Config{ValidationTimeout: time.Second},
	)

	router := gin.New()
	group := router.Group("/api/v1")
	// Stand-in for the auth middleware
	group.Use(func(c *gin.Context) {
		c.Set("user", models.User{ID: 7, Username: "tester", Role: "user"})
	})
	toolrequest.RegisterRoutes(group, validator)

	return router, mr
}

func postSubmission(router *gin.Engine, input string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"user_input": input})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tool-requests", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitApproved(t *testing.T) {
	router, mr := setupTest(t, `{"valid": true, "reason": "Real AI editor.", "software_name": "Cursor"}`)

	w := postSubmission(router, "cursor ai editor")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string                  `json:"message"`
		Data    toolrequest.SubmitResult `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Request approved! We are researching this tool now.", resp.Message)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, "approved", resp.Data.Status)

	queued, err := mr.List(services.ToolRequestQueueKey)
	assert.NoError(t, err)
	assert.Len(t, queued, 1)
}

func TestSubmitRejected(t *testing.T) {
	router, mr := setupTest(t, `{"valid": false, "reason": "Not a software product.", "software_name": null}`)

	w := postSubmission(router, "my neighbor's dog")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Message string                  `json:"message"`
		Data    toolrequest.SubmitResult `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Not a software product.", resp.Message)
	assert.False(t, resp.Data.Valid)
	assert.Equal(t, "rejected", resp.Data.Status)

	assert.False(t, mr.Exists(services.ToolRequestQueueKey))

	// The rejection is still recorded
	var count int64
	database.DB.Model(&models.ToolRequest{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSubmitRequiresInput(t *testing.T) {
	router, _ := setupTest(t, `{"valid": true, "reason": "ok", "software_name": "X"}`)

	w := postSubmission(router, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitInputBounds(t *testing.T) {
	router, _ := setupTest(t, `{"valid": true, "reason": "ok", "software_name": "X"}`)

	// Submissions shorter than 3 characters never reach the pipeline
	assert.Equal(t, http.StatusBadRequest, postSubmission(router, "ab").Code)
	assert.Equal(t, http.StatusOK, postSubmission(router, "abc").Code)

	// Long descriptions are fine up to 1000 characters
	assert.Equal(t, http.StatusOK, postSubmission(router, strings.Repeat("x", 600)).Code)
	assert.Equal(t, http.StatusOK, postSubmission(router, strings.Repeat("x", 1000)).Code)
	assert.Equal(t, http.StatusBadRequest, postSubmission(router, strings.Repeat("x", 1001)).Code)
}

func TestListOwnRequests(t *testing.T) {
	router, _ := setupTest(t, `{"valid": false, "reason": "Nope.", "software_name": null}`)

	// One request for the test user, one for someone else
	assert.NoError(t, database.DB.Create(&models.ToolRequest{
		UserID: 7, UserInput: "mine", Status: models.ToolRequestStatusRejected, ValidationResult: []byte(`{}`),
	}).Error)
	assert.NoError(t, database.DB.Create(&models.ToolRequest{
		UserID: 8, UserInput: "theirs", Status: models.ToolRequestStatusApproved, ValidationResult: []byte(`{}`),
	}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tool-requests", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Items []toolrequest.ToolRequestResponse `json:"items"`
			Total int64                             `json:"total"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Data.Total)
	assert.Len(t, resp.Data.Items, 1)
	assert.Equal(t, "mine", resp.Data.Items[0].UserInput)
}
