package services

import (
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/rgriss/aimanifesto/internal/database"
	"github.com/rgriss/aimanifesto/internal/models"
	"github.com/stretchr/testify/assert"
)

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	mr := miniredis.RunT(t)
	database.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr
}

func TestSubmitToolRequestApproved(t *testing.T) {
	setupTestDB(t)
	mr := setupTestRedis(t)

	mock := &mockCompleter{response: `{"valid": true, "reason": "Real product.", "software_name": "Cursor"}`}
	svc := NewValidationService(mock, testConfig())

	request, verdict, err := SubmitToolRequest(42, "cursor editor", svc)

	assert.NoError(t, err)
	assert.True(t, verdict.Valid)
	assert.Equal(t, models.ToolRequestStatusApproved, request.Status)
	assert.Nil(t, request.RejectionReason)

	// The durable record is written before the queue entry
	var stored models.ToolRequest
	assert.NoError(t, database.DB.First(&stored, request.ID).Error)
	assert.Equal(t, uint(42), stored.UserID)
	assert.JSONEq(t,
		`{"valid": true, "reason": "Real product.", "software_name": "Cursor"}`,
		string(stored.ValidationResult))

	queued, err := mr.List(ToolRequestQueueKey)
	assert.NoError(t, err)
	assert.Equal(t, []string{strconv.Itoa(int(request.ID))}, queued)
}

func TestSubmitToolRequestRejected(t *testing.T) {
	setupTestDB(t)
	mr := setupTestRedis(t)

	mock := &mockCompleter{response: `{"valid": false, "reason": "Not a real software product.", "software_name": null}`}
	svc := NewValidationService(mock, testConfig())

	request, verdict, err := SubmitToolRequest(42, "my cat mittens", svc)

	assert.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Equal(t, models.ToolRequestStatusRejected, request.Status)
	assert.NotNil(t, request.RejectionReason)
	assert.Equal(t, "Not a real software product.", *request.RejectionReason)

	// Rejected requests are persisted for audit but never queued
	var count int64
	database.DB.Model(&models.ToolRequest{}).Count(&count)
	assert.Equal(t, int64(1), count)

	assert.False(t, mr.Exists(ToolRequestQueueKey))
}

func TestSubmitToolRequestValidationFailureIsRejection(t *testing.T) {
	setupTestDB(t)
	mr := setupTestRedis(t)

	mock := &mockCompleter{response: "no json here"}
	svc := NewValidationService(mock, testConfig())

	request, verdict, err := SubmitToolRequest(42, "some tool", svc)

	assert.NoError(t, err, "validation failures reject the request, they are not transport errors")
	assert.False(t, verdict.Valid)
	assert.Equal(t, models.ToolRequestStatusRejected, request.Status)
	assert.False(t, mr.Exists(ToolRequestQueueKey))
}

func TestSubmitToolRequestEnqueueFailure(t *testing.T) {
	setupTestDB(t)
	mr := setupTestRedis(t)
	mr.Close() // force the RPush to fail after the record is durable

	mock := &mockCompleter{response: `{"valid": true, "reason": "ok", "software_name": "Cursor"}`}
	svc := NewValidationService(mock, testConfig())

	request, verdict, err := SubmitToolRequest(42, "cursor editor", svc)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "request approved but failed to enqueue")
	assert.True(t, verdict.Valid)
	assert.NotNil(t, request)
	assert.Equal(t, models.ToolRequestStatusApproved, request.Status)
}

func TestGetToolRequestsFilters(t *testing.T) {
	setupTestDB(t)

	rejected := models.ToolRequestStatusRejected
	seed := []models.ToolRequest{
		{UserID: 1, UserInput: "a", Status: models.ToolRequestStatusApproved, ValidationResult: []byte(`{}`)},
		{UserID: 1, UserInput: "b", Status: rejected, ValidationResult: []byte(`{}`)},
		{UserID: 2, UserInput: "c", Status: models.ToolRequestStatusApproved, ValidationResult: []byte(`{}`)},
	}
	for i := range seed {
		assert.NoError(t, database.DB.Create(&seed[i]).Error)
	}

	all, total, err := GetToolRequests(1, 10, 0, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	mine, total, err := GetToolRequests(1, 10, 1, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, mine, 2)

	rejectedOnly, total, err := GetToolRequests(1, 10, 1, &rejected)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "b", rejectedOnly[0].UserInput)
}
