package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rgriss/aimanifesto/internal/database"
	"github.com/rgriss/aimanifesto/internal/models"
	"github.com/rgriss/aimanifesto/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const ToolRequestQueueKey = "tool_request_queue"

// SubmitToolRequest runs the synchronous half of the pipeline: validate
// the submission, persist the request in its initial status and, when
// approved, enqueue it for the research worker. The returned verdict
// drives the HTTP response; err is only non-nil for store/queue failures.
func SubmitToolRequest(userID uint, userInput string, validator *ValidationService) (*models.ToolRequest, ValidationVerdict, error) {
	verdict := validator.Validate(userInput)

	verdictJSON, err := json.Marshal(verdict)
	if err != nil {
		return nil, verdict, err
	}

	request := models.ToolRequest{
		UserID:           userID,
		UserInput:        userInput,
		ValidationResult: datatypes.JSON(verdictJSON),
	}

	if !verdict.Valid {
		reason := verdict.Reason
		request.Status = models.ToolRequestStatusRejected
		request.RejectionReason = &reason

		if err := database.DB.Create(&request).Error; err != nil {
			return nil, verdict, err
		}
		return &request, verdict, nil
	}

	request.Status = models.ToolRequestStatusApproved
	if err := database.DB.Create(&request).Error; err != nil {
		return nil, verdict, err
	}

	// Enqueue only after the approved record is durable, so the worker can
	// always load what it pops
	if err := database.RedisClient.RPush(database.Ctx, ToolRequestQueueKey, request.ID).Err(); err != nil {
		return &request, verdict, fmt.Errorf("request approved but failed to enqueue: %v", err)
	}

	return &request, verdict, nil
}

// GetToolRequests retrieves tool requests with pagination and filtering
func GetToolRequests(page, pageSize int, userID uint, status *models.ToolRequestStatus) ([]models.ToolRequest, int64, error) {
	var requests []models.ToolRequest
	var total int64

	db := database.DB.Model(&models.ToolRequest{})

	if userID != 0 {
		db = db.Where("user_id = ?", userID)
	}

	if status != nil {
		db = db.Where("status = ?", *status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := db.Offset(offset).Limit(pageSize).Order("created_at desc").Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// GetToolRequestByID retrieves a single tool request by ID
func GetToolRequestByID(id uint) (*models.ToolRequest, error) {
	var request models.ToolRequest
	if err := database.DB.First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// StartWorker runs the research worker loop. It blocks on the Redis queue
// and hands each popped request to the research stage. Requests may be
// processed concurrently and out of order; ordering is only guaranteed
// within a single request (validation persisted before enqueue).
func StartWorker(research *ResearchService) {
	logger.Log.Info("Tool research worker started")
	for {
		// BLPop blocks until an item is available
		result, err := database.RedisClient.BLPop(context.Background(), 0*time.Second, ToolRequestQueueKey).Result()
		if err != nil {
			logger.Log.Error("Redis BLPop error", zap.Error(err))
			time.Sleep(1 * time.Second) // Prevent tight loop on error
			continue
		}

		// result[0] is the key, result[1] is the value
		requestID, err := strconv.Atoi(result[1])
		if err != nil {
			logger.Log.Warn("Invalid tool request ID on queue", zap.String("value", result[1]))
			continue
		}

		go processToolRequest(research, uint(requestID))
	}
}

func processToolRequest(research *ResearchService, requestID uint) {
	var request models.ToolRequest
	if err := database.DB.First(&request, requestID).Error; err != nil {
		logger.Log.Error("Queued tool request not found",
			zap.Uint("request_id", requestID),
			zap.Error(err))
		return
	}

	// Only approved requests are researchable; anything else on the queue
	// is a stale or duplicate entry
	if request.Status != models.ToolRequestStatusApproved {
		logger.Log.Warn("Skipping tool request in non-approved status",
			zap.Uint("request_id", requestID),
			zap.String("status", string(request.Status)))
		return
	}

	logger.Log.Info("Processing tool request", zap.Uint("request_id", requestID))
	research.Process(&request)
}
