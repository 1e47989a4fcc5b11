package models

import (
	"time"

	"gorm.io/datatypes"
)

// ToolRequestStatus defines the lifecycle state of a submission.
// Transitions are monotonic: rejected and approved are set synchronously
// at submission time; an approved request is mutated exactly once more by
// the research worker, to completed or failed.
type ToolRequestStatus string

const (
	ToolRequestStatusRejected  ToolRequestStatus = "rejected"
	ToolRequestStatusApproved  ToolRequestStatus = "approved"
	ToolRequestStatusCompleted ToolRequestStatus = "completed"
	ToolRequestStatusFailed    ToolRequestStatus = "failed"
)

// ToolRequest represents one user submission to the research pipeline
type ToolRequest struct {
	ID               uint              `gorm:"primarykey" json:"id"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	UserID           uint              `gorm:"index;not null" json:"user_id"`
	User             *User             `json:"-"`
	UserInput        string            `gorm:"not null" json:"user_input"`
	Status           ToolRequestStatus `gorm:"index;not null" json:"status"`
	ValidationResult datatypes.JSON    `gorm:"type:jsonb" json:"validation_result" swaggertype:"object"`
	RejectionReason  *string           `json:"rejection_reason"`
	ToolID           *uint             `json:"tool_id"`
	Tool             *Tool             `json:"tool,omitempty"`
}

// TableName overrides the table name
func (ToolRequest) TableName() string {
	return "tool_requests"
}
