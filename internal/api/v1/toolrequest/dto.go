package toolrequest

import (
	"time"

	"github.com/rgriss/aimanifesto/internal/models"
)

type SubmitInput struct {
	UserInput string `json:"user_input" binding:"required,min=3,max=1000"`
}

type SubmitResult struct {
	RequestID uint    `json:"request_id"`
	Status    string  `json:"status"`
	Valid     bool    `json:"valid"`
	Reason    *string `json:"reason,omitempty"`
}

type ToolRequestResponse struct {
	ID              uint      `json:"id"`
	UserInput       string    `json:"user_input"`
	Status          string    `json:"status"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	ToolID          *uint     `json:"tool_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toResponse(r models.ToolRequest) ToolRequestResponse {
	return ToolRequestResponse{
		ID:              r.ID,
		UserInput:       r.UserInput,
		Status:          string(r.Status),
		RejectionReason: r.RejectionReason,
		ToolID:          r.ToolID,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func toResponseList(requests []models.ToolRequest) []ToolRequestResponse {
	out := make([]ToolRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, toResponse(r))
	}
	return out
}
