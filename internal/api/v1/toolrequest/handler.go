package toolrequest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rgriss/aimanifesto/internal/models"
	"github.com/rgriss/aimanifesto/internal/services"
	"github.com/rgriss/aimanifesto/internal/utils"
)

type Handler struct {
	validator *services.ValidationService
}

func NewHandler(validator *services.ValidationService) *Handler {
	return &Handler{validator: validator}
}

// Submit godoc
// @Summary Submit a tool for research
// @Description Validate a tool suggestion and, if approved, queue it for automated research
// @Tags tool-requests
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   input     body   SubmitInput  true  "Tool suggestion"
// @Success 200 {object} utils.Response{data=SubmitResult}
// @Failure 400 {object} utils.Response
// @Failure 422 {object} utils.Response{data=SubmitResult}
// @Failure 500 {object} utils.Response
// @Router /tool-requests [post]
func (h *Handler) Submit(c *gin.Context) {
	var input SubmitInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	u := c.MustGet("user").(models.User)

	request, verdict, err := services.SubmitToolRequest(u.ID, input.UserInput, h.validator)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to submit tool request"))
		return
	}

	result := SubmitResult{
		RequestID: request.ID,
		Status:    string(request.Status),
		Valid:     verdict.Valid,
	}

	if !verdict.Valid {
		result.Reason = &verdict.Reason
		c.JSON(http.StatusUnprocessableEntity, utils.NewResponse(http.StatusUnprocessableEntity, verdict.Reason, result))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Request approved! We are researching this tool now.", result))
}

// List godoc
// @Summary List my tool requests
// @Description List the authenticated user's tool requests, newest first
// @Tags tool-requests
// @Produce  json
// @Security ApiKeyAuth
// @Param   page      query  int     false "Page number"
// @Param   page_size query  int     false "Page size"
// @Param   status    query  string  false "Filter by status" Enums(rejected, approved, completed, failed)
// @Success 200 {object} utils.Response{data=[]ToolRequestResponse}
// @Failure 401 {object} utils.Response
// @Router /tool-requests [get]
func (h *Handler) List(c *gin.Context) {
	u := c.MustGet("user").(models.User)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	var status *models.ToolRequestStatus
	if s := c.Query("status"); s != "" {
		st := models.ToolRequestStatus(s)
		switch st {
		case models.ToolRequestStatusRejected, models.ToolRequestStatusApproved,
			models.ToolRequestStatusCompleted, models.ToolRequestStatusFailed:
			status = &st
		default:
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid status filter"))
			return
		}
	}

	requests, total, err := services.GetToolRequests(page, pageSize, u.ID, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch tool requests"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Tool requests retrieved successfully", gin.H{
		"items":     toResponseList(requests),
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	}))
}

// Show godoc
// @Summary Get one of my tool requests
// @Description Get a single tool request owned by the authenticated user
// @Tags tool-requests
// @Produce  json
// @Security ApiKeyAuth
// @Param   id   path   int  true  "Tool request ID"
// @Success 200 {object} utils.Response{data=ToolRequestResponse}
// @Failure 404 {object} utils.Response
// @Router /tool-requests/{id} [get]
func (h *Handler) Show(c *gin.Context) {
	u := c.MustGet("user").(models.User)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid request ID"))
		return
	}

	request, err := services.GetToolRequestByID(uint(id))
	if err != nil || request.UserID != u.ID {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Tool request not found"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Tool request retrieved successfully", toResponse(*request)))
}
