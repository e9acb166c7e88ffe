package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/mcq-bank-service/internal/services"
	"github.com/SAP-F-2025/mcq-bank-service/internal/utils"
)

type AssignmentHandler struct {
	BaseHandler
	service services.AssignmentService
}

func NewAssignmentHandler(service services.AssignmentService, logger utils.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetAssignments loads the topic, its subtopics and its questions for the assignment editor
// @Summary Load the assignment board of a topic
// @Tags admin
// @Produce json
// @Param tId path int true "Topic ID"
// @Success 200 {object} services.AssignmentBoard
// @Failure 404 {object} ErrorResponse "Topic not found"
// @Router /admin/topics/{tId}/assignments [get]
func (h *AssignmentHandler) GetAssignments(c *gin.Context) {
	tID, ok := paramInt(c, "tId")
	if !ok {
		return
	}

	board, err := h.service.Load(c.Request.Context(), tID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}

// SaveAssignments writes the pending qId to stIds map in one transaction
// @Summary Save subtopic assignments
// @Tags admin
// @Accept json
// @Produce json
// @Param tId path int true "Topic ID"
// @Param request body services.AssignmentSaveRequest true "Pending assignments"
// @Success 200 {array} models.Question
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Question not found"
// @Router /admin/topics/{tId}/assignments [put]
func (h *AssignmentHandler) SaveAssignments(c *gin.Context) {
	tID, ok := paramInt(c, "tId")
	if !ok {
		return
	}

	var req services.AssignmentSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Saving assignments", "t_id", tID, "count", len(req.Assignments))
	questions, err := h.service.SaveRequest(c.Request.Context(), tID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}
