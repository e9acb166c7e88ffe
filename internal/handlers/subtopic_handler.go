package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/mcq-bank-service/internal/services"
	"github.com/SAP-F-2025/mcq-bank-service/internal/utils"
)

type SubtopicHandler struct {
	BaseHandler
	service services.SubtopicService
}

func NewSubtopicHandler(service services.SubtopicService, logger utils.Logger) *SubtopicHandler {
	return &SubtopicHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListSubtopics returns the subtopics of a topic ordered by stSeq
// @Summary List subtopics of a topic
// @Tags topics
// @Produce json
// @Param tId path int true "Topic ID"
// @Success 200 {array} models.Subtopic
// @Router /topics/{tId}/subtopics [get]
func (h *SubtopicHandler) ListSubtopics(c *gin.Context) {
	tID, ok := paramInt(c, "tId")
	if !ok {
		return
	}

	subtopics, err := h.service.List(c.Request.Context(), tID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subtopics)
}

// CreateSubtopic adds a subtopic with the next free sequence number
// @Summary Create a subtopic
// @Tags admin
// @Accept json
// @Produce json
// @Param tId path int true "Topic ID"
// @Param request body services.CreateSubtopicRequest true "Subtopic titles"
// @Success 201 {object} models.Subtopic
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Topic not found"
// @Router /admin/topics/{tId}/subtopics [post]
func (h *SubtopicHandler) CreateSubtopic(c *gin.Context) {
	tID, ok := paramInt(c, "tId")
	if !ok {
		return
	}

	var req services.CreateSubtopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}

	subtopic, err := h.service.Create(c.Request.Context(), tID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, subtopic)
}

func (h *SubtopicHandler) UpdateSubtopic(c *gin.Context) {
	stID, ok := paramInt(c, "stId")
	if !ok {
		return
	}

	var req services.UpdateSubtopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}

	subtopic, err := h.service.Update(c.Request.Context(), stID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subtopic)
}

// DeleteSubtopic removes a subtopic. Question assignments are not touched.
func (h *SubtopicHandler) DeleteSubtopic(c *gin.Context) {
	stID, ok := paramInt(c, "stId")
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting subtopic", "st_id", stID)
	if err := h.service.Delete(c.Request.Context(), stID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
