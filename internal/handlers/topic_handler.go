package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/mcq-bank-service/internal/services"
	"github.com/SAP-F-2025/mcq-bank-service/internal/utils"
)

type TopicHandler struct {
	BaseHandler
	service services.TopicService
}

func NewTopicHandler(service services.TopicService, logger utils.Logger) *TopicHandler {
	return &TopicHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListTopics returns every topic
// @Summary List topics
// @Description List all topics ordered by aristo chapter then tId
// @Tags topics
// @Produce json
// @Success 200 {array} models.Topic
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /topics [get]
func (h *TopicHandler) ListTopics(c *gin.Context) {
	topics, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, topics)
}

// GetTopic retrieves a topic by tId
// @Summary Get a topic
// @Tags topics
// @Produce json
// @Param tId path int true "Topic ID"
// @Success 200 {object} models.Topic
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /topics/{tId} [get]
func (h *TopicHandler) GetTopic(c *gin.Context) {
	tID, ok := paramInt(c, "tId")
	if !ok {
		return
	}

	topic, err := h.service.Get(c.Request.Context(), tID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, topic)
}

// SaveTopics saves the edited topic table
// @Summary Save topic edits
// @Description Write only the fields that differ from the stored topics, in one transaction
// @Tags admin
// @Accept json
// @Produce json
// @Param request body services.TopicSaveRequest true "Edited topics"
// @Success 200 {object} models.SaveResult
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Unknown topic"
// @Router /admin/topics [put]
func (h *TopicHandler) SaveTopics(c *gin.Context) {
	h.LogRequest(c, "Saving topic edits")

	var req services.TopicSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}

	result, err := h.service.SaveEdits(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
