package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
	"github.com/SAP-F-2025/mcq-bank-service/internal/selection"
	"github.com/SAP-F-2025/mcq-bank-service/internal/services"
	"github.com/SAP-F-2025/mcq-bank-service/internal/utils"
)

type QuestionHandler struct {
	BaseHandler
	service services.QuestionService
}

func NewQuestionHandler(service services.QuestionService, logger utils.Logger) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// BrowseQuestions lists questions filtered by years and topics, grouped and sorted
// @Summary Browse questions
// @Tags questions
// @Produce json
// @Param years query string false "Exam years, repeated or comma separated"
// @Param topics query string false "Topic IDs, repeated or comma separated"
// @Param groupBy query string false "topic (default) or year"
// @Param sortBy query string false "year-qnum (default) or hkPercent"
// @Param lang query string false "en (default) or zh"
// @Success 200 {object} services.BrowseResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /questions [get]
func (h *QuestionHandler) BrowseQuestions(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		badRequest(c, "Invalid filter", err)
		return
	}
	display, err := parseDisplay(c)
	if err != nil {
		badRequest(c, "Invalid display settings", err)
		return
	}

	resp, err := h.service.Browse(c.Request.Context(), criteria, display)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	qID, err := strconv.ParseInt(c.Param("qId"), 10, 64)
	if err != nil {
		badRequest(c, "Invalid qId", err)
		return
	}
	display, err := parseDisplay(c)
	if err != nil {
		badRequest(c, "Invalid display settings", err)
		return
	}

	view, err := h.service.Get(c.Request.Context(), qID, display)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListYears returns the exam years present, newest first
func (h *QuestionHandler) ListYears(c *gin.Context) {
	years, err := h.service.Years(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, years)
}

// ListByYear returns one paper's questions in question-number order
func (h *QuestionHandler) ListByYear(c *gin.Context) {
	year, ok := paramInt(c, "year")
	if !ok {
		return
	}
	display, err := parseDisplay(c)
	if err != nil {
		badRequest(c, "Invalid display settings", err)
		return
	}

	views, err := h.service.ByYear(c.Request.Context(), year, display)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

func parseCriteria(c *gin.Context) (selection.Criteria, error) {
	years, err := queryInts(c, "years")
	if err != nil {
		return selection.Criteria{}, err
	}
	topics, err := queryInts(c, "topics")
	if err != nil {
		return selection.Criteria{}, err
	}
	return selection.Criteria{
		Years:    years,
		TopicIDs: topics,
		GroupBy:  selection.GroupMode(c.Query("groupBy")),
		SortBy:   selection.SortMode(c.Query("sortBy")),
	}, nil
}

// parseDisplay starts from every toggle on and applies the query overrides.
func parseDisplay(c *gin.Context) (models.DisplaySettings, error) {
	display := models.DefaultDisplaySettings()
	if err := c.ShouldBindQuery(&display); err != nil {
		return display, err
	}
	display.Language = models.ParseLanguage(string(display.Language))
	return display, nil
}
