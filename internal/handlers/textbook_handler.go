package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/mcq-bank-service/internal/services"
	"github.com/SAP-F-2025/mcq-bank-service/internal/utils"
)

type TextbookHandler struct {
	BaseHandler
	service services.TextbookService
}

func NewTextbookHandler(service services.TextbookService, logger utils.Logger) *TextbookHandler {
	return &TextbookHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *TextbookHandler) ListTextbooks(c *gin.Context) {
	textbooks, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, textbooks)
}

func (h *TextbookHandler) GetTextbook(c *gin.Context) {
	textbook, err := h.service.Get(c.Request.Context(), c.Param("tbId"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, textbook)
}

// GetChapters returns a textbook's chapters ordered by cNum
func (h *TextbookHandler) GetChapters(c *gin.Context) {
	chapters, err := h.service.Chapters(c.Request.Context(), c.Param("tbId"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, chapters)
}

// CreateDraft returns an unsaved textbook carrying a temporary id. Nothing is stored.
// @Summary Start a new textbook
// @Tags admin
// @Produce json
// @Success 201 {object} models.Textbook
// @Router /admin/textbooks/drafts [post]
func (h *TextbookHandler) CreateDraft(c *gin.Context) {
	c.JSON(http.StatusCreated, h.service.NewDraft())
}

// SaveTextbook creates a textbook when tbId is a draft id and updates it otherwise
// @Summary Save a textbook
// @Tags admin
// @Accept json
// @Produce json
// @Param tbId path string true "Current textbook ID (TEMP_ for drafts)"
// @Param request body services.SaveTextbookRequest true "Textbook"
// @Success 200 {object} models.Textbook
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Textbook not found"
// @Failure 409 {object} ErrorResponse "Textbook id already exists"
// @Router /admin/textbooks/{tbId} [put]
func (h *TextbookHandler) SaveTextbook(c *gin.Context) {
	currentID := c.Param("tbId")

	var req services.SaveTextbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Saving textbook", "tb_id", currentID)
	textbook, err := h.service.Save(c.Request.Context(), currentID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, textbook)
}

func (h *TextbookHandler) DeleteTextbook(c *gin.Context) {
	tbID := c.Param("tbId")

	h.LogRequest(c, "Deleting textbook", "tb_id", tbID)
	if err := h.service.Delete(c.Request.Context(), tbID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
