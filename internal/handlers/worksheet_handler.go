package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/mcq-bank-service/internal/services"
	"github.com/SAP-F-2025/mcq-bank-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type WorksheetHandler struct {
	BaseHandler
	service services.WorksheetService
}

func NewWorksheetHandler(service services.WorksheetService, logger utils.Logger) *WorksheetHandler {
	return &WorksheetHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetOptions returns the years, chapters and topics offered by the generator
// @Summary Worksheet options
// @Tags worksheets
// @Produce json
// @Param chapters query string false "Chapter numbers narrowing the topic list"
// @Success 200 {object} models.WorksheetOptions
// @Router /worksheets/options [get]
func (h *WorksheetHandler) GetOptions(c *gin.Context) {
	chapters, err := queryInts(c, "chapters")
	if err != nil {
		badRequest(c, "Invalid chapters", err)
		return
	}

	opts, err := h.service.Options(c.Request.Context(), chapters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, opts)
}

// GenerateWorksheet builds a worksheet with one section per selected topic
// @Summary Generate a worksheet
// @Tags worksheets
// @Accept json
// @Produce json
// @Param request body services.WorksheetRequest true "Worksheet selection"
// @Success 200 {object} models.Worksheet
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /worksheets [post]
func (h *WorksheetHandler) GenerateWorksheet(c *gin.Context) {
	var req services.WorksheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}

	ws, err := h.service.Generate(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ws)
}

// ExportWorksheet generates a worksheet and returns it as an xlsx download
func (h *WorksheetHandler) ExportWorksheet(c *gin.Context) {
	var req services.WorksheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}

	ws, err := h.service.Generate(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportXLSX(c.Request.Context(), ws, &buf); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(ws.Title)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func exportFilename(title string) string {
	name := strings.Join(strings.Fields(title), "_")
	if name == "" {
		name = "worksheet"
	}
	return name + ".xlsx"
}
