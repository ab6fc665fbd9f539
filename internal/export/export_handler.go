package export

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	service *ExportService
}

func NewExportHandler(s *ExportService) *ExportHandler {
	return &ExportHandler{service: s}
}

func (h *ExportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/assets/export", h.ExportCSV)
	router.POST("/assets/export-xlsx", h.ExportXLSX)
}

type exportRequest struct {
	IDs          []int    `json:"ids"`
	ExtraColumns []string `json:"extra_columns"`
}

func (h *ExportHandler) ExportCSV(c *gin.Context) {
	table, ok := h.buildTable(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, table); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="assets.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	table, ok := h.buildTable(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, table); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="assets.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *ExportHandler) buildTable(c *gin.Context) (*Table, bool) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return nil, false
	}

	table, err := h.service.BuildTable(req.IDs, req.ExtraColumns)
	if err != nil {
		var unknownColumn *UnknownColumnError
		if errors.As(err, &unknownColumn) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown export column: " + unknownColumn.Key})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export", "details": err.Error()})
		return nil, false
	}

	return table, true
}
