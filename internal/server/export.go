package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sheetforge/sheetforge/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleExport renders caller-supplied table JSON as an XLSX download. The
// body is tolerant: it needs items with particulars and values, nothing more.
func (s *Server) handleExport(c *gin.Context) {
	var table export.TableInput
	if err := c.ShouldBindJSON(&table); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a table-shaped JSON object"})
		return
	}

	data, err := s.exporter.RenderXLSX(table)
	if err != nil {
		s.logger.Error("export.render.failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render spreadsheet"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename=financial_data.xlsx`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
