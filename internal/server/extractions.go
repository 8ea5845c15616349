package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sheetforge/sheetforge/internal/common"
	"github.com/sheetforge/sheetforge/internal/entity"
	"github.com/sheetforge/sheetforge/internal/repository"
)

type recordSummary struct {
	ID            uint                    `json:"id"`
	Filename      string                  `json:"filename"`
	Timestamp     time.Time               `json:"timestamp"`
	Accuracy      float64                 `json:"accuracy"`
	LineItemCount int                     `json:"line_item_count"`
	Currency      string                  `json:"currency"`
	Units         string                  `json:"units"`
	Table         *entity.IncomeStatement `json:"table,omitempty"`
}

func summarize(rec *entity.ExtractionRecord) recordSummary {
	return recordSummary{
		ID:            rec.ID,
		Filename:      rec.Filename,
		Timestamp:     rec.Timestamp,
		Accuracy:      rec.Accuracy,
		LineItemCount: rec.LineItemCount,
		Currency:      rec.Currency,
		Units:         rec.Units,
	}
}

// handleListExtractions returns all records newest first, summary fields
// only; ?include_table=1 embeds each record's reconstructed table.
func (s *Server) handleListExtractions(c *gin.Context) {
	includeTable := false
	switch c.Query("include_table") {
	case "1", "true", "yes":
		includeTable = true
	}

	recs, err := s.records.List(c.Request.Context())
	if err != nil {
		s.logger.Error("extractions.list.failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list extractions"})
		return
	}

	out := make([]recordSummary, 0, len(recs))
	for i := range recs {
		sum := summarize(&recs[i])
		if includeTable {
			stmt, err := repository.DecodeStatement(&recs[i])
			if err != nil {
				s.logger.Error("extractions.list.decode_failed", "id", recs[i].ID, "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode stored table"})
				return
			}
			sum.Table = &stmt
		}
		out = append(out, sum)
	}
	c.JSON(http.StatusOK, out)
}

// handleGetExtraction returns one record with its full reconstructed table.
func (s *Server) handleGetExtraction(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	rec, err := s.records.GetByID(c.Request.Context(), uint(id))
	if errors.Is(err, common.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "extraction not found"})
		return
	}
	if err != nil {
		s.logger.Error("extractions.get.failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load extraction"})
		return
	}

	stmt, err := repository.DecodeStatement(rec)
	if err != nil {
		s.logger.Error("extractions.get.decode_failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode stored table"})
		return
	}

	sum := summarize(rec)
	sum.Table = &stmt
	c.JSON(http.StatusOK, sum)
}
