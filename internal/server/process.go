package server

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sheetforge/sheetforge/internal/common"
	"github.com/sheetforge/sheetforge/internal/llm"
)

// handleProcess runs the full pipeline for one uploaded PDF:
// save upload → extract text → extract statement → score+persist.
// The temp file is removed on every exit path.
func (s *Server) handleProcess(c *gin.Context) {
	start := time.Now()
	ctx := c.Request.Context()

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file must be a PDF"})
		return
	}

	tmp, err := os.CreateTemp("", "sheetforge-upload-*.pdf")
	if err != nil {
		s.logger.Error("process.tempfile.failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store upload"})
		return
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("process.tempfile.cleanup_failed", "path", tmpPath, "error", err)
		}
	}()

	if err := c.SaveUploadedFile(fh, tmpPath); err != nil {
		s.logger.Error("process.upload.save_failed", "filename", fh.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store upload"})
		return
	}

	text, err := s.pdf.ExtractText(ctx, tmpPath)
	if err != nil {
		s.logger.Error("process.pdf.failed", "filename", fh.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read PDF text"})
		return
	}

	stmt, _, err := s.extractor.ExtractStatement(ctx, llm.ExtractRequest{
		Text:         text,
		FilenameHint: fh.Filename,
	})
	if err != nil {
		s.logger.Error("process.extract.failed", "filename", fh.Filename, "error", err)
		switch {
		case errors.Is(err, common.ErrConfiguration):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "extraction backend is not configured"})
		case errors.Is(err, common.ErrSchemaValidation), errors.Is(err, common.ErrBackend):
			c.JSON(http.StatusBadGateway, gin.H{"error": "extraction failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "extraction failed"})
		}
		return
	}

	rec, err := s.records.Create(ctx, fh.Filename, stmt)
	if err != nil {
		s.logger.Error("process.persist.failed", "filename", fh.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not persist extraction"})
		return
	}

	s.logger.Info("process.ok",
		"id", rec.ID,
		"filename", rec.Filename,
		"line_items", rec.LineItemCount,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	c.JSON(http.StatusOK, gin.H{
		"id":              rec.ID,
		"items":           stmt.Items,
		"currency":        stmt.Currency,
		"units":           stmt.Units,
		"accuracy":        rec.Accuracy,
		"line_item_count": rec.LineItemCount,
	})
}
