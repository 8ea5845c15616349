// Package pdf turns an uploaded PDF into the single text blob the extraction
// engine consumes.
package pdf

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// TextExtractor converts a PDF on disk into plain text.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

type extractor struct {
	logger *slog.Logger
}

func NewTextExtractor(logger *slog.Logger) TextExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &extractor{logger: logger}
}

// ExtractText concatenates per-page plain text, newline separated. A PDF
// with no extractable text yields an empty string, not an error.
func (e *extractor) ExtractText(ctx context.Context, path string) (string, error) {
	start := time.Now()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn("pdf close error", "path", path, "error", cerr)
		}
	}()

	var b strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract page %d of %q: %w", i, path, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	e.logger.Info("pdf.extract.ok",
		"path", path,
		"pages", total,
		"text_len", b.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return b.String(), nil
}
