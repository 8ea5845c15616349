package llm

import (
	"context"

	"github.com/sheetforge/sheetforge/internal/entity"
)

// ExtractRequest carries the raw document text plus context hints for the
// extraction backend.
type ExtractRequest struct {
	Text         string
	FilenameHint string

	// DefaultCurrency is suggested to the backend when the document does not
	// state one (e.g. "INR").
	DefaultCurrency string
}

// StatementExtractor is the interface the processing pipeline depends on.
// Implementations: the live OpenAI-backed client and the deterministic
// fixture used for offline runs and tests. No caller should need to know
// which variant is active.
type StatementExtractor interface {
	ExtractStatement(ctx context.Context, req ExtractRequest) (entity.IncomeStatement, []byte /*rawJSON*/, error)
}
