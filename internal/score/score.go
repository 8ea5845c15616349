// Package score derives the denormalized summary stored alongside each
// extraction record.
package score

import "github.com/sheetforge/sheetforge/internal/entity"

// Summary is the projection persisted on an ExtractionRecord.
type Summary struct {
	AverageConfidence float64
	ItemCount         int
}

// Summarize computes the mean item confidence and item count for a statement.
// An empty statement summarizes to exactly 0.0 / 0.
func Summarize(stmt entity.IncomeStatement) Summary {
	n := len(stmt.Items)
	if n == 0 {
		return Summary{}
	}
	var sum float64
	for _, item := range stmt.Items {
		sum += item.Confidence
	}
	return Summary{
		AverageConfidence: sum / float64(n),
		ItemCount:         n,
	}
}
