package llm

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/sheetforge/sheetforge/internal/entity"
)

// FixtureExtractor returns a fixed income statement regardless of input.
// It exists for tests and explicitly selected offline runs; it is never used
// as a fallback for the live backend.
type FixtureExtractor struct {
	logger *slog.Logger
}

func NewFixtureExtractor(logger *slog.Logger) *FixtureExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FixtureExtractor{logger: logger}
}

func (f *FixtureExtractor) ExtractStatement(_ context.Context, req ExtractRequest) (entity.IncomeStatement, []byte, error) {
	stmt := FixtureStatement()
	raw, err := json.Marshal(stmt)
	if err != nil {
		return entity.IncomeStatement{}, nil, err
	}
	f.logger.Info("llm.extract.fixture",
		"filename_hint", req.FilenameHint,
		"text_len", len(req.Text),
		"items", len(stmt.Items),
	)
	return stmt, raw, nil
}

// FixtureStatement is a six-period consolidated income statement sampled from
// a real manufacturing filing.
func FixtureStatement() entity.IncomeStatement {
	return entity.IncomeStatement{
		Currency: "INR",
		Units:    "Millions",
		Items: []entity.FinancialLineItem{
			{Particulars: "Revenue from ops", Confidence: 0.99,
				Values: years(204813.0, 163210.0, 133905.0, 89582.0, 65557.0, 72484.0)},
			{Particulars: "Other sources", Confidence: 0.98,
				Values: years(1212.0, 793.6, 388.49, 679.0, 369.0, 425.2)},
			{Particulars: "Total Revenue", Confidence: 0.99,
				Values: years(206025.0, 164003.6, 134293.49, 90262.0, 65927.0, 72909.0)},
			{Particulars: "Cost of materials consumed", Confidence: 0.95,
				Values: years(82937.43, 70264.61, 64170.92, 39689.13, 26885.09, 29395.56)},
			{Particulars: "Salaries, wages and bonus", Confidence: 0.98,
				Values: years(17067.81, 13041.12, 11026.09, 9126.69, 8131.06, 7429.61)},
			{Particulars: "Total employee benefits expense", Confidence: 0.97,
				Values: years(18850.26, 14465.87, 12166.42, 10076.99, 8897.36, 8108.15)},
			{Particulars: "Power and fuel", Confidence: 0.94,
				Values: years(6295.08, 5502.85, 4792.2, 3299.25, 2670.0, 2790.62)},
			{Particulars: "Freight, octroi and insurance", Confidence: 0.96,
				Values: years(14031.34, 11020.58, 9112.67, 6189.91, 4588.28, 4554.66)},
			{Particulars: "EBITDA", Confidence: 0.96,
				Values: years(48322.81, 36888.55, 28269.05, 17225.93, 12387.67, 14900.34)},
			{Particulars: "Finance Costs", Confidence: 0.94,
				Values: years(4503.86, 2680.99, 1861.22, 1847.0, 2811.04, 3096.42)},
			{Particulars: "Depreciation", Confidence: 0.95,
				Values: years(9473.86, 6809.0, 6171.0, 5312.0, 5287.0, 4886.0)},
			{Particulars: "Profit After Tax", Confidence: 0.98,
				Values: years(26342.27, 21018.3, 15501.77, 7461.93, 3572.63, 4720.25)},
		},
	}
}

var fixtureYears = []string{"FY 25", "FY 24", "FY 23", "FY 22", "FY 21", "FY 20"}

func years(vs ...float64) map[string]*float64 {
	m := make(map[string]*float64, len(vs))
	for i, v := range vs {
		if i >= len(fixtureYears) {
			break
		}
		val := v
		m[fixtureYears[i]] = &val
	}
	return m
}
