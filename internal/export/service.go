// Package export renders a structured financial table as an XLSX workbook.
package export

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sheetforge/sheetforge/internal/entity"
)

const sheetName = "Financials"

// TableItem is the tolerant row shape the renderer accepts: callers may post
// raw JSON rather than a stored statement, so only particulars and values are
// required to be present.
type TableItem struct {
	Particulars string              `json:"particulars"`
	Values      map[string]*float64 `json:"values"`
	Confidence  float64             `json:"confidence,omitempty"`
	Notes       string              `json:"notes,omitempty"`
}

// TableInput is the renderer's input shape.
type TableInput struct {
	Items    []TableItem `json:"items"`
	Currency string      `json:"currency,omitempty"`
	Units    string      `json:"units,omitempty"`
}

// FromStatement adapts a validated statement to the renderer's input shape.
func FromStatement(stmt entity.IncomeStatement) TableInput {
	items := make([]TableItem, 0, len(stmt.Items))
	for _, it := range stmt.Items {
		items = append(items, TableItem{
			Particulars: it.Particulars,
			Values:      it.Values,
			Confidence:  it.Confidence,
			Notes:       it.Notes,
		})
	}
	return TableInput{Items: items, Currency: stmt.Currency, Units: stmt.Units}
}

// Service produces XLSX bytes from table-shaped input.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// RenderXLSX writes one sheet with a Particulars column followed by one
// column per reporting period, most recent first. The column set is taken
// from the first item's value keys; rows missing a period render an empty
// cell, never zero. An empty table yields a valid workbook with an empty
// sheet.
func (s *Service) RenderXLSX(table TableInput) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	if len(table.Items) > 0 {
		years := columnYears(table.Items[0])

		write := func(col, row int, v any) error {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			return f.SetCellValue(sheetName, cell, v)
		}

		if err := write(1, 1, "Particulars"); err != nil {
			return nil, err
		}
		for i, y := range years {
			if err := write(i+2, 1, y); err != nil {
				return nil, err
			}
		}

		for r, item := range table.Items {
			if err := write(1, r+2, item.Particulars); err != nil {
				return nil, err
			}
			for c, y := range years {
				val, ok := item.Values[y]
				if !ok || val == nil {
					continue
				}
				if err := write(c+2, r+2, *val); err != nil {
					return nil, err
				}
			}
		}

		_ = f.SetColWidth(sheetName, "A", "A", 25)
		if len(years) > 0 {
			last, _ := excelize.ColumnNumberToName(len(years) + 1)
			_ = f.SetColWidth(sheetName, "B", last, 15)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(table.Items),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// columnYears fixes the column set from the first item, most recent year
// first. Items with a different period set render against these columns; see
// the renderer doc for the known limitation.
func columnYears(first TableItem) []string {
	years := make([]string, 0, len(first.Values))
	for y := range first.Values {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years
}
