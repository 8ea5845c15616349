package entity

// FinancialLineItem is one row of an income statement as extracted from a
// source document. Values maps a normalized year label (e.g. "FY 24") to the
// reported figure; a nil value means the figure is missing for that period,
// which is distinct from zero.
type FinancialLineItem struct {
	Particulars string              `json:"particulars"`
	Values      map[string]*float64 `json:"values"`
	Confidence  float64             `json:"confidence"`
	Notes       string              `json:"notes,omitempty"`
}

// IncomeStatement is the structured extraction result. Items preserve the
// top-to-bottom presentation order of the source document.
type IncomeStatement struct {
	Items    []FinancialLineItem `json:"items"`
	Currency string              `json:"currency"`
	Units    string              `json:"units"`
}
