package entity

import "time"

// ExtractionRecord is the persisted snapshot of one extraction event.
// Accuracy, LineItemCount, Currency and Units are a denormalized projection
// of JSONData, computed once at create time; the record is never mutated.
type ExtractionRecord struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Filename      string    `json:"filename"`
	Timestamp     time.Time `json:"timestamp" gorm:"autoCreateTime;index"`
	Accuracy      float64   `json:"accuracy"`
	LineItemCount int       `json:"line_item_count"`
	Currency      string    `json:"currency"`
	Units         string    `json:"units"`
	JSONData      string    `json:"-" gorm:"type:text"`
}

func (ExtractionRecord) TableName() string { return "extraction_records" }
