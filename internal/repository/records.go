package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/sheetforge/sheetforge/internal/common"
	"github.com/sheetforge/sheetforge/internal/entity"
	"github.com/sheetforge/sheetforge/internal/score"
)

// ExtractionRecordRepository is the append-only store of extraction
// snapshots. Records are created once and never updated.
type ExtractionRecordRepository interface {
	Create(ctx context.Context, filename string, stmt entity.IncomeStatement) (*entity.ExtractionRecord, error)
	List(ctx context.Context) ([]entity.ExtractionRecord, error)
	GetByID(ctx context.Context, id uint) (*entity.ExtractionRecord, error)
}

type recordRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewExtractionRecordRepository(db *gorm.DB, logger *slog.Logger) ExtractionRecordRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &recordRepository{db: db, logger: logger}
}

// Create serializes the statement, computes the summary projection once, and
// persists the record in a single insert. The returned record carries the
// store-assigned id.
func (r *recordRepository) Create(ctx context.Context, filename string, stmt entity.IncomeStatement) (*entity.ExtractionRecord, error) {
	blob, err := json.Marshal(stmt)
	if err != nil {
		return nil, fmt.Errorf("serialize statement: %w", err)
	}
	summary := score.Summarize(stmt)

	rec := entity.ExtractionRecord{
		Filename:      filename,
		Accuracy:      summary.AverageConfidence,
		LineItemCount: summary.ItemCount,
		Currency:      stmt.Currency,
		Units:         stmt.Units,
		JSONData:      string(blob),
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		r.logger.Error("record.create.failed", "filename", filename, "error", err)
		return nil, fmt.Errorf("create extraction record: %w", err)
	}

	r.logger.Info("record.create.ok",
		"id", rec.ID,
		"filename", rec.Filename,
		"accuracy", rec.Accuracy,
		"line_items", rec.LineItemCount,
	)
	return &rec, nil
}

// List returns all records, most recent first.
func (r *recordRepository) List(ctx context.Context) ([]entity.ExtractionRecord, error) {
	var recs []entity.ExtractionRecord
	err := r.db.WithContext(ctx).
		Order("timestamp DESC, id DESC").
		Find(&recs).Error
	if err != nil {
		r.logger.Error("record.list.failed", "error", err)
		return nil, fmt.Errorf("list extraction records: %w", err)
	}
	return recs, nil
}

// GetByID is a point lookup; a missing id reports common.ErrNotFound.
func (r *recordRepository) GetByID(ctx context.Context, id uint) (*entity.ExtractionRecord, error) {
	var rec entity.ExtractionRecord
	err := r.db.WithContext(ctx).First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("extraction record %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("record.get.failed", "id", id, "error", err)
		return nil, fmt.Errorf("get extraction record %d: %w", id, err)
	}
	return &rec, nil
}

// DecodeStatement reconstructs the full table from a record's blob.
func DecodeStatement(rec *entity.ExtractionRecord) (entity.IncomeStatement, error) {
	var stmt entity.IncomeStatement
	if err := json.Unmarshal([]byte(rec.JSONData), &stmt); err != nil {
		return entity.IncomeStatement{}, fmt.Errorf("decode record %d blob: %w", rec.ID, err)
	}
	return stmt, nil
}
