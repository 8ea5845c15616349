package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetforge/sheetforge/internal/common"
	"github.com/sheetforge/sheetforge/internal/entity"
)

func fv(v float64) *float64 { return &v }

func newTestRepo(t *testing.T) ExtractionRecordRepository {
	t.Helper()
	db, err := Open(common.DatabaseConfig{
		SQLitePath: filepath.Join(t.TempDir(), "sheetforge-test.db"),
	}, nil)
	require.NoError(t, err)
	return NewExtractionRecordRepository(db, nil)
}

func sampleStatement() entity.IncomeStatement {
	return entity.IncomeStatement{
		Currency: "INR",
		Units:    "Millions",
		Items: []entity.FinancialLineItem{
			{Particulars: "Revenue from ops", Values: map[string]*float64{"FY 24": fv(163210), "FY 23": fv(133905)}, Confidence: 0.99},
			{Particulars: "Finance Costs", Values: map[string]*float64{"FY 24": fv(2680.99), "FY 23": nil}, Confidence: 0.94, Notes: "net"},
		},
	}
}

func TestExtractionRecordRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create computes the summary projection once", func(t *testing.T) {
		repo := newTestRepo(t)
		rec, err := repo.Create(ctx, "q4.pdf", sampleStatement())
		require.NoError(t, err)

		assert.NotZero(t, rec.ID)
		assert.Equal(t, "q4.pdf", rec.Filename)
		assert.Equal(t, 2, rec.LineItemCount)
		assert.InDelta(t, 0.965, rec.Accuracy, 1e-9)
		assert.Equal(t, "INR", rec.Currency)
		assert.Equal(t, "Millions", rec.Units)
		assert.False(t, rec.Timestamp.IsZero())
	})

	t.Run("empty statement persists with zero accuracy", func(t *testing.T) {
		repo := newTestRepo(t)
		rec, err := repo.Create(ctx, "blank.pdf", entity.IncomeStatement{Currency: "INR", Units: "Absolute"})
		require.NoError(t, err)
		assert.Equal(t, 0.0, rec.Accuracy)
		assert.Equal(t, 0, rec.LineItemCount)
	})

	t.Run("round trip reconstructs the table by value", func(t *testing.T) {
		repo := newTestRepo(t)
		stmt := sampleStatement()
		created, err := repo.Create(ctx, "q4.pdf", stmt)
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)

		decoded, err := DecodeStatement(got)
		require.NoError(t, err)
		assert.Equal(t, stmt, decoded)

		// the null figure survives as present-but-nil
		v, present := decoded.Items[1].Values["FY 23"]
		assert.True(t, present)
		assert.Nil(t, v)
	})

	t.Run("list returns newest first", func(t *testing.T) {
		repo := newTestRepo(t)
		first, err := repo.Create(ctx, "first.pdf", sampleStatement())
		require.NoError(t, err)
		second, err := repo.Create(ctx, "second.pdf", sampleStatement())
		require.NoError(t, err)

		recs, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, second.ID, recs[0].ID)
		assert.Equal(t, first.ID, recs[1].ID)
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		repo := newTestRepo(t)
		_, err := repo.GetByID(ctx, 9999)
		assert.True(t, errors.Is(err, common.ErrNotFound))
	})
}
