package llm

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetforge/sheetforge/internal/common"
)

func TestParseStatementJSON(t *testing.T) {
	t.Run("accepts a well-formed statement", func(t *testing.T) {
		raw := []byte(`{
			"items": [
				{"particulars": "Revenue from operations", "values": {"FY 24": 100.5, "FY 23": null}, "confidence": 0.95},
				{"particulars": "EBITDA", "values": {"FY 24": 40}, "confidence": 0.8, "notes": "restated"}
			],
			"currency": "INR",
			"units": "Crores"
		}`)
		stmt, _, _, err := ParseStatementJSON(raw)
		require.NoError(t, err)
		require.Len(t, stmt.Items, 2)
		assert.Equal(t, "Revenue from operations", stmt.Items[0].Particulars)
		assert.Equal(t, "INR", stmt.Currency)
		assert.Equal(t, "Crores", stmt.Units)

		v, present := stmt.Items[0].Values["FY 23"]
		assert.True(t, present)
		assert.Nil(t, v)
	})

	t.Run("normalizes verbose year labels before validating", func(t *testing.T) {
		raw := []byte(`{
			"items": [
				{"particulars": "Revenue", "values": {"Fiscal Year 2024": 100, "Fiscal Year 2023": 90}, "confidence": 0.9}
			],
			"currency": "INR",
			"units": "Millions"
		}`)
		stmt, _, adjusted, err := ParseStatementJSON(raw)
		require.NoError(t, err)
		assert.NotEmpty(t, adjusted)

		labelRe := regexp.MustCompile(`^FY \d{2}$`)
		for label := range stmt.Items[0].Values {
			assert.Regexp(t, labelRe, label)
		}
	})

	t.Run("rejects empty particulars", func(t *testing.T) {
		raw := []byte(`{
			"items": [{"particulars": "", "values": {"FY 24": 1}, "confidence": 0.5}],
			"currency": "INR",
			"units": "Millions"
		}`)
		_, _, _, err := ParseStatementJSON(raw)
		assert.True(t, errors.Is(err, common.ErrSchemaValidation))
	})

	t.Run("rejects non-numeric values", func(t *testing.T) {
		raw := []byte(`{
			"items": [{"particulars": "Revenue", "values": {"FY 24": "n/a"}, "confidence": 0.5}],
			"currency": "INR",
			"units": "Millions"
		}`)
		_, _, _, err := ParseStatementJSON(raw)
		assert.True(t, errors.Is(err, common.ErrSchemaValidation))
	})

	t.Run("rejects unparseable period labels", func(t *testing.T) {
		raw := []byte(`{
			"items": [{"particulars": "Revenue", "values": {"sometime": 1}, "confidence": 0.5}],
			"currency": "INR",
			"units": "Millions"
		}`)
		_, _, _, err := ParseStatementJSON(raw)
		assert.True(t, errors.Is(err, common.ErrSchemaValidation))
	})

	t.Run("rejects non-JSON payloads", func(t *testing.T) {
		_, _, _, err := ParseStatementJSON([]byte("Sorry, I cannot help with that."))
		assert.True(t, errors.Is(err, common.ErrSchemaValidation))
	})
}

func TestFixtureExtractor(t *testing.T) {
	stmt, raw, err := NewFixtureExtractor(nil).ExtractStatement(context.Background(), ExtractRequest{Text: "ignored"})
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	t.Run("fixture satisfies the statement schema", func(t *testing.T) {
		_, _, _, err := ParseStatementJSON(raw)
		assert.NoError(t, err)
	})

	t.Run("confidences are within bounds", func(t *testing.T) {
		for _, item := range stmt.Items {
			assert.GreaterOrEqual(t, item.Confidence, 0.0)
			assert.LessOrEqual(t, item.Confidence, 1.0)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		again, _, err := NewFixtureExtractor(nil).ExtractStatement(context.Background(), ExtractRequest{})
		require.NoError(t, err)
		assert.Equal(t, stmt, again)
	})
}
