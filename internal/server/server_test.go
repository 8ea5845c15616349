package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sheetforge/sheetforge/internal/common"
	"github.com/sheetforge/sheetforge/internal/export"
	"github.com/sheetforge/sheetforge/internal/llm"
	"github.com/sheetforge/sheetforge/internal/repository"
)

// stubTextExtractor avoids needing a real PDF on disk; the fixture engine
// ignores the text anyway.
type stubTextExtractor struct {
	text string
	err  error
}

func (s stubTextExtractor) ExtractText(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repository.Open(common.DatabaseConfig{
		SQLitePath: filepath.Join(t.TempDir(), "sheetforge-test.db"),
	}, nil)
	require.NoError(t, err)

	return New(
		stubTextExtractor{text: "Income Statement FY 2024 ..."},
		llm.NewFixtureExtractor(nil),
		repository.NewExtractionRecordRepository(db, nil),
		export.NewService(nil),
		nil,
	)
}

func performRequest(s *Server, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func multipartPDF(t *testing.T, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 test payload"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestProcessEndpoint(t *testing.T) {
	t.Run("rejects non-PDF uploads", func(t *testing.T) {
		s := newTestServer(t)
		body, ct := multipartPDF(t, "statement.docx")
		resp := performRequest(s, http.MethodPost, "/process", body, ct)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("rejects missing file field", func(t *testing.T) {
		s := newTestServer(t)
		resp := performRequest(s, http.MethodPost, "/process", bytes.NewBufferString("{}"), "application/json")
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("processes a PDF and persists a record", func(t *testing.T) {
		s := newTestServer(t)
		body, ct := multipartPDF(t, "statement.pdf")
		resp := performRequest(s, http.MethodPost, "/process", body, ct)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

		var got struct {
			ID            uint    `json:"id"`
			Currency      string  `json:"currency"`
			Units         string  `json:"units"`
			Accuracy      float64 `json:"accuracy"`
			LineItemCount int     `json:"line_item_count"`
			Items         []struct {
				Particulars string              `json:"particulars"`
				Values      map[string]*float64 `json:"values"`
			} `json:"items"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
		assert.NotZero(t, got.ID)
		assert.Equal(t, "INR", got.Currency)
		assert.Equal(t, "Millions", got.Units)
		assert.NotEmpty(t, got.Items)
		assert.Equal(t, len(got.Items), got.LineItemCount)
		assert.Greater(t, got.Accuracy, 0.0)

		// the record is retrievable afterwards
		detail := performRequest(s, http.MethodGet, "/extractions/1", nil, "")
		assert.Equal(t, http.StatusOK, detail.Code)
	})
}

func TestExtractionsEndpoints(t *testing.T) {
	t.Run("list is newest first", func(t *testing.T) {
		s := newTestServer(t)
		for _, name := range []string{"first.pdf", "second.pdf"} {
			body, ct := multipartPDF(t, name)
			resp := performRequest(s, http.MethodPost, "/process", body, ct)
			require.Equal(t, http.StatusOK, resp.Code)
		}

		resp := performRequest(s, http.MethodGet, "/extractions", nil, "")
		require.Equal(t, http.StatusOK, resp.Code)

		var recs []struct {
			ID       uint            `json:"id"`
			Filename string          `json:"filename"`
			Table    json.RawMessage `json:"table"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &recs))
		require.Len(t, recs, 2)
		assert.Equal(t, "second.pdf", recs[0].Filename)
		assert.Equal(t, "first.pdf", recs[1].Filename)
		assert.Nil(t, recs[0].Table, "summaries omit the table unless asked")

		withTable := performRequest(s, http.MethodGet, "/extractions?include_table=1", nil, "")
		require.Equal(t, http.StatusOK, withTable.Code)
		require.NoError(t, json.Unmarshal(withTable.Body.Bytes(), &recs))
		assert.NotNil(t, recs[0].Table)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		s := newTestServer(t)
		resp := performRequest(s, http.MethodGet, "/extractions/424242", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("non-integer id is 400", func(t *testing.T) {
		s := newTestServer(t)
		resp := performRequest(s, http.MethodGet, "/extractions/abc", nil, "")
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestExportEndpoint(t *testing.T) {
	t.Run("renders caller-supplied table JSON", func(t *testing.T) {
		s := newTestServer(t)
		body := bytes.NewBufferString(`{
			"items": [{"particulars": "Revenue", "values": {"FY 24": 100, "FY 23": null}, "confidence": 0.9}],
			"currency": "INR",
			"units": "Millions"
		}`)
		resp := performRequest(s, http.MethodPost, "/export", body, "application/json")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, xlsxContentType, resp.Header().Get("Content-Type"))
		assert.Contains(t, resp.Header().Get("Content-Disposition"), "financial_data.xlsx")

		f, err := excelize.OpenReader(bytes.NewReader(resp.Body.Bytes()))
		require.NoError(t, err)
		defer f.Close()

		v, err := f.GetCellValue("Financials", "B2")
		require.NoError(t, err)
		assert.Equal(t, "100", v)
		empty, err := f.GetCellValue("Financials", "C2")
		require.NoError(t, err)
		assert.Equal(t, "", empty)
	})

	t.Run("empty items still produce a workbook", func(t *testing.T) {
		s := newTestServer(t)
		resp := performRequest(s, http.MethodPost, "/export", bytes.NewBufferString(`{"items": []}`), "application/json")
		require.Equal(t, http.StatusOK, resp.Code)
		_, err := excelize.OpenReader(bytes.NewReader(resp.Body.Bytes()))
		assert.NoError(t, err)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		s := newTestServer(t)
		resp := performRequest(s, http.MethodPost, "/export", bytes.NewBufferString("not json"), "application/json")
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}
