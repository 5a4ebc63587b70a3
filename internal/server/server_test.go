package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stmtkit/stmtkit/internal/bank"
	"github.com/stmtkit/stmtkit/internal/convert"
	"github.com/stmtkit/stmtkit/internal/extract"
	"github.com/stmtkit/stmtkit/pkg/config"
)

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := convert.NewService(logger, bank.Default(), extract.DefaultRegistry())
	cfg := config.Config{
		Server: config.ServerConfig{
			RateLimitPerSecond: 100,
			RateLimitBurst:     100,
			AllowedOrigins:     []string{"*"},
		},
		Convert:       config.ConvertConfig{MaxUploadBytes: 1 << 20},
		Observability: config.ObservabilityConfig{MetricsEnabled: false},
	}
	return New(logger, svc, cfg).Handler()
}

func multipartUpload(t *testing.T, fields map[string]string, filename string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(file)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHealthz(t *testing.T) {
	h := testHandler(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBanksList(t *testing.T) {
	h := testHandler(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/banks", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var infos []bankInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	require.NotEmpty(t, infos)

	ids := make(map[string]bankInfo, len(infos))
	for _, info := range infos {
		ids[info.ID] = info
	}
	assert.Contains(t, ids, "emirates_nbd")
	assert.Contains(t, ids, "other")
	assert.Equal(t, "spreadsheet", ids["spreadsheet"].Source)
}

func TestConvertCSVUpload(t *testing.T) {
	h := testHandler(t)

	csvFile := strings.Join([]string{
		"Date,Description,Withdrawal,Deposit",
		"01/02/2025,POS MARKET,150.50,",
		"02/02/2025,SALARY,,5000.00",
	}, "\n")

	body, contentType := multipartUpload(t, nil, "statement.csv", []byte(csvFile))
	req := httptest.NewRequest(http.MethodPost, "/convert/spreadsheet", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "statement.csv.xlsx")
	assert.NotEmpty(t, rec.Header().Get("X-Conversion-Id"))
	assert.Equal(t, "2", rec.Header().Get("X-Total-Rows"))
	assert.Equal(t, "0", rec.Header().Get("X-Dropped-Rows"))
}

func TestConvertCSVFormat(t *testing.T) {
	h := testHandler(t)

	csvFile := "Date,Description,Withdrawal,Deposit\n01/02/2025,POS MARKET,150.50,\n"
	body, contentType := multipartUpload(t, map[string]string{"format": "csv"}, "statement.csv", []byte(csvFile))
	req := httptest.NewRequest(http.MethodPost, "/convert/spreadsheet", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "POS MARKET")
	assert.Contains(t, rec.Body.String(), "150.50")
}

func TestConvertUnknownBank(t *testing.T) {
	h := testHandler(t)

	body, contentType := multipartUpload(t, nil, "statement.csv", []byte("Date\n"))
	req := httptest.NewRequest(http.MethodPost, "/convert/nope", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "nope")
	assert.NotEmpty(t, resp["hint"])
}

func TestConvertFormatMismatch(t *testing.T) {
	h := testHandler(t)

	// A CSV with no recognizable header never matches the spreadsheet layout.
	body, contentType := multipartUpload(t, nil, "junk.csv", []byte("a,b,c\n1,2,3\n"))
	req := httptest.NewRequest(http.MethodPost, "/convert/spreadsheet", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["hint"])
}

func TestConvertMissingFile(t *testing.T) {
	h := testHandler(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("password", "secret"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/convert/spreadsheet", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := convert.NewService(logger, bank.Default(), extract.DefaultRegistry())
	cfg := config.Config{
		Server: config.ServerConfig{
			RateLimitPerSecond: 1,
			RateLimitBurst:     1,
			AllowedOrigins:     []string{"*"},
		},
		Convert: config.ConvertConfig{MaxUploadBytes: 1 << 20},
	}
	h := New(logger, svc, cfg).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
