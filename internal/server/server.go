// Package server is the thin HTTP front for the conversion pipeline: upload
// a statement for a bank, download the canonical workbook. It owns transport
// concerns only; everything interesting happens in convert.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/stmtkit/stmtkit/internal/bank"
	"github.com/stmtkit/stmtkit/internal/convert"
	"github.com/stmtkit/stmtkit/internal/export"
	"github.com/stmtkit/stmtkit/internal/statement"
	"github.com/stmtkit/stmtkit/pkg/config"
)

// Server handles the HTTP surface.
type Server struct {
	logger  *slog.Logger
	svc     *convert.Service
	cfg     config.Config
	limiter *rate.Limiter
}

// New wires the HTTP server.
func New(logger *slog.Logger, svc *convert.Service, cfg config.Config) *Server {
	return &Server{
		logger:  logger,
		svc:     svc,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.Server.RateLimitPerSecond), cfg.Server.RateLimitBurst),
	}
}

// Handler builds the routed, CORS-wrapped, rate-limited handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /banks", s.handleBanks)
	mux.HandleFunc("POST /convert/{bank}", s.handleConvert)
	if s.cfg.Observability.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.rateLimit(mux))
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeJSONError(w, http.StatusTooManyRequests, "too many requests", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type bankInfo struct {
	ID               string `json:"id"`
	DisplayName      string `json:"display_name"`
	Source           string `json:"source"`
	SupportsPassword bool   `json:"supports_password"`
}

func (s *Server) handleBanks(w http.ResponseWriter, _ *http.Request) {
	profiles := s.svc.Banks()
	infos := make([]bankInfo, 0, len(profiles))
	for _, p := range profiles {
		source := "document"
		if p.Source == bank.SourceSpreadsheet {
			source = "spreadsheet"
		}
		infos = append(infos, bankInfo{
			ID:               p.ID,
			DisplayName:      p.DisplayName,
			Source:           source,
			SupportsPassword: p.SupportsPassword,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(infos); err != nil {
		s.logger.Error("encode banks response", slog.Any("error", err))
	}
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	bankID := r.PathValue("bank")

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Convert.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.Convert.MaxUploadBytes); err != nil {
		writeJSONError(w, http.StatusRequestEntityTooLarge, "upload too large or malformed", "")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "missing file field", "")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "could not read upload", "")
		return
	}

	res, err := s.svc.Convert(r.Context(), bankID, data, r.FormValue("password"))
	if err != nil {
		s.writeConvertError(w, err)
		return
	}

	filename := "statement"
	if header != nil && header.Filename != "" {
		filename = header.Filename
	}

	var body []byte
	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ext := ".xlsx"
	if r.FormValue("format") == "csv" {
		body, err = export.WriteCSV(res)
		contentType = "text/csv"
		ext = ".csv"
	} else {
		body, err = export.WriteXLSX(res)
	}
	if err != nil {
		s.logger.Error("render export", slog.Any("error", err))
		writeJSONError(w, http.StatusInternalServerError, "could not render export", "")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+ext))
	w.Header().Set("X-Conversion-Id", res.ConversionID)
	w.Header().Set("X-Total-Rows", fmt.Sprint(res.TotalRows))
	w.Header().Set("X-Dropped-Rows", fmt.Sprint(res.DroppedRows))
	if _, err := w.Write(body); err != nil {
		s.logger.Error("write export", slog.Any("error", err))
	}
}

func (s *Server) writeConvertError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, statement.ErrUnknownBank):
		status = http.StatusNotFound
	case errors.Is(err, statement.ErrAuthentication):
		status = http.StatusUnauthorized
	case errors.Is(err, statement.ErrUnreadableDocument):
		status = http.StatusBadRequest
	case errors.Is(err, statement.ErrFormatMismatch):
		status = http.StatusUnprocessableEntity
	}
	writeJSONError(w, status, err.Error(), statement.Hint(err))
}

func writeJSONError(w http.ResponseWriter, status int, msg, hint string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
		"hint":  hint,
	})
}
