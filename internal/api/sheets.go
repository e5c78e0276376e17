package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/Placement/internal/ingest"
	"github.com/MikeSquared-Agency/Placement/internal/runner"
	"github.com/MikeSquared-Agency/Placement/internal/store"
	"github.com/MikeSquared-Agency/Placement/internal/vikor"
)

// SheetsService is implemented by *ingest.SheetsSource.
type SheetsService interface {
	Load(ctx context.Context, spreadsheetID string) (*ingest.SheetData, error)
	Validate(ctx context.Context, spreadsheetID string) (*ingest.SheetStatus, error)
}

type SheetsHandler struct {
	runner       *runner.Runner
	sheets       SheetsService
	defaultSheet string
	logger       *slog.Logger
}

func NewSheetsHandler(rn *runner.Runner, s SheetsService, defaultSheet string, logger *slog.Logger) *SheetsHandler {
	return &SheetsHandler{runner: rn, sheets: s, defaultSheet: defaultSheet, logger: logger}
}

type sheetsRunRequest struct {
	SpreadsheetID string            `json:"spreadsheet_id,omitempty"`
	Weights       runner.Weights    `json:"weights,omitempty"`
	V             *float64          `json:"v,omitempty"`
	Thresholds    *vikor.Thresholds `json:"thresholds,omitempty"`
}

func (h *SheetsHandler) Run(w http.ResponseWriter, r *http.Request) {
	if h.sheets == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "google sheets is not configured"})
		return
	}
	var req sheetsRunRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	id := h.spreadsheetID(req.SpreadsheetID)
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "spreadsheet_id required"})
		return
	}

	data, err := h.sheets.Load(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	run, err := h.runner.Execute(r.Context(), store.SourceSheets, runner.Request{
		Individuals:  data.Individuals,
		Alternatives: data.Alternatives,
		Weights:      req.Weights,
		V:            req.V,
		Thresholds:   req.Thresholds,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, runResponse{RunID: run.ID, CreatedAt: run.CreatedAt, Result: run.Result})
}

func (h *SheetsHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if h.sheets == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "google sheets is not configured"})
		return
	}
	id := h.spreadsheetID(r.URL.Query().Get("spreadsheet_id"))
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "spreadsheet_id required"})
		return
	}
	status, err := h.sheets.Validate(r.Context(), id)
	if err != nil {
		h.logger.Warn("sheets validation failed", "spreadsheet_id", id, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *SheetsHandler) spreadsheetID(requested string) string {
	if requested != "" {
		return requested
	}
	return h.defaultSheet
}
