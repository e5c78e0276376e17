package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Placement/internal/export"
	"github.com/MikeSquared-Agency/Placement/internal/runner"
	"github.com/MikeSquared-Agency/Placement/internal/store"
)

type RunsHandler struct {
	runner *runner.Runner
	store  store.Store
	logger *slog.Logger
}

func NewRunsHandler(rn *runner.Runner, s store.Store, logger *slog.Logger) *RunsHandler {
	return &RunsHandler{runner: rn, store: s, logger: logger}
}

type runResponse struct {
	RunID     uuid.UUID   `json:"run_id"`
	CreatedAt time.Time   `json:"created_at"`
	Result    interface{} `json:"result"`
}

func (h *RunsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req runner.Request
	if !decodeJSON(w, r, &req) {
		return
	}
	run, err := h.runner.Execute(r.Context(), store.SourceAPI, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, runResponse{RunID: run.ID, CreatedAt: run.CreatedAt, Result: run.Result})
}

func (h *RunsHandler) Get(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, runResponse{RunID: run.ID, CreatedAt: run.CreatedAt, Result: run.Result})
}

func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.RunFilter{Source: store.RunSource(r.URL.Query().Get("source"))}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}
	if v := r.URL.Query().Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "since must be an RFC 3339 timestamp"})
			return
		}
		filter.Since = &t
	}

	runs, err := h.store.ListRuns(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if runs == nil {
		runs = []*store.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (h *RunsHandler) Export(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName(run.CreatedAt)+`"`)
	if err := export.WriteCSV(w, run.Result); err != nil {
		h.logger.Error("export failed", "run_id", run.ID, "error", err)
	}
}

func (h *RunsHandler) lookup(w http.ResponseWriter, r *http.Request) (*store.Run, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid run id"})
		return nil, false
	}
	run, err := h.store.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return nil, false
	}
	if run == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "run not found"})
		return nil, false
	}
	return run, true
}
