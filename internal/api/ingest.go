package api

import (
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/Placement/internal/ingest"
)

type IngestHandler struct {
	logger *slog.Logger
}

func NewIngestHandler(logger *slog.Logger) *IngestHandler {
	return &IngestHandler{logger: logger}
}

// CSV normalizes an uploaded CSV body into individuals or alternatives,
// selected by the type query parameter.
func (h *IngestHandler) CSV(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("type")
	if kind != "students" && kind != "alternatives" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "type must be students or alternatives"})
		return
	}

	rows, err := ingest.ReadCSV(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var data interface{}
	var count int
	if kind == "students" {
		inds, err := ingest.NormalizeIndividuals(rows)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		data, count = inds, len(inds)
	} else {
		alts, err := ingest.NormalizeAlternatives(rows)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		data, count = alts, len(alts)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"type": kind, "count": count, "data": data})
}
