package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/Placement/internal/ingest"
	"github.com/MikeSquared-Agency/Placement/internal/runner"
	"github.com/MikeSquared-Agency/Placement/internal/vikor"
)

const maxBodyBytes = 10 << 20

type errorResponse struct {
	Error    string   `json:"error"`
	Problems []string `json:"problems,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps input errors to 400 with their problem list and everything
// else to 500.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if runner.IsInvalidInput(err) || errors.Is(err, ingest.ErrSheetEmpty) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: kindOf(err), Problems: vikor.Problems(err)})
		return
	}
	logger.Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func kindOf(err error) string {
	var ve *vikor.ValidationError
	if errors.As(err, &ve) {
		return ve.Kind.Error()
	}
	return err.Error()
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		resp := errorResponse{Error: "invalid request body"}
		var ve *vikor.ValidationError
		if errors.As(err, &ve) {
			resp = errorResponse{Error: ve.Kind.Error(), Problems: ve.Problems}
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return false
	}
	return true
}
