package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/Placement/internal/vikor"
)

// DefaultData serves the demonstration data set.
func DefaultData(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, vikor.SampleData())
}
