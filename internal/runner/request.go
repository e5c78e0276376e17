package runner

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/MikeSquared-Agency/Placement/internal/ingest"
	"github.com/MikeSquared-Agency/Placement/internal/vikor"
)

// Weights accepts either a JSON array or a comma-separated string.
type Weights []float64

func (w *Weights) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		ws, err := ingest.ParseWeightList(s)
		if err != nil {
			return err
		}
		*w = ws
		return nil
	}
	var ws []float64
	if err := json.Unmarshal(data, &ws); err != nil {
		return fmt.Errorf("weights must be an array of numbers or a comma-separated string: %w", err)
	}
	*w = ws
	return nil
}

// Request is the body of a placement run.
type Request struct {
	Individuals       []vikor.Individual                         `json:"individuals"`
	Alternatives      []vikor.Alternative                        `json:"alternatives"`
	Weights           Weights                                    `json:"weights,omitempty"`
	V                 *float64                                   `json:"v,omitempty"`
	Thresholds        *vikor.Thresholds                          `json:"thresholds,omitempty"`
	DistanceOverrides map[string]map[vikor.AlternativeID]float64 `json:"distance_overrides,omitempty"`
}

// Defaults fill in what a Request leaves out.
type Defaults struct {
	Weights vikor.WeightVector
	V       float64
}

func DefaultDefaults() Defaults {
	return Defaults{Weights: vikor.DefaultWeights(), V: vikor.DefaultV}
}

// Input converts the request into an engine input.
func (r Request) Input(d Defaults) (vikor.Input, error) {
	in := vikor.Input{
		Individuals:       r.Individuals,
		Alternatives:      r.Alternatives,
		Weights:           d.Weights,
		V:                 d.V,
		Thresholds:        r.Thresholds,
		DistanceOverrides: r.DistanceOverrides,
	}
	if r.V != nil {
		in.V = *r.V
	}
	// nil means the caller sent no weights; an empty list is rejected.
	if r.Weights != nil {
		w, err := vikor.NewWeightVector(r.Weights)
		if err != nil {
			return vikor.Input{}, vikor.JoinValidation(err, vikor.ValidateInput(in))
		}
		in.Weights = w
	}
	return in, nil
}
