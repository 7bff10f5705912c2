package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/lorenzo-frittoli/black-hole-sim/internal/geodesic"
)

// ExportData is the full-run JSON shape consumed by external plotting tools:
// four parallel arrays of equal length plus the run identity.
type ExportData struct {
	ID              string    `json:"id"`
	Mass            float64   `json:"mass"`
	Energy          float64   `json:"energy"`
	AngularMomentum float64   `json:"angular_momentum"`
	StepSize        float64   `json:"step_size"`
	Steps           int       `json:"steps"`
	Taus            []float64 `json:"taus"`
	Distances       []float64 `json:"distances"`
	Angles          []float64 `json:"angles"`
	Speeds          []float64 `json:"speeds"`
	Times           []float64 `json:"times"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, tr *geodesic.Trajectory, taus []float64) error {
	data := ExportData{
		ID:              meta.ID,
		Mass:            meta.Mass,
		Energy:          meta.Energy,
		AngularMomentum: meta.AngularMomentum,
		StepSize:        meta.StepSize,
		Steps:           tr.Len(),
		Taus:            taus,
		Distances:       tr.Distances,
		Angles:          tr.Angles,
		Speeds:          tr.Speeds,
		Times:           tr.Times,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSONStdout(meta *RunMetadata, tr *geodesic.Trajectory, taus []float64) error {
	return ExportJSON(os.Stdout, meta, tr, taus)
}
