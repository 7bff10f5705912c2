package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lorenzo-frittoli/black-hole-sim/internal/geodesic"
)

// Store persists finished runs under a base directory, one subdirectory per
// run holding metadata.json and trajectory.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	Mass            float64   `json:"mass"`
	Energy          float64   `json:"energy"`
	AngularMomentum float64   `json:"angular_momentum"`
	StepSize        float64   `json:"step_size"`
	CaptureRadius   float64   `json:"capture_radius"`
	Steps           int       `json:"steps"`
	Captured        bool      `json:"captured"`
}

func (s *Store) Save(params geodesic.Params, cfg geodesic.Config, tr *geodesic.Trajectory, captured bool) (string, error) {
	runID := fmt.Sprintf("orbit_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:              runID,
		Timestamp:       time.Now(),
		Mass:            params.Mass,
		Energy:          params.Energy,
		AngularMomentum: params.AngularMomentum,
		StepSize:        cfg.StepSize,
		CaptureRadius:   cfg.CaptureRadius,
		Steps:           tr.Len() - 1,
		Captured:        captured,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "trajectory.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(trajectoryHeader()); err != nil {
		return "", err
	}

	for i := 0; i < tr.Len(); i++ {
		if err := w.Write(sampleRow(float64(i)*cfg.StepSize, tr.At(i))); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func trajectoryHeader() []string {
	return []string{"tau", "distance", "angle", "speed", "time"}
}

func sampleRow(tau float64, smp geodesic.Sample) []string {
	return []string{
		strconv.FormatFloat(tau, 'f', 6, 64),
		strconv.FormatFloat(smp.Distance, 'g', -1, 64),
		strconv.FormatFloat(smp.Angle, 'g', -1, 64),
		strconv.FormatFloat(smp.Speed, 'g', -1, 64),
		strconv.FormatFloat(smp.Time, 'g', -1, 64),
	}
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory reads the stored samples back into a Trajectory plus the
// proper-time column.
func (s *Store) LoadTrajectory(runID string) (*geodesic.Trajectory, []float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "trajectory.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return &geodesic.Trajectory{}, []float64{}, nil
	}

	n := len(records) - 1
	taus := make([]float64, 0, n)
	tr := &geodesic.Trajectory{
		Distances: make([]float64, 0, n),
		Angles:    make([]float64, 0, n),
		Speeds:    make([]float64, 0, n),
		Times:     make([]float64, 0, n),
	}

	for _, record := range records[1:] {
		if len(record) != 5 {
			return nil, nil, fmt.Errorf("malformed trajectory row: %v", record)
		}

		vals := make([]float64, 5)
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("malformed trajectory value %q: %w", field, err)
			}
			vals[j] = v
		}

		taus = append(taus, vals[0])
		tr.Distances = append(tr.Distances, vals[1])
		tr.Angles = append(tr.Angles, vals[2])
		tr.Speeds = append(tr.Speeds, vals[3])
		tr.Times = append(tr.Times, vals[4])
	}

	return tr, taus, nil
}
