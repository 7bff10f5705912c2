package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/lorenzo-frittoli/black-hole-sim/internal/geodesic"
)

func shortRun(t *testing.T) (geodesic.Params, geodesic.Config, *geodesic.Trajectory) {
	t.Helper()

	params := geodesic.Params{
		Mass: 1, Energy: 1, AngularMomentum: 4,
		StartDistance: 20, StartSpeed: -0.5,
	}
	cfg := geodesic.Config{StepSize: 1.0 / 100, CaptureRadius: 2, MaxSteps: 100_000}

	in, err := geodesic.New(params, cfg)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	tr, err := in.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return params, cfg, tr
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	params, cfg, tr := shortRun(t)

	runID, err := st.Save(params, cfg, tr, true)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Mass != 1 || meta.Energy != 1 || meta.AngularMomentum != 4 {
		t.Errorf("orbit parameters not persisted: %+v", meta)
	}
	if meta.Steps != tr.Len()-1 {
		t.Errorf("expected %d steps, got %d", tr.Len()-1, meta.Steps)
	}
	if !meta.Captured {
		t.Error("expected captured flag")
	}
}

func TestLoadTrajectoryRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	params, cfg, tr := shortRun(t)

	runID, err := st.Save(params, cfg, tr, true)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, taus, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}

	if loaded.Len() != tr.Len() {
		t.Fatalf("expected %d samples, got %d", tr.Len(), loaded.Len())
	}
	if len(taus) != tr.Len() {
		t.Fatalf("expected %d taus, got %d", tr.Len(), len(taus))
	}
	for i := 0; i < tr.Len(); i++ {
		if loaded.At(i) != tr.At(i) {
			t.Fatalf("sample %d changed across roundtrip: %+v vs %+v",
				i, loaded.At(i), tr.At(i))
		}
	}
	if taus[0] != 0 {
		t.Errorf("expected tau[0] = 0, got %v", taus[0])
	}
}

func TestListEmptyDir(t *testing.T) {
	st := New(t.TempDir() + "/missing")

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	params, cfg, tr := shortRun(t)
	if _, err := st.Save(params, cfg, tr, true); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	params, cfg, tr := shortRun(t)
	runID, err := st.Save(params, cfg, tr, true)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	loaded, taus, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, loaded, taus); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export produced invalid json: %v", err)
	}
	if data.ID != runID {
		t.Errorf("expected id %q, got %q", runID, data.ID)
	}
	if data.Steps != loaded.Len() {
		t.Errorf("expected %d steps, got %d", loaded.Len(), data.Steps)
	}
	if len(data.Distances) != len(data.Times) {
		t.Error("parallel arrays have unequal length")
	}
}
