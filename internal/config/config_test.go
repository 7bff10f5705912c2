package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mass != 1 {
		t.Errorf("expected mass 1, got %f", cfg.Mass)
	}
	if cfg.StepSize <= 0 {
		t.Error("step size should be positive")
	}
	if cfg.CaptureRadius <= 0 {
		t.Error("capture radius should be positive")
	}
	if cfg.InitState.Distance <= cfg.CaptureRadius {
		t.Error("default start distance should sit outside the capture radius")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("spiral")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.AngularMomentum != 15 {
		t.Errorf("expected angular momentum 15, got %f", cfg.AngularMomentum)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Fatal("expected presets")
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] >= presets[i] {
			t.Errorf("presets not sorted: %q >= %q", presets[i-1], presets[i])
		}
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbit.yaml")
	doc := `
mass: 2.5
angular_momentum: 0
init_state:
  distance: 50
  angle: 0
step_size: 0.0005
max_steps: 100000
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Mass != 2.5 {
		t.Errorf("expected mass 2.5, got %f", cfg.Mass)
	}
	if cfg.AngularMomentum != 0 {
		t.Errorf("expected angular momentum 0, got %f", cfg.AngularMomentum)
	}
	if cfg.InitState.Distance != 50 {
		t.Errorf("expected distance 50, got %f", cfg.InitState.Distance)
	}
	if cfg.MaxSteps != 100000 {
		t.Errorf("expected max steps 100000, got %d", cfg.MaxSteps)
	}
	// Unset fields keep defaults.
	if cfg.Energy != DefaultEnergy {
		t.Errorf("expected default energy, got %f", cfg.Energy)
	}
	if cfg.CaptureRadius != DefaultCaptureRadius {
		t.Errorf("expected default capture radius, got %f", cfg.CaptureRadius)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbit.yaml")

	cfg := DefaultConfig()
	cfg.Energy = 3.0
	cfg.InitState.Speed = -0.25

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if *loaded != *cfg {
		t.Errorf("roundtrip mismatch: %+v vs %+v", loaded, cfg)
	}
}

func TestParamsMapping(t *testing.T) {
	cfg := DefaultConfig()
	p := cfg.Params()

	if p.Mass != cfg.Mass || p.Energy != cfg.Energy || p.AngularMomentum != cfg.AngularMomentum {
		t.Errorf("conserved quantities not mapped: %+v", p)
	}
	if p.StartDistance != cfg.InitState.Distance || p.StartAngle != cfg.InitState.Angle {
		t.Errorf("initial conditions not mapped: %+v", p)
	}

	rc := cfg.RunConfig()
	if rc.StepSize != cfg.StepSize || rc.CaptureRadius != cfg.CaptureRadius {
		t.Errorf("run options not mapped: %+v", rc)
	}
}
