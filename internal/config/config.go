package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lorenzo-frittoli/black-hole-sim/internal/geodesic"
)

const (
	DefaultMass            = 1.0
	DefaultEnergy          = 2.0
	DefaultAngularMomentum = 15.0
	DefaultStartDistance   = 30.0
	DefaultStartAngle      = 3.14
	DefaultStepSize        = geodesic.DefaultStepSize
	DefaultCaptureRadius   = geodesic.DefaultCaptureRadius
)

type Config struct {
	Mass            float64         `yaml:"mass"`
	Energy          float64         `yaml:"energy"`
	AngularMomentum float64         `yaml:"angular_momentum"`
	InitState       InitStateConfig `yaml:"init_state"`
	StepSize        float64         `yaml:"step_size"`
	CaptureRadius   float64         `yaml:"capture_radius"`
	MaxSteps        int             `yaml:"max_steps"`
	ValidateState   bool            `yaml:"validate_state"`
}

type InitStateConfig struct {
	Distance float64 `yaml:"distance"`
	Angle    float64 `yaml:"angle"`
	Speed    float64 `yaml:"speed"`
}

func DefaultConfig() *Config {
	return &Config{
		Mass:            DefaultMass,
		Energy:          DefaultEnergy,
		AngularMomentum: DefaultAngularMomentum,
		InitState: InitStateConfig{
			Distance: DefaultStartDistance,
			Angle:    DefaultStartAngle,
		},
		StepSize:      DefaultStepSize,
		CaptureRadius: DefaultCaptureRadius,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params maps the config onto the integrator's orbit parameters.
func (c *Config) Params() geodesic.Params {
	return geodesic.Params{
		Mass:            c.Mass,
		Energy:          c.Energy,
		AngularMomentum: c.AngularMomentum,
		StartDistance:   c.InitState.Distance,
		StartAngle:      c.InitState.Angle,
		StartSpeed:      c.InitState.Speed,
	}
}

// RunConfig maps the config onto the integrator's run options.
func (c *Config) RunConfig() geodesic.Config {
	return geodesic.Config{
		StepSize:      c.StepSize,
		CaptureRadius: c.CaptureRadius,
		MaxSteps:      c.MaxSteps,
		ValidateState: c.ValidateState,
	}
}
