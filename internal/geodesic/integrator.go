package geodesic

import (
	"context"
	"fmt"
)

const (
	DefaultStepSize      = 1.0 / 1000
	DefaultCaptureRadius = 5.0

	// Capacity guess bounds for the trajectory buffers.
	minCapacity = 16
	maxCapacity = 1 << 20
)

// Config holds run options. StepSize and CaptureRadius must be positive.
// MaxSteps and ValidateState default to off, matching the unguarded reference
// behavior: a non-capturing orbit loops forever and non-finite values
// propagate silently.
type Config struct {
	StepSize      float64 // proper-time increment per step
	CaptureRadius float64 // distance at or below which the particle is captured
	MaxSteps      int     // 0 = unbounded
	ValidateState bool    // stop with ErrNonFinite on NaN/Inf samples
}

func DefaultConfig() Config {
	return Config{
		StepSize:      DefaultStepSize,
		CaptureRadius: DefaultCaptureRadius,
	}
}

// Integrator advances the four coupled state variables one proper-time step
// at a time using explicit first-order Euler integration.
type Integrator struct {
	params Params
	cfg    Config
	traj   *Trajectory
	steps  int
}

// New validates cfg and returns an integrator seeded with the start sample.
func New(params Params, cfg Config) (*Integrator, error) {
	if cfg.StepSize <= 0 {
		return nil, fmt.Errorf("step size must be positive, got %f", cfg.StepSize)
	}
	if cfg.CaptureRadius <= 0 {
		return nil, fmt.Errorf("capture radius must be positive, got %f", cfg.CaptureRadius)
	}
	if cfg.MaxSteps < 0 {
		return nil, fmt.Errorf("max steps must be non-negative, got %d", cfg.MaxSteps)
	}

	return &Integrator{
		params: params,
		cfg:    cfg,
		traj:   newTrajectory(params.seed(), capacityHint(params, cfg)),
	}, nil
}

// capacityHint pre-estimates the step count from the radial gap. Free-fall
// speeds are order unity in geometric units, so (r0-rc)/dtau is the right
// order of magnitude; append growth covers the rest.
func capacityHint(params Params, cfg Config) int {
	gap := params.StartDistance - cfg.CaptureRadius
	if gap <= 0 {
		return minCapacity
	}
	n := int(gap/cfg.StepSize) + 1
	if n < minCapacity {
		return minCapacity
	}
	if n > maxCapacity {
		return maxCapacity
	}
	return n
}

// Trajectory returns the samples produced so far. Read-only for callers;
// the integrator is the only writer.
func (in *Integrator) Trajectory() *Trajectory {
	return in.traj
}

// Captured reports whether the last sample is at or below the capture radius.
func (in *Integrator) Captured() bool {
	return in.traj.Last().Distance <= in.cfg.CaptureRadius
}

// Tau returns the proper time elapsed so far.
func (in *Integrator) Tau() float64 {
	return float64(in.steps) * in.cfg.StepSize
}

// Step produces sample i+1 from sample i and appends it. All four derivatives
// are evaluated at sample i only; no derivative at i+1 feeds its own update.
// Step does not check the capture condition.
func (in *Integrator) Step() Sample {
	cur := in.traj.Last()
	dtau := in.cfg.StepSize

	next := Sample{
		Distance: cur.Distance + cur.Speed*dtau,
		Angle:    cur.Angle + in.params.AngularVelocity(cur.Distance)*dtau,
		Speed:    cur.Speed + in.params.RadialAccel(cur.Distance)*dtau,
		Time:     cur.Time + in.params.TimeDilation(cur.Distance)*dtau,
	}

	in.traj.append(next)
	in.steps++
	return next
}

// Run steps until the particle is captured. A seed already at or below the
// capture radius is a valid degenerate case: the trajectory stays length 1
// and Run returns immediately.
//
// On error the partial trajectory is returned alongside it. Without MaxSteps
// a bound or escaping orbit never terminates; ctx is the caller's escape
// hatch.
func (in *Integrator) Run(ctx context.Context) (*Trajectory, error) {
	for !in.Captured() {
		select {
		case <-ctx.Done():
			return in.traj, ctx.Err()
		default:
		}

		if in.cfg.MaxSteps > 0 && in.steps >= in.cfg.MaxSteps {
			return in.traj, &StepError{Step: in.steps, Tau: in.Tau(), Wrapped: ErrDidNotCapture}
		}

		s := in.Step()

		if in.cfg.ValidateState && !s.IsValid() {
			return in.traj, &StepError{Step: in.steps, Tau: in.Tau(), Wrapped: ErrNonFinite}
		}
	}
	return in.traj, nil
}

// RunWithCallback runs like Run but hands every sample, seed included, to fn
// as it is produced. Returning false from fn stops the run early without
// error. Termination rules match Run.
func (in *Integrator) RunWithCallback(ctx context.Context, fn func(Sample) bool) error {
	if !fn(in.traj.Last()) {
		return nil
	}

	for !in.Captured() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if in.cfg.MaxSteps > 0 && in.steps >= in.cfg.MaxSteps {
			return &StepError{Step: in.steps, Tau: in.Tau(), Wrapped: ErrDidNotCapture}
		}

		s := in.Step()

		if in.cfg.ValidateState && !s.IsValid() {
			return &StepError{Step: in.steps, Tau: in.Tau(), Wrapped: ErrNonFinite}
		}

		if !fn(s) {
			return nil
		}
	}
	return nil
}
