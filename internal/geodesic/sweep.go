package geodesic

import (
	"context"
	"errors"
	"sync"
)

// Sweep runs the same orbit across several step sizes in parallel. Each run
// gets its own Integrator, so the one-writer-per-trajectory rule holds.
type Sweep struct {
	params    Params
	stepSizes []float64
}

func NewSweep(params Params, stepSizes []float64) *Sweep {
	return &Sweep{params: params, stepSizes: stepSizes}
}

// Run returns one trajectory per step size, in the order the step sizes were
// given. cfg.StepSize is ignored in favor of the sweep's own values. Hitting
// the step ceiling is a reportable outcome of a comparison, not a failure, so
// ErrDidNotCapture is swallowed and the partial trajectory kept; any other
// error aborts the sweep.
func (sw *Sweep) Run(ctx context.Context, cfg Config) ([]*Trajectory, error) {
	trajectories := make([]*Trajectory, len(sw.stepSizes))
	errs := make([]error, len(sw.stepSizes))

	var wg sync.WaitGroup
	for i, dtau := range sw.stepSizes {
		wg.Add(1)
		go func(idx int, dtau float64) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.StepSize = dtau

			in, err := New(sw.params, cfgCopy)
			if err != nil {
				errs[idx] = err
				return
			}
			tr, err := in.Run(ctx)
			if errors.Is(err, ErrDidNotCapture) {
				err = nil
			}
			trajectories[idx], errs[idx] = tr, err
		}(i, dtau)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return trajectories, nil
}
