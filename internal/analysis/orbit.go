// Package analysis computes post-run summaries of a finished trajectory.
package analysis

import (
	"math"

	"github.com/lorenzo-frittoli/black-hole-sim/internal/geodesic"
)

// Summary condenses a trajectory into the quantities worth printing after a
// run: how long the fall took in both clocks and how the orbit was shaped.
type Summary struct {
	Steps          int     // integration steps taken (samples - 1)
	ProperTime     float64 // tau elapsed over the run
	CoordinateTime float64 // distant-observer time at the final sample
	Periapsis      float64 // closest approach
	Apoapsis       float64 // farthest distance reached
	Windings       float64 // net angular travel in full turns
	MeanDilation   float64 // coordinate time per unit proper time, averaged
	Captured       bool    // final distance at or below the capture radius
	Finite         bool    // no NaN/Inf anywhere in the trajectory
}

// Summarize walks the trajectory once. Non-finite samples poison the derived
// quantities just as they do the integration itself; Finite flags it.
func Summarize(tr *geodesic.Trajectory, stepSize, captureRadius float64) Summary {
	n := tr.Len()
	if n == 0 {
		return Summary{}
	}

	s := Summary{
		Steps:     n - 1,
		Periapsis: tr.Distances[0],
		Apoapsis:  tr.Distances[0],
		Finite:    true,
	}

	for i := 0; i < n; i++ {
		smp := tr.At(i)
		if !smp.IsValid() {
			s.Finite = false
		}
		if smp.Distance < s.Periapsis {
			s.Periapsis = smp.Distance
		}
		if smp.Distance > s.Apoapsis {
			s.Apoapsis = smp.Distance
		}
	}

	last := tr.Last()
	s.ProperTime = float64(s.Steps) * stepSize
	s.CoordinateTime = last.Time
	s.Windings = math.Abs(last.Angle-tr.Angles[0]) / (2 * math.Pi)
	s.Captured = last.Distance <= captureRadius

	if s.ProperTime > 0 {
		s.MeanDilation = last.Time / s.ProperTime
	}

	return s
}
