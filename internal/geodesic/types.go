package geodesic

import "math"

// Sample is the particle state at a single proper-time instant.
type Sample struct {
	Distance float64 // radial coordinate r
	Angle    float64 // phi, radians
	Speed    float64 // dr/dtau
	Time     float64 // coordinate time t
}

// IsValid reports whether every component is finite.
func (s Sample) IsValid() bool {
	for _, v := range [4]float64{s.Distance, s.Angle, s.Speed, s.Time} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Trajectory holds the four state sequences of one run as parallel slices,
// indexed by proper-time step count. Sample i+1 is derived only from sample i;
// the slices are append-only during the run and read-only afterwards.
type Trajectory struct {
	Distances []float64
	Angles    []float64
	Speeds    []float64
	Times     []float64
}

func newTrajectory(seed Sample, capHint int) *Trajectory {
	if capHint < 1 {
		capHint = 1
	}
	tr := &Trajectory{
		Distances: make([]float64, 0, capHint),
		Angles:    make([]float64, 0, capHint),
		Speeds:    make([]float64, 0, capHint),
		Times:     make([]float64, 0, capHint),
	}
	tr.append(seed)
	return tr
}

func (tr *Trajectory) append(s Sample) {
	tr.Distances = append(tr.Distances, s.Distance)
	tr.Angles = append(tr.Angles, s.Angle)
	tr.Speeds = append(tr.Speeds, s.Speed)
	tr.Times = append(tr.Times, s.Time)
}

// Len returns the number of samples, including the seed.
func (tr *Trajectory) Len() int {
	return len(tr.Distances)
}

// At returns sample i. It panics if i is out of range, same as slice indexing.
func (tr *Trajectory) At(i int) Sample {
	return Sample{
		Distance: tr.Distances[i],
		Angle:    tr.Angles[i],
		Speed:    tr.Speeds[i],
		Time:     tr.Times[i],
	}
}

// Last returns the most recently appended sample.
func (tr *Trajectory) Last() Sample {
	return tr.At(tr.Len() - 1)
}
