package geodesic

// Speed of light in geometric units. Kept as a named constant so the force
// law below reads like the underlying formula.
const lightSpeed = 1.0

// Params are the conserved quantities and initial conditions of one orbit.
// They are fixed for the duration of a run.
type Params struct {
	Mass            float64 // central body mass M
	Energy          float64 // conserved specific energy E
	AngularMomentum float64 // conserved specific angular momentum L
	StartDistance   float64
	StartAngle      float64
	StartSpeed      float64
}

// RadialAccel is dv/dtau, the effective radial force law at distance r.
// Singular as r approaches 0; the caller decides whether to guard.
func (p Params) RadialAccel(r float64) float64 {
	return 2*p.AngularMomentum/(r*r*r) -
		p.Mass*lightSpeed*lightSpeed/(r*r) -
		3*p.AngularMomentum*p.AngularMomentum*p.Mass/(r*r*r*r)
}

// AngularVelocity is dphi/dtau at distance r.
func (p Params) AngularVelocity(r float64) float64 {
	return p.AngularMomentum / (r * r)
}

// TimeDilation is dt/dtau at distance r. Singular at r = 2M, the
// Schwarzschild radius; configure the capture radius above 2M to stay clear.
func (p Params) TimeDilation(r float64) float64 {
	return p.Energy / (1 - 2*p.Mass/r)
}

// SchwarzschildRadius returns 2M, the coordinate-time singularity.
func (p Params) SchwarzschildRadius() float64 {
	return 2 * p.Mass
}

func (p Params) seed() Sample {
	return Sample{
		Distance: p.StartDistance,
		Angle:    p.StartAngle,
		Speed:    p.StartSpeed,
		Time:     0,
	}
}
