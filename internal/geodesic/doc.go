// Package geodesic integrates the radial plunge of a test particle toward a
// non-rotating massive body.
//
// The particle follows a Schwarzschild-like geodesic parameterized by proper
// time tau, described by four coupled first-order ODEs:
//
//   - [Params]: conserved quantities and initial conditions of one orbit
//   - [Config]: step size, capture radius and optional hardening knobs
//   - [Trajectory]: the four parallel state sequences produced by a run
//   - [Integrator]: advances the state with explicit Euler steps until capture
//
// # Example
//
//	in, _ := geodesic.New(params, geodesic.DefaultConfig())
//	traj, _ := in.Run(ctx)
//	last := traj.Last()
//
// # Thread Safety
//
// Integrator instances are NOT thread-safe: one trajectory has exactly one
// writer. For concurrent runs over several step sizes, use [Sweep], which
// gives each run its own Integrator.
package geodesic
