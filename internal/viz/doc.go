// Package viz renders trajectories in the terminal.
//
// Two consumers share the same Trajectory contract: [OrbitView] draws a
// static Cartesian projection of the orbit onto a Braille canvas, and [Model]
// is a bubbletea program that animates the fall while it integrates.
package viz
