package analysis_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lorenzo-frittoli/black-hole-sim/internal/analysis"
	"github.com/lorenzo-frittoli/black-hole-sim/internal/geodesic"
)

var _ = Describe("Summarize", func() {
	run := func(params geodesic.Params, cfg geodesic.Config) *geodesic.Trajectory {
		in, err := geodesic.New(params, cfg)
		Expect(err).NotTo(HaveOccurred())
		tr, err := in.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		return tr
	}

	Context("with a captured plunging orbit", func() {
		params := geodesic.Params{
			Mass: 1, Energy: 2, AngularMomentum: 15,
			StartDistance: 30, StartAngle: 3.14,
		}
		cfg := geodesic.Config{StepSize: 1.0 / 1000, CaptureRadius: 2, MaxSteps: 1_000_000}

		It("reports capture and finite samples", func() {
			tr := run(params, cfg)
			s := analysis.Summarize(tr, cfg.StepSize, cfg.CaptureRadius)

			Expect(s.Captured).To(BeTrue())
			Expect(s.Finite).To(BeTrue())
			Expect(s.Steps).To(Equal(tr.Len() - 1))
		})

		It("tracks the radial extremes", func() {
			tr := run(params, cfg)
			s := analysis.Summarize(tr, cfg.StepSize, cfg.CaptureRadius)

			Expect(s.Apoapsis).To(BeNumerically(">=", 30))
			Expect(s.Periapsis).To(BeNumerically("<=", 2))
			Expect(s.Periapsis).To(BeNumerically("<", s.Apoapsis))
		})

		It("accumulates both clocks", func() {
			tr := run(params, cfg)
			s := analysis.Summarize(tr, cfg.StepSize, cfg.CaptureRadius)

			Expect(s.ProperTime).To(BeNumerically(">", 0))
			// Coordinate time runs fast relative to the falling particle.
			Expect(s.CoordinateTime).To(BeNumerically(">", s.ProperTime))
			Expect(s.MeanDilation).To(BeNumerically(">", 1))
		})

		It("counts angular windings", func() {
			tr := run(params, cfg)
			s := analysis.Summarize(tr, cfg.StepSize, cfg.CaptureRadius)

			Expect(s.Windings).To(BeNumerically(">", 1))
		})
	})

	Context("with zero angular momentum", func() {
		It("reports no windings", func() {
			params := geodesic.Params{
				Mass: 1, Energy: 2, StartDistance: 30, StartAngle: 3.14,
			}
			cfg := geodesic.Config{StepSize: 1.0 / 1000, CaptureRadius: 2, MaxSteps: 1_000_000}

			tr := run(params, cfg)
			s := analysis.Summarize(tr, cfg.StepSize, cfg.CaptureRadius)

			Expect(s.Windings).To(BeZero())
		})
	})

	Context("with a degenerate single-sample trajectory", func() {
		It("summarizes the seed alone", func() {
			params := geodesic.Params{
				Mass: 1, Energy: 2, AngularMomentum: 15, StartDistance: 2,
			}
			tr := run(params, geodesic.DefaultConfig())

			s := analysis.Summarize(tr, geodesic.DefaultStepSize, geodesic.DefaultCaptureRadius)
			Expect(s.Steps).To(BeZero())
			Expect(s.ProperTime).To(BeZero())
			Expect(s.Captured).To(BeTrue())
			Expect(s.Periapsis).To(Equal(2.0))
			Expect(s.Apoapsis).To(Equal(2.0))
		})
	})

	Context("with non-finite samples", func() {
		It("flags the trajectory as poisoned", func() {
			tr := &geodesic.Trajectory{
				Distances: []float64{30, math.NaN()},
				Angles:    []float64{0, 0},
				Speeds:    []float64{0, 0},
				Times:     []float64{0, math.Inf(1)},
			}

			s := analysis.Summarize(tr, 1.0/1000, 2)
			Expect(s.Finite).To(BeFalse())
		})
	})

	Context("with an empty trajectory", func() {
		It("returns the zero summary", func() {
			s := analysis.Summarize(&geodesic.Trajectory{}, 1.0/1000, 2)
			Expect(s).To(Equal(analysis.Summary{}))
		})
	})
})
