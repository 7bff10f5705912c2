package viz

import (
	"math"

	"github.com/lorenzo-frittoli/black-hole-sim/internal/geodesic"
)

// OrbitView projects polar trajectory samples onto a canvas: x = r·cos(phi),
// y = r·sin(phi), centered on the black hole, which is drawn as a filled disc
// at the capture radius.
type OrbitView struct {
	canvas        *Canvas
	captureRadius float64
	scale         float64 // world units per sub-pixel
	cx, cy        int     // canvas center, sub-pixels
}

// NewOrbitView sizes the projection so a circle of radius extent fits the
// canvas with a small margin.
func NewOrbitView(width, height int, extent, captureRadius float64) *OrbitView {
	subW := width * 2
	subH := height * 4

	half := subW
	if subH < half {
		half = subH
	}
	// 5% margin on the shorter axis.
	scale := 2 * extent / (float64(half) * 0.95)
	if scale <= 0 {
		scale = 1
	}

	return &OrbitView{
		canvas:        NewCanvas(width, height),
		captureRadius: captureRadius,
		scale:         scale,
		cx:            subW / 2,
		cy:            subH / 2,
	}
}

// Canvas exposes the backing canvas, rendered by the latest Render call.
func (v *OrbitView) Canvas() *Canvas {
	return v.canvas
}

func (v *OrbitView) project(smp geodesic.Sample) (int, int, bool) {
	if !smp.IsValid() {
		return 0, 0, false
	}
	x := smp.Distance * math.Cos(smp.Angle)
	y := smp.Distance * math.Sin(smp.Angle)
	// Screen y grows downward.
	return v.cx + int(x/v.scale), v.cy - int(y/v.scale), true
}

// Render draws the horizon disc and the first n samples of the trajectory,
// returning the canvas text. n past the end draws the whole trajectory.
func (v *OrbitView) Render(tr *geodesic.Trajectory, n int) string {
	if n > tr.Len() {
		n = tr.Len()
	}

	v.canvas.Clear()
	v.canvas.FillCircle(v.cx, v.cy, int(v.captureRadius/v.scale))

	havePrev := false
	var px, py int
	for i := 0; i < n; i++ {
		x, y, ok := v.project(tr.At(i))
		if !ok {
			havePrev = false
			continue
		}
		if havePrev {
			v.canvas.DrawLine(px, py, x, y)
		} else {
			v.canvas.Set(x, y)
		}
		px, py = x, y
		havePrev = true
	}

	return v.canvas.String()
}

// Extent picks a drawing radius covering the whole finite trajectory.
func Extent(tr *geodesic.Trajectory) float64 {
	max := 0.0
	for _, r := range tr.Distances {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		if math.Abs(r) > max {
			max = math.Abs(r)
		}
	}
	if max == 0 {
		max = 1
	}
	return max
}
