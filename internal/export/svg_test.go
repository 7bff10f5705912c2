package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lorenzo-frittoli/black-hole-sim/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 2)
	c.Set(0, 0)
	c.Set(3, 7)

	svg := CanvasToSVG(c, 4)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing xml header")
	}
	if !strings.Contains(svg, "<svg xmlns=") {
		t.Error("missing svg element")
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("missing closing tag")
	}
}

func TestCanvasToSVGNil(t *testing.T) {
	if got := CanvasToSVG(nil, 4); got != "" {
		t.Errorf("expected empty string for nil canvas, got %q", got)
	}
}

func TestWriteSVG(t *testing.T) {
	c := viz.NewCanvas(2, 2)
	c.DrawLine(0, 0, 3, 7)

	path := filepath.Join(t.TempDir(), "orbit.svg")
	if err := WriteSVG(path, c, 4); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if !strings.Contains(string(data), "<circle") {
		t.Error("expected at least one dot in written file")
	}
}
