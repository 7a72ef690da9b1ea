package export

import (
	"strings"
	"testing"

	"github.com/ravi-l/povsim/internal/storage"
)

func TestTrajectoryToSVG(t *testing.T) {
	samples := []storage.Sample{
		{Time: 0, Pos: [3]float64{0, 3, 0}},
		{Time: 0.01, Pos: [3]float64{0.5, 2.9, 0}},
		{Time: 0.02, Pos: [3]float64{1, 2.7, 0}},
	}

	svg := TrajectoryToSVG(samples, 400, 300, "#00ff00")

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("expected XML header")
	}
	if !strings.Contains(svg, `width="400" height="300"`) {
		t.Error("expected requested dimensions")
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("expected stroke color")
	}
	if strings.Count(svg, " L") != len(samples)-1 {
		t.Errorf("expected %d line segments", len(samples)-1)
	}
}

func TestTrajectoryToSVGTooFewPoints(t *testing.T) {
	if svg := TrajectoryToSVG([]storage.Sample{{}}, 100, 100, "red"); svg != "" {
		t.Error("expected empty output for a single point")
	}
}
