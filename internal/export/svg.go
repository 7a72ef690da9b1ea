// Package export renders recorded trajectories as standalone SVG images for
// quick inspection without a raytracer.
package export

import (
	"fmt"
	"strings"

	"github.com/ravi-l/povsim/internal/storage"
)

// TrajectoryToSVG plots the x/y path of the recorded samples as a polyline
// on a dark background.
func TrajectoryToSVG(samples []storage.Sample, width, height int, strokeColor string) string {
	if len(samples) < 2 {
		return ""
	}

	minX, maxX := samples[0].Pos[0], samples[0].Pos[0]
	minY, maxY := samples[0].Pos[1], samples[0].Pos[1]
	for _, s := range samples {
		minX = min(minX, s.Pos[0])
		maxX = max(maxX, s.Pos[0])
		minY = min(minY, s.Pos[1])
		maxY = max(maxY, s.Pos[1])
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, s := range samples {
		x := (s.Pos[0] - minX) / rangeX * float64(width)
		y := float64(height) - (s.Pos[1]-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
