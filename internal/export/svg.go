package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/diffbot/internal/drive"
)

// TrajectorySVG draws poses as a polyline with equal scale on both axes.
// The start is marked green and the end red. Fewer than two poses give an
// empty string.
func TrajectorySVG(poses []drive.Pose, width, height int, stroke string) string {
	if len(poses) < 2 {
		return ""
	}

	minX, maxX := poses[0].X, poses[0].X
	minY, maxY := poses[0].Y, poses[0].Y
	for _, p := range poses {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	span *= 1.2
	scale := math.Min(float64(width), float64(height)) / span
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	project := func(p drive.Pose) (float64, float64) {
		return float64(width)/2 + (p.X-cx)*scale, float64(height)/2 - (p.Y-cy)*scale
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`, width, height, width, height, stroke)

	for i, p := range poses {
		x, y := project(p)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n")

	sx, sy := project(poses[0])
	ex, ey := project(poses[len(poses)-1])
	fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"3\" fill=\"#00ff88\"/>\n", sx, sy)
	fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"3\" fill=\"#ff4444\"/>\n", ex, ey)
	sb.WriteString("</svg>\n")
	return sb.String()
}
