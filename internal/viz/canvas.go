package viz

import (
	"math"
	"strings"

	"github.com/san-kum/diffbot/internal/drive"
)

// Braille cells are 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
const brailleBlank = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille pixel grid of Width x Height cells, giving
// 2*Width x 4*Height dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a Bresenham line in dot coordinates.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Viewport maps world meters onto canvas dots with equal scale on both
// axes. +y points up on screen.
type Viewport struct {
	MinX, MinY float64
	Scale      float64
	dotsY      int
}

// Fit returns a viewport that shows every pose with a small margin.
func Fit(c *Canvas, poses []drive.Pose) Viewport {
	if len(poses) == 0 {
		return Viewport{Scale: 1, dotsY: c.Height * 4}
	}
	minX, maxX := poses[0].X, poses[0].X
	minY, maxY := poses[0].Y, poses[0].Y
	for _, p := range poses[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	spanX := math.Max(maxX-minX, 1e-3) * 1.1
	spanY := math.Max(maxY-minY, 1e-3) * 1.1
	dotsX, dotsY := float64(c.Width*2-1), float64(c.Height*4-1)
	scale := math.Min(dotsX/spanX, dotsY/spanY)

	return Viewport{
		MinX:  (minX+maxX)/2 - dotsX/scale/2,
		MinY:  (minY+maxY)/2 - dotsY/scale/2,
		Scale: scale,
		dotsY: c.Height * 4,
	}
}

func (v Viewport) Project(x, y float64) (int, int) {
	px := int(math.Round((x - v.MinX) * v.Scale))
	py := v.dotsY - 1 - int(math.Round((y-v.MinY)*v.Scale))
	return px, py
}

// DrawPath connects consecutive poses and marks the last heading with a
// short tick.
func (c *Canvas) DrawPath(v Viewport, poses []drive.Pose) {
	for i := 1; i < len(poses); i++ {
		x0, y0 := v.Project(poses[i-1].X, poses[i-1].Y)
		x1, y1 := v.Project(poses[i].X, poses[i].Y)
		c.DrawLine(x0, y0, x1, y1)
	}
	if len(poses) == 0 {
		return
	}
	last := poses[len(poses)-1]
	x0, y0 := v.Project(last.X, last.Y)
	c.DrawLine(x0, y0, x0+int(math.Round(4*math.Cos(last.Heading))), y0-int(math.Round(4*math.Sin(last.Heading))))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
