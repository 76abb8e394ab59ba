package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/floats"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot canvas of Width x Height cells, that is
// 2*Width x 4*Height dots, mapped onto a square window of world
// coordinates. Each cell takes the style of the last layer drawn into it.
type Canvas struct {
	Width, Height int
	grid          [][]rune
	styles        [][]*lipgloss.Style

	// world window
	centerX, centerY float64
	scale            float64 // dots per world unit
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, scale: 1}
	c.grid = make([][]rune, h)
	c.styles = make([][]*lipgloss.Style, h)
	for i := range c.grid {
		c.grid[i] = []rune(strings.Repeat(string(rune(brailleBlank)), w))
		c.styles[i] = make([]*lipgloss.Style, w)
	}
	return c
}

// Fit centers the window on the bounding box of the given paths, padded by
// margin, keeping one scale on both axes.
func (c *Canvas) Fit(margin float64, paths ...[2][]float64) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range paths {
		if len(p[0]) == 0 {
			continue
		}
		minX, maxX = math.Min(minX, floats.Min(p[0])), math.Max(maxX, floats.Max(p[0]))
		minY, maxY = math.Min(minY, floats.Min(p[1])), math.Max(maxY, floats.Max(p[1]))
	}
	if math.IsInf(minX, 0) {
		minX, maxX, minY, maxY = -1, 1, -1, 1
	}
	c.SetWindow((minX+maxX)/2, (minY+maxY)/2, (1+margin)*math.Max(maxX-minX, maxY-minY)/2)
}

// SetWindow shows the square of half-width radius around (cx, cy).
func (c *Canvas) SetWindow(cx, cy, radius float64) {
	if radius <= 0 {
		radius = 1
	}
	dots := math.Min(float64(2*c.Width), float64(4*c.Height))
	c.centerX, c.centerY = cx, cy
	c.scale = dots / (2 * radius)
}

func (c *Canvas) project(x, y float64) (int, int) {
	px := float64(c.Width) + (x-c.centerX)*c.scale
	py := float64(2*c.Height) - (y-c.centerY)*c.scale
	return int(math.Round(px)), int(math.Round(py))
}

// Set lights the dot at dot coordinates (x, y).
func (c *Canvas) Set(x, y int, style *lipgloss.Style) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= pixelMap[y%4][x%2]
	if style != nil {
		c.styles[row][col] = style
	}
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = brailleBlank
			c.styles[i][j] = nil
		}
	}
}

// line draws between dot coordinates with Bresenham's algorithm.
func (c *Canvas) line(x0, y0, x1, y1 int, style *lipgloss.Style) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		c.Set(x0, y0, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		if e2 := 2 * err; e2 > -dy {
			err -= dy
			x0 += sx
		} else if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawPath joins consecutive world points with lines.
func (c *Canvas) DrawPath(xs, ys []float64, style *lipgloss.Style) {
	for i := range xs {
		x, y := c.project(xs[i], ys[i])
		if i == 0 {
			c.Set(x, y, style)
			continue
		}
		px, py := c.project(xs[i-1], ys[i-1])
		c.line(px, py, x, y, style)
	}
}

// DrawDisk fills the world disk of radius r around (cx, cy).
func (c *Canvas) DrawDisk(cx, cy, r float64, style *lipgloss.Style) {
	x0, y0 := c.project(cx, cy)
	rd := int(math.Ceil(r * c.scale))
	for dy := -rd; dy <= rd; dy++ {
		for dx := -rd; dx <= rd; dx++ {
			if float64(dx*dx+dy*dy) <= r*r*c.scale*c.scale {
				c.Set(x0+dx, y0+dy, style)
			}
		}
	}
	c.Set(x0, y0, style)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.grid {
		for j, r := range row {
			if s := c.styles[i][j]; s != nil {
				b.WriteString(s.Render(string(r)))
			} else {
				b.WriteRune(r)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
