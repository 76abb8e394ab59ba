package analysis

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/blackholes/internal/dynamo"
)

// Portrait is a set of points in a plane, either a trajectory in space or a
// curve in the radial phase plane.
type Portrait struct {
	X, Y []float64
}

func (p *Portrait) Len() int { return len(p.X) }

// TrackPortrait is the spatial track of a planar [x, y, vx, vy] run.
func TrackPortrait(res *dynamo.Result) *Portrait {
	p := &Portrait{X: make([]float64, len(res.States)), Y: make([]float64, len(res.States))}
	for i, x := range res.States {
		p.X[i], p.Y[i] = x[0], x[1]
	}
	return p
}

// RadialPortrait maps a planar run onto the (r, dr/dt) plane about center.
// Bound orbits trace closed curves there whatever their precession.
func RadialPortrait(res *dynamo.Result, center r3.Vec) *Portrait {
	p := &Portrait{X: make([]float64, len(res.States)), Y: make([]float64, len(res.States))}
	for i, x := range res.States {
		dx, dy := x[0]-center.X, x[1]-center.Y
		r := math.Hypot(dx, dy)
		p.X[i] = r
		if r > 0 {
			p.Y[i] = (dx*x[2] + dy*x[3]) / r
		}
	}
	return p
}

// PortraitToASCII draws the portrait on a width x height character grid,
// with axes where zero falls inside the bounds. When square is set both
// axes share one scale so circles stay round.
func PortraitToASCII(p *Portrait, width, height int, square bool) string {
	if p == nil || p.Len() == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := floats.Min(p.X), floats.Max(p.X)
	minY, maxY := floats.Min(p.Y), floats.Max(p.Y)
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	if square {
		// terminal cells are about twice as tall as wide
		span := math.Max(rangeX, 2*rangeY)
		midX, midY := (minX+maxX)/2, (minY+maxY)/2
		rangeX, rangeY = span, span/2
		minX, minY = midX-span/2, midY-span/4
	}
	minX -= rangeX * 0.05
	minY -= rangeY * 0.05
	rangeX *= 1.1
	rangeY *= 1.1

	col := func(x float64) int { return int((x - minX) / rangeX * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-minY)/rangeY*float64(height-1)) }
	inside := func(r, c int) bool { return r >= 0 && r < height && c >= 0 && c < width }

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	if c := col(0); c >= 0 && c < width {
		for r := range canvas {
			canvas[r][c] = '│'
		}
	}
	if r := row(0); r >= 0 && r < height {
		for c := range canvas[r] {
			if canvas[r][c] == '│' {
				canvas[r][c] = '┼'
			} else {
				canvas[r][c] = '─'
			}
		}
	}

	for i := range p.X {
		if r, c := row(p.Y[i]), col(p.X[i]); inside(r, c) {
			canvas[r][c] = '•'
		}
	}

	var sb strings.Builder
	for _, line := range canvas {
		sb.WriteString(string(line))
		sb.WriteRune('\n')
	}
	return sb.String()
}
