package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/blackholes/internal/experiment"
	"github.com/san-kum/blackholes/internal/physics"
)

// Track is one polyline of an SVG scene.
type Track struct {
	X, Y   []float64
	Stroke string
}

// Disk is a filled circle in world coordinates.
type Disk struct {
	X, Y, R float64
	Fill    string
}

// Scene is a set of tracks and disks drawn on one square world window.
type Scene struct {
	Width, Height int
	Background    string
	Tracks        []Track
	Disks         []Disk
}

var theoryStroke = map[physics.Theory]string{
	physics.Schwarzschild: "#ff00ff",
	physics.Newtonian:     "#00ffff",
}

// OrbitScene draws both bodies of an orbit run around the event horizon.
func OrbitScene(res *experiment.OrbitResult, width, height int) *Scene {
	s := &Scene{Width: width, Height: height, Background: "#0a0a0a"}
	bh := res.Parameters.Source
	s.Disks = append(s.Disks, Disk{X: bh.Position.X, Y: bh.Position.Y, R: bh.SchwarzschildRadius(), Fill: "#ffffff"})
	// Newtonian first so the Schwarzschild track is drawn on top
	for i := len(res.Bodies()) - 1; i >= 0; i-- {
		b := res.Bodies()[i]
		if b == nil || b.Result == nil {
			continue
		}
		xs, ys := b.Path()
		s.Tracks = append(s.Tracks, Track{X: xs, Y: ys, Stroke: theoryStroke[b.Theory]})
	}
	return s
}

// TrackScene draws a single stored track, with an optional horizon of
// radius horizon at the origin.
func TrackScene(xs, ys []float64, theory physics.Theory, horizon float64, width, height int) *Scene {
	s := &Scene{Width: width, Height: height, Background: "#0a0a0a"}
	if horizon > 0 {
		s.Disks = append(s.Disks, Disk{R: horizon, Fill: "#ffffff"})
	}
	s.Tracks = append(s.Tracks, Track{X: xs, Y: ys, Stroke: theoryStroke[theory]})
	return s
}

// window returns the center and half-width of a square covering every track
// plus 10% padding.
func (s *Scene) window() (cx, cy, half float64) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, t := range s.Tracks {
		if len(t.X) == 0 {
			continue
		}
		minX, maxX = math.Min(minX, floats.Min(t.X)), math.Max(maxX, floats.Max(t.X))
		minY, maxY = math.Min(minY, floats.Min(t.Y)), math.Max(maxY, floats.Max(t.Y))
	}
	for _, d := range s.Disks {
		minX, maxX = math.Min(minX, d.X-d.R), math.Max(maxX, d.X+d.R)
		minY, maxY = math.Min(minY, d.Y-d.R), math.Max(maxY, d.Y+d.R)
	}
	if math.IsInf(minX, 0) {
		return 0, 0, 1
	}
	half = 0.55 * math.Max(maxX-minX, maxY-minY)
	if half == 0 {
		half = 1
	}
	return (minX + maxX) / 2, (minY + maxY) / 2, half
}

// WriteSVG renders the scene with y pointing up.
func (s *Scene) WriteSVG(w io.Writer) error {
	cx, cy, half := s.window()
	scale := math.Min(float64(s.Width), float64(s.Height)) / (2 * half)
	px := func(x float64) float64 { return float64(s.Width)/2 + (x-cx)*scale }
	py := func(y float64) float64 { return float64(s.Height)/2 - (y-cy)*scale }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, s.Background)

	for _, t := range s.Tracks {
		if len(t.X) < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, t.Stroke)
		for i := range t.X {
			if i > 0 {
				sb.WriteString(" L")
			}
			fmt.Fprintf(&sb, "%.1f,%.1f", px(t.X[i]), py(t.Y[i]))
		}
		sb.WriteString("\"/>\n")
	}
	for _, d := range s.Disks {
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			px(d.X), py(d.Y), math.Max(d.R*scale, 1), d.Fill)
	}
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
