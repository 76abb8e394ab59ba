package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/blackholes/internal/experiment"
	"github.com/san-kum/blackholes/internal/physics"
)

// Plot draws one or more series as a line chart colored by the current
// theme.
func Plot(caption string, width, height int, series ...[]float64) string {
	if len(series) == 0 {
		return ""
	}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
	}
	if caption != "" {
		opts = append(opts, asciigraph.Caption(caption))
	}
	if len(series) > 1 && len(CurrentTheme.SeriesColors) >= len(series) {
		opts = append(opts, asciigraph.SeriesColors(CurrentTheme.SeriesColors[:len(series)]...))
	}
	if len(series) == 1 {
		return asciigraph.Plot(series[0], opts...)
	}
	return asciigraph.PlotMany(series, opts...)
}

// OrbitView draws the paths of both bodies around the black hole, with the
// Schwarzschild radius filled in.
func OrbitView(res *experiment.OrbitResult, width, height int) string {
	c := NewCanvas(width, height)

	var paths [][2][]float64
	for _, b := range res.Bodies() {
		if b == nil || b.Result == nil {
			continue
		}
		xs, ys := b.Path()
		paths = append(paths, [2][]float64{xs, ys})
	}
	c.Fit(0.1, paths...)

	bh := res.Parameters.Source
	horizon := Subtle.Foreground(CurrentTheme.Horizon)
	c.DrawDisk(bh.Position.X, bh.Position.Y, bh.SchwarzschildRadius(), &horizon)

	// Newtonian first so the Schwarzschild path wins shared cells.
	for i := len(res.Bodies()) - 1; i >= 0; i-- {
		b := res.Bodies()[i]
		if b == nil || b.Result == nil {
			continue
		}
		xs, ys := b.Path()
		style := TheoryStyle(b.Theory)
		c.DrawPath(xs, ys, &style)
	}
	return c.String()
}

// SweepMap renders a sweep as a grid of kind glyphs with energy control on
// the vertical axis, increasing upward.
func SweepMap(res *experiment.SweepResult) string {
	n := len(res.Cells)
	if n == 0 {
		return ""
	}
	var b strings.Builder
	for j := n - 1; j >= 0; j-- {
		fmt.Fprintf(&b, "%s ", Subtle.Render(fmt.Sprintf("%4.2f", float64(j)/float64(n-1))))
		for i := 0; i < n; i++ {
			k := res.Cells[i][j].Kind
			b.WriteString(KindStyle(k).Render(KindGlyph(k)))
		}
		b.WriteByte('\n')
	}
	b.WriteString(Subtle.Render("     L → "))
	b.WriteByte('\n')
	for _, k := range []physics.Kind{physics.NearCircular, physics.Elliptic, physics.FlyBy, physics.NearCatch, physics.FallIn} {
		fmt.Fprintf(&b, "%s %s  ", KindStyle(k).Render(KindGlyph(k)), k)
	}
	b.WriteByte('\n')
	return b.String()
}

// InspiralView draws one frame of a binary inspiral on a normalized window.
func InspiralView(f experiment.Frame, width, height int) string {
	c := NewCanvas(width, height)
	c.SetWindow(0, 0, 1.2)

	if f.Merged {
		r := f.Final.SchwarzschildRadius()
		c.DrawDisk(f.Final.Position.X, f.Final.Position.Y, max(r, 0.05), &Schwarzschild)
	} else {
		c.DrawDisk(f.First.X, f.First.Y, 0.08, &Schwarzschild)
		c.DrawDisk(f.Second.X, f.Second.Y, 0.08, &Newtonian)
	}
	return c.String()
}
