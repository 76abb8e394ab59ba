package viz

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/san-kum/blackholes/internal/experiment"
	"github.com/san-kum/blackholes/internal/physics"
)

func TestCanvasDisk(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetWindow(0, 0, 1)
	c.DrawDisk(0, 0, 0.1, nil)

	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n != 4 {
			t.Errorf("expected 4 cells per row, got %d", n)
		}
	}
	// origin projects to dot (4, 4), cell (2, 1)
	if []rune(lines[1])[2] == brailleBlank {
		t.Error("center cell should be lit")
	}
	if []rune(lines[0])[0] != brailleBlank {
		t.Error("corner cell should stay blank")
	}

	c.Clear()
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r != brailleBlank && r != '\n' }) {
		t.Error("clear should blank every cell")
	}
}

func TestCanvasPathClipped(t *testing.T) {
	c := NewCanvas(10, 5)
	c.SetWindow(0, 0, 1)
	// runs far outside the window on both ends
	c.DrawPath([]float64{-5, 5}, []float64{0, 0}, nil)

	lit := 0
	for _, r := range c.String() {
		if r != brailleBlank && r != '\n' {
			lit++
		}
	}
	if lit != 10 {
		t.Errorf("horizontal line should cross all 10 cells, lit %d", lit)
	}
}

func TestCanvasFit(t *testing.T) {
	c := NewCanvas(20, 10)
	c.Fit(0, [2][]float64{{-2, 2}, {-1, 1}})
	if c.centerX != 0 || c.centerY != 0 {
		t.Errorf("expected centered window, got (%v, %v)", c.centerX, c.centerY)
	}
	// 40 dots across a width of 4
	if c.scale != 10 {
		t.Errorf("expected scale 10, got %v", c.scale)
	}

	c.Fit(0)
	if c.scale != 20 {
		t.Errorf("empty fit should fall back to the unit window, got scale %v", c.scale)
	}
}

func TestOrbitView(t *testing.T) {
	cfg := experiment.DefaultOrbitConfig()
	cfg.Duration = 2
	o, err := experiment.NewOrbit(cfg, experiment.NewRegistry(), nil)
	if err != nil {
		t.Fatal(err)
	}
	res, err := o.Run(t.Context())
	if err != nil {
		t.Fatal(err)
	}

	out := OrbitView(res, 30, 12)
	if n := strings.Count(out, "\n"); n != 12 {
		t.Errorf("expected 12 rows, got %d", n)
	}
}

func TestSweepMap(t *testing.T) {
	res, err := experiment.Sweep(1, 6)
	if err != nil {
		t.Fatal(err)
	}
	out := SweepMap(res)
	for _, k := range []physics.Kind{physics.NearCircular, physics.FallIn} {
		if !strings.Contains(out, KindGlyph(k)) {
			t.Errorf("sweep map should contain %v glyph", k)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 1}, 2); got != "▁█" {
		t.Errorf("expected ▁█, got %q", got)
	}
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("expected placeholder, got %q", got)
	}
	if got := Sparkline([]float64{2, 2, 2}, 3); got != "▁▁▁" {
		t.Errorf("flat series should sit on the floor, got %q", got)
	}
}

func TestPlot(t *testing.T) {
	if Plot("none", 10, 3) != "" {
		t.Error("no series should plot nothing")
	}
	out := Plot("radius", 20, 5, []float64{1, 2, 3}, []float64{3, 2, 1})
	if !strings.Contains(out, "radius") {
		t.Error("plot should carry its caption")
	}
}

func TestSetTheme(t *testing.T) {
	prev := CurrentTheme.Name
	defer SetTheme(prev)

	SetTheme("sunset")
	if CurrentTheme.Name != "sunset" {
		t.Errorf("expected sunset, got %s", CurrentTheme.Name)
	}
	SetTheme("no-such-theme")
	if CurrentTheme.Name == "" {
		t.Error("unknown theme should fall back to a named theme")
	}
}
