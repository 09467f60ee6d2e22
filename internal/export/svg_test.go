package export

import (
	"encoding/xml"
	"errors"
	"image/color"
	"io"
	"strings"
	"testing"

	"github.com/san-kum/dynmap/internal/contour"
	"github.com/san-kum/dynmap/internal/dynamo"
	"github.com/san-kum/dynmap/internal/maps"
	"github.com/san-kum/dynmap/internal/render"
	"github.com/san-kum/dynmap/internal/viz"
)

// wellFormed fails the test when s is not a single XML document.
func wellFormed(t *testing.T, s string) {
	t.Helper()
	d := xml.NewDecoder(strings.NewReader(s))
	for {
		_, err := d.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			t.Fatalf("malformed svg: %v", err)
		}
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2, "#fff", "#000") != "" {
		t.Error("expected empty output for nil canvas")
	}

	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	svg := CanvasToSVG(c, 2, "#ffffff", "#000000")
	wellFormed(t, svg)

	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 circles, got %d", n)
	}
	if !strings.Contains(svg, `width="8" height="8"`) {
		t.Error("expected 8x8 document")
	}
	if !strings.Contains(svg, `cx="7.0" cy="7.0"`) {
		t.Error("expected dot (3, 3) centred at (7, 7)")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	if TrajectoryToSVG([]dynamo.Vec2{{X: 1, Y: 1}}, 100, 100, "#0f0") != "" {
		t.Error("expected empty output for a single point")
	}

	pts := []dynamo.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}
	svg := TrajectoryToSVG(pts, 120, 60, "#00ff00")
	wellFormed(t, svg)

	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments, got %d", strings.Count(svg, " L"))
	}
	// x spans [-0.2, 2.2] after padding, so x=0 maps to 120*0.2/2.4 = 10
	if !strings.Contains(svg, `d="M10.0,`) {
		t.Errorf("expected path to start at x=10, got %s", svg)
	}
}

func TestFieldToSVG(t *testing.T) {
	well := maps.NewWell()
	set, err := contour.Sample(well.Potential, 20)
	if err != nil {
		t.Fatal(err)
	}
	view := contour.GridToView(20).Apply(set)

	history := []dynamo.Vec2{{X: 0.5, Y: 0.5}, {X: 0.25, Y: 0.25}, {X: 0, Y: 0}}
	svg := FieldToSVG(view, history, 200, 150, render.DefaultPalette(), 40)
	wellFormed(t, svg)

	if n := strings.Count(svg, "data-level="); n == 0 || n > render.DefaultLevels {
		t.Errorf("expected 1..%d band paths, got %d", render.DefaultLevels, n)
	}
	if !strings.Contains(svg, `fill-opacity="0.902"`) {
		t.Error("expected translucent band fill")
	}
	// the plot box is 164x114 at (24, 12); the origin sits at its centre
	if !strings.Contains(svg, `<circle cx="106.00" cy="69.00"`) {
		t.Errorf("expected dot at the box centre, got %s", svg)
	}
}

func TestFieldToSVGTrail(t *testing.T) {
	history := make([]dynamo.Vec2, 10)
	for i := range history {
		history[i] = dynamo.Vec2{X: float64(i) / 10, Y: 0}
	}

	svg := FieldToSVG(nil, history, 100, 100, render.DefaultPalette(), 3)
	if n := strings.Count(svg, " L"); n != 2 {
		t.Errorf("expected 2 trail segments, got %d", n)
	}

	svg = FieldToSVG(nil, history, 100, 100, render.DefaultPalette(), 0)
	if strings.Contains(svg, "stroke-width=\"1\"") {
		t.Error("expected no trail path")
	}
	// the dot still follows the newest point
	if !strings.Contains(svg, `<circle cx="84.80"`) {
		t.Errorf("expected dot at x=0.9, got %s", svg)
	}
}

func TestPaint(t *testing.T) {
	if got := paint("fill", color.NRGBA{255, 0, 16, 255}); got != `fill="#ff0010"` {
		t.Errorf("expected opaque fill, got %s", got)
	}
	if got := paint("stroke", color.NRGBA{0, 0, 0, 128}); got != `stroke="#000000" stroke-opacity="0.502"` {
		t.Errorf("expected stroke with opacity, got %s", got)
	}
}
