package contour

import (
	"errors"
	"math"
	"testing"
)

func bowl(x, y float64) float64 { return x*x + y*y }
func hill(x, y float64) float64 { return 1 - (x*x + y*y) }

func TestSampleLevels(t *testing.T) {
	set, err := Sample(bowl, 60)
	if err != nil {
		t.Fatal(err)
	}
	if len(set) != DefaultLevels {
		t.Fatalf("expected %d contours, got %d", DefaultLevels, len(set))
	}
	for i, c := range set {
		if c.Level != i {
			t.Errorf("contour %d: expected level %d, got %d", i, i, c.Level)
		}
		if c.Level < 0 || c.Level > 9 {
			t.Errorf("level %d out of range", c.Level)
		}
		if i > 0 && c.Threshold <= set[i-1].Threshold {
			t.Errorf("thresholds not increasing at %d: %f <= %f", i, c.Threshold, set[i-1].Threshold)
		}
	}

	set, err = Sample(bowl, 20, WithLevels(4))
	if err != nil {
		t.Fatal(err)
	}
	if len(set) != 4 {
		t.Errorf("expected 4 contours, got %d", len(set))
	}
}

func TestRingsAreClosed(t *testing.T) {
	set, err := Sample(func(x, y float64) float64 {
		return math.Sin(3*x) * math.Cos(3*y)
	}, 40)
	if err != nil {
		t.Fatal(err)
	}
	rings := 0
	for _, c := range set {
		for _, p := range c.Polygons {
			for _, r := range p {
				rings++
				if len(r) < 4 {
					t.Errorf("level %d: ring too short (%d points)", c.Level, len(r))
					continue
				}
				if r[0] != r[len(r)-1] {
					t.Errorf("level %d: ring not closed: %v != %v", c.Level, r[0], r[len(r)-1])
				}
			}
		}
	}
	if rings == 0 {
		t.Error("expected some rings")
	}
}

func TestLowestLevelCoversGrid(t *testing.T) {
	const n = 30
	set, err := Sample(bowl, n)
	if err != nil {
		t.Fatal(err)
	}
	c := set[0]
	if len(c.Polygons) != 1 || len(c.Polygons[0]) != 1 {
		t.Fatalf("expected a single ring, got %d polygons", len(c.Polygons))
	}
	area := c.Polygons[0].Area()
	if area <= n*n-1 || area > n*n {
		t.Errorf("expected area close to %d, got %f", n*n, area)
	}
}

func TestHoles(t *testing.T) {
	const n = 41
	set, err := Sample(bowl, n)
	if err != nil {
		t.Fatal(err)
	}

	c := set[3]
	if len(c.Polygons) != 1 {
		t.Fatalf("expected 1 polygon, got %d", len(c.Polygons))
	}
	p := c.Polygons[0]
	if len(p) != 2 {
		t.Fatalf("expected exterior and one hole, got %d rings", len(p))
	}
	if p[0].Area() <= 0 {
		t.Errorf("expected positive exterior area, got %f", p[0].Area())
	}
	if p[1].Area() >= 0 {
		t.Errorf("expected negative hole area, got %f", p[1].Area())
	}

	center := Point{n / 2.0, n / 2.0}
	if p.Contains(center) {
		t.Error("center should fall in the hole")
	}
	if !p.Contains(Point{1, 1}) {
		t.Error("corner should be inside")
	}
}

func TestHillHasNoHoles(t *testing.T) {
	const n = 41
	set, err := Sample(hill, n)
	if err != nil {
		t.Fatal(err)
	}
	c := set[7]
	if len(c.Polygons) != 1 || len(c.Polygons[0]) != 1 {
		t.Fatalf("expected a single disc, got %v", c.Polygons)
	}
	if !c.Polygons[0].Contains(Point{n / 2.0, n / 2.0}) {
		t.Error("center should be inside")
	}
	if c.Polygons[0].Contains(Point{1, 1}) {
		t.Error("corner should be outside")
	}

	// the disc has radius sqrt(1-t) in field units, 20 cells per unit
	r := math.Sqrt(1-c.Threshold) * 20
	want := math.Pi * r * r
	if got := c.Polygons[0].Area(); math.Abs(got-want)/want > 0.05 {
		t.Errorf("expected area near %f, got %f", want, got)
	}
}

func TestGridTooSmall(t *testing.T) {
	for _, n := range []int{-1, 0, 1} {
		if _, err := Sample(bowl, n); !errors.Is(err, ErrGridTooSmall) {
			t.Errorf("n=%d: expected ErrGridTooSmall, got %v", n, err)
		}
	}
	if _, err := Sample(bowl, 2); err != nil {
		t.Errorf("n=2: unexpected error %v", err)
	}
}

func TestSampleGridOrientation(t *testing.T) {
	g, err := SampleGrid(func(x, y float64) float64 { return 10*x + y }, 3)
	if err != nil {
		t.Fatal(err)
	}
	expected := []float64{
		-9, 1, 11,
		-10, 0, 10,
		-11, -1, 9,
	}
	for i, e := range expected {
		if math.Abs(g.Values[i]-e) > 1e-12 {
			t.Errorf("index %d: expected %f, got %f", i, e, g.Values[i])
		}
	}
}

func TestNaNIsOutside(t *testing.T) {
	const n = 11
	set, err := Sample(func(x, y float64) float64 {
		if x < 0 {
			return math.NaN()
		}
		return 1
	}, n)
	if err != nil {
		t.Fatal(err)
	}
	if len(set) == 0 || len(set[0].Polygons) != 1 {
		t.Fatalf("expected one polygon, got %v", set)
	}
	for _, r := range set[0].Polygons[0] {
		for _, pt := range r {
			if pt.X < 5 {
				t.Errorf("vertex %v lies in the NaN half", pt)
			}
		}
	}

	empty, err := Sample(func(x, y float64) float64 { return math.NaN() }, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no contours for an all-NaN field, got %d", len(empty))
	}
}

func TestUnsmoothedVerticesOnMidpoints(t *testing.T) {
	set, err := Sample(bowl, 15, WithSmoothing(false))
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range set {
		for _, p := range c.Polygons {
			for _, r := range p {
				for _, pt := range r {
					if math.Mod(pt.X*2, 1) != 0 || math.Mod(pt.Y*2, 1) != 0 {
						t.Fatalf("vertex %v not on a half-cell position", pt)
					}
				}
			}
		}
	}
}

func TestThresholds(t *testing.T) {
	got := Thresholds([]float64{3, 0, math.NaN(), 9, math.Inf(1)}, 4)
	expected := []float64{0, 3, 6, 9}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if math.Abs(got[i]-expected[i]) > 1e-12 {
			t.Errorf("index %d: expected %f, got %f", i, expected[i], got[i])
		}
	}

	if got := Thresholds([]float64{2, 5}, 1); len(got) != 1 || got[0] != 2 {
		t.Errorf("expected [2], got %v", got)
	}
	if got := Thresholds([]float64{math.NaN()}, 10); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestAffine(t *testing.T) {
	const n = 21
	view := GridToView(n)
	tl := view.Point(Point{0.5, 0.5})
	br := view.Point(Point{n - 0.5, n - 0.5})
	if math.Abs(tl.X+1) > 1e-12 || math.Abs(tl.Y-1) > 1e-12 {
		t.Errorf("expected (-1, 1), got %v", tl)
	}
	if math.Abs(br.X-1) > 1e-12 || math.Abs(br.Y+1) > 1e-12 {
		t.Errorf("expected (1, -1), got %v", br)
	}

	a := Scale(2, 3).Translate(1, -1)
	b := Identity().Translate(5, 5)
	p := a.Then(b).Point(Point{1, 1})
	if p != (Point{8, 7}) {
		t.Errorf("expected (8, 7), got %v", p)
	}

	set, _ := Sample(hill, n)
	moved := view.Apply(set)
	if len(moved) != len(set) {
		t.Fatalf("expected %d contours, got %d", len(set), len(moved))
	}
	orig := set[5].Polygons[0][0][0]
	if moved[5].Polygons[0][0][0] != view.Point(orig) {
		t.Error("apply did not transform vertices")
	}
	if set[5].Polygons[0][0][0] != orig {
		t.Error("apply modified its input")
	}
}

func TestRingArea(t *testing.T) {
	square := Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}
	if got := math.Abs(square.Area()); got != 1 {
		t.Errorf("expected unit area, got %f", got)
	}
	tri := Ring{{0, 0}, {0, 3}, {4, 0}, {0, 0}}
	if got := tri.Area(); got != 6 {
		t.Errorf("expected area 6, got %f", got)
	}
	if got := (Polygon{tri, square}).Area(); got != 6+square.Area() {
		t.Errorf("expected holes subtracted, got %f", got)
	}
}

func TestSinglePeakKeepsTopLevel(t *testing.T) {
	g := Grid{N: 5, Values: make([]float64, 25)}
	g.Values[2*5+2] = 1

	set := g.Contours()
	top := set[len(set)-1]
	if top.Threshold != 1 {
		t.Fatalf("expected top threshold 1, got %f", top.Threshold)
	}
	if len(top.Polygons) != 1 {
		t.Fatalf("expected the peak node as one polygon, got %d", len(top.Polygons))
	}
	if a := top.Polygons[0].Area(); a < 0 {
		t.Errorf("expected non-negative area for the collapsed ring, got %f", a)
	}

	unsmoothed := g.Contours(WithSmoothing(false))
	if a := unsmoothed[len(unsmoothed)-1].Polygons[0].Area(); a <= 0 {
		t.Errorf("expected a positive area without smoothing, got %f", a)
	}
}
