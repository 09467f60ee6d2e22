// Package contour extracts iso-level polygons from a scalar field sampled
// on a square grid over [-1,1]².
//
// Rings are produced by marching squares with linear interpolation along
// cell edges, stitched into closed rings and grouped into polygons: rings
// with positive signed area are exteriors, the others are holes attached
// to the exterior that contains them. Coordinates are in grid-index
// space, where sample (i, j) sits at (i+0.5, j+0.5) and j = 0 is the top
// row; use [GridToView] to map them back onto the field's domain.
package contour

import (
	"errors"
	"math"

	"github.com/san-kum/dynmap/internal/dynamo"
)

// DefaultLevels is the number of thresholds used when none is given.
const DefaultLevels = 10

var ErrGridTooSmall = errors.New("contour: grid needs at least 2x2 samples")

// Func is a scalar field over the plane.
type Func func(x, y float64) float64

type Point struct {
	X, Y float64
}

// Ring is a closed polyline; the first and last points are equal.
type Ring []Point

// Polygon is an exterior ring followed by its holes.
type Polygon []Ring

// Contour is the region where the field is >= Threshold.
type Contour struct {
	Level     int
	Threshold float64
	Polygons  []Polygon
}

// Set holds one contour per threshold, in increasing threshold order.
type Set []Contour

type options struct {
	levels int
	smooth bool
}

type Option func(*options)

// WithLevels sets the number of evenly spaced thresholds.
func WithLevels(k int) Option {
	return func(o *options) {
		if k > 0 {
			o.levels = k
		}
	}
}

// WithSmoothing toggles linear interpolation along cell edges. Without it
// ring vertices sit on cell edge midpoints.
func WithSmoothing(on bool) Option {
	return func(o *options) { o.smooth = on }
}

// Grid is an n×n row-major sampling of a field; Values[j*N+i] is the
// sample at column i, row j.
type Grid struct {
	N      int
	Values []float64
}

// SampleGrid evaluates f once per node. Column i sits at x = -1 + 2i/(n-1)
// and row j at y = 1 - 2j/(n-1), so row 0 is the top edge.
func SampleGrid(f Func, n int) (Grid, error) {
	if n < 2 {
		return Grid{}, ErrGridTooSmall
	}
	g := Grid{N: n, Values: make([]float64, n*n)}
	step := 2 / float64(n-1)
	for j := 0; j < n; j++ {
		y := 1 - float64(j)*step
		for i := 0; i < n; i++ {
			g.Values[j*n+i] = f(-1+float64(i)*step, y)
		}
	}
	return g, nil
}

// Sample grids f at n×n nodes and contours the result.
func Sample(f Func, n int, opts ...Option) (Set, error) {
	g, err := SampleGrid(f, n)
	if err != nil {
		return nil, err
	}
	return g.Contours(opts...), nil
}

// Contours builds one contour per threshold of the grid's value range.
func (g Grid) Contours(opts ...Option) Set {
	o := options{levels: DefaultLevels, smooth: true}
	for _, opt := range opts {
		opt(&o)
	}

	thresholds := Thresholds(g.Values, o.levels)
	set := make(Set, 0, len(thresholds))
	for i, t := range thresholds {
		set = append(set, Contour{Level: i, Threshold: t, Polygons: g.contour(t, o.smooth)})
	}

	dynamo.Logger().Debug("contours traced", "grid", g.N, "levels", len(set))
	return set
}

// Thresholds returns k values spaced evenly from the minimum to the
// maximum finite value: min + i/(k-1)·(max-min). With k == 1 it returns
// the minimum. It returns nil when no value is finite.
func Thresholds(values []float64, k int) []float64 {
	if k <= 0 {
		return nil
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return nil
	}
	if k == 1 {
		return []float64{lo}
	}
	out := make([]float64, k)
	for i := range out {
		out[i] = lo + float64(i)/float64(k-1)*(hi-lo)
	}
	return out
}

func (g Grid) contour(threshold float64, smooth bool) []Polygon {
	var polygons []Polygon
	var holes []Ring

	// orientation is taken before smoothing, which can collapse a ring
	// around a single node sitting exactly on the threshold
	g.isorings(threshold, func(r Ring) {
		exterior := r.Area() > 0
		if smooth {
			g.smoothLinear(r, threshold)
		}
		if exterior {
			polygons = append(polygons, Polygon{r})
		} else {
			holes = append(holes, r)
		}
	})

	for _, h := range holes {
		for i := range polygons {
			if polygons[i][0].containsRing(h) != -1 {
				polygons[i] = append(polygons[i], h)
				break
			}
		}
	}
	return polygons
}
