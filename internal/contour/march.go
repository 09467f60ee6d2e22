package contour

import "math"

type segment [2]Point

// cases maps a 4-bit corner mask (bit 0 bottom-left, bit 1 bottom-right,
// bit 2 top-right, bit 3 top-left) to the edge segments of a cell.
// Points are offsets from the cell origin; the saddles 5 and 10 are
// resolved as two separate segments.
var cases = [16][]segment{
	{},
	{{{1.0, 1.5}, {0.5, 1.0}}},
	{{{1.5, 1.0}, {1.0, 1.5}}},
	{{{1.5, 1.0}, {0.5, 1.0}}},
	{{{1.0, 0.5}, {1.5, 1.0}}},
	{{{1.0, 1.5}, {0.5, 1.0}}, {{1.0, 0.5}, {1.5, 1.0}}},
	{{{1.0, 0.5}, {1.0, 1.5}}},
	{{{1.0, 0.5}, {0.5, 1.0}}},
	{{{0.5, 1.0}, {1.0, 0.5}}},
	{{{1.0, 1.5}, {1.0, 0.5}}},
	{{{0.5, 1.0}, {1.0, 0.5}}, {{1.5, 1.0}, {1.0, 1.5}}},
	{{{1.5, 1.0}, {1.0, 0.5}}},
	{{{0.5, 1.0}, {1.5, 1.0}}},
	{{{1.0, 1.5}, {1.5, 1.0}}},
	{{{0.5, 1.0}, {1.0, 1.5}}},
	{},
}

type fragment struct {
	start, end int
	ring       Ring
}

// above reports whether a sample counts as inside; NaN never does.
func above(v, threshold float64) int {
	if v >= threshold {
		return 1
	}
	return 0
}

// isorings walks the grid padded by one virtual row and column of
// outside samples, so every ring closes.
func (g Grid) isorings(threshold float64, emit func(Ring)) {
	dx, dy := g.N, g.N
	values := g.Values
	byStart := make(map[int]*fragment)
	byEnd := make(map[int]*fragment)
	var x, y int

	index := func(p Point) int {
		return int(p.X*2) + int(p.Y*float64(dx+1)*4)
	}

	stitch := func(line segment) {
		start := Point{line[0].X + float64(x), line[0].Y + float64(y)}
		end := Point{line[1].X + float64(x), line[1].Y + float64(y)}
		si, ei := index(start), index(end)

		if f, ok := byEnd[si]; ok {
			if h, ok := byStart[ei]; ok {
				delete(byEnd, f.end)
				delete(byStart, h.start)
				if f == h {
					f.ring = append(f.ring, end)
					emit(f.ring)
				} else {
					joined := &fragment{start: f.start, end: h.end, ring: concat(f.ring, h.ring)}
					byStart[f.start] = joined
					byEnd[h.end] = joined
				}
			} else {
				delete(byEnd, f.end)
				f.ring = append(f.ring, end)
				f.end = ei
				byEnd[ei] = f
			}
		} else if f, ok := byStart[ei]; ok {
			if h, ok := byEnd[si]; ok {
				delete(byStart, f.start)
				delete(byEnd, h.end)
				if f == h {
					f.ring = append(f.ring, end)
					emit(f.ring)
				} else {
					joined := &fragment{start: h.start, end: f.end, ring: concat(h.ring, f.ring)}
					byStart[h.start] = joined
					byEnd[f.end] = joined
				}
			} else {
				delete(byStart, f.start)
				f.ring = append(Ring{start}, f.ring...)
				f.start = si
				byStart[si] = f
			}
		} else {
			f := &fragment{start: si, end: ei, ring: Ring{start, end}}
			byStart[si] = f
			byEnd[ei] = f
		}
	}

	run := func(mask int) {
		for _, s := range cases[mask] {
			stitch(s)
		}
	}

	// first row, with the virtual row above it outside
	x, y = -1, -1
	t1 := above(values[0], threshold)
	run(t1 << 1)
	for x++; x < dx-1; x++ {
		t0 := t1
		t1 = above(values[x+1], threshold)
		run(t0 | t1<<1)
	}
	run(t1)

	for y++; y < dy-1; y++ {
		x = -1
		t1 = above(values[y*dx+dx], threshold)
		t2 := above(values[y*dx], threshold)
		run(t1<<1 | t2<<2)
		for x++; x < dx-1; x++ {
			t0 := t1
			t1 = above(values[y*dx+dx+x+1], threshold)
			t3 := t2
			t2 = above(values[y*dx+x+1], threshold)
			run(t0 | t1<<1 | t2<<2 | t3<<3)
		}
		run(t1 | t2<<3)
	}

	// last row, with the virtual row below it outside
	x = -1
	t2 := above(values[y*dx], threshold)
	run(t2 << 2)
	for x++; x < dx-1; x++ {
		t3 := t2
		t2 = above(values[y*dx+x+1], threshold)
		run(t2<<2 | t3<<3)
	}
	run(t2 << 3)
}

func concat(a, b Ring) Ring {
	out := make(Ring, 0, len(a)+len(b))
	return append(append(out, a...), b...)
}

// smoothLinear moves each vertex lying on a cell edge to the point where
// the linear interpolation of the two samples crosses threshold.
func (g Grid) smoothLinear(r Ring, threshold float64) {
	dx, dy := g.N, g.N
	for i := range r {
		x, y := r[i].X, r[i].Y
		xt, yt := int(x), int(y)
		if xt >= dx || yt >= dy {
			continue
		}
		v1 := valid(g.Values[yt*dx+xt])
		if x > 0 && x < float64(dx) && float64(xt) == x {
			r[i].X = smooth1(x, valid(g.Values[yt*dx+xt-1]), v1, threshold)
		}
		if y > 0 && y < float64(dy) && float64(yt) == y {
			r[i].Y = smooth1(y, valid(g.Values[(yt-1)*dx+xt]), v1, threshold)
		}
	}
}

func valid(v float64) float64 {
	if math.IsNaN(v) {
		return math.Inf(-1)
	}
	return v
}

func smooth1(x, v0, v1, threshold float64) float64 {
	a := threshold - v0
	b := v1 - v0
	var d float64
	if !math.IsInf(a, 0) || !math.IsInf(b, 0) {
		d = a / b
	} else {
		d = sign(a) / sign(b)
	}
	if math.IsNaN(d) {
		return x
	}
	return x + d - 0.5
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
