package contour

// Area returns the signed area of r, positive for exterior rings.
func (r Ring) Area() float64 {
	n := len(r)
	if n == 0 {
		return 0
	}
	area := r[n-1].Y*r[0].X - r[n-1].X*r[0].Y
	for i := 1; i < n; i++ {
		area += r[i-1].Y*r[i].X - r[i-1].X*r[i].Y
	}
	return area / 2
}

// Area is the exterior area minus the area of the holes.
func (p Polygon) Area() float64 {
	a := 0.0
	for _, r := range p {
		a += r.Area()
	}
	return a
}

// Contains reports whether pt lies inside the exterior and outside every
// hole. Points on a boundary count as inside.
func (p Polygon) Contains(pt Point) bool {
	if len(p) == 0 || p[0].contains(pt) == -1 {
		return false
	}
	for _, h := range p[1:] {
		if h.contains(pt) == 1 {
			return false
		}
	}
	return true
}

// containsRing returns 1 if the first decisive vertex of h is inside r,
// -1 if outside, 0 if every vertex lies on r.
func (r Ring) containsRing(h Ring) int {
	for _, pt := range h {
		if c := r.contains(pt); c != 0 {
			return c
		}
	}
	return 0
}

// contains is an even-odd test: 1 inside, -1 outside, 0 on the boundary.
func (r Ring) contains(pt Point) int {
	c := -1
	for i, j := 0, len(r)-1; i < len(r); j, i = i, i+1 {
		pi, pj := r[i], r[j]
		if segmentContains(pi, pj, pt) {
			return 0
		}
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) && pt.X < (pj.X-pi.X)*(pt.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			c = -c
		}
	}
	return c
}

func segmentContains(a, b, c Point) bool {
	if !collinear(a, b, c) {
		return false
	}
	if a.X == b.X {
		return within(a.Y, c.Y, b.Y)
	}
	return within(a.X, c.X, b.X)
}

func collinear(a, b, c Point) bool {
	return (b.X-a.X)*(c.Y-a.Y) == (c.X-a.X)*(b.Y-a.Y)
}

func within(p, q, r float64) bool {
	return p <= q && q <= r || r <= q && q <= p
}

// Affine maps (x, y) to (SX·x + TX, SY·y + TY).
type Affine struct {
	SX, SY float64
	TX, TY float64
}

func Identity() Affine { return Affine{SX: 1, SY: 1} }

func Scale(sx, sy float64) Affine { return Affine{SX: sx, SY: sy} }

// Translate appends a translation after a.
func (a Affine) Translate(tx, ty float64) Affine {
	a.TX += tx
	a.TY += ty
	return a
}

// Then composes a followed by b.
func (a Affine) Then(b Affine) Affine {
	return Affine{
		SX: b.SX * a.SX,
		SY: b.SY * a.SY,
		TX: b.SX*a.TX + b.TX,
		TY: b.SY*a.TY + b.TY,
	}
}

func (a Affine) Point(p Point) Point {
	return Point{a.SX*p.X + a.TX, a.SY*p.Y + a.TY}
}

// Apply returns a transformed copy of s.
func (a Affine) Apply(s Set) Set {
	out := make(Set, len(s))
	for i, c := range s {
		polys := make([]Polygon, len(c.Polygons))
		for j, p := range c.Polygons {
			poly := make(Polygon, len(p))
			for k, r := range p {
				ring := make(Ring, len(r))
				for m, pt := range r {
					ring[m] = a.Point(pt)
				}
				poly[k] = ring
			}
			polys[j] = poly
		}
		out[i] = Contour{Level: c.Level, Threshold: c.Threshold, Polygons: polys}
	}
	return out
}

// GridToView maps grid-index coordinates of an n×n grid onto [-1,1]²
// with y pointing up, so that sample (i, j) lands on its node position.
func GridToView(n int) Affine {
	step := 2 / float64(n-1)
	return Scale(step, -step).Translate(-1-step/2, 1+step/2)
}
