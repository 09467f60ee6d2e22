package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/san-kum/dynmap/internal/contour"
	"github.com/san-kum/dynmap/internal/dynamo"
)

// Margins around the plot box of a FieldView, in logical pixels.
const (
	MarginTop    = 12
	MarginRight  = 12
	MarginBottom = 24
	MarginLeft   = 24
)

// dotRadius is the current-point radius in logical pixels.
const dotRadius = 4

// FieldView draws a 2D trajectory over the iso-bands of a potential on
// [-1,1]². Unlike the Accumulator it redraws from scratch on every Render.
type FieldView struct {
	provider Provider
	ratio    float64
	opts     options

	width, height int
	img           draw.Image
	last          contour.Set
	destroyed     bool
}

func NewFieldView(p Provider, width, height int, opts ...Option) (*FieldView, error) {
	if p == nil {
		return nil, fmt.Errorf("no surface provider: %w", dynamo.ErrResourceUnavailable)
	}
	f := &FieldView{provider: p, ratio: p.PixelRatio(), opts: buildOptions(opts)}
	if err := f.allocate(width, height); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *FieldView) allocate(width, height int) error {
	dw, dh := deviceSize(width, height, f.ratio)
	img, err := acquire(f.provider, dw, dh)
	if err != nil {
		return err
	}
	release(f.provider, f.img)
	f.img = img
	f.width, f.height = width, height
	f.last = nil
	fill(f.img, f.opts.palette.Field)
	return nil
}

func (f *FieldView) check() error {
	if f == nil || f.destroyed {
		return dynamo.ErrUseAfterDestroy
	}
	return nil
}

// box returns the plot box in device pixels.
func (f *FieldView) box() (x, y, w, h float64) {
	r := f.ratio
	return MarginLeft * r, MarginTop * r,
		float64(f.width-MarginLeft-MarginRight) * r,
		float64(f.height-MarginTop-MarginBottom) * r
}

// ToPixel maps a point of [-1,1]² to device pixel coordinates.
func (f *FieldView) ToPixel(p dynamo.Vec2) (float64, float64) {
	x, y, w, h := f.box()
	return x + (p.X+1)/2*w, y + (1-p.Y)/2*h
}

// Render draws the contour bands of potential sampled on a grid×grid
// lattice, the last trail points of history as a path and the newest
// point as a dot. An empty history puts the dot at the origin.
func (f *FieldView) Render(history []dynamo.Vec2, potential contour.Func, grid int) error {
	if err := f.check(); err != nil {
		return err
	}
	fill(f.img, f.opts.palette.Field)
	f.last = nil

	if potential != nil {
		set, err := contour.Sample(potential, grid, contour.WithLevels(f.opts.levels))
		if err != nil {
			return fmt.Errorf("field contours: %w", err)
		}
		f.last = contour.GridToView(grid).Apply(set)
		f.drawBands(set, grid)
	}
	f.drawFrame()
	f.drawTrail(history)

	cur := dynamo.Vec2{}
	if len(history) > 0 {
		cur = history[len(history)-1]
	}
	f.drawDot(cur)
	return nil
}

// drawBands fills each contour inside the plot box, clipping anything
// that spills past it.
func (f *FieldView) drawBands(set contour.Set, grid int) {
	bx, by, bw, bh := f.box()
	iw, ih := int(bw), int(bh)
	if iw <= 0 || ih <= 0 {
		return
	}
	toBox := contour.GridToView(grid).Then(contour.Scale(bw/2, -bh/2).Translate(bw/2, bh/2))

	scratch := image.NewRGBA(image.Rect(0, 0, iw, ih))
	z := vector.NewRasterizer(iw, ih)
	edge := 0.5 * f.ratio
	for _, c := range set {
		z.Reset(iw, ih)
		for _, poly := range c.Polygons {
			for _, ring := range poly {
				addRing(z, ring, toBox)
			}
		}
		z.Draw(scratch, scratch.Bounds(), image.NewUniform(f.opts.palette.band(c.Level)), image.Point{})

		z.Reset(iw, ih)
		for _, poly := range c.Polygons {
			for _, ring := range poly {
				for i := 1; i < len(ring); i++ {
					p, q := toBox.Point(ring[i-1]), toBox.Point(ring[i])
					strokeSegment(z, p.X, p.Y, q.X, q.Y, edge)
				}
			}
		}
		z.Draw(scratch, scratch.Bounds(), image.NewUniform(f.opts.palette.BandEdge), image.Point{})
	}

	dst := image.Rect(int(bx), int(by), int(bx)+iw, int(by)+ih)
	draw.Draw(f.img, dst, scratch, image.Point{}, draw.Over)
}

func (f *FieldView) drawFrame() {
	bx, by, bw, bh := f.box()
	if bw <= 0 || bh <= 0 {
		return
	}
	x0, y0 := int(bx), int(by)
	x1, y1 := int(bx+bw), int(by+bh)
	t := max(1, int(math.Round(f.ratio)))
	c := f.opts.palette.FieldAxis
	blend(f.img, image.Rect(x0-t, y0-t, x1+t, y0), c)
	blend(f.img, image.Rect(x0-t, y1, x1+t, y1+t), c)
	blend(f.img, image.Rect(x0-t, y0, x0, y1), c)
	blend(f.img, image.Rect(x1, y0, x1+t, y1), c)
}

func (f *FieldView) drawTrail(history []dynamo.Vec2) {
	if len(history) > f.opts.trail {
		history = history[len(history)-f.opts.trail:]
	}
	if len(history) < 2 {
		return
	}
	b := f.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	for i := 1; i < len(history); i++ {
		x0, y0 := f.ToPixel(history[i-1])
		x1, y1 := f.ToPixel(history[i])
		strokeSegment(z, x0, y0, x1, y1, f.ratio)
	}
	z.Draw(f.img, b, image.NewUniform(f.opts.palette.Trail), image.Point{})
}

func (f *FieldView) drawDot(p dynamo.Vec2) {
	if !(dynamo.Vec{p.X, p.Y}).IsValid() {
		return
	}
	b := f.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	cx, cy := f.ToPixel(p)
	addCircle(z, cx, cy, dotRadius*f.ratio)
	z.Draw(f.img, b, image.NewUniform(f.opts.palette.FieldDot), image.Point{})
}

// Contours returns the bands of the last Render in [-1,1]² coordinates.
func (f *FieldView) Contours() contour.Set { return f.last }

func (f *FieldView) Size() (int, int) { return f.width, f.height }

func (f *FieldView) Resize(width, height int) error {
	if err := f.check(); err != nil {
		return err
	}
	return f.allocate(width, height)
}

func (f *FieldView) Destroy() error {
	if err := f.check(); err != nil {
		return err
	}
	release(f.provider, f.img)
	f.img = nil
	f.last = nil
	f.destroyed = true
	return nil
}

func (f *FieldView) Image() (*image.RGBA, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	return composite(f.img), nil
}

func (f *FieldView) WritePNG(w io.Writer) error {
	img, err := f.Image()
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func addRing(z *vector.Rasterizer, ring contour.Ring, t contour.Affine) {
	if len(ring) < 3 {
		return
	}
	p := t.Point(ring[0])
	z.MoveTo(float32(p.X), float32(p.Y))
	for _, pt := range ring[1:] {
		p = t.Point(pt)
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
}

// strokeSegment adds a w-wide quad along the segment. All quads share
// the same winding, so overlapping ones never cancel.
func strokeSegment(z *vector.Rasterizer, x0, y0, x1, y1, w float64) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return
	}
	nx, ny := -dy/l*w/2, dx/l*w/2
	z.MoveTo(float32(x0+nx), float32(y0+ny))
	z.LineTo(float32(x1+nx), float32(y1+ny))
	z.LineTo(float32(x1-nx), float32(y1-ny))
	z.LineTo(float32(x0-nx), float32(y0-ny))
	z.ClosePath()
}

func addCircle(z *vector.Rasterizer, cx, cy, r float64) {
	const n = 24
	z.MoveTo(float32(cx+r), float32(cy))
	for i := 1; i < n; i++ {
		a := 2 * math.Pi * float64(i) / n
		z.LineTo(float32(cx+r*math.Cos(a)), float32(cy+r*math.Sin(a)))
	}
	z.ClosePath()
}
