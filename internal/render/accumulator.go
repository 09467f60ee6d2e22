package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"

	"github.com/san-kum/dynmap/internal/dynamo"
)

// Window is the data-space rectangle mapped onto the pixel buffer.
// The accumulator keeps the value axis at [0,1].
type Window struct {
	ControlMin, ControlMax float64
	ValueMin, ValueMax     float64
}

func DefaultWindow() Window {
	return Window{
		ControlMin: DefaultControlMin,
		ControlMax: DefaultControlMax,
		ValueMin:   0,
		ValueMax:   1,
	}
}

// normalize maps c into [0,1] across the control range.
func (w Window) normalize(c float64) float64 {
	return clamp01((c - w.ControlMin) / (w.ControlMax - w.ControlMin))
}

// Accumulator is a persistent density raster for bifurcation diagrams.
//
// Points are composited as translucent one-device-pixel marks, so pixels
// hit repeatedly grow brighter. Density only changes through AppendPoints
// and is reset by Clear or Resize. A separate overlay layer holds
// annotations that can be redrawn without touching the density.
//
// An Accumulator is not safe for concurrent use.
type Accumulator struct {
	provider Provider
	ratio    float64
	opts     options

	width, height int // logical pixels
	density       draw.Image
	overlay       draw.Image
	window        Window
	destroyed     bool
}

// Init allocates the density and overlay surfaces at device resolution.
// A surface that cannot be acquired yields an error wrapping
// dynamo.ErrResourceUnavailable.
func Init(p Provider, width, height int, opts ...Option) (*Accumulator, error) {
	if p == nil {
		return nil, fmt.Errorf("no surface provider: %w", dynamo.ErrResourceUnavailable)
	}
	o := buildOptions(opts)
	a := &Accumulator{
		provider: p,
		ratio:    p.PixelRatio(),
		opts:     o,
		window:   o.window,
	}
	if err := a.allocate(width, height); err != nil {
		return nil, err
	}
	dynamo.Logger().Debug("accumulator ready",
		"width", width, "height", height, "ratio", a.ratio,
		"control_min", a.window.ControlMin, "control_max", a.window.ControlMax)
	return a, nil
}

func (a *Accumulator) allocate(width, height int) error {
	dw, dh := deviceSize(width, height, a.ratio)
	density, err := acquire(a.provider, dw, dh)
	if err != nil {
		return err
	}
	overlay, err := acquire(a.provider, dw, dh)
	if err != nil {
		release(a.provider, density)
		return err
	}

	release(a.provider, a.density, a.overlay)
	a.density, a.overlay = density, overlay
	a.width, a.height = width, height
	a.clear()
	return nil
}

func (a *Accumulator) check() error {
	if a == nil || a.destroyed {
		return dynamo.ErrUseAfterDestroy
	}
	return nil
}

// SetRange replaces the control range. A range with max <= min is
// ignored and the window stays as it was.
func (a *Accumulator) SetRange(min, max float64) error {
	if err := a.check(); err != nil {
		return err
	}
	if !validRange(min, max) {
		dynamo.Logger().Debug("range rejected", "min", min, "max", max, "err", dynamo.ErrInvalidRange)
		return nil
	}
	a.window.ControlMin, a.window.ControlMax = min, max
	return nil
}

// Window returns the current visible window.
func (a *Accumulator) Window() Window { return a.window }

// Size returns the logical size.
func (a *Accumulator) Size() (int, int) { return a.width, a.height }

// DeviceSize returns the size of the pixel buffers.
func (a *Accumulator) DeviceSize() (int, int) {
	if a.density == nil {
		return 0, 0
	}
	b := a.density.Bounds()
	return b.Dx(), b.Dy()
}

func (a *Accumulator) PixelRatio() float64 { return a.ratio }

// AppendPoints composites one mark per packed (control, value) pair.
// A trailing unpaired element is ignored and marks falling outside the
// buffer are dropped.
func (a *Accumulator) AppendPoints(points []float32) error {
	if err := a.check(); err != nil {
		return err
	}
	mark := image.NewUniform(withAlpha(a.opts.palette.Mark, a.opts.markAlpha))
	b := a.density.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	drawn := 0
	for i := 0; i+1 < len(points); i += 2 {
		t := a.window.normalize(float64(points[i]))
		v := float64(points[i+1])
		if math.IsNaN(t) || math.IsNaN(v) {
			continue
		}
		px := int(math.Floor(t * w))
		py := math.Floor((1 - v) * h)
		if px >= b.Dx() || py < 0 || py >= h {
			continue
		}
		pt := image.Pt(b.Min.X+px, b.Min.Y+int(py))
		draw.Draw(a.density, image.Rectangle{Min: pt, Max: pt.Add(image.Pt(1, 1))}, mark, image.Point{}, draw.Over)
		drawn++
	}

	dynamo.Logger().Debug("points appended", "pairs", len(points)/2, "drawn", drawn)
	return nil
}

// Clear resets the density to the background and empties the overlay.
// The window is kept.
func (a *Accumulator) Clear() error {
	if err := a.check(); err != nil {
		return err
	}
	a.clear()
	return nil
}

func (a *Accumulator) clear() {
	fill(a.density, a.opts.palette.Background)
	fill(a.overlay, image.Transparent)
}

func (a *Accumulator) ClearOverlay() error {
	if err := a.check(); err != nil {
		return err
	}
	fill(a.overlay, image.Transparent)
	return nil
}

// column returns the device column of control value c, kept inside the
// buffer so annotations at the right edge stay visible.
func (a *Accumulator) column(c float64) int {
	b := a.overlay.Bounds()
	x := int(math.Floor(a.window.normalize(c) * float64(b.Dx())))
	return b.Min.X + min(x, b.Dx()-1)
}

// lineWidth is one logical pixel in device pixels.
func (a *Accumulator) lineWidth() int {
	return max(1, int(math.Round(a.ratio)))
}

// DrawOverlayLine draws a translucent vertical line at control value c.
func (a *Accumulator) DrawOverlayLine(c float64) error {
	if err := a.check(); err != nil {
		return err
	}
	a.drawLine(c, a.opts.palette.Line)
	return nil
}

func (a *Accumulator) drawLine(c float64, col color.NRGBA) {
	if math.IsNaN(c) {
		return
	}
	b := a.overlay.Bounds()
	x := a.column(c)
	blend(a.overlay, image.Rect(x, b.Min.Y, x+a.lineWidth(), b.Max.Y), col)

	if a.opts.labels {
		text := fmt.Sprintf("%.4f", c)
		lx := x + 3*a.lineWidth()
		if lx+labelWidth(text) > b.Max.X {
			lx = x - 2*a.lineWidth() - labelWidth(text)
		}
		drawLabel(a.overlay, lx, b.Min.Y+labelFace.Ascent+2, text, a.opts.palette.Label)
	}
}

// DrawOverlayTrajectoryAtR marks each value at control value c with a
// square two logical pixels wide.
func (a *Accumulator) DrawOverlayTrajectoryAtR(values []float64, c float64) error {
	if err := a.check(); err != nil {
		return err
	}
	a.drawMarkers(values, c, a.opts.palette.Marker)
	return nil
}

func (a *Accumulator) drawMarkers(values []float64, c float64, col color.NRGBA) {
	if math.IsNaN(c) {
		return
	}
	b := a.overlay.Bounds()
	x := a.column(c)
	size := 2 * a.lineWidth()
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		y := b.Min.Y + int(math.Floor((1-v)*float64(b.Dy())))
		r := image.Rect(x-size/2, y-size/2, x-size/2+size, y-size/2+size)
		blend(a.overlay, r, col)
	}
}

// Render redraws everything in one pass: clears both layers, accumulates
// points, then marks the current control value and its trajectory on
// the overlay. A nil trajectory draws only the line.
func (a *Accumulator) Render(points []float32, current float64, trajectory []float64) error {
	if err := a.check(); err != nil {
		return err
	}
	a.clear()
	if err := a.AppendPoints(points); err != nil {
		return err
	}
	a.drawLine(current, a.opts.palette.Indicator)
	a.drawMarkers(trajectory, current, a.opts.palette.Highlight)
	return nil
}

// Resize reallocates both layers at the new logical size and clears
// them. On failure the old buffers are kept.
func (a *Accumulator) Resize(width, height int) error {
	if err := a.check(); err != nil {
		return err
	}
	if err := a.allocate(width, height); err != nil {
		return err
	}
	dynamo.Logger().Debug("accumulator resized", "width", width, "height", height)
	return nil
}

// Destroy releases both layers. Every later call, including another
// Destroy, returns dynamo.ErrUseAfterDestroy.
func (a *Accumulator) Destroy() error {
	if err := a.check(); err != nil {
		return err
	}
	release(a.provider, a.density, a.overlay)
	a.density, a.overlay = nil, nil
	a.destroyed = true
	dynamo.Logger().Debug("accumulator destroyed")
	return nil
}

// Image flattens the overlay over the density at device resolution.
func (a *Accumulator) Image() (*image.RGBA, error) {
	if err := a.check(); err != nil {
		return nil, err
	}
	return composite(a.density, a.overlay), nil
}

// Snapshot returns the flattened image resampled to w×h.
func (a *Accumulator) Snapshot(w, h int) (*image.RGBA, error) {
	img, err := a.Image()
	if err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("snapshot %dx%d: %w", w, h, dynamo.ErrResourceUnavailable)
	}
	return scale(img, w, h), nil
}

// WritePNG encodes the flattened image.
func (a *Accumulator) WritePNG(w io.Writer) error {
	img, err := a.Image()
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
