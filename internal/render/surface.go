package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/san-kum/dynmap/internal/dynamo"
)

// Provider hands out raster surfaces at device resolution.
type Provider interface {
	// Acquire returns a fresh surface of exactly width×height device
	// pixels, or an error when none can be created.
	Acquire(width, height int) (draw.Image, error)
	// PixelRatio is the number of device pixels per logical pixel.
	PixelRatio() float64
}

// Releaser is implemented by providers that want surfaces back on Destroy.
type Releaser interface {
	Release(draw.Image)
}

// RasterProvider allocates in-memory RGBA surfaces.
type RasterProvider struct {
	// Ratio is the device pixel ratio; zero or less means 1.
	Ratio float64
	// MaxPixels caps a single surface; zero means no cap.
	MaxPixels int
}

func (p RasterProvider) Acquire(width, height int) (draw.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("surface %dx%d: %w", width, height, dynamo.ErrResourceUnavailable)
	}
	if p.MaxPixels > 0 && width*height > p.MaxPixels {
		return nil, fmt.Errorf("surface %dx%d exceeds %d pixels: %w",
			width, height, p.MaxPixels, dynamo.ErrResourceUnavailable)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

func (p RasterProvider) PixelRatio() float64 {
	if p.Ratio <= 0 || math.IsNaN(p.Ratio) || math.IsInf(p.Ratio, 0) {
		return 1
	}
	return p.Ratio
}

// deviceSize scales a logical size by the pixel ratio, rounding down.
func deviceSize(w, h int, ratio float64) (int, int) {
	return int(math.Floor(float64(w) * ratio)), int(math.Floor(float64(h) * ratio))
}

// acquire gets a surface from p, treating a nil surface as a failure.
func acquire(p Provider, w, h int) (draw.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("device size %dx%d: %w", w, h, dynamo.ErrResourceUnavailable)
	}
	img, err := p.Acquire(w, h)
	if err != nil {
		if !errors.Is(err, dynamo.ErrResourceUnavailable) {
			err = fmt.Errorf("%w: %v", dynamo.ErrResourceUnavailable, err)
		}
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("provider returned no surface: %w", dynamo.ErrResourceUnavailable)
	}
	return img, nil
}

func release(p Provider, imgs ...draw.Image) {
	r, ok := p.(Releaser)
	if !ok {
		return
	}
	for _, img := range imgs {
		if img != nil {
			r.Release(img)
		}
	}
}

// fill replaces every pixel of dst with c.
func fill(dst draw.Image, c color.Color) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// blend composites c over the rectangle r of dst.
func blend(dst draw.Image, r image.Rectangle, c color.Color) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// composite flattens layers, bottom first, into a new RGBA image.
func composite(layers ...draw.Image) *image.RGBA {
	b := layers[0].Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), layers[0], b.Min, draw.Src)
	for _, l := range layers[1:] {
		draw.Draw(out, out.Bounds(), l, l.Bounds().Min, draw.Over)
	}
	return out
}

// scale resamples src to w×h with nearest-neighbour sampling.
func scale(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
