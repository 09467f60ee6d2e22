package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/san-kum/dynmap/internal/analysis"
	"github.com/san-kum/dynmap/internal/contour"
	"github.com/san-kum/dynmap/internal/dynamo"
	"github.com/san-kum/dynmap/internal/render"
	"github.com/san-kum/dynmap/internal/viz"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`

// CanvasToSVG converts a braille canvas to one circle per lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill, background string) string {
	if canvas == nil {
		return ""
	}

	dw, dh := canvas.Dots()
	width := int(float64(dw) * scale)
	height := int(float64(dh) * scale)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(header, width, height, width, height))
	sb.WriteString(fmt.Sprintf("<rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", background))
	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", fill))

	dotRadius := scale * 0.4
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws points as one polyline, framed like a phase
// portrait with 10% padding.
func TrajectoryToSVG(points []dynamo.Vec2, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX, minY, maxY := (&analysis.PhasePortrait{Points: points}).Bounds()
	rangeX, rangeY := maxX-minX, maxY-minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(header, width, height, width, height))
	sb.WriteString("<rect width=\"100%\" height=\"100%\" fill=\"#0a0a0a\"/>\n")
	sb.WriteString(fmt.Sprintf("<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"M", strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}

// FieldToSVG lays out a field picture the way render.FieldView does:
// contour bands in [-1,1]² view coordinates inside the margin box, the
// last trail points of history as a path and the newest point as a dot.
func FieldToSVG(set contour.Set, history []dynamo.Vec2, width, height int, p render.Palette, trail int) string {
	bx, by := float64(render.MarginLeft), float64(render.MarginTop)
	bw := float64(width - render.MarginLeft - render.MarginRight)
	bh := float64(height - render.MarginTop - render.MarginBottom)
	toPixel := func(x, y float64) (float64, float64) {
		return bx + (x+1)/2*bw, by + (1-y)/2*bh
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(header, width, height, width, height))
	sb.WriteString(fmt.Sprintf("<rect width=\"100%%\" height=\"100%%\" %s/>\n", paint("fill", p.Field)))
	sb.WriteString(fmt.Sprintf("<clipPath id=\"box\"><rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\"/></clipPath>\n", bx, by, bw, bh))

	sb.WriteString(fmt.Sprintf("<g clip-path=\"url(#box)\" fill-rule=\"evenodd\" %s stroke-width=\"0.5\">\n", paint("stroke", p.BandEdge)))
	for _, c := range set {
		band := p.BandEven
		if c.Level%2 == 1 {
			band = p.BandOdd
		}
		var d strings.Builder
		for _, poly := range c.Polygons {
			for _, ring := range poly {
				for i, pt := range ring {
					x, y := toPixel(pt.X, pt.Y)
					if i == 0 {
						d.WriteString(fmt.Sprintf("M%.2f,%.2f", x, y))
					} else {
						d.WriteString(fmt.Sprintf("L%.2f,%.2f", x, y))
					}
				}
				d.WriteString("Z")
			}
		}
		if d.Len() == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("<path data-level=\"%d\" data-threshold=\"%g\" %s d=\"%s\"/>\n", c.Level, c.Threshold, paint("fill", band), d.String()))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf("<rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" fill=\"none\" %s/>\n", bx, by, bw, bh, paint("stroke", p.FieldAxis)))

	cur := dynamo.Vec2{}
	if len(history) > 0 {
		cur = history[len(history)-1]
	}
	if trail = max(trail, 0); len(history) > trail {
		history = history[len(history)-trail:]
	}
	if len(history) >= 2 {
		sb.WriteString(fmt.Sprintf("<path fill=\"none\" %s stroke-width=\"1\" d=\"M", paint("stroke", p.Trail)))
		for i, pt := range history {
			x, y := toPixel(pt.X, pt.Y)
			if i > 0 {
				sb.WriteString(" L")
			}
			sb.WriteString(fmt.Sprintf("%.2f,%.2f", x, y))
		}
		sb.WriteString("\"/>\n")
	}

	cx, cy := toPixel(cur.X, cur.Y)
	sb.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"4\" %s/>\n", cx, cy, paint("fill", p.FieldDot)))

	sb.WriteString("</svg>")
	return sb.String()
}

// paint renders c as an SVG colour attribute plus its opacity.
func paint(attr string, c color.NRGBA) string {
	s := fmt.Sprintf("%s=\"#%02x%02x%02x\"", attr, c.R, c.G, c.B)
	if c.A != 255 {
		s += fmt.Sprintf(" %s-opacity=\"%.3g\"", attr, float64(c.A)/255)
	}
	return s
}
