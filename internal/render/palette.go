package render

import "image/color"

// Palette holds the colours used by the accumulator and the field view.
type Palette struct {
	Background color.NRGBA // density buffer background
	Mark       color.NRGBA // density mark; alpha comes from the mark alpha
	Line       color.NRGBA // overlay control line
	Marker     color.NRGBA // overlay trajectory markers
	Indicator  color.NRGBA // current control line drawn by Render
	Highlight  color.NRGBA // trajectory markers drawn by Render
	Label      color.NRGBA

	Field     color.NRGBA // field view background
	BandEven  color.NRGBA
	BandOdd   color.NRGBA
	BandEdge  color.NRGBA
	Trail     color.NRGBA
	FieldDot  color.NRGBA
	FieldAxis color.NRGBA
}

func DefaultPalette() Palette {
	return Palette{
		Background: color.NRGBA{0, 0, 0, 255},
		Mark:       color.NRGBA{255, 255, 255, 255},
		Line:       color.NRGBA{255, 0, 0, 128},
		Marker:     color.NRGBA{255, 255, 255, 204},
		Indicator:  color.NRGBA{255, 60, 60, 230},
		Highlight:  color.NRGBA{255, 230, 80, 255},
		Label:      color.NRGBA{255, 120, 120, 255},

		Field:     color.NRGBA{255, 255, 255, 255},
		BandEven:  color.NRGBA{0xf8, 0xfa, 0xfc, 230},
		BandOdd:   color.NRGBA{0xee, 0xf2, 0xff, 230},
		BandEdge:  color.NRGBA{0xe6, 0xee, 0xf6, 230},
		Trail:     color.NRGBA{0x9c, 0xa3, 0xaf, 204},
		FieldDot:  color.NRGBA{0x11, 0x18, 0x27, 255},
		FieldAxis: color.NRGBA{0xd1, 0xd5, 0xdb, 255},
	}
}

// band returns the fill colour of contour level i.
func (p Palette) band(i int) color.NRGBA {
	if i%2 == 0 {
		return p.BandEven
	}
	return p.BandOdd
}

// withAlpha replaces the alpha of c with a in [0,1].
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(clamp01(a)*255 + 0.5)
	return c
}
