package render

import "math"

const (
	DefaultControlMin = 2.8
	DefaultControlMax = 4.0
	DefaultMarkAlpha  = 0.15
	DefaultTrail      = 40
	DefaultLevels     = 10
)

// Option configures an Accumulator or a FieldView.
type Option func(*options)

type options struct {
	palette   Palette
	markAlpha float64
	window    Window
	labels    bool
	levels    int
	trail     int
}

func defaultOptions() options {
	return options{
		palette:   DefaultPalette(),
		markAlpha: DefaultMarkAlpha,
		window:    DefaultWindow(),
		levels:    DefaultLevels,
		trail:     DefaultTrail,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func WithPalette(p Palette) Option {
	return func(o *options) { o.palette = p }
}

// WithMarkAlpha sets the opacity of a single density mark, clamped to [0,1].
func WithMarkAlpha(a float64) Option {
	return func(o *options) {
		if !math.IsNaN(a) {
			o.markAlpha = clamp01(a)
		}
	}
}

// WithWindow sets the initial control range. Invalid ranges are ignored.
func WithWindow(min, max float64) Option {
	return func(o *options) {
		if validRange(min, max) {
			o.window.ControlMin, o.window.ControlMax = min, max
		}
	}
}

// WithLabels prints the control value next to overlay lines.
func WithLabels(on bool) Option {
	return func(o *options) { o.labels = on }
}

// WithLevels sets the number of contour levels in a FieldView.
func WithLevels(k int) Option {
	return func(o *options) {
		if k > 0 {
			o.levels = k
		}
	}
}

// WithTrail sets how many trailing history points a FieldView draws.
func WithTrail(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.trail = n
		}
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func validRange(min, max float64) bool {
	return max > min && !math.IsInf(min, 0) && !math.IsInf(max, 0)
}
