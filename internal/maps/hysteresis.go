package maps

import "github.com/san-kum/dynmap/internal/dynamo"

// Hysteresis follows the reference u with a direction-dependent weight:
// WUp while rising towards u, WDown otherwise.
type Hysteresis struct {
	U     float64
	WUp   float64
	WDown float64
}

func NewHysteresis() Hysteresis {
	return Hysteresis{U: 0, WUp: 0.5, WDown: 0.5}
}

func (h Hysteresis) Name() string { return string(KindHysteresis) }
func (h Hysteresis) Dim() int     { return 1 }

func (h Hysteresis) Init(values ...float64) dynamo.State {
	return dynamo.NewState(1, values...)
}

func (h Hysteresis) Update(s dynamo.State, _ dynamo.Input, _ dynamo.Source) dynamo.State {
	x := s.X.At(0)
	w := h.WDown
	if h.U > x {
		w = h.WUp
	}
	return s.Next(x + w*(h.U-x))
}

func (h Hysteresis) Params() map[string]float64 {
	return map[string]float64{"u": h.U, "w_up": h.WUp, "w_down": h.WDown}
}

func (h Hysteresis) With(name string, v float64) (dynamo.Rule, error) {
	switch name {
	case "u":
		h.U = v
	case "w_up":
		h.WUp = v
	case "w_down":
		h.WDown = v
	default:
		return nil, unknown(h.Name(), name)
	}
	return h, nil
}
