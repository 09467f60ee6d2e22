package maps

import (
	"fmt"

	"github.com/san-kum/dynmap/internal/dynamo"
)

// Kind names one model variant.
type Kind string

const (
	KindDrift      Kind = "drift"
	KindRelax      Kind = "relax"
	KindThreshold  Kind = "threshold"
	KindOscillator Kind = "oscillator"
	KindHysteresis Kind = "hysteresis"
	KindVectorMap  Kind = "vectormap"
	KindConstraint Kind = "constraint"
	KindSaturation Kind = "saturation"
	KindNoise      Kind = "noise"
	KindDecay      Kind = "decay"
	KindWell       Kind = "well"
	KindFraming    Kind = "framing"
	KindImpulse    Kind = "impulse"
	KindLogistic   Kind = "logistic"
)

var kinds = []Kind{
	KindDrift, KindRelax, KindThreshold, KindOscillator, KindHysteresis,
	KindVectorMap, KindConstraint, KindSaturation, KindNoise, KindDecay,
	KindWell, KindFraming, KindImpulse, KindLogistic,
}

// Kinds lists every model variant in a stable order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// New returns the default-parameter rule of kind k.
func New(k Kind) (dynamo.Rule, error) {
	switch k {
	case KindDrift:
		return NewDrift(), nil
	case KindRelax:
		return NewRelax(), nil
	case KindThreshold:
		return NewThreshold(), nil
	case KindOscillator:
		return NewOscillator(), nil
	case KindHysteresis:
		return NewHysteresis(), nil
	case KindVectorMap:
		return NewVectorMap(), nil
	case KindConstraint:
		return NewConstraint(), nil
	case KindSaturation:
		return NewSaturation(), nil
	case KindNoise:
		return NewNoise(), nil
	case KindDecay:
		return NewDecay(), nil
	case KindWell:
		return NewWell(), nil
	case KindFraming:
		return NewFraming(), nil
	case KindImpulse:
		return NewImpulse(), nil
	case KindLogistic:
		return NewLogistic(), nil
	}
	return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownModel, k)
}

func unknown(rule, name string) error {
	return &dynamo.ParamError{Rule: rule, Name: name}
}
