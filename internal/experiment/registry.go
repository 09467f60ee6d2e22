package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/dynmap/internal/analysis"
	"github.com/san-kum/dynmap/internal/dynamo"
	"github.com/san-kum/dynmap/internal/maps"
)

// Entry describes one registered model and its default sweep.
type Entry struct {
	Kind        maps.Kind
	Description string
	// Param is the parameter swept by default. Empty means the model
	// has no meaningful one-parameter family.
	Param   string
	Min     float64
	Max     float64
	Initial float64
	// Lo and Hi bound the observed component for display.
	Lo, Hi float64
}

type Registry struct {
	entries map[string]Entry
}

func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]Entry)}

	r.add(Entry{maps.KindLogistic, "logistic map x' = r*x*(1-x)", "r", 2.8, 4.0, 0.5, 0, 1})
	r.add(Entry{maps.KindDrift, "linear stability with drift and gaussian noise", "a", -1.2, 1.2, 0.5, -4, 4})
	r.add(Entry{maps.KindRelax, "relaxation toward a target", "k", 0, 2.2, 0, -1, 2})
	r.add(Entry{maps.KindThreshold, "piecewise linear threshold map", "t", -1, 1, 0.1, -2, 2})
	r.add(Entry{maps.KindOscillator, "damped discrete oscillator", "damping", 0, 1.2, 1, -2, 2})
	r.add(Entry{maps.KindHysteresis, "asymmetric approach rates", "u", -1, 1, 0, -1, 1})
	r.add(Entry{maps.KindVectorMap, "scaled planar map", "scale", -1.2, 1.2, 1, -2, 2})
	r.add(Entry{maps.KindConstraint, "two translating rectangles", "", 0, 0, 0, 0, 1})
	r.add(Entry{maps.KindSaturation, "saturating blend of input and state", "s", 0, 1, 0.5, -1, 1})
	r.add(Entry{maps.KindNoise, "bounded uniform noise with drift", "noise_level", 0, 1, 0, -1, 1})
	r.add(Entry{maps.KindDecay, "decay with triggered kicks", "decay", 0, 1, 1, -1, 1})
	r.add(Entry{maps.KindWell, "gradient descent in a noisy potential well", "well_depth", 0, 1.2, 1, -2, 2})
	r.add(Entry{maps.KindFraming, "rotated vector field flow", "vector_strength", 0, 1, 1, -2, 2})
	r.add(Entry{maps.KindImpulse, "gain with scheduled impulses", "update_gain", 0, 1.2, 1, -2, 2})

	return r
}

func (r *Registry) add(e Entry) {
	r.entries[string(e.Kind)] = e
}

// Entry returns the registration for name.
func (r *Registry) Entry(name string) (Entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", dynamo.ErrUnknownModel, name)
	}
	return e, nil
}

func (r *Registry) GetModel(name string) (dynamo.Rule, error) {
	e, err := r.Entry(name)
	if err != nil {
		return nil, err
	}
	return maps.New(e.Kind)
}

// Sampler builds a sweep over param of the named model. An empty param
// selects the model's default sweep parameter.
func (r *Registry) Sampler(name, param string, rng dynamo.Source) (*analysis.Sampler, error) {
	e, err := r.Entry(name)
	if err != nil {
		return nil, err
	}
	if param == "" {
		param = e.Param
	}
	if param == "" {
		return nil, fmt.Errorf("%s has no sweep parameter: %w", name, dynamo.ErrUnknownParam)
	}
	rule, err := maps.New(e.Kind)
	if err != nil {
		return nil, err
	}
	family, err := analysis.Family(rule, param)
	if err != nil {
		return nil, err
	}
	return &analysis.Sampler{Family: family, Rand: rng}, nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
