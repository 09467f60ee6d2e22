package maps

import "github.com/san-kum/dynmap/internal/dynamo"

// VectorMap is the joint 2D linear map p' = s·p + u, where u is the
// external input vector.
type VectorMap struct {
	Scale float64
}

func NewVectorMap() VectorMap {
	return VectorMap{Scale: 0.8}
}

func (m VectorMap) Name() string { return string(KindVectorMap) }
func (m VectorMap) Dim() int     { return 2 }

func (m VectorMap) Init(values ...float64) dynamo.State {
	return dynamo.NewState(2, values...)
}

func (m VectorMap) Update(s dynamo.State, in dynamo.Input, _ dynamo.Source) dynamo.State {
	return s.Next(m.Scale*s.X.At(0)+in.At(0), m.Scale*s.X.At(1)+in.At(1))
}

func (m VectorMap) Params() map[string]float64 {
	return map[string]float64{"scale": m.Scale}
}

func (m VectorMap) With(name string, v float64) (dynamo.Rule, error) {
	if name != "scale" {
		return nil, unknown(m.Name(), name)
	}
	m.Scale = v
	return m, nil
}
