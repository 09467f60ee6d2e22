package experiment

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/dynmap/internal/analysis"
	"github.com/san-kum/dynmap/internal/dynamo"
)

func TestRegistryListModels(t *testing.T) {
	reg := NewRegistry()
	names := reg.ListModels()
	if len(names) != 14 {
		t.Fatalf("expected 14 models, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("expected sorted names, got %q before %q", names[i-1], names[i])
		}
	}
	for _, name := range names {
		r, err := reg.GetModel(name)
		if err != nil {
			t.Fatalf("model %s: %v", name, err)
		}
		if r.Name() != name {
			t.Errorf("expected rule %s, got %s", name, r.Name())
		}
	}
}

func TestRegistryUnknownModel(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.GetModel("lorenz"); !errors.Is(err, dynamo.ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
	if _, err := reg.Sampler("lorenz", "", nil); !errors.Is(err, dynamo.ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
}

func TestRegistrySamplerParams(t *testing.T) {
	reg := NewRegistry()

	if _, err := reg.Sampler("logistic", "", nil); err != nil {
		t.Errorf("default sweep: %v", err)
	}
	if _, err := reg.Sampler("logistic", "q", nil); !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
	if _, err := reg.Sampler("constraint", "", nil); !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam for constraint, got %v", err)
	}
}

func TestDefaultSweepsAreSampleable(t *testing.T) {
	reg := NewRegistry()
	for _, name := range reg.ListModels() {
		e, _ := reg.Entry(name)
		if e.Param == "" {
			continue
		}
		if !(e.Max > e.Min) {
			t.Errorf("model %s: expected min < max, got [%g, %g]", name, e.Min, e.Max)
		}
		sp, err := reg.Sampler(name, "", dynamo.Seeded(1))
		if err != nil {
			t.Fatalf("model %s: %v", name, err)
		}
		sets := sp.Sample([]float64{e.Min, e.Max}, e.Initial, 10, 5)
		for _, set := range sets {
			if len(set.Values) != 5 {
				t.Errorf("model %s: expected 5 values, got %d", name, len(set.Values))
			}
		}
	}
}

func TestExperimentRunChunks(t *testing.T) {
	exp, err := New(NewRegistry(), Config{
		Model: "logistic", Min: 2.8, Max: 4.0, Steps: 10,
		Initial: 0.5, Warmup: 50, Samples: 8, Chunk: 4,
	})
	if err != nil {
		t.Fatal(err)
	}

	var sizes []int
	var controls []float64
	err = exp.Run(context.Background(), func(sets []analysis.SampleSet) error {
		sizes = append(sizes, len(sets))
		for _, s := range sets {
			controls = append(controls, s.Control)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []int{4, 4, 2}
	if len(sizes) != len(want) {
		t.Fatalf("expected chunks %v, got %v", want, sizes)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("chunk %d: expected %d sets, got %d", i, want[i], sizes[i])
		}
	}
	if controls[0] != 2.8 || controls[len(controls)-1] != 4.0 {
		t.Errorf("expected sweep 2.8..4.0, got %v..%v", controls[0], controls[len(controls)-1])
	}
}

func TestExperimentMatchesDirectSweep(t *testing.T) {
	cfg := Config{Model: "logistic", Min: 3.0, Max: 3.9, Steps: 6, Initial: 0.5, Warmup: 100, Samples: 4, Chunk: 2}
	exp, err := New(NewRegistry(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	var got []analysis.SampleSet
	_ = exp.Run(context.Background(), func(sets []analysis.SampleSet) error {
		got = append(got, sets...)
		return nil
	})

	want := analysis.SampleBifurcation(analysis.Linspace(3.0, 3.9, 6), 0.5, 100, 4)
	for i := range want {
		for j := range want[i].Values {
			if math.Abs(got[i].Values[j]-want[i].Values[j]) > 1e-12 {
				t.Errorf("set %d value %d: expected %v, got %v", i, j, want[i].Values[j], got[i].Values[j])
			}
		}
	}
}

func TestExperimentInvalidRange(t *testing.T) {
	exp, err := New(NewRegistry(), Config{Model: "logistic", Min: 4, Max: 3, Steps: 10})
	if err != nil {
		t.Fatal(err)
	}
	err = exp.Run(context.Background(), func([]analysis.SampleSet) error { return nil })
	if !errors.Is(err, dynamo.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestExperimentCancel(t *testing.T) {
	exp, _ := New(NewRegistry(), Config{Model: "logistic", Min: 2.8, Max: 4, Steps: 100, Samples: 2, Chunk: 10})
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := exp.Run(ctx, func([]analysis.SampleSet) error {
		calls++
		cancel()
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 chunk before cancel, got %d", calls)
	}
}

func TestExperimentSinkError(t *testing.T) {
	exp, _ := New(NewRegistry(), Config{Model: "logistic", Min: 2.8, Max: 4, Steps: 10, Samples: 2, Chunk: 5})
	boom := errors.New("boom")
	err := exp.Run(context.Background(), func([]analysis.SampleSet) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped sink error, got %v", err)
	}
}
