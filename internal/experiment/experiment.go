package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/dynmap/internal/analysis"
	"github.com/san-kum/dynmap/internal/dynamo"
)

// Config is one bifurcation sweep.
type Config struct {
	Model   string
	Param   string
	Min     float64
	Max     float64
	Steps   int
	Initial float64
	Warmup  int
	Samples int
	// Chunk is the number of controls handed to the sink at once.
	Chunk int
	Seed  int64
}

// Sink receives the sampled sets of one chunk, in sweep order.
type Sink func(sets []analysis.SampleSet) error

type Experiment struct {
	cfg     Config
	sampler *analysis.Sampler
}

func New(reg *Registry, cfg Config) (*Experiment, error) {
	sp, err := reg.Sampler(cfg.Model, cfg.Param, dynamo.Seeded(cfg.Seed))
	if err != nil {
		return nil, err
	}
	return &Experiment{cfg: cfg, sampler: sp}, nil
}

func (e *Experiment) Controls() []float64 {
	return analysis.Linspace(e.cfg.Min, e.cfg.Max, e.cfg.Steps)
}

// Run samples the sweep chunk by chunk. Cancellation is checked between
// chunks; the sets already delivered stay valid.
func (e *Experiment) Run(ctx context.Context, sink Sink) error {
	controls := e.Controls()
	if controls == nil {
		return fmt.Errorf("sweep [%g, %g] x %d: %w", e.cfg.Min, e.cfg.Max, e.cfg.Steps, dynamo.ErrInvalidRange)
	}

	chunks := analysis.Chunks(controls, e.cfg.Chunk)
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		sets := e.sampler.Sample(chunk, e.cfg.Initial, e.cfg.Warmup, e.cfg.Samples)
		if err := sink(sets); err != nil {
			return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}
	return nil
}
