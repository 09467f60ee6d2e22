package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/dynmap/internal/analysis"
	"github.com/san-kum/dynmap/internal/config"
	"github.com/san-kum/dynmap/internal/dynamo"
	"github.com/san-kum/dynmap/internal/experiment"
	"github.com/san-kum/dynmap/internal/export"
	"github.com/san-kum/dynmap/internal/render"
	"github.com/san-kum/dynmap/internal/sim"
	"github.com/san-kum/dynmap/internal/viz"
)

const (
	periodTolerance = 1e-6
	maxPeriod       = 64
	branchTolerance = 1e-4
	lyapunovSteps   = 2000

	// previewThreshold is the luminance difference that lights a braille dot.
	previewThreshold = 0.04
)

var (
	configFile string
	preset     string
	seed       int64
	verbose    bool
	model      string
	param      string
	theme      string

	rMin    float64
	rMax    float64
	steps   int
	initial float64
	warmup  int
	samples int
	chunk   int

	width   int
	height  int
	ratio   float64
	outPNG  string
	outSVG  string
	cols    int
	rows    int
	cursor  float64
	points  int
	value   float64
	orbit   int
	grid    int
	startX  float64
	startY  float64
	noPlots bool
	kicks   []int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dynmap",
		Short: "discrete-time map explorer",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				dynamo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
		// Default to the interactive explorer when no command given
		RunE: runExplore,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset sweep window")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
	pf.StringVar(&model, "model", "", "model name (see `dynmap models`)")
	pf.StringVar(&param, "param", "", "swept parameter")
	pf.StringVar(&theme, "theme", "", "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	bifCmd := &cobra.Command{
		Use:   "bifurcation [model]",
		Short: "render a bifurcation diagram",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBifurcation,
	}
	addSweepFlags(bifCmd)
	addCanvasFlags(bifCmd)
	bifCmd.Flags().Float64Var(&cursor, "cursor", 0, "mark a control value and its orbit")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [model]",
		Short: "period, branches and lyapunov exponent across the sweep",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyze,
	}
	addSweepFlags(analyzeCmd)
	analyzeCmd.Flags().IntVar(&points, "points", 13, "control values in the table")
	analyzeCmd.Flags().BoolVar(&noPlots, "no-plot", false, "skip the exponent plot")

	trajCmd := &cobra.Command{
		Use:   "trajectory [model]",
		Short: "iterate a model and plot its orbit",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrajectory,
	}
	trajCmd.Flags().Float64Var(&value, "value", 0, "value of the swept parameter (default: model default)")
	trajCmd.Flags().Float64Var(&initial, "initial", 0, "initial state (default: the model's registered initial value)")
	trajCmd.Flags().IntSliceVar(&kicks, "kicks", nil, "steps that receive the model's triggered input, e.g. 10,50")
	trajCmd.Flags().IntVar(&orbit, "steps", 200, "number of updates")
	trajCmd.Flags().StringVar(&outSVG, "svg", "", "write the phase portrait as svg")

	fieldCmd := &cobra.Command{
		Use:   "field",
		Short: "render the potential well with a trajectory",
		Args:  cobra.NoArgs,
		RunE:  runField,
	}
	addCanvasFlags(fieldCmd)
	fieldCmd.Flags().IntVar(&grid, "grid", config.DefaultGrid, "contour sampling grid size")
	fieldCmd.Flags().IntVar(&orbit, "steps", config.DefaultOrbit, "number of updates")
	fieldCmd.Flags().Float64Var(&startX, "x", 0.8, "start x")
	fieldCmd.Flags().Float64Var(&startY, "y", -0.6, "start y")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list registered models",
		RunE:  listModels,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list sweep window presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tWINDOW\tSTEPS\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%g..%g\t%d\t%s\n", name, p.RMin, p.RMax, p.Steps, p.Description)
			}
			return w.Flush()
		},
	}

	exploreCmd := &cobra.Command{
		Use:   "explore [model]",
		Short: "interactive bifurcation explorer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExplore,
	}
	addSweepFlags(exploreCmd)

	rootCmd.AddCommand(bifCmd, analyzeCmd, trajCmd, fieldCmd, modelsCmd, presetsCmd, exploreCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func addSweepFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&rMin, "min", render.DefaultControlMin, "sweep start")
	f.Float64Var(&rMax, "max", render.DefaultControlMax, "sweep end")
	f.IntVar(&steps, "steps", config.DefaultSteps, "control values in the sweep")
	f.Float64Var(&initial, "initial", config.DefaultInitial, "initial state for every control value")
	f.IntVar(&warmup, "warmup", config.DefaultWarmup, "discarded updates per control value")
	f.IntVar(&samples, "samples", config.DefaultSamples, "recorded updates per control value")
	f.IntVar(&chunk, "chunk", config.DefaultChunk, "control values sampled per batch")
}

func addCanvasFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&width, "width", config.DefaultWidth, "picture width")
	f.IntVar(&height, "height", config.DefaultHeight, "picture height")
	f.Float64Var(&ratio, "pixel-ratio", 1, "device pixels per logical pixel")
	f.StringVar(&outPNG, "out", "", "write the picture as png")
	f.StringVar(&outSVG, "svg", "", "write the picture as svg")
	f.IntVar(&cols, "cols", 80, "terminal preview columns")
	f.IntVar(&rows, "rows", 20, "terminal preview rows")
}

// loadConfig builds the effective config: defaults, then preset, then the
// config file, then a model given on the command line, then flags that were
// set explicitly.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, experiment.Entry, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, experiment.Entry{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, experiment.Entry{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	name := model
	if len(args) > 0 {
		name = args[0]
	}
	reg := experiment.NewRegistry()
	if name == "" {
		name = cfg.Model
	}
	entry, err := reg.Entry(name)
	if err != nil {
		return nil, experiment.Entry{}, err
	}
	if name != cfg.Model {
		cfg.UseModel(entry)
	}

	changed := cmd.Flags().Changed
	if changed("param") {
		cfg.Param = param
	}
	if changed("seed") {
		cfg.Seed = seed
	}
	if changed("theme") {
		cfg.Canvas.Theme = theme
	}
	if changed("min") {
		cfg.Sweep.RMin = rMin
	}
	if changed("max") {
		cfg.Sweep.RMax = rMax
	}
	// trajectory and field bind --steps to the orbit length instead
	if changed("steps") && cmd.Flags().Lookup("chunk") != nil {
		cfg.Sweep.Steps = steps
	}
	if changed("initial") {
		cfg.Sweep.Initial = initial
	}
	if changed("warmup") {
		cfg.Sweep.Warmup = warmup
	}
	if changed("samples") {
		cfg.Sweep.Samples = samples
	}
	if changed("chunk") {
		cfg.Sweep.Chunk = chunk
	}
	if changed("width") {
		cfg.Canvas.Width = width
	}
	if changed("height") {
		cfg.Canvas.Height = height
	}
	if changed("pixel-ratio") {
		cfg.Canvas.PixelRatio = ratio
	}
	if changed("grid") {
		cfg.Field.Grid = grid
	}
	if changed("x") {
		cfg.Field.StartX = startX
	}
	if changed("y") {
		cfg.Field.StartY = startY
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, entry, nil
}

func runBifurcation(cmd *cobra.Command, args []string) error {
	cfg, entry, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	th := viz.GetTheme(cfg.Canvas.Theme)
	palette := th.Palette()
	opts := append(cfg.RenderOptions(), render.WithPalette(palette), render.WithLabels(true))
	acc, err := render.Init(render.RasterProvider{Ratio: cfg.Canvas.PixelRatio}, cfg.Canvas.Width, cfg.Canvas.Height, opts...)
	if err != nil {
		return err
	}
	defer acc.Destroy()

	exp, err := experiment.New(experiment.NewRegistry(), cfg.Experiment())
	if err != nil {
		return err
	}

	fmt.Printf("sampling %s over %s in [%g, %g]...\n", cfg.Model, sweepParam(cfg, entry), cfg.Sweep.RMin, cfg.Sweep.RMax)
	start := time.Now()
	total := 0
	err = exp.Run(cmd.Context(), func(sets []analysis.SampleSet) error {
		buf := analysis.Pack(sets)
		buf.Rescale(entry.Lo, entry.Hi)
		total += buf.Len()
		return acc.AppendPoints(buf)
	})
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("cursor") {
		sp, err := experiment.NewRegistry().Sampler(cfg.Model, cfg.Param, dynamo.Seeded(cfg.Seed))
		if err != nil {
			return err
		}
		values := sp.Sample([]float64{cursor}, cfg.Sweep.Initial, cfg.Sweep.Warmup, 64)[0].Values
		buf := analysis.Pack([]analysis.SampleSet{{Control: cursor, Values: values}})
		buf.Rescale(entry.Lo, entry.Hi)
		scaled := make([]float64, buf.Len())
		for i := range scaled {
			_, scaled[i] = buf.At(i)
		}
		if err := acc.DrawOverlayLine(cursor); err != nil {
			return err
		}
		if err := acc.DrawOverlayTrajectoryAtR(scaled, cursor); err != nil {
			return err
		}
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("points: %d\n\n", total)

	img, err := acc.Image()
	if err != nil {
		return err
	}
	preview := viz.FromImage(img, cols, rows, palette.Background, previewThreshold)
	fmt.Println(lipgloss.NewStyle().Foreground(th.Points).Render(preview.String()))

	if outPNG != "" {
		if err := writeFile(outPNG, acc.WritePNG); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outPNG)
	}
	if outSVG != "" {
		svg := export.CanvasToSVG(preview, 4, string(th.Points), string(th.Background))
		if err := os.WriteFile(outSVG, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outSVG)
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, entry, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sp, err := experiment.NewRegistry().Sampler(cfg.Model, cfg.Param, dynamo.Seeded(cfg.Seed))
	if err != nil {
		return err
	}
	controls := analysis.Linspace(cfg.Sweep.RMin, cfg.Sweep.RMax, points)
	if controls == nil {
		return fmt.Errorf("%d points in [%g, %g]: %w", points, cfg.Sweep.RMin, cfg.Sweep.RMax, dynamo.ErrInvalidRange)
	}

	fmt.Printf("analysis: %s over %s\n\n", cfg.Model, sweepParam(cfg, entry))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPERIOD\tBRANCHES\tAMPLITUDE\tLYAPUNOV\n", strings.ToUpper(sweepParam(cfg, entry)))

	exponents := make([]float64, 0, len(controls))
	for _, set := range sp.Sample(controls, cfg.Sweep.Initial, cfg.Sweep.Warmup, cfg.Sweep.Samples) {
		rule := sp.Family(set.Control)
		lambda := analysis.LyapunovExponent(rule, rule.Init(cfg.Sweep.Initial), cfg.Sweep.Warmup, lyapunovSteps, 1e-8)
		exponents = append(exponents, lambda)

		period := "-"
		if p := analysis.DetectPeriod(set.Values, periodTolerance, maxPeriod); p > 0 {
			period = fmt.Sprintf("%d", p)
		}
		fmt.Fprintf(w, "%.4f\t%s\t%d\t%.4f\t%+.4f\n",
			set.Control, period, len(analysis.Distinct(set.Values, branchTolerance)),
			analysis.Amplitude(set.Values), lambda)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if noPlots || len(exponents) < 2 {
		return nil
	}
	fmt.Println()
	graph := asciigraph.Plot(exponents,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("lyapunov exponent over %s in [%g, %g]", sweepParam(cfg, entry), cfg.Sweep.RMin, cfg.Sweep.RMax)),
	)
	fmt.Println(graph)
	return nil
}

func runTrajectory(cmd *cobra.Command, args []string) error {
	cfg, entry, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	rule, err := experiment.NewRegistry().GetModel(cfg.Model)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("value") {
		family, err := analysis.Family(rule, sweepParam(cfg, entry))
		if err != nil {
			return err
		}
		rule = family(value)
	}

	s0 := rule.Init(cfg.Sweep.Initial)
	opts := sim.Options{Rand: dynamo.Seeded(cfg.Seed)}
	if len(kicks) > 0 {
		opts.Input = sim.Triggered(rule, sim.Schedule(orbit, kicks))
	}
	states := sim.Rollout(rule, s0, orbit, opts)
	if len(states) == 0 {
		return fmt.Errorf("no steps to plot")
	}

	fmt.Printf("trajectory: %s from %v\n", rule.Name(), s0.X)
	if t, ok := rule.(dynamo.Tunable); ok {
		fmt.Printf("params: %v\n", t.Params())
	}
	fmt.Println()

	for i := 0; i < min(rule.Dim(), 2); i++ {
		graph := asciigraph.Plot(sim.Component(states, i),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("x%d over %d steps", i, len(states))),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	portrait := analysis.NewPhasePortrait(states, 0, 0)
	caption := "return map (x_t, x_t+1)"
	if rule.Dim() >= 2 {
		portrait = analysis.NewPhasePortrait(states, 0, 1)
		caption = "phase portrait (x0, x1)"
	}
	fmt.Println(caption)
	fmt.Println(portrait.ASCII(60, 20))

	last := states[len(states)-1]
	fmt.Printf("final state: %v\n", last.X)
	if p := analysis.DetectPeriod(sim.Component(states, 0), periodTolerance, maxPeriod); p > 0 {
		fmt.Printf("period: %d\n", p)
	}

	if outSVG != "" {
		th := viz.GetTheme(cfg.Canvas.Theme)
		svg := export.TrajectoryToSVG(portrait.Points, 600, 600, string(th.Orbit))
		if err := os.WriteFile(outSVG, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outSVG)
	}
	return nil
}

func runField(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("steps") {
		cfg.Field.Steps = orbit
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	well := cfg.Well()
	start := well.Init(cfg.Field.StartX, cfg.Field.StartY)
	history := append([]dynamo.Vec2{start.Point()},
		sim.Points(sim.Rollout(well, start, cfg.Field.Steps, sim.Options{Rand: dynamo.Seeded(cfg.Seed)}))...)

	th := viz.GetTheme(cfg.Canvas.Theme)
	palette := th.Palette()
	opts := append(cfg.RenderOptions(), render.WithPalette(palette))
	fv, err := render.NewFieldView(render.RasterProvider{Ratio: cfg.Canvas.PixelRatio}, cfg.Canvas.Width, cfg.Canvas.Height, opts...)
	if err != nil {
		return err
	}
	defer fv.Destroy()

	if err := fv.Render(history, well.Potential, cfg.Field.Grid); err != nil {
		return err
	}

	cur := history[len(history)-1]
	fmt.Printf("potential well: depth %g at (%g, %g), noise %g, step %g\n", well.Depth, well.X0, well.Y0, well.Noise, well.Step)
	fmt.Printf("start (%.4f, %.4f) -> (%.4f, %.4f) after %d steps\n", history[0].X, history[0].Y, cur.X, cur.Y, len(history)-1)
	fmt.Printf("potential %.4f -> %.4f\n", well.Potential(history[0].X, history[0].Y), well.Potential(cur.X, cur.Y))
	fmt.Printf("contour levels: %d\n\n", len(fv.Contours()))

	img, err := fv.Image()
	if err != nil {
		return err
	}
	preview := viz.FromImage(img, cols, rows, palette.Field, previewThreshold)
	fmt.Println(preview.String())

	if outPNG != "" {
		if err := writeFile(outPNG, fv.WritePNG); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outPNG)
	}
	if outSVG != "" {
		svg := export.FieldToSVG(fv.Contours(), history, cfg.Canvas.Width, cfg.Canvas.Height, palette, cfg.Field.Trail)
		if err := os.WriteFile(outSVG, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outSVG)
	}
	return nil
}

func listModels(cmd *cobra.Command, args []string) error {
	reg := experiment.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPARAM\tRANGE\tDESCRIPTION")
	for _, name := range reg.ListModels() {
		e, err := reg.Entry(name)
		if err != nil {
			return err
		}
		p, rng := e.Param, fmt.Sprintf("%g..%g", e.Min, e.Max)
		if p == "" {
			p, rng = "-", "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, p, rng, e.Description)
	}
	return w.Flush()
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	return viz.RunInteractive(experiment.NewRegistry(), cfg.Experiment(), viz.GetTheme(cfg.Canvas.Theme))
}

// sweepParam is the parameter a sweep over cfg varies.
func sweepParam(cfg *config.Config, e experiment.Entry) string {
	if cfg.Param != "" {
		return cfg.Param
	}
	return e.Param
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
