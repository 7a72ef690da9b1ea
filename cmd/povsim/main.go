package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/ravi-l/povsim/internal/analysis"
	"github.com/ravi-l/povsim/internal/config"
	"github.com/ravi-l/povsim/internal/datapath"
	"github.com/ravi-l/povsim/internal/engine"
	"github.com/ravi-l/povsim/internal/export"
	"github.com/ravi-l/povsim/internal/metrics"
	"github.com/ravi-l/povsim/internal/pov"
	"github.com/ravi-l/povsim/internal/scene"
	"github.com/ravi-l/povsim/internal/sim"
	"github.com/ravi-l/povsim/internal/storage"
	"github.com/ravi-l/povsim/internal/viz"
)

var (
	storeDir   string
	dt         float64
	duration   float64
	outDir     string
	assetDir   string
	configFile string
	preset     string
	frameRate  int
	realtime   bool
	jsonOut    string
	svgOut     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "povsim",
		Short: "rigid-body scenes exported frame by frame for POV-Ray",
	}

	rootCmd.PersistentFlags().StringVar(&storeDir, "data", ".povsim", "run store directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate the pendulum scene and export render frames",
		RunE:  runScene,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration")
	runCmd.Flags().StringVar(&outDir, "out", "", "output directory (default from config)")
	runCmd.Flags().StringVar(&assetDir, "assets", "", "asset data directory (default from config)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "pace stepping at wall-clock rate")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the pendulum scene in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "dump a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&jsonOut, "output", "", "write to file instead of stdout")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored trajectory as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "output", "", "output file (default <run_id>.svg)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers preset, config file and CLI flags, in that order of
// increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if outDir != "" {
		cfg.OutputDir = outDir
	}
	if assetDir != "" {
		cfg.DataDir = assetDir
	}

	return cfg, cfg.Validate()
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// The output directory must exist before anything is simulated or
	// exported; failure aborts the whole run.
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("error creating directory %s: %w", cfg.OutputDir, err)
	}

	datapath.SetDataPath(cfg.DataDir)
	tpl, err := datapath.MustExist(cfg.Export.TemplateFile)
	if err != nil {
		return err
	}

	sc, err := scene.BuildPendulum(cfg)
	if err != nil {
		return err
	}

	exp := pov.New(sc.System)
	exp.SetTemplateFile(tpl)
	if err := exp.SetBasePath(cfg.OutputDir); err != nil {
		return err
	}
	exp.SetOutputScriptFile(cfg.Export.ScriptFile)
	exp.SetOutputDataFilebase(cfg.Export.DataFilebase)
	exp.SetPictureFilebase(cfg.Export.PictureFilebase)
	exp.SetCamera(sc.Camera)
	exp.SetLight(sc.Light)
	exp.SetCustomCommands(sc.CustomCommands)
	exp.AddAll()

	if err := exp.ExportScript(); err != nil {
		return err
	}

	runner := sim.New(sc.System, exp)

	energy := metrics.NewEnergyDrift(sc.System)
	anchor := metrics.NewAnchorDrift(sc.Link)
	runner.AddObserver(energy)
	runner.AddObserver(anchor)

	if realtime {
		rt := engine.NewRealtimeStepTimer()
		runner.AddObserver(sim.ObserverFunc(func(float64) {
			rt.Spin(cfg.Dt)
		}))
	}

	samples := make([]storage.Sample, 0, sim.Config{Dt: cfg.Dt, Duration: cfg.Duration}.Steps())
	runner.AddObserver(sim.ObserverFunc(func(t float64) {
		fmt.Printf("time= %g\n", t)
		samples = append(samples, storage.SampleBody(t, sc.Pendulum))
	}))

	start := time.Now()
	result, err := runner.Run(context.Background(), sim.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(storeDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		EnergyDrift: result.EnergyDrift,
		OutputDir:   cfg.OutputDir,
	}, samples)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("frames: %d\n", exp.FrameCount())
	fmt.Printf("script: %s\n", exp.ScriptPath())
	fmt.Println("\nmetrics:")
	fmt.Printf("  %s: %.6f\n", energy.Name(), energy.Value())
	fmt.Printf("  %s: %.6f\n", anchor.Name(), anchor.Value())

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg, frameRate)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(storeDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tSTEPS\tDRIFT\tOUT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4fs\t%d\t%.2e\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
			run.EnergyDrift,
			run.OutputDir,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(storeDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(samples))

	axes := []struct {
		caption string
		idx     int
	}{
		{"x position", 0},
		{"y position", 1},
	}
	for _, axis := range axes {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = s.Pos[axis.idx]
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(axis.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(storeDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data")
	}

	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = s.Pos[0]
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/4]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (x position)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(storeDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if jsonOut != "" {
		if err := storage.ExportJSON(jsonOut, meta, samples); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonOut)
		return nil
	}
	return storage.ExportJSONStdout(meta, samples)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(storeDir)

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("not enough data to plot")
	}

	svg := export.TrajectoryToSVG(samples, 800, 600, "#00ff88")

	out := svgOut
	if out == "" {
		out = filepath.Clean(runID + ".svg")
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}
