package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/cartpole/internal/cartpole"
	"github.com/san-kum/cartpole/internal/config"
	"github.com/san-kum/cartpole/internal/export"
	"github.com/san-kum/cartpole/internal/metrics"
	"github.com/san-kum/cartpole/internal/policy"
	"github.com/san-kum/cartpole/internal/sim"
	"github.com/san-kum/cartpole/internal/storage"
	"github.com/san-kum/cartpole/internal/store"
	"github.com/san-kum/cartpole/internal/viz"
)

var (
	dataDir    string
	policyName string
	gain       float64
	maxSteps   int
	maxAngle   float64
	x0         float64
	xv0        float64
	angle0     float64
	anglev0    float64
	seed       int64
	runs       int
	configFile string
	preset     string
	outDir     string
	outFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cartpole",
		Short: "cart and pole balancing lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd, []string{config.ModelCorrect})
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cartpole", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run episodes and store the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEpisodes,
	}
	addEpisodeFlags(runCmd)
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().IntVar(&runs, "runs", 1, "number of episodes")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	exploreCmd := &cobra.Command{
		Use:   "explore [model]",
		Short: "drive the cart interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExplore,
	}
	addStateFlags(exploreCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	chartCmd := &cobra.Command{
		Use:   "chart [run_id]",
		Short: "render a stored run as PNG charts",
		Args:  cobra.ExactArgs(1),
		RunE:  chartRun,
	}
	chartCmd.Flags().StringVar(&outDir, "out", "charts", "output directory")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "write the pole's phase portrait as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  phaseRun,
	}
	phaseCmd.Flags().StringVar(&outFile, "out", "phase.svg", "output file")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [run_id]",
		Short: "write a run's final scene as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotRun,
	}
	snapshotCmd.Flags().StringVar(&outFile, "out", "scene.svg", "output file")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg, _ := config.GetPreset(name)
				fmt.Printf("  %-16s model=%s policy=%s steps=%d\n",
					name, cfg.Model, cfg.Policy.Name, cfg.Episode.MaxSteps)
			}
			return nil
		},
	}

	calibrateCmd := &cobra.Command{
		Use:   "calibrate [model]",
		Short: "show the analytic cart speed bound",
		Args:  cobra.MaximumNArgs(1),
		RunE:  calibrate,
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run the same episode under every model",
		RunE:  compareModels,
	}
	addEpisodeFlags(compareCmd)

	rootCmd.AddCommand(runCmd, exploreCmd, listCmd, plotCmd, chartCmd, phaseCmd,
		snapshotCmd, exportCmd, exportCSVCmd, exportJSONCmd, presetsCmd,
		calibrateCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addStateFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&x0, "x", 0.0, "initial cart position")
	cmd.Flags().Float64Var(&xv0, "xv", 0.0, "initial cart velocity")
	cmd.Flags().Float64Var(&angle0, "angle", 0.0, "initial pole angle (rad)")
	cmd.Flags().Float64Var(&anglev0, "anglev", 0.0, "initial pole angular velocity")
}

func addEpisodeFlags(cmd *cobra.Command) {
	addStateFlags(cmd)
	cmd.Flags().StringVar(&policyName, "policy", "bangbang", "policy")
	cmd.Flags().Float64Var(&gain, "gain", 0.5, "bang-bang switching gain")
	cmd.Flags().IntVar(&maxSteps, "steps", 500, "episode length cap")
	cmd.Flags().Float64Var(&maxAngle, "max-angle", 0.0, "failure angle override (rad)")
}

func modelConfig(args []string) *config.Config {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Model = args[0]
	}
	return cfg
}

func runEpisodes(cmd *cobra.Command, args []string) error {
	cfg := modelConfig(args)

	if preset != "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Model = args[0]
		}
	}

	// CLI flags override whatever the preset or file said.
	if cmd.Flags().Changed("policy") {
		cfg.Policy.Name = policyName
	}
	if cmd.Flags().Changed("gain") {
		cfg.Policy.Gain = gain
	}
	if cmd.Flags().Changed("steps") {
		cfg.Episode.MaxSteps = maxSteps
	}
	if cmd.Flags().Changed("max-angle") {
		cfg.Episode.MaxAbsoluteAngle = maxAngle
	}
	if cmd.Flags().Changed("seed") || cfg.Episode.Seed == 0 {
		cfg.Episode.Seed = seed
	}
	if cmd.Flags().Changed("runs") {
		cfg.Episode.Runs = runs
	}
	if cmd.Flags().Changed("x") {
		cfg.InitState.X = x0
	}
	if cmd.Flags().Changed("xv") {
		cfg.InitState.XVel = xv0
	}
	if cmd.Flags().Changed("angle") {
		cfg.InitState.Angle = angle0
	}
	if cmd.Flags().Changed("anglev") {
		cfg.InitState.AngleVel = anglev0
	}

	p, err := cfg.Params()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	simCfg := sim.Config{
		MaxSteps:         cfg.Episode.MaxSteps,
		MaxAbsoluteAngle: cfg.Episode.MaxAbsoluteAngle,
		ValidateState:    true,
		Seed:             cfg.Episode.Seed,
	}
	start := cfg.GetInitState()

	build := func(seed int64) (*sim.Runner, error) {
		d, err := cartpole.New(p)
		if err != nil {
			return nil, err
		}
		params := cfg.GetPolicyParams()
		params["seed"] = float64(seed)
		pol, err := policy.FromName(cfg.Policy.Name, params)
		if err != nil {
			return nil, err
		}
		r := sim.New(d, pol)
		for _, m := range metrics.Defaults() {
			r.AddMetric(m)
		}
		return r, nil
	}

	fmt.Printf("running %s model, %s policy...\n", cfg.Model, cfg.Policy.Name)
	began := time.Now()

	numRuns := cfg.Episode.Runs
	if numRuns < 1 {
		numRuns = 1
	}

	if numRuns == 1 {
		runner, err := build(cfg.Episode.Seed)
		if err != nil {
			return err
		}
		result, err := runner.Run(context.Background(), start, simCfg)
		if err != nil {
			return err
		}

		runID, err := st.Save(storage.RunInfo{
			Model:     cfg.Model,
			Policy:    cfg.Policy.Name,
			Seed:      cfg.Episode.Seed,
			TimeDelta: p.TimeDelta,
			MaxSteps:  cfg.Episode.MaxSteps,
		}, result)
		if err != nil {
			return err
		}

		fmt.Printf("completed in %v\n", time.Since(began))
		fmt.Printf("run id: %s\n", runID)
		printOutcome(result)
		return nil
	}

	ensemble := sim.NewEnsemble(func(seed int64) *sim.Runner {
		r, err := build(seed)
		if err != nil {
			// Config was validated above, so a builder failure here
			// means a programming error.
			panic(err)
		}
		return r
	}, numRuns, cfg.Episode.Seed)

	results, err := ensemble.Run(context.Background(), start, simCfg)
	if err != nil {
		return err
	}

	fmt.Printf("completed %d runs in %v\n\n", numRuns, time.Since(began))

	failures := 0
	totalSteps := 0
	minSteps, maxStepsSeen := results[0].Steps, results[0].Steps
	for _, r := range results {
		if r.Terminated {
			failures++
		}
		totalSteps += r.Steps
		if r.Steps < minSteps {
			minSteps = r.Steps
		}
		if r.Steps > maxStepsSeen {
			maxStepsSeen = r.Steps
		}
	}
	fmt.Printf("failures: %d/%d\n", failures, numRuns)
	fmt.Printf("steps: mean %.1f  min %d  max %d\n",
		float64(totalSteps)/float64(numRuns), minSteps, maxStepsSeen)

	return nil
}

func printOutcome(result *sim.Result) {
	fmt.Printf("steps: %d\n", result.Steps)
	if result.Terminated {
		final := result.States[len(result.States)-1]
		fmt.Printf("failed at x=%.3f angle=%.3f\n", final.X, final.Angle)
	} else {
		fmt.Println("survived")
	}
	fmt.Printf("return: %.0f\n", result.Return)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	for _, err := range result.Errors {
		fmt.Printf("warning: %v\n", err)
	}
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg := modelConfig(args)
	cfg.InitState = config.InitStateConfig{X: x0, XVel: xv0, Angle: angle0, AngleVel: anglev0}

	p, err := cfg.Params()
	if err != nil {
		return err
	}
	d, err := cartpole.New(p)
	if err != nil {
		return err
	}
	return viz.RunExplorer(d, cfg.GetInitState())
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	list, err := st.List()
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tPOLICY\tTIME\tSTEPS\tOUTCOME\tRETURN")

	for _, run := range list {
		outcome := "survived"
		if run.Terminated {
			outcome = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%.0f\n",
			run.ID,
			run.Model,
			run.Policy,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			outcome,
			run.Return,
		)
	}

	return w.Flush()
}

var plotCaptions = map[string]string{
	cartpole.AttrX:        "cart position",
	cartpole.AttrXVel:     "cart velocity",
	cartpole.AttrAngle:    "pole angle",
	cartpole.AttrAngleVel: "pole angular velocity",
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(states))

	attrs := []string{cartpole.AttrX, cartpole.AttrXVel,
		cartpole.AttrAngle, cartpole.AttrAngleVel}

	for _, attr := range attrs {
		data := make([]float64, len(states))
		for i, s := range states {
			v, _ := s.Get(attr)
			data[i] = v
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(plotCaptions[attr]),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func loadResult(runID string) (*storage.RunMetadata, *sim.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return nil, nil, err
	}

	result := &sim.Result{
		States:     states,
		Steps:      meta.Steps,
		Terminated: meta.Terminated,
		Return:     meta.Return,
		Metrics:    meta.Metrics,
	}
	return meta, result, nil
}

func chartRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	if len(result.States) == 0 {
		return fmt.Errorf("no data to chart")
	}

	if err := export.SaveCharts(outDir, meta.TimeDelta, result); err != nil {
		return err
	}
	fmt.Printf("charts written to %s\n", outDir)
	return nil
}

func phaseRun(cmd *cobra.Command, args []string) error {
	_, result, err := loadResult(args[0])
	if err != nil {
		return err
	}

	svg := export.PhaseSVG(result, 600, 450)
	if svg == "" {
		return fmt.Errorf("trajectory too short to plot")
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("phase portrait written to %s\n", outFile)
	return nil
}

func snapshotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	if len(result.States) == 0 {
		return fmt.Errorf("no data to render")
	}

	cfg := config.DefaultConfig()
	cfg.Model = meta.Model
	p, err := cfg.Params()
	if err != nil {
		return err
	}

	svg := export.SceneSVG(p, result.States[len(result.States)-1], 4)
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("scene written to %s\n", outFile)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time", cartpole.AttrX, cartpole.AttrXVel,
		cartpole.AttrAngle, cartpole.AttrAngleVel}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, s := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range s.Vector() {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	return store.ExportJSONStdout(meta.Model, meta.Policy, meta.TimeDelta, result)
}

func calibrate(cmd *cobra.Command, args []string) error {
	cfg := modelConfig(args)
	p, err := cfg.Params()
	if err != nil {
		return err
	}

	bound := p.MaxCartSpeedBound()
	fmt.Printf("model: %s\n", cfg.Model)
	fmt.Printf("analytic cart speed bound: %.4f m/s\n", bound)
	fmt.Printf("configured cap: %.4f m/s\n", p.MaxCartSpeed)
	if bound > p.MaxCartSpeed {
		fmt.Println("note: the bound exceeds the cap; the cap clamps first")
	}
	return nil
}

func compareModels(cmd *cobra.Command, args []string) error {
	models := []string{config.ModelCorrect, config.ModelClassicGravity, config.ModelClassic}

	fmt.Printf("comparing models (%s policy, %d step cap)\n\n", policyName, maxSteps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tSTEPS\tOUTCOME\tFINAL X\tFINAL ANGLE")

	for _, model := range models {
		cfg := config.DefaultConfig()
		cfg.Model = model
		p, err := cfg.Params()
		if err != nil {
			return err
		}
		d, err := cartpole.New(p)
		if err != nil {
			return err
		}
		pol, err := policy.FromName(policyName, map[string]float64{"gain": gain, "seed": 1})
		if err != nil {
			return err
		}

		runner := sim.New(d, pol)
		result, err := runner.Run(context.Background(),
			cartpole.NewState(x0, xv0, angle0, anglev0),
			sim.Config{MaxSteps: maxSteps, MaxAbsoluteAngle: maxAngle, ValidateState: true})
		if err != nil {
			return err
		}

		outcome := "survived"
		if result.Terminated {
			outcome = "failed"
		}
		final := result.States[len(result.States)-1]
		fmt.Fprintf(w, "%s\t%d\t%s\t%.4f\t%.4f\n",
			model, result.Steps, outcome, final.X, final.Angle)
	}

	return w.Flush()
}
