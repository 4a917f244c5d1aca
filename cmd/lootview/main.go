// Command lootview renders and inspects loot scenes.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/loot"
)

var (
	// Global flags
	configPath string
	verbose    bool
	sceneName  string
	scriptPath string
	width      int
	height     int

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lootview",
	Short: "Render and inspect loot scenes",
	Long: `lootview builds one of the bundled scenes and renders it headlessly,
prints its draw operations, or opens it in a window.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		loot.SetLogger(logger.Named("loot"))
		if verbose {
			gg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a scene to a PNG file",
	RunE:  runRender,
}

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Print the draw operations of one frame",
	RunE:  runTrace,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open a scene in a window",
	RunE:  runWindow,
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the effective settings as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadSettings()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(st)
		if err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List the bundled scenes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range sceneNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

var (
	outPath string
	frames  int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "lootview.yaml", "Settings file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&sceneName, "scene", "s", "demo", "Scene to build")
	rootCmd.PersistentFlags().StringVar(&scriptPath, "script", "", "JSON test script to drive the scene")
	rootCmd.PersistentFlags().IntVar(&width, "width", 0, "Canvas width (overrides settings)")
	rootCmd.PersistentFlags().IntVar(&height, "height", 0, "Canvas height (overrides settings)")

	renderCmd.Flags().StringVarP(&outPath, "out", "o", "frame.png", "Output PNG path, or - for stdout")
	renderCmd.Flags().IntVarP(&frames, "frames", "n", 1, "Frames to simulate before rendering")
	traceCmd.Flags().IntVarP(&frames, "frames", "n", 1, "Frames to simulate before tracing")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(scenesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadSettings reads the settings file and applies flag overrides.
func loadSettings() (loot.Settings, error) {
	st, err := loot.LoadSettings(configPath)
	if err != nil {
		return st, err
	}
	if width > 0 {
		st.Width = width
	}
	if height > 0 {
		st.Height = height
	}
	if verbose {
		st.Debug = true
	}
	return st, st.Validate()
}

// newScene builds the selected scene and attaches the test script, if any.
func newScene() (*loot.Scene, error) {
	st, err := loadSettings()
	if err != nil {
		return nil, err
	}
	build, ok := scenes[sceneName]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", sceneName, sceneNames())
	}
	scene := loot.NewScene(st)
	if err := build(scene); err != nil {
		return nil, fmt.Errorf("build scene %q: %w", sceneName, err)
	}
	scene.OnPick = func(e loot.PickEvent) {
		logger.Info("pick",
			zap.Int("button", e.Button),
			zap.Bool("pressed", e.Pressed),
			zap.Int("x", e.X),
			zap.Int("y", e.Y),
			zap.Bool("hit", e.Target != nil),
		)
	}
	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read script: %w", err)
		}
		runner, err := loot.LoadTestScript(data)
		if err != nil {
			return nil, err
		}
		scene.SetTestRunner(runner)
	}
	return scene, nil
}

// simulate runs the scene headlessly for n frames on surface.
func simulate(scene *loot.Scene, surface loot.Surface, n int) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loop := loot.NewLoop(scene.Settings.Interval, scene.Settings.Timing)
	start := time.Now()
	err := loop.Run(ctx, &frameLimit{Game: scene.Game(surface), limit: n})
	logger.Debug("simulation finished",
		zap.Int64("frames", scene.Frame()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Float64("fps", loop.FPS()),
	)
	return err
}

// frameLimit stops a game after limit updates.
type frameLimit struct {
	loot.Game
	n, limit int
}

func (f *frameLimit) Update(ts time.Duration) (bool, error) {
	if f.n >= f.limit {
		return false, loot.ErrStop
	}
	f.n++
	return f.Game.Update(ts)
}

func runRender(cmd *cobra.Command, args []string) error {
	scene, err := newScene()
	if err != nil {
		return err
	}
	surface := loot.NewSoftwareSurface(scene.Settings.Width, scene.Settings.Height)
	defer surface.Close()

	if err := simulate(scene, surface, frames); err != nil {
		return err
	}
	if outPath == "-" {
		snap := scene.Snapshot()
		defer snap.Close()
		if err := snap.EncodePNG(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("failed to encode frame: %w", err)
		}
		return nil
	}
	if err := scene.SavePNG(outPath); err != nil {
		return err
	}
	logger.Info("frame rendered", zap.String("out", outPath), zap.String("scene", sceneName))
	return nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	scene, err := newScene()
	if err != nil {
		return err
	}
	rec := loot.NewRecorder()
	if err := simulate(scene, rec, frames); err != nil {
		return err
	}
	rec.Reset()
	scene.Draw(rec)
	out := cmd.OutOrStdout()
	for i, op := range rec.Ops {
		fmt.Fprintf(out, "%4d %s\n", i, op)
	}
	return nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	scene, err := newScene()
	if err != nil {
		return err
	}
	return loot.RunWindow(scene)
}
