package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/carve/config"
	"github.com/pthm-cable/carve/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run a scripted session without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "Terrain and script seed (0 = config seed, or time-based in headless mode)")
	maxEdits := flag.Int("max-edits", 0, "Stop after N applied edits (0 = unlimited)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	strategy := flag.String("strategy", "", "Fast blend strategy: reference, summed_area or separable (empty = config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Generate.Seed
		if *headless && rngSeed == 0 {
			rngSeed = time.Now().UnixNano()
		}
	}

	opts := game.Options{
		Seed:      rngSeed,
		Headless:  *headless,
		OutputDir: *outputDir,
		Strategy:  *strategy,
		LogStats:  *logStats,
	}

	done := func(g *game.Game) bool {
		if *maxEdits > 0 && g.Edits() >= *maxEdits {
			slog.Info("max edits reached", "edits", g.Edits(), "frame", g.Frame())
			return true
		}
		if *maxFrames > 0 && g.Frame() >= *maxFrames {
			slog.Info("max frames reached", "edits", g.Edits(), "frame", g.Frame())
			return true
		}
		return false
	}

	if *headless {
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to start session", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless session",
			"seed", rngSeed,
			"max_edits", *maxEdits,
			"max_frames", *maxFrames,
		)

		for !done(g) {
			g.UpdateHeadless()
		}
		return
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Carve")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	// Escape resets the camera instead of closing the window
	rl.SetExitKey(0)

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if done(g) {
			break
		}
	}
}
