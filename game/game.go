// Package game hosts an editor session: it turns raylib input into session
// calls, throttles held triggers, draws the field and records telemetry.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/carve/brush"
	"github.com/pthm-cable/carve/camera"
	"github.com/pthm-cable/carve/config"
	"github.com/pthm-cable/carve/editor"
	"github.com/pthm-cable/carve/raycast"
	"github.com/pthm-cable/carve/renderer"
	"github.com/pthm-cable/carve/telemetry"
	"github.com/pthm-cable/carve/ui"
)

// Options configures a new Game.
type Options struct {
	Seed      int64
	Headless  bool
	OutputDir string

	// Strategy overrides brush.fast_strategy when non-empty.
	Strategy string

	// Config overrides the global config when set.
	Config *config.Config

	// LogStats logs every flushed stats window.
	LogStats bool

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete editor state.
type Game struct {
	cfg      *config.Config
	session  *editor.Session
	throttle *editor.Throttle
	camera   *camera.Camera
	rng      *rand.Rand

	// Rendering (nil when headless)
	terrain   *renderer.TerrainRenderer
	hud       *ui.HUD
	toolPanel *ui.ToolPanel
	perfPanel *ui.PerfPanel

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool
	lastField     telemetry.FieldStats

	// State
	frame        int64
	edits        int
	seed         int64
	generation   int
	dt           float32
	zoomSpeed    float32
	dirty        bool
	showOverlays bool
	target       raycast.Result
	lastError    string
	stroke       headlessStroke

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game from the global config (or opts.Config).
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	ecfg, err := editor.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if opts.Strategy != "" {
		if ecfg.FastStrategy, err = brush.ParseStrategy(opts.Strategy); err != nil {
			return nil, err
		}
	}
	session, err := editor.NewSession(ecfg)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	dt := float32(1.0 / 60.0)
	if cfg.Screen.TargetFPS > 0 {
		dt = 1 / float32(cfg.Screen.TargetFPS)
	}

	g := &Game{
		cfg:           cfg,
		session:       session,
		throttle:      editor.NewThrottle(float32(cfg.Throttle.Interval)),
		rng:           rand.New(rand.NewSource(opts.Seed)),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindowSec, dt),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
		seed:          opts.Seed,
		dt:            dt,
		zoomSpeed:     float32(cfg.Camera.ZoomSpeed),
		dirty:         true,
		showOverlays:  true,
		screenWidth:   cfg.Derived.ScreenW32,
		screenHeight:  cfg.Derived.ScreenH32,
	}
	g.camera = camera.New(g.screenWidth, g.screenHeight, cfg.Derived.MapW32, cfg.Derived.MapH32,
		float32(cfg.Camera.MinZoom), float32(cfg.Camera.MaxZoom))

	if cfg.Generate.Enabled {
		session.Generate(opts.Seed)
	}

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		g.outputManager.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	if !opts.Headless {
		g.terrain = renderer.NewTerrainRenderer(int32(cfg.Map.Width), int32(cfg.Map.Height))
		g.hud = ui.NewHUD()
		g.toolPanel = ui.NewToolPanel(20, 110, 140, editor.ToolLabels())
		g.toolPanel.BrushMin = int(cfg.Brush.Min)
		g.toolPanel.BrushMax = int(cfg.Brush.Max)
		g.perfPanel = ui.NewPerfPanel(int32(g.screenWidth)-230, 20)
	}

	g.lastField = telemetry.ComputeFieldStats(session.Field().Values())
	slog.Info("session started",
		"width", cfg.Map.Width,
		"height", cfg.Map.Height,
		"tool", session.Tool().String(),
		"fast_strategy", session.Strategy().String(),
		"edge_policy", ecfg.Brush.Edges.String(),
		"seed", opts.Seed,
		"output_dir", g.outputManager.Dir(),
	)
	return g, nil
}

// Update runs one windowed frame.
func (g *Game) Update() {
	g.handleResize()
	in := readInput()
	if g.toolPanel.Contains(in.Mouse.X, in.Mouse.Y) {
		// Clicks on the panel belong to raygui
		in.Buttons = editor.Buttons{Ctrl: in.Ctrl}
	}
	g.step(in, rl.GetFrameTime())
}

// step advances the editor by one frame of input.
func (g *Game) step(in Input, dt float32) {
	g.perfCollector.StartFrame()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.throttle.Advance(dt)
	action, fire := g.handleInput(in, dt)

	g.perfCollector.StartPhase(telemetry.PhaseTarget)
	g.updateTarget()

	if fire {
		g.perfCollector.StartPhase(telemetry.PhaseEdit)
		g.applyEdit(action)
	}

	if g.dirty && g.terrain != nil {
		g.perfCollector.StartPhase(telemetry.PhaseUpload)
		g.terrain.Upload(g.session.Field())
		g.dirty = false
	}

	g.perfCollector.StartPhase(telemetry.PhaseStats)
	g.frame++
	g.flushTelemetry()

	g.perfCollector.EndFrame()
}

// updateTarget refreshes the target shown by the overlay.
func (g *Game) updateTarget() {
	res, err := g.session.Target()
	if err != nil {
		res = raycast.Result{}
	}
	g.target = res
}

// applyEdit runs the operator bound to the active tool and action.
func (g *Game) applyEdit(a editor.Action) {
	before := g.session.Field().Mass()
	start := time.Now()
	e, err := g.session.Apply(a)
	dur := time.Since(start)
	g.throttle.MarkUsed()

	if errors.Is(err, editor.ErrNoTarget) {
		g.collector.RecordMiss()
		return
	}
	g.collector.RecordEdit(dur, err)

	rec := telemetry.NewEditRecord(g.frame, g.timeSec(), e, dur, g.session.Field().Mass()-before, err)
	if err != nil {
		g.reject(err)
	} else {
		g.edits++
		g.dirty = true
		g.lastError = ""
		if g.cfg.Telemetry.LogEdits {
			slog.Info("edit", "edit", rec)
		}
	}
	if err := g.outputManager.WriteEdit(rec); err != nil {
		slog.Error("failed to write edit", "error", err)
	}
}

// reject logs an edit the session refused; the field is unchanged.
func (g *Game) reject(err error) {
	g.lastError = err.Error()
	slog.Warn("edit rejected", "frame", g.frame, "error", err)
}

func (g *Game) timeSec() float64 {
	return float64(g.frame) * float64(g.dt)
}

// Session returns the edited session.
func (g *Game) Session() *editor.Session { return g.session }

// Frame returns the number of frames run.
func (g *Game) Frame() int64 { return g.frame }

// Edits returns the number of edits applied successfully.
func (g *Game) Edits() int { return g.edits }

// Unload releases GPU resources and closes output files.
func (g *Game) Unload() {
	if g.terrain != nil {
		g.terrain.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
