// Terrain noise preview tool - tune the generate section with sliders.
//
// Usage: go run ./cmd/noisepreview -config config.yaml
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/carve/camera"
	"github.com/pthm-cable/carve/config"
	"github.com/pthm-cable/carve/renderer"
	"github.com/pthm-cable/carve/telemetry"
	"github.com/pthm-cable/carve/terrain"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 256
)

// slider is one tunable parameter of the generate section.
type slider struct {
	label    string
	min, max float32
	format   string
	value    func(*config.GenerateConfig) *float64
}

var sliders = []slider{
	{"Scale (cycles per cell)", 0.002, 0.08, "%.4f", func(g *config.GenerateConfig) *float64 { return &g.Scale }},
	{"Lacunarity (frequency multiplier)", 1.5, 4.0, "%.2f", func(g *config.GenerateConfig) *float64 { return &g.Lacunarity }},
	{"Gain (amplitude multiplier)", 0.2, 0.9, "%.2f", func(g *config.GenerateConfig) *float64 { return &g.Gain }},
	{"Threshold (solid above)", 0.2, 0.8, "%.2f", func(g *config.GenerateConfig) *float64 { return &g.Threshold }},
	{"Softness (edge band)", 0, 0.5, "%.2f", func(g *config.GenerateConfig) *float64 { return &g.Softness }},
}

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	defaults := cfg.Generate
	params := defaults

	rl.InitWindow(windowWidth, windowHeight, "Terrain Noise Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	field, err := terrain.New(gridSize, gridSize)
	if err != nil {
		log.Fatalf("creating field: %v", err)
	}
	tex := renderer.NewTerrainRenderer(gridSize, gridSize)
	defer tex.Unload()
	// Fits the whole grid into the preview square
	cam := camera.New(previewSize, previewSize, gridSize, gridSize, 0.5, 8)

	var stats telemetry.FieldStats
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			field.Generate(params.Seed, noiseParams(params))
			tex.Upload(field)
			stats = telemetry.ComputeFieldStats(field.Values())
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		tex.Draw(cam)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f  Mean: %.3f", stats.Min, stats.Max, stats.Mean), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Empty: %.1f%%  Solid: %.1f%%", stats.EmptyFrac*100, stats.FullFrac*100), 15, statsY+20, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Terrain Noise Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for _, s := range sliders {
			v := s.value(&params)
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				float32(*v), s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, *v), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if next != float32(*v) {
				*v = float64(next)
				needsRegen = true
			}
			panelY += 35
		}

		rl.DrawText("Octaves", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		octaves := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"", "",
			float32(params.Octaves), 1, 8,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Octaves), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(octaves) != params.Octaves {
			params.Octaves = int(octaves)
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			needsRegen = true
		}
		panelY += 45

		out, err := generateYAML(params)
		if err != nil {
			out = err.Error()
		}
		rl.DrawText(fmt.Sprintf("YAML Config (seed %d):", params.Seed), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) && err == nil {
			rl.SetClipboardText(out)
		}

		rl.EndDrawing()
	}
}

func noiseParams(g config.GenerateConfig) terrain.NoiseParams {
	return terrain.NoiseParams{
		Scale:      float32(g.Scale),
		Octaves:    g.Octaves,
		Lacunarity: float32(g.Lacunarity),
		Gain:       float32(g.Gain),
		Threshold:  float32(g.Threshold),
		Softness:   float32(g.Softness),
	}
}

// generateYAML renders params as a generate section ready to paste into a
// config file.
func generateYAML(g config.GenerateConfig) (string, error) {
	b, err := yaml.Marshal(map[string]config.GenerateConfig{"generate": g})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
