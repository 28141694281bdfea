package editor

import (
	"fmt"

	"github.com/pthm-cable/carve/brush"
	"github.com/pthm-cable/carve/config"
	"github.com/pthm-cable/carve/terrain"
)

// FromConfig maps the loaded configuration onto session parameters.
func FromConfig(cfg *config.Config) (Config, error) {
	tool, err := ParseTool(cfg.Brush.Tool)
	if err != nil {
		return Config{}, fmt.Errorf("brush.tool: %w", err)
	}
	strategy, err := brush.ParseStrategy(cfg.Brush.FastStrategy)
	if err != nil {
		return Config{}, fmt.Errorf("brush.fast_strategy: %w", err)
	}
	edges, err := brush.ParseEdgePolicy(cfg.Brush.EdgePolicy)
	if err != nil {
		return Config{}, fmt.Errorf("brush.edge_policy: %w", err)
	}

	return Config{
		Width:            cfg.Map.Width,
		Height:           cfg.Map.Height,
		PlayerSpeed:      float32(cfg.Player.Speed),
		SprintMultiplier: float32(cfg.Player.SprintMultiplier),
		BrushSize:        float32(cfg.Brush.Size),
		BrushMin:         float32(cfg.Brush.Min),
		BrushMax:         float32(cfg.Brush.Max),
		BrushScale:       float32(cfg.Brush.ScaleStep),
		BlendRange:       cfg.Brush.BlendRange,
		Reach:            float32(cfg.Raycast.MaxDistance),
		PaintRadius:      cfg.Brush.PaintRadius,
		SpawnClearRadius: cfg.Generate.ClearRadius,
		Tool:             tool,
		FastStrategy:     strategy,
		Brush: brush.Brush{
			ConeAngle:      float32(cfg.Spray.ConeAngle),
			ConeStep:       float32(cfg.Spray.Step),
			SprayBias:      float32(cfg.Spray.Bias),
			SoftCircleBias: float32(cfg.SoftCircle.Bias),
			Edges:          edges,
		},
		Noise: terrain.NoiseParams{
			Scale:      float32(cfg.Generate.Scale),
			Octaves:    cfg.Generate.Octaves,
			Lacunarity: float32(cfg.Generate.Lacunarity),
			Gain:       float32(cfg.Generate.Gain),
			Threshold:  float32(cfg.Generate.Threshold),
			Softness:   float32(cfg.Generate.Softness),
		},
	}, nil
}
