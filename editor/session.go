// Package editor ties the terrain, raycaster and brush operators into one
// editing session. A Session owns the field and the live editor state
// (player, cursor, tool and brush settings); the host feeds it input and
// asks it to apply edits.
package editor

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/carve/brush"
	"github.com/pthm-cable/carve/raycast"
	"github.com/pthm-cable/carve/terrain"
	"github.com/pthm-cable/carve/vmath"
)

var (
	// ErrNoTarget is returned by Apply when the ray from the player toward
	// the cursor reaches no terrain.
	ErrNoTarget = errors.New("editor: ray did not reach terrain")

	ErrInvalidAction = errors.New("editor: invalid action")
)

// Config holds the session parameters. Hosts build it from their own
// configuration source.
type Config struct {
	Width, Height int

	PlayerSpeed      float32 // units per second
	SprintMultiplier float32

	BrushSize  float32 // initial radius
	BrushMin   float32
	BrushMax   float32
	BrushScale float32 // factor per wheel notch
	BlendRange int

	Reach            float32 // raycast distance budget
	PaintRadius      int
	SpawnClearRadius int

	Tool         Tool
	FastStrategy brush.Strategy
	Brush        brush.Brush
	Noise        terrain.NoiseParams
}

// DefaultConfig returns the stock editor settings.
func DefaultConfig() Config {
	return Config{
		Width:            512,
		Height:           512,
		PlayerSpeed:      100,
		SprintMultiplier: 2.5,
		BrushSize:        16,
		BrushMin:         4,
		BrushMax:         200,
		BrushScale:       1.1,
		BlendRange:       15,
		Reach:            500,
		PaintRadius:      32,
		SpawnClearRadius: 24,
		Tool:             ToolBlendBallFractional,
		FastStrategy:     brush.StrategySeparable,
		Brush:            brush.Default(),
		Noise: terrain.NoiseParams{
			Scale: 0.012, Octaves: 4, Lacunarity: 2, Gain: 0.5, Threshold: 0.5, Softness: 0.15,
		},
	}
}

// Session is the editor context passed to every edit.
type Session struct {
	cfg   Config
	field *terrain.Field
	brush brush.Brush

	player vmath.Vec2
	cursor vmath.Vec2
	tool   Tool

	brushF   float32
	size     int
	blend    int
	strategy brush.Strategy
}

// NewSession creates an empty field of the configured size with the player
// at its centre.
func NewSession(cfg Config) (*Session, error) {
	f, err := terrain.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	if cfg.BrushMin <= 0 || cfg.BrushMax < cfg.BrushMin {
		return nil, fmt.Errorf("%w: brush limits [%.1f, %.1f]", brush.ErrInvalidBrush, cfg.BrushMin, cfg.BrushMax)
	}
	if cfg.BlendRange <= 0 {
		return nil, fmt.Errorf("%w: blend range %d", brush.ErrInvalidBrush, cfg.BlendRange)
	}
	if !cfg.Tool.Valid() {
		return nil, fmt.Errorf("editor: invalid tool %d", cfg.Tool)
	}

	s := &Session{
		cfg:      cfg,
		field:    f,
		brush:    cfg.Brush,
		player:   vmath.V(float32(cfg.Width)/2, float32(cfg.Height)/2),
		tool:     cfg.Tool,
		blend:    cfg.BlendRange,
		strategy: cfg.FastStrategy,
	}
	s.setBrushF(cfg.BrushSize)
	return s, nil
}

// Field returns the edited terrain. Callers must not mutate it while an edit
// is running.
func (s *Session) Field() *terrain.Field { return s.field }

func (s *Session) Player() vmath.Vec2 { return s.player }
func (s *Session) Cursor() vmath.Vec2 { return s.cursor }
func (s *Session) Tool() Tool         { return s.tool }
func (s *Session) BrushSize() int     { return s.size }
func (s *Session) BlendRange() int    { return s.blend }

// Strategy returns the blend strategy bound to the fast blend slot.
func (s *Session) Strategy() brush.Strategy { return s.strategy }

// Config returns the parameters the session was created with.
func (s *Session) Config() Config { return s.cfg }

// SetPlayer moves the ray origin.
func (s *Session) SetPlayer(p vmath.Vec2) { s.player = p }

// SetCursor moves the point the ray aims at, in field coordinates.
func (s *Session) SetCursor(p vmath.Vec2) { s.cursor = p }

// MovePlayer moves the player along dir, whose components are expected in
// [-1,1], for dt seconds.
func (s *Session) MovePlayer(dir vmath.Vec2, dt float32, sprint bool) {
	speed := s.cfg.PlayerSpeed
	if sprint {
		speed *= s.cfg.SprintMultiplier
	}
	s.player = s.player.Add(dir.Scale(speed * dt))
}

// SelectTool switches the active tool.
func (s *Session) SelectTool(t Tool) error {
	if !t.Valid() {
		return fmt.Errorf("editor: invalid tool %d", t)
	}
	s.tool = t
	return nil
}

// SetStrategy rebinds the fast blend slot.
func (s *Session) SetStrategy(st brush.Strategy) { s.strategy = st }

// ScaleBrush grows the brush by BrushScale per positive notch and shrinks it
// per negative notch, within [BrushMin, BrushMax].
func (s *Session) ScaleBrush(notches int) {
	f := s.brushF
	for ; notches > 0; notches-- {
		f *= s.cfg.BrushScale
	}
	for ; notches < 0; notches++ {
		f /= s.cfg.BrushScale
	}
	s.setBrushF(f)
}

// SetBrushSize sets the radius directly, clamped to the brush limits.
func (s *Session) SetBrushSize(size int) { s.setBrushF(float32(size)) }

func (s *Session) setBrushF(f float32) {
	s.brushF = vmath.Clamp(f, s.cfg.BrushMin, s.cfg.BrushMax)
	s.size = int(math.Floor(float64(s.brushF)))
}

// SetBlendRange sets the averaging half-width used by the blend tools.
func (s *Session) SetBlendRange(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: blend range %d", brush.ErrInvalidBrush, n)
	}
	s.blend = n
	return nil
}

// Ray returns the ray from the player toward the cursor and its distance
// budget: the configured reach, shortened to the cursor distance.
func (s *Session) Ray() (origin, dir vmath.Vec2, reach float32) {
	d := s.cursor.Sub(s.player)
	return s.player, d.Norm(), min(s.cfg.Reach, d.Len())
}

// Target resolves the edit target: the first cell at or above the density
// threshold along the ray.
func (s *Session) Target() (raycast.Result, error) {
	origin, dir, reach := s.Ray()
	return raycast.Cast(s.field, origin, dir, reach, raycast.ThresholdCrossing)
}

// SurfaceTarget resolves the first non-empty cell along the ray.
func (s *Session) SurfaceTarget() (raycast.Result, error) {
	origin, dir, reach := s.Ray()
	return raycast.Cast(s.field, origin, dir, reach, raycast.FirstSolid)
}

// Stroke assembles the operator inputs for target from the live state.
func (s *Session) Stroke(target terrain.Cell) brush.Stroke {
	origin, dir, reach := s.Ray()
	return brush.Stroke{
		Target: target,
		Origin: origin,
		Dir:    dir,
		Reach:  reach,
		Size:   s.size,
		Blend:  s.blend,
	}
}

// Paint fills a solid disc of PaintRadius at the cursor.
func (s *Session) Paint() error {
	return brush.Paint(s.field, terrain.CellAt(s.cursor), s.cfg.PaintRadius)
}

// Clear empties the whole field.
func (s *Session) Clear() { s.field.Fill(0) }

// Generate replaces the field with noise terrain and clears a pocket around
// the player so the first ray has room to travel.
func (s *Session) Generate(seed int64) {
	s.field.Generate(seed, s.cfg.Noise)
	if s.cfg.SpawnClearRadius > 0 {
		s.field.ClearDisc(terrain.CellAt(s.player), s.cfg.SpawnClearRadius)
	}
}
