package editor

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/carve/brush"
	"github.com/pthm-cable/carve/raycast"
	"github.com/pthm-cable/carve/terrain"
	"github.com/pthm-cable/carve/vmath"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 64, 64
	cfg.BlendRange = 3
	cfg.SpawnClearRadius = 4
	return cfg
}

// wallSession has a solid column at x=40 with the player left of it aiming
// right along row 32.
func wallSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 64; y++ {
		_ = s.Field().Set(40, y, 1)
	}
	s.SetPlayer(vmath.V(10.5, 32.5))
	s.SetCursor(vmath.V(60.5, 32.5))
	return s
}

func TestNewSessionDefaults(t *testing.T) {
	s, err := NewSession(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if s.Player() != vmath.V(32, 32) {
		t.Errorf("expected player at field centre, got %+v", s.Player())
	}
	if s.BrushSize() != 16 || s.BlendRange() != 3 {
		t.Errorf("unexpected brush %d/%d", s.BrushSize(), s.BlendRange())
	}
	if s.Tool() != ToolBlendBallFractional {
		t.Errorf("expected default tool blend_ball_fractional, got %s", s.Tool())
	}
	if s.Strategy() != brush.StrategySeparable {
		t.Errorf("expected separable fast path, got %s", s.Strategy())
	}
}

func TestNewSessionRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
		want error
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, terrain.ErrInvalidSize},
		{"inverted limits", func(c *Config) { c.BrushMin, c.BrushMax = 10, 5 }, brush.ErrInvalidBrush},
		{"zero blend", func(c *Config) { c.BlendRange = 0 }, brush.ErrInvalidBrush},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.edit(&cfg)
			if _, err := NewSession(cfg); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestScaleBrush(t *testing.T) {
	s, _ := NewSession(testConfig())

	s.ScaleBrush(1)
	if s.BrushSize() != 17 {
		t.Errorf("16 * 1.1 should floor to 17, got %d", s.BrushSize())
	}
	s.ScaleBrush(-1)
	if s.BrushSize() != 16 {
		t.Errorf("expected back to 16, got %d", s.BrushSize())
	}
	s.ScaleBrush(-100)
	if s.BrushSize() != 4 {
		t.Errorf("expected clamp to 4, got %d", s.BrushSize())
	}
	s.ScaleBrush(200)
	if s.BrushSize() != 200 {
		t.Errorf("expected clamp to 200, got %d", s.BrushSize())
	}
	s.SetBrushSize(1)
	if s.BrushSize() != 4 {
		t.Errorf("SetBrushSize should clamp, got %d", s.BrushSize())
	}
}

func TestSetBlendRange(t *testing.T) {
	s, _ := NewSession(testConfig())
	if err := s.SetBlendRange(0); !errors.Is(err, brush.ErrInvalidBrush) {
		t.Errorf("expected ErrInvalidBrush, got %v", err)
	}
	if s.BlendRange() != 3 {
		t.Error("rejected value must not be stored")
	}
	if err := s.SetBlendRange(7); err != nil || s.BlendRange() != 7 {
		t.Errorf("expected 7, got %d (%v)", s.BlendRange(), err)
	}
}

func TestSelectTool(t *testing.T) {
	s, _ := NewSession(testConfig())
	if err := s.SelectTool(ToolGauss); err != nil || s.Tool() != ToolGauss {
		t.Errorf("expected gauss, got %s (%v)", s.Tool(), err)
	}
	if err := s.SelectTool(Tool(9)); err == nil {
		t.Error("expected error for invalid tool")
	}
	if s.Tool() != ToolGauss {
		t.Error("invalid selection must keep the current tool")
	}
}

func TestMovePlayer(t *testing.T) {
	s, _ := NewSession(testConfig())
	s.SetPlayer(vmath.V(0, 0))
	s.MovePlayer(vmath.V(1, 0), 0.1, false)
	if math.Abs(float64(s.Player().X-10)) > 1e-4 {
		t.Errorf("expected x=10 at speed 100, got %f", s.Player().X)
	}
	s.MovePlayer(vmath.V(0, -1), 0.1, true)
	if math.Abs(float64(s.Player().Y+25)) > 1e-4 {
		t.Errorf("expected y=-25 when sprinting, got %f", s.Player().Y)
	}
}

func TestRayReachShortenedToCursor(t *testing.T) {
	s, _ := NewSession(testConfig())
	s.SetPlayer(vmath.V(0, 0))
	s.SetCursor(vmath.V(3, 4))
	origin, dir, reach := s.Ray()
	if origin != vmath.V(0, 0) || reach != 5 {
		t.Errorf("expected reach 5 from origin, got %f from %+v", reach, origin)
	}
	if math.Abs(float64(dir.Len()-1)) > 1e-6 {
		t.Errorf("expected unit direction, got %+v", dir)
	}

	s.SetCursor(vmath.V(3000, 4000))
	if _, _, reach := s.Ray(); reach != 500 {
		t.Errorf("expected reach capped at 500, got %f", reach)
	}
}

func TestTarget(t *testing.T) {
	s := wallSession(t)
	res, err := s.Target()
	if err != nil {
		t.Fatal(err)
	}
	if !res.Hit || res.Cell != (terrain.Cell{X: 40, Y: 32}) {
		t.Errorf("expected target (40,32), got %+v", res)
	}

	// Cursor in front of the wall limits the budget.
	s.SetCursor(vmath.V(30.5, 32.5))
	if res, _ := s.Target(); res.Hit {
		t.Errorf("cursor before the wall should not hit, got %+v", res)
	}
}

func TestTargetIgnoresLowDensity(t *testing.T) {
	s := wallSession(t)
	_ = s.Field().Set(25, 32, 0.3)
	res, _ := s.Target()
	if res.Cell.X != 40 {
		t.Errorf("density below 0.5 should not stop the target ray, got %v", res.Cell)
	}
}

func TestApplyNoTarget(t *testing.T) {
	s := wallSession(t)
	s.SetCursor(vmath.V(30.5, 32.5))
	before := s.Field().Values()
	if _, err := s.Apply(Primary); !errors.Is(err, ErrNoTarget) {
		t.Errorf("expected ErrNoTarget, got %v", err)
	}
	s.SetCursor(s.Player())
	if _, err := s.Apply(Primary); !errors.Is(err, raycast.ErrDegenerateRay) {
		t.Errorf("expected ErrDegenerateRay, got %v", err)
	}
	after := s.Field().Values()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("field changed at %d", i)
		}
	}
}

func TestApplyInvalidAction(t *testing.T) {
	s := wallSession(t)
	if _, err := s.Apply(Action(7)); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction, got %v", err)
	}
}

func TestBindings(t *testing.T) {
	tests := []struct {
		tool      Tool
		primary   Op
		secondary Op
	}{
		{ToolCircleFull, OpCarveCircle, OpCarveCircle},
		{ToolCircleFractional, OpSoftCarve, OpSoftCarve},
		{ToolGauss, OpSprayRestore, OpSprayDestruct},
		{ToolBlendBallFull, OpBlendReference, OpBlendReference},
		{ToolBlendBallFractional, OpBlendReference, OpBlendFast},
	}
	for _, tc := range tests {
		if got := OpFor(tc.tool, Primary); got != tc.primary {
			t.Errorf("%s primary: expected %s, got %s", tc.tool, tc.primary, got)
		}
		if got := OpFor(tc.tool, Secondary); got != tc.secondary {
			t.Errorf("%s secondary: expected %s, got %s", tc.tool, tc.secondary, got)
		}
	}
}

func TestApplyRunsBoundOperator(t *testing.T) {
	for tool := ToolCircleFull; tool < toolCount; tool++ {
		for _, a := range []Action{Primary, Secondary} {
			s := wallSession(t)
			if err := s.SelectTool(tool); err != nil {
				t.Fatal(err)
			}
			before := s.Field().Mass()

			e, err := s.Apply(a)
			if err != nil {
				t.Fatalf("%s/%s: %v", tool, a, err)
			}
			if e.Op != OpFor(tool, a) || e.Target != (terrain.Cell{X: 40, Y: 32}) {
				t.Errorf("%s/%s: unexpected edit %+v", tool, a, e)
			}
			if e.Size != 16 || e.Blend != 3 {
				t.Errorf("%s/%s: edit should record brush 16/3, got %d/%d", tool, a, e.Size, e.Blend)
			}
			if s.Field().Mass() == before {
				t.Errorf("%s/%s: expected the field to change", tool, a)
			}
		}
	}
}

func TestApplyBlendCentresOnFirstSurface(t *testing.T) {
	for _, a := range []Action{Primary, Secondary} {
		s := wallSession(t)
		_ = s.Field().Set(20, 32, 0.3)
		if err := s.SelectTool(ToolBlendBallFractional); err != nil {
			t.Fatal(err)
		}

		e, err := s.Apply(a)
		if err != nil {
			t.Fatalf("%s: %v", a, err)
		}
		if e.Target != (terrain.Cell{X: 20, Y: 32}) {
			t.Errorf("%s (%s): blend should centre on the soft cell (20,32), got %v", a, e.Op, e.Target)
		}
	}

	// Circle stamps keep the threshold target behind the soft cell.
	s := wallSession(t)
	_ = s.Field().Set(20, 32, 0.3)
	_ = s.SelectTool(ToolCircleFractional)
	e, err := s.Apply(Primary)
	if err != nil {
		t.Fatal(err)
	}
	if e.Target != (terrain.Cell{X: 40, Y: 32}) {
		t.Errorf("soft carve should hit the wall at (40,32), got %v", e.Target)
	}
}

func TestApplyBlendNeedsThresholdTarget(t *testing.T) {
	s := wallSession(t)
	s.SetCursor(vmath.V(30.5, 32.5))
	_ = s.Field().Set(20, 32, 0.3)
	before := s.Field().Values()

	if _, err := s.Apply(Secondary); !errors.Is(err, ErrNoTarget) {
		t.Errorf("soft cell alone must not fire a blend, got %v", err)
	}
	after := s.Field().Values()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("field changed at %d", i)
		}
	}
}

func TestApplyCarveRemovesWall(t *testing.T) {
	s := wallSession(t)
	_ = s.SelectTool(ToolCircleFull)
	if _, err := s.Apply(Secondary); err != nil {
		t.Fatal(err)
	}
	if !s.Field().IsEmpty(40, 32) {
		t.Error("expected the hit cell carved")
	}
	res, _ := s.Target()
	if res.Hit && res.Cell.Y == 32 && res.Cell.X == 40 {
		t.Error("the ray should now pass through the hole")
	}
}

func TestPaintAndClear(t *testing.T) {
	s, _ := NewSession(testConfig())
	s.SetCursor(vmath.V(20.5, 20.5))
	if err := s.Paint(); err != nil {
		t.Fatal(err)
	}
	if !s.Field().IsFull(20, 20) || !s.Field().IsFull(20, 52) {
		t.Error("expected radius-32 disc painted")
	}
	s.Clear()
	if s.Field().Mass() != 0 {
		t.Errorf("expected empty field after Clear, mass %f", s.Field().Mass())
	}
	s.SetCursor(vmath.V(-40, 10))
	if err := s.Paint(); !errors.Is(err, terrain.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds painting outside, got %v", err)
	}
}

func TestGenerate(t *testing.T) {
	a, _ := NewSession(testConfig())
	b, _ := NewSession(testConfig())
	a.Generate(5)
	b.Generate(5)

	av, bv := a.Field().Values(), b.Field().Values()
	for i := range av {
		if av[i] != bv[i] {
			t.Fatalf("same seed produced different terrain at %d", i)
		}
	}
	if !a.Field().IsEmpty(32, 32) {
		t.Error("expected a pocket cleared around the player")
	}
}
