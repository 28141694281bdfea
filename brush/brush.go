// Package brush implements the terrain edit operators: hard and soft circle
// stamps, the conical gaussian spray and the blend-ball smoothing strategies.
//
// Operators receive the field per call and keep no reference to it. Every
// operator validates its stroke before touching the field and writes only
// in-field cells, so a rejected edit leaves the field unchanged.
package brush

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pthm-cable/carve/terrain"
	"github.com/pthm-cable/carve/vmath"
)

// ErrInvalidBrush is returned for non-positive brush size or blend range, and
// for brush settings that would make an operator degenerate.
var ErrInvalidBrush = errors.New("brush: invalid brush parameters")

// Stroke carries the per-edit inputs of an operator.
type Stroke struct {
	Target terrain.Cell // raycast-resolved target cell
	Origin vmath.Vec2   // ray origin (player), used by the spray
	Dir    vmath.Vec2   // unit ray direction
	Reach  float32      // distance budget for the spray rays
	Size   int          // brush radius in cells
	Blend  int          // half-width of the averaging window
}

// Validate rejects non-positive brush size or blend range.
func (s Stroke) Validate() error {
	if s.Size <= 0 || s.Blend <= 0 {
		return fmt.Errorf("%w: size=%d blend=%d", ErrInvalidBrush, s.Size, s.Blend)
	}
	return nil
}

// EdgePolicy decides what blend windows read outside the field.
type EdgePolicy uint8

const (
	EdgeEmpty EdgePolicy = iota // out-of-field cells read as 0
	EdgeClamp                   // out-of-field cells read as the nearest edge cell
)

// EdgePolicyNames returns the config names of all edge policies, in
// constant order.
func EdgePolicyNames() []string {
	return []string{"empty", "clamp"}
}

func (p EdgePolicy) String() string {
	names := EdgePolicyNames()
	if int(p) < len(names) {
		return names[p]
	}
	return "unknown"
}

// ParseEdgePolicy maps a config name to an EdgePolicy.
func ParseEdgePolicy(name string) (EdgePolicy, error) {
	for i, n := range EdgePolicyNames() {
		if strings.EqualFold(n, name) {
			return EdgePolicy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown edge policy %q", name)
}

// Brush holds the operator tuning. The zero value is not useful; start from
// Default.
type Brush struct {
	ConeAngle      float32 // spray half-angle in degrees
	ConeStep       float32 // angular step between spray rays in degrees
	SprayBias      float32 // subtracted from the spray gaussian
	SoftCircleBias float32 // subtracted from the soft circle gaussian
	Edges          EdgePolicy
}

// Default returns the stock brush tuning.
func Default() Brush {
	return Brush{
		ConeAngle:      50,
		ConeStep:       0.5,
		SprayBias:      0.3,
		SoftCircleBias: 0.2,
		Edges:          EdgeEmpty,
	}
}

// check validates a stroke against the field before any write happens.
func (b Brush) check(f *terrain.Field, s Stroke) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := f.CheckBounds(s.Target.X, s.Target.Y); err != nil {
		return fmt.Errorf("brush target: %w", err)
	}
	return nil
}

// sampler reads the field under an edge policy.
type sampler struct {
	f     *terrain.Field
	edges EdgePolicy
}

func (b Brush) sampler(f *terrain.Field) sampler {
	return sampler{f: f, edges: b.Edges}
}

func (s sampler) at(x, y int) float32 {
	if !s.f.InBounds(x, y) {
		if s.edges != EdgeClamp {
			return 0
		}
		x = vmath.ClampInt(x, 0, s.f.Width()-1)
		y = vmath.ClampInt(y, 0, s.f.Height()-1)
	}
	v, _ := s.f.Get(x, y)
	return v
}
