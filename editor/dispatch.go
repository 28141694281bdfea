package editor

import (
	"github.com/pthm-cable/carve/brush"
	"github.com/pthm-cable/carve/terrain"
)

// bindings maps every tool and trigger to the operator it runs.
var bindings = [toolCount][actionCount]Op{
	ToolCircleFull:          {Primary: OpCarveCircle, Secondary: OpCarveCircle},
	ToolCircleFractional:    {Primary: OpSoftCarve, Secondary: OpSoftCarve},
	ToolGauss:               {Primary: OpSprayRestore, Secondary: OpSprayDestruct},
	ToolBlendBallFull:       {Primary: OpBlendReference, Secondary: OpBlendReference},
	ToolBlendBallFractional: {Primary: OpBlendReference, Secondary: OpBlendFast},
}

type operator func(s *Session, st brush.Stroke) error

var operators = [opCount]operator{
	OpCarveCircle: func(s *Session, st brush.Stroke) error {
		return s.brush.CircleFull(s.field, st, false)
	},
	OpSoftCarve: func(s *Session, st brush.Stroke) error {
		return s.brush.CircleFractional(s.field, st)
	},
	OpSprayRestore: func(s *Session, st brush.Stroke) error {
		return s.brush.SprayRestore(s.field, st)
	},
	OpSprayDestruct: func(s *Session, st brush.Stroke) error {
		return s.brush.SprayDestruct(s.field, st)
	},
	OpBlendReference: func(s *Session, st brush.Stroke) error {
		return s.brush.BlendReference(s.field, st)
	},
	OpBlendFast: func(s *Session, st brush.Stroke) error {
		return s.brush.Blend(s.field, st, s.strategy)
	},
}

// OpFor returns the operator bound to tool and action.
func OpFor(t Tool, a Action) Op {
	return bindings[t][a]
}

// Edit describes one applied (or attempted) edit.
type Edit struct {
	Tool   Tool
	Action Action
	Op     Op
	Target terrain.Cell
	Size   int
	Blend  int
}

// Apply resolves the target along the current ray and runs the operator
// bound to the active tool and action. It returns ErrNoTarget when the ray
// reaches nothing; the field is untouched whenever an error is returned.
//
// An edit needs a threshold target to fire at all. The blend operators then
// centre on the first non-empty cell along the same ray, which lies at or
// before the threshold target.
func (s *Session) Apply(a Action) (Edit, error) {
	e := Edit{Tool: s.tool, Action: a, Size: s.size, Blend: s.blend}
	if a >= actionCount {
		return e, ErrInvalidAction
	}
	e.Op = bindings[s.tool][a]

	res, err := s.Target()
	if err != nil {
		return e, err
	}
	if !res.Hit {
		return e, ErrNoTarget
	}
	if e.Op.blends() {
		if res, err = s.SurfaceTarget(); err != nil {
			return e, err
		}
		if !res.Hit {
			return e, ErrNoTarget
		}
	}
	e.Target = res.Cell
	return e, operators[e.Op](s, s.Stroke(res.Cell))
}

func (o Op) blends() bool {
	return o == OpBlendReference || o == OpBlendFast
}
