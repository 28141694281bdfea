package editor

import (
	"fmt"
	"strings"
)

// Tool is the active edit mode.
type Tool uint8

const (
	ToolCircleFull Tool = iota
	ToolCircleFractional
	ToolGauss
	ToolBlendBallFull
	ToolBlendBallFractional

	toolCount
)

// ToolNames returns the config names of all tools. The order matches the
// Tool constants.
func ToolNames() []string {
	return []string{"circle_full", "circle_fractional", "gauss", "blend_ball_full", "blend_ball_fractional"}
}

// ToolLabels returns short display labels for the HUD, in Tool order.
func ToolLabels() []string {
	return []string{"Circle", "Soft circle", "Gauss spray", "Blend", "Blend fast"}
}

func (t Tool) String() string {
	names := ToolNames()
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// Valid reports whether t names one of the five tools.
func (t Tool) Valid() bool { return t < toolCount }

// ParseTool maps a config name to a Tool.
func ParseTool(name string) (Tool, error) {
	for i, n := range ToolNames() {
		if strings.EqualFold(n, name) {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", name)
}

// Action is the trigger that fired an edit.
type Action uint8

const (
	Primary   Action = iota // left mouse button
	Secondary               // right mouse button

	actionCount
)

func (a Action) String() string {
	switch a {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// Op identifies the operator an edit ran.
type Op uint8

const (
	OpCarveCircle Op = iota
	OpSoftCarve
	OpSprayRestore
	OpSprayDestruct
	OpBlendReference
	OpBlendFast

	opCount
)

func (o Op) String() string {
	names := [...]string{"carve_circle", "soft_carve", "spray_restore", "spray_destruct", "blend_reference", "blend_fast"}
	if int(o) < len(names) {
		return names[o]
	}
	return "unknown"
}
