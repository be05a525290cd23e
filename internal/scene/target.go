package scene

import (
	"fmt"
	"strings"
)

// BodyID names a body the camera can attach to.
type BodyID int

const (
	Planet1 BodyID = iota + 1
	Planet2
	Planet3
	Planet4
	Moon
)

var bodyNames = map[BodyID]string{
	Planet1: "planet1",
	Planet2: "planet2",
	Planet3: "planet3",
	Planet4: "planet4",
	Moon:    "moon",
}

func (b BodyID) String() string {
	if name, ok := bodyNames[b]; ok {
		return name
	}
	return fmt.Sprintf("body(%d)", int(b))
}

// Bodies lists every attachable body in draw order.
func Bodies() []BodyID {
	return []BodyID{Planet1, Planet2, Planet3, Planet4, Moon}
}

type TargetKind int

const (
	// TargetNone leaves the camera to the free-fly controls.
	TargetNone TargetKind = iota
	// TargetInitial pins the camera to the overview position every frame.
	TargetInitial
	// TargetBody makes the camera ease towards a body.
	TargetBody
)

// CameraTarget is what the camera controller follows. Body is only
// meaningful when Kind is TargetBody.
type CameraTarget struct {
	Kind TargetKind
	Body BodyID
}

func NoTarget() CameraTarget {
	return CameraTarget{Kind: TargetNone}
}

func InitialView() CameraTarget {
	return CameraTarget{Kind: TargetInitial}
}

func AttachTo(body BodyID) CameraTarget {
	return CameraTarget{Kind: TargetBody, Body: body}
}

func (t CameraTarget) String() string {
	switch t.Kind {
	case TargetInitial:
		return "solar_system"
	case TargetBody:
		return t.Body.String()
	}
	return "none"
}

// ParseTarget accepts the names produced by String, case insensitively.
func ParseTarget(s string) (CameraTarget, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "none", "free":
		return NoTarget(), nil
	case "solar_system", "initial":
		return InitialView(), nil
	}
	for id, n := range bodyNames {
		if n == name {
			return AttachTo(id), nil
		}
	}
	return CameraTarget{}, fmt.Errorf("scene: unknown camera target %q", s)
}
