package systems

import (
	"github.com/spatialkit/reticle/input/platform"
)

// InteractionMode is the closed category of input source driving the ray.
// Exactly one mode is active at any evaluation. It is recomputed every
// frame from current capability samples; device availability can change
// between frames, so the value is never cached beyond the current frame.
type InteractionMode uint8

const (
	// Desktop pointer; picking by screen position.
	ModeMouse InteractionMode = iota
	// Handheld magic-window; picking by screen position while a touch is
	// physically active.
	ModeTouch
	// Gaze reticle fixed to the head (0-DOF). Either a touchpad-only
	// headset or a presenting mobile session with no controller.
	ModeVRGaze
	// Orientation-tracked controller; position synthesized by the arm
	// model.
	ModeVR3DOF
	// Fully tracked controller.
	ModeVR6DOF
)

func (m InteractionMode) String() string {
	switch m {
	case ModeMouse:
		return "mouse"
	case ModeTouch:
		return "touch"
	case ModeVRGaze:
		return "vr-gaze"
	case ModeVR3DOF:
		return "vr-3dof"
	case ModeVR6DOF:
		return "vr-6dof"
	}
	return "unknown"
}

// Classify selects the interaction mode for the current frame. Pure:
// identical inputs always yield identical output. The precedence below is
// the contract; earlier rules short-circuit later ones. In particular a
// touchpad-only headset id wins over whatever its pose flags claim.
func Classify(sample *platform.ControllerSample, isMobile, isPresenting bool) InteractionMode {
	if sample != nil {
		if platform.IsTouchpadHeadsetID(sample.ID) {
			return ModeVRGaze
		}
		if sample.Pose != nil && sample.Pose.HasPosition {
			return ModeVR6DOF
		}
		if sample.Pose != nil && sample.Pose.HasOrientation {
			return ModeVR3DOF
		}
	} else {
		if isMobile && isPresenting {
			return ModeVRGaze
		}
		if isMobile {
			return ModeTouch
		}
		return ModeMouse
	}
	// A sample that matched none of the capability rules (e.g. a gamepad
	// with an empty pose) degrades to touch semantics.
	return ModeTouch
}
