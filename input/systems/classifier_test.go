package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spatialkit/reticle/input/math"
	"github.com/spatialkit/reticle/input/platform"
)

func poseSample(id string, hasPosition, hasOrientation bool) *platform.ControllerSample {
	q := math.NewQuatIdentity()
	p := math.NewVec3Zero()
	return &platform.ControllerSample{
		ID: id,
		Pose: &platform.GamepadPose{
			HasPosition:    hasPosition,
			HasOrientation: hasOrientation,
			Position:       &p,
			Orientation:    &q,
		},
	}
}

func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		sample     *platform.ControllerSample
		mobile     bool
		presenting bool
		want       InteractionMode
	}{
		{"touchpad headset", poseSample("Gear VR Touchpad", false, false), false, false, ModeVRGaze},
		{"six dof", poseSample("Vive Controller", true, true), false, false, ModeVR6DOF},
		{"three dof", poseSample("Daydream Controller", false, true), false, false, ModeVR3DOF},
		{"mobile presenting no controller", nil, true, true, ModeVRGaze},
		{"mobile magic window", nil, true, false, ModeTouch},
		{"desktop", nil, false, false, ModeMouse},
		{"desktop ignores presenting", nil, false, true, ModeMouse},
		{"controller with empty pose", &platform.ControllerSample{ID: "odd", Pose: &platform.GamepadPose{}}, false, false, ModeTouch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.sample, tt.mobile, tt.presenting))
		})
	}
}

func TestClassifyTouchpadHeadsetShortCircuits(t *testing.T) {
	// A touchpad headset id wins regardless of what the pose flags claim.
	s := poseSample("Gear VR Touchpad", true, true)
	assert.Equal(t, ModeVRGaze, Classify(s, false, false))
	assert.Equal(t, ModeVRGaze, Classify(s, true, true))
}

func TestClassifySixDOFIgnoresMobile(t *testing.T) {
	s := poseSample("Vive Controller", true, true)
	assert.Equal(t, ModeVR6DOF, Classify(s, true, false))
	assert.Equal(t, ModeVR6DOF, Classify(s, true, true))
	assert.Equal(t, ModeVR6DOF, Classify(s, false, false))
}

func TestClassifyPure(t *testing.T) {
	s := poseSample("Daydream Controller", false, true)
	first := Classify(s, true, true)
	second := Classify(s, true, true)
	assert.Equal(t, first, second)
}

func TestInteractionModeString(t *testing.T) {
	assert.Equal(t, "mouse", ModeMouse.String())
	assert.Equal(t, "vr-3dof", ModeVR3DOF.String())
	assert.Equal(t, "unknown", InteractionMode(99).String())
}
