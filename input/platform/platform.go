package platform

import (
	"strings"

	"github.com/spatialkit/reticle/input/math"
)

// GamepadPose is the tracking data a controller reports, when it reports
// any. Both capability flags and the actual values can be absent
// independently: a device may advertise positional tracking yet deliver a
// frame with no position (the caller must treat that as malformed data and
// skip the frame).
type GamepadPose struct {
	HasOrientation bool
	HasPosition    bool
	Orientation    *math.Quaternion
	Position       *math.Vec3
}

// ControllerSample is one enumerated tracked-controller reading. Pose is
// nil for devices with no tracking at all (ordinary desktop gamepads).
type ControllerSample struct {
	ID      string
	Pose    *GamepadPose
	Buttons []bool
	Axes    []float32
}

// AnyButtonPressed reports whether at least one button is currently held.
func (s *ControllerSample) AnyButtonPressed() bool {
	for _, b := range s.Buttons {
		if b {
			return true
		}
	}
	return false
}

// GamepadSource enumerates the currently connected gamepad-like devices.
// Implementations return a fresh snapshot per call; entries may be nil.
type GamepadSource interface {
	Gamepads() []*ControllerSample
}

// VRDisplay reports whether a VR session is actively presenting.
type VRDisplay interface {
	IsPresenting() bool
}

// Identifier pattern lists. These are replaceable policy, not core logic:
// callers with unusual devices can extend them before startup.
var (
	// Devices whose sample duplicates another device's data (secondary or
	// offhand units). These are skipped during sampling.
	OffhandGamepadPatterns = []string{"(Left)"}

	// Headset classes with a built-in touchpad but no tracked controller.
	// These drive a gaze-style ray even though a gamepad entry is present.
	TouchpadHeadsetPatterns = []string{"Gear VR"}

	// Substrings of a platform identifier that indicate a handheld device.
	MobilePlatformPatterns = []string{"Android", "iPhone", "iPad", "iPod", "Mobile"}
)

func matchesAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// IsTouchpadHeadsetID reports whether the device id names a touchpad-only
// headset class.
func IsTouchpadHeadsetID(id string) bool {
	return matchesAny(id, TouchpadHeadsetPatterns)
}

// IsOffhandGamepadID reports whether the device id names a known
// non-representative (secondary/offhand) unit.
func IsOffhandGamepadID(id string) bool {
	return matchesAny(id, OffhandGamepadPatterns)
}

// IsMobilePlatform applies the string-matching heuristic to a user-agent
// style platform identifier.
func IsMobilePlatform(identifier string) bool {
	return matchesAny(identifier, MobilePlatformPatterns)
}
