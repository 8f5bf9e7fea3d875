package platform

import (
	"github.com/spatialkit/reticle/input/core"
)

// ControllerSampler picks the best currently-available tracked controller
// from a GamepadSource. Selection policy, in order:
//
//  1. skip nil entries and known offhand units;
//  2. return the first candidate whose pose is non-nil;
//  3. otherwise return the first candidate whose id names a touchpad-only
//     headset class;
//  4. otherwise absence (nil).
//
// A successful pick is cached for the remainder of the frame so repeated
// queries do not re-enumerate. The cache is an optimization only;
// BeginFrame invalidates it.
type ControllerSampler struct {
	source      GamepadSource
	frame       uint64
	cachedFrame uint64
	cached      *ControllerSample
}

// NewControllerSampler wraps the provided source. A nil source is a
// supported environment (no enumeration facility at all): Sample always
// reports absence. It is surfaced once as a warning, not an error.
func NewControllerSampler(source GamepadSource) *ControllerSampler {
	if source == nil {
		core.LogWarn("no gamepad enumeration facility present; tracked controllers disabled")
	}
	return &ControllerSampler{
		source: source,
		frame:  1,
	}
}

// BeginFrame invalidates the per-frame cache. Call once per tick before
// sampling.
func (cs *ControllerSampler) BeginFrame() {
	cs.frame++
}

// Sample returns the best available tracked controller, or nil.
func (cs *ControllerSampler) Sample() *ControllerSample {
	if cs.source == nil {
		return nil
	}
	if cs.cached != nil && cs.cachedFrame == cs.frame {
		return cs.cached
	}

	gamepads := cs.source.Gamepads()

	var fallback *ControllerSample
	for _, g := range gamepads {
		if g == nil || IsOffhandGamepadID(g.ID) {
			continue
		}
		if g.Pose != nil {
			cs.cached = g
			cs.cachedFrame = cs.frame
			return g
		}
		if fallback == nil && IsTouchpadHeadsetID(g.ID) {
			fallback = g
		}
	}

	if fallback != nil {
		cs.cached = fallback
		cs.cachedFrame = cs.frame
	}
	return fallback
}
