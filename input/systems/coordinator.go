package systems

import (
	"github.com/spatialkit/reticle/input/core"
	"github.com/spatialkit/reticle/input/math"
	"github.com/spatialkit/reticle/input/platform"
)

// DefaultReticleRestingDistance is where the reticle sits when nothing is
// under the ray, in meters.
const DefaultReticleRestingDistance float32 = 3.0

// Visuals receives ray and reticle presentation changes. The host renders
// them however it likes; the coordinator only decides visibility and
// reticle depth.
type Visuals interface {
	SetRayVisible(visible bool)
	SetReticleVisible(visible bool)
	SetReticleDistance(distance float32)
}

type noopVisuals struct{}

func (noopVisuals) SetRayVisible(bool)         {}
func (noopVisuals) SetReticleVisible(bool)     {}
func (noopVisuals) SetReticleDistance(float32) {}

// RayCoordinator drives per-frame ray selection. It classifies the
// current interaction mode, derives a world-space ray from the matching
// source (pointer, camera, synthesized arm pose, or tracked controller),
// raycasts registered selectables and emits over/out/select events on the
// bus as the hit set changes.
type RayCoordinator struct {
	bus       *core.EventBus
	sampler   *platform.ControllerSampler
	tracker   *GestureTracker
	armModel  *ArmModel
	raycaster Raycaster
	camera    Camera
	visuals   Visuals
	clock     *core.Clock

	isMobile bool
	display  platform.VRDisplay

	selectables map[string]core.Object
	selected    map[string]core.Object

	restingDistance float32

	ray            Ray
	mode           InteractionMode
	active         bool
	nearest        core.Object
	nearestDist    float32
	multiWarned    bool
	pendingPress   bool
	pendingUnpress bool
	pendingCancel  bool

	subscriptions []core.Subscription
}

func NewRayCoordinator(bus *core.EventBus, sampler *platform.ControllerSampler, tracker *GestureTracker, armModel *ArmModel, raycaster Raycaster, camera Camera, isMobile bool) *RayCoordinator {
	rc := &RayCoordinator{
		bus:             bus,
		sampler:         sampler,
		tracker:         tracker,
		armModel:        armModel,
		raycaster:       raycaster,
		camera:          camera,
		visuals:         noopVisuals{},
		clock:           core.NewClock(),
		isMobile:        isMobile,
		selectables:     make(map[string]core.Object),
		selected:        make(map[string]core.Object),
		restingDistance: DefaultReticleRestingDistance,
		ray:             Ray{Direction: math.NewVec3Forward()},
		mode:            ModeMouse,
	}
	rc.clock.Start()

	// Presses are latched here and reported on the next Update, after that
	// frame's picking pass has completed. Reporting from inside the
	// pointer callback could mutate the selection model mid-pass.
	rc.subscriptions = append(rc.subscriptions,
		bus.Register(core.EVENT_CODE_POINTER_DOWN, func(code core.EventCode, context core.EventContext) {
			rc.pendingPress = true
		}),
		bus.Register(core.EVENT_CODE_POINTER_UP, func(code core.EventCode, context core.EventContext) {
			rc.pendingUnpress = true
		}),
		bus.Register(core.EVENT_CODE_GESTURE_CANCEL, func(code core.EventCode, context core.EventContext) {
			rc.pendingCancel = true
		}),
	)
	return rc
}

// SetVisuals installs the presentation sink. Passing nil restores the
// no-op default.
func (rc *RayCoordinator) SetVisuals(visuals Visuals) {
	if visuals == nil {
		visuals = noopVisuals{}
	}
	rc.visuals = visuals
}

// SetRestingDistance changes where the reticle sits when nothing is under
// the ray. If the reticle is currently resting it moves immediately.
func (rc *RayCoordinator) SetRestingDistance(distance float32) {
	if distance <= 0 {
		distance = DefaultReticleRestingDistance
	}
	rc.restingDistance = distance
	if rc.nearest == nil {
		rc.visuals.SetReticleDistance(rc.restingDistance)
	}
}

// SetDisplay caches the result of the one-time VR display query. Until it
// is called the coordinator treats the platform as not presenting.
func (rc *RayCoordinator) SetDisplay(display platform.VRDisplay) {
	rc.display = display
}

func (rc *RayCoordinator) SetViewportSize(width, height float32) {
	rc.tracker.SetViewportSize(width, height)
}

// AddSelectable registers an object for ray selection. Candidates passed
// to Update that were never registered are ignored.
func (rc *RayCoordinator) AddSelectable(obj core.Object) {
	rc.selectables[obj.ObjectID()] = obj
}

// RemoveSelectable unregisters an object. If it is currently under the
// ray an out event fires immediately so consumers never see a hover with
// no matching exit.
func (rc *RayCoordinator) RemoveSelectable(obj core.Object) {
	id := obj.ObjectID()
	delete(rc.selectables, id)
	if prev, ok := rc.selected[id]; ok {
		delete(rc.selected, id)
		rc.bus.Fire(core.EVENT_CODE_RAY_OUT, core.EventContext{Object: prev})
		if rc.nearest != nil && rc.nearest.ObjectID() == id {
			rc.nearest = nil
			rc.visuals.SetReticleDistance(rc.restingDistance)
		}
	}
}

// Ray returns the current world-space ray.
func (rc *RayCoordinator) Ray() Ray {
	return rc.ray
}

// Mode returns the interaction mode chosen by the last Update.
func (rc *RayCoordinator) Mode() InteractionMode {
	return rc.mode
}

// SelectedObject returns the object currently governing the reticle, or
// nil when nothing is under the ray.
func (rc *RayCoordinator) SelectedObject() core.Object {
	return rc.nearest
}

// Shutdown releases the coordinator's bus subscriptions.
func (rc *RayCoordinator) Shutdown() {
	for _, sub := range rc.subscriptions {
		sub.Remove()
	}
	rc.subscriptions = nil
}

// Update runs one frame: classify, derive the ray, raycast the candidate
// objects and reconcile the hit set. Candidates not registered through
// AddSelectable are skipped.
func (rc *RayCoordinator) Update(candidates []core.Object) {
	elapsed := rc.clock.Tick()

	// Releases latched below may deactivate the ray in this very pass
	// (touch end), clearing the selection before they are reported. The
	// pre-pass selection is what such a release refers to.
	prevNearest := rc.nearest

	presenting := rc.display != nil && rc.display.IsPresenting()
	sample := rc.sampler.Sample()
	rc.mode = Classify(sample, rc.isMobile, presenting)

	var hits []Hit
	switch rc.mode {
	case ModeMouse, ModeTouch:
		rc.visuals.SetRayVisible(false)
		rc.visuals.SetReticleVisible(false)
		rc.active = rc.mode == ModeMouse || rc.tracker.IsTouchActive()
		if rc.active {
			hits = rc.raycaster.IntersectScreenPoint(rc.camera, rc.tracker.NDC(), rc.eligible(candidates), true)
		}
	case ModeVRGaze:
		rc.visuals.SetRayVisible(false)
		rc.visuals.SetReticleVisible(true)
		rc.active = true
		rc.ray = Ray{
			Origin:    rc.camera.Position(),
			Direction: rc.camera.Orientation().RotateVec3(math.NewVec3Forward()).Normalized(),
		}
		hits = rc.raycaster.IntersectRay(rc.ray, rc.eligible(candidates), true)
	case ModeVR3DOF:
		rc.visuals.SetRayVisible(true)
		rc.visuals.SetReticleVisible(true)
		rc.active = true
		if sample == nil || sample.Pose == nil || sample.Pose.Orientation == nil {
			core.LogWarn("orientation-only controller sample lost its orientation, keeping previous ray")
		} else {
			pose := rc.armModel.Update(rc.camera.Orientation(), rc.camera.Position(), *sample.Pose.Orientation, elapsed)
			rc.ray = Ray{
				Origin:    pose.Position,
				Direction: pose.Orientation.RotateVec3(math.NewVec3Forward()).Normalized(),
			}
		}
		hits = rc.raycaster.IntersectRay(rc.ray, rc.eligible(candidates), true)
	case ModeVR6DOF:
		rc.visuals.SetRayVisible(true)
		rc.visuals.SetReticleVisible(true)
		rc.active = true
		if sample == nil || sample.Pose == nil || sample.Pose.Position == nil || sample.Pose.Orientation == nil {
			core.LogWarn("positional controller sample missing pose data, keeping previous ray")
		} else {
			origin := rc.camera.Position().Add(rc.camera.Orientation().RotateVec3(*sample.Pose.Position))
			orientation := rc.camera.Orientation().Mul(*sample.Pose.Orientation)
			rc.ray = Ray{
				Origin:    origin,
				Direction: orientation.RotateVec3(math.NewVec3Forward()).Normalized(),
			}
		}
		hits = rc.raycaster.IntersectRay(rc.ray, rc.eligible(candidates), true)
	}

	if rc.active {
		rc.reconcile(hits)
	} else {
		rc.clearSelections()
	}

	// Presses latched since the previous frame are reported now, against
	// the selection the pass above just settled.
	if rc.pendingPress {
		rc.pendingPress = false
		if rc.nearest != nil {
			rc.bus.Fire(core.EVENT_CODE_RAY_SELECT, core.EventContext{Object: rc.nearest})
		}
	}
	if rc.pendingUnpress {
		rc.pendingUnpress = false
		target := rc.nearest
		if target == nil {
			target = prevNearest
		}
		if target != nil {
			rc.bus.Fire(core.EVENT_CODE_RAY_DESELECT, core.EventContext{Object: target})
		}
	}
	if rc.pendingCancel {
		rc.pendingCancel = false
		target := rc.nearest
		if target == nil {
			target = prevNearest
		}
		// A cancel with nothing under the ray before or after the gesture
		// has no object for listeners to act on, so none is reported.
		if target != nil {
			rc.bus.Fire(core.EVENT_CODE_RAY_CANCEL, core.EventContext{Object: target})
		}
	}
}

// eligible filters candidates down to the registered selectables.
func (rc *RayCoordinator) eligible(candidates []core.Object) []core.Object {
	out := candidates[:0:0]
	for _, candidate := range candidates {
		if _, ok := rc.selectables[candidate.ObjectID()]; ok {
			out = append(out, candidate)
		}
	}
	return out
}

// reconcile diffs this frame's hit set against the selected set, firing
// over for new entries and out for departed ones.
func (rc *RayCoordinator) reconcile(hits []Hit) {
	current := make(map[string]core.Object, len(hits))
	for _, hit := range hits {
		current[hit.Object.ObjectID()] = hit.Object
	}

	for id, obj := range rc.selected {
		if _, still := current[id]; !still {
			delete(rc.selected, id)
			rc.bus.Fire(core.EVENT_CODE_RAY_OUT, core.EventContext{Object: obj})
		}
	}
	for id, obj := range current {
		if _, already := rc.selected[id]; !already {
			rc.selected[id] = obj
			rc.bus.Fire(core.EVENT_CODE_RAY_OVER, core.EventContext{Object: obj})
		}
	}

	if len(rc.selected) > 1 {
		if !rc.multiWarned {
			core.LogWarn("%d objects under the ray at once, nearest governs the reticle", len(rc.selected))
			rc.multiWarned = true
		}
	} else {
		rc.multiWarned = false
	}

	// Hits arrive ordered by distance, so the first one is nearest.
	if len(hits) > 0 {
		rc.nearest = hits[0].Object
		rc.nearestDist = hits[0].Distance
		rc.visuals.SetReticleDistance(rc.nearestDist)
	} else {
		rc.nearest = nil
		rc.visuals.SetReticleDistance(rc.restingDistance)
	}
}

// clearSelections empties the selected set, firing out for every member.
// Used when the ray toggles inactive; activity gating overrides
// intersection state.
func (rc *RayCoordinator) clearSelections() {
	for id, obj := range rc.selected {
		delete(rc.selected, id)
		rc.bus.Fire(core.EVENT_CODE_RAY_OUT, core.EventContext{Object: obj})
	}
	rc.nearest = nil
	rc.visuals.SetReticleDistance(rc.restingDistance)
}
