package systems

import (
	"github.com/spatialkit/reticle/input/core"
	"github.com/spatialkit/reticle/input/math"
)

// DefaultDragThresholdPx is the accumulated drag distance, in
// device-independent pixels, beyond which a press no longer qualifies as a
// tap.
const DefaultDragThresholdPx float32 = 10.0

// PointerState is the tracker's view of the active pointer. Owned
// exclusively by the GestureTracker; callers get copies.
type PointerState struct {
	// Pixel position of the most recent event.
	Current math.Vec2
	// Pixel position of the event before it.
	Last math.Vec2
	// Normalized device position in [-1,1]x[-1,1], +Y up, origin center.
	NDC math.Vec2
	// Euclidean distance accumulated since the press.
	DragDistance float32
	// Armed for tap detection: set on press, cleared when the threshold
	// is crossed or the pointer is released.
	Dragging bool
	// A touch is physically on the surface.
	TouchActive bool
}

// GestureTracker converts raw press/move/release events (mouse or
// single-touch) into a tap-vs-drag-disambiguated stream. One press emits
// exactly one POINTER_DOWN and then either one POINTER_UP (tap) or one
// GESTURE_CANCEL (drag), never both.
//
// Mouse/touch coexistence contract: the first touch-start marks the device
// touch-capable and the mouse handlers become inert from then on. Hybrid
// devices deliver the same physical gesture through both pathways; mutual
// exclusion prevents double-counting. This is a stated contract, not a
// side effect of registration order.
type GestureTracker struct {
	bus       *core.EventBus
	threshold float32

	viewportW float32
	viewportH float32

	state PointerState

	touchCapable bool
	pointerDown  bool

	prevButtonPressed bool
}

func NewGestureTracker(bus *core.EventBus, thresholdPx float32) *GestureTracker {
	if thresholdPx <= 0 {
		thresholdPx = DefaultDragThresholdPx
	}
	return &GestureTracker{
		bus:       bus,
		threshold: thresholdPx,
	}
}

// SetViewportSize updates the pixel dimensions used for normalization.
func (g *GestureTracker) SetViewportSize(width, height float32) {
	g.viewportW = width
	g.viewportH = height
}

// State returns a copy of the current pointer state.
func (g *GestureTracker) State() PointerState {
	return g.state
}

// NDC returns the current normalized device position.
func (g *GestureTracker) NDC() math.Vec2 {
	return g.state.NDC
}

// IsTouchActive reports whether a touch is physically on the surface.
func (g *GestureTracker) IsTouchActive() bool {
	return g.state.TouchActive
}

// SetDragThreshold swaps the tap-disqualification threshold. A gesture
// already in flight keeps accumulating against the new value.
func (g *GestureTracker) SetDragThreshold(thresholdPx float32) {
	if thresholdPx <= 0 {
		thresholdPx = DefaultDragThresholdPx
	}
	g.threshold = thresholdPx
}

// ProcessPointerDown handles a mouse press. Inert once the device is known
// to be touch-capable.
func (g *GestureTracker) ProcessPointerDown(x, y float32) {
	if g.touchCapable {
		return
	}
	g.press(x, y)
}

// ProcessPointerMove handles a mouse move. Inert once touch-capable.
func (g *GestureTracker) ProcessPointerMove(x, y float32) {
	if g.touchCapable {
		return
	}
	g.move(x, y)
}

// ProcessPointerUp handles a mouse release. Inert once touch-capable.
func (g *GestureTracker) ProcessPointerUp(x, y float32) {
	if g.touchCapable {
		return
	}
	g.release()
}

// ProcessTouchStart handles the first point of a touch gesture and marks
// the device touch-capable.
func (g *GestureTracker) ProcessTouchStart(x, y float32) {
	g.touchCapable = true
	g.state.TouchActive = true
	g.press(x, y)
}

// ProcessTouchMove handles movement of the active touch point.
func (g *GestureTracker) ProcessTouchMove(x, y float32) {
	g.move(x, y)
}

// ProcessTouchEnd handles the active touch point leaving the surface.
func (g *GestureTracker) ProcessTouchEnd() {
	g.state.TouchActive = false
	g.release()
}

// PollButtons performs per-frame edge detection for tracked-controller
// buttons, which have no discrete press/release events. Call exactly once
// per frame with the current "any button pressed" value.
func (g *GestureTracker) PollButtons(pressed bool) {
	if pressed && !g.prevButtonPressed {
		g.bus.Fire(core.EVENT_CODE_POINTER_DOWN, core.EventContext{NDC: g.state.NDC})
	} else if !pressed && g.prevButtonPressed {
		g.bus.Fire(core.EVENT_CODE_POINTER_UP, core.EventContext{NDC: g.state.NDC})
	}
	g.prevButtonPressed = pressed
}

func (g *GestureTracker) press(x, y float32) {
	g.pointerDown = true
	g.state.Current = math.NewVec2(x, y)
	g.state.Last = g.state.Current
	g.state.DragDistance = 0
	g.state.Dragging = true
	g.updateNDC()
	g.bus.Fire(core.EVENT_CODE_POINTER_DOWN, core.EventContext{NDC: g.state.NDC})
}

func (g *GestureTracker) move(x, y float32) {
	g.state.Last = g.state.Current
	g.state.Current = math.NewVec2(x, y)
	g.updateNDC()
	g.bus.Fire(core.EVENT_CODE_POINTER_MOVE, core.EventContext{NDC: g.state.NDC})

	if !g.state.Dragging {
		// Either no press is active, or the gesture already disqualified
		// itself as a tap. Position keeps updating; drag detection does
		// not re-arm until the next press.
		return
	}

	// Incremental distance from the immediately preceding event, not the
	// press origin: a wandering pointer that returns to its start is
	// still a drag.
	g.state.DragDistance += g.state.Current.Distance(g.state.Last)
	if g.state.DragDistance > g.threshold {
		g.state.Dragging = false
		g.bus.Fire(core.EVENT_CODE_GESTURE_CANCEL, core.EventContext{NDC: g.state.NDC})
	}
}

func (g *GestureTracker) release() {
	if g.pointerDown && g.state.Dragging {
		// Still below the threshold: a tap.
		g.bus.Fire(core.EVENT_CODE_POINTER_UP, core.EventContext{NDC: g.state.NDC})
	}
	g.pointerDown = false
	g.state.Dragging = false
	g.state.DragDistance = 0
}

func (g *GestureTracker) updateNDC() {
	if g.viewportW <= 0 || g.viewportH <= 0 {
		g.state.NDC = math.NewVec2Zero()
		return
	}
	// Right-handed device coordinates: origin at center, +Y up.
	g.state.NDC = math.NewVec2(
		(g.state.Current.X/g.viewportW)*2.0-1.0,
		-((g.state.Current.Y/g.viewportH)*2.0-1.0),
	)
}
