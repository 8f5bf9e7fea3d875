package core

import (
	"github.com/google/uuid"

	"github.com/spatialkit/reticle/input/math"
)

// Object is an opaque handle to an externally-owned selectable. The only
// protocol is stable identity: two handles refer to the same object exactly
// when their ids are equal.
type Object interface {
	ObjectID() string
}

// EventCode is the closed set of events emitted by this library. Gesture
// cancellation (a press disqualified as a tap by dragging) and ray
// cancellation (an in-flight selection aborted) are deliberately distinct
// codes.
type EventCode uint8

const (
	// A press began (mouse button, touch start, or controller button edge).
	EVENT_CODE_POINTER_DOWN EventCode = iota

	// A press ended while still qualifying as a tap.
	EVENT_CODE_POINTER_UP

	// Pointer moved. Context carries the normalized device position.
	EVENT_CODE_POINTER_MOVE

	// Accumulated drag distance crossed the tap threshold; the gesture no
	// longer counts as a tap.
	EVENT_CODE_GESTURE_CANCEL

	// The ray began intersecting an unselected object.
	EVENT_CODE_RAY_OVER

	// The ray stopped intersecting a selected object.
	EVENT_CODE_RAY_OUT

	// A press committed on the currently selected object.
	EVENT_CODE_RAY_SELECT

	// A committed selection was released.
	EVENT_CODE_RAY_DESELECT

	// A committed selection was aborted before release.
	EVENT_CODE_RAY_CANCEL

	MAX_EVENT_CODE
)

func (c EventCode) String() string {
	switch c {
	case EVENT_CODE_POINTER_DOWN:
		return "pointer-down"
	case EVENT_CODE_POINTER_UP:
		return "pointer-up"
	case EVENT_CODE_POINTER_MOVE:
		return "pointer-move"
	case EVENT_CODE_GESTURE_CANCEL:
		return "gesture-cancel"
	case EVENT_CODE_RAY_OVER:
		return "ray-over"
	case EVENT_CODE_RAY_OUT:
		return "ray-out"
	case EVENT_CODE_RAY_SELECT:
		return "ray-select"
	case EVENT_CODE_RAY_DESELECT:
		return "ray-deselect"
	case EVENT_CODE_RAY_CANCEL:
		return "ray-cancel"
	}
	return "unknown"
}

// EventContext carries the payload for a fired event. Fields not relevant
// to a given code are zero.
type EventContext struct {
	// Normalized device position in [-1,1]x[-1,1], +Y up.
	NDC math.Vec2
	// The selectable the event refers to, for the RAY_* codes.
	Object Object
}

type FnOnEvent func(code EventCode, context EventContext)

type registeredEvent struct {
	id       uuid.UUID
	callback FnOnEvent
}

// EventBus is a synchronous fan-out dispatcher over the closed EventCode
// set. Components own a bus by composition; there is no package-global
// state and no cross-goroutine use.
type EventBus struct {
	registered [MAX_EVENT_CODE][]registeredEvent
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscription identifies one registered callback and allows its removal.
type Subscription struct {
	id   uuid.UUID
	code EventCode
	bus  *EventBus
}

// Register adds a callback for the given code and returns a handle that
// removes it. Callbacks for one code fire in registration order.
func (b *EventBus) Register(code EventCode, onEvent FnOnEvent) Subscription {
	e := registeredEvent{
		id:       uuid.New(),
		callback: onEvent,
	}
	b.registered[code] = append(b.registered[code], e)
	return Subscription{id: e.id, code: code, bus: b}
}

// Remove unregisters the callback. Removing twice is a no-op.
func (s Subscription) Remove() {
	if s.bus == nil {
		return
	}
	events := s.bus.registered[s.code]
	for i := range events {
		if events[i].id == s.id {
			copy(events[i:], events[i+1:])
			events[len(events)-1] = registeredEvent{}
			s.bus.registered[s.code] = events[:len(events)-1]
			return
		}
	}
}

// Fire invokes every callback registered for the code, synchronously, in
// registration order. Unlike a handled/unhandled chain, all listeners see
// every event.
func (b *EventBus) Fire(code EventCode, context EventContext) {
	for _, e := range b.registered[code] {
		e.callback(code, context)
	}
}
