package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spatialkit/reticle/input/math"
)

func TestEventBusFireOrder(t *testing.T) {
	bus := NewEventBus()
	var got []int

	bus.Register(EVENT_CODE_POINTER_DOWN, func(code EventCode, ctx EventContext) {
		got = append(got, 1)
	})
	bus.Register(EVENT_CODE_POINTER_DOWN, func(code EventCode, ctx EventContext) {
		got = append(got, 2)
	})

	bus.Fire(EVENT_CODE_POINTER_DOWN, EventContext{})
	assert.Equal(t, []int{1, 2}, got)
}

func TestEventBusCodeIsolation(t *testing.T) {
	bus := NewEventBus()
	fired := 0
	bus.Register(EVENT_CODE_RAY_OVER, func(code EventCode, ctx EventContext) {
		fired++
	})

	bus.Fire(EVENT_CODE_RAY_OUT, EventContext{})
	assert.Zero(t, fired)

	bus.Fire(EVENT_CODE_RAY_OVER, EventContext{})
	assert.Equal(t, 1, fired)
}

func TestSubscriptionRemove(t *testing.T) {
	bus := NewEventBus()
	fired := 0
	sub := bus.Register(EVENT_CODE_POINTER_MOVE, func(code EventCode, ctx EventContext) {
		fired++
	})

	bus.Fire(EVENT_CODE_POINTER_MOVE, EventContext{})
	sub.Remove()
	bus.Fire(EVENT_CODE_POINTER_MOVE, EventContext{})
	assert.Equal(t, 1, fired)

	// Removing twice is harmless.
	sub.Remove()
}

func TestSubscriptionRemoveKeepsOthers(t *testing.T) {
	bus := NewEventBus()
	var got []string
	a := bus.Register(EVENT_CODE_POINTER_UP, func(code EventCode, ctx EventContext) {
		got = append(got, "a")
	})
	bus.Register(EVENT_CODE_POINTER_UP, func(code EventCode, ctx EventContext) {
		got = append(got, "b")
	})

	a.Remove()
	bus.Fire(EVENT_CODE_POINTER_UP, EventContext{})
	assert.Equal(t, []string{"b"}, got)
}

func TestEventContextPayload(t *testing.T) {
	bus := NewEventBus()
	var got EventContext
	bus.Register(EVENT_CODE_POINTER_MOVE, func(code EventCode, ctx EventContext) {
		got = ctx
	})

	bus.Fire(EVENT_CODE_POINTER_MOVE, EventContext{NDC: math.NewVec2(0.5, -0.25)})
	assert.InDelta(t, 0.5, got.NDC.X, 1e-6)
	assert.InDelta(t, -0.25, got.NDC.Y, 1e-6)
}

func TestEventCodeString(t *testing.T) {
	assert.Equal(t, "gesture-cancel", EVENT_CODE_GESTURE_CANCEL.String())
	assert.Equal(t, "ray-cancel", EVENT_CODE_RAY_CANCEL.String())
	assert.Equal(t, "unknown", MAX_EVENT_CODE.String())
}
