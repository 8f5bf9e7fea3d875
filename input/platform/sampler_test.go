package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spatialkit/reticle/input/math"
)

type fakeSource struct {
	gamepads []*ControllerSample
	calls    int
}

func (f *fakeSource) Gamepads() []*ControllerSample {
	f.calls++
	return f.gamepads
}

func tracked(id string) *ControllerSample {
	q := math.NewQuatIdentity()
	return &ControllerSample{
		ID:   id,
		Pose: &GamepadPose{HasOrientation: true, Orientation: &q},
	}
}

func untracked(id string) *ControllerSample {
	return &ControllerSample{ID: id}
}

func TestSamplerPrefersPose(t *testing.T) {
	src := &fakeSource{gamepads: []*ControllerSample{
		untracked("Generic Desktop Gamepad"),
		tracked("Daydream Controller"),
	}}
	cs := NewControllerSampler(src)
	cs.BeginFrame()

	got := cs.Sample()
	assert.NotNil(t, got)
	assert.Equal(t, "Daydream Controller", got.ID)
}

func TestSamplerSkipsOffhand(t *testing.T) {
	src := &fakeSource{gamepads: []*ControllerSample{
		tracked("Oculus Touch (Left)"),
		tracked("Oculus Touch (Right)"),
	}}
	cs := NewControllerSampler(src)
	cs.BeginFrame()

	got := cs.Sample()
	assert.NotNil(t, got)
	assert.Equal(t, "Oculus Touch (Right)", got.ID)
}

func TestSamplerTouchpadHeadsetFallback(t *testing.T) {
	src := &fakeSource{gamepads: []*ControllerSample{
		untracked("Generic Desktop Gamepad"),
		untracked("Gear VR Touchpad"),
	}}
	cs := NewControllerSampler(src)
	cs.BeginFrame()

	got := cs.Sample()
	assert.NotNil(t, got)
	assert.Equal(t, "Gear VR Touchpad", got.ID)
}

func TestSamplerAbsence(t *testing.T) {
	src := &fakeSource{gamepads: []*ControllerSample{
		nil,
		untracked("Generic Desktop Gamepad"),
	}}
	cs := NewControllerSampler(src)
	cs.BeginFrame()
	assert.Nil(t, cs.Sample())
}

func TestSamplerNilSource(t *testing.T) {
	cs := NewControllerSampler(nil)
	cs.BeginFrame()
	assert.Nil(t, cs.Sample())
}

func TestSamplerCachesWithinFrame(t *testing.T) {
	src := &fakeSource{gamepads: []*ControllerSample{tracked("Daydream Controller")}}
	cs := NewControllerSampler(src)

	cs.BeginFrame()
	cs.Sample()
	cs.Sample()
	assert.Equal(t, 1, src.calls)

	cs.BeginFrame()
	cs.Sample()
	assert.Equal(t, 2, src.calls)
}

func TestAnyButtonPressed(t *testing.T) {
	s := &ControllerSample{Buttons: []bool{false, false}}
	assert.False(t, s.AnyButtonPressed())
	s.Buttons[1] = true
	assert.True(t, s.AnyButtonPressed())
	assert.False(t, (&ControllerSample{}).AnyButtonPressed())
}

func TestIsMobilePlatform(t *testing.T) {
	tests := []struct {
		identifier string
		want       bool
	}{
		{"Linux; Android 12; Pixel 6", true},
		{"iPhone; CPU iPhone OS 16_0", true},
		{"Macintosh; Intel Mac OS X", false},
		{"Windows NT 10.0; Win64", false},
		{"X11; Linux x86_64; Mobile", true},
	}
	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMobilePlatform(tt.identifier))
		})
	}
}
