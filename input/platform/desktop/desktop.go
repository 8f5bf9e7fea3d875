package desktop

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spatialkit/reticle/input/core"
	"github.com/spatialkit/reticle/input/platform"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// PointerSink receives raw pointer events in pixel coordinates.
type PointerSink interface {
	ProcessPointerDown(x, y float32)
	ProcessPointerMove(x, y float32)
	ProcessPointerUp(x, y float32)
}

// Platform is the desktop backend: a GLFW window feeding mouse events into
// a PointerSink, plus joystick enumeration exposed as a
// platform.GamepadSource. Desktop joysticks carry no tracking pose, so
// they take the absence path through the sampler.
type Platform struct {
	Window *glfw.Window

	sink     PointerSink
	onResize func(width, height int)

	cursorX float64
	cursorY float64
}

func New() *Platform {
	return &Platform{}
}

func (p *Platform) Startup(applicationName string, width, height uint32, sink PointerSink, onResize func(width, height int)) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		return err
	}
	p.Window = window
	p.sink = sink
	p.onResize = onResize

	p.Window.SetMouseButtonCallback(p.mouseButtonCallback)
	p.Window.SetCursorPosCallback(p.cursorPosCallback)
	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	p.Window.Show()

	if onResize != nil {
		w, h := window.GetFramebufferSize()
		onResize(w, h)
	}

	return nil
}

func (p *Platform) Shutdown() error {
	glfw.Terminate()
	return nil
}

// PumpMessages drains pending window events; input callbacks fire from
// inside this call, on the calling thread.
func (p *Platform) PumpMessages() {
	glfw.PollEvents()
}

func (p *Platform) ShouldClose() bool {
	return p.Window != nil && p.Window.ShouldClose()
}

func (p *Platform) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if p.sink == nil || button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		p.sink.ProcessPointerDown(float32(p.cursorX), float32(p.cursorY))
	case glfw.Release:
		p.sink.ProcessPointerUp(float32(p.cursorX), float32(p.cursorY))
	}
}

func (p *Platform) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	p.cursorX = xpos
	p.cursorY = ypos
	if p.sink != nil {
		p.sink.ProcessPointerMove(float32(xpos), float32(ypos))
	}
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	if p.onResize != nil {
		p.onResize(width, height)
	}
}

// Gamepads implements platform.GamepadSource over the GLFW joystick API.
func (p *Platform) Gamepads() []*platform.ControllerSample {
	var out []*platform.ControllerSample
	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if !joy.Present() {
			continue
		}
		buttons := joy.GetButtons()
		pressed := make([]bool, len(buttons))
		for i, b := range buttons {
			pressed[i] = b == glfw.Press
		}
		out = append(out, &platform.ControllerSample{
			ID:      joy.GetName(),
			Buttons: pressed,
			Axes:    joy.GetAxes(),
		})
	}
	return out
}
