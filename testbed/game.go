/*
This is an example of application that will use the
input package to test things out
*/
package testbed

import (
	"errors"
	"time"

	"github.com/spatialkit/reticle/input"
	"github.com/spatialkit/reticle/input/core"
	"github.com/spatialkit/reticle/input/math"
	"github.com/spatialkit/reticle/input/platform/desktop"
	"github.com/spatialkit/reticle/input/systems"
)

const configPath = "reticle.toml"

// Sphere is a demo selectable with a bounding volume.
type Sphere struct {
	ID     string
	Center math.Vec3
	Radius float32
}

func (s *Sphere) ObjectID() string        { return s.ID }
func (s *Sphere) BoundsCenter() math.Vec3 { return s.Center }
func (s *Sphere) BoundsRadius() float32   { return s.Radius }

// TestGame opens a window, points a selection session at a handful of
// spheres and logs every event the session emits. Plug in a real gamepad
// to see the absence path: a poseless pad still classifies as mouse.
type TestGame struct {
	platform *desktop.Platform
	session  *input.Session
	camera   *systems.PerspectiveCamera
	spheres  []*Sphere

	width  uint32
	height uint32
}

func NewTestGame() *TestGame {
	return &TestGame{
		platform: desktop.New(),
		camera:   systems.NewPerspectiveCamera(math.DegToRad(60), 1280.0/720.0),
		spheres: []*Sphere{
			{ID: "red", Center: math.NewVec3(-2, 0, -6), Radius: 1},
			{ID: "green", Center: math.NewVec3(0, 0, -8), Radius: 1},
			{ID: "blue", Center: math.NewVec3(2, 0, -6), Radius: 1},
		},
		width:  1280,
		height: 720,
	}
}

func (g *TestGame) Initialize() error {
	cfg, cfgErr := input.LoadConfig(configPath)
	if cfgErr != nil {
		if !errors.Is(cfgErr, core.ErrConfigNotFound) {
			return cfgErr
		}
		core.LogInfo("no %s, using defaults", configPath)
	}

	session, err := input.NewSession(input.SessionOptions{
		Source: g.platform,
		Camera: g.camera,
		Config: cfg,
	})
	if err != nil {
		return err
	}
	g.session = session

	if err := g.platform.Startup("Reticle Testbed", g.width, g.height, session, g.onResize); err != nil {
		return err
	}

	if err := session.Startup(); err != nil {
		return err
	}
	// Hot reload only when a tuning file actually exists.
	if cfgErr == nil {
		if werr := session.WatchConfig(configPath); werr != nil {
			core.LogWarn("config watch disabled: %s", werr.Error())
		}
	}

	for _, s := range g.spheres {
		session.AddSelectable(s)
	}

	session.On(core.EVENT_CODE_RAY_OVER, func(_ core.EventCode, ctx core.EventContext) {
		core.LogInfo("over %s", ctx.Object.ObjectID())
	})
	session.On(core.EVENT_CODE_RAY_OUT, func(_ core.EventCode, ctx core.EventContext) {
		core.LogInfo("out %s", ctx.Object.ObjectID())
	})
	session.On(core.EVENT_CODE_RAY_SELECT, func(_ core.EventCode, ctx core.EventContext) {
		ray := g.session.Ray()
		core.LogInfo("select %s (mode %s, ray origin [%.2f %.2f %.2f])",
			ctx.Object.ObjectID(), g.session.Mode(), ray.Origin.X, ray.Origin.Y, ray.Origin.Z)
	})
	session.On(core.EVENT_CODE_GESTURE_CANCEL, func(_ core.EventCode, ctx core.EventContext) {
		core.LogInfo("gesture cancelled at NDC [%.3f %.3f]", ctx.NDC.X, ctx.NDC.Y)
	})

	return nil
}

func (g *TestGame) Run() error {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for !g.platform.ShouldClose() {
		g.platform.PumpMessages()
		if err := g.session.Update(); err != nil {
			return err
		}
		<-ticker.C
	}
	return nil
}

func (g *TestGame) Shutdown() error {
	if g.session != nil {
		if err := g.session.Shutdown(); err != nil {
			return err
		}
	}
	return g.platform.Shutdown()
}

func (g *TestGame) onResize(width, height int) {
	g.width = uint32(width)
	g.height = uint32(height)
	g.session.SetViewportSize(float32(width), float32(height))
	if height > 0 {
		g.camera.AspectRatio = float32(width) / float32(height)
	}
	core.LogDebug("viewport resize: %d, %d", width, height)
}
