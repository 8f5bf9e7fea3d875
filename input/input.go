package input

import (
	"github.com/spatialkit/reticle/input/core"
	"github.com/spatialkit/reticle/input/platform"
	"github.com/spatialkit/reticle/input/systems"
)

// SessionOptions configures a Session. Source and Camera come from the
// host; everything else has a working default.
type SessionOptions struct {
	// Source enumerates tracked controllers. May be nil on platforms
	// without any; controller modes are then unavailable.
	Source platform.GamepadSource

	// Camera supplies the viewpoint for gaze rays and screen picking.
	Camera systems.Camera

	// DisplayQuery is the platform's one-time VR capability enumeration,
	// run asynchronously at Startup. Nil means the feature is absent.
	DisplayQuery func() (platform.VRDisplay, error)

	// Raycaster resolves rays against candidates. Nil installs the
	// bounding-sphere default.
	Raycaster systems.Raycaster

	// Visuals receives ray/reticle presentation changes. Nil is a no-op.
	Visuals systems.Visuals

	// IsMobile marks touch-first platforms, normally from
	// platform.IsMobilePlatform.
	IsMobile bool

	// Config holds the tunables. Nil uses DefaultConfig.
	Config *Config
}

// Session owns the whole input pipeline: controller sampling, mode
// classification, gesture tracking, arm model and ray coordination, all
// driven by one Update per frame. Input callbacks (pointer and touch
// handlers) may arrive between frames and mutate tracker state
// synchronously; Update observes whatever the latest callback left.
type Session struct {
	cfg         *Config
	bus         *core.EventBus
	sampler     *platform.ControllerSampler
	tracker     *systems.GestureTracker
	armModel    *systems.ArmModel
	coordinator *systems.RayCoordinator

	watcher   *ConfigWatcher
	displayCh chan platform.VRDisplay
	query     func() (platform.VRDisplay, error)

	selectables []core.Object
	started     bool
}

func NewSession(opts SessionOptions) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	core.SetLogLevel(cfg.LogLevel)

	caster := opts.Raycaster
	if caster == nil {
		caster = systems.NewBoundsRaycaster()
	}

	bus := core.NewEventBus()
	sampler := platform.NewControllerSampler(opts.Source)
	tracker := systems.NewGestureTracker(bus, cfg.DragThresholdPx)
	armModel := systems.NewArmModel(cfg.ArmModelParams())
	coordinator := systems.NewRayCoordinator(bus, sampler, tracker, armModel, caster, opts.Camera, opts.IsMobile)
	coordinator.SetRestingDistance(cfg.ReticleRestingDistance)
	if opts.Visuals != nil {
		coordinator.SetVisuals(opts.Visuals)
	}

	return &Session{
		cfg:         cfg,
		bus:         bus,
		sampler:     sampler,
		tracker:     tracker,
		armModel:    armModel,
		coordinator: coordinator,
		displayCh:   make(chan platform.VRDisplay, 1),
		query:       opts.DisplayQuery,
	}, nil
}

// Startup kicks off the one-time asynchronous display enumeration. Its
// result is cached and polled; an enumeration that never resolves simply
// leaves VR modes treated as absent.
func (s *Session) Startup() error {
	if s.query == nil {
		core.LogWarn("no display enumeration available, VR modes disabled")
	} else {
		go func() {
			display, err := s.query()
			if err != nil {
				core.LogWarn("display enumeration failed: %s", err.Error())
				return
			}
			s.displayCh <- display
		}()
	}
	s.started = true
	return nil
}

// WatchConfig hot-reloads the tuning file at path. New values are swapped
// in at the top of the next Update, never mid-frame.
func (s *Session) WatchConfig(path string) error {
	watcher, err := WatchConfig(path)
	if err != nil {
		return err
	}
	s.watcher = watcher
	return nil
}

// On registers a callback for an event code. The returned subscription
// removes it.
func (s *Session) On(code core.EventCode, fn core.FnOnEvent) core.Subscription {
	return s.bus.Register(code, fn)
}

// AddSelectable registers an object for ray selection.
func (s *Session) AddSelectable(obj core.Object) {
	s.coordinator.AddSelectable(obj)
	s.selectables = append(s.selectables, obj)
}

// RemoveSelectable unregisters an object, emitting out if it was under
// the ray.
func (s *Session) RemoveSelectable(obj core.Object) {
	s.coordinator.RemoveSelectable(obj)
	for i, candidate := range s.selectables {
		if candidate.ObjectID() == obj.ObjectID() {
			s.selectables = append(s.selectables[:i], s.selectables[i+1:]...)
			break
		}
	}
}

// Mode returns the interaction mode of the last frame.
func (s *Session) Mode() systems.InteractionMode {
	return s.coordinator.Mode()
}

// Ray returns the current world-space selection ray.
func (s *Session) Ray() systems.Ray {
	return s.coordinator.Ray()
}

// SelectedObject returns the object currently under the ray, or nil.
func (s *Session) SelectedObject() core.Object {
	return s.coordinator.SelectedObject()
}

// SetViewportSize feeds window or framebuffer dimensions to pointer
// normalization. Call from the host's resize handler.
func (s *Session) SetViewportSize(width, height float32) {
	s.coordinator.SetViewportSize(width, height)
}

// Pointer and touch handlers, called by the platform backend between
// frames. Session satisfies the desktop backend's pointer sink.

func (s *Session) ProcessPointerDown(x, y float32) { s.tracker.ProcessPointerDown(x, y) }
func (s *Session) ProcessPointerMove(x, y float32) { s.tracker.ProcessPointerMove(x, y) }
func (s *Session) ProcessPointerUp(x, y float32)   { s.tracker.ProcessPointerUp(x, y) }
func (s *Session) ProcessTouchStart(x, y float32)  { s.tracker.ProcessTouchStart(x, y) }
func (s *Session) ProcessTouchMove(x, y float32)   { s.tracker.ProcessTouchMove(x, y) }
func (s *Session) ProcessTouchEnd()                { s.tracker.ProcessTouchEnd() }

// Update runs one frame of the pipeline. Call once per display tick.
func (s *Session) Update() error {
	if !s.started {
		return core.ErrNotInitialized
	}

	// Cross-goroutine handoffs land here, between frames.
	if s.watcher != nil {
		select {
		case cfg, ok := <-s.watcher.Updates():
			if ok {
				s.applyConfig(cfg)
			}
		default:
		}
	}
	select {
	case display := <-s.displayCh:
		s.coordinator.SetDisplay(display)
		core.LogInfo("VR display enumerated")
	default:
	}

	s.sampler.BeginFrame()

	// Controller buttons have no discrete events; edge-detect them once
	// per frame before the picking pass so a press and its selection land
	// in the expected order.
	sample := s.sampler.Sample()
	s.tracker.PollButtons(sample != nil && sample.AnyButtonPressed())

	s.coordinator.Update(s.selectables)
	return nil
}

func (s *Session) applyConfig(cfg *Config) {
	s.cfg = cfg
	core.SetLogLevel(cfg.LogLevel)
	s.tracker.SetDragThreshold(cfg.DragThresholdPx)
	s.armModel.SetParams(cfg.ArmModelParams())
	s.coordinator.SetRestingDistance(cfg.ReticleRestingDistance)
	core.LogDebug("config applied")
}

// Shutdown stops the config watcher and releases bus subscriptions.
func (s *Session) Shutdown() error {
	if s.watcher != nil {
		s.watcher.Close()
		s.watcher = nil
	}
	s.coordinator.Shutdown()
	s.started = false
	return nil
}
