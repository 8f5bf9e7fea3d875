package input

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/spatialkit/reticle/input/core"
	"github.com/spatialkit/reticle/input/math"
	"github.com/spatialkit/reticle/input/systems"
)

// ArmModelConfig mirrors systems.ArmModelParams for the TOML file.
// Offsets are [x, y, z] in meters.
type ArmModelConfig struct {
	HeadElbowOffset       [3]float32 `toml:"head_elbow_offset"`
	ElbowWristOffset      [3]float32 `toml:"elbow_wrist_offset"`
	WristControllerOffset [3]float32 `toml:"wrist_controller_offset"`
	ArmExtensionOffset    [3]float32 `toml:"arm_extension_offset"`
	ElbowBendRatio        float32    `toml:"elbow_bend_ratio"`
	ExtensionRatioWeight  float32    `toml:"extension_ratio_weight"`
	MinAngularSpeed       float32    `toml:"min_angular_speed"`
	MinExtensionAngleDeg  float32    `toml:"min_extension_angle_deg"`
	MaxExtensionAngleDeg  float32    `toml:"max_extension_angle_deg"`
}

// Config holds every tunable parameter. All fields have working defaults;
// a TOML file overrides only what it names.
type Config struct {
	LogLevel               string         `toml:"log_level"`
	DragThresholdPx        float32        `toml:"drag_threshold_px"`
	ReticleRestingDistance float32        `toml:"reticle_resting_distance"`
	ArmModel               ArmModelConfig `toml:"arm_model"`
}

func vec3ToArray(v math.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func arrayToVec3(a [3]float32) math.Vec3 {
	return math.NewVec3(a[0], a[1], a[2])
}

func DefaultConfig() *Config {
	params := systems.DefaultArmModelParams()
	return &Config{
		LogLevel:               "info",
		DragThresholdPx:        systems.DefaultDragThresholdPx,
		ReticleRestingDistance: systems.DefaultReticleRestingDistance,
		ArmModel: ArmModelConfig{
			HeadElbowOffset:       vec3ToArray(params.HeadElbowOffset),
			ElbowWristOffset:      vec3ToArray(params.ElbowWristOffset),
			WristControllerOffset: vec3ToArray(params.WristControllerOffset),
			ArmExtensionOffset:    vec3ToArray(params.ArmExtensionOffset),
			ElbowBendRatio:        params.ElbowBendRatio,
			ExtensionRatioWeight:  params.ExtensionRatioWeight,
			MinAngularSpeed:       params.MinAngularSpeed,
			MinExtensionAngleDeg:  params.MinExtensionAngleDeg,
			MaxExtensionAngleDeg:  params.MaxExtensionAngleDeg,
		},
	}
}

// ArmModelParams converts the config into the arm model's parameter set.
func (c *Config) ArmModelParams() systems.ArmModelParams {
	return systems.ArmModelParams{
		HeadElbowOffset:       arrayToVec3(c.ArmModel.HeadElbowOffset),
		ElbowWristOffset:      arrayToVec3(c.ArmModel.ElbowWristOffset),
		WristControllerOffset: arrayToVec3(c.ArmModel.WristControllerOffset),
		ArmExtensionOffset:    arrayToVec3(c.ArmModel.ArmExtensionOffset),
		ElbowBendRatio:        c.ArmModel.ElbowBendRatio,
		ExtensionRatioWeight:  c.ArmModel.ExtensionRatioWeight,
		MinAngularSpeed:       c.ArmModel.MinAngularSpeed,
		MinExtensionAngleDeg:  c.ArmModel.MinExtensionAngleDeg,
		MaxExtensionAngleDeg:  c.ArmModel.MaxExtensionAngleDeg,
	}
}

// LoadConfig reads a TOML tuning file over the defaults. A missing file
// reports core.ErrConfigNotFound; callers typically treat that as "use
// the defaults".
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", core.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ConfigWatcher re-reads the tuning file whenever it is written and hands
// the parsed result to a channel. The session drains the channel at the
// top of its frame so parameter swaps land between frames, never inside
// one.
type ConfigWatcher struct {
	path     string
	fsnotify *fsnotify.Watcher
	done     chan struct{}
	updates  chan *Config
}

func WatchConfig(path string) (*ConfigWatcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatch.Add(path); err != nil {
		fsWatch.Close()
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}
	w := &ConfigWatcher{
		path:     path,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		updates:  make(chan *Config, 1),
	}
	go w.start()
	return w, nil
}

// Updates delivers each successfully re-parsed config. Failed re-reads
// are logged and dropped; the previous config stays in effect.
func (w *ConfigWatcher) Updates() <-chan *Config {
	return w.updates
}

func (w *ConfigWatcher) Close() {
	close(w.done)
}

func (w *ConfigWatcher) start() {
	for {
		select {
		case e := <-w.fsnotify.Events:
			if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := LoadConfig(w.path)
			if err != nil {
				core.LogError("config reload failed: %s", err.Error())
				continue
			}
			// Keep only the freshest config if the frame loop is behind.
			select {
			case <-w.updates:
			default:
			}
			w.updates <- cfg
			core.LogInfo("config reloaded from %s", w.path)

		case e := <-w.fsnotify.Errors:
			core.LogError(e.Error())

		case <-w.done:
			w.fsnotify.Close()
			close(w.updates)
			return
		}
	}
}
