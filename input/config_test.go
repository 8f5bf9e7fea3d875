package input

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialkit/reticle/input/core"
	"github.com/spatialkit/reticle/input/math"
	"github.com/spatialkit/reticle/input/systems"
)

func TestDefaultConfigMatchesModelDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, systems.DefaultDragThresholdPx, cfg.DragThresholdPx)
	assert.Equal(t, systems.DefaultReticleRestingDistance, cfg.ReticleRestingDistance)

	params := cfg.ArmModelParams()
	want := systems.DefaultArmModelParams()
	assert.Equal(t, want, params)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reticle.toml")
	content := `
drag_threshold_px = 24.0

[arm_model]
elbow_bend_ratio = 0.5
head_elbow_offset = [0.2, -0.4, -0.1]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, float32(24.0), cfg.DragThresholdPx)

	params := cfg.ArmModelParams()
	assert.Equal(t, float32(0.5), params.ElbowBendRatio)
	assert.True(t, params.HeadElbowOffset.Compare(math.NewVec3(0.2, -0.4, -0.1), math.K_FLOAT_EPSILON))

	// Unnamed fields keep their defaults.
	assert.Equal(t, systems.DefaultMinAngularSpeed, params.MinAngularSpeed)
	assert.Equal(t, systems.DefaultReticleRestingDistance, cfg.ReticleRestingDistance)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))

	require.ErrorIs(t, err, core.ErrConfigNotFound)
	require.NotNil(t, cfg, "defaults are still usable when the file is absent")
	assert.Equal(t, systems.DefaultDragThresholdPx, cfg.DragThresholdPx)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reticle.toml")
	require.NoError(t, os.WriteFile(path, []byte("drag_threshold_px = {nope"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrConfigNotFound)
}

func TestWatchConfigDeliversUpdates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reticle.toml")
	require.NoError(t, os.WriteFile(path, []byte("drag_threshold_px = 10.0\n"), 0o644))

	watcher, err := WatchConfig(path)
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, os.WriteFile(path, []byte("drag_threshold_px = 42.0\n"), 0o644))

	select {
	case cfg := <-watcher.Updates():
		require.NotNil(t, cfg)
		assert.Equal(t, float32(42.0), cfg.DragThresholdPx)
	case <-time.After(5 * time.Second):
		t.Fatal("no config update delivered")
	}
}

func TestWatchConfigMissingFile(t *testing.T) {
	_, err := WatchConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadConfigReadFailureIsNotNotFound(t *testing.T) {
	dir := t.TempDir()
	// A directory where a file is expected fails to read without being
	// "not found".
	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.False(t, errors.Is(err, core.ErrConfigNotFound))
}
