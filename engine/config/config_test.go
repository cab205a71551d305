package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-locomotion/engine/controller"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	ctrl := cfg.ControllerSettings()
	assert.InDelta(t, controller.DefaultConfig().RotationSpeed, ctrl.RotationSpeed, 1e-6)
	assert.InDelta(t, 0.698, cfg.Fov(), 1e-3)
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
controller:
  run_speed: 3.5
level:
  name: city_scene_tokyo
tuning:
  enabled: true
`))
	require.NoError(t, err)

	assert.Equal(t, float32(3.5), cfg.Controller.RunSpeed)
	assert.Equal(t, float32(0.8), cfg.Controller.WalkSpeed)
	assert.Equal(t, 60, cfg.Engine.TickRate)
	assert.Equal(t, "127.0.0.1:7070", cfg.Tuning.Listen)
	assert.True(t, cfg.Tuning.Enabled)

	p, err := cfg.LevelPreset()
	require.NoError(t, err)
	assert.Equal(t, float32(-1), p.GroundHeight())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		is   error
	}{
		{name: "walk speed out of range", yaml: "controller:\n  walk_speed: 9\n", is: controller.ErrOutOfRange},
		{name: "rotation too fast", yaml: "controller:\n  rotation_speed_deg: 10\n", is: controller.ErrOutOfRange},
		{name: "follow factor above one", yaml: "camera:\n  follow_factor: 1.5\n", is: controller.ErrOutOfRange},
		{name: "unknown level", yaml: "level:\n  name: moon\n", is: level.ErrUnknownLevel},
		{name: "bad log format", yaml: "logging:\n  format: xml\n"},
		{name: "negative tick rate", yaml: "engine:\n  tick_rate: -5\n"},
		{name: "not yaml", yaml: "controller: [1, 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  title: test\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
