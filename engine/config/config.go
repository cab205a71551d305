// Package config loads the YAML configuration file of a locomotion demo.
package config

import (
	"cmp"
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-locomotion/common"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/controller"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/level"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/logger"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Engine     EngineConfig     `yaml:"engine"`
	Window     WindowConfig     `yaml:"window"`
	Logging    LoggingConfig    `yaml:"logging"`
	Controller ControllerConfig `yaml:"controller"`
	Camera     CameraConfig     `yaml:"camera"`
	Level      LevelConfig      `yaml:"level"`
	Tuning     TuningConfig     `yaml:"tuning"`
}

type EngineConfig struct {
	TickRate  int  `yaml:"tick_rate"`
	Profiling bool `yaml:"profiling"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ControllerConfig struct {
	WalkSpeed        float32 `yaml:"walk_speed"`
	RunSpeed         float32 `yaml:"run_speed"`
	RotationSpeedDeg float32 `yaml:"rotation_speed_deg"`
}

type CameraConfig struct {
	FovDeg       float32 `yaml:"fov_deg"`
	FollowFactor float32 `yaml:"follow_factor"`
}

type LevelConfig struct {
	Name string `yaml:"name"`
}

type TuningConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// Default returns the built-in configuration.
func Default() *Config {
	ctrl := controller.DefaultConfig()
	return &Config{
		Engine: EngineConfig{TickRate: 60},
		Window: WindowConfig{Title: "oxy-locomotion", Width: 1280, Height: 720},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logger.FormatConsole,
		},
		Controller: ControllerConfig{
			WalkSpeed:        ctrl.WalkSpeed,
			RunSpeed:         ctrl.RunSpeed,
			RotationSpeedDeg: common.RadToDeg(ctrl.RotationSpeed),
		},
		Camera: CameraConfig{FovDeg: 40, FollowFactor: 0.1},
		Level:  LevelConfig{Name: level.DefaultLevel},
		Tuning: TuningConfig{Listen: "127.0.0.1:7070"},
	}
}

// Load reads and parses the file at path. Fields left out of the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML data, fills unset fields from Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) fillDefaults() {
	d := Default()

	c.Engine.TickRate = cmp.Or(c.Engine.TickRate, d.Engine.TickRate)
	c.Window.Title = cmp.Or(c.Window.Title, d.Window.Title)
	c.Window.Width = cmp.Or(c.Window.Width, d.Window.Width)
	c.Window.Height = cmp.Or(c.Window.Height, d.Window.Height)
	c.Logging.Level = cmp.Or(c.Logging.Level, d.Logging.Level)
	c.Logging.Format = cmp.Or(c.Logging.Format, d.Logging.Format)
	c.Controller.WalkSpeed = cmp.Or(c.Controller.WalkSpeed, d.Controller.WalkSpeed)
	c.Controller.RunSpeed = cmp.Or(c.Controller.RunSpeed, d.Controller.RunSpeed)
	c.Controller.RotationSpeedDeg = cmp.Or(c.Controller.RotationSpeedDeg, d.Controller.RotationSpeedDeg)
	c.Camera.FovDeg = cmp.Or(c.Camera.FovDeg, d.Camera.FovDeg)
	c.Camera.FollowFactor = cmp.Or(c.Camera.FollowFactor, d.Camera.FollowFactor)
	c.Level.Name = cmp.Or(c.Level.Name, d.Level.Name)
	c.Tuning.Listen = cmp.Or(c.Tuning.Listen, d.Tuning.Listen)
}

// Validate checks every section and joins all problems into one error.
func (c *Config) Validate() error {
	var errs []error

	if c.Engine.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("engine.tick_rate %d must be positive", c.Engine.TickRate))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if _, err := logger.New(c.Logging.Level, c.Logging.Format); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}
	if err := c.ControllerSettings().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("controller: %w", err))
	}
	if c.Camera.FovDeg <= 0 || c.Camera.FovDeg >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov_deg %.1f not in (0, 180): %w", c.Camera.FovDeg, controller.ErrOutOfRange))
	}
	if c.Camera.FollowFactor <= 0 || c.Camera.FollowFactor > 1 {
		errs = append(errs, fmt.Errorf("camera.follow_factor %.2f not in (0, 1]: %w", c.Camera.FollowFactor, controller.ErrOutOfRange))
	}
	if _, err := level.Lookup(c.Level.Name); err != nil {
		errs = append(errs, err)
	}
	if c.Tuning.Enabled && c.Tuning.Listen == "" {
		errs = append(errs, errors.New("tuning.listen is required when tuning is enabled"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ControllerSettings converts the controller section into runtime tunables.
func (c *Config) ControllerSettings() controller.Config {
	return controller.Config{
		WalkSpeed:     c.Controller.WalkSpeed,
		RunSpeed:      c.Controller.RunSpeed,
		RotationSpeed: common.DegToRad(c.Controller.RotationSpeedDeg),
	}
}

// Fov returns the camera field of view in radians.
func (c *Config) Fov() float32 {
	return common.DegToRad(c.Camera.FovDeg)
}

// LevelPreset returns the configured level preset.
func (c *Config) LevelPreset() (level.Preset, error) {
	return level.Lookup(c.Level.Name)
}
