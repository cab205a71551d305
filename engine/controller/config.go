package controller

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-locomotion/common"
)

// ErrOutOfRange is returned when a tunable falls outside its documented range.
var ErrOutOfRange = errors.New("value out of range")

// Speed ranges, in world units per second.
const (
	MinWalkSpeed float32 = 0.1
	MaxWalkSpeed float32 = 4.0

	MinRunSpeed float32 = 0.2
	MaxRunSpeed float32 = 12.0
)

// Rotation speed range, an angular increment per tick in radians.
var (
	MinRotationSpeed = common.DegToRad(0.1)
	MaxRotationSpeed = common.DegToRad(5)
)

// Config holds the three runtime tunables of a character controller.
type Config struct {
	WalkSpeed     float32 `json:"walk_speed"`
	RunSpeed      float32 `json:"run_speed"`
	RotationSpeed float32 `json:"rotation_speed"`
}

// DefaultConfig returns walk 0.8, run 1.6 and a half-degree turn per tick.
func DefaultConfig() Config {
	return Config{
		WalkSpeed:     0.8,
		RunSpeed:      1.6,
		RotationSpeed: common.DegToRad(0.5),
	}
}

// Validate reports the first tunable outside its range, wrapping ErrOutOfRange.
func (c Config) Validate() error {
	if c.WalkSpeed < MinWalkSpeed || c.WalkSpeed > MaxWalkSpeed {
		return fmt.Errorf("walk speed %.3f not in [%.1f, %.1f]: %w", c.WalkSpeed, MinWalkSpeed, MaxWalkSpeed, ErrOutOfRange)
	}
	if c.RunSpeed < MinRunSpeed || c.RunSpeed > MaxRunSpeed {
		return fmt.Errorf("run speed %.3f not in [%.1f, %.1f]: %w", c.RunSpeed, MinRunSpeed, MaxRunSpeed, ErrOutOfRange)
	}
	// compare in degrees so a value converted from the documented bounds is accepted
	deg := common.RadToDeg(c.RotationSpeed)
	if deg < 0.1-1e-4 || deg > 5+1e-4 {
		return fmt.Errorf("rotation speed %.3f° not in [0.1°, 5°]: %w", deg, ErrOutOfRange)
	}
	return nil
}

// Clamp returns a copy of c with every tunable forced into its range.
func (c Config) Clamp() Config {
	return Config{
		WalkSpeed:     common.Clamp(c.WalkSpeed, MinWalkSpeed, MaxWalkSpeed),
		RunSpeed:      common.Clamp(c.RunSpeed, MinRunSpeed, MaxRunSpeed),
		RotationSpeed: common.Clamp(c.RotationSpeed, MinRotationSpeed, MaxRotationSpeed),
	}
}

// Tunables is a Config shared between controllers and a live-tuning channel.
// All methods are safe for concurrent use.
type Tunables struct {
	mu  *sync.RWMutex
	cfg Config
}

// NewTunables creates a Tunables holding cfg clamped into range.
//
// Parameters:
//   - cfg: the starting configuration
//
// Returns:
//   - *Tunables: the shared tunables
func NewTunables(cfg Config) *Tunables {
	return &Tunables{
		mu:  &sync.RWMutex{},
		cfg: cfg.Clamp(),
	}
}

// Get returns the current configuration.
func (t *Tunables) Get() Config {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cfg
}

// Set replaces the configuration. An invalid cfg is rejected and the current value kept.
//
// Parameters:
//   - cfg: the new configuration
//
// Returns:
//   - error: wraps ErrOutOfRange if cfg fails validation
func (t *Tunables) Set(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cfg = cfg
	return nil
}

// Update applies fn to a copy of the current configuration and stores the result if it
// validates. The read-modify-write happens under a single lock.
//
// Parameters:
//   - fn: mutates the candidate configuration
//
// Returns:
//   - Config: the configuration in effect after the call
//   - error: wraps ErrOutOfRange if the candidate fails validation
func (t *Tunables) Update(fn func(*Config)) (Config, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	next := t.cfg
	fn(&next)
	if err := next.Validate(); err != nil {
		return t.cfg, err
	}
	t.cfg = next
	return next, nil
}
