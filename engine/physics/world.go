package physics

import "sync"

// World owns a set of dynamic bodies and advances them with gravity against a flat
// ground plane. It stands in for a full physics engine: there is no broad-phase,
// no body-body contact, only ground resolution.
type World interface {
	// Add registers a body with the world. Adding the same body twice is a no-op.
	//
	// Parameters:
	//   - b: the body to simulate
	Add(b Body)

	// Remove unregisters a body.
	//
	// Parameters:
	//   - b: the body to remove
	Remove(b Body)

	// Bodies returns a copy of the registered bodies.
	//
	// Returns:
	//   - []Body: the bodies in insertion order
	Bodies() []Body

	// Step advances every awake body by dt seconds. Non-positive dt is ignored.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Step(dt float32)

	// Gravity returns the gravity vector.
	//
	// Returns:
	//   - [3]float32: acceleration in units per second squared
	Gravity() [3]float32

	// GroundHeight returns the Y coordinate of the ground plane.
	//
	// Returns:
	//   - float32: the ground height
	GroundHeight() float32

	// SetGroundHeight moves the ground plane and wakes every body.
	//
	// Parameters:
	//   - y: the new ground height
	SetGroundHeight(y float32)

	// Reset removes every body.
	Reset()
}

type world struct {
	mu *sync.Mutex

	gravity      [3]float32
	groundHeight float32
	maxStep      float32

	sleepSpeed float32
	sleepTime  float32

	bodies []*body
}

var _ World = &world{}

// NewWorld creates a World with earth gravity, ground at y=0 and sleeping enabled.
//
// Parameters:
//   - options: functional options to configure the world
//
// Returns:
//   - World: the newly created world
func NewWorld(options ...WorldBuilderOption) World {
	w := &world{
		mu:         &sync.Mutex{},
		gravity:    [3]float32{0, -9.81, 0},
		maxStep:    1.0 / 20.0,
		sleepSpeed: 0.05,
		sleepTime:  1.0,
	}
	for _, option := range options {
		option(w)
	}
	return w
}

func (w *world) Add(b Body) {
	bb, ok := b.(*body)
	if !ok || bb == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, existing := range w.bodies {
		if existing == bb {
			return
		}
	}
	w.bodies = append(w.bodies, bb)
}

func (w *world) Remove(b Body) {
	bb, ok := b.(*body)
	if !ok {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, existing := range w.bodies {
		if existing == bb {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

func (w *world) Bodies() []Body {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Body, len(w.bodies))
	for i, b := range w.bodies {
		out[i] = b
	}
	return out
}

func (w *world) Step(dt float32) {
	if dt <= 0 {
		return
	}
	// Long frames (window drag, breakpoint) would tunnel through the ground.
	if dt > w.maxStep {
		dt = w.maxStep
	}

	w.mu.Lock()
	bodies := make([]*body, len(w.bodies))
	copy(bodies, w.bodies)
	g := w.gravity
	ground := w.groundHeight
	w.mu.Unlock()

	for _, b := range bodies {
		b.integrate(dt, g, ground, w.sleepSpeed, w.sleepTime)
	}
}

func (w *world) Gravity() [3]float32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gravity
}

func (w *world) GroundHeight() float32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.groundHeight
}

func (w *world) SetGroundHeight(y float32) {
	w.mu.Lock()
	w.groundHeight = y
	bodies := make([]*body, len(w.bodies))
	copy(bodies, w.bodies)
	w.mu.Unlock()

	for _, b := range bodies {
		b.Wake()
	}
}

func (w *world) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.bodies = nil
}

// WorldBuilderOption is a functional option for configuring a World.
type WorldBuilderOption func(*world)

// WithGravity sets the gravity vector.
//
// Parameters:
//   - x, y, z: acceleration components
//
// Returns:
//   - WorldBuilderOption: option function to apply
func WithGravity(x, y, z float32) WorldBuilderOption {
	return func(w *world) {
		w.gravity = [3]float32{x, y, z}
	}
}

// WithGroundHeight sets the initial ground plane height.
//
// Parameters:
//   - y: ground height
//
// Returns:
//   - WorldBuilderOption: option function to apply
func WithGroundHeight(y float32) WorldBuilderOption {
	return func(w *world) {
		w.groundHeight = y
	}
}

// WithSleep configures when resting bodies fall asleep. A zero time disables sleeping.
//
// Parameters:
//   - speed: speed below which a grounded body counts as idle
//   - seconds: idle time before the body sleeps
//
// Returns:
//   - WorldBuilderOption: option function to apply
func WithSleep(speed, seconds float32) WorldBuilderOption {
	return func(w *world) {
		w.sleepSpeed = speed
		if seconds <= 0 {
			w.sleepSpeed = -1
		}
		w.sleepTime = seconds
	}
}
