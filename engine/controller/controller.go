package controller

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-locomotion/common"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/camera"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/game_object"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/input"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/physics"
	"go.uber.org/zap"
)

// InputSource yields one consistent input snapshot per call. *input.State satisfies it.
type InputSource interface {
	Snapshot() input.Snapshot
}

// ViewportSource reports the world-space extents the pointer maps onto. camera.Camera
// satisfies it.
type ViewportSource interface {
	Viewport() common.Viewport
}

type controllerImpl struct {
	mu *sync.Mutex

	input    InputSource
	viewport ViewportSource
	tunables *Tunables
	logger   *zap.Logger

	body      physics.RigidBody
	root      game_object.GameObject
	container game_object.GameObject
	character game_object.GameObject
	rig       camera.FollowRig

	orientation Orientation
	sample      input.Sample
	animation   AnimationState
}

// Controller drives one character from input to rigid body, node yaws and follow camera.
// Each controller owns all of its state so independent characters can tick concurrently.
type Controller interface {
	// Tick runs one update in strict order: input snapshot, sample, turn, solve,
	// rigid-body velocity commit, yaw smoothing, node yaws, root sync, camera rig step.
	// A missing body skips the physics-affecting steps; missing nodes skip the steps
	// that need them. Tick never fails.
	//
	// Parameters:
	//   - dt: elapsed time since the previous tick in seconds
	//
	// Returns:
	//   - AnimationState: the state selected this tick
	Tick(dt float32) AnimationState

	// Animation returns the last selected animation state.
	//
	// Returns:
	//   - AnimationState: the current state
	Animation() AnimationState

	// Orientation returns the current yaw targets and smoothed yaws.
	//
	// Returns:
	//   - Orientation: a copy of the orientation state
	Orientation() Orientation

	// LastSample returns the movement intent and speed tier of the last tick.
	//
	// Returns:
	//   - input.Sample: the last sample
	LastSample() input.Sample

	// Body returns the attached rigid body, or nil.
	//
	// Returns:
	//   - physics.RigidBody: the body or nil
	Body() physics.RigidBody

	// SetBody attaches a rigid body. Passing nil detaches it.
	//
	// Parameters:
	//   - body: the body to drive
	SetBody(body physics.RigidBody)

	// Tunables returns the shared tunables the controller reads each tick.
	//
	// Returns:
	//   - *Tunables: the tunables
	Tunables() *Tunables

	// Rig returns the camera rig stepped by this controller, or nil.
	//
	// Returns:
	//   - camera.FollowRig: the rig or nil
	Rig() camera.FollowRig
}

var _ Controller = &controllerImpl{}

// NewController creates a Controller. Without options it has default tunables, no body,
// no nodes and no camera; every tick then only advances yaw smoothing.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controllerImpl{
		mu:     &sync.Mutex{},
		logger: zap.NewNop(),
	}
	for _, option := range options {
		option(c)
	}
	if c.tunables == nil {
		c.tunables = NewTunables(DefaultConfig())
	}
	return c
}

func (c *controllerImpl) Tick(dt float32) AnimationState {
	c.mu.Lock()
	defer c.mu.Unlock()

	var snap input.Snapshot
	if c.input != nil {
		snap = c.input.Snapshot()
	}
	var vp common.Viewport
	if c.viewport != nil {
		vp = c.viewport.Viewport()
	}
	c.sample = snap.Sample(vp)
	cfg := c.tunables.Get()

	if c.body != nil {
		c.orientation.ContainerYaw = Turn(c.orientation.ContainerYaw, c.sample.Intent, cfg)
		loc := Solve(c.sample.Intent, c.sample.Tier, c.orientation.ContainerYaw, c.orientation.BodyYaw, cfg)

		v := c.body.LinearVelocity()
		if loc.Moving {
			v[0], v[2] = loc.Velocity[0], loc.Velocity[1]
		}
		// only a moving intent wakes the body, so an idle character can fall asleep
		c.body.SetLinearVelocity(v, loc.Moving)
		c.orientation.BodyYaw = loc.BodyYaw
		c.setAnimation(loc.State)
	}

	c.orientation.Smooth(SmoothingFactor)

	if c.container != nil {
		c.container.SetYaw(c.orientation.ContainerYawSmoothed)
	}
	if c.character != nil {
		c.character.SetYaw(c.orientation.BodyYawSmoothed)
	}
	if c.root != nil && c.body != nil {
		p := c.body.Position()
		c.root.SetPosition(p[0], p[1], p[2])
	}
	if c.rig != nil {
		c.rig.Step()
	}

	return c.animation
}

func (c *controllerImpl) Animation() AnimationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.animation
}

func (c *controllerImpl) Orientation() Orientation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation
}

func (c *controllerImpl) LastSample() input.Sample {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sample
}

func (c *controllerImpl) Body() physics.RigidBody {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.body
}

func (c *controllerImpl) SetBody(body physics.RigidBody) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.body = body
}

func (c *controllerImpl) Tunables() *Tunables {
	return c.tunables
}

func (c *controllerImpl) Rig() camera.FollowRig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rig
}

// setAnimation records the new state and logs transitions. Caller must hold the mutex.
func (c *controllerImpl) setAnimation(state AnimationState) {
	if state == c.animation {
		return
	}
	c.logger.Debug("animation state changed",
		zap.Stringer("from", c.animation),
		zap.Stringer("to", state),
	)
	c.animation = state
}
