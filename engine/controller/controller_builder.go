package controller

import (
	"github.com/Carmen-Shannon/oxy-locomotion/engine/camera"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/game_object"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/physics"
	"go.uber.org/zap"
)

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controllerImpl)

// WithInput sets where the controller reads input from each tick.
//
// Parameters:
//   - src: the input source, usually an *input.State
//
// Returns:
//   - ControllerBuilderOption: a function that sets the input source
func WithInput(src InputSource) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.input = src
	}
}

// WithViewport sets the source of the world-space extents used to scale drag input.
//
// Parameters:
//   - src: the viewport source, usually the active camera.Camera
//
// Returns:
//   - ControllerBuilderOption: a function that sets the viewport source
func WithViewport(src ViewportSource) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.viewport = src
	}
}

// WithTunables shares a Tunables between this controller and others or a tuning server.
//
// Parameters:
//   - t: the shared tunables
//
// Returns:
//   - ControllerBuilderOption: a function that sets the tunables
func WithTunables(t *Tunables) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.tunables = t
	}
}

// WithConfig gives the controller its own Tunables initialised from cfg.
//
// Parameters:
//   - cfg: the starting configuration
//
// Returns:
//   - ControllerBuilderOption: a function that sets private tunables
func WithConfig(cfg Config) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.tunables = NewTunables(cfg)
	}
}

// WithBody sets the rigid body the controller commits velocity to.
//
// Parameters:
//   - body: the rigid body
//
// Returns:
//   - ControllerBuilderOption: a function that sets the body
func WithBody(body physics.RigidBody) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.body = body
	}
}

// WithRoot sets the node kept in sync with the body's position.
//
// Parameters:
//   - node: the root node of the character rig
//
// Returns:
//   - ControllerBuilderOption: a function that sets the root node
func WithRoot(node game_object.GameObject) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.root = node
	}
}

// WithContainer sets the turning node that carries the character and the camera anchors.
//
// Parameters:
//   - node: the container node
//
// Returns:
//   - ControllerBuilderOption: a function that sets the container node
func WithContainer(node game_object.GameObject) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.container = node
	}
}

// WithCharacter sets the node that visually faces the direction of travel.
//
// Parameters:
//   - node: the character node
//
// Returns:
//   - ControllerBuilderOption: a function that sets the character node
func WithCharacter(node game_object.GameObject) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.character = node
	}
}

// WithFollowRig sets the camera rig stepped at the end of every tick.
//
// Parameters:
//   - rig: the follow rig
//
// Returns:
//   - ControllerBuilderOption: a function that sets the rig
func WithFollowRig(rig camera.FollowRig) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.rig = rig
	}
}

// WithInitialYaw sets both the container yaw target and its smoothed value.
//
// Parameters:
//   - yaw: the starting container yaw in radians
//
// Returns:
//   - ControllerBuilderOption: a function that sets the initial yaw
func WithInitialYaw(yaw float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.orientation.ContainerYaw = yaw
		c.orientation.ContainerYawSmoothed = yaw
	}
}

// WithLogger sets the logger used for animation transitions.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - ControllerBuilderOption: a function that sets the logger
func WithLogger(logger *zap.Logger) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if logger != nil {
			c.logger = logger
		}
	}
}
