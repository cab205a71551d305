package scene

import (
	"github.com/Carmen-Shannon/oxy-locomotion/engine/animator"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/controller"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/loader"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CharacterBuilderOption is a functional option for configuring a Character.
type CharacterBuilderOption func(c *character)

// WithCharacterID sets the character's identifier instead of a random one.
func WithCharacterID(id uuid.UUID) CharacterBuilderOption {
	return func(c *character) {
		c.id = id
	}
}

// WithCharacterName sets the display name, also used to name the rig nodes.
func WithCharacterName(name string) CharacterBuilderOption {
	return func(c *character) {
		c.name = name
	}
}

// WithSpawn sets the spawn position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CharacterBuilderOption: option function to apply
func WithSpawn(x, y, z float32) CharacterBuilderOption {
	return func(c *character) {
		c.spawn = [3]float32{x, y, z}
	}
}

// WithInput sets the input source the controller samples.
//
// Parameters:
//   - src: the input source, usually an *input.State subscribed to the window
//
// Returns:
//   - CharacterBuilderOption: option function to apply
func WithInput(src controller.InputSource) CharacterBuilderOption {
	return func(c *character) {
		c.input = src
	}
}

// WithViewport sets the source of visible extents used to scale drag input.
//
// Parameters:
//   - src: the viewport source, usually the scene camera
//
// Returns:
//   - CharacterBuilderOption: option function to apply
func WithViewport(src controller.ViewportSource) CharacterBuilderOption {
	return func(c *character) {
		c.viewport = src
	}
}

// WithTunables shares tunables with other characters or a tuning server.
//
// Parameters:
//   - t: the shared tunables
//
// Returns:
//   - CharacterBuilderOption: option function to apply
func WithTunables(t *controller.Tunables) CharacterBuilderOption {
	return func(c *character) {
		c.tunables = t
	}
}

// WithAnimator replaces the default animation player.
//
// Parameters:
//   - a: the animator; it should carry idle, walk and run clips
//
// Returns:
//   - CharacterBuilderOption: option function to apply
func WithAnimator(a animator.StateAnimator) CharacterBuilderOption {
	return func(c *character) {
		c.animator = a
	}
}

// WithClips supplies the clip metadata of the character model, as read by loader.ReadClips.
// The default animator takes the durations of its idle, walk and run clips from here.
// Ignored when WithAnimator is given.
//
// Parameters:
//   - clips: the model's clips
//
// Returns:
//   - CharacterBuilderOption: option function to apply
func WithClips(clips []loader.Clip) CharacterBuilderOption {
	return func(c *character) {
		c.clips = clips
	}
}

// WithFollowFactor sets the camera rig's per-tick follow factor.
//
// Parameters:
//   - f: the factor in (0, 1]
//
// Returns:
//   - CharacterBuilderOption: option function to apply
func WithFollowFactor(f float32) CharacterBuilderOption {
	return func(c *character) {
		c.followFactor = f
	}
}

// WithCharacterLogger sets the logger for the character and its controller.
func WithCharacterLogger(logger *zap.Logger) CharacterBuilderOption {
	return func(c *character) {
		if logger != nil {
			c.logger = logger
		}
	}
}
