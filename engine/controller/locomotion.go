package controller

import (
	"math"

	"github.com/Carmen-Shannon/oxy-locomotion/engine/input"
)

// Locomotion is the outcome of solving one tick of movement.
type Locomotion struct {
	// Moving is false when the intent is idle; Velocity is then meaningless and the
	// body's velocity must be left alone.
	Moving bool

	// Velocity is the horizontal world velocity (x, z).
	Velocity [2]float32

	// BodyYaw is the facing target. Unchanged from the input when idle.
	BodyYaw float32

	State AnimationState
}

// Turn accumulates the container yaw target by the rotation speed scaled by the
// intent's x component. Keyboard turning gives exactly ±RotationSpeed; a drag turns
// proportionally to its offset.
func Turn(containerYaw float32, intent input.MovementIntent, cfg Config) float32 {
	if intent.X == 0 {
		return containerYaw
	}
	return containerYaw + cfg.RotationSpeed*intent.X
}

// Solve converts a movement intent into a world velocity and an animation state.
//
// The velocity direction is the container yaw plus the facing yaw, in that order: the
// container carries the camera turn and the facing is the intent direction relative to it.
//
// Parameters:
//   - intent: this tick's movement intent
//   - tier: walk or run
//   - containerYaw: the container yaw target, already turned for this tick
//   - bodyYaw: the current facing target
//   - cfg: speeds to use
//
// Returns:
//   - Locomotion: velocity, new facing target and animation state
func Solve(intent input.MovementIntent, tier input.SpeedTier, containerYaw, bodyYaw float32, cfg Config) Locomotion {
	if intent.Idle() {
		return Locomotion{BodyYaw: bodyYaw, State: AnimationIdle}
	}

	speed, state := cfg.WalkSpeed, AnimationWalk
	if tier == input.SpeedRun {
		speed, state = cfg.RunSpeed, AnimationRun
	}

	facing := float32(math.Atan2(float64(intent.X), float64(intent.Z)))
	heading := float64(containerYaw + facing)
	return Locomotion{
		Moving: true,
		Velocity: [2]float32{
			float32(math.Sin(heading)) * speed,
			float32(math.Cos(heading)) * speed,
		},
		BodyYaw: facing,
		State:   state,
	}
}
