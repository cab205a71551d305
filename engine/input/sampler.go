package input

import (
	"math"

	"github.com/Carmen-Shannon/oxy-locomotion/common"
)

// Drag tuning. These are empirical values for the follow camera's viewport convention
// and are kept exactly, including the inverted x axis.
const (
	// DragDeadZone is the minimum horizontal drag offset (world units) that steers.
	DragDeadZone = 0.1
	// DragForwardBias is added once to the vertical drag offset so a centred press still walks forward.
	DragForwardBias = 0.4
	// DragRunThreshold is the intent component magnitude above which a drag forces running.
	DragRunThreshold = 0.5
)

// SpeedTier selects between walking and running speed.
type SpeedTier int

const (
	SpeedWalk SpeedTier = iota
	SpeedRun
)

func (t SpeedTier) String() string {
	if t == SpeedRun {
		return "run"
	}
	return "walk"
}

// MovementIntent is the desired movement direction in the container's local frame.
// Components are roughly in [-1, 1] and not unit-normalized.
type MovementIntent struct {
	X float32
	Z float32
}

// Idle reports whether there is no movement request at all.
func (m MovementIntent) Idle() bool {
	return m.X == 0 && m.Z == 0
}

// Sample is the sampler output for one tick.
type Sample struct {
	Intent MovementIntent
	Tier   SpeedTier
}

// Sample converts a snapshot into a movement intent and speed tier.
//
// Evaluation order: forward/backward keys set z, the run key picks the tier, an
// active drag then overrides x (outside the dead zone) and z and may force running,
// and finally left/right keys override x.
//
// Parameters:
//   - vp: the visible viewport extents used to scale the pointer
//
// Returns:
//   - Sample: the movement intent and speed tier
func (s Snapshot) Sample(vp common.Viewport) Sample {
	var out Sample

	if s.Forward {
		out.Intent.Z = 1
	}
	if s.Backward {
		out.Intent.Z = -1
	}

	if s.Run {
		out.Tier = SpeedRun
	}

	if s.Interacting {
		x := s.Pointer.X * vp.Width / 2
		y := s.Pointer.Y * vp.Height / 2

		if abs(x) > DragDeadZone {
			out.Intent.X = -x
		}
		out.Intent.Z = y + DragForwardBias

		if abs(out.Intent.X) > DragRunThreshold || abs(out.Intent.Z) > DragRunThreshold {
			out.Tier = SpeedRun
		}
	}

	if s.Left {
		out.Intent.X = 1
	}
	if s.Right {
		out.Intent.X = -1
	}

	return out
}

func abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
