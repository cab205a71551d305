package controller

import (
	"math"

	"github.com/Carmen-Shannon/oxy-locomotion/common"
)

// SmoothingFactor is the share of the remaining yaw error closed each tick.
const SmoothingFactor float32 = 0.1

const twoPi = 2 * math.Pi

// Orientation holds the yaw targets and their rendered, smoothed values.
type Orientation struct {
	ContainerYaw         float32
	ContainerYawSmoothed float32
	BodyYaw              float32
	BodyYawSmoothed      float32
}

// Smooth advances both smoothed yaws toward their targets by factor. The facing yaw
// takes the shortest arc; the container yaw is accumulated by turning and interpolates
// linearly, then both container values are rebased by whole turns once the smoothed
// value leaves [-2π, 2π].
func (o *Orientation) Smooth(factor float32) {
	o.BodyYawSmoothed = common.LerpAngle(o.BodyYawSmoothed, o.BodyYaw, factor)
	o.ContainerYawSmoothed = common.Lerp(o.ContainerYawSmoothed, o.ContainerYaw, factor)
	o.rebase()
}

func (o *Orientation) rebase() {
	if math.Abs(float64(o.ContainerYawSmoothed)) <= twoPi {
		return
	}
	turns := math.Trunc(float64(o.ContainerYawSmoothed) / twoPi)
	shift := float32(turns * twoPi)
	o.ContainerYaw -= shift
	o.ContainerYawSmoothed -= shift
}
