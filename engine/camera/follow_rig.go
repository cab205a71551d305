package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-locomotion/common"
)

// DefaultFollowFactor is the fraction of the remaining distance the rig closes per step.
const DefaultFollowFactor float32 = 0.1

// Anchor is any scene node whose world position the rig can chase.
type Anchor interface {
	WorldPosition() [3]float32
}

type followRig struct {
	mu *sync.Mutex

	position [3]float32
	lookAt   [3]float32
	factor   float32

	positionAnchor Anchor
	lookAtAnchor   Anchor
}

// FollowRig is a CameraController that chases two anchors carried by a character:
// one for the camera position and one for the look-at point. Each Step moves the
// rig a fixed fraction of the way toward the anchors, so the error decays
// geometrically and never overshoots.
type FollowRig interface {
	CameraController

	// Step advances position and look-at toward their anchors' current world positions.
	// A nil anchor leaves the matching vector untouched.
	Step()

	// Snap moves position and look-at onto the anchors immediately.
	Snap()

	// SetAnchors replaces both anchors. Either may be nil.
	//
	// Parameters:
	//   - position: anchor for the camera position
	//   - lookAt: anchor for the look-at point
	SetAnchors(position, lookAt Anchor)

	// FollowFactor returns the per-step interpolation factor.
	//
	// Returns:
	//   - float32: the factor in (0, 1]
	FollowFactor() float32

	// SetFollowFactor sets the per-step interpolation factor. Values outside (0, 1] are clamped.
	//
	// Parameters:
	//   - factor: the new factor
	SetFollowFactor(factor float32)
}

var _ FollowRig = &followRig{}

// NewFollowRig creates a FollowRig starting at (3, 3, 3) looking at the origin.
//
// Parameters:
//   - options: functional options to configure the rig
//
// Returns:
//   - FollowRig: the newly created rig
func NewFollowRig(options ...FollowRigBuilderOption) FollowRig {
	r := &followRig{
		mu:       &sync.Mutex{},
		position: [3]float32{3, 3, 3},
		factor:   DefaultFollowFactor,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *followRig) Position() (x, y, z float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.position[0], r.position[1], r.position[2]
}

func (r *followRig) Target() (x, y, z float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookAt[0], r.lookAt[1], r.lookAt[2]
}

func (r *followRig) SetPosition(x, y, z float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.position = [3]float32{x, y, z}
}

func (r *followRig) SetTarget(x, y, z float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookAt = [3]float32{x, y, z}
}

func (r *followRig) Step() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.positionAnchor != nil {
		r.position = common.Lerp3(r.position, r.positionAnchor.WorldPosition(), r.factor)
	}
	if r.lookAtAnchor != nil {
		r.lookAt = common.Lerp3(r.lookAt, r.lookAtAnchor.WorldPosition(), r.factor)
	}
}

func (r *followRig) Snap() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.positionAnchor != nil {
		r.position = r.positionAnchor.WorldPosition()
	}
	if r.lookAtAnchor != nil {
		r.lookAt = r.lookAtAnchor.WorldPosition()
	}
}

func (r *followRig) SetAnchors(position, lookAt Anchor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.positionAnchor = position
	r.lookAtAnchor = lookAt
}

func (r *followRig) FollowFactor() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.factor
}

func (r *followRig) SetFollowFactor(factor float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factor = clampFactor(factor)
}

func clampFactor(f float32) float32 {
	if f <= 0 {
		return DefaultFollowFactor
	}
	if f > 1 {
		return 1
	}
	return f
}
