package camera

// FollowRigBuilderOption is a functional option for configuring a FollowRig.
type FollowRigBuilderOption func(*followRig)

// WithFollowFactor sets the per-step interpolation factor.
// Non-positive values fall back to DefaultFollowFactor and values above 1 are clamped to 1.
//
// Parameters:
//   - factor: fraction of the remaining distance closed per step
//
// Returns:
//   - FollowRigBuilderOption: a function that sets the follow factor
func WithFollowFactor(factor float32) FollowRigBuilderOption {
	return func(r *followRig) {
		r.factor = clampFactor(factor)
	}
}

// WithAnchors sets the position and look-at anchors.
//
// Parameters:
//   - position: anchor the camera position chases
//   - lookAt: anchor the look-at point chases
//
// Returns:
//   - FollowRigBuilderOption: a function that sets both anchors
func WithAnchors(position, lookAt Anchor) FollowRigBuilderOption {
	return func(r *followRig) {
		r.positionAnchor = position
		r.lookAtAnchor = lookAt
	}
}

// WithInitialPosition sets where the rig starts before the first Step.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - FollowRigBuilderOption: a function that sets the starting position
func WithInitialPosition(x, y, z float32) FollowRigBuilderOption {
	return func(r *followRig) {
		r.position = [3]float32{x, y, z}
	}
}

// WithInitialTarget sets the look-at point before the first Step.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - FollowRigBuilderOption: a function that sets the starting look-at
func WithInitialTarget(x, y, z float32) FollowRigBuilderOption {
	return func(r *followRig) {
		r.lookAt = [3]float32{x, y, z}
	}
}
