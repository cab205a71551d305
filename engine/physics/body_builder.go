package physics

// BodyBuilderOption is a functional option for configuring a Body.
type BodyBuilderOption func(*body)

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - BodyBuilderOption: option function to apply
func WithPosition(x, y, z float32) BodyBuilderOption {
	return func(b *body) {
		b.position = [3]float32{x, y, z}
	}
}

// WithCapsule sets the capsule collider dimensions.
//
// Parameters:
//   - radius: capsule radius
//   - halfHeight: half the length of the cylindrical section
//
// Returns:
//   - BodyBuilderOption: option function to apply
func WithCapsule(radius, halfHeight float32) BodyBuilderOption {
	return func(b *body) {
		b.collider = Capsule{Radius: radius, HalfHeight: halfHeight}
	}
}

// WithLockRotations sets whether angular motion is disabled.
//
// Parameters:
//   - locked: true to lock rotations
//
// Returns:
//   - BodyBuilderOption: option function to apply
func WithLockRotations(locked bool) BodyBuilderOption {
	return func(b *body) {
		b.lockRotations = locked
	}
}

// WithGravityScale scales the world gravity for this body. 0 disables gravity.
//
// Parameters:
//   - scale: gravity multiplier
//
// Returns:
//   - BodyBuilderOption: option function to apply
func WithGravityScale(scale float32) BodyBuilderOption {
	return func(b *body) {
		b.gravityScale = scale
	}
}

// WithFriction sets the ground friction: the fraction of horizontal velocity removed
// per second while the body is grounded. 0 lets a grounded body slide indefinitely.
//
// Parameters:
//   - friction: friction coefficient per second, clamped to be non-negative
//
// Returns:
//   - BodyBuilderOption: option function to apply
func WithFriction(friction float32) BodyBuilderOption {
	return func(b *body) {
		b.friction = max(0, friction)
	}
}
