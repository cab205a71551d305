package physics

import (
	"math"
	"sync"
)

// Capsule describes a vertical capsule collider centred on the body origin.
// The total height is 2*(HalfHeight+Radius).
type Capsule struct {
	Radius     float32
	HalfHeight float32
}

// Bottom returns the distance from the capsule centre to its lowest point.
func (c Capsule) Bottom() float32 {
	return c.HalfHeight + c.Radius
}

// RigidBody is the narrow view of a dynamic body that character controllers drive.
// Rotation is expected to be locked; facing is a purely visual concern.
type RigidBody interface {
	// Position returns the body's world-space position.
	//
	// Returns:
	//   - [3]float32: the position
	Position() [3]float32

	// LinearVelocity returns the body's linear velocity.
	//
	// Returns:
	//   - [3]float32: velocity in world units per second
	LinearVelocity() [3]float32

	// SetLinearVelocity replaces the body's linear velocity.
	//
	// Parameters:
	//   - v: the new velocity
	//   - wake: if true, a sleeping body is woken so the new velocity takes effect
	SetLinearVelocity(v [3]float32, wake bool)

	// RotationsLocked reports whether angular motion is disabled for this body.
	//
	// Returns:
	//   - bool: true if rotations are locked
	RotationsLocked() bool

	// Collider returns the body's capsule collider.
	//
	// Returns:
	//   - Capsule: the collider shape
	Collider() Capsule
}

type body struct {
	mu *sync.Mutex

	position [3]float32
	velocity [3]float32

	lockRotations bool
	collider      Capsule
	gravityScale  float32
	friction      float32

	grounded bool
	sleeping bool
	idleTime float32
}

// Body is a dynamic rigid body owned by a World.
type Body interface {
	RigidBody

	// SetPosition teleports the body, clearing its velocity and waking it.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p [3]float32)

	// Grounded reports whether the body rested on the ground after the last step.
	//
	// Returns:
	//   - bool: true if touching the ground
	Grounded() bool

	// Sleeping reports whether the body has come to rest and is skipped by the world.
	//
	// Returns:
	//   - bool: true if asleep
	Sleeping() bool

	// Wake resumes simulation of a sleeping body.
	Wake()
}

var _ Body = &body{}

// DefaultFriction is the ground friction applied to new bodies, as the fraction of
// horizontal velocity removed per second while grounded.
const DefaultFriction float32 = 10

// NewBody creates a dynamic body with the character capsule
// (radius 0.08, half-height 0.15), locked rotations and DefaultFriction.
//
// Parameters:
//   - options: functional options to configure the body
//
// Returns:
//   - Body: the newly created body
func NewBody(options ...BodyBuilderOption) Body {
	b := &body{
		mu:            &sync.Mutex{},
		lockRotations: true,
		collider:      Capsule{Radius: 0.08, HalfHeight: 0.15},
		gravityScale:  1,
		friction:      DefaultFriction,
	}
	for _, option := range options {
		option(b)
	}
	return b
}

func (b *body) Position() [3]float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.position
}

func (b *body) SetPosition(p [3]float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.position = p
	b.velocity = [3]float32{}
	b.grounded = false
	b.wakeLocked()
}

func (b *body) LinearVelocity() [3]float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.velocity
}

func (b *body) SetLinearVelocity(v [3]float32, wake bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.velocity = v
	if wake {
		b.wakeLocked()
	}
}

func (b *body) RotationsLocked() bool {
	return b.lockRotations
}

func (b *body) Collider() Capsule {
	return b.collider
}

func (b *body) Grounded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.grounded
}

func (b *body) Sleeping() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sleeping
}

func (b *body) Wake() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.wakeLocked()
}

// wakeLocked clears the sleep state. Caller must hold the mutex.
func (b *body) wakeLocked() {
	b.sleeping = false
	b.idleTime = 0
}

// integrate advances the body by dt under gravity g, resolving against a ground plane
// at groundY. Grounded bodies lose horizontal velocity to friction after moving, so a
// velocity written for this step is travelled in full. Bodies resting below sleepSpeed
// for sleepTime seconds fall asleep.
func (b *body) integrate(dt float32, g [3]float32, groundY, sleepSpeed, sleepTime float32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sleeping {
		return
	}

	for i := range 3 {
		b.velocity[i] += g[i] * b.gravityScale * dt
		b.position[i] += b.velocity[i] * dt
	}

	b.grounded = false
	if floor := groundY + b.collider.Bottom(); b.position[1] <= floor {
		b.position[1] = floor
		if b.velocity[1] < 0 {
			b.velocity[1] = 0
		}
		b.grounded = true

		k := 1 - b.friction*dt
		if k < 0 {
			k = 0
		}
		b.velocity[0] *= k
		b.velocity[2] *= k
	}

	speed := float32(math.Sqrt(float64(
		b.velocity[0]*b.velocity[0] + b.velocity[1]*b.velocity[1] + b.velocity[2]*b.velocity[2],
	)))
	if b.grounded && speed < sleepSpeed {
		b.idleTime += dt
		if b.idleTime >= sleepTime {
			b.sleeping = true
			b.velocity = [3]float32{}
		}
	} else {
		b.idleTime = 0
	}
}
