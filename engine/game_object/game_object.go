package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// objectCount is an atomic counter used to assign IDs to objects created without WithID.
var objectCount atomic.Uint64

type gameObject struct {
	mu *sync.RWMutex

	id      uint64
	name    string
	enabled atomic.Bool

	parent   *gameObject
	children []*gameObject

	position [3]float32
	rotation [3]float32
	scale    [3]float32
}

// GameObject is a node in the scene graph. Each node carries a local transform
// (position, Euler rotation, scale) relative to its parent; world-space values are
// derived by composing local transforms up the parent chain on demand.
// Thread-safe for concurrent access.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's name.
	//
	// Returns:
	//   - string: the name, possibly empty
	Name() string

	// Enabled returns whether this object is enabled.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is enabled.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Parent returns the parent node, or nil for a root node.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// Children returns a copy of the node's direct children.
	//
	// Returns:
	//   - []GameObject: the children in insertion order
	Children() []GameObject

	// AddChild attaches child under this node, detaching it from any previous parent.
	// Attaching a node to itself or to one of its descendants is ignored.
	//
	// Parameters:
	//   - child: the node to attach
	AddChild(child GameObject)

	// RemoveChild detaches child from this node. No-op if child is not a direct child.
	//
	// Parameters:
	//   - child: the node to detach
	RemoveChild(child GameObject)

	// Position returns the local position relative to the parent.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// SetPosition sets the local position relative to the parent.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// Rotation returns the local Euler rotation in radians.
	//
	// Returns:
	//   - rx, ry, rz: rotation angles
	Rotation() (rx, ry, rz float32)

	// SetRotation sets the local Euler rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: new rotation angles
	SetRotation(rx, ry, rz float32)

	// SetYaw sets only the local rotation about the Y axis, preserving pitch and roll.
	//
	// Parameters:
	//   - ry: yaw in radians
	SetYaw(ry float32)

	// Scale returns the local scale.
	//
	// Returns:
	//   - sx, sy, sz: scale components
	Scale() (sx, sy, sz float32)

	// SetScale sets the local scale.
	//
	// Parameters:
	//   - sx, sy, sz: new scale factors
	SetScale(sx, sy, sz float32)

	// LocalMatrix builds the node's local 4x4 transform (column-major).
	//
	// Returns:
	//   - [16]float32: the local matrix
	LocalMatrix() [16]float32

	// WorldMatrix composes the local matrices from the root down to this node.
	//
	// Returns:
	//   - [16]float32: the world matrix (column-major)
	WorldMatrix() [16]float32

	// WorldPosition returns the node's origin in world space.
	//
	// Returns:
	//   - [3]float32: the world-space position
	WorldPosition() [3]float32
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:    &sync.RWMutex{},
		id:    objectCount.Add(1),
		scale: [3]float32{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Parent() GameObject {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.parent == nil {
		return nil
	}
	return g.parent
}

func (g *gameObject) Children() []GameObject {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]GameObject, len(g.children))
	for i, c := range g.children {
		out[i] = c
	}
	return out
}

func (g *gameObject) AddChild(child GameObject) {
	c, ok := child.(*gameObject)
	if !ok || c == nil || c.isAncestorOf(g) {
		return
	}
	if old := c.currentParent(); old != nil {
		old.RemoveChild(c)
	}

	g.mu.Lock()
	g.children = append(g.children, c)
	g.mu.Unlock()

	c.mu.Lock()
	c.parent = g
	c.mu.Unlock()
}

func (g *gameObject) RemoveChild(child GameObject) {
	c, ok := child.(*gameObject)
	if !ok || c == nil {
		return
	}

	g.mu.Lock()
	found := false
	for i, existing := range g.children {
		if existing == c {
			g.children = append(g.children[:i], g.children[i+1:]...)
			found = true
			break
		}
	}
	g.mu.Unlock()

	if found {
		c.mu.Lock()
		c.parent = nil
		c.mu.Unlock()
	}
}

func (g *gameObject) Position() (x, y, z float32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.position[0], g.position[1], g.position[2]
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = [3]float32{x, y, z}
}

func (g *gameObject) Rotation() (rx, ry, rz float32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rotation[0], g.rotation[1], g.rotation[2]
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = [3]float32{rx, ry, rz}
}

func (g *gameObject) SetYaw(ry float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation[1] = ry
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.scale[0], g.scale[1], g.scale[2]
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = [3]float32{sx, sy, sz}
}

func (g *gameObject) LocalMatrix() [16]float32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	// Translate * Yaw * Pitch * Roll * Scale.
	m := mgl32.Translate3D(g.position[0], g.position[1], g.position[2]).
		Mul4(mgl32.HomogRotate3DY(g.rotation[1])).
		Mul4(mgl32.HomogRotate3DX(g.rotation[0])).
		Mul4(mgl32.HomogRotate3DZ(g.rotation[2])).
		Mul4(mgl32.Scale3D(g.scale[0], g.scale[1], g.scale[2]))
	return [16]float32(m)
}

func (g *gameObject) WorldMatrix() [16]float32 {
	world := mgl32.Mat4(g.LocalMatrix())
	for p := g.currentParent(); p != nil; p = p.currentParent() {
		world = mgl32.Mat4(p.LocalMatrix()).Mul4(world)
	}
	return [16]float32(world)
}

func (g *gameObject) WorldPosition() [3]float32 {
	m := g.WorldMatrix()
	return [3]float32{m[12], m[13], m[14]}
}

// currentParent returns the parent under the read lock.
func (g *gameObject) currentParent() *gameObject {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.parent
}

// isAncestorOf reports whether g is other or one of other's ancestors.
func (g *gameObject) isAncestorOf(other *gameObject) bool {
	for n := other; n != nil; n = n.currentParent() {
		if n == g {
			return true
		}
	}
	return false
}
