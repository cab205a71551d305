package game_object

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldPosition_FollowsParentChain(t *testing.T) {
	root := NewGameObject(WithName("root"), WithPosition(10, 0, -2))
	container := NewGameObject(WithName("container"), WithParent(root))
	anchor := NewGameObject(WithName("anchor"), WithParent(container), WithPosition(0, 4, -4))

	got := anchor.WorldPosition()
	assert.InDeltaSlice(t, []float32{10, 4, -6}, got[:], 1e-5)

	container.SetYaw(float32(math.Pi))
	got = anchor.WorldPosition()
	assert.InDeltaSlice(t, []float32{10, 4, 2}, got[:], 1e-5)

	container.SetYaw(float32(math.Pi / 2))
	got = anchor.WorldPosition()
	assert.InDeltaSlice(t, []float32{6, 4, -2}, got[:], 1e-5)
}

func TestAddChild_Reparents(t *testing.T) {
	a := NewGameObject()
	b := NewGameObject()
	child := NewGameObject(WithParent(a))

	require.Len(t, a.Children(), 1)
	b.AddChild(child)

	assert.Empty(t, a.Children())
	require.Len(t, b.Children(), 1)
	assert.Equal(t, b, child.Parent())
}

func TestAddChild_RejectsCycles(t *testing.T) {
	root := NewGameObject()
	child := NewGameObject(WithParent(root))

	child.AddChild(root)
	root.AddChild(root)

	assert.Nil(t, root.Parent())
	assert.Len(t, root.Children(), 1)
	assert.Empty(t, child.Children())
}

func TestRemoveChild(t *testing.T) {
	root := NewGameObject(WithPosition(1, 1, 1))
	child := NewGameObject(WithParent(root))

	root.RemoveChild(child)
	assert.Nil(t, child.Parent())
	assert.Equal(t, [3]float32{0, 0, 0}, child.WorldPosition())

	root.RemoveChild(child)
	assert.Empty(t, root.Children())
}

func TestSetYaw_PreservesOtherAxes(t *testing.T) {
	obj := NewGameObject(WithRotation(0.1, 0.2, 0.3))
	obj.SetYaw(1.5)

	rx, ry, rz := obj.Rotation()
	assert.Equal(t, float32(0.1), rx)
	assert.Equal(t, float32(1.5), ry)
	assert.Equal(t, float32(0.3), rz)
}

func TestNewGameObject_Defaults(t *testing.T) {
	a := NewGameObject()
	b := NewGameObject()

	assert.NotEqual(t, a.ID(), b.ID())
	assert.True(t, a.Enabled())

	sx, sy, sz := a.Scale()
	assert.Equal(t, [3]float32{1, 1, 1}, [3]float32{sx, sy, sz})

	c := NewGameObject(WithID(42), WithEnabled(false))
	assert.Equal(t, uint64(42), c.ID())
	assert.False(t, c.Enabled())
}
