package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-locomotion/common"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/camera"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/controller"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/input"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/level"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/physics"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = float32(1.0 / 60)

func TestNewScene_Defaults(t *testing.T) {
	s := NewScene("main", WithTickWorkers(2))

	assert.Equal(t, "main", s.Name())
	assert.False(t, s.Active())
	assert.Nil(t, s.Camera())
	assert.Equal(t, level.DefaultLevel, s.Level().Name)
	assert.Equal(t, float32(-7), s.World().GroundHeight())
	assert.Equal(t, level.DefaultLevel, s.MapNode().Name())
	assert.Zero(t, s.Count())
}

func TestScene_AddRemoveCharacter(t *testing.T) {
	s := NewScene("main")
	c := NewCharacter(WithCharacterName("hero"))

	s.AddCharacter(c)
	s.AddCharacter(c)
	assert.Equal(t, 1, s.Count())
	assert.Len(t, s.World().Bodies(), 1)
	assert.Same(t, c, s.Character(c.ID()))

	require.NoError(t, s.RemoveCharacter(c.ID()))
	assert.Zero(t, s.Count())
	assert.Empty(t, s.World().Bodies())
	assert.Nil(t, s.Character(c.ID()))

	assert.ErrorIs(t, s.RemoveCharacter(uuid.New()), ErrCharacterNotFound)
	assert.ErrorIs(t, s.Follow(uuid.New()), ErrCharacterNotFound)
}

func TestScene_WithCharactersRegistersBodies(t *testing.T) {
	a, b := NewCharacter(), NewCharacter()
	s := NewScene("main", WithCharacters(a, b, a))

	assert.Equal(t, 2, s.Count())
	assert.Len(t, s.World().Bodies(), 2)
	assert.Equal(t, []Character{a, b}, s.Characters())
}

func TestScene_TickMovesCharacter(t *testing.T) {
	in := input.NewState(nil)
	c := NewCharacter(WithInput(in), WithSpawn(0, 0, 0))
	s := NewScene("main", WithCharacters(c))

	in.KeyDown(common.KeyW)
	for range 60 {
		s.Tick(dt)
	}

	p := c.Body().Position()
	assert.Greater(t, p[2], float32(0.5))
	assert.Less(t, p[1], float32(0), "falls toward the ground plane")

	x, y, z := c.Root().Position()
	assert.Equal(t, p, [3]float32{x, y, z})
	assert.Equal(t, "walk", c.Animator().Current())

	in.KeyUp(common.KeyW)
	s.Tick(dt)
	assert.Equal(t, "idle", c.Animator().Current())
}

func TestScene_CharacterStopsAfterKeyUp(t *testing.T) {
	in := input.NewState(nil)
	preset, err := level.Lookup(level.DefaultLevel)
	require.NoError(t, err)
	floor := preset.GroundHeight() + physics.NewBody().Collider().Bottom()
	c := NewCharacter(WithInput(in), WithSpawn(0, floor, 0))
	s := NewScene("main", WithCharacters(c))

	in.KeyDown(common.KeyW)
	for range 60 {
		s.Tick(dt)
	}
	require.True(t, c.Body().Grounded())
	require.Greater(t, c.Body().Position()[2], float32(0.5))

	in.KeyUp(common.KeyW)
	for range 180 {
		s.Tick(dt)
	}
	assert.Equal(t, "idle", c.Animator().Current())
	assert.True(t, c.Body().Sleeping())
	assert.Equal(t, [3]float32{}, c.Body().LinearVelocity())

	z := c.Body().Position()[2]
	for range 600 {
		s.Tick(dt)
	}
	assert.Equal(t, z, c.Body().Position()[2])
}

func TestScene_TickRunsEveryCharacter(t *testing.T) {
	in := input.NewState(nil)
	in.KeyDown(common.KeyLeft)

	chars := make([]Character, 6)
	for i := range chars {
		chars[i] = NewCharacter(WithInput(in))
	}
	s := NewScene("main", WithCharacters(chars...), WithTickWorkers(3))

	for range 10 {
		s.Tick(dt)
	}

	rot := controller.DefaultConfig().RotationSpeed
	for _, c := range chars {
		assert.InDelta(t, 10*rot, c.Controller().Orientation().ContainerYaw, 1e-5)
	}
}

func TestScene_LoadLevel(t *testing.T) {
	in := input.NewState(nil)
	c := NewCharacter(WithInput(in), WithSpawn(1, 2, 3))
	s := NewScene("main", WithCharacters(c))

	in.KeyDown(common.KeyA)
	for range 5 {
		s.Tick(dt)
	}
	require.NotZero(t, c.Controller().Orientation().ContainerYaw)
	in.KeyUp(common.KeyA)

	err := s.LoadLevel("nowhere")
	assert.ErrorIs(t, err, level.ErrUnknownLevel)
	assert.Equal(t, level.DefaultLevel, s.Level().Name)

	require.NoError(t, s.LoadLevel("medieval_fantasy_book"))
	assert.Equal(t, "medieval_fantasy_book", s.Level().Name)
	assert.Equal(t, float32(0), s.World().GroundHeight())
	assert.Equal(t, "medieval_fantasy_book", s.MapNode().Name())

	assert.Equal(t, [3]float32{1, 2, 3}, c.Body().Position())
	assert.Equal(t, [3]float32{}, c.Body().LinearVelocity())
	assert.Equal(t, controller.Orientation{}, c.Controller().Orientation())
	assert.Len(t, s.World().Bodies(), 1)
}

func TestScene_FollowAttachesRig(t *testing.T) {
	cam := camera.NewCamera()
	c := NewCharacter()
	s := NewScene("main", WithCamera(cam), WithCharacters(c))

	require.NoError(t, s.Follow(c.ID()))
	assert.Same(t, c.Rig(), cam.Controller())

	s.Tick(dt)
	s.UpdateCamera()
	assert.NotEqual(t, [16]float32{}, cam.ViewMatrix())
}

func TestScene_MapAnimatorFromAssetDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "models"), 0o755))
	model := `{"asset": {"version": "2.0"},
		"accessors": [{"count": 2, "type": "SCALAR", "min": [0], "max": [4]}],
		"animations": [{"name": "flags", "samplers": [{"input": 0}]}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models", "medieval_fantasy_book.glb"), []byte(model), 0o644))

	s := NewScene("main", WithAssetDir(dir))
	assert.Empty(t, s.MapAnimator().Clips(), "default level has no model on disk")

	require.NoError(t, s.LoadLevel("medieval_fantasy_book"))
	anim := s.MapAnimator()
	assert.Equal(t, "flags", anim.Current())
	assert.InDelta(t, 4, anim.Duration("flags"), 1e-6)

	for range 30 {
		s.Tick(0.1)
	}
	assert.InDelta(t, 3, anim.Time("flags"), 1e-4)
}
