package controller

import (
	"math"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-locomotion/common"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/camera"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/game_object"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/input"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedViewport common.Viewport

func (v fixedViewport) Viewport() common.Viewport { return common.Viewport(v) }

// unitViewport maps pointer coordinates 1:1 onto drag offsets.
var unitViewport = fixedViewport{Width: 2, Height: 2}

func newTestController(t *testing.T, opts ...ControllerBuilderOption) (Controller, *input.State, physics.Body) {
	t.Helper()
	in := input.NewState(nil)
	body := physics.NewBody()
	base := []ControllerBuilderOption{WithInput(in), WithViewport(unitViewport), WithBody(body)}
	return NewController(append(base, opts...)...), in, body
}

func TestController_ForwardWalk(t *testing.T) {
	c, in, body := newTestController(t)
	in.KeyDown(common.KeyW)

	state := c.Tick(1.0 / 60)

	assert.Equal(t, AnimationWalk, state)
	assert.Equal(t, input.MovementIntent{X: 0, Z: 1}, c.LastSample().Intent)
	v := body.LinearVelocity()
	assert.InDelta(t, 0, v[0], 1e-6)
	assert.InDelta(t, 0.8, v[2], 1e-6)
	assert.Equal(t, float32(0), c.Orientation().BodyYaw)
	assert.Equal(t, float32(0), c.Orientation().ContainerYaw)
}

func TestController_IdleKeepsVelocityAndSmooths(t *testing.T) {
	c, in, body := newTestController(t)

	in.KeyDown(common.KeyA)
	require.Equal(t, AnimationWalk, c.Tick(1.0/60))
	in.KeyUp(common.KeyA)

	body.SetLinearVelocity([3]float32{0.3, -1, 0.2}, false)
	before := c.Orientation()

	assert.Equal(t, AnimationIdle, c.Tick(1.0/60))
	assert.Equal(t, [3]float32{0.3, -1, 0.2}, body.LinearVelocity())

	after := c.Orientation()
	assert.InDelta(t, math.Pi/2, after.BodyYaw, 1e-6, "facing target kept while idle")
	assert.Greater(t, after.BodyYawSmoothed, before.BodyYawSmoothed)
	assert.Greater(t, after.ContainerYawSmoothed, before.ContainerYawSmoothed)
}

func TestController_IdleLetsBodySleep(t *testing.T) {
	c, in, body := newTestController(t)
	w := physics.NewWorld(physics.WithSleep(0.05, 0))
	w.Add(body)
	w.Step(1.0 / 60)
	require.True(t, body.Sleeping())

	assert.Equal(t, AnimationIdle, c.Tick(1.0/60))
	assert.True(t, body.Sleeping(), "idle write-back does not wake the body")

	in.KeyDown(common.KeyW)
	assert.Equal(t, AnimationWalk, c.Tick(1.0/60))
	assert.False(t, body.Sleeping())
	assert.InDelta(t, 0.8, body.LinearVelocity()[2], 1e-6)
}

func TestController_DragForcesRun(t *testing.T) {
	c, in, body := newTestController(t)
	in.SetInteracting(true)
	in.SetPointer(common.Pointer{X: -0.6})

	assert.Equal(t, AnimationRun, c.Tick(1.0/60))
	sample := c.LastSample()
	assert.InDelta(t, 0.6, sample.Intent.X, 1e-6)
	assert.Equal(t, input.SpeedRun, sample.Tier)

	v := body.LinearVelocity()
	assert.InDelta(t, 1.6, math.Hypot(float64(v[0]), float64(v[2])), 1e-5)
}

func TestController_LeftOverridesDrag(t *testing.T) {
	c, in, body := newTestController(t)
	in.SetInteracting(true)
	in.SetPointer(common.Pointer{X: -0.6})
	in.KeyDown(common.KeyLeft)

	c.Tick(1.0 / 60)

	rot := DefaultConfig().RotationSpeed
	o := c.Orientation()
	assert.InDelta(t, rot, o.ContainerYaw, 1e-6)

	heading := float64(rot) + math.Atan2(1, input.DragForwardBias)
	v := body.LinearVelocity()
	assert.InDelta(t, math.Sin(heading)*1.6, v[0], 1e-5)
	assert.InDelta(t, math.Cos(heading)*1.6, v[2], 1e-5)
}

func TestController_TurningAccumulates(t *testing.T) {
	c, in, _ := newTestController(t)
	in.KeyDown(common.KeyD)

	for range 10 {
		c.Tick(1.0 / 60)
	}

	rot := DefaultConfig().RotationSpeed
	assert.InDelta(t, -10*rot, c.Orientation().ContainerYaw, 1e-5)
}

func TestController_MissingBodySkipsPhysics(t *testing.T) {
	in := input.NewState(nil)
	container := game_object.NewGameObject()
	c := NewController(WithInput(in), WithContainer(container))
	in.KeyDown(common.KeyA)

	assert.NotPanics(t, func() { c.Tick(1.0 / 60) })
	assert.Equal(t, AnimationIdle, c.Animation())
	assert.Equal(t, float32(0), c.Orientation().ContainerYaw)

	body := physics.NewBody()
	c.SetBody(body)
	assert.Equal(t, AnimationWalk, c.Tick(1.0/60))
	assert.NotEqual(t, float32(0), c.Orientation().ContainerYaw)
	_, ry, _ := container.Rotation()
	assert.Equal(t, c.Orientation().ContainerYawSmoothed, ry)
}

func TestController_NoInputNoViewport(t *testing.T) {
	c := NewController()
	assert.NotPanics(t, func() { c.Tick(1.0 / 60) })
	assert.NotNil(t, c.Tunables())
	assert.Nil(t, c.Body())
	assert.Nil(t, c.Rig())
}

func TestController_DrivesNodesAndRig(t *testing.T) {
	root := game_object.NewGameObject(game_object.WithName("root"))
	container := game_object.NewGameObject(game_object.WithName("container"), game_object.WithParent(root))
	character := game_object.NewGameObject(game_object.WithName("character"), game_object.WithParent(container))
	lookAt := game_object.NewGameObject(game_object.WithPosition(0, 0, 1.5), game_object.WithParent(container))
	anchor := game_object.NewGameObject(game_object.WithPosition(0, 4, -4), game_object.WithParent(container))
	rig := camera.NewFollowRig(camera.WithAnchors(anchor, lookAt))

	body := physics.NewBody(physics.WithPosition(1, 0, 2))
	in := input.NewState(nil)
	c := NewController(
		WithInput(in),
		WithBody(body),
		WithRoot(root),
		WithContainer(container),
		WithCharacter(character),
		WithFollowRig(rig),
	)
	in.KeyDown(common.KeyA)

	c.Tick(1.0 / 60)

	x, y, z := root.Position()
	assert.Equal(t, [3]float32{1, 0, 2}, [3]float32{x, y, z})

	_, bodyYaw, _ := character.Rotation()
	assert.InDelta(t, 0.1*math.Pi/2, bodyYaw, 1e-5)

	// rig starts at (3,3,3) and closes 10% of the gap to the anchor
	want := common.Lerp3([3]float32{3, 3, 3}, anchor.WorldPosition(), camera.DefaultFollowFactor)
	px, py, pz := rig.Position()
	assert.InDeltaSlice(t, want[:], []float32{px, py, pz}, 1e-5)
	tx, _, tz := rig.Target()
	lw := lookAt.WorldPosition()
	assert.InDelta(t, lw[0]*0.1, tx, 1e-5)
	assert.InDelta(t, lw[2]*0.1, tz, 1e-5)
}

func TestController_SharedTunables(t *testing.T) {
	shared := NewTunables(DefaultConfig())
	c, in, body := newTestController(t, WithTunables(shared))
	in.KeyDown(common.KeyW)

	_, err := shared.Update(func(cfg *Config) { cfg.WalkSpeed = 2 })
	require.NoError(t, err)
	c.Tick(1.0 / 60)

	assert.InDelta(t, 2, body.LinearVelocity()[2], 1e-6)
}

func TestController_IndependentInstancesConcurrently(t *testing.T) {
	var wg sync.WaitGroup
	controllers := make([]Controller, 8)
	for i := range controllers {
		c, in, _ := newTestController(t)
		if i%2 == 0 {
			in.KeyDown(common.KeyA)
		}
		controllers[i] = c
	}

	for _, c := range controllers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c.Tick(1.0 / 60)
			}
		}()
	}
	wg.Wait()

	rot := DefaultConfig().RotationSpeed
	for i, c := range controllers {
		if i%2 == 0 {
			assert.InDelta(t, 100*rot, c.Orientation().ContainerYaw, 1e-4)
		} else {
			assert.Equal(t, float32(0), c.Orientation().ContainerYaw)
		}
	}
}
