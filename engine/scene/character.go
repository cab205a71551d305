package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-locomotion/engine/animator"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/camera"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/controller"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/game_object"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/loader"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/physics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Rig offsets and model placement of a character, in the container's local frame.
var (
	LookAtAnchorOffset   = [3]float32{0, 0, 1.5}
	PositionAnchorOffset = [3]float32{0, 4, -4}
	ModelOffset          = [3]float32{0, -0.25, 0}
)

// ModelScale is the uniform scale applied to the character model node.
const ModelScale float32 = 0.18

type character struct {
	mu *sync.Mutex

	id     uuid.UUID
	name   string
	spawn  [3]float32
	logger *zap.Logger

	root           game_object.GameObject
	container      game_object.GameObject
	model          game_object.GameObject
	lookAtAnchor   game_object.GameObject
	positionAnchor game_object.GameObject

	body     physics.Body
	rig      camera.FollowRig
	animator animator.StateAnimator

	input        controller.InputSource
	viewport     controller.ViewportSource
	tunables     *controller.Tunables
	followFactor float32
	clips        []loader.Clip

	ctrl controller.Controller
}

// Character is a player-controlled avatar: a rigid body, the node tree the controller
// turns, a follow-camera rig and an animation player.
//
// The node tree is root → container → {model, look-at anchor, position anchor}. The
// root tracks the body, the container carries the turning yaw and the model carries
// the facing yaw.
type Character interface {
	// ID returns the character's unique identifier.
	ID() uuid.UUID

	// Name returns the character's display name.
	Name() string

	// Spawn returns the position the body is placed at on (re)spawn.
	Spawn() [3]float32

	// Root returns the node that follows the rigid body.
	Root() game_object.GameObject

	// Container returns the turning node.
	Container() game_object.GameObject

	// Model returns the node that faces the direction of travel.
	Model() game_object.GameObject

	// LookAtAnchor returns the anchor the camera looks at.
	LookAtAnchor() game_object.GameObject

	// PositionAnchor returns the anchor the camera moves toward.
	PositionAnchor() game_object.GameObject

	// Body returns the rigid body.
	Body() physics.Body

	// Rig returns the follow-camera rig driven by this character.
	Rig() camera.FollowRig

	// Animator returns the animation player.
	Animator() animator.StateAnimator

	// Controller returns the current controller.
	Controller() controller.Controller

	// Tick runs the controller and forwards the selected animation state to the player.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//
	// Returns:
	//   - controller.AnimationState: the selected state
	Tick(dt float32) controller.AnimationState

	// Respawn places the body back at the spawn point and starts a fresh controller,
	// discarding yaw targets and smoothed yaws.
	Respawn()
}

var _ Character = &character{}

// NewCharacter builds a character with its node tree, body, rig, animator and controller.
// Without options it spawns at the origin with default tunables, no input and an
// animator holding idle, walk and run clips.
//
// Parameters:
//   - options: functional options to configure the character
//
// Returns:
//   - Character: the newly created character
func NewCharacter(options ...CharacterBuilderOption) Character {
	c := &character{
		mu:           &sync.Mutex{},
		id:           uuid.New(),
		name:         "character",
		logger:       zap.NewNop(),
		followFactor: camera.DefaultFollowFactor,
	}
	for _, option := range options {
		option(c)
	}
	if c.tunables == nil {
		c.tunables = controller.NewTunables(controller.DefaultConfig())
	}
	if c.animator == nil {
		c.animator = c.defaultAnimator()
	}
	c.logger = c.logger.With(zap.String("character", c.id.String()))

	c.root = game_object.NewGameObject(
		game_object.WithName(c.name),
		game_object.WithPosition(c.spawn[0], c.spawn[1], c.spawn[2]),
	)
	c.container = game_object.NewGameObject(
		game_object.WithName(c.name+"/container"),
		game_object.WithParent(c.root),
	)
	c.model = game_object.NewGameObject(
		game_object.WithName(c.name+"/model"),
		game_object.WithPosition(ModelOffset[0], ModelOffset[1], ModelOffset[2]),
		game_object.WithScale(ModelScale, ModelScale, ModelScale),
		game_object.WithParent(c.container),
	)
	c.lookAtAnchor = game_object.NewGameObject(
		game_object.WithName(c.name+"/camera_target"),
		game_object.WithPosition(LookAtAnchorOffset[0], LookAtAnchorOffset[1], LookAtAnchorOffset[2]),
		game_object.WithParent(c.container),
	)
	c.positionAnchor = game_object.NewGameObject(
		game_object.WithName(c.name+"/camera_position"),
		game_object.WithPosition(PositionAnchorOffset[0], PositionAnchorOffset[1], PositionAnchorOffset[2]),
		game_object.WithParent(c.container),
	)

	c.body = physics.NewBody(physics.WithPosition(c.spawn[0], c.spawn[1], c.spawn[2]))
	c.rig = camera.NewFollowRig(
		camera.WithAnchors(c.positionAnchor, c.lookAtAnchor),
		camera.WithFollowFactor(c.followFactor),
	)
	c.ctrl = c.newController()
	return c
}

// defaultAnimator registers the three locomotion clips. Durations come from WithClips
// when the model carries a clip of the same name, otherwise one second.
func (c *character) defaultAnimator() animator.StateAnimator {
	durations := make(map[string]float32, len(c.clips))
	for _, clip := range c.clips {
		durations[clip.Name] = clip.Duration
	}

	options := make([]animator.StateAnimatorBuilderOption, 0, 5)
	for _, state := range []controller.AnimationState{controller.AnimationIdle, controller.AnimationWalk, controller.AnimationRun} {
		d, ok := durations[state.String()]
		if !ok || d <= 0 {
			d = 1
		}
		options = append(options, animator.WithClip(state.String(), d, true))
	}
	options = append(options,
		animator.WithInitialClip(controller.AnimationIdle.String()),
		animator.WithLogger(c.logger),
	)
	return animator.NewStateAnimator(options...)
}

func (c *character) newController() controller.Controller {
	return controller.NewController(
		controller.WithInput(c.input),
		controller.WithViewport(c.viewport),
		controller.WithTunables(c.tunables),
		controller.WithBody(c.body),
		controller.WithRoot(c.root),
		controller.WithContainer(c.container),
		controller.WithCharacter(c.model),
		controller.WithFollowRig(c.rig),
		controller.WithLogger(c.logger),
	)
}

func (c *character) ID() uuid.UUID                          { return c.id }
func (c *character) Name() string                           { return c.name }
func (c *character) Spawn() [3]float32                      { return c.spawn }
func (c *character) Root() game_object.GameObject           { return c.root }
func (c *character) Container() game_object.GameObject      { return c.container }
func (c *character) Model() game_object.GameObject          { return c.model }
func (c *character) LookAtAnchor() game_object.GameObject   { return c.lookAtAnchor }
func (c *character) PositionAnchor() game_object.GameObject { return c.positionAnchor }
func (c *character) Body() physics.Body                     { return c.body }
func (c *character) Rig() camera.FollowRig                  { return c.rig }
func (c *character) Animator() animator.StateAnimator       { return c.animator }

func (c *character) Controller() controller.Controller {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctrl
}

func (c *character) Tick(dt float32) controller.AnimationState {
	state := c.Controller().Tick(dt)
	c.animator.Play(state.String())
	return state
}

func (c *character) Respawn() {
	c.body.SetPosition(c.spawn)
	c.root.SetPosition(c.spawn[0], c.spawn[1], c.spawn[2])
	c.container.SetYaw(0)
	c.model.SetYaw(0)

	c.mu.Lock()
	c.ctrl = c.newController()
	c.mu.Unlock()

	c.animator.Play(controller.AnimationIdle.String())
	c.logger.Debug("character respawned", zap.Float32s("spawn", c.spawn[:]))
}
