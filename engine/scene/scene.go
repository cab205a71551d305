package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/animator"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/camera"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/game_object"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/level"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/loader"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/physics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrCharacterNotFound is returned when an operation names a character the scene does not hold.
var ErrCharacterNotFound = errors.New("character not found")

// Scene holds a physics world, the characters moving in it, the loaded level and the
// camera that follows one of the characters.
// Scenes can be hot-swapped via the Active flag. Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is ticked and rendered.
	Active() bool

	// SetActive sets whether this scene is ticked and rendered.
	SetActive(active bool)

	// Camera returns the scene's camera, or nil.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// World returns the physics world.
	World() physics.World

	// Level returns the loaded level preset.
	Level() level.Preset

	// MapNode returns the scene node placing the level's map model.
	MapNode() game_object.GameObject

	// MapAnimator returns the animator of the level's map model. It loops the model's
	// first clip when the scene has an asset directory and the model carries clips.
	MapAnimator() animator.StateAnimator

	// LoadLevel switches to the named level: the physics world is reset, the ground
	// plane moved to the level's height and every character respawned.
	//
	// Parameters:
	//   - name: the level name
	//
	// Returns:
	//   - error: wraps level.ErrUnknownLevel if there is no such level; the current level is kept
	LoadLevel(name string) error

	// AddCharacter adds a character and registers its body with the world.
	// Adding a character whose ID is already present is a no-op.
	//
	// Parameters:
	//   - c: the character to add
	AddCharacter(c Character)

	// RemoveCharacter removes a character and its body.
	//
	// Parameters:
	//   - id: the character's ID
	//
	// Returns:
	//   - error: wraps ErrCharacterNotFound if the ID is unknown
	RemoveCharacter(id uuid.UUID) error

	// Character retrieves a character by ID. Returns nil if not found.
	//
	// Parameters:
	//   - id: the character's ID
	//
	// Returns:
	//   - Character: the character or nil
	Character(id uuid.UUID) Character

	// Characters returns the characters in insertion order.
	Characters() []Character

	// Count returns the number of characters.
	Count() int

	// Follow points the scene camera at a character's rig. The camera keeps its current
	// position and glides toward the rig's anchors.
	//
	// Parameters:
	//   - id: the character's ID
	//
	// Returns:
	//   - error: wraps ErrCharacterNotFound if the ID is unknown
	Follow(id uuid.UUID) error

	// Tick advances the scene by dt: the physics world steps first, then every
	// character's controller runs in parallel on the tick pool, then animators advance.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Tick(dt float32)

	// UpdateCamera recomputes the camera matrices from its controller. Called from the render loop.
	UpdateCamera()
}

type scene struct {
	mu     *sync.RWMutex
	tickMu *sync.Mutex

	name   string
	active bool
	logger *zap.Logger

	cam     camera.Camera
	world   physics.World
	preset  level.Preset
	mapNode game_object.GameObject
	mapAnim animator.StateAnimator

	assetDir string

	characters map[uuid.UUID]Character
	order      []uuid.UUID

	// tickPool runs per-character controller ticks. Workers persist across ticks.
	tickPool    worker.DynamicWorkerPool
	tickWorkers int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a Scene on the default level with a fresh physics world.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	preset, err := level.Lookup(level.DefaultLevel)
	if err != nil {
		panic(fmt.Sprintf("scene: default level missing: %v", err))
	}

	s := &scene{
		mu:          &sync.RWMutex{},
		tickMu:      &sync.Mutex{},
		name:        name,
		logger:      zap.NewNop(),
		preset:      preset,
		characters:  make(map[uuid.UUID]Character),
		tickWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	if s.world == nil {
		s.world = physics.NewWorld()
	}
	s.world.SetGroundHeight(s.preset.GroundHeight())
	s.mapNode = s.preset.Node()
	s.mapAnim = s.mapAnimator(s.preset)
	for _, id := range s.order {
		s.world.Add(s.characters[id].Body())
	}

	// Initialize the tick pool after options so WithTickWorkers can override the default.
	s.tickPool = worker.NewDynamicWorkerPool(s.tickWorkers, 256, 1*time.Second)

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) World() physics.World {
	return s.world
}

func (s *scene) Level() level.Preset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preset
}

func (s *scene) MapNode() game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mapNode
}

func (s *scene) MapAnimator() animator.StateAnimator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mapAnim
}

// mapAnimator reads the preset's model clips from the asset directory and loops the first one.
// A missing or unreadable model leaves the map unanimated.
func (s *scene) mapAnimator(preset level.Preset) animator.StateAnimator {
	options := []animator.StateAnimatorBuilderOption{animator.WithLogger(s.logger)}
	if s.assetDir == "" {
		return animator.NewStateAnimator(options...)
	}

	path := filepath.Join(s.assetDir, preset.ModelPath())
	clips, err := loader.ReadClips(path)
	if err != nil {
		s.logger.Warn("map clips unavailable", zap.String("level", preset.Name), zap.Error(err))
		return animator.NewStateAnimator(options...)
	}
	for _, clip := range clips {
		options = append(options, animator.WithClip(clip.Name, clip.Duration, true))
	}
	if len(clips) > 0 {
		options = append(options, animator.WithInitialClip(clips[0].Name))
	}
	return animator.NewStateAnimator(options...)
}

func (s *scene) LoadLevel(name string) error {
	preset, err := level.Lookup(name)
	if err != nil {
		return fmt.Errorf("load level: %w", err)
	}

	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	mapAnim := s.mapAnimator(preset)

	s.mu.Lock()
	s.preset = preset
	s.mapNode = preset.Node()
	s.mapAnim = mapAnim
	chars := s.orderedLocked()
	s.mu.Unlock()

	s.world.Reset()
	s.world.SetGroundHeight(preset.GroundHeight())
	for _, c := range chars {
		c.Respawn()
		s.world.Add(c.Body())
	}

	s.logger.Info("level loaded",
		zap.String("level", preset.Name),
		zap.String("model", preset.ModelPath()),
		zap.Float32("ground", preset.GroundHeight()),
		zap.Int("characters", len(chars)),
	)
	return nil
}

func (s *scene) AddCharacter(c Character) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.characters[c.ID()]; ok {
		return
	}
	s.characters[c.ID()] = c
	s.order = append(s.order, c.ID())
	s.world.Add(c.Body())
	s.logger.Debug("character added", zap.String("id", c.ID().String()), zap.String("name", c.Name()))
}

func (s *scene) RemoveCharacter(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.characters[id]
	if !ok {
		return fmt.Errorf("remove %s: %w", id, ErrCharacterNotFound)
	}
	delete(s.characters, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.world.Remove(c.Body())
	return nil
}

func (s *scene) Character(id uuid.UUID) Character {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.characters[id]
}

func (s *scene) Characters() []Character {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orderedLocked()
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.characters)
}

func (s *scene) Follow(id uuid.UUID) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.characters[id]
	if !ok {
		return fmt.Errorf("follow %s: %w", id, ErrCharacterNotFound)
	}
	if s.cam != nil {
		s.cam.SetController(c.Rig())
	}
	return nil
}

func (s *scene) Tick(dt float32) {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	s.world.Step(dt)

	chars := s.Characters()

	// Per-character controller ticks touch only that character's state, so they run
	// in parallel. A WaitGroup is the per-tick barrier.
	var wg sync.WaitGroup
	for i, c := range chars {
		wg.Add(1)
		s.tickPool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				return c.Tick(dt), nil
			},
		})
	}
	wg.Wait()

	for _, c := range chars {
		c.Animator().Update(dt)
	}
	s.MapAnimator().Update(dt)
}

func (s *scene) UpdateCamera() {
	if cam := s.Camera(); cam != nil {
		cam.Update()
	}
}

// orderedLocked returns the characters in insertion order. Caller must hold the mutex.
func (s *scene) orderedLocked() []Character {
	out := make([]Character, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.characters[id])
	}
	return out
}
