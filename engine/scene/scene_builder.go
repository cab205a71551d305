package scene

import (
	"github.com/Carmen-Shannon/oxy-locomotion/engine/camera"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/level"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/physics"
	"go.uber.org/zap"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithCamera sets the scene camera.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithWorld replaces the default physics world.
//
// Parameters:
//   - w: the world
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithWorld(w physics.World) SceneBuilderOption {
	return func(s *scene) {
		s.world = w
	}
}

// WithLevel sets the level the scene starts on.
//
// Parameters:
//   - p: the level preset
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLevel(p level.Preset) SceneBuilderOption {
	return func(s *scene) {
		s.preset = p
	}
}

// WithCharacters adds initial characters to the scene.
// Their bodies are registered with the world once it exists.
//
// Parameters:
//   - characters: the characters to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCharacters(characters ...Character) SceneBuilderOption {
	return func(s *scene) {
		for _, c := range characters {
			if _, ok := s.characters[c.ID()]; ok {
				continue
			}
			s.characters[c.ID()] = c
			s.order = append(s.order, c.ID())
		}
	}
}

// WithAssetDir sets the directory level models are read from, relative to which
// level.Preset.ModelPath resolves. Without it maps carry no animation.
//
// Parameters:
//   - dir: the asset root
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAssetDir(dir string) SceneBuilderOption {
	return func(s *scene) {
		s.assetDir = dir
	}
}

// WithTickWorkers sets the number of worker goroutines that run character controllers
// in parallel. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithTickWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		s.tickWorkers = max(n, 1)
	}
}

// WithLogger sets the scene logger.
func WithLogger(logger *zap.Logger) SceneBuilderOption {
	return func(s *scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}
