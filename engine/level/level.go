// Package level holds the map presets a scene can load. Map geometry decoding is
// handled elsewhere; a preset carries only the placement of the map model and the
// height the physics ground plane sits at.
package level

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-locomotion/engine/game_object"
)

// ErrUnknownLevel is returned when a level name has no preset.
var ErrUnknownLevel = errors.New("unknown level")

// DefaultLevel is the level loaded when none is configured.
const DefaultLevel = "castle_on_hills"

// Preset places a map model in the world.
type Preset struct {
	Name     string
	Scale    float32
	Position [3]float32
}

// ModelPath returns the asset path of the preset's map model.
func (p Preset) ModelPath() string {
	return "models/" + p.Name + ".glb"
}

// GroundHeight returns the y of the physics ground plane for this map.
func (p Preset) GroundHeight() float32 {
	return p.Position[1]
}

// Node builds a scene node carrying the preset's position and uniform scale.
//
// Returns:
//   - game_object.GameObject: the map node
func (p Preset) Node() game_object.GameObject {
	return game_object.NewGameObject(
		game_object.WithName(p.Name),
		game_object.WithPosition(p.Position[0], p.Position[1], p.Position[2]),
		game_object.WithScale(p.Scale, p.Scale, p.Scale),
	)
}

var presets = map[string]Preset{
	"castle_on_hills": {
		Name:     "castle_on_hills",
		Scale:    3,
		Position: [3]float32{-6, -7, 0},
	},
	"animal_crossing_map": {
		Name:     "animal_crossing_map",
		Scale:    20,
		Position: [3]float32{-15, -1, 10},
	},
	"city_scene_tokyo": {
		Name:     "city_scene_tokyo",
		Scale:    0.72,
		Position: [3]float32{0, -1, -3.5},
	},
	"de_dust_2_with_real_light": {
		Name:     "de_dust_2_with_real_light",
		Scale:    0.3,
		Position: [3]float32{-5, -3, 13},
	},
	"medieval_fantasy_book": {
		Name:     "medieval_fantasy_book",
		Scale:    0.4,
		Position: [3]float32{-4, 0, -6},
	},
}

// Lookup returns the preset with the given name.
//
// Parameters:
//   - name: the level name
//
// Returns:
//   - Preset: the preset
//   - error: wraps ErrUnknownLevel if no preset has that name
func Lookup(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("level %q: %w", name, ErrUnknownLevel)
	}
	return p, nil
}

// Names returns every preset name in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
