package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	p, err := Lookup(DefaultLevel)
	require.NoError(t, err)
	assert.Equal(t, float32(3), p.Scale)
	assert.Equal(t, [3]float32{-6, -7, 0}, p.Position)
	assert.Equal(t, float32(-7), p.GroundHeight())
	assert.Equal(t, "models/castle_on_hills.glb", p.ModelPath())

	_, err = Lookup("dust_3")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{
		"animal_crossing_map",
		"castle_on_hills",
		"city_scene_tokyo",
		"de_dust_2_with_real_light",
		"medieval_fantasy_book",
	}, Names())
}

func TestPreset_Node(t *testing.T) {
	p, err := Lookup("city_scene_tokyo")
	require.NoError(t, err)

	n := p.Node()
	assert.Equal(t, "city_scene_tokyo", n.Name())
	sx, sy, sz := n.Scale()
	assert.Equal(t, [3]float32{0.72, 0.72, 0.72}, [3]float32{sx, sy, sz})
	assert.Equal(t, [3]float32{0, -1, -3.5}, n.WorldPosition())
}
