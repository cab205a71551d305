package loader

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const characterJSON = `{
  "asset": {"version": "2.0"},
  "accessors": [
    {"count": 10, "type": "SCALAR", "min": [0], "max": [1.5]},
    {"count": 10, "type": "SCALAR", "min": [0], "max": [2.25]},
    {"count": 4,  "type": "SCALAR", "min": [0], "max": [0.8]}
  ],
  "animations": [
    {"name": "idle", "samplers": [{"input": 0}, {"input": 1}]},
    {"name": "walk", "samplers": [{"input": 2}]},
    {"samplers": [{"input": 0}]}
  ]
}`

// glb wraps a JSON payload in a GLB container with a trailing BIN chunk.
func glb(t *testing.T, payload string) []byte {
	t.Helper()
	for len(payload)%4 != 0 {
		payload += " "
	}
	bin := []byte{0, 0, 0, 0}

	var buf bytes.Buffer
	total := uint32(12 + 8 + len(payload) + 8 + len(bin))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBHeader{Magic: gltfGLBMagic, Version: 2, Length: total}))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(payload)), ChunkType: gltfGLBChunkJSON}))
	buf.WriteString(payload)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(bin)), ChunkType: 0x004E4942}))
	buf.Write(bin)
	return buf.Bytes()
}

func TestParseClips_JSON(t *testing.T) {
	clips, err := ParseClips([]byte(characterJSON))
	require.NoError(t, err)

	assert.Equal(t, []Clip{
		{Name: "idle", Duration: 2.25},
		{Name: "walk", Duration: 0.8},
		{Name: "animation_2", Duration: 1.5},
	}, clips)
}

func TestParseClips_GLB(t *testing.T) {
	clips, err := ParseClips(glb(t, characterJSON))
	require.NoError(t, err)
	require.Len(t, clips, 3)
	assert.Equal(t, "idle", clips[0].Name)
}

func TestParseClips_Errors(t *testing.T) {
	_, err := ParseClips([]byte(`{"asset": {"version": "1.0"}}`))
	assert.ErrorIs(t, err, ErrInvalidVersion)

	_, err = ParseClips([]byte(`{"asset": {"version": "2.0"}, "animations": [{"samplers": [{"input": 3}]}]}`))
	assert.Error(t, err)

	_, err = ParseClips([]byte(`not json`))
	assert.Error(t, err)

	_, err = ParseClips(glb(t, characterJSON)[:12])
	assert.ErrorIs(t, err, ErrMissingJSONChunk)
}

func TestReadClips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "character.glb")
	require.NoError(t, os.WriteFile(path, glb(t, characterJSON), 0o644))

	clips, err := ReadClips(path)
	require.NoError(t, err)
	assert.Len(t, clips, 3)

	_, err = ReadClips(filepath.Join(t.TempDir(), "missing.glb"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
