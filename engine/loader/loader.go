// Package loader reads animation clip metadata out of glTF/GLB model files.
package loader

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	ErrInvalidVersion   = errors.New("invalid glTF version: must be 2.0")
	ErrInvalidGLBMagic  = errors.New("invalid GLB magic number")
	ErrMissingJSONChunk = errors.New("GLB file missing JSON chunk")
)

// Clip describes one animation in a model file.
type Clip struct {
	// Name is the animation's name, or "animation_<index>" when the file leaves it unnamed.
	Name string

	// Duration is the last keyframe time across all samplers, in seconds.
	Duration float32
}

// ReadClips reads the animation clips of a .glb or .gltf file.
//
// Parameters:
//   - path: the model file
//
// Returns:
//   - []Clip: the clips in file order
//   - error: a read or parse failure
func ReadClips(path string) ([]Clip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	clips, err := ParseClips(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return clips, nil
}

// ParseClips reads the animation clips of an in-memory model. GLB is detected by its magic number;
// anything else is parsed as glTF JSON.
//
// Parameters:
//   - data: the file contents
//
// Returns:
//   - []Clip: the clips in file order
//   - error: a parse failure
func ParseClips(data []byte) ([]Clip, error) {
	jsonData := data
	if len(data) >= 4 && binary.LittleEndian.Uint32(data[:4]) == gltfGLBMagic {
		var err error
		if jsonData, err = glbJSONChunk(data); err != nil {
			return nil, err
		}
	}

	var doc gltfDocument
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse glTF JSON: %w", err)
	}
	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return nil, ErrInvalidVersion
	}

	clips := make([]Clip, 0, len(doc.Animations))
	for i, anim := range doc.Animations {
		var duration float32
		for _, s := range anim.Samplers {
			if s.Input < 0 || s.Input >= len(doc.Accessors) {
				return nil, fmt.Errorf("animation %d: sampler input %d out of range", i, s.Input)
			}
			if acc := doc.Accessors[s.Input]; len(acc.Max) > 0 {
				duration = max(duration, acc.Max[0])
			}
		}

		name := anim.Name
		if name == "" {
			name = fmt.Sprintf("animation_%d", i)
		}
		clips = append(clips, Clip{Name: name, Duration: duration})
	}
	return clips, nil
}

// glbJSONChunk returns the JSON chunk of a GLB container.
func glbJSONChunk(data []byte) ([]byte, error) {
	if len(data) < 12 {
		return nil, errors.New("GLB file too small")
	}
	r := bytes.NewReader(data)

	var header gltfGLBHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read GLB header: %w", err)
	}
	if header.Magic != gltfGLBMagic {
		return nil, ErrInvalidGLBMagic
	}
	if header.Version != gltfGLBVersion {
		return nil, fmt.Errorf("invalid GLB version %d: must be 2", header.Version)
	}

	for {
		var chunk gltfGLBChunkHeader
		if err := binary.Read(r, binary.LittleEndian, &chunk); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrMissingJSONChunk
			}
			return nil, fmt.Errorf("failed to read chunk header: %w", err)
		}

		chunkData := make([]byte, chunk.ChunkLength)
		if _, err := io.ReadFull(r, chunkData); err != nil {
			return nil, fmt.Errorf("failed to read chunk data: %w", err)
		}
		if chunk.ChunkType == gltfGLBChunkJSON {
			return chunkData, nil
		}
	}
}
