package loader

// gltfDocument is the subset of a glTF 2.0 document needed to enumerate animation clips.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-gltf
type gltfDocument struct {
	Asset      gltfAsset       `json:"asset"`
	Accessors  []gltfAccessor  `json:"accessors,omitempty"`
	Animations []gltfAnimation `json:"animations,omitempty"`
}

type gltfAsset struct {
	Version string `json:"version"`
}

// gltfAccessor carries the bounds glTF requires on animation sampler inputs.
type gltfAccessor struct {
	Count int       `json:"count"`
	Type  string    `json:"type"`
	Min   []float32 `json:"min,omitempty"`
	Max   []float32 `json:"max,omitempty"`
}

type gltfAnimation struct {
	Name     string            `json:"name,omitempty"`
	Samplers []gltfAnimSampler `json:"samplers"`
}

// gltfAnimSampler's Input indexes the accessor of keyframe times in seconds.
type gltfAnimSampler struct {
	Input int `json:"input"`
}

// gltfGLBHeader is the header of a GLB file (12 bytes).
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
type gltfGLBHeader struct {
	Magic   uint32
	Version uint32
	Length  uint32
}

// gltfGLBChunkHeader is the header of a GLB chunk (8 bytes).
type gltfGLBChunkHeader struct {
	ChunkLength uint32
	ChunkType   uint32
}

const (
	gltfGLBMagic     = 0x46546C67 // "glTF"
	gltfGLBVersion   = 2
	gltfGLBChunkJSON = 0x4E4F534A // "JSON"
)
