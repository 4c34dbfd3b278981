package core

// GPU resource handles. Backends return their own concrete types; callers
// treat them as opaque and compare them by identity.
type (
	Pipeline interface{ IsPipeline() }
	Texture  interface{ IsTexture() }
	Mesh     interface{ IsMesh() }
)

type AttribType int

const (
	AttribFloat32 AttribType = iota
)

// VertexAttrib describes one shader input within an interleaved buffer.
type VertexAttrib struct {
	Location int
	Size     int // component count
	Type     AttribType
	Offset   int // bytes from vertex start
}

type VertexLayout struct {
	Stride     int // bytes per vertex
	Attributes []VertexAttrib
}

type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool // standard alpha blending
}

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
)

// TextureDesc filters/wraps are "nearest"/"linear" and "clamp"/"repeat".
type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Pixels        []byte // len = W*H*4 for RGBA8; nil allocates uninitialized
	MinFilter     string
	MagFilter     string
	WrapU, WrapV  string
}

// MeshDesc creates an indexed mesh sized for its initial data; UpdateMesh
// may later refill any prefix of it.
type MeshDesc struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
}

// DrawCmd is one state-complete draw: pipeline, mesh, uniform values and
// sampler bindings. Supported uniform types: float32, int32, [2]float32,
// [4]float32, [16]float32.
type DrawCmd struct {
	Pipe     Pipeline
	Mesh     Mesh
	Uniforms map[string]any
	Samplers map[string]Texture
}
