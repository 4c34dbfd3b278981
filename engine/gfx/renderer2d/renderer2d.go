// Package renderer2d batches the canvas layer's drawing into textured quads:
// object fills, outlines, grid lines, selection chrome and glyph quads all
// share one vertex stream and flush in as few draw calls as the texture
// slots allow.
package renderer2d

import (
	"math"
	"strconv"

	"github.com/hubastard/blueprint/engine/colors"
	"github.com/hubastard/blueprint/engine/core"
)

// Textures per batch; 16 sampler units is the common GL 3.3 floor.
const maxTexSlots = 16

// Vertex: pos2 + color4 + uv2 + texIndex1 => 9 floats.
const vStride = 9
const vertsPerQuad = 4
const indsPerQuad = 6

var quadVertexLayout = core.VertexLayout{
	Stride: vStride * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},     // pos
		{Location: 1, Size: 4, Type: core.AttribFloat32, Offset: 2 * 4}, // color
		{Location: 2, Size: 2, Type: core.AttribFloat32, Offset: 6 * 4}, // uv
		{Location: 3, Size: 1, Type: core.AttribFloat32, Offset: 8 * 4}, // texIndex
	},
}

// Statistics counts one scene's submissions, for the debug overlay.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
}

// TotalVertexCount reports vertices submitted this scene.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }

// Renderer2D accumulates quads between BeginScene and EndScene. A scene here
// is one view pass: the canvas issues a world-space pass with the camera VP,
// then the chrome layers issue screen-space passes with ScreenVP.
type Renderer2D struct {
	r      core.Renderer
	pipe   core.Pipeline
	white  core.Texture // 1x1 white, slot 0: solid fills sample it
	texArr [maxTexSlots]core.Texture
	texCnt int

	verts     []float32
	inds      []uint32
	quadCount int
	maxQuads  int

	mesh     core.Mesh
	samplers map[string]core.Texture
	uniforms map[string]any
	texNames [maxTexSlots]string

	vp    [16]float32
	stats Statistics
}

// New compiles the quad pipeline and allocates one reusable mesh sized for
// the largest batch.
func New(r core.Renderer, vertSrc, fragSrc string, maxQuads int) (*Renderer2D, error) {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	pipe, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   vertSrc,
		FragmentSource: fragSrc,
		DepthTest:      false,
		Blend:          true,
	})
	if err != nil {
		return nil, err
	}

	white, err := r.CreateTexture(core.TextureDesc{
		Width: 1, Height: 1,
		Format:    core.TextureRGBA8,
		Pixels:    []byte{255, 255, 255, 255},
		MinFilter: "nearest", MagFilter: "nearest",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		return nil, err
	}

	rd := &Renderer2D{
		r: r, pipe: pipe, white: white, maxQuads: maxQuads,
		verts: make([]float32, 0, maxQuads*vertsPerQuad*vStride),
		inds:  make([]uint32, 0, maxQuads*indsPerQuad),
	}

	mesh, err := r.CreateMesh(core.MeshDesc{
		Vertices: make([]float32, maxQuads*vertsPerQuad*vStride),
		Indices:  make([]uint32, maxQuads*indsPerQuad),
		Layout:   quadVertexLayout,
	})
	if err != nil {
		return nil, err
	}
	rd.mesh = mesh

	rd.samplers = make(map[string]core.Texture, maxTexSlots)
	rd.uniforms = make(map[string]any, 1)
	for i := 0; i < maxTexSlots; i++ {
		rd.texNames[i] = "uTex[" + strconv.Itoa(i) + "]"
	}

	return rd, nil
}

// BeginScene starts a pass under the given view-projection and zeroes the
// statistics, so Stats after EndScene covers exactly this pass.
func (rd *Renderer2D) BeginScene(vp [16]float32) {
	rd.vp = vp
	rd.stats = Statistics{}
	rd.resetBatch()
}

func (rd *Renderer2D) EndScene() { rd.flush() }

// Stats returns the counters of the pass in progress (or just ended).
func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// DrawQuad draws a solid quad centered on (x,y). Rotation is about the
// center; DrawQuadAnchored handles the planner's top-left-pivot objects.
func (rd *Renderer2D) DrawQuad(x, y, w, h float32, color colors.Color, rotationRad float32) {
	rd.reserve()
	rd.pushQuad(x, y, w, h, color, rotationRad, rd.slotFor(rd.white), 0, 0, 1, 1)
}

// DrawTexturedQuadUV draws a tinted sub-rect of a texture; the glyph path
// uses it to cut quads out of the font atlas.
func (rd *Renderer2D) DrawTexturedQuadUV(x, y, w, h float32, tex core.Texture, tint colors.Color, rotationRad float32, u0, v0, u1, v1 float32) {
	rd.reserve()
	slot := rd.slotFor(tex)
	rd.pushQuad(x, y, w, h, tint, rotationRad, slot, u0, v0, u1, v1)
}

// --- internals ---

func (rd *Renderer2D) slotFor(t core.Texture) float32 {
	for i := 0; i < rd.texCnt; i++ {
		if rd.texArr[i] == t {
			return float32(i)
		}
	}
	if rd.texCnt >= maxTexSlots {
		// out of slots: flush, which resets the bindings
		rd.flush()
	}
	rd.texArr[rd.texCnt] = t
	rd.texCnt++
	rd.stats.TextureCount = rd.texCnt
	return float32(rd.texCnt - 1)
}

func (rd *Renderer2D) pushQuad(x, y, w, h float32, color colors.Color, rotationRad float32, texIndex float32, u0, v0, u1, v1 float32) {
	halfW := w * 0.5
	halfH := h * 0.5

	// corners (TL, TR, BL, BR) with UVs; Y grows downward, so top is -halfH
	corners := [4][4]float32{
		{-halfW, -halfH, u0, v0},
		{halfW, -halfH, u1, v0},
		{-halfW, halfH, u0, v1},
		{halfW, halfH, u1, v1},
	}
	c, s := float32(math.Cos(float64(rotationRad))), float32(math.Sin(float64(rotationRad)))

	startVertex := uint32(len(rd.verts) / vStride)

	for _, p := range corners {
		rx := p[0]*c - p[1]*s + x
		ry := p[0]*s + p[1]*c + y
		rd.verts = append(rd.verts,
			rx, ry,
			color[0], color[1], color[2], color[3],
			p[2], p[3],
			texIndex,
		)
	}
	rd.inds = append(rd.inds,
		startVertex+0, startVertex+2, startVertex+1,
		startVertex+1, startVertex+2, startVertex+3,
	)
	rd.quadCount++
	rd.stats.QuadCount++
}

func (rd *Renderer2D) flush() {
	if rd.quadCount == 0 {
		return
	}

	if err := rd.r.UpdateMesh(rd.mesh, rd.verts, rd.inds); err != nil {
		panic(err)
	}

	for k := range rd.samplers {
		delete(rd.samplers, k)
	}
	for i := 0; i < rd.texCnt; i++ {
		rd.samplers[rd.texNames[i]] = rd.texArr[i]
	}

	for k := range rd.uniforms {
		delete(rd.uniforms, k)
	}
	rd.uniforms["uVP"] = rd.vp

	rd.r.Draw(core.DrawCmd{
		Pipe:     rd.pipe,
		Mesh:     rd.mesh,
		Uniforms: rd.uniforms,
		Samplers: rd.samplers,
	})
	rd.stats.DrawCalls++

	rd.resetBatch()
}

func (rd *Renderer2D) resetBatch() {
	rd.verts = rd.verts[:0]
	rd.inds = rd.inds[:0]
	rd.quadCount = 0
	for i := range rd.texArr {
		rd.texArr[i] = nil
	}
	rd.texArr[0] = rd.white
	rd.texCnt = 1
}

func (rd *Renderer2D) reserve() {
	if rd.quadCount >= rd.maxQuads {
		rd.flush()
	}
}
