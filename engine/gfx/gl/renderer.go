package glbackend

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/blueprint/engine/core"
)

// RendererGL implements core.Renderer on OpenGL 3.3 core.
type RendererGL struct {
	win core.Window
}

type glPipeline struct {
	program   uint32
	depthTest bool
	blend     bool
	uniforms  map[string]int32 // location cache
}

func (*glPipeline) IsPipeline() {}

type glTexture struct {
	id   uint32
	w, h int
}

func (*glTexture) IsTexture() {}

type glMesh struct {
	vao, vbo, ebo uint32
	vertCap       int // capacity in float32s
	indCap        int
	indexCount    int32 // indices valid for drawing
}

func (*glMesh) IsMesh() {}

func NewRendererGL(win core.Window, _ core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	// Pipelines own blend/depth state; nothing global to enable here.
	return nil
}

func (r *RendererGL) Shutdown() {}

func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *RendererGL) GPUVendor() string   { return gl.GoStr(gl.GetString(gl.VENDOR)) }
func (r *RendererGL) GPURenderer() string { return gl.GoStr(gl.GetString(gl.RENDERER)) }
func (r *RendererGL) GPUVersion() string  { return gl.GoStr(gl.GetString(gl.VERSION)) }

func (r *RendererGL) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	prog, err := makeProgram(nullTerminate(desc.VertexSource), nullTerminate(desc.FragmentSource))
	if err != nil {
		return nil, err
	}
	return &glPipeline{
		program:   prog,
		depthTest: desc.DepthTest,
		blend:     desc.Blend,
		uniforms:  map[string]int32{},
	}, nil
}

func (r *RendererGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Format != core.TextureRGBA8 {
		return nil, fmt.Errorf("unsupported texture format %d", desc.Format)
	}
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filterFor(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filterFor(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapFor(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapFor(desc.WrapV))
	var pix unsafe.Pointer
	if desc.Pixels != nil {
		pix = gl.Ptr(desc.Pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(desc.Width), int32(desc.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, pix)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return &glTexture{id: id, w: desc.Width, h: desc.Height}, nil
}

func (r *RendererGL) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	m := &glMesh{vertCap: len(desc.Vertices), indCap: len(desc.Indices)}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(desc.Vertices)*4, gl.Ptr(desc.Vertices), gl.DYNAMIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(desc.Indices)*4, gl.Ptr(desc.Indices), gl.DYNAMIC_DRAW)

	for _, a := range desc.Layout.Attributes {
		if a.Type != core.AttribFloat32 {
			return nil, fmt.Errorf("unsupported attribute type %d", a.Type)
		}
		gl.EnableVertexAttribArray(uint32(a.Location))
		gl.VertexAttribPointer(uint32(a.Location), int32(a.Size), gl.FLOAT, false,
			int32(desc.Layout.Stride), unsafe.Pointer(uintptr(a.Offset)))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	m.indexCount = int32(len(desc.Indices))
	return m, nil
}

func (r *RendererGL) UpdateMesh(mesh core.Mesh, vertices []float32, indices []uint32) error {
	m, ok := mesh.(*glMesh)
	if !ok {
		return fmt.Errorf("mesh from another backend")
	}
	if len(vertices) > m.vertCap || len(indices) > m.indCap {
		return fmt.Errorf("mesh update exceeds capacity (%d/%d verts, %d/%d inds)",
			len(vertices), m.vertCap, len(indices), m.indCap)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(indices)*4, gl.Ptr(indices))
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	m.indexCount = int32(len(indices))
	return nil
}

func (r *RendererGL) Draw(cmd core.DrawCmd) {
	pipe, ok := cmd.Pipe.(*glPipeline)
	if !ok {
		return
	}
	mesh, ok := cmd.Mesh.(*glMesh)
	if !ok || mesh.indexCount == 0 {
		return
	}

	gl.UseProgram(pipe.program)
	if pipe.depthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	if pipe.blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}

	for name, value := range cmd.Uniforms {
		loc := pipe.uniform(name)
		if loc < 0 {
			continue
		}
		switch v := value.(type) {
		case float32:
			gl.Uniform1f(loc, v)
		case int32:
			gl.Uniform1i(loc, v)
		case [2]float32:
			gl.Uniform2f(loc, v[0], v[1])
		case [4]float32:
			gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
		case [16]float32:
			gl.UniformMatrix4fv(loc, 1, false, &v[0])
		}
	}

	unit := int32(0)
	for name, tex := range cmd.Samplers {
		t, ok := tex.(*glTexture)
		if !ok {
			continue
		}
		loc := pipe.uniform(name)
		if loc < 0 {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, t.id)
		gl.Uniform1i(loc, unit)
		unit++
	}

	gl.BindVertexArray(mesh.vao)
	gl.DrawElements(gl.TRIANGLES, mesh.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func (p *glPipeline) uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.program, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

func filterFor(name string) int32 {
	if name == "linear" {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func wrapFor(name string) int32 {
	if name == "repeat" {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func nullTerminate(src string) string {
	if !strings.HasSuffix(src, "\x00") {
		src += "\x00"
	}
	return src
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
