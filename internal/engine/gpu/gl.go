package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/texcomp/internal/engine/framebuffer"
	"github.com/Faultbox/texcomp/internal/engine/shader"
	"github.com/Faultbox/texcomp/internal/logger"
)

// GLDevice implements Device on the current OpenGL 4.1 core context.
// All calls must happen on the thread owning the context.
type GLDevice struct {
	lost bool
}

// NewGLDevice wraps the current context. gl.Init must already have run.
func NewGLDevice() *GLDevice {
	return &GLDevice{}
}

// Queue returns the device queue. GL executes uploads in submission order.
func (d *GLDevice) Queue() Queue { return d }

// check turns a pending GL error into a Go error. Out-of-memory marks the
// device lost.
func (d *GLDevice) check(kind, label string) error {
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	var err error = fmt.Errorf("gl error 0x%x", code)
	if code == gl.OUT_OF_MEMORY {
		d.lost = true
		err = ErrDeviceLost
	}
	return &ResourceError{Kind: kind, Label: label, Err: err}
}

type glBuffer struct {
	id     uint32
	target uint32
	size   int
	usage  BufferUsage
}

func (b *glBuffer) Size() int          { return b.size }
func (b *glBuffer) Usage() BufferUsage { return b.usage }

func (b *glBuffer) Destroy() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

func bufferTarget(u BufferUsage) uint32 {
	switch {
	case u.Has(UsageIndex):
		return gl.ELEMENT_ARRAY_BUFFER
	case u.Has(UsageUniform):
		return gl.UNIFORM_BUFFER
	default:
		return gl.ARRAY_BUFFER
	}
}

// CreateBuffer allocates a buffer and uploads Contents when given.
func (d *GLDevice) CreateBuffer(desc BufferDescriptor) (Buffer, error) {
	if d.lost {
		return nil, &ResourceError{Kind: "buffer", Label: desc.Label, Err: ErrDeviceLost}
	}
	size := desc.Size
	if desc.Contents != nil {
		size = len(desc.Contents)
	}
	if size <= 0 {
		return nil, &ResourceError{Kind: "buffer", Label: desc.Label, Err: fmt.Errorf("invalid size %d", size)}
	}

	b := &glBuffer{target: bufferTarget(desc.Usage), size: size, usage: desc.Usage}
	hint := uint32(gl.STATIC_DRAW)
	if desc.Usage.Has(UsageCopyDst) {
		hint = gl.DYNAMIC_DRAW
	}

	// Keep index buffer binds out of whatever VAO is current.
	gl.BindVertexArray(0)
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(b.target, b.id)
	if desc.Contents != nil {
		gl.BufferData(b.target, size, gl.Ptr(desc.Contents), hint)
	} else {
		gl.BufferData(b.target, size, nil, hint)
	}
	gl.BindBuffer(b.target, 0)

	if err := d.check("buffer", desc.Label); err != nil {
		b.Destroy()
		return nil, err
	}
	logger.Debug("gpu buffer created",
		zap.String("label", desc.Label),
		zap.Stringer("usage", desc.Usage),
		zap.Int("size", size))
	return b, nil
}

// WriteBuffer replaces size(data) bytes at offset.
func (d *GLDevice) WriteBuffer(buf Buffer, offset int, data []byte) error {
	b, ok := buf.(*glBuffer)
	if !ok || b.id == 0 {
		return fmt.Errorf("write buffer: not a live GL buffer")
	}
	if offset < 0 || offset+len(data) > b.size {
		return fmt.Errorf("write buffer: range [%d, %d) exceeds size %d", offset, offset+len(data), b.size)
	}
	if len(data) == 0 {
		return nil
	}
	gl.BindBuffer(b.target, b.id)
	gl.BufferSubData(b.target, offset, len(data), gl.Ptr(data))
	gl.BindBuffer(b.target, 0)
	return nil
}

type glPipeline struct {
	program uint32
	vao     uint32
	desc    PipelineDescriptor
}

func (p *glPipeline) Destroy() {
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
}

// CreateRenderPipeline compiles the shader pair and prepares a vertex array.
func (d *GLDevice) CreateRenderPipeline(desc PipelineDescriptor) (Pipeline, error) {
	if d.lost {
		return nil, &ResourceError{Kind: "pipeline", Label: desc.Label, Err: ErrDeviceLost}
	}
	program, err := shader.CompileProgram(desc.VertexSource, desc.FragmentSource)
	if err != nil {
		return nil, &ResourceError{Kind: "pipeline", Label: desc.Label, Err: err}
	}
	p := &glPipeline{program: program, desc: desc}
	gl.GenVertexArrays(1, &p.vao)
	if err := d.check("pipeline", desc.Label); err != nil {
		p.Destroy()
		return nil, err
	}
	logger.Debug("gpu pipeline created", zap.String("label", desc.Label), zap.Uint32("program", program))
	return p, nil
}

type glBindGroup struct {
	entries []BindGroupEntry
}

func (g *glBindGroup) Destroy() { g.entries = nil }

// CreateBindGroup resolves each entry's uniform block on the pipeline's
// program and assigns it the entry's binding slot.
func (d *GLDevice) CreateBindGroup(p Pipeline, desc BindGroupDescriptor) (BindGroup, error) {
	gp, ok := p.(*glPipeline)
	if !ok || gp.program == 0 {
		return nil, &ResourceError{Kind: "bind group", Label: desc.Label, Err: fmt.Errorf("not a live GL pipeline")}
	}
	for _, e := range desc.Entries {
		if _, ok := e.Buffer.(*glBuffer); !ok {
			return nil, &ResourceError{Kind: "bind group", Label: desc.Label, Err: fmt.Errorf("binding %d: not a GL buffer", e.Binding)}
		}
		if err := shader.BindUniformBlock(gp.program, e.Block, e.Binding); err != nil {
			return nil, &ResourceError{Kind: "bind group", Label: desc.Label, Err: err}
		}
	}
	return &glBindGroup{entries: append([]BindGroupEntry(nil), desc.Entries...)}, nil
}

type glTarget struct {
	fb *framebuffer.Framebuffer
}

func (t *glTarget) TextureID() uint64 { return uint64(t.fb.ColorTexture()) }

func (t *glTarget) Size() (int, int) {
	w, h := t.fb.Size()
	return int(w), int(h)
}

func (t *glTarget) Resize(width, height int) { t.fb.Resize(int32(width), int32(height)) }
func (t *glTarget) ReadPixels() []byte       { return t.fb.ReadPixels() }
func (t *glTarget) Destroy()                 { t.fb.Destroy() }

func (t *glTarget) Begin(clear [4]float32) RenderPass {
	restore := t.fb.Bind()
	t.fb.Clear(clear)
	return &glPass{restore: restore}
}

// CreateRenderTarget allocates an offscreen framebuffer.
func (d *GLDevice) CreateRenderTarget(width, height int) (RenderTarget, error) {
	if d.lost {
		return nil, &ResourceError{Kind: "render target", Err: ErrDeviceLost}
	}
	fb, err := framebuffer.New(int32(width), int32(height))
	if err != nil {
		return nil, &ResourceError{Kind: "render target", Err: err}
	}
	return &glTarget{fb: fb}, nil
}

type glPass struct {
	restore  func()
	pipeline *glPipeline
	indexFmt uint32
	ended    bool
}

func (p *glPass) SetPipeline(pl Pipeline) {
	gp, ok := pl.(*glPipeline)
	if !ok {
		return
	}
	p.pipeline = gp
	gl.UseProgram(gp.program)
	gl.BindVertexArray(gp.vao)

	if gp.desc.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	if gp.desc.FrontFace == FrontCW {
		gl.FrontFace(gl.CW)
	} else {
		gl.FrontFace(gl.CCW)
	}
	switch gp.desc.CullMode {
	case CullBack:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	case CullFront:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	default:
		gl.Disable(gl.CULL_FACE)
	}
}

func (p *glPass) SetBindGroup(_ uint32, g BindGroup) {
	bg, ok := g.(*glBindGroup)
	if !ok {
		return
	}
	for _, e := range bg.entries {
		if b, ok := e.Buffer.(*glBuffer); ok {
			gl.BindBufferBase(gl.UNIFORM_BUFFER, e.Binding, b.id)
		}
	}
}

// SetVertexBuffer attaches the buffer to the pipeline's vertex array using
// the pipeline's vertex layout.
func (p *glPass) SetVertexBuffer(_ uint32, b Buffer) {
	vb, ok := b.(*glBuffer)
	if !ok || p.pipeline == nil {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.id)
	layout := p.pipeline.desc.Vertex
	for _, a := range layout.Attributes {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointerWithOffset(a.Location, a.Format.Components(), gl.FLOAT, false, int32(layout.Stride), uintptr(a.Offset))
	}
}

func (p *glPass) SetIndexBuffer(b Buffer, format IndexFormat) {
	ib, ok := b.(*glBuffer)
	if !ok {
		return
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.id)
	p.indexFmt = gl.UNSIGNED_INT
	if format == IndexUint16 {
		p.indexFmt = gl.UNSIGNED_SHORT
	}
}

func (p *glPass) DrawIndexed(indexCount, instanceCount uint32) {
	if p.pipeline == nil || indexCount == 0 || instanceCount == 0 {
		return
	}
	gl.DrawElementsInstanced(gl.TRIANGLES, int32(indexCount), p.indexFmt, nil, int32(instanceCount))
}

func (p *glPass) End() {
	if p.ended {
		return
	}
	p.ended = true
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	p.restore()
}
