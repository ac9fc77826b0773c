// Package gpu is a small device abstraction in the shape of a modern
// explicit graphics API: pipelines, buffers, bind groups and render passes
// recorded against offscreen render targets. The OpenGL implementation lives
// in gl.go; tests substitute their own Device.
package gpu

import (
	"errors"
	"fmt"
)

// ErrDeviceLost is returned once the device can no longer create resources.
var ErrDeviceLost = errors.New("gpu: device lost")

// BufferUsage is a bit set describing how a buffer is bound.
type BufferUsage uint32

const (
	UsageVertex BufferUsage = 1 << iota
	UsageIndex
	UsageUniform
	UsageCopyDst
)

// Has reports whether all bits of other are set.
func (u BufferUsage) Has(other BufferUsage) bool { return u&other == other }

func (u BufferUsage) String() string {
	names := []string{"vertex", "index", "uniform", "copy-dst"}
	s := ""
	for i, n := range names {
		if u&(1<<i) != 0 {
			if s != "" {
				s += "|"
			}
			s += n
		}
	}
	if s == "" {
		return "none"
	}
	return s
}

// IndexFormat is the element type of an index buffer.
type IndexFormat int

const (
	IndexUint16 IndexFormat = iota
	IndexUint32
)

// FrontFace selects the winding treated as front facing.
type FrontFace int

const (
	FrontCCW FrontFace = iota
	FrontCW
)

// CullMode selects which faces are discarded.
type CullMode int

const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

// VertexFormat is the type of one vertex attribute.
type VertexFormat int

const (
	Float32x2 VertexFormat = iota
	Float32x3
	Float32x4
)

// Components returns the number of float components.
func (f VertexFormat) Components() int32 {
	switch f {
	case Float32x2:
		return 2
	case Float32x4:
		return 4
	default:
		return 3
	}
}

// VertexAttribute describes one attribute inside a vertex.
type VertexAttribute struct {
	Location uint32
	Format   VertexFormat
	Offset   int
}

// VertexLayout describes the single vertex buffer a pipeline reads.
type VertexLayout struct {
	Stride     int
	Attributes []VertexAttribute
}

// BufferDescriptor describes a buffer. When Contents is set, Size is ignored.
type BufferDescriptor struct {
	Label    string
	Usage    BufferUsage
	Size     int
	Contents []byte
}

// PipelineDescriptor describes a triangle-list render pipeline.
type PipelineDescriptor struct {
	Label          string
	VertexSource   string
	FragmentSource string
	Vertex         VertexLayout
	FrontFace      FrontFace
	CullMode       CullMode
	DepthTest      bool
}

// BindGroupEntry binds a uniform buffer to a slot. Block names the shader's
// uniform block for backends that resolve blocks by name.
type BindGroupEntry struct {
	Binding uint32
	Block   string
	Buffer  Buffer
}

// BindGroupDescriptor lists the uniform bindings of a group.
type BindGroupDescriptor struct {
	Label   string
	Entries []BindGroupEntry
}

// Buffer is a GPU buffer.
type Buffer interface {
	Size() int
	Usage() BufferUsage
	Destroy()
}

// Pipeline is a compiled render pipeline.
type Pipeline interface {
	Destroy()
}

// BindGroup is a set of resource bindings created against a pipeline.
type BindGroup interface {
	Destroy()
}

// RenderTarget is an offscreen color + depth surface whose color texture can
// be displayed by the UI.
type RenderTarget interface {
	TextureID() uint64
	Size() (width, height int)
	Resize(width, height int)
	// Begin binds the target, clears it and returns a pass recording into it.
	Begin(clear [4]float32) RenderPass
	ReadPixels() []byte
	Destroy()
}

// Queue uploads data to buffers.
type Queue interface {
	WriteBuffer(buf Buffer, offset int, data []byte) error
}

// RenderPass records draw commands into a render target.
type RenderPass interface {
	SetPipeline(p Pipeline)
	SetBindGroup(index uint32, g BindGroup)
	SetVertexBuffer(slot uint32, b Buffer)
	SetIndexBuffer(b Buffer, format IndexFormat)
	DrawIndexed(indexCount, instanceCount uint32)
	// End finishes the pass and restores the previous target.
	End()
}

// Device creates GPU resources.
type Device interface {
	CreateBuffer(desc BufferDescriptor) (Buffer, error)
	CreateRenderPipeline(desc PipelineDescriptor) (Pipeline, error)
	CreateBindGroup(p Pipeline, desc BindGroupDescriptor) (BindGroup, error)
	CreateRenderTarget(width, height int) (RenderTarget, error)
	Queue() Queue
}

// ResourceError wraps a failure to create a labeled resource.
type ResourceError struct {
	Kind  string
	Label string
	Err   error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("create %s %q: %v", e.Kind, e.Label, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }
