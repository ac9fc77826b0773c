// Package render draws a mesh with the orbit camera into a paint session.
package render

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/texcomp/internal/asset"
	"github.com/Faultbox/texcomp/internal/engine/camera"
	"github.com/Faultbox/texcomp/internal/engine/gpu"
	"github.com/Faultbox/texcomp/internal/engine/paint"
	"github.com/Faultbox/texcomp/internal/engine/shader"
	"github.com/Faultbox/texcomp/internal/logger"
	"github.com/Faultbox/texcomp/pkg/math"
)

// Projection parameters.
const (
	FovY = 45 // degrees
	Near = 0.1
	Far  = 100
)

// UniformSize is the size of the camera uniform: one column-major mat4.
const UniformSize = 64

const stateKey = "render.mesh"

// ViewProj returns projection * inverse(camera world matrix).
func ViewProj(aspect float32, t camera.Transform) math.Mat4 {
	proj := math.Perspective(math.Radians(FovY), aspect, Near, Far)
	return proj.Mul(t.Matrix().Inverse())
}

// Frame is everything needed to draw one frame, captured by value when the
// callback is registered.
type Frame struct {
	Mesh *asset.Mesh
	// Aspect of the region; zero uses the render target's aspect.
	Aspect   float32
	Camera   camera.Transform
	Viewport paint.SessionID
}

// GPUState holds the GPU objects for one session. The pipeline, uniform
// buffer and bind group live as long as the session; the vertex and index
// buffers follow the mesh identity.
type GPUState struct {
	pipeline  gpu.Pipeline
	uniform   gpu.Buffer
	bindGroup gpu.BindGroup

	vertex     gpu.Buffer
	index      gpu.Buffer
	indexCount uint32
	identity   uint64
	hasMesh    bool
}

// PipelineDescriptor is the fixed mesh pipeline.
func PipelineDescriptor() gpu.PipelineDescriptor {
	return gpu.PipelineDescriptor{
		Label:          "mesh",
		VertexSource:   shader.MeshVertex,
		FragmentSource: shader.MeshFragment,
		Vertex: gpu.VertexLayout{
			Stride:     12,
			Attributes: []gpu.VertexAttribute{{Location: 0, Format: gpu.Float32x3}},
		},
		FrontFace: gpu.FrontCCW,
		CullMode:  gpu.CullBack,
		DepthTest: true,
	}
}

// EnsurePipeline returns the session's GPU state, creating it on first use and
// rebuilding the mesh buffers when the mesh identity changed.
func EnsurePipeline(dev gpu.Device, res *paint.Resources, mesh *asset.Mesh) (*GPUState, error) {
	s, ok := paint.Get[*GPUState](res, stateKey)
	if !ok {
		var err error
		if s, err = newGPUState(dev); err != nil {
			return nil, err
		}
		res.Set(stateKey, s)
	}
	if mesh == nil {
		return s, nil
	}
	if s.hasMesh && s.identity == mesh.Identity() {
		return s, nil
	}
	if err := s.uploadMesh(dev, mesh); err != nil {
		return nil, err
	}
	return s, nil
}

func newGPUState(dev gpu.Device) (*GPUState, error) {
	p, err := dev.CreateRenderPipeline(PipelineDescriptor())
	if err != nil {
		return nil, fmt.Errorf("mesh pipeline: %w", err)
	}
	u, err := dev.CreateBuffer(gpu.BufferDescriptor{
		Label: "camera uniform",
		Usage: gpu.UsageUniform | gpu.UsageCopyDst,
		Size:  UniformSize,
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("camera uniform: %w", err)
	}
	bg, err := dev.CreateBindGroup(p, gpu.BindGroupDescriptor{
		Label:   "camera",
		Entries: []gpu.BindGroupEntry{{Binding: 0, Block: shader.CameraBlock, Buffer: u}},
	})
	if err != nil {
		u.Destroy()
		p.Destroy()
		return nil, fmt.Errorf("camera bind group: %w", err)
	}
	return &GPUState{pipeline: p, uniform: u, bindGroup: bg}, nil
}

func (s *GPUState) uploadMesh(dev gpu.Device, mesh *asset.Mesh) error {
	s.releaseMesh()
	if mesh.TriangleCount() == 0 {
		s.identity, s.hasMesh = mesh.Identity(), true
		return nil
	}
	vb, err := dev.CreateBuffer(gpu.BufferDescriptor{
		Label:    "mesh vertices",
		Usage:    gpu.UsageVertex,
		Contents: gpu.Vec3Bytes(mesh.Positions()),
	})
	if err != nil {
		return fmt.Errorf("vertex buffer: %w", err)
	}
	ib, err := dev.CreateBuffer(gpu.BufferDescriptor{
		Label:    "mesh indices",
		Usage:    gpu.UsageIndex,
		Contents: gpu.Uint32Bytes(mesh.Indices()),
	})
	if err != nil {
		vb.Destroy()
		return fmt.Errorf("index buffer: %w", err)
	}
	s.vertex, s.index = vb, ib
	s.indexCount = uint32(len(mesh.Indices()))
	s.identity, s.hasMesh = mesh.Identity(), true
	logger.Debug("mesh uploaded",
		zap.String("mesh", mesh.Name()),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()))
	return nil
}

func (s *GPUState) releaseMesh() {
	if s.vertex != nil {
		s.vertex.Destroy()
		s.vertex = nil
	}
	if s.index != nil {
		s.index.Destroy()
		s.index = nil
	}
	s.indexCount = 0
	s.hasMesh = false
}

// Identity returns the identity of the uploaded mesh.
func (s *GPUState) Identity() (uint64, bool) { return s.identity, s.hasMesh }

// IndexCount returns the number of indices drawn.
func (s *GPUState) IndexCount() uint32 { return s.indexCount }

// UpdateCameraUniform uploads viewProj to the camera uniform.
func (s *GPUState) UpdateCameraUniform(q gpu.Queue, viewProj math.Mat4) error {
	return q.WriteBuffer(s.uniform, 0, gpu.Float32Bytes(viewProj[:]))
}

// Draw records the mesh draw. Nothing is recorded without geometry.
func (s *GPUState) Draw(pass gpu.RenderPass) {
	if s.indexCount == 0 {
		return
	}
	pass.SetPipeline(s.pipeline)
	pass.SetBindGroup(0, s.bindGroup)
	pass.SetVertexBuffer(0, s.vertex)
	pass.SetIndexBuffer(s.index, gpu.IndexUint32)
	pass.DrawIndexed(s.indexCount, 1)
}

// Destroy releases every GPU object.
func (s *GPUState) Destroy() {
	s.releaseMesh()
	s.bindGroup.Destroy()
	s.uniform.Destroy()
	s.pipeline.Destroy()
}

// Callback paints a Frame.
type Callback struct {
	Frame Frame
}

// Prepare creates or refreshes GPU state and uploads the camera matrix.
func (c Callback) Prepare(ctx paint.Context, res *paint.Resources) error {
	s, err := EnsurePipeline(ctx.Device, res, c.Frame.Mesh)
	if err != nil {
		return err
	}
	aspect := c.Frame.Aspect
	if aspect <= 0 {
		aspect = ctx.Aspect()
	}
	return s.UpdateCameraUniform(ctx.Queue, ViewProj(aspect, c.Frame.Camera))
}

// Paint draws the mesh.
func (c Callback) Paint(pass gpu.RenderPass, res *paint.Resources) {
	if s, ok := paint.Get[*GPUState](res, stateKey); ok {
		s.Draw(pass)
	}
}
