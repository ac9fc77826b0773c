// Package gputest provides a recording gpu.Device for tests.
package gputest

import (
	"fmt"

	"github.com/Faultbox/texcomp/internal/engine/gpu"
)

// Device records every call. Set the Fail* fields to inject errors.
type Device struct {
	Log []string

	FailPipeline error
	FailBuffer   error
	FailTarget   error

	Buffers   []*Buffer
	Pipelines []*Pipeline
	Targets   []*Target
	nextTex   uint64
}

// NewDevice returns an empty recording device.
func NewDevice() *Device { return &Device{} }

func (d *Device) record(format string, args ...any) {
	d.Log = append(d.Log, fmt.Sprintf(format, args...))
}

// Count returns how many log entries start with prefix.
func (d *Device) Count(prefix string) int {
	n := 0
	for _, l := range d.Log {
		if len(l) >= len(prefix) && l[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// Reset clears the log.
func (d *Device) Reset() { d.Log = nil }

// Buffer is a fake buffer holding its contents.
type Buffer struct {
	Label     string
	Data      []byte
	usage     gpu.BufferUsage
	Destroyed bool
}

func (b *Buffer) Size() int              { return len(b.Data) }
func (b *Buffer) Usage() gpu.BufferUsage { return b.usage }
func (b *Buffer) Destroy()               { b.Destroyed = true }

// Pipeline is a fake pipeline.
type Pipeline struct {
	Desc      gpu.PipelineDescriptor
	Destroyed bool
}

func (p *Pipeline) Destroy() { p.Destroyed = true }

// BindGroup is a fake bind group.
type BindGroup struct {
	Desc      gpu.BindGroupDescriptor
	Destroyed bool
}

func (g *BindGroup) Destroy() { g.Destroyed = true }

func (d *Device) CreateBuffer(desc gpu.BufferDescriptor) (gpu.Buffer, error) {
	if d.FailBuffer != nil {
		return nil, &gpu.ResourceError{Kind: "buffer", Label: desc.Label, Err: d.FailBuffer}
	}
	data := make([]byte, desc.Size)
	if desc.Contents != nil {
		data = append([]byte(nil), desc.Contents...)
	}
	b := &Buffer{Label: desc.Label, Data: data, usage: desc.Usage}
	d.Buffers = append(d.Buffers, b)
	d.record("create buffer %s", desc.Label)
	return b, nil
}

func (d *Device) CreateRenderPipeline(desc gpu.PipelineDescriptor) (gpu.Pipeline, error) {
	if d.FailPipeline != nil {
		return nil, &gpu.ResourceError{Kind: "pipeline", Label: desc.Label, Err: d.FailPipeline}
	}
	p := &Pipeline{Desc: desc}
	d.Pipelines = append(d.Pipelines, p)
	d.record("create pipeline %s", desc.Label)
	return p, nil
}

func (d *Device) CreateBindGroup(_ gpu.Pipeline, desc gpu.BindGroupDescriptor) (gpu.BindGroup, error) {
	d.record("create bind group %s", desc.Label)
	return &BindGroup{Desc: desc}, nil
}

func (d *Device) CreateRenderTarget(width, height int) (gpu.RenderTarget, error) {
	if d.FailTarget != nil {
		return nil, d.FailTarget
	}
	d.nextTex++
	t := &Target{dev: d, ID: d.nextTex, W: width, H: height}
	d.Targets = append(d.Targets, t)
	d.record("create target %dx%d", width, height)
	return t, nil
}

func (d *Device) Queue() gpu.Queue { return d }

func (d *Device) WriteBuffer(buf gpu.Buffer, offset int, data []byte) error {
	b, ok := buf.(*Buffer)
	if !ok {
		return fmt.Errorf("not a fake buffer")
	}
	if offset+len(data) > len(b.Data) {
		return fmt.Errorf("write past end of %s", b.Label)
	}
	copy(b.Data[offset:], data)
	d.record("write %s", b.Label)
	return nil
}

// Target is a fake render target.
type Target struct {
	dev       *Device
	ID        uint64
	W, H      int
	Destroyed bool
}

func (t *Target) TextureID() uint64  { return t.ID }
func (t *Target) Size() (int, int)   { return t.W, t.H }
func (t *Target) ReadPixels() []byte { return make([]byte, t.W*t.H*4) }
func (t *Target) Destroy()           { t.Destroyed = true }
func (t *Target) Resize(w, h int) {
	if w != t.W || h != t.H {
		t.W, t.H = w, h
		t.dev.record("resize target %dx%d", w, h)
	}
}

func (t *Target) Begin(_ [4]float32) gpu.RenderPass {
	t.dev.record("begin pass %d", t.ID)
	return &Pass{dev: t.dev}
}

// Pass records commands into the device log.
type Pass struct {
	dev *Device
}

func (p *Pass) SetPipeline(gpu.Pipeline)               { p.dev.record("set pipeline") }
func (p *Pass) SetBindGroup(i uint32, _ gpu.BindGroup) { p.dev.record("set bind group %d", i) }
func (p *Pass) SetVertexBuffer(slot uint32, b gpu.Buffer) {
	p.dev.record("set vertex buffer %d %s", slot, b.(*Buffer).Label)
}
func (p *Pass) SetIndexBuffer(b gpu.Buffer, f gpu.IndexFormat) {
	bits := 32
	if f == gpu.IndexUint16 {
		bits = 16
	}
	p.dev.record("set index buffer %s u%d", b.(*Buffer).Label, bits)
}
func (p *Pass) DrawIndexed(count, instances uint32) {
	p.dev.record("draw indexed %d x%d", count, instances)
}
func (p *Pass) End() { p.dev.record("end pass") }
