package headless

import "github.com/spaghettifunk/anima2d/engine/renderer/metadata"

type Buffer struct {
	label     string
	usage     metadata.BufferUsage
	Data      []byte
	Destroyed bool
}

func (b *Buffer) Label() string               { return b.label }
func (b *Buffer) Size() uint64                { return uint64(len(b.Data)) }
func (b *Buffer) Usage() metadata.BufferUsage { return b.usage }

type BindingSet struct {
	label     string
	slot      uint32
	Buffer    *Buffer
	Destroyed bool
}

func (s *BindingSet) Label() string { return s.label }
func (s *BindingSet) Slot() uint32  { return s.slot }

type Pipeline struct {
	Shader    *metadata.ShaderSource
	Destroyed bool
}

func (p *Pipeline) Name() string { return p.Shader.Name }

type Texture struct {
	width, height, samples uint32
	Destroyed              bool
	// Surface is the surface configuration current when it was created.
	Surface metadata.SurfaceConfig
}

func (t *Texture) Width() uint32       { return t.width }
func (t *Texture) Height() uint32      { return t.height }
func (t *Texture) SampleCount() uint32 { return t.samples }

type Image struct {
	index uint32
}

func (i *Image) Index() uint32 { return i.index }

// DrawCall is the state captured by one DrawIndexed.
type DrawCall struct {
	Pipeline     *Pipeline
	Sets         [2]*BindingSet
	VertexBuffer *Buffer
	IndexBuffer  *Buffer
	IndexFormat  metadata.IndexFormat
	IndexCount   uint32
}

type Pass struct {
	Descriptor metadata.RenderPassDescriptor
	Draws      []DrawCall
	Ended      bool

	current DrawCall
}

func (p *Pass) SetPipeline(pipeline metadata.Pipeline) {
	p.current.Pipeline = pipeline.(*Pipeline)
}

func (p *Pass) SetBindingSet(slot uint32, set metadata.BindingSet) {
	p.current.Sets[slot] = set.(*BindingSet)
}

func (p *Pass) SetVertexBuffer(buffer metadata.Buffer) {
	p.current.VertexBuffer = buffer.(*Buffer)
}

func (p *Pass) SetIndexBuffer(buffer metadata.Buffer, format metadata.IndexFormat) {
	p.current.IndexBuffer = buffer.(*Buffer)
	p.current.IndexFormat = format
}

func (p *Pass) DrawIndexed(indexCount uint32) {
	call := p.current
	call.IndexCount = indexCount
	p.Draws = append(p.Draws, call)
}

func (p *Pass) End() {
	p.Ended = true
}

type CommandBuffer struct {
	label  string
	Passes []*Pass
}

func (c *CommandBuffer) Label() string { return c.label }

// References reports whether any recorded draw reads buf.
func (c *CommandBuffer) References(buf *Buffer) bool {
	for _, pass := range c.Passes {
		for _, d := range pass.Draws {
			if d.VertexBuffer == buf || d.IndexBuffer == buf {
				return true
			}
			for _, set := range d.Sets {
				if set != nil && set.Buffer == buf {
					return true
				}
			}
		}
	}
	return false
}

type Recorder struct {
	commands *CommandBuffer
	backend  *Backend
}

func (r *Recorder) BeginRenderPass(desc *metadata.RenderPassDescriptor) metadata.RenderPass {
	pass := &Pass{Descriptor: *desc}
	r.commands.Passes = append(r.commands.Passes, pass)
	r.backend.open = pass
	return pass
}

func (r *Recorder) Finish() metadata.CommandBuffer {
	r.backend.open = nil
	return r.commands
}
