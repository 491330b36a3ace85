package headless

import (
	"fmt"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

// Write records one WriteBuffer call.
type Write struct {
	Buffer *Buffer
	Offset uint64
	Size   int
}

/**
 * @brief An in-memory RendererBackend. It keeps buffer contents, binding
 * sets, pipelines and every submitted pass so the frame logic can run
 * and be inspected without a GPU. Errors can be queued for acquire,
 * submit and present, and device errors can be latched the same way a
 * real device reports them.
 */
type Backend struct {
	ImageCount uint32

	Surface        metadata.SurfaceConfig
	Configurations int

	Buffers     []*Buffer
	BindingSets []*BindingSet
	Pipelines   []*Pipeline
	Textures    []*Texture
	Writes      []Write
	Submitted   []*CommandBuffer
	Presented   []uint32
	Acquired    int

	AcquireErrors []error
	SubmitErrors  []error
	PresentErrors []error

	// Hazards holds writes that landed on a buffer still read by a
	// submission the simulated GPU has not finished.
	Hazards []Write

	pending   []*CommandBuffer
	latched   error
	nextImage uint32
	open      *Pass
}

func New() *Backend {
	return &Backend{ImageCount: 3}
}

func (b *Backend) PreferredFormat() metadata.TextureFormat {
	return metadata.TEXTURE_FORMAT_BGRA8_SRGB
}

func (b *Backend) ConfigureSurface(config metadata.SurfaceConfig) {
	if config.Width == 0 || config.Height == 0 {
		b.Latch(fmt.Errorf("configure surface %dx%d: %w", config.Width, config.Height, core.ErrUnknown))
		return
	}
	b.Surface = config
	b.Configurations++
}

func (b *Backend) CreateBuffer(label string, usage metadata.BufferUsage, size uint64) metadata.Buffer {
	buf := &Buffer{label: label, usage: usage, Data: make([]byte, size)}
	b.Buffers = append(b.Buffers, buf)
	return buf
}

func (b *Backend) WriteBuffer(buffer metadata.Buffer, offset uint64, data []byte) {
	buf := buffer.(*Buffer)
	if buf.Destroyed {
		b.Latch(fmt.Errorf("write to destroyed buffer %s: %w", buf.label, core.ErrUnknown))
		return
	}
	if offset+uint64(len(data)) > uint64(len(buf.Data)) {
		b.Latch(fmt.Errorf("write of %d bytes at %d overflows %s (%d bytes): %w", len(data), offset, buf.label, len(buf.Data), core.ErrUnknown))
		return
	}
	copy(buf.Data[offset:], data)
	w := Write{Buffer: buf, Offset: offset, Size: len(data)}
	if b.inFlight(buf) {
		b.Hazards = append(b.Hazards, w)
	}
	b.Writes = append(b.Writes, w)
}

func (b *Backend) DestroyBuffer(buffer metadata.Buffer) {
	if buffer == nil {
		return
	}
	buffer.(*Buffer).Destroyed = true
}

func (b *Backend) CreateBindingSet(label string, slot uint32, buffer metadata.Buffer) metadata.BindingSet {
	set := &BindingSet{label: label, slot: slot, Buffer: buffer.(*Buffer)}
	b.BindingSets = append(b.BindingSets, set)
	return set
}

func (b *Backend) DestroyBindingSet(set metadata.BindingSet) {
	if set == nil {
		return
	}
	set.(*BindingSet).Destroyed = true
}

func (b *Backend) CreatePipeline(shader *metadata.ShaderSource) metadata.Pipeline {
	p := &Pipeline{Shader: shader}
	b.Pipelines = append(b.Pipelines, p)
	return p
}

func (b *Backend) DestroyPipeline(pipeline metadata.Pipeline) {
	if pipeline == nil {
		return
	}
	pipeline.(*Pipeline).Destroyed = true
}

func (b *Backend) CreateMultisampleTarget(width, height, samples uint32) metadata.Texture {
	t := &Texture{width: width, height: height, samples: samples, Surface: b.Surface}
	b.Textures = append(b.Textures, t)
	return t
}

func (b *Backend) DestroyTexture(texture metadata.Texture) {
	if texture == nil {
		return
	}
	texture.(*Texture).Destroyed = true
}

func (b *Backend) AcquireNextImage() (metadata.SurfaceImage, error) {
	b.Acquired++
	if err := b.takeLatched(); err != nil {
		return nil, err
	}
	// Like the Vulkan backend, every earlier submission has completed
	// before the swapchain is asked for an image.
	b.pending = nil
	if err := pop(&b.AcquireErrors); err != nil {
		return nil, err
	}
	img := &Image{index: b.nextImage}
	b.nextImage = (b.nextImage + 1) % b.ImageCount
	return img, nil
}

func (b *Backend) CreateCommandRecorder(label string) metadata.CommandRecorder {
	return &Recorder{
		commands: &CommandBuffer{label: label},
		backend:  b,
	}
}

func (b *Backend) Submit(commands metadata.CommandBuffer) error {
	if err := b.takeLatched(); err != nil {
		return err
	}
	if err := pop(&b.SubmitErrors); err != nil {
		return err
	}
	cb := commands.(*CommandBuffer)
	b.Submitted = append(b.Submitted, cb)
	b.pending = append(b.pending, cb)
	return nil
}

func (b *Backend) Present(image metadata.SurfaceImage) error {
	if err := pop(&b.PresentErrors); err != nil {
		return err
	}
	b.Presented = append(b.Presented, image.Index())
	return nil
}

func (b *Backend) Shutdown() error {
	return b.takeLatched()
}

// Latch stores a device error to be reported by the next acquire or
// submit. Only the first one is kept.
func (b *Backend) Latch(err error) {
	if b.latched == nil {
		b.latched = err
	}
}

// OpenPass is the pass currently being recorded, nil outside of recording.
func (b *Backend) OpenPass() *Pass {
	return b.open
}

// LastFrame returns the most recently submitted command buffer.
func (b *Backend) LastFrame() *CommandBuffer {
	if len(b.Submitted) == 0 {
		return nil
	}
	return b.Submitted[len(b.Submitted)-1]
}

func (b *Backend) LiveBuffers() int {
	n := 0
	for _, buf := range b.Buffers {
		if !buf.Destroyed {
			n++
		}
	}
	return n
}

func (b *Backend) LiveBindingSets() int {
	n := 0
	for _, s := range b.BindingSets {
		if !s.Destroyed {
			n++
		}
	}
	return n
}

func (b *Backend) LivePipelines() int {
	n := 0
	for _, p := range b.Pipelines {
		if !p.Destroyed {
			n++
		}
	}
	return n
}

func (b *Backend) LiveTextures() int {
	n := 0
	for _, t := range b.Textures {
		if !t.Destroyed {
			n++
		}
	}
	return n
}

// Pending is the number of submissions not yet retired by an acquire.
func (b *Backend) Pending() int {
	return len(b.pending)
}

func (b *Backend) inFlight(buf *Buffer) bool {
	for _, cb := range b.pending {
		if cb.References(buf) {
			return true
		}
	}
	return false
}

func (b *Backend) takeLatched() error {
	err := b.latched
	b.latched = nil
	return err
}

func pop(queue *[]error) error {
	if len(*queue) == 0 {
		return nil
	}
	err := (*queue)[0]
	*queue = (*queue)[1:]
	return err
}

var _ metadata.RendererBackend = (*Backend)(nil)
