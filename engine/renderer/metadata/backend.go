package metadata

/**
 * @brief The graphics device as seen by the scene and the frame renderer.
 *
 * Creation and write calls never return errors. A backend latches the
 * first device error they raise and reports it from the next
 * AcquireNextImage or Submit, which is where the frame loop classifies
 * failures.
 */
type RendererBackend interface {
	/** @brief The surface format the device prefers for presentation. */
	PreferredFormat() TextureFormat
	/** @brief (Re)configures the presentation surface. */
	ConfigureSurface(config SurfaceConfig)

	CreateBuffer(label string, usage BufferUsage, size uint64) Buffer
	/** @brief Copies data into the buffer at offset. Writes past the end are dropped and latched as an error. */
	WriteBuffer(buffer Buffer, offset uint64, data []byte)
	DestroyBuffer(buffer Buffer)

	/** @brief Binds a whole uniform buffer at binding 0 of the given set slot. */
	CreateBindingSet(label string, slot uint32, buffer Buffer) BindingSet
	DestroyBindingSet(set BindingSet)

	CreatePipeline(shader *ShaderSource) Pipeline
	DestroyPipeline(pipeline Pipeline)

	CreateMultisampleTarget(width, height, samples uint32) Texture
	DestroyTexture(texture Texture)

	/** @brief Blocks until the next surface image is available. */
	AcquireNextImage() (SurfaceImage, error)
	CreateCommandRecorder(label string) CommandRecorder
	Submit(commands CommandBuffer) error
	Present(image SurfaceImage) error

	/** @brief Waits for the device to go idle and releases every object it still owns. */
	Shutdown() error
}

/** @brief A GPU buffer handle. */
type Buffer interface {
	Label() string
	Size() uint64
	Usage() BufferUsage
}

/** @brief A descriptor/bind group exposing one uniform buffer to shaders. */
type BindingSet interface {
	Label() string
	Slot() uint32
}

/** @brief A compiled render pipeline. */
type Pipeline interface {
	Name() string
}

/** @brief A render target texture. */
type Texture interface {
	Width() uint32
	Height() uint32
	SampleCount() uint32
}

/** @brief The image acquired from the surface for the current frame. */
type SurfaceImage interface {
	Index() uint32
}

/** @brief A finished, submittable list of commands. */
type CommandBuffer interface {
	Label() string
}

type CommandRecorder interface {
	BeginRenderPass(desc *RenderPassDescriptor) RenderPass
	Finish() CommandBuffer
}

/** @brief Records draw state and draws inside one render pass. */
type RenderPass interface {
	SetPipeline(pipeline Pipeline)
	SetBindingSet(slot uint32, set BindingSet)
	SetVertexBuffer(buffer Buffer)
	SetIndexBuffer(buffer Buffer, format IndexFormat)
	DrawIndexed(indexCount uint32)
	End()
}
