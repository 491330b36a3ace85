package renderer

import (
	"fmt"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
	"github.com/spaghettifunk/anima2d/engine/scene"
)

// DefaultSampleCount is the MSAA level used when none is configured.
const DefaultSampleCount uint32 = 4

// ClearColour is the background every frame starts from.
var ClearColour = metadata.Colour{R: 0.5, G: 0.5, B: 0.5, A: 1.0}

type Config struct {
	Width         uint32
	Height        uint32
	PresentMode   metadata.PresentMode
	SampleCount   uint32
	DefaultShader *metadata.ShaderSource
	// Optional, defaults to the wall clock.
	Clock *core.Clock
}

/**
 * @brief Owns the surface configuration, the multisampled colour target,
 * the default pipeline and the entity registry, and turns them into one
 * presented frame per Render call.
 */
type FrameRenderer struct {
	backend metadata.RendererBackend

	config          metadata.SurfaceConfig
	sampleCount     uint32
	msaa            metadata.Texture
	defaultPipeline metadata.Pipeline
	registry        *scene.Registry

	hook        FrameHook
	fps         *core.FPSCounter
	fpsObserver core.FPSObserver

	state       State
	fatal       error
	frameNumber uint64
}

func New(backend metadata.RendererBackend, config Config) (*FrameRenderer, error) {
	if config.Width == 0 || config.Height == 0 {
		return nil, fmt.Errorf("%w: surface size %dx%d", core.ErrInvalidConfig, config.Width, config.Height)
	}
	if config.DefaultShader == nil {
		return nil, fmt.Errorf("%w: no default shader", core.ErrInvalidConfig)
	}
	if config.SampleCount == 0 {
		config.SampleCount = DefaultSampleCount
	}
	clock := config.Clock
	if clock == nil {
		clock = core.NewClock()
	}

	r := &FrameRenderer{
		backend: backend,
		config: metadata.SurfaceConfig{
			Format:      backend.PreferredFormat(),
			Width:       config.Width,
			Height:      config.Height,
			PresentMode: config.PresentMode,
		},
		sampleCount: config.SampleCount,
		registry:    scene.NewRegistry(backend),
		fps:         core.NewFPSCounter(clock),
		state:       StateConfigured,
	}
	r.fps.SetObserver(r.onFPS)

	backend.ConfigureSurface(r.config)
	r.msaa = backend.CreateMultisampleTarget(r.config.Width, r.config.Height, r.sampleCount)
	r.defaultPipeline = backend.CreatePipeline(config.DefaultShader)

	core.LogInfo("frame renderer ready: %dx%d, %dx MSAA, present mode %s", r.config.Width, r.config.Height, r.sampleCount, r.config.PresentMode)
	return r, nil
}

// Render draws and presents one frame. Surface loss is handled by
// reconfiguring and skipping the frame; only fatal device errors are
// returned.
func (r *FrameRenderer) Render() error {
	if r.state == StateFatal {
		return r.fatal
	}

	image, err := r.backend.AcquireNextImage()
	if err != nil {
		return r.handleError("acquire", err)
	}
	r.state = StateRendering

	recorder := r.backend.CreateCommandRecorder(fmt.Sprintf("frame-%d", r.frameNumber))
	pass := recorder.BeginRenderPass(&metadata.RenderPassDescriptor{
		Label:          "main",
		ColorTarget:    r.msaa,
		ResolveTarget:  image,
		ClearColour:    ClearColour,
		LoadOperation:  metadata.LOAD_OPERATION_CLEAR,
		StoreOperation: metadata.STORE_OPERATION_STORE,
	})

	if r.hook != nil {
		r.hook.OnFrame(r.registry)
	}
	r.registry.Update()

	for _, e := range r.registry.All() {
		r.draw(pass, e)
	}
	pass.End()

	if err := r.backend.Submit(recorder.Finish()); err != nil {
		return r.handleError("submit", err)
	}
	if err := r.backend.Present(image); err != nil {
		return r.handleError("present", err)
	}

	r.state = StateConfigured
	r.frameNumber++
	r.fps.Frame()
	return nil
}

func (r *FrameRenderer) draw(pass metadata.RenderPass, e *scene.Entity) {
	if e.IndexCount() == 0 {
		return
	}
	pipeline := e.Pipeline()
	if pipeline == nil {
		pipeline = r.defaultPipeline
	}
	pass.SetPipeline(pipeline)
	pass.SetBindingSet(metadata.TransformSetSlot, e.BindingSet(metadata.TransformSetSlot))
	pass.SetBindingSet(metadata.ParameterSetSlot, e.BindingSet(metadata.ParameterSetSlot))
	pass.SetVertexBuffer(e.VertexBuffer())
	pass.SetIndexBuffer(e.IndexBuffer(), metadata.INDEX_FORMAT_UINT32)
	pass.DrawIndexed(e.IndexCount())
}

func (r *FrameRenderer) handleError(stage string, err error) error {
	switch classifyBackendError(err) {
	case errorTransient:
		core.LogWarn("%s: %s, reconfiguring surface at %dx%d", stage, err, r.config.Width, r.config.Height)
		r.backend.ConfigureSurface(r.config)
		r.state = StateLost
		return nil
	case errorFatal:
		core.LogError("%s: %s", stage, err)
		r.state = StateFatal
		r.fatal = fmt.Errorf("%s: %w", stage, err)
		return r.fatal
	}
	core.LogError("%s: %s, skipping frame", stage, err)
	r.state = StateConfigured
	return nil
}

// Resize reconfigures the surface and rebuilds the multisampled target.
// A zero dimension (minimized window) is ignored.
func (r *FrameRenderer) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height

	// The target follows the surface so it matches the new swapchain.
	r.backend.ConfigureSurface(r.config)
	r.backend.DestroyTexture(r.msaa)
	r.msaa = r.backend.CreateMultisampleTarget(width, height, r.sampleCount)
	if r.state != StateFatal {
		r.state = StateConfigured
	}
	core.LogDebug("surface resized to %dx%d", width, height)
}

// SetDefaultPipeline rebuilds the pipeline used by entities without
// their own.
func (r *FrameRenderer) SetDefaultPipeline(shader *metadata.ShaderSource) {
	r.backend.DestroyPipeline(r.defaultPipeline)
	r.defaultPipeline = r.backend.CreatePipeline(shader)
}

func (r *FrameRenderer) SetFrameHook(hook FrameHook) {
	r.hook = hook
}

// SetFPSObserver installs the callback fed every FPS sample.
func (r *FrameRenderer) SetFPSObserver(observer core.FPSObserver) {
	r.fpsObserver = observer
}

func (r *FrameRenderer) onFPS(fps uint64) {
	core.LogWith("frame", r.frameNumber).Debug("fps sample", "fps", fps, "entities", r.registry.Len())
	if r.fpsObserver != nil {
		r.fpsObserver(fps)
	}
}

func (r *FrameRenderer) Registry() *scene.Registry             { return r.registry }
func (r *FrameRenderer) SurfaceConfig() metadata.SurfaceConfig { return r.config }
func (r *FrameRenderer) MultisampleTarget() metadata.Texture   { return r.msaa }
func (r *FrameRenderer) DefaultPipeline() metadata.Pipeline    { return r.defaultPipeline }
func (r *FrameRenderer) State() State                          { return r.state }
func (r *FrameRenderer) FrameNumber() uint64                   { return r.frameNumber }
func (r *FrameRenderer) SampleCount() uint32                   { return r.sampleCount }

// Destroy releases the entities and the renderer's own GPU objects.
func (r *FrameRenderer) Destroy() {
	r.registry.Clear()
	r.backend.DestroyPipeline(r.defaultPipeline)
	r.backend.DestroyTexture(r.msaa)
	r.defaultPipeline = nil
	r.msaa = nil
}
