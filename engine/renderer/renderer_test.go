package renderer

import (
	"errors"
	"testing"
	"time"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/renderer/headless"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
	"github.com/spaghettifunk/anima2d/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) (*FrameRenderer, *headless.Backend) {
	t.Helper()
	backend := headless.New()
	r, err := New(backend, Config{
		Width:         720,
		Height:        720,
		PresentMode:   metadata.PRESENT_MODE_MAILBOX,
		DefaultShader: &metadata.ShaderSource{Name: "basic"},
	})
	require.NoError(t, err)
	return r, backend
}

func addTriangle(r *FrameRenderer) *scene.Entity {
	e, _ := r.Registry().Add()
	e.SetGeometry([]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, []uint32{0, 1, 2})
	return e
}

func TestNewConfiguresSurfaceAndTarget(t *testing.T) {
	r, backend := newTestRenderer(t)

	assert.Equal(t, StateConfigured, r.State())
	assert.Equal(t, 1, backend.Configurations)
	assert.Equal(t, uint32(720), backend.Surface.Width)
	assert.Equal(t, metadata.TEXTURE_FORMAT_BGRA8_SRGB, backend.Surface.Format)
	assert.Equal(t, metadata.PRESENT_MODE_MAILBOX, backend.Surface.PresentMode)
	assert.Equal(t, uint32(4), r.MultisampleTarget().SampleCount())
	assert.Equal(t, uint32(720), r.MultisampleTarget().Width())
	assert.Equal(t, "basic", r.DefaultPipeline().Name())
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(headless.New(), Config{Width: 0, Height: 10, DefaultShader: &metadata.ShaderSource{}})
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
	_, err = New(headless.New(), Config{Width: 10, Height: 10})
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestRenderDrawsEntitiesInOrder(t *testing.T) {
	r, backend := newTestRenderer(t)
	first := addTriangle(r)
	empty, _ := r.Registry().Add()
	second := addTriangle(r)
	second.SetPipeline(&metadata.ShaderSource{Name: "color"})
	_ = empty

	require.NoError(t, r.Render())

	frame := backend.LastFrame()
	require.NotNil(t, frame)
	require.Len(t, frame.Passes, 1)
	pass := frame.Passes[0]

	assert.Equal(t, ClearColour, pass.Descriptor.ClearColour)
	assert.Equal(t, metadata.LOAD_OPERATION_CLEAR, pass.Descriptor.LoadOperation)
	assert.Equal(t, metadata.STORE_OPERATION_STORE, pass.Descriptor.StoreOperation)
	assert.Same(t, r.MultisampleTarget(), pass.Descriptor.ColorTarget)
	assert.NotNil(t, pass.Descriptor.ResolveTarget)
	assert.True(t, pass.Ended)

	// the entity without geometry is skipped
	require.Len(t, pass.Draws, 2)
	assert.Equal(t, "basic", pass.Draws[0].Pipeline.Name())
	assert.Equal(t, "color", pass.Draws[1].Pipeline.Name())
	assert.Same(t, first.IndexBuffer(), pass.Draws[0].IndexBuffer)
	assert.Same(t, first.BindingSet(0), pass.Draws[0].Sets[0])
	assert.Same(t, first.BindingSet(1), pass.Draws[0].Sets[1])
	assert.Same(t, second.VertexBuffer(), pass.Draws[1].VertexBuffer)
	assert.Equal(t, metadata.INDEX_FORMAT_UINT32, pass.Draws[1].IndexFormat)
	assert.Equal(t, uint32(3), pass.Draws[1].IndexCount)

	assert.Equal(t, []uint32{0}, backend.Presented)
	assert.Equal(t, StateConfigured, r.State())
	assert.Equal(t, uint64(1), r.FrameNumber())
}

func TestRenderRunsHookBeforeDraws(t *testing.T) {
	r, backend := newTestRenderer(t)
	e := addTriangle(r)

	var drawsSeenByHook = -1
	r.SetFrameHook(FrameHookFunc(func(reg *scene.Registry) {
		drawsSeenByHook = len(backend.OpenPass().Draws)
		reg.GetUnchecked(0).TranslateTo(math.NewVec2(0.5, 0.5))
	}))
	var behaviorSawPosition math.Vec2
	e.SetBehavior(scene.BehaviorFunc(func(e *scene.Entity) {
		behaviorSawPosition = e.Position()
	}))

	require.NoError(t, r.Render())

	assert.Equal(t, 0, drawsSeenByHook)
	// hook ran before the per-entity behaviors
	assert.Equal(t, math.NewVec2(0.5, 0.5), behaviorSawPosition)
}

func TestRenderTransientErrorsReconfigure(t *testing.T) {
	for _, injected := range []error{core.ErrSurfaceLost, core.ErrSurfaceOutdated} {
		t.Run(injected.Error(), func(t *testing.T) {
			r, backend := newTestRenderer(t)
			addTriangle(r)
			backend.AcquireErrors = []error{injected}

			require.NoError(t, r.Render())
			assert.Equal(t, StateLost, r.State())
			assert.Empty(t, backend.Submitted)
			assert.Equal(t, 2, backend.Configurations)
			assert.Equal(t, uint32(720), backend.Surface.Width)

			// next frame goes through
			require.NoError(t, r.Render())
			assert.Equal(t, StateConfigured, r.State())
			assert.Len(t, backend.Submitted, 1)
		})
	}
}

func TestRenderOutOfMemoryIsFatal(t *testing.T) {
	r, backend := newTestRenderer(t)
	backend.AcquireErrors = []error{core.ErrOutOfMemory}

	err := r.Render()
	assert.ErrorIs(t, err, core.ErrOutOfMemory)
	assert.Equal(t, StateFatal, r.State())

	// stays fatal without touching the device again
	acquired := backend.Acquired
	assert.ErrorIs(t, r.Render(), core.ErrOutOfMemory)
	assert.Equal(t, acquired, backend.Acquired)

	r.Resize(800, 600)
	assert.Equal(t, StateFatal, r.State())
}

func TestRenderUnknownErrorSkipsFrame(t *testing.T) {
	r, backend := newTestRenderer(t)
	backend.AcquireErrors = []error{errors.New("timeout")}

	require.NoError(t, r.Render())
	assert.Empty(t, backend.Submitted)
	assert.Equal(t, StateConfigured, r.State())
	assert.Equal(t, 1, backend.Configurations)
}

func TestRenderSubmitErrorsAreClassified(t *testing.T) {
	r, backend := newTestRenderer(t)
	backend.SubmitErrors = []error{core.ErrSurfaceOutdated}

	require.NoError(t, r.Render())
	assert.Equal(t, StateLost, r.State())
	assert.Empty(t, backend.Presented)
	assert.Equal(t, 2, backend.Configurations)

	backend.PresentErrors = []error{core.ErrDeviceLost}
	assert.ErrorIs(t, r.Render(), core.ErrDeviceLost)
	assert.Equal(t, StateFatal, r.State())
}

func TestRenderReportsLatchedDeviceErrors(t *testing.T) {
	r, backend := newTestRenderer(t)
	e := addTriangle(r)
	backend.Latch(core.ErrOutOfMemory)
	e.TranslateBy(math.NewVec2(1, 0))

	assert.ErrorIs(t, r.Render(), core.ErrOutOfMemory)
}

func TestResizeIgnoresZero(t *testing.T) {
	r, backend := newTestRenderer(t)
	target := r.MultisampleTarget()

	r.Resize(0, 600)
	r.Resize(600, 0)

	assert.Equal(t, uint32(720), r.SurfaceConfig().Width)
	assert.Equal(t, uint32(720), r.SurfaceConfig().Height)
	assert.Same(t, target, r.MultisampleTarget())
	assert.Equal(t, 1, backend.Configurations)
}

func TestResizeRebuildsTarget(t *testing.T) {
	r, backend := newTestRenderer(t)
	old := r.MultisampleTarget()

	r.Resize(800, 600)

	cfg := r.SurfaceConfig()
	assert.Equal(t, uint32(800), cfg.Width)
	assert.Equal(t, uint32(600), cfg.Height)
	assert.Equal(t, cfg, backend.Surface)
	assert.True(t, old.(*headless.Texture).Destroyed)
	assert.Equal(t, uint32(800), r.MultisampleTarget().Width())
	assert.Equal(t, uint32(600), r.MultisampleTarget().Height())
	assert.Equal(t, uint32(4), r.MultisampleTarget().SampleCount())
	assert.Equal(t, 1, backend.LiveTextures())

	require.NoError(t, r.Render())
	pass := backend.LastFrame().Passes[0]
	assert.Equal(t, uint32(800), pass.Descriptor.ColorTarget.Width())
}

func TestResizeConfiguresSurfaceBeforeTarget(t *testing.T) {
	r, backend := newTestRenderer(t)

	r.Resize(800, 600)

	target := r.MultisampleTarget().(*headless.Texture)
	assert.Equal(t, uint32(800), target.Surface.Width)
	assert.Equal(t, uint32(600), target.Surface.Height)
	assert.Equal(t, backend.Surface, target.Surface)
}

func TestRenderNeverWritesBuffersInFlight(t *testing.T) {
	r, backend := newTestRenderer(t)
	a := addTriangle(r)
	b := addTriangle(r)
	require.NoError(t, b.SetShaderParameters([4]float32{1, 0, 0, 1}))

	step := float32(0)
	r.SetFrameHook(FrameHookFunc(func(reg *scene.Registry) {
		step += 0.1
		a.TranslateTo(math.NewVec2(step, 0))
		require.NoError(t, b.SendShaderParameters([4]float32{step, 0, 0, 1}))
	}))
	b.SetBehavior(scene.BehaviorFunc(func(e *scene.Entity) {
		e.RotateBy(0.05)
	}))

	for range 5 {
		require.NoError(t, r.Render())
		assert.Equal(t, 1, backend.Pending())
	}
	assert.Len(t, backend.Submitted, 5)
	assert.NotEmpty(t, backend.Writes)
	assert.Empty(t, backend.Hazards)
}

func TestFPSObserver(t *testing.T) {
	backend := headless.New()
	now := time.Unix(0, 0)
	clock := core.NewClockWithSource(func() time.Time { return now })
	r, err := New(backend, Config{Width: 10, Height: 10, DefaultShader: &metadata.ShaderSource{Name: "basic"}, Clock: clock})
	require.NoError(t, err)

	var titles []string
	r.SetFPSObserver(func(fps uint64) {
		titles = append(titles, core.FPSTitle(fps))
	})

	for i := 0; i < int(core.FPSSampleFrames); i++ {
		now = now.Add(10 * time.Millisecond)
		require.NoError(t, r.Render())
	}
	assert.Equal(t, []string{"FPS: 100"}, titles)
}

func TestSetDefaultPipeline(t *testing.T) {
	r, backend := newTestRenderer(t)
	old := r.DefaultPipeline()

	r.SetDefaultPipeline(&metadata.ShaderSource{Name: "reloaded"})

	assert.True(t, old.(*headless.Pipeline).Destroyed)
	assert.Equal(t, "reloaded", r.DefaultPipeline().Name())
	assert.Equal(t, 1, backend.LivePipelines())
}

func TestDestroy(t *testing.T) {
	r, backend := newTestRenderer(t)
	addTriangle(r)

	r.Destroy()

	assert.Zero(t, backend.LiveBuffers())
	assert.Zero(t, backend.LivePipelines())
	assert.Zero(t, backend.LiveTextures())
}
