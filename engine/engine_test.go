package engine

import (
	"testing"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/renderer"
	"github.com/spaghettifunk/anima2d/engine/renderer/headless"
	"github.com/spaghettifunk/anima2d/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headlessGame(t *testing.T, frames uint32) *Game {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Renderer.Backend = BackendHeadless
	cfg.Renderer.HeadlessFrames = frames
	cfg.Assets.Dir = t.TempDir()
	cfg.Assets.ShaderDir = t.TempDir()
	return &Game{ApplicationConfig: NewApplicationConfig(cfg)}
}

func TestEngineHeadlessRun(t *testing.T) {
	g := headlessGame(t, 5)

	hookCalls := 0
	g.Hook = renderer.FrameHookFunc(func(reg *scene.Registry) {
		hookCalls++
		e, ok := reg.Get(0)
		require.True(t, ok)
		e.TranslateBy(math.NewVec2(0.01, 0))
	})
	g.FnBoot = func(reg *scene.Registry, res *Resources) error {
		e, _ := reg.Add()
		e.SetGeometry(math.GenerateRegularGeometry(3, 0.5, math.NewVec2Zero(), 0), []uint32{0, 1, 2})
		return nil
	}
	shutdownCalled := false
	g.FnShutdown = func() error {
		shutdownCalled = true
		return nil
	}

	e, err := New(g)
	require.NoError(t, err)
	assert.Equal(t, EngineStageBootComplete, e.Stage())

	require.NoError(t, e.Initialize())
	assert.Equal(t, EngineStageInitialized, e.Stage())

	require.NoError(t, e.Run())
	assert.Equal(t, 5, hookCalls)
	assert.Equal(t, uint64(5), e.Renderer().FrameNumber())

	backend := e.backend.(*headless.Backend)
	assert.Len(t, backend.Submitted, 5)
	assert.Len(t, backend.LastFrame().Passes[0].Draws, 1)

	require.NoError(t, e.Shutdown())
	assert.True(t, shutdownCalled)
	assert.Equal(t, EngineStageShuttingDown, e.Stage())
}

func TestEngineStopsOnFatalError(t *testing.T) {
	g := headlessGame(t, 10)
	e, err := New(g)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	defer e.Shutdown()

	backend := e.backend.(*headless.Backend)
	backend.AcquireErrors = []error{nil, nil, core.ErrDeviceLost}

	err = e.Run()
	assert.ErrorIs(t, err, core.ErrDeviceLost)
	assert.Equal(t, uint64(2), e.Renderer().FrameNumber())
	assert.Equal(t, renderer.StateFatal, e.Renderer().State())
}

func TestEngineResizeSuspends(t *testing.T) {
	g := headlessGame(t, 3)
	e, err := New(g)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	defer e.Shutdown()

	core.EventFire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.ResizeEvent{Width: 0, Height: 600}})
	require.NoError(t, e.Run())
	assert.Equal(t, uint64(0), e.Renderer().FrameNumber())

	core.EventFire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.ResizeEvent{Width: 800, Height: 600}})
	assert.Equal(t, uint32(800), e.Renderer().SurfaceConfig().Width)
	assert.Equal(t, uint32(600), e.Renderer().MultisampleTarget().Height())
	require.NoError(t, e.Run())
	assert.Equal(t, uint64(3), e.Renderer().FrameNumber())
}

func TestEngineEscapeQuits(t *testing.T) {
	g := headlessGame(t, 100)
	g.Hook = renderer.FrameHookFunc(func(reg *scene.Registry) {
		core.InputProcessKey(core.KEY_ESCAPE, true)
	})
	e, err := New(g)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	defer e.Shutdown()

	require.NoError(t, e.Run())
	assert.Equal(t, uint64(1), e.Renderer().FrameNumber())
}
