package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/mitchellh/go-homedir"
	"github.com/spaghettifunk/anima2d/engine/assets"
	"github.com/spaghettifunk/anima2d/engine/assets/loaders"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/platform"
	"github.com/spaghettifunk/anima2d/engine/renderer"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type listener struct {
	code core.EventCode
	id   uint64
}

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	isSuspended  bool
	platform     *platform.Platform
	assetManager *assets.AssetManager
	backend      metadata.RendererBackend
	renderer     *renderer.FrameRenderer
	width        uint32
	height       uint32
	listeners    []listener
	fatal        error
	stop         atomic.Bool
}

func New(g *Game) (*Engine, error) {
	e := &Engine{
		currentStage: EngineStageBooting,
		gameInstance: g,
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	e.assetManager = am

	if !g.ApplicationConfig.Headless() {
		p, err := platform.New()
		if err != nil {
			core.LogError(err.Error())
			return nil, err
		}
		e.platform = p
	}

	e.currentStage = EngineStageBootComplete
	return e, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	config := e.gameInstance.ApplicationConfig

	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}

	// initialize events
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	e.listen(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	e.listen(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	e.listen(core.EVENT_CODE_RESIZED, e.onResized)
	e.listen(core.EVENT_CODE_REDRAW_REQUESTED, e.onRedraw)
	e.listen(core.EVENT_CODE_ABOUT_TO_WAIT, e.onAboutToWait)
	e.listen(core.EVENT_CODE_ASSET_CHANGED, e.onAssetChanged)

	if e.platform != nil {
		if err := e.platform.Startup(config.Name, config.StartPosX, config.StartPosY, config.StartWidth, config.StartHeight); err != nil {
			return err
		}
		if w, h := e.platform.FramebufferSize(); w > 0 && h > 0 {
			e.width, e.height = w, h
		}
	}

	assetDir, err := homedir.Expand(config.Assets.Dir)
	if err != nil {
		return err
	}
	shaderDir, err := homedir.Expand(config.Assets.ShaderDir)
	if err != nil {
		return err
	}
	if err := e.assetManager.Initialize(assetDir, shaderDir, config.Assets.HotReload && e.platform != nil); err != nil {
		return err
	}

	backend, err := newBackend(config, e.platform)
	if err != nil {
		return err
	}
	e.backend = backend

	shader, err := e.assetManager.LoadShader(DefaultShaderName)
	if err != nil {
		if e.platform != nil {
			return err
		}
		core.LogWarn("%s, using a placeholder shader", err)
		shader = placeholderShader(DefaultShaderName)
	}

	presentMode, err := metadata.ParsePresentMode(config.Renderer.PresentMode)
	if err != nil {
		return fmt.Errorf("%w: %s", core.ErrInvalidConfig, err)
	}
	fr, err := renderer.New(backend, renderer.Config{
		Width:         e.width,
		Height:        e.height,
		PresentMode:   presentMode,
		SampleCount:   config.Renderer.SampleCount,
		DefaultShader: shader,
	})
	if err != nil {
		return err
	}
	e.renderer = fr
	e.renderer.SetFrameHook(e.gameInstance.Hook)
	if e.platform != nil {
		e.renderer.SetFPSObserver(func(fps uint64) {
			e.platform.SetTitle(core.FPSTitle(fps))
		})
	}

	if e.gameInstance.FnBoot != nil {
		if err := e.gameInstance.FnBoot(e.renderer.Registry(), &Resources{assets: e.assetManager}); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run drives frames until a quit request or a fatal renderer error, which
// is returned. Headless runs render the configured number of frames.
func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.isRunning = true

	if e.platform == nil {
		frames := e.gameInstance.ApplicationConfig.Renderer.HeadlessFrames
		for i := uint32(0); i < frames && e.running(); i++ {
			e.assetManager.DispatchChanges()
			e.renderFrame()
			core.InputUpdate()
		}
		return e.fatal
	}

	e.platform.RequestRedraw()
	for e.running() {
		e.assetManager.DispatchChanges()
		e.platform.PumpMessages()
		core.InputUpdate()
	}
	return e.fatal
}

// Stop asks the run loop to return after the current frame. Safe to call
// from any goroutine.
func (e *Engine) Stop() {
	e.stop.Store(true)
}

func (e *Engine) running() bool {
	return e.isRunning && !e.stop.Load()
}

func (e *Engine) renderFrame() {
	if e.isSuspended {
		return
	}
	if err := e.renderer.Render(); err != nil {
		core.LogError("Frame %d failed, shutting down: %s", e.renderer.FrameNumber(), err)
		e.fatal = err
		e.isRunning = false
	}
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	var errs []error

	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	if e.renderer != nil {
		e.renderer.Destroy()
	}
	if e.backend != nil {
		errs = append(errs, e.backend.Shutdown())
	}
	if err := e.assetManager.Close(); err != nil && !errors.Is(err, assets.ErrManagerClosed) {
		errs = append(errs, err)
	}
	if e.platform != nil {
		errs = append(errs, e.platform.Shutdown())
	}
	for _, l := range e.listeners {
		core.EventUnregister(l.code, l.id)
	}
	e.listeners = nil
	errs = append(errs, core.EventSystemShutdown(), core.InputShutdown())
	return errors.Join(errs...)
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Renderer() *renderer.FrameRenderer {
	return e.renderer
}

func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) listen(code core.EventCode, fn core.FnOnEvent) {
	e.listeners = append(e.listeners, listener{code: code, id: core.EventRegister(code, fn)})
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if ke.KeyCode == core.KEY_ESCAPE {
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		return true
	}
	// Let the game see every other key.
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	re, ok := context.Data.(*core.ResizeEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	width, height := re.Width, re.Height
	if width == e.width && height == e.height && !e.isSuspended {
		return true
	}
	e.width, e.height = width, height
	core.LogDebug("Window resize: %d, %d", width, height)

	if width == 0 || height == 0 {
		if !e.isSuspended {
			core.LogInfo("Window minimized, suspending rendering.")
		}
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming rendering.")
		e.isSuspended = false
	}
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
	return true
}

func (e *Engine) onRedraw(core.EventContext) bool {
	e.renderFrame()
	return true
}

func (e *Engine) onAboutToWait(core.EventContext) bool {
	if e.platform != nil && e.isRunning {
		e.platform.RequestRedraw()
	}
	return true
}

// onAssetChanged rebuilds the default pipeline when its shader changes.
// Other assets are left to the game.
func (e *Engine) onAssetChanged(context core.EventContext) bool {
	ae, ok := context.Data.(*core.AssetEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	name, ok := loaders.ShaderName(ae.Path)
	if !ok || name != DefaultShaderName || e.renderer == nil {
		return false
	}
	shader, err := e.assetManager.LoadShader(name)
	if err != nil {
		// A half-written file; the next write triggers another reload.
		core.LogWarn("shader reload skipped: %s", err)
		return true
	}
	e.renderer.SetDefaultPipeline(shader)
	core.LogInfo("Default pipeline rebuilt from %s.", filepath.Base(ae.Path))
	return true
}
