package engine

import (
	"github.com/spaghettifunk/anima2d/engine/assets"
	"github.com/spaghettifunk/anima2d/engine/assets/loaders"
	"github.com/spaghettifunk/anima2d/engine/renderer"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
	"github.com/spaghettifunk/anima2d/engine/scene"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnBoot            Boot
	FnShutdown        Shutdown
	// Runs once per frame before any entity is drawn.
	Hook renderer.FrameHook
}

type Boot func(registry *scene.Registry, resources *Resources) error
type Shutdown func() error

// Resources gives a booting game access to assets without exposing the
// engine internals.
type Resources struct {
	assets *assets.AssetManager
}

func (r *Resources) LoadShader(name string) (*metadata.ShaderSource, error) {
	return r.assets.LoadShader(name)
}

func (r *Resources) LoadGeometry(name string) (*loaders.GeometryData, error) {
	return r.assets.LoadGeometry(name)
}
