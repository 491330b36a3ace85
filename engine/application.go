package engine

import (
	"github.com/spaghettifunk/anima2d/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name     string
	LogLevel core.LogLevel

	Renderer core.RendererSection
	Assets   core.AssetsSection
}

// NewApplicationConfig flattens the loaded configuration into what the
// engine needs at startup.
func NewApplicationConfig(cfg *core.Config) *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:   cfg.Application.PosX,
		StartPosY:   cfg.Application.PosY,
		StartWidth:  cfg.Application.Width,
		StartHeight: cfg.Application.Height,
		Name:        cfg.Application.Name,
		LogLevel:    cfg.Application.LogLevel,
		Renderer:    cfg.Renderer,
		Assets:      cfg.Assets,
	}
}

func (c *ApplicationConfig) Headless() bool {
	return c.Renderer.Backend == BackendHeadless
}
