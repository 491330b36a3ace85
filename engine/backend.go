package engine

import (
	"fmt"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/platform"
	"github.com/spaghettifunk/anima2d/engine/renderer/headless"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
	"github.com/spaghettifunk/anima2d/engine/renderer/vulkan"
)

const (
	BackendVulkan   = "vulkan"
	BackendHeadless = "headless"
)

// DefaultShaderName is the shader pair used by entities without their own.
const DefaultShaderName = "basic"

func newBackend(config *ApplicationConfig, p *platform.Platform) (metadata.RendererBackend, error) {
	switch config.Renderer.Backend {
	case BackendHeadless:
		return headless.New(), nil
	case BackendVulkan:
		presentMode, err := metadata.ParsePresentMode(config.Renderer.PresentMode)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", core.ErrInvalidConfig, err)
		}
		vr := vulkan.New(p, metadata.RendererBackendConfig{
			ApplicationName: config.Name,
			SampleCount:     config.Renderer.SampleCount,
			PresentMode:     presentMode,
			Validation:      config.Renderer.Validation,
			MaxBindingSets:  config.Renderer.MaxBindingSets,
		})
		if err := vr.Initialize(); err != nil {
			vr.Shutdown()
			return nil, err
		}
		return vr, nil
	}
	return nil, fmt.Errorf("%w: unknown renderer backend %q", core.ErrInvalidConfig, config.Renderer.Backend)
}

// placeholderShader stands in for compiled shaders when running headless.
func placeholderShader(name string) *metadata.ShaderSource {
	return &metadata.ShaderSource{
		Name:     name,
		Vertex:   []uint32{metadata.SPIRVMagic},
		Fragment: []uint32{metadata.SPIRVMagic},
	}
}
