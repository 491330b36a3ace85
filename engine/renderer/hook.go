package renderer

import "github.com/spaghettifunk/anima2d/engine/scene"

// FrameHook runs once per frame after the surface image is acquired and
// before any entity is drawn.
type FrameHook interface {
	OnFrame(registry *scene.Registry)
}

// FrameHookFunc adapts a plain function to a FrameHook.
type FrameHookFunc func(registry *scene.Registry)

func (f FrameHookFunc) OnFrame(registry *scene.Registry) {
	f(registry)
}
