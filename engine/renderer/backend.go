package renderer

import (
	"github.com/spaghettifunk/anima2d/engine/core"
)

// State of the frame loop.
type State int

const (
	// Surface configured, ready to render.
	StateConfigured State = iota
	// A frame is being recorded.
	StateRendering
	// The last frame found the surface lost or outdated; it has been
	// reconfigured and the next frame retries.
	StateLost
	// The device cannot continue. Render keeps returning the fatal error.
	StateFatal
)

func (s State) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StateRendering:
		return "rendering"
	case StateLost:
		return "lost"
	case StateFatal:
		return "fatal"
	}
	return "unknown"
}

type errorClass int

const (
	errorTransient errorClass = iota
	errorFatal
	errorSkip
)

// classifyBackendError maps an acquire/submit/present failure onto what
// the frame loop does about it.
func classifyBackendError(err error) errorClass {
	switch {
	case core.IsTransientSurfaceError(err):
		return errorTransient
	case core.IsFatalDeviceError(err):
		return errorFatal
	}
	return errorSkip
}
