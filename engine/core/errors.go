package core

import (
	"errors"
)

var (
	// Surface / device conditions reported by a graphics backend.
	ErrSurfaceLost     = errors.New("surface lost")
	ErrSurfaceOutdated = errors.New("surface outdated")
	ErrOutOfMemory     = errors.New("out of device memory")
	ErrDeviceLost      = errors.New("device lost")
	ErrNoAdapter       = errors.New("no suitable graphics adapter")

	// Scene contract violations.
	ErrStaleHandle           = errors.New("entity handle is stale")
	ErrEntityNotFound        = errors.New("entity not found")
	ErrParameterSizeMismatch = errors.New("shader parameter size does not match the committed size")
	ErrInvalidParameters     = errors.New("shader parameters must be a fixed-size value")

	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUnknown       = errors.New("unknown")
)

// IsTransientSurfaceError reports whether err means the surface has to be
// reconfigured before the next frame.
func IsTransientSurfaceError(err error) bool {
	return errors.Is(err, ErrSurfaceLost) || errors.Is(err, ErrSurfaceOutdated)
}

// IsFatalDeviceError reports whether rendering cannot continue.
func IsFatalDeviceError(err error) bool {
	return errors.Is(err, ErrOutOfMemory) || errors.Is(err, ErrDeviceLost)
}
