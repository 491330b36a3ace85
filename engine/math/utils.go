package math

import (
	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// WrapAngle maps any angle into (-PI, PI].
func WrapAngle(radians float32) float32 {
	if radians > -K_PI && radians <= K_PI {
		return radians
	}
	a := math32.Mod(radians+K_PI, K_PI_2)
	if a <= 0 {
		a += K_PI_2
	}
	return a - K_PI
}
