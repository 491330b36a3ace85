package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Arithmetic(t *testing.T) {
	a := NewVec2(3, 4)
	b := NewVec2(1, 2)

	assert.Equal(t, NewVec2(4, 6), a.Add(b))
	assert.Equal(t, NewVec2(2, 2), a.Sub(b))
	assert.Equal(t, NewVec2(3, 8), a.Mul(b))
	assert.Equal(t, NewVec2(1.5, 2), a.DivScalar(2))
	assert.Equal(t, NewVec2(6, 8), a.MulScalar(2))
	assert.Equal(t, float32(25), a.LengthSquared())
	assert.Equal(t, float32(5), a.Length())
}

func TestVec2Normalize(t *testing.T) {
	n := NewVec2(3, 4).Normalize()

	assert.InDelta(t, 1, n.Length(), 1e-6)
	assert.True(t, n.Compare(NewVec2(0.6, 0.8), 1e-6))
}

func TestVec2Distance(t *testing.T) {
	assert.Equal(t, float32(2), NewVec2(-1, 0).Distance(NewVec2(1, 0)))
	assert.False(t, NewVec2(0, 0).Compare(NewVec2(0, 0.1), 0.01))
}
