package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTrianglesCount(t *testing.T) {
	tests := []struct {
		points   int
		expected int
	}{
		{0, 0},
		{1, 0},
		{2, 0},
		{3, 1},
		{4, 2},
		{5, 3},
		{6, 4},
		{7, 5},
		{20, 18},
		{33, 31},
	}
	for _, tt := range tests {
		tris := GenerateTriangles(RingIndices(tt.points))
		assert.Len(t, tris, tt.expected*3, "ring of %d", tt.points)
	}
}

func TestGenerateTrianglesSquare(t *testing.T) {
	tris := GenerateTriangles([]uint32{0, 1, 2, 3})
	assert.Equal(t, []uint32{2, 1, 0, 0, 3, 2}, tris)
}

func TestGenerateTrianglesPentagon(t *testing.T) {
	tris := GenerateTriangles([]uint32{0, 1, 2, 3, 4})
	assert.Equal(t, []uint32{2, 1, 0, 4, 3, 2, 4, 2, 0}, tris)
}

func TestGenerateTrianglesUsesOnlyRingIndices(t *testing.T) {
	ring := []uint32{10, 11, 12, 13, 14, 15, 16}
	for _, idx := range GenerateTriangles(ring) {
		assert.Contains(t, ring, idx)
	}
}

func TestGenerateRegularGeometry(t *testing.T) {
	center := NewVec2(0.5, -0.25)
	points := GenerateRegularGeometry(20, 0.1, center, 0)

	require.Len(t, points, 20)
	for _, p := range points {
		assert.InDelta(t, 0.1, p.Distance(center), 1e-6)
	}
	// phase 0 starts straight up
	assert.InDelta(t, 0.5, points[0].X, 1e-6)
	assert.InDelta(t, -0.15, points[0].Y, 1e-6)
}

func TestGenerateRegularGeometryPhase(t *testing.T) {
	points := GenerateRegularGeometry(4, 1, NewVec2Zero(), K_HALF_PI)

	require.Len(t, points, 4)
	assert.True(t, points[0].Compare(NewVec2(1, 0), 1e-6))
	assert.True(t, points[1].Compare(NewVec2(0, -1), 1e-6))
}

func TestGenerateArc(t *testing.T) {
	// quarter circle with 8 sides: steps at 0, 45 and 90 degrees
	arc := GenerateArc(8, 1, NewVec2Zero(), 0, K_HALF_PI)

	require.Len(t, arc, 4)
	assert.Equal(t, NewVec2Zero(), arc[0])
	assert.True(t, arc[1].Compare(NewVec2(0, 1), 1e-6))
	assert.True(t, arc[3].Compare(NewVec2(1, 0), 1e-6))
}

func TestGenerateArcClampsToAngle(t *testing.T) {
	arc := GenerateArc(4, 1, NewVec2Zero(), 0, 1.0)

	// 0 degrees, then the clamped point at 1 rad
	require.Len(t, arc, 3)
	assert.InDelta(t, 1.0, arc[2].Distance(NewVec2Zero()), 1e-6)
	assert.InDelta(t, 0.8414709, arc[2].X, 1e-6)
}

func TestTriangulateRing(t *testing.T) {
	points := GenerateRegularGeometry(6, 1, NewVec2Zero(), 0)
	assert.Len(t, TriangulateRing(points), 12)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(10, 0, 5))
	assert.Equal(t, uint32(2), Clamp(uint32(1), 2, 8))
	assert.Equal(t, float32(0.5), Clamp(float32(0.5), 0, 1))
}
