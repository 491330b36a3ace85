package math

import "github.com/chewxy/math32"

// walkArc emits up to `sides` points on a circle, starting at `phase` and
// advancing 2PI/sides per point. When a step reaches `angle` the point is
// clamped to it and the walk stops.
func walkArc(sides uint16, radius float32, center Vec2, phase float32, angle float32) []Vec2 {
	points := make([]Vec2, 0, sides)
	step := K_PI_2 / float32(sides)
	for i := uint16(0); i < sides; i++ {
		stepAngle := step * float32(i)
		done := false
		if stepAngle >= angle {
			stepAngle = angle
			done = true
		}
		s, c := math32.Sincos(phase + stepAngle)
		points = append(points, Vec2{
			X: center.X + s*radius,
			Y: center.Y + c*radius,
		})
		if done {
			break
		}
	}
	return points
}

/**
 * @brief Generates the outline of a regular polygon.
 *
 * @param sides The number of vertices.
 * @param radius Distance of every vertex from center.
 * @param center The polygon center.
 * @param phase Angle of the first vertex, measured from +Y towards +X.
 * @return `sides` points in ring order.
 */
func GenerateRegularGeometry(sides uint16, radius float32, center Vec2, phase float32) []Vec2 {
	return walkArc(sides, radius, center, phase, K_PI_2)
}

/**
 * @brief Generates a circular sector: the origin followed by the arc points
 * up to `angle`. The origin is (0, 0) regardless of center, so a sector is
 * only closed around its apex when center is the origin.
 */
func GenerateArc(sides uint16, radius float32, center Vec2, phase float32, angle float32) []Vec2 {
	arc := walkArc(sides, radius, center, phase, angle)
	return append([]Vec2{NewVec2Zero()}, arc...)
}

/**
 * @brief Triangulates a convex ring of vertex indices by pairing neighbours.
 * Every pass emits a triangle for each pair of consecutive edges, keeps
 * every other point (plus the last one for odd rings) and recurses on the
 * survivors. A ring of N >= 3 points yields N-2 triangles; fewer than three
 * points yield none.
 */
func GenerateTriangles(ring []uint32) []uint32 {
	n := len(ring)
	if n < 3 {
		return []uint32{}
	}
	numTriangles := n / 2
	tris := make([]uint32, 0, (n-2)*3)
	next := make([]uint32, 0, (n+1)/2)
	for i := 0; i/2 < numTriangles; i += 2 {
		end := ring[0]
		if i+2 < n {
			end = ring[i+2]
		}
		tris = append(tris, end, ring[i+1], ring[i])
		next = append(next, ring[i])
	}
	// odd rings keep their last point
	if n&1 != 0 {
		next = append(next, ring[n-1])
	}
	return append(tris, GenerateTriangles(next)...)
}

// RingIndices returns 0..n-1.
func RingIndices(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}

// TriangulateRing returns the index list covering a convex polygon whose
// vertices are given in ring order.
func TriangulateRing(points []Vec2) []uint32 {
	return GenerateTriangles(RingIndices(len(points)))
}
