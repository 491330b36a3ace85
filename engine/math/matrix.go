package math

import (
	"encoding/binary"
	m "math"
)

// Mat4Size is the byte size of a Mat4 as uploaded to a uniform buffer.
const Mat4Size = 64

/**
 * @brief Creates and returns an identity matrix:
 *
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 *
 * @return A new identity matrix
 */
func NewMat4Identity() Mat4 {
	out_matrix := Mat4{}
	out_matrix.Data[0] = 1.0
	out_matrix.Data[5] = 1.0
	out_matrix.Data[10] = 1.0
	out_matrix.Data[15] = 1.0
	return out_matrix
}

/**
 * @brief Returns the product mt * other, both column-major.
 */
func (mt Mat4) Mul(other Mat4) Mat4 {
	out_matrix := Mat4{}
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			sum := float32(0)
			for i := 0; i < 4; i++ {
				sum += mt.Data[i*4+row] * other.Data[col*4+i]
			}
			out_matrix.Data[col*4+row] = sum
		}
	}
	return out_matrix
}

// TransformPoint applies the matrix to a point in the z=0 plane.
func (mt Mat4) TransformPoint(p Vec2) Vec2 {
	return Vec2{
		X: mt.Data[0]*p.X + mt.Data[4]*p.Y + mt.Data[12],
		Y: mt.Data[1]*p.X + mt.Data[5]*p.Y + mt.Data[13],
	}
}

/**
 * @brief Returns the 64 byte little-endian image of the matrix, laid out
 * the way a std140 mat4 uniform expects it.
 */
func (mt Mat4) Bytes() []byte {
	out := make([]byte, Mat4Size)
	for i, f := range mt.Data {
		binary.LittleEndian.PutUint32(out[i*4:], m.Float32bits(f))
	}
	return out
}
