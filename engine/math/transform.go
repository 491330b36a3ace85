package math

import "github.com/chewxy/math32"

// NewTransform2D returns the identity transform.
func NewTransform2D() Transform2D {
	return Transform2D{
		scale:  NewVec2One(),
		matrix: NewMat4Identity(),
	}
}

/**
 * @brief Creates a transform from all of its components.
 */
func NewTransform2DFrom(position Vec2, angle float32, scale Vec2, shear Vec2) Transform2D {
	t := Transform2D{
		position: position,
		angle:    angle,
		scale:    scale,
		shear:    shear,
	}
	t.recompute()
	return t
}

func (t *Transform2D) TranslateTo(position Vec2) {
	t.position = position
	t.recompute()
}

func (t *Transform2D) TranslateBy(delta Vec2) {
	t.position = t.position.Add(delta)
	t.recompute()
}

func (t *Transform2D) RotateTo(angle float32) {
	t.angle = angle
	t.recompute()
}

// RotateBy adds to the stored angle. Unlike recovering the angle from the
// matrix this is exact for any scale or shear.
func (t *Transform2D) RotateBy(delta float32) {
	t.angle += delta
	t.recompute()
}

func (t *Transform2D) ScaleTo(scale Vec2) {
	t.scale = scale
	t.recompute()
}

// ScaleBy multiplies the current scale per axis.
func (t *Transform2D) ScaleBy(factor Vec2) {
	t.scale = t.scale.Mul(factor)
	t.recompute()
}

func (t *Transform2D) ShearTo(shear Vec2) {
	t.shear = shear
	t.recompute()
}

func (t *Transform2D) ShearBy(delta Vec2) {
	t.shear = t.shear.Add(delta)
	t.recompute()
}

func (t Transform2D) Position() Vec2 {
	return t.position
}

// Angle returns the rotation wrapped into (-PI, PI].
func (t Transform2D) Angle() float32 {
	return WrapAngle(t.angle)
}

func (t Transform2D) Scale() Vec2 {
	return t.scale
}

func (t Transform2D) Shear() Vec2 {
	return t.shear
}

func (t Transform2D) Matrix() Mat4 {
	return t.matrix
}

/**
 * @brief Rebuilds the matrix as T * R * H * S where H is the shear matrix
 * [[1, shear.X], [shear.Y, 1]].
 */
func (t *Transform2D) recompute() {
	s, c := math32.Sincos(t.angle)
	sx, sy := t.scale.X, t.scale.Y
	hx, hy := t.shear.X, t.shear.Y

	// R * H
	rh00 := c - s*hy
	rh01 := c*hx - s
	rh10 := s + c*hy
	rh11 := s*hx + c

	out := NewMat4Identity()
	// column 0
	out.Data[0] = rh00 * sx
	out.Data[1] = rh10 * sx
	// column 1
	out.Data[4] = rh01 * sy
	out.Data[5] = rh11 * sy
	// translation
	out.Data[12] = t.position.X
	out.Data[13] = t.position.Y
	t.matrix = out
}
