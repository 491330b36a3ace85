package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

/** @brief a 4x4 matrix, column-major, used to represent object transformations. */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

/**
 * @brief Represents the transform of a flat object. Position, rotation,
 * scale and shear are stored independently; the matrix is rebuilt from
 * all four after every change, so no component can clobber another.
 * NOTE: The fields should not be edited directly, use the methods in
 * transform.go to keep the matrix coherent.
 */
type Transform2D struct {
	/** @brief The translation applied last. */
	position Vec2
	/** @brief Rotation in radians, counter-clockwise. */
	angle float32
	/** @brief Per-axis scale factors. */
	scale Vec2
	/** @brief Shear factors: X shears x by y, Y shears y by x. */
	shear Vec2
	/** @brief The cached matrix, always in sync with the components above. */
	matrix Mat4
}
