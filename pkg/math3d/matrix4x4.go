package math3d

import "math"

// Matrix4x4 is a 4x4 matrix stored in row-major order, m[row][col].
//
// It treats a point as a row vector and transforms it as p*M, with the
// translation living in row 3 (not column-major, point-as-column-vector,
// the OpenGL convention). This is the layout the rasterizer pipeline's
// projection math was built against, and chaining reads left-to-right:
// model.Multiply(view).Multiply(projection) carries a point through
// model space, then view space, then clip space in the order the names
// suggest.
type Matrix4x4 [4][4]float64

// IdentityMatrix returns the 4x4 identity matrix.
func IdentityMatrix() Matrix4x4 {
	var m Matrix4x4
	for i := range 4 {
		m[i][i] = 1
	}
	return m
}

// TranslationMatrix creates a translation matrix.
func TranslationMatrix(v Vec3) Matrix4x4 {
	m := IdentityMatrix()
	m[3][0] = v.X
	m[3][1] = v.Y
	m[3][2] = v.Z
	return m
}

// ScaleMatrix creates a scaling matrix.
func ScaleMatrix(v Vec3) Matrix4x4 {
	var m Matrix4x4
	m[0][0] = v.X
	m[1][1] = v.Y
	m[2][2] = v.Z
	m[3][3] = 1
	return m
}

// RotationXMatrix creates a rotation matrix around the X axis.
func RotationXMatrix(angle float64) Matrix4x4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := IdentityMatrix()
	m[1][1], m[1][2] = c, s
	m[2][1], m[2][2] = -s, c
	return m
}

// RotationYMatrix creates a rotation matrix around the Y axis.
func RotationYMatrix(angle float64) Matrix4x4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := IdentityMatrix()
	m[0][0], m[0][2] = c, -s
	m[2][0], m[2][2] = s, c
	return m
}

// RotationZMatrix creates a rotation matrix around the Z axis.
func RotationZMatrix(angle float64) Matrix4x4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := IdentityMatrix()
	m[0][0], m[0][1] = c, s
	m[1][0], m[1][1] = -s, c
	return m
}

// RotationAxisMatrix creates a rotation matrix around an arbitrary axis.
func RotationAxisMatrix(axis Vec3, angle float64) Matrix4x4 {
	axis = axis.Normalize()
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	var m Matrix4x4
	m[0][0], m[0][1], m[0][2] = t*x*x+c, t*x*y+s*z, t*x*z-s*y
	m[1][0], m[1][1], m[1][2] = t*x*y-s*z, t*y*y+c, t*y*z+s*x
	m[2][0], m[2][1], m[2][2] = t*x*z+s*y, t*y*z-s*x, t*z*z+c
	m[3][3] = 1
	return m
}

// RotateInPlace composes a rotation about an arbitrary axis into m,
// mutating the receiver so that the resulting transform rotates in the
// matrix's own existing basis before whatever it already carried.
func (m *Matrix4x4) RotateInPlace(axis Vec3, angle float64) {
	*m = RotationAxisMatrix(axis, angle).Multiply(*m)
}

// PerspectiveMatrix builds a row-major perspective projection matrix.
// fovy is the vertical field of view in radians, aspect is width/height,
// and near/far are the clipping planes. m[2][3] = -1 puts -z into the
// homogeneous w column and m[3][3] is 0; Transform discards that column,
// so the depth a Z-based perspective divide works with comes from
// m[2][2] and m[3][2].
func PerspectiveMatrix(fovy, aspect, near, far float64) Matrix4x4 {
	f := 1.0 / math.Tan(fovy/2)
	var m Matrix4x4
	m[0][0] = f / aspect
	m[1][1] = f
	m[2][2] = (far + near) / (near - far)
	m[2][3] = -1
	m[3][2] = (2 * far * near) / (near - far)
	return m
}

// Multiply returns the matrix product m*other, with other applied after m
// when used to transform a row vector: (p*m)*other == p*(m.Multiply(other)).
func (m Matrix4x4) Multiply(other Matrix4x4) Matrix4x4 {
	var r Matrix4x4
	for i := range 4 {
		for j := range 4 {
			var sum float64
			for k := range 4 {
				sum += m[i][k] * other[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

// Transform applies the matrix to a point, treating v as the homogeneous
// row vector (x, y, z, 1) and discarding the resulting w rather than
// dividing by it. Perspective division, where needed, is the caller's
// responsibility and is performed against the transformed Z, not W.
func (m Matrix4x4) Transform(v Vec3) Vec3 {
	return Vec3{
		X: v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0] + m[3][0],
		Y: v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1] + m[3][1],
		Z: v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2] + m[3][2],
	}
}

// TransformDirection applies the matrix to a direction vector (w=0), so
// translation has no effect.
func (m Matrix4x4) TransformDirection(v Vec3) Vec3 {
	return Vec3{
		X: v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0],
		Y: v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1],
		Z: v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2],
	}
}

// Get returns the element at (row, col).
func (m Matrix4x4) Get(row, col int) float64 {
	return m[row][col]
}

// Set sets the element at (row, col).
func (m *Matrix4x4) Set(row, col int, val float64) {
	m[row][col] = val
}
