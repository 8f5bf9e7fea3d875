package math

import (
	m "math"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float32 = 3.14159265358979323846
	/** @brief An approximate representation of PI multiplied by 2. */
	K_PI_2 float32 = 2.0 * K_PI
	/** @brief An approximate representation of PI divided by 2. */
	K_HALF_PI float32 = 0.5 * K_PI
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float32 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float32 = 180.0 / K_PI
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 0 */
	K_FLOAT_EPSILON float32 = 1.192092896e-07
)

/**
 * Note that these are here in order to prevent having to import the
 * entire <math.h> everywhere.
 */
func ksin(x float32) float32 {
	return float32(m.Sin(float64(x)))
}

func kcos(x float32) float32 {
	return float32(m.Cos(float64(x)))
}

func kacos(x float32) float32 {
	return float32(m.Acos(float64(x)))
}

func kasin(x float32) float32 {
	return float32(m.Asin(float64(x)))
}

func katan2(y, x float32) float32 {
	return float32(m.Atan2(float64(y), float64(x)))
}

func ksqrt(x float32) float32 {
	return float32(m.Sqrt(float64(x)))
}

func kabs(x float32) float32 {
	return float32(m.Abs(float64(x)))
}

func kpow(x, y float32) float32 {
	return float32(m.Pow(float64(x), float64(y)))
}

// ------------------------------------------
// Vector 2
// ------------------------------------------

/**
 * @brief Creates and returns a new 2-element vector using the supplied values.
 */
func NewVec2(x, y float32) Vec2 {
	return Vec2{
		X: x,
		Y: y,
	}
}

/**
 * @brief Creates and returns a 2-component vector with all components set to 0.0f.
 */
func NewVec2Zero() Vec2 {
	return Vec2{X: 0.0, Y: 0.0}
}

/**
 *  Adds other to v and returns a copy of the result.
 */
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

/**
 * Subtracts other from v and returns a copy of the result.
 */
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

/**
 * Returns the squared length of the provided vector.
 */
func (v Vec2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

/**
 * @brief Returns the length of the provided vector.
 */
func (v Vec2) Length() float32 {
	return ksqrt(v.LengthSquared())
}

/**
 * @brief Returns the distance between v and other.
 */
func (v Vec2) Distance(other Vec2) float32 {
	d := Vec2{
		v.X - other.X,
		v.Y - other.Y}
	return d.Length()
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 */
func (v Vec2) Compare(other Vec2, tolerance float32) bool {
	if kabs(v.X-other.X) > tolerance {
		return false
	}
	if kabs(v.Y-other.Y) > tolerance {
		return false
	}
	return true
}

// ------------------------------------------
// Vector 3
// ------------------------------------------

/**
 * @brief Creates and returns a new 3-element vector using the supplied values.
 */
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

/**
 * @brief Creates and returns a 3-component vector with all components set to 0.0f.
 */
func NewVec3Zero() Vec3 {
	return Vec3{0.0, 0.0, 0.0}
}

/**
 * @brief Creates and returns a 3-component vector pointing up (0, 1, 0).
 */
func NewVec3Up() Vec3 {
	return Vec3{0.0, 1.0, 0.0}
}

/**
 * @brief Creates and returns a 3-component vector pointing forward (0, 0, -1).
 */
func NewVec3Forward() Vec3 {
	return Vec3{0.0, 0.0, -1.0}
}

/**
 * @brief Adds other to v and returns a copy of the result.
 */
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		v.X + other.X,
		v.Y + other.Y,
		v.Z + other.Z}
}

/**
 * @brief Subtracts other from v and returns a copy of the result.
 */
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		v.X - other.X,
		v.Y - other.Y,
		v.Z - other.Z}
}

/**
 * @brief Multiplies all elements of v by scalar and returns a copy of the result.
 */
func (v Vec3) MulScalar(scalar float32) Vec3 {
	return Vec3{
		v.X * scalar,
		v.Y * scalar,
		v.Z * scalar}
}

/**
 * @brief Returns the squared length of the provided vector.
 */
func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

/**
 * @brief Returns the length of the provided vector.
 */
func (v Vec3) Length() float32 {
	return ksqrt(v.LengthSquared())
}

/**
 * @brief Returns a normalized copy of the supplied vector.
 */
func (v Vec3) Normalized() Vec3 {
	length := v.Length()
	if length < K_FLOAT_EPSILON {
		return v
	}
	return Vec3{
		v.X / length,
		v.Y / length,
		v.Z / length}
}

/**
 * @brief Returns the dot product between the provided vectors. Typically used
 * to calculate the difference in direction.
 */
func (v Vec3) Dot(other Vec3) float32 {
	p := float32(0)
	p += v.X * other.X
	p += v.Y * other.Y
	p += v.Z * other.Z
	return p
}

/**
 * @brief Calculates and returns the cross product of the supplied vectors.
 * The cross product is a new vector which is orthoganal to both provided vectors.
 */
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X}
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 */
func (v Vec3) Compare(other Vec3, tolerance float32) bool {
	if kabs(v.X-other.X) > tolerance {
		return false
	}

	if kabs(v.Y-other.Y) > tolerance {
		return false
	}

	if kabs(v.Z-other.Z) > tolerance {
		return false
	}

	return true
}

/**
 * @brief Returns the distance between v and other.
 */
func (v Vec3) Distance(other Vec3) float32 {
	d := Vec3{
		v.X - other.X,
		v.Y - other.Y,
		v.Z - other.Z}
	return d.Length()
}

/**
 * @brief Transform v by mt. NOTE: It is assumed by this function that the
 * vector v is a point, not a direction, and is calculated as if a w component
 * with a value of 1.0f is there.
 */
func (v Vec3) Transform(mt Mat4) Vec3 {
	out := Vec3{}
	out.X = v.X*mt.Data[0+0] + v.Y*mt.Data[4+0] + v.Z*mt.Data[8+0] + 1.0*mt.Data[12+0]
	out.Y = v.X*mt.Data[0+1] + v.Y*mt.Data[4+1] + v.Z*mt.Data[8+1] + 1.0*mt.Data[12+1]
	out.Z = v.X*mt.Data[0+2] + v.Y*mt.Data[4+2] + v.Z*mt.Data[8+2] + 1.0*mt.Data[12+2]
	return out
}

// ------------------------------------------
// Matrix 4
// ------------------------------------------

/**
 * @brief Creates and returns an identity matrix.
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
 * @brief Returns the result of multiplying mt and other.
 */
func (mt Mat4) Mul(other Mat4) Mat4 {
	out_matrix := NewMat4Identity()

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := float32(0)
			for i := 0; i < 4; i++ {
				sum += mt.Data[row*4+i] * other.Data[i*4+col]
			}
			out_matrix.Data[row*4+col] = sum
		}
	}

	return out_matrix
}

/**
 * @brief Creates and returns a translation matrix from the given position.
 */
func NewMat4Translation(position Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[12] = position.X
	out_matrix.Data[13] = position.Y
	out_matrix.Data[14] = position.Z
	return out_matrix
}

/**
 * @brief Returns a forward vector relative to the provided matrix.
 */
func (mt Mat4) Forward() Vec3 {
	forward := Vec3{}
	forward.X = -mt.Data[2]
	forward.Y = -mt.Data[6]
	forward.Z = -mt.Data[10]
	return forward.Normalized()
}

// ------------------------------------------
// Quaternion
// ------------------------------------------

/**
 * @brief Creates an identity quaternion.
 */
func NewQuatIdentity() Quaternion {
	return Quaternion{0, 0, 0, 1.0}
}

/**
 * @brief Returns the normal of the provided quaternion.
 */
func (q Quaternion) Normal() float32 {
	return ksqrt(
		q.X*q.X +
			q.Y*q.Y +
			q.Z*q.Z +
			q.W*q.W)
}

/**
 * @brief Returns a normalized copy of the provided quaternion.
 */
func (q Quaternion) Normalize() Quaternion {
	normal := q.Normal()
	return Quaternion{
		q.X / normal,
		q.Y / normal,
		q.Z / normal,
		q.W / normal}
}

/**
 * @brief Returns the conjugate of the provided quaternion. That is,
 * The x, y and z elements are negated, but the w element is untouched.
 */
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

/**
 * @brief Returns an inverse copy of the provided quaternion.
 */
func (q Quaternion) Inverse() Quaternion {
	c := q.Conjugate()
	return c.Normalize()
}

/**
 * @brief Multiplies the provided quaternions.
 */
func (q Quaternion) Mul(other Quaternion) Quaternion {
	out_quaternion := Quaternion{}

	out_quaternion.X = q.X*other.W +
		q.Y*other.Z -
		q.Z*other.Y +
		q.W*other.X

	out_quaternion.Y = -q.X*other.Z +
		q.Y*other.W +
		q.Z*other.X +
		q.W*other.Y

	out_quaternion.Z = q.X*other.Y -
		q.Y*other.X +
		q.Z*other.W +
		q.W*other.Z

	out_quaternion.W = -q.X*other.X -
		q.Y*other.Y -
		q.Z*other.Z +
		q.W*other.W

	return out_quaternion
}

/**
 * @brief Calculates the dot product of the provided quaternions.
 */
func (q Quaternion) Dot(other Quaternion) float32 {
	return q.X*other.X +
		q.Y*other.Y +
		q.Z*other.Z +
		q.W*other.W
}

/**
 * @brief Rotates the provided vector by the quaternion. The quaternion is
 * assumed to be a unit quaternion.
 */
func (q Quaternion) RotateVec3(v Vec3) Vec3 {
	// t = 2 * cross(q.xyz, v); v' = v + q.w * t + cross(q.xyz, t)
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).MulScalar(2.0)
	return v.Add(t.MulScalar(q.W)).Add(u.Cross(t))
}

/**
 * @brief Returns the angle in radians between the rotations represented by
 * the two quaternions. Always in [0, PI].
 */
func (q Quaternion) AngleTo(other Quaternion) float32 {
	d := q.Normalize().Dot(other.Normalize())
	d = kabs(d)
	if d > 1.0 {
		d = 1.0
	}
	return 2.0 * kacos(d)
}

/**
 * @brief Creates a quaternion from the given axis and angle.
 */
func NewQuatFromAxisAngle(axis Vec3, angle float32, normalize bool) Quaternion {
	half_angle := 0.5 * angle
	s := ksin(half_angle)
	c := kcos(half_angle)

	q := Quaternion{s * axis.X, s * axis.Y, s * axis.Z, c}
	if normalize {
		return q.Normalize()
	}
	return q
}

/**
 * @brief Returns the yaw-only component of the provided orientation, i.e. a
 * rotation about the world Y axis that faces the same horizontal direction.
 * Pitch and roll are stripped. An orientation looking straight up or down has
 * no usable horizontal facing; in that case the identity is returned.
 */
func (q Quaternion) YawOrientation() Quaternion {
	forward := q.RotateVec3(NewVec3Forward())
	// Project onto the XZ plane. Near-vertical orientations leave a
	// horizontal component that is pure float noise; atan2 on noise flips
	// the result arbitrarily, so anything below a millimeter-per-meter of
	// horizontal magnitude is treated as degenerate.
	fx := forward.X
	fz := forward.Z
	if fx*fx+fz*fz < 1e-6 {
		return NewQuatIdentity()
	}
	yaw := katan2(-fx, -fz)
	return NewQuatFromAxisAngle(NewVec3Up(), yaw, true)
}

/**
 * @brief Returns the pitch angle in radians of the forward vector implied by
 * the orientation. Positive when pointing above the horizon.
 */
func (q Quaternion) PitchAngle() float32 {
	forward := q.RotateVec3(NewVec3Forward())
	y := Clamp(forward.Y, -1.0, 1.0)
	return kasin(y)
}

/**
 * @brief Calculates spherical linear interpolation of a given percentage
 * between two quaternions.
 */
func (q Quaternion) Slerp(other Quaternion, percentage float32) Quaternion {
	// Source: https://en.Wikipedia.org/wiki/Slerp
	// Only unit quaternions are valid rotations.
	// Normalize to avoid undefined behavior.
	v0 := q.Normalize()
	v1 := other.Normalize()

	// Compute the cosine of the angle between the two vectors.
	dot := v0.Dot(v1)

	// If the dot product is negative, slerp won't take
	// the shorter path. Note that v1 and -v1 are equivalent when
	// the negation is applied to all four components. Fix by
	// reversing one quaternion.
	if dot < 0.0 {
		v1.X = -v1.X
		v1.Y = -v1.Y
		v1.Z = -v1.Z
		v1.W = -v1.W
		dot = -dot
	}

	DOT_THRESHOLD := float32(0.9995)
	if dot > DOT_THRESHOLD {
		// If the inputs are too close for comfort, linearly interpolate
		// and normalize the result.
		qt := Quaternion{
			v0.X + ((v1.X - v0.X) * percentage),
			v0.Y + ((v1.Y - v0.Y) * percentage),
			v0.Z + ((v1.Z - v0.Z) * percentage),
			v0.W + ((v1.W - v0.W) * percentage)}

		return qt.Normalize()
	}

	// Since dot is in range [0, DOT_THRESHOLD], acos is safe
	theta_0 := kacos(dot)         // theta_0 = angle between input vectors
	theta := theta_0 * percentage // theta = angle between v0 and result
	sin_theta := ksin(theta)      // compute this value only once
	sin_theta_0 := ksin(theta_0)  // compute this value only once

	s0 := kcos(theta) - dot*sin_theta/sin_theta_0 // == sin(theta_0 - theta) / sin(theta_0)
	s1 := sin_theta / sin_theta_0

	return Quaternion{
		(v0.X * s0) + (v1.X * s1),
		(v0.Y * s0) + (v1.Y * s1),
		(v0.Z * s0) + (v1.Z * s1),
		(v0.W * s0) + (v1.W * s1)}
}

/**
 * @brief Compares all elements of q and other and ensures the difference
 * is less than tolerance. Note that q and -q represent the same rotation
 * but do not compare equal here.
 */
func (q Quaternion) Compare(other Quaternion, tolerance float32) bool {
	if kabs(q.X-other.X) > tolerance {
		return false
	}
	if kabs(q.Y-other.Y) > tolerance {
		return false
	}
	if kabs(q.Z-other.Z) > tolerance {
		return false
	}
	if kabs(q.W-other.W) > tolerance {
		return false
	}
	return true
}

/**
 * @brief Calculates the arc sine of x.
 */
func Asin(x float32) float32 {
	return kasin(x)
}

/**
 * @brief Calculates the square root of x.
 */
func Sqrt(x float32) float32 {
	return ksqrt(x)
}

/**
 * @brief Calculates the tangent of x.
 */
func Tan(x float32) float32 {
	return float32(m.Tan(float64(x)))
}

/**
 * @brief Converts provided degrees to radians.
 */
func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

/**
 * @brief Converts provided radians to degrees.
 */
func RadToDeg(radians float32) float32 {
	return radians * K_RAD2DEG_MULTIPLIER
}
