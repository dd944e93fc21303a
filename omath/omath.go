package omath

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float64) float64 {
	if num < min {
		return min
	}
	return math.Min(num, max)
}

// Vec32To64 converts a 32 bit vector to a 64 bit one.
func Vec32To64(vec3 mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(vec3[0]), float64(vec3[1]), float64(vec3[2])}
}

// Vec64To32 converts a 64 bit vector to a 32 bit one.
func Vec64To32(vec3 mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(vec3[0]), float32(vec3[1]), float32(vec3[2])}
}

// Flatten returns the vector with its vertical (Z) component removed.
func Flatten(vec mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{vec[0], vec[1], 0}
}

// HzDistSqr returns the squared horizontal distance between two points.
func HzDistSqr(a, b mgl64.Vec3) float64 {
	dx, dy := a[0]-b[0], a[1]-b[1]
	return dx*dx + dy*dy
}

// HzDist returns the horizontal distance between two points.
func HzDist(a, b mgl64.Vec3) float64 {
	return math.Sqrt(HzDistSqr(a, b))
}

// SafeNormal returns the normalized vector, or a zero vector if it is too short to normalize.
func SafeNormal(vec mgl64.Vec3) mgl64.Vec3 {
	l := vec.Len()
	if l <= 1e-8 {
		return mgl64.Vec3{}
	}
	return vec.Mul(1 / l)
}

// SafeNormal2D returns the normalized horizontal part of the vector, or a zero vector.
func SafeNormal2D(vec mgl64.Vec3) mgl64.Vec3 {
	return SafeNormal(Flatten(vec))
}

// IsUnit reports whether the vector has a length of one within tolerance.
func IsUnit(vec mgl64.Vec3, tolerance float64) bool {
	return math.Abs(vec.LenSqr()-1) <= tolerance
}

// NearlyZero reports whether the value is within 1e-8 of zero.
func NearlyZero(val float64) bool {
	return math.Abs(val) <= 1e-8
}
